// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzshc contributors

package corpus

import "testing"

func TestAll_ReturnsEveryNamedFile(t *testing.T) {
	files, err := All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}

	for _, name := range Names() {
		data, ok := files[name]
		if !ok {
			t.Fatalf("missing embedded file %q", name)
		}
		if len(data) == 0 {
			t.Fatalf("embedded file %q is empty", name)
		}
	}
}

func TestRead_UnknownFileErrors(t *testing.T) {
	if _, err := Read("does-not-exist.txt"); err == nil {
		t.Fatal("expected error for unknown embedded file")
	}
}
