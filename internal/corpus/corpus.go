// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzshc contributors

// Package corpus embeds a small fixed text corpus used by round-trip and
// compression-ratio tests, so those tests exercise the codec on realistic
// text without depending on an external, possibly-absent fixture directory
// (the teacher's compat_corpus_test.go skips itself when its ref/ directory
// is missing; embedding the fixture instead means there is nothing to skip).
package corpus

import "embed"

//go:embed testdata
var files embed.FS

// Names returns the embedded corpus files in a fixed order.
func Names() []string {
	return []string{
		"repeated.txt",
		"prose.txt",
		"binaryish.bin",
	}
}

// Read returns the contents of the named embedded corpus file.
func Read(name string) ([]byte, error) {
	return files.ReadFile("testdata/" + name)
}

// All returns every embedded corpus file's contents, keyed by name.
func All() (map[string][]byte, error) {
	names := Names()
	out := make(map[string][]byte, len(names))
	for _, n := range names {
		b, err := Read(n)
		if err != nil {
			return nil, err
		}
		out[n] = b
	}
	return out, nil
}
