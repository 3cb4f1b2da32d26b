// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzshc contributors

// Command lzshc is a thin CLI over the lzshc codec: it wires flags to
// library calls and carries no codec logic of its own.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/lzshc/lzshc"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("lzshc", flag.ExitOnError)
	compressFlag := fs.Bool("c", false, "compress stdin to stdout")
	decompressFlag := fs.Bool("d", false, "decompress stdin to stdout")
	huffman := fs.Bool("huffman", false, "enable length-alphabet Huffman coding (compress only)")
	verbose := fs.Bool("v", false, "log progress percentage to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *compressFlag == *decompressFlag {
		return fmt.Errorf("exactly one of -c or -d is required")
	}

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	var progress lzshc.ProgressFunc
	if *verbose {
		progress = func(pct int) { fmt.Fprintf(os.Stderr, "\rlzshc: %3d%%", pct) }
	}

	ctx := context.Background()

	var output []byte
	if *compressFlag {
		output, err = lzshc.Compress(ctx, input, &lzshc.CompressOptions{
			Huffman:  *huffman,
			Progress: progress,
		})
	} else {
		output, err = lzshc.Decompress(ctx, input, &lzshc.DecompressOptions{
			Progress: progress,
		})
	}
	if *verbose {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}

	if _, err := os.Stdout.Write(output); err != nil {
		return fmt.Errorf("writing stdout: %w", err)
	}
	return nil
}
