// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzshc contributors

package lzshc

// CompressOptions configures Compress. A nil *CompressOptions is equivalent
// to DefaultCompressOptions().
type CompressOptions struct {
	// Huffman enables canonical Huffman coding of the reference length
	// alphabet (see the "length coding" sub-format documented on Compress).
	Huffman bool
	// Progress, if non-nil, is invoked synchronously from the encoding loop
	// with a best-effort, monotonically non-decreasing percentage.
	Progress ProgressFunc
}

// DefaultCompressOptions returns options with Huffman coding disabled and no
// progress observer.
func DefaultCompressOptions() *CompressOptions {
	return &CompressOptions{}
}

// DecompressOptions configures Decompress. A nil *DecompressOptions is
// equivalent to DefaultDecompressOptions().
type DecompressOptions struct {
	// Progress, if non-nil, is invoked synchronously from the decoding loop
	// with a best-effort, monotonically non-decreasing percentage.
	Progress ProgressFunc
}

// DefaultDecompressOptions returns options with no progress observer.
func DefaultDecompressOptions() *DecompressOptions {
	return &DecompressOptions{}
}
