// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzshc contributors

/*
Package lzshc implements a self-defined, one-shot lossless byte-stream codec:
a sliding-window LZ77 dictionary coder with an optional canonical Huffman
coding of its length alphabet.

The codec is buffer-in/buffer-out: no streaming, no random access, no
checksums, and no compatibility with DEFLATE, gzip, or any other standard
format. See the bit layout documented on Compress for the wire format.

# Compress

	out, err := lzshc.Compress(ctx, data, nil)
	out, err := lzshc.Compress(ctx, data, &lzshc.CompressOptions{Huffman: true})

# Decompress

	out, err := lzshc.Decompress(ctx, compressed, nil)

Both functions are pure: no I/O, no shared state across calls, and bounded
working memory proportional to input size.
*/
package lzshc
