// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzshc contributors

package lzshc

import "context"

// progressEvery is how often (in input bytes processed) Compress invokes a
// non-nil progress observer while walking the token stream, bounding
// callback overhead on large inputs (SPEC_FULL.md §4.4 expansion).
const progressEvery = 4096

// Compress encodes input into a compact bit stream, returning an empty slice
// unchanged for an empty input. ctx is checked once at entry only: per
// spec.md §5 no operation is cancellable once invoked, so a caller wanting
// cancellation chunks its input at the caller boundary.
//
// Wire format, MSB-first within each field:
//
//	bit 0                        : compression flag (1 = compressed, 0 = raw)
//	[flag == 0] byte-aligned pad, then the raw input bytes
//	[flag == 1] length-coding bit (1 = Huffman-coded lengths, 0 = plain),
//	            [length-coding == 1] Huffman header for the length alphabet,
//	            then the token stream:
//	              literal_hi0 := "0"     <byte:8>
//	              literal_hi1 := "1" "1" <byte:8>
//	              reference   := "1" "0" <m_L:1> <len:4|8> <m_D:1> <offset:10|16>
//	              (with length-coding == 1, <m_L:1> <len:4|8> is replaced by
//	              the Huffman code of the length symbol)
//
// A nil opts is equivalent to DefaultCompressOptions(). When opts.Huffman is
// true, reference tokens' length fields are canonically Huffman-coded; if
// the payload contains no reference tokens at all there is nothing to build
// a tree from, and the length-coding bit silently falls back to 0 for that
// payload.
//
// If the compressed encoding would be longer than 8*len(input) bits,
// Compress falls back to a raw, flag=0 encoding instead (the "inflation
// guard"), so the output never exceeds len(input)+1 bytes.
func Compress(ctx context.Context, input []byte, opts *CompressOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = DefaultCompressOptions()
	}
	if len(input) == 0 {
		return []byte{}, nil
	}

	mf := newMatchFinder(input)
	toks := tokenize(mf)

	var tree *HuffmanTree
	useHuffman := false
	if opts.Huffman {
		freqs := refLengthFrequencies(toks)
		if len(freqs) > 0 {
			t, err := BuildHuffmanTree(freqs)
			if err != nil {
				return nil, err
			}
			tree = t
			useHuffman = true
		}
	}

	bc := NewBitCarry()
	if err := bc.PushBits(1, 1); err != nil { // compression flag
		return nil, err
	}
	lengthCodingBit := uint64(0)
	if useHuffman {
		lengthCodingBit = 1
	}
	if err := bc.PushBits(lengthCodingBit, 1); err != nil {
		return nil, err
	}
	if useHuffman {
		if err := writeHuffmanHeader(bc, tree.Frequencies()); err != nil {
			return nil, err
		}
	}

	lastReported := -1
	pos := 0
	nextReportAt := 0
	for _, t := range toks {
		if err := emitToken(bc, t, tree); err != nil {
			return nil, err
		}
		if t.isRef {
			pos += t.length
		} else {
			pos++
		}
		if pos >= nextReportAt {
			reportProgress(opts.Progress, pos, len(input), &lastReported)
			nextReportAt = pos + progressEvery
		}
	}
	reportProgress(opts.Progress, len(input), len(input), &lastReported)

	if bc.writePos <= 8*len(input) {
		return bc.GetBytes(true), nil
	}
	return encodeRaw(input), nil
}

// encodeRaw builds the flag=0 fallback encoding: a single zero-padded flag
// byte followed by the raw input bytes, byte-aligned.
func encodeRaw(input []byte) []byte {
	bc := NewBitCarry()
	_ = bc.PushBits(0, 1)
	out := bc.GetBytes(true) // flushes the lone flag bit into one zero byte
	out = append(out, input...)
	return out
}

// Decompress reverses Compress, returning an empty slice unchanged for an
// empty input. ctx is checked once at entry, matching Compress.
//
// A nil opts is equivalent to DefaultDecompressOptions(). Decompress returns
// a *CorruptStreamError (wrapping ErrCorruptStream) for a structurally
// invalid stream, e.g. a back-reference pointing before the start of the
// decoded prefix.
func Decompress(ctx context.Context, input []byte, opts *DecompressOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = DefaultDecompressOptions()
	}
	if len(input) == 0 {
		return []byte{}, nil
	}

	bc := NewBitCarryFromBytes(input)
	totalBits := bc.AvailableBits()

	flag, err := bc.ConsumeBits(1)
	if err != nil {
		return nil, err
	}

	if flag == 0 {
		pad := (8 - bc.readPos%8) % 8
		if _, err := bc.ConsumeBits(pad); err != nil {
			return nil, err
		}
		var out []byte
		for bc.AvailableBits() >= 8 {
			b, err := bc.ConsumeBits(8)
			if err != nil {
				return nil, err
			}
			out = append(out, byte(b))
		}
		reportProgress(opts.Progress, totalBits, totalBits, new(int))
		return out, nil
	}

	lengthCoding, err := bc.ConsumeBits(1)
	if err != nil {
		return nil, err
	}

	var tree *HuffmanTree
	if lengthCoding == 1 {
		tree, err = readHuffmanHeader(bc)
		if err != nil {
			return nil, err
		}
	}

	out, err := decodeLZ77(bc, tree, opts.Progress, totalBits)
	if err != nil {
		return nil, err
	}
	return out, nil
}
