// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzshc contributors

package lzshc

// token is one parsed unit of the LZ77 token stream (spec.md §4.4): either a
// literal byte or a back-reference into the already-decoded output.
type token struct {
	isRef  bool
	lit    byte
	length int // valid when isRef
	dist   int // valid when isRef
}

// tokenize greedily parses data into literals and back-references using mf,
// always preferring the longest match the suffix array can find at the
// current position (spec.md §4.4's "longest match wins" token selection
// policy). No lazy matching: a winning match is always taken immediately.
func tokenize(mf *matchFinder) []token {
	data := mf.data
	n := len(data)
	toks := make([]token, 0, n/2+1)

	for pos := 0; pos < n; {
		length, dist := mf.longestMatch(pos)
		if length >= minLen {
			toks = append(toks, token{isRef: true, length: length, dist: dist})
			pos += length
			continue
		}
		toks = append(toks, token{lit: data[pos]})
		pos++
	}
	return toks
}

// refLengthFrequencies counts, over toks, how many times each ref_length
// byte value (length-minLen, clamped into a byte) occurs among reference
// tokens — the "length alphabet" the optional Huffman header (SPEC_FULL.md
// §4.4 expansion) is built over.
func refLengthFrequencies(toks []token) map[byte]uint32 {
	freqs := make(map[byte]uint32)
	for _, t := range toks {
		if !t.isRef {
			continue
		}
		freqs[byte(t.length-minLen)]++
	}
	return freqs
}

// emitToken appends one token's bit encoding to bc, per the grammar in
// spec.md §6:
//
//	literal_hi0 := "0" <byte:8>
//	literal_hi1 := "1" "1" <byte:8>
//	reference   := "1" "0" <m_L:1> <ref_len:4|8> <m_D:1> <offset:10|16>
//
// The leading tag bit of a literal doubles as the top bit of the byte being
// emitted (Design Note §9's "implicit leading-one" optimisation): a literal
// with its high bit clear is tagged "0" and the remaining 7 bits follow; a
// literal with its high bit set is tagged "1" "1" and the low 7 bits follow,
// so every literal costs exactly 8 or 9 bits, never a separate tag plus a
// full 8-bit byte.
//
// When tree is non-nil, ref_len is replaced by tree's Huffman code for the
// length symbol and the m_L mode bit is omitted (SPEC_FULL.md §4.4).
func emitToken(bc *BitCarry, t token, tree *HuffmanTree) error {
	if !t.isRef {
		if t.lit&0x80 == 0 {
			return bc.PushBits(uint64(t.lit), 8) // tag "0" is the byte's own top bit
		}
		if err := bc.PushBits(1, 1); err != nil { // second tag bit
			return err
		}
		return bc.PushBits(uint64(t.lit), 8) // tag "1" is the byte's own top bit
	}

	if err := bc.PushBits(0b10, 2); err != nil {
		return err
	}

	lengthField := t.length - minLen
	if tree != nil {
		bits, bitLen, ok := tree.Lookup(byte(lengthField))
		if !ok {
			return &CorruptStreamError{Reason: "no huffman code for length symbol", Offset: bc.writePos}
		}
		if err := bc.PushBits(bits, int(bitLen)); err != nil {
			return err
		}
	} else {
		small := lengthField < refSmallLenMax
		mBit := uint64(0)
		if !small {
			mBit = 1
		}
		if err := bc.PushBits(mBit, 1); err != nil {
			return err
		}
		width := refSmallLenBits
		if !small {
			width = lenBits
		}
		if err := bc.PushBits(uint64(lengthField), width); err != nil {
			return err
		}
	}

	distField := t.dist - minDist
	small := distField < refSmallDistMax
	mBit := uint64(0)
	if !small {
		mBit = 1
	}
	if err := bc.PushBits(mBit, 1); err != nil {
		return err
	}
	width := refSmallDistBits
	if !small {
		width = distBits
	}
	return bc.PushBits(uint64(distField), width)
}

// writeHuffmanHeader emits the length-alphabet Huffman header (SPEC_FULL.md
// §4.4 expansion): max_freq_bits (maxFreqBitsLength bits), freq_count-1 (8
// bits), then freq_count pairs of (symbol:8, frequency:max_freq_bits).
func writeHuffmanHeader(bc *BitCarry, freqs map[byte]uint32) error {
	if len(freqs) == 0 {
		return &EmptyAlphabetError{}
	}

	var maxFreq uint32
	for _, f := range freqs {
		if f > maxFreq {
			maxFreq = f
		}
	}
	maxFreqBits := bitsNeeded(maxFreq)
	if maxFreqBits == 0 {
		maxFreqBits = 1
	}

	if err := bc.PushBits(uint64(maxFreqBits), maxFreqBitsLength); err != nil {
		return err
	}
	if err := bc.PushBits(uint64(len(freqs)-1), 8); err != nil {
		return err
	}

	symbols := sortedSymbols(freqs)
	for _, s := range symbols {
		if err := bc.PushBits(uint64(s), 8); err != nil {
			return err
		}
		if err := bc.PushBits(uint64(freqs[s]), maxFreqBits); err != nil {
			return err
		}
	}
	return nil
}

// readHuffmanHeader is the inverse of writeHuffmanHeader, reconstructing the
// frequency map and building the tree the encoder used.
func readHuffmanHeader(bc *BitCarry) (*HuffmanTree, error) {
	maxFreqBitsVal, err := bc.ConsumeBits(maxFreqBitsLength)
	if err != nil {
		return nil, err
	}
	maxFreqBits := int(maxFreqBitsVal)

	countMinusOne, err := bc.ConsumeBits(8)
	if err != nil {
		return nil, err
	}
	count := int(countMinusOne) + 1

	freqs := make(map[byte]uint32, count)
	for i := 0; i < count; i++ {
		symVal, err := bc.ConsumeBits(8)
		if err != nil {
			return nil, err
		}
		freqVal, err := bc.ConsumeBits(maxFreqBits)
		if err != nil {
			return nil, err
		}
		freqs[byte(symVal)] = uint32(freqVal)
	}

	return BuildHuffmanTree(freqs)
}

// bitsNeeded returns the number of bits required to represent v (0 returns 0).
func bitsNeeded(v uint32) int {
	n := 0
	for v > 0 {
		n++
		v >>= 1
	}
	return n
}

// sortedSymbols returns the keys of freqs in ascending order, for a
// deterministic header encoding.
func sortedSymbols(freqs map[byte]uint32) []byte {
	out := make([]byte, 0, len(freqs))
	for s := range freqs {
		out = append(out, s)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// decodeLZ77 reads a flag==1 token stream from bc (whose read cursor is
// positioned right after the length-coding bit has already been consumed by
// the caller) and reconstructs the original bytes, per spec.md §4.5's
// decoder state machine: peek 1 bit; 0 means an 8-bit literal with that bit
// as its top bit; 1 means either a second literal tag or a reference,
// decided by consuming one more bit.
//
// fn, if non-nil, is invoked synchronously with a best-effort percentage
// based on bits consumed versus totalBits (the stream's bit length at the
// start of Decompress); progress is checked once per token, and fn is only
// called when the percentage has advanced. Tests exercising the decoder
// directly pass a nil fn.
//
// The shortest possible token (literal_hi0) is 8 bits, so fewer than 8 bits
// remaining can never be the start of a real token: it is GetBytes(true)'s
// flush padding (spec.md §4.5's tolerated "up to 7 padding bits at the
// tail"), which NewBitCarryFromBytes cannot otherwise distinguish from real
// content via AvailableBits() alone. The loop checks for that tail before
// attempting to parse another token, rather than letting the attempt run
// into a spurious UnderflowError.
func decodeLZ77(bc *BitCarry, tree *HuffmanTree, fn ProgressFunc, totalBits int) ([]byte, error) {
	var out []byte
	lastReported := -1

	for {
		avail := bc.AvailableBits()
		if avail == 0 {
			break
		}
		if avail < 8 {
			pad, err := bc.PeekBits(avail)
			if err != nil {
				return nil, err
			}
			if pad != 0 {
				return nil, &CorruptStreamError{Reason: "nonzero flush padding", Offset: bc.readPos}
			}
			break
		}

		reportProgress(fn, bc.readPos, totalBits, &lastReported)
		tag0, err := bc.PeekBits(1)
		if err != nil {
			return nil, err
		}

		if tag0 == 0 {
			b, err := bc.ConsumeBits(8)
			if err != nil {
				return nil, err
			}
			out = append(out, byte(b))
			continue
		}

		// tag0 == 1: need a second bit to disambiguate literal_hi1 vs reference.
		if bc.AvailableBits() < 2 {
			return nil, &CorruptStreamError{Reason: "truncated token tag", Offset: bc.readPos}
		}
		two, err := bc.PeekBits(2)
		if err != nil {
			return nil, err
		}

		if two == 0b11 {
			// Drop the extra "1" tag, then read the full byte: its own top
			// bit is the second "1", matching emitToken's encoding exactly.
			if _, err := bc.ConsumeBits(1); err != nil {
				return nil, err
			}
			b, err := bc.ConsumeBits(8)
			if err != nil {
				return nil, err
			}
			out = append(out, byte(b))
			continue
		}

		// two == 0b10: reference token.
		if _, err := bc.ConsumeBits(2); err != nil {
			return nil, err
		}

		var lengthField int
		if tree != nil {
			sym, err := tree.decodeSymbol(bc)
			if err != nil {
				return nil, err
			}
			lengthField = int(sym)
		} else {
			mL, err := bc.ConsumeBits(1)
			if err != nil {
				return nil, err
			}
			width := refSmallLenBits
			if mL == 1 {
				width = lenBits
			}
			v, err := bc.ConsumeBits(width)
			if err != nil {
				return nil, err
			}
			lengthField = int(v)
		}
		length := lengthField + minLen

		mD, err := bc.ConsumeBits(1)
		if err != nil {
			return nil, err
		}
		width := refSmallDistBits
		if mD == 1 {
			width = distBits
		}
		distVal, err := bc.ConsumeBits(width)
		if err != nil {
			return nil, err
		}
		dist := int(distVal) + minDist

		var appendErr error
		out, appendErr = appendBackRef(out, dist, length, bc.readPos)
		if appendErr != nil {
			return nil, appendErr
		}
	}

	reportProgress(fn, totalBits, totalBits, &lastReported)
	return out, nil
}

// appendBackRef grows out by length bytes, filled by copying from
// dist bytes behind the current end of out — LZ77's back-reference
// expansion (spec.md §4.5). When dist < length the source region overlaps
// the region being written, so the copy is seeded with one full dist-sized
// chunk and then doubled in place; copy() stops at the shorter of the two
// overlapping slices, so repeated calls are needed to cover the whole
// destination.
//
// Grounded on the teacher's copyBackRef (copy.go), adapted from a
// fixed-size pre-allocated dst to an append-growing output buffer.
func appendBackRef(out []byte, dist, length, offset int) ([]byte, error) {
	if dist <= 0 || dist > len(out) {
		return out, &CorruptStreamError{Reason: "back-reference before start of output", Offset: offset}
	}

	outputPos := len(out)
	mPos := outputPos - dist
	out = append(out, make([]byte, length)...)

	if dist >= length {
		copy(out[outputPos:outputPos+length], out[mPos:mPos+length])
		return out, nil
	}

	copy(out[outputPos:outputPos+dist], out[mPos:outputPos])
	copied := dist
	for copied < length {
		n := copy(out[outputPos+copied:outputPos+length], out[outputPos:outputPos+copied])
		copied += n
	}
	return out, nil
}
