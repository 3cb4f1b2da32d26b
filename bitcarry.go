// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzshc contributors

package lzshc

// BitCarry is a bit-granular serialiser/deserialiser over a growable byte
// buffer (spec.md §3/§4.1). Bits are packed most-significant-bit first,
// both within a pushed field and within each output byte. It exposes both a
// write cursor (append position, via Push*) and a read cursor (consume
// position, via PeekBits/ConsumeBits), so the same instance can be built up
// by a compressor and later drained by a decompressor, or loaded once via
// NewBitCarryFromBytes and only read.
//
// Writes are staged a byte at a time: stage holds the pending, not-yet-full
// byte (high bits first), and stageBits counts how many of its bits are
// live. This keeps the staging word's width bounded at 8 bits regardless of
// the width of any single push, so pushes up to 64 bits never risk
// overflowing a fixed-width accumulator.
type BitCarry struct {
	buf       []byte
	stage     byte
	stageBits int
	writePos  int // total bits written, including the pending stage
	readPos   int // bit index of the next read, 0-based from the start
}

// NewBitCarry returns an empty BitCarry ready for writing.
func NewBitCarry() *BitCarry {
	return &BitCarry{}
}

// NewBitCarryFromBytes returns a BitCarry preloaded with data, read cursor at
// the start and write cursor at the end. Intended for decoders that only
// ever read.
func NewBitCarryFromBytes(data []byte) *BitCarry {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &BitCarry{buf: buf, writePos: len(buf) * 8}
}

// PushBits appends the low width bits of value, MSB-first. Bits of value
// above width are ignored. width must be in [0, 64].
func (b *BitCarry) PushBits(value uint64, width int) error {
	if width < 0 || width > 64 {
		return &WidthError{Width: width}
	}
	if width == 0 {
		return nil
	}
	if width < 64 {
		value &= (uint64(1) << width) - 1
	}

	remaining := width
	for remaining > 0 {
		take := 8 - b.stageBits
		if take > remaining {
			take = remaining
		}

		shift := remaining - take
		bits := byte((value >> shift) & ((1 << take) - 1))

		b.stage = (b.stage << take) | bits
		b.stageBits += take
		remaining -= take

		if b.stageBits == 8 {
			b.buf = append(b.buf, b.stage)
			b.stage = 0
			b.stageBits = 0
		}
	}

	b.writePos += width
	return nil
}

// PushByte appends the 8 bits of b, MSB-first. Equivalent to PushBits(b, 8).
func (bc *BitCarry) PushByte(b byte) {
	_ = bc.PushBits(uint64(b), 8)
}

// PushBytes appends each byte of bs in order via PushByte.
func (bc *BitCarry) PushBytes(bs []byte) {
	for _, b := range bs {
		bc.PushByte(b)
	}
}

// bitAt returns the bit at absolute position i (0 = first bit written),
// reading through completed buf bytes and, past that, the pending stage.
func (b *BitCarry) bitAt(i int) byte {
	if i < len(b.buf)*8 {
		byteVal := b.buf[i/8]
		shift := 7 - (i % 8)
		return (byteVal >> shift) & 1
	}

	j := i - len(b.buf)*8 // index into stage, 0 = its MSB
	shift := b.stageBits - 1 - j
	return (b.stage >> shift) & 1
}

// AvailableBits returns the number of bits remaining from the read cursor to
// the write cursor.
func (b *BitCarry) AvailableBits() int {
	return b.writePos - b.readPos
}

// PeekBits returns the next width bits as an unsigned integer, MSB-first,
// without moving the read cursor.
func (b *BitCarry) PeekBits(width int) (uint64, error) {
	if width < 0 || width > 64 {
		return 0, &WidthError{Width: width}
	}
	if width == 0 {
		return 0, nil
	}
	if b.AvailableBits() < width {
		return 0, &UnderflowError{Requested: width, Available: b.AvailableBits()}
	}

	var v uint64
	for k := 0; k < width; k++ {
		v = (v << 1) | uint64(b.bitAt(b.readPos+k))
	}
	return v, nil
}

// ConsumeBits returns the next width bits, MSB-first, and advances the read
// cursor past them.
func (b *BitCarry) ConsumeBits(width int) (uint64, error) {
	v, err := b.PeekBits(width)
	if err != nil {
		return 0, err
	}
	b.readPos += width
	return v, nil
}

// GetBits is the unified peek/consume form from spec.md §4.1: advance=false
// is a pure peek; advance=true with consume=true moves the cursor the normal
// way. advance=true, consume=false is the "skip tag bits" shape some callers
// want — it moves the cursor exactly like ConsumeBits since, for this
// codec, there is no distinct notion of "advance without consuming".
func (b *BitCarry) GetBits(width int, advance, consume bool) (uint64, error) {
	if !advance {
		return b.PeekBits(width)
	}
	_ = consume
	return b.ConsumeBits(width)
}

// GetBytes returns all written bits as a byte slice. When flush is true, a
// pending partial byte is zero-padded in its least-significant bits and
// included; the BitCarry's own state is not mutated (the pad is a read-only
// snapshot), so GetBytes can be called more than once while still writing.
func (b *BitCarry) GetBytes(flush bool) []byte {
	out := make([]byte, len(b.buf), len(b.buf)+1)
	copy(out, b.buf)

	if flush && b.stageBits > 0 {
		out = append(out, b.stage<<(8-b.stageBits))
	}
	return out
}

// Clear resets both cursors and the buffer.
func (b *BitCarry) Clear() {
	b.buf = nil
	b.stage = 0
	b.stageBits = 0
	b.writePos = 0
	b.readPos = 0
}
