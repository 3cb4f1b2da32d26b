// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzshc contributors

package lzshc

import (
	"math/rand"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"
)

func TestBitCarry_PushAndConsumeBasic(t *testing.T) {
	bc := NewBitCarry()
	require.NoError(t, bc.PushBits(0b101, 3))
	require.NoError(t, bc.PushBits(0xAB, 8))
	bc.PushByte(0xCD)
	bc.PushBytes([]byte{0x01, 0x02})

	require.Equal(t, 3+8+8+16, bc.AvailableBits())

	v, err := bc.PeekBits(3)
	require.NoError(t, err)
	require.EqualValues(t, 0b101, v)
	// Peek must not move the read cursor.
	require.Equal(t, 3+8+8+16, bc.AvailableBits())

	v, err = bc.ConsumeBits(3)
	require.NoError(t, err)
	require.EqualValues(t, 0b101, v)

	v, err = bc.ConsumeBits(8)
	require.NoError(t, err)
	require.EqualValues(t, 0xAB, v)

	v, err = bc.ConsumeBits(8)
	require.NoError(t, err)
	require.EqualValues(t, 0xCD, v)

	v, err = bc.ConsumeBits(16)
	require.NoError(t, err)
	require.EqualValues(t, 0x0102, v)

	require.Equal(t, 0, bc.AvailableBits())
}

func TestBitCarry_WidthErrors(t *testing.T) {
	bc := NewBitCarry()

	err := bc.PushBits(0, 65)
	require.ErrorIs(t, err, ErrWidth)

	var widthErr *WidthError
	require.ErrorAs(t, err, &widthErr)
	require.Equal(t, 65, widthErr.Width)

	_, err = bc.PeekBits(-1)
	require.ErrorIs(t, err, ErrWidth)
}

func TestBitCarry_UnderflowError(t *testing.T) {
	bc := NewBitCarry()
	require.NoError(t, bc.PushBits(1, 4))

	_, err := bc.ConsumeBits(8)
	require.ErrorIs(t, err, ErrUnderflow)

	var underflowErr *UnderflowError
	require.ErrorAs(t, err, &underflowErr)
	require.Equal(t, 8, underflowErr.Requested)
	require.Equal(t, 4, underflowErr.Available)
}

func TestBitCarry_GetBytesFlushPadsFinalByte(t *testing.T) {
	bc := NewBitCarry()
	require.NoError(t, bc.PushBits(0b1, 1))

	out := bc.GetBytes(true)
	require.Equal(t, []byte{0x80}, out)
}

func TestBitCarry_ZeroWidthPushIsNoop(t *testing.T) {
	bc := NewBitCarry()
	require.NoError(t, bc.PushBits(0xFF, 0))
	require.Equal(t, 0, bc.AvailableBits())
}

func TestBitCarry_Clear(t *testing.T) {
	bc := NewBitCarry()
	bc.PushByte(0xFF)
	_, _ = bc.ConsumeBits(4)
	bc.Clear()

	require.Equal(t, 0, bc.AvailableBits())
	require.Equal(t, []byte{}, bc.GetBytes(false))
}

func TestBitCarry_FromBytesReadsBackIdentically(t *testing.T) {
	data := []byte{0x12, 0x34, 0x56}
	bc := NewBitCarryFromBytes(data)
	require.Equal(t, 24, bc.AvailableBits())

	for _, want := range data {
		got, err := bc.ConsumeBits(8)
		require.NoError(t, err)
		require.EqualValues(t, want, got)
	}
}

// TestBitCarry_RoundTripProperty is the "for every sequence of pushes,
// reading the same widths in the same order yields the same values"
// invariant from spec.md §8, exercised via testing/quick.
func TestBitCarry_RoundTripProperty(t *testing.T) {
	prop := func(seed int64) bool {
		r := rand.New(rand.NewSource(seed))
		n := 1 + r.Intn(64)

		widths := make([]int, n)
		values := make([]uint64, n)
		bc := NewBitCarry()
		for i := 0; i < n; i++ {
			width := 1 + r.Intn(64)
			var value uint64
			if width == 64 {
				value = r.Uint64()
			} else {
				value = r.Uint64() & ((uint64(1) << width) - 1)
			}
			widths[i] = width
			values[i] = value
			if err := bc.PushBits(value, width); err != nil {
				return false
			}
		}

		for i := 0; i < n; i++ {
			got, err := bc.ConsumeBits(widths[i])
			if err != nil || got != values[i] {
				return false
			}
		}
		return bc.AvailableBits() == 0
	}

	if err := quick.Check(prop, &quick.Config{MaxCount: 200}); err != nil {
		t.Error(err)
	}
}

func TestBitCarry_MixedByteAndBitPushesInterleave(t *testing.T) {
	bc := NewBitCarry()
	require.NoError(t, bc.PushBits(0b1, 1))
	bc.PushByte(0x00)
	require.NoError(t, bc.PushBits(0b1111111, 7))

	// "1" + "00000000" + "1111111" regrouped into bytes MSB-first:
	// byte0 = 10000000, byte1 = 01111111.
	out := bc.GetBytes(true)
	require.Equal(t, []byte{0x80, 0x7F}, out)
}
