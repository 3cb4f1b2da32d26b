// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzshc contributors

package lzshc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildHuffmanTree_EmptyAlphabetErrors(t *testing.T) {
	_, err := BuildHuffmanTree(map[byte]uint32{})
	require.ErrorIs(t, err, ErrEmptyAlphabet)

	var emptyErr *EmptyAlphabetError
	require.ErrorAs(t, err, &emptyErr)
}

// TestBuildHuffmanTree_SingleSymbolGetsOneBitCode is spec.md §8 scenario 6:
// building a tree from {0x20: 7} yields a two-leaf tree where the real
// symbol gets a 1-bit code.
func TestBuildHuffmanTree_SingleSymbolGetsOneBitCode(t *testing.T) {
	tree, err := BuildHuffmanTree(map[byte]uint32{0x20: 7})
	require.NoError(t, err)

	_, length, ok := tree.Lookup(0x20)
	require.True(t, ok)
	require.EqualValues(t, 1, length)

	require.Len(t, tree.nodes, 3) // two leaves + one internal root
}

func TestBuildHuffmanTree_PrefixFreeness(t *testing.T) {
	freqs := map[byte]uint32{
		'a': 45, 'b': 13, 'c': 12, 'd': 16, 'e': 9, 'f': 5,
	}
	tree, err := BuildHuffmanTree(freqs)
	require.NoError(t, err)

	var codes []huffCode
	for sym := range freqs {
		bits, length, ok := tree.Lookup(sym)
		require.True(t, ok)
		codes = append(codes, huffCode{bits: bits, length: length})
	}

	for i := range codes {
		for j := range codes {
			if i == j {
				continue
			}
			require.False(t, isPrefixOfCode(codes[i], codes[j]),
				"code %d is a prefix of code %d", i, j)
		}
	}
}

func isPrefixOfCode(a, b huffCode) bool {
	if a.length >= b.length {
		return false
	}
	return a.bits == (b.bits >> (b.length - a.length))
}

func TestBuildHuffmanTree_DeterministicAcrossCalls(t *testing.T) {
	freqs := map[byte]uint32{'x': 3, 'y': 3, 'z': 1, 'w': 7}

	t1, err := BuildHuffmanTree(freqs)
	require.NoError(t, err)
	t2, err := BuildHuffmanTree(freqs)
	require.NoError(t, err)

	for sym := range freqs {
		b1, l1, _ := t1.Lookup(sym)
		b2, l2, _ := t2.Lookup(sym)
		require.Equal(t, l1, l2)
		require.Equal(t, b1, b2)
	}
}

func TestBuildHuffmanTree_RoundTripViaDecodeSymbol(t *testing.T) {
	freqs := map[byte]uint32{0: 10, 1: 1, 2: 4, 255: 20}
	tree, err := BuildHuffmanTree(freqs)
	require.NoError(t, err)

	bc := NewBitCarry()
	order := []byte{0, 255, 1, 2, 0, 255}
	for _, sym := range order {
		bits, length, ok := tree.Lookup(sym)
		require.True(t, ok)
		require.NoError(t, bc.PushBits(bits, int(length)))
	}

	for _, want := range order {
		got, err := tree.decodeSymbol(bc)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestBuildHuffmanTree_FrequenciesReturnsInput(t *testing.T) {
	freqs := map[byte]uint32{'a': 1, 'b': 2}
	tree, err := BuildHuffmanTree(freqs)
	require.NoError(t, err)
	require.Equal(t, freqs, tree.Frequencies())
}
