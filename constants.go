// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzshc contributors

package lzshc

// Match reference bounds (spec.md §3): length ∈ [minLen, minLen+2^lenBits-1],
// distance ∈ [minDist, minDist+2^distBits-1].
const (
	lenBits  = 8
	minLen   = 4
	maxLen   = minLen + (1 << lenBits) - 1 // 259

	distBits = 16
	minDist  = 1
	maxDist  = minDist + (1 << distBits) - 1 // 65536
)

// Sliding-window match finder bounds (spec.md §4.3). searchWindow is
// SEARCH=65537 from spec.md §4.3, one more than maxDist so the valid
// distance range [1, searchWindow-1] covers the full [minDist, maxDist]
// match-reference bound from §3.
const (
	lookAhead    = maxLen      // 259
	searchWindow = maxDist + 1 // 65537
)

// Reference token small-field widths (spec.md §4.4).
const (
	refSmallLenBits  = 4  // ref_length fits here when ref_length < 16
	refSmallDistBits = 10 // offset fits here when offset < 1024
	refSmallLenMax   = 1 << refSmallLenBits  // 16
	refSmallDistMax  = 1 << refSmallDistBits // 1024
)

// maxFreqBitsLength is MAX_FREQUENCY_BITS_LENGTH from spec.md §6/§9: the
// fixed field width, in bits, of the header field that itself carries the
// per-frequency field width. 5 bits allows frequencies up to 2^31-1.
const maxFreqBitsLength = 5
