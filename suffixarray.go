// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzshc contributors

package lzshc

import "sort"

// matchFinder answers "longest match at position p within the sliding
// window" queries (spec.md §4.3) using a suffix array built once over the
// whole input, plus its LCP array and a sparse-table range-minimum
// structure. Go's stdlib index/suffixarray is deliberately not used here:
// its Index type only exposes Lookup (exact substring search) and never
// exposes the sorted array, rank, or an LCP/RMQ structure, so it cannot
// answer a windowed longest-match query (see DESIGN.md).
type matchFinder struct {
	data []byte
	sa   []int32 // sa[r] = starting index of the suffix with rank r
	rank []int32 // rank[i] = rank of the suffix starting at i
	rmq  *rangeMin
}

func newMatchFinder(data []byte) *matchFinder {
	mf := &matchFinder{data: data}
	if len(data) == 0 {
		return mf
	}

	mf.sa, mf.rank = buildSuffixArray(data)
	lcp := buildLCP(data, mf.sa, mf.rank)
	mf.rmq = newRangeMin(lcp)
	return mf
}

// buildSuffixArray builds the suffix array of data using prefix-doubling
// rank construction: start by ranking suffixes on their first byte, then
// repeatedly double the compared prefix length, re-ranking by the pair
// (rank[i], rank[i+k]) until ranks are unique or the whole array has been
// covered. Each round is a comparison sort (sort.Slice), so construction is
// O(n log^2 n), not O(n log n).
func buildSuffixArray(data []byte) (sa, rank []int32) {
	n := len(data)
	sa = make([]int32, n)
	rank = make([]int32, n)
	for i := 0; i < n; i++ {
		sa[i] = int32(i)
		rank[i] = int32(data[i])
	}
	if n == 1 {
		// The doubling loop below never runs, so normalise the lone rank here.
		rank[0] = 0
	}

	tmp := make([]int32, n)
	for k := 1; k < n; k *= 2 {
		rankAt := func(i int32) int32 {
			if int(i) >= n {
				return -1
			}
			return rank[i]
		}
		less := func(a, b int32) bool {
			if rank[a] != rank[b] {
				return rank[a] < rank[b]
			}
			return rankAt(a+int32(k)) < rankAt(b+int32(k))
		}

		sort.Slice(sa, func(i, j int) bool { return less(sa[i], sa[j]) })

		tmp[sa[0]] = 0
		for i := 1; i < n; i++ {
			tmp[sa[i]] = tmp[sa[i-1]]
			if less(sa[i-1], sa[i]) {
				tmp[sa[i]]++
			}
		}
		copy(rank, tmp)

		if int(rank[sa[n-1]]) == n-1 {
			break
		}
	}

	return sa, rank
}

// buildLCP computes lcp[r] = the length of the common prefix of the
// suffixes at ranks r-1 and r (lcp[0] = 0), via Kasai's algorithm.
func buildLCP(data []byte, sa, rank []int32) []int32 {
	n := len(data)
	lcp := make([]int32, n)
	h := int32(0)
	for i := 0; i < n; i++ {
		if rank[i] == 0 {
			h = 0
			continue
		}

		j := int(sa[rank[i]-1])
		for i+int(h) < n && j+int(h) < n && data[i+int(h)] == data[j+int(h)] {
			h++
		}
		lcp[rank[i]] = h
		if h > 0 {
			h--
		}
	}
	return lcp
}

// rangeMin is a sparse table answering inclusive range-minimum queries over
// a fixed array in O(1), after O(n log n) preprocessing.
type rangeMin struct {
	a     []int32
	table [][]int32
}

func newRangeMin(a []int32) *rangeMin {
	n := len(a)
	r := &rangeMin{a: a}
	if n == 0 {
		return r
	}

	levels := 1
	for (1 << levels) <= n {
		levels++
	}
	r.table = make([][]int32, levels)
	r.table[0] = append([]int32(nil), a...)
	for k := 1; k < levels; k++ {
		half := 1 << (k - 1)
		size := n - (1 << k) + 1
		if size < 0 {
			size = 0
		}
		row := make([]int32, size)
		for i := 0; i < size; i++ {
			left := r.table[k-1][i]
			right := r.table[k-1][i+half]
			if left < right {
				row[i] = left
			} else {
				row[i] = right
			}
		}
		r.table[k] = row
	}
	return r
}

// query returns min(a[lo..hi]) inclusive. Caller guarantees 0 <= lo <= hi < len(a).
func (r *rangeMin) query(lo, hi int) int32 {
	if lo == hi {
		return r.a[lo]
	}
	length := hi - lo + 1
	k := 0
	for (1 << (k + 1)) <= length {
		k++
	}
	left := r.table[k][lo]
	right := r.table[k][hi-(1<<k)+1]
	if left < right {
		return left
	}
	return right
}

// longestMatch returns the longest match of data[pos:] against
// data[pos-searchWindow+1 : pos], capped at lookAhead and len(data)-pos, per
// spec.md §4.3. length is 0 (with distance 0) if no candidate reaches
// minLen. Ties on length are broken by the smallest distance.
//
// The scan walks outward from pos's rank in both directions, maintaining a
// running minimum of the LCP values crossed so far — which is exactly the
// LCP between pos's suffix and the suffix at the current rank. That running
// minimum is monotonically non-increasing as the scan moves further away,
// so once it drops below the best length found so far, no further candidate
// in that direction can improve on it and the scan stops — a true bound,
// not a heuristic cutoff, mirroring the teacher's bounded hash-chain walk
// (slidingWindowDict.MaxChain) without sacrificing match-length optimality.
func (m *matchFinder) longestMatch(pos int) (length, distance int) {
	n := len(m.data)
	if n == 0 || pos >= n || m.rmq == nil {
		return 0, 0
	}

	maxLen := n - pos
	if maxLen > lookAhead {
		maxLen = lookAhead
	}

	r := int(m.rank[pos])
	bestLen, bestDist := 0, 0

	consider := func(otherRank, lcpAtLeast int) {
		i := int(m.sa[otherRank])
		if i >= pos {
			return
		}
		dist := pos - i
		if dist > searchWindow-1 {
			return
		}

		l := lcpAtLeast
		if l > maxLen {
			l = maxLen
		}
		if l < minLen {
			return
		}
		if l > bestLen || (l == bestLen && dist < bestDist) {
			bestLen, bestDist = l, dist
		}
	}

	runMin := -1
	for j := r - 1; j >= 0; j-- {
		v := int(m.rmq.a[j+1])
		if runMin == -1 || v < runMin {
			runMin = v
		}
		if runMin == 0 {
			break
		}
		consider(j, runMin)
		if runMin < bestLen {
			break
		}
	}

	runMin = -1
	for j := r + 1; j < n; j++ {
		v := int(m.rmq.a[j])
		if runMin == -1 || v < runMin {
			runMin = v
		}
		if runMin == 0 {
			break
		}
		consider(j, runMin)
		if runMin < bestLen {
			break
		}
	}

	return bestLen, bestDist
}
