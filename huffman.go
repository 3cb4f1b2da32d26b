// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzshc contributors

package lzshc

import "container/heap"

// huffCode is a leaf's assigned canonical-ish prefix code: bits holds the
// code value right-aligned, MSB-first when length bits are considered.
type huffCode struct {
	bits   uint64
	length uint8
}

// huffNode is one node of the Huffman tree, stored in a flat arena and
// addressed by index rather than pointer (spec.md §9's arena guidance) so
// the tree is trivially copyable and needs no GC-visible cycles. left/right
// are -1 for a leaf.
type huffNode struct {
	freq   uint32
	symbol byte
	left   int32
	right  int32
}

func (n *huffNode) isLeaf() bool { return n.left < 0 && n.right < 0 }

// HuffmanTree is a binary prefix-code tree built from a symbol->frequency
// map (spec.md §4.2). Every non-zero-frequency symbol becomes a leaf; ties
// in the merge order are broken by ascending symbol value for determinism.
type HuffmanTree struct {
	nodes []huffNode
	root  int32
	codes map[byte]huffCode
	freqs map[byte]uint32
}

// pqItem is one entry of the construction priority queue: a node index plus
// the (frequency, symbol) key it sorts by. Internal nodes use symbol 0,
// matching spec.md §3's "Priority ordering" rule.
type pqItem struct {
	node   int32
	freq   uint32
	symbol byte
}

type nodeHeap []pqItem

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].freq != h[j].freq {
		return h[i].freq < h[j].freq
	}
	return h[i].symbol < h[j].symbol
}
func (h nodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x any)        { *h = append(*h, x.(pqItem)) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// BuildHuffmanTree builds a canonical-ish Huffman tree from freqs (spec.md
// §4.2). Symbols must have strictly positive frequency; a single-symbol
// alphabet is padded with a synthetic second leaf (frequency 1, and a symbol
// value chosen distinct from the sole real symbol) so the tree always has
// at least two leaves and every real symbol gets at least a 1-bit code.
// Building from an empty map returns EmptyAlphabetError.
func BuildHuffmanTree(freqs map[byte]uint32) (*HuffmanTree, error) {
	if len(freqs) == 0 {
		return nil, &EmptyAlphabetError{}
	}

	t := &HuffmanTree{
		freqs: make(map[byte]uint32, len(freqs)),
		codes: make(map[byte]huffCode, len(freqs)),
	}
	for s, f := range freqs {
		t.freqs[s] = f
	}

	var onlySymbol byte
	h := make(nodeHeap, 0, len(freqs)+1)
	// Leaves enter the heap in ascending symbol order, so the merge sequence
	// (including ties between equal-frequency internal nodes) does not depend
	// on map iteration order.
	for _, s := range sortedSymbols(freqs) {
		f := freqs[s]
		onlySymbol = s
		idx := int32(len(t.nodes))
		t.nodes = append(t.nodes, huffNode{freq: f, symbol: s, left: -1, right: -1})
		h = append(h, pqItem{node: idx, freq: f, symbol: s})
	}

	if len(freqs) == 1 {
		// Synthetic leaf so the tree has >= 2 leaves per spec.md §3. The
		// symbol must differ from onlySymbol, or the two leaves collide on
		// the same map key in assignCodes and one code silently vanishes.
		syntheticSymbol := byte(0)
		if syntheticSymbol == onlySymbol {
			syntheticSymbol = 1
		}
		idx := int32(len(t.nodes))
		t.nodes = append(t.nodes, huffNode{freq: 1, symbol: syntheticSymbol, left: -1, right: -1})
		h = append(h, pqItem{node: idx, freq: 1, symbol: syntheticSymbol})
	}

	heap.Init(&h)
	for h.Len() > 1 {
		left := heap.Pop(&h).(pqItem)
		right := heap.Pop(&h).(pqItem)

		idx := int32(len(t.nodes))
		t.nodes = append(t.nodes, huffNode{
			freq:  left.freq + right.freq,
			left:  left.node,
			right: right.node,
		})
		heap.Push(&h, pqItem{node: idx, freq: left.freq + right.freq, symbol: 0})
	}

	root := heap.Pop(&h).(pqItem)
	t.root = root.node
	t.assignCodes()
	return t, nil
}

// assignCodes walks the arena from the root, appending 0 for a left
// descent and 1 for a right descent, recording (code, length) at each leaf.
func (t *HuffmanTree) assignCodes() {
	type frame struct {
		node int32
		bits uint64
		len  uint8
	}
	stack := []frame{{node: t.root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[top.node]
		if n.isLeaf() {
			length := top.len
			if length == 0 {
				length = 1 // a single-node tree (shouldn't occur: we always pad to >=2 leaves)
			}
			t.codes[n.symbol] = huffCode{bits: top.bits, length: length}
			continue
		}

		stack = append(stack, frame{node: n.left, bits: top.bits << 1, len: top.len + 1})
		stack = append(stack, frame{node: n.right, bits: (top.bits << 1) | 1, len: top.len + 1})
	}
}

// Lookup returns the code assigned to symbol and whether it exists.
func (t *HuffmanTree) Lookup(symbol byte) (bits uint64, length uint8, ok bool) {
	c, ok := t.codes[symbol]
	return c.bits, c.length, ok
}

// Root returns the arena index of the tree's root node.
func (t *HuffmanTree) Root() int32 { return t.root }

// Frequencies returns the frequency map the tree was built from.
func (t *HuffmanTree) Frequencies() map[byte]uint32 { return t.freqs }

// decodeSymbol walks the tree one bit at a time, consuming bits from bc,
// until it reaches a leaf, and returns that leaf's symbol.
func (t *HuffmanTree) decodeSymbol(bc *BitCarry) (byte, error) {
	idx := t.root
	for {
		n := &t.nodes[idx]
		if n.isLeaf() {
			return n.symbol, nil
		}

		bit, err := bc.ConsumeBits(1)
		if err != nil {
			return 0, err
		}
		if bit == 0 {
			idx = n.left
		} else {
			idx = n.right
		}
	}
}
