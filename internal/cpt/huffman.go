package cpt

import (
	"errors"

	"github.com/dafo123/munbox/internal/bitreader"
)

// ErrCorrupt is returned for malformed code-length tables or decode failures
// in the CPT-specific LZH variant.
var ErrCorrupt = errors.New("cpt: corrupt LZH stream")

// huffNode is a canonical-Huffman tree node; a node with value >= 0 is a
// leaf. Mirrors lzsshuff's node shape, since both ports keep the same
// node-per-bit tree-walk style rather than cpt_pfx_build's table-lookup
// fast path — the table is a pure speed optimization over an identical bit
// sequence, so a plain walk decodes the same symbols.
type huffNode struct {
	child [2]*huffNode
	value int
}

func newHuffNode() *huffNode { return &huffNode{value: -1} }

func addHuffCode(t *huffNode, code uint32, codeLength, value int) error {
	for codeLength > 0 {
		codeLength--
		bit := (code >> uint(codeLength)) & 1
		if t.value >= 0 {
			return ErrCorrupt
		}
		if t.child[bit] == nil {
			t.child[bit] = newHuffNode()
		}
		t = t.child[bit]
	}
	if t.child[0] != nil || t.child[1] != nil {
		return ErrCorrupt
	}
	t.value = value
	return nil
}

// buildHuffTree assigns canonical codes to each symbol in ascending
// (length, index) order, ported from cpt_pfx_build's code-assignment loop
// (the table it builds alongside the tree is dropped; see huffNode's doc).
func buildHuffTree(lens []int) (*huffNode, error) {
	maxLen, count := 0, 0
	for _, l := range lens {
		if l > maxLen {
			maxLen = l
		}
		if l > 0 {
			count++
		}
	}
	tree := newHuffNode()
	if count == 0 {
		return tree, nil
	}
	code := 0
	completed := 0
	for length := 1; length <= maxLen && completed < count; length++ {
		for i, l := range lens {
			if l == length {
				if err := addHuffCode(tree, uint32(code), length, i); err != nil {
					return nil, err
				}
				code++
				completed++
			}
		}
		code <<= 1
	}
	return tree, nil
}

func huffDecode(t *huffNode, br *countingBits) (int, error) {
	n := t
	for n.value < 0 {
		bit, err := br.bits(1)
		if err != nil {
			return 0, err
		}
		next := n.child[bit]
		if next == nil {
			return 0, ErrCorrupt
		}
		n = next
	}
	return n.value, nil
}

// countingBits wraps bitreader.MSB with an absolute consumed-bit count, which
// the CPT LZH block-refresh logic (the 0x1FFF0 accounting counter) needs to
// tell how many bytes have passed since the current block's tables were
// read. bitreader.MSB itself only tracks a sliding window, not a cumulative
// position.
type countingBits struct {
	br       *bitreader.MSB
	consumed uint64
}

func newCountingBits(br *bitreader.MSB) *countingBits {
	return &countingBits{br: br}
}

func (c *countingBits) bits(n int) (uint, error) {
	v, err := c.br.Bits(n)
	if err != nil {
		return 0, err
	}
	c.consumed += uint64(n)
	return v, nil
}

// skip discards n bits unconditionally, matching cpt_br_skip: the C reader
// advances its bit position even past the end of buffered/available data,
// relying on the next real read to detect exhaustion.
func (c *countingBits) skip(n int) {
	c.br.Consume(n)
	c.consumed += uint64(n)
}

func (c *countingBits) byteAlign() {
	if rem := c.consumed % 8; rem != 0 {
		c.skip(8 - int(rem))
	}
}
