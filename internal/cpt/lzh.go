package cpt

import (
	"io"

	"github.com/dafo123/munbox/internal/bitreader"
	"github.com/dafo123/munbox/layer"
)

const lzhWindowSize = 8192
const lzhWindowMask = lzhWindowSize - 1
const lzhRefreshThreshold = 0x1FFF0

// lzhReader decodes the CPT-specific LZH variant (spec.md §4.5): an 8 KiB
// sliding window, three canonical-Huffman tables (256-symbol literal,
// 64-symbol length, 128-symbol offset) refreshed whenever the accounting
// counter reaches 0x1FFF0. Ported from cpt_lzh_core_t/cpt_lzh_build_tables/
// cpt_lzhs_next in original_source/lib/layers/cpt.c.
type lzhReader struct {
	bits *countingBits

	win [lzhWindowSize]byte
	pos uint32

	blockCount     uint32
	blockStartByte uint64

	lit, lenT, offT *huffNode
	tablesBuilt     bool

	pending    []byte
	pendingPos int
}

func newLZHReader(src io.ByteReader) *lzhReader {
	return &lzhReader{bits: newCountingBits(bitreader.NewMSB(src))}
}

// readLenTable reads one code-length array: an 8-bit byte count followed by
// that many bytes, each holding two 4-bit lengths high-nibble-first.
// Ported from cpt_lzh_build_tables's three identical unrolled blocks.
func (r *lzhReader) readLenTable(total int) ([]int, error) {
	nb, err := r.bits.bits(8)
	if err != nil {
		return nil, err
	}
	if int(nb)*2 > total {
		return nil, ErrCorrupt
	}
	lens := make([]int, total)
	for i := 0; i < int(nb); i++ {
		v, err := r.bits.bits(8)
		if err != nil {
			return nil, err
		}
		lens[2*i] = int(v >> 4)
		lens[2*i+1] = int(v & 0x0F)
	}
	return lens, nil
}

func (r *lzhReader) buildTables() error {
	litLens, err := r.readLenTable(256)
	if err != nil {
		return err
	}
	lenLens, err := r.readLenTable(64)
	if err != nil {
		return err
	}
	offLens, err := r.readLenTable(128)
	if err != nil {
		return err
	}
	if r.lit, err = buildHuffTree(litLens); err != nil {
		return err
	}
	if r.lenT, err = buildHuffTree(lenLens); err != nil {
		return err
	}
	if r.offT, err = buildHuffTree(offLens); err != nil {
		return err
	}
	r.blockCount = 0
	r.blockStartByte = r.bits.consumed / 8
	r.tablesBuilt = true
	return nil
}

func (r *lzhReader) refreshIfDue() error {
	if r.blockCount < lzhRefreshThreshold {
		return nil
	}
	r.bits.byteAlign()
	consumedSinceStart := r.bits.consumed/8 - r.blockStartByte
	if consumedSinceStart%2 == 1 {
		r.bits.skip(24)
	} else {
		r.bits.skip(16)
	}
	r.blockCount = 0
	r.blockStartByte = r.bits.consumed / 8
	r.tablesBuilt = false
	return nil
}

// next produces the next decoded byte, ported from cpt_lzhs_next.
func (r *lzhReader) next() (byte, error) {
	if r.pendingPos < len(r.pending) {
		b := r.pending[r.pendingPos]
		r.pendingPos++
		r.win[r.pos&lzhWindowMask] = b
		r.pos++
		if r.pendingPos == len(r.pending) {
			r.pending = nil
		}
		return b, nil
	}

	for {
		if err := r.refreshIfDue(); err != nil {
			return 0, err
		}
		if !r.tablesBuilt {
			if err := r.buildTables(); err != nil {
				return 0, err
			}
		}

		flag, err := r.bits.bits(1)
		if err != nil {
			return 0, err
		}
		if flag != 0 {
			r.blockCount += 2
			sym, err := huffDecode(r.lit, r.bits)
			if err != nil {
				return 0, err
			}
			b := byte(sym)
			r.win[r.pos&lzhWindowMask] = b
			r.pos++
			return b, nil
		}

		r.blockCount += 3
		lsym, err := huffDecode(r.lenT, r.bits)
		if err != nil {
			return 0, err
		}
		osym, err := huffDecode(r.offT, r.bits)
		if err != nil {
			return 0, err
		}
		low6, err := r.bits.bits(6)
		if err != nil {
			return 0, err
		}
		offset := uint32(osym)<<6 | uint32(low6)
		mlen := uint32(lsym)
		if mlen == 0 {
			return 0, layer.NewError(layer.KindTruncatedInput, ErrCorrupt, "CPT LZH: zero-length match")
		}
		start := r.pos - offset
		first := r.win[start&lzhWindowMask]
		r.win[r.pos&lzhWindowMask] = first
		r.pos++
		if mlen > 1 {
			pending := make([]byte, mlen-1)
			for i := uint32(1); i < mlen; i++ {
				pending[i-1] = r.win[(start+i)&lzhWindowMask]
			}
			r.pending = pending
			r.pendingPos = 0
		}
		return first, nil
	}
}

// Read implements io.Reader over next(), one byte loop at a time matching
// the other streaming decoders in this module.
func (r *lzhReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		b, err := r.next()
		if err != nil {
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		p[n] = b
		n++
	}
	return n, nil
}
