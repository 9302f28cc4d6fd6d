// Package bitreader provides the two bit-accumulator conventions the legacy
// Macintosh compressors need: an LSB-first reader (the bit order of LZW/LZC code
// words) and an MSB-first reader, used by Compact Pro's LZH variant and the
// Arsenic decoder (method 15). internal/lzw (method 2) and internal/lzsshuff
// (method 13) each keep their own bit loader.
//
// Both use the "marker bit" technique from the teacher's internal/sit/bitreader.go:
// instead of tracking a separate bit count, a sentinel 1-bit is kept one position
// past the last valid bit, and math/bits.LeadingZeros/TrailingZeros recovers the
// count cheaply. Generalized here into stateful readers with explicit bit-count
// requests instead of the teacher's bare refill functions.
package bitreader

import (
	"errors"
	"io"
	"math/bits"
)

// ErrShortRead is returned when a request for n bits runs past the end of the
// underlying byte source with no more bits available to satisfy it.
var ErrShortRead = errors.New("bitreader: not enough bits available")

const (
	initialLSB uint = 1
	initialMSB uint = 1 << (bits.UintSize - 1)
)

// LSB accumulates bytes least-significant-bit first, the bit order of LZW code
// words.
type LSB struct {
	src  io.ByteReader
	buf  uint
	eof  bool
}

func NewLSB(src io.ByteReader) *LSB {
	return &LSB{src: src, buf: initialLSB}
}

func (r *LSB) fill() {
	lz := bits.LeadingZeros(r.buf)
	if lz <= 9 {
		return
	}
	goodbits := bits.UintSize - lz - 1
	r.buf &^= 1 << goodbits
	for {
		b, err := r.src.ReadByte()
		if err != nil {
			r.eof = true
			break
		}
		r.buf |= uint(b) << goodbits
		goodbits += 8
		if goodbits+10 > bits.UintSize {
			break
		}
	}
	r.buf |= 1 << goodbits
}

// Bits returns the next n (<=16) bits, LSB-first, as the low bits of the result.
func (r *LSB) Bits(n int) (uint, error) {
	r.fill()
	avail := bits.UintSize - bits.LeadingZeros(r.buf) - 1
	if avail < n {
		if r.eof {
			return 0, ErrShortRead
		}
		r.fill()
		avail = bits.UintSize - bits.LeadingZeros(r.buf) - 1
		if avail < n {
			return 0, ErrShortRead
		}
	}
	val := (r.buf &^ (1 << avail)) & (1<<n - 1)
	r.buf >>= n
	return val, nil
}

// MSB accumulates bytes most-significant-bit first, as used by Compact Pro's LZH
// and the Arsenic decoder.
type MSB struct {
	src io.ByteReader
	buf uint
	eof bool
}

func NewMSB(src io.ByteReader) *MSB {
	return &MSB{src: src, buf: initialMSB}
}

func (r *MSB) fill() {
	tz := bits.TrailingZeros(r.buf)
	if tz < 8 || tz == bits.UintSize {
		return
	}
	r.buf &^= 1 << tz
	for {
		b, err := r.src.ReadByte()
		if err != nil {
			r.eof = true
			break
		}
		tz -= 8
		r.buf |= uint(b) << (tz + 1)
		if tz < 8 {
			break
		}
	}
	r.buf |= 1 << tz
}

// Peek returns the top n bits currently buffered without consuming them,
// filling first. Used for canonical-Huffman tree descent.
func (r *MSB) Peek(n int) (uint, error) {
	r.fill()
	used := bits.UintSize - bits.TrailingZeros(r.buf) - 1
	if used < n {
		if r.eof {
			// pad with zero bits past EOF, matching the C decoder's
			// behavior of reading a zero-extended final word.
			return (r.buf >> (bits.UintSize - n)) & (1<<n - 1), nil
		}
		return 0, ErrShortRead
	}
	return (r.buf >> (bits.UintSize - n)) & (1<<n - 1), nil
}

// Consume discards n previously peeked bits.
func (r *MSB) Consume(n int) {
	r.buf <<= n
	if r.buf == 0 {
		r.buf = initialMSB
	}
}

// Bits reads and consumes the next n (<=16) bits, MSB-first.
func (r *MSB) Bits(n int) (uint, error) {
	v, err := r.Peek(n)
	if err != nil {
		return 0, err
	}
	r.Consume(n)
	return v, nil
}
