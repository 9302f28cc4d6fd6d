// Copyright (c) Elliot Nunn

// This library is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 2.1 of the License, or (at your option) any later version.

// This library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.

// Package lzw decodes the variable-width LZW stream used by StuffIt classic's
// compression method 2 ("LZC", the UNIX compress algorithm with a 9-14 bit code
// range and a reserved clear code). Adapted from the teacher's
// internal/sit/lzc.go, itself ported from the XAD library's UNIX-compress reader;
// the code-table bookkeeping and streaming io.Pipe shape are kept as-is, with the
// exported surface generalized from a package-private helper to a reusable decoder.
package lzw

import (
	"bufio"
	"errors"
	"io"
)

// ErrCorrupt is returned when the code stream contains a code that could not
// have been assigned yet.
var ErrCorrupt = errors.New("lzw: illegal code in compressed stream")

// NewReader decodes an LZC stream read from src, producing exactly dstSize bytes
// of output (or fewer, with an error, if src is exhausted first). The returned
// ReadCloser streams the decode on a goroutine; Close must be called to release it
// even after reading to EOF.
func NewReader(src io.Reader, dstSize uint32) io.ReadCloser {
	pr, pw := io.Pipe()
	go decode(pw, src, dstSize)
	return pr
}

func decode(dst *io.PipeWriter, src io.Reader, dstSize uint32) {
	var reterr error
	br := bufio.NewReaderSize(src, 4096)
	bw := bufio.NewWriterSize(dst, 4096)
	defer func() {
		bw.Flush()
		dst.CloseWithError(reterr)
	}()

	var stack []byte
	const maxBits = 14
	const maxMaxCode = 1 << maxBits
	nbits := 9
	maxCode := uint16(1<<nbits - 1)
	freeEnt := uint16(257)
	clearFlag := false

	prefixTab := make([]uint16, maxMaxCode)
	suffixTab := make([]byte, maxMaxCode)
	for i := range 256 {
		suffixTab[i] = byte(i)
	}

	var buffer [16]byte // enough room for little-endian loader loads
	boffset, bsize := 0, 0

	getcode := func() (uint16, bool) {
		needNewBuf := boffset >= bsize
		if freeEnt > maxCode {
			nbits++
			if nbits == maxBits {
				maxCode = maxMaxCode
			} else {
				maxCode = 1<<nbits - 1
			}
			needNewBuf = true
		}
		if clearFlag {
			nbits = 9
			maxCode = 1<<nbits - 1
			clearFlag = false
			needNewBuf = true
		}

		if needNewBuf {
			n, err := io.ReadFull(br, buffer[:nbits])
			if err == io.ErrUnexpectedEOF {
				err = io.EOF
			}
			reterr = err
			if n == 0 {
				return 0, false
			}
			boffset = 0
			bsize = n*8 - (nbits - 1) // avoid reading past valid bits
		}

		byteoffset := boffset / 8
		bitoffset := boffset % 8
		code := ((uint32(buffer[byteoffset]) |
			uint32(buffer[byteoffset+1])<<8 |
			uint32(buffer[byteoffset+2])<<16) >> bitoffset) & (1<<nbits - 1)
		boffset += nbits
		return uint16(code), true
	}

	oldcode, ok := getcode()
	if !ok {
		return
	}
	finchar := byte(oldcode)
	if err := bw.WriteByte(finchar); err != nil {
		return
	}
	dstSize--
	if dstSize == 0 {
		return
	}

	for {
		code, ok := getcode()
		if !ok {
			return
		}

		if code == 256 {
			clear(prefixTab[:256])
			clearFlag = true
			freeEnt = 256
			code, ok = getcode()
			if !ok {
				return
			}
		}
		incode := code

		if code >= freeEnt {
			if code > freeEnt {
				bw.Flush()
				dst.CloseWithError(ErrCorrupt)
				return
			}
			stack = append(stack, finchar)
			code = oldcode
		}

		for code >= 256 {
			stack = append(stack, suffixTab[code])
			code = prefixTab[code]
		}
		finchar = suffixTab[code]
		stack = append(stack, finchar)

		for i := len(stack) - 1; i >= 0; i-- {
			if err := bw.WriteByte(stack[i]); err != nil {
				return
			}
			dstSize--
			if dstSize == 0 {
				return
			}
		}
		stack = stack[:0]

		code = freeEnt
		if code < maxMaxCode {
			prefixTab[code] = uint16(oldcode)
			suffixTab[code] = finchar
			freeEnt = code + 1
		}
		oldcode = incode
	}
}
