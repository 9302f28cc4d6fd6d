// Package hqx decodes BinHex 4.0 (.hqx) streams: 7-bit ASCII armor over a
// 64-character alphabet, RLE90-compressed, wrapping a CRC-protected header
// and a two-fork (data, resource) payload.
//
// Ported from original_source/lib/layers/hqx.c's munbox_new_hqx_layer/
// hqx_layer_read/hqx_layer_open, with the 6-bit symbol assembly
// (decode_one_byte's switch on a 4-step sequence counter) split out into
// sixBitAssembler and the RLE90 unescaping delegated to internal/rle90's
// HQXReader, which already implements the identical 0x90-marker state
// machine decode_one_byte fuses inline. CRC-16/CCITT accumulation uses
// internal/crc16.CCITT, the same table as hqx.c's crc16_ccitt_update.
package hqx

import (
	"bufio"
	"bytes"
	"io"

	"github.com/dafo123/munbox/internal/crc16"
	"github.com/dafo123/munbox/internal/rle90"
	"github.com/dafo123/munbox/layer"
)

const signature = "(This file must be converted with BinHex"

// alphabet is the 64-character BinHex encoding table; the decode table maps
// a byte back to its 6-bit value, or 0xFF if the byte is not in the alphabet.
const alphabet = "!\"#$%&'()*+,-012345689@ABCDEFGHIJKLMNPQRSTUVXYZ[`abcdefhijklmpqr"

var decodeTable [256]byte

func init() {
	for i := range decodeTable {
		decodeTable[i] = 0xFF
	}
	for i := 0; i < len(alphabet); i++ {
		decodeTable[alphabet[i]] = byte(i)
	}
}

// sixBitAssembler turns the whitespace-tolerant, colon-terminated 6-bit
// armored character stream into assembled 8-bit bytes, four symbols at a
// time. Matches get_next_encoded_char + decode_one_byte's symbol-assembly
// switch, minus the RLE90 unescaping (handled by the caller).
type sixBitAssembler struct {
	src     *bufio.Reader
	seq     int
	pending byte
	done    bool
}

func newSixBitAssembler(src *bufio.Reader) *sixBitAssembler {
	return &sixBitAssembler{src: src}
}

func (a *sixBitAssembler) nextChar() (byte, error) {
	for {
		c, err := a.src.ReadByte()
		if err != nil {
			return 0, io.EOF
		}
		switch c {
		case ' ', '\t', '\r', '\n', '\v', '\f':
			continue
		case ':':
			return 0, io.EOF
		default:
			return c, nil
		}
	}
}

func (a *sixBitAssembler) Read(p []byte) (int, error) {
	if a.done {
		return 0, io.EOF
	}
	n := 0
	for n < len(p) {
		c, err := a.nextChar()
		if err != nil {
			a.done = true
			if n > 0 {
				return n, nil
			}
			return 0, io.EOF
		}
		symbol := decodeTable[c]
		if symbol > 63 {
			a.done = true
			return n, layer.NewError(layer.KindTruncatedInput, nil, "invalid character in BinHex stream")
		}

		switch a.seq {
		case 0:
			a.pending = symbol
			a.seq = 1
		case 1:
			p[n] = (a.pending << 2) | (symbol >> 4)
			a.pending = symbol
			a.seq = 2
			n++
		case 2:
			p[n] = (a.pending&0x0F)<<4 | (symbol >> 2)
			a.pending = symbol
			a.seq = 3
			n++
		case 3:
			p[n] = (a.pending&0x03)<<6 | symbol
			a.seq = 0
			n++
		}
	}
	return n, nil
}

type state int

const (
	stateData state = iota
	stateRsrc
	stateDone
)

// Layer streams the decoded data and resource forks of a BinHex 4.0 file.
// Decoding is single-pass: once read, the byte stream cannot be rewound.
type Layer struct {
	under layer.Layer
	br    *rle90.HQXReader

	filename    string
	typ         uint32
	creator     uint32
	finderFlags uint16

	dataRem, rsrcRem uint32
	dataCRC, rsrcCRC crc16.CCITT

	st         state
	iterating  bool
	opened     bool
}

// Open inspects in for the BinHex signature and, if present, decodes its
// header and returns a ready-to-iterate *Layer. Returns (nil, nil) if in
// does not look like BinHex, per the layer.Factory decline contract.
func Open(in layer.Layer) (layer.Layer, error) {
	if _, err := in.Open(layer.OpenFirst); err != nil {
		return nil, err
	}
	probe := make([]byte, 256)
	n, err := in.Read(probe)
	if err != nil && err != io.EOF {
		return nil, err
	}
	recognized := n >= len(signature) && bytes.Contains(probe[:n], []byte(signature))

	if _, err := in.Open(layer.OpenFirst); err != nil {
		return nil, err
	}
	if !recognized {
		return nil, nil
	}

	br := bufio.NewReader(in)
	found := false
	for {
		c, rerr := br.ReadByte()
		if rerr != nil {
			break
		}
		if c == ':' {
			found = true
			break
		}
	}
	if !found {
		return nil, layer.NewError(layer.KindTruncatedInput, nil, "BinHex signature found, but no data start marker ':'")
	}

	l := &Layer{
		under: in,
		br:    rle90.NewHQXReader(newSixBitAssembler(br)),
	}

	nameLen, err := l.decodeOne()
	if err != nil {
		return nil, err
	}

	headerDataLen := int(nameLen) + 1 + 4 + 4 + 2 + 4 + 4
	header := make([]byte, 1, headerDataLen+2+1)
	header[0] = nameLen
	var hcrc crc16.CCITT
	hcrc = hcrc.Byte(nameLen)

	for i := 0; i < headerDataLen+2; i++ {
		b, err := l.decodeOne()
		if err != nil {
			return nil, err
		}
		header = append(header, b)
		hcrc = hcrc.Byte(b)
	}
	if hcrc.Value() != 0 {
		return nil, layer.NewError(layer.KindChecksumMismatch, nil, "BinHex header CRC mismatch")
	}

	l.filename = string(header[1 : 1+int(nameLen)])
	p := header[1+int(nameLen)+1:]
	l.typ = be32(p)
	l.creator = be32(p[4:])
	l.finderFlags = be16(p[8:])
	l.dataRem = be32(p[10:])
	l.rsrcRem = be32(p[14:])

	l.st = stateData
	if l.dataRem == 0 {
		l.st = stateRsrc
	}
	return l, nil
}

func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func be16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}

func (l *Layer) decodeOne() (byte, error) {
	var b [1]byte
	n, err := l.br.Read(b[:])
	if n == 1 {
		return b[0], nil
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return 0, layer.NewError(layer.KindTruncatedInput, err, "unexpected end of BinHex stream")
}

func (l *Layer) info(fork layer.ForkKind, length uint32) *layer.FileInfo {
	return &layer.FileInfo{
		Filename:    l.filename,
		Type:        l.typ,
		Creator:     l.creator,
		FinderFlags: l.finderFlags,
		Length:      length,
		ForkKind:    fork,
		HasMetadata: true,
	}
}

func (l *Layer) Open(mode layer.OpenMode) (*layer.FileInfo, error) {
	l.iterating = true
	l.opened = true

	if mode == layer.OpenFirst {
		switch {
		case l.st != stateDone && l.dataRem > 0:
			return l.info(layer.ForkData, l.dataRem), nil
		case l.st != stateDone && l.rsrcRem > 0:
			l.st = stateRsrc
			return l.info(layer.ForkResource, l.rsrcRem), nil
		default:
			return nil, nil
		}
	}

	// OpenNext.
	if l.st == stateData && l.rsrcRem > 0 {
		for l.dataRem > 0 {
			b, err := l.decodeOne()
			if err != nil {
				return nil, err
			}
			l.dataCRC = l.dataCRC.Byte(b)
			l.dataRem--
		}
		if err := l.checkForkCRC(&l.dataCRC); err != nil {
			return nil, err
		}
		l.st = stateRsrc
		return l.info(layer.ForkResource, l.rsrcRem), nil
	}
	if l.st == stateDone && l.rsrcRem > 0 {
		l.st = stateRsrc
		return l.info(layer.ForkResource, l.rsrcRem), nil
	}
	return nil, nil
}

func (l *Layer) checkForkCRC(crc *crc16.CCITT) error {
	for i := 0; i < 2; i++ {
		b, err := l.decodeOne()
		if err != nil {
			return err
		}
		*crc = crc.Byte(b)
	}
	if crc.Value() != 0 {
		return layer.NewError(layer.KindChecksumMismatch, nil, "BinHex fork CRC mismatch")
	}
	return nil
}

func (l *Layer) Read(p []byte) (int, error) {
	if !l.opened {
		return 0, layer.ErrReadBeforeOpen
	}
	if l.st == stateDone || len(p) == 0 {
		return 0, io.EOF
	}

	n := 0
	for n < len(p) {
		switch l.st {
		case stateData:
			if l.dataRem == 0 {
				if err := l.checkForkCRC(&l.dataCRC); err != nil {
					return n, err
				}
				if l.iterating {
					l.st = stateDone
					return n, io.EOF
				}
				l.st = stateRsrc
				continue
			}
			b, err := l.decodeOne()
			if err != nil {
				return n, err
			}
			p[n] = b
			l.dataCRC = l.dataCRC.Byte(b)
			n++
			l.dataRem--

		case stateRsrc:
			if l.rsrcRem == 0 {
				if l.rsrcCRC.Value() != 0 {
					if err := l.checkForkCRC(&l.rsrcCRC); err != nil {
						return n, err
					}
				}
				l.st = stateDone
				return n, io.EOF
			}
			b, err := l.decodeOne()
			if err != nil {
				return n, err
			}
			p[n] = b
			l.rsrcCRC = l.rsrcCRC.Byte(b)
			n++
			l.rsrcRem--

		default:
			return n, io.EOF
		}
	}
	return n, nil
}

func (l *Layer) Close() error {
	return l.under.Close()
}
