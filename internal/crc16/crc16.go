// Package crc16 implements the two CRC-16 variants used by the legacy Macintosh
// archive formats this module decodes.
//
// CCITT (poly 0x1021, init 0, MSB-first) is used by BinHex headers and forks
// and MacBinary headers — grounded on the tables in original_source/lib/
// layers/hqx.c and bin.c.
//
// Reflected (poly 0x8005 reflected to 0xA001, init 0, LSB-first table-driven) is
// used by StuffIt 5's header CRC and by every StuffIt fork CRC, classic and
// SIT5 alike (spec.md §4.6/§4.7; confirmed against sit_crc_update in
// original_source/lib/layers/sit.c, which never touches the CCITT table). The
// table and update loop are kept verbatim from the teacher's internal/sit/
// crc16.go, which already implemented this exact variant.
package crc16

// CCITT is the running state of a poly-0x1021 CRC-16 accumulator, MSB-first,
// initial value 0. Matches the HQX and MacBinary/XMODEM convention.
type CCITT uint16

func (c CCITT) Update(p []byte) CCITT {
	crc := uint16(c)
	for _, b := range p {
		crc ^= uint16(b) << 8
		for range 8 {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return CCITT(crc)
}

func (c CCITT) Byte(b byte) CCITT {
	return c.Update([]byte{b})
}

func (c CCITT) Value() uint16 { return uint16(c) }

var reflectedTable [256]uint16

func init() {
	for i := range uint16(256) {
		k := i
		for range 8 {
			if k&1 != 0 {
				k = (k >> 1) ^ 0xa001
			} else {
				k >>= 1
			}
		}
		reflectedTable[i] = k
	}
}

// Reflected is the running state of a poly-0x8005 (bit-reflected: 0xa001) CRC-16
// accumulator, LSB-first, initial value 0. Matches StuffIt 5's header CRC.
type Reflected uint16

func (c Reflected) Update(p []byte) Reflected {
	crc := uint16(c)
	for _, b := range p {
		crc = reflectedTable[byte(crc)^b] ^ crc>>8
	}
	return Reflected(crc)
}

// CheckZeroed computes the Reflected CRC of buf with the two bytes at
// buf[field:field+2] treated as zero (the "Aladdin convention" StuffIt 5 uses for
// its header CRC, spec.md §4.7/§9) and reports whether it matches the big-endian
// value stored at that field.
func CheckZeroed(buf []byte, field int) bool {
	want := uint16(buf[field])<<8 | uint16(buf[field+1])
	var crc Reflected
	for i, b := range buf {
		if i == field || i == field+1 {
			b = 0
		}
		crc = crc.Update([]byte{b})
	}
	return uint16(crc) == want
}
