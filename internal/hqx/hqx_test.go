package hqx

import (
	"io"
	"testing"

	"github.com/dafo123/munbox/internal/crc16"
	"github.com/dafo123/munbox/layer"
)

// encode6 packs bytes into the BinHex 6-bit alphabet, 3 input bytes per 4
// output characters (no padding handling needed for exact multiples of 3,
// which is all this test needs).
func encode6(data []byte) []byte {
	var out []byte
	for i := 0; i < len(data); i += 3 {
		var b0, b1, b2 byte
		b0 = data[i]
		if i+1 < len(data) {
			b1 = data[i+1]
		}
		if i+2 < len(data) {
			b2 = data[i+2]
		}
		out = append(out,
			alphabet[b0>>2],
			alphabet[(b0&0x03)<<4|b1>>4],
			alphabet[(b1&0x0F)<<2|b2>>6],
			alphabet[b2&0x3F],
		)
	}
	return out
}

func buildHQX(t *testing.T, name string, typ, creator uint32, flags uint16, data, rsrc []byte) []byte {
	t.Helper()
	var header []byte
	header = append(header, byte(len(name)))
	header = append(header, name...)
	header = append(header, 0)
	header = append(header, byte(typ>>24), byte(typ>>16), byte(typ>>8), byte(typ))
	header = append(header, byte(creator>>24), byte(creator>>16), byte(creator>>8), byte(creator))
	header = append(header, byte(flags>>8), byte(flags))
	header = append(header, byte(len(data)>>24), byte(len(data)>>16), byte(len(data)>>8), byte(len(data)))
	header = append(header, byte(len(rsrc)>>24), byte(len(rsrc)>>16), byte(len(rsrc)>>8), byte(len(rsrc)))

	var hcrc crc16.CCITT
	for _, b := range header {
		hcrc = hcrc.Byte(b)
	}
	header = append(header, byte(hcrc.Value()>>8), byte(hcrc.Value()))

	var dataCRC crc16.CCITT
	for _, b := range data {
		dataCRC = dataCRC.Byte(b)
	}
	dataBlock := append(append([]byte{}, data...), byte(dataCRC.Value()>>8), byte(dataCRC.Value()))

	var body []byte
	body = append(body, header...)
	body = append(body, dataBlock...)
	if len(rsrc) > 0 {
		var rsrcCRC crc16.CCITT
		for _, b := range rsrc {
			rsrcCRC = rsrcCRC.Byte(b)
		}
		body = append(body, rsrc...)
		body = append(body, byte(rsrcCRC.Value()>>8), byte(rsrcCRC.Value()))
	}

	encoded := encode6(body)

	var out []byte
	out = append(out, []byte(signature+" (...)\n\n")...)
	out = append(out, ':')
	out = append(out, encoded...)
	out = append(out, ':')
	return out
}

func TestHQXRecognizesSignatureAndDecodesForks(t *testing.T) {
	data := []byte("Hello")
	raw := buildHQX(t, "A", 0x54455854, 0x74747874, 0, data, nil)

	src := layer.NewMem(raw)
	l, err := Open(src)
	if err != nil {
		t.Fatal(err)
	}
	if l == nil {
		t.Fatal("expected HQX to recognize its own signature")
	}

	info, err := l.Open(layer.OpenFirst)
	if err != nil {
		t.Fatal(err)
	}
	if info == nil {
		t.Fatal("expected a data fork")
	}
	if info.Filename != "A" || info.ForkKind != layer.ForkData || info.Length != uint32(len(data)) {
		t.Fatalf("unexpected info: %+v", info)
	}

	got, err := io.ReadAll(l)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "Hello" {
		t.Fatalf("expected %q, got %q", "Hello", got)
	}

	next, err := l.Open(layer.OpenNext)
	if err != nil {
		t.Fatal(err)
	}
	if next != nil {
		t.Fatalf("expected end of archive, got %+v", next)
	}
}

func TestHQXDeclinesNonHQXInput(t *testing.T) {
	src := layer.NewMem([]byte("not a binhex file at all"))
	l, err := Open(src)
	if err != nil {
		t.Fatal(err)
	}
	if l != nil {
		t.Fatal("expected hqx.Open to decline non-BinHex input")
	}
}
