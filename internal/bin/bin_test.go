package bin

import (
	"io"
	"testing"

	"github.com/dafo123/munbox/internal/crc16"
	"github.com/dafo123/munbox/layer"
)

func buildHeader(t *testing.T, name string, dataLen, rsrcLen uint32, badCRCByte82Zero, badCRCByte82NonZero bool) []byte {
	t.Helper()
	hdr := make([]byte, blockSize)
	hdr[0] = 0
	hdr[1] = byte(len(name))
	copy(hdr[2:], name)
	copy(hdr[65:69], "TEXT")
	copy(hdr[69:73], "ttxt")
	hdr[73] = 0
	hdr[74] = 0
	hdr[83] = byte(dataLen >> 24)
	hdr[84] = byte(dataLen >> 16)
	hdr[85] = byte(dataLen >> 8)
	hdr[86] = byte(dataLen)
	hdr[87] = byte(rsrcLen >> 24)
	hdr[88] = byte(rsrcLen >> 16)
	hdr[89] = byte(rsrcLen >> 8)
	hdr[90] = byte(rsrcLen)
	hdr[101] = 0

	var crc crc16.CCITT
	crc = crc.Update(hdr[:124])
	v := crc.Value()
	hdr[124] = byte(v >> 8)
	hdr[125] = byte(v)

	if badCRCByte82Zero {
		hdr[82] = 0
		hdr[124], hdr[125] = 0xAA, 0xAA
	}
	if badCRCByte82NonZero {
		hdr[82] = 1
		hdr[124], hdr[125] = 0xAA, 0xAA
	}
	return hdr
}

func pad(data []byte) []byte {
	p := padTo128(uint32(len(data)))
	return append(append([]byte{}, data...), make([]byte, p)...)
}

func TestBinTrivialEmptyForks(t *testing.T) {
	hdr := buildHeader(t, "TEST", 0, 0, false, false)
	src := layer.NewMem(hdr)

	l, err := Open(src)
	if err != nil {
		t.Fatal(err)
	}
	if l == nil {
		t.Fatal("expected bin.Open to recognize a valid MacBinary header")
	}
	info, err := l.Open(layer.OpenFirst)
	if err != nil {
		t.Fatal(err)
	}
	if info != nil {
		t.Fatalf("expected end-of-archive for empty forks, got %+v", info)
	}
}

func TestBinDataAndResourceForkInOrder(t *testing.T) {
	data := []byte("Hello")
	rsrc := []byte("RSRC!")
	hdr := buildHeader(t, "A", uint32(len(data)), uint32(len(rsrc)), false, false)

	raw := append([]byte{}, hdr...)
	raw = append(raw, pad(data)...)
	raw = append(raw, pad(rsrc)...)

	src := layer.NewMem(raw)
	l, err := Open(src)
	if err != nil {
		t.Fatal(err)
	}
	if l == nil {
		t.Fatal("expected recognition")
	}

	info, err := l.Open(layer.OpenFirst)
	if err != nil {
		t.Fatal(err)
	}
	if info.ForkKind != layer.ForkData || info.Length != uint32(len(data)) {
		t.Fatalf("unexpected first fork: %+v", info)
	}
	got, err := io.ReadAll(l)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(data) {
		t.Fatalf("data fork: got %q want %q", got, data)
	}

	info, err = l.Open(layer.OpenNext)
	if err != nil {
		t.Fatal(err)
	}
	if info == nil || info.ForkKind != layer.ForkResource || info.Length != uint32(len(rsrc)) {
		t.Fatalf("unexpected resource fork info: %+v", info)
	}
	got, err = io.ReadAll(l)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(rsrc) {
		t.Fatalf("rsrc fork: got %q want %q", got, rsrc)
	}

	info, err = l.Open(layer.OpenNext)
	if err != nil {
		t.Fatal(err)
	}
	if info != nil {
		t.Fatal("expected end of archive after both forks")
	}
}

func TestBinMacBinaryICompatibilityFallback(t *testing.T) {
	hdr := buildHeader(t, "TEST", 0, 0, true, false)
	src := layer.NewMem(hdr)
	l, err := Open(src)
	if err != nil {
		t.Fatal(err)
	}
	if l == nil {
		t.Fatal("expected byte-82-zero CRC mismatch to be accepted (MacBinary I fallback)")
	}
}

func TestBinRejectsBadCRCWithNonZeroByte82(t *testing.T) {
	hdr := buildHeader(t, "TEST", 0, 0, false, true)
	src := layer.NewMem(hdr)
	l, err := Open(src)
	if err != nil {
		t.Fatal(err)
	}
	if l != nil {
		t.Fatal("expected bad CRC with byte 82 != 0 to be rejected")
	}
}

func TestBinPrefersResourceForkWhenDataDoesNotLookLikeSIT(t *testing.T) {
	data := make([]byte, 64) // not SIT-looking
	rsrc := append([]byte("SIT!______"), []byte("rLau")...)
	rsrc = append(rsrc, make([]byte, 32)...)
	hdr := buildHeader(t, "sfx", uint32(len(data)), uint32(len(rsrc)), false, false)

	raw := append([]byte{}, hdr...)
	raw = append(raw, pad(data)...)
	raw = append(raw, pad(rsrc)...)

	src := layer.NewMem(raw)
	l, err := Open(src)
	if err != nil {
		t.Fatal(err)
	}
	info, err := l.Open(layer.OpenFirst)
	if err != nil {
		t.Fatal(err)
	}
	if info == nil || info.ForkKind != layer.ForkResource {
		t.Fatalf("expected OpenFirst to prefer the resource fork, got %+v", info)
	}
	got, err := io.ReadAll(l)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(rsrc) {
		t.Fatalf("got %q want %q", got, rsrc)
	}
}
