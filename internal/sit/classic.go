package sit

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/dafo123/munbox/layer"
)

// classicMagics are the nine signatures build_index_classic's caller
// (munbox_new_sit_layer) recognizes at offset 0, per spec.md §4.6.
var classicMagics = [][4]byte{
	{'S', 'I', 'T', '!'}, {'S', 'T', '4', '6'}, {'S', 'T', '5', '0'},
	{'S', 'T', '6', '0'}, {'S', 'T', '6', '5'}, {'S', 'T', 'i', 'n'},
	{'S', 'T', 'i', '2'}, {'S', 'T', 'i', '3'}, {'S', 'T', 'i', '4'},
}

const classicHeaderSize = 112

// OpenClassic is the layer.Factory for classic StuffIt archives (SIT!,
// ST46..ST65, STin/STi2..STi4). Ported from munbox_new_sit_layer's classic
// branch plus build_index_classic.
func OpenClassic(in layer.Layer) (layer.Layer, error) {
	buf, err := readWhole(in)
	if err != nil {
		return nil, err
	}
	if !looksClassic(buf) {
		if _, rerr := in.Open(layer.OpenFirst); rerr != nil {
			return nil, rerr
		}
		return nil, nil
	}

	arc, err := buildIndexClassic(buf)
	if err != nil {
		return nil, err
	}
	return newLayer(in, arc), nil
}

func looksClassic(buf []byte) bool {
	if len(buf) < 22 {
		return false
	}
	if !bytes.Equal(buf[10:14], []byte("rLau")) {
		return false
	}
	for _, m := range classicMagics {
		if bytes.Equal(buf[0:4], m[:]) {
			return true
		}
	}
	return false
}

// readWhole reads in's entire current fork into one contiguous buffer, per
// spec.md §3's "archive layers read their entire input into a contiguous
// in-memory buffer at construction". The caller is responsible for rewinding
// in via Open(OpenFirst) before treating the read as a decline.
func readWhole(in layer.Layer) ([]byte, error) {
	if _, err := in.Open(layer.OpenFirst); err != nil {
		return nil, err
	}
	buf, err := io.ReadAll(in)
	if err != nil {
		return nil, layer.NewError(layer.KindIO, err, "reading archive into memory")
	}
	return buf, nil
}

// buildIndexClassic walks the linear 112-byte entry headers starting at
// offset 22, maintaining a folder-name stack (depth <=10) for nested paths.
// Grounded directly on build_index_classic's loop over numFiles entries.
func buildIndexClassic(buf []byte) (*archive, error) {
	if !need(buf, 4, 2) {
		return nil, errTruncated("SIT classic: missing entry count")
	}
	numFiles := int(be16(buf[4:6]))

	var folderStack []string
	var entries []entry

	off := uint32(22)
	for i := 0; i < numFiles; i++ {
		if !need(buf, off, classicHeaderSize) {
			return nil, errTruncated("SIT classic: entry header %d runs past end of archive", i)
		}
		hdr := buf[off : off+classicHeaderSize]
		resMethod, dataMethod := hdr[0], hdr[1]

		switch {
		case resMethod == 32 || dataMethod == 32:
			if len(folderStack) >= 10 {
				return nil, layer.NewError(layer.KindUnsupportedFeature, nil, "SIT classic: folder nesting exceeds 10 levels")
			}
			nameLen := int(hdr[2])
			if !need(hdr, 3, uint32(nameLen)) {
				return nil, errTruncated("SIT classic: folder name runs past entry header")
			}
			folderStack = append(folderStack, sanitizeName(string(hdr[3:3+nameLen])))
			off += classicHeaderSize
			continue

		case resMethod == 33 || dataMethod == 33:
			if len(folderStack) > 0 {
				folderStack = folderStack[:len(folderStack)-1]
			}
			off += classicHeaderSize
			continue

		case resMethod&0xE0 != 0 || dataMethod&0xE0 != 0:
			slog.Warn("sit: skipping classic entry with unrecognized method marker", "offset", off, "resMethod", resMethod, "dataMethod", dataMethod)
			off += classicHeaderSize
			continue
		}

		nameLen := int(hdr[2])
		if !need(hdr, 3, uint32(nameLen)) {
			return nil, errTruncated("SIT classic: file name runs past entry header")
		}
		name := sanitizeName(string(hdr[3 : 3+nameLen]))

		typ := be32(hdr[66:70])
		creator := be32(hdr[70:74])
		finderFlags := be16(hdr[74:76])
		rsrcUncomp := be32(hdr[84:88])
		dataUncomp := be32(hdr[88:92])
		rsrcComp := be32(hdr[92:96])
		dataComp := be32(hdr[96:100])
		rsrcCRC := be16(hdr[100:102])
		dataCRC := be16(hdr[102:104])

		forkStart := off + classicHeaderSize
		var rsrcFD, dataFD *forkDescriptor
		if rsrcComp > 0 {
			rsrcFD = &forkDescriptor{offset: forkStart, compLen: rsrcComp, uncompLen: rsrcUncomp, crc: rsrcCRC, method: resMethod & 0x0F}
		}
		dataStart := forkStart + rsrcComp
		if dataComp > 0 {
			dataFD = &forkDescriptor{offset: dataStart, compLen: dataComp, uncompLen: dataUncomp, crc: dataCRC, method: dataMethod & 0x0F}
		}

		path := name
		if len(folderStack) > 0 {
			path = joinFolderStack(folderStack, name)
		}

		entries = append(entries, entry{
			path:        path,
			typ:         typ,
			creator:     creator,
			finderFlags: finderFlags,
			data:        dataFD,
			rsrc:        rsrcFD,
		})

		off = dataStart + dataComp
	}

	return &archive{buf: buf, entries: entries}, nil
}

func joinFolderStack(stack []string, name string) string {
	p := stack[0]
	for _, s := range stack[1:] {
		p = joinPath(p, s)
	}
	return joinPath(p, name)
}
