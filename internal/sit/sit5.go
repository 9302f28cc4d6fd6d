package sit

import (
	"bytes"
	"log/slog"

	"github.com/dafo123/munbox/internal/crc16"
	"github.com/dafo123/munbox/layer"
)

const sit5Signature = "StuffIt (c)1997-"
const sit5SignatureTail = " Aladdin Systems, Inc., http://www.aladdinsys.com/StuffIt/"

const entryMagic = 0xA5A5A5A5
const header2PrefixLen = 14 // flags2, type, creator, finder flags
const header2FixedSkip = 22
const resourceInfoLen = 14

// OpenSIT5 is the layer.Factory for StuffIt 5 archives (80-byte ASCII
// signature, tree of variable-length headers). Ported from
// munbox_new_sit_layer's SIT5 branch plus build_index_sit5.
func OpenSIT5(in layer.Layer) (layer.Layer, error) {
	buf, err := readWhole(in)
	if err != nil {
		return nil, err
	}
	if !looksSIT5(buf) {
		if _, rerr := in.Open(layer.OpenFirst); rerr != nil {
			return nil, rerr
		}
		return nil, nil
	}

	arc, err := buildIndexSIT5(buf)
	if err != nil {
		return nil, err
	}
	return newLayer(in, arc), nil
}

func looksSIT5(buf []byte) bool {
	if len(buf) < 80 {
		return false
	}
	if !bytes.Equal(buf[:16], []byte(sit5Signature)) {
		return false
	}
	return bytes.Equal(buf[20:20+len(sit5SignatureTail)], []byte(sit5SignatureTail))
}

// buildIndexSIT5 walks the tree of variable-length entry headers starting at
// the cursor stored at offset 94, maintaining parent_offset -> full-path
// links for directories. Grounded on build_index_sit5: the entry budget
// (numEntries) grows as directories are discovered, exactly mirroring the
// C loop's mutable upper bound.
func buildIndexSIT5(buf []byte) (*archive, error) {
	if !need(buf, 92, 6) {
		return nil, errTruncated("SIT5: missing archive header fields")
	}
	numEntries := uint32(be16(buf[92:94]))
	cursor := be32(buf[94:98])

	dirPath := map[uint32]string{}
	var entries []entry

	for i := uint32(0); i < numEntries; i++ {
		if cursor == 0 || !need(buf, cursor, 48) {
			return nil, errTruncated("SIT5: entry header at offset %d runs past end of archive", cursor)
		}
		offs := cursor
		h1 := buf[offs:]

		if be32(h1[0:4]) != entryMagic {
			return nil, layer.NewError(layer.KindUnsupportedFeature, nil, "SIT5: entry at offset %d missing 0xA5A5A5A5 magic", offs)
		}
		if h1[4] != 1 {
			return nil, layer.NewError(layer.KindUnsupportedFeature, nil, "SIT5: unsupported entry header version %d", h1[4])
		}
		header1Len := be16(h1[6:8])
		if !need(buf, offs, uint32(header1Len)) {
			return nil, errTruncated("SIT5: header1 at offset %d runs past end of archive", offs)
		}
		headerEnd := offs + uint32(header1Len)
		h1 = buf[offs:headerEnd]

		if !crc16.CheckZeroed(h1, 32) {
			return nil, layer.NewError(layer.KindChecksumMismatch, nil, "SIT5: entry header CRC mismatch at offset %d", offs)
		}

		flags := h1[9]
		parentOffset := be32(h1[26:30])
		nameLen := be16(h1[30:32])
		dataLength := be32(h1[34:38])
		dataCompLen := be32(h1[38:42])
		dataCRC := be16(h1[42:44])

		if !need(h1, 48, uint32(nameLen)) {
			return nil, errTruncated("SIT5: entry name at offset %d runs past header1", offs)
		}
		name := sanitizeName(string(h1[48 : 48+nameLen]))

		if !need(buf, headerEnd, header2PrefixLen+header2FixedSkip) {
			return nil, errTruncated("SIT5: header2 at offset %d runs past end of archive", headerEnd)
		}
		header2 := buf[headerEnd:]
		flags2 := be16(header2[0:2])
		filetype := be32(header2[4:8])
		filecreator := be32(header2[8:12])
		finderFlags := be16(header2[12:14])

		resourceRegionStart := headerEnd + header2PrefixLen + header2FixedSkip
		hasResource := flags2&0x0001 != 0

		// dataRegionStart tracks datastart_ptr from build_index_sit5: the
		// offset where the fork bytes begin, after the optional 14-byte
		// resource-info block and its password bytes.
		dataRegionStart := resourceRegionStart
		var rsrcFD *forkDescriptor
		if hasResource {
			if !need(buf, resourceRegionStart, resourceInfoLen) {
				return nil, errTruncated("SIT5: resource-info block at offset %d runs past end of archive", resourceRegionStart)
			}
			rb := buf[resourceRegionStart : resourceRegionStart+resourceInfoLen]
			resLen := be32(rb[0:4])
			resCompLen := be32(rb[4:8])
			resCRC := be16(rb[8:10])
			resMethod := rb[12]
			resPassLen := rb[13]
			compRsrcOffset := resourceRegionStart + resourceInfoLen + uint32(resPassLen)
			if resCompLen > 0 {
				rsrcFD = &forkDescriptor{offset: compRsrcOffset, compLen: resCompLen, uncompLen: resLen, crc: resCRC, method: resMethod & 0x0F}
			}
			dataRegionStart = compRsrcOffset + resCompLen
		}

		isDir := flags&0x40 != 0
		isPhantom := dataLength == 0xFFFFFFFF

		if isDir {
			numFiles := uint32(be16(h1[46:48]))
			if isPhantom {
				numEntries++
				cursor = headerEnd
				continue
			}
			parent := dirPath[parentOffset]
			dirPath[offs] = joinPath(parent, name)
			numEntries += numFiles
			cursor = dataRegionStart
			continue
		}

		if isPhantom {
			cursor = headerEnd
			continue
		}

		dataMethod := h1[46]
		dataPassLen := h1[47]
		if flags&0x20 != 0 && dataLength != 0 && dataPassLen != 0 {
			return nil, layer.NewError(layer.KindUnsupportedFeature, nil, "SIT5: encrypted entry %q not supported", name)
		}

		compDataOffset := dataRegionStart
		var dataFD *forkDescriptor
		if dataCompLen > 0 {
			dataFD = &forkDescriptor{offset: compDataOffset, compLen: dataCompLen, uncompLen: dataLength, crc: dataCRC, method: dataMethod & 0x0F}
		}

		parent := dirPath[parentOffset]
		path := joinPath(parent, name)

		if dataFD == nil && rsrcFD == nil {
			slog.Warn("sit5: entry has no data and no resource fork", "path", path)
		}

		entries = append(entries, entry{
			path:        path,
			typ:         filetype,
			creator:     filecreator,
			finderFlags: finderFlags,
			data:        dataFD,
			rsrc:        rsrcFD,
		})

		cursor = compDataOffset + dataCompLen
	}

	return &archive{buf: buf, entries: entries}, nil
}
