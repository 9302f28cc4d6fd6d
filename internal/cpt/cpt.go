// Package cpt decodes Compact Pro (.cpt) archives: a directory tree near the
// end of the file, each file entry pointing at resource-then-data fork bytes
// that are optionally LZH-compressed and always RLE90-compressed (the CPT
// 0x81/0x82-marker variant).
//
// Ported from original_source/lib/layers/cpt.c's cpt_probe_header,
// cpt_parse_directory_mem/cpt_walk_dir_mem, and cpt_layer_open/read. The C
// keeps a pull-style getbyte callback chain (mem supplier -> LZH supplier ->
// RLE stream); here each fork is an io.Reader chain (bytes.Reader -> optional
// lzhReader -> rle90.CPTReader) bounded by a boundedReader, mirroring how
// internal/sit composes its method dispatch.
package cpt

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/dafo123/munbox/internal/rle90"
	"github.com/dafo123/munbox/layer"
)

// macEpoch is the Macintosh reference date (1 Jan 1904) used by CPT's
// create_date/mod_date fields, the same epoch spec.md §4.7 cites for SIT5's
// AppleDouble-style dates.
var macEpoch = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)

func macTime(t uint32) time.Time { return macEpoch.Add(time.Duration(t) * time.Second) }

const (
	flagEncrypted = 0x0001
	flagRsrcLZH   = 0x0002
	flagDataLZH   = 0x0004
	entryDirFlag  = 0x80
	fileMetaLen   = 1 + 4*10 + 2 + 2 // 45 bytes, per spec.md §4.5
)

func be16(p []byte) uint16 { return uint16(p[0])<<8 | uint16(p[1]) }
func be32(p []byte) uint32 {
	return uint32(p[0])<<24 | uint32(p[1])<<16 | uint32(p[2])<<8 | uint32(p[3])
}

func errTruncated(format string, args ...any) error {
	return layer.NewError(layer.KindTruncatedInput, nil, format, args...)
}

func need(buf []byte, off, n uint32) bool {
	if off > uint32(len(buf)) {
		return false
	}
	return uint64(off)+uint64(n) <= uint64(len(buf))
}

// fileEntry is one file in the archive; a directory entry only ever
// contributes to path-building during the tree walk and is never itself
// materialized as an entry (CPT directories carry no fork data).
type fileEntry struct {
	path        string
	fileOffset  uint32
	typ         uint32
	creator     uint32
	finderFlags uint16
	flags       uint16
	rsrcUncomp  uint32
	dataUncomp  uint32
	rsrcComp    uint32
	dataComp    uint32
	modTime     time.Time
}

// Open is the layer.Factory for Compact Pro archives. Ported from
// cpt_probe_header plus the directory-offset sanity check it performs.
func Open(in layer.Layer) (layer.Layer, error) {
	if _, err := in.Open(layer.OpenFirst); err != nil {
		return nil, err
	}
	buf, err := io.ReadAll(in)
	if err != nil {
		return nil, layer.NewError(layer.KindIO, err, "reading CPT archive into memory")
	}

	if !looksLikeCPT(buf) {
		if _, rerr := in.Open(layer.OpenFirst); rerr != nil {
			return nil, rerr
		}
		return nil, nil
	}

	dirOffset := be32(buf[4:8])
	entries, err := parseDirectory(buf, dirOffset)
	if err != nil {
		return nil, err
	}
	return &Layer{under: in, buf: buf, entries: entries}, nil
}

func looksLikeCPT(buf []byte) bool {
	if len(buf) < 8 {
		return false
	}
	if buf[0] != 0x01 || buf[1] != 0x01 {
		return false
	}
	dirOffset := be32(buf[4:8])
	return dirOffset >= 8 && dirOffset <= 0x10000000
}

// parseDirectory reads the directory header at dirOffset (CRC skipped,
// per spec.md §4.5's "not validated") and walks its entry tree.
func parseDirectory(buf []byte, dirOffset uint32) ([]fileEntry, error) {
	if !need(buf, dirOffset, 7) {
		return nil, errTruncated("CPT: directory header runs past end of archive")
	}
	hdr := buf[dirOffset : dirOffset+7]
	totalEntries := int(be16(hdr[4:6]))
	commentLen := uint32(hdr[6])

	cursor := dirOffset + 7 + commentLen
	if cursor > uint32(len(buf)) {
		return nil, errTruncated("CPT: directory comment runs past end of archive")
	}

	var entries []fileEntry
	if _, err := walkDirectory(buf, &cursor, totalEntries, "", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// walkDirectory consumes entriesInThisDir siblings starting at *cursor,
// recursing into nested folders. Ported from cpt_walk_dir_mem: a folder's
// child_count+1 is subtracted from the caller's remaining budget, since the
// folder marker entry itself counts as one of the parent's siblings.
func walkDirectory(buf []byte, cursor *uint32, entriesInThisDir int, parentPath string, out *[]fileEntry) (int, error) {
	for entriesInThisDir > 0 {
		if *cursor >= uint32(len(buf)) {
			return 0, errTruncated("CPT: directory entry runs past end of archive")
		}
		nlentype := buf[*cursor]
		nameLen := uint32(nlentype & 0x7F)
		isDir := nlentype&entryDirFlag != 0

		if !need(buf, *cursor+1, nameLen) {
			return 0, errTruncated("CPT: entry name runs past end of archive")
		}
		name := string(buf[*cursor+1 : *cursor+1+nameLen])
		*cursor += 1 + nameLen

		fullPath := name
		if parentPath != "" {
			fullPath = fmt.Sprintf("%s/%s", parentPath, name)
		}

		if isDir {
			if !need(buf, *cursor, 2) {
				return 0, errTruncated("CPT: folder child count runs past end of archive")
			}
			childCount := int(be16(buf[*cursor : *cursor+2]))
			*cursor += 2
			if _, err := walkDirectory(buf, cursor, childCount, fullPath, out); err != nil {
				return 0, err
			}
			entriesInThisDir -= childCount + 1
			continue
		}

		if !need(buf, *cursor, fileMetaLen) {
			return 0, errTruncated("CPT: file metadata runs past end of archive")
		}
		// Layout per cpt_file_entry_t: volume(1) file_offset(4) type(4)
		// creator(4) create_date(4) mod_date(4) finder_flags(2) data_crc(4)
		// flags(2) rsrc_uncomp(4) data_uncomp(4) rsrc_comp(4) data_comp(4).
		meta := buf[*cursor : *cursor+fileMetaLen]
		flags := be16(meta[27:29])
		if flags&flagEncrypted != 0 {
			return 0, layer.NewError(layer.KindUnsupportedFeature, nil, "CPT: encrypted entry %q not supported", fullPath)
		}
		*out = append(*out, fileEntry{
			path:        fullPath,
			fileOffset:  be32(meta[1:5]),
			typ:         be32(meta[5:9]),
			creator:     be32(meta[9:13]),
			finderFlags: be16(meta[21:23]),
			flags:       flags,
			rsrcUncomp:  be32(meta[29:33]),
			dataUncomp:  be32(meta[33:37]),
			rsrcComp:    be32(meta[37:41]),
			dataComp:    be32(meta[41:45]),
			modTime:     macTime(be32(meta[17:21])),
		})
		*cursor += fileMetaLen
		entriesInThisDir--
	}
	return entriesInThisDir, nil
}

// forkSlot mirrors internal/sit's iteration-state enum.
type forkSlot int

const (
	slotData forkSlot = iota
	slotResource
	slotNone
)

// boundedReader truncates a fork's decode chain to exactly its expected
// uncompressed length, matching cpt_fork_stream_read's out_remaining.
type boundedReader struct {
	r   io.Reader
	rem uint32
}

func (b *boundedReader) Read(p []byte) (int, error) {
	if b.rem == 0 {
		return 0, io.EOF
	}
	if uint32(len(p)) > b.rem {
		p = p[:b.rem]
	}
	n, err := b.r.Read(p)
	b.rem -= uint32(n)
	if err != nil && err != io.EOF {
		return n, layer.NewError(layer.KindIO, err, "decoding CPT fork")
	}
	if b.rem == 0 {
		return n, io.EOF
	}
	if err == io.EOF {
		return n, errTruncated("CPT fork stream ended %d bytes early", b.rem)
	}
	return n, nil
}

// Layer implements layer.Layer over a fully-parsed Compact Pro archive.
type Layer struct {
	under   layer.Layer
	buf     []byte
	entries []fileEntry

	opened   bool
	entryIdx int
	slot     forkSlot
	cur      *boundedReader
}

func (l *Layer) forkLens(idx int, slot forkSlot) (uncomp, comp uint32, useLZH bool) {
	e := &l.entries[idx]
	if slot == slotData {
		return e.dataUncomp, e.dataComp, e.flags&flagDataLZH != 0
	}
	return e.rsrcUncomp, e.rsrcComp, e.flags&flagRsrcLZH != 0
}

// compOffset mirrors cpt_layer_open's comp_off: resource bytes sit at
// file_offset, data bytes follow immediately after rsrc_comp_len bytes.
func (l *Layer) compOffset(idx int, slot forkSlot) uint32 {
	e := &l.entries[idx]
	if slot == slotData {
		return e.fileOffset + e.rsrcComp
	}
	return e.fileOffset
}

func (l *Layer) findNext(idx int, slot forkSlot) (int, forkSlot) {
	for idx < len(l.entries) {
		e := &l.entries[idx]
		if slot == slotData {
			if e.dataUncomp > 0 {
				return idx, slotData
			}
			slot = slotResource
		}
		if slot == slotResource {
			if e.rsrcUncomp > 0 {
				return idx, slotResource
			}
		}
		idx++
		slot = slotData
	}
	return idx, slotNone
}

func (l *Layer) info(idx int, slot forkSlot) *layer.FileInfo {
	e := &l.entries[idx]
	uncomp, _, _ := l.forkLens(idx, slot)
	fk := layer.ForkData
	if slot == slotResource {
		fk = layer.ForkResource
	}
	return &layer.FileInfo{
		Filename:    e.path,
		Type:        e.typ,
		Creator:     e.creator,
		FinderFlags: e.finderFlags,
		Length:      uncomp,
		ForkKind:    fk,
		HasMetadata: true,
		ModTime:     e.modTime,
	}
}

func (l *Layer) openFork(idx int, slot forkSlot) error {
	uncomp, comp, useLZH := l.forkLens(idx, slot)
	off := l.compOffset(idx, slot)
	if !need(l.buf, off, comp) {
		return errTruncated("CPT: fork data runs past end of archive")
	}
	raw := bytes.NewReader(l.buf[off : off+comp])

	var decoded io.Reader
	if useLZH {
		decoded = rle90.NewCPTReader(newLZHReader(raw))
	} else {
		decoded = rle90.NewCPTReader(raw)
	}
	l.cur = &boundedReader{r: decoded, rem: uncomp}
	return nil
}

func (l *Layer) openAt(idx int, slot forkSlot) (*layer.FileInfo, error) {
	idx, slot = l.findNext(idx, slot)
	if slot == slotNone {
		l.entryIdx, l.slot, l.cur = idx, slotNone, nil
		return nil, nil
	}
	if err := l.openFork(idx, slot); err != nil {
		return nil, err
	}
	l.entryIdx, l.slot = idx, slot
	return l.info(idx, slot), nil
}

func (l *Layer) Open(mode layer.OpenMode) (*layer.FileInfo, error) {
	if mode == layer.OpenFirst {
		l.opened = true
		return l.openAt(0, slotData)
	}
	if !l.opened {
		return nil, layer.NewError(layer.KindBadParameter, nil, "open(next) before open(first) on CPT layer")
	}
	if l.cur != nil {
		if _, err := io.Copy(io.Discard, l.cur); err != nil {
			return nil, err
		}
	}
	if l.slot == slotNone {
		return nil, nil
	}
	nextIdx, nextSlot := l.entryIdx, l.slot+1
	if nextSlot > slotResource {
		nextIdx, nextSlot = l.entryIdx+1, slotData
	}
	return l.openAt(nextIdx, nextSlot)
}

func (l *Layer) Read(p []byte) (int, error) {
	if !l.opened {
		return 0, layer.ErrReadBeforeOpen
	}
	if l.cur == nil {
		return 0, io.EOF
	}
	return l.cur.Read(p)
}

func (l *Layer) Close() error {
	return l.under.Close()
}
