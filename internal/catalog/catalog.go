// Package catalog indexes (archive path, entry path) -> fork location in a
// persistent store. cmd/munbox -index writes one record per extracted fork
// during extraction; cmd/munbox has no mode that reads the records back.
//
// Nothing in the teacher repo builds an index like this, but go.mod already
// declares pebble/v2, go-tinylfu, and xxhash as (otherwise-unwired)
// dependencies, and the teacher's own internal/fileid package establishes
// the house idiom of hashing a stable key with xxhash (see fileid_darwin.go
// et al.) — this package follows that idiom one layer up the stack: an
// xxhash-derived key fronts a tinylfu hot cache, which in turn fronts a
// pebble on-disk store.
package catalog

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/pebble/v2"
	"github.com/dgryski/go-tinylfu"

	"github.com/dafo123/munbox/layer"
)

// ForkLocation is the indexed record: enough to reopen a specific fork of a
// specific entry inside an already-identified archive without repeating the
// directory-tree walk that produced it.
type ForkLocation struct {
	CompOffset uint32
	CompLen    uint32
	UncompLen  uint32
	Method     byte
	Fork       layer.ForkKind
}

func encodeLocation(l ForkLocation) []byte {
	buf := make([]byte, 14)
	binary.BigEndian.PutUint32(buf[0:], l.CompOffset)
	binary.BigEndian.PutUint32(buf[4:], l.CompLen)
	binary.BigEndian.PutUint32(buf[8:], l.UncompLen)
	buf[12] = l.Method
	buf[13] = byte(l.Fork)
	return buf
}

func decodeLocation(buf []byte) (ForkLocation, error) {
	if len(buf) != 14 {
		return ForkLocation{}, fmt.Errorf("catalog: malformed record (%d bytes)", len(buf))
	}
	return ForkLocation{
		CompOffset: binary.BigEndian.Uint32(buf[0:]),
		CompLen:    binary.BigEndian.Uint32(buf[4:]),
		UncompLen:  binary.BigEndian.Uint32(buf[8:]),
		Method:     buf[12],
		Fork:       layer.ForkKind(buf[13]),
	}, nil
}

// Index is a persistent entry catalog backed by pebble, with an in-process
// tinylfu admission cache absorbing repeated lookups (e.g. a directory
// listing re-fetching sibling entries) without round-tripping through disk.
type Index struct {
	db  *pebble.DB
	hot *tinylfu.T
}

// Open creates or reuses a pebble store rooted at dir.
func Open(dir string) (*Index, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("catalog: opening pebble store at %q: %w", dir, err)
	}
	return &Index{db: db, hot: tinylfu.New(4096, 100000)}, nil
}

func cacheKey(archivePath, entryPath string) string {
	return archivePath + "\x00" + entryPath
}

// dbKey derives an 8-byte xxhash digest of the (archive, entry) pair, the
// same "hash a stable identity into a fixed-width key" idiom the teacher's
// internal/fileid package uses for inode-like identifiers.
func dbKey(archivePath, entryPath string) []byte {
	h := xxhash.Sum64String(cacheKey(archivePath, entryPath))
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], h)
	return k[:]
}

// Put records loc for (archivePath, entryPath). The encoded record is a
// fixed 14 bytes, too small for xz (decompression-only in this module's
// dependency set — github.com/therootcompany/xz ships no writer) to be
// worth reaching for, so it's written to pebble's value log as-is.
func (ix *Index) Put(archivePath, entryPath string, loc ForkLocation) error {
	key := dbKey(archivePath, entryPath)
	if err := ix.db.Set(key, encodeLocation(loc), pebble.Sync); err != nil {
		return fmt.Errorf("catalog: writing entry: %w", err)
	}
	ix.hot.Add(cacheKey(archivePath, entryPath), loc)
	return nil
}

// Get resolves (archivePath, entryPath), consulting the hot cache first.
func (ix *Index) Get(archivePath, entryPath string) (ForkLocation, bool, error) {
	if v, ok := ix.hot.Get(cacheKey(archivePath, entryPath)); ok {
		return v.(ForkLocation), true, nil
	}

	key := dbKey(archivePath, entryPath)
	val, closer, err := ix.db.Get(key)
	if err == pebble.ErrNotFound {
		return ForkLocation{}, false, nil
	}
	if err != nil {
		return ForkLocation{}, false, fmt.Errorf("catalog: reading entry: %w", err)
	}
	defer closer.Close()

	loc, err := decodeLocation(val)
	if err != nil {
		return ForkLocation{}, false, err
	}
	ix.hot.Add(cacheKey(archivePath, entryPath), loc)
	return loc, true, nil
}

// Close releases the pebble store.
func (ix *Index) Close() error {
	return ix.db.Close()
}
