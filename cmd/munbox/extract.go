package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/dafo123/munbox/internal/appledouble"
	"github.com/dafo123/munbox/internal/catalog"
	"github.com/dafo123/munbox/layer"
)

type extractOptions struct {
	outDir      string
	appleDouble bool
	includeGlob string
	excludeGlob string
	index       *catalog.Index
	factories   []layer.Factory
}

// extractFile drives the detection pipeline over inputPath and writes every
// emitted fork under opts.outDir, the concrete realization of spec.md
// §6.4's CLI contract ("constructs a file source layer, runs the detection
// driver, then iterates open/read to emit forks").
func extractFile(inputPath string, opts extractOptions) error {
	src, err := layer.OpenFile(inputPath)
	if err != nil {
		return fmt.Errorf("munbox: opening %q: %w", inputPath, err)
	}

	top, err := layer.Drive(src, opts.factories)
	if err != nil {
		src.Close()
		return fmt.Errorf("munbox: detecting format of %q: %w", inputPath, err)
	}
	defer top.Close()

	mode := layer.OpenFirst
	for {
		info, err := top.Open(mode)
		mode = layer.OpenNext
		if err != nil {
			return fmt.Errorf("munbox: %q: %w", inputPath, err)
		}
		if info == nil {
			return nil
		}

		if skipEntry(info.Filename, opts) {
			if _, err := io.Copy(io.Discard, top); err != nil {
				return fmt.Errorf("munbox: draining skipped entry %q: %w", info.Filename, err)
			}
			continue
		}

		if err := emitFork(inputPath, top, info, opts); err != nil {
			return err
		}
	}
}

func skipEntry(name string, opts extractOptions) bool {
	if opts.includeGlob != "" {
		ok, err := doublestar.Match(opts.includeGlob, name)
		if err != nil || !ok {
			return true
		}
	}
	if opts.excludeGlob != "" {
		if ok, err := doublestar.Match(opts.excludeGlob, name); err == nil && ok {
			return true
		}
	}
	return false
}

// safeJoin joins outDir with the entry's forward-slash path, resolving any
// .. or absolute component as if the entry path were rooted at outDir, so the
// result never escapes outDir — spec.md §3's invariant that "path
// construction never allows a .. or absolute component to escape the output
// root" is explicitly a driver responsibility, not the core's.
func safeJoin(outDir, entryPath string) (string, error) {
	clean := filepath.Clean(string(filepath.Separator) + filepath.FromSlash(entryPath))
	joined := filepath.Join(outDir, clean)
	if !strings.HasPrefix(joined, filepath.Clean(outDir)+string(filepath.Separator)) && joined != filepath.Clean(outDir) {
		return "", fmt.Errorf("munbox: entry path %q escapes output root", entryPath)
	}
	return joined, nil
}

func emitFork(archivePath string, l layer.Layer, info *layer.FileInfo, opts extractOptions) error {
	dest, err := safeJoin(opts.outDir, info.Filename)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("munbox: creating directory for %q: %w", dest, err)
	}

	if info.ForkKind == layer.ForkResource {
		return emitResourceFork(archivePath, dest, l, info, opts)
	}
	return emitDataFork(archivePath, dest, l, info, opts)
}

func emitDataFork(archivePath, dest string, l layer.Layer, info *layer.FileInfo, opts extractOptions) error {
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("munbox: creating %q: %w", dest, err)
	}
	n, err := io.Copy(f, l)
	closeErr := f.Close()
	if err != nil {
		return fmt.Errorf("munbox: writing %q: %w", dest, err)
	}
	if closeErr != nil {
		return fmt.Errorf("munbox: closing %q: %w", dest, closeErr)
	}
	applyModTime(dest, info)
	recordIndex(opts.index, archivePath, info, n, 0)
	return nil
}

func emitResourceFork(archivePath, dest string, l layer.Layer, info *layer.FileInfo, opts extractOptions) error {
	body, err := io.ReadAll(l)
	if err != nil {
		return fmt.Errorf("munbox: reading resource fork of %q: %w", info.Filename, err)
	}
	recordIndex(opts.index, archivePath, info, int64(len(body)), 1)

	if !opts.appleDouble {
		return nil // discarded, per spec.md §6.4's non-AppleDouble default
	}

	sidecar := appledouble.Sidecar(dest)
	var ad appledouble.AppleDouble
	ad.ModTime = info.ModTime
	copy(ad.Type[:], fourCC(info.Type))
	copy(ad.Creator[:], fourCC(info.Creator))
	ad.Flags = info.FinderFlags

	opener, total := ad.WithSequentialResourceFork(func() io.Reader { return bytes.NewReader(body) }, int64(len(body)))

	f, err := os.Create(sidecar)
	if err != nil {
		return fmt.Errorf("munbox: creating %q: %w", sidecar, err)
	}
	defer f.Close()
	if _, err := io.CopyN(f, opener(), total); err != nil {
		return fmt.Errorf("munbox: writing %q: %w", sidecar, err)
	}
	return nil
}

func fourCC(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func recordIndex(idx *catalog.Index, archivePath string, info *layer.FileInfo, length int64, method byte) {
	if idx == nil {
		return
	}
	loc := catalog.ForkLocation{
		UncompLen: uint32(length),
		Method:    method,
		Fork:      info.ForkKind,
	}
	if err := idx.Put(archivePath, info.Filename, loc); err != nil {
		// Non-fatal: the catalog is an optional acceleration structure, not
		// a correctness requirement of extraction.
		_ = err
	}
}
