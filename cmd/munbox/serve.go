package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dafo123/munbox/internal/forkcache"
	"github.com/dafo123/munbox/layer"
)

// serve exposes one archive's forks over HTTP without ever materializing a
// full extraction on disk: internal/forkcache.FromFork wraps each requested
// fork's decode stream in a ReaderAt that http.ServeContent reads from.
//
// Request path convention: "/entry/path" serves the data fork, "/entry/path"
// with a trailing "/rsrc" component serves the resource fork. This server
// rebuilds the detection pipeline and a fresh forkcache.ReaderAt per request
// rather than caching open layers across requests, since a Layer's fork
// iteration is single-pass. Each ReaderAt has its own cache keys, so a later
// request for the same fork, ranged or not, decodes it again from byte zero;
// the cache only spares re-decoding within one request.
func serve(addr, archivePath string, factories []layer.Factory) error {
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		target := strings.TrimPrefix(r.URL.Path, "/")
		wantRsrc := strings.HasSuffix(target, "/rsrc")
		if wantRsrc {
			target = strings.TrimSuffix(target, "/rsrc")
		}

		info, fork, err := openEntry(archivePath, factories, target, wantRsrc)
		if err != nil {
			slog.Warn("serve: entry not found", "path", target, "err", err)
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		cached := forkcache.FromFork(fork, int64(info.Length), archivePath+"#"+target)
		http.ServeContent(w, r, info.Filename, info.ModTime, io.NewSectionReader(cached, 0, cached.Size()))
	})

	slog.Info("munbox: serving", "addr", addr, "archive", archivePath)
	return http.ListenAndServe(addr, nil)
}

var errEntryNotFound = errors.New("munbox: entry not found")

// openEntry re-runs the detection pipeline over archivePath and walks forks
// until it finds the one matching (target, wantRsrc), returning it
// positioned and ready to read. The caller owns the returned layer's
// lifetime only implicitly: since this is a long-lived HTTP handler, leaking
// the wrapping layers until GC is acceptable for the reference server this
// is (spec.md's -serve is explicitly an ambient CLI convenience, not core
// surface with its own resource-lifecycle contract).
func openEntry(archivePath string, factories []layer.Factory, target string, wantRsrc bool) (*layer.FileInfo, layer.Layer, error) {
	src, err := layer.OpenFile(archivePath)
	if err != nil {
		return nil, nil, err
	}
	top, err := layer.Drive(src, factories)
	if err != nil {
		src.Close()
		return nil, nil, err
	}

	mode := layer.OpenFirst
	for {
		info, err := top.Open(mode)
		mode = layer.OpenNext
		if err != nil {
			top.Close()
			return nil, nil, err
		}
		if info == nil {
			top.Close()
			return nil, nil, fmt.Errorf("%w: %q", errEntryNotFound, target)
		}
		isRsrc := info.ForkKind == layer.ForkResource
		if info.Filename == target && isRsrc == wantRsrc {
			return info, top, nil
		}
	}
}
