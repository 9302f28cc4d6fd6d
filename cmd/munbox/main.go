// Command munbox is the external driver spec.md §6.4 describes: it builds a
// file source layer, runs the detection/pipeline driver (layer.Drive over the
// factory list built in registry.go), and iterates Open/Read to emit extracted
// forks. Everything here — flag
// parsing, directory creation, AppleDouble side-car writing, glob filtering,
// verbose logging — is explicitly out of core scope per spec.md §1, but a
// real repository in this shape still ships a usable binary around the
// library.
//
// Grounded on the teacher's flag-based, config-file-free CLI idiom (no
// flag.FlagSet subcommands, no YAML/TOML, just flag.Bool/flag.String parsed
// once in main).
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dafo123/munbox/internal/bin"
	"github.com/dafo123/munbox/internal/catalog"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("munbox", flag.ContinueOnError)
	outDir := fs.String("o", ".", "output directory for extracted files")
	appleDoubleMode := fs.Bool("appledouble", false, "write resource forks as AppleDouble ._name sidecar files instead of discarding them")
	includeGlob := fs.String("include", "", "doublestar glob: only extract entry paths matching this pattern")
	excludeGlob := fs.String("exclude", "", "doublestar glob: skip entry paths matching this pattern")
	indexDir := fs.String("index", "", "record extracted entries in a persistent catalog rooted at this directory")
	preferSIT := fs.Bool("prefer-sit-resource-fork", true, "for MacBinary input, prefer a SIT-looking resource fork over the data fork (spec.md §9 escape hatch for .sea.bin)")
	serveAddr := fs.String("serve", "", "instead of extracting, serve one archive's forks over HTTP at this address (e.g. :8080)")
	verbose := fs.Bool("v", false, "verbose (debug-level) logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: munbox [flags] file...")
		fs.PrintDefaults()
		return 2
	}

	binOpts := bin.Options{PreferSITLookingResourceFork: *preferSIT}
	factories := registry(binOpts)

	if *serveAddr != "" {
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "munbox -serve takes exactly one archive path")
			return 2
		}
		if err := serve(*serveAddr, fs.Arg(0), factories); err != nil {
			slog.Error("serve failed", "err", err)
			return 1
		}
		return 0
	}

	var idx *catalog.Index
	if *indexDir != "" {
		var err error
		idx, err = catalog.Open(*indexDir)
		if err != nil {
			slog.Error("opening catalog", "dir", *indexDir, "err", err)
			return 1
		}
		defer idx.Close()
	}

	opts := extractOptions{
		outDir:      *outDir,
		appleDouble: *appleDoubleMode,
		includeGlob: *includeGlob,
		excludeGlob: *excludeGlob,
		index:       idx,
		factories:   factories,
	}

	status := 0
	for _, in := range fs.Args() {
		if err := extractFile(in, opts); err != nil {
			slog.Error("extract failed", "path", in, "err", err)
			status = 1
		}
	}
	return status
}
