// Package layer defines the polymorphic decode-pipeline abstraction shared by
// every format in this module: a Layer exposes a fork iterator (Open) and a
// byte stream (Read) over whichever fork is currently open, plus Close to
// release whatever it wraps.
//
// Grounded on original_source/include/munbox.h's munbox_layer_t: a struct of
// nullable function pointers (read/close required, open optional) plus a
// thread-local last-error buffer retrieved via munbox_last_error(). Go has no
// nullable-method-on-struct idiom and no need for one: every Layer here
// implements Open unconditionally (source layers expose a single data fork and
// report end-of-archive on OpenNext), and errors are returned as values
// instead of stashed in a global, per the explicit design note in spec.md §9
// ("no static mut is required — returning rich error values removes the need
// entirely").
package layer

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// ForkKind identifies which fork of a file is open.
type ForkKind int

const (
	ForkData ForkKind = iota
	ForkResource
)

func (k ForkKind) String() string {
	if k == ForkResource {
		return "resource"
	}
	return "data"
}

// OpenMode selects whether Open positions on the first fork of the current
// entry or advances to the next one.
type OpenMode int

const (
	OpenFirst OpenMode = iota
	OpenNext
)

// FileInfo describes the fork that a successful Open positioned on.
// Mirrors munbox_file_info_t field-for-field, minus the fixed 256-byte
// filename buffer (a Go string has no such limit, though callers should still
// treat names over 255 bytes as a format violation per spec.md §3).
type FileInfo struct {
	Filename    string
	Type        uint32
	Creator     uint32
	FinderFlags uint16
	Length      uint32
	ForkKind    ForkKind
	HasMetadata bool

	// ModTime is the entry's modification time where the format records one
	// (zero value otherwise). Not part of munbox_file_info_t — added so
	// cmd/munbox can restore it on extraction (spec.md's FileInfo carries no
	// dates; this is ambient CLI-facing surface, not a core decode concern).
	ModTime time.Time
}

// Layer is the single abstraction every source, transformer, and archive in
// this module implements.
type Layer interface {
	// Open positions on the first or next fork. It returns the fork's
	// metadata, or (nil, nil) at end-of-archive. Read must not be called
	// before a successful Open.
	Open(mode OpenMode) (*FileInfo, error)

	// Read produces up to len(p) decoded bytes of the currently open fork.
	// Behaves like io.Reader: returns io.EOF once the fork is exhausted.
	io.Reader

	// Close releases this layer and, recursively, whatever it wraps.
	io.Closer
}

// Kind classifies an Error the way spec.md §7 enumerates error kinds.
type Kind int

const (
	// KindFormatUnrecognized is not a hard error: factories may return it (as
	// an *Error of this Kind, or the bare ErrFormatUnrecognized sentinel) to
	// tell the driver to try the next handler. It never escapes the driver to
	// a caller.
	KindFormatUnrecognized Kind = iota
	KindTruncatedInput
	KindChecksumMismatch
	KindUnsupportedFeature
	KindBadParameter
	KindOutOfMemory
	KindIO
	KindUserAbort
)

func (k Kind) String() string {
	switch k {
	case KindFormatUnrecognized:
		return "format_unrecognized"
	case KindTruncatedInput:
		return "truncated_input"
	case KindChecksumMismatch:
		return "checksum_mismatch"
	case KindUnsupportedFeature:
		return "unsupported_feature"
	case KindBadParameter:
		return "bad_parameter"
	case KindOutOfMemory:
		return "out_of_memory"
	case KindIO:
		return "io_error"
	case KindUserAbort:
		return "user_abort"
	default:
		return "unknown"
	}
}

// Error is the rich, typed replacement for munbox_last_error()'s
// thread-local message buffer. Every hard error a layer returns should be
// (or wrap) one of these so callers can branch on Kind with errors.As.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // optional wrapped cause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("munbox: %s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("munbox: %s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds an *Error, optionally wrapping cause (pass nil if there is
// none).
func NewError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// ErrFormatUnrecognized is a sentinel a Factory may return, bare or wrapped,
// to decline a stream. The driver treats
// it specially: swallowed, never surfaced to the caller.
var ErrFormatUnrecognized = errors.New("layer: format not recognized")

// ErrReadBeforeOpen is a KindBadParameter condition: Read called without a
// preceding successful Open.
var ErrReadBeforeOpen = errors.New("layer: read before open")

// IsFormatUnrecognized reports whether err is (or wraps) the decline
// signal a Factory uses to tell Drive to try the next handler.
func IsFormatUnrecognized(err error) bool {
	if err == nil {
		return false
	}
	var le *Error
	if errors.As(err, &le) && le.Kind == KindFormatUnrecognized {
		return true
	}
	return errors.Is(err, ErrFormatUnrecognized)
}

// Factory inspects in (via Open(OpenFirst)+Read, per spec.md §4.1's
// detection contract) and either wraps it in a new Layer, or declines by
// returning (nil, nil). A factory that declines must leave in positioned as
// if just after Open(OpenFirst) — i.e. rewound — since the driver may hand
// it to the next factory in the registry. An error for which
// IsFormatUnrecognized reports true is also a decline; any other non-nil
// error is a hard failure and aborts the whole Drive call.
type Factory func(in Layer) (Layer, error)

// Drive implements spec.md §4.1's detection/pipeline driver: while some
// factory in order succeeds, replace current with its result; stop when no
// factory accepts current. The resulting layer is what the caller then
// iterates with Open/Read to emit files and forks.
//
// This deliberately does not replicate original_source/lib/munbox.c's
// munbox_process, which treats any layer exposing both open and read as
// immediately terminal and never retries the registry against its output.
// Under that rule .sit.hqx/.sit.bin chaining could never be detected, since
// both the HQX and BIN layers expose open. spec.md §4.1 describes a simpler
// loop with no terminal/transform distinction — every successful match is
// retried against the full registry again — and that is what is implemented
// here; see DESIGN.md's Open Question decision for the full reasoning.
func Drive(current Layer, factories []Factory) (Layer, error) {
	for {
		matched := false
		for _, factory := range factories {
			next, err := factory(current)
			if IsFormatUnrecognized(err) {
				continue
			}
			if err != nil {
				return nil, err
			}
			if next == nil {
				continue
			}
			current = next
			matched = true
			break
		}
		if !matched {
			return current, nil
		}
	}
}
