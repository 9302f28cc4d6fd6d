//go:build unix

package main

import (
	"golang.org/x/sys/unix"

	"github.com/dafo123/munbox/layer"
)

// applyModTime restores the Mac-epoch modification time recovered from
// CPT/SIT headers, otherwise dropped on extraction — spec.md's core FileInfo
// carries no dates, so this is purely the CLI's ambient concern. Split into
// a unix-only file the way the teacher's internal/fileid package splits
// fileid_linux.go/fileid_darwin.go/fileid_otherunix.go from fileid_others.go,
// since golang.org/x/sys/unix isn't available on every GOOS.
func applyModTime(dest string, info *layer.FileInfo) {
	if info.ModTime.IsZero() {
		return
	}
	ts := unix.NsecToTimespec(info.ModTime.UnixNano())
	_ = unix.UtimesNanoAt(unix.AT_FDCWD, dest, []unix.Timespec{ts, ts}, 0)
}
