//go:build !unix

package main

import "github.com/dafo123/munbox/layer"

// applyModTime is a no-op on non-unix targets: golang.org/x/sys/unix's
// UtimesNanoAt has no portable equivalent here, and the CLI's extraction
// contract never depended on restoring mtimes to begin with.
func applyModTime(dest string, info *layer.FileInfo) {}
