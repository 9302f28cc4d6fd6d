package main

import (
	"strings"
	"testing"
)

func TestSafeJoinContainsEscapes(t *testing.T) {
	cases := []struct {
		name      string
		entryPath string
	}{
		{"plain", "docs/readme.txt"},
		{"dotdot", "../../etc/passwd"},
		{"absolute", "/etc/passwd"},
		{"mixed", "a/../../../b"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dest, err := safeJoin("out", c.entryPath)
			if err != nil {
				t.Fatalf("safeJoin(%q) error: %v", c.entryPath, err)
			}
			if !strings.HasPrefix(dest, "out") {
				t.Fatalf("safeJoin(%q) = %q, want under out/", c.entryPath, dest)
			}
			if strings.Contains(dest, "..") {
				t.Fatalf("safeJoin(%q) = %q, still contains ..", c.entryPath, dest)
			}
		})
	}
}

func TestSkipEntryIncludeExclude(t *testing.T) {
	cases := []struct {
		name string
		opts extractOptions
		path string
		want bool
	}{
		{"no filters", extractOptions{}, "docs/readme.txt", false},
		{"include match", extractOptions{includeGlob: "docs/**"}, "docs/readme.txt", false},
		{"include miss", extractOptions{includeGlob: "docs/**"}, "src/main.go", true},
		{"exclude match", extractOptions{excludeGlob: "**/*.tmp"}, "docs/scratch.tmp", true},
		{"exclude miss", extractOptions{excludeGlob: "**/*.tmp"}, "docs/readme.txt", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := skipEntry(c.path, c.opts); got != c.want {
				t.Errorf("skipEntry(%q) = %v, want %v", c.path, got, c.want)
			}
		})
	}
}
