// Package pipeline assembles the concrete format-handler registry that
// layer.Drive walks. It cannot live inside the layer package itself: every
// format package (internal/hqx, internal/bin, internal/cpt, internal/sit)
// imports layer for the Layer interface, so a registry living in layer and
// importing them back would be a circular import. Grounded on
// original_source/lib/munbox.c's static handler table passed to
// munbox_process, translated into an ordered []layer.Factory built one
// level up the dependency graph instead.
package pipeline

import (
	"github.com/dafo123/munbox/internal/bin"
	"github.com/dafo123/munbox/internal/cpt"
	"github.com/dafo123/munbox/internal/hqx"
	"github.com/dafo123/munbox/internal/sit"
	"github.com/dafo123/munbox/layer"
)

// Factories is the registry order spec.md §4.1 specifies: StuffIt classic,
// StuffIt 5, BinHex, MacBinary, Compact Pro. SIT classic is tried before
// SIT5 since SIT5's 80-byte ASCII signature is the more specific check and a
// classic archive could otherwise never reach its own factory if SIT5 were
// tried first and somehow misdetected it (in practice the signatures are
// disjoint, but the order follows spec.md verbatim regardless).
var Factories = []layer.Factory{
	sit.OpenClassic,
	sit.OpenSIT5,
	hqx.Open,
	bin.Open,
	cpt.Open,
}

// Drive runs layer.Drive with the concrete registry above.
func Drive(current layer.Layer) (layer.Layer, error) {
	return layer.Drive(current, Factories)
}
