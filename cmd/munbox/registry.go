package main

import (
	"github.com/dafo123/munbox/internal/bin"
	"github.com/dafo123/munbox/internal/cpt"
	"github.com/dafo123/munbox/internal/hqx"
	"github.com/dafo123/munbox/internal/sit"
	"github.com/dafo123/munbox/layer"
)

// registry builds the same ordered factory list as internal/pipeline, except
// with the BIN factory bound to the CLI's -prefer-sit-resource-fork flag
// instead of bin.DefaultOptions. internal/pipeline.Factories can't take a
// parameter, so the order (spec.md §4.1: sit classic, sit5, hqx, bin, cpt) is
// duplicated here rather than built on top of it.
func registry(binOpts bin.Options) []layer.Factory {
	return []layer.Factory{
		sit.OpenClassic,
		sit.OpenSIT5,
		hqx.Open,
		func(in layer.Layer) (layer.Layer, error) {
			return bin.OpenWithOptions(in, binOpts)
		},
		cpt.Open,
	}
}
