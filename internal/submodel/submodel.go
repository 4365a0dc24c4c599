// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package submodel rewrites IWFM input files for a submodel: a model
// reduced to a subset of its elements, nodes, and stream nodes.
//
// Each file family has its own policy for records outside the selection.
// Land-use and lake records are variable in number and are removed. Stream
// inflow rows are fixed in number, so a row whose stream node is outside
// the submodel keeps its place with the node set to 0.
package submodel

import (
	"errors"

	"github.com/pdiddy/iwfm-submodel/internal/report"
	"github.com/pdiddy/iwfm-submodel/pkg/types"
)

// ErrEmptySelection is returned when no record of a file whose layout
// needs at least one record survives the selection.
var ErrEmptySelection = errors.New("no records in submodel")

// Options carries collaborators shared by every conversion.
type Options struct {
	// Reporter receives one event per conversion. Nil means report.Nop.
	Reporter report.Reporter
}

func (o Options) report(res types.ConversionResult, err error) {
	r := o.Reporter
	if r == nil {
		r = report.Nop
	}
	r.Report(report.Event{ConversionResult: res, Err: err})
}
