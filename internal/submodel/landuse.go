// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package submodel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/iwfm-submodel/internal/positional"
	"github.com/pdiddy/iwfm-submodel/internal/selection"
	"github.com/pdiddy/iwfm-submodel/pkg/types"
)

// landUseSettings is the number of settings lines (FACTLN, NSPLU, NFQLU,
// DSSFL) between the comment header and the first time step.
const landUseSettings = 4

// luRow is one element's values at one time step.
type luRow struct {
	elem   int
	line   int
	values []float64
}

// luStep is one dated block: a date line carrying the first row and one
// continuation line for every further row.
type luStep struct {
	date string
	line int
	rows []luRow
}

// LandUse writes a copy of the land-use area file in with only the
// elements in elems. Every time step keeps the surviving rows in their
// original order.
func LandUse(in, out string, elems selection.Set, opts Options) (types.ConversionResult, error) {
	res := types.ConversionResult{Kind: types.KindLandUse, Input: in, Output: out}
	res, err := landUse(res, elems)
	opts.report(res, err)
	return res, err
}

func landUse(res types.ConversionResult, elems selection.Set) (types.ConversionResult, error) {
	tbl, err := positional.Read(res.Input, landUseSettings)
	if err != nil {
		return res, err
	}
	steps, err := readLandUse(tbl)
	if err != nil {
		return res, err
	}

	// Decide membership once from the first time step, then keep the same
	// rows of every step.
	keep := make(map[int]bool)
	for i, r := range steps[0].rows {
		if elems.Contains(r.elem) {
			keep[i] = true
		}
	}
	res.Records = len(steps[0].rows)
	res.Kept = len(keep)
	res.Dropped = res.Records - res.Kept
	if res.Kept == 0 {
		return res, fmt.Errorf("%s: %w", res.Input, ErrEmptySelection)
	}

	lines := tbl.Header()
	for _, s := range steps {
		first := true
		for i, r := range s.rows {
			if !keep[i] {
				continue
			}
			if first {
				lines = append(lines, s.date+"\t"+landUseRow(r))
				first = false
			} else {
				lines = append(lines, "\t"+landUseRow(r))
			}
		}
	}

	if err := positional.WriteLines(res.Output, lines); err != nil {
		return res, err
	}
	res.Written = true
	return res, nil
}

// landUseRow renders the element and its values tab separated, each value
// followed by a tab.
func landUseRow(r luRow) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(r.elem))
	b.WriteByte('\t')
	for _, v := range r.values {
		b.WriteString(positional.FormatFloat(v))
		b.WriteByte('\t')
	}
	return b.String()
}

// readLandUse parses the time steps that follow the settings lines. A line
// whose first token contains '/' starts a step; the other data lines
// continue it.
func readLandUse(tbl *positional.Table) ([]luStep, error) {
	var steps []luStep
	for i := tbl.Data; i < len(tbl.Lines); i++ {
		if positional.IsComment(tbl.Lines[i]) {
			continue
		}
		f := tbl.Fields(i)
		elemField := 0
		if strings.Contains(f[0], "/") {
			steps = append(steps, luStep{date: f[0], line: i})
			elemField = 1
		} else if len(steps) == 0 {
			return nil, tbl.Malformed(i, "time step date")
		}

		elem, err := tbl.Int(i, elemField)
		if err != nil {
			return nil, err
		}
		row := luRow{elem: elem, line: i}
		for n := elemField + 1; n < len(f); n++ {
			v, err := tbl.Float(i, n)
			if err != nil {
				return nil, err
			}
			row.values = append(row.values, v)
		}
		cur := &steps[len(steps)-1]
		cur.rows = append(cur.rows, row)
	}

	if len(steps) == 0 {
		return nil, tbl.Malformed(len(tbl.Lines), "time step date")
	}
	// Every step must list the same elements in the same order.
	for _, s := range steps[1:] {
		if len(s.rows) != len(steps[0].rows) {
			return nil, tbl.Malformed(s.line, fmt.Sprintf("%d elements in time step", len(steps[0].rows)))
		}
		for j, r := range s.rows {
			if r.elem != steps[0].rows[j].elem {
				return nil, tbl.Malformed(r.line, fmt.Sprintf("element %d", steps[0].rows[j].elem))
			}
		}
	}
	return steps, nil
}
