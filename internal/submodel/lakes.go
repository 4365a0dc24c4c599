// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package submodel

import (
	"strconv"
	"strings"

	"github.com/pdiddy/iwfm-submodel/internal/positional"
	"github.com/pdiddy/iwfm-submodel/internal/selection"
	"github.com/pdiddy/iwfm-submodel/pkg/types"
)

// Fields of a lake's first line.
const (
	lakeFieldNElems = 3
	lakeFieldElem   = 4
	lakeFieldRest   = 5
)

// readLakes parses the lake definitions of a preprocessor lake file. Each
// lake's element list is reduced to the elements in elems; lakes left with
// no element are omitted. It also returns the number of lakes in the file.
func readLakes(tbl *positional.Table, elems selection.Set) ([]types.Lake, int, error) {
	nlakes, err := tbl.Int(tbl.Data, 0)
	if err != nil {
		return nil, 0, err
	}

	var lakes []types.Lake
	idx := tbl.Data
	for l := 0; l < nlakes; l++ {
		if idx, err = tbl.SkipAhead(idx+1, 0); err != nil {
			return nil, 0, err
		}
		nelake, err := tbl.Int(idx, lakeFieldNElems)
		if err != nil {
			return nil, 0, err
		}
		first, err := tbl.Int(idx, lakeFieldElem)
		if err != nil {
			return nil, 0, err
		}
		f := tbl.Fields(idx)
		lake := types.Lake{
			ID:       f[0],
			DestType: f[1],
			Dest:     f[2],
			Trailer:  strings.Join(f[lakeFieldRest:], " "),
		}
		if elems.Contains(first) {
			lake.Elements = append(lake.Elements, first)
		}

		for k := 1; k < nelake; k++ {
			if idx, err = tbl.SkipAhead(idx+1, 0); err != nil {
				return nil, 0, err
			}
			e, err := tbl.Int(idx, 0)
			if err != nil {
				return nil, 0, err
			}
			if elems.Contains(e) {
				lake.Elements = append(lake.Elements, e)
			}
		}

		if len(lake.Elements) > 0 {
			lakes = append(lakes, lake)
		}
	}
	return lakes, nlakes, nil
}

// ReadLakes returns the lakes of the lake file at path that have at least
// one element in elems, each holding only those elements, and whether any
// lake is in the submodel.
func ReadLakes(path string, elems selection.Set) ([]types.Lake, bool, error) {
	tbl, err := positional.Read(path, 0)
	if err != nil {
		return nil, false, err
	}
	lakes, _, err := readLakes(tbl, elems)
	if err != nil {
		return nil, false, err
	}
	return lakes, len(lakes) > 0, nil
}

// Lakes writes the submodel lake file: the header of in verbatim, the lake
// count updated, and one definition per surviving lake with its element
// count and element list reduced to the submodel. When no lake survives
// nothing is written and the result reports Written false.
func Lakes(in, out string, elems selection.Set, opts Options) (types.ConversionResult, error) {
	res := types.ConversionResult{Kind: types.KindLake, Input: in, Output: out}
	res, err := lakes(res, elems)
	opts.report(res, err)
	return res, err
}

func lakes(res types.ConversionResult, elems selection.Set) (types.ConversionResult, error) {
	tbl, err := positional.Read(res.Input, 0)
	if err != nil {
		return res, err
	}
	kept, total, err := readLakes(tbl, elems)
	if err != nil {
		return res, err
	}
	res.Records = total
	res.Kept = len(kept)
	res.Dropped = total - len(kept)
	if len(kept) == 0 {
		return res, nil
	}

	lines := tbl.Header()
	lines = append(lines, positional.ReplaceToken(tbl.Lines[tbl.Data], strconv.Itoa(len(kept))))
	for _, lake := range kept {
		lines = append(lines, lakeLines(lake)...)
	}

	if err := positional.WriteLines(res.Output, lines); err != nil {
		return res, err
	}
	res.Written = true
	return res, nil
}

// lakeLines renders a lake definition: the first line holds the lake
// settings and its first element, each further element is on a line of
// its own aligned under the element column.
func lakeLines(lake types.Lake) []string {
	first := []string{
		lake.ID,
		lake.DestType,
		lake.Dest,
		strconv.Itoa(len(lake.Elements)),
		strconv.Itoa(lake.Elements[0]),
	}
	if lake.Trailer != "" {
		first = append(first, lake.Trailer)
	}

	out := []string{"\t" + strings.Join(first, "\t")}
	indent := strings.Repeat("\t", lakeFieldElem+1)
	for _, e := range lake.Elements[1:] {
		out = append(out, indent+strconv.Itoa(e))
	}
	return out
}
