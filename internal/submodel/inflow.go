// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package submodel

import (
	"strings"

	"github.com/pdiddy/iwfm-submodel/internal/positional"
	"github.com/pdiddy/iwfm-submodel/internal/selection"
	"github.com/pdiddy/iwfm-submodel/pkg/types"
)

// inflowSettings is the number of settings lines from NQIN to the first
// inflow row: NQIN, FACTQ, NSPQ, NFQQ, DSSFL.
const inflowSettings = 5

// StreamInflow writes a copy of the stream inflow file in for a submodel
// with the stream nodes in snodes. Inflow rows whose stream node is outside
// the submodel are kept with the node set to 0, so the inflow count and
// the time series columns stay valid. All other lines are copied verbatim.
func StreamInflow(in, out string, snodes selection.Set, opts Options) (types.ConversionResult, error) {
	res := types.ConversionResult{Kind: types.KindStreamInflow, Input: in, Output: out}
	res, err := streamInflow(res, snodes)
	opts.report(res, err)
	return res, err
}

func streamInflow(res types.ConversionResult, snodes selection.Set) (types.ConversionResult, error) {
	tbl, err := positional.Read(res.Input, 0)
	if err != nil {
		return res, err
	}
	ninflows, err := tbl.Int(tbl.Data, 0)
	if err != nil {
		return res, err
	}

	lines := append([]string(nil), tbl.Lines...)
	idx, err := tbl.SkipAhead(tbl.Data, inflowSettings)
	if err != nil {
		return res, err
	}
	for j := 0; j < ninflows; j++ {
		if j > 0 {
			if idx, err = tbl.SkipAhead(idx+1, 0); err != nil {
				return res, err
			}
		}
		node, err := tbl.Int(idx, 0)
		if err != nil {
			return res, err
		}
		res.Records++
		res.Kept++
		if node != 0 && !snodes.Contains(node) {
			f := tbl.Fields(idx)
			f[0] = "0"
			lines[idx] = "\t" + strings.Join(f, " ")
			res.Zeroed++
		}
	}

	if err := positional.WriteLines(res.Output, lines); err != nil {
		return res, err
	}
	res.Written = true
	return res, nil
}
