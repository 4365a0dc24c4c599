// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/iwfm-submodel/internal/selection"
	"github.com/pdiddy/iwfm-submodel/internal/submodel"
	"github.com/pdiddy/iwfm-submodel/pkg/types"
)

// keyedConversion is the shape shared by the conversions filtered by a
// selection file.
type keyedConversion func(in, out string, keys selection.Set, opts submodel.Options) (types.ConversionResult, error)

// keyedCommand builds a subcommand taking <input> <output> <selection-file>.
func keyedCommand(use, short, long string, convert keyedConversion) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <input> <output> <selection-file>",
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			job := types.FileJob{Input: args[0], Output: args[1]}
			if err := job.Validate(); err != nil {
				return err
			}
			keys, err := selection.ReadFile(args[2])
			if err != nil {
				return err
			}

			rep, finish := newReporter(cmd)
			_, err = convert(job.Input, job.Output, keys, submodel.Options{Reporter: rep})
			return finishRun(err, finish())
		},
	}
}

var landUseCmd = keyedCommand("landuse",
	"Copy a land-use area file keeping only submodel elements",
	`Landuse reads an IWFM land-use area time series file and writes a copy
with only the rows of elements listed in the selection file. Every time step
keeps the surviving rows in their original order.`,
	submodel.LandUse,
)

var inflowCmd = keyedCommand("inflow",
	"Copy a stream inflow file for the submodel stream nodes",
	`Inflow reads an IWFM stream inflow file and writes a copy in which every
inflow row whose stream node is not listed in the selection file has its
node set to 0. No rows are removed, so the inflow time series columns stay
aligned.`,
	submodel.StreamInflow,
)

var lakesCmd = keyedCommand("lakes",
	"Write the submodel lake file",
	`Lakes reads an IWFM preprocessor lake file and writes the lakes that have
at least one element in the selection file, each reduced to those elements.
No file is written when the submodel has no lake.`,
	submodel.Lakes,
)

func init() {
	rootCmd.AddCommand(landUseCmd)
	rootCmd.AddCommand(inflowCmd)
	rootCmd.AddCommand(lakesCmd)
}
