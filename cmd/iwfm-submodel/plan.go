// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/iwfm-submodel/internal/plan"
)

var planCmd = &cobra.Command{
	Use:   "plan <plan.yaml>",
	Short: "Run every conversion listed in a plan file",
	Long: `Plan reads a YAML plan naming the element and stream-node selection files
and the land-use, stream inflow, lake, and preprocessor files to rewrite,
then runs each conversion. A failed conversion is reported and the rest
still run; the command exits non-zero if any failed.

Relative paths in the plan are resolved against the plan's directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().String("summary", "", "write a YAML run summary to this file")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	p, err := plan.Load(args[0])
	if err != nil {
		return err
	}

	rep, finish := newReporter(cmd)
	result, err := plan.Run(p, plan.Options{Reporter: rep, Log: logger})
	if err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Converted %d, skipped %d, failed %d in %s\n",
			result.Converted, result.Skipped, result.Failed, result.Elapsed)
		if path, _ := cmd.Flags().GetString("summary"); path != "" {
			err = plan.WriteSummary(path, result)
		}
	}
	if err := errors.Join(err, finish()); err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d of %d conversions failed", result.Failed, result.Total())
	}
	return nil
}
