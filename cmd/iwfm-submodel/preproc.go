// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/iwfm-submodel/internal/submodel"
	"github.com/pdiddy/iwfm-submodel/pkg/types"
)

var preprocCmd = &cobra.Command{
	Use:   "preproc <input> [output]",
	Short: "Point a preprocessor main file at the submodel files",
	Long: `Preproc reads an IWFM preprocessor main file and writes a copy listing the
submodel's output, element, node, stratigraphy, stream, and lake file names.

The lake entry is written only when the model has a lake file and --lake is
given; otherwise the entry is blanked so the preprocessor reads no lakes.

With --list, the file names of the input are printed as YAML and nothing is
written.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPreproc,
}

func init() {
	f := preprocCmd.Flags()
	f.String("preout", "", "preprocessor binary output file name")
	f.String("element", "", "element file name")
	f.String("node", "", "node file name")
	f.String("stratigraphy", "", "stratigraphy file name")
	f.String("stream", "", "stream file name")
	f.String("lake", "", "lake file name (omit when the submodel has no lake)")
	f.Bool("list", false, "print the file names of the input and exit")
	rootCmd.AddCommand(preprocCmd)
}

func runPreproc(cmd *cobra.Command, args []string) error {
	if list, _ := cmd.Flags().GetBool("list"); list {
		files, _, err := submodel.ReadPreproc(args[0])
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(files)
		if err != nil {
			return fmt.Errorf("marshaling file names: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("preproc requires an output file unless --list is given")
	}

	f := cmd.Flags()
	job := types.PreprocJob{FileJob: types.FileJob{Input: args[0], Output: args[1]}}
	job.Files.Output, _ = f.GetString("preout")
	job.Files.Element, _ = f.GetString("element")
	job.Files.Node, _ = f.GetString("node")
	job.Files.Stratigraphy, _ = f.GetString("stratigraphy")
	job.Files.Stream, _ = f.GetString("stream")
	job.Files.Lake, _ = f.GetString("lake")
	if err := job.Validate(); err != nil {
		return err
	}

	rep, finish := newReporter(cmd)
	hasLake := job.Files.Lake != ""
	_, err := submodel.Preproc(job.Input, job.Output, job.Files, hasLake, submodel.Options{Reporter: rep})
	return finishRun(err, finish())
}
