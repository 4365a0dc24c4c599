// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package submodel

import (
	"strings"

	"github.com/pdiddy/iwfm-submodel/internal/positional"
	"github.com/pdiddy/iwfm-submodel/pkg/types"
)

const (
	// preprocTitles is the number of title lines before the file names.
	preprocTitles = 3

	// Column layout of a file name line in the preprocessor main file.
	preprocFront = 4
	preprocWidth = 53
)

// preprocEntry is one file name line of the main file.
type preprocEntry struct {
	index int
	name  string
	rest  []string // tokens after the name, e.g. "/ ELEMFL"
}

// readPreprocEntries locates the six file name lines in order: output,
// element, node, stratigraphy, stream, lake.
func readPreprocEntries(tbl *positional.Table) ([6]preprocEntry, error) {
	var entries [6]preprocEntry
	idx := tbl.Data
	for i := range entries {
		if i > 0 {
			var err error
			if idx, err = tbl.SkipAhead(idx+1, 0); err != nil {
				return entries, err
			}
		}
		f := tbl.Fields(idx)
		entries[i] = preprocEntry{index: idx, name: f[0], rest: f[1:]}
	}
	return entries, nil
}

// ReadPreproc returns the file names listed in a preprocessor main file and
// whether the model has a lake file. A lake entry starting with '/' means
// the model has none.
func ReadPreproc(path string) (types.PreprocFiles, bool, error) {
	tbl, err := positional.Read(path, preprocTitles)
	if err != nil {
		return types.PreprocFiles{}, false, err
	}
	e, err := readPreprocEntries(tbl)
	if err != nil {
		return types.PreprocFiles{}, false, err
	}

	files := types.PreprocFiles{
		Output:       e[0].name,
		Element:      e[1].name,
		Node:         e[2].name,
		Stratigraphy: e[3].name,
		Stream:       e[4].name,
		Lake:         e[5].name,
	}
	if strings.HasPrefix(files.Lake, "/") {
		files.Lake = ""
	}
	return files, files.Lake != "", nil
}

// Preproc writes a copy of the preprocessor main file in that lists the
// submodel file names in files. The lake entry is set only when the model
// has a lake file, hasLake reports the submodel keeps a lake, and
// files.Lake is given; otherwise it is blanked.
func Preproc(in, out string, files types.PreprocFiles, hasLake bool, opts Options) (types.ConversionResult, error) {
	res := types.ConversionResult{Kind: types.KindPreproc, Input: in, Output: out}
	res, err := preproc(res, files, hasLake)
	opts.report(res, err)
	return res, err
}

func preproc(res types.ConversionResult, files types.PreprocFiles, hasLake bool) (types.ConversionResult, error) {
	tbl, err := positional.Read(res.Input, preprocTitles)
	if err != nil {
		return res, err
	}
	e, err := readPreprocEntries(tbl)
	if err != nil {
		return res, err
	}

	lines := append([]string(nil), tbl.Lines...)
	names := []string{files.Output, files.Element, files.Node, files.Stratigraphy, files.Stream}
	for i, name := range names {
		lines[e[i].index] = preprocLine(name, e[i].rest)
	}

	lake := e[5]
	res.Records = len(e)
	res.Kept = len(names)
	if !strings.HasPrefix(lake.name, "/") && hasLake && files.Lake != "" {
		lines[lake.index] = preprocLine(files.Lake, lake.rest)
		res.Kept++
	} else {
		rest := lake.rest
		if strings.HasPrefix(lake.name, "/") {
			rest = append([]string{lake.name}, rest...)
		}
		if len(rest) == 0 || rest[0] != "/" {
			rest = append([]string{"/"}, rest...)
		}
		lines[lake.index] = preprocLine(" ", rest)
		res.Dropped++
	}

	if err := positional.WriteLines(res.Output, lines); err != nil {
		return res, err
	}
	res.Written = true
	return res, nil
}

func preprocLine(name string, rest []string) string {
	line := positional.PadBoth(name, preprocFront, preprocWidth)
	if len(name) >= preprocWidth {
		line += " "
	}
	return line + strings.Join(rest, " ")
}
