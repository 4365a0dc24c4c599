// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/iwfm-submodel/internal/report"
	"github.com/pdiddy/iwfm-submodel/pkg/types"
)

// --- test helpers ---

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const (
	elementsFile = "C submodel elements\n 2  1\n 4  2\n 10 3\n"
	snodesFile   = "C submodel stream nodes\n 10\n 30\n"

	landUseFile = `C land use
    1.0    / FACTLN
    1      / NSPLU
    0      / NFQLU
           / DSSFL
10/31/1990_24:00	1	1	2
	2	3	4
	4	5	6
`
	inflowFile = `    2     / NQIN
    1.0   / FACTQ
    1     / NSPQ
    0     / NFQQ
          / DSSFL
    10    1
    20    2
10/31/1990_24:00    5.0    6.0
`
	lakeFile = `    1     / NLAKES
    1    1    5    2    10    Lake One
                            11
`
	preprocFile = `C preprocessor
    Model
    Preprocessor
    v2015
    PreProcessor.bin          / PREOUT
    Elements.dat              / ELEMFL
    Nodes.dat                 / NODEFL
    Strata.dat                / STRATFL
    Stream.dat                / STRMFL
    Lake.dat                  / LAKEFL
`
)

const planFile = `elements: elements.dat
stream_nodes: snodes.dat
land_use:
  - input: LandUse.dat
    output: sub/LandUse.dat
stream_inflow:
  - input: StreamInflow.dat
    output: sub/StreamInflow.dat
lakes:
  input: Lake.dat
  output: sub/Lake.dat
preprocessor:
  input: PreProcessor.in
  output: sub/PreProcessor.in
  files:
    preout: Sub.bin
    element: Sub_Elements.dat
    node: Sub_Nodes.dat
    stratigraphy: Sub_Strata.dat
    stream: Sub_Stream.dat
    lake: Sub_Lake.dat
`

func setupPlan(t *testing.T) (planPath, dir string) {
	t.Helper()
	dir = t.TempDir()
	writeFile(t, dir, "elements.dat", elementsFile)
	writeFile(t, dir, "snodes.dat", snodesFile)
	writeFile(t, dir, "LandUse.dat", landUseFile)
	writeFile(t, dir, "StreamInflow.dat", inflowFile)
	writeFile(t, dir, "Lake.dat", lakeFile)
	writeFile(t, dir, "PreProcessor.in", preprocFile)
	return writeFile(t, dir, "plan.yaml", planFile), dir
}

func TestLoad_ResolvesRelativePaths(t *testing.T) {
	planPath, dir := setupPlan(t)

	p, err := Load(planPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "elements.dat"), p.Elements)
	assert.Equal(t, filepath.Join(dir, "sub", "LandUse.dat"), p.LandUse[0].Output)
	assert.Equal(t, filepath.Join(dir, "Lake.dat"), p.Lakes.Input)
	assert.Equal(t, filepath.Join(dir, "PreProcessor.in"), p.Preprocessor.Input)
	assert.Equal(t, "Sub_Elements.dat", p.Preprocessor.Files.Element, "file names inside the main file are not paths on disk")
	assert.Equal(t, 4, p.Jobs())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "unknown field",
			content: "elements: e.dat\nland_uses: []\n",
			errMsg:  "land_uses",
		},
		{
			name:    "land use without elements",
			content: "land_use:\n  - input: a.dat\n    output: b.dat\n",
			errMsg:  "elements file is required",
		},
		{
			name:    "missing output",
			content: "stream_nodes: s.dat\nstream_inflow:\n  - input: a.dat\n",
			errMsg:  "output file is required",
		},
		{
			name:    "empty plan",
			content: "elements: e.dat\n",
			errMsg:  "plan has no jobs",
		},
		{
			name:    "lake name without lakes job",
			content: "preprocessor:\n  input: a.in\n  output: b.in\n  files:\n    preout: x.bin\n    element: e.dat\n    node: n.dat\n    stratigraphy: s.dat\n    stream: st.dat\n    lake: l.dat\n",
			errMsg:  "lake file name requires a lakes job",
		},
		{
			name:    "preprocessor missing names",
			content: "preprocessor:\n  input: a.in\n  output: b.in\n  files:\n    preout: x.bin\n",
			errMsg:  "element file name is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "plan.yaml", tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestRun(t *testing.T) {
	planPath, dir := setupPlan(t)
	p, err := Load(planPath)
	require.NoError(t, err)

	clock := clockwork.NewFakeClock()
	var events []report.Event
	rep := report.Func(func(e report.Event) {
		events = append(events, e)
		clock.Advance(time.Second)
	})

	result, err := Run(p, Options{Reporter: rep, Clock: clock})
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 4, result.Converted)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 4, result.Total())
	assert.Equal(t, 4*time.Second, result.Elapsed)
	require.Len(t, events, 4)

	kinds := make([]types.ConversionKind, len(result.Results))
	for i, r := range result.Results {
		kinds[i] = r.Kind
	}
	assert.Equal(t, []types.ConversionKind{
		types.KindLandUse, types.KindStreamInflow, types.KindLake, types.KindPreproc,
	}, kinds)

	assert.Equal(t, 2, result.Results[0].Kept)
	assert.Equal(t, 1, result.Results[1].Zeroed)

	data, err := os.ReadFile(filepath.Join(dir, "sub", "PreProcessor.in"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "    Sub_Lake.dat ")
}

func TestRun_FailedJobDoesNotStopRun(t *testing.T) {
	planPath, dir := setupPlan(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "LandUse.dat")))
	p, err := Load(planPath)
	require.NoError(t, err)

	result, err := Run(p, Options{})
	require.NoError(t, err)
	assert.True(t, result.HasFailures())
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 3, result.Converted)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "LandUse.dat")
}

func TestRun_NoLakeBlanksPreprocessorEntry(t *testing.T) {
	planPath, dir := setupPlan(t)
	writeFile(t, dir, "elements.dat", "2\n4\n")
	p, err := Load(planPath)
	require.NoError(t, err)

	result, err := Run(p, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 3, result.Converted)

	data, err := os.ReadFile(filepath.Join(dir, "sub", "PreProcessor.in"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Sub_Lake.dat")
	assert.Contains(t, string(data), "/ LAKEFL")
}

func TestRun_MissingSelection(t *testing.T) {
	planPath, dir := setupPlan(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "elements.dat")))
	p, err := Load(planPath)
	require.NoError(t, err)

	_, err = Run(p, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "elements.dat")
}

func TestWriteSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.yaml")
	in := BatchResult{
		RunID:     "run-1",
		Converted: 1,
		Elapsed:   1500 * time.Millisecond,
		Results: []types.ConversionResult{
			{Kind: types.KindLandUse, Input: "a", Output: "b", Records: 4, Kept: 2, Dropped: 2, Written: true},
		},
	}
	require.NoError(t, WriteSummary(path, in))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "elapsed: 1.5s")

	var out BatchResult
	require.NoError(t, yaml.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestLoad_PreprocessorWithoutLake(t *testing.T) {
	content := "preprocessor:\n  input: a.in\n  output: b.in\n  files:\n    preout: x.bin\n    element: e.dat\n    node: n.dat\n    stratigraphy: s.dat\n    stream: st.dat\n"
	path := writeFile(t, t.TempDir(), "plan.yaml", content)

	p, err := Load(path)
	require.NoError(t, err)
	assert.Nil(t, p.Lakes)
	assert.Empty(t, p.Preprocessor.Files.Lake)
}
