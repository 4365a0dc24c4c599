// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plan runs a batch of submodel conversions described by a YAML
// plan file. Jobs share the element and stream-node selections of the plan.
package plan

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/iwfm-submodel/internal/report"
	"github.com/pdiddy/iwfm-submodel/internal/selection"
	"github.com/pdiddy/iwfm-submodel/internal/submodel"
	"github.com/pdiddy/iwfm-submodel/pkg/types"
)

// Load reads and validates a plan. Relative paths in the plan are resolved
// against the directory holding the plan file.
func Load(path string) (*types.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan: %w", err)
	}

	var p types.Plan
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("parsing plan %s: %w", path, err)
	}

	resolve(&p, filepath.Dir(path))
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan %s: %w", path, err)
	}
	return &p, nil
}

func resolve(p *types.Plan, dir string) {
	abs := func(s *string) {
		if *s != "" && !filepath.IsAbs(*s) {
			*s = filepath.Join(dir, *s)
		}
	}
	job := func(j *types.FileJob) {
		abs(&j.Input)
		abs(&j.Output)
	}

	abs(&p.Elements)
	abs(&p.StreamNodes)
	for i := range p.LandUse {
		job(&p.LandUse[i])
	}
	for i := range p.StreamInflow {
		job(&p.StreamInflow[i])
	}
	if p.Lakes != nil {
		job(p.Lakes)
	}
	if p.Preprocessor != nil {
		job(&p.Preprocessor.FileJob)
	}
}

// Options configures Run.
type Options struct {
	// Reporter receives one event per job, with Elapsed set.
	Reporter report.Reporter

	// Log receives run-level messages. Nil means zap.NewNop().
	Log *zap.Logger

	// Clock measures elapsed time. Nil means the real clock.
	Clock clockwork.Clock
}

// BatchResult holds the outcome of a plan run.
type BatchResult struct {
	RunID     string                   `yaml:"run_id"`
	Converted int                      `yaml:"converted"`
	Skipped   int                      `yaml:"skipped"`
	Failed    int                      `yaml:"failed"`
	Elapsed   time.Duration            `yaml:"elapsed"`
	Results   []types.ConversionResult `yaml:"results"`
	Errors    []string                 `yaml:"errors,omitempty"`
}

// Total returns the number of jobs run.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any job failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Run executes the jobs of p in order: land use, stream inflow, lakes, then
// the preprocessor main file, whose lake entry depends on whether the lake
// job kept any lake. A failed job is counted and the run continues. Run
// returns an error only when a selection file cannot be read.
func Run(p *types.Plan, opts Options) (BatchResult, error) {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	result := BatchResult{RunID: uuid.NewString()}
	log = log.With(zap.String("run_id", result.RunID))
	start := clock.Now()

	var elems, snodes selection.Set
	var err error
	if p.Elements != "" {
		if elems, err = selection.ReadFile(p.Elements); err != nil {
			return result, err
		}
		log.Debug("loaded element selection", zap.String("path", p.Elements), zap.Int("elements", elems.Len()))
	}
	if p.StreamNodes != "" {
		if snodes, err = selection.ReadFile(p.StreamNodes); err != nil {
			return result, err
		}
		log.Debug("loaded stream node selection", zap.String("path", p.StreamNodes), zap.Int("stream_nodes", snodes.Len()))
	}

	run := func(fn func(submodel.Options) (types.ConversionResult, error)) types.ConversionResult {
		jobStart := clock.Now()
		sopts := submodel.Options{Reporter: report.Func(func(e report.Event) {
			e.Elapsed = clock.Since(jobStart)
			if opts.Reporter != nil {
				opts.Reporter.Report(e)
			}
		})}

		res, err := fn(sopts)
		result.Results = append(result.Results, res)
		switch {
		case err != nil:
			result.Failed++
			result.Errors = append(result.Errors, err.Error())
		case !res.Written:
			result.Skipped++
		default:
			result.Converted++
		}
		return res
	}

	for _, j := range p.LandUse {
		run(func(o submodel.Options) (types.ConversionResult, error) {
			return submodel.LandUse(j.Input, j.Output, elems, o)
		})
	}
	for _, j := range p.StreamInflow {
		run(func(o submodel.Options) (types.ConversionResult, error) {
			return submodel.StreamInflow(j.Input, j.Output, snodes, o)
		})
	}

	hasLake := false
	if p.Lakes != nil {
		res := run(func(o submodel.Options) (types.ConversionResult, error) {
			return submodel.Lakes(p.Lakes.Input, p.Lakes.Output, elems, o)
		})
		hasLake = res.Written
	}
	if p.Preprocessor != nil {
		j := p.Preprocessor
		run(func(o submodel.Options) (types.ConversionResult, error) {
			return submodel.Preproc(j.Input, j.Output, j.Files, hasLake, o)
		})
	}

	result.Elapsed = clock.Since(start)
	log.Info("plan finished",
		zap.Int("converted", result.Converted),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
		zap.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

// WriteSummary saves r as YAML to path.
func WriteSummary(path string, r BatchResult) error {
	data, err := yaml.Marshal(&r)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing summary %s: %w", path, err)
	}
	return nil
}
