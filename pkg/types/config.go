// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// LogConfig holds logging settings shared by every subcommand.
type LogConfig struct {
	// Level is the zap level name: debug, info, warn, or error (default info).
	Level string `json:"level" yaml:"level"`

	// Format selects the encoder: console or json (default console).
	Format string `json:"format" yaml:"format"`
}

// FileJob names one input file and the submodel file written from it.
type FileJob struct {
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"`
}

// Validate checks that both paths are set.
func (j FileJob) Validate() error {
	if j.Input == "" {
		return errors.New("input file is required")
	}
	if j.Output == "" {
		return errors.New("output file is required")
	}
	if j.Input == j.Output {
		return fmt.Errorf("output %s would overwrite the input", j.Output)
	}
	return nil
}

// PreprocJob rewrites a preprocessor main file with the submodel file names.
type PreprocJob struct {
	FileJob `yaml:",inline"`

	// Files are the names written into the new main file.
	Files PreprocFiles `json:"files" yaml:"files"`
}

// Validate checks the paths and that every required file name is set. The
// lake file may be empty when the submodel has no lakes.
func (j PreprocJob) Validate() error {
	if err := j.FileJob.Validate(); err != nil {
		return err
	}
	return j.Files.Validate()
}

// Plan describes a batch of submodel conversions that share the same
// element and stream-node selections.
type Plan struct {
	// Elements is the element list file used by land-use and lake jobs.
	Elements string `json:"elements" yaml:"elements"`

	// StreamNodes is the stream-node list file used by stream inflow jobs.
	StreamNodes string `json:"stream_nodes" yaml:"stream_nodes"`

	LandUse      []FileJob   `json:"land_use" yaml:"land_use"`
	StreamInflow []FileJob   `json:"stream_inflow" yaml:"stream_inflow"`
	Lakes        *FileJob    `json:"lakes,omitempty" yaml:"lakes,omitempty"`
	Preprocessor *PreprocJob `json:"preprocessor,omitempty" yaml:"preprocessor,omitempty"`
}

// Validate checks the plan before any file is touched: each job must be
// complete and have the selection file it filters by. A preprocessor lake
// name needs a lakes job, since only that job decides whether a lake
// survives.
func (p *Plan) Validate() error {
	var errs []error
	if (len(p.LandUse) > 0 || p.Lakes != nil) && p.Elements == "" {
		errs = append(errs, errors.New("elements file is required for land_use and lakes jobs"))
	}
	if len(p.StreamInflow) > 0 && p.StreamNodes == "" {
		errs = append(errs, errors.New("stream_nodes file is required for stream_inflow jobs"))
	}
	for i, j := range p.LandUse {
		if err := j.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("land_use[%d]: %w", i, err))
		}
	}
	for i, j := range p.StreamInflow {
		if err := j.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("stream_inflow[%d]: %w", i, err))
		}
	}
	if p.Lakes != nil {
		if err := p.Lakes.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("lakes: %w", err))
		}
	}
	if p.Preprocessor != nil {
		if err := p.Preprocessor.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("preprocessor: %w", err))
		}
		if p.Preprocessor.Files.Lake != "" && p.Lakes == nil {
			errs = append(errs, errors.New("preprocessor: lake file name requires a lakes job"))
		}
	}
	if p.Jobs() == 0 {
		errs = append(errs, errors.New("plan has no jobs"))
	}
	return errors.Join(errs...)
}

// Jobs returns the number of conversions in the plan.
func (p *Plan) Jobs() int {
	n := len(p.LandUse) + len(p.StreamInflow)
	if p.Lakes != nil {
		n++
	}
	if p.Preprocessor != nil {
		n++
	}
	return n
}
