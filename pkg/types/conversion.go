// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionKind names the file family a conversion works on.
type ConversionKind string

const (
	KindLandUse      ConversionKind = "land use"
	KindStreamInflow ConversionKind = "stream inflow"
	KindPreproc      ConversionKind = "preprocessor"
	KindLake         ConversionKind = "lake"
)

// ConversionResult summarizes one submodel file rewrite.
type ConversionResult struct {
	Kind   ConversionKind `json:"kind" yaml:"kind"`
	Input  string         `json:"input" yaml:"input"`
	Output string         `json:"output" yaml:"output"`

	// Records is the number of keyed records read from the input. For
	// time series files this counts the rows of one time step.
	Records int `json:"records" yaml:"records"`

	// Kept and Dropped partition Records by selection membership.
	Kept    int `json:"kept" yaml:"kept"`
	Dropped int `json:"dropped" yaml:"dropped"`

	// Zeroed counts records kept with a reference field set to 0.
	Zeroed int `json:"zeroed" yaml:"zeroed"`

	// Written is false when there was nothing to write (a submodel with no
	// lakes produces no lake file).
	Written bool `json:"written" yaml:"written"`
}
