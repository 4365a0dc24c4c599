// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// PreprocFiles holds the file names listed in a preprocessor main file.
type PreprocFiles struct {
	// Output is the preprocessor binary output file (PREOUT).
	Output string `json:"preout" yaml:"preout"`

	Element      string `json:"element" yaml:"element"`
	Node         string `json:"node" yaml:"node"`
	Stratigraphy string `json:"stratigraphy" yaml:"stratigraphy"`
	Stream       string `json:"stream" yaml:"stream"`

	// Lake is empty when the model has no lake file.
	Lake string `json:"lake,omitempty" yaml:"lake,omitempty"`
}

// Validate checks that all names other than Lake are set.
func (f PreprocFiles) Validate() error {
	var errs []error
	for _, v := range []struct{ name, value string }{
		{"preout", f.Output},
		{"element", f.Element},
		{"node", f.Node},
		{"stratigraphy", f.Stratigraphy},
		{"stream", f.Stream},
	} {
		if v.value == "" {
			errs = append(errs, errors.New(v.name+" file name is required"))
		}
	}
	return errors.Join(errs...)
}

// Lake is one lake of a preprocessor lake file.
type Lake struct {
	// ID is the lake number as written in the file.
	ID string `json:"id" yaml:"id"`

	// DestType and Dest identify where lake outflow goes, kept verbatim.
	DestType string `json:"dest_type" yaml:"dest_type"`
	Dest     string `json:"dest" yaml:"dest"`

	// Elements are the lake's elements, in file order.
	Elements []int `json:"elements" yaml:"elements"`

	// Trailer is the rest of the lake's first line (usually its name).
	Trailer string `json:"trailer,omitempty" yaml:"trailer,omitempty"`
}
