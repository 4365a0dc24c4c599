// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for iwfm-submodel: the plan
// and job configuration, the file names of a preprocessor main file, lakes,
// and conversion results.
package types
