// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package selection holds the set of element, node, or stream-node numbers
// that make up a submodel.
package selection

import (
	"fmt"
	"sort"

	"github.com/pdiddy/iwfm-submodel/internal/positional"
)

// Set is an immutable set of integer keys. The zero value is empty.
type Set struct {
	keys map[int]struct{}
}

// New returns a set holding keys. Duplicates are ignored.
func New(keys ...int) Set {
	m := make(map[int]struct{}, len(keys))
	for _, k := range keys {
		m[k] = struct{}{}
	}
	return Set{keys: m}
}

// Contains reports whether k is in the set.
func (s Set) Contains(k int) bool {
	_, ok := s.keys[k]
	return ok
}

// Len returns the number of keys.
func (s Set) Len() int {
	return len(s.keys)
}

// Keys returns the keys in ascending order.
func (s Set) Keys() []int {
	out := make([]int, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// ReadFile reads a submodel list file: one entry per non-comment line, the
// key in the first column. Later columns (for example the element number
// in the submodel) are ignored.
func ReadFile(path string) (Set, error) {
	tbl, err := positional.Read(path, 0)
	if err != nil {
		return Set{}, fmt.Errorf("reading selection: %w", err)
	}

	var keys []int
	for i := tbl.Data; i < len(tbl.Lines); i++ {
		if positional.IsComment(tbl.Lines[i]) {
			continue
		}
		k, err := tbl.Int(i, 0)
		if err != nil {
			return Set{}, fmt.Errorf("reading selection: %w", err)
		}
		keys = append(keys, k)
	}
	return New(keys...), nil
}
