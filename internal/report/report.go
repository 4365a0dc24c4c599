// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report delivers conversion status events to the console, the
// structured log, and conversion metrics. Operations receive a Reporter
// explicitly instead of consulting a global verbose flag.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/iwfm-submodel/pkg/types"
)

// Event describes the outcome of one conversion.
type Event struct {
	types.ConversionResult

	// Elapsed is the wall time of the conversion, when measured.
	Elapsed time.Duration

	// Err is set when the conversion failed.
	Err error
}

// Reporter receives conversion events.
type Reporter interface {
	Report(Event)
}

// Nop discards every event.
var Nop Reporter = nopReporter{}

type nopReporter struct{}

func (nopReporter) Report(Event) {}

// Func adapts a function to the Reporter interface.
type Func func(Event)

func (f Func) Report(e Event) { f(e) }

// Writer returns a Reporter that prints one status line per event to w.
func Writer(w io.Writer) Reporter {
	return Func(func(e Event) {
		switch {
		case e.Err != nil:
			fmt.Fprintf(w, "failed:  %s file %s (%v)\n", e.Kind, e.Input, e.Err)
		case !e.Written:
			fmt.Fprintf(w, "skipped: %s file %s (nothing in submodel)\n", e.Kind, e.Input)
		default:
			fmt.Fprintf(w, "Wrote %s file %s\n", e.Kind, e.Output)
		}
	})
}

// Multi fans events out to every reporter in order. Nil entries are skipped.
func Multi(rs ...Reporter) Reporter {
	return Func(func(e Event) {
		for _, r := range rs {
			if r != nil {
				r.Report(e)
			}
		}
	})
}
