// Package trace records an opt-in, line-oriented JSON execution trace
// (one JSON object per call/return event) for the --trace-json CLI flag.
// It builds each event with sjson rather than encoding/json so a Recorder
// can append fields to an already-built line without round-tripping it
// through a struct, and reads them back with gjson in tests.
package trace

import (
	"fmt"
	"io"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Event is a single call or return observed by the interpreter.
type Event struct {
	Kind     string // "call" or "return"
	Name     string
	Line     int
	Depth    int
	ArgCount int
}

// Recorder writes one JSON line per event to an underlying writer. A nil
// Recorder is valid and silently discards events, so call sites never
// need to check whether tracing is enabled before calling Emit.
type Recorder struct {
	w io.Writer
}

// NewRecorder returns a Recorder writing to w. Passing a nil w panics on
// first Emit by design -- callers that want tracing off should pass a
// nil *Recorder instead, not a Recorder wrapping a discarded writer.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w}
}

// Emit appends one trace line. Errors serializing or writing the event
// are swallowed: a broken trace stream must never abort the run it is
// merely observing.
func (r *Recorder) Emit(e Event) {
	if r == nil {
		return
	}
	line, err := sjson.Set("{}", "kind", e.Kind)
	if err != nil {
		return
	}
	line, err = sjson.Set(line, "name", e.Name)
	if err != nil {
		return
	}
	line, err = sjson.Set(line, "line", e.Line)
	if err != nil {
		return
	}
	line, err = sjson.Set(line, "depth", e.Depth)
	if err != nil {
		return
	}
	line, err = sjson.Set(line, "argCount", e.ArgCount)
	if err != nil {
		return
	}
	fmt.Fprintln(r.w, line)
}

// ParseEvent reads back a single trace line, used by tests and by any
// downstream tooling that wants to inspect a recorded trace without
// depending on this package's Event type.
func ParseEvent(line string) Event {
	result := gjson.Parse(line)
	return Event{
		Kind:     result.Get("kind").String(),
		Name:     result.Get("name").String(),
		Line:     int(result.Get("line").Int()),
		Depth:    int(result.Get("depth").Int()),
		ArgCount: int(result.Get("argCount").Int()),
	}
}
