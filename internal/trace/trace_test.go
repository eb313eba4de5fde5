package trace

import (
	"bytes"
	"strings"
	"testing"
)

func TestEmitAndParseRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecorder(&buf)
	r.Emit(Event{Kind: "call", Name: "fib", Line: 3, Depth: 2, ArgCount: 1})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}

	got := ParseEvent(lines[0])
	want := Event{Kind: "call", Name: "fib", Line: 3, Depth: 2, ArgCount: 1}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestNilRecorderDiscardsEvents(t *testing.T) {
	var r *Recorder
	r.Emit(Event{Kind: "call", Name: "noop"})
}
