package diag

import (
	"io"
	"log"
)

// Logger is the interpreter's verbose-mode diagnostic sink. No structured
// logging library appears anywhere in the example corpus this tool was
// grounded on (checked across every go.mod in the retrieval pack for
// zerolog/logrus/zap/slog-style packages); the teacher's own --verbose
// flag writes plain fmt.Fprintf lines to stderr, so Logger follows suit
// with the standard library's log.Logger rather than reaching for an
// unsupported dependency.
type Logger struct {
	enabled bool
	l       *log.Logger
}

// NewLogger creates a Logger writing to w, active only when enabled is
// true (wired to the CLI's --verbose flag).
func NewLogger(w io.Writer, enabled bool) *Logger {
	return &Logger{enabled: enabled, l: log.New(w, "", 0)}
}

func (lg *Logger) Stagef(stage, format string, args ...any) {
	if !lg.enabled {
		return
	}
	lg.l.Printf("["+stage+"] "+format, args...)
}
