// Package diag collects lexical, syntax, and semantic errors across a
// single run and renders the two diagnostic formats spec.md requires.
package diag

import (
	"fmt"
	"io"
)

// Error is any diagnostic this package knows how to render: it names the
// offending line, the lexeme at fault (empty for a pure runtime error),
// and a message.
type Error struct {
	Line    int
	Lexeme  string
	Message string
	Kind    string // "lex", "parse", "resolve", "runtime"
}

func (e *Error) Error() string {
	if e.Kind == "runtime" {
		return fmt.Sprintf("Runtime Error: %s - [Line: %d]", e.Message, e.Line)
	}
	return fmt.Sprintf("[Line: %d] at '%s' %s", e.Line, e.Lexeme, e.Message)
}

// List is an ordered collection of static diagnostics (lex/parse/resolve),
// printed together in one shot -- the same "accumulate, then report" idiom
// the teacher's parser/lexer error slices follow.
type List []*Error

// Print writes every diagnostic to w, one per line.
func (l List) Print(w io.Writer) {
	for _, e := range l {
		fmt.Fprintln(w, e.Error())
	}
}

func (l List) HasErrors() bool { return len(l) > 0 }
