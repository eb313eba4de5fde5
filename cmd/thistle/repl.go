package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/thistlelang/thistle/internal/interp"
	"github.com/thistlelang/thistle/internal/lexer"
	"github.com/thistlelang/thistle/internal/parser"
	"github.com/thistlelang/thistle/internal/resolver"
)

// runREPL is the zero-argument root-command fallback spec.md §6 leaves
// unspecified. It reads one line of source at a time, running each
// through the full pipeline and sharing a single Interpreter (and so a
// single global Environment) across lines, the way a Lox-family REPL
// lets a later line see variables a prior line declared.
func runREPL(stdin io.Reader, stdout io.Writer) {
	interpreter := interp.New(stdout, stdin)
	scanner := bufio.NewScanner(stdin)

	fmt.Fprint(stdout, "> ")
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			fmt.Fprint(stdout, "> ")
			continue
		}

		l := lexer.New(line)
		tokens := l.Tokens()
		if errs := l.Errors(); len(errs) > 0 {
			printLexErrors(errs)
			fmt.Fprint(stdout, "> ")
			continue
		}

		p := parser.New(tokens)
		program := p.ParseProgram()
		if errs := p.Errors(); len(errs) > 0 {
			printParseErrors(errs)
			fmt.Fprint(stdout, "> ")
			continue
		}

		depths, resolveErrs := resolver.New().Resolve(program)
		if len(resolveErrs) > 0 {
			printResolveErrors(resolveErrs)
			fmt.Fprint(stdout, "> ")
			continue
		}

		if err := interpreter.Interpret(program, depths); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		fmt.Fprint(stdout, "> ")
	}
}
