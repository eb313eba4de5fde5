package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thistlelang/thistle/internal/config"
	"github.com/thistlelang/thistle/internal/diag"
	"github.com/thistlelang/thistle/internal/interp"
	"github.com/thistlelang/thistle/internal/lexer"
	"github.com/thistlelang/thistle/internal/parser"
	"github.com/thistlelang/thistle/internal/resolver"
	"github.com/thistlelang/thistle/internal/trace"
)

var (
	runDumpAST    bool
	runTraceJSON  string
	runConfigPath string
)

var runCmd = &cobra.Command{
	Use:   "run <path>",
	Short: "Run a Thistle script",
	Long: `Run reads a Thistle source file, tokenizes, parses, resolves, and
evaluates it in one pass.

Exit codes: 0 on clean completion, 65 on a parse or resolve error, 67 on
a failure reading the file, 70 on a runtime error. Passing more than one
path prints usage and exits 0.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runDumpAST, "dump-ast", false, "print the parsed program before evaluating it")
	runCmd.Flags().StringVar(&runTraceJSON, "trace-json", "", "write a JSON call/return trace to this path")
	runCmd.Flags().StringVar(&runConfigPath, "config", "", "path to a thistle.yaml run configuration")
}

func runScript(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		fmt.Fprintln(os.Stdout, cmd.UsageString())
		return nil
	}
	if len(args) == 0 {
		fmt.Fprintln(os.Stdout, cmd.UsageString())
		return nil
	}

	logger := diag.NewLogger(os.Stderr, verbose)

	path := args[0]
	logger.Stagef("read", "reading %s", path)
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", path, err)
		return &exitError{code: 67}
	}

	cfg, err := config.Load(runConfigPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return &exitError{code: 67}
	}

	logger.Stagef("lex", "tokenizing %d bytes", len(src))
	l := lexer.New(string(src))
	tokens := l.Tokens()
	if errs := l.Errors(); len(errs) > 0 {
		printLexErrors(errs)
		return &exitError{code: 65}
	}

	logger.Stagef("parse", "parsing %d tokens", len(tokens))
	p := parser.New(tokens)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		printParseErrors(errs)
		return &exitError{code: 65}
	}

	logger.Stagef("resolve", "resolving %d statements", len(program.Statements))
	depths, resolveErrs := resolver.New().Resolve(program)
	if len(resolveErrs) > 0 {
		printResolveErrors(resolveErrs)
		return &exitError{code: 65}
	}

	if runDumpAST {
		fmt.Println(program.String())
	}

	interpreter := interp.New(os.Stdout, os.Stdin)
	interpreter.SetMaxCallDepth(cfg.MaxCallDepth)
	interpreter.SetInputAllowed(cfg.InputAllowed())

	traceFile := runTraceJSON
	if traceFile == "" {
		traceFile = cfg.TraceJSON
	}
	if traceFile != "" {
		f, err := os.Create(traceFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error creating trace file %s: %v\n", traceFile, err)
			return &exitError{code: 67}
		}
		defer f.Close()
		interpreter.SetTracer(trace.NewRecorder(f))
	}

	logger.Stagef("eval", "executing program")
	if err := interpreter.Interpret(program, depths); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return &exitError{code: 70}
	}

	return nil
}

func printLexErrors(errs []*lexer.SyntaxError) {
	var list diag.List
	for _, e := range errs {
		list = append(list, &diag.Error{Line: e.Line, Message: e.Message, Kind: "lex"})
	}
	list.Print(os.Stderr)
}

func printParseErrors(errs []*parser.SyntaxError) {
	var list diag.List
	for _, e := range errs {
		list = append(list, &diag.Error{Line: e.Line, Lexeme: e.Lexeme, Message: e.Message, Kind: "parse"})
	}
	list.Print(os.Stderr)
}

func printResolveErrors(errs []*resolver.SemanticError) {
	var list diag.List
	for _, e := range errs {
		list = append(list, &diag.Error{Line: e.Line, Lexeme: e.Lexeme, Message: e.Message, Kind: "resolve"})
	}
	list.Print(os.Stderr)
}
