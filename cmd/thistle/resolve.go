package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thistlelang/thistle/internal/lexer"
	"github.com/thistlelang/thistle/internal/parser"
	"github.com/thistlelang/thistle/internal/resolver"
)

var resolveEval string

var resolveCmd = &cobra.Command{
	Use:   "resolve [file]",
	Short: "Run static resolution on a Thistle file and print variable distances",
	Long: `resolve tokenizes, parses, and statically resolves a Thistle
program, printing the scope distance computed for each reference bound
to a local scope, one "expr #<id>" line each in no fixed order;
references left global are not listed. Reports the same parse and
resolve errors "run" would fail on, without evaluating the program.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringVarP(&resolveEval, "eval", "e", "", "resolve inline source instead of reading a file")
}

func runResolve(cmd *cobra.Command, args []string) error {
	src, err := readSource(resolveEval, args)
	if err != nil {
		return err
	}

	l := lexer.New(src)
	p := parser.New(l.Tokens())
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		printParseErrors(errs)
		return &exitError{code: 65}
	}

	depths, errs := resolver.New().Resolve(program)
	if len(errs) > 0 {
		printResolveErrors(errs)
		return &exitError{code: 65}
	}

	if len(depths) == 0 {
		fmt.Println("no local variable references to resolve")
		return nil
	}
	for id, distance := range depths {
		fmt.Printf("expr #%d -> scope distance %d\n", id, distance)
	}
	return nil
}
