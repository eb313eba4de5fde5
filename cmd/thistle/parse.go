package main

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/thistlelang/thistle/internal/lexer"
	"github.com/thistlelang/thistle/internal/parser"
)

var (
	parseEval    string
	parseDumpAST bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Thistle source file and print its AST",
	Long: `parse tokenizes and parses a Thistle program and prints the
resulting syntax tree. Without --dump-ast it prints the program's own
String() rendering; with --dump-ast it prints a field-by-field dump via
kr/pretty, useful when a node's String() hides the detail you need.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline source instead of reading a file")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "print a full field-by-field AST dump")
}

func runParse(cmd *cobra.Command, args []string) error {
	src, err := readSource(parseEval, args)
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

	if parseDumpAST {
		fmt.Printf("%# v\n", pretty.Formatter(program))
	} else {
		fmt.Println(program.String())
	}
	return nil
}
