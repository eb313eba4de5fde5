package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thistlelang/thistle/internal/lexer"
)

var tokenizeEval string

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "Tokenize a Thistle source file and print the resulting tokens",
	Long: `tokenize scans a Thistle program and prints one line per token.
Useful for debugging the lexer. Reads from stdin if no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokenize,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	tokenizeCmd.Flags().StringVarP(&tokenizeEval, "eval", "e", "", "tokenize inline source instead of reading a file")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	src, err := readSource(tokenizeEval, args)
	if err != nil {
		return err
	}

	l := lexer.New(src)
	for _, tok := range l.Tokens() {
		fmt.Printf("%-14s %-12q line %d\n", tok.Kind, tok.Lexeme, tok.Line)
	}
	for _, e := range l.Errors() {
		fmt.Fprintln(os.Stderr, e)
	}
	if len(l.Errors()) > 0 {
		return &exitError{code: 65}
	}
	return nil
}

func readSource(inline string, args []string) (string, error) {
	if inline != "" {
		return inline, nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", &exitError{code: 67}
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", &exitError{code: 67}
	}
	return string(data), nil
}
