package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information, set by build flags at release time.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "thistle",
	Short: "Thistle interpreter",
	Long: `thistle is a tree-walking interpreter for Thistle, a small
dynamically-typed, lexically-scoped scripting language with closures
and single-level classes.`,
	Version: Version,
	// Bare "thistle" with no subcommand starts a minimal REPL, spec.md
	// §6's unspecified zero-argument behavior.
	RunE: func(cmd *cobra.Command, args []string) error {
		runREPL(os.Stdin, os.Stdout)
		return nil
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each pipeline stage to stderr")
}

// exitError carries a precise process exit code through cobra's RunE
// chain, since cobra itself only distinguishes "error" from "no error".
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit %d", e.code) }

// Execute runs the command tree and returns the process exit code spec.md
// §6 requires: 0 clean, 65 parse/resolve error, 67 I/O failure, 70
// runtime error, 0 for a usage-only invocation.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	if ee, ok := err.(*exitError); ok {
		return ee.code
	}
	fmt.Fprintln(os.Stderr, err)
	return 1
}
