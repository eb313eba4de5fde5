// Command thistle is the reference command-line driver for the language:
// it tokenizes, parses, resolves, and evaluates scripts, and exposes each
// pipeline stage as its own debug subcommand.
package main

import "os"

func main() {
	os.Exit(Execute())
}
