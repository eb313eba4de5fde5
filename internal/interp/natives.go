package interp

import (
	"fmt"
	"strings"
)

// joinArgs renders a native call's arguments the way print/println display
// them: each value's String() form, separated by a single space.
func joinArgs(args []Value) string {
	parts := make([]string, len(args))
	for idx, a := range args {
		parts[idx] = a.String()
	}
	return strings.Join(parts, " ")
}

// registerNatives installs the language's three native I/O functions into
// the interpreter's global scope (spec.md §4.4). No other built-in is
// ever added at this layer; everything else the domain-stack libraries
// offer lives in ambient CLI/tooling code, never as a script-visible
// function.
func registerNatives(i *Interpreter) {
	i.Globals.Define("print", &NativeFunction{
		Name:     "print",
		MinArity: 0,
		MaxArity: UnboundedArity,
		Fn: func(i *Interpreter, line int, args []Value) (Value, error) {
			fmt.Fprint(i.stdout, joinArgs(args))
			return NilVal, nil
		},
	})

	i.Globals.Define("println", &NativeFunction{
		Name:     "println",
		MinArity: 0,
		MaxArity: UnboundedArity,
		Fn: func(i *Interpreter, line int, args []Value) (Value, error) {
			fmt.Fprintln(i.stdout, joinArgs(args))
			return NilVal, nil
		},
	})

	i.Globals.Define("input", &NativeFunction{
		Name:     "input",
		MinArity: 0,
		MaxArity: 1,
		Fn: func(i *Interpreter, line int, args []Value) (Value, error) {
			if !i.inputAllowed {
				return NilVal, nil
			}
			if len(args) == 1 {
				fmt.Fprint(i.stdout, args[0].String())
			}
			text, err := i.stdin.ReadString('\n')
			text = strings.TrimRight(text, "\r\n")
			if err != nil && text == "" {
				return NilVal, nil
			}
			return &String_{Value: text}, nil
		},
	})
}
