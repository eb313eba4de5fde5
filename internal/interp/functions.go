package interp

import "github.com/thistlelang/thistle/internal/ast"

// Callable is any Value that can appear on the left of a call expression.
// Arity reports a callable's declared/minimum arity (used in "expected N
// arguments" diagnostics); AcceptsArity is the actual admission check, since
// a native like print accepts any count and input accepts 0 or 1.
type Callable interface {
	Value
	Arity() int
	AcceptsArity(n int) bool
	Call(i *Interpreter, line int, args []Value) (Value, error)
}

// Function is a user-defined function or method: its declaration, plus the
// environment it closed over at definition time. Re-evaluating the same
// *ast.FunctionStmt through a different closure (as bind does for methods)
// produces a distinct Function value, matching the teacher's
// ClassInfo/ObjectInstance split between a method's static declaration and
// its instance-bound form.
type Function struct {
	Declaration   *ast.FunctionStmt
	Closure       *Environment
	IsInitializer bool
}

func (f *Function) Type() string            { return "FUNCTION" }
func (f *Function) String() string          { return "<fn " + f.Declaration.Name.Lexeme + ">" }
func (f *Function) Arity() int              { return len(f.Declaration.Params) }
func (f *Function) AcceptsArity(n int) bool { return n == f.Arity() }

// Call runs the function body in a fresh environment enclosed by its
// closure, with parameters bound to args. A bare `return;` (or falling off
// the end of the body) yields nil, except in an initializer, which always
// yields `this` regardless of what (if anything) it returns.
func (f *Function) Call(i *Interpreter, line int, args []Value) (Value, error) {
	env := NewEnclosedEnvironment(f.Closure)
	for idx, param := range f.Declaration.Params {
		env.Define(param.Lexeme, args[idx])
	}

	result, err := i.executeBlock(f.Declaration.Body, env)
	if err != nil {
		return nil, err
	}

	if f.IsInitializer {
		return f.Closure.GetAt(0, "this"), nil
	}
	if result.isReturn {
		return result.value, nil
	}
	return NilVal, nil
}

// bind produces a new Function whose closure is a fresh child scope of
// this function's own closure with "this" bound to instance -- the
// mechanism that lets a method body refer to the instance it was looked
// up on, per spec.md's Bound method semantics.
func (f *Function) bind(instance *Instance) *Function {
	env := NewEnclosedEnvironment(f.Closure)
	env.Define("this", instance)
	return &Function{Declaration: f.Declaration, Closure: env, IsInitializer: f.IsInitializer}
}

// UnboundedArity, used as NativeFunction.MaxArity, marks a native that takes
// any number of arguments at or above MinArity (print/println).
const UnboundedArity = -1

// NativeFunction wraps a Go function as a callable language value, the
// home for print/println/input (spec.md §4.4). No other natives are
// added: everything else the corpus's third-party libraries do lives in
// ambient tooling (the CLI, config, tracing), never as a script-visible
// builtin. MinArity/MaxArity replace a single fixed Arity because print and
// println are variadic and input takes 0 or 1 argument; MaxArity ==
// UnboundedArity lifts the upper bound entirely.
type NativeFunction struct {
	Name     string
	MinArity int
	MaxArity int
	Fn       func(i *Interpreter, line int, args []Value) (Value, error)
}

func (n *NativeFunction) Type() string   { return "NATIVE_FUNCTION" }
func (n *NativeFunction) String() string { return "<native fn " + n.Name + ">" }
func (n *NativeFunction) Arity() int     { return n.MinArity }
func (n *NativeFunction) AcceptsArity(got int) bool {
	if got < n.MinArity {
		return false
	}
	return n.MaxArity == UnboundedArity || got <= n.MaxArity
}
func (n *NativeFunction) Call(i *Interpreter, line int, args []Value) (Value, error) {
	return n.Fn(i, line, args)
}
