// Package interp implements the tree-walking evaluator: environments,
// runtime values, callables, and the statement/expression dispatch loop.
package interp

import (
	"bufio"
	"io"

	"github.com/thistlelang/thistle/internal/ast"
	"github.com/thistlelang/thistle/internal/trace"
)

const defaultMaxCallDepth = 1024

// execResult is the explicit tri-state outcome of executing a statement:
// either nothing happened (value is nil, isReturn is false), or a `return`
// was hit and should unwind every enclosing block up to the call boundary
// (isReturn true, value is the returned Value, possibly Nil). This is used
// in place of the teacher's mutable Interpreter "signal flag" style
// (breakSignal/continueSignal/exitSignal in statements_loops.go) because
// spec.md's testable properties are phrased directly in terms of a
// statement's result, not interpreter side state.
type execResult struct {
	value    Value
	isReturn bool
}

var noResult = execResult{}

// Interpreter walks a resolved *ast.Program, evaluating it for effect.
type Interpreter struct {
	Globals     *Environment
	environment *Environment
	locals      map[int]int

	stdout io.Writer
	stdin  *bufio.Reader

	callDepth    int
	maxCallDepth int
	inputAllowed bool

	tracer *trace.Recorder
}

// New creates an Interpreter whose print/println natives write to stdout
// and whose input native reads from stdin.
func New(stdout io.Writer, stdin io.Reader) *Interpreter {
	i := &Interpreter{
		Globals:      NewEnvironment(),
		stdout:       stdout,
		stdin:        bufio.NewReader(stdin),
		maxCallDepth: defaultMaxCallDepth,
		inputAllowed: true,
	}
	i.environment = i.Globals
	registerNatives(i)
	return i
}

// SetTracer attaches a JSON call/return tracer (--trace-json). Passing nil
// turns tracing back off.
func (i *Interpreter) SetTracer(t *trace.Recorder) {
	i.tracer = t
}

// SetInputAllowed controls whether the input() native may read from
// stdin, wired from a loaded thistle.yaml's allowInput key.
func (i *Interpreter) SetInputAllowed(allowed bool) {
	i.inputAllowed = allowed
}

// SetMaxCallDepth overrides the default recursion guard, e.g. from a
// loaded thistle.yaml's maxCallDepth key. A depth of 0 or less is ignored.
func (i *Interpreter) SetMaxCallDepth(depth int) {
	if depth > 0 {
		i.maxCallDepth = depth
	}
}

// Interpret runs every top-level statement of program in order. locals is
// the expression-ID -> scope-distance map produced by the resolver.
func (i *Interpreter) Interpret(program *ast.Program, locals map[int]int) error {
	i.locals = locals
	for _, stmt := range program.Statements {
		if _, err := i.execStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// executeBlock runs stmts in env, restoring the previous environment
// before returning (including when a statement errors or returns), so a
// function call can never leak its locals into the caller's environment.
func (i *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) (execResult, error) {
	previous := i.environment
	i.environment = env
	defer func() { i.environment = previous }()

	for _, stmt := range stmts {
		result, err := i.execStmt(stmt)
		if err != nil {
			return noResult, err
		}
		if result.isReturn {
			return result, nil
		}
	}
	return noResult, nil
}

func (i *Interpreter) execStmt(stmt ast.Stmt) (execResult, error) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		_, err := i.evalExpr(s.Expression)
		return noResult, err

	case *ast.VarStmt:
		value := Value(NilVal)
		if s.Initializer != nil {
			v, err := i.evalExpr(s.Initializer)
			if err != nil {
				return noResult, err
			}
			value = v
		}
		i.environment.Define(s.Name.Lexeme, value)
		return noResult, nil

	case *ast.BlockStmt:
		return i.executeBlock(s.Statements, NewEnclosedEnvironment(i.environment))

	case *ast.IfStmt:
		cond, err := i.evalExpr(s.Condition)
		if err != nil {
			return noResult, err
		}
		if IsTruthy(cond) {
			return i.execStmt(s.Then)
		}
		if s.Else != nil {
			return i.execStmt(s.Else)
		}
		return noResult, nil

	case *ast.WhileStmt:
		for {
			cond, err := i.evalExpr(s.Condition)
			if err != nil {
				return noResult, err
			}
			if !IsTruthy(cond) {
				return noResult, nil
			}
			result, err := i.execStmt(s.Body)
			if err != nil {
				return noResult, err
			}
			if result.isReturn {
				return result, nil
			}
		}

	case *ast.FunctionStmt:
		fn := &Function{Declaration: s, Closure: i.environment}
		i.environment.Define(s.Name.Lexeme, fn)
		return noResult, nil

	case *ast.ReturnStmt:
		value := Value(NilVal)
		if s.Value != nil {
			v, err := i.evalExpr(s.Value)
			if err != nil {
				return noResult, err
			}
			value = v
		}
		return execResult{value: value, isReturn: true}, nil

	case *ast.ClassStmt:
		methods := make(map[string]*Function, len(s.Methods))
		for _, m := range s.Methods {
			methods[m.Name.Lexeme] = &Function{
				Declaration:   m,
				Closure:       i.environment,
				IsInitializer: m.Name.Lexeme == "init",
			}
		}
		class := &Class{Name: s.Name.Lexeme, Methods: methods}
		i.environment.Define(s.Name.Lexeme, class)
		return noResult, nil
	}
	return noResult, nil
}

func (i *Interpreter) evalExpr(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e), nil

	case *ast.Grouping:
		return i.evalExpr(e.Expression)

	case *ast.Unary:
		return i.evalUnary(e)

	case *ast.Binary:
		return i.evalBinary(e)

	case *ast.Logical:
		return i.evalLogical(e)

	case *ast.Variable:
		return i.lookupVariable(e.Name.Lexeme, e)

	case *ast.Assign:
		value, err := i.evalExpr(e.Value)
		if err != nil {
			return nil, err
		}
		if distance, ok := i.locals[e.ID()]; ok {
			i.environment.AssignAt(distance, e.Name.Lexeme, value)
			return value, nil
		}
		if !i.Globals.Assign(e.Name.Lexeme, value) {
			// Globals are late-bound: assigning an undeclared global creates it.
			i.Globals.Define(e.Name.Lexeme, value)
		}
		return value, nil

	case *ast.Call:
		return i.evalCall(e)

	case *ast.Get:
		object, err := i.evalExpr(e.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := object.(*Instance)
		if !ok {
			return nil, runtimeErrorf(e.Name.Line, "only instances have properties")
		}
		value, ok := instance.Get(e.Name.Lexeme)
		if !ok {
			return nil, runtimeErrorf(e.Name.Line, "undefined property '%s'", e.Name.Lexeme)
		}
		return value, nil

	case *ast.Set:
		object, err := i.evalExpr(e.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := object.(*Instance)
		if !ok {
			return nil, runtimeErrorf(e.Name.Line, "only instances have fields")
		}
		value, err := i.evalExpr(e.Value)
		if err != nil {
			return nil, err
		}
		instance.Set(e.Name.Lexeme, value)
		return value, nil

	case *ast.This:
		return i.lookupVariable("this", e)
	}
	return nil, runtimeErrorf(0, "unhandled expression type %T", expr)
}

func literalValue(l *ast.Literal) Value {
	switch v := l.Value.(type) {
	case nil:
		return NilVal
	case bool:
		return &Boolean{Value: v}
	case float64:
		return &Number{Value: v}
	case string:
		return &String_{Value: v}
	default:
		return NilVal
	}
}

func (i *Interpreter) lookupVariable(name string, expr ast.Expr) (Value, error) {
	if distance, ok := i.locals[expr.ID()]; ok {
		return i.environment.GetAt(distance, name), nil
	}
	if v, ok := i.Globals.Get(name); ok {
		return v, nil
	}
	return nil, runtimeErrorf(expr.Line(), "undefined variable '%s'", name)
}

func (i *Interpreter) evalUnary(e *ast.Unary) (Value, error) {
	right, err := i.evalExpr(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Lexeme {
	case "-":
		n, ok := right.(*Number)
		if !ok {
			return nil, runtimeErrorf(e.Operator.Line, "operand must be a number")
		}
		return &Number{Value: -n.Value}, nil
	case "!":
		return &Boolean{Value: !IsTruthy(right)}, nil
	}
	return nil, runtimeErrorf(e.Operator.Line, "unknown unary operator '%s'", e.Operator.Lexeme)
}

func (i *Interpreter) evalLogical(e *ast.Logical) (Value, error) {
	left, err := i.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Operator.Lexeme == "or" {
		if IsTruthy(left) {
			return left, nil
		}
	} else {
		if !IsTruthy(left) {
			return left, nil
		}
	}
	return i.evalExpr(e.Right)
}

func (i *Interpreter) evalBinary(e *ast.Binary) (Value, error) {
	left, err := i.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpr(e.Right)
	if err != nil {
		return nil, err
	}
	line := e.Operator.Line

	switch e.Operator.Lexeme {
	case "==":
		return &Boolean{Value: ValuesEqual(left, right)}, nil
	case "!=":
		return &Boolean{Value: !ValuesEqual(left, right)}, nil
	case "+":
		if ln, lok := left.(*Number); lok {
			if rn, rok := right.(*Number); rok {
				return &Number{Value: ln.Value + rn.Value}, nil
			}
		}
		if ls, lok := left.(*String_); lok {
			if rs, rok := right.(*String_); rok {
				return &String_{Value: ls.Value + rs.Value}, nil
			}
		}
		return nil, runtimeErrorf(line, "operands must be two numbers or two strings")
	}

	ln, lok := left.(*Number)
	rn, rok := right.(*Number)
	if !lok || !rok {
		return nil, runtimeErrorf(line, "operands must be numbers")
	}

	switch e.Operator.Lexeme {
	case "-":
		return &Number{Value: ln.Value - rn.Value}, nil
	case "*":
		return &Number{Value: ln.Value * rn.Value}, nil
	case "/":
		// Division by zero follows IEEE 754: Go's native float division
		// yields +Inf/-Inf/NaN on its own, so there is nothing to guard here
		// (spec.md §4.3).
		return &Number{Value: ln.Value / rn.Value}, nil
	case ">":
		return &Boolean{Value: ln.Value > rn.Value}, nil
	case ">=":
		return &Boolean{Value: ln.Value >= rn.Value}, nil
	case "<":
		return &Boolean{Value: ln.Value < rn.Value}, nil
	case "<=":
		return &Boolean{Value: ln.Value <= rn.Value}, nil
	}
	return nil, runtimeErrorf(line, "unknown binary operator '%s'", e.Operator.Lexeme)
}

func (i *Interpreter) evalCall(e *ast.Call) (Value, error) {
	callee, err := i.evalExpr(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Args))
	for idx, argExpr := range e.Args {
		v, err := i.evalExpr(argExpr)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, runtimeErrorf(e.Paren.Line, "can only call functions and classes")
	}
	if !callable.AcceptsArity(len(args)) {
		return nil, runtimeErrorf(e.Paren.Line, "expected %d arguments but got %d", callable.Arity(), len(args))
	}

	if i.callDepth >= i.maxCallDepth {
		return nil, runtimeErrorf(e.Paren.Line, "call stack exceeded maximum depth of %d", i.maxCallDepth)
	}
	i.callDepth++
	defer func() { i.callDepth-- }()

	name := callableName(callee)
	i.tracer.Emit(trace.Event{Kind: "call", Name: name, Line: e.Paren.Line, Depth: i.callDepth, ArgCount: len(args)})
	result, err := callable.Call(i, e.Paren.Line, args)
	i.tracer.Emit(trace.Event{Kind: "return", Name: name, Line: e.Paren.Line, Depth: i.callDepth, ArgCount: len(args)})
	return result, err
}

func callableName(callee Value) string {
	switch c := callee.(type) {
	case *Function:
		return c.Declaration.Name.Lexeme
	case *NativeFunction:
		return c.Name
	case *Class:
		return c.Name
	default:
		return "?"
	}
}
