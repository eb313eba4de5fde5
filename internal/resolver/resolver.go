// Package resolver performs the single static pass between parsing and
// evaluation: it assigns every variable reference a lexical scope depth,
// and rejects a small set of statically-detectable mistakes (reading a
// local in its own initializer, a duplicate local, 'this' outside a
// method, a value-returning 'return' inside a class initializer).
//
// The pass is modeled on the teacher's single-responsibility Pass idiom
// (one pass, one job, run once over the whole program) but implements
// Lox-style lexical depth resolution rather than DWScript's type
// inference/overload resolution.
package resolver

import (
	"github.com/thistlelang/thistle/internal/ast"
	"github.com/thistlelang/thistle/internal/token"
)

// SemanticError is a statically-detected error tied to a source line,
// reported in the same "[Line: n] at '<lexeme>' <message>" wire format
// parser errors use.
type SemanticError struct {
	Line    int
	Lexeme  string
	Message string
}

func (e *SemanticError) Error() string {
	return "[Line: " + itoa(e.Line) + "] at '" + e.Lexeme + "' " + e.Message
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

type functionType int

const (
	fnNone functionType = iota
	fnFunction
	fnMethod
	fnInitializer
)

type classType int

const (
	classNone classType = iota
	classClass
)

// Resolver walks the program once, maintaining a stack of lexical scopes.
type Resolver struct {
	scopes          []map[string]bool
	depths          map[int]int
	errors          []*SemanticError
	currentFunction functionType
	currentClass    classType
}

// New creates a Resolver ready to resolve a single program.
func New() *Resolver {
	return &Resolver{depths: make(map[int]int)}
}

// Resolve walks program and returns the expression-ID -> scope-distance
// map the interpreter uses for variable lookup, plus any errors found.
func (r *Resolver) Resolve(program *ast.Program) (map[int]int, []*SemanticError) {
	r.resolveStmts(program.Statements)
	return r.depths, r.errors
}

func (r *Resolver) errorf(line int, lexeme, message string) {
	r.errors = append(r.errors, &SemanticError{Line: line, Lexeme: lexeme, Message: message})
}

// --- scope stack ---

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare registers name in the innermost scope as "not yet usable", so a
// reference to it from within its own initializer expression can be
// caught. Declaring a name already declared in the same scope is a static
// error: shadowing happens only across scopes, never within one.
func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, exists := scope[name.Lexeme]; exists {
		r.errorf(name.Line, name.Lexeme, "already a variable with this name in this scope")
	}
	scope[name.Lexeme] = false
}

// define marks name as fully initialized and usable in the innermost
// scope.
func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal walks outward from the innermost scope looking for name,
// recording the distance (0 = innermost) the first time it is found. A
// name never found in any scope is left unresolved; the interpreter then
// treats it as a global, looked up dynamically at call time.
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.depths[expr.ID()] = len(r.scopes) - 1 - i
			return
		}
	}
}

// --- statements ---

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		r.resolveExpr(s.Expression)
	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()
	case *ast.IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)
	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, fnFunction)
	case *ast.ReturnStmt:
		if r.currentFunction == fnNone {
			r.errorf(s.Keyword.Line, s.Keyword.Lexeme, "cannot return from top-level code")
		}
		if s.Value != nil {
			if r.currentFunction == fnInitializer {
				r.errorf(s.Keyword.Line, s.Keyword.Lexeme, "cannot return a value from an initializer")
			}
			r.resolveExpr(s.Value)
		}
	case *ast.ClassStmt:
		r.resolveClass(s)
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveClass(cls *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(cls.Name)
	r.define(cls.Name)

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range cls.Methods {
		kind := fnMethod
		if method.Name.Lexeme == "init" {
			kind = fnInitializer
		}
		r.resolveFunction(method, kind)
	}

	r.endScope()
	r.currentClass = enclosingClass
}

// --- expressions ---

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Literal:
		// no references to resolve
	case *ast.Grouping:
		r.resolveExpr(e.Expression)
	case *ast.Unary:
		r.resolveExpr(e.Right)
	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if ready, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !ready {
				r.errorf(e.Name.Line, e.Name.Lexeme, "cannot read local variable in its own initializer")
			}
		}
		r.resolveLocal(e, e.Name)
	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpr(arg)
		}
	case *ast.Get:
		r.resolveExpr(e.Object)
	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ast.This:
		if r.currentClass == classNone {
			r.errorf(e.Keyword.Line, e.Keyword.Lexeme, "cannot use 'this' outside of a class method")
			return
		}
		r.resolveLocal(e, e.Keyword)
	}
}
