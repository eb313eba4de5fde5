package resolver

import (
	"testing"

	"github.com/thistlelang/thistle/internal/ast"
	"github.com/thistlelang/thistle/internal/lexer"
	"github.com/thistlelang/thistle/internal/parser"
)

func resolveSrc(t *testing.T, src string) (*ast.Program, map[int]int, []*SemanticError) {
	t.Helper()
	l := lexer.New(src)
	p := parser.New(l.Tokens())
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	depths, errs := New().Resolve(prog)
	return prog, depths, errs
}

func TestClosureOverGlobalStaysUnresolved(t *testing.T) {
	prog, depths, errs := resolveSrc(t, `
		var x = "global";
		{
			fun showX() { print(x); }
			showX();
		}
	`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	// x is declared at top level, where the resolver keeps no scope, so the
	// reference inside showX is left unresolved (global): absent from depths.
	block := prog.Statements[1].(*ast.BlockStmt)
	fn := block.Statements[0].(*ast.FunctionStmt)
	call := fn.Body[0].(*ast.ExprStmt).Expression.(*ast.Call)
	xRef := call.Args[0].(*ast.Variable)
	if d, ok := depths[xRef.ID()]; ok {
		t.Fatalf("x inside showX resolved to distance %d, want it left global", d)
	}
}

func TestOwnInitializerIsAnError(t *testing.T) {
	_, _, errs := resolveSrc(t, `{ var a = a; }`)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
}

func TestDuplicateLocalIsAnError(t *testing.T) {
	_, _, errs := resolveSrc(t, `{ var a = 1; var a = 2; }`)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
}

func TestThisOutsideClassIsAnError(t *testing.T) {
	_, _, errs := resolveSrc(t, `print(this);`)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
}

func TestReturnValueFromInitializerIsAnError(t *testing.T) {
	_, _, errs := resolveSrc(t, `
		class Foo {
			init() { return 1; }
		}
	`)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
}

func TestLocalVariableResolvesWithCorrectDistance(t *testing.T) {
	prog, depths, errs := resolveSrc(t, `
		{
			var a = 1;
			{
				print(a);
			}
		}
	`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	outer := prog.Statements[0].(*ast.BlockStmt)
	inner := outer.Statements[1].(*ast.BlockStmt)
	call := inner.Statements[0].(*ast.ExprStmt).Expression.(*ast.Call)
	varExpr := call.Args[0].(*ast.Variable)
	if d, ok := depths[varExpr.ID()]; !ok || d != 1 {
		t.Fatalf("expected distance 1, got %d (ok=%v)", d, ok)
	}
}
