package parser

import (
	"testing"

	"github.com/thistlelang/thistle/internal/ast"
	"github.com/thistlelang/thistle/internal/lexer"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New(src)
	p := New(l.Tokens())
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	return prog
}

func TestParseVarDeclaration(t *testing.T) {
	prog := parse(t, `var x = 1 + 2;`)
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	v, ok := prog.Statements[0].(*ast.VarStmt)
	if !ok {
		t.Fatalf("expected *ast.VarStmt, got %T", prog.Statements[0])
	}
	if v.Name.Lexeme != "x" {
		t.Errorf("name = %q, want x", v.Name.Lexeme)
	}
	if _, ok := v.Initializer.(*ast.Binary); !ok {
		t.Errorf("initializer = %T, want *ast.Binary", v.Initializer)
	}
}

func TestParseIfElse(t *testing.T) {
	prog := parse(t, `if (true) { var x = 1; } else { var y = 2; }`)
	ifs, ok := prog.Statements[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected *ast.IfStmt, got %T", prog.Statements[0])
	}
	if ifs.Else == nil {
		t.Fatalf("expected an else branch")
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	prog := parse(t, `for (var i = 0; i < 3; i = i + 1) { print(i); }`)
	block, ok := prog.Statements[0].(*ast.BlockStmt)
	if !ok {
		t.Fatalf("expected desugared *ast.BlockStmt, got %T", prog.Statements[0])
	}
	if len(block.Statements) != 2 {
		t.Fatalf("expected 2 statements (init, while), got %d", len(block.Statements))
	}
	if _, ok := block.Statements[0].(*ast.VarStmt); !ok {
		t.Errorf("first statement = %T, want *ast.VarStmt", block.Statements[0])
	}
	whileStmt, ok := block.Statements[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("second statement = %T, want *ast.WhileStmt", block.Statements[1])
	}
	body, ok := whileStmt.Body.(*ast.BlockStmt)
	if !ok {
		t.Fatalf("while body = %T, want *ast.BlockStmt wrapping body+increment", whileStmt.Body)
	}
	if len(body.Statements) != 2 {
		t.Fatalf("expected body+increment, got %d statements", len(body.Statements))
	}
}

func TestParseClassWithMethods(t *testing.T) {
	prog := parse(t, `class Greeter { greet(name) { print(name); } }`)
	cls, ok := prog.Statements[0].(*ast.ClassStmt)
	if !ok {
		t.Fatalf("expected *ast.ClassStmt, got %T", prog.Statements[0])
	}
	if cls.Name.Lexeme != "Greeter" {
		t.Errorf("class name = %q, want Greeter", cls.Name.Lexeme)
	}
	if len(cls.Methods) != 1 || cls.Methods[0].Name.Lexeme != "greet" {
		t.Fatalf("unexpected methods: %+v", cls.Methods)
	}
}

func TestEveryExprGetsAUniqueID(t *testing.T) {
	prog := parse(t, `var x = 1 + 2 * 3;`)
	v := prog.Statements[0].(*ast.VarStmt)
	bin := v.Initializer.(*ast.Binary)
	seen := map[int]bool{}
	var walk func(ast.Expr)
	walk = func(e ast.Expr) {
		if e == nil {
			return
		}
		if seen[e.ID()] {
			t.Fatalf("duplicate expression ID %d", e.ID())
		}
		seen[e.ID()] = true
		switch n := e.(type) {
		case *ast.Binary:
			walk(n.Left)
			walk(n.Right)
		}
	}
	walk(bin)
	if len(seen) != 5 {
		t.Fatalf("expected 5 distinct expression IDs, got %d", len(seen))
	}
}

func TestBarePrintStatementIsRejected(t *testing.T) {
	l := lexer.New(`print "hi";`)
	p := New(l.Tokens())
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected a syntax error for bare print statement")
	}
}

func TestSuperIsRejected(t *testing.T) {
	l := lexer.New(`var x = super.foo;`)
	p := New(l.Tokens())
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected a syntax error for 'super'")
	}
}
