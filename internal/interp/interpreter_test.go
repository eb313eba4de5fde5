package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/thistlelang/thistle/internal/lexer"
	"github.com/thistlelang/thistle/internal/parser"
	"github.com/thistlelang/thistle/internal/resolver"
)

func run(t *testing.T, src string) (string, error) {
	t.Helper()
	l := lexer.New(src)
	p := parser.New(l.Tokens())
	program := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	depths, errs := resolver.New().Resolve(program)
	if len(errs) != 0 {
		t.Fatalf("unexpected resolve errors: %v", errs)
	}

	var out bytes.Buffer
	interp := New(&out, strings.NewReader(""))
	err := interp.Interpret(program, depths)
	return out.String(), err
}

func TestArithmeticAndPrint(t *testing.T) {
	out, err := run(t, `println(1 + 2 * 3);`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "7\n" {
		t.Fatalf("got %q", out)
	}
}

func TestStringConcatenation(t *testing.T) {
	out, err := run(t, `println("foo" + "bar");`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "foobar\n" {
		t.Fatalf("got %q", out)
	}
}

func TestClosureCapturesEnclosingVariable(t *testing.T) {
	out, err := run(t, `
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				return count;
			}
			return increment;
		}
		var counter = makeCounter();
		println(counter());
		println(counter());
		println(counter());
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "1\n2\n3\n" {
		t.Fatalf("got %q", out)
	}
}

func TestForLoopDesugaring(t *testing.T) {
	out, err := run(t, `
		for (var i = 0; i < 3; i = i + 1) {
			println(i);
		}
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "0\n1\n2\n" {
		t.Fatalf("got %q", out)
	}
}

func TestClassInstantiationAndMethodCall(t *testing.T) {
	out, err := run(t, `
		class Greeter {
			init(name) {
				this.name = name;
			}
			greet() {
				println("hello " + this.name);
			}
		}
		var g = Greeter("world");
		g.greet();
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "hello world\n" {
		t.Fatalf("got %q", out)
	}
}

func TestReturnUnwindsNestedBlocks(t *testing.T) {
	out, err := run(t, `
		fun find() {
			if (true) {
				{
					return "found";
				}
			}
			return "not found";
		}
		println(find());
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "found\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRecursion(t *testing.T) {
	out, err := run(t, `
		fun fib(n) {
			if (n < 2) { return n; }
			return fib(n - 1) + fib(n - 2);
		}
		println(fib(10));
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "55\n" {
		t.Fatalf("got %q", out)
	}
}

func TestDivisionByZeroFollowsIEEE(t *testing.T) {
	out, err := run(t, `
		println(1 / 0);
		println(-1 / 0);
		println(0 / 0);
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "+Inf\n-Inf\nNaN\n" {
		t.Fatalf("got %q", out)
	}
}

func TestUndefinedVariableIsARuntimeError(t *testing.T) {
	_, err := run(t, `println(doesNotExist);`)
	if _, ok := err.(*RuntimeError); !ok {
		t.Fatalf("expected *RuntimeError, got %T (%v)", err, err)
	}
}

func TestFieldsShadowMethodsOfSameName(t *testing.T) {
	out, err := run(t, `
		class Box {
			value() { return "method"; }
		}
		var b = Box();
		b.value = "field";
		println(b.value);
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "field\n" {
		t.Fatalf("got %q", out)
	}
}

