package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/thistlelang/thistle/internal/interp"
	"github.com/thistlelang/thistle/internal/lexer"
	"github.com/thistlelang/thistle/internal/parser"
	"github.com/thistlelang/thistle/internal/resolver"
)

// TestMain lets go-snaps clean up obsolete snapshot entries after the
// package's tests finish, the same pattern the teacher's fixture suite
// uses around snaps.MatchSnapshot.
func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func TestProgramStringSnapshot(t *testing.T) {
	src := `
		class Counter {
			init(start) {
				this.value = start;
			}
			next() {
				this.value = this.value + 1;
				return this.value;
			}
		}
		var c = Counter(0);
		println(c.next());
	`
	l := lexer.New(src)
	p := parser.New(l.Tokens())
	program := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	snaps.MatchSnapshot(t, program.String())
}

func TestRunOutputSnapshot(t *testing.T) {
	src := `
		fun greet(name) {
			return "hello, " + name;
		}
		println(greet("thistle"));
	`
	l := lexer.New(src)
	p := parser.New(l.Tokens())
	program := p.ParseProgram()
	depths, errs := resolver.New().Resolve(program)
	if len(errs) != 0 {
		t.Fatalf("unexpected resolve errors: %v", errs)
	}

	var out bytes.Buffer
	interpreter := interp.New(&out, bytes.NewReader(nil))
	if err := interpreter.Interpret(program, depths); err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	snaps.MatchSnapshot(t, out.String())
}
