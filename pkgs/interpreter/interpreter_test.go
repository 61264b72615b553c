package interpreter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/farrlang/farr/pkgs/builtins"
	"github.com/farrlang/farr/pkgs/farrerr"
	"github.com/farrlang/farr/pkgs/parser"
	"github.com/farrlang/farr/pkgs/value"
)

// run parses and interprets src against a fresh Interpreter, returning
// everything written to stdout.
func run(t *testing.T, src string) string {
	t.Helper()
	program, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	var out bytes.Buffer
	in := New(builtins.Symbols(builtins.Options{Stdout: &out}))
	if _, err := in.Run(program); err != nil {
		t.Fatalf("Run(%q): %v", src, err)
	}
	return out.String()
}

// The five scenarios below are spec.md §8's literal source -> stdout
// fixtures, used here as the interpreter's end-to-end acceptance tests.

func TestScenarioPrefixArithmetic(t *testing.T) {
	got := run(t, "println(+ 13 8, - 2 4, * 6 3, / 9 10, % 12 1, ^ 6 4);")
	want := "21 -2 18 0.9 0 1296\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestScenarioForLoopOverRange(t *testing.T) {
	got := run(t, "let n = 30; for let i in [1..n] = { if % i 2 == 0 = { println(i); } }")
	want := "2\n4\n6\n8\n10\n12\n14\n16\n18\n20\n22\n24\n26\n28\n30\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestScenarioWhileLoopFactorial(t *testing.T) {
	got := run(t, "let i = 5; let r = 1; while i >= 1 = { r *= i; i--; } println(r);")
	want := "120\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestScenarioTryCatchArithmeticError(t *testing.T) {
	got := run(t, `try = { / 5 0; } catch ArithmeticError = { println("ok"); }`)
	want := "ok\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestScenarioStructMemberFunctionMutatesField(t *testing.T) {
	got := run(t, `struct P = { let n, let a } fn P::bday!() = { a++; } let p = P("J", 99); p.bday!(); println(p.a);`)
	want := "100\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLogicalOperatorsShortCircuit(t *testing.T) {
	// A deliberate divergence from the Python original's eager evaluation:
	// the right-hand side of `||` must never run once the left is true.
	got := run(t, `fn boom() = { println("boom"); return! true; } println(true || boom());`)
	if strings.Contains(got, "boom") {
		t.Errorf("right-hand side evaluated despite short-circuit: %q", got)
	}
}

func TestForElseRunsOnlyWithoutBreak(t *testing.T) {
	got := run(t, `for let i in [1..3] = { println(i); } else { println("done"); }`)
	want := "1\n2\n3\ndone\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestForElseSkippedOnBreak(t *testing.T) {
	got := run(t, `for let i in [1..3] = { if i == 2 = { break!; } println(i); } else { println("done"); }`)
	want := "1\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestOneBasedListIndexing(t *testing.T) {
	got := run(t, `let l = {10, 20, 30}; println(l.[1], l.[3]);`)
	want := "10 30\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNameErrorOnUndefinedIdentifier(t *testing.T) {
	program, err := parser.Parse("println(nope);")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	in := New(builtins.Symbols(builtins.Options{}))
	_, err = in.Run(program)
	if !farrerr.Is(err, farrerr.NameError) {
		t.Errorf("expected NameError, got %v", err)
	}
}

func TestUseResolvesLibraryViaFileImporter(t *testing.T) {
	root := t.TempDir()
	libDir := filepath.Join(root, "libs", "greet")
	if err := os.MkdirAll(libDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(libDir, "funda.farr"), []byte(`fn hello() = { return! "hi"; }`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	t.Setenv("FARRPATH", root)

	program, err := parser.Parse(`use greet; println(greet.hello());`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var out bytes.Buffer
	seed := func() map[string]value.Value { return builtins.Symbols(builtins.Options{Stdout: &out}) }
	in := New(seed())
	in.SetImporter(NewFileImporter(seed))
	if _, err := in.Run(program); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "hi\n" {
		t.Errorf("got %q, want %q", out.String(), "hi\n")
	}
}
