package builtins

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/farrlang/farr/pkgs/farrerr"
	"github.com/farrlang/farr/pkgs/value"
)

func call(t *testing.T, fn value.Value, args ...value.Value) (value.Value, error) {
	t.Helper()
	nf, ok := fn.(value.NativeFunc)
	if !ok {
		t.Fatalf("expected value.NativeFunc, got %T", fn)
	}
	return nf.Fn(args, nil)
}

func TestPrintlnAppendsNewline(t *testing.T) {
	var out bytes.Buffer
	symbols := Symbols(Options{Stdout: &out})
	_, err := call(t, symbols["println"], value.String{Value: "hi"}, value.Integer{Value: 2})
	assert.NoError(t, err)
	if diff := cmp.Diff("hi 2\n", out.String()); diff != "" {
		t.Errorf("println output mismatch (-want +got):\n%s", diff)
	}
}

func TestPrintOmitsNewline(t *testing.T) {
	var out bytes.Buffer
	symbols := Symbols(Options{Stdout: &out})
	_, err := call(t, symbols["print"], value.String{Value: "hi"})
	assert.NoError(t, err)
	assert.Equal(t, "hi", out.String())
}

func TestReadLineEchoesPromptAndTrimsNewline(t *testing.T) {
	var out bytes.Buffer
	symbols := Symbols(Options{Stdout: &out, Stdin: strings.NewReader("world\n")})
	got, err := call(t, symbols["readln_e"], value.String{Value: "> "})
	assert.NoError(t, err)
	assert.Equal(t, "> ", out.String())
	s, ok := got.(value.String)
	if !ok || s.Value != "world" {
		t.Errorf("readln! = %v, want String(world)", got)
	}
}

func TestPanicWithErrorValuePreservesKind(t *testing.T) {
	symbols := Symbols(Options{})
	_, err := call(t, symbols["panic_eq"], value.ErrorValue{Kind: farrerr.ValueError, Message: "bad"})
	if !farrerr.Is(err, farrerr.ValueError) {
		t.Errorf("panic!? did not preserve ValueError kind: %v", err)
	}
}

func TestAssertFailsWithMessage(t *testing.T) {
	symbols := Symbols(Options{})
	_, err := call(t, symbols["assert_e"], value.NewBool(false), value.String{Value: "nope"})
	if !farrerr.Is(err, farrerr.AssertionError) {
		t.Fatalf("assert! = %v, want AssertionError", err)
	}
	assert.Contains(t, err.Error(), "nope")
}

func TestAssertPassesSilently(t *testing.T) {
	symbols := Symbols(Options{})
	v, err := call(t, symbols["assert_e"], value.NewBool(true))
	assert.NoError(t, err)
	assert.Equal(t, value.Null{}, v)
}

func TestExitReturnsSystemExitSignal(t *testing.T) {
	symbols := Symbols(Options{})
	_, err := call(t, symbols["exit_e"], value.Integer{Value: 7})
	fe, ok := err.(*farrerr.Error)
	if !ok {
		t.Fatalf("exit! error = %T, want *farrerr.Error", err)
	}
	assert.Equal(t, farrerr.SystemExitError, fe.ErrKind)
	assert.Equal(t, 7, fe.Code)
}

func TestTypeOfReportsTypeName(t *testing.T) {
	symbols := Symbols(Options{})
	got, err := call(t, symbols["typeof_q"], value.Integer{Value: 1})
	assert.NoError(t, err)
	assert.Equal(t, value.String{Value: "Integer"}, got)
}

func TestSimilarTypesComparesTypeNames(t *testing.T) {
	symbols := Symbols(Options{})
	same, err := call(t, symbols["similartypes_q"], value.Integer{Value: 1}, value.Integer{Value: 2})
	assert.NoError(t, err)
	assert.Equal(t, true, same.Bool())

	diff, err := call(t, symbols["similartypes_q"], value.Integer{Value: 1}, value.String{Value: "x"})
	assert.NoError(t, err)
	assert.Equal(t, false, diff.Bool())
}

func TestShellDisabledByDefault(t *testing.T) {
	symbols := Symbols(Options{})
	_, err := call(t, symbols["cmd_eq"], value.String{Value: "echo hi"})
	if !farrerr.Is(err, farrerr.OSError) {
		t.Errorf("cmd!? with disabled shell = %v, want OSError", err)
	}
}

func TestShellDelegatesToInjectedCollaborator(t *testing.T) {
	symbols := Symbols(Options{Shell: func(cmd string) (string, error) {
		return "ran: " + cmd, nil
	}})
	got, err := call(t, symbols["cmd_eq"], value.String{Value: "echo hi"})
	assert.NoError(t, err)
	assert.Equal(t, value.String{Value: "ran: echo hi"}, got)
}

func TestErrorConstructorsCoverFullTaxonomy(t *testing.T) {
	symbols := Symbols(Options{})
	for _, ek := range errorKinds {
		v, ok := symbols[ek.name]
		if !ok {
			t.Fatalf("missing error constructor for %s", ek.name)
		}
		ctor, ok := v.(value.ErrorConstructor)
		if !ok || ctor.Kind != ek.kind {
			t.Errorf("%s = %#v, want ErrorConstructor{Kind: %v}", ek.name, v, ek.kind)
		}
	}
}
