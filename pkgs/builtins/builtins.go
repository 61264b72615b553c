// Package builtins implements Farr's native symbol table: the handful of
// operations original_source wires straight to Python builtins/stdlib
// (print, readln!, cmd!?, ...) via PythonNative*Object wrapper classes.
// Here each is a value.NativeFunc closing over injected collaborators
// (stdout/stdin/shell) instead of reaching for os/exec or os.Stdin
// directly, so a host embedding the interpreter can redirect or disable
// them.
package builtins

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/farrlang/farr/pkgs/farrerr"
	"github.com/farrlang/farr/pkgs/value"
)

// Shell executes a command string and returns its combined output. The
// default implementation refuses to shell out at all: `cmd!?` is listed
// as an external collaborator in Farr's own interface contract (outside
// the language core), never wired to a real os/exec.Command here.
type Shell func(cmd string) (string, error)

// DisabledShell is the default Shell: it always fails, matching the
// notion that shell execution is a collaborator a host must opt into.
func DisabledShell(cmd string) (string, error) {
	return "", fmt.Errorf("shell execution is disabled")
}

// Options configures the collaborators native builtins reach out to.
type Options struct {
	Stdout io.Writer
	Stdin  io.Reader
	Shell  Shell
}

var errorKinds = []struct {
	name string
	kind farrerr.Kind
}{
	{"BaseError", farrerr.BaseError},
	{"KeyboardInterruptError", farrerr.KeyboardInterruptError},
	{"SystemExitError", farrerr.SystemExitError},
	{"ArithmeticError", farrerr.ArithmeticError},
	{"AssertionError", farrerr.AssertionError},
	{"AttributeError", farrerr.AttributeError},
	{"ImportError", farrerr.ImportError},
	{"LookupError", farrerr.LookupError},
	{"NameError", farrerr.NameError},
	{"OSError", farrerr.OSError},
	{"RuntimeError", farrerr.RuntimeError},
	{"NotImplementedError", farrerr.NotImplementedError},
	{"TypeError", farrerr.TypeError},
	{"ValueError", farrerr.ValueError},
	{"DeprecatedError", farrerr.DeprecatedError},
}

// Symbols builds the builtin symbol table a root environment is seeded
// with, grounded on FarrInterpreter.builtin_symbols.
func Symbols(opts Options) map[string]value.Value {
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Shell == nil {
		opts.Shell = DisabledShell
	}
	reader := bufio.NewReader(opts.Stdin)

	symbols := map[string]value.Value{
		"null":  value.Null{},
		"true":  value.NewBool(true),
		"false": value.NewBool(false),

		"print":          nativePrint(opts.Stdout, false),
		"println":        nativePrint(opts.Stdout, true),
		"readln_e":       nativeReadLine(opts.Stdout, reader),
		"panic_eq":       nativePanic(),
		"assert_e":       nativeAssert(),
		"exit_e":         nativeExit(),
		"typeof_q":       nativeTypeOf(),
		"similartypes_q": nativeSimilarTypes(),
		"cmd_eq":         nativeShell(opts.Shell),
	}
	for _, ek := range errorKinds {
		symbols[ek.name] = value.ErrorConstructor{Kind: ek.kind}
	}
	return symbols
}

func nativePrint(w io.Writer, newline bool) value.NativeFunc {
	name := "print"
	if newline {
		name = "println"
	}
	return value.NativeFunc{Name: name, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.String()
		}
		text := strings.Join(parts, " ")
		if newline {
			text += "\n"
		}
		fmt.Fprint(w, text)
		return value.Null{}, nil
	}}
}

func nativeReadLine(w io.Writer, r *bufio.Reader) value.NativeFunc {
	return value.NativeFunc{Name: "readln!", Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(args) > 0 {
			fmt.Fprint(w, args[0].String())
		}
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return nil, farrerr.Wrap(farrerr.OSError, "failed to read from stdin", err, farrerr.Position{})
		}
		return value.String{Value: strings.TrimRight(line, "\r\n")}, nil
	}}
}

func nativePanic() value.NativeFunc {
	return value.NativeFunc{Name: "panic!?", Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(args) == 0 {
			return nil, farrerr.New(farrerr.BaseError, "explicit panic", farrerr.Position{})
		}
		if ev, ok := args[0].(value.ErrorValue); ok {
			return nil, farrerr.New(ev.Kind, ev.Message, farrerr.Position{})
		}
		return nil, farrerr.New(farrerr.BaseError, args[0].String(), farrerr.Position{})
	}}
}

func nativeAssert() value.NativeFunc {
	return value.NativeFunc{Name: "assert!", Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(args) == 0 {
			return nil, farrerr.New(farrerr.TypeError, "assert! requires a condition", farrerr.Position{})
		}
		if args[0].Bool() {
			return value.Null{}, nil
		}
		msg := "assertion failed"
		if len(args) > 1 {
			msg = args[1].String()
		}
		return nil, farrerr.New(farrerr.AssertionError, msg, farrerr.Position{})
	}}
}

func nativeExit() value.NativeFunc {
	return value.NativeFunc{Name: "exit!", Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
		code := 0
		if len(args) > 0 {
			if i, ok := args[0].(value.Integer); ok {
				code = int(i.Value)
			}
		}
		return nil, farrerr.NewExit(code)
	}}
}

func nativeTypeOf() value.NativeFunc {
	return value.NativeFunc{Name: "typeof?", Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(args) == 0 {
			return nil, farrerr.New(farrerr.TypeError, "typeof? requires one argument", farrerr.Position{})
		}
		return value.String{Value: args[0].TypeName()}, nil
	}}
}

func nativeSimilarTypes() value.NativeFunc {
	return value.NativeFunc{Name: "similartypes?", Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(args) < 2 {
			return nil, farrerr.New(farrerr.TypeError, "similartypes? requires two arguments", farrerr.Position{})
		}
		return value.NewBool(args[0].TypeName() == args[1].TypeName()), nil
	}}
}

func nativeShell(shell Shell) value.NativeFunc {
	return value.NativeFunc{Name: "cmd!?", Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(args) == 0 {
			return nil, farrerr.New(farrerr.TypeError, "cmd!? requires a command string", farrerr.Position{})
		}
		cmd, ok := args[0].(value.String)
		if !ok {
			return nil, farrerr.New(farrerr.TypeError, "cmd!? expects a String", farrerr.Position{})
		}
		out, err := shell(cmd.Value)
		if err != nil {
			return nil, farrerr.Wrap(farrerr.OSError, "shell command failed", err, farrerr.Position{})
		}
		return value.String{Value: out}, nil
	}}
}
