// Package farrerr implements Farr's closed runtime error taxonomy.
package farrerr

import (
	"fmt"

	"github.com/farrlang/farr/pkgs/token"
)

// Kind identifies a node in Farr's closed error taxonomy. Every user-raised
// or runtime-raised failure carries exactly one Kind, and try/catch clauses
// match against it via IsSubtypeOf.
type Kind int

const (
	BaseError Kind = iota
	KeyboardInterruptError
	SystemExitError
	ArithmeticError
	AssertionError
	AttributeError
	ImportError
	LookupError
	NameError
	OSError
	RuntimeError
	NotImplementedError
	TypeError
	ValueError
	DeprecatedError
)

var kindNames = [...]string{
	BaseError:              "BaseError",
	KeyboardInterruptError: "KeyboardInterruptError",
	SystemExitError:        "SystemExitError",
	ArithmeticError:        "ArithmeticError",
	AssertionError:         "AssertionError",
	AttributeError:         "AttributeError",
	ImportError:            "ImportError",
	LookupError:            "LookupError",
	NameError:              "NameError",
	OSError:                "OSError",
	RuntimeError:           "RuntimeError",
	NotImplementedError:    "NotImplementedError",
	TypeError:              "TypeError",
	ValueError:             "ValueError",
	DeprecatedError:        "DeprecatedError",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// KindByName looks up a Kind by the name a `catch (Name)` clause declares,
// used to validate/interpret catch clauses against the closed taxonomy.
func KindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return BaseError, false
}

// parentOf encodes the taxonomy's single-inheritance tree: every listed
// Kind's direct parent is BaseError, except BaseError itself which has no
// parent. This mirrors the original implementation's flat one-level
// exception hierarchy (every concrete error subclasses BaseError directly).
var parentOf = map[Kind]Kind{
	KeyboardInterruptError: BaseError,
	SystemExitError:        BaseError,
	ArithmeticError:        BaseError,
	AssertionError:         BaseError,
	AttributeError:         BaseError,
	ImportError:            BaseError,
	LookupError:            BaseError,
	NameError:              BaseError,
	OSError:                BaseError,
	RuntimeError:           BaseError,
	NotImplementedError:    BaseError,
	TypeError:              BaseError,
	ValueError:             BaseError,
	DeprecatedError:        BaseError,
}

// IsSubtypeOf reports whether k matches a catch clause declaring caught.
// A Kind always catches itself and BaseError catches everything. This
// reproduces the original's issubclass(raised, caught.__bases__) test:
// raised matches caught when raised equals caught, or when caught is
// BaseError (raised's implicit parent).
func (k Kind) IsSubtypeOf(caught Kind) bool {
	if k == caught || caught == BaseError {
		return true
	}
	parent, ok := parentOf[k]
	return ok && parent == caught
}

// Position is the source location a runtime error originated at.
type Position struct {
	Line   int
	Column int
}

// PosFrom converts a token.Position (as carried by ast.Node.Position) into
// the farrerr.Position an Error reports.
func PosFrom(p token.Position) Position {
	return Position{Line: p.Line, Column: p.Column}
}

// Error is Farr's runtime error value. It implements the standard error
// interface so Go code can use errors.As/errors.Is against it, while Kind
// drives the language-level try/catch subtype matching.
type Error struct {
	ErrKind Kind
	Message string
	Cause   error
	Pos     Position
	// Code carries a process exit status; only meaningful when ErrKind is
	// SystemExitError, set by the `exit!` builtin.
	Code int
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.ErrKind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.ErrKind, e.Message)
}

// Unwrap allows error unwrapping via errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with no wrapped cause.
func New(kind Kind, message string, pos Position) *Error {
	return &Error{ErrKind: kind, Message: message, Pos: pos}
}

// Wrap creates an Error that wraps an existing Go error as its cause.
func Wrap(kind Kind, message string, cause error, pos Position) *Error {
	return &Error{ErrKind: kind, Message: message, Cause: cause, Pos: pos}
}

// NewExit creates the SystemExitError raised by `exit!`.
func NewExit(code int) *Error {
	return &Error{ErrKind: SystemExitError, Message: fmt.Sprintf("exit code %d", code), Code: code}
}

// Is reports whether err is a Farr error of kind (or a subtype of it).
func Is(err error, kind Kind) bool {
	fe, ok := err.(*Error)
	return ok && fe.ErrKind.IsSubtypeOf(kind)
}

// BreakSignal, ContinueSignal and ReturnSignal are non-error control-flow
// signals, kept as distinct Go types from Error so the interpreter's
// dispatch loop never mistakes loop control for a raised error.
type BreakSignal struct{}

func (BreakSignal) Error() string { return "break outside loop" }

type ContinueSignal struct{}

func (ContinueSignal) Error() string { return "continue outside loop" }

// ReturnSignal carries a function's return value up the call stack. Value
// is typed as interface{} here to avoid an import cycle with pkgs/value;
// pkgs/interpreter type-asserts it back to value.Value.
type ReturnSignal struct {
	Value interface{}
}

func (ReturnSignal) Error() string { return "return outside function" }
