package value

import "github.com/farrlang/farr/pkgs/farrerr"

// ErrorValue is a raised error reified as a Farr value, bound by a
// `catch (...) as name` clause. It wraps the same Kind taxonomy
// pkgs/farrerr.Error carries so `typeof?`/`similartypes?` and further
// `panic!?` re-raising see a consistent type.
type ErrorValue struct {
	Kind    farrerr.Kind
	Message string
}

func (ErrorValue) TypeName() string { return "Error" }
func (e ErrorValue) String() string { return e.Kind.String() + ": " + e.Message }
func (ErrorValue) Bool() bool       { return true }
func (e ErrorValue) Equal(o Value) bool {
	other, ok := o.(ErrorValue)
	return ok && other.Kind == e.Kind && other.Message == e.Message
}

// ErrorConstructor is the callable each error-taxonomy name (ArithmeticError,
// TypeError, ...) is bound to in the builtin symbol table; calling it
// builds an ErrorValue rather than raising immediately, matching the
// original treating exception classes as ordinary callables until
// `panic!?` (or an uncaught propagation) actually raises them.
type ErrorConstructor struct {
	Kind farrerr.Kind
}

func (ErrorConstructor) TypeName() string { return "Function" }
func (c ErrorConstructor) String() string { return "<error constructor " + c.Kind.String() + ">" }
func (ErrorConstructor) Bool() bool       { return true }
func (c ErrorConstructor) Equal(o Value) bool {
	other, ok := o.(ErrorConstructor)
	return ok && other.Kind == c.Kind
}
