// Package value implements Farr's runtime value model.
//
// Values are a closed set of concrete Go types implementing the Value
// interface, the idiomatic Go analogue of the original implementation's
// FarrObject dataclass hierarchy. Dispatch on value kind happens via Go
// type switches in pkgs/interpreter rather than virtual methods, except
// for the handful of operations (TypeName, String, Bool, Equal) every value
// must support, which are real interface methods. HashKey belongs to the
// separate Hashable interface.
package value

import "fmt"

// Value is implemented by every Farr runtime value.
type Value interface {
	// TypeName is the name surfaced by `typeof?` and in error messages.
	TypeName() string
	// String renders the value the way Farr's `print`/string-interpolation
	// does.
	String() string
	// Bool is the value's truthiness.
	Bool() bool
	// Equal implements Farr's `==`. Values of different concrete types are
	// never equal unless one side's Equal explicitly special-cases it.
	Equal(other Value) bool
}

// Hashable is implemented by values usable as HashMap keys.
type Hashable interface {
	Value
	HashKey() string
}

// Null is the `null` value. Its Bool is false and it compares equal to
// itself only, matching the original's NullObject semantics (including
// its custom __eq__ that treats `false == null` as true is NOT carried
// over here — that was a Python-ism from comparing against bool(False)
// incidentally; Farr's null is equal only to null).
type Null struct{}

func (Null) TypeName() string { return "Null" }
func (Null) String() string   { return "null" }
func (Null) Bool() bool       { return false }
func (Null) Equal(other Value) bool {
	_, ok := other.(Null)
	return ok
}
func (Null) HashKey() string { return "null:" }

// Pass is the `...` ellipsis value.
type Pass struct{}

func (Pass) TypeName() string { return "Pass" }
func (Pass) String() string   { return "..." }
func (Pass) Bool() bool       { return false }
func (Pass) Equal(other Value) bool {
	_, ok := other.(Pass)
	return ok
}

// Boolean wraps a Go bool.
type Boolean struct{ Value bool }

func (Boolean) TypeName() string { return "Boolean" }
func (b Boolean) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}
func (b Boolean) Bool() bool { return b.Value }
func (b Boolean) Equal(other Value) bool {
	o, ok := other.(Boolean)
	return ok && o.Value == b.Value
}
func (b Boolean) HashKey() string {
	if b.Value {
		return "bool:true"
	}
	return "bool:false"
}

// NewBool wraps a Go bool in a Boolean value.
func NewBool(b bool) Boolean { return Boolean{Value: b} }

// typeErr formats the standard "unsupported operand type(s)" message used
// across the value package's binary operations.
func typeErr(op string, left, right Value) error {
	return fmt.Errorf("unsupported operand type(s) for %s: %q and %q", op, left.TypeName(), right.TypeName())
}
