package value

import (
	"errors"
	"math"
	"strconv"
)

// ErrDivisionByZero and ErrModulusByZero are sentinel errors Div/Mod
// return on a zero divisor, letting callers (pkgs/interpreter) raise
// Farr's ArithmeticError instead of the generic TypeError every other
// value-package failure maps to.
var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrModulusByZero  = errors.New("modulus by zero")
)

// Integer is Farr's integer value, grounded on original_source's
// IntegerObject. Binary arithmetic with a Float operand promotes to
// Float; with another Integer it stays Integer, matching the original's
// "result type follows the other operand's class" dunder behavior.
type Integer struct{ Value int64 }

func (Integer) TypeName() string   { return "Integer" }
func (i Integer) String() string   { return strconv.FormatInt(i.Value, 10) }
func (i Integer) Bool() bool       { return i.Value != 0 }
func (i Integer) HashKey() string  { return "int:" + strconv.FormatInt(i.Value, 10) }
func (i Integer) Equal(o Value) bool {
	switch other := o.(type) {
	case Integer:
		return i.Value == other.Value
	case Float:
		return float64(i.Value) == other.Value
	default:
		return false
	}
}

// Float is Farr's floating-point value, grounded on FloatObject. All
// arithmetic involving a Float always yields a Float.
type Float struct{ Value float64 }

func (Float) TypeName() string  { return "Float" }
func (f Float) String() string  { return strconv.FormatFloat(f.Value, 'g', -1, 64) }
func (f Float) Bool() bool      { return f.Value != 0 }
func (f Float) HashKey() string { return "float:" + strconv.FormatFloat(f.Value, 'g', -1, 64) }
func (f Float) Equal(o Value) bool {
	switch other := o.(type) {
	case Float:
		return f.Value == other.Value
	case Integer:
		return f.Value == float64(other.Value)
	default:
		return false
	}
}

func asFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case Integer:
		return float64(n.Value), true
	case Float:
		return n.Value, true
	default:
		return 0, false
	}
}

// Add implements `+ a b`. Division always produces a Float per the
// original's __truediv__-only division semantics; every other arithmetic
// op stays Integer when both operands are Integer.
func Add(a, b Value) (Value, error) { return numericOp("+", a, b, func(x, y int64) int64 { return x + y }, func(x, y float64) float64 { return x + y }) }
func Sub(a, b Value) (Value, error) { return numericOp("-", a, b, func(x, y int64) int64 { return x - y }, func(x, y float64) float64 { return x - y }) }
func Mul(a, b Value) (Value, error) { return numericOp("*", a, b, func(x, y int64) int64 { return x * y }, func(x, y float64) float64 { return x * y }) }

func Mod(a, b Value) (Value, error) {
	ai, aok := a.(Integer)
	bi, bok := b.(Integer)
	if aok && bok {
		if bi.Value == 0 {
			return nil, ErrModulusByZero
		}
		return Integer{Value: ai.Value % bi.Value}, nil
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok || !bok {
		return nil, typeErr("%", a, b)
	}
	return Float{Value: math.Mod(af, bf)}, nil
}

func Pow(a, b Value) (Value, error) {
	ai, aok := a.(Integer)
	bi, bok := b.(Integer)
	if aok && bok && bi.Value >= 0 {
		return Integer{Value: intPow(ai.Value, bi.Value)}, nil
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok || !bok {
		return nil, typeErr("**", a, b)
	}
	return Float{Value: math.Pow(af, bf)}, nil
}

func intPow(base, exp int64) int64 {
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		result *= base
	}
	return result
}

// Div always returns a Float, matching the original's __truediv__.
func Div(a, b Value) (Value, error) {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok || !bok {
		return nil, typeErr("/", a, b)
	}
	if bf == 0 {
		return nil, ErrDivisionByZero
	}
	return Float{Value: af / bf}, nil
}

func LeftShift(a, b Value) (Value, error) {
	ai, aok := a.(Integer)
	bi, bok := b.(Integer)
	if !aok || !bok {
		return nil, typeErr("<<", a, b)
	}
	return Integer{Value: ai.Value << uint(bi.Value)}, nil
}

func RightShift(a, b Value) (Value, error) {
	ai, aok := a.(Integer)
	bi, bok := b.(Integer)
	if !aok || !bok {
		return nil, typeErr(">>", a, b)
	}
	return Integer{Value: ai.Value >> uint(bi.Value)}, nil
}

func numericOp(op string, a, b Value, intOp func(int64, int64) int64, floatOp func(float64, float64) float64) (Value, error) {
	ai, aIsInt := a.(Integer)
	bi, bIsInt := b.(Integer)
	if aIsInt && bIsInt {
		return Integer{Value: intOp(ai.Value, bi.Value)}, nil
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok || !bok {
		return nil, typeErr(op, a, b)
	}
	return Float{Value: floatOp(af, bf)}, nil
}

// Compare implements the four ordering relations (<, >, <=, >=), valid
// only between Integer/Float operands, matching the original's
// __lt__/__gt__/__le__/__ge__ restriction.
func Compare(a, b Value) (int, error) {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok || !bok {
		return 0, typeErr("comparison", a, b)
	}
	switch {
	case af < bf:
		return -1, nil
	case af > bf:
		return 1, nil
	default:
		return 0, nil
	}
}
