package interpreter

import (
	"errors"

	"github.com/farrlang/farr/pkgs/ast"
	"github.com/farrlang/farr/pkgs/farrerr"
	"github.com/farrlang/farr/pkgs/token"
	"github.com/farrlang/farr/pkgs/value"
)

// evalArithmetic implements the eight prefix arithmetic operators,
// grounded on the original's one _interpret_arithmetic_node dispatching
// on node.operator. `+` additionally concatenates two Strings, since the
// original's ArithmeticNode reuses `+` for both numeric addition and
// string concatenation via Python's operator overloading.
func (in *Interpreter) evalArithmetic(n *ast.ArithmeticExpr) (value.Value, error) {
	left, err := in.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.Eval(n.Right)
	if err != nil {
		return nil, err
	}

	if n.Op == token.Add {
		if ls, ok := left.(value.String); ok {
			if rs, ok := right.(value.String); ok {
				return ls.Concat(rs), nil
			}
		}
	}

	var v value.Value
	switch n.Op {
	case token.Add:
		v, err = value.Add(left, right)
	case token.Subtract:
		v, err = value.Sub(left, right)
	case token.Multiply:
		v, err = value.Mul(left, right)
	case token.Divide:
		v, err = value.Div(left, right)
	case token.Modulus:
		v, err = value.Mod(left, right)
	case token.Power:
		v, err = value.Pow(left, right)
	case token.LeftShift:
		v, err = value.LeftShift(left, right)
	case token.RightShift:
		v, err = value.RightShift(left, right)
	default:
		return nil, farrerr.New(farrerr.RuntimeError, "unknown arithmetic operator", farrerr.PosFrom(n.Position()))
	}
	if err != nil {
		return nil, arithmeticOrTypeError(err, n.Position())
	}
	return v, nil
}

// arithmeticOrTypeError classifies a value-package arithmetic failure:
// zero-division/modulus is ArithmeticError per the error taxonomy (§7),
// everything else (operand type mismatches) is TypeError.
func arithmeticOrTypeError(err error, pos token.Position) error {
	if errors.Is(err, value.ErrDivisionByZero) || errors.Is(err, value.ErrModulusByZero) {
		return farrerr.Wrap(farrerr.ArithmeticError, err.Error(), err, farrerr.PosFrom(pos))
	}
	return farrerr.Wrap(farrerr.TypeError, err.Error(), err, farrerr.PosFrom(pos))
}

// evalRelational implements the six infix comparison operators.
// Equality/inequality work on any Value via Equal; ordering is restricted
// to numeric operands by value.Compare.
func (in *Interpreter) evalRelational(n *ast.RelationalExpr) (value.Value, error) {
	left, err := in.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.Eval(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case token.EqualEqual:
		return value.NewBool(left.Equal(right)), nil
	case token.NotEqual:
		return value.NewBool(!left.Equal(right)), nil
	}

	cmp, err := value.Compare(left, right)
	if err != nil {
		return nil, farrerr.Wrap(farrerr.TypeError, err.Error(), err, farrerr.PosFrom(n.Position()))
	}
	switch n.Op {
	case token.LessThan:
		return value.NewBool(cmp < 0), nil
	case token.GreaterThan:
		return value.NewBool(cmp > 0), nil
	case token.LessThanOrEqual:
		return value.NewBool(cmp <= 0), nil
	case token.GreaterThanOrEqual:
		return value.NewBool(cmp >= 0), nil
	default:
		return nil, farrerr.New(farrerr.RuntimeError, "unknown relational operator", farrerr.PosFrom(n.Position()))
	}
}

// evalLogical implements `&&`/`||` with true short-circuit evaluation —
// a deliberate divergence from the original's eager evaluate-both-sides
// LogicalNode, recorded in DESIGN.md.
func (in *Interpreter) evalLogical(n *ast.LogicalExpr) (value.Value, error) {
	left, err := in.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case token.And:
		if !left.Bool() {
			return left, nil
		}
		return in.Eval(n.Right)
	case token.Or:
		if left.Bool() {
			return left, nil
		}
		return in.Eval(n.Right)
	default:
		return nil, farrerr.New(farrerr.RuntimeError, "unknown logical operator", farrerr.PosFrom(n.Position()))
	}
}

// evalTernary implements `then if condition else orelse`.
func (in *Interpreter) evalTernary(n *ast.TernaryExpr) (value.Value, error) {
	cond, err := in.Eval(n.Condition)
	if err != nil {
		return nil, err
	}
	if cond.Bool() {
		return in.Eval(n.Then)
	}
	return in.Eval(n.Else)
}

// evalIncDec implements `++x`/`--x`/`x++`/`x--` through the shared
// pointer-chain resolver: the one Go mechanism standing in for the
// original's four separate node classes and handler methods.
func (in *Interpreter) evalIncDec(node ast.Node) (value.Value, error) {
	var operand ast.Node
	var delta int64
	var pre bool
	switch n := node.(type) {
	case *ast.PreIncrement:
		operand, delta, pre = n.Operand, 1, true
	case *ast.PreDecrement:
		operand, delta, pre = n.Operand, -1, true
	case *ast.PostIncrement:
		operand, delta, pre = n.Operand, 1, false
	case *ast.PostDecrement:
		operand, delta, pre = n.Operand, -1, false
	default:
		return nil, farrerr.New(farrerr.RuntimeError, "not an increment/decrement node", farrerr.PosFrom(node.Position()))
	}

	target, err := in.resolveTarget(chainParts(operand))
	if err != nil {
		return nil, err
	}
	current, err := target.get()
	if err != nil {
		return nil, err
	}
	updated, err := value.Add(current, value.Integer{Value: delta})
	if err != nil {
		return nil, farrerr.Wrap(farrerr.TypeError, err.Error(), err, farrerr.PosFrom(node.Position()))
	}
	if err := target.set(updated); err != nil {
		return nil, err
	}
	if pre {
		return updated, nil
	}
	return current, nil
}

// chainParts normalizes a reference expression (a bare Identifier or a
// ChainedExpr) into the Parts slice resolveTarget walks.
func chainParts(n ast.Node) []ast.Node {
	if chained, ok := n.(*ast.ChainedExpr); ok {
		return chained.Parts
	}
	return []ast.Node{n}
}
