package interpreter

import (
	"github.com/farrlang/farr/pkgs/ast"
	"github.com/farrlang/farr/pkgs/farrerr"
	"github.com/farrlang/farr/pkgs/value"
)

// evalWhile implements `while cond = { body } [else { orelse }]`, grounded
// on _interpret_while_node. Else runs only if the loop exits because its
// condition went false, not because of a `break!`.
func (in *Interpreter) evalWhile(n *ast.WhileStmt) (value.Value, error) {
	for {
		cond, err := in.Eval(n.Condition)
		if err != nil {
			return nil, err
		}
		if !cond.Bool() {
			if n.Else != nil {
				return in.runBody(n.Else.Body)
			}
			return value.Null{}, nil
		}
		_, err = in.runBody(n.Body.Body)
		if err == nil {
			continue
		}
		if _, ok := err.(farrerr.BreakSignal); ok {
			return value.Null{}, nil
		}
		if _, ok := err.(farrerr.ContinueSignal); ok {
			continue
		}
		return nil, err
	}
}

// evalFor implements `for names in iterable = { body } [else { orelse }]`.
// Loop variables are rebound into the current scope on each iteration
// (never a fresh child scope), matching the original's reuse of a single
// loop-local Environment entry across iterations.
func (in *Interpreter) evalFor(n *ast.ForStmt) (value.Value, error) {
	iterable, err := in.Eval(n.Iterable)
	if err != nil {
		return nil, err
	}
	items, err := iterate(iterable)
	if err != nil {
		return nil, farrerr.Wrap(farrerr.TypeError, err.Error(), err, farrerr.PosFrom(n.Position()))
	}

	for _, item := range items {
		if err := bindForNames(in, n.Names, item); err != nil {
			return nil, err
		}
		_, err = in.runBody(n.Body.Body)
		if err == nil {
			continue
		}
		if _, ok := err.(farrerr.BreakSignal); ok {
			return value.Null{}, nil
		}
		if _, ok := err.(farrerr.ContinueSignal); ok {
			continue
		}
		return nil, err
	}
	if n.Else != nil {
		return in.runBody(n.Else.Body)
	}
	return value.Null{}, nil
}

// iterate materializes every Value a `for` loop can walk: a List's
// elements, a HashMap's pairs, a String's characters, or a bounded Range's
// integers. An unbounded Range is rejected outright since it would never
// terminate without itself being the loop's only name.
func iterate(v value.Value) ([]value.Value, error) {
	switch c := v.(type) {
	case value.List:
		return c.Elements, nil
	case value.HashMap:
		out := make([]value.Value, len(c.Pairs))
		for i, p := range c.Pairs {
			out[i] = p
		}
		return out, nil
	case value.String:
		runes := []rune(c.Value)
		out := make([]value.Value, len(runes))
		for i, r := range runes {
			out[i] = value.String{Value: string(r)}
		}
		return out, nil
	case value.Range:
		if c.To == nil {
			return nil, farrerr.New(farrerr.TypeError, "cannot iterate an unbounded range", farrerr.Position{})
		}
		values := c.Values()
		out := make([]value.Value, len(values))
		for i, n := range values {
			out[i] = value.Integer{Value: n}
		}
		return out, nil
	default:
		return nil, farrerr.New(farrerr.TypeError, "'"+v.TypeName()+"' is not iterable", farrerr.Position{})
	}
}

// bindForNames assigns one iteration's item to the loop's binding names.
// A single name gets the whole item; multiple names (`for k, v in ...`)
// destructure a Pair.
func bindForNames(in *Interpreter, names []ast.Node, item value.Value) error {
	if len(names) == 1 {
		return bindForName(in, names[0], item)
	}
	pair, ok := item.(value.Pair)
	if !ok {
		return farrerr.New(farrerr.TypeError, "cannot destructure a "+item.TypeName()+" into multiple names", farrerr.Position{})
	}
	if len(names) != 2 {
		return farrerr.New(farrerr.TypeError, "expected exactly two names to destructure a Pair", farrerr.Position{})
	}
	if err := bindForName(in, names[0], pair.Key); err != nil {
		return err
	}
	return bindForName(in, names[1], pair.Val)
}

func bindForName(in *Interpreter, node ast.Node, v value.Value) error {
	switch n := node.(type) {
	case *ast.Identifier:
		in.env.Assign(n.Name, v)
		return nil
	case *ast.VariableDecl:
		in.env.Assign(n.Name, v)
		return nil
	default:
		return farrerr.New(farrerr.TypeError, "invalid for-loop binding", farrerr.PosFrom(node.Position()))
	}
}

// evalIf implements `if cond = { body } [else ...]`; Else is either a
// *Block, a chained *IfStmt, or nil.
func (in *Interpreter) evalIf(n *ast.IfStmt) (value.Value, error) {
	cond, err := in.Eval(n.Condition)
	if err != nil {
		return nil, err
	}
	if cond.Bool() {
		return in.runBody(n.Body.Body)
	}
	switch e := n.Else.(type) {
	case nil:
		return value.Null{}, nil
	case *ast.Block:
		return in.runBody(e.Body)
	case *ast.IfStmt:
		return in.evalIf(e)
	default:
		return nil, farrerr.New(farrerr.RuntimeError, "invalid if-else node", farrerr.PosFrom(n.Position()))
	}
}

// evalMatch implements `match subject = { for cond = {...} ... }`,
// grounded on _interpret_match_node, walking Cases as a flat slice
// (ast.go's representation already flattens the original's destructive
// pop+orelse chain). A case with a nil Condition is the default arm; an
// ItemizedExpr Condition tests membership, anything else tests equality.
func (in *Interpreter) evalMatch(n *ast.MatchStmt) (value.Value, error) {
	subject, err := in.Eval(n.Subject)
	if err != nil {
		return nil, err
	}
	for _, c := range n.Cases {
		if c.Condition == nil {
			return in.runBody(c.Body.Body)
		}
		matched, err := matchCase(in, subject, c.Condition)
		if err != nil {
			return nil, err
		}
		if matched {
			return in.runBody(c.Body.Body)
		}
	}
	return value.Null{}, nil
}

func matchCase(in *Interpreter, subject value.Value, cond ast.Node) (bool, error) {
	if items, ok := cond.(*ast.ItemizedExpr); ok {
		for _, item := range items.Items {
			v, err := in.Eval(item)
			if err != nil {
				return false, err
			}
			if subject.Equal(v) {
				return true, nil
			}
		}
		return false, nil
	}
	v, err := in.Eval(cond)
	if err != nil {
		return false, err
	}
	return subject.Equal(v), nil
}

// evalTry implements `try = { body } [catch (Kind1, Kind2) [as name] = {
// body } ...]`, grounded on _interpret_try_node. A raised *farrerr.Error
// is matched against each catch clause's declared Kinds via
// Kind.IsSubtypeOf; if none match, the error propagates unchanged. With
// no catch clause declared at all, a raised error is silently swallowed,
// matching the original's bare `try` semantics.
func (in *Interpreter) evalTry(n *ast.TryStmt) (value.Value, error) {
	v, err := in.runBody(n.Body.Body)
	if err == nil {
		return v, nil
	}
	if _, ok := err.(farrerr.BreakSignal); ok {
		return nil, err
	}
	if _, ok := err.(farrerr.ContinueSignal); ok {
		return nil, err
	}
	if _, ok := err.(farrerr.ReturnSignal); ok {
		return nil, err
	}

	fe, ok := err.(*farrerr.Error)
	if !ok {
		return nil, err
	}
	if n.Catch == nil {
		return value.Null{}, nil
	}
	for clause := n.Catch; clause != nil; clause = clause.Else {
		if !catchMatches(fe, clause.Excepts) {
			continue
		}
		if clause.As != "" {
			in.env.Assign(clause.As, value.ErrorValue{Kind: fe.ErrKind, Message: fe.Message})
		}
		return in.runBody(clause.Body.Body)
	}
	return nil, fe
}

func catchMatches(fe *farrerr.Error, excepts []string) bool {
	if len(excepts) == 0 {
		return true
	}
	for _, name := range excepts {
		if kind, ok := farrerr.KindByName(name); ok && fe.ErrKind.IsSubtypeOf(kind) {
			return true
		}
	}
	return false
}
