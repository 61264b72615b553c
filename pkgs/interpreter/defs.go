package interpreter

import (
	"github.com/farrlang/farr/pkgs/ast"
	"github.com/farrlang/farr/pkgs/farrerr"
	"github.com/farrlang/farr/pkgs/token"
	"github.com/farrlang/farr/pkgs/value"
)

// evalVariableDecl implements `let name[ = expr]`.
func (in *Interpreter) evalVariableDecl(n *ast.VariableDecl) (value.Value, error) {
	var v value.Value = value.Null{}
	if n.Value != nil {
		var err error
		v, err = in.Eval(n.Value)
		if err != nil {
			return nil, err
		}
	}
	in.env.Assign(n.Name, v)
	return v, nil
}

// evalAssignment implements `targets = value`, assigning the same
// right-hand value to every target through the shared pointer-chain
// resolver.
func (in *Interpreter) evalAssignment(n *ast.AssignmentStmt) (value.Value, error) {
	v, err := in.Eval(n.Value)
	if err != nil {
		return nil, err
	}
	for _, t := range n.Targets {
		target, err := in.resolveTarget(chainParts(t))
		if err != nil {
			return nil, err
		}
		if err := target.set(v); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// evalCompoundAssign implements `target op= value` (AddEqual, SubtractEqual,
// ...), collapsing the original's eight near-identical node classes/
// handlers into one dispatch through combine, keyed by the plain
// arithmetic operator (Add, Subtract, ...) the parser stores in Op.
func (in *Interpreter) evalCompoundAssign(n *ast.CompoundAssignStmt) (value.Value, error) {
	rhs, err := in.Eval(n.Value)
	if err != nil {
		return nil, err
	}
	var result value.Value
	for _, t := range n.Targets {
		target, err := in.resolveTarget(chainParts(t))
		if err != nil {
			return nil, err
		}
		current, err := target.get()
		if err != nil {
			return nil, err
		}
		combined, err := combine(n.Op, current, rhs)
		if err != nil {
			return nil, arithmeticOrTypeError(err, n.Position())
		}
		if err := target.set(combined); err != nil {
			return nil, err
		}
		result = combined
	}
	return result, nil
}

func combine(op token.Kind, a, b value.Value) (value.Value, error) {
	switch op {
	case token.Add:
		if ls, ok := a.(value.String); ok {
			if rs, ok := b.(value.String); ok {
				return ls.Concat(rs), nil
			}
		}
		return value.Add(a, b)
	case token.Subtract:
		return value.Sub(a, b)
	case token.Multiply:
		return value.Mul(a, b)
	case token.Divide:
		return value.Div(a, b)
	case token.Modulus:
		return value.Mod(a, b)
	case token.Power:
		return value.Pow(a, b)
	case token.LeftShift:
		return value.LeftShift(a, b)
	case token.RightShift:
		return value.RightShift(a, b)
	default:
		return nil, farrerr.New(farrerr.RuntimeError, "unknown compound-assignment operator", farrerr.Position{})
	}
}

// evalReturn implements `return![ expr]` by raising a ReturnSignal, caught
// by callFunction at the call boundary.
func (in *Interpreter) evalReturn(n *ast.ReturnStmt) (value.Value, error) {
	var v value.Value = value.Null{}
	if n.Value != nil {
		var err error
		v, err = in.Eval(n.Value)
		if err != nil {
			return nil, err
		}
	}
	return nil, farrerr.ReturnSignal{Value: v}
}

// evalFunctionDef binds `fn name(params) = { body }` into the current
// scope, capturing it as the function's closure.
func (in *Interpreter) evalFunctionDef(n *ast.FunctionDef) (value.Value, error) {
	in.env.Assign(n.Name, value.Function{Name: n.Name, Params: n.Params, Body: n.Body, Closure: in.env})
	return value.Null{}, nil
}

// evalMemberFunctionDef splices `fn Struct::name(params) = { body }` into
// its struct's body, entirely at interpretation time — unlike the
// original, where the parser performs this splice, pkgs/parser leaves
// MemberFunctionDef nodes as ordinary top-level nodes, so it falls to
// the interpreter to fetch the already-defined StructDefinition and
// append this function to it.
func (in *Interpreter) evalMemberFunctionDef(n *ast.MemberFunctionDef) (value.Value, error) {
	v, err := in.env.Locate(n.Struct)
	if err != nil {
		return nil, err
	}
	def, ok := v.(value.StructDefinition)
	if !ok {
		return nil, farrerr.New(farrerr.TypeError, "'"+n.Struct+"' is not a struct", farrerr.PosFrom(n.Position()))
	}
	def.Body = append(def.Body, ast.Func(n.Position(), n.Name, n.Params, n.Body))
	if err := in.env.Replace(n.Struct, def); err != nil {
		return nil, err
	}
	return value.Null{}, nil
}

// evalStructDef builds a StructDefinition, flattening each parent's
// attributes and body ahead of this struct's own, in declared parent
// order — the interpret-time analogue of _populate_on_parents.
func (in *Interpreter) evalStructDef(n *ast.StructDef) (value.Value, error) {
	var attrs, body []ast.Node
	for _, parentName := range n.Parents {
		v, err := in.env.Locate(parentName)
		if err != nil {
			return nil, err
		}
		parent, ok := v.(value.StructDefinition)
		if !ok {
			return nil, farrerr.New(farrerr.TypeError, "'"+parentName+"' is not a struct", farrerr.PosFrom(n.Position()))
		}
		attrs = append(attrs, parent.Attributes...)
		body = append(body, parent.Body...)
	}
	if n.Attributes != nil {
		attrs = append(attrs, n.Attributes.Items...)
	}
	body = append(body, n.Body...)

	def := value.StructDefinition{Name: n.Name, Attributes: attrs, Body: body, Def: n}
	in.env.Assign(n.Name, def)
	return value.Null{}, nil
}

// evalUse implements `use a/b/c`, resolving and running the named module
// or library through the installed Importer and binding the result under
// the name it reports.
func (in *Interpreter) evalUse(n *ast.UseStmt) (value.Value, error) {
	if in.importer == nil {
		return nil, farrerr.New(farrerr.ImportError, "no importer configured", farrerr.PosFrom(n.Position()))
	}
	v, err := in.importer.Import(n.Path)
	if err != nil {
		return nil, err
	}
	switch m := v.(type) {
	case value.Module:
		in.env.Assign(m.Name, m)
	case value.Library:
		in.env.Assign(m.Name, m)
	default:
		return nil, farrerr.New(farrerr.ImportError, "use did not resolve to a module or library", farrerr.PosFrom(n.Position()))
	}
	return v, nil
}
