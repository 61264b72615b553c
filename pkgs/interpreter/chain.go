package interpreter

import (
	"github.com/farrlang/farr/pkgs/ast"
	"github.com/farrlang/farr/pkgs/environment"
	"github.com/farrlang/farr/pkgs/farrerr"
	"github.com/farrlang/farr/pkgs/value"
)

// addr is a writable slot reached by resolving a chain of references,
// collapsing the ~12 near-identical pointer-chain-walking methods of
// original_source (one per assignment/increment operator) into the one
// helper every assignment-family operation and mutating builtin method
// shares.
type addr struct {
	get func() (value.Value, error)
	set func(value.Value) error
}

// evalChain evaluates a `.`-separated access chain left to right: each
// part after the first is an attribute name, a method call, or a
// subscript, grounded on _interpret_chained_expressions_node's reduce
// over result.
func (in *Interpreter) evalChain(n *ast.ChainedExpr) (value.Value, error) {
	parts := n.Parts
	result, err := in.Eval(parts[0])
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(parts); i++ {
		switch p := parts[i].(type) {
		case *ast.CallExpr:
			name, ok := p.Callee.(*ast.Identifier)
			if !ok {
				return nil, farrerr.New(farrerr.TypeError, "method call target must be a name", farrerr.PosFrom(p.Position()))
			}
			callee, err := in.memberAccess(result, name.Name, parts[:i])
			if err != nil {
				return nil, err
			}
			result, err = in.callValue(callee, p.Args, result)
			if err != nil {
				return nil, err
			}
		case *ast.Identifier:
			result, err = in.memberAccess(result, p.Name, parts[:i])
			if err != nil {
				return nil, err
			}
		default:
			key, err := in.evalSubscriptKey(p)
			if err != nil {
				return nil, err
			}
			result, err = containerIndexGet(result, key)
			if err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// environmentOf reports the lexical scope backing receiver's attributes,
// for the three reference-typed values (struct instances, modules,
// libraries) whose members live in a real *environment.Environment rather
// than in Go-level methods.
func environmentOf(v value.Value) (*environment.Environment, bool) {
	switch r := v.(type) {
	case value.StructInstance:
		env, ok := r.Environment.(*environment.Environment)
		return env, ok
	case value.Module:
		env, ok := r.Environment.(*environment.Environment)
		return env, ok
	case value.Library:
		env, ok := r.Environment.(*environment.Environment)
		return env, ok
	default:
		return nil, false
	}
}

// memberAccess resolves `receiver.name`: an environment lookup for
// struct instances/modules/libraries, or a property/bound-method from the
// built-in method surface for List/HashMap/String. prefix names the chain
// parts that produced receiver, letting mutating built-in methods write a
// mutated copy back to wherever receiver came from.
func (in *Interpreter) memberAccess(receiver value.Value, name string, prefix []ast.Node) (value.Value, error) {
	if env, ok := environmentOf(receiver); ok {
		v, err := env.Locate(name)
		if err != nil {
			return nil, farrerr.New(farrerr.AttributeError, "no such attribute '"+name+"' on "+receiver.TypeName(), farrerr.Position{})
		}
		return v, nil
	}
	switch r := receiver.(type) {
	case value.List:
		return in.listMember(r, name, prefix)
	case value.HashMap:
		return in.hashMapMember(r, name, prefix)
	case value.String:
		return in.stringMember(r, name)
	default:
		return nil, farrerr.New(farrerr.AttributeError, "'"+receiver.TypeName()+"' has no attribute '"+name+"'", farrerr.Position{})
	}
}

// resolveTarget resolves an assignable slot for the reference chain
// parts, the shared pointer-chain walk behind every assignment-family
// operation (plain, compound, pre/post inc-dec) and every mutating
// built-in method call.
func (in *Interpreter) resolveTarget(parts []ast.Node) (addr, error) {
	if len(parts) == 1 {
		id, ok := parts[0].(*ast.Identifier)
		if !ok {
			return addr{}, farrerr.New(farrerr.TypeError, "assignment target must be a name", farrerr.PosFrom(parts[0].Position()))
		}
		name := id.Name
		return addr{
			get: func() (value.Value, error) { return in.env.Locate(name) },
			set: func(v value.Value) error { return in.env.Replace(name, v) },
		}, nil
	}

	container, err := in.evalParts(parts[:len(parts)-1])
	if err != nil {
		return addr{}, err
	}
	last := parts[len(parts)-1]

	if id, ok := last.(*ast.Identifier); ok {
		env, ok := environmentOf(container)
		if !ok {
			return addr{}, farrerr.New(farrerr.TypeError, "cannot assign an attribute on a "+container.TypeName(), farrerr.PosFrom(last.Position()))
		}
		name := id.Name
		return addr{
			get: func() (value.Value, error) { return env.Locate(name) },
			set: func(v value.Value) error { return env.Replace(name, v) },
		}, nil
	}

	key, err := in.evalSubscriptKey(last)
	if err != nil {
		return addr{}, err
	}
	containerAddr, err := in.resolveTarget(parts[:len(parts)-1])
	if err != nil {
		return addr{}, err
	}
	return addr{
		get: func() (value.Value, error) {
			c, err := containerAddr.get()
			if err != nil {
				return nil, err
			}
			return containerIndexGet(c, key)
		},
		set: func(v value.Value) error {
			c, err := containerAddr.get()
			if err != nil {
				return err
			}
			mutated, err := containerIndexSet(c, key, v)
			if err != nil {
				return err
			}
			return containerAddr.set(mutated)
		},
	}, nil
}

// evalParts walks a chain's parts the same way evalChain does, used by
// resolveTarget to evaluate everything up to (but excluding) the final
// target segment.
func (in *Interpreter) evalParts(parts []ast.Node) (value.Value, error) {
	result, err := in.Eval(parts[0])
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(parts); i++ {
		switch p := parts[i].(type) {
		case *ast.CallExpr:
			name, ok := p.Callee.(*ast.Identifier)
			if !ok {
				return nil, farrerr.New(farrerr.TypeError, "method call target must be a name", farrerr.PosFrom(p.Position()))
			}
			callee, err := in.memberAccess(result, name.Name, parts[:i])
			if err != nil {
				return nil, err
			}
			result, err = in.callValue(callee, p.Args, result)
			if err != nil {
				return nil, err
			}
		case *ast.Identifier:
			result, err = in.memberAccess(result, p.Name, parts[:i])
			if err != nil {
				return nil, err
			}
		default:
			key, err := in.evalSubscriptKey(p)
			if err != nil {
				return nil, err
			}
			result, err = containerIndexGet(result, key)
			if err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// addrOrValue resolves prefix to a writable slot when possible, and falls
// back to a read-only view of fallback (mutations are applied but
// discarded) when prefix doesn't name an addressable location — e.g. a
// mutating method called directly on a fresh literal's result.
func (in *Interpreter) addrOrValue(prefix []ast.Node, fallback value.Value) addr {
	if len(prefix) == 0 {
		return addr{
			get: func() (value.Value, error) { return fallback, nil },
			set: func(value.Value) error { return nil },
		}
	}
	a, err := in.resolveTarget(prefix)
	if err != nil {
		return addr{
			get: func() (value.Value, error) { return fallback, nil },
			set: func(value.Value) error { return nil },
		}
	}
	return a
}

// evalSubscriptKey interprets a bracket chain link (`.[1]`, `.[2..4]`):
// the parser always produces a RangeExpr for `[ ... ]` (parseBracketedRange),
// so a bare single-index subscript like `.[1]` parses as a Range with no
// `to`/`by` — collapse that case back to its bound, a plain Integer key,
// rather than indexing with a one-element Range.
func (in *Interpreter) evalSubscriptKey(node ast.Node) (value.Value, error) {
	if r, ok := node.(*ast.RangeExpr); ok && r.To == nil && r.By == nil {
		return in.Eval(r.From)
	}
	return in.Eval(node)
}

func containerIndexGet(container value.Value, key value.Value) (value.Value, error) {
	if r, ok := key.(value.Range); ok {
		switch c := container.(type) {
		case value.List:
			vals, ok := c.Index(r.From, r.To, r.By)
			if !ok {
				return nil, farrerr.New(farrerr.LookupError, "list index out of range", farrerr.Position{})
			}
			return value.List{Elements: vals}, nil
		case value.String:
			s, ok := c.Index(r.From, r.To, r.By)
			if !ok {
				return nil, farrerr.New(farrerr.LookupError, "string index out of range", farrerr.Position{})
			}
			return s, nil
		default:
			return nil, farrerr.New(farrerr.TypeError, "'"+container.TypeName()+"' is not sliceable", farrerr.Position{})
		}
	}
	if i, ok := key.(value.Integer); ok {
		to := i.Value
		switch c := container.(type) {
		case value.List:
			vals, ok := c.Index(i.Value, &to, 1)
			if !ok || len(vals) == 0 {
				return nil, farrerr.New(farrerr.LookupError, "list index out of range", farrerr.Position{})
			}
			return vals[0], nil
		case value.String:
			s, ok := c.Index(i.Value, &to, 1)
			if !ok {
				return nil, farrerr.New(farrerr.LookupError, "string index out of range", farrerr.Position{})
			}
			return s, nil
		}
	}
	if hm, ok := container.(value.HashMap); ok {
		for _, p := range hm.Pairs {
			if p.Key.Equal(key) {
				return p.Val, nil
			}
		}
		return nil, farrerr.New(farrerr.LookupError, "key not found: "+key.String(), farrerr.Position{})
	}
	return nil, farrerr.New(farrerr.TypeError, "'"+container.TypeName()+"' is not subscriptable", farrerr.Position{})
}

func containerIndexSet(container value.Value, key value.Value, v value.Value) (value.Value, error) {
	switch c := container.(type) {
	case value.List:
		i, ok := key.(value.Integer)
		if !ok {
			return nil, farrerr.New(farrerr.TypeError, "list index must be an Integer", farrerr.Position{})
		}
		if !c.SetIndex(i.Value, v) {
			return nil, farrerr.New(farrerr.LookupError, "list index out of range", farrerr.Position{})
		}
		return c, nil
	case value.HashMap:
		c.IUpdate(value.NewHashMap([]value.Pair{{Key: key, Val: v}}))
		return c, nil
	default:
		return nil, farrerr.New(farrerr.TypeError, "'"+container.TypeName()+"' does not support subscript assignment", farrerr.Position{})
	}
}
