package interpreter

import (
	"github.com/farrlang/farr/pkgs/ast"
	"github.com/farrlang/farr/pkgs/farrerr"
	"github.com/farrlang/farr/pkgs/value"
)

// listMember resolves the standard method surface on List, grounded on
// spec.md's Lists method list and ListObject's methods. length/first/
// last/isempty?/reverse/sort/shuffle are bare properties (no call
// syntax); everything else is a bound native method invoked with `()`.
func (in *Interpreter) listMember(l value.List, name string, prefix []ast.Node) (value.Value, error) {
	switch name {
	case "length":
		return l.Length(), nil
	case "isempty_q":
		return l.IsEmptyQ(), nil
	case "first":
		v, ok := l.First()
		if !ok {
			return nil, farrerr.New(farrerr.LookupError, "list is empty", farrerr.Position{})
		}
		return v, nil
	case "last":
		v, ok := l.Last()
		if !ok {
			return nil, farrerr.New(farrerr.LookupError, "list is empty", farrerr.Position{})
		}
		return v, nil
	case "reverse":
		return l.Reverse(), nil
	case "sort":
		return l.Sort(), nil
	case "shuffle":
		return l.Shuffle(in.rng), nil
	}

	a := in.addrOrValue(prefix, l)
	asList := func(v value.Value) (value.List, error) {
		lst, ok := v.(value.List)
		if !ok {
			return value.List{}, farrerr.New(farrerr.TypeError, "expected a List", farrerr.Position{})
		}
		return lst, nil
	}
	native := func(fn func(args []value.Value) (value.Value, error)) value.NativeFunc {
		return value.NativeFunc{Name: name, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			return fn(args)
		}}
	}

	switch name {
	case "clear_e":
		return native(func(args []value.Value) (value.Value, error) {
			cur, err := a.get()
			if err != nil {
				return nil, err
			}
			lst, err := asList(cur)
			if err != nil {
				return nil, err
			}
			lst.Clear()
			return value.Null{}, a.set(lst)
		}), nil
	case "iprepend_e":
		return native(func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, farrerr.New(farrerr.TypeError, "iprepend! requires a value", farrerr.Position{})
			}
			cur, err := a.get()
			if err != nil {
				return nil, err
			}
			lst, err := asList(cur)
			if err != nil {
				return nil, err
			}
			lst.IPrepend(args[0])
			return value.Null{}, a.set(lst)
		}), nil
	case "iappend_e":
		return native(func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, farrerr.New(farrerr.TypeError, "iappend! requires a value", farrerr.Position{})
			}
			cur, err := a.get()
			if err != nil {
				return nil, err
			}
			lst, err := asList(cur)
			if err != nil {
				return nil, err
			}
			lst.IAppend(args[0])
			return value.Null{}, a.set(lst)
		}), nil
	case "pop_e":
		return native(func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, farrerr.New(farrerr.TypeError, "pop! requires an index", farrerr.Position{})
			}
			idx, ok := args[0].(value.Integer)
			if !ok {
				return nil, farrerr.New(farrerr.TypeError, "pop! requires an Integer index", farrerr.Position{})
			}
			cur, err := a.get()
			if err != nil {
				return nil, err
			}
			lst, err := asList(cur)
			if err != nil {
				return nil, err
			}
			v, ok := lst.Pop(idx.Value)
			if !ok {
				return nil, farrerr.New(farrerr.LookupError, "list index out of range", farrerr.Position{})
			}
			return v, a.set(lst)
		}), nil
	case "popitem_e":
		return native(func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, farrerr.New(farrerr.TypeError, "popitem! requires a value", farrerr.Position{})
			}
			cur, err := a.get()
			if err != nil {
				return nil, err
			}
			lst, err := asList(cur)
			if err != nil {
				return nil, err
			}
			v, ok := lst.PopItem(args[0])
			if !ok {
				return nil, farrerr.New(farrerr.LookupError, "value not found in list", farrerr.Position{})
			}
			return v, a.set(lst)
		}), nil
	case "ireverse_e":
		return native(func(args []value.Value) (value.Value, error) {
			cur, err := a.get()
			if err != nil {
				return nil, err
			}
			lst, err := asList(cur)
			if err != nil {
				return nil, err
			}
			lst.IReverse()
			return value.Null{}, a.set(lst)
		}), nil
	case "isort_e":
		return native(func(args []value.Value) (value.Value, error) {
			cur, err := a.get()
			if err != nil {
				return nil, err
			}
			lst, err := asList(cur)
			if err != nil {
				return nil, err
			}
			lst.ISort()
			return value.Null{}, a.set(lst)
		}), nil
	case "ishuffle_e":
		return native(func(args []value.Value) (value.Value, error) {
			cur, err := a.get()
			if err != nil {
				return nil, err
			}
			lst, err := asList(cur)
			if err != nil {
				return nil, err
			}
			lst.IShuffle(in.rng)
			return value.Null{}, a.set(lst)
		}), nil
	case "join":
		return native(func(args []value.Value) (value.Value, error) {
			sep := ""
			if len(args) > 0 {
				s, ok := args[0].(value.String)
				if !ok {
					return nil, farrerr.New(farrerr.TypeError, "join requires a String separator", farrerr.Position{})
				}
				sep = s.Value
			}
			return l.Join(sep), nil
		}), nil
	case "nearest_q":
		return native(func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, farrerr.New(farrerr.TypeError, "nearest? requires a target", farrerr.Position{})
			}
			return l.Join("").NearestQ(args[0].String()), nil
		}), nil
	default:
		return nil, farrerr.New(farrerr.AttributeError, "'List' has no attribute '"+name+"'", farrerr.Position{})
	}
}

// hashMapMember resolves the standard method surface on HashMap.
func (in *Interpreter) hashMapMember(h value.HashMap, name string, prefix []ast.Node) (value.Value, error) {
	switch name {
	case "length":
		return h.Length(), nil
	case "isempty_q":
		return h.IsEmptyQ(), nil
	case "keys":
		return h.Keys(), nil
	case "values":
		return h.Values(), nil
	case "first":
		if len(h.Pairs) == 0 {
			return nil, farrerr.New(farrerr.LookupError, "hashmap is empty", farrerr.Position{})
		}
		return h.Pairs[0], nil
	case "last":
		if len(h.Pairs) == 0 {
			return nil, farrerr.New(farrerr.LookupError, "hashmap is empty", farrerr.Position{})
		}
		return h.Pairs[len(h.Pairs)-1], nil
	}

	a := in.addrOrValue(prefix, h)
	asMap := func(v value.Value) (value.HashMap, error) {
		hm, ok := v.(value.HashMap)
		if !ok {
			return value.HashMap{}, farrerr.New(farrerr.TypeError, "expected a HashMap", farrerr.Position{})
		}
		return hm, nil
	}
	native := func(fn func(args []value.Value) (value.Value, error)) value.NativeFunc {
		return value.NativeFunc{Name: name, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			return fn(args)
		}}
	}

	switch name {
	case "clear_e":
		return native(func(args []value.Value) (value.Value, error) {
			cur, err := a.get()
			if err != nil {
				return nil, err
			}
			hm, err := asMap(cur)
			if err != nil {
				return nil, err
			}
			hm.Clear()
			return value.Null{}, a.set(hm)
		}), nil
	case "get":
		return native(func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, farrerr.New(farrerr.TypeError, "get requires a key", farrerr.Position{})
			}
			var orelse value.Value
			if len(args) > 1 {
				orelse = args[1]
			}
			return h.Get(args[0], orelse), nil
		}), nil
	case "iupdate_e":
		return native(func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, farrerr.New(farrerr.TypeError, "iupdate! requires a HashMap", farrerr.Position{})
			}
			other, ok := args[0].(value.HashMap)
			if !ok {
				return nil, farrerr.New(farrerr.TypeError, "iupdate! requires a HashMap", farrerr.Position{})
			}
			cur, err := a.get()
			if err != nil {
				return nil, err
			}
			hm, err := asMap(cur)
			if err != nil {
				return nil, err
			}
			hm.IUpdate(other)
			return value.Null{}, a.set(hm)
		}), nil
	case "pop_e":
		return native(func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, farrerr.New(farrerr.TypeError, "pop! requires an index", farrerr.Position{})
			}
			idx, ok := args[0].(value.Integer)
			if !ok {
				return nil, farrerr.New(farrerr.TypeError, "pop! requires an Integer index", farrerr.Position{})
			}
			cur, err := a.get()
			if err != nil {
				return nil, err
			}
			hm, err := asMap(cur)
			if err != nil {
				return nil, err
			}
			p, ok := hm.Pop(idx.Value)
			if !ok {
				return nil, farrerr.New(farrerr.LookupError, "hashmap index out of range", farrerr.Position{})
			}
			return p, a.set(hm)
		}), nil
	case "popitem_e":
		return native(func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, farrerr.New(farrerr.TypeError, "popitem! requires a key", farrerr.Position{})
			}
			cur, err := a.get()
			if err != nil {
				return nil, err
			}
			hm, err := asMap(cur)
			if err != nil {
				return nil, err
			}
			p, ok := hm.PopItem(args[0])
			if !ok {
				return nil, farrerr.New(farrerr.LookupError, "key not found", farrerr.Position{})
			}
			return p, a.set(hm)
		}), nil
	default:
		return nil, farrerr.New(farrerr.AttributeError, "'HashMap' has no attribute '"+name+"'", farrerr.Position{})
	}
}

// stringMember resolves the standard method surface on String. Strings
// are immutable, so every method here is a pure transform with no
// write-back concerns.
func (in *Interpreter) stringMember(s value.String, name string) (value.Value, error) {
	native := func(fn func(args []value.Value) (value.Value, error)) value.NativeFunc {
		return value.NativeFunc{Name: name, Fn: func(args []value.Value, _ map[string]value.Value) (value.Value, error) {
			return fn(args)
		}}
	}
	switch name {
	case "toint":
		return native(func(args []value.Value) (value.Value, error) {
			i, err := s.ToInt()
			if err != nil {
				return nil, farrerr.Wrap(farrerr.ValueError, err.Error(), err, farrerr.Position{})
			}
			return i, nil
		}), nil
	case "tofloat":
		return native(func(args []value.Value) (value.Value, error) {
			f, err := s.ToFloat()
			if err != nil {
				return nil, farrerr.Wrap(farrerr.ValueError, err.Error(), err, farrerr.Position{})
			}
			return f, nil
		}), nil
	case "tolower":
		return native(func(args []value.Value) (value.Value, error) { return s.ToLower(), nil }), nil
	case "toupper":
		return native(func(args []value.Value) (value.Value, error) { return s.ToUpper(), nil }), nil
	case "concat":
		return native(func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, farrerr.New(farrerr.TypeError, "concat requires a String", farrerr.Position{})
			}
			other, ok := args[0].(value.String)
			if !ok {
				return nil, farrerr.New(farrerr.TypeError, "concat requires a String", farrerr.Position{})
			}
			return s.Concat(other), nil
		}), nil
	case "split":
		return native(func(args []value.Value) (value.Value, error) {
			var sep *string
			if len(args) > 0 {
				str, ok := args[0].(value.String)
				if !ok {
					return nil, farrerr.New(farrerr.TypeError, "split requires a String separator", farrerr.Position{})
				}
				sep = &str.Value
			}
			return s.Split(sep), nil
		}), nil
	case "removeprefix":
		return native(func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, farrerr.New(farrerr.TypeError, "removeprefix requires a String", farrerr.Position{})
			}
			return s.RemovePrefix(args[0].String()), nil
		}), nil
	case "removesuffix":
		return native(func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, farrerr.New(farrerr.TypeError, "removesuffix requires a String", farrerr.Position{})
			}
			return s.RemoveSuffix(args[0].String()), nil
		}), nil
	case "count_q":
		return native(func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, farrerr.New(farrerr.TypeError, "count? requires a substring", farrerr.Position{})
			}
			return s.CountQ(args[0].String()), nil
		}), nil
	case "nearest_q":
		return native(func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, farrerr.New(farrerr.TypeError, "nearest? requires a target", farrerr.Position{})
			}
			return s.NearestQ(args[0].String()), nil
		}), nil
	case "contains_q":
		return native(func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, farrerr.New(farrerr.TypeError, "contains? requires a substring", farrerr.Position{})
			}
			return s.ContainsQ(args[0].String()), nil
		}), nil
	case "startswith_q":
		return native(func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, farrerr.New(farrerr.TypeError, "startswith? requires a String", farrerr.Position{})
			}
			return s.StartsWithQ(args[0].String()), nil
		}), nil
	case "endswith_q":
		return native(func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return nil, farrerr.New(farrerr.TypeError, "endswith? requires a String", farrerr.Position{})
			}
			return s.EndsWithQ(args[0].String()), nil
		}), nil
	default:
		return nil, farrerr.New(farrerr.AttributeError, "'String' has no attribute '"+name+"'", farrerr.Position{})
	}
}
