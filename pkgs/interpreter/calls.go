package interpreter

import (
	"github.com/farrlang/farr/pkgs/ast"
	"github.com/farrlang/farr/pkgs/environment"
	"github.com/farrlang/farr/pkgs/farrerr"
	"github.com/farrlang/farr/pkgs/value"
)

// unset marks a required parameter slot not yet filled by a positional or
// keyword argument, so populateParams can tell "the caller explicitly
// passed null" apart from "nothing was passed here yet".
type unset struct{}

func (unset) TypeName() string        { return "Unset" }
func (unset) String() string          { return "<unset>" }
func (unset) Bool() bool              { return false }
func (unset) Equal(value.Value) bool  { return false }

// evalCall interprets a bare (non-chained) call expression. receiver is
// unused here (always nil from dispatch) but keeps the signature uniform
// with the chain-embedded call path in chain.go.
func (in *Interpreter) evalCall(n *ast.CallExpr, receiver value.Value) (value.Value, error) {
	callee, err := in.Eval(n.Callee)
	if err != nil {
		return nil, err
	}
	return in.callValue(callee, n.Args, receiver)
}

// callValue dispatches a call by the resolved callee's kind, grounded on
// _interpret_call_node's isinstance(invoke, NonPythonNativeObject) split:
// Function/BoundMethod/StructDefinition run through the full
// populateParams + environment-swap machinery; NativeFunc/ErrorConstructor
// are plain Go-level invocations.
func (in *Interpreter) callValue(callee value.Value, argNodes []ast.Node, receiver value.Value) (value.Value, error) {
	switch c := callee.(type) {
	case value.NativeFunc:
		args, kwargs, err := in.evalNativeArgs(argNodes)
		if err != nil {
			return nil, err
		}
		return c.Fn(args, kwargs)
	case value.ErrorConstructor:
		return in.callErrorConstructor(c, argNodes)
	case value.Function:
		return in.callFunction(c, argNodes)
	case value.BoundMethod:
		fn := c.Fn
		if env, ok := environmentOf(c.Receiver); ok {
			fn.Closure = env
		}
		return in.callFunction(fn, argNodes)
	case value.StructDefinition:
		return in.instantiateStruct(c, argNodes)
	default:
		return nil, farrerr.New(farrerr.TypeError, "'"+callee.TypeName()+"' is not callable", farrerr.Position{})
	}
}

// evalNativeArgs partitions call args into positional/keyword, grounded
// on _call_python_native_object. Native calls don't support argument
// expansion, matching the original.
func (in *Interpreter) evalNativeArgs(argNodes []ast.Node) ([]value.Value, map[string]value.Value, error) {
	var positional []value.Value
	kwargs := map[string]value.Value{}
	for _, node := range argNodes {
		if kw, ok := node.(*ast.KeywordArg); ok {
			v, err := in.Eval(kw.Value)
			if err != nil {
				return nil, nil, err
			}
			kwargs[kw.Name] = v
			continue
		}
		if ex, ok := node.(*ast.ExpandableArg); ok {
			v, err := in.Eval(ex.Value)
			if err != nil {
				return nil, nil, err
			}
			positional = append(positional, v)
			continue
		}
		v, err := in.Eval(node)
		if err != nil {
			return nil, nil, err
		}
		positional = append(positional, v)
	}
	return positional, kwargs, nil
}

func (in *Interpreter) callErrorConstructor(c value.ErrorConstructor, argNodes []ast.Node) (value.Value, error) {
	args, kwargs, err := in.evalNativeArgs(argNodes)
	if err != nil {
		return nil, err
	}
	message := c.Kind.String()
	if len(args) > 0 {
		message = args[0].String()
	} else if m, ok := kwargs["message"]; ok {
		message = m.String()
	}
	return value.ErrorValue{Kind: c.Kind, Message: message}, nil
}

// callFunction runs a Farr-level function call, grounded on
// _call_non_python_native_object's new-environment/populate-params/
// restore-environment sequence.
func (in *Interpreter) callFunction(fn value.Function, argNodes []ast.Node) (value.Value, error) {
	closure, _ := fn.Closure.(*environment.Environment)
	callEnv := environment.Child(closure)
	if err := in.populateParams(callEnv, fn.Params, argNodes); err != nil {
		return nil, err
	}

	saved := in.env
	in.env = callEnv
	_, err := in.runBody(fn.Body.Body)
	in.env = saved

	if err == nil {
		return value.Null{}, nil
	}
	if ret, ok := err.(farrerr.ReturnSignal); ok {
		v, _ := ret.Value.(value.Value)
		if v == nil {
			v = value.Null{}
		}
		return v, nil
	}
	return nil, err
}

// instantiateStruct calls a struct definition, constructing a
// StructInstance: its attributes are matched against the call's
// arguments exactly like a function's parameters (each VariableDecl
// attribute becomes a pseudo-parameter), then its body — mostly member
// function definitions spliced in by evalMemberFunctionDef — is run
// inside the new instance's own environment so each method's closure is
// the instance itself.
func (in *Interpreter) instantiateStruct(def value.StructDefinition, argNodes []ast.Node) (value.Value, error) {
	params := make([]*ast.ParamDecl, 0, len(def.Attributes))
	for _, attr := range def.Attributes {
		vd, ok := attr.(*ast.VariableDecl)
		if !ok {
			continue
		}
		params = append(params, ast.Param(vd.Position(), vd.Name, vd.Value, false))
	}

	instanceEnv := environment.Child(in.env)
	if err := in.populateParams(instanceEnv, params, argNodes); err != nil {
		return nil, err
	}

	saved := in.env
	in.env = instanceEnv
	_, err := in.runBody(def.Body)
	in.env = saved
	if err != nil {
		return nil, err
	}
	return value.StructInstance{StructName: def.Name, Environment: instanceEnv}, nil
}

// populateParams matches a call's arguments against a parameter list,
// grounded on _populate_params. It collapses the original's three-branch
// expansion-argument resolution into one pass: every `...expr` argument
// is flattened into the positional stream at the point it appears (expr
// must evaluate to a List), after which positional zipping, keyword
// assignment and variadic absorption proceed uniformly.
func (in *Interpreter) populateParams(env *environment.Environment, params []*ast.ParamDecl, argNodes []ast.Node) error {
	var nonVariadic []*ast.ParamDecl
	var variadic *ast.ParamDecl
	for _, p := range params {
		if p.Variadic {
			if variadic != nil {
				return farrerr.New(farrerr.TypeError, "a function may declare at most one variadic parameter", farrerr.Position{})
			}
			variadic = p
			continue
		}
		nonVariadic = append(nonVariadic, p)
	}

	for _, p := range nonVariadic {
		if p.Default != nil {
			v, err := in.Eval(p.Default)
			if err != nil {
				return err
			}
			env.Assign(p.Name, v)
		} else {
			env.Assign(p.Name, unset{})
		}
	}
	if variadic != nil {
		env.Assign(variadic.Name, value.List{})
	}

	var positionalValues []value.Value
	var keywordNodes []*ast.KeywordArg
	for _, node := range argNodes {
		switch a := node.(type) {
		case *ast.KeywordArg:
			keywordNodes = append(keywordNodes, a)
		case *ast.ExpandableArg:
			v, err := in.Eval(a.Value)
			if err != nil {
				return err
			}
			lst, ok := v.(value.List)
			if !ok {
				return farrerr.New(farrerr.TypeError, "can only expand a List argument", farrerr.PosFrom(a.Position()))
			}
			positionalValues = append(positionalValues, lst.Elements...)
		default:
			v, err := in.Eval(node)
			if err != nil {
				return err
			}
			positionalValues = append(positionalValues, v)
		}
	}

	if variadic == nil && len(positionalValues) > len(nonVariadic) {
		return farrerr.New(farrerr.TypeError, "too many positional arguments", farrerr.Position{})
	}
	for i, p := range nonVariadic {
		if i < len(positionalValues) {
			env.Assign(p.Name, positionalValues[i])
		}
	}
	if variadic != nil && len(positionalValues) > len(nonVariadic) {
		env.Assign(variadic.Name, value.List{Elements: append([]value.Value(nil), positionalValues[len(nonVariadic):]...)})
	}

	for _, kw := range keywordNodes {
		if !env.Exists(kw.Name, 0) {
			return farrerr.New(farrerr.NameError, "no such parameter: '"+kw.Name+"'", farrerr.PosFrom(kw.Position()))
		}
		v, err := in.Eval(kw.Value)
		if err != nil {
			return err
		}
		if err := env.Replace(kw.Name, v); err != nil {
			return err
		}
	}

	for _, p := range nonVariadic {
		if p.Default != nil {
			continue
		}
		v, err := env.Locate(p.Name)
		if err != nil {
			return err
		}
		if _, stillUnset := v.(unset); stillUnset {
			return farrerr.New(farrerr.TypeError, "missing required argument: '"+p.Name+"'", farrerr.Position{})
		}
	}
	return nil
}
