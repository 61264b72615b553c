// Package interpreter is Farr's tree-walking evaluator, grounded on
// original_source/farr/interpreter/__init__.py's FarrInterpreter. Every
// AST node — statement or expression — reduces to a value.Value through
// one Eval dispatch, the Go analogue of the original's reflection-driven
// _interpret(node) -> _interpret_<node_type>(node) dance, done here with
// a type switch instead of runtime method-name derivation.
package interpreter

import (
	"math/rand"

	"github.com/farrlang/farr/pkgs/ast"
	"github.com/farrlang/farr/pkgs/environment"
	"github.com/farrlang/farr/pkgs/farrerr"
	"github.com/farrlang/farr/pkgs/value"
)

// Importer resolves and runs a `use` path, returning the value (Module or
// Library) it binds in the importing scope. pkgs/interpreter depends on
// this instead of pkgs/imports directly, since resolving a library means
// spinning up further sub-interpreters — Interpreter implements its own
// Importer via NewFileImporter, defined in imports.go.
type Importer interface {
	Import(path []string) (value.Value, error)
}

// Interpreter walks a parsed Program against a mutable current scope.
// Env shifts as execution enters/leaves function calls and struct
// instantiations, mirroring the original's self.environment swap-and-
// restore discipline.
type Interpreter struct {
	env      *environment.Environment
	importer Importer
	rng      *rand.Rand
}

// New creates an Interpreter rooted at a fresh environment seeded with
// seed (ordinarily pkgs/builtins.Symbols()).
func New(seed map[string]value.Value) *Interpreter {
	return &Interpreter{
		env: environment.New(seed),
		rng: rand.New(rand.NewSource(1)),
	}
}

// SetImporter installs the collaborator `use` statements resolve through.
// Left nil, `use` always fails with ImportError.
func (in *Interpreter) SetImporter(importer Importer) {
	in.importer = importer
}

// Env exposes the interpreter's current scope, used by FileImporter to
// wrap an imported file's final scope as a Module or Library namespace.
func (in *Interpreter) Env() *environment.Environment { return in.env }

// Run interprets every top-level node of program in order, returning the
// last node's value (or Null for an empty program).
func (in *Interpreter) Run(program *ast.Program) (value.Value, error) {
	return in.runBody(program.Body)
}

func (in *Interpreter) runBody(body []ast.Node) (value.Value, error) {
	result := value.Value(value.Null{})
	for _, node := range body {
		v, err := in.Eval(node)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// Eval interprets a single node, wrapping any non-control-flow failure
// exactly once as a *farrerr.Error — the original's InterpretError
// discipline: BreakSignal/ContinueSignal/ReturnSignal pass through
// untouched, an already-wrapped *farrerr.Error propagates unchanged, and
// any other error is wrapped fresh with node's position.
func (in *Interpreter) Eval(node ast.Node) (value.Value, error) {
	v, err := in.dispatch(node)
	if err == nil {
		return v, nil
	}
	switch err.(type) {
	case farrerr.BreakSignal, farrerr.ContinueSignal, farrerr.ReturnSignal:
		return nil, err
	}
	if fe, ok := err.(*farrerr.Error); ok {
		return nil, fe
	}
	return nil, farrerr.Wrap(farrerr.RuntimeError, err.Error(), err, farrerr.PosFrom(node.Position()))
}

func (in *Interpreter) dispatch(node ast.Node) (value.Value, error) {
	switch n := node.(type) {
	case *ast.Program:
		return in.runBody(n.Body)
	case *ast.Block:
		return in.runBody(n.Body)
	case *ast.Pass:
		return value.Pass{}, nil
	case *ast.Null:
		return value.Null{}, nil
	case *ast.IntegerLiteral:
		return value.Integer{Value: n.Value}, nil
	case *ast.FloatLiteral:
		return value.Float{Value: n.Value}, nil
	case *ast.StringLiteral:
		return in.evalString(n)
	case *ast.Identifier:
		return in.env.Locate(n.Name)
	case *ast.RangeExpr:
		return in.evalRange(n)
	case *ast.ItemizedExpr:
		return in.evalItemized(n)
	case *ast.ChainedExpr:
		return in.evalChain(n)
	case *ast.ListLiteral:
		return in.evalList(n)
	case *ast.PairExpr:
		return in.evalPair(n)
	case *ast.HashMapLiteral:
		return in.evalHashMap(n)
	case *ast.CallExpr:
		return in.evalCall(n, nil)
	case *ast.GroupedExpr:
		return in.Eval(n.Inner)
	case *ast.NegationExpr:
		return in.evalNegation(n)
	case *ast.PreIncrement, *ast.PreDecrement, *ast.PostIncrement, *ast.PostDecrement:
		return in.evalIncDec(n)
	case *ast.ArithmeticExpr:
		return in.evalArithmetic(n)
	case *ast.RelationalExpr:
		return in.evalRelational(n)
	case *ast.LogicalExpr:
		return in.evalLogical(n)
	case *ast.TernaryExpr:
		return in.evalTernary(n)
	case *ast.UseStmt:
		return in.evalUse(n)
	case *ast.VariableDecl:
		return in.evalVariableDecl(n)
	case *ast.ParamDecl:
		return value.Null{}, nil
	case *ast.AssignmentStmt:
		return in.evalAssignment(n)
	case *ast.CompoundAssignStmt:
		return in.evalCompoundAssign(n)
	case *ast.WhileStmt:
		return in.evalWhile(n)
	case *ast.ForStmt:
		return in.evalFor(n)
	case *ast.BreakStmt:
		return nil, farrerr.BreakSignal{}
	case *ast.ContinueStmt:
		return nil, farrerr.ContinueSignal{}
	case *ast.IfStmt:
		return in.evalIf(n)
	case *ast.MatchStmt:
		return in.evalMatch(n)
	case *ast.TryStmt:
		return in.evalTry(n)
	case *ast.FunctionDef:
		return in.evalFunctionDef(n)
	case *ast.MemberFunctionDef:
		return in.evalMemberFunctionDef(n)
	case *ast.StructDef:
		return in.evalStructDef(n)
	case *ast.ReturnStmt:
		return in.evalReturn(n)
	default:
		return nil, farrerr.New(farrerr.RuntimeError, "cannot interpret node", farrerr.PosFrom(node.Position()))
	}
}
