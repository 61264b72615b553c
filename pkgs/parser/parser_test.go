package parser

import (
	"testing"

	"github.com/farrlang/farr/pkgs/ast"
)

func TestParseArithmeticPrefixForm(t *testing.T) {
	prog, err := Parse("println(+ 13 8);")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(prog.Body) != 1 {
		t.Fatalf("expected 1 top-level node, got %d", len(prog.Body))
	}
	call, ok := prog.Body[0].(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected *ast.CallExpr, got %T", prog.Body[0])
	}
	arith, ok := call.Args[0].(*ast.ArithmeticExpr)
	if !ok {
		t.Fatalf("expected *ast.ArithmeticExpr arg, got %T", call.Args[0])
	}
	left, ok := arith.Left.(*ast.IntegerLiteral)
	if !ok || left.Value != 13 {
		t.Errorf("arith.Left = %#v, want IntegerLiteral(13)", arith.Left)
	}
}

func TestParseVariableDeclaration(t *testing.T) {
	prog, err := Parse("let x = 5;")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	decl, ok := prog.Body[0].(*ast.VariableDecl)
	if !ok {
		t.Fatalf("expected *ast.VariableDecl, got %T", prog.Body[0])
	}
	if decl.Name != "x" {
		t.Errorf("decl.Name = %q, want x", decl.Name)
	}
}

func TestParsePreAndPostIncrement(t *testing.T) {
	prog, err := Parse("++i; i++;")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := prog.Body[0].(*ast.PreIncrement); !ok {
		t.Errorf("expected *ast.PreIncrement, got %T", prog.Body[0])
	}
	if _, ok := prog.Body[1].(*ast.PostIncrement); !ok {
		t.Errorf("expected *ast.PostIncrement, got %T", prog.Body[1])
	}
}

func TestParseFunctionDefsHoistedAheadOfOtherStatements(t *testing.T) {
	prog, err := Parse("println(1); fn greet() = { println(2); }")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(prog.Body) != 2 {
		t.Fatalf("expected 2 top-level nodes, got %d", len(prog.Body))
	}
	if _, ok := prog.Body[0].(*ast.FunctionDef); !ok {
		t.Errorf("expected FunctionDef first (hoisted), got %T", prog.Body[0])
	}
	if _, ok := prog.Body[1].(*ast.CallExpr); !ok {
		t.Errorf("expected CallExpr second, got %T", prog.Body[1])
	}
}

func TestParseChainedMemberAccess(t *testing.T) {
	prog, err := Parse("foo.bar.baz(1);")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	chain, ok := prog.Body[0].(*ast.ChainedExpr)
	if !ok {
		t.Fatalf("expected *ast.ChainedExpr, got %T", prog.Body[0])
	}
	if len(chain.Parts) != 3 {
		t.Fatalf("expected 3 chain parts, got %d", len(chain.Parts))
	}
}

func TestParseStructWithConstructorAttributes(t *testing.T) {
	prog, err := Parse("struct P = { let n, let a }")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	def, ok := prog.Body[0].(*ast.StructDef)
	if !ok {
		t.Fatalf("expected *ast.StructDef, got %T", prog.Body[0])
	}
	if def.Name != "P" {
		t.Errorf("def.Name = %q, want P", def.Name)
	}
	if def.Attributes == nil || len(def.Attributes.Items) != 2 {
		t.Errorf("expected 2 attributes, got %#v", def.Attributes)
	}
}

func TestParseErrorOnDanglingOperator(t *testing.T) {
	if _, err := Parse("let x = +;"); err == nil {
		t.Fatal("expected a parse error for a dangling prefix operator")
	}
}

func TestParseIsPureAndDeterministic(t *testing.T) {
	src := "let n = 30; for let i in [1..n] = { if % i 2 == 0 = { println(i); } }"
	first, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	second, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(first.Body) != len(second.Body) {
		t.Errorf("two parses of the same input produced different shapes")
	}
}
