package ast

import "github.com/farrlang/farr/pkgs/token"

// Constructors below follow the original builder.go's pattern: short,
// funcion-call-shaped helpers that build a node from its parts, used by
// the parser (and by tests) instead of struct literals everywhere.

func at(pos token.Position) base { return base{Pos: pos} }

func NewProgram(pos token.Position, body ...Node) *Program {
	return &Program{base: at(pos), Body: body}
}

func NewBlock(pos token.Position, body ...Node) *Block {
	return &Block{base: at(pos), Body: body}
}

func Id(pos token.Position, name string) *Identifier {
	return &Identifier{base: at(pos), Name: name}
}

func Int(pos token.Position, value int64, base10 int) *IntegerLiteral {
	return &IntegerLiteral{base: at(pos), Value: value, Base: base10}
}

func Float(pos token.Position, value float64) *FloatLiteral {
	return &FloatLiteral{base: at(pos), Value: value}
}

func Str(pos token.Position, value string, raw bool) *StringLiteral {
	return &StringLiteral{base: at(pos), Value: value, Raw: raw}
}

func Range(pos token.Position, from, to, by Node) *RangeExpr {
	return &RangeExpr{base: at(pos), From: from, To: to, By: by}
}

func Items(pos token.Position, items ...Node) *ItemizedExpr {
	return &ItemizedExpr{base: at(pos), Items: items}
}

func Chain(pos token.Position, parts ...Node) *ChainedExpr {
	return &ChainedExpr{base: at(pos), Parts: parts}
}

func List(pos token.Position, elements ...Node) *ListLiteral {
	return &ListLiteral{base: at(pos), Elements: elements}
}

func Pair(pos token.Position, key, value Node) *PairExpr {
	return &PairExpr{base: at(pos), Key: key, Value: value}
}

func HashMap(pos token.Position, pairs ...*PairExpr) *HashMapLiteral {
	return &HashMapLiteral{base: at(pos), Pairs: pairs}
}

func Call(pos token.Position, callee Node, args ...Node) *CallExpr {
	return &CallExpr{base: at(pos), Callee: callee, Args: args}
}

func Grouped(pos token.Position, inner Node) *GroupedExpr {
	return &GroupedExpr{base: at(pos), Inner: inner}
}

func Negate(pos token.Position, operand Node) *NegationExpr {
	return &NegationExpr{base: at(pos), Operand: operand}
}

func Arithmetic(pos token.Position, op token.Kind, left, right Node) *ArithmeticExpr {
	return &ArithmeticExpr{base: at(pos), Op: op, Left: left, Right: right}
}

func Relational(pos token.Position, op token.Kind, left, right Node) *RelationalExpr {
	return &RelationalExpr{base: at(pos), Op: op, Left: left, Right: right}
}

func Logical(pos token.Position, op token.Kind, left, right Node) *LogicalExpr {
	return &LogicalExpr{base: at(pos), Op: op, Left: left, Right: right}
}

func Ternary(pos token.Position, then, cond, orelse Node) *TernaryExpr {
	return &TernaryExpr{base: at(pos), Then: then, Condition: cond, Else: orelse}
}

func Use(pos token.Position, path ...string) *UseStmt {
	return &UseStmt{base: at(pos), Path: path}
}

func VarDecl(pos token.Position, name string, value Node) *VariableDecl {
	return &VariableDecl{base: at(pos), Name: name, Value: value}
}

// Param builds a ParamDecl, also used by pkgs/interpreter to treat a
// struct's attribute declarations as constructor parameters.
func Param(pos token.Position, name string, def Node, variadic bool) *ParamDecl {
	return &ParamDecl{base: at(pos), Name: name, Default: def, Variadic: variadic}
}

func Assign(pos token.Position, value Node, targets ...Node) *AssignmentStmt {
	return &AssignmentStmt{base: at(pos), Targets: targets, Value: value}
}

func CompoundAssign(pos token.Position, op token.Kind, value Node, targets ...Node) *CompoundAssignStmt {
	return &CompoundAssignStmt{base: at(pos), Op: op, Targets: targets, Value: value}
}

func While(pos token.Position, cond Node, body, orelse *Block) *WhileStmt {
	return &WhileStmt{base: at(pos), Condition: cond, Body: body, Else: orelse}
}

func For(pos token.Position, iterable Node, body, orelse *Block, names ...Node) *ForStmt {
	return &ForStmt{base: at(pos), Names: names, Iterable: iterable, Body: body, Else: orelse}
}

func Break(pos token.Position) *BreakStmt       { return &BreakStmt{base: at(pos)} }
func Continue(pos token.Position) *ContinueStmt { return &ContinueStmt{base: at(pos)} }

func If(pos token.Position, cond Node, body *Block, orelse Node) *IfStmt {
	return &IfStmt{base: at(pos), Condition: cond, Body: body, Else: orelse}
}

func Case(pos token.Position, cond Node, body *Block) *CaseClause {
	return &CaseClause{base: at(pos), Condition: cond, Body: body}
}

func Match(pos token.Position, subject Node, cases ...*CaseClause) *MatchStmt {
	return &MatchStmt{base: at(pos), Subject: subject, Cases: cases}
}

func Catch(pos token.Position, as string, body *Block, orelse *CatchClause, excepts ...string) *CatchClause {
	return &CatchClause{base: at(pos), Excepts: excepts, As: as, Body: body, Else: orelse}
}

func Try(pos token.Position, body *Block, catch *CatchClause) *TryStmt {
	return &TryStmt{base: at(pos), Body: body, Catch: catch}
}

func FuncDef(pos token.Position, name string, body *Block, params ...*ParamDecl) *FunctionDef {
	return &FunctionDef{base: at(pos), Name: name, Params: params, Body: body}
}

func MemberFuncDef(pos token.Position, structName, name string, body *Block, params ...*ParamDecl) *MemberFunctionDef {
	return &MemberFunctionDef{base: at(pos), Struct: structName, Name: name, Params: params, Body: body}
}

func StructDefNode(pos token.Position, name string, parents []string, body []Node, attrs *ItemizedExpr) *StructDef {
	return &StructDef{base: at(pos), Name: name, Parents: parents, Body: body, Attributes: attrs}
}

func Return(pos token.Position, value Node) *ReturnStmt {
	return &ReturnStmt{base: at(pos), Value: value}
}

func PreInc(pos token.Position, operand Node) *PreIncrement {
	return &PreIncrement{base: at(pos), Operand: operand}
}

func PreDec(pos token.Position, operand Node) *PreDecrement {
	return &PreDecrement{base: at(pos), Operand: operand}
}

func PostInc(pos token.Position, operand Node) *PostIncrement {
	return &PostIncrement{base: at(pos), Operand: operand}
}

func PostDec(pos token.Position, operand Node) *PostDecrement {
	return &PostDecrement{base: at(pos), Operand: operand}
}

func Expandable(pos token.Position, value Node) *ExpandableArg {
	return &ExpandableArg{base: at(pos), Value: value}
}

func KeywordArgNode(pos token.Position, name string, value Node) *KeywordArg {
	return &KeywordArg{base: at(pos), Name: name, Value: value}
}

func NewPass(pos token.Position) *Pass { return &Pass{base: at(pos)} }
func NewNull(pos token.Position) *Null { return &Null{base: at(pos)} }
