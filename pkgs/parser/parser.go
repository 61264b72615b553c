// Package parser implements Farr's recursive-descent parser.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/farrlang/farr/pkgs/ast"
	"github.com/farrlang/farr/pkgs/lexer"
	"github.com/farrlang/farr/pkgs/token"
	"github.com/samber/lo"
)

// Parser walks a token slice and assembles an AST, grounded on
// original_source/farr/parser/base.py's Parser (current/next token fields,
// expect/check helpers) and on the teacher's struct-holding-input-and-
// position shape.
type Parser struct {
	input  string
	tokens []token.Token
	pos    int
	errors []error
}

// Parse tokenizes and parses a full Farr source file.
func Parse(input string) (*ast.Program, error) {
	toks, err := lexer.Lex(input)
	if err != nil {
		return nil, err
	}
	p := &Parser{input: input, tokens: toks}
	program := p.parseProgram()
	if len(p.errors) > 0 {
		msgs := make([]string, len(p.errors))
		for i, e := range p.errors {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("parsing failed:\n%s", strings.Join(msgs, "\n"))
	}
	return program, nil
}

// --- token-stream helpers ---

func (p *Parser) current() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) token.Token {
	i := p.pos + offset
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) atEnd() bool { return p.current().Kind == token.EOF }

func (p *Parser) advance() token.Token {
	t := p.current()
	if !p.atEnd() {
		p.pos++
	}
	return t
}

func (p *Parser) check(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.current().Kind == k {
			return true
		}
	}
	return false
}

func (p *Parser) match(kinds ...token.Kind) bool {
	if p.check(kinds...) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind token.Kind, what string) (token.Token, error) {
	if !p.check(kind) {
		return token.Token{}, p.newUnexpectedTokenError(what, p.current())
	}
	return p.advance(), nil
}

func (p *Parser) addError(err error) {
	p.errors = append(p.errors, err)
}

// synchronize skips tokens until a likely statement boundary, so one
// syntax error doesn't cascade into spurious follow-on errors.
func (p *Parser) synchronize() {
	for !p.atEnd() {
		if p.match(token.Semicolon) {
			return
		}
		if p.check(token.RightBrace) {
			return
		}
		p.advance()
	}
}

// --- program / block ---

func (p *Parser) parseProgram() *ast.Program {
	pos := p.current().Pos
	var body []ast.Node
	for !p.atEnd() {
		stmt := p.parseTopLevel()
		if stmt != nil {
			body = append(body, stmt)
		}
	}

	// Partition so every definition (function/member-function/struct)
	// precedes all other top-level statements, preserving relative order
	// within each partition — the original parser's one post-parse
	// reordering step (partition_a_sequence).
	isDef := func(n ast.Node, _ int) bool {
		switch n.(type) {
		case *ast.FunctionDef, *ast.MemberFunctionDef, *ast.StructDef:
			return true
		default:
			return false
		}
	}
	defs := lo.Filter(body, isDef)
	rest := lo.Filter(body, func(n ast.Node, i int) bool { return !isDef(n, i) })
	return ast.NewProgram(pos, append(defs, rest...)...)
}

func (p *Parser) parseTopLevel() ast.Node {
	stmt, err := p.parseStatement()
	if err != nil {
		p.addError(err)
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	start, err := p.expect(token.LeftBrace, "'{'")
	if err != nil {
		return nil, err
	}
	var body []ast.Node
	for !p.check(token.RightBrace) && !p.atEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	if _, err := p.expect(token.RightBrace, "'}'"); err != nil {
		return nil, err
	}
	return ast.NewBlock(start.Pos, body...), nil
}

// --- statements ---

func (p *Parser) parseStatement() (ast.Node, error) {
	switch {
	case p.check(token.Use):
		return p.parseUse()
	case p.check(token.Variable):
		return p.parseVariableDeclaration()
	case p.check(token.While):
		return p.parseWhile()
	case p.check(token.For):
		return p.parseFor()
	case p.check(token.Break):
		pos := p.advance().Pos
		p.match(token.Semicolon)
		return ast.Break(pos), nil
	case p.check(token.Continue):
		pos := p.advance().Pos
		p.match(token.Semicolon)
		return ast.Continue(pos), nil
	case p.check(token.If):
		return p.parseIf()
	case p.check(token.Match):
		return p.parseMatch()
	case p.check(token.Try):
		return p.parseTry()
	case p.check(token.Function):
		if p.peekAt(1).Kind == token.Identifier && p.peekAt(2).Kind == token.DoubleColon {
			return p.parseMemberFunction()
		}
		return p.parseFunction()
	case p.check(token.Struct):
		return p.parseStruct()
	case p.check(token.Return):
		return p.parseReturn()
	default:
		return p.parseExpressionOrAssignment()
	}
}

func (p *Parser) parseUse() (ast.Node, error) {
	pos := p.advance().Pos // `use`
	var path []string
	first, err := p.expect(token.Identifier, "module path segment")
	if err != nil {
		return nil, err
	}
	path = append(path, first.Value)
	for p.match(token.Divide) {
		seg, err := p.expect(token.Identifier, "module path segment")
		if err != nil {
			return nil, err
		}
		path = append(path, seg.Value)
	}
	p.match(token.Semicolon)
	return ast.Use(pos, path...), nil
}

// parseVariableDeclaration parses `let name[ = expr]`, plus a comma-
// chained run of further declarations (`let n, let a`, `let n, a = 1`):
// a struct's trailing attribute list (§ struct-definition extraction)
// is exactly this shape, so one or more comma-joined declarations
// collapse into a single ItemizedExpr of VariableDecls the same way
// parseExpressionOrAssignment does for multi-target assignment.
func (p *Parser) parseVariableDeclaration() (ast.Node, error) {
	first, err := p.parseOneVariableDeclaration()
	if err != nil {
		return nil, err
	}
	decls := []ast.Node{first}
	for p.match(token.Comma) {
		p.match(token.Variable) // optional repeated `let`
		next, err := p.parseOneVariableDeclaration()
		if err != nil {
			return nil, err
		}
		decls = append(decls, next)
	}
	p.match(token.Semicolon)
	if len(decls) > 1 {
		return ast.Items(first.Position(), decls...), nil
	}
	return first, nil
}

// parseOneVariableDeclaration parses a single `let`-prefixed or bare
// `name[ = expr]` declaration, without consuming a trailing comma or
// semicolon (left to the caller, which may chain further declarations).
func (p *Parser) parseOneVariableDeclaration() (*ast.VariableDecl, error) {
	pos := p.current().Pos
	if p.check(token.Variable) {
		pos = p.advance().Pos // `let`
	}
	name, err := p.expect(token.Identifier, "identifier")
	if err != nil {
		return nil, err
	}
	var value ast.Node
	if p.match(token.Equal) {
		value, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	return ast.VarDecl(pos, name.Value, value), nil
}

func (p *Parser) parseWhile() (ast.Node, error) {
	pos := p.advance().Pos // `while`
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Equal, "'='"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var orelse *ast.Block
	if p.match(token.Else) {
		orelse, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return ast.While(pos, cond, body, orelse), nil
}

func (p *Parser) parseFor() (ast.Node, error) {
	pos := p.advance().Pos // `for`
	var names []ast.Node
	for {
		if p.check(token.Variable) {
			decl, err := p.parseOneVariableDeclaration()
			if err != nil {
				return nil, err
			}
			names = append(names, decl)
		} else {
			id, err := p.expect(token.Identifier, "identifier")
			if err != nil {
				return nil, err
			}
			names = append(names, ast.Id(id.Pos, id.Value))
		}
		if !p.match(token.Comma) {
			break
		}
	}
	if _, err := p.expect(token.In, "'in'"); err != nil {
		return nil, err
	}
	iterable, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Equal, "'='"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var orelse *ast.Block
	if p.match(token.Else) {
		orelse, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return ast.For(pos, iterable, body, orelse, names...), nil
}

func (p *Parser) parseIf() (ast.Node, error) {
	pos := p.advance().Pos // `if`
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Equal, "'='"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var orelse ast.Node
	if p.match(token.Else) {
		if p.check(token.If) {
			orelse, err = p.parseIf()
		} else {
			orelse, err = p.parseBlock()
		}
		if err != nil {
			return nil, err
		}
	}
	return ast.If(pos, cond, body, orelse), nil
}

// parseMatch parses `match subject = { case ... }` where each arm is
// introduced by `for <condition>` (equality or, when condition is a
// parenthesized comma-list, membership), with a bare `{...}` arm (no
// `for`) as the unconditional default.
func (p *Parser) parseMatch() (ast.Node, error) {
	pos := p.advance().Pos // `match`
	subject, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Equal, "'='"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LeftBrace, "'{'"); err != nil {
		return nil, err
	}
	var cases []*ast.CaseClause
	for {
		c, err := p.parseCase()
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
		if !p.match(token.Else) {
			break
		}
	}
	if _, err := p.expect(token.RightBrace, "'}'"); err != nil {
		return nil, err
	}
	return ast.Match(pos, subject, cases...), nil
}

func (p *Parser) parseCase() (*ast.CaseClause, error) {
	pos := p.current().Pos
	var cond ast.Node
	if p.match(token.For) {
		if p.match(token.LeftParen) {
			items, err := p.parseCommaExpressions(token.RightParen)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RightParen, "')'"); err != nil {
				return nil, err
			}
			cond = ast.Items(pos, items...)
		} else {
			c, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			cond = c
		}
		if _, err := p.expect(token.Equal, "'='"); err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.Case(pos, cond, body), nil
}

func (p *Parser) parseTry() (ast.Node, error) {
	pos := p.advance().Pos // `try`
	if _, err := p.expect(token.Equal, "'='"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var catch *ast.CatchClause
	if p.check(token.Catch) {
		catch, err = p.parseCatch()
		if err != nil {
			return nil, err
		}
	}
	return ast.Try(pos, body, catch), nil
}

func (p *Parser) parseCatch() (*ast.CatchClause, error) {
	pos := p.advance().Pos // `catch`
	// The kind list is either parenthesized (`catch (A, B)`) or a single
	// bare kind name (`catch A`).
	paren := p.match(token.LeftParen)
	var excepts []string
	for {
		id, err := p.expect(token.Identifier, "error type name")
		if err != nil {
			return nil, err
		}
		excepts = append(excepts, id.Value)
		if !paren || !p.match(token.Comma) {
			break
		}
	}
	if paren {
		if _, err := p.expect(token.RightParen, "')'"); err != nil {
			return nil, err
		}
	}
	as := ""
	// `as` is not a reserved word; it lexes as an ordinary Identifier.
	if p.check(token.Identifier) && p.current().Value == "as" {
		p.advance()
		id, err := p.expect(token.Identifier, "binding name")
		if err != nil {
			return nil, err
		}
		as = id.Value
	}
	if _, err := p.expect(token.Equal, "'='"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var next *ast.CatchClause
	if p.check(token.Catch) {
		next, err = p.parseCatch()
		if err != nil {
			return nil, err
		}
	}
	return ast.Catch(pos, as, body, next, excepts...), nil
}

func (p *Parser) parseFunction() (ast.Node, error) {
	pos := p.advance().Pos // `fn`
	name, err := p.expect(token.Identifier, "function name")
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Equal, "'='"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.FuncDef(pos, name.Value, body, params...), nil
}

func (p *Parser) parseMemberFunction() (ast.Node, error) {
	pos := p.advance().Pos // `fn`
	structName, err := p.expect(token.Identifier, "struct name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.DoubleColon, "'::'"); err != nil {
		return nil, err
	}
	name, err := p.expect(token.Identifier, "method name")
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Equal, "'='"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.MemberFuncDef(pos, structName.Value, name.Value, body, params...), nil
}

// parseParams parses `(let a, let b = 1, let ...rest)`. Only `let`-prefixed
// declarations are recognized as parameters, matching the original's
// _resolve_parameter restriction.
func (p *Parser) parseParams() ([]*ast.ParamDecl, error) {
	if _, err := p.expect(token.LeftParen, "'('"); err != nil {
		return nil, err
	}
	var params []*ast.ParamDecl
	for !p.check(token.RightParen) {
		pos := p.current().Pos
		if _, err := p.expect(token.Variable, "'let'"); err != nil {
			return nil, err
		}
		variadic := p.match(token.Pass)
		name, err := p.expect(token.Identifier, "parameter name")
		if err != nil {
			return nil, err
		}
		var def ast.Node
		if p.match(token.Equal) {
			def, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
		}
		params = append(params, ast.Param(pos, name.Value, def, variadic))
		if !p.match(token.Comma) {
			break
		}
	}
	if _, err := p.expect(token.RightParen, "')'"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseStruct() (ast.Node, error) {
	pos := p.advance().Pos // `struct`
	name, err := p.expect(token.Identifier, "struct name")
	if err != nil {
		return nil, err
	}
	var parents []string
	if p.match(token.LessThan) {
		if p.match(token.LeftParen) {
			for {
				id, err := p.expect(token.Identifier, "parent struct name")
				if err != nil {
					return nil, err
				}
				parents = append(parents, id.Value)
				if !p.match(token.Comma) {
					break
				}
			}
			if _, err := p.expect(token.RightParen, "')'"); err != nil {
				return nil, err
			}
		} else {
			id, err := p.expect(token.Identifier, "parent struct name")
			if err != nil {
				return nil, err
			}
			parents = append(parents, id.Value)
		}
	}
	if _, err := p.expect(token.Equal, "'='"); err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	// The struct's trailing attribute list is its body's last item, an
	// ItemizedExpr — matching _populate_on_parents's "pop the last element
	// as attributes" convention, defaulting to empty when absent.
	body := block.Body
	var attrs *ast.ItemizedExpr
	if n := len(body); n > 0 {
		if items, ok := body[n-1].(*ast.ItemizedExpr); ok {
			attrs = items
			body = body[:n-1]
		}
	}
	if attrs == nil {
		attrs = ast.Items(pos)
	}
	return ast.StructDefNode(pos, name.Value, parents, body, attrs), nil
}

func (p *Parser) parseReturn() (ast.Node, error) {
	pos := p.advance().Pos // `return!`
	var value ast.Node
	if !p.check(token.Semicolon) && !p.check(token.RightBrace) {
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		value = v
	}
	p.match(token.Semicolon)
	return ast.Return(pos, value), nil
}

// parseExpressionOrAssignment parses a bare expression statement, which
// may continue as a plain or compound assignment when followed by `=` or
// one of the `op=` tokens.
func (p *Parser) parseExpressionOrAssignment() (ast.Node, error) {
	pos := p.current().Pos
	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	targets := []ast.Node{first}
	for p.match(token.Comma) {
		next, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		targets = append(targets, next)
	}

	if p.match(token.Equal) {
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		p.match(token.Semicolon)
		return ast.Assign(pos, value, targets...), nil
	}

	if op, ok := compoundOps[p.current().Kind]; ok {
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		p.match(token.Semicolon)
		return ast.CompoundAssign(pos, op, value, targets...), nil
	}

	p.match(token.Semicolon)
	if len(targets) > 1 {
		return ast.Items(pos, targets...), nil
	}
	return first, nil
}

var compoundOps = map[token.Kind]token.Kind{
	token.AddEqual:        token.Add,
	token.SubtractEqual:   token.Subtract,
	token.MultiplyEqual:   token.Multiply,
	token.DivideEqual:     token.Divide,
	token.ModulusEqual:    token.Modulus,
	token.PowerEqual:      token.Power,
	token.LeftShiftEqual:  token.LeftShift,
	token.RightShiftEqual: token.RightShift,
}

// --- expressions ---

var relationalOps = []token.Kind{
	token.EqualEqual, token.NotEqual, token.LessThan, token.GreaterThan,
	token.LessThanOrEqual, token.GreaterThanOrEqual,
}

var logicalOps = []token.Kind{token.And, token.Or}

func (p *Parser) parseExpression() (ast.Node, error) {
	expr, err := p.parseLogical()
	if err != nil {
		return nil, err
	}
	if p.match(token.If) {
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Else, "'else'"); err != nil {
			return nil, err
		}
		orelse, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.Ternary(expr.Position(), expr, cond, orelse), nil
	}
	return expr, nil
}

func (p *Parser) parseLogical() (ast.Node, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.check(logicalOps...) {
		op := p.advance()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = ast.Logical(left.Position(), op.Kind, left, right)
	}
	return left, nil
}

func (p *Parser) parseRelational() (ast.Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.check(relationalOps...) {
		op := p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = ast.Relational(left.Position(), op.Kind, left, right)
	}
	return left, nil
}

var arithmeticOps = []token.Kind{
	token.Add, token.Subtract, token.Multiply, token.Divide,
	token.Modulus, token.Power, token.LeftShift, token.RightShift,
}

// parseTerm implements the bulk of original_source's _process_term:
// prefix arithmetic, pre/post inc-dec, negation, and the various literal
// and aggregate forms, followed by chain resolution.
func (p *Parser) parseTerm() (ast.Node, error) {
	pos := p.current().Pos

	if p.check(arithmeticOps...) {
		op := p.advance()
		left, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return ast.Arithmetic(pos, op.Kind, left, right), nil
	}

	if p.match(token.Not) {
		operand, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return ast.Negate(pos, operand), nil
	}

	if p.match(token.Increment) {
		operand, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return ast.PreInc(pos, operand), nil
	}
	if p.match(token.Decrement) {
		operand, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return ast.PreDec(pos, operand), nil
	}

	atom, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	atom = p.parseChainTail(atom)

	if p.match(token.Increment) {
		return ast.PostInc(atom.Position(), atom), nil
	}
	if p.match(token.Decrement) {
		return ast.PostDec(atom.Position(), atom), nil
	}
	return atom, nil
}

func (p *Parser) canStartFactor() bool {
	switch p.current().Kind {
	case token.RightBracket, token.RightParen, token.RightBrace,
		token.Comma, token.Semicolon, token.EOF, token.Equal:
		return false
	default:
		return true
	}
}

// parseFactor parses a single literal/aggregate/grouped form, the leaf of
// parseTerm's grammar.
func (p *Parser) parseFactor() (ast.Node, error) {
	tok := p.current()
	switch tok.Kind {
	case token.Pass:
		p.advance()
		return ast.NewPass(tok.Pos), nil
	case token.Null:
		p.advance()
		return ast.NewNull(tok.Pos), nil
	case token.Integer:
		return p.parseIntLiteral(10)
	case token.Binary:
		return p.parseIntLiteral(2)
	case token.Octal:
		return p.parseIntLiteral(8)
	case token.Hexadecimal:
		return p.parseIntLiteral(16)
	case token.Float:
		p.advance()
		v, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, p.newSyntaxError("invalid float literal " + tok.Value)
		}
		return ast.Float(tok.Pos, v), nil
	case token.String:
		p.advance()
		return ast.Str(tok.Pos, tok.Value[1:len(tok.Value)-1], false), nil // strip `"…"`
	case token.RawString:
		p.advance()
		return ast.Str(tok.Pos, tok.Value[2:len(tok.Value)-1], true), nil // strip `r"…"`
	case token.Identifier:
		p.advance()
		node := ast.Node(ast.Id(tok.Pos, tok.Value))
		if p.check(token.LeftParen) {
			return p.parseCall(node)
		}
		return node, nil
	case token.LeftBracket:
		return p.parseBracketedRange()
	case token.LeftBrace:
		return p.parseListOrHashMap()
	case token.LeftParen:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RightParen, "')'"); err != nil {
			return nil, err
		}
		return ast.Grouped(tok.Pos, inner), nil
	default:
		return nil, p.newUnexpectedTokenError("an expression", tok)
	}
}

func (p *Parser) parseIntLiteral(base int) (ast.Node, error) {
	tok := p.advance()
	text := tok.Value
	switch base {
	case 2, 8, 16:
		text = text[2:] // strip 0b/0o/0x prefix
	}
	v, err := strconv.ParseInt(text, base, 64)
	if err != nil {
		return nil, p.newSyntaxError("invalid integer literal " + tok.Value)
	}
	return ast.Int(tok.Pos, v, base), nil
}

// parseChainTail extends atom into a ChainedExpr for each trailing
// `.link` segment, unifying attribute access, method calls and
// range/subscript indexing the way original_source's ChainedExpressionsNode
// does.
func (p *Parser) parseChainTail(atom ast.Node) ast.Node {
	if !p.check(token.Dot) {
		return atom
	}
	parts := []ast.Node{atom}
	for p.match(token.Dot) {
		link, err := p.parseChainLink()
		if err != nil {
			p.addError(err)
			break
		}
		parts = append(parts, link)
	}
	return ast.Chain(atom.Position(), parts...)
}

// parseChainLink resolves one dot-separated chain segment, grounded on
// _resolve_chain_target's restriction to Identifier, Range, Call or
// nested ChainedExpressions — a bare literal is never a valid chain link.
func (p *Parser) parseChainLink() (ast.Node, error) {
	tok := p.current()
	if tok.Kind == token.Identifier {
		p.advance()
		node := ast.Node(ast.Id(tok.Pos, tok.Value))
		if p.check(token.LeftParen) {
			return p.parseCall(node)
		}
		return node, nil
	}
	return p.parseFactor()
}

// parseBracketedRange parses `[ from (, by)? (.. to)? ]`, the only range
// production in the grammar — matching the original's
// `_bracketed(self._parse_range)`; a range never appears unbracketed.
func (p *Parser) parseBracketedRange() (ast.Node, error) {
	pos := p.advance().Pos // `[`
	from, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	var by ast.Node
	if p.match(token.Comma) {
		by, err = p.parseTerm()
		if err != nil {
			return nil, err
		}
	}
	var to ast.Node
	if p.match(token.Between) {
		if p.canStartFactor() {
			to, err = p.parseTerm()
			if err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.expect(token.RightBracket, "']'"); err != nil {
		return nil, err
	}
	return ast.Range(pos, from, to, by), nil
}

// parseListOrHashMap parses `{ … }`, disambiguating spec.md's list
// (`{10, 20, 30}`, `{}`) from its empty-or-colon hashmap (`{:}`,
// `{ :K V, ... }`) by whether the body opens with `:`, matching the
// original's `peek('RightBrace') or ...('Comma',)` vs. `peek('Colon')`
// lookahead in `_process_term`.
func (p *Parser) parseListOrHashMap() (ast.Node, error) {
	if p.peekAt(1).Kind == token.Colon {
		return p.parseHashMap()
	}
	return p.parseList()
}

func (p *Parser) parseList() (ast.Node, error) {
	pos := p.advance().Pos // `{`
	var elements []ast.Node
	for !p.check(token.RightBrace) {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, e)
		if !p.match(token.Comma) {
			break
		}
	}
	if _, err := p.expect(token.RightBrace, "'}'"); err != nil {
		return nil, err
	}
	return ast.List(pos, elements...), nil
}

func (p *Parser) parseHashMap() (ast.Node, error) {
	pos := p.advance().Pos // `{`
	if p.match(token.Colon) {
		if p.match(token.RightBrace) {
			return ast.HashMap(pos), nil
		}
		// fall through: first pair's colon already consumed
		return p.parseHashMapPairs(pos, true)
	}
	return p.parseHashMapPairs(pos, false)
}

func (p *Parser) parseHashMapPairs(pos token.Position, firstColonConsumed bool) (ast.Node, error) {
	var pairs []*ast.PairExpr
	first := true
	for {
		if !first || !firstColonConsumed {
			if _, err := p.expect(token.Colon, "':'"); err != nil {
				return nil, err
			}
		}
		first = false
		keyPos := p.current().Pos
		key, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, ast.Pair(keyPos, key, val))
		if !p.match(token.Comma) {
			break
		}
	}
	if _, err := p.expect(token.RightBrace, "'}'"); err != nil {
		return nil, err
	}
	return ast.HashMap(pos, pairs...), nil
}

func (p *Parser) parseCall(callee ast.Node) (ast.Node, error) {
	pos := callee.Position()
	if _, err := p.expect(token.LeftParen, "'('"); err != nil {
		return nil, err
	}
	var args []ast.Node
	for !p.check(token.RightParen) {
		arg, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.match(token.Comma) {
			break
		}
	}
	if _, err := p.expect(token.RightParen, "')'"); err != nil {
		return nil, err
	}
	return ast.Call(pos, callee, args...), nil
}

func (p *Parser) parseArg() (ast.Node, error) {
	pos := p.current().Pos
	if p.match(token.Pass) {
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.Expandable(pos, v), nil
	}
	if p.check(token.Identifier) && p.peekAt(1).Kind == token.Equal {
		name := p.advance().Value
		p.advance() // `=`
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.KeywordArgNode(pos, name, v), nil
	}
	return p.parseExpression()
}

func (p *Parser) parseCommaExpressions(stop token.Kind) ([]ast.Node, error) {
	var out []ast.Node
	for !p.check(stop) {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
		if !p.match(token.Comma) {
			break
		}
	}
	return out, nil
}
