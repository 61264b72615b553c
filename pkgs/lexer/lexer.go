// Package lexer tokenizes Farr source text.
//
// It follows the original implementation's regex-driven design: token kinds
// are grouped into ordered families (comments, literals, punctuation,
// identifiers/keywords), each family matched by a parent alternation
// pattern before the individual member pattern is tried. Comments and
// whitespace are matched and discarded without ever reaching the caller.
package lexer

import (
	"fmt"
	"regexp"

	"github.com/farrlang/farr/pkgs/token"
)

// group is one family of related token patterns, tried together.
type group struct {
	parentSrc string
	parent    *regexp.Regexp
	members   []member
}

type member struct {
	kind    token.Kind
	pattern *regexp.Regexp
	ignore  bool
}

func mustGroup(parentSrc string, members ...member) group {
	return group{parentSrc: parentSrc, parent: regexp.MustCompile(`^(?:` + parentSrc + `)$`), members: members}
}

func mustMember(kind token.Kind, src string, ignore bool) member {
	return member{kind: kind, pattern: regexp.MustCompile(`^(?:` + src + `)$`), ignore: ignore}
}

// Grouping mirrors original_source/farr/lexer/__init__.py's FarrRegexLexer:
// comments first, then numeric/string literals, then punctuation and
// operators (including the shift operators the older snapshot lacked), then
// identifiers/keywords, then whitespace.
var groups = []group{
	mustGroup(`//[^\n]*|/\*[\s\S]*?\*/`,
		mustMember(token.ILLEGAL, `//[^\n]*`, true),
		mustMember(token.ILLEGAL, `/\*[\s\S]*?\*/`, true),
	),
	mustGroup(`0[bB][01]+|0[oO][0-7]+|0[xX][0-9a-fA-F]+|[\-\+]?\d+\.\d+|[\-\+]?\d+|r?"(?:[^"\\]|\\.)*"`,
		mustMember(token.Float, `[\-\+]?\d+\.\d+`, false),
		mustMember(token.Binary, `0[bB][01]+`, false),
		mustMember(token.Octal, `0[oO][0-7]+`, false),
		mustMember(token.Hexadecimal, `0[xX][0-9a-fA-F]+`, false),
		mustMember(token.Integer, `[\-\+]?\d+`, false),
		mustMember(token.RawString, `r"(?:[^"\\]|\\.)*"`, false),
		mustMember(token.String, `"(?:[^"\\]|\\.)*"`, false),
	),
	mustGroup(`\(|\)|\{|\}|\[|\]|,|\.\.\.|\.\.|\.|::|:|\+\+|--|;|<<=|>>=|<<|>>|\+=|-=|\*\*=|\*=|/=|%=|\^=|\+|-|\*\*|\*|/|%|\^|!|&&|\|\||==|!=|<=|>=|<|>|=`,
		mustMember(token.LeftParen, `\(`, false),
		mustMember(token.RightParen, `\)`, false),
		mustMember(token.LeftBrace, `\{`, false),
		mustMember(token.RightBrace, `\}`, false),
		mustMember(token.LeftBracket, `\[`, false),
		mustMember(token.RightBracket, `\]`, false),
		mustMember(token.Comma, `,`, false),
		mustMember(token.Pass, `\.\.\.`, false),
		mustMember(token.Between, `\.\.`, false),
		mustMember(token.Dot, `\.`, false),
		mustMember(token.DoubleColon, `::`, false),
		mustMember(token.Colon, `:`, false),
		mustMember(token.Increment, `\+\+`, false),
		mustMember(token.Decrement, `--`, false),
		mustMember(token.Semicolon, `;`, false),
		mustMember(token.LeftShiftEqual, `<<=`, false),
		mustMember(token.RightShiftEqual, `>>=`, false),
		mustMember(token.LeftShift, `<<`, false),
		mustMember(token.RightShift, `>>`, false),
		mustMember(token.AddEqual, `\+=`, false),
		mustMember(token.SubtractEqual, `-=`, false),
		mustMember(token.PowerEqual, `\*\*=`, false),
		mustMember(token.MultiplyEqual, `\*=`, false),
		mustMember(token.DivideEqual, `/=`, false),
		mustMember(token.ModulusEqual, `%=`, false),
		mustMember(token.PowerEqual, `\^=`, false),
		mustMember(token.Add, `\+`, false),
		mustMember(token.Subtract, `-`, false),
		mustMember(token.Power, `\*\*`, false),
		mustMember(token.Multiply, `\*`, false),
		mustMember(token.Divide, `/`, false),
		mustMember(token.Modulus, `%`, false),
		mustMember(token.Power, `\^`, false),
		mustMember(token.Not, `!`, false),
		mustMember(token.And, `&&`, false),
		mustMember(token.Or, `\|\|`, false),
		mustMember(token.EqualEqual, `==`, false),
		mustMember(token.NotEqual, `!=`, false),
		mustMember(token.LessThanOrEqual, `<=`, false),
		mustMember(token.GreaterThanOrEqual, `>=`, false),
		mustMember(token.LessThan, `<`, false),
		mustMember(token.GreaterThan, `>`, false),
		mustMember(token.Equal, `=`, false),
	),
	mustGroup(`_?[A-Za-z][A-Za-z_]*\d{0,3}(?:\?!|!\?|!|\?)?`,
		mustMember(token.Identifier, `_?[A-Za-z][A-Za-z_]*\d{0,3}(?:\?!|!\?|!|\?)?`, false),
	),
	mustGroup(`\r\n|\n|[ \t]+`,
		mustMember(token.ILLEGAL, `\r\n|\n|[ \t]+`, true),
	),
}

var separator = buildSeparator()

func buildSeparator() *regexp.Regexp {
	src := ""
	for i, g := range groups {
		if i > 0 {
			src += "|"
		}
		src += "(?:" + g.parentSrc + ")"
	}
	return regexp.MustCompile(src)
}

// LexError reports a span of input that matched no known token.
type LexError struct {
	Pos   token.Position
	Chunk string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unrecognized token %q at %s", e.Chunk, e.Pos)
}

// Lex tokenizes the full input, returning every non-ignored token plus a
// trailing EOF token. Comments and whitespace are matched and dropped.
// Keywords are recognized after the identifier family matches, exactly as
// the original lexer's keyword table does.
func Lex(input string) ([]token.Token, error) {
	var tokens []token.Token
	pos := token.Position{Line: 1, Column: 1, Offset: 0}

	for len(input) > 0 {
		loc := separator.FindStringIndex(input)
		if loc == nil || loc[0] != 0 || loc[1] == 0 {
			return nil, &LexError{Pos: pos, Chunk: firstRune(input)}
		}
		chunk := input[loc[0]:loc[1]]

		kind, ignore, matched := matchChunk(chunk)
		if !matched {
			return nil, &LexError{Pos: pos, Chunk: chunk}
		}

		start := pos
		if !ignore {
			value := chunk
			if kind == token.Identifier {
				if kw, ok := token.Keywords[chunk]; ok {
					kind = kw
				} else {
					// Normalized here, once, so every later name-keyed lookup
					// (environment binding, builtin method dispatch) sees the
					// same Python-identifier-safe spelling, grounded on the
					// original interpreter's getattr-based native dispatch.
					value = token.Normalize(chunk)
				}
			}
			tokens = append(tokens, token.Token{Kind: kind, Value: value, Pos: start})
		}
		pos = advance(pos, chunk)
		input = input[len(chunk):]
	}

	tokens = append(tokens, token.Token{Kind: token.EOF, Value: "", Pos: pos})
	return tokens, nil
}

func matchChunk(chunk string) (token.Kind, bool, bool) {
	for _, g := range groups {
		if !g.parent.MatchString(chunk) {
			continue
		}
		for _, m := range g.members {
			if m.pattern.MatchString(chunk) {
				return m.kind, m.ignore, true
			}
		}
	}
	return token.ILLEGAL, false, false
}

func advance(pos token.Position, chunk string) token.Position {
	for _, r := range chunk {
		if r == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
		pos.Offset++
	}
	return pos
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return s
}
