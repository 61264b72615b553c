package parser

import (
	"fmt"
	"strings"

	"github.com/farrlang/farr/pkgs/token"
)

// ParseError represents a parsing error with location and a code snippet,
// grounded on the teacher's ParseError/createCodeSnippet pattern.
type ParseError struct {
	Message string
	Tok     token.Token
	Input   string
}

func (e ParseError) Error() string {
	snippet := e.createCodeSnippet()
	return fmt.Sprintf("syntax error: %s\n%s", e.Message, snippet)
}

func (e ParseError) createCodeSnippet() string {
	if e.Input == "" || e.Tok.Pos.Line == 0 {
		return ""
	}
	lines := strings.Split(e.Input, "\n")
	if e.Tok.Pos.Line > len(lines) {
		return ""
	}
	lineContent := lines[e.Tok.Pos.Line-1]

	var snippet strings.Builder
	snippet.WriteString(fmt.Sprintf("  --> %d:%d\n", e.Tok.Pos.Line, e.Tok.Pos.Column))
	snippet.WriteString("   |\n")
	snippet.WriteString(fmt.Sprintf("%2d | %s\n", e.Tok.Pos.Line, lineContent))
	snippet.WriteString("   | ")
	if e.Tok.Pos.Column > 0 && e.Tok.Pos.Column <= len(lineContent)+1 {
		snippet.WriteString(strings.Repeat(" ", e.Tok.Pos.Column-1) + "^")
	}
	return snippet.String()
}

func (p *Parser) newSyntaxError(message string) error {
	return ParseError{Message: message, Tok: p.current(), Input: p.input}
}

func (p *Parser) newUnexpectedTokenError(expected string, got token.Token) error {
	return ParseError{
		Message: fmt.Sprintf("expected %s, got %s", expected, got.Kind),
		Tok:     got,
		Input:   p.input,
	}
}
