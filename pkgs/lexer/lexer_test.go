package lexer

import (
	"testing"

	"github.com/farrlang/farr/pkgs/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestLexKeywordsNotNormalized(t *testing.T) {
	toks, err := Lex("break! continue! return!")
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	want := []token.Kind{token.Break, token.Continue, token.Return, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v tokens, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] kind = %v, want %v", i, got[i], want[i])
		}
	}
}

// TestLexNormalizesIdentifiers confirms the fix that made Normalize
// load-bearing: a bang/question-mark-suffixed identifier that is NOT a
// reserved keyword must come out of the lexer already normalized, since
// that's the only point in the pipeline that ever calls token.Normalize.
func TestLexNormalizesIdentifiers(t *testing.T) {
	cases := map[string]string{
		"isempty?": "isempty_q",
		"clear!":   "clear_e",
		"nearest?": "nearest_q",
		"exit!":    "exit_e",
		"plain":    "plain",
	}
	for src, want := range cases {
		toks, err := Lex(src)
		if err != nil {
			t.Fatalf("Lex(%q): %v", src, err)
		}
		if len(toks) != 2 || toks[0].Kind != token.Identifier {
			t.Fatalf("Lex(%q) = %v, want single Identifier token", src, toks)
		}
		if toks[0].Value != want {
			t.Errorf("Lex(%q) value = %q, want %q", src, toks[0].Value, want)
		}
	}
}

func TestLexSkipsCommentsAndWhitespace(t *testing.T) {
	src := "// a line comment\nlet /* inline */ x = 1;\n"
	toks, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	want := []token.Kind{token.Variable, token.Identifier, token.Equal, token.Integer, token.Semicolon, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexShiftOperators(t *testing.T) {
	toks, err := Lex("<< >> <<= >>=")
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	want := []token.Kind{token.LeftShift, token.RightShift, token.LeftShiftEqual, token.RightShiftEqual, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexUnrecognizedToken(t *testing.T) {
	if _, err := Lex("@"); err == nil {
		t.Fatal("expected LexError for '@', got nil")
	}
}

func TestLexPositions(t *testing.T) {
	toks, err := Lex("let\nx = 1;")
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	// "x" sits on line 2, column 1.
	if toks[1].Pos.Line != 2 || toks[1].Pos.Column != 1 {
		t.Errorf("x position = %v, want line 2 column 1", toks[1].Pos)
	}
}
