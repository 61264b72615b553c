package token

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"isempty?", "isempty_q"},
		{"clear!", "clear_e"},
		{"panic!?", "panic_eq"},
		{"cmd!?", "cmd_eq"},
		{"exit!", "exit_e"},
		{"plain", "plain"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, s := range []string{"isempty?", "clear!", "panic!?", "plain"} {
		once := Normalize(s)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: once=%q twice=%q", s, once, twice)
		}
	}
}

func TestNormalizeOnlyLettersDigitsUnderscore(t *testing.T) {
	for _, s := range []string{"isempty?", "cmd!?", "nearest?"} {
		got := Normalize(s)
		for _, r := range got {
			ok := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
			if !ok {
				t.Errorf("Normalize(%q) = %q contains disallowed rune %q", s, got, r)
			}
		}
	}
}

func TestKeywordsMapToKeywordKinds(t *testing.T) {
	for word, kind := range Keywords {
		if kind == EOF || kind == ILLEGAL {
			t.Errorf("keyword %q mapped to non-keyword kind", word)
		}
	}
}
