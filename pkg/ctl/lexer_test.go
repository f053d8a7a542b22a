package ctl_test

import (
	"testing"

	"github.com/mateuszpolis/ctlfmt/pkg/ctl"
)

func TestLexEndsWithSingleEOF(t *testing.T) {
	test := func(source string) {
		tokens, err := ctl.Lex(source)
		if err != nil {
			t.Fatalf("unexpected lex error for %q: %v", source, err)
		}
		if len(tokens) == 0 || tokens[len(tokens)-1].Kind != ctl.EOF {
			t.Fatalf("expected trailing EOF token for %q, got %+v", source, tokens)
		}
		for i, tok := range tokens[:len(tokens)-1] {
			if tok.Kind == ctl.EOF {
				t.Errorf("unexpected mid-stream EOF token at index %d for %q", i, source)
			}
		}
	}

	t.Run("empty source", func(t *testing.T) { test("") })
	t.Run("single statement", func(t *testing.T) { test("int x = 1;") })
	t.Run("trailing comment without newline", func(t *testing.T) { test("int x = 1; // done") })
}

func TestLexPositionsNonDecreasing(t *testing.T) {
	tokens, err := ctl.Lex("int x = 1;\nint y = 2;\n")
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	for i := 1; i < len(tokens); i++ {
		prev, cur := tokens[i-1], tokens[i]
		if cur.Line < prev.Line || (cur.Line == prev.Line && cur.Column < prev.Column) {
			t.Errorf("token %d (%+v) is out of order relative to token %d (%+v)", i, cur, i-1, prev)
		}
	}
}

func TestLexShiftAndScopeOperatorsNeverSplit(t *testing.T) {
	test := func(source, fusedLexeme, splitLexeme string) {
		tokens, err := ctl.Lex(source)
		if err != nil {
			t.Fatalf("unexpected lex error for %q: %v", source, err)
		}
		sawFused, sawSplit := false, false
		for _, tok := range tokens {
			if tok.Lexeme == fusedLexeme {
				sawFused = true
			}
			if tok.Lexeme == splitLexeme {
				sawSplit = true
			}
		}
		if !sawFused {
			t.Errorf("expected a fused %q token in %q, tokens: %+v", fusedLexeme, source, tokens)
		}
		if sawSplit {
			t.Errorf("found a split %q token while scanning %q, tokens: %+v", splitLexeme, source, tokens)
		}
	}

	t.Run("<< stays fused", func(t *testing.T) { test("a<<b", "<<", "<") })
	t.Run(">> stays fused", func(t *testing.T) { test("a>>b", ">>", ">") })
	t.Run(":: stays fused", func(t *testing.T) { test("T::m", "::", ":") })
}

func TestLexNumberLiterals(t *testing.T) {
	test := func(source, wantLexeme string) {
		tokens, err := ctl.Lex(source)
		if err != nil {
			t.Fatalf("unexpected lex error for %q: %v", source, err)
		}
		if tokens[0].Kind != ctl.Number || tokens[0].Lexeme != wantLexeme {
			t.Errorf("expected NUMBER %q, got %+v", wantLexeme, tokens[0])
		}
	}

	t.Run("decimal", func(t *testing.T) { test("42;", "42") })
	t.Run("float", func(t *testing.T) { test("3.14;", "3.14") })
	t.Run("hex", func(t *testing.T) { test("0xFF;", "0xFF") })
	t.Run("binary", func(t *testing.T) { test("0b1010;", "0b1010") })
	t.Run("octal", func(t *testing.T) { test("0o17;", "0o17") })
	t.Run("float with f suffix", func(t *testing.T) { test("1.5f;", "1.5f") })
}

func TestLexUnrecognizedCharacterFails(t *testing.T) {
	_, err := ctl.Lex("int x = `;")
	if err == nil {
		t.Fatal("expected a lex error for an unrecognized character")
	}
	var lexErr *ctl.LexError
	if !asLexError(err, &lexErr) {
		t.Fatalf("expected *ctl.LexError, got %T: %v", err, err)
	}
	if lexErr.Char != '`' {
		t.Errorf("expected offending char '`', got %q", lexErr.Char)
	}
}

func TestLexBareRadixPrefixFails(t *testing.T) {
	test := func(source string) {
		_, err := ctl.Lex(source)
		if err == nil {
			t.Fatalf("expected a lex error for %q", source)
		}
		var lexErr *ctl.LexError
		if !asLexError(err, &lexErr) {
			t.Fatalf("expected *ctl.LexError for %q, got %T: %v", source, err, err)
		}
	}

	t.Run("hex", func(t *testing.T) { test("0x;") })
	t.Run("binary", func(t *testing.T) { test("0b;") })
	t.Run("octal", func(t *testing.T) { test("0o;") })
}

func asLexError(err error, target **ctl.LexError) bool {
	if le, ok := err.(*ctl.LexError); ok {
		*target = le
		return true
	}
	return false
}

func TestLexDividerLines(t *testing.T) {
	tokens, err := ctl.Lex("──────────\n")
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	if tokens[0].Kind != ctl.Divider {
		t.Fatalf("expected DIVIDER token, got %+v", tokens[0])
	}
}

func TestLexElseIfIsOneToken(t *testing.T) {
	tokens, err := ctl.Lex("else if (a) {}")
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	if tokens[0].Kind != ctl.ElseIf || tokens[0].Lexeme != "else if" {
		t.Fatalf("expected ELSE_IF \"else if\", got %+v", tokens[0])
	}
}
