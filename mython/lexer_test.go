package mython

import "testing"

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, t := range tokens {
		types[i] = t.Type
	}
	return types
}

func TestLexerIndentDedent(t *testing.T) {
	src := "if True:\n  x = 1\nelse:\n  x = 2\n"
	tokens, err := tokenize(src)
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	got := tokenTypes(tokens)
	want := []TokenType{
		tokenIf, tokenTrue, tokenChar, tokenNewline,
		tokenIndent, tokenId, tokenChar, tokenNumber, tokenNewline,
		tokenDedent, tokenElse, tokenChar, tokenNewline,
		tokenIndent, tokenId, tokenChar, tokenNumber, tokenNewline,
		tokenDedent, tokenEof,
	}
	if len(got) != len(want) {
		t.Fatalf("token count mismatch: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s (%v)", i, got[i], want[i], got)
		}
	}
}

func TestLexerSkipsBlankAndCommentLines(t *testing.T) {
	src := "x = 1\n\n# a comment\ny = 2\n"
	tokens, err := tokenize(src)
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	var numbers []int
	for _, tok := range tokens {
		if tok.Type == tokenNumber {
			numbers = append(numbers, tok.Num)
		}
	}
	if len(numbers) != 2 || numbers[0] != 1 || numbers[1] != 2 {
		t.Fatalf("unexpected numbers: %v", numbers)
	}
}

func TestLexerStringEscapes(t *testing.T) {
	tokens, err := tokenize(`x = "a\nb\"c"` + "\n")
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	var lit string
	found := false
	for _, tok := range tokens {
		if tok.Type == tokenString {
			lit = tok.Literal
			found = true
		}
	}
	if !found {
		t.Fatalf("no string token found")
	}
	if lit != "a\nb\"c" {
		t.Fatalf("unexpected decoded literal: %q", lit)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	_, err := tokenize("x = \"oops\n")
	if err == nil {
		t.Fatalf("expected an error for an unterminated string")
	}
}

func TestLexerTwoCharOperators(t *testing.T) {
	tokens, err := tokenize("a == b\nc != d\ne <= f\ng >= h\n")
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	got := tokenTypes(tokens)
	wantAnywhere := []TokenType{tokenEq, tokenNotEq, tokenLessOrEq, tokenGreaterOrEq}
	for _, w := range wantAnywhere {
		found := false
		for _, g := range got {
			if g == w {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("missing operator %s in %v", w, got)
		}
	}
}
