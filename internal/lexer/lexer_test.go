package lexer

import "testing"

func collect(t *testing.T, src string) []Token {
	t.Helper()
	l := New(src)
	var toks []Token
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("Next(): %v", err)
		}
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

func TestScansSimpleExpression(t *testing.T) {
	toks := collect(t, "12+23")
	want := []Type{Integer, Operator, Integer, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("token %d: got %v, want %v", i, toks[i].Type, w)
		}
	}
	if toks[0].Literal != "12" || toks[1].Literal != "+" || toks[2].Literal != "23" {
		t.Fatalf("unexpected literals: %v", toks)
	}
}

func TestLeadingMinusIsOperatorNotSign(t *testing.T) {
	toks := collect(t, "-123")
	if toks[0].Type != Operator || toks[0].Literal != "-" {
		t.Fatalf("expected leading '-' to lex as Operator, got %v", toks[0])
	}
	if toks[1].Type != Integer || toks[1].Literal != "123" {
		t.Fatalf("expected '123' to lex as unsigned Integer, got %v", toks[1])
	}
}

func TestScansCallSyntax(t *testing.T) {
	toks := collect(t, "putchar(arg_0=65, 66)")
	want := []Type{Ident, LParen, Ident, Equals, Integer, Comma, Integer, RParen, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("token %d: got %v, want %v (%v)", i, toks[i].Type, w, toks[i])
		}
	}
}

func TestSkipsWhitespaceAndTracksPosition(t *testing.T) {
	toks := collect(t, "  12 + 23")
	if toks[0].Pos.Column != 3 {
		t.Fatalf("first token column = %d, want 3", toks[0].Pos.Column)
	}
}

func TestUnrecognizedByte(t *testing.T) {
	l := New("#lol")
	_, err := l.Next()
	if err == nil {
		t.Fatal("expected error for '#'")
	}
	if _, ok := err.(*UnrecognizedByteError); !ok {
		t.Fatalf("got %T, want *UnrecognizedByteError", err)
	}
}
