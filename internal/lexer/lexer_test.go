package lexer

import (
	"testing"

	"github.com/GaryLuck/basic-plus/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestSpaceFreeAssignment(t *testing.T) {
	toks, err := Tokenize("10 LETX=5")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	got := kinds(toks)
	want := []token.Kind{token.LineNumber, token.LET, token.Ident, token.Eq, token.Number, token.EOL, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestStringLiteral(t *testing.T) {
	toks, err := Tokenize(`10 PRINT "HELLO, WORLD!"`)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if toks[2].Kind != token.String || toks[2].Str != "HELLO, WORLD!" {
		t.Fatalf("got %+v", toks[2])
	}
}

func TestUnterminatedString(t *testing.T) {
	_, err := Tokenize(`10 PRINT "HELLO`)
	if err == nil {
		t.Fatal("expected a syntax error")
	}
}

func TestTwoCharOperators(t *testing.T) {
	toks, err := Tokenize("10 IF A<>B THEN 20")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	got := kinds(toks)
	want := []token.Kind{
		token.LineNumber, token.IF, token.Ident, token.NotEq, token.Ident,
		token.THEN, token.Number, token.EOL, token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestExpectExitCodeDirectiveIsComment(t *testing.T) {
	toks, err := Tokenize("10 @EXPECT_EXIT_CODE=1")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	got := kinds(toks)
	want := []token.Kind{token.LineNumber, token.REM, token.EOL, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if toks[1].Text != "@EXPECT_EXIT_CODE=1" {
		t.Fatalf("REM token text = %q, want the directive text preserved", toks[1].Text)
	}
}

func TestStringFunctionSuffix(t *testing.T) {
	toks, err := Tokenize(`10 LEFT$="X"`)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if toks[1].Kind != token.Ident || toks[1].Text != "LEFT$" {
		t.Fatalf("got %+v", toks[1])
	}
}
