package eval

import (
	"testing"

	"github.com/GaryLuck/basic-plus/internal/token"
	"github.com/GaryLuck/basic-plus/internal/value"
)

func TestStringConcatenation(t *testing.T) {
	v, err := Binary(token.Plus, value.OfString("A"), value.OfString("B"))
	if err != nil {
		t.Fatal(err)
	}
	if v.Str != "AB" {
		t.Fatalf("got %q, want AB", v.Str)
	}
}

func TestMixedPlusIsTypeError(t *testing.T) {
	if _, err := Binary(token.Plus, value.OfString("A"), value.Of(1)); err == nil {
		t.Fatal("expected a type error")
	}
}

func TestDivisionByZero(t *testing.T) {
	if _, err := Binary(token.Slash, value.Of(1), value.Of(0)); err == nil {
		t.Fatal("expected a division-by-zero error")
	}
}

func TestNegativeBaseNonIntegerExponent(t *testing.T) {
	if _, err := Binary(token.Caret, value.Of(-2), value.Of(0.5)); err == nil {
		t.Fatal("expected a runtime error")
	}
}

func TestRelationalReturnsCanonicalBooleans(t *testing.T) {
	v, err := Binary(token.Eq, value.Of(1), value.Of(1))
	if err != nil {
		t.Fatal(err)
	}
	if v.Num != -1 {
		t.Fatalf("true = %v, want -1", v.Num)
	}
	v, err = Binary(token.Eq, value.Of(1), value.Of(2))
	if err != nil {
		t.Fatal(err)
	}
	if v.Num != 0 {
		t.Fatalf("false = %v, want 0", v.Num)
	}
}

func TestStringComparisonIsLexicographic(t *testing.T) {
	v, err := Binary(token.Lt, value.OfString("abc"), value.OfString("abd"))
	if err != nil {
		t.Fatal(err)
	}
	if v.Num != -1 {
		t.Fatalf("got %v, want true (-1)", v.Num)
	}
}

func TestUnaryNot(t *testing.T) {
	v, err := Unary(token.NOT, value.Of(0))
	if err != nil {
		t.Fatal(err)
	}
	if v.Num != -1 {
		t.Fatalf("NOT 0 = %v, want -1", v.Num)
	}
}
