package builtin

import (
	"testing"

	"github.com/GaryLuck/basic-plus/internal/value"
)

func call(t *testing.T, name string, args ...value.Value) value.Value {
	t.Helper()
	if err := CheckArity(name, len(args)); err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	v, err := Registry[name].Fn(args)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return v
}

func TestIntFloorsNotTruncates(t *testing.T) {
	got := call(t, "INT", value.Of(3.7))
	if got.Num != 3 {
		t.Fatalf("INT(3.7) = %v, want 3", got.Num)
	}
	got = call(t, "INT", value.Of(-3.2))
	if got.Num != -4 {
		t.Fatalf("INT(-3.2) = %v, want -4 (floor, not truncation)", got.Num)
	}
}

func TestSqrNegativeIsError(t *testing.T) {
	_, err := Registry["SQR"].Fn([]value.Value{value.Of(-1)})
	if err == nil {
		t.Fatal("expected an error for SQR(-1)")
	}
}

func TestLogNonPositiveIsError(t *testing.T) {
	_, err := Registry["LOG"].Fn([]value.Value{value.Of(0)})
	if err == nil {
		t.Fatal("expected an error for LOG(0)")
	}
}

func TestValParsesLeadingNumberOrZero(t *testing.T) {
	got := call(t, "VAL", value.OfString("  42.5"))
	if got.Num != 42.5 {
		t.Fatalf("VAL(\"  42.5\") = %v, want 42.5", got.Num)
	}
	got = call(t, "VAL", value.OfString("ABC"))
	if got.Num != 0 {
		t.Fatalf("VAL(\"ABC\") = %v, want 0, not an error", got.Num)
	}
}

func TestLeftRightSaturateAtStringLength(t *testing.T) {
	got := call(t, "LEFT$", value.OfString("HI"), value.Of(10))
	if got.Str != "HI" {
		t.Fatalf("LEFT$(\"HI\",10) = %q, want %q", got.Str, "HI")
	}
	got = call(t, "RIGHT$", value.OfString("HI"), value.Of(10))
	if got.Str != "HI" {
		t.Fatalf("RIGHT$(\"HI\",10) = %q, want %q", got.Str, "HI")
	}
}

func TestMidOneBasedStartAndSaturatingLength(t *testing.T) {
	got := call(t, "MID$", value.OfString("HELLO"), value.Of(2), value.Of(100))
	if got.Str != "ELLO" {
		t.Fatalf("MID$(\"HELLO\",2,100) = %q, want %q", got.Str, "ELLO")
	}
	got = call(t, "MID$", value.OfString("HELLO"), value.Of(2), value.Of(2))
	if got.Str != "EL" {
		t.Fatalf("MID$(\"HELLO\",2,2) = %q, want %q", got.Str, "EL")
	}
	got = call(t, "MID$", value.OfString("HELLO"), value.Of(1))
	if got.Str != "HELLO" {
		t.Fatalf("MID$(\"HELLO\",1) = %q, want %q", got.Str, "HELLO")
	}
}

func TestAscEmptyStringIsError(t *testing.T) {
	_, err := Registry["ASC"].Fn([]value.Value{value.OfString("")})
	if err == nil {
		t.Fatal("expected an error for ASC(\"\")")
	}
}

func TestChrAndStrRoundTrip(t *testing.T) {
	got := call(t, "CHR$", value.Of(65))
	if got.Str != "A" {
		t.Fatalf("CHR$(65) = %q, want %q", got.Str, "A")
	}
	got = call(t, "STR$", value.Of(65))
	if got.Str != "65" {
		t.Fatalf("STR$(65) = %q, want %q", got.Str, "65")
	}
}

func TestLenRequiresString(t *testing.T) {
	_, err := Registry["LEN"].Fn([]value.Value{value.Of(5)})
	if err == nil {
		t.Fatal("expected an error for LEN of a number")
	}
	got := call(t, "LEN", value.OfString("HELLO"))
	if got.Num != 5 {
		t.Fatalf("LEN(\"HELLO\") = %v, want 5", got.Num)
	}
}

func TestCheckArityRejectsWrongCount(t *testing.T) {
	if err := CheckArity("ABS", 2); err == nil {
		t.Fatal("expected an arity error for ABS with 2 arguments")
	}
	if err := CheckArity("MID$", 1); err == nil {
		t.Fatal("expected an arity error for MID$ with 1 argument")
	}
	if err := CheckArity("NOSUCHFUNC", 1); err == nil {
		t.Fatal("expected an error for an unknown function name")
	}
}

func TestIsBuiltinRecognizesRegisteredNames(t *testing.T) {
	if !IsBuiltin("LEFT$") {
		t.Fatal("LEFT$ should be a recognized builtin")
	}
	if IsBuiltin("FNSQ") {
		t.Fatal("a user DEF FN name should not be a recognized builtin")
	}
}
