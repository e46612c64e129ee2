package symtab

import (
	"testing"

	"github.com/GaryLuck/basic-plus/internal/dialect"
	"github.com/GaryLuck/basic-plus/internal/value"
)

func TestUndefinedScalarsReadAsZeroOrEmpty(t *testing.T) {
	tab := New(dialect.Default)
	if v := tab.GetScalar("X"); v.Num != 0 {
		t.Errorf("undefined numeric = %v, want 0", v)
	}
	if v := tab.GetScalar("X$"); v.Str != "" {
		t.Errorf("undefined string = %q, want empty", v.Str)
	}
}

func TestScalarTypeMismatchFails(t *testing.T) {
	tab := New(dialect.Default)
	if err := tab.SetScalar("X", value.OfString("oops")); err == nil {
		t.Fatal("expected a type error assigning a string to a numeric name")
	}
}

func TestImplicitArrayDefaultsToSizeEleven(t *testing.T) {
	tab := New(dialect.Default)
	v, err := tab.GetArrayCell("A", []int{10})
	if err != nil {
		t.Fatalf("GetArrayCell(10): %v", err)
	}
	if v.Num != 0 {
		t.Errorf("got %v, want 0", v)
	}
	if _, err := tab.GetArrayCell("A", []int{11}); err == nil {
		t.Fatal("expected out-of-range error at index 11 (implicit size is 11, indices 0..10)")
	}
}

func TestRedimensionFails(t *testing.T) {
	tab := New(dialect.Default)
	if err := tab.DimArray("A", []int{5}); err != nil {
		t.Fatalf("first DIM: %v", err)
	}
	if err := tab.DimArray("A", []int{5}); err == nil {
		t.Fatal("expected an error re-dimensioning an already-dimensioned array")
	}
}

func TestScalarAndArrayAreDistinctCells(t *testing.T) {
	tab := New(dialect.Default)
	if err := tab.SetScalar("A", value.Of(7)); err != nil {
		t.Fatal(err)
	}
	if err := tab.SetArrayCell("A", []int{0}, value.Of(99)); err != nil {
		t.Fatal(err)
	}
	if v := tab.GetScalar("A"); v.Num != 7 {
		t.Errorf("scalar A = %v, want 7", v)
	}
}
