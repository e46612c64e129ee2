// Package value holds the runtime representation of a BASIC scalar:
// SymbolValue's Number/String variants from the data model. Arrays and
// user functions are represented one level up, in internal/symtab, since
// they carry shape/parameter metadata a bare scalar doesn't need.
package value

import "strconv"

// Kind tags which variant of Value is populated.
type Kind int

const (
	Number Kind = iota
	String
)

// Value is a tagged variant: Number(f64) or String(text). A zero Value is
// the number 0, matching BASIC's "undeclared numeric scalar reads as 0".
type Value struct {
	Kind Kind
	Num  float64
	Str  string
}

// Of constructs a numeric Value.
func Of(n float64) Value { return Value{Kind: Number, Num: n} }

// OfString constructs a string Value.
func OfString(s string) Value { return Value{Kind: String, Str: s} }

// IsString reports whether v holds a string.
func (v Value) IsString() bool { return v.Kind == String }

// Truthy applies BASIC's "false iff zero" coercion. Only meaningful for
// numeric values; callers must reject strings before calling this.
func (v Value) Truthy() bool { return v.Num != 0 }

// Bool converts a Go bool to BASIC's canonical truth encoding: -1.0 for
// true, 0.0 for false.
func Bool(b bool) Value {
	if b {
		return Of(-1)
	}
	return Of(0)
}

// String renders v for diagnostics; it is not the BASIC PRINT formatting
// (that lives in internal/engine, which also tracks output column state).
func (v Value) String() string {
	if v.IsString() {
		return v.Str
	}
	return strconv.FormatFloat(v.Num, 'g', -1, 64)
}
