// Package dialect holds the small set of configuration knobs that
// parameterize the printer, symbol table and engine: case folding, the
// PRINT zone width, the implicit array size, and the $ suffix that
// separates the string and numeric symbol-table namespaces. The
// reserved-word table lives in internal/token.
package dialect

// Dialect bundles the interpreter's tunable constants. There is a single
// package-level default; nothing in the pack reads interpreter dialect
// settings from an external config file, so this stays a plain Go value
// rather than acquiring a config-file format.
type Dialect struct {
	// ZoneWidth is the PRINT column width a comma separator pads to.
	ZoneWidth int

	// ImplicitArraySize is the per-dimension size used when an array is
	// referenced with a subscript before any DIM statement declares it.
	ImplicitArraySize int

	// MaxVariableLen records the donor's identifier-length limit. Nothing
	// reads it: identifiers of any length are kept as written, neither
	// truncated nor rejected.
	MaxVariableLen int

	// CaseFold, when true, upper-cases identifiers and keywords before
	// lookup (classic BASIC is case-insensitive).
	CaseFold bool

	// StringSuffix marks a string-typed scalar or array name.
	StringSuffix byte
}

// Default mirrors the donor's definitions.go constants: zoneWidth = 14,
// maxImplicitSubscript = 10 (11 slots, indices 0..10), maxVariableLen = 29.
var Default = Dialect{
	ZoneWidth:         14,
	ImplicitArraySize: 11,
	MaxVariableLen:    29,
	CaseFold:          true,
	StringSuffix:      '$',
}

// Fold applies the dialect's case-folding rule to an identifier or keyword.
func (d Dialect) Fold(s string) string {
	if !d.CaseFold {
		return s
	}
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

// IsStringName reports whether name denotes a string-typed scalar/array.
func (d Dialect) IsStringName(name string) bool {
	return len(name) > 0 && name[len(name)-1] == d.StringSuffix
}
