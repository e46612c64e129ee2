// Package symtab implements the SymbolTable spec.md §3 and §4.3
// describe: scoped storage for scalars, arrays, and user-defined
// functions, case-folded per dialect, with a name able to simultaneously
// denote a scalar and an array (spec.md §3's dual-namespace rule).
// Grounded directly on the donor's symtab.go: two parallel maps keyed by
// name (the donor's g.symtabMap[0] for scalars, g.symtabMap[1] for
// arrays), creation-on-first-use, and a duplicate-dimension check on
// re-DIM.
package symtab

import (
	"fmt"

	"github.com/GaryLuck/basic-plus/internal/ast"
	"github.com/GaryLuck/basic-plus/internal/dialect"
	"github.com/GaryLuck/basic-plus/internal/value"
)

// NumArray is a flat numeric array cell store, shaped by Dims.
type NumArray struct {
	Dims []int
	Data []float64
}

// StrArray is a flat string array cell store, shaped by Dims.
type StrArray struct {
	Dims []int
	Data []string
}

// UserFunc is a registered DEF FN: a parameter list and a single
// expression body, per spec.md §4.6/§9.
type UserFunc struct {
	Params []string
	Body   ast.Expr
}

// Table is the SymbolTable: separate scalar and array sub-maps (so `A`
// and `A(I)` are distinct cells, per spec.md §3), plus a function map.
type Table struct {
	d dialect.Dialect

	scalarsF map[string]float64
	scalarsS map[string]string
	arraysF  map[string]*NumArray
	arraysS  map[string]*StrArray
	funcs    map[string]UserFunc
}

// New constructs an empty symbol table for the given dialect.
func New(d dialect.Dialect) *Table {
	return &Table{
		d:        d,
		scalarsF: map[string]float64{},
		scalarsS: map[string]string{},
		arraysF:  map[string]*NumArray{},
		arraysS:  map[string]*StrArray{},
		funcs:    map[string]UserFunc{},
	}
}

func (t *Table) fold(name string) string { return t.d.Fold(name) }

// GetScalar reads a scalar, implicitly declaring it (as 0 or "") on
// first read, per spec.md §4.3: "reading an undefined numeric scalar
// returns 0; reading an undefined string returns the empty string."
func (t *Table) GetScalar(name string) value.Value {
	name = t.fold(name)
	if t.d.IsStringName(name) {
		return value.OfString(t.scalarsS[name])
	}
	return value.Of(t.scalarsF[name])
}

// SetScalar assigns a scalar. It returns an error, and stores nothing,
// when v's type does not match the name's $-suffix convention; values
// are never coerced across types.
func (t *Table) SetScalar(name string, v value.Value) error {
	name = t.fold(name)
	isString := t.d.IsStringName(name)
	if isString != v.IsString() {
		return fmt.Errorf("type mismatch assigning to %s", name)
	}
	if isString {
		t.scalarsS[name] = v.Str
	} else {
		t.scalarsF[name] = v.Num
	}
	return nil
}

func shapeSize(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}

// DimArray allocates an array of the given shape. Re-dimensioning an
// already-dimensioned array fails, per spec.md §3/§4.3, grounded on the
// donor's processDimStmt "Duplicate DIM statement" check.
func (t *Table) DimArray(name string, shape []int) error {
	name = t.fold(name)
	if t.d.IsStringName(name) {
		if _, ok := t.arraysS[name]; ok {
			return fmt.Errorf("array %s is already dimensioned", name)
		}
		t.arraysS[name] = &StrArray{Dims: shape, Data: make([]string, shapeSize(shape))}
		return nil
	}
	if _, ok := t.arraysF[name]; ok {
		return fmt.Errorf("array %s is already dimensioned", name)
	}
	t.arraysF[name] = &NumArray{Dims: shape, Data: make([]float64, shapeSize(shape))}
	return nil
}

// implicitDim creates a default single-dimension array of the dialect's
// implicit size on first subscripted use without a DIM, per spec.md §3's
// invariant ("a missing DIM defaults to a single dimension of size 11").
func (t *Table) implicitDim(name string, isString bool) {
	shape := []int{t.d.ImplicitArraySize}
	if isString {
		t.arraysS[name] = &StrArray{Dims: shape, Data: make([]string, shapeSize(shape))}
	} else {
		t.arraysF[name] = &NumArray{Dims: shape, Data: make([]float64, shapeSize(shape))}
	}
}

func flatIndex(dims, idx []int) (int, error) {
	if len(idx) != len(dims) {
		return 0, fmt.Errorf("wrong number of subscripts: got %d, array has %d dimensions", len(idx), len(dims))
	}
	off := 0
	for i, d := range dims {
		if idx[i] < 0 || idx[i] >= d {
			return 0, fmt.Errorf("subscript %d out of range (0..%d)", idx[i], d-1)
		}
		off = off*d + idx[i]
	}
	return off, nil
}

// GetArrayCell reads an array element, implicitly dimensioning the array
// on first use if it hasn't been DIM'd yet.
func (t *Table) GetArrayCell(name string, idx []int) (value.Value, error) {
	name = t.fold(name)
	if t.d.IsStringName(name) {
		a, ok := t.arraysS[name]
		if !ok {
			t.implicitDim(name, true)
			a = t.arraysS[name]
		}
		off, err := flatIndex(a.Dims, idx)
		if err != nil {
			return value.Value{}, err
		}
		return value.OfString(a.Data[off]), nil
	}
	a, ok := t.arraysF[name]
	if !ok {
		t.implicitDim(name, false)
		a = t.arraysF[name]
	}
	off, err := flatIndex(a.Dims, idx)
	if err != nil {
		return value.Value{}, err
	}
	return value.Of(a.Data[off]), nil
}

// SetArrayCell writes an array element, implicitly dimensioning on first
// use exactly like GetArrayCell.
func (t *Table) SetArrayCell(name string, idx []int, v value.Value) error {
	name = t.fold(name)
	isString := t.d.IsStringName(name)
	if isString != v.IsString() {
		return fmt.Errorf("type mismatch assigning to %s", name)
	}
	if isString {
		a, ok := t.arraysS[name]
		if !ok {
			t.implicitDim(name, true)
			a = t.arraysS[name]
		}
		off, err := flatIndex(a.Dims, idx)
		if err != nil {
			return err
		}
		a.Data[off] = v.Str
		return nil
	}
	a, ok := t.arraysF[name]
	if !ok {
		t.implicitDim(name, false)
		a = t.arraysF[name]
	}
	off, err := flatIndex(a.Dims, idx)
	if err != nil {
		return err
	}
	a.Data[off] = v.Num
	return nil
}

// DefineFunction registers a DEF FN. name is expected already prefixed
// with "FN" (internal/parser builds it that way) so lookups from a call
// site need no special-casing.
func (t *Table) DefineFunction(name string, params []string, body ast.Expr) {
	t.funcs[t.fold(name)] = UserFunc{Params: params, Body: body}
}

// LookupFunction resolves a DEF FN by name.
func (t *Table) LookupFunction(name string) (UserFunc, bool) {
	f, ok := t.funcs[t.fold(name)]
	return f, ok
}

// HasArray reports whether name has been dimensioned (explicitly or
// implicitly) yet, used by the engine to decide whether a bare
// IDENT(...) reference is an array access at all versus a builtin/DEF FN
// call with the same spelling.
func (t *Table) HasArray(name string) bool {
	name = t.fold(name)
	_, okF := t.arraysF[name]
	_, okS := t.arraysS[name]
	return okF || okS
}

// Reset clears all scalar, array, and function state. Nothing in this
// repository calls it; the engine never resets a table mid-program.
func (t *Table) Reset() {
	t.scalarsF = map[string]float64{}
	t.scalarsS = map[string]string{}
	t.arraysF = map[string]*NumArray{}
	t.arraysS = map[string]*StrArray{}
	t.funcs = map[string]UserFunc{}
}
