// Package ast defines the Expression and Statement trees spec.md §3
// describes, and the Program they're assembled into. The tree is kept
// free of interpreter-only annotations (no ForFrame templates baked into
// statement nodes, no symbol-table pointers) per spec.md §9's separation
// note, so it could in principle be consumed by an out-of-scope backend.
package ast

import "github.com/GaryLuck/basic-plus/internal/token"

// Expr is a node in an expression tree: numeric/string constants,
// variable references, array element references, user-function/builtin
// calls, and unary/binary operator nodes.
type Expr interface {
	Pos() (line, col int)
}

type pos struct{ Line, Col int }

func (p pos) Pos() (int, int) { return p.Line, p.Col }

// NumberLit is a numeric literal leaf.
type NumberLit struct {
	pos
	Value float64
}

// StringLit is a string literal leaf.
type StringLit struct {
	pos
	Value string
}

// VarRef is a bare scalar variable reference (no subscript/call parens).
type VarRef struct {
	pos
	Name string
}

// Call is a parenthesized reference: IDENT '(' expr (',' expr)* ')'.
// Per spec.md §4.2 this is resolved at execution time as a built-in
// function call, an array element reference, or a DEF FN call — the AST
// does not disambiguate.
type Call struct {
	pos
	Name string
	Args []Expr
}

// UnaryExpr is a unary prefix node: '-' or NOT.
type UnaryExpr struct {
	pos
	Op token.Kind
	X  Expr
}

// BinaryExpr is a binary operator node tagged with the operator kind.
type BinaryExpr struct {
	pos
	Op token.Kind
	X  Expr
	Y  Expr
}

func NewNumberLit(line, col int, v float64) *NumberLit { return &NumberLit{pos{line, col}, v} }
func NewStringLit(line, col int, v string) *StringLit  { return &StringLit{pos{line, col}, v} }
func NewVarRef(line, col int, name string) *VarRef      { return &VarRef{pos{line, col}, name} }
func NewCall(line, col int, name string, args []Expr) *Call {
	return &Call{pos{line, col}, name, args}
}
func NewUnary(line, col int, op token.Kind, x Expr) *UnaryExpr {
	return &UnaryExpr{pos{line, col}, op, x}
}
func NewBinary(line, col int, op token.Kind, x, y Expr) *BinaryExpr {
	return &BinaryExpr{pos{line, col}, op, x, y}
}
