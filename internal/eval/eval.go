// Package eval implements the operator layer spec.md §4.4 describes:
// binary/unary evaluation with BASIC's type rules. It is grounded on the
// donor's numericOps/stringOps token classification tables
// (definitions.go) and its RPN-stack type-coercion helpers (rpnPopFloat,
// rpnPopString, rpnPopTwoNumbers, rpnPopTwoStrings in basic.go) — this
// package evaluates a tree instead of an RPN stack, but keeps the same
// per-operator type dispatch and the same runtime-error occasions
// (division by zero, negative base with a non-integer exponent, mixed-
// type arithmetic).
package eval

import (
	"fmt"
	"math"

	"github.com/GaryLuck/basic-plus/internal/token"
	"github.com/GaryLuck/basic-plus/internal/value"
)

// TypeError reports a BASIC type mismatch — the operator layer's
// subcategory of runtime error, per spec.md §7.
type TypeError struct{ Msg string }

func (e *TypeError) Error() string { return e.Msg }

// RuntimeError reports an arithmetic fault (division by zero, invalid
// exponentiation) rather than a type mismatch.
type RuntimeError struct{ Msg string }

func (e *RuntimeError) Error() string { return e.Msg }

// Binary applies a binary operator to two already-evaluated operands,
// enforcing spec.md §4.4's type rules.
func Binary(op token.Kind, a, b value.Value) (value.Value, error) {
	switch op {
	case token.Plus:
		if a.IsString() && b.IsString() {
			return value.OfString(a.Str + b.Str), nil
		}
		if a.IsString() || b.IsString() {
			return value.Value{}, &TypeError{"operands to + must both be numbers or both be strings"}
		}
		return value.Of(a.Num + b.Num), nil

	case token.Minus, token.Star, token.Slash, token.Caret:
		if a.IsString() || b.IsString() {
			return value.Value{}, &TypeError{fmt.Sprintf("%s requires numeric operands", opName(op))}
		}
		return arith(op, a.Num, b.Num)

	case token.Eq, token.NotEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return relational(op, a, b)

	case token.AND:
		if a.IsString() || b.IsString() {
			return value.Value{}, &TypeError{"AND requires numeric operands"}
		}
		return value.Bool(a.Truthy() && b.Truthy()), nil
	case token.OR:
		if a.IsString() || b.IsString() {
			return value.Value{}, &TypeError{"OR requires numeric operands"}
		}
		return value.Bool(a.Truthy() || b.Truthy()), nil

	default:
		return value.Value{}, &TypeError{fmt.Sprintf("unsupported binary operator %v", op)}
	}
}

func arith(op token.Kind, x, y float64) (value.Value, error) {
	switch op {
	case token.Minus:
		return value.Of(x - y), nil
	case token.Star:
		return value.Of(x * y), nil
	case token.Slash:
		if y == 0 {
			return value.Value{}, &RuntimeError{"division by zero"}
		}
		return value.Of(x / y), nil
	case token.Caret:
		if x < 0 && y != math.Trunc(y) {
			return value.Value{}, &RuntimeError{"negative base with a non-integer exponent"}
		}
		return value.Of(math.Pow(x, y)), nil
	}
	return value.Value{}, &TypeError{"unreachable arithmetic operator"}
}

func relational(op token.Kind, a, b value.Value) (value.Value, error) {
	if a.IsString() != b.IsString() {
		return value.Value{}, &TypeError{"relational operators require same-typed operands"}
	}
	var cmp int
	if a.IsString() {
		// Lexicographic by code unit, per spec.md §8's boundary behavior.
		switch {
		case a.Str < b.Str:
			cmp = -1
		case a.Str > b.Str:
			cmp = 1
		}
	} else {
		switch {
		case a.Num < b.Num:
			cmp = -1
		case a.Num > b.Num:
			cmp = 1
		}
	}
	switch op {
	case token.Eq:
		return value.Bool(cmp == 0), nil
	case token.NotEq:
		return value.Bool(cmp != 0), nil
	case token.Lt:
		return value.Bool(cmp < 0), nil
	case token.LtEq:
		return value.Bool(cmp <= 0), nil
	case token.Gt:
		return value.Bool(cmp > 0), nil
	case token.GtEq:
		return value.Bool(cmp >= 0), nil
	}
	return value.Value{}, &TypeError{"unreachable relational operator"}
}

// Unary applies a unary prefix operator ('-' or NOT) per spec.md §4.4.
func Unary(op token.Kind, x value.Value) (value.Value, error) {
	switch op {
	case token.Minus:
		if x.IsString() {
			return value.Value{}, &TypeError{"unary - requires a numeric operand"}
		}
		return value.Of(-x.Num), nil
	case token.NOT:
		if x.IsString() {
			return value.Value{}, &TypeError{"NOT requires a numeric operand"}
		}
		return value.Bool(!x.Truthy()), nil
	default:
		return value.Value{}, &TypeError{fmt.Sprintf("unsupported unary operator %v", op)}
	}
}

func opName(op token.Kind) string {
	switch op {
	case token.Minus:
		return "-"
	case token.Star:
		return "*"
	case token.Slash:
		return "/"
	case token.Caret:
		return "^"
	default:
		return "?"
	}
}
