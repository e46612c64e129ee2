package engine

import (
	"strings"

	"github.com/GaryLuck/basic-plus/internal/ast"
	"github.com/GaryLuck/basic-plus/internal/builtin"
	"github.com/GaryLuck/basic-plus/internal/diag"
	"github.com/GaryLuck/basic-plus/internal/eval"
	"github.com/GaryLuck/basic-plus/internal/symtab"
	"github.com/GaryLuck/basic-plus/internal/value"
)

// Eval walks an expression tree, resolving VarRef/Call through the
// symbol table, the DEF FN parameter overlay, and the builtin registry,
// and dispatching operators to internal/eval. Grounded on the donor's
// rpn-stack evaluator in basic.go, adapted to recurse over a tree instead
// of popping an RPN stack.
func (e *Engine) Eval(expr ast.Expr) value.Value {
	switch x := expr.(type) {
	case *ast.NumberLit:
		return value.Of(x.Value)
	case *ast.StringLit:
		return value.OfString(x.Value)
	case *ast.VarRef:
		return e.lookupScalar(x.Name)
	case *ast.Call:
		return e.evalCall(x)
	case *ast.UnaryExpr:
		line, _ := x.Pos()
		v := e.Eval(x.X)
		r, err := eval.Unary(x.Op, v)
		if err != nil {
			diag.Raise(line, e.PC.Stmt, "type error", "%s", err)
		}
		return r
	case *ast.BinaryExpr:
		line, _ := x.Pos()
		a := e.Eval(x.X)
		b := e.Eval(x.Y)
		r, err := eval.Binary(x.Op, a, b)
		if err != nil {
			kind := "type error"
			if _, ok := err.(*eval.RuntimeError); ok {
				kind = "arithmetic error"
			}
			diag.Raise(line, e.PC.Stmt, kind, "%s", err)
		}
		return r
	default:
		diag.Fatal("unhandled expression type %T", expr)
		return value.Value{}
	}
}

// lookupScalar checks the innermost DEF FN parameter overlay before
// falling through to the symbol table, so a function body's use of its
// own parameter name shadows any same-named global scalar.
func (e *Engine) lookupScalar(name string) value.Value {
	folded := strings.ToUpper(name)
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if v, ok := e.scopes[i][folded]; ok {
			return v
		}
	}
	return e.Sym.GetScalar(name)
}

// evalCall resolves the three things a parenthesized IDENT(...) can mean
// once the symbol table and registry are consulted: a DEF FN call (only
// with an explicit "FN" prefix), an array element reference (if the name
// is already a known array), or a builtin function call. An unknown name
// that is neither a builtin nor an FN defaults to an array reference,
// implicitly dimensioned on first use, per spec.md §3.
func (e *Engine) evalCall(c *ast.Call) value.Value {
	line, _ := c.Pos()
	upper := strings.ToUpper(c.Name)

	if strings.HasPrefix(upper, "FN") {
		if fn, ok := e.Sym.LookupFunction(c.Name); ok {
			return e.callUserFunc(line, fn, c.Args)
		}
	}

	if e.Sym.HasArray(c.Name) {
		idx := e.evalSubscripts(line, c.Args)
		v, err := e.Sym.GetArrayCell(c.Name, idx)
		if err != nil {
			diag.Raise(line, e.PC.Stmt, "subscript error", "%s", err)
		}
		return v
	}

	if builtin.IsBuiltin(upper) {
		return e.callBuiltin(line, upper, c.Args)
	}

	idx := e.evalSubscripts(line, c.Args)
	v, err := e.Sym.GetArrayCell(c.Name, idx)
	if err != nil {
		diag.Raise(line, e.PC.Stmt, "subscript error", "%s", err)
	}
	return v
}

// callUserFunc evaluates a DEF FN call: each argument is evaluated in the
// caller's scope, then bound under the function's parameter names in a
// fresh overlay the body expression is evaluated against. A body may call
// an FN function, itself included; nesting deeper than 256 calls is a
// runtime error rather than unbounded recursion.
func (e *Engine) callUserFunc(line int, fn symtab.UserFunc, args []ast.Expr) value.Value {
	diag.RuntimeCheck(len(args) == len(fn.Params), line, e.PC.Stmt, "bad argument",
		"function expects %d argument(s), got %d", len(fn.Params), len(args))
	diag.RuntimeCheck(len(e.scopes) < 256, line, e.PC.Stmt, "recursion",
		"DEF FN calls nested more than 256 deep")
	scope := make(map[string]value.Value, len(fn.Params))
	for i, p := range fn.Params {
		scope[strings.ToUpper(p)] = e.Eval(args[i])
	}
	e.scopes = append(e.scopes, scope)
	defer func() { e.scopes = e.scopes[:len(e.scopes)-1] }()
	return e.Eval(fn.Body)
}

func (e *Engine) callBuiltin(line int, name string, argExprs []ast.Expr) value.Value {
	if name == "RND" {
		return e.evalRND(argExprs, line)
	}
	args := make([]value.Value, len(argExprs))
	for i, a := range argExprs {
		args[i] = e.Eval(a)
	}
	if err := builtin.CheckArity(name, len(args)); err != nil {
		diag.Raise(line, e.PC.Stmt, "bad argument", "%s", err)
	}
	def := builtin.Registry[name]
	v, err := def.Fn(args)
	if err != nil {
		diag.Raise(line, e.PC.Stmt, "bad argument", "%s", err)
	}
	return v
}
