// Package parser implements the recursive-descent parser spec.md §4.2
// describes, producing an internal/ast.Program. The donor's parser is
// yacc-generated (definitions.go references yyParse/yyLex/yySymType),
// and the generated grammar table itself is not present anywhere in the
// pack — only the hand-written lexer/action glue is — so this parser is
// hand-written against spec.md's grammar directly, in the same
// panic-on-error-then-recover style the donor uses for its own parse
// failures (errorLoc -> panic(&crawloutException{})).
package parser

import (
	"fmt"

	"github.com/GaryLuck/basic-plus/internal/ast"
	"github.com/GaryLuck/basic-plus/internal/diag"
	"github.com/GaryLuck/basic-plus/internal/token"
)

type parser struct {
	toks []token.Token
	pos  int
}

func (p *parser) cur() token.Token { return p.toks[p.pos] }
func (p *parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) fail(format string, args ...any) {
	t := p.cur()
	panic(&diag.SyntaxError{Line: t.Line, Col: t.Col, Msg: fmt.Sprintf(format, args...)})
}

func (p *parser) expect(k token.Kind, what string) token.Token {
	if p.cur().Kind != k {
		p.fail("expected %s", what)
	}
	return p.advance()
}

func (p *parser) atStmtEnd() bool {
	k := p.cur().Kind
	return k == token.EOL || k == token.Colon || k == token.EOF
}

// ---- expression grammar ----
//
// expr      := or_expr
// or_expr   := and_expr (OR and_expr)*
// and_expr  := not_expr (AND not_expr)*
// not_expr  := NOT not_expr | rel_expr
// rel_expr  := add_expr ((= | <> | < | <= | > | >=) add_expr)?
// add_expr  := mul_expr ((+|-) mul_expr)*
// mul_expr  := pow_expr ((*|/) pow_expr)*
// pow_expr  := unary (^ pow_expr)?        -- right-associative
// unary     := '-' unary | primary
// primary   := NUMBER | STRING | call | var | '(' expr ')'
// call      := IDENT '(' expr (',' expr)* ')'
// var       := IDENT

func (p *parser) parseExpr() ast.Expr { return p.parseOr() }

func (p *parser) parseOr() ast.Expr {
	x := p.parseAnd()
	for p.cur().Kind == token.OR {
		t := p.advance()
		y := p.parseAnd()
		x = ast.NewBinary(t.Line, t.Col, token.OR, x, y)
	}
	return x
}

func (p *parser) parseAnd() ast.Expr {
	x := p.parseNot()
	for p.cur().Kind == token.AND {
		t := p.advance()
		y := p.parseNot()
		x = ast.NewBinary(t.Line, t.Col, token.AND, x, y)
	}
	return x
}

func (p *parser) parseNot() ast.Expr {
	if p.cur().Kind == token.NOT {
		t := p.advance()
		x := p.parseNot()
		return ast.NewUnary(t.Line, t.Col, token.NOT, x)
	}
	return p.parseRel()
}

func isRelOp(k token.Kind) bool {
	switch k {
	case token.Eq, token.NotEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return true
	}
	return false
}

func (p *parser) parseRel() ast.Expr {
	x := p.parseAdd()
	if isRelOp(p.cur().Kind) {
		t := p.advance()
		y := p.parseAdd()
		return ast.NewBinary(t.Line, t.Col, t.Kind, x, y)
	}
	return x
}

func (p *parser) parseAdd() ast.Expr {
	x := p.parseMul()
	for p.cur().Kind == token.Plus || p.cur().Kind == token.Minus {
		t := p.advance()
		y := p.parseMul()
		x = ast.NewBinary(t.Line, t.Col, t.Kind, x, y)
	}
	return x
}

func (p *parser) parseMul() ast.Expr {
	x := p.parsePow()
	for p.cur().Kind == token.Star || p.cur().Kind == token.Slash {
		t := p.advance()
		y := p.parsePow()
		x = ast.NewBinary(t.Line, t.Col, t.Kind, x, y)
	}
	return x
}

func (p *parser) parsePow() ast.Expr {
	x := p.parseUnary()
	if p.cur().Kind == token.Caret {
		t := p.advance()
		y := p.parsePow() // right-associative
		return ast.NewBinary(t.Line, t.Col, token.Caret, x, y)
	}
	return x
}

func (p *parser) parseUnary() ast.Expr {
	if p.cur().Kind == token.Minus {
		t := p.advance()
		x := p.parseUnary()
		return ast.NewUnary(t.Line, t.Col, token.Minus, x)
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() ast.Expr {
	t := p.cur()
	switch t.Kind {
	case token.Number:
		p.advance()
		return ast.NewNumberLit(t.Line, t.Col, t.Num)

	case token.String:
		p.advance()
		return ast.NewStringLit(t.Line, t.Col, t.Str)

	case token.Ident:
		p.advance()
		if p.cur().Kind == token.LParen {
			return p.parseCallArgs(t.Line, t.Col, t.Text)
		}
		return ast.NewVarRef(t.Line, t.Col, t.Text)

	case token.FN:
		p.advance()
		name := p.expect(token.Ident, "function name after FN")
		return p.parseCallArgs(t.Line, t.Col, "FN"+name.Text)

	case token.LParen:
		p.advance()
		x := p.parseExpr()
		p.expect(token.RParen, "')'")
		return x

	default:
		p.fail("unexpected token in expression")
		return nil
	}
}

// parseCallArgs parses '(' expr (',' expr)* ')' having already consumed
// the callee name.
func (p *parser) parseCallArgs(line, col int, name string) ast.Expr {
	p.expect(token.LParen, "'('")
	args := []ast.Expr{p.parseExpr()}
	for p.cur().Kind == token.Comma {
		p.advance()
		args = append(args, p.parseExpr())
	}
	p.expect(token.RParen, "')'")
	return ast.NewCall(line, col, name, args)
}

// parseLValue parses a scalar or array-cell assignment target: an
// identifier, optionally followed by a subscript list. It reuses the
// call-args grammar because the parser cannot distinguish an array
// reference from a user/builtin function call without symbol-table
// context (spec.md §4.2's call production note).
func (p *parser) parseLValue() ast.Expr {
	t := p.expect(token.Ident, "variable name")
	if p.cur().Kind == token.LParen {
		return p.parseCallArgs(t.Line, t.Col, t.Text)
	}
	return ast.NewVarRef(t.Line, t.Col, t.Text)
}
