package parser

import (
	"github.com/GaryLuck/basic-plus/internal/ast"
	"github.com/GaryLuck/basic-plus/internal/token"
)

// parseStatement parses a single statement. LET is optional per
// spec.md §4.2: if the first token isn't a recognized keyword but the
// line parses as `target '=' expr`, it's an implicit assignment.
func (p *parser) parseStatement() ast.Stmt {
	t := p.cur()

	switch t.Kind {
	case token.LET:
		p.advance()
		return p.parseLetRest(t.Line)

	case token.Ident:
		return p.parseLetRest(t.Line)

	case token.PRINT:
		p.advance()
		return p.parsePrint(t.Line)

	case token.INPUT:
		p.advance()
		return p.parseInput(t.Line)

	case token.IF:
		p.advance()
		return p.parseIf(t.Line)

	case token.FOR:
		p.advance()
		return p.parseFor(t.Line)

	case token.NEXT:
		p.advance()
		return p.parseNext(t.Line)

	case token.GOTO:
		p.advance()
		n := p.expect(token.Number, "line number after GOTO")
		return &ast.Goto{Line: t.Line, Target: int(n.Num)}

	case token.GOSUB:
		p.advance()
		n := p.expect(token.Number, "line number after GOSUB")
		return &ast.Gosub{Line: t.Line, Target: int(n.Num)}

	case token.RETURN:
		p.advance()
		return &ast.Return{Line: t.Line}

	case token.DIM:
		p.advance()
		return p.parseDim(t.Line)

	case token.DEF:
		p.advance()
		return p.parseDefFn(t.Line)

	case token.READ:
		p.advance()
		return p.parseRead(t.Line)

	case token.DATA:
		p.advance()
		return p.parseData(t.Line)

	case token.RESTORE:
		p.advance()
		return p.parseRestore(t.Line)

	case token.STOP:
		p.advance()
		return &ast.Stop{Line: t.Line}

	case token.END:
		p.advance()
		return &ast.End{Line: t.Line}

	case token.ON:
		p.advance()
		return p.parseOn(t.Line)

	case token.REM:
		p.advance()
		return &ast.Rem{Line: t.Line, Text: t.Text}

	default:
		p.fail("unexpected token at start of statement")
		return nil
	}
}

func (p *parser) parseLetRest(line int) ast.Stmt {
	target := p.parseLValue()
	p.expect(token.Eq, "'=' in assignment")
	value := p.parseExpr()
	return &ast.Let{Line: line, Target: target, Value: value}
}

func (p *parser) parsePrint(line int) ast.Stmt {
	var items []ast.PrintItem
	for {
		if p.atStmtEnd() {
			break
		}
		var it ast.PrintItem
		if p.cur().Kind != token.Comma && p.cur().Kind != token.Semi {
			it.Expr = p.parseExpr()
		}
		switch p.cur().Kind {
		case token.Comma:
			it.Sep = ast.SepComma
			p.advance()
		case token.Semi:
			it.Sep = ast.SepSemi
			p.advance()
		default:
			it.Sep = ast.SepNone
		}
		items = append(items, it)
		if it.Sep == ast.SepNone {
			break
		}
	}
	return &ast.Print{Line: line, Items: items}
}

func (p *parser) parseInput(line int) ast.Stmt {
	in := &ast.Input{Line: line}
	if p.cur().Kind == token.String {
		in.Prompt = p.cur().Str
		in.HasPrompt = true
		p.advance()
		if p.cur().Kind == token.Semi || p.cur().Kind == token.Comma {
			p.advance()
		}
	}
	in.Targets = append(in.Targets, p.parseLValue())
	for p.cur().Kind == token.Comma {
		p.advance()
		in.Targets = append(in.Targets, p.parseLValue())
	}
	return in
}

func (p *parser) parseIf(line int) ast.Stmt {
	cond := p.parseExpr()
	p.expect(token.THEN, "THEN")
	stmt := &ast.If{Line: line, Cond: cond}
	if p.cur().Kind == token.Number {
		n := p.advance()
		stmt.ThenLine = int(n.Num)
		stmt.ThenIsGoto = true
		return stmt
	}
	stmt.Then = p.parseStatement()
	return stmt
}

func (p *parser) parseFor(line int) ast.Stmt {
	name := p.expect(token.Ident, "loop variable")
	p.expect(token.Eq, "'=' after FOR variable")
	start := p.parseExpr()
	p.expect(token.TO, "TO")
	limit := p.parseExpr()
	f := &ast.For{Line: line, Var: name.Text, Start: start, Limit: limit}
	if p.cur().Kind == token.STEP {
		p.advance()
		f.Step = p.parseExpr()
	}
	return f
}

func (p *parser) parseNext(line int) ast.Stmt {
	n := &ast.Next{Line: line}
	if p.cur().Kind == token.Ident {
		n.Vars = append(n.Vars, p.advance().Text)
		for p.cur().Kind == token.Comma {
			p.advance()
			n.Vars = append(n.Vars, p.expect(token.Ident, "loop variable").Text)
		}
	}
	return n
}

func (p *parser) parseDim(line int) ast.Stmt {
	d := &ast.Dim{Line: line}
	d.Decls = append(d.Decls, p.parseDimDecl())
	for p.cur().Kind == token.Comma {
		p.advance()
		d.Decls = append(d.Decls, p.parseDimDecl())
	}
	return d
}

func (p *parser) parseDimDecl() ast.DimDecl {
	name := p.expect(token.Ident, "array name")
	p.expect(token.LParen, "'(' in DIM")
	decl := ast.DimDecl{Name: name.Text}
	decl.Dims = append(decl.Dims, p.parseExpr())
	for p.cur().Kind == token.Comma {
		p.advance()
		decl.Dims = append(decl.Dims, p.parseExpr())
	}
	p.expect(token.RParen, "')' in DIM")
	return decl
}

func (p *parser) parseDefFn(line int) ast.Stmt {
	p.expect(token.FN, "FN after DEF")
	name := p.expect(token.Ident, "function name")
	p.expect(token.LParen, "'(' in DEF FN")
	def := &ast.DefFn{Line: line, Name: "FN" + name.Text}
	def.Params = append(def.Params, p.expect(token.Ident, "parameter name").Text)
	for p.cur().Kind == token.Comma {
		p.advance()
		def.Params = append(def.Params, p.expect(token.Ident, "parameter name").Text)
	}
	p.expect(token.RParen, "')' in DEF FN")
	p.expect(token.Eq, "'=' in DEF FN")
	def.Body = p.parseExpr()
	return def
}

func (p *parser) parseRead(line int) ast.Stmt {
	r := &ast.Read{Line: line}
	r.Targets = append(r.Targets, p.parseLValue())
	for p.cur().Kind == token.Comma {
		p.advance()
		r.Targets = append(r.Targets, p.parseLValue())
	}
	return r
}

func (p *parser) parseData(line int) ast.Stmt {
	d := &ast.Data{Line: line}
	d.Literals = append(d.Literals, p.parseDataLiteral())
	for p.cur().Kind == token.Comma {
		p.advance()
		d.Literals = append(d.Literals, p.parseDataLiteral())
	}
	return d
}

func (p *parser) parseDataLiteral() ast.DataLiteral {
	t := p.cur()
	switch t.Kind {
	case token.String:
		p.advance()
		return ast.DataLiteral{Text: t.Str, IsQuoted: true}
	case token.Number:
		p.advance()
		return ast.DataLiteral{Text: t.Text}
	case token.Minus:
		p.advance()
		n := p.expect(token.Number, "number after '-' in DATA")
		return ast.DataLiteral{Text: "-" + n.Text}
	default:
		p.fail("expected a DATA literal")
		return ast.DataLiteral{}
	}
}

func (p *parser) parseRestore(line int) ast.Stmt {
	r := &ast.Restore{Line: line}
	if p.cur().Kind == token.Number {
		n := p.advance()
		r.Target = int(n.Num)
		r.HasLine = true
	}
	return r
}

func (p *parser) parseOn(line int) ast.Stmt {
	expr := p.parseExpr()
	on := &ast.On{Line: line, Expr: expr}
	switch p.cur().Kind {
	case token.GOTO:
		p.advance()
		on.Kind = ast.OnGoto
	case token.GOSUB:
		p.advance()
		on.Kind = ast.OnGosub
	default:
		p.fail("expected GOTO or GOSUB after ON expr")
	}
	on.Targets = append(on.Targets, int(p.expect(token.Number, "line number").Num))
	for p.cur().Kind == token.Comma {
		p.advance()
		on.Targets = append(on.Targets, int(p.expect(token.Number, "line number").Num))
	}
	return on
}
