package parser

import (
	"fmt"

	"github.com/GaryLuck/basic-plus/internal/ast"
	"github.com/GaryLuck/basic-plus/internal/diag"
	"github.com/GaryLuck/basic-plus/internal/lexer"
	"github.com/GaryLuck/basic-plus/internal/token"
)

// Parse lexes and parses a whole BASIC source program into an
// ast.Program, per spec.md §4.2. Syntax errors from the lexer or parser
// carry the source line and column (spec.md §7); this function recovers
// the parser's internal panics at its own boundary so callers never see
// a raw panic value, mirroring the donor's errorLoc -> panic(&crawloutException{})
// -> recovered-by-call() idiom, just collapsed to a single function call.
func Parse(source string) (*ast.Program, error) {
	toks, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}

	var prog *ast.Program
	err = func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = diag.Decode(r)
			}
		}()
		p := &parser{toks: toks}
		prog = p.parseProgram()
		return nil
	}()
	if err != nil {
		return nil, err
	}
	return prog, nil
}

func (p *parser) parseProgram() *ast.Program {
	var lines []ast.Line

	for p.cur().Kind != token.EOF {
		lines = append(lines, p.parseLine())
	}

	prog := &ast.Program{Index: map[int]int{}}

	lastNumber := -1
	for i, ln := range lines {
		if ln.Number <= lastNumber {
			p.fail("line number %d is not strictly greater than the previous line %d", ln.Number, lastNumber)
		}
		lastNumber = ln.Number
		prog.Index[ln.Number] = i
		for _, stmt := range ln.Stmts {
			if d, ok := stmt.(*ast.Data); ok {
				for _, lit := range d.Literals {
					prog.Data = append(prog.Data, ast.DataItem{
						Text:     lit.Text,
						IsQuoted: lit.IsQuoted,
						Line:     ln.Number,
					})
				}
			}
		}
	}
	prog.Lines = lines

	return prog
}

// parseLine parses LINE_NUMBER statement (':' statement)* EOL.
func (p *parser) parseLine() ast.Line {
	numTok := p.expect(token.LineNumber, "a line number")
	lineNo := int(numTok.Num)

	var stmts []ast.Stmt
	for !p.atStmtEnd() {
		stmts = append(stmts, p.parseStatement())
		if p.cur().Kind == token.Colon {
			p.advance()
			continue
		}
		break
	}
	if len(stmts) == 0 {
		p.fail("line %d has no statement", lineNo)
	}

	if p.cur().Kind != token.EOL {
		if p.cur().Kind == token.EOF {
			p.fail("unexpected end of input, expected end of line %d", lineNo)
		}
		p.fail("unexpected %s after statement", describeKind(p.cur().Kind))
	}
	p.advance() // consume EOL

	return ast.Line{Number: lineNo, Stmts: stmts}
}

func describeKind(k token.Kind) string {
	return fmt.Sprintf("token (kind %d)", k)
}
