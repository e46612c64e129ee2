// Package lexer tokenizes BASIC source text a line at a time, as
// spec.md §4.1 requires. It is hand-written rather than built on
// text/scanner (the donor's approach in lexer.go): text/scanner scans
// identifiers to a word boundary and so cannot split "LETX=5" into
// LET, X, =, 5 — it would hand back one identifier token "LETX". This
// lexer instead tries the registry's keywords, longest first, as a
// prefix match at every position, falling through to number/string/
// identifier scanning only when no keyword matches, which is what
// space-free BASIC syntax requires.
package lexer

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/GaryLuck/basic-plus/internal/diag"
	"github.com/GaryLuck/basic-plus/internal/token"
)

// Tokenize lexes an entire source program into a flat token stream: one
// LineNumber token followed by that line's tokens followed by an EOL
// token, repeated per line, terminated by a single EOF token. Blank
// (whitespace-only) lines emit nothing. A line holding only a line
// number emits LineNumber + EOL; the parser rejects it as a syntax error,
// since every line needs at least one statement.
func Tokenize(source string) ([]token.Token, error) {
	var out []token.Token
	lineNo := 0

	for _, raw := range strings.Split(source, "\n") {
		lineNo++
		line := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		toks, err := tokenizeLine(line, lineNo)
		if err != nil {
			return nil, err
		}
		out = append(out, toks...)
	}

	out = append(out, token.Token{Kind: token.EOF, Line: lineNo + 1, Col: 1})
	return out, nil
}

// tokenizeLine lexes one physical source line into its LineNumber token,
// body tokens, and trailing EOL token.
func tokenizeLine(line string, lineNo int) ([]token.Token, error) {
	l := &lineLexer{src: line, line: lineNo}

	l.skipSpace()
	numStart := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos == numStart {
		return nil, &diag.SyntaxError{Line: lineNo, Col: 1, Msg: "line does not begin with a line number"}
	}
	n, _ := strconv.Atoi(l.src[numStart:l.pos])
	toks := []token.Token{{Kind: token.LineNumber, Num: float64(n), Line: lineNo, Col: 1}}

	l.skipSpace()

	// The `N @EXPECT_EXIT_CODE=K` test-harness directive is a comment as
	// far as the interpreter is concerned, per spec.md §6. Like REM, it
	// still yields one no-op statement on its line rather than an empty
	// statement list, so the engine has something to execute there.
	if l.pos < len(l.src) && l.src[l.pos] == '@' {
		text := l.src[l.pos:]
		toks = append(toks, token.Token{Kind: token.REM, Text: text, Line: lineNo, Col: l.pos + 1})
		return append(toks, token.Token{Kind: token.EOL, Line: lineNo, Col: len(l.src) + 1}), nil
	}

	for {
		l.skipSpace()
		if l.pos >= len(l.src) {
			break
		}
		t, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
		if t.Kind == token.REM {
			// REM switches to end-of-line-literal mode: everything
			// after it (already consumed into t.Text by next()) is
			// the comment; nothing more to lex on this line.
			break
		}
	}

	toks = append(toks, token.Token{Kind: token.EOL, Line: lineNo, Col: l.pos + 1})
	return toks, nil
}

type lineLexer struct {
	src  string
	pos  int
	line int
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool { return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') }
func isAlnum(c byte) bool { return isAlpha(c) || isDigit(c) }

func (l *lineLexer) skipSpace() {
	for l.pos < len(l.src) && (l.src[l.pos] == ' ' || l.src[l.pos] == '\t') {
		l.pos++
	}
}

// next scans one token starting at l.pos, which is guaranteed to be
// non-space and within bounds.
func (l *lineLexer) next() (token.Token, error) {
	col := l.pos + 1
	rest := l.src[l.pos:]

	// Keyword match: longest spelling that is a prefix of the remaining
	// input, tried before anything else. This is what makes "LETX=5"
	// lex as LET, X, =, 5 rather than failing to find a word boundary;
	// it is also what makes a variable named e.g. "FORMAT" lex as
	// FOR, MAT if MAT were ever a keyword — an accepted quirk of this
	// style of BASIC tokenizer, not a bug.
	upper := strings.ToUpper(rest)
	for _, kw := range token.OrderedKeywords {
		if strings.HasPrefix(upper, kw) {
			kind := token.Keywords[kw]
			l.pos += len(kw)
			if kind == token.REM {
				text := l.src[l.pos:]
				l.pos = len(l.src)
				return token.Token{Kind: token.REM, Text: text, Line: l.line, Col: col}, nil
			}
			return token.Token{Kind: kind, Text: kw, Line: l.line, Col: col}, nil
		}
	}

	c := l.src[l.pos]

	switch {
	case isDigit(c) || (c == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1])):
		return l.lexNumber(col)

	case c == '"':
		return l.lexString(col)

	case isAlpha(c):
		return l.lexIdent(col)

	default:
		return l.lexOperator(col)
	}
}

func (l *lineLexer) lexNumber(col int) (token.Token, error) {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		save := l.pos
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		if l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		} else {
			l.pos = save
		}
	}
	text := l.src[start:l.pos]
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token.Token{}, &diag.SyntaxError{Line: l.line, Col: col, Msg: "malformed numeric literal " + text}
	}
	return token.Token{Kind: token.Number, Num: n, Text: text, Line: l.line, Col: col}, nil
}

func (l *lineLexer) lexString(col int) (token.Token, error) {
	l.pos++ // opening quote
	start := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != '"' {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return token.Token{}, &diag.SyntaxError{Line: l.line, Col: col, Msg: "unterminated string literal"}
	}
	text := l.src[start:l.pos]
	l.pos++ // closing quote
	return token.Token{Kind: token.String, Str: text, Line: l.line, Col: col}, nil
}

func (l *lineLexer) lexIdent(col int) (token.Token, error) {
	start := l.pos
	for l.pos < len(l.src) && isAlnum(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '$' {
		l.pos++
	}
	text := l.src[start:l.pos]
	return token.Token{Kind: token.Ident, Text: text, Line: l.line, Col: col}, nil
}

func (l *lineLexer) lexOperator(col int) (token.Token, error) {
	two := ""
	if l.pos+1 < len(l.src) {
		two = l.src[l.pos : l.pos+2]
	}
	switch two {
	case "<>":
		l.pos += 2
		return token.Token{Kind: token.NotEq, Text: two, Line: l.line, Col: col}, nil
	case "<=":
		l.pos += 2
		return token.Token{Kind: token.LtEq, Text: two, Line: l.line, Col: col}, nil
	case ">=":
		l.pos += 2
		return token.Token{Kind: token.GtEq, Text: two, Line: l.line, Col: col}, nil
	}

	c := l.src[l.pos]
	l.pos++
	switch c {
	case '+':
		return token.Token{Kind: token.Plus, Text: "+", Line: l.line, Col: col}, nil
	case '-':
		return token.Token{Kind: token.Minus, Text: "-", Line: l.line, Col: col}, nil
	case '*':
		return token.Token{Kind: token.Star, Text: "*", Line: l.line, Col: col}, nil
	case '/':
		return token.Token{Kind: token.Slash, Text: "/", Line: l.line, Col: col}, nil
	case '^':
		return token.Token{Kind: token.Caret, Text: "^", Line: l.line, Col: col}, nil
	case '=':
		return token.Token{Kind: token.Eq, Text: "=", Line: l.line, Col: col}, nil
	case '<':
		return token.Token{Kind: token.Lt, Text: "<", Line: l.line, Col: col}, nil
	case '>':
		return token.Token{Kind: token.Gt, Text: ">", Line: l.line, Col: col}, nil
	case ',':
		return token.Token{Kind: token.Comma, Text: ",", Line: l.line, Col: col}, nil
	case ';':
		return token.Token{Kind: token.Semi, Text: ";", Line: l.line, Col: col}, nil
	case ':':
		return token.Token{Kind: token.Colon, Text: ":", Line: l.line, Col: col}, nil
	case '(':
		return token.Token{Kind: token.LParen, Text: "(", Line: l.line, Col: col}, nil
	case ')':
		return token.Token{Kind: token.RParen, Text: ")", Line: l.line, Col: col}, nil
	default:
		if unicode.IsSpace(rune(c)) {
			return token.Token{}, &diag.SyntaxError{Line: l.line, Col: col, Msg: "unexpected whitespace"}
		}
		return token.Token{}, &diag.SyntaxError{Line: l.line, Col: col, Msg: "unknown character " + string(c)}
	}
}
