// Package token defines the tagged-variant Token type spec.md §3
// describes, plus the keyword table the lexer and parser both consult.
package token

// Kind tags which variant of Token is populated.
type Kind int

const (
	EOF Kind = iota
	EOL

	LineNumber
	Number
	String
	Ident // identifier, optionally $-suffixed

	// Keywords
	LET
	PRINT
	INPUT
	IF
	THEN
	ELSE
	FOR
	TO
	STEP
	NEXT
	GOTO
	GOSUB
	RETURN
	END
	STOP
	DATA
	READ
	RESTORE
	DIM
	ON
	DEF
	FN
	AND
	OR
	NOT
	REM

	// Operators
	Plus
	Minus
	Star
	Slash
	Caret
	Eq
	NotEq
	Lt
	LtEq
	Gt
	GtEq

	// Punctuation
	Comma
	Semi
	Colon
	LParen
	RParen
)

// Token is the lexer's output unit: a tagged variant carrying a line
// number literal, numeric literal, string literal, identifier, keyword,
// operator symbol, punctuation, end-of-line, or end-of-input, per
// spec.md §3.
type Token struct {
	Kind Kind
	Text string  // raw text for Ident, upper-case spelling for keywords; also the literal form for Number
	Num  float64 // populated for Number
	Str  string  // populated for String (unquoted)
	Line int
	Col  int
}

// Keywords maps the case-folded spelling of every reserved word to its
// Kind. Populated by init, mirroring the donor's use of a static keyword
// table consulted by the lexer (definitions.go's bifsHack table and the
// registry-style lookup in _examples/original_source/basic_keyword_registry.rs).
var Keywords = map[string]Kind{
	"LET":     LET,
	"PRINT":   PRINT,
	"INPUT":   INPUT,
	"IF":      IF,
	"THEN":    THEN,
	"ELSE":    ELSE,
	"FOR":     FOR,
	"TO":      TO,
	"STEP":    STEP,
	"NEXT":    NEXT,
	"GOTO":    GOTO,
	"GOSUB":   GOSUB,
	"RETURN":  RETURN,
	"END":     END,
	"STOP":    STOP,
	"DATA":    DATA,
	"READ":    READ,
	"RESTORE": RESTORE,
	"DIM":     DIM,
	"ON":      ON,
	"DEF":     DEF,
	"FN":      FN,
	"AND":     AND,
	"OR":      OR,
	"NOT":     NOT,
	"REM":     REM,
}

// OrderedKeywords lists keyword spellings longest-first, the order the
// lexer must try them in so that e.g. "GOTO" is matched before "GO"
// would be (no such collision exists here, but "STEP" must be tried
// before any identifier-prefix scan could otherwise claim "STE"). Built
// once by init from Keywords.
var OrderedKeywords []string

func init() {
	OrderedKeywords = make([]string, 0, len(Keywords))
	for k := range Keywords {
		OrderedKeywords = append(OrderedKeywords, k)
	}
	// Longest-first insertion sort; the table is small and static.
	for i := 1; i < len(OrderedKeywords); i++ {
		for j := i; j > 0 && len(OrderedKeywords[j]) > len(OrderedKeywords[j-1]); j-- {
			OrderedKeywords[j], OrderedKeywords[j-1] = OrderedKeywords[j-1], OrderedKeywords[j]
		}
	}
}

// IsKeyword reports whether s (already case-folded) names a keyword.
func IsKeyword(s string) (Kind, bool) {
	k, ok := Keywords[s]
	return k, ok
}
