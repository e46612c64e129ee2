package ast

// Line is one source line: its number and the statements on it,
// separated by ':'.
type Line struct {
	Number int
	Stmts  []Stmt
}

// DataItem is one harvested DATA literal, tagged with the line number it
// came from so RESTORE n can find "the first datum originating from a
// line >= n" per spec.md §4.6.
type DataItem struct {
	Text     string
	IsQuoted bool
	Line     int
}

// Program is the parser's output: an ordered sequence of (line_number,
// statements) pairs sorted ascending by line_number, with an auxiliary
// map from line_number to its index for O(1) jump resolution, plus the
// flattened DataPool harvested from every DATA statement at parse time.
// Per spec.md §3's invariants, line numbers are strictly increasing and
// unique — the parser enforces this before returning a Program.
type Program struct {
	Lines []Line
	Index map[int]int // line_number -> index into Lines
	Data  []DataItem
}

// LineIndex resolves a line number to its index into Lines, reporting
// whether it exists. This is the "total function on the set of line
// numbers" spec.md §8 invariant 1 requires for every GOTO target that
// actually appears in the parsed program — it is a partial function over
// all integers, total only when restricted to targets present at parse
// time. The parser does not check GOTO/GOSUB/ON targets; the engine
// resolves each one when it jumps and raises an "undefined line" runtime
// error for a missing target.
func (p *Program) LineIndex(lineNumber int) (int, bool) {
	idx, ok := p.Index[lineNumber]
	return idx, ok
}

// StmtAt fetches the statement at a program counter position, or nil if
// the position is terminal (pc.Line >= len(p.Lines)).
func (p *Program) StmtAt(lineIdx, stmtIdx int) Stmt {
	if lineIdx < 0 || lineIdx >= len(p.Lines) {
		return nil
	}
	stmts := p.Lines[lineIdx].Stmts
	if stmtIdx < 0 || stmtIdx >= len(stmts) {
		return nil
	}
	return stmts[stmtIdx]
}
