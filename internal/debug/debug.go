// Package debug implements the breakpoint/single-step/coverage overlay
// spec.md §4.7 describes. It depends only on internal/pcounter, not
// internal/engine, so internal/engine.Hooks can be satisfied structurally
// without either package importing the other.
package debug

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/GaryLuck/basic-plus/internal/ast"
	"github.com/GaryLuck/basic-plus/internal/pcounter"
)

// Session tracks breakpoints, single-step state, and per-statement hit
// counts for one program run. Grounded on the donor's breakpoint map and
// step-trace flag in basic.go's REPL command loop, generalized here into
// a reusable overlay instead of globals.
type Session struct {
	Prog *ast.Program

	breakLines map[int]bool
	stepMode   bool

	// Hits maps a line NUMBER to a per-statement hit-count slice, not a
	// set of booleans — spec.md §4.7 requires counts, so a statement run
	// a thousand times reports 1000, not true.
	Hits map[int][]int

	// Paused reports the PC execution stopped at, once BeforeStep returns
	// true, for an embedding driver to inspect. cmd/basic sets no
	// breakpoints and does not read it.
	Paused pcounter.PC
}

// NewSession constructs an empty debug overlay for prog.
func NewSession(prog *ast.Program) *Session {
	return &Session{
		Prog:       prog,
		breakLines: map[int]bool{},
		Hits:       map[int][]int{},
	}
}

// SetBreakpoint arms a breakpoint at the given source line number.
func (s *Session) SetBreakpoint(lineNumber int) { s.breakLines[lineNumber] = true }

// ClearBreakpoint disarms a breakpoint at the given source line number.
func (s *Session) ClearBreakpoint(lineNumber int) { delete(s.breakLines, lineNumber) }

// StepOne arms single-step mode: the next statement executed pauses
// execution regardless of breakpoints.
func (s *Session) StepOne() { s.stepMode = true }

// Continue disarms single-step mode so execution runs until the next
// breakpoint or the program ends.
func (s *Session) Continue() { s.stepMode = false }

// BeforeStep implements engine.Hooks: it pauses on single-step mode or
// when pc's line number carries an armed breakpoint.
func (s *Session) BeforeStep(pc pcounter.PC) bool {
	if s.stepMode {
		s.stepMode = false
		s.Paused = pc
		return true
	}
	lineNumber := s.Prog.Lines[pc.Line].Number
	if s.breakLines[lineNumber] {
		s.Paused = pc
		return true
	}
	return false
}

// AfterStep implements engine.Hooks: it increments the hit counter for
// the statement that just ran, growing the per-line slice as needed.
func (s *Session) AfterStep(pc pcounter.PC) {
	lineNumber := s.Prog.Lines[pc.Line].Number
	counts, ok := s.Hits[lineNumber]
	if !ok {
		counts = make([]int, len(s.Prog.Lines[pc.Line].Stmts))
		s.Hits[lineNumber] = counts
	}
	if pc.Stmt >= len(counts) {
		grown := make([]int, pc.Stmt+1)
		copy(grown, counts)
		counts = grown
	}
	counts[pc.Stmt]++
	s.Hits[lineNumber] = counts
}

// report is the on-disk JSON shape spec.md §4.7 fixes exactly: a "lines"
// object keyed by the line number as a string (JSON object keys are
// always strings) mapping to its per-statement hit-count array, plus a
// "meta" object carrying the source path and a timestamp.
type report struct {
	Lines map[string][]int `json:"lines"`
	Meta  meta             `json:"meta"`
}

type meta struct {
	SourcePath string `json:"source_path"`
	Timestamp  string `json:"timestamp"`
}

// Save writes the coverage overlay as JSON per spec.md §4.7's schema.
func (s *Session) Save(w io.Writer, sourcePath, timestamp string) error {
	r := report{Lines: map[string][]int{}, Meta: meta{SourcePath: sourcePath, Timestamp: timestamp}}
	for line, counts := range s.Hits {
		r.Lines[fmt.Sprintf("%d", line)] = counts
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Load merges a previously saved coverage file into this session's hit
// counts by summation, per spec.md §4.7's "loading a coverage file adds
// to, rather than replaces, in-memory counts" rule — so repeated runs
// against the same coverage file accumulate totals across invocations.
func (s *Session) Load(r io.Reader) error {
	var rep report
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return err
	}
	for lineText, counts := range rep.Lines {
		var line int
		if _, err := fmt.Sscanf(lineText, "%d", &line); err != nil {
			return fmt.Errorf("coverage file: bad line key %q: %w", lineText, err)
		}
		existing := s.Hits[line]
		merged := make([]int, max(len(existing), len(counts)))
		copy(merged, existing)
		for i, c := range counts {
			merged[i] += c
		}
		s.Hits[line] = merged
	}
	return nil
}
