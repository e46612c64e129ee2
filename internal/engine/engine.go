// Package engine implements the execution engine spec.md §4.6 describes:
// a tree-walking interpreter driven by a program counter over
// ast.Program, with a shared control stack for FOR/NEXT and GOSUB/RETURN
// frames, a DATA cursor, and PRINT column state. Grounded on the donor's
// execute.go dispatch loop (the big switch in basic.go's run() driving
// r.pc forward) and its runtime-error occasions (runtimeCheck calls
// scattered through executeFor/executeNext/executeGoto/executeGosub/
// executeReturn/executeOn).
package engine

import (
	"bufio"
	"io"
	"math/rand"

	"github.com/GaryLuck/basic-plus/internal/ast"
	"github.com/GaryLuck/basic-plus/internal/diag"
	"github.com/GaryLuck/basic-plus/internal/dialect"
	"github.com/GaryLuck/basic-plus/internal/pcounter"
	"github.com/GaryLuck/basic-plus/internal/symtab"
	"github.com/GaryLuck/basic-plus/internal/value"
)

// Hooks lets internal/debug observe and interrupt execution without
// internal/engine importing internal/debug (avoiding an import cycle,
// since internal/debug's PC type lives in internal/pcounter instead).
type Hooks interface {
	// BeforeStep is called before the statement at pc executes. Returning
	// true pauses the run (a breakpoint hit or a single-step request).
	BeforeStep(pc pcounter.PC) bool
	// AfterStep is called once the statement at pc has executed
	// successfully, for coverage hit-counting.
	AfterStep(pc pcounter.PC)
}

// GosubFrame records a pending GOSUB's return position.
type GosubFrame struct {
	Return pcounter.PC
}

// ForFrame records one active FOR loop: the loop variable, its bounds,
// and the PC to jump back to (the statement immediately after FOR).
type ForFrame struct {
	Var   string
	Limit float64
	Step  float64
	Body  pcounter.PC
}

// StopReason reports why Run returned.
type StopReason int

const (
	StopNormalEnd StopReason = iota // ran off the end of the program
	StopEnd                         // END statement
	StopStop                        // STOP statement
	StopPaused                      // a Hooks.BeforeStep asked to pause
)

// Engine holds all mutable state for one program run: the symbol table,
// control stack, DATA cursor, PRINT column, and last RND sample. It is
// grounded on the donor's global runtime struct (the receiver of every
// execute* method in execute.go), split here into a value type so a
// debug session can run several programs without global state.
type Engine struct {
	Prog *ast.Program
	Sym  *symtab.Table
	d    dialect.Dialect

	out     io.Writer
	in      *bufio.Reader
	col     int
	rand    *rand.Rand
	rndLast float64
	rndInit bool

	control []any // *GosubFrame or *ForFrame, most-recent last
	dataPos int

	scopes []map[string]value.Value // DEF FN parameter overlays, innermost last

	Hooks Hooks

	PC         pcounter.PC
	Statements int
}

// New constructs an Engine ready to run prog from its first line.
func New(prog *ast.Program, d dialect.Dialect, out io.Writer, in io.Reader) *Engine {
	return &Engine{
		Prog: prog,
		Sym:  symtab.New(d),
		d:    d,
		out:  out,
		in:   bufio.NewReader(in),
		PC:   pcounter.PC{Line: 0, Stmt: 0},
	}
}

// Run executes statements starting at e.PC until the program ends, an
// END/STOP is reached, or a Hooks.BeforeStep pauses it. It recovers any
// diag panic into a returned error, mirroring the donor's single
// call(f func()) + decodePanic boundary. A returned RuntimeError carries
// the BASIC line number of the statement that failed.
func (e *Engine) Run() (StopReason, error) {
	var reason StopReason
	var rerr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				rerr = diag.Decode(r)
				if re, ok := rerr.(*diag.RuntimeError); ok && e.PC.Line >= 0 && e.PC.Line < len(e.Prog.Lines) {
					re.Line = e.Prog.Lines[e.PC.Line].Number
				}
			}
		}()
		reason, rerr = e.loop()
	}()
	return reason, rerr
}

func (e *Engine) loop() (StopReason, error) {
	for {
		if e.PC.Line >= len(e.Prog.Lines) {
			return StopNormalEnd, nil
		}
		if e.Hooks != nil && e.Hooks.BeforeStep(e.PC) {
			return StopPaused, nil
		}
		stmt := e.Prog.StmtAt(e.PC.Line, e.PC.Stmt)
		diag.Assert(stmt != nil, "program counter %+v points at no statement", e.PC)

		diag.Tracef("line %d stmt %d", e.Prog.Lines[e.PC.Line].Number, e.PC.Stmt)
		diag.Dump(stmt)

		reason, done, next := e.exec(stmt)
		e.Statements++
		if e.Hooks != nil {
			e.Hooks.AfterStep(e.PC)
		}
		if done {
			return reason, nil
		}
		e.PC = next
	}
}

// exec runs one statement and returns where to go next. done is true
// when the run should stop (END/STOP); reason is only meaningful then.
func (e *Engine) exec(stmt ast.Stmt) (reason StopReason, done bool, next pcounter.PC) {
	switch s := stmt.(type) {
	case *ast.Let:
		e.execLet(s)
		return 0, false, e.advance()
	case *ast.Print:
		e.execPrint(s)
		return 0, false, e.advance()
	case *ast.If:
		return e.execIf(s)
	case *ast.Goto:
		return 0, false, e.jumpToLine(s.Line, s.Target)
	case *ast.Gosub:
		return 0, false, e.execGosub(s.Line, s.Target)
	case *ast.Return:
		return 0, false, e.execReturn(s.Line)
	case *ast.For:
		return 0, false, e.execFor(s)
	case *ast.Next:
		return 0, false, e.execNext(s)
	case *ast.Dim:
		e.execDim(s)
		return 0, false, e.advance()
	case *ast.DefFn:
		e.Sym.DefineFunction(s.Name, s.Params, s.Body)
		return 0, false, e.advance()
	case *ast.Read:
		e.execRead(s)
		return 0, false, e.advance()
	case *ast.Data:
		return 0, false, e.advance() // already harvested into Prog.Data at parse time
	case *ast.Restore:
		e.execRestore(s)
		return 0, false, e.advance()
	case *ast.Input:
		e.execInput(s)
		return 0, false, e.advance()
	case *ast.On:
		return 0, false, e.execOn(s)
	case *ast.Rem:
		return 0, false, e.advance()
	case *ast.Stop:
		return StopStop, true, pcounter.PC{}
	case *ast.End:
		return StopEnd, true, pcounter.PC{}
	default:
		diag.Fatal("unhandled statement type %T", stmt)
		return 0, false, pcounter.PC{}
	}
}

// advance moves the PC to the next statement on the current line, or to
// the first statement of the next line once the current one is exhausted.
func (e *Engine) advance() pcounter.PC {
	if e.PC.Stmt+1 < len(e.Prog.Lines[e.PC.Line].Stmts) {
		return e.PC.Next()
	}
	return pcounter.NextLine(e.PC.Line + 1)
}

// jumpToLine resolves targetLine through Prog.Index and returns its
// first-statement PC, raising a runtime error if it doesn't exist.
func (e *Engine) jumpToLine(fromLine, targetLine int) pcounter.PC {
	idx, ok := e.Prog.LineIndex(targetLine)
	diag.RuntimeCheck(ok, fromLine, e.PC.Stmt, "undefined line", "no line numbered %d", targetLine)
	return pcounter.NextLine(idx)
}

func (e *Engine) execLet(s *ast.Let) {
	v := e.Eval(s.Value)
	e.assign(s.Line, s.Target, v)
}

func (e *Engine) assign(line int, target ast.LValue, v value.Value) {
	switch t := target.(type) {
	case *ast.VarRef:
		if err := e.Sym.SetScalar(t.Name, v); err != nil {
			diag.Raise(line, e.PC.Stmt, "type error", "%s", err)
		}
	case *ast.Call:
		idx := e.evalSubscripts(line, t.Args)
		if err := e.Sym.SetArrayCell(t.Name, idx, v); err != nil {
			diag.Raise(line, e.PC.Stmt, "subscript error", "%s", err)
		}
	default:
		diag.Fatal("assignment target is neither a VarRef nor a Call: %T", target)
	}
}

func (e *Engine) evalSubscripts(line int, args []ast.Expr) []int {
	idx := make([]int, len(args))
	for i, a := range args {
		v := e.Eval(a)
		if v.IsString() {
			diag.Raise(line, e.PC.Stmt, "type error", "array subscripts must be numeric")
		}
		idx[i] = int(v.Num)
	}
	return idx
}

func (e *Engine) execDim(s *ast.Dim) {
	for _, decl := range s.Decls {
		shape := make([]int, len(decl.Dims))
		for i, expr := range decl.Dims {
			v := e.Eval(expr)
			shape[i] = int(v.Num) + 1 // DIM A(10) allocates indices 0..10
		}
		if err := e.Sym.DimArray(decl.Name, shape); err != nil {
			diag.Raise(s.Line, e.PC.Stmt, "duplicate dim", "%s", err)
		}
	}
}
