package engine

import (
	"strconv"
	"strings"

	"github.com/GaryLuck/basic-plus/internal/ast"
	"github.com/GaryLuck/basic-plus/internal/diag"
	"github.com/GaryLuck/basic-plus/internal/value"
)

// execRead pulls the next len(s.Targets) items from the DATA pool
// harvested at parse time, converting each to the type its target
// expects, and advances the cursor. Exhausting the pool is a runtime
// error ("out of data"), grounded on the donor's executeRead.
func (e *Engine) execRead(s *ast.Read) {
	for _, target := range s.Targets {
		diag.RuntimeCheck(e.dataPos < len(e.Prog.Data), s.Line, e.PC.Stmt, "out of data", "READ past the end of DATA")
		item := e.Prog.Data[e.dataPos]
		e.dataPos++
		wantString := e.wantsString(target)
		v := e.convertDataItem(s.Line, item, wantString)
		e.assign(s.Line, target, v)
	}
}

func (e *Engine) wantsString(target ast.LValue) bool {
	switch t := target.(type) {
	case *ast.VarRef:
		return e.d.IsStringName(t.Name)
	case *ast.Call:
		return e.d.IsStringName(t.Name)
	}
	return false
}

func (e *Engine) convertDataItem(line int, item ast.DataItem, wantString bool) value.Value {
	if wantString {
		return value.OfString(item.Text)
	}
	if item.IsQuoted {
		diag.Raise(line, e.PC.Stmt, "type error", "READ into a numeric variable from a quoted string datum")
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(item.Text), 64)
	if err != nil {
		diag.Raise(line, e.PC.Stmt, "type error", "DATA item %q is not numeric", item.Text)
	}
	return value.Of(n)
}

// execRestore resets the DATA cursor: to the start with bare RESTORE, or
// to the first datum originating from a line >= the given target with
// RESTORE n, per spec.md §4.6.
func (e *Engine) execRestore(s *ast.Restore) {
	if !s.HasLine {
		e.dataPos = 0
		return
	}
	for i, item := range e.Prog.Data {
		if item.Line >= s.Target {
			e.dataPos = i
			return
		}
	}
	e.dataPos = len(e.Prog.Data)
}
