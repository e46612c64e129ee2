package engine

import (
	"github.com/GaryLuck/basic-plus/internal/ast"
	"github.com/GaryLuck/basic-plus/internal/diag"
	"github.com/GaryLuck/basic-plus/internal/pcounter"
	"github.com/GaryLuck/basic-plus/internal/value"
)

// execIf evaluates the condition and either falls through to the next
// line (false) or takes the THEN clause (true). A bare line-number THEN
// is GOTO sugar; any other THEN clause executes as a single statement
// whose own fallthrough (via the ordinary advance() a caller sees once
// control returns to loop()) lands on the next colon-separated statement
// on this same line — that, not special nesting in the AST, is what
// makes the rest of the line "part of the taken branch" per spec.md §4.6.
func (e *Engine) execIf(s *ast.If) (StopReason, bool, pcounter.PC) {
	cond := e.Eval(s.Cond)
	if cond.IsString() {
		diag.Raise(s.Line, e.PC.Stmt, "type error", "IF condition must be numeric")
	}
	if !cond.Truthy() {
		return 0, false, pcounter.NextLine(e.PC.Line + 1)
	}
	if s.ThenIsGoto {
		return 0, false, e.jumpToLine(s.Line, s.ThenLine)
	}
	return e.exec(s.Then)
}

func (e *Engine) execGosub(line, target int) pcounter.PC {
	dest := e.jumpToLine(line, target)
	e.control = append(e.control, &GosubFrame{Return: e.advance()})
	return dest
}

func (e *Engine) execReturn(line int) pcounter.PC {
	for i := len(e.control) - 1; i >= 0; i-- {
		if f, ok := e.control[i].(*GosubFrame); ok {
			e.control = e.control[:i]
			return f.Return
		}
	}
	diag.Raise(line, e.PC.Stmt, "return without gosub", "RETURN with no matching GOSUB")
	return pcounter.PC{}
}

func (e *Engine) execFor(s *ast.For) pcounter.PC {
	start := e.Eval(s.Start)
	limit := e.Eval(s.Limit)
	step := 1.0
	if s.Step != nil {
		sv := e.Eval(s.Step)
		if sv.IsString() {
			diag.Raise(s.Line, e.PC.Stmt, "type error", "FOR step must be numeric")
		}
		step = sv.Num
	}
	if start.IsString() || limit.IsString() {
		diag.Raise(s.Line, e.PC.Stmt, "type error", "FOR bounds must be numeric")
	}
	diag.RuntimeCheck(step != 0, s.Line, e.PC.Stmt, "zero step", "FOR step of 0 would never terminate")
	if err := e.Sym.SetScalar(s.Var, start); err != nil {
		diag.Raise(s.Line, e.PC.Stmt, "type error", "%s", err)
	}
	body := e.advance()
	e.control = append(e.control, &ForFrame{Var: s.Var, Limit: limit.Num, Step: step, Body: body})
	return body
}

// execNext finds the nearest enclosing FOR frame matching the (possibly
// empty) variable name, discarding any frames above it — letting a
// single NEXT close out loops a program jumped out of without visiting
// their own NEXT — then either loops back to the FOR's body or, once the
// bound is crossed, drops the frame and falls through. Grounded on the
// donor's findForStackEntryVar plus executeNext's loop-continuation
// check in execute.go.
func (e *Engine) execNext(s *ast.Next) pcounter.PC {
	names := s.Vars
	if len(names) == 0 {
		names = []string{""}
	}
	var next pcounter.PC
	for _, name := range names {
		idx := -1
		for i := len(e.control) - 1; i >= 0; i-- {
			if f, ok := e.control[i].(*ForFrame); ok {
				if name == "" || e.d.Fold(f.Var) == e.d.Fold(name) {
					idx = i
					break
				}
			}
		}
		if idx < 0 {
			diag.Raise(s.Line, e.PC.Stmt, "next without for", "NEXT with no matching FOR")
		}
		frame := e.control[idx].(*ForFrame)
		e.control = e.control[:idx+1]

		cur := e.Sym.GetScalar(frame.Var)
		val := cur.Num + frame.Step
		if err := e.Sym.SetScalar(frame.Var, value.Of(val)); err != nil {
			diag.Raise(s.Line, e.PC.Stmt, "type error", "%s", err)
		}
		continues := (frame.Step >= 0 && val <= frame.Limit) || (frame.Step < 0 && val >= frame.Limit)
		if continues {
			next = frame.Body
			break
		}
		e.control = e.control[:idx]
		next = e.advance()
	}
	return next
}

func (e *Engine) execOn(s *ast.On) pcounter.PC {
	v := e.Eval(s.Expr)
	if v.IsString() {
		diag.Raise(s.Line, e.PC.Stmt, "type error", "ON selector must be numeric")
	}
	i := int(v.Num) - 1
	if i < 0 || i >= len(s.Targets) {
		return e.advance() // out-of-range index falls through without error
	}
	target := s.Targets[i]
	if s.Kind == ast.OnGosub {
		return e.execGosub(s.Line, target)
	}
	return e.jumpToLine(s.Line, target)
}
