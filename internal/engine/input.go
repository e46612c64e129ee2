package engine

import (
	"strconv"
	"strings"

	"github.com/GaryLuck/basic-plus/internal/ast"
	"github.com/GaryLuck/basic-plus/internal/diag"
	"github.com/GaryLuck/basic-plus/internal/value"
)

// execInput prompts (if given) and reads one comma-separated line,
// assigning fields to targets left to right. A field count mismatch or a
// malformed numeric field gets one retry with a "?REDO FROM START"
// message before becoming a runtime error, grounded on classic BASIC's
// INPUT retry behavior and the donor's prompt/comma-split handling.
func (e *Engine) execInput(s *ast.Input) {
	if s.HasPrompt {
		e.writeStr(s.Prompt)
	}
	e.writeStr("? ")

	for attempt := 0; ; attempt++ {
		line, err := e.in.ReadString('\n')
		if err != nil && line == "" {
			diag.Raise(s.Line, e.PC.Stmt, "io error", "INPUT: %s", err)
		}
		fields := strings.Split(strings.TrimRight(line, "\r\n"), ",")
		if len(fields) != len(s.Targets) {
			if attempt > 0 {
				diag.Raise(s.Line, e.PC.Stmt, "malformed input", "expected %d value(s), got %d", len(s.Targets), len(fields))
			}
			e.writeStr("?REDO FROM START\n")
			continue
		}
		if v, ok := e.tryParseInputFields(s, fields); ok {
			for i, target := range s.Targets {
				e.assign(s.Line, target, v[i])
			}
			return
		}
		if attempt > 0 {
			diag.Raise(s.Line, e.PC.Stmt, "malformed input", "a numeric field was not a number")
		}
		e.writeStr("?REDO FROM START\n")
	}
}

func (e *Engine) tryParseInputFields(s *ast.Input, fields []string) ([]value.Value, bool) {
	out := make([]value.Value, len(s.Targets))
	for i, target := range s.Targets {
		text := strings.TrimSpace(fields[i])
		if e.wantsString(target) {
			out[i] = value.OfString(text)
			continue
		}
		n, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, false
		}
		out[i] = value.Of(n)
	}
	return out, true
}
