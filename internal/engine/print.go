package engine

import (
	"strconv"
	"strings"

	"github.com/GaryLuck/basic-plus/internal/ast"
	"github.com/GaryLuck/basic-plus/internal/diag"
)

// execPrint formats and writes one PRINT statement's items, grounded on
// the donor's basicFormat/basicPrint/resetPrint in utils.go: numbers get
// a leading space when non-negative and a trailing space always, a comma
// separator pads output to the next multiple of the dialect's zone
// width, a semicolon separator adds no padding, and a trailing separator
// (comma or semicolon on the last item) suppresses the line's newline.
func (e *Engine) execPrint(s *ast.Print) {
	for i, item := range s.Items {
		e.writeStr(e.formatPrintItem(s.Line, item.Expr))
		isLast := i == len(s.Items)-1
		switch item.Sep {
		case ast.SepComma:
			if isLast {
				continue // trailing comma suppresses the newline; no zone pad either
			}
			e.padToZone()
		case ast.SepSemi:
			// no padding
		case ast.SepNone:
			if isLast {
				e.writeStr("\n")
			}
		}
	}
	if len(s.Items) == 0 {
		e.writeStr("\n")
	}
}

// formatPrintItem special-cases TAB(n) and SPC(n) so they see the live
// output column instead of the column-blind fallback registered in
// internal/builtin, per the resolved Open Question in SPEC_FULL.md §9.
func (e *Engine) formatPrintItem(line int, expr ast.Expr) string {
	if expr == nil {
		return "" // PRINT ,X and PRINT X,,Y carry an empty item; just honor the separator
	}
	if call, ok := expr.(*ast.Call); ok {
		upper := strings.ToUpper(call.Name)
		if (upper == "TAB" || upper == "SPC") && len(call.Args) == 1 {
			n := e.Eval(call.Args[0])
			if n.IsString() {
				diag.Raise(line, e.PC.Stmt, "type error", "%s requires a numeric argument", upper)
			}
			target := int(n.Num)
			if target < 0 {
				target = 0
			}
			if upper == "TAB" {
				if e.col >= target {
					return ""
				}
				return strings.Repeat(" ", target-e.col)
			}
			return strings.Repeat(" ", target)
		}
	}
	v := e.Eval(expr)
	if v.IsString() {
		return v.Str
	}
	return formatNumber(v.Num)
}

func formatNumber(n float64) string {
	sign := ""
	if n >= 0 {
		sign = " "
	}
	return sign + strconv.FormatFloat(n, 'g', -1, 64) + " "
}

func (e *Engine) padToZone() {
	zone := e.d.ZoneWidth
	target := ((e.col / zone) + 1) * zone
	e.writeStr(strings.Repeat(" ", target-e.col))
}

func (e *Engine) writeStr(s string) {
	e.out.Write([]byte(s))
	if nl := strings.LastIndexByte(s, '\n'); nl >= 0 {
		e.col = len(s) - nl - 1
	} else {
		e.col += len(s)
	}
}
