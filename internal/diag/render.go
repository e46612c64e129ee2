package diag

import (
	"fmt"
	"os"

	"github.com/goforj/godump"
	"golang.org/x/term"
)

const (
	colorRed    = "\033[31m"
	colorReset  = "\033[0m"
	colorInvert = "\033[7m"
)

// traceEnabled and noColor are process-wide flags set once by cmd/basic
// from the --trace and --no-color CLI flags.
var (
	traceEnabled = false
	noColor      = false
)

// SetTrace turns per-statement tracing on or off.
func SetTrace(on bool) { traceEnabled = on }

// SetNoColor forces diagnostics to render without ANSI color codes even
// when stderr is a terminal.
func SetNoColor(on bool) { noColor = on }

// Tracef writes a trace line to stderr if tracing is enabled; otherwise
// it is a no-op, mirroring the donor's g.traceExec-gated print calls in
// execute.go.
func Tracef(format string, args ...any) {
	if !traceEnabled {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// Dump renders v with godump for trace/inspection output, grounded on the
// donor's three godump.Dump(...) call sites in basic.go (lines 595, 651,
// 1381) used for its own --trace-equivalent node dumps.
func Dump(v any) {
	if !traceEnabled {
		return
	}
	godump.Dump(v)
}

// colorAllowed reports whether stderr is a terminal and colorization
// hasn't been force-disabled.
func colorAllowed() bool {
	return !noColor && term.IsTerminal(int(os.Stderr.Fd()))
}

// SourceLine renders a single source line with the offending column range
// highlighted, grounded on the donor's errorLoc/errorLocFull/
// colorizeString in lexer.go. Falls back to an unadorned line plus a
// caret when colorization isn't available (piped/CI output).
func SourceLine(line string, col int) string {
	if col <= 0 || col > len(line)+1 {
		return line
	}
	if colorAllowed() {
		before := line[:col-1]
		var mark, after string
		if col-1 < len(line) {
			mark = string(line[col-1])
			after = line[col:]
		}
		return before + colorRed + mark + colorReset + after
	}
	caret := make([]byte, col)
	for i := range caret[:col-1] {
		caret[i] = ' '
	}
	caret[col-1] = '^'
	return line + "\n" + string(caret)
}
