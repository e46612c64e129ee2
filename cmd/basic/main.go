// Command basic is the CLI driver that wires the interpreter core
// together: it reads a BASIC source file, parses it, runs it, and
// applies the coverage/trace/stats flags spec.md §6 and SPEC_FULL.md's
// DOMAIN STACK section describe. Grounded on the donor's os.Args-driven
// startup in basic.go, narrowed from an interactive REPL to a one-shot
// runner since the shell itself is out of scope.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/GaryLuck/basic-plus/internal/debug"
	"github.com/GaryLuck/basic-plus/internal/diag"
	"github.com/GaryLuck/basic-plus/internal/dialect"
	"github.com/GaryLuck/basic-plus/internal/engine"
	"github.com/GaryLuck/basic-plus/internal/parser"
	"github.com/GaryLuck/basic-plus/internal/stats"
)

// Exit codes per spec.md §6.
const (
	exitOK           = 0
	exitRuntimeError = 1
	exitSyntaxError  = 2
	exitIOError      = 3
	exitStop         = 4
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("basic", flag.ContinueOnError)
	fs.SetOutput(stderr)
	coverageFile := fs.String("coverage-file", "", "load/merge/save a coverage JSON file")
	resetCoverage := fs.Bool("reset-coverage", false, "ignore existing coverage counts in -coverage-file")
	trace := fs.Bool("trace", false, "enable per-statement trace on stderr")
	showStats := fs.Bool("stats", false, "print a CPU-time/statement-count summary on exit")
	noColor := fs.Bool("no-color", false, "disable colorized diagnostics")

	if err := fs.Parse(args); err != nil {
		return exitSyntaxError
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: basic [flags] PROGRAM.bas")
		return exitIOError
	}
	sourcePath := fs.Arg(0)

	diag.SetTrace(*trace)
	diag.SetNoColor(*noColor)

	source, err := os.ReadFile(sourcePath)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %s\n", sourcePath, err)
		return exitIOError
	}

	prog, err := parser.Parse(string(source))
	if err != nil {
		reportError(stderr, err, string(source))
		return exitSyntaxError
	}

	session := debug.NewSession(prog)
	if *coverageFile != "" && !*resetCoverage {
		if f, err := os.Open(*coverageFile); err == nil {
			if err := session.Load(f); err != nil {
				fmt.Fprintf(stderr, "%s: %s\n", *coverageFile, err)
				f.Close()
				return exitIOError
			}
			f.Close()
		}
	}

	e := engine.New(prog, dialect.Default, stdout, os.Stdin)
	e.Hooks = session

	collector := stats.NewCollector()
	reason, runErr := e.Run()

	if *coverageFile != "" {
		f, ferr := os.Create(*coverageFile)
		if ferr != nil {
			fmt.Fprintf(stderr, "%s: %s\n", *coverageFile, ferr)
			return exitIOError
		}
		saveErr := session.Save(f, sourcePath, time.Now().UTC().Format(time.RFC3339))
		f.Close()
		if saveErr != nil {
			fmt.Fprintf(stderr, "%s: %s\n", *coverageFile, saveErr)
			return exitIOError
		}
		printCoverageSummary(stderr, session)
	}

	if *showStats {
		fmt.Fprintln(stderr, collector.Snapshot(e.Statements))
	}

	if runErr != nil {
		reportError(stderr, runErr, string(source))
		if _, ok := runErr.(*diag.SyntaxError); ok {
			return exitSyntaxError
		}
		return exitRuntimeError
	}

	switch reason {
	case engine.StopStop:
		return exitStop
	default:
		return exitOK
	}
}

// printCoverageSummary prints a one-line-per-reasonable-width summary of
// which source lines were hit and which were never reached, wrapped to the
// terminal's width when stderr is a TTY (falling back to 80 columns
// otherwise), grounded on the donor's window-sizing fields in
// definitions.go (g.window / minWindowRows) that gate its own terminal
// output.
func printCoverageSummary(stderr *os.File, session *debug.Session) {
	width := 80
	if w, _, err := term.GetSize(int(stderr.Fd())); err == nil && w > 0 {
		width = w
	}

	var hit, missed []string
	for _, line := range session.Prog.Lines {
		counts, ok := session.Hits[line.Number]
		reached := false
		for _, c := range counts {
			if c > 0 {
				reached = true
				break
			}
		}
		if ok && reached {
			hit = append(hit, fmt.Sprintf("%d", line.Number))
		} else {
			missed = append(missed, fmt.Sprintf("%d", line.Number))
		}
	}

	fmt.Fprintf(stderr, "coverage: %d/%d lines hit\n", len(hit), len(hit)+len(missed))
	if len(missed) > 0 {
		fmt.Fprintln(stderr, wrapWithPrefix("never hit: "+strings.Join(missed, ", "), width))
	}
}

// wrapWithPrefix breaks s into width-wide lines on word boundaries,
// joining them back with newlines so the coverage summary never runs past
// the caller's terminal width.
func wrapWithPrefix(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return s
	}
	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		if i > 0 {
			if lineLen+1+len(w) > width {
				b.WriteByte('\n')
				lineLen = 0
			} else {
				b.WriteByte(' ')
				lineLen++
			}
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	return b.String()
}

// reportError prints an error message; for a syntax error it also quotes
// the offending source line with the column marked, grounded on the
// donor's errorLoc/errorLocFull. Runtime and internal errors get the
// plain message only.
func reportError(stderr *os.File, err error, source string) {
	fmt.Fprintln(stderr, err)
	se, ok := err.(*diag.SyntaxError)
	if !ok {
		return
	}
	lines := strings.Split(source, "\n")
	if se.Line >= 1 && se.Line <= len(lines) && se.Col > 0 {
		fmt.Fprintln(stderr, diag.SourceLine(lines[se.Line-1], se.Col))
	}
}
