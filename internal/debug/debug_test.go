package debug

import (
	"bytes"
	"testing"

	"github.com/GaryLuck/basic-plus/internal/parser"
	"github.com/GaryLuck/basic-plus/internal/pcounter"
)

func TestHitCountsAreCountsNotBooleans(t *testing.T) {
	prog, err := parser.Parse("10 PRINT \"X\"\n20 GOTO 10\n")
	if err != nil {
		t.Fatal(err)
	}
	s := NewSession(prog)
	pc := pcounter.PC{Line: 0, Stmt: 0}
	for i := 0; i < 3; i++ {
		s.AfterStep(pc)
	}
	if got := s.Hits[10][0]; got != 3 {
		t.Fatalf("hit count = %d, want 3", got)
	}
}

func TestBreakpointPausesBeforeItsLine(t *testing.T) {
	prog, err := parser.Parse("10 PRINT \"X\"\n20 PRINT \"Y\"\n")
	if err != nil {
		t.Fatal(err)
	}
	s := NewSession(prog)
	s.SetBreakpoint(20)
	if s.BeforeStep(pcounter.PC{Line: 0, Stmt: 0}) {
		t.Fatal("should not pause on line 10")
	}
	if !s.BeforeStep(pcounter.PC{Line: 1, Stmt: 0}) {
		t.Fatal("should pause on line 20")
	}
}

func TestSaveAndLoadMergeBySummation(t *testing.T) {
	prog, err := parser.Parse("10 PRINT \"X\"\n")
	if err != nil {
		t.Fatal(err)
	}
	s := NewSession(prog)
	s.AfterStep(pcounter.PC{Line: 0, Stmt: 0})

	var buf bytes.Buffer
	if err := s.Save(&buf, "x.bas", "2026-08-06T00:00:00Z"); err != nil {
		t.Fatal(err)
	}

	s2 := NewSession(prog)
	s2.AfterStep(pcounter.PC{Line: 0, Stmt: 0})
	s2.AfterStep(pcounter.PC{Line: 0, Stmt: 0})
	if err := s2.Load(&buf); err != nil {
		t.Fatal(err)
	}
	if got := s2.Hits[10][0]; got != 3 {
		t.Fatalf("merged hit count = %d, want 3", got)
	}
}
