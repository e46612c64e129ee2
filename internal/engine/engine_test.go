package engine

import (
	"bytes"
	"strings"
	"testing"

	"github.com/GaryLuck/basic-plus/internal/dialect"
	"github.com/GaryLuck/basic-plus/internal/parser"
)

func run(t *testing.T, src string) string {
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var out bytes.Buffer
	e := New(prog, dialect.Default, &out, strings.NewReader(""))
	if _, err := e.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	return out.String()
}

func TestHelloWorld(t *testing.T) {
	got := run(t, "10 PRINT \"HELLO, WORLD\"\n20 END\n")
	if got != "HELLO, WORLD\n" {
		t.Fatalf("got %q", got)
	}
}

func TestForNextAccumulates(t *testing.T) {
	got := run(t, "10 LET S=0\n20 FOR I=1 TO 5\n30 LET S=S+I\n40 NEXT I\n50 PRINT S\n60 END\n")
	if got != " 15 \n" {
		t.Fatalf("got %q", got)
	}
}

func TestGotoLoop(t *testing.T) {
	got := run(t, "10 LET X=0\n20 LET X=X+1\n30 PRINT X\n40 IF X<3 THEN 20\n50 END\n")
	if got != " 1 \n 2 \n 3 \n" {
		t.Fatalf("got %q", got)
	}
}

func TestGosubReturn(t *testing.T) {
	got := run(t, "10 GOSUB 100\n20 PRINT \"BACK\"\n30 END\n100 PRINT \"IN SUB\"\n110 RETURN\n")
	if got != "IN SUB\nBACK\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintZonePadding(t *testing.T) {
	got := run(t, "10 PRINT \"AB\",\"CD\"\n20 END\n")
	want := "AB" + strings.Repeat(" ", 12) + "CD\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestOnGotoFallthroughOutOfRange(t *testing.T) {
	got := run(t, "10 LET X=9\n20 ON X GOTO 100,200\n30 PRINT \"FELL THROUGH\"\n40 END\n100 PRINT \"A\"\n200 PRINT \"B\"\n")
	if got != "FELL THROUGH\n" {
		t.Fatalf("got %q", got)
	}
}

func TestDefFnEvaluatesWithParamOverlay(t *testing.T) {
	got := run(t, "10 DEF FNSQ(X)=X*X\n20 PRINT FNSQ(4)\n30 END\n")
	if got != " 16 \n" {
		t.Fatalf("got %q", got)
	}
}

func TestReadDataAndRestore(t *testing.T) {
	got := run(t, "10 READ A,B\n20 PRINT A+B\n30 RESTORE\n40 READ C\n50 PRINT C\n60 END\n100 DATA 3,4,5\n")
	if got != " 7 \n 3 \n" {
		t.Fatalf("got %q", got)
	}
}

func TestStringConcatenation(t *testing.T) {
	got := run(t, "10 LET A$=\"AB\"+\"CD\"\n20 PRINT A$\n30 END\n")
	if got != "ABCD\n" {
		t.Fatalf("got %q", got)
	}
}

func TestMixedStringNumberPlusIsRuntimeError(t *testing.T) {
	prog, err := parser.Parse("10 PRINT \"A\"+1\n20 END\n")
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	e := New(prog, dialect.Default, &out, strings.NewReader(""))
	if _, err := e.Run(); err == nil {
		t.Fatal("expected a runtime type error")
	}
}

func TestNextWithVariableListPopsInnerThenOuter(t *testing.T) {
	got := run(t, "10 FOR I=1 TO 2\n20 FOR J=1 TO 2\n30 PRINT I*10+J\n40 NEXT J,I\n50 END\n")
	want := " 11 \n 12 \n 21 \n 22 \n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
