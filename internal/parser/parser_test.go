package parser

import (
	"testing"

	"github.com/GaryLuck/basic-plus/internal/ast"
)

func TestHelloProgram(t *testing.T) {
	prog, err := Parse("10 PRINT \"HELLO, WORLD!\"\n20 END")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(prog.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(prog.Lines))
	}
	if prog.Lines[0].Number != 10 || prog.Lines[1].Number != 20 {
		t.Fatalf("unexpected line numbers: %+v", prog.Lines)
	}
	idx, ok := prog.LineIndex(20)
	if !ok || idx != 1 {
		t.Fatalf("LineIndex(20) = %d, %v", idx, ok)
	}
}

func TestSpaceFreeLet(t *testing.T) {
	prog, err := Parse("10 LETX=5\n20 END")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	let, ok := prog.Lines[0].Stmts[0].(*ast.Let)
	if !ok {
		t.Fatalf("got %T, want *ast.Let", prog.Lines[0].Stmts[0])
	}
	v, ok := let.Target.(*ast.VarRef)
	if !ok || v.Name != "X" {
		t.Fatalf("target = %+v", let.Target)
	}
}

func TestDuplicateLineNumberIsSyntaxError(t *testing.T) {
	_, err := Parse("10 PRINT 1\n10 PRINT 2")
	if err == nil {
		t.Fatal("expected a syntax error for duplicate line numbers")
	}
}

func TestOutOfOrderLineNumberIsSyntaxError(t *testing.T) {
	_, err := Parse("20 PRINT 1\n10 PRINT 2")
	if err == nil {
		t.Fatal("expected a syntax error for out-of-order line numbers")
	}
}

func TestDataHarvest(t *testing.T) {
	src := "10 READ A,B,C\n20 PRINT A+B+C\n30 DATA 1,2,3\n40 END"
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(prog.Data) != 3 {
		t.Fatalf("got %d data items, want 3", len(prog.Data))
	}
	for i, want := range []string{"1", "2", "3"} {
		if prog.Data[i].Text != want || prog.Data[i].Line != 30 {
			t.Errorf("data[%d] = %+v", i, prog.Data[i])
		}
	}
}

func TestIfThenLineNumberSugar(t *testing.T) {
	prog, err := Parse("10 IF X=5 THEN 100\n20 END")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ifs := prog.Lines[0].Stmts[0].(*ast.If)
	if !ifs.ThenIsGoto || ifs.ThenLine != 100 {
		t.Fatalf("got %+v", ifs)
	}
}

func TestTrailingPrintSeparatorSuppressesNewline(t *testing.T) {
	prog, err := Parse("10 PRINT A,")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	pr := prog.Lines[0].Stmts[0].(*ast.Print)
	if len(pr.Items) != 1 || pr.Items[0].Sep != ast.SepComma {
		t.Fatalf("got %+v", pr.Items)
	}
}

func TestArrayRefParsesAsCall(t *testing.T) {
	prog, err := Parse("10 PRINT A(2)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	pr := prog.Lines[0].Stmts[0].(*ast.Print)
	c, ok := pr.Items[0].Expr.(*ast.Call)
	if !ok || c.Name != "A" || len(c.Args) != 1 {
		t.Fatalf("got %+v", pr.Items[0].Expr)
	}
}

func TestDefFnParsesWithFnPrefixedName(t *testing.T) {
	prog, err := Parse("10 DEF FNSQ(X)=X*X")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	def := prog.Lines[0].Stmts[0].(*ast.DefFn)
	if def.Name != "FNSQ" || len(def.Params) != 1 || def.Params[0] != "X" {
		t.Fatalf("got %+v", def)
	}
}
