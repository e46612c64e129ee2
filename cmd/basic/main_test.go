package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

// runCLI writes src to a temp .bas file and runs it through run(), capturing
// stdout/stderr via os.Pipe since run's signature takes *os.File (mirroring
// os.Stdout/os.Stderr in main), not io.Writer.
func runCLI(t *testing.T, src string, extraArgs ...string) (exitCode int, stdout, stderr string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "prog.bas")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	args := append(append([]string{}, extraArgs...), path)

	type result struct {
		out, errOut string
	}
	done := make(chan result, 1)
	go func() {
		o, _ := io.ReadAll(outR)
		e, _ := io.ReadAll(errR)
		done <- result{string(o), string(e)}
	}()

	exitCode = run(args, outW, errW)
	outW.Close()
	errW.Close()
	r := <-done
	return exitCode, r.out, r.errOut
}

func TestCLIHelloWorldExitsZero(t *testing.T) {
	code, out, _ := runCLI(t, "10 PRINT \"HELLO, WORLD\"\n20 END\n")
	if code != exitOK {
		t.Fatalf("exit code = %d, want %d", code, exitOK)
	}
	if out != "HELLO, WORLD\n" {
		t.Fatalf("stdout = %q", out)
	}
}

func TestCLIRuntimeErrorExitsOne(t *testing.T) {
	code, _, errOut := runCLI(t, "10 PRINT \"A\"+1\n20 END\n")
	if code != exitRuntimeError {
		t.Fatalf("exit code = %d, want %d", code, exitRuntimeError)
	}
	if errOut == "" {
		t.Fatal("expected a message on stderr")
	}
}

func TestCLISyntaxErrorExitsTwo(t *testing.T) {
	code, _, errOut := runCLI(t, "10 PRINT \"UNTERMINATED\n20 END\n")
	if code != exitSyntaxError {
		t.Fatalf("exit code = %d, want %d", code, exitSyntaxError)
	}
	if errOut == "" {
		t.Fatal("expected a message on stderr")
	}
}

func TestCLIStopExitsFour(t *testing.T) {
	code, _, _ := runCLI(t, "10 PRINT \"BEFORE\"\n20 STOP\n30 PRINT \"AFTER\"\n")
	if code != exitStop {
		t.Fatalf("exit code = %d, want %d", code, exitStop)
	}
}

func TestCLIExpectExitCodeDirectiveIsTreatedAsComment(t *testing.T) {
	code, out, _ := runCLI(t, "10 @EXPECT_EXIT_CODE=0\n20 PRINT \"X\"\n30 END\n")
	if code != exitOK {
		t.Fatalf("exit code = %d, want %d", code, exitOK)
	}
	if out != "X\n" {
		t.Fatalf("stdout = %q, want %q", out, "X\n")
	}
}

func TestCLINoProgramArgExitsIOError(t *testing.T) {
	outR, outW, _ := os.Pipe()
	errR, errW, _ := os.Pipe()
	defer outR.Close()
	defer errR.Close()
	code := run(nil, outW, errW)
	outW.Close()
	errW.Close()
	io.ReadAll(outR)
	io.ReadAll(errR)
	if code != exitIOError {
		t.Fatalf("exit code = %d, want %d", code, exitIOError)
	}
}

func TestCLICoverageFileRecordsHits(t *testing.T) {
	dir := t.TempDir()
	covPath := filepath.Join(dir, "cov.json")
	code, _, stderrOut := runCLI(t, "10 PRINT \"X\"\n20 END\n", "--coverage-file", covPath)
	if code != exitOK {
		t.Fatalf("exit code = %d, want %d", code, exitOK)
	}
	data, err := os.ReadFile(covPath)
	if err != nil {
		t.Fatalf("coverage file was not written: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("coverage file is empty")
	}
	if stderrOut == "" {
		t.Fatal("expected a coverage summary on stderr")
	}
}
