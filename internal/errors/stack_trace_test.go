package errors

import (
	"strings"
	"testing"

	"github.com/o2lang/go-o2l/pkg/token"
)

func frame(name string, line, col int) StackFrame {
	return StackFrame{
		FunctionName: name,
		FileName:     "main.obq",
		Position:     &token.Position{Line: line, Column: col},
	}
}

func TestStackFrameString(t *testing.T) {
	sf := frame("Main.main", 2, 5)
	if sf.String() != "at Main.main (main.obq:2:5)" {
		t.Errorf("unexpected rendering: %s", sf.String())
	}

	bare := StackFrame{FunctionName: "throw"}
	if bare.String() != "at throw" {
		t.Errorf("unexpected rendering: %s", bare.String())
	}
}

func TestStackTraceRendersInnermostFirst(t *testing.T) {
	trace := StackTrace{
		frame("Main.main", 2, 5),
		frame("Main.inner", 7, 9),
		frame("throw", 8, 13),
	}

	lines := strings.Split(trace.String(), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "throw") {
		t.Errorf("innermost frame must come first, got %q", lines[0])
	}
	if !strings.Contains(lines[2], "Main.main") {
		t.Errorf("outermost frame must come last, got %q", lines[2])
	}
}

func TestTraceCopyIsIndependent(t *testing.T) {
	trace := StackTrace{frame("a", 1, 1)}
	frozen := trace.Copy()

	trace = append(trace, frame("b", 2, 2))
	if frozen.Depth() != 1 {
		t.Error("frozen copy must not observe later pushes")
	}
	_ = trace
}

func TestRuntimeErrorFormat(t *testing.T) {
	err := NewAt(UserThrow, token.Position{Line: 8, Column: 13}, "kaboom")
	err.WithTrace(StackTrace{frame("Main.main", 2, 5), frame("throw", 8, 13)})

	formatted := err.Format()
	if !strings.Contains(formatted, "uncaught exception: kaboom") {
		t.Errorf("missing message line: %s", formatted)
	}
	if !strings.Contains(formatted, "at throw (main.obq:8:13)") {
		t.Errorf("missing trace line: %s", formatted)
	}

	// WithTrace must not overwrite an existing trace.
	err.WithTrace(StackTrace{frame("other", 1, 1)})
	if err.Trace.Depth() != 2 {
		t.Error("existing trace was overwritten")
	}
}

func TestCompilerErrorCaret(t *testing.T) {
	source := "Object Main {\n  wrong here\n}"
	cerr := NewCompilerError(token.Position{Line: 2, Column: 3}, "unexpected identifier", source, "main.obq")

	out := cerr.Format(false)
	if !strings.Contains(out, "Error in main.obq:2:3") {
		t.Errorf("missing header: %s", out)
	}
	if !strings.Contains(out, "wrong here") {
		t.Errorf("missing source line: %s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("missing caret: %s", out)
	}
}
