package errors

import (
	"fmt"
	"strings"

	"github.com/o2lang/go-o2l/pkg/token"
)

// StackFrame represents a single frame in a call stack.
// It captures the function being executed and its location in the source code.
type StackFrame struct {
	Position     *token.Position
	FunctionName string
	FileName     string
}

// String returns a formatted string representation of the stack frame:
// "at FunctionName (file:line:col)". Position-less frames print the
// function name alone.
func (sf StackFrame) String() string {
	if sf.Position == nil {
		return fmt.Sprintf("at %s", sf.FunctionName)
	}
	file := sf.FileName
	if file == "" {
		file = "<source>"
	}
	return fmt.Sprintf("at %s (%s:%d:%d)",
		sf.FunctionName, file, sf.Position.Line, sf.Position.Column)
}

// StackTrace represents a complete call stack as a sequence of frames.
// Frames are ordered from oldest (bottom of stack) to newest (top of stack).
type StackTrace []StackFrame

// String renders the trace one frame per line, innermost (most recent)
// call first.
func (st StackTrace) String() string {
	if len(st) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := len(st) - 1; i >= 0; i-- {
		sb.WriteString(st[i].String())
		if i > 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Copy returns an independent copy of the trace. Errors freeze the stack at
// the point of raise, so the interpreter's live stack must not alias it.
func (st StackTrace) Copy() StackTrace {
	if len(st) == 0 {
		return nil
	}
	out := make(StackTrace, len(st))
	copy(out, st)
	return out
}

// Top returns the most recent (top) frame in the stack, or nil if empty.
func (st StackTrace) Top() *StackFrame {
	if len(st) == 0 {
		return nil
	}
	return &st[len(st)-1]
}

// Depth returns the number of frames in the stack.
func (st StackTrace) Depth() int {
	return len(st)
}
