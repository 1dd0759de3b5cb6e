// Package errors provides the error kinds, runtime errors and stack traces
// used across the O²L interpreter, plus formatting of compile errors with
// source context and caret indicators.
package errors

import (
	"fmt"
	"strings"

	"github.com/o2lang/go-o2l/pkg/token"
)

// Kind classifies interpreter failures. Only UserThrow is catchable by the
// language-level try/catch; every other kind is fatal at the driver level.
type Kind int

const (
	Syntax Kind = iota
	Unresolved
	TypeMismatch
	Arity
	Visibility
	Immutability
	Redeclaration
	UnknownMethod
	UnknownProperty
	UnknownField
	UnknownMember
	MissingField
	MissingConstructor
	ProtocolConformance
	DivisionByZero
	ThisOutOfContext
	ModuleNotFound
	SyntaxInImport
	CircularImport
	UserThrow
)

var kindNames = map[Kind]string{
	Syntax:              "syntax error",
	Unresolved:          "unresolved reference",
	TypeMismatch:        "type mismatch",
	Arity:               "wrong number of arguments",
	Visibility:          "visibility error",
	Immutability:        "immutability violation",
	Redeclaration:       "redeclaration",
	UnknownMethod:       "unknown method",
	UnknownProperty:     "unknown property",
	UnknownField:        "unknown field",
	UnknownMember:       "unknown member",
	MissingField:        "missing field",
	MissingConstructor:  "missing constructor",
	ProtocolConformance: "protocol conformance error",
	DivisionByZero:      "division by zero",
	ThisOutOfContext:    "'this' used outside of a method",
	ModuleNotFound:      "module not found",
	SyntaxInImport:      "syntax error in imported module",
	CircularImport:      "circular import",
	UserThrow:           "uncaught exception",
}

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "error"
}

// RuntimeError is an evaluation failure with a kind, message, optional
// source position and the call stack captured at the point of failure.
type RuntimeError struct {
	Kind    Kind
	Message string
	File    string
	Pos     *token.Position
	Trace   StackTrace
}

// New creates a RuntimeError without position information.
func New(kind Kind, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewAt creates a RuntimeError anchored at a source position.
func NewAt(kind Kind, pos token.Position, format string, args ...any) *RuntimeError {
	p := pos
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: &p}
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Pos != nil {
		return fmt.Sprintf("%s: %s (line %d, column %d)", e.Kind, e.Message, e.Pos.Line, e.Pos.Column)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// WithTrace attaches a captured call stack to the error if it does not
// already carry one, and returns the error for chaining.
func (e *RuntimeError) WithTrace(trace StackTrace) *RuntimeError {
	if len(e.Trace) == 0 {
		e.Trace = trace.Copy()
	}
	return e
}

// Format renders the error as a single message line followed by the call
// trace, one frame per line, innermost first.
func (e *RuntimeError) Format() string {
	var sb strings.Builder
	sb.WriteString(e.Error())
	if len(e.Trace) > 0 {
		sb.WriteString("\n")
		sb.WriteString(e.Trace.String())
	}
	return sb.String()
}

// CompilerError represents a single lex/parse error with position and the
// source needed to render a caret indicator.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// NewCompilerError creates a new compiler error.
func NewCompilerError(pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{
		Pos:     pos,
		Message: message,
		Source:  source,
		File:    file,
	}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format formats the error message with source context.
// If color is true, ANSI color codes are used for terminal output.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", e.Pos.Line, e.Pos.Column))
	}

	sourceLine := e.getSourceLine(e.Pos.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

// getSourceLine extracts a specific line from the source code.
// Lines are 1-indexed.
func (e *CompilerError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatErrors renders a list of compiler errors separated by blank lines.
func FormatErrors(errs []*CompilerError, color bool) string {
	var sb strings.Builder
	for i, err := range errs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(err.Format(color))
	}
	return sb.String()
}
