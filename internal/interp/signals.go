package interp

import (
	"github.com/o2lang/go-o2l/internal/errors"
	"github.com/o2lang/go-o2l/internal/interp/runtime"
	"github.com/o2lang/go-o2l/pkg/token"
)

// Control-flow signals travel the evaluator's error path but are not
// errors: Return and Break are consumed by their enclosing construct and
// never escape a well-formed program; Throw is intercepted only by
// try/catch and, unhandled, becomes a UserThrow runtime error at the
// driver.

// returnSignal terminates a method body and carries the returned value.
type returnSignal struct {
	value runtime.Value
}

func (s *returnSignal) Error() string { return "return outside of a method body" }

// breakSignal terminates the innermost while loop.
type breakSignal struct{}

func (s *breakSignal) Error() string { return "break outside of a loop" }

// throwSignal carries a user-thrown value together with the call stack
// frozen at the throw site.
type throwSignal struct {
	value runtime.Value
	trace errors.StackTrace
	pos   token.Position
}

func (s *throwSignal) Error() string {
	return "uncaught exception: " + s.value.Inspect()
}

// asRuntimeError converts an unhandled throw into the fatal UserThrow form
// surfaced by the driver.
func (s *throwSignal) asRuntimeError(file string) *errors.RuntimeError {
	err := errors.NewAt(errors.UserThrow, s.pos, "%s", s.value.Inspect())
	err.File = file
	return err.WithTrace(s.trace)
}
