// Package interp implements the tree-walking evaluator of O²L: the lexical
// Context, the per-node evaluation semantics, object method dispatch and
// the two-pass interpreter driver.
package interp

import (
	"github.com/o2lang/go-o2l/internal/errors"
	"github.com/o2lang/go-o2l/internal/interp/runtime"
	"github.com/o2lang/go-o2l/pkg/token"
)

// Context owns the interpreter's scope chain, the stack of 'this' handles
// and the call-frame stack used for error reporting. It is strictly
// single-owner and single-threaded.
type Context struct {
	env       *runtime.Environment
	thisStack []*runtime.ObjectInstance
	frames    errors.StackTrace
	file      string
}

// NewContext creates a Context with a fresh root scope.
func NewContext(file string) *Context {
	return &Context{env: runtime.NewEnvironment(), file: file}
}

// File returns the source file this context reports positions against.
func (c *Context) File() string {
	return c.file
}

// Env returns the innermost scope.
func (c *Context) Env() *runtime.Environment {
	return c.env
}

// PushScope enters a new lexical scope. Callers pair it with PopScope via
// defer so the scope is released on all exit paths.
func (c *Context) PushScope() {
	c.env = runtime.NewEnclosedEnvironment(c.env)
}

// PushScopeFrom enters a new scope chained onto the given environment
// instead of the current one. Used for method bodies, which close over
// their declaring module's scope rather than the caller's.
// Returns the previous innermost scope for RestoreScope.
func (c *Context) PushScopeFrom(env *runtime.Environment) *runtime.Environment {
	prev := c.env
	c.env = runtime.NewEnclosedEnvironment(env)
	return prev
}

// PopScope leaves the innermost scope.
func (c *Context) PopScope() {
	if outer := c.env.Outer(); outer != nil {
		c.env = outer
	}
}

// RestoreScope resets the innermost scope to a previously captured one.
func (c *Context) RestoreScope(env *runtime.Environment) {
	c.env = env
}

// Define binds name as a variable in the innermost scope.
func (c *Context) Define(name string, v runtime.Value) error {
	return c.env.Define(name, v)
}

// DefineConstant binds name as a constant in the innermost scope.
func (c *Context) DefineConstant(name string, v runtime.Value) error {
	return c.env.DefineConstant(name, v)
}

// Assign reassigns an existing variable, innermost match first.
func (c *Context) Assign(name string, v runtime.Value) error {
	return c.env.Assign(name, v)
}

// Get retrieves a value by name.
func (c *Context) Get(name string) (runtime.Value, bool) {
	return c.env.Get(name)
}

// Has reports whether name is bound.
func (c *Context) Has(name string) bool {
	return c.env.Has(name)
}

// PushThis enters an instance-method body.
func (c *Context) PushThis(obj *runtime.ObjectInstance) {
	c.thisStack = append(c.thisStack, obj)
}

// PopThis leaves an instance-method body.
func (c *Context) PopThis() {
	if len(c.thisStack) > 0 {
		c.thisStack = c.thisStack[:len(c.thisStack)-1]
	}
}

// CurrentThis returns the current instance. Reading it outside a method
// body fails ThisOutOfContext.
func (c *Context) CurrentThis() (*runtime.ObjectInstance, error) {
	if len(c.thisStack) == 0 {
		return nil, errors.New(errors.ThisOutOfContext, "'this' is only available inside a method body")
	}
	return c.thisStack[len(c.thisStack)-1], nil
}

// PushFrame records an in-progress call for stack traces.
func (c *Context) PushFrame(name string, pos token.Position) {
	p := pos
	c.frames = append(c.frames, errors.StackFrame{
		FunctionName: name,
		FileName:     c.file,
		Position:     &p,
	})
}

// PopFrame removes the most recent call frame.
func (c *Context) PopFrame() {
	if len(c.frames) > 0 {
		c.frames = c.frames[:len(c.frames)-1]
	}
}

// Frames returns a frozen copy of the current call stack.
func (c *Context) Frames() errors.StackTrace {
	return c.frames.Copy()
}
