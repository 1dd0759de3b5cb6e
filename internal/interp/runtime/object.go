package runtime

import (
	"fmt"

	"github.com/o2lang/go-o2l/internal/ast"
)

// BuiltinMethod is a method implemented in Go, registered by the module
// loader for the system library bindings.
type BuiltinMethod func(args []Value) (Value, error)

// MethodSignature carries the declared signature metadata used for arity
// checks and protocol conformance. Builtin bindings are registered without
// one; such methods stay visibility-checked but signature-unchecked.
type MethodSignature struct {
	Name       string
	Parameters []ast.Parameter
	ReturnType string
}

// MethodInfo is one method of an ObjectInstance: either a declared method
// with an AST body, or a builtin backed by a Go function.
type MethodInfo struct {
	Name      string
	External  bool
	Signature *MethodSignature    // nil for signature-unchecked methods
	Body      *ast.BlockStatement // declared methods
	Builtin   BuiltinMethod       // builtin bindings
}

// ObjectInstance represents a constructed instance of a declared Object,
// and doubles as the class template the instance is cloned from. Instances
// are shared by handle: mutation through one handle is visible through all.
type ObjectInstance struct {
	Name string

	// DeclEnv is the scope the object's declaring module evaluated in.
	// Method bodies close over it rather than over the caller's scope, so
	// imported objects see their own module's top-level bindings only.
	DeclEnv *Environment

	methodOrder []string
	methods     map[string]*MethodInfo
	properties  map[string]Value
}

// NewObjectInstance creates an empty object instance with the given name.
func NewObjectInstance(name string) *ObjectInstance {
	return &ObjectInstance{
		Name:       name,
		methods:    make(map[string]*MethodInfo),
		properties: make(map[string]Value),
	}
}

func (o *ObjectInstance) Type() string    { return o.Name }
func (o *ObjectInstance) Inspect() string { return o.Name + " instance" }

// AddMethod registers a declared method. Re-declaring a method name within
// one declaration is a load-time error surfaced by the parser; AddMethod
// refuses overwrites as a second line of defense.
func (o *ObjectInstance) AddMethod(info *MethodInfo) error {
	if _, exists := o.methods[info.Name]; exists {
		return fmt.Errorf("method %q is already declared on object %q", info.Name, o.Name)
	}
	o.methodOrder = append(o.methodOrder, info.Name)
	o.methods[info.Name] = info
	return nil
}

// AddBuiltin registers a Go-implemented method without signature metadata.
func (o *ObjectInstance) AddBuiltin(name string, external bool, fn BuiltinMethod) {
	// Builtins are registered programmatically; a duplicate is a programming
	// error in the bindings, not a user-visible condition.
	if _, exists := o.methods[name]; !exists {
		o.methodOrder = append(o.methodOrder, name)
	}
	o.methods[name] = &MethodInfo{Name: name, External: external, Builtin: fn}
}

// Method returns the method info for name, or nil.
func (o *ObjectInstance) Method(name string) *MethodInfo {
	return o.methods[name]
}

// HasMethod reports whether a method with the given name exists.
func (o *ObjectInstance) HasMethod(name string) bool {
	_, ok := o.methods[name]
	return ok
}

// MethodNames returns the method names in declaration order.
func (o *ObjectInstance) MethodNames() []string {
	out := make([]string, len(o.methodOrder))
	copy(out, o.methodOrder)
	return out
}

// MethodCount returns the number of methods.
func (o *ObjectInstance) MethodCount() int {
	return len(o.methodOrder)
}

// Signature returns the signature metadata for a method, or nil when the
// method does not exist or was registered without one.
func (o *ObjectInstance) Signature(name string) *MethodSignature {
	info := o.methods[name]
	if info == nil {
		return nil
	}
	return info.Signature
}

// GetProperty reads a property value. The second result is false when the
// property has never been set.
func (o *ObjectInstance) GetProperty(name string) (Value, bool) {
	v, ok := o.properties[name]
	return v, ok
}

// SetProperty creates or updates a property without arity or type checks.
func (o *ObjectInstance) SetProperty(name string, v Value) {
	o.properties[name] = v
}

// HasProperty reports whether the property has been set.
func (o *ObjectInstance) HasProperty(name string) bool {
	_, ok := o.properties[name]
	return ok
}

// Clone creates a fresh instance from this class template. Methods are
// shared (they are immutable after declaration); properties start empty so
// every instance owns its own state.
func (o *ObjectInstance) Clone() *ObjectInstance {
	clone := NewObjectInstance(o.Name)
	clone.DeclEnv = o.DeclEnv
	clone.methodOrder = append([]string{}, o.methodOrder...)
	for name, info := range o.methods {
		clone.methods[name] = info
	}
	return clone
}
