// Package builtins provides the system library bindings served by the
// module loader for system imports: system.io, system.os and system.json.
//
// Builtin methods are registered without signature metadata: they stay
// visibility-checked but signature-unchecked, and protocol conformance
// degrades to method presence for them.
package builtins

import (
	"fmt"
	"io"
	"os"

	"github.com/o2lang/go-o2l/internal/errors"
	"github.com/o2lang/go-o2l/internal/interp/runtime"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Registry holds the builtin objects, keyed by their dotted import path.
type Registry struct {
	objects map[string]*runtime.ObjectInstance
}

// Option configures a Registry.
type Option func(*config)

type config struct {
	stdout io.Writer
	args   []string
}

// WithStdout redirects the io bindings' output. Defaults to os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(c *config) {
		c.stdout = w
	}
}

// WithArgs supplies the program arguments surfaced by os.args().
func WithArgs(args []string) Option {
	return func(c *config) {
		c.args = args
	}
}

// NewRegistry builds the registry with all system bindings.
func NewRegistry(opts ...Option) *Registry {
	cfg := &config{stdout: os.Stdout}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Registry{
		objects: map[string]*runtime.ObjectInstance{
			"system.io":   newIO(cfg.stdout),
			"system.os":   newOS(cfg.args),
			"system.json": newJSON(),
		},
	}
}

// Lookup returns the builtin object registered under a dotted import path.
func (r *Registry) Lookup(dotted string) (*runtime.ObjectInstance, bool) {
	obj, ok := r.objects[dotted]
	return obj, ok
}

// newIO builds the system.io object: print and println.
func newIO(out io.Writer) *runtime.ObjectInstance {
	obj := runtime.NewObjectInstance("io")

	obj.AddBuiltin("print", true, func(args []runtime.Value) (runtime.Value, error) {
		for _, arg := range args {
			fmt.Fprint(out, arg.Inspect())
		}
		return &runtime.IntegerValue{Value: 0}, nil
	})
	obj.AddBuiltin("println", true, func(args []runtime.Value) (runtime.Value, error) {
		for _, arg := range args {
			fmt.Fprint(out, arg.Inspect())
		}
		fmt.Fprintln(out)
		return &runtime.IntegerValue{Value: 0}, nil
	})

	return obj
}

// newOS builds the system.os object: args.
func newOS(args []string) *runtime.ObjectInstance {
	obj := runtime.NewObjectInstance("os")

	obj.AddBuiltin("args", true, func(callArgs []runtime.Value) (runtime.Value, error) {
		list := runtime.NewList("Text")
		for _, arg := range args {
			list.Add(&runtime.TextValue{Value: arg})
		}
		return list, nil
	})

	return obj
}

// newJSON builds the system.json object: get, set and valid, backed by
// gjson/sjson path expressions.
func newJSON() *runtime.ObjectInstance {
	obj := runtime.NewObjectInstance("json")

	obj.AddBuiltin("get", true, func(args []runtime.Value) (runtime.Value, error) {
		doc, path, err := twoTextArgs("json.get", args)
		if err != nil {
			return nil, err
		}
		result := gjson.Get(doc, path)
		if !result.Exists() {
			return nil, errors.New(errors.UnknownMember,
				"json document has no value at path %q", path)
		}
		return jsonResultValue(result), nil
	})

	obj.AddBuiltin("set", true, func(args []runtime.Value) (runtime.Value, error) {
		if len(args) != 3 {
			return nil, errors.New(errors.Arity,
				"json.set expects 3 arguments (doc, path, value), got %d", len(args))
		}
		doc, ok := args[0].(*runtime.TextValue)
		if !ok {
			return nil, errors.New(errors.TypeMismatch,
				"json.set expects a Text document, got %s", runtime.TypeName(args[0]))
		}
		path, ok := args[1].(*runtime.TextValue)
		if !ok {
			return nil, errors.New(errors.TypeMismatch,
				"json.set expects a Text path, got %s", runtime.TypeName(args[1]))
		}
		updated, err := sjson.Set(doc.Value, path.Value, jsonSettable(args[2]))
		if err != nil {
			return nil, errors.New(errors.TypeMismatch, "json.set: %s", err)
		}
		return &runtime.TextValue{Value: updated}, nil
	})

	obj.AddBuiltin("valid", true, func(args []runtime.Value) (runtime.Value, error) {
		if len(args) != 1 {
			return nil, errors.New(errors.Arity,
				"json.valid expects 1 argument, got %d", len(args))
		}
		doc, ok := args[0].(*runtime.TextValue)
		if !ok {
			return nil, errors.New(errors.TypeMismatch,
				"json.valid expects a Text document, got %s", runtime.TypeName(args[0]))
		}
		return &runtime.BooleanValue{Value: gjson.Valid(doc.Value)}, nil
	})

	return obj
}

func twoTextArgs(name string, args []runtime.Value) (string, string, error) {
	if len(args) != 2 {
		return "", "", errors.New(errors.Arity,
			"%s expects 2 arguments, got %d", name, len(args))
	}
	first, ok := args[0].(*runtime.TextValue)
	if !ok {
		return "", "", errors.New(errors.TypeMismatch,
			"%s expects a Text document, got %s", name, runtime.TypeName(args[0]))
	}
	second, ok := args[1].(*runtime.TextValue)
	if !ok {
		return "", "", errors.New(errors.TypeMismatch,
			"%s expects a Text path, got %s", name, runtime.TypeName(args[1]))
	}
	return first.Value, second.Value, nil
}

// jsonResultValue maps a gjson result onto the closest O²L variant.
func jsonResultValue(result gjson.Result) runtime.Value {
	switch result.Type {
	case gjson.True:
		return &runtime.BooleanValue{Value: true}
	case gjson.False:
		return &runtime.BooleanValue{Value: false}
	case gjson.Number:
		if float64(int64(result.Num)) == result.Num {
			return &runtime.IntegerValue{Value: int64(result.Num)}
		}
		return &runtime.DoubleValue{Value: result.Num}
	case gjson.String:
		return &runtime.TextValue{Value: result.Str}
	}
	return &runtime.TextValue{Value: result.Raw}
}

// jsonSettable maps an O²L value onto what sjson stores.
func jsonSettable(v runtime.Value) any {
	switch value := v.(type) {
	case *runtime.IntegerValue:
		return value.Value
	case *runtime.LongValue:
		return value.Value
	case *runtime.FloatValue:
		return value.Value
	case *runtime.DoubleValue:
		return value.Value
	case *runtime.BooleanValue:
		return value.Value
	case *runtime.TextValue:
		return value.Value
	}
	return v.Inspect()
}
