package interp

import (
	"strings"

	"github.com/o2lang/go-o2l/internal/ast"
	"github.com/o2lang/go-o2l/internal/errors"
	"github.com/o2lang/go-o2l/internal/interp/runtime"
	"github.com/o2lang/go-o2l/pkg/token"
)

// evalObjectDeclaration constructs the class template for an Object
// declaration and validates it against its declared protocol, if any.
func (i *Interpreter) evalObjectDeclaration(n *ast.ObjectDeclaration, ctx *Context) (runtime.Value, error) {
	template := runtime.NewObjectInstance(n.Name)
	template.DeclEnv = ctx.Env()

	for _, method := range n.Methods {
		info := &runtime.MethodInfo{
			Name:     method.Name,
			External: method.External,
			Body:     method.Body,
			Signature: &runtime.MethodSignature{
				Name:       method.Name,
				Parameters: method.Parameters,
				ReturnType: method.ReturnType,
			},
		}
		if err := template.AddMethod(info); err != nil {
			return nil, errAt(errors.Redeclaration, method, "%s", err.Error())
		}
	}

	if n.ProtocolName != "" {
		value, ok := ctx.Get(n.ProtocolName)
		if !ok {
			return nil, errAt(errors.Unresolved, n,
				"undefined protocol %q declared by object %q", n.ProtocolName, n.Name)
		}
		protocol, isProtocol := value.(*runtime.ProtocolValue)
		if !isProtocol {
			return nil, errAt(errors.TypeMismatch, n,
				"%q is not a protocol (got %s)", n.ProtocolName, runtime.TypeName(value))
		}
		if errs := protocol.ValidationErrors(template); len(errs) > 0 {
			return nil, errAt(errors.ProtocolConformance, n,
				"object %q does not implement protocol %q:\n  %s",
				n.Name, n.ProtocolName, strings.Join(errs, "\n  "))
		}
	}

	return template, nil
}

// evalProtocolDeclaration produces the protocol's runtime value.
func (i *Interpreter) evalProtocolDeclaration(n *ast.ProtocolDeclaration) (runtime.Value, error) {
	protocol := &runtime.ProtocolValue{Name: n.Name}
	for _, sig := range n.Signatures {
		protocol.Signatures = append(protocol.Signatures, runtime.MethodSignature{
			Name:       sig.Name,
			Parameters: sig.Parameters,
			ReturnType: sig.ReturnType,
		})
	}
	return protocol, nil
}

// evalRecordDeclaration produces the record type's first-class value.
func (i *Interpreter) evalRecordDeclaration(n *ast.RecordDeclaration) (runtime.Value, error) {
	return &runtime.RecordTypeValue{Name: n.Name, Fields: n.Fields}, nil
}

// evalEnumDeclaration produces the enum's runtime value. The parser has
// already resolved the running counter into per-member values.
func (i *Interpreter) evalEnumDeclaration(n *ast.EnumDeclaration) (runtime.Value, error) {
	enum := &runtime.EnumValue{Name: n.Name}
	for _, m := range n.Members {
		enum.Members = append(enum.Members, runtime.EnumMember{Name: m.Name, Value: m.Value})
	}
	return enum, nil
}

// evalNamespaceDeclaration evaluates member declarations in a child scope
// and registers each member under both its fully-qualified and its short
// name in the parent scope.
func (i *Interpreter) evalNamespaceDeclaration(n *ast.NamespaceDeclaration, ctx *Context) (runtime.Value, error) {
	prefix := strings.Join(n.Path, ".")

	ctx.PushScope()
	members := make(map[string]runtime.Value)
	for _, decl := range n.Declarations {
		value, err := i.eval(decl, ctx)
		if err != nil {
			ctx.PopScope()
			return nil, err
		}
		name := declaredName(decl)
		if name == "" {
			continue
		}
		if err := ctx.Define(name, value); err != nil {
			ctx.PopScope()
			return nil, at(err, decl)
		}
		members[name] = value
	}
	ctx.PopScope()

	for name, value := range members {
		if err := ctx.Define(prefix+"."+name, value); err != nil {
			return nil, at(err, n)
		}
		if err := ctx.Define(name, value); err != nil {
			return nil, at(err, n)
		}
	}

	return zero(), nil
}

// declaredName returns the binding name a top-level declaration introduces.
func declaredName(stmt ast.Statement) string {
	switch d := stmt.(type) {
	case *ast.ObjectDeclaration:
		return d.Name
	case *ast.ProtocolDeclaration:
		return d.Name
	case *ast.RecordDeclaration:
		return d.Name
	case *ast.EnumDeclaration:
		return d.Name
	}
	return ""
}

// evalNewExpression instantiates a declared Object: the class template is
// cloned, constructor arguments are evaluated left-to-right and the
// constructor, if declared, runs as an internal call.
func (i *Interpreter) evalNewExpression(n *ast.NewExpression, ctx *Context) (runtime.Value, error) {
	// new Error(message) builds the runtime error object directly.
	if n.TypeName == "Error" {
		args, err := i.evalArguments(n.Arguments, ctx)
		if err != nil {
			return nil, err
		}
		if len(args) != 1 {
			return nil, errAt(errors.Arity, n, "Error expects one message argument, got %d", len(args))
		}
		message, ok := args[0].(*runtime.TextValue)
		if !ok {
			return nil, errAt(errors.TypeMismatch, n,
				"Error expects a Text message, got %s", runtime.TypeName(args[0]))
		}
		return &runtime.ErrorValue{Message: message.Value}, nil
	}

	template, err := i.resolveObjectType(n, ctx)
	if err != nil {
		return nil, err
	}

	instance := template.Clone()

	args, err := i.evalArguments(n.Arguments, ctx)
	if err != nil {
		return nil, err
	}

	if instance.HasMethod("constructor") {
		if _, err := i.callMethod(instance, "constructor", args, ctx, false, n.Pos()); err != nil {
			return nil, err
		}
	} else if len(args) > 0 {
		return nil, errAt(errors.Arity, n,
			"object %q has no constructor but %d argument(s) were supplied", n.TypeName, len(args))
	}

	return instance, nil
}

// evalArguments evaluates call arguments left-to-right.
func (i *Interpreter) evalArguments(nodes []ast.Expression, ctx *Context) ([]runtime.Value, error) {
	args := make([]runtime.Value, 0, len(nodes))
	for _, argNode := range nodes {
		arg, err := i.eval(argNode, ctx)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

// resolveObjectType looks up a (possibly dotted) type name as an object
// class template.
func (i *Interpreter) resolveObjectType(n *ast.NewExpression, ctx *Context) (*runtime.ObjectInstance, error) {
	value, ok := ctx.Get(n.TypeName)
	if !ok && strings.Contains(n.TypeName, ".") {
		parts := strings.Split(n.TypeName, ".")
		value, ok = ctx.Get(parts[len(parts)-1])
	}
	if !ok {
		return nil, errAt(errors.Unresolved, n, "undefined type %q", n.TypeName)
	}

	template, isObject := value.(*runtime.ObjectInstance)
	if !isObject {
		return nil, errAt(errors.TypeMismatch, n,
			"%q is not an object type (got %s)", n.TypeName, runtime.TypeName(value))
	}
	return template, nil
}

// callMethod is the single dispatch entry point for object methods.
//
// It checks existence, visibility and (for declared methods) arity, then
// pushes a scope chained onto the object's declaring module, pushes this,
// pushes a call frame, binds positional arguments, evaluates the body and
// pops everything in reverse order on all exit paths. A return signal
// terminates the body and yields its value; every other error propagates
// unchanged.
func (i *Interpreter) callMethod(obj *runtime.ObjectInstance, name string, args []runtime.Value, ctx *Context, externalCall bool, pos token.Position) (runtime.Value, error) {
	info := obj.Method(name)
	if info == nil {
		err := errors.NewAt(errors.UnknownMethod, pos,
			"object %q has no method %q", obj.Name, name)
		return nil, err.WithTrace(ctx.Frames())
	}

	if externalCall && !info.External {
		err := errors.NewAt(errors.Visibility, pos,
			"method %q of object %q is not external and cannot be called from outside the object",
			name, obj.Name)
		return nil, err.WithTrace(ctx.Frames())
	}

	if info.Builtin != nil {
		result, err := info.Builtin(args)
		if err != nil {
			if rerr, isRuntime := err.(*errors.RuntimeError); isRuntime {
				if rerr.Pos == nil {
					p := pos
					rerr.Pos = &p
				}
				return nil, rerr.WithTrace(ctx.Frames())
			}
			rerr := errors.NewAt(errors.TypeMismatch, pos, "%s.%s: %s", obj.Name, name, err.Error())
			return nil, rerr.WithTrace(ctx.Frames())
		}
		return result, nil
	}

	if info.Signature != nil && len(args) != len(info.Signature.Parameters) {
		err := errors.NewAt(errors.Arity, pos,
			"method %s.%s expects %d argument(s), got %d",
			obj.Name, name, len(info.Signature.Parameters), len(args))
		return nil, err.WithTrace(ctx.Frames())
	}

	declEnv := obj.DeclEnv
	if declEnv == nil {
		declEnv = ctx.Env()
	}
	prevEnv := ctx.PushScopeFrom(declEnv)
	defer ctx.RestoreScope(prevEnv)

	ctx.PushThis(obj)
	defer ctx.PopThis()

	ctx.PushFrame(obj.Name+"."+name, pos)
	defer ctx.PopFrame()

	if info.Signature != nil {
		for idx, param := range info.Signature.Parameters {
			if err := ctx.Define(param.Name, args[idx]); err != nil {
				return nil, err
			}
		}
	}

	result, err := i.eval(info.Body, ctx)
	if err != nil {
		if ret, isReturn := err.(*returnSignal); isReturn {
			return ret.value, nil
		}
		// An error raised inside the body freezes the frame vector into its
		// payload if it does not already carry one.
		if rerr, isRuntime := err.(*errors.RuntimeError); isRuntime {
			rerr.WithTrace(ctx.Frames())
		}
		return nil, err
	}
	return result, nil
}
