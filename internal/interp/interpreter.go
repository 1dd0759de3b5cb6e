package interp

import (
	"strings"

	"github.com/o2lang/go-o2l/internal/ast"
	"github.com/o2lang/go-o2l/internal/errors"
	"github.com/o2lang/go-o2l/internal/interp/runtime"
	"github.com/o2lang/go-o2l/internal/modules"
)

// Interpreter drives the two-pass execution of a parsed module: a register
// pass that binds all top-level declarations into the global context, then
// the invocation of Main.main().
type Interpreter struct {
	ctx         *Context
	loader      *modules.Loader
	programArgs []string
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLoader sets the module loader used to resolve imports.
func WithLoader(loader *modules.Loader) Option {
	return func(i *Interpreter) {
		i.loader = loader
	}
}

// WithProgramArgs supplies the host's program arguments, bound as
// __program_args__: List<Text> before the execute pass.
func WithProgramArgs(args []string) Option {
	return func(i *Interpreter) {
		i.programArgs = args
	}
}

// New creates an Interpreter for one program run.
func New(file string, opts ...Option) *Interpreter {
	i := &Interpreter{ctx: NewContext(file)}
	for _, opt := range opts {
		opt(i)
	}
	if i.loader == nil {
		i.loader = modules.NewLoader("", "", nil)
	}
	return i
}

// GlobalContext returns the interpreter's global context. Exposed for the
// embedding host and tests.
func (i *Interpreter) GlobalContext() *Context {
	return i.ctx
}

// Run executes the program: register pass, then Main.main(). The returned
// value is the program's result; its Int variant, if any, is the
// conventional exit status.
func (i *Interpreter) Run(program *ast.Program) (runtime.Value, error) {
	hasMain, _, err := i.registerPass(program, i.ctx)
	if err != nil {
		return nil, i.surface(err)
	}
	if !hasMain {
		return nil, errors.New(errors.Unresolved,
			"program must contain a 'Main' object as entry point")
	}

	if i.programArgs != nil {
		argsList := runtime.NewList("Text")
		for _, arg := range i.programArgs {
			argsList.Add(&runtime.TextValue{Value: arg})
		}
		if err := i.ctx.Define("__program_args__", argsList); err != nil {
			return nil, err
		}
	}

	mainValue, _ := i.ctx.Get("Main")
	mainObject, isObject := mainValue.(*runtime.ObjectInstance)
	if !isObject {
		return nil, errors.New(errors.TypeMismatch, "'Main' is not an object instance")
	}
	if !mainObject.HasMethod("main") {
		return nil, errors.New(errors.UnknownMethod, "'Main' object must have a 'main()' method")
	}

	result, err := i.callMethod(mainObject, "main", nil, i.ctx, false, program.Pos())
	if err != nil {
		return nil, i.surface(err)
	}
	return result, nil
}

// registerPass evaluates top-level declarations: namespace declarations
// first, then objects, enums, records, protocols and imports interleaved in
// source order. It reports whether a Main object was declared and returns
// the names the module declares (its export surface).
func (i *Interpreter) registerPass(program *ast.Program, ctx *Context) (bool, map[string]runtime.Value, error) {
	hasMain := false
	exports := make(map[string]runtime.Value)

	for _, stmt := range program.Statements {
		ns, isNamespace := stmt.(*ast.NamespaceDeclaration)
		if !isNamespace {
			continue
		}
		if _, err := i.eval(ns, ctx); err != nil {
			return hasMain, nil, err
		}
		prefix := strings.Join(ns.Path, ".")
		for _, member := range ns.Declarations {
			name := declaredName(member)
			if name == "" {
				continue
			}
			if value, ok := ctx.Get(prefix + "." + name); ok {
				exports[prefix+"."+name] = value
				exports[name] = value
			}
		}
	}

	for _, stmt := range program.Statements {
		switch decl := stmt.(type) {
		case *ast.NamespaceDeclaration:
			// Already processed.
		case *ast.ImportDeclaration:
			if err := i.processImport(decl, ctx); err != nil {
				return hasMain, nil, err
			}
		case *ast.ObjectDeclaration, *ast.ProtocolDeclaration,
			*ast.RecordDeclaration, *ast.EnumDeclaration:
			value, err := i.eval(stmt, ctx)
			if err != nil {
				return hasMain, nil, err
			}
			name := declaredName(stmt)
			if err := ctx.Define(name, value); err != nil {
				return hasMain, nil, at(err, stmt)
			}
			exports[name] = value
			if name == "Main" {
				hasMain = true
			}
		default:
			return hasMain, nil, errAt(errors.Syntax, stmt,
				"only Object, Protocol, Record, Enum, namespace and import declarations are allowed at the top level")
		}
	}

	return hasMain, exports, nil
}

// processImport resolves an import clause through the module loader and
// binds the loaded names into the importing scope.
func (i *Interpreter) processImport(decl *ast.ImportDeclaration, ctx *Context) error {
	path := decl.Path

	if path.Wildcard {
		all, err := i.loader.LoadAllMethods(path, i.evalUnit)
		if err != nil {
			return at(err, decl)
		}
		for name, value := range all {
			if err := ctx.Define(name, value); err != nil {
				return at(err, decl)
			}
		}
		return nil
	}

	value, err := i.loader.LoadMethod(path, i.evalUnit)
	if err != nil {
		return at(err, decl)
	}
	if err := ctx.Define(path.ObjectName, value); err != nil {
		return at(err, decl)
	}
	if path.MethodName != "" && path.MethodName != "*" {
		alias := path.ObjectName + "_" + path.MethodName
		if err := ctx.Define(alias, value); err != nil {
			return at(err, decl)
		}
	}
	return nil
}

// UnitEvaluator returns the loader callback that evaluates imported units
// on this interpreter. Tests hand it to the loader's LoadMethod/LoadAllMethods
// when driving the loader directly.
func (i *Interpreter) UnitEvaluator() modules.EvalUnit {
	return i.evalUnit
}

// evalUnit is the loader callback that evaluates an imported unit's
// program in its own fresh context and returns its export surface.
// Objects are externally visible when they carry at least one external
// method; protocols, records and enums are always visible.
func (i *Interpreter) evalUnit(program *ast.Program, file string) (map[string]runtime.Value, error) {
	unitCtx := NewContext(file)
	_, exports, err := i.registerPass(program, unitCtx)
	if err != nil {
		return nil, err
	}

	visible := make(map[string]runtime.Value, len(exports))
	for name, value := range exports {
		if obj, isObject := value.(*runtime.ObjectInstance); isObject {
			if !hasExternalMethod(obj) {
				continue
			}
		}
		visible[name] = value
	}
	return visible, nil
}

func hasExternalMethod(obj *runtime.ObjectInstance) bool {
	for _, name := range obj.MethodNames() {
		if info := obj.Method(name); info != nil && info.External {
			return true
		}
	}
	return false
}

// surface converts escaped control-flow signals into the fatal errors the
// driver reports. Return and break are consumed by their constructs in a
// well-formed program; an unhandled throw becomes UserThrow.
func (i *Interpreter) surface(err error) error {
	switch sig := err.(type) {
	case *throwSignal:
		return sig.asRuntimeError(i.ctx.File())
	case *returnSignal:
		return errors.New(errors.Syntax, "return outside of a method body")
	case *breakSignal:
		return errors.New(errors.Syntax, "break outside of a loop")
	}
	return err
}
