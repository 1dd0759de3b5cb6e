// Package modules implements the O²L module loader: it maps import paths
// to source files, parses and evaluates them once, caches loaded units by
// canonical path and detects circular imports.
package modules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/o2lang/go-o2l/internal/ast"
	"github.com/o2lang/go-o2l/internal/builtins"
	"github.com/o2lang/go-o2l/internal/errors"
	"github.com/o2lang/go-o2l/internal/interp/runtime"
	"github.com/o2lang/go-o2l/internal/lexer"
	"github.com/o2lang/go-o2l/internal/parser"
)

// SourceExtension is the file extension of O²L source units.
const SourceExtension = ".obq"

// EvalUnit evaluates a parsed unit and returns its externally-visible
// top-level bindings. The interpreter supplies it; the loader owns file
// resolution, parsing, caching and cycle detection.
type EvalUnit func(program *ast.Program, file string) (map[string]runtime.Value, error)

// Unit is one loaded source unit.
type Unit struct {
	Path    string // canonical file path
	Program *ast.Program
	Exports map[string]runtime.Value
}

// Loader finds, parses and links external source units. System imports
// resolve against the interpreter's library root; @import imports resolve
// against the project root.
type Loader struct {
	systemRoot  string
	projectRoot string
	builtins    *builtins.Registry

	units   map[string]*Unit
	loading map[string]bool
}

// NewLoader creates a Loader with the given roots. The builtins registry
// may be nil; system imports then always resolve from the filesystem.
func NewLoader(systemRoot, projectRoot string, registry *builtins.Registry) *Loader {
	return &Loader{
		systemRoot:  systemRoot,
		projectRoot: projectRoot,
		builtins:    registry,
		units:       make(map[string]*Unit),
		loading:     make(map[string]bool),
	}
}

// LoadMethod resolves an import path and returns the named top-level
// object. When a specific method name is set, callers additionally bind an
// ObjectName_methodName alias; the returned handle is the object either
// way.
func (l *Loader) LoadMethod(path *ast.ImportPath, eval EvalUnit) (runtime.Value, error) {
	if obj, ok := l.lookupBuiltin(path); ok {
		return obj, nil
	}

	unit, err := l.loadUnit(path, eval)
	if err != nil {
		return nil, err
	}

	value, ok := unit.Exports[path.ObjectName]
	if !ok {
		return nil, errors.New(errors.Unresolved,
			"module %q declares no externally-visible object %q", path.String(), path.ObjectName)
	}
	return value, nil
}

// LoadAllMethods resolves a wildcard import and returns every
// externally-visible top-level name declared in the unit.
func (l *Loader) LoadAllMethods(path *ast.ImportPath, eval EvalUnit) (map[string]runtime.Value, error) {
	if obj, ok := l.lookupBuiltin(path); ok {
		return map[string]runtime.Value{path.ObjectName: obj}, nil
	}

	unit, err := l.loadUnit(path, eval)
	if err != nil {
		return nil, err
	}

	out := make(map[string]runtime.Value, len(unit.Exports))
	for name, value := range unit.Exports {
		out[name] = value
	}
	return out, nil
}

// lookupBuiltin serves system imports from the builtin bindings before any
// filesystem search.
func (l *Loader) lookupBuiltin(path *ast.ImportPath) (*runtime.ObjectInstance, bool) {
	if l.builtins == nil || path.UserImport {
		return nil, false
	}
	dotted := strings.Join(append(append([]string{}, path.Package...), path.ObjectName), ".")
	return l.builtins.Lookup(dotted)
}

// loadUnit finds, parses and evaluates a unit, serving repeats from the
// cache. A unit re-entered while still loading fails CircularImport.
func (l *Loader) loadUnit(path *ast.ImportPath, eval EvalUnit) (*Unit, error) {
	file, err := l.resolve(path)
	if err != nil {
		return nil, err
	}

	canonical, err := filepath.Abs(file)
	if err != nil {
		canonical = file
	}

	if unit, ok := l.units[canonical]; ok {
		return unit, nil
	}
	if l.loading[canonical] {
		return nil, errors.New(errors.CircularImport,
			"circular import detected while loading %q", path.String())
	}

	source, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.New(errors.ModuleNotFound,
			"cannot read module %q: %s", path.String(), err)
	}

	p := parser.New(lexer.New(string(source)))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, errors.New(errors.SyntaxInImport,
			"%s: %s", path.String(), errs[0].Error())
	}

	l.loading[canonical] = true
	defer delete(l.loading, canonical)

	exports, err := eval(program, file)
	if err != nil {
		if rerr, isRuntime := err.(*errors.RuntimeError); isRuntime && rerr.Kind == errors.Syntax {
			return nil, errors.New(errors.SyntaxInImport, "%s: %s", path.String(), rerr.Message)
		}
		return nil, err
	}

	unit := &Unit{Path: canonical, Program: program, Exports: exports}
	l.units[canonical] = unit
	return unit, nil
}

// resolve maps an import path into the filesystem. For import a.b.c.Obj
// the cascade is <root>/a/b/c/Obj.obq, <root>/a/b/c.obq, <root>/a/b/Obj.obq.
// @import paths resolve against the project root with the same cascade.
func (l *Loader) resolve(path *ast.ImportPath) (string, error) {
	root := l.systemRoot
	if path.UserImport {
		root = l.projectRoot
	}
	if root == "" {
		return "", errors.New(errors.ModuleNotFound,
			"no module root configured for import %q", path.String())
	}

	var candidates []string
	pkg := filepath.Join(path.Package...)

	candidates = append(candidates, filepath.Join(root, pkg, path.ObjectName+SourceExtension))
	if len(path.Package) > 0 {
		// <root>/a/b/c.obq: the last package component as the unit file.
		candidates = append(candidates, filepath.Join(root, pkg+SourceExtension))
		if len(path.Package) > 1 {
			parent := filepath.Join(path.Package[:len(path.Package)-1]...)
			candidates = append(candidates, filepath.Join(root, parent, path.ObjectName+SourceExtension))
		} else {
			candidates = append(candidates, filepath.Join(root, path.ObjectName+SourceExtension))
		}
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", errors.New(errors.ModuleNotFound,
		"module %q not found under %s (tried %s)",
		path.String(), root, fmt.Sprint(candidates))
}

// LoadedUnits returns the canonical paths of every cached unit.
func (l *Loader) LoadedUnits() []string {
	out := make([]string, 0, len(l.units))
	for path := range l.units {
		out = append(out, path)
	}
	return out
}
