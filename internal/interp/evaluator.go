package interp

import (
	"github.com/o2lang/go-o2l/internal/ast"
	"github.com/o2lang/go-o2l/internal/errors"
	"github.com/o2lang/go-o2l/internal/interp/runtime"
)

// zero is the default result of constructs that produce no value, such as
// an if without an else branch.
func zero() runtime.Value {
	return &runtime.IntegerValue{Value: 0}
}

// eval evaluates a node in the given context. Control-flow signals
// (return, break, throw) travel the error path as typed signals; every
// other error is a *errors.RuntimeError.
func (i *Interpreter) eval(node ast.Node, ctx *Context) (runtime.Value, error) {
	switch n := node.(type) {
	// Declarations
	case *ast.ObjectDeclaration:
		return i.evalObjectDeclaration(n, ctx)
	case *ast.ProtocolDeclaration:
		return i.evalProtocolDeclaration(n)
	case *ast.RecordDeclaration:
		return i.evalRecordDeclaration(n)
	case *ast.EnumDeclaration:
		return i.evalEnumDeclaration(n)
	case *ast.NamespaceDeclaration:
		return i.evalNamespaceDeclaration(n, ctx)
	case *ast.ImportDeclaration:
		// Imports are processed by the driver's register pass.
		return zero(), nil

	// Statements
	case *ast.BlockStatement:
		return i.evalBlock(n, ctx)
	case *ast.VariableDeclaration:
		value, err := i.eval(n.Value, ctx)
		if err != nil {
			return nil, err
		}
		if err := ctx.Define(n.Name, value); err != nil {
			return nil, at(err, n)
		}
		return nil, nil
	case *ast.ConstDeclaration:
		value, err := i.eval(n.Value, ctx)
		if err != nil {
			return nil, err
		}
		if err := ctx.DefineConstant(n.Name, value); err != nil {
			return nil, at(err, n)
		}
		return nil, nil
	case *ast.AssignmentStatement:
		value, err := i.eval(n.Value, ctx)
		if err != nil {
			return nil, err
		}
		if err := ctx.Assign(n.Name, value); err != nil {
			return nil, at(err, n)
		}
		return nil, nil
	case *ast.PropertyAssignment:
		self, err := ctx.CurrentThis()
		if err != nil {
			return nil, at(err, n)
		}
		value, err := i.eval(n.Value, ctx)
		if err != nil {
			return nil, err
		}
		self.SetProperty(n.Name, value)
		return nil, nil
	case *ast.IfStatement:
		return i.evalIf(n, ctx)
	case *ast.WhileStatement:
		return i.evalWhile(n, ctx)
	case *ast.BreakStatement:
		return nil, &breakSignal{}
	case *ast.ReturnStatement:
		var value runtime.Value = zero()
		if n.Value != nil {
			var err error
			value, err = i.eval(n.Value, ctx)
			if err != nil {
				return nil, err
			}
		}
		return nil, &returnSignal{value: value}
	case *ast.ThrowStatement:
		return i.evalThrow(n, ctx)
	case *ast.TryStatement:
		return i.evalTry(n, ctx)
	case *ast.ExpressionStatement:
		return i.eval(n.Expression, ctx)

	// Expressions
	case *ast.IntegerLiteral:
		return &runtime.IntegerValue{Value: n.Value}, nil
	case *ast.LongLiteral:
		return &runtime.LongValue{Value: n.Value}, nil
	case *ast.FloatLiteral:
		return &runtime.FloatValue{Value: n.Value}, nil
	case *ast.DoubleLiteral:
		return &runtime.DoubleValue{Value: n.Value}, nil
	case *ast.BooleanLiteral:
		return &runtime.BooleanValue{Value: n.Value}, nil
	case *ast.CharLiteral:
		return &runtime.CharValue{Value: n.Value}, nil
	case *ast.StringLiteral:
		return &runtime.TextValue{Value: n.Value}, nil
	case *ast.Identifier:
		value, ok := ctx.Get(n.Value)
		if !ok {
			return nil, errAt(errors.Unresolved, n, "undefined variable %q", n.Value)
		}
		return value, nil
	case *ast.QualifiedIdentifier:
		return i.evalQualifiedIdentifier(n, ctx)
	case *ast.ThisExpression:
		self, err := ctx.CurrentThis()
		if err != nil {
			return nil, at(err, n)
		}
		return self, nil
	case *ast.PropertyAccess:
		self, err := ctx.CurrentThis()
		if err != nil {
			return nil, at(err, n)
		}
		value, ok := self.GetProperty(n.Name)
		if !ok {
			return nil, errAt(errors.UnknownProperty, n,
				"object %q has no property %q", self.Name, n.Name)
		}
		return value, nil
	case *ast.MemberAccess:
		return i.evalMemberAccess(n, ctx)
	case *ast.MethodCall:
		return i.evalMethodCall(n, ctx)
	case *ast.FunctionCall:
		return i.evalFunctionCall(n, ctx)
	case *ast.NewExpression:
		return i.evalNewExpression(n, ctx)
	case *ast.RecordInstantiation:
		return i.evalRecordInstantiation(n, ctx)
	case *ast.ListLiteral:
		return i.evalListLiteral(n, ctx)
	case *ast.MapLiteral:
		return i.evalMapLiteral(n, ctx)
	case *ast.SetLiteral:
		return i.evalSetLiteral(n, ctx)
	case *ast.BinaryExpression:
		return i.evalBinary(n, ctx)
	case *ast.LogicalExpression:
		return i.evalLogical(n, ctx)
	case *ast.UnaryExpression:
		return i.evalUnary(n, ctx)
	}

	return nil, errAt(errors.Syntax, node, "cannot evaluate node %T", node)
}

// evalBlock evaluates statements in order and yields the last expression's
// value, defaulting to Int(0) for bodies without one. Return, break and
// throw signals propagate uncaught.
func (i *Interpreter) evalBlock(block *ast.BlockStatement, ctx *Context) (runtime.Value, error) {
	result := zero()
	for _, stmt := range block.Statements {
		value, err := i.eval(stmt, ctx)
		if err != nil {
			return nil, err
		}
		if value != nil {
			result = value
		}
	}
	return result, nil
}

// evalIf tests truthiness of the condition and evaluates the selected
// branch. The absent else-branch yields Int(0).
func (i *Interpreter) evalIf(n *ast.IfStatement, ctx *Context) (runtime.Value, error) {
	cond, err := i.eval(n.Condition, ctx)
	if err != nil {
		return nil, err
	}
	if runtime.Truthy(cond) {
		return i.eval(n.Consequence, ctx)
	}
	if n.Alternative != nil {
		return i.eval(n.Alternative, ctx)
	}
	return zero(), nil
}

// evalWhile evaluates the body while the condition is truthy. A break
// signal terminates the loop and is not propagated further; return
// propagates.
func (i *Interpreter) evalWhile(n *ast.WhileStatement, ctx *Context) (runtime.Value, error) {
	for {
		cond, err := i.eval(n.Condition, ctx)
		if err != nil {
			return nil, err
		}
		if !runtime.Truthy(cond) {
			return zero(), nil
		}
		if _, err := i.eval(n.Body, ctx); err != nil {
			if _, isBreak := err.(*breakSignal); isBreak {
				return zero(), nil
			}
			return nil, err
		}
	}
}

// evalThrow raises a throw signal carrying the evaluated value and the call
// stack frozen at the throw site.
func (i *Interpreter) evalThrow(n *ast.ThrowStatement, ctx *Context) (runtime.Value, error) {
	ctx.PushFrame("throw", n.Pos())
	defer ctx.PopFrame()

	value, err := i.eval(n.Value, ctx)
	if err != nil {
		return nil, err
	}
	return nil, &throwSignal{value: value, trace: ctx.Frames(), pos: n.Pos()}
}

// evalTry implements try/catch/finally. catch intercepts only throw
// signals; finally runs on every exit path, and an error raised by finally
// supersedes any in-flight error.
func (i *Interpreter) evalTry(n *ast.TryStatement, ctx *Context) (runtime.Value, error) {
	result, err := i.eval(n.Try, ctx)

	if thrown, isThrow := err.(*throwSignal); isThrow && n.Catch != nil {
		result, err = i.evalCatch(n, thrown, ctx)
	}

	if n.Finally != nil {
		if _, ferr := i.eval(n.Finally, ctx); ferr != nil {
			return nil, ferr
		}
	}

	if err != nil {
		return nil, err
	}
	return result, nil
}

// evalCatch binds the thrown value to the catch variable in a fresh scope
// and runs the handler; the handler's result becomes the block's result.
func (i *Interpreter) evalCatch(n *ast.TryStatement, thrown *throwSignal, ctx *Context) (runtime.Value, error) {
	ctx.PushScope()
	defer ctx.PopScope()

	if err := ctx.Define(n.CatchVariable, thrown.value); err != nil {
		return nil, at(err, n)
	}
	return i.eval(n.Catch, ctx)
}

// at anchors a RuntimeError at a node's position if it has none yet.
func at(err error, node ast.Node) error {
	if rerr, ok := err.(*errors.RuntimeError); ok && rerr.Pos == nil {
		pos := node.Pos()
		rerr.Pos = &pos
	}
	return err
}

// errAt creates a RuntimeError anchored at a node.
func errAt(kind errors.Kind, node ast.Node, format string, args ...any) error {
	return errors.NewAt(kind, node.Pos(), format, args...)
}
