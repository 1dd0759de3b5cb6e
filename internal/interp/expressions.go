package interp

import (
	"strings"

	"github.com/o2lang/go-o2l/internal/ast"
	"github.com/o2lang/go-o2l/internal/errors"
	"github.com/o2lang/go-o2l/internal/interp/runtime"
)

// evalQualifiedIdentifier resolves a dotted name: first the full dotted
// form, then member access folded over the head binding, then the last
// component alone.
func (i *Interpreter) evalQualifiedIdentifier(n *ast.QualifiedIdentifier, ctx *Context) (runtime.Value, error) {
	full := strings.Join(n.Parts, ".")
	if value, ok := ctx.Get(full); ok {
		return value, nil
	}

	if head, ok := ctx.Get(n.Parts[0]); ok {
		value := head
		for _, member := range n.Parts[1:] {
			var err error
			value, err = i.memberOf(value, member, n)
			if err != nil {
				return nil, err
			}
		}
		return value, nil
	}

	last := n.Parts[len(n.Parts)-1]
	if value, ok := ctx.Get(last); ok {
		return value, nil
	}

	return nil, errAt(errors.Unresolved, n, "undefined reference %q", full)
}

// evalMemberAccess evaluates the receiver and dispatches on its variant.
func (i *Interpreter) evalMemberAccess(n *ast.MemberAccess, ctx *Context) (runtime.Value, error) {
	object, err := i.eval(n.Object, ctx)
	if err != nil {
		return nil, err
	}
	return i.memberOf(object, n.Member, n)
}

// memberOf reads a member of a value: object property, record field or
// enum member. Any other variant fails TypeMismatch.
func (i *Interpreter) memberOf(object runtime.Value, member string, node ast.Node) (runtime.Value, error) {
	switch recv := object.(type) {
	case *runtime.ObjectInstance:
		value, ok := recv.GetProperty(member)
		if !ok {
			return nil, errAt(errors.UnknownProperty, node,
				"object %q has no property %q", recv.Name, member)
		}
		return value, nil
	case *runtime.RecordInstance:
		value, ok := recv.Field(member)
		if !ok {
			return nil, errAt(errors.UnknownField, node,
				"record %q has no field %q", recv.TypeName, member)
		}
		return value, nil
	case *runtime.EnumValue:
		value, ok := recv.MemberValue(member)
		if !ok {
			return nil, errAt(errors.UnknownMember, node,
				"enum %q has no member %q", recv.Name, member)
		}
		return &runtime.IntegerValue{Value: value}, nil
	}
	return nil, errAt(errors.TypeMismatch, node,
		"cannot access member %q on a value of type %s", member, runtime.TypeName(object))
}

// evalMethodCall evaluates the receiver, then the arguments left-to-right,
// and dispatches. Calls through an evaluated receiver are external call
// sites; calls through 'this' are internal.
func (i *Interpreter) evalMethodCall(n *ast.MethodCall, ctx *Context) (runtime.Value, error) {
	object, err := i.eval(n.Object, ctx)
	if err != nil {
		return nil, err
	}

	args, err := i.evalArguments(n.Arguments, ctx)
	if err != nil {
		return nil, err
	}

	if obj, isObject := object.(*runtime.ObjectInstance); isObject {
		_, internal := n.Object.(*ast.ThisExpression)
		return i.callMethod(obj, n.Method, args, ctx, !internal, n.Pos())
	}

	// Built-in introspection methods on the runtime composite types.
	result, found, err := runtime.CallValueMethod(object, n.Method, args)
	if err != nil {
		return nil, at(err, n)
	}
	if !found {
		return nil, errAt(errors.UnknownMethod, n,
			"value of type %s has no method %q", runtime.TypeName(object), n.Method)
	}
	return result, nil
}

// evalFunctionCall resolves a bare call: the static Result forms, then the
// imported-object convenience (an object with exactly one method is
// callable as a function).
func (i *Interpreter) evalFunctionCall(n *ast.FunctionCall, ctx *Context) (runtime.Value, error) {
	args, err := i.evalArguments(n.Arguments, ctx)
	if err != nil {
		return nil, err
	}

	switch n.Name {
	case "Result.success":
		return &runtime.ResultValue{Success: true, Value: args[0]}, nil
	case "Result.error":
		return &runtime.ResultValue{Success: false, Value: args[0]}, nil
	}

	value, ok := ctx.Get(n.Name)
	if !ok {
		return nil, errAt(errors.Unresolved, n, "undefined function %q", n.Name)
	}

	if obj, isObject := value.(*runtime.ObjectInstance); isObject {
		names := obj.MethodNames()
		if len(names) == 1 {
			return i.callMethod(obj, names[0], args, ctx, true, n.Pos())
		}
		return nil, errAt(errors.Unresolved, n,
			"%q has %d methods; call one explicitly with %s.method(...)",
			n.Name, len(names), n.Name)
	}

	return nil, errAt(errors.Unresolved, n, "%q is not callable", n.Name)
}

// evalRecordInstantiation constructs a record value from Type(field=expr, ...).
func (i *Interpreter) evalRecordInstantiation(n *ast.RecordInstantiation, ctx *Context) (runtime.Value, error) {
	value, ok := ctx.Get(n.TypeName)
	if !ok {
		return nil, errAt(errors.Unresolved, n, "undefined record type %q", n.TypeName)
	}
	recordType, isRecord := value.(*runtime.RecordTypeValue)
	if !isRecord {
		return nil, errAt(errors.TypeMismatch, n,
			"%q is not a record type (got %s)", n.TypeName, runtime.TypeName(value))
	}

	fieldValues := make(map[string]runtime.Value, len(n.Fields))
	for _, field := range n.Fields {
		fieldValue, err := i.eval(field.Value, ctx)
		if err != nil {
			return nil, err
		}
		fieldValues[field.Name] = fieldValue
	}

	instance, err := recordType.CreateInstance(fieldValues)
	if err != nil {
		return nil, at(err, n)
	}
	return instance, nil
}

func (i *Interpreter) evalListLiteral(n *ast.ListLiteral, ctx *Context) (runtime.Value, error) {
	list := runtime.NewList("")
	for _, elemNode := range n.Elements {
		elem, err := i.eval(elemNode, ctx)
		if err != nil {
			return nil, err
		}
		if list.ElementType == "" {
			list.ElementType = runtime.TypeName(elem)
		}
		list.Add(elem)
	}
	return list, nil
}

func (i *Interpreter) evalMapLiteral(n *ast.MapLiteral, ctx *Context) (runtime.Value, error) {
	m := runtime.NewMap("", "")
	for _, entry := range n.Entries {
		key, err := i.eval(entry.Key, ctx)
		if err != nil {
			return nil, err
		}
		value, err := i.eval(entry.Value, ctx)
		if err != nil {
			return nil, err
		}
		if m.KeyType == "" {
			m.KeyType = runtime.TypeName(key)
			m.ValueType = runtime.TypeName(value)
		}
		m.Put(key, value)
	}
	return m, nil
}

func (i *Interpreter) evalSetLiteral(n *ast.SetLiteral, ctx *Context) (runtime.Value, error) {
	set := runtime.NewSet("")
	for _, elemNode := range n.Elements {
		elem, err := i.eval(elemNode, ctx)
		if err != nil {
			return nil, err
		}
		if set.ElementType == "" {
			set.ElementType = runtime.TypeName(elem)
		}
		set.Add(elem)
	}
	return set, nil
}

// evalBinary implements + - * / % and the comparisons. Numeric variants
// must match exactly: there is no implicit coercion.
func (i *Interpreter) evalBinary(n *ast.BinaryExpression, ctx *Context) (runtime.Value, error) {
	left, err := i.eval(n.Left, ctx)
	if err != nil {
		return nil, err
	}
	right, err := i.eval(n.Right, ctx)
	if err != nil {
		return nil, err
	}

	switch n.Operator {
	case "==":
		return &runtime.BooleanValue{Value: runtime.Equals(left, right)}, nil
	case "!=":
		return &runtime.BooleanValue{Value: !runtime.Equals(left, right)}, nil
	case "<", ">", "<=", ">=":
		return i.evalComparison(n, left, right)
	}

	return i.evalArithmetic(n, left, right)
}

func (i *Interpreter) evalArithmetic(n *ast.BinaryExpression, left, right runtime.Value) (runtime.Value, error) {
	op := n.Operator

	// Text concatenation is the only non-numeric binary form.
	if lt, ok := left.(*runtime.TextValue); ok {
		rt, ok := right.(*runtime.TextValue)
		if ok && op == "+" {
			return &runtime.TextValue{Value: lt.Value + rt.Value}, nil
		}
	}

	switch lv := left.(type) {
	case *runtime.IntegerValue:
		rv, ok := right.(*runtime.IntegerValue)
		if !ok {
			break
		}
		result, err := intArithmetic(n, op, lv.Value, rv.Value)
		if err != nil {
			return nil, err
		}
		return &runtime.IntegerValue{Value: result}, nil
	case *runtime.LongValue:
		rv, ok := right.(*runtime.LongValue)
		if !ok {
			break
		}
		result, err := intArithmetic(n, op, lv.Value, rv.Value)
		if err != nil {
			return nil, err
		}
		return &runtime.LongValue{Value: result}, nil
	case *runtime.FloatValue:
		rv, ok := right.(*runtime.FloatValue)
		if !ok {
			break
		}
		result, err := floatArithmetic(n, op, float64(lv.Value), float64(rv.Value))
		if err != nil {
			return nil, err
		}
		return &runtime.FloatValue{Value: float32(result)}, nil
	case *runtime.DoubleValue:
		rv, ok := right.(*runtime.DoubleValue)
		if !ok {
			break
		}
		result, err := floatArithmetic(n, op, lv.Value, rv.Value)
		if err != nil {
			return nil, err
		}
		return &runtime.DoubleValue{Value: result}, nil
	}

	return nil, errAt(errors.TypeMismatch, n,
		"operator %q is not defined for %s and %s",
		op, runtime.TypeName(left), runtime.TypeName(right))
}

func intArithmetic(n ast.Node, op string, a, b int64) (int64, error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		if b == 0 {
			return 0, errAt(errors.DivisionByZero, n, "division by zero")
		}
		return a / b, nil
	case "%":
		if b == 0 {
			return 0, errAt(errors.DivisionByZero, n, "division by zero")
		}
		return a % b, nil
	}
	return 0, errAt(errors.TypeMismatch, n, "unknown operator %q", op)
}

func floatArithmetic(n ast.Node, op string, a, b float64) (float64, error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		return a / b, nil
	case "%":
		return 0, errAt(errors.TypeMismatch, n, "operator %% is only defined for integer variants")
	}
	return 0, errAt(errors.TypeMismatch, n, "unknown operator %q", op)
}

// evalComparison implements < > <= >= for matching numeric variants and
// lexicographic Text comparison.
func (i *Interpreter) evalComparison(n *ast.BinaryExpression, left, right runtime.Value) (runtime.Value, error) {
	var cmp int
	matched := true

	switch lv := left.(type) {
	case *runtime.IntegerValue:
		rv, ok := right.(*runtime.IntegerValue)
		if !ok {
			matched = false
			break
		}
		cmp = compareInt(lv.Value, rv.Value)
	case *runtime.LongValue:
		rv, ok := right.(*runtime.LongValue)
		if !ok {
			matched = false
			break
		}
		cmp = compareInt(lv.Value, rv.Value)
	case *runtime.FloatValue:
		rv, ok := right.(*runtime.FloatValue)
		if !ok {
			matched = false
			break
		}
		cmp = compareFloat(float64(lv.Value), float64(rv.Value))
	case *runtime.DoubleValue:
		rv, ok := right.(*runtime.DoubleValue)
		if !ok {
			matched = false
			break
		}
		cmp = compareFloat(lv.Value, rv.Value)
	case *runtime.TextValue:
		rv, ok := right.(*runtime.TextValue)
		if !ok {
			matched = false
			break
		}
		cmp = strings.Compare(lv.Value, rv.Value)
	default:
		matched = false
	}

	if !matched {
		return nil, errAt(errors.TypeMismatch, n,
			"operator %q is not defined for %s and %s",
			n.Operator, runtime.TypeName(left), runtime.TypeName(right))
	}

	var result bool
	switch n.Operator {
	case "<":
		result = cmp < 0
	case ">":
		result = cmp > 0
	case "<=":
		result = cmp <= 0
	case ">=":
		result = cmp >= 0
	}
	return &runtime.BooleanValue{Value: result}, nil
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// evalLogical implements && and || with left-to-right short-circuit
// evaluation. Both operands must be Bool when evaluated.
func (i *Interpreter) evalLogical(n *ast.LogicalExpression, ctx *Context) (runtime.Value, error) {
	ctx.PushFrame("operator "+n.Operator, n.Pos())
	defer ctx.PopFrame()

	left, err := i.eval(n.Left, ctx)
	if err != nil {
		return nil, err
	}
	lb, ok := left.(*runtime.BooleanValue)
	if !ok {
		return nil, errAt(errors.TypeMismatch, n,
			"left operand of %q must be Bool, got %s", n.Operator, runtime.TypeName(left))
	}

	// Short-circuit: the unevaluated operand is skipped entirely.
	if n.Operator == "&&" && !lb.Value {
		return &runtime.BooleanValue{Value: false}, nil
	}
	if n.Operator == "||" && lb.Value {
		return &runtime.BooleanValue{Value: true}, nil
	}

	right, err := i.eval(n.Right, ctx)
	if err != nil {
		return nil, err
	}
	rb, ok := right.(*runtime.BooleanValue)
	if !ok {
		return nil, errAt(errors.TypeMismatch, n,
			"right operand of %q must be Bool, got %s", n.Operator, runtime.TypeName(right))
	}
	return &runtime.BooleanValue{Value: rb.Value}, nil
}

// evalUnary implements prefix ! (Bool) and - (numeric, variant-preserving).
func (i *Interpreter) evalUnary(n *ast.UnaryExpression, ctx *Context) (runtime.Value, error) {
	ctx.PushFrame("operator "+n.Operator, n.Pos())
	defer ctx.PopFrame()

	operand, err := i.eval(n.Operand, ctx)
	if err != nil {
		return nil, err
	}

	switch n.Operator {
	case "!":
		b, ok := operand.(*runtime.BooleanValue)
		if !ok {
			return nil, errAt(errors.TypeMismatch, n,
				"operator ! requires Bool, got %s", runtime.TypeName(operand))
		}
		return &runtime.BooleanValue{Value: !b.Value}, nil
	case "-":
		switch v := operand.(type) {
		case *runtime.IntegerValue:
			return &runtime.IntegerValue{Value: -v.Value}, nil
		case *runtime.LongValue:
			return &runtime.LongValue{Value: -v.Value}, nil
		case *runtime.FloatValue:
			return &runtime.FloatValue{Value: -v.Value}, nil
		case *runtime.DoubleValue:
			return &runtime.DoubleValue{Value: -v.Value}, nil
		}
		return nil, errAt(errors.TypeMismatch, n,
			"operator - requires a numeric variant, got %s", runtime.TypeName(operand))
	}

	return nil, errAt(errors.TypeMismatch, n, "unknown unary operator %q", n.Operator)
}
