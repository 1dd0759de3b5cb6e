package runtime

import (
	"github.com/o2lang/go-o2l/internal/errors"
)

// CallValueMethod dispatches the built-in introspection methods offered by
// the runtime composite types (lists, maps, sets, results, errors, text).
// The third result is false when the receiver has no such method; the
// caller turns that into an UnknownMethod error with position context.
func CallValueMethod(recv Value, name string, args []Value) (Value, bool, error) {
	switch v := recv.(type) {
	case *ListValue:
		return callListMethod(v, name, args)
	case *MapValue:
		return callMapMethod(v, name, args)
	case *SetValue:
		return callSetMethod(v, name, args)
	case *ResultValue:
		return callResultMethod(v, name, args)
	case *ErrorValue:
		return callErrorMethod(v, name, args)
	case *TextValue:
		return callTextMethod(v, name, args)
	}
	return nil, false, nil
}

func arity(name string, args []Value, want int) error {
	if len(args) != want {
		return errors.New(errors.Arity,
			"%s expects %d argument(s), got %d", name, want, len(args))
	}
	return nil
}

func callListMethod(l *ListValue, name string, args []Value) (Value, bool, error) {
	switch name {
	case "add":
		if err := arity("List.add", args, 1); err != nil {
			return nil, true, err
		}
		l.Add(args[0])
		return l, true, nil
	case "get":
		if err := arity("List.get", args, 1); err != nil {
			return nil, true, err
		}
		idx, ok := args[0].(*IntegerValue)
		if !ok {
			return nil, true, errors.New(errors.TypeMismatch,
				"List.get expects an Int index, got %s", TypeName(args[0]))
		}
		v, ok := l.Get(idx.Value)
		if !ok {
			return nil, true, errors.New(errors.TypeMismatch,
				"list index %d out of range (size %d)", idx.Value, l.Len())
		}
		return v, true, nil
	case "size":
		if err := arity("List.size", args, 0); err != nil {
			return nil, true, err
		}
		return &IntegerValue{Value: l.Len()}, true, nil
	case "contains":
		if err := arity("List.contains", args, 1); err != nil {
			return nil, true, err
		}
		for _, e := range l.Elements {
			if Equals(e, args[0]) {
				return &BooleanValue{Value: true}, true, nil
			}
		}
		return &BooleanValue{Value: false}, true, nil
	}
	return nil, false, nil
}

func callMapMethod(m *MapValue, name string, args []Value) (Value, bool, error) {
	switch name {
	case "put":
		if err := arity("Map.put", args, 2); err != nil {
			return nil, true, err
		}
		m.Put(args[0], args[1])
		return m, true, nil
	case "get":
		if err := arity("Map.get", args, 1); err != nil {
			return nil, true, err
		}
		v, ok := m.Get(args[0])
		if !ok {
			return nil, true, errors.New(errors.UnknownMember,
				"map has no entry for key %s", args[0].Inspect())
		}
		return v, true, nil
	case "has":
		if err := arity("Map.has", args, 1); err != nil {
			return nil, true, err
		}
		return &BooleanValue{Value: m.Has(args[0])}, true, nil
	case "size":
		if err := arity("Map.size", args, 0); err != nil {
			return nil, true, err
		}
		return &IntegerValue{Value: m.Len()}, true, nil
	}
	return nil, false, nil
}

func callSetMethod(s *SetValue, name string, args []Value) (Value, bool, error) {
	switch name {
	case "add":
		if err := arity("Set.add", args, 1); err != nil {
			return nil, true, err
		}
		s.Add(args[0])
		return s, true, nil
	case "contains":
		if err := arity("Set.contains", args, 1); err != nil {
			return nil, true, err
		}
		return &BooleanValue{Value: s.Contains(args[0])}, true, nil
	case "size":
		if err := arity("Set.size", args, 0); err != nil {
			return nil, true, err
		}
		return &IntegerValue{Value: s.Len()}, true, nil
	}
	return nil, false, nil
}

func callResultMethod(r *ResultValue, name string, args []Value) (Value, bool, error) {
	switch name {
	case "isSuccess":
		if err := arity("Result.isSuccess", args, 0); err != nil {
			return nil, true, err
		}
		return &BooleanValue{Value: r.Success}, true, nil
	case "getResult":
		if err := arity("Result.getResult", args, 0); err != nil {
			return nil, true, err
		}
		if !r.Success {
			return nil, true, errors.New(errors.TypeMismatch,
				"cannot get the result of an error Result")
		}
		return r.Value, true, nil
	case "getError":
		if err := arity("Result.getError", args, 0); err != nil {
			return nil, true, err
		}
		if r.Success {
			return nil, true, errors.New(errors.TypeMismatch,
				"cannot get the error of a success Result")
		}
		return r.Value, true, nil
	}
	return nil, false, nil
}

func callErrorMethod(e *ErrorValue, name string, args []Value) (Value, bool, error) {
	switch name {
	case "getMessage":
		if err := arity("Error.getMessage", args, 0); err != nil {
			return nil, true, err
		}
		return &TextValue{Value: e.Message}, true, nil
	}
	return nil, false, nil
}

func callTextMethod(t *TextValue, name string, args []Value) (Value, bool, error) {
	switch name {
	case "length":
		if err := arity("Text.length", args, 0); err != nil {
			return nil, true, err
		}
		return &IntegerValue{Value: int64(len([]rune(t.Value)))}, true, nil
	}
	return nil, false, nil
}
