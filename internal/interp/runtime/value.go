// Package runtime provides the runtime value types of the O²L interpreter:
// primitive values, shared composite instances, and the environment used
// for scoped variable storage.
package runtime

import (
	"strconv"
	"strings"
)

// Value is the interface implemented by every O²L runtime value.
type Value interface {
	// Type returns the canonical type tag ("Int", "Text", "List<T>", ...).
	Type() string

	// Inspect returns the string rendering used by debug output and
	// runtime diagnostics.
	Inspect() string
}

// IntegerValue is a signed 64-bit integer.
type IntegerValue struct {
	Value int64
}

func (i *IntegerValue) Type() string    { return "Int" }
func (i *IntegerValue) Inspect() string { return strconv.FormatInt(i.Value, 10) }

// LongValue is the widest-available signed integer variant.
type LongValue struct {
	Value int64
}

func (l *LongValue) Type() string    { return "Long" }
func (l *LongValue) Inspect() string { return strconv.FormatInt(l.Value, 10) }

// FloatValue is a 32-bit floating point number.
type FloatValue struct {
	Value float32
}

func (f *FloatValue) Type() string { return "Float" }

func (f *FloatValue) Inspect() string {
	return strconv.FormatFloat(float64(f.Value), 'g', -1, 32)
}

// DoubleValue is a 64-bit floating point number.
type DoubleValue struct {
	Value float64
}

func (d *DoubleValue) Type() string { return "Double" }

func (d *DoubleValue) Inspect() string {
	return strconv.FormatFloat(d.Value, 'g', -1, 64)
}

// BooleanValue is true or false.
type BooleanValue struct {
	Value bool
}

func (b *BooleanValue) Type() string { return "Bool" }

func (b *BooleanValue) Inspect() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// CharValue is a single Unicode codepoint.
type CharValue struct {
	Value rune
}

func (c *CharValue) Type() string    { return "Char" }
func (c *CharValue) Inspect() string { return string(c.Value) }

// TextValue is an immutable UTF-8 string. Text behaves as a value type.
type TextValue struct {
	Value string
}

func (t *TextValue) Type() string    { return "Text" }
func (t *TextValue) Inspect() string { return t.Value }

// TypeName returns the canonical type tag of a value, tolerating nil.
func TypeName(v Value) string {
	if v == nil {
		return "Void"
	}
	return v.Type()
}

// Equals compares two values. Primitives compare structurally within their
// own variant; cross-variant comparison is false (no implicit coercion).
// Composites delegate to the underlying type: records are structural,
// objects compare by identity, collections element-wise.
func Equals(a, b Value) bool {
	switch av := a.(type) {
	case *IntegerValue:
		bv, ok := b.(*IntegerValue)
		return ok && av.Value == bv.Value
	case *LongValue:
		bv, ok := b.(*LongValue)
		return ok && av.Value == bv.Value
	case *FloatValue:
		bv, ok := b.(*FloatValue)
		return ok && av.Value == bv.Value
	case *DoubleValue:
		bv, ok := b.(*DoubleValue)
		return ok && av.Value == bv.Value
	case *BooleanValue:
		bv, ok := b.(*BooleanValue)
		return ok && av.Value == bv.Value
	case *CharValue:
		bv, ok := b.(*CharValue)
		return ok && av.Value == bv.Value
	case *TextValue:
		bv, ok := b.(*TextValue)
		return ok && av.Value == bv.Value
	case *ObjectInstance:
		return a == b
	case *RecordInstance:
		bv, ok := b.(*RecordInstance)
		return ok && av.Equals(bv)
	case *RecordTypeValue:
		return a == b
	case *ProtocolValue:
		return a == b
	case *EnumValue:
		return a == b
	case *ListValue:
		bv, ok := b.(*ListValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equals(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *SetValue:
		bv, ok := b.(*SetValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for _, e := range av.Elements {
			if !bv.Contains(e) {
				return false
			}
		}
		return true
	case *MapValue:
		bv, ok := b.(*MapValue)
		if !ok || len(av.Entries) != len(bv.Entries) {
			return false
		}
		for _, entry := range av.Entries {
			other, found := bv.Get(entry.Key)
			if !found || !Equals(entry.Value, other) {
				return false
			}
		}
		return true
	case *ResultValue:
		bv, ok := b.(*ResultValue)
		return ok && av.Success == bv.Success && Equals(av.Value, bv.Value)
	case *ErrorValue:
		bv, ok := b.(*ErrorValue)
		return ok && av.Message == bv.Message
	}
	return a == b
}

// Truthy implements the implicit branch-condition test applied by if and
// while only: Bool maps to itself, Int is true iff non-zero, Text is true
// iff non-empty, every other variant is unconditionally true.
func Truthy(v Value) bool {
	switch tv := v.(type) {
	case *BooleanValue:
		return tv.Value
	case *IntegerValue:
		return tv.Value != 0
	case *TextValue:
		return tv.Value != ""
	}
	return true
}

// IsNumeric reports whether the value is one of the numeric variants.
func IsNumeric(v Value) bool {
	switch v.(type) {
	case *IntegerValue, *LongValue, *FloatValue, *DoubleValue:
		return true
	}
	return false
}

// inspectList renders a comma-separated element list.
func inspectList(elems []Value) string {
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = e.Inspect()
	}
	return strings.Join(parts, ", ")
}
