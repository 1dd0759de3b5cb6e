package runtime

import (
	"github.com/o2lang/go-o2l/internal/ast"
	"github.com/o2lang/go-o2l/internal/errors"
)

// RecordTypeValue is the first-class value of a record declaration: its
// name and ordered field list. Field type names are kept for diagnostics
// and introspection; values are not checked against them at construction.
type RecordTypeValue struct {
	Name   string
	Fields []ast.RecordField
}

func (rt *RecordTypeValue) Type() string { return "RecordType" }

func (rt *RecordTypeValue) Inspect() string {
	out := "Record " + rt.Name + " { "
	for i, f := range rt.Fields {
		if i > 0 {
			out += ", "
		}
		out += f.Name + ": " + f.Type
	}
	return out + " }"
}

// HasField reports whether the record type declares a field.
func (rt *RecordTypeValue) HasField(name string) bool {
	for _, f := range rt.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// CreateInstance constructs a RecordInstance with every declared field
// assigned exactly once. Absent fields fail MissingField; extra keys fail
// UnknownField.
func (rt *RecordTypeValue) CreateInstance(fieldValues map[string]Value) (*RecordInstance, error) {
	for _, f := range rt.Fields {
		if _, ok := fieldValues[f.Name]; !ok {
			return nil, errors.New(errors.MissingField,
				"missing required field %q for record type %q", f.Name, rt.Name)
		}
	}
	for name := range fieldValues {
		if !rt.HasField(name) {
			return nil, errors.New(errors.UnknownField,
				"unknown field %q for record type %q", name, rt.Name)
		}
	}

	inst := &RecordInstance{TypeName: rt.Name, fields: make(map[string]Value, len(rt.Fields))}
	for _, f := range rt.Fields {
		inst.fieldOrder = append(inst.fieldOrder, f.Name)
		inst.fields[f.Name] = fieldValues[f.Name]
	}
	return inst, nil
}

// RecordInstance is a constructed record value. The field set is immutable
// after construction; equality is structural.
type RecordInstance struct {
	TypeName   string
	fieldOrder []string
	fields     map[string]Value
}

func (r *RecordInstance) Type() string { return r.TypeName }

func (r *RecordInstance) Inspect() string {
	out := r.TypeName + " { "
	for i, name := range r.fieldOrder {
		if i > 0 {
			out += ", "
		}
		out += name + " = " + r.fields[name].Inspect()
	}
	return out + " }"
}

// Field returns the value of a field. The second result is false when the
// record has no such field.
func (r *RecordInstance) Field(name string) (Value, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// FieldNames returns the field names in declaration order.
func (r *RecordInstance) FieldNames() []string {
	out := make([]string, len(r.fieldOrder))
	copy(out, r.fieldOrder)
	return out
}

// Equals reports structural equality: matching type names and every field
// comparing equal.
func (r *RecordInstance) Equals(other *RecordInstance) bool {
	if other == nil || r.TypeName != other.TypeName {
		return false
	}
	if len(r.fields) != len(other.fields) {
		return false
	}
	for name, v := range r.fields {
		ov, ok := other.fields[name]
		if !ok || !Equals(v, ov) {
			return false
		}
	}
	return true
}
