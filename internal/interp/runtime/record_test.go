package runtime

import (
	"testing"

	"github.com/o2lang/go-o2l/internal/ast"
	"github.com/o2lang/go-o2l/internal/errors"
)

func pairType() *RecordTypeValue {
	return &RecordTypeValue{
		Name: "Pair",
		Fields: []ast.RecordField{
			{Name: "a", Type: "Int"},
			{Name: "b", Type: "Int"},
		},
	}
}

func TestRecordCreateInstance(t *testing.T) {
	inst, err := pairType().CreateInstance(map[string]Value{
		"a": &IntegerValue{Value: 1},
		"b": &IntegerValue{Value: 2},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	v, ok := inst.Field("a")
	if !ok || v.(*IntegerValue).Value != 1 {
		t.Error("field a not stored")
	}
	if _, ok := inst.Field("missing"); ok {
		t.Error("missing field should not resolve")
	}

	names := inst.FieldNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("field order lost: %v", names)
	}
}

func TestRecordMissingField(t *testing.T) {
	_, err := pairType().CreateInstance(map[string]Value{
		"a": &IntegerValue{Value: 1},
	})
	requireKind(t, err, errors.MissingField)
}

func TestRecordUnknownField(t *testing.T) {
	_, err := pairType().CreateInstance(map[string]Value{
		"a": &IntegerValue{Value: 1},
		"b": &IntegerValue{Value: 2},
		"c": &IntegerValue{Value: 3},
	})
	requireKind(t, err, errors.UnknownField)
}

func TestRecordFieldTypesAreNotEnforced(t *testing.T) {
	// Declared field type names are informational at construction time.
	_, err := pairType().CreateInstance(map[string]Value{
		"a": &TextValue{Value: "not an int"},
		"b": &IntegerValue{Value: 2},
	})
	if err != nil {
		t.Fatalf("field values must not be type-checked: %v", err)
	}
}

func TestRecordStructuralEquality(t *testing.T) {
	make := func(a, b int64) *RecordInstance {
		inst, err := pairType().CreateInstance(map[string]Value{
			"a": &IntegerValue{Value: a},
			"b": &IntegerValue{Value: b},
		})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		return inst
	}

	if !make(1, 2).Equals(make(1, 2)) {
		t.Error("structurally equal records should compare equal")
	}
	if make(1, 2).Equals(make(1, 3)) {
		t.Error("records with different field values must not be equal")
	}

	other := &RecordTypeValue{
		Name:   "Other",
		Fields: []ast.RecordField{{Name: "a", Type: "Int"}, {Name: "b", Type: "Int"}},
	}
	otherInst, _ := other.CreateInstance(map[string]Value{
		"a": &IntegerValue{Value: 1},
		"b": &IntegerValue{Value: 2},
	})
	if make(1, 2).Equals(otherInst) {
		t.Error("records of different types must not be equal")
	}
}

func TestRecordInspect(t *testing.T) {
	inst, _ := pairType().CreateInstance(map[string]Value{
		"a": &IntegerValue{Value: 1},
		"b": &IntegerValue{Value: 2},
	})
	if inst.Inspect() != "Pair { a = 1, b = 2 }" {
		t.Errorf("unexpected rendering: %s", inst.Inspect())
	}
}

func TestEnumMembers(t *testing.T) {
	enum := &EnumValue{
		Name: "Color",
		Members: []EnumMember{
			{Name: "RED", Value: 0},
			{Name: "GREEN", Value: 10},
			{Name: "BLUE", Value: 11},
		},
	}

	v, ok := enum.MemberValue("GREEN")
	if !ok || v != 10 {
		t.Errorf("expected GREEN=10, got %d (ok=%v)", v, ok)
	}
	if !enum.HasMember("RED") {
		t.Error("RED should exist")
	}
	if enum.HasMember("PURPLE") {
		t.Error("PURPLE should not exist")
	}
}
