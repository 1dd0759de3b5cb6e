package runtime

import "testing"

func TestEqualsWithinVariant(t *testing.T) {
	tests := []struct {
		a, b     Value
		expected bool
	}{
		{&IntegerValue{Value: 1}, &IntegerValue{Value: 1}, true},
		{&IntegerValue{Value: 1}, &IntegerValue{Value: 2}, false},
		{&LongValue{Value: 7}, &LongValue{Value: 7}, true},
		{&FloatValue{Value: 1.5}, &FloatValue{Value: 1.5}, true},
		{&DoubleValue{Value: 1.5}, &DoubleValue{Value: 1.5}, true},
		{&BooleanValue{Value: true}, &BooleanValue{Value: true}, true},
		{&CharValue{Value: 'a'}, &CharValue{Value: 'a'}, true},
		{&TextValue{Value: "x"}, &TextValue{Value: "x"}, true},
		{&TextValue{Value: "x"}, &TextValue{Value: "y"}, false},
	}

	for i, tt := range tests {
		if got := Equals(tt.a, tt.b); got != tt.expected {
			t.Errorf("tests[%d]: Equals(%s, %s) = %v, expected %v",
				i, tt.a.Inspect(), tt.b.Inspect(), got, tt.expected)
		}
	}
}

func TestEqualsNoCrossVariantCoercion(t *testing.T) {
	// Cross-variant comparison is false even for the same numeric value.
	tests := [][2]Value{
		{&IntegerValue{Value: 1}, &LongValue{Value: 1}},
		{&IntegerValue{Value: 1}, &DoubleValue{Value: 1}},
		{&FloatValue{Value: 1}, &DoubleValue{Value: 1}},
		{&IntegerValue{Value: 0}, &BooleanValue{Value: false}},
		{&TextValue{Value: "1"}, &IntegerValue{Value: 1}},
	}

	for i, pair := range tests {
		if Equals(pair[0], pair[1]) {
			t.Errorf("tests[%d]: %s == %s should be false across variants",
				i, pair[0].Type(), pair[1].Type())
		}
	}
}

func TestObjectEqualityIsIdentity(t *testing.T) {
	a := NewObjectInstance("Counter")
	b := NewObjectInstance("Counter")

	if !Equals(a, a) {
		t.Error("an object must equal itself")
	}
	if Equals(a, b) {
		t.Error("distinct instances must not be equal")
	}
}

func TestCollectionEqualityIsElementWise(t *testing.T) {
	listA := NewList("Int")
	listA.Add(&IntegerValue{Value: 1})
	listA.Add(&IntegerValue{Value: 2})

	listB := NewList("Int")
	listB.Add(&IntegerValue{Value: 1})
	listB.Add(&IntegerValue{Value: 2})

	if !Equals(listA, listB) {
		t.Error("element-wise equal lists should compare equal")
	}

	listB.Add(&IntegerValue{Value: 3})
	if Equals(listA, listB) {
		t.Error("lists of different lengths must not be equal")
	}

	setA := NewSet("Int")
	setA.Add(&IntegerValue{Value: 1})
	setA.Add(&IntegerValue{Value: 2})
	setB := NewSet("Int")
	setB.Add(&IntegerValue{Value: 2})
	setB.Add(&IntegerValue{Value: 1})
	if !Equals(setA, setB) {
		t.Error("sets compare without regard to insertion order")
	}

	mapA := NewMap("Text", "Int")
	mapA.Put(&TextValue{Value: "a"}, &IntegerValue{Value: 1})
	mapB := NewMap("Text", "Int")
	mapB.Put(&TextValue{Value: "a"}, &IntegerValue{Value: 1})
	if !Equals(mapA, mapB) {
		t.Error("maps with equal entries should compare equal")
	}
	mapB.Put(&TextValue{Value: "a"}, &IntegerValue{Value: 2})
	if Equals(mapA, mapB) {
		t.Error("maps with different values must not be equal")
	}
}

func TestTruthiness(t *testing.T) {
	tests := []struct {
		value    Value
		expected bool
	}{
		{&BooleanValue{Value: true}, true},
		{&BooleanValue{Value: false}, false},
		{&IntegerValue{Value: 0}, false},
		{&IntegerValue{Value: -3}, true},
		{&TextValue{Value: ""}, false},
		{&TextValue{Value: "x"}, true},
		// Every other variant is unconditionally true.
		{&DoubleValue{Value: 0}, true},
		{&LongValue{Value: 0}, true},
		{NewList("Int"), true},
		{NewObjectInstance("O"), true},
	}

	for i, tt := range tests {
		if got := Truthy(tt.value); got != tt.expected {
			t.Errorf("tests[%d]: Truthy(%s %s) = %v, expected %v",
				i, tt.value.Type(), tt.value.Inspect(), got, tt.expected)
		}
	}
}

func TestTypeNames(t *testing.T) {
	tests := []struct {
		value    Value
		expected string
	}{
		{&IntegerValue{Value: 1}, "Int"},
		{&LongValue{Value: 1}, "Long"},
		{&FloatValue{Value: 1}, "Float"},
		{&DoubleValue{Value: 1}, "Double"},
		{&BooleanValue{Value: true}, "Bool"},
		{&CharValue{Value: 'a'}, "Char"},
		{&TextValue{Value: ""}, "Text"},
		{NewList("Int"), "List<Int>"},
		{NewMap("Text", "Int"), "Map<Text, Int>"},
		{NewSet("Text"), "Set<Text>"},
		{&ResultValue{Success: true, Value: &IntegerValue{Value: 1}}, "Result"},
		{&ErrorValue{Message: "x"}, "Error"},
	}

	for i, tt := range tests {
		if got := tt.value.Type(); got != tt.expected {
			t.Errorf("tests[%d]: expected type %q, got %q", i, tt.expected, got)
		}
	}
}

func TestInspectRenderings(t *testing.T) {
	list := NewList("Int")
	list.Add(&IntegerValue{Value: 1})
	list.Add(&IntegerValue{Value: 2})
	if list.Inspect() != "[1, 2]" {
		t.Errorf("list rendering: %s", list.Inspect())
	}

	m := NewMap("Text", "Int")
	m.Put(&TextValue{Value: "a"}, &IntegerValue{Value: 1})
	if m.Inspect() != "{a: 1}" {
		t.Errorf("map rendering: %s", m.Inspect())
	}

	set := NewSet("Int")
	set.Add(&IntegerValue{Value: 3})
	if set.Inspect() != "(3)" {
		t.Errorf("set rendering: %s", set.Inspect())
	}

	obj := NewObjectInstance("Counter")
	if obj.Inspect() != "Counter instance" {
		t.Errorf("object rendering: %s", obj.Inspect())
	}
}
