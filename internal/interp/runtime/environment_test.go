package runtime

import (
	"testing"

	"github.com/o2lang/go-o2l/internal/errors"
)

func TestDefineAndGet(t *testing.T) {
	env := NewEnvironment()

	if err := env.Define("x", &IntegerValue{Value: 5}); err != nil {
		t.Fatalf("define failed: %v", err)
	}

	v, ok := env.Get("x")
	if !ok {
		t.Fatal("x not found")
	}
	if v.(*IntegerValue).Value != 5 {
		t.Errorf("expected 5, got %s", v.Inspect())
	}

	if _, ok := env.Get("missing"); ok {
		t.Error("missing should not resolve")
	}
}

func TestNestedScopeLookup(t *testing.T) {
	outer := NewEnvironment()
	_ = outer.Define("x", &IntegerValue{Value: 1})

	inner := NewEnclosedEnvironment(outer)
	v, ok := inner.Get("x")
	if !ok || v.(*IntegerValue).Value != 1 {
		t.Fatal("inner scope should see outer binding")
	}

	// Shadowing a variable in an outer scope is permitted.
	if err := inner.Define("x", &IntegerValue{Value: 2}); err != nil {
		t.Fatalf("shadowing failed: %v", err)
	}
	v, _ = inner.Get("x")
	if v.(*IntegerValue).Value != 2 {
		t.Error("innermost match should win")
	}
	v, _ = outer.Get("x")
	if v.(*IntegerValue).Value != 1 {
		t.Error("outer binding must be untouched by shadowing")
	}
}

func TestAssignWalksChain(t *testing.T) {
	outer := NewEnvironment()
	_ = outer.Define("x", &IntegerValue{Value: 1})
	inner := NewEnclosedEnvironment(outer)

	if err := inner.Assign("x", &IntegerValue{Value: 9}); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	v, _ := outer.Get("x")
	if v.(*IntegerValue).Value != 9 {
		t.Error("assignment should reach the defining scope")
	}

	err := inner.Assign("missing", &IntegerValue{Value: 1})
	requireKind(t, err, errors.Unresolved)
}

func TestConstants(t *testing.T) {
	env := NewEnvironment()
	if err := env.DefineConstant("k", &IntegerValue{Value: 1}); err != nil {
		t.Fatalf("const define failed: %v", err)
	}

	requireKind(t, env.Assign("k", &IntegerValue{Value: 2}), errors.Immutability)

	// Redeclaring over a constant fails from any nested scope.
	inner := NewEnclosedEnvironment(env)
	requireKind(t, inner.Define("k", &IntegerValue{Value: 3}), errors.Redeclaration)
	requireKind(t, inner.DefineConstant("k", &IntegerValue{Value: 3}), errors.Redeclaration)

	if !env.IsConstant("k") {
		t.Error("k should report as constant")
	}
}

func TestScopePopLeavesNoEffect(t *testing.T) {
	outer := NewEnvironment()
	_ = outer.Define("x", &IntegerValue{Value: 1})

	inner := NewEnclosedEnvironment(outer)
	_ = inner.Define("y", &IntegerValue{Value: 2})

	// Dropping the inner scope must leave the outer unchanged.
	if outer.Has("y") {
		t.Error("inner binding leaked into outer scope")
	}
	if outer.Size() != 1 {
		t.Errorf("outer scope size changed: %d", outer.Size())
	}
}

func requireKind(t *testing.T, err error, kind errors.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	rerr, ok := err.(*errors.RuntimeError)
	if !ok {
		t.Fatalf("expected RuntimeError, got %T: %v", err, err)
	}
	if rerr.Kind != kind {
		t.Fatalf("expected kind %s, got %s (%s)", kind, rerr.Kind, rerr.Message)
	}
}
