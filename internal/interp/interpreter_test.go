package interp

import (
	"testing"

	"github.com/o2lang/go-o2l/internal/ast"
	"github.com/o2lang/go-o2l/internal/errors"
	"github.com/o2lang/go-o2l/internal/interp/runtime"
	"github.com/o2lang/go-o2l/internal/lexer"
	"github.com/o2lang/go-o2l/internal/parser"
)

// parseProgram parses source, failing the test on syntax errors.
func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := parser.New(lexer.New(src))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parser errors: %v", errs)
	}
	return program
}

// run executes source and returns the program result, failing on errors.
func run(t *testing.T, src string) runtime.Value {
	t.Helper()
	i := New("test.obq")
	result, err := i.Run(parseProgram(t, src))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return result
}

// runExpectKind executes source and requires a runtime error of a kind.
func runExpectKind(t *testing.T, src string, kind errors.Kind) *errors.RuntimeError {
	t.Helper()
	i := New("test.obq")
	_, err := i.Run(parseProgram(t, src))
	if err == nil {
		t.Fatalf("expected %s error, program succeeded", kind)
	}
	rerr, ok := err.(*errors.RuntimeError)
	if !ok {
		t.Fatalf("expected RuntimeError, got %T: %v", err, err)
	}
	if rerr.Kind != kind {
		t.Fatalf("expected kind %s, got %s (%s)", kind, rerr.Kind, rerr.Message)
	}
	return rerr
}

func expectInt(t *testing.T, v runtime.Value, want int64) {
	t.Helper()
	iv, ok := v.(*runtime.IntegerValue)
	if !ok {
		t.Fatalf("expected Int, got %s (%s)", runtime.TypeName(v), v.Inspect())
	}
	if iv.Value != want {
		t.Fatalf("expected Int(%d), got Int(%d)", want, iv.Value)
	}
}

func expectBool(t *testing.T, v runtime.Value, want bool) {
	t.Helper()
	bv, ok := v.(*runtime.BooleanValue)
	if !ok {
		t.Fatalf("expected Bool, got %s (%s)", runtime.TypeName(v), v.Inspect())
	}
	if bv.Value != want {
		t.Fatalf("expected Bool(%v), got Bool(%v)", want, bv.Value)
	}
}

func expectText(t *testing.T, v runtime.Value, want string) {
	t.Helper()
	tv, ok := v.(*runtime.TextValue)
	if !ok {
		t.Fatalf("expected Text, got %s (%s)", runtime.TypeName(v), v.Inspect())
	}
	if tv.Value != want {
		t.Fatalf("expected Text(%q), got Text(%q)", want, tv.Value)
	}
}

func TestArithmeticPrecedence(t *testing.T) {
	result := run(t, `Object Main { method main(): Int { return 3 + 4 * 2 } }`)
	expectInt(t, result, 11)
}

func TestWhileLoopAccumulation(t *testing.T) {
	result := run(t, `Object Main { method main(): Int { x: Int = 0; i: Int = 1; while (i <= 3) { x = x + i; i = i + 1 }; return x } }`)
	expectInt(t, result, 6)
}

func TestProtocolSatisfactionAndVisibility(t *testing.T) {
	// External implementation: call succeeds.
	result := run(t, `
Protocol P { method go(): Int }
Object O: P { @external method go(): Int { return 7 } }
Object Main { method main(): Int { return new O().go() } }
`)
	expectInt(t, result, 7)

	// Removing @external still satisfies P (visibility is not part of
	// conformance), but the external call site fails Visibility.
	runExpectKind(t, `
Protocol P { method go(): Int }
Object O: P { method go(): Int { return 7 } }
Object Main { method main(): Int { return new O().go() } }
`, errors.Visibility)
}

func TestConstReassignmentFailsImmutability(t *testing.T) {
	runExpectKind(t,
		`Object Main { method main(): Int { const k: Int = 1; k = 2; return k } }`,
		errors.Immutability)
}

func TestThrowCatchFinally(t *testing.T) {
	result := run(t, `Object Main { method main(): Text { try { throw("boom") } catch (e) { return e } finally { } } }`)
	expectText(t, result, "boom")
}

func TestFinallyRunsExactlyOnce(t *testing.T) {
	result := run(t, `
Object Main {
    property count: Int

    method main(): Int {
        this.count = 0
        this.attempt()
        return this.count
    }

    method attempt(): Int {
        try {
            throw("x")
        } catch (e) {
            return 0
        } finally {
            this.count = this.count + 1
        }
    }
}
`)
	expectInt(t, result, 1)
}

func TestRecordStructuralEquality(t *testing.T) {
	result := run(t, `
Record Pair { a: Int, b: Int }
Object Main { method main(): Bool { return Pair(a=1, b=2) == Pair(a=1, b=2) } }
`)
	expectBool(t, result, true)

	result = run(t, `
Record Pair { a: Int, b: Int }
Object Main { method main(): Bool { return Pair(a=1, b=2) == Pair(a=1, b=3) } }
`)
	expectBool(t, result, false)
}

func TestIfElseAndTruthiness(t *testing.T) {
	// Int truthiness: non-zero is true.
	result := run(t, `Object Main { method main(): Int { if (3) { return 1 } else { return 2 } } }`)
	expectInt(t, result, 1)

	// Text truthiness: empty is false.
	result = run(t, `Object Main { method main(): Int { if ("") { return 1 } else { return 2 } } }`)
	expectInt(t, result, 2)

	// Absent else yields Int(0) and execution continues.
	result = run(t, `Object Main { method main(): Int { if (false) { return 1 }; return 9 } }`)
	expectInt(t, result, 9)
}

func TestShortCircuitSkipsRightOperand(t *testing.T) {
	// The right operand would fail Visibility if evaluated.
	result := run(t, `
Object Trap { method spring(): Bool { return true } }
Object Main {
    method main(): Bool {
        return false && new Trap().spring()
    }
}
`)
	expectBool(t, result, false)

	result = run(t, `
Object Trap { method spring(): Bool { return true } }
Object Main {
    method main(): Bool {
        return true || new Trap().spring()
    }
}
`)
	expectBool(t, result, true)
}

func TestLogicalRequiresBool(t *testing.T) {
	runExpectKind(t,
		`Object Main { method main(): Bool { return 1 && true } }`,
		errors.TypeMismatch)
}

func TestNumericVariantsDoNotMix(t *testing.T) {
	runExpectKind(t,
		`Object Main { method main(): Int { return 1 + 2.5 } }`,
		errors.TypeMismatch)

	// Same-variant operations preserve the variant.
	result := run(t, `Object Main { method main(): Double { return 1.5 + 2.5 } }`)
	dv, ok := result.(*runtime.DoubleValue)
	if !ok || dv.Value != 4.0 {
		t.Fatalf("expected Double(4), got %s", result.Inspect())
	}
}

func TestDivisionByZero(t *testing.T) {
	runExpectKind(t,
		`Object Main { method main(): Int { return 1 / 0 } }`,
		errors.DivisionByZero)
	runExpectKind(t,
		`Object Main { method main(): Int { return 1 % 0 } }`,
		errors.DivisionByZero)
}

func TestModuloRequiresIntegers(t *testing.T) {
	runExpectKind(t,
		`Object Main { method main(): Double { return 1.5 % 0.5 } }`,
		errors.TypeMismatch)
}

func TestTextConcatenationAndComparison(t *testing.T) {
	result := run(t, `Object Main { method main(): Text { return "foo" + "bar" } }`)
	expectText(t, result, "foobar")

	result = run(t, `Object Main { method main(): Bool { return "abc" < "abd" } }`)
	expectBool(t, result, true)
}

func TestComparisonRejectsMixedOperands(t *testing.T) {
	runExpectKind(t,
		`Object Main { method main(): Bool { return "a" < 1 } }`,
		errors.TypeMismatch)
}

func TestUnaryOperators(t *testing.T) {
	result := run(t, `Object Main { method main(): Int { return -(3 + 4) } }`)
	expectInt(t, result, -7)

	result = run(t, `Object Main { method main(): Bool { return !false } }`)
	expectBool(t, result, true)

	runExpectKind(t,
		`Object Main { method main(): Bool { return !1 } }`,
		errors.TypeMismatch)
	runExpectKind(t,
		`Object Main { method main(): Int { return -"x" } }`,
		errors.TypeMismatch)
}

func TestConstructorAndProperties(t *testing.T) {
	result := run(t, `
Object Counter {
    property value: Int

    constructor(start: Int) {
        this.value = start
    }

    @external method increment(): Int {
        this.value = this.value + 1
        return this.value
    }

    @external method current(): Int {
        return this.value
    }
}

Object Main {
    method main(): Int {
        c: Counter = new Counter(40)
        c.increment()
        c.increment()
        return c.current()
    }
}
`)
	expectInt(t, result, 42)
}

func TestInstancesDoNotShareProperties(t *testing.T) {
	result := run(t, `
Object Box {
    constructor(v: Int) { this.v = v }
    @external method get(): Int { return this.v }
}

Object Main {
    method main(): Int {
        a: Box = new Box(1)
        b: Box = new Box(2)
        return a.get() * 10 + b.get()
    }
}
`)
	expectInt(t, result, 12)
}

func TestObjectsShareByHandle(t *testing.T) {
	result := run(t, `
Object Box {
    constructor(v: Int) { this.v = v }
    @external method set(v: Int): Int { this.v = v; return v }
    @external method get(): Int { return this.v }
}

Object Main {
    method main(): Int {
        a: Box = new Box(1)
        b: Box = a
        b.set(5)
        return a.get()
    }
}
`)
	expectInt(t, result, 5)
}

func TestInternalMethodCallThroughThis(t *testing.T) {
	result := run(t, `
Object Calc {
    method helper(): Int { return 21 }
    @external method run(): Int { return this.helper() * 2 }
}

Object Main { method main(): Int { return new Calc().run() } }
`)
	expectInt(t, result, 42)
}

func TestArityChecking(t *testing.T) {
	runExpectKind(t, `
Object O { @external method f(a: Int): Int { return a } }
Object Main { method main(): Int { return new O().f(1, 2) } }
`, errors.Arity)

	// Constructor arity: no constructor but arguments supplied.
	runExpectKind(t, `
Object O { @external method f(): Int { return 1 } }
Object Main { method main(): Int { return new O(5).f() } }
`, errors.Arity)
}

func TestUnknownMethodAndProperty(t *testing.T) {
	runExpectKind(t, `
Object O { @external method f(): Int { return 1 } }
Object Main { method main(): Int { return new O().g() } }
`, errors.UnknownMethod)

	runExpectKind(t, `
Object O { @external method f(): Int { return this.missing } }
Object Main { method main(): Int { return new O().f() } }
`, errors.UnknownProperty)
}

func TestUnresolvedIdentifier(t *testing.T) {
	runExpectKind(t, `
Object Main { method main(): Int { return missing } }
`, errors.Unresolved)
}

func TestEnumAccess(t *testing.T) {
	result := run(t, `
Enum Color { RED, GREEN = 10, BLUE }
Object Main { method main(): Int { return Color.BLUE } }
`)
	expectInt(t, result, 11)

	runExpectKind(t, `
Enum Color { RED }
Object Main { method main(): Int { return Color.PURPLE } }
`, errors.UnknownMember)
}

func TestRecordFieldAccess(t *testing.T) {
	result := run(t, `
Record Point { x: Int, y: Int }
Object Main {
    method main(): Int {
        p: Point = Point(x=3, y=4)
        return p.x * 10 + p.y
    }
}
`)
	expectInt(t, result, 34)

	runExpectKind(t, `
Record Point { x: Int }
Object Main { method main(): Int { return Point(x=1, y=1).x } }
`, errors.UnknownField)

	runExpectKind(t, `
Record Point { x: Int, y: Int }
Object Main { method main(): Int { return Point(x=1).x } }
`, errors.MissingField)
}

func TestMemberAccessOnPrimitiveFails(t *testing.T) {
	runExpectKind(t, `
Object Main { method main(): Int { x: Int = 1; return x.y } }
`, errors.TypeMismatch)
}

func TestCollectionLiteralsAndMethods(t *testing.T) {
	result := run(t, `
Object Main {
    method main(): Int {
        items: List<Int> = [1, 2, 3]
        items.add(4)
        return items.get(3) + items.size()
    }
}
`)
	expectInt(t, result, 8)

	result = run(t, `
Object Main {
    method main(): Int {
        ages: Map<Text, Int> = {"ada": 36, "alan": 41}
        ages.put("grace", 85)
        return ages.get("grace") + ages.size()
    }
}
`)
	expectInt(t, result, 88)

	result = run(t, `
Object Main {
    method main(): Bool {
        tags: Set<Text> = ("a", "b", "a")
        return tags.contains("a") && tags.size() == 2
    }
}
`)
	expectBool(t, result, true)
}

func TestResultValues(t *testing.T) {
	result := run(t, `
Object Main {
    method main(): Int {
        ok: Result = Result.success(41)
        if (ok.isSuccess()) {
            return ok.getResult() + 1
        }
        return 0
    }
}
`)
	expectInt(t, result, 42)

	result = run(t, `
Object Main {
    method main(): Text {
        bad: Result = Result.error("nope")
        return bad.getError()
    }
}
`)
	expectText(t, result, "nope")
}

func TestErrorObjects(t *testing.T) {
	result := run(t, `
Object Main {
    method main(): Text {
        e: Error = new Error("kaput")
        return e.getMessage()
    }
}
`)
	expectText(t, result, "kaput")
}

func TestProtocolConformanceFailureAtDeclaration(t *testing.T) {
	rerr := runExpectKind(t, `
Protocol P { method go(): Int }
Object O: P { @external method go(): Text { return "x" } }
Object Main { method main(): Int { return 0 } }
`, errors.ProtocolConformance)
	if rerr.Message == "" {
		t.Error("expected accumulated diagnostics in the message")
	}
}

func TestNamespaceRegistration(t *testing.T) {
	result := run(t, `
namespace math.geometry {
    Object Origin {
        @external method zero(): Int { return 0 }
    }
    Record Point { x: Int, y: Int }
}

Object Main {
    method main(): Int {
        p: Point = Point(x=1, y=2)
        o: Origin = new math.geometry.Origin()
        return o.zero() + p.x
    }
}
`)
	expectInt(t, result, 1)
}

func TestMainRequired(t *testing.T) {
	i := New("test.obq")
	_, err := i.Run(parseProgram(t, `Object NotMain { method main(): Int { return 0 } }`))
	if err == nil {
		t.Fatal("expected an error without a Main object")
	}
}

func TestProgramArguments(t *testing.T) {
	i := New("test.obq", WithProgramArgs([]string{"a", "b"}))
	result, err := i.Run(parseProgram(t, `
Object Main {
    method main(): Int {
        return __program_args__.size()
    }
}
`))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	expectInt(t, result, 2)
}

func TestUncaughtThrowIsUserThrowWithTrace(t *testing.T) {
	rerr := runExpectKind(t, `
Object Main {
    method main(): Int {
        this.inner()
        return 0
    }

    method inner(): Int {
        throw("deep")
    }
}
`, errors.UserThrow)
	if len(rerr.Trace) == 0 {
		t.Fatal("expected a frozen call trace on the error")
	}
	top := rerr.Trace.Top()
	if top == nil || top.FunctionName != "throw" {
		t.Errorf("expected innermost frame 'throw', got %+v", top)
	}
}

func TestReturnUnwindsNestedBlocks(t *testing.T) {
	result := run(t, `
Object Main {
    method main(): Int {
        i: Int = 0
        while (true) {
            if (i == 3) {
                return i
            }
            i = i + 1
        }
        return -1
    }
}
`)
	expectInt(t, result, 3)
}

func TestBreakTerminatesInnermostLoop(t *testing.T) {
	result := run(t, `
Object Main {
    method main(): Int {
        total: Int = 0
        i: Int = 0
        while (i < 3) {
            j: Int = 0
            while (true) {
                if (j == 2) { break }
                total = total + 1
                j = j + 1
            }
            i = i + 1
        }
        return total
    }
}
`)
	expectInt(t, result, 6)
}

func TestRedeclarationOverConstant(t *testing.T) {
	runExpectKind(t, `
Object Main {
    method main(): Int {
        const k: Int = 1
        k: Int = 2
        return k
    }
}
`, errors.Redeclaration)
}

func TestVariableShadowingInCatch(t *testing.T) {
	result := run(t, `
Object Main {
    method main(): Text {
        e: Text = "outer"
        try {
            throw("inner")
        } catch (e) {
            return e
        }
        return e
    }
}
`)
	expectText(t, result, "inner")
}
