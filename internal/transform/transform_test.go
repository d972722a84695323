package transform

import (
	"strconv"
	"strings"
	"testing"
)

// assertOrder asserts that each needle appears in code, in the given order,
// failing the test on the first one that is missing or out of order.
func assertOrder(t *testing.T, code string, needles ...string) {
	t.Helper()
	last := -1
	for _, n := range needles {
		idx := strings.Index(code, n)
		if idx == -1 {
			t.Fatalf("output missing %q\n--- output ---\n%s", n, code)
		}
		if idx <= last {
			t.Fatalf("output has %q out of order (at %d, want after %d)\n--- output ---\n%s", n, idx, last, code)
		}
		last = idx
	}
}

// Scenario 1 (spec.md §8): `var x = 1 + 2;` — scriptEnter, declare(x),
// literal(1), literal(2), binary +, write(x).
func TestScenario1_VarDeclarationWithBinaryInit(t *testing.T) {
	res, err := Transform("var x = 1 + 2;", "s.js", Options{})
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	code := res.Code
	assertOrder(t, code,
		"J$.Se(",
		`"x", "Var", undefined`,
		"J$.W(",
	)
	if !strings.Contains(code, "var x = J$.W(") {
		t.Errorf("expected `var x = J$.W(...)`, got:\n%s", code)
	}
	if res.Stats.Writes != 1 {
		t.Errorf("Stats.Writes = %d, want 1", res.Stats.Writes)
	}
}

// Scenario 2: `if (a > 0) { let y = a; }` — condition wraps the if test,
// a fresh block scope declares y without TDZ-violating pre-creation.
func TestScenario2_IfWithLexicalBlock(t *testing.T) {
	res, err := Transform("if (a > 0) { let y = a; }", "s.js", Options{})
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	code := res.Code
	assertOrder(t, code,
		`if (J$.C(`,
		`"if"`,
		`"y", "Let");`, // let declare omits the value argument (TDZ)
	)
	if strings.Contains(code, `"y", "Let", `) {
		t.Errorf("let declare should omit the value argument entirely, got:\n%s", code)
	}
}

// Scenario 3: a function call site gets the F-wrapper, invokeFunPre/
// invokeFun bracketing, and a functionEnter/functionExit scaffold.
func TestScenario3_FunctionDeclarationAndCall(t *testing.T) {
	res, err := Transform("function f(n){ return n*2; } f(3);", "s.js", Options{})
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	code := res.Code
	assertOrder(t, code,
		"function f(",
		"J$.Fe(",
		`"n", "Param", n`,
		"return J$.Re(",
		"J$.Fx(",
	)
	if !strings.Contains(code, "J$.F(") {
		t.Errorf("expected a J$.F( call wrapper around the f(3) call site, got:\n%s", code)
	}
	if res.Stats.Functions != 1 {
		t.Errorf("Stats.Functions = %d, want 1", res.Stats.Functions)
	}
	if res.Stats.Calls != 1 {
		t.Errorf("Stats.Calls = %d, want 1", res.Stats.Calls)
	}
}

// Scenario 4: a caught throw reports Th at the throw site and declares the
// catch parameter. The only X site in the output is the program
// scaffold's own catch, which comes after the user's catch clause, so a
// throw that clause handles never reaches it.
func TestScenario4_TryCatchSuppressesUncaught(t *testing.T) {
	res, err := Transform(`try { throw "e"; } catch(x) { }`, "s.js", Options{})
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	code := res.Code
	if !strings.Contains(code, "throw J$.Th(") {
		t.Errorf("expected `throw J$.Th(...)`, got:\n%s", code)
	}
	if !strings.Contains(code, `"x", "CatchParam", x`) {
		t.Errorf("expected a CatchParam declare naming the catch binding, got:\n%s", code)
	}
	if n := strings.Count(code, "J$.X("); n != 1 {
		t.Errorf("J$.X( appears %d times, want exactly 1 (the program scaffold's catch only), got:\n%s", n, code)
	}
	assertOrder(t, code, "throw J$.Th(", "} catch (x) {", "J$.X(")
}

// Scenario 5: `for (let i=0; i<2; i++) {}` gets a fresh declare of i in a
// synthesized outer block, keeping each iteration's binding distinct.
func TestScenario5_ForLoopLexicalInit(t *testing.T) {
	res, err := Transform("for (let i=0; i<2; i++) {}", "s.js", Options{})
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	code := res.Code
	if !strings.Contains(code, `"i", "Let");`) {
		t.Errorf("expected the header declare of i to omit the value argument (TDZ), got:\n%s", code)
	}
	if !strings.Contains(code, "for (") {
		t.Errorf("expected a real `for (` to remain the control-flow mechanism, got:\n%s", code)
	}
	if strings.Count(code, `"i", "Let");`) < 2 {
		t.Errorf("expected i to be declared fresh in both the header and the per-iteration inner block, got:\n%s", code)
	}
}

// Scenario 6: a source carrying the no-instrument marker gets a preamble
// prepended but is otherwise passed through unchanged.
func TestScenario6_MarkerShortCircuits(t *testing.T) {
	src := "// NO_INSTRUMENT\nvar x = 1;\n"
	res, err := Transform(src, "s.js", Options{})
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	if !res.Passed {
		t.Fatalf("Passed = false, want true for marked source")
	}
	if !strings.HasSuffix(res.Code, src) {
		t.Errorf("Code = %q, want it to end with the verbatim source %q", res.Code, src)
	}
	if !strings.Contains(res.Code, "// INSTRUMENTED BY "+DefaultTool) {
		t.Errorf("Code = %q, want a preamble even for marked source", res.Code)
	}
}

// A second transform of this tool's own marked output must be a true
// no-op: the preamble must not be prepended twice.
func TestMarkerReRunOnOwnOutputIsNoOp(t *testing.T) {
	first, err := Transform("// NO_INSTRUMENT\nvar x = 1;\n", "s.js", Options{})
	if err != nil {
		t.Fatalf("first Transform error: %v", err)
	}
	second, err := Transform(first.Code, "s.js", Options{})
	if err != nil {
		t.Fatalf("second Transform error: %v", err)
	}
	if second.Code != first.Code {
		t.Errorf("re-running on marked tool output changed it:\nfirst:  %q\nsecond: %q", first.Code, second.Code)
	}
}

func TestStatsCountDeclaresReturnsAndThrows(t *testing.T) {
	res, err := Transform(`function f(n) { if (n) { return n; } throw n; }`, "s.js", Options{})
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	if res.Stats.Declares == 0 {
		t.Errorf("Stats.Declares = 0, want > 0 (arguments/n/program declares)")
	}
	if res.Stats.Returns != 1 {
		t.Errorf("Stats.Returns = %d, want 1", res.Stats.Returns)
	}
	if res.Stats.Throws != 1 {
		t.Errorf("Stats.Throws = %d, want 1", res.Stats.Throws)
	}
}

func TestPreambleIdempotence(t *testing.T) {
	res1, err := Transform("var x = 1;", "s.js", Options{})
	if err != nil {
		t.Fatalf("first Transform error: %v", err)
	}
	ok, err := Verify(res1, "s.js", Options{})
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Errorf("Verify() = false, want true: re-running on the transformer's own output should be a no-op beyond the preamble")
	}
}

// LogicalExpression and ConditionalExpression wrap only their
// left/test operand directly in the C hook's own argument list — they
// must not additionally route it through the generic E(...) wrap the
// way If/While/For do for their own, separate, outer condition. The
// VariableDeclarator init itself still gets exactly one E(...) wrap
// (spec.md's "X-wrapped-in-E" list includes the declarator init, not
// the logical/conditional's own operand).
func TestLogicalAndConditionalConditionHooksWrapOnlyTheTest(t *testing.T) {
	res, err := Transform("var x = a && b;", "s.js", Options{})
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	code := res.Code
	if !strings.Contains(code, `"&&"`) {
		t.Errorf("expected the C hook to carry the logical operator, got:\n%s", code)
	}
	if n := strings.Count(code, "J$.E("); n != 1 {
		t.Errorf("J$.E( appears %d times, want exactly 1 (the declarator init wrap only), got:\n%s", n, code)
	}

	res2, err := Transform("var y = a ? b : c;", "s.js", Options{})
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	if n := strings.Count(res2.Code, "J$.E("); n != 1 {
		t.Errorf("J$.E( appears %d times, want exactly 1 (the declarator init wrap only), got:\n%s", n, res2.Code)
	}
}

func TestUnsupportedSyntaxFailsTransform(t *testing.T) {
	_, err := Transform("var x = [1, 2];", "s.js", Options{})
	if err == nil {
		t.Fatalf("Transform() error = nil, want an error for an unsupported array literal")
	}
	if !strings.Contains(err.Error(), "s.js:") {
		t.Errorf("error %q does not carry the source file name", err.Error())
	}

	// Array literals have no grammar production, so the failure above comes
	// from the parser. A construct that parses but has no transform handler
	// is rejected by the dispatcher with a *TransformError.
	_, err = Transform("x += 1;", "s.js", Options{})
	if err == nil {
		t.Fatalf("Transform() error = nil, want an error for an unsupported compound assignment")
	}
	te, ok := err.(*TransformError)
	if !ok {
		t.Fatalf("error type = %T, want *TransformError", err)
	}
	if !strings.Contains(te.Error(), "s.js:") {
		t.Errorf("error %q does not carry the source file name", te.Error())
	}
}

func TestIDUniquenessAcrossTransform(t *testing.T) {
	res, err := Transform("var x = 1 + 2; function f(n) { return n; } f(x);", "s.js", Options{})
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	n := res.Registry.Len()
	if n == 0 {
		t.Fatalf("Registry.Len() = 0, want > 0")
	}
	// Spot-check the first and last allocated ids appear as a hook call's
	// first argument rather than walking every id in between, which would
	// be sensitive to incidental digit matches elsewhere in the output.
	for _, id := range []int{0, n - 1} {
		withComma := "(" + strconv.Itoa(id) + ","
		withParen := "(" + strconv.Itoa(id) + ")"
		if !strings.Contains(res.Code, withComma) && !strings.Contains(res.Code, withParen) {
			t.Errorf("id %d never appears as a hook call's sole or first argument in the output:\n%s", id, res.Code)
		}
	}
}
