package parser

import (
	"testing"

	"github.com/kolkov/instrumentor/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse(src, "test.js")
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return prog
}

func TestParseVariableDeclaration(t *testing.T) {
	prog := mustParse(t, "var x = 1 + 2;")
	if len(prog.Body) != 1 {
		t.Fatalf("len(Body) = %d, want 1", len(prog.Body))
	}
	decl, ok := prog.Body[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("Body[0] = %T, want *ast.VariableDeclaration", prog.Body[0])
	}
	if decl.VKind != ast.KindVar {
		t.Errorf("VKind = %q, want %q", decl.VKind, ast.KindVar)
	}
	if len(decl.Declarations) != 1 {
		t.Fatalf("len(Declarations) = %d, want 1", len(decl.Declarations))
	}
	id, ok := decl.Declarations[0].Id.(*ast.Identifier)
	if !ok || id.Name != "x" {
		t.Errorf("declarator Id = %+v, want Identifier \"x\"", decl.Declarations[0].Id)
	}
	bin, ok := decl.Declarations[0].Init.(*ast.BinaryExpression)
	if !ok || bin.Op != "+" {
		t.Errorf("declarator Init = %+v, want BinaryExpression \"+\"", decl.Declarations[0].Init)
	}
}

func TestParseIfElse(t *testing.T) {
	prog := mustParse(t, "if (a > 0) { x = 1; } else { x = 2; }")
	ifstmt, ok := prog.Body[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("Body[0] = %T, want *ast.IfStatement", prog.Body[0])
	}
	if _, ok := ifstmt.Test.(*ast.BinaryExpression); !ok {
		t.Errorf("Test = %T, want *ast.BinaryExpression", ifstmt.Test)
	}
	if ifstmt.Alternate == nil {
		t.Errorf("Alternate = nil, want else-block")
	}
}

func TestParseForClassic(t *testing.T) {
	prog := mustParse(t, "for (let i = 0; i < 2; i++) {}")
	forstmt, ok := prog.Body[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("Body[0] = %T, want *ast.ForStatement", prog.Body[0])
	}
	decl, ok := forstmt.Init.(*ast.VariableDeclaration)
	if !ok || decl.VKind != ast.KindLet {
		t.Errorf("Init = %+v, want let-VariableDeclaration", forstmt.Init)
	}
	if _, ok := forstmt.Update.(*ast.UpdateExpression); !ok {
		t.Errorf("Update = %T, want *ast.UpdateExpression", forstmt.Update)
	}
}

func TestParseForIn(t *testing.T) {
	prog := mustParse(t, "for (var k in obj) {}")
	n, ok := prog.Body[0].(*ast.ForInStatement)
	if !ok {
		t.Fatalf("Body[0] = %T, want *ast.ForInStatement", prog.Body[0])
	}
	if _, ok := n.Left.(*ast.VariableDeclaration); !ok {
		t.Errorf("Left = %T, want *ast.VariableDeclaration", n.Left)
	}
}

func TestParseForOf(t *testing.T) {
	prog := mustParse(t, "for (const v of items) {}")
	if _, ok := prog.Body[0].(*ast.ForOfStatement); !ok {
		t.Fatalf("Body[0] = %T, want *ast.ForOfStatement", prog.Body[0])
	}
}

func TestParseFunctionDeclaration(t *testing.T) {
	prog := mustParse(t, "function f(n) { return n * 2; }")
	fn, ok := prog.Body[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("Body[0] = %T, want *ast.FunctionDeclaration", prog.Body[0])
	}
	if fn.Id == nil || fn.Id.Name != "f" {
		t.Errorf("Id = %+v, want \"f\"", fn.Id)
	}
	if len(fn.Params) != 1 {
		t.Fatalf("len(Params) = %d, want 1", len(fn.Params))
	}
	ret, ok := fn.Body.Body[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("fn body[0] = %T, want *ast.ReturnStatement", fn.Body.Body[0])
	}
	if _, ok := ret.Argument.(*ast.BinaryExpression); !ok {
		t.Errorf("return Argument = %T, want *ast.BinaryExpression", ret.Argument)
	}
}

func TestParseTryCatchFinally(t *testing.T) {
	prog := mustParse(t, `try { throw "e"; } catch (x) { } finally { }`)
	tr, ok := prog.Body[0].(*ast.TryStatement)
	if !ok {
		t.Fatalf("Body[0] = %T, want *ast.TryStatement", prog.Body[0])
	}
	if tr.Handler == nil {
		t.Fatalf("Handler = nil, want non-nil")
	}
	id, ok := tr.Handler.Param.(*ast.Identifier)
	if !ok || id.Name != "x" {
		t.Errorf("Handler.Param = %+v, want Identifier \"x\"", tr.Handler.Param)
	}
	if tr.Finalizer == nil {
		t.Errorf("Finalizer = nil, want non-nil")
	}
}

func TestParseTryWithoutCatchOrFinallyFails(t *testing.T) {
	_, err := Parse("try { x(); }", "test.js")
	if err == nil {
		t.Fatalf("Parse() error = nil, want an error for try with neither catch nor finally")
	}
}

func TestParseObjectAndArrayPatterns(t *testing.T) {
	prog := mustParse(t, "var {a, b: c, ...rest} = obj;")
	decl := prog.Body[0].(*ast.VariableDeclaration)
	pat, ok := decl.Declarations[0].Id.(*ast.ObjectPattern)
	if !ok {
		t.Fatalf("Id = %T, want *ast.ObjectPattern", decl.Declarations[0].Id)
	}
	if len(pat.Properties) != 2 {
		t.Fatalf("len(Properties) = %d, want 2", len(pat.Properties))
	}
	if pat.Rest == nil {
		t.Errorf("Rest = nil, want non-nil")
	}

	prog2 := mustParse(t, "var [a, , b, ...rest] = arr;")
	decl2 := prog2.Body[0].(*ast.VariableDeclaration)
	arrPat, ok := decl2.Declarations[0].Id.(*ast.ArrayPattern)
	if !ok {
		t.Fatalf("Id = %T, want *ast.ArrayPattern", decl2.Declarations[0].Id)
	}
	if len(arrPat.Elements) != 3 {
		t.Fatalf("len(Elements) = %d, want 3", len(arrPat.Elements))
	}
	if arrPat.Elements[1] != nil {
		t.Errorf("Elements[1] = %+v, want nil (hole)", arrPat.Elements[1])
	}
}

func TestParseFunctionParamDefaultsAndRest(t *testing.T) {
	prog := mustParse(t, "function f(a = 1, ...rest) {}")
	fn := prog.Body[0].(*ast.FunctionDeclaration)
	if _, ok := fn.Params[0].(*ast.AssignmentPattern); !ok {
		t.Errorf("Params[0] = %T, want *ast.AssignmentPattern", fn.Params[0])
	}
	if _, ok := fn.Params[1].(*ast.RestElement); !ok {
		t.Errorf("Params[1] = %T, want *ast.RestElement", fn.Params[1])
	}
}

func TestParseSwitch(t *testing.T) {
	prog := mustParse(t, `switch (x) { case 1: y(); break; default: z(); }`)
	sw, ok := prog.Body[0].(*ast.SwitchStatement)
	if !ok {
		t.Fatalf("Body[0] = %T, want *ast.SwitchStatement", prog.Body[0])
	}
	if len(sw.Cases) != 2 {
		t.Fatalf("len(Cases) = %d, want 2", len(sw.Cases))
	}
	if sw.Cases[0].Test == nil {
		t.Errorf("Cases[0].Test = nil, want non-nil (case 1)")
	}
	if sw.Cases[1].Test != nil {
		t.Errorf("Cases[1].Test = %+v, want nil (default)", sw.Cases[1].Test)
	}
}

func TestParseNewAndMemberChain(t *testing.T) {
	prog := mustParse(t, "var x = new Foo.Bar(1, 2).baz;")
	decl := prog.Body[0].(*ast.VariableDeclaration)
	member, ok := decl.Declarations[0].Init.(*ast.MemberExpression)
	if !ok {
		t.Fatalf("Init = %T, want *ast.MemberExpression", decl.Declarations[0].Init)
	}
	call, ok := member.Object.(*ast.NewExpression)
	if !ok {
		t.Fatalf("member.Object = %T, want *ast.NewExpression", member.Object)
	}
	if len(call.Arguments) != 2 {
		t.Errorf("len(Arguments) = %d, want 2", len(call.Arguments))
	}
}

func TestParseConditionalAndLogical(t *testing.T) {
	prog := mustParse(t, "var x = a && b || c ? 1 : 2;")
	decl := prog.Body[0].(*ast.VariableDeclaration)
	cond, ok := decl.Declarations[0].Init.(*ast.ConditionalExpression)
	if !ok {
		t.Fatalf("Init = %T, want *ast.ConditionalExpression", decl.Declarations[0].Init)
	}
	if _, ok := cond.Test.(*ast.LogicalExpression); !ok {
		t.Errorf("Test = %T, want *ast.LogicalExpression", cond.Test)
	}
}

func TestParsePrecedence(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3): the outer node is "+".
	prog := mustParse(t, "var x = 1 + 2 * 3;")
	decl := prog.Body[0].(*ast.VariableDeclaration)
	bin, ok := decl.Declarations[0].Init.(*ast.BinaryExpression)
	if !ok || bin.Op != "+" {
		t.Fatalf("Init = %+v, want top-level \"+\"", decl.Declarations[0].Init)
	}
	if _, ok := bin.Right.(*ast.BinaryExpression); !ok {
		t.Errorf("Right = %T, want *ast.BinaryExpression (2 * 3)", bin.Right)
	}
	if _, ok := bin.Left.(*ast.Identifier); ok {
		t.Errorf("Left should be the literal 1, not an identifier")
	}
}

func TestParseThisBreakContinue(t *testing.T) {
	prog := mustParse(t, "function f() { while (true) { if (this.x) break; else continue; } }")
	fn := prog.Body[0].(*ast.FunctionDeclaration)
	wh := fn.Body.Body[0].(*ast.WhileStatement)
	blk := wh.Body.(*ast.BlockStatement)
	ifstmt := blk.Body[0].(*ast.IfStatement)
	if _, ok := ifstmt.Test.(*ast.MemberExpression); !ok {
		t.Fatalf("Test = %T, want *ast.MemberExpression", ifstmt.Test)
	}
	member := ifstmt.Test.(*ast.MemberExpression)
	if _, ok := member.Object.(*ast.ThisExpression); !ok {
		t.Errorf("member.Object = %T, want *ast.ThisExpression", member.Object)
	}
	if _, ok := ifstmt.Consequent.(*ast.BreakStatement); !ok {
		t.Errorf("Consequent = %T, want *ast.BreakStatement", ifstmt.Consequent)
	}
	if _, ok := ifstmt.Alternate.(*ast.ContinueStatement); !ok {
		t.Errorf("Alternate = %T, want *ast.ContinueStatement", ifstmt.Alternate)
	}
}

func TestParseUnsupportedSyntaxFails(t *testing.T) {
	tests := []string{
		"var x = [1, 2, 3];", // array literal expression: unsupported
		"var x = {a: 1};",    // object literal expression: unsupported
		"var x = (1, 2);",    // sequence (comma) operator: unsupported
	}
	for _, src := range tests {
		if _, err := Parse(src, "test.js"); err == nil {
			t.Errorf("Parse(%q) error = nil, want a parse error", src)
		}
	}
}

func TestASIInsertsSemicolonBeforeNewline(t *testing.T) {
	prog := mustParse(t, "var x = 1\nvar y = 2\n")
	if len(prog.Body) != 2 {
		t.Fatalf("len(Body) = %d, want 2 (ASI should split the two declarations)", len(prog.Body))
	}
}
