package transform

import (
	"fmt"
	"strconv"

	"github.com/kolkov/instrumentor/internal/ast"
	"github.com/kolkov/instrumentor/internal/hooks"
	"github.com/kolkov/instrumentor/internal/pattern"
	"github.com/kolkov/instrumentor/internal/scope"
)

// synth allocates an id with no source span, for hook calls the
// dispatcher itself manufactures rather than copies from a source node
// (catch/finally scaffolding, declare sites, the Up binary-id argument).
func (s *state) synth() int {
	return s.ids.NewID(nil)
}

// errVar and writer-parameter names are runtime-global-prefixed so they
// cannot collide with a user binding of the same bare name (spec.md §9
// "LHS context" neighbors this concern: synthesized names must never
// shadow a source identifier).
func (s *state) synthName(suffix string) string {
	return "__" + s.opts.RuntimeGlobal + "_" + suffix
}

// emitDeclares writes one D(...) hook call per binding in frame, in
// declare order, per spec.md §4.5 "the declare hooks for let/const omit
// the value argument (they are still in TDZ); for others, the current
// binding is supplied."
//
// Declare sites have no source span: scope.Binding carries a name and a
// kind, not the declaring AST node, so there is nothing to look up a loc
// from (spec.md's Binding shape, §3, stops at name+kind).
func (s *state) emitDeclares(frame *scope.Frame) {
	for _, b := range frame.Declarations() {
		id := s.synth()
		s.stats.Declares++
		name := strconv.Quote(b.Name)
		kind := strconv.Quote(b.Kind.String())
		if b.Kind.HasTDZ() {
			s.w.Line(fmt.Sprintf("%s%d, %s, %s);", s.hook(hooks.Declare), id, name, kind))
			continue
		}
		value := b.Name
		if b.Kind == scope.Var {
			value = "undefined"
		}
		s.w.Line(fmt.Sprintf("%s%d, %s, %s, %s);", s.hook(hooks.Declare), id, name, kind, value))
	}
}

func (s *state) visitStmts(stmts []ast.Stmt, frame *scope.Frame) {
	for _, stmt := range stmts {
		s.visitStmt(stmt, frame)
	}
}

// visitProgram implements spec.md §4.5 "Program": allocate the program
// scope (already done by the caller), then emit
// try{Se;D...;stmts}catch(e){X;throw e;}finally{Sx;}.
func (s *state) visitProgram(prog *ast.Program, frame *scope.Frame) {
	id := s.ids.NewID(prog)
	errVar := s.synthName("e")

	s.w.Line("try {")
	s.w.Indent()
	s.w.Line(fmt.Sprintf("%s%d, %s, %s);", s.hook(hooks.ScriptEnter), id,
		strconv.Quote(s.opts.InstPath), strconv.Quote(s.opts.OrigPath)))
	s.emitDeclares(frame)
	s.visitStmts(prog.Body, frame)
	s.w.Dedent()
	s.w.Line(fmt.Sprintf("} catch (%s) {", errVar))
	s.w.Indent()
	xid := s.synth()
	s.w.Line(fmt.Sprintf("%s%d, %s);", s.hook(hooks.Uncaught), xid, errVar))
	s.w.Line(fmt.Sprintf("throw %s;", errVar))
	s.w.Dedent()
	s.w.Line("} finally {")
	s.w.Indent()
	sxid := s.synth()
	s.w.Line(fmt.Sprintf("%s%d);", s.hook(hooks.ScriptExit), sxid))
	s.w.Dedent()
	s.w.WriteString("}")
}

func (s *state) visitStmt(stmt ast.Stmt, frame *scope.Frame) {
	switch n := stmt.(type) {
	case *ast.BlockStatement:
		s.visitBlock(n, frame)
	case *ast.VariableDeclaration:
		s.visitVariableDeclaration(n, frame)
	case *ast.ExpressionStatement:
		id := s.ids.NewID(n)
		s.w.Line(fmt.Sprintf("%s%d, %s);", s.hook(hooks.Expression), id, s.visitExpr(n.Expression, frame)))
	case *ast.FunctionDeclaration:
		s.visitFunctionDeclaration(n, frame)
	case *ast.ReturnStatement:
		id := s.ids.NewID(n)
		s.stats.Returns++
		arg := "undefined"
		if n.Argument != nil {
			arg = s.wrapE(n.Argument, frame)
		}
		s.w.Line(fmt.Sprintf("return %s%d, %s);", s.hook(hooks.Return), id, arg))
	case *ast.ThrowStatement:
		id := s.ids.NewID(n)
		s.stats.Throws++
		s.w.Line(fmt.Sprintf("throw %s%d, %s);", s.hook(hooks.Throw), id, s.wrapE(n.Argument, frame)))
	case *ast.IfStatement:
		s.visitIf(n, frame)
	case *ast.WhileStatement:
		id := s.ids.NewID(n)
		s.w.Line(fmt.Sprintf("while (%s%d, \"while\", %s)) {", s.hook(hooks.Condition), id, s.wrapE(n.Test, frame)))
		s.w.Indent()
		s.visitStmt(n.Body, frame)
		s.w.Dedent()
		s.w.Line("}")
	case *ast.DoWhileStatement:
		s.w.Line("do {")
		s.w.Indent()
		s.visitStmt(n.Body, frame)
		s.w.Dedent()
		id := s.ids.NewID(n)
		s.w.Line(fmt.Sprintf("} while (%s%d, \"do-while\", %s));", s.hook(hooks.Condition), id, s.wrapE(n.Test, frame)))
	case *ast.ForStatement:
		s.visitFor(n, frame)
	case *ast.ForInStatement:
		s.visitForInOf(n.Left, n.Right, n.Body, true, frame)
	case *ast.ForOfStatement:
		s.visitForInOf(n.Left, n.Right, n.Body, false, frame)
	case *ast.SwitchStatement:
		s.visitSwitch(n, frame)
	case *ast.TryStatement:
		s.visitTry(n, frame)
	case *ast.BreakStatement:
		s.w.Line("break;")
	case *ast.ContinueStatement:
		s.w.Line("continue;")
	default:
		panic(unsupported(s.file, stmt.Loc(), string(stmt.Kind()), ""))
	}
}

// visitBlock implements spec.md §4.5 "BlockStatement": a lexical-only
// frame over immediate children, `{ D(...); statements }`.
func (s *state) visitBlock(n *ast.BlockStatement, parent *scope.Frame) {
	frame := scope.NewBlock(parent, n.Body)
	s.w.Line("{")
	s.w.Indent()
	s.emitDeclares(frame)
	s.visitStmts(n.Body, frame)
	s.w.Dedent()
	s.w.WriteString("}")
}

// visitVariableDeclaration implements spec.md §4.5 "VariableDeclaration"
// / "VariableDeclarator": scope bookkeeping already happened in the
// enclosing pre-pass, so this only threads the declarators through,
// preserving the real var/let/const keyword so host TDZ/hoisting
// semantics still apply natively.
func (s *state) visitVariableDeclaration(n *ast.VariableDeclaration, frame *scope.Frame) {
	s.w.WriteString(string(n.VKind))
	s.w.WriteString(" ")
	for i, d := range n.Declarations {
		if i > 0 {
			s.w.WriteString(", ")
		}
		if d.Init == nil {
			s.w.WriteString(s.printPattern(d.Id, frame))
			continue
		}
		id := s.ids.NewID(d)
		names := pattern.CollectIdentifiers(d.Id)
		s.w.WriteString(s.printPattern(d.Id, frame))
		s.w.WriteString(" = ")
		s.w.WriteString(fmt.Sprintf("%s%d, %s, %s)", s.hook(hooks.Write), id, quotedList(names), s.wrapE(d.Init, frame)))
		s.stats.Writes++
	}
	s.w.WriteString(";")
}

func quotedList(names []string) string {
	out := "["
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += strconv.Quote(n)
	}
	return out + "]"
}

func (s *state) visitIf(n *ast.IfStatement, frame *scope.Frame) {
	id := s.ids.NewID(n)
	s.w.Line(fmt.Sprintf("if (%s%d, \"if\", %s)) {", s.hook(hooks.Condition), id, s.wrapE(n.Test, frame)))
	s.w.Indent()
	s.visitStmt(n.Consequent, frame)
	s.w.Dedent()
	if n.Alternate == nil {
		s.w.Line("}")
		return
	}
	s.w.Line("} else {")
	s.w.Indent()
	s.visitStmt(n.Alternate, frame)
	s.w.Dedent()
	s.w.Line("}")
}

// visitFor implements spec.md §4.5's ForStatement case, including the
// lexical-init special case: "a synthesized outer block creates a fresh
// lexical frame ... so each iteration observes fresh lexical
// declarations (TDZ preserved)."
func (s *state) visitFor(n *ast.ForStatement, parent *scope.Frame) {
	decl, lexical := n.Init.(*ast.VariableDeclaration)
	lexical = lexical && decl.VKind != ast.KindVar

	headerFrame := parent
	if lexical {
		names := collectDeclaratorNames(decl)
		kind := scope.Let
		if decl.VKind == ast.KindConst {
			kind = scope.Const
		}
		headerFrame = scope.NewLexicalFor(parent, names, kind)
		s.w.Line("{")
		s.w.Indent()
		s.emitDeclares(headerFrame)
	}

	s.w.WriteString("for (")
	switch init := n.Init.(type) {
	case nil:
	case *ast.VariableDeclaration:
		s.visitVariableDeclaration(init, headerFrame)
	case ast.Expr:
		id := s.ids.NewID(init)
		s.w.WriteString(fmt.Sprintf("%s%d, %s)", s.hook(hooks.Expression), id, s.visitExpr(init, headerFrame)))
	}
	s.w.WriteString("; ")
	if n.Test != nil {
		id := s.ids.NewID(n)
		s.w.WriteString(fmt.Sprintf("%s%d, \"for\", %s)", s.hook(hooks.Condition), id, s.wrapE(n.Test, headerFrame)))
	}
	s.w.WriteString("; ")
	if n.Update != nil {
		s.w.WriteString(s.visitExpr(n.Update, headerFrame))
	}
	s.w.WriteString(") {")
	s.w.Indent()
	if lexical {
		s.emitDeclares(scope.NewLexicalFor(parent, collectDeclaratorNames(decl), headerFrame.Declarations()[0].Kind))
	}
	s.visitStmt(n.Body, headerFrame)
	s.w.Dedent()
	s.w.Line("}")

	if lexical {
		s.w.Dedent()
		s.w.Line("}")
	}
}

func collectDeclaratorNames(decl *ast.VariableDeclaration) []string {
	var names []string
	for _, d := range decl.Declarations {
		names = append(names, pattern.CollectIdentifiers(d.Id)...)
	}
	return names
}

// visitForInOf implements spec.md §4.5 "ForInStatement / ForOfStatement":
// the RHS is wrapped in O(id,value,isForIn); a temporary binding
// (<runtimeGlobal>._t) holds each iteration value, and the user's
// binding is assigned from the temporary through the ordinary write
// machinery so W fires every iteration.
func (s *state) visitForInOf(left ast.Node, right ast.Expr, body ast.Stmt, isForIn bool, parent *scope.Frame) {
	s.stats.ForInOf++
	oid := s.ids.NewID(right)
	rhsWalked := s.visitExpr(right, parent)
	tmp := s.opts.RuntimeGlobal + "._t"
	kw := "of"
	if isForIn {
		kw = "in"
	}
	s.w.Line(fmt.Sprintf("for (%s %s %s%d, %s, %t)) {", tmp, kw, s.hook(hooks.ForObject), oid, rhsWalked, isForIn))
	s.w.Indent()

	decl, isDecl := left.(*ast.VariableDeclaration)
	frame := parent
	if isDecl && decl.VKind != ast.KindVar {
		names := collectDeclaratorNames(decl)
		kind := scope.Let
		if decl.VKind == ast.KindConst {
			kind = scope.Const
		}
		frame = scope.NewLexicalFor(parent, names, kind)
		s.emitDeclares(frame)
	}

	wid := s.synth()
	var target ast.Node
	if isDecl {
		target = decl.Declarations[0].Id
	} else {
		target = left
	}
	switch t := target.(type) {
	case *ast.Identifier:
		s.w.Line(fmt.Sprintf("%s = %s%d, [%s], %s);", t.Name, s.hook(hooks.Write), wid, strconv.Quote(t.Name), tmp))
	case *ast.MemberExpression:
		s.w.Line(s.emitMemberWrite(t, wid, tmp, frame) + ";")
	default:
		panic(unsupported(s.file, left.Loc(), "for-in/of binding target", "only a plain identifier or member expression binding is supported"))
	}

	s.visitStmt(body, frame)
	s.w.Dedent()
	s.w.Line("}")
}

// visitSwitch implements spec.md §4.5 "SwitchStatement": Swl/Swr are
// pass-through reporters layered over the real switch/case syntax, so
// the host's own equality-based dispatch (and fallthrough) remains the
// actual control-flow mechanism; no separate discriminant stack is kept
// in the emitted text.
func (s *state) visitSwitch(n *ast.SwitchStatement, parent *scope.Frame) {
	swid := s.ids.NewID(n)
	disc := s.wrapE(n.Discriminant, parent)
	frame := scope.NewSwitchBody(parent, n.Cases)

	s.w.Line(fmt.Sprintf("switch (%s%d, %s)) {", s.hook(hooks.SwitchLeft), swid, disc))
	s.w.Indent()
	s.emitDeclares(frame)
	for _, c := range n.Cases {
		s.stats.SwitchCases++
		if c.Test == nil {
			s.w.Line("default:")
		} else {
			cid := s.ids.NewID(c)
			s.w.Line(fmt.Sprintf("case %s%d, %s):", s.hook(hooks.SwitchRight), cid, s.wrapE(c.Test, frame)))
		}
		s.w.Indent()
		s.visitStmts(c.Consequent, frame)
		s.w.Dedent()
	}
	s.w.Dedent()
	s.w.Line("}")
}

// visitTry implements spec.md §4.5 "TryStatement / CatchClause": the try
// body is walked unchanged (an ordinary block); the catch clause opens a
// frame seeding its param(s) as CatchParam and emits declare hooks before
// the catch body.
func (s *state) visitTry(n *ast.TryStatement, parent *scope.Frame) {
	s.w.Line("try {")
	s.visitBlock(n.Block, parent)
	s.w.WriteString(s.w.Prefix())
	if n.Handler != nil {
		param := "_"
		if id, ok := n.Handler.Param.(*ast.Identifier); ok {
			param = id.Name
		}
		s.w.Line(fmt.Sprintf("} catch (%s) {", param))
		frame := scope.NewCatch(parent, n.Handler.Param, pattern.CollectIdentifiers)
		s.w.Indent()
		s.emitDeclares(frame)
		s.visitStmts(n.Handler.Body.Body, frame)
		s.w.Dedent()
		s.w.WriteString(s.w.Prefix())
	}
	if n.Finalizer != nil {
		s.w.Line("} finally {")
		s.w.Indent()
		s.visitStmts(n.Finalizer.Body, parent)
		s.w.Dedent()
		s.w.WriteString(s.w.Prefix())
	}
	s.w.WriteString("}")
}

// visitFunctionDeclaration implements spec.md §4.5
// "FunctionDeclaration/FunctionExpression" for statement position: no
// literal wrap (that is only for the expression form).
func (s *state) visitFunctionDeclaration(n *ast.FunctionDeclaration, parent *scope.Frame) {
	frame := scope.NewFunction(parent, nil, n.Params, n.Body, pattern.CollectIdentifiers)
	name := ""
	if n.Id != nil {
		name = n.Id.Name
	}
	s.stats.Functions++
	s.w.WriteString(s.functionPrefix(n.Generator, n.Async))
	s.w.WriteString(name)
	s.w.WriteString("(")
	s.w.WriteString(s.printParams(n.Params, frame))
	s.w.WriteString(") ")
	s.writeFunctionBody(n.Body, frame)
}

func (s *state) functionPrefix(generator, async bool) string {
	prefix := ""
	if async {
		prefix += "async "
	}
	prefix += "function"
	if generator {
		prefix += "*"
	}
	prefix += " "
	return prefix
}

func (s *state) printParams(params []ast.Pattern, frame *scope.Frame) string {
	out := ""
	for i, p := range params {
		if i > 0 {
			out += ", "
		}
		out += s.printPattern(p, frame)
	}
	return out
}

// writeFunctionBody emits the try{Fe;D...;stmts}catch(e){X;throw
// e;}finally{Fx;} scaffold spec.md §4.5 describes.
func (s *state) writeFunctionBody(body *ast.BlockStatement, frame *scope.Frame) {
	id := s.ids.NewID(body)
	errVar := s.synthName(fmt.Sprintf("e%d", id))

	s.w.Line("{")
	s.w.Indent()
	s.w.Line("try {")
	s.w.Indent()
	s.w.Line(fmt.Sprintf("%s%d, arguments.callee, this, arguments);", s.hook(hooks.FuncEnter), id))
	s.emitDeclares(frame)
	s.visitStmts(body.Body, frame)
	s.w.Dedent()
	s.w.Line(fmt.Sprintf("} catch (%s) {", errVar))
	s.w.Indent()
	xid := s.synth()
	s.w.Line(fmt.Sprintf("%s%d, %s);", s.hook(hooks.Uncaught), xid, errVar))
	s.w.Line(fmt.Sprintf("throw %s;", errVar))
	s.w.Dedent()
	s.w.Line("} finally {")
	s.w.Indent()
	fxid := s.synth()
	s.w.Line(fmt.Sprintf("%s%d);", s.hook(hooks.FuncExit), fxid))
	s.w.Dedent()
	s.w.Line("}")
	s.w.Dedent()
	s.w.WriteString("}")
}
