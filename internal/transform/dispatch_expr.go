package transform

import (
	"fmt"
	"strconv"

	"github.com/kolkov/instrumentor/internal/ast"
	"github.com/kolkov/instrumentor/internal/emit"
	"github.com/kolkov/instrumentor/internal/hooks"
	"github.com/kolkov/instrumentor/internal/pattern"
	"github.com/kolkov/instrumentor/internal/scope"
)

// withScratch runs fn against a fresh Writer seeded at the current
// indent depth and returns what it wrote, then restores the original
// Writer. Used to render a FunctionExpression's full statement scaffold
// as a self-contained string that can be spliced into the surrounding
// expression text (the literal wrapper call spec.md §4.5 describes).
func (s *state) withScratch(fn func()) string {
	saved := s.w
	s.w = emit.New(s.opts.IndentUnit, s.opts.EOL)
	for i := 0; i < saved.Depth(); i++ {
		s.w.Indent()
	}
	s.w.WriteString(s.w.Prefix())
	fn()
	out := s.w.String()
	s.w = saved
	return out
}

// wrapE allocates a fresh id and wraps e's instrumented text in the
// generic value-reporting hook spec.md §4.5 reuses at every "X-wrapped-
// in-E" site it names (VariableDeclarator init, Return/Throw argument,
// If/While/DoWhile/For test, Switch discriminant/case test).
func (s *state) wrapE(e ast.Expr, frame *scope.Frame) string {
	id := s.ids.NewID(e)
	return fmt.Sprintf("%s%d, %s)", s.hook(hooks.Expression), id, s.visitExpr(e, frame))
}

// visitExpr dispatches one expression node to its instrumented textual
// form, spec.md §4.5. Identifier is the only node whose rendering
// depends on the LHS-context flag (spec.md §9): every other write target
// (AssignmentExpression.Left, UpdateExpression.Argument) is handled by a
// dedicated caller that never reaches this generic dispatch for its
// top-level node.
func (s *state) visitExpr(e ast.Expr, frame *scope.Frame) string {
	switch n := e.(type) {
	case *ast.Identifier:
		if s.lhs {
			return n.Name
		}
		id := s.ids.NewID(n)
		s.stats.Reads++
		return fmt.Sprintf("%s%d, %s, %s)", s.hook(hooks.Read), id, strconv.Quote(n.Name), n.Name)
	case *ast.Literal:
		return s.visitLiteral(n)
	case *ast.BinaryExpression:
		id := s.ids.NewID(n)
		s.stats.BinaryOps++
		return fmt.Sprintf("%s%d, %s, %s, %s)", s.hook(hooks.Binary), id, strconv.Quote(n.Op), s.visitExpr(n.Left, frame), s.visitExpr(n.Right, frame))
	case *ast.LogicalExpression:
		id := s.ids.NewID(n)
		s.stats.Conditions++
		return fmt.Sprintf("(%s%d, %s, %s) %s %s)", s.hook(hooks.Condition), id, strconv.Quote(n.Op), s.visitExpr(n.Left, frame), n.Op, s.visitExpr(n.Right, frame))
	case *ast.UnaryExpression:
		return s.visitUnary(n, frame)
	case *ast.UpdateExpression:
		return s.visitUpdate(n, frame)
	case *ast.AssignmentExpression:
		return s.visitAssignment(n, frame)
	case *ast.ConditionalExpression:
		id := s.ids.NewID(n)
		s.stats.Conditions++
		return fmt.Sprintf("(%s%d, \"?\", %s) ? %s : %s)", s.hook(hooks.Condition), id, s.visitExpr(n.Test, frame), s.visitExpr(n.Consequent, frame), s.visitExpr(n.Alternate, frame))
	case *ast.MemberExpression:
		return s.visitMember(n, frame)
	case *ast.CallExpression:
		return s.visitCall(n, frame)
	case *ast.NewExpression:
		return s.visitNew(n, frame)
	case *ast.FunctionExpression:
		return s.visitFunctionExpression(n, frame)
	case *ast.ThisExpression:
		return "this"
	default:
		panic(unsupported(s.file, e.Loc(), string(e.Kind()), ""))
	}
}

func (s *state) visitLiteral(n *ast.Literal) string {
	id := s.ids.NewID(n)
	s.stats.Literals++
	typeCode := map[ast.LiteralKind]int{
		ast.LitString: 0, ast.LitBoolean: 1, ast.LitNull: 2,
		ast.LitNumber: 3, ast.LitRegExp: 4, ast.LitBigInt: 5,
	}[n.LKind]
	return fmt.Sprintf("%s%d, %s, %d)", s.hook(hooks.Literal), id, n.Raw, typeCode)
}

// visitUnary implements spec.md §4.5 "UnaryExpression": `delete` gets
// its own hook over a member-expression argument; everything else
// (including typeof/void) goes through the shared U hook.
func (s *state) visitUnary(n *ast.UnaryExpression, frame *scope.Frame) string {
	if n.Op == "delete" {
		m, ok := n.Argument.(*ast.MemberExpression)
		if !ok {
			panic(unsupported(s.file, n.Loc(), "delete over a non-member-expression argument", "delete only an object property, e.g. delete obj.prop"))
		}
		id := s.ids.NewID(n)
		base, prop := s.memberParts(m, frame)
		s.stats.Deletes++
		return fmt.Sprintf("%s%d, %s, %s)", s.hook(hooks.Delete), id, base, prop)
	}
	id := s.ids.NewID(n)
	s.stats.UnaryOps++
	return fmt.Sprintf("%s%d, %s, %s)", s.hook(hooks.Unary), id, strconv.Quote(n.Op), s.visitExpr(n.Argument, frame))
}

// memberParts renders a MemberExpression's base and property for a
// single-evaluation read context (get-field and delete never need to
// write back, so no temp caching is necessary — base and prop each
// appear exactly once in the emitted call).
func (s *state) memberParts(m *ast.MemberExpression, frame *scope.Frame) (base, prop string) {
	base = s.visitExpr(m.Object, frame)
	if m.Computed {
		prop = s.visitExpr(m.Property, frame)
	} else {
		prop = strconv.Quote(m.Property.(*ast.Identifier).Name)
	}
	return base, prop
}

// visitMember implements spec.md §4.5 "MemberExpression" for a read:
// `G(id, base, prop)`.
func (s *state) visitMember(n *ast.MemberExpression, frame *scope.Frame) string {
	id := s.ids.NewID(n)
	base, prop := s.memberParts(n, frame)
	s.stats.GetFields++
	return fmt.Sprintf("%s%d, %s, %s)", s.hook(hooks.GetField), id, base, prop)
}

// emitMemberWrite renders a put-field: the base and (if computed) the
// property are each cached once in a runtime-global temp so they are
// evaluated exactly once regardless of appearing both in the real
// assignment target and as P's reporting arguments — the same
// `<runtimeGlobal>._t`-style convention spec.md §4.5 already uses for
// for-in/of temporaries, generalized here to base/property caching so
// that a computed base or property is never evaluated twice.
func (s *state) emitMemberWrite(m *ast.MemberExpression, id int, rhsWrapped string, frame *scope.Frame) string {
	s.stats.PutFields++
	baseTmp := s.opts.RuntimeGlobal + "._b"
	baseWalked := s.visitExpr(m.Object, frame)
	if m.Computed {
		propTmp := s.opts.RuntimeGlobal + "._p"
		propWalked := s.visitExpr(m.Property, frame)
		return fmt.Sprintf("(%s = %s, %s = %s, %s[%s] = %s%d, %s, %s, %s))",
			baseTmp, baseWalked, propTmp, propWalked, baseTmp, propTmp,
			s.hook(hooks.PutField), id, baseTmp, propTmp, rhsWrapped)
	}
	name := m.Property.(*ast.Identifier).Name
	quoted := strconv.Quote(name)
	return fmt.Sprintf("(%s = %s, %s.%s = %s%d, %s, %s, %s))",
		baseTmp, baseWalked, baseTmp, name,
		s.hook(hooks.PutField), id, baseTmp, quoted, rhsWrapped)
}

// visitAssignment implements spec.md §4.5 "AssignmentExpression":
// `W(id, [names], rhs-wrapped-in-E)` whose evaluation performs the
// assignment. Compound operators are out of scope (Open Questions —
// decided: fail fast). Destructuring targets outside a binding are
// likewise unsupported (spec.md §4.5 "Others").
func (s *state) visitAssignment(n *ast.AssignmentExpression, frame *scope.Frame) string {
	if n.Op != "=" {
		panic(unsupported(s.file, n.Loc(), fmt.Sprintf("compound assignment operator %q", n.Op), "rewrite as `x = x "+n.Op[:len(n.Op)-1]+" e`"))
	}
	switch left := n.Left.(type) {
	case *ast.Identifier:
		id := s.ids.NewID(n)
		s.stats.Writes++
		return fmt.Sprintf("%s = %s%d, [%s], %s)", left.Name, s.hook(hooks.Write), id, strconv.Quote(left.Name), s.wrapE(n.Right, frame))
	case *ast.MemberExpression:
		id := s.ids.NewID(n)
		return s.emitMemberWrite(left, id, s.wrapE(n.Right, frame), frame)
	default:
		panic(unsupported(s.file, n.Loc(), "destructuring assignment outside a binding", "assign to a plain identifier or member expression, or move the destructuring into a variable declaration"))
	}
}

// visitUpdate implements spec.md §4.5 "UpdateExpression": Up(id, binId,
// op, prefix, arg, writer). binId is handed to the runtime for its own
// synthesized binary pre/post reporting — our emitted text never calls a
// B(...) hook for it directly.
func (s *state) visitUpdate(n *ast.UpdateExpression, frame *scope.Frame) string {
	id := s.ids.NewID(n)
	binID := s.synth()
	wid := s.synth()
	s.stats.UpdateOps++
	nv := s.synthName(fmt.Sprintf("nv%d", id))

	var argText, writer string
	switch arg := n.Argument.(type) {
	case *ast.Identifier:
		argText = s.visitExpr(arg, frame)
		writer = fmt.Sprintf("function(%s){ return %s = %s%d, [%s], %s); }",
			nv, arg.Name, s.hook(hooks.Write), wid, strconv.Quote(arg.Name), nv)
	case *ast.MemberExpression:
		baseTmp := s.opts.RuntimeGlobal + "._b"
		baseWalked := s.visitExpr(arg.Object, frame)
		gid := s.synth()
		if arg.Computed {
			propTmp := s.opts.RuntimeGlobal + "._p"
			propWalked := s.visitExpr(arg.Property, frame)
			argText = fmt.Sprintf("%s%d, (%s = %s), (%s = %s))", s.hook(hooks.GetField), gid, baseTmp, baseWalked, propTmp, propWalked)
			writer = fmt.Sprintf("function(%s){ return %s[%s] = %s%d, %s, %s, %s); }",
				nv, baseTmp, propTmp, s.hook(hooks.PutField), wid, baseTmp, propTmp, nv)
		} else {
			name := arg.Property.(*ast.Identifier).Name
			quoted := strconv.Quote(name)
			argText = fmt.Sprintf("%s%d, (%s = %s), %s)", s.hook(hooks.GetField), gid, baseTmp, baseWalked, quoted)
			writer = fmt.Sprintf("function(%s){ return %s.%s = %s%d, %s, %s, %s); }",
				nv, baseTmp, name, s.hook(hooks.PutField), wid, baseTmp, quoted, nv)
		}
	default:
		panic(unsupported(s.file, n.Loc(), "update expression over a non-identifier, non-member-expression argument", ""))
	}

	return fmt.Sprintf("%s%d, %d, %s, %t, %s, %s)", s.hook(hooks.Update), id, binID, strconv.Quote(n.Op), n.Prefix, argText, writer)
}

// visitCall implements spec.md §4.5 "CallExpression": a plain call
// builds `F(id, callee, false)` and invokes the returned wrapper; a
// method call builds `M(id, base, prop, false)`, which binds `this` to
// base internally — so the base is read exactly once, here, never
// re-read by a literal `base.prop(...)` form.
func (s *state) visitCall(n *ast.CallExpression, frame *scope.Frame) string {
	id := s.ids.NewID(n)
	args := s.visitArgs(n.Arguments, frame)
	if m, ok := n.Callee.(*ast.MemberExpression); ok {
		base, prop := s.memberParts(m, frame)
		s.stats.MethodCalls++
		return fmt.Sprintf("%s%d, %s, %s, false)(%s)", s.hook(hooks.BuildMethod), id, base, prop, args)
	}
	s.stats.Calls++
	return fmt.Sprintf("%s%d, %s, false)(%s)", s.hook(hooks.BuildCall), id, s.visitExpr(n.Callee, frame), args)
}

// visitNew mirrors visitCall with the constructor flag set, per spec.md
// §4.5 "Constructor calls (new) set the constructor flag and use
// reflective construction when available."
func (s *state) visitNew(n *ast.NewExpression, frame *scope.Frame) string {
	id := s.ids.NewID(n)
	args := s.visitArgs(n.Arguments, frame)
	if m, ok := n.Callee.(*ast.MemberExpression); ok {
		base, prop := s.memberParts(m, frame)
		s.stats.MethodCalls++
		return fmt.Sprintf("new (%s%d, %s, %s, true))(%s)", s.hook(hooks.BuildMethod), id, base, prop, args)
	}
	s.stats.Calls++
	return fmt.Sprintf("new (%s%d, %s, true))(%s)", s.hook(hooks.BuildCall), id, s.visitExpr(n.Callee, frame), args)
}

func (s *state) visitArgs(args []ast.Expr, frame *scope.Frame) string {
	out := ""
	for i, a := range args {
		if i > 0 {
			out += ", "
		}
		out += s.visitExpr(a, frame)
	}
	return out
}

// visitFunctionExpression implements spec.md §4.5: "FunctionExpression
// appears inside a literal wrapper so its existence is also reported as
// a literal value" — the L hook here omits the typeCode argument (none
// of the enumerated LiteralKind values describes a function).
func (s *state) visitFunctionExpression(n *ast.FunctionExpression, parent *scope.Frame) string {
	litID := s.ids.NewID(n)
	frame := scope.NewFunction(parent, n.Id, n.Params, n.Body, pattern.CollectIdentifiers)
	name := ""
	if n.Id != nil {
		name = n.Id.Name
	}
	s.stats.Functions++
	header := s.functionPrefix(n.Generator, n.Async) + name + "(" + s.printParams(n.Params, frame) + ") "
	body := s.withScratch(func() { s.writeFunctionBody(n.Body, frame) })
	return fmt.Sprintf("%s%d, %s%s)", s.hook(hooks.Literal), litID, header, body)
}

// printPattern renders a binding pattern in LHS textual form, per
// spec.md §4.2/§4.5: identifiers print raw (routed through visitExpr
// under the LHS flag so that single code path stays authoritative, per
// spec.md §9's "thread a single boolean" design note); destructuring
// shapes are printed literally since they are not Expr nodes and so
// never reach visitExpr, but any default expression or computed key
// inside them is still instrumented as an ordinary RHS expression.
func (s *state) printPattern(p ast.Pattern, frame *scope.Frame) string {
	switch n := p.(type) {
	case nil:
		return ""
	case *ast.Identifier:
		var out string
		s.withLHS(true, func() { out = s.visitExpr(n, frame) })
		return out
	case *ast.ObjectPattern:
		out := "{"
		for i, prop := range n.Properties {
			if i > 0 {
				out += ", "
			}
			if prop.Shorthand {
				out += s.printPattern(prop.Value, frame)
				continue
			}
			key := prop.Key
			if prop.Computed {
				out += "[" + s.visitExpr(prop.KeyExpr, frame) + "]"
			} else {
				out += key
			}
			out += ": " + s.printPattern(prop.Value, frame)
		}
		if n.Rest != nil {
			if len(n.Properties) > 0 {
				out += ", "
			}
			out += "..." + s.printPattern(n.Rest.Argument, frame)
		}
		return out + "}"
	case *ast.ArrayPattern:
		out := "["
		for i, el := range n.Elements {
			if i > 0 {
				out += ", "
			}
			out += s.printPattern(el, frame)
		}
		if n.Rest != nil {
			if len(n.Elements) > 0 {
				out += ", "
			}
			out += "..." + s.printPattern(n.Rest.Argument, frame)
		}
		return out + "]"
	case *ast.RestElement:
		return "..." + s.printPattern(n.Argument, frame)
	case *ast.AssignmentPattern:
		return s.printPattern(n.Left, frame) + " = " + s.visitExpr(n.Default, frame)
	default:
		panic(unsupported(s.file, p.Loc(), string(p.Kind()), ""))
	}
}
