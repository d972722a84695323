package parser

import (
	"github.com/kolkov/instrumentor/internal/ast"
	"github.com/kolkov/instrumentor/internal/lexer"
	"github.com/kolkov/instrumentor/internal/token"
)

// parseStmtList parses statements until stop reports true.
func (p *parser) parseStmtList(stop func() bool) []ast.Stmt {
	var list []ast.Stmt
	for !stop() {
		list = append(list, p.parseStmt())
	}
	return list
}

func (p *parser) parseStmt() ast.Stmt {
	switch {
	case p.is("{"):
		return p.parseBlock()
	case p.isKeyword("var") || p.isKeyword("let") || p.isKeyword("const"):
		d := p.parseVariableDeclaration()
		p.semicolon()
		return d
	case p.isKeyword("function") || p.isKeyword("async"):
		return p.parseFunctionDeclaration()
	case p.isKeyword("return"):
		return p.parseReturn()
	case p.isKeyword("throw"):
		return p.parseThrow()
	case p.isKeyword("if"):
		return p.parseIf()
	case p.isKeyword("while"):
		return p.parseWhile()
	case p.isKeyword("do"):
		return p.parseDoWhile()
	case p.isKeyword("for"):
		return p.parseFor()
	case p.isKeyword("switch"):
		return p.parseSwitch()
	case p.isKeyword("try"):
		return p.parseTry()
	case p.isKeyword("break"):
		return p.parseBreak()
	case p.isKeyword("continue"):
		return p.parseContinue()
	case p.is(";"):
		start := p.tok.Pos
		p.next()
		return &ast.BlockStatement{Base: ast.At(p.loc(start))}
	default:
		return p.parseExpressionStatement()
	}
}

func (p *parser) parseBlock() *ast.BlockStatement {
	start := p.expect("{")
	body := p.parseStmtList(func() bool { return p.is("}") || p.tok.Kind == lexer.EOF })
	p.expect("}")
	return &ast.BlockStatement{Base: ast.At(p.loc(start)), Body: body}
}

func (p *parser) parseVariableDeclaration() *ast.VariableDeclaration {
	start := p.tok.Pos
	kind := ast.VariableKind(p.tok.Literal)
	p.next()

	var decls []*ast.VariableDeclarator
	for {
		dstart := p.tok.Pos
		id := p.parseBindingTarget()
		var init ast.Expr
		if p.accept("=") {
			init = p.parseAssignExpr()
		}
		decls = append(decls, &ast.VariableDeclarator{Base: ast.At(p.loc(dstart)), Id: id, Init: init})
		if !p.accept(",") {
			break
		}
	}
	return &ast.VariableDeclaration{Base: ast.At(p.loc(start)), VKind: kind, Declarations: decls}
}

func (p *parser) parseFunctionDeclaration() *ast.FunctionDeclaration {
	start := p.tok.Pos
	async := p.accept("async")
	p.expect("function")
	generator := p.accept("*")
	id := p.ident()
	params := p.parseParamList()
	body := p.parseBlock()
	return &ast.FunctionDeclaration{
		Base: ast.At(p.loc(start)), Id: id, Params: params, Body: body,
		Generator: generator, Async: async,
	}
}

func (p *parser) parseParamList() []ast.Pattern {
	p.expect("(")
	var params []ast.Pattern
	for !p.is(")") {
		params = append(params, p.parseBindingTargetWithDefault())
		if !p.accept(",") {
			break
		}
	}
	p.expect(")")
	return params
}

func (p *parser) parseReturn() *ast.ReturnStatement {
	start := p.tok.Pos
	p.next()
	var arg ast.Expr
	if !p.is(";") && !p.is("}") && !p.tok.NewlineBefore && p.tok.Kind != lexer.EOF {
		arg = p.parseExpr()
	}
	p.semicolon()
	return &ast.ReturnStatement{Base: ast.At(p.loc(start)), Argument: arg}
}

func (p *parser) parseThrow() *ast.ThrowStatement {
	start := p.tok.Pos
	p.next()
	arg := p.parseExpr()
	p.semicolon()
	return &ast.ThrowStatement{Base: ast.At(p.loc(start)), Argument: arg}
}

func (p *parser) parseIf() *ast.IfStatement {
	start := p.tok.Pos
	p.next()
	p.expect("(")
	test := p.parseExpr()
	p.expect(")")
	cons := p.parseStmt()
	var alt ast.Stmt
	if p.isKeyword("else") {
		p.next()
		alt = p.parseStmt()
	}
	return &ast.IfStatement{Base: ast.At(p.loc(start)), Test: test, Consequent: cons, Alternate: alt}
}

func (p *parser) parseWhile() *ast.WhileStatement {
	start := p.tok.Pos
	p.next()
	p.expect("(")
	test := p.parseExpr()
	p.expect(")")
	body := p.parseStmt()
	return &ast.WhileStatement{Base: ast.At(p.loc(start)), Test: test, Body: body}
}

func (p *parser) parseDoWhile() *ast.DoWhileStatement {
	start := p.tok.Pos
	p.next()
	body := p.parseStmt()
	if !p.isKeyword("while") {
		p.fail("expected 'while', found %q", p.tok.Literal)
	}
	p.next()
	p.expect("(")
	test := p.parseExpr()
	p.expect(")")
	p.semicolon()
	return &ast.DoWhileStatement{Base: ast.At(p.loc(start)), Body: body, Test: test}
}

// parseFor parses the for/for-in/for-of family, distinguishing them only
// after the header's first clause and an `in`/`of` lookahead, exactly as
// the grammar requires: all three share the `for (` prefix.
func (p *parser) parseFor() ast.Stmt {
	start := p.tok.Pos
	p.next()
	p.expect("(")

	if p.is(";") {
		return p.finishForClassic(start, nil)
	}

	if p.isKeyword("var") || p.isKeyword("let") || p.isKeyword("const") {
		dstart := p.tok.Pos
		kind := ast.VariableKind(p.tok.Literal)
		p.next()
		idStart := p.tok.Pos
		id := p.parseBindingTarget()
		if p.isKeyword("in") || p.isKeyword("of") {
			isForIn := p.isKeyword("in")
			p.next()
			right := p.parseAssignExpr()
			p.expect(")")
			body := p.parseStmt()
			decl := &ast.VariableDeclaration{
				Base: ast.At(p.loc(dstart)), VKind: kind,
				Declarations: []*ast.VariableDeclarator{{Base: ast.At(p.loc(idStart)), Id: id}},
			}
			if isForIn {
				return &ast.ForInStatement{Base: ast.At(p.loc(start)), Left: decl, Right: right, Body: body}
			}
			return &ast.ForOfStatement{Base: ast.At(p.loc(start)), Left: decl, Right: right, Body: body}
		}
		var init ast.Expr
		if p.accept("=") {
			init = p.parseAssignExpr()
		}
		decls := []*ast.VariableDeclarator{{Base: ast.At(p.loc(idStart)), Id: id, Init: init}}
		for p.accept(",") {
			dstart2 := p.tok.Pos
			id2 := p.parseBindingTarget()
			var init2 ast.Expr
			if p.accept("=") {
				init2 = p.parseAssignExpr()
			}
			decls = append(decls, &ast.VariableDeclarator{Base: ast.At(p.loc(dstart2)), Id: id2, Init: init2})
		}
		decl := &ast.VariableDeclaration{Base: ast.At(p.loc(dstart)), VKind: kind, Declarations: decls}
		return p.finishForClassic(start, decl)
	}

	exprStart := p.tok.Pos
	p.noIn = true
	first := p.parseExpr()
	p.noIn = false
	if p.isKeyword("in") || p.isKeyword("of") {
		isForIn := p.isKeyword("in")
		p.next()
		right := p.parseAssignExpr()
		p.expect(")")
		body := p.parseStmt()
		left := exprToPattern(first, p, exprStart)
		if isForIn {
			return &ast.ForInStatement{Base: ast.At(p.loc(start)), Left: left, Right: right, Body: body}
		}
		return &ast.ForOfStatement{Base: ast.At(p.loc(start)), Left: left, Right: right, Body: body}
	}
	return p.finishForClassic(start, first)
}

// finishForClassic parses the `; test; update) body` tail shared by the
// classic three-clause for loop, given its already-parsed init clause
// (nil, a *ast.VariableDeclaration, or an ast.Expr) and the loop's start
// position. The current token is the `;` following init, not yet
// consumed.
func (p *parser) finishForClassic(start token.Position, init ast.Node) *ast.ForStatement {
	p.expect(";")
	var test ast.Expr
	if !p.is(";") {
		test = p.parseExpr()
	}
	p.expect(";")
	var update ast.Expr
	if !p.is(")") {
		update = p.parseExpr()
	}
	p.expect(")")
	body := p.parseStmt()
	return &ast.ForStatement{Base: ast.At(p.loc(start)), Init: init, Test: test, Update: update, Body: body}
}

// exprToPattern narrows an already-parsed expression into the assignment
// target a for-in/for-of header without a declaration keyword requires:
// a plain identifier or a member expression, per dispatch.go's own
// visitForInOf narrowing. Anything else fails fast at parse time rather
// than producing an AST the transformer would reject later anyway.
func exprToPattern(e ast.Expr, p *parser, start token.Position) ast.Node {
	switch e.(type) {
	case *ast.Identifier, *ast.MemberExpression:
		return e
	default:
		p.fail("invalid for-in/of left-hand side at %s", start)
		return nil
	}
}

func (p *parser) parseSwitch() *ast.SwitchStatement {
	start := p.tok.Pos
	p.next()
	p.expect("(")
	disc := p.parseExpr()
	p.expect(")")
	p.expect("{")

	var cases []*ast.SwitchCase
	for !p.is("}") {
		cstart := p.tok.Pos
		var test ast.Expr
		if p.isKeyword("case") {
			p.next()
			test = p.parseExpr()
		} else if p.isKeyword("default") {
			p.next()
		} else {
			p.fail("expected 'case' or 'default', found %q", p.tok.Literal)
		}
		p.expect(":")
		var body []ast.Stmt
		for !p.is("}") && !p.isKeyword("case") && !p.isKeyword("default") {
			body = append(body, p.parseStmt())
		}
		cases = append(cases, &ast.SwitchCase{Base: ast.At(p.loc(cstart)), Test: test, Consequent: body})
	}
	p.expect("}")
	return &ast.SwitchStatement{Base: ast.At(p.loc(start)), Discriminant: disc, Cases: cases}
}

func (p *parser) parseTry() *ast.TryStatement {
	start := p.tok.Pos
	p.next()
	block := p.parseBlock()

	var handler *ast.CatchClause
	if p.isKeyword("catch") {
		cstart := p.tok.Pos
		p.next()
		var param ast.Pattern
		if p.accept("(") {
			param = p.parseBindingTarget()
			p.expect(")")
		}
		body := p.parseBlock()
		handler = &ast.CatchClause{Base: ast.At(p.loc(cstart)), Param: param, Body: body}
	}

	var finalizer *ast.BlockStatement
	if p.isKeyword("finally") {
		p.next()
		finalizer = p.parseBlock()
	}

	if handler == nil && finalizer == nil {
		p.fail("expected 'catch' or 'finally' after try block")
	}
	return &ast.TryStatement{Base: ast.At(p.loc(start)), Block: block, Handler: handler, Finalizer: finalizer}
}

func (p *parser) parseExpressionStatement() *ast.ExpressionStatement {
	start := p.tok.Pos
	expr := p.parseExpr()
	p.semicolon()
	return &ast.ExpressionStatement{Base: ast.At(p.loc(start)), Expression: expr}
}

func (p *parser) parseBreak() *ast.BreakStatement {
	start := p.tok.Pos
	p.next()
	p.semicolon()
	return &ast.BreakStatement{Base: ast.At(p.loc(start))}
}

func (p *parser) parseContinue() *ast.ContinueStatement {
	start := p.tok.Pos
	p.next()
	p.semicolon()
	return &ast.ContinueStatement{Base: ast.At(p.loc(start))}
}
