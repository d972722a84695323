package parser

import (
	"strconv"
	"strings"

	"github.com/kolkov/instrumentor/internal/ast"
	"github.com/kolkov/instrumentor/internal/lexer"
)

// parseExpr parses a single assignment-level expression. The comma
// (sequence) operator has no corresponding AST node at this revision —
// SPEC_FULL.md's hook table has nothing to report a sequence's discarded
// intermediate values against — so, unlike a full ECMAScript grammar,
// parseExpr here is parseAssignExpr, not parseSequenceExpr.
func (p *parser) parseExpr() ast.Expr {
	return p.parseAssignExpr()
}

func (p *parser) parseAssignExpr() ast.Expr {
	start := p.tok.Pos
	left := p.parseConditional()
	if op, ok := p.assignOp(); ok {
		p.next()
		right := p.parseAssignExpr()
		return &ast.AssignmentExpression{Base: ast.At(p.loc(start)), Op: op, Left: left, Right: right}
	}
	return left
}

var assignOps = []string{
	"=", "+=", "-=", "*=", "/=", "%=", "**=",
	"<<=", ">>=", "&=", "|=", "^=",
}

func (p *parser) assignOp() (string, bool) {
	if p.tok.Kind != lexer.Punct {
		return "", false
	}
	for _, op := range assignOps {
		if p.tok.Literal == op {
			return op, true
		}
	}
	return "", false
}

func (p *parser) parseConditional() ast.Expr {
	start := p.tok.Pos
	test := p.parseBinaryExpr(1)
	if !p.accept("?") {
		return test
	}
	cons := p.parseAssignExpr()
	p.expect(":")
	alt := p.parseAssignExpr()
	return &ast.ConditionalExpression{Base: ast.At(p.loc(start)), Test: test, Consequent: cons, Alternate: alt}
}

// binPrec mirrors cue/parser's tokPrec: it maps the current token to an
// operator string and precedence, 0 meaning "not a binary operator here".
// logical reports whether the operator is `&&`/`||` (LogicalExpression,
// short-circuiting) rather than an ordinary BinaryExpression.
func (p *parser) binPrec() (op string, prec int, logical bool) {
	if p.tok.Kind == lexer.Keyword {
		switch p.tok.Literal {
		case "instanceof":
			return "instanceof", 7, false
		case "in":
			if p.noIn {
				return "", 0, false
			}
			return "in", 7, false
		}
		return "", 0, false
	}
	if p.tok.Kind != lexer.Punct {
		return "", 0, false
	}
	switch p.tok.Literal {
	case "||":
		return "||", 1, true
	case "&&":
		return "&&", 2, true
	case "|":
		return "|", 3, false
	case "^":
		return "^", 4, false
	case "&":
		return "&", 5, false
	case "==", "!=", "===", "!==":
		return p.tok.Literal, 6, false
	case "<", ">", "<=", ">=":
		return p.tok.Literal, 7, false
	case "<<", ">>":
		return p.tok.Literal, 8, false
	case "+", "-":
		return p.tok.Literal, 9, false
	case "*", "/", "%":
		return p.tok.Literal, 10, false
	case "**":
		return p.tok.Literal, 11, false
	}
	return "", 0, false
}

// parseBinaryExpr climbs precedence the way cue/parser.parseBinaryExpr
// does: parse one unary operand, then repeatedly fold in operators whose
// precedence is at least prec1, recursing at prec+1 for the right
// operand so same-precedence operators associate left.
func (p *parser) parseBinaryExpr(prec1 int) ast.Expr {
	start := p.tok.Pos
	x := p.parseUnary()
	for {
		op, prec, logical := p.binPrec()
		if prec < prec1 {
			return x
		}
		p.next()
		y := p.parseBinaryExpr(prec + 1)
		if logical {
			x = &ast.LogicalExpression{Base: ast.At(p.loc(start)), Op: op, Left: x, Right: y}
		} else {
			x = &ast.BinaryExpression{Base: ast.At(p.loc(start)), Op: op, Left: x, Right: y}
		}
	}
}

var unaryOps = map[string]bool{"!": true, "~": true, "+": true, "-": true}

func (p *parser) parseUnary() ast.Expr {
	start := p.tok.Pos
	switch {
	case p.tok.Kind == lexer.Punct && unaryOps[p.tok.Literal]:
		op := p.tok.Literal
		p.next()
		arg := p.parseUnary()
		return &ast.UnaryExpression{Base: ast.At(p.loc(start)), Op: op, Argument: arg}
	case p.isKeyword("typeof") || p.isKeyword("void") || p.isKeyword("delete"):
		op := p.tok.Literal
		p.next()
		arg := p.parseUnary()
		return &ast.UnaryExpression{Base: ast.At(p.loc(start)), Op: op, Argument: arg}
	case p.is("++") || p.is("--"):
		op := p.tok.Literal
		p.next()
		arg := p.parseUnary()
		return &ast.UpdateExpression{Base: ast.At(p.loc(start)), Op: op, Prefix: true, Argument: arg}
	}
	return p.parsePostfix()
}

// parsePostfix implements `x++`/`x--`, which ASI forbids across a
// preceding newline.
func (p *parser) parsePostfix() ast.Expr {
	start := p.tok.Pos
	x := p.parseCallOrMember(p.parsePrimary())
	if (p.is("++") || p.is("--")) && !p.tok.NewlineBefore {
		op := p.tok.Literal
		p.next()
		return &ast.UpdateExpression{Base: ast.At(p.loc(start)), Op: op, Prefix: false, Argument: x}
	}
	return x
}

// parseCallOrMember parses the `.prop`, `[expr]`, and `(args)` chain that
// can follow any primary expression, including `new Callee(...)`.
func (p *parser) parseCallOrMember(x ast.Expr) ast.Expr {
	start := x.Loc().Start
	for {
		switch {
		case p.accept("."):
			prop := p.ident()
			x = &ast.MemberExpression{Base: ast.At(p.loc(start)), Object: x, Property: prop, Computed: false}
		case p.accept("["):
			prop := p.parseExpr()
			p.expect("]")
			x = &ast.MemberExpression{Base: ast.At(p.loc(start)), Object: x, Property: prop, Computed: true}
		case p.is("("):
			args := p.parseArgs()
			x = &ast.CallExpression{Base: ast.At(p.loc(start)), Callee: x, Arguments: args}
		default:
			return x
		}
	}
}

func (p *parser) parseArgs() []ast.Expr {
	p.expect("(")
	var args []ast.Expr
	for !p.is(")") {
		args = append(args, p.parseAssignExpr())
		if !p.accept(",") {
			break
		}
	}
	p.expect(")")
	return args
}

func (p *parser) parseNew() ast.Expr {
	start := p.tok.Pos
	p.next() // "new"
	calleeStart := p.tok.Pos
	var callee ast.Expr = p.parsePrimary()
	for {
		switch {
		case p.accept("."):
			prop := p.ident()
			callee = &ast.MemberExpression{Base: ast.At(p.loc(calleeStart)), Object: callee, Property: prop, Computed: false}
		case p.accept("["):
			prop := p.parseExpr()
			p.expect("]")
			callee = &ast.MemberExpression{Base: ast.At(p.loc(calleeStart)), Object: callee, Property: prop, Computed: true}
		default:
			goto done
		}
	}
done:
	var args []ast.Expr
	if p.is("(") {
		args = p.parseArgs()
	}
	return &ast.NewExpression{Base: ast.At(p.loc(start)), Callee: callee, Arguments: args}
}

func (p *parser) parsePrimary() ast.Expr {
	start := p.tok.Pos
	switch {
	case p.tok.Kind == lexer.Ident:
		return p.ident()
	case p.isKeyword("this"):
		p.next()
		return &ast.ThisExpression{Base: ast.At(p.loc(start))}
	case p.isKeyword("new"):
		return p.parseNew()
	case p.isKeyword("function"):
		return p.parseFunctionExpression(false)
	case p.isKeyword("async"):
		p.next()
		return p.parseFunctionExpression(true)
	case p.isKeyword("true") || p.isKeyword("false"):
		lit := p.tok.Literal
		p.next()
		return &ast.Literal{Base: ast.At(p.loc(start)), LKind: ast.LitBoolean, Raw: lit, Value: lit == "true"}
	case p.isKeyword("null"):
		p.next()
		return &ast.Literal{Base: ast.At(p.loc(start)), LKind: ast.LitNull, Raw: "null"}
	case p.tok.Kind == lexer.Number:
		return p.parseNumberLiteral()
	case p.tok.Kind == lexer.String:
		lit := p.tok.Literal
		p.next()
		return &ast.Literal{Base: ast.At(p.loc(start)), LKind: ast.LitString, Raw: lit, Value: unquoteStringLiteral(lit)}
	case p.tok.Kind == lexer.Regexp:
		lit := p.tok.Literal
		p.next()
		return &ast.Literal{Base: ast.At(p.loc(start)), LKind: ast.LitRegExp, Raw: lit}
	case p.accept("("):
		e := p.parseExpr()
		p.expect(")")
		return e
	}
	p.fail("unexpected token %q", p.tok.Literal)
	return nil
}

func (p *parser) parseNumberLiteral() ast.Expr {
	start := p.tok.Pos
	lit := p.tok.Literal
	p.next()
	if strings.HasSuffix(lit, "n") {
		return &ast.Literal{Base: ast.At(p.loc(start)), LKind: ast.LitBigInt, Raw: lit}
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		// hex literals (0x...) aren't base-10 floats; strconv.ParseFloat
		// with base prefixes handles them since Go 1.13's '0x1p0' syntax
		// does not cover plain '0x1a', so fall back to ParseInt for those.
		if iv, ierr := strconv.ParseInt(lit, 0, 64); ierr == nil {
			v = float64(iv)
		} else {
			p.fail("invalid number literal %q", lit)
		}
	}
	return &ast.Literal{Base: ast.At(p.loc(start)), LKind: ast.LitNumber, Raw: lit, Value: v}
}

func (p *parser) parseFunctionExpression(async bool) ast.Expr {
	start := p.tok.Pos
	p.expect("function")
	generator := p.accept("*")
	var id *ast.Identifier
	if p.tok.Kind == lexer.Ident {
		id = p.ident()
	}
	params := p.parseParamList()
	body := p.parseBlock()
	return &ast.FunctionExpression{
		Base: ast.At(p.loc(start)), Id: id, Params: params, Body: body,
		Generator: generator, Async: async,
	}
}

// unquoteStringLiteral strips the surrounding quote characters and
// resolves the handful of escapes the lexer passed through verbatim.
// Raw source quoting (single or double) need not match Go's, so
// strconv.Unquote cannot be used directly.
func unquoteStringLiteral(lit string) string {
	if len(lit) < 2 {
		return lit
	}
	body := lit[1 : len(lit)-1]
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) {
			i++
			switch body[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(body[i])
			}
			continue
		}
		b.WriteByte(body[i])
	}
	return b.String()
}
