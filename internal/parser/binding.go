package parser

import (
	"github.com/kolkov/instrumentor/internal/ast"
	"github.com/kolkov/instrumentor/internal/lexer"
)

// parseBindingTarget parses one binding target with no top-level default:
// a plain identifier or a destructuring pattern. Used for variable
// declarators and catch parameters, where a default can only ever occur
// nested inside a destructuring shape, never at the top level.
func (p *parser) parseBindingTarget() ast.Pattern {
	switch {
	case p.is("{"):
		return p.parseObjectPattern()
	case p.is("["):
		return p.parseArrayPattern()
	default:
		return p.ident()
	}
}

// parseBindingTargetWithDefault additionally accepts a rest element and a
// top-level `= default`, the two shapes only function parameters allow.
func (p *parser) parseBindingTargetWithDefault() ast.Pattern {
	if p.is("...") {
		start := p.tok.Pos
		p.next()
		arg := p.parseBindingTarget()
		return &ast.RestElement{Base: ast.At(p.loc(start)), Argument: arg}
	}
	start := p.tok.Pos
	target := p.parseBindingTarget()
	if p.accept("=") {
		def := p.parseAssignExpr()
		return &ast.AssignmentPattern{Base: ast.At(p.loc(start)), Left: target, Default: def}
	}
	return target
}

func (p *parser) parseObjectPattern() *ast.ObjectPattern {
	start := p.expect("{")
	var props []*ast.PatternProperty
	var rest *ast.RestElement
	for !p.is("}") {
		if p.is("...") {
			rstart := p.tok.Pos
			p.next()
			arg := p.parseBindingTarget()
			rest = &ast.RestElement{Base: ast.At(p.loc(rstart)), Argument: arg}
			break
		}
		props = append(props, p.parsePatternProperty())
		if !p.accept(",") {
			break
		}
	}
	p.expect("}")
	return &ast.ObjectPattern{Base: ast.At(p.loc(start)), Properties: props, Rest: rest}
}

func (p *parser) parsePatternProperty() *ast.PatternProperty {
	pstart := p.tok.Pos
	if p.accept("[") {
		keyExpr := p.parseAssignExpr()
		p.expect("]")
		p.expect(":")
		value := p.parseBindingTargetWithDefault()
		return &ast.PatternProperty{Base: ast.At(p.loc(pstart)), Computed: true, KeyExpr: keyExpr, Value: value}
	}

	key := p.propertyKeyName()
	if p.accept(":") {
		value := p.parseBindingTargetWithDefault()
		return &ast.PatternProperty{Base: ast.At(p.loc(pstart)), Key: key, Value: value}
	}
	// shorthand `{a}` or `{a = default}`
	var value ast.Pattern = &ast.Identifier{Base: ast.At(p.loc(pstart)), Name: key}
	if p.accept("=") {
		def := p.parseAssignExpr()
		value = &ast.AssignmentPattern{Base: ast.At(p.loc(pstart)), Left: value, Default: def}
	}
	return &ast.PatternProperty{Base: ast.At(p.loc(pstart)), Key: key, Value: value, Shorthand: true}
}

// propertyKeyName reads a non-computed property key: an identifier, a
// keyword used as a property name (`{catch: 1}` is legal), or a string/
// number literal's raw text.
func (p *parser) propertyKeyName() string {
	switch p.tok.Kind {
	case lexer.Ident, lexer.Keyword, lexer.Number:
		lit := p.tok.Literal
		p.next()
		return lit
	case lexer.String:
		lit := p.tok.Literal
		p.next()
		return unquoteStringLiteral(lit)
	}
	p.fail("expected property name, found %q", p.tok.Literal)
	return ""
}

func (p *parser) parseArrayPattern() *ast.ArrayPattern {
	start := p.expect("[")
	var elements []ast.Pattern
	var rest *ast.RestElement
	for !p.is("]") {
		if p.is(",") {
			elements = append(elements, nil) // hole
			p.next()
			continue
		}
		if p.is("...") {
			rstart := p.tok.Pos
			p.next()
			arg := p.parseBindingTarget()
			rest = &ast.RestElement{Base: ast.At(p.loc(rstart)), Argument: arg}
			break
		}
		elements = append(elements, p.parseBindingTargetWithDefault())
		if !p.accept(",") {
			break
		}
	}
	p.expect("]")
	return &ast.ArrayPattern{Base: ast.At(p.loc(start)), Elements: elements, Rest: rest}
}
