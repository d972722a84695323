// Package parser turns lexer tokens into internal/ast nodes.
//
// Structurally grounded on cuelang.org/go/cue/parser: a single parser
// struct holding the current lookahead token plus a next() that pulls
// the following one, expect() for token-consuming assertions, and a
// precedence-climbing parseBinaryExpr(prec1) driven by a token-to-
// precedence table, the same shape as parser.tokPrec/parseBinaryExpr
// there. No off-the-shelf parser exists in the retrieved pack for this
// grammar (SPEC_FULL.md DOMAIN STACK), so this package, like
// internal/lexer, is hand-written rather than imported.
package parser

import (
	"fmt"

	"github.com/kolkov/instrumentor/internal/ast"
	"github.com/kolkov/instrumentor/internal/lexer"
	"github.com/kolkov/instrumentor/internal/token"
)

// Parse scans and parses src (named file for diagnostics) into a
// Program. It returns the first syntax error encountered, wrapped with
// its source position.
func Parse(src, file string) (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(parseError)
			if !ok {
				panic(r)
			}
			err = pe.err
		}
	}()

	p := &parser{file: file, lex: lexer.New(src)}
	p.next()
	body := p.parseStmtList(func() bool { return p.tok.Kind == lexer.EOF })
	return &ast.Program{Body: body}, nil
}

// parseError wraps a syntax error so Parse's recover can distinguish it
// from an actual programmer-error panic elsewhere in the parser.
type parseError struct{ err error }

type parser struct {
	file string
	lex  *lexer.Lexer
	tok  lexer.Token
	// prevEnd is the start position of the most recently consumed token;
	// loc() uses it as the end of the node being built.
	prevEnd token.Position
	// noIn suppresses `in` as a binary operator while parsing a
	// `for (` header's first clause, the ECMAScript grammar's "NoIn"
	// parameter — without it `for (a in b)` would be swallowed whole by
	// parseBinaryExpr before parseFor ever gets to look for `in`.
	noIn bool
}

// next advances to the next token. regexpOK is derived from the
// previous token: a `/` can only start a regexp literal where a value is
// expected, not after an operand.
func (p *parser) next() {
	p.prevEnd = p.tok.Pos
	p.tok = p.lex.Scan(p.regexpAllowed())
	if p.lex.Err() != nil {
		p.fail(p.lex.Err().Error())
	}
}

// regexpAllowed reports whether the token just consumed leaves us in a
// position where `/` should be scanned as a regexp rather than division.
func (p *parser) regexpAllowed() bool {
	switch p.tok.Kind {
	case lexer.Ident, lexer.Number, lexer.String, lexer.Regexp:
		return false
	}
	if p.tok.Literal == ")" || p.tok.Literal == "]" {
		return false
	}
	return true
}

func (p *parser) loc(start token.Position) token.Loc {
	return token.Loc{Start: start, End: p.prevEnd}
}

func (p *parser) fail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	panic(parseError{fmt.Errorf("%s:%s: %s", p.file, p.tok.Pos, msg)})
}

func (p *parser) is(lit string) bool {
	return p.tok.Literal == lit
}

func (p *parser) isKeyword(kw string) bool {
	return p.tok.Kind == lexer.Keyword && p.tok.Literal == kw
}

// expect consumes the current token if it matches lit, else fails.
func (p *parser) expect(lit string) token.Position {
	pos := p.tok.Pos
	if !p.is(lit) {
		p.fail("expected %q, found %q", lit, p.tok.Literal)
	}
	p.next()
	return pos
}

// accept consumes the current token if it matches lit, reporting whether
// it did.
func (p *parser) accept(lit string) bool {
	if p.is(lit) {
		p.next()
		return true
	}
	return false
}

func (p *parser) ident() *ast.Identifier {
	if p.tok.Kind != lexer.Ident {
		p.fail("expected identifier, found %q", p.tok.Literal)
	}
	start := p.tok.Pos
	name := p.tok.Literal
	p.next()
	l := p.loc(start)
	return &ast.Identifier{Base: ast.At(l), Name: name}
}

// semicolon implements automatic semicolon insertion: a `;` is consumed
// if present, else one is assumed if the next token starts on a new
// line, closes the statement list, or is EOF.
func (p *parser) semicolon() {
	if p.accept(";") {
		return
	}
	if p.is("}") || p.tok.Kind == lexer.EOF || p.tok.NewlineBefore {
		return
	}
	p.fail("expected ';', found %q", p.tok.Literal)
}
