// Package lexer tokenizes the ECMAScript-5-shaped subset of the target
// language SPEC_FULL.md §0 names. Structurally grounded on
// cuelang.org/go/cue/scanner: an immutable source buffer, a mutable
// rune-read cursor (ch/offset/rdOffset), and a Scan method returning one
// token per call, rather than tokenizing the whole file up front.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kolkov/instrumentor/internal/token"
)

// Kind discriminates a Token's lexical class.
type Kind int

const (
	EOF Kind = iota
	Ident
	Keyword
	Number
	String
	Regexp
	Punct
)

var keywords = map[string]bool{
	"var": true, "let": true, "const": true, "function": true,
	"if": true, "else": true, "while": true, "do": true, "for": true,
	"in": true, "of": true, "switch": true, "case": true, "default": true,
	"try": true, "catch": true, "finally": true, "return": true,
	"throw": true, "new": true, "delete": true, "typeof": true, "void": true,
	"true": true, "false": true, "null": true, "this": true,
	"break": true, "continue": true, "instanceof": true,
	"async": true,
}

// Token is one lexical unit.
type Token struct {
	Kind          Kind
	Literal       string
	Pos           token.Position
	NewlineBefore bool // a line break occurred between this and the prior token (ASI)
}

// Lexer scans src one token at a time.
type Lexer struct {
	src      []byte
	ch       rune
	offset   int
	rdOffset int
	line     int
	lineHead int // byte offset of the start of the current line
	sawNL    bool
	err      error
}

// New returns a Lexer positioned at the start of src.
func New(src string) *Lexer {
	l := &Lexer{src: []byte(src), line: 1}
	l.next()
	return l
}

// Err returns the first lexical error encountered, if any.
func (l *Lexer) Err() error { return l.err }

func (l *Lexer) next() {
	if l.rdOffset < len(l.src) {
		l.offset = l.rdOffset
		if l.ch == '\n' {
			l.line++
			l.lineHead = l.offset
		}
		r, w := rune(l.src[l.rdOffset]), 1
		if r >= utf8.RuneSelf {
			r, w = utf8.DecodeRune(l.src[l.rdOffset:])
		}
		l.rdOffset += w
		l.ch = r
	} else {
		l.offset = len(l.src)
		if l.ch == '\n' {
			l.line++
			l.lineHead = l.offset
		}
		l.ch = -1
	}
}

func (l *Lexer) peek() rune {
	if l.rdOffset < len(l.src) {
		return rune(l.src[l.rdOffset])
	}
	return -1
}

func (l *Lexer) pos() token.Position {
	return token.Position{Line: l.line, Column: l.offset - l.lineHead}
}

func (l *Lexer) errorf(format string, args ...any) {
	if l.err == nil {
		l.err = fmt.Errorf("%s: %s", l.pos(), fmt.Sprintf(format, args...))
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

// Scan returns the next token. regexpOK tells Scan whether a `/` at this
// point should be read as a regexp literal or a division operator — the
// usual context-sensitive ambiguity for this grammar.
func (l *Lexer) Scan(regexpOK bool) Token {
	sawNL := false
skipWhitespace:
	for {
		switch {
		case l.ch == '\n':
			sawNL = true
			l.next()
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.next()
		case l.ch == '/' && l.peek() == '/':
			for l.ch != '\n' && l.ch != -1 {
				l.next()
			}
		case l.ch == '/' && l.peek() == '*':
			l.next()
			l.next()
			for !(l.ch == '*' && l.peek() == '/') && l.ch != -1 {
				if l.ch == '\n' {
					sawNL = true
				}
				l.next()
			}
			l.next()
			l.next()
		default:
			break skipWhitespace
		}
	}

	pos := l.pos()
	if l.ch == -1 {
		return Token{Kind: EOF, Pos: pos, NewlineBefore: sawNL}
	}

	switch {
	case isIdentStart(l.ch):
		start := l.offset
		for isIdentPart(l.ch) {
			l.next()
		}
		lit := string(l.src[start:l.offset])
		kind := Ident
		if keywords[lit] {
			kind = Keyword
		}
		return Token{Kind: kind, Literal: lit, Pos: pos, NewlineBefore: sawNL}
	case unicode.IsDigit(l.ch):
		return Token{Kind: Number, Literal: l.scanNumber(), Pos: pos, NewlineBefore: sawNL}
	case l.ch == '"' || l.ch == '\'':
		return Token{Kind: String, Literal: l.scanString(l.ch), Pos: pos, NewlineBefore: sawNL}
	case l.ch == '/' && regexpOK:
		return Token{Kind: Regexp, Literal: l.scanRegexp(), Pos: pos, NewlineBefore: sawNL}
	default:
		return Token{Kind: Punct, Literal: l.scanPunct(), Pos: pos, NewlineBefore: sawNL}
	}
}

func (l *Lexer) scanNumber() string {
	start := l.offset
	if l.ch == '0' && (l.peek() == 'x' || l.peek() == 'X') {
		l.next()
		l.next()
		for isHex(l.ch) {
			l.next()
		}
		return string(l.src[start:l.offset])
	}
	for unicode.IsDigit(l.ch) {
		l.next()
	}
	if l.ch == '.' {
		l.next()
		for unicode.IsDigit(l.ch) {
			l.next()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		l.next()
		if l.ch == '+' || l.ch == '-' {
			l.next()
		}
		for unicode.IsDigit(l.ch) {
			l.next()
		}
	}
	if l.ch == 'n' { // bigint suffix
		l.next()
	}
	return string(l.src[start:l.offset])
}

func isHex(r rune) bool {
	return unicode.IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func (l *Lexer) scanString(quote rune) string {
	var b strings.Builder
	b.WriteRune(quote)
	l.next()
	for l.ch != quote {
		if l.ch == -1 || l.ch == '\n' {
			l.errorf("unterminated string literal")
			break
		}
		if l.ch == '\\' {
			b.WriteRune(l.ch)
			l.next()
			b.WriteRune(l.ch)
			l.next()
			continue
		}
		b.WriteRune(l.ch)
		l.next()
	}
	b.WriteRune(quote)
	l.next()
	return b.String()
}

func (l *Lexer) scanRegexp() string {
	var b strings.Builder
	b.WriteRune('/')
	l.next()
	inClass := false
	for l.ch != '/' || inClass {
		if l.ch == -1 || l.ch == '\n' {
			l.errorf("unterminated regular expression literal")
			break
		}
		if l.ch == '\\' {
			b.WriteRune(l.ch)
			l.next()
			b.WriteRune(l.ch)
			l.next()
			continue
		}
		if l.ch == '[' {
			inClass = true
		} else if l.ch == ']' {
			inClass = false
		}
		b.WriteRune(l.ch)
		l.next()
	}
	b.WriteRune('/')
	l.next()
	for isIdentPart(l.ch) { // flags
		b.WriteRune(l.ch)
		l.next()
	}
	return b.String()
}

// threeCharPuncts/twoCharPuncts are tried longest-first so `===` is
// never mis-scanned as `==` followed by `=`.
var threeCharPuncts = []string{"===", "!==", "**=", "...", "<<=", ">>="}
var twoCharPuncts = []string{
	"==", "!=", "<=", ">=", "&&", "||", "??",
	"++", "--", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"=>", "**", "<<", ">>",
}

func (l *Lexer) scanPunct() string {
	three := string(l.ch) + string(l.peek())
	if l.rdOffset+1 <= len(l.src) {
		three = three + l.at(l.rdOffset+1)
	}
	for _, p := range threeCharPuncts {
		if three == p {
			l.next()
			l.next()
			l.next()
			return p
		}
	}
	two := string(l.ch) + string(l.peek())
	for _, p := range twoCharPuncts {
		if two == p {
			l.next()
			l.next()
			return p
		}
	}
	ch := l.ch
	l.next()
	return string(ch)
}

func (l *Lexer) at(offset int) string {
	if offset < 0 || offset >= len(l.src) {
		return ""
	}
	return string(l.src[offset])
}
