// Package ast defines the tagged-variant AST the lexer/parser produce and
// the transform dispatcher walks.
//
// Each node kind is its own Go struct implementing Node, following
// go/ast's convention (which the teacher itself consumes via go/parser):
// a closed, finite set of concrete types rather than one generic node
// carrying a discriminator field and untyped children. spec.md §9 calls
// this out explicitly ("a static-typed dispatcher is preferable to a
// dynamic lookup — the kind table is finite and closed").
package ast

import "github.com/kolkov/instrumentor/internal/token"

// Kind discriminates node types for diagnostics (spec.md §4.5 "Unsupported
// kinds fail with a 'not yet implemented' error naming the kind").
type Kind string

// Node is implemented by every AST node. Loc returns nil for synthesized
// nodes that never existed in source text (spec.md §3: "the location
// table has an entry for that id iff the source node had loc").
type Node interface {
	Kind() Kind
	Loc() *token.Loc
}

// Stmt marks statement-position nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Expr marks expression-position nodes.
type Expr interface {
	Node
	exprNode()
}

// Pattern marks binding-pattern nodes (spec.md §4.2).
type Pattern interface {
	Node
	patternNode()
}

// Base carries the optional source span shared by every concrete node.
type Base struct {
	L *token.Loc
}

func (b Base) Loc() *token.Loc { return b.L }

// At attaches a location to a node built directly by the parser.
func At(l token.Loc) Base { return Base{L: &l} }

// Synthesized marks a node built outside the parser, with no source
// text behind it. It has no location and therefore no location-table
// entry.
func Synthesized() Base { return Base{} }
