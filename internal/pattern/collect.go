// Package pattern implements the binding-pattern walker of spec.md §4.2:
// collecting the bound identifier names from any binding pattern, in
// source order.
package pattern

import (
	"fmt"

	"github.com/kolkov/instrumentor/internal/ast"
)

// CollectIdentifiers returns the bound names of p, in source order, per
// spec.md §4.2:
//
//   - plain name -> [name]
//   - object pattern -> each property's value, recursed; rest recurses
//     into its argument; shorthand is treated as a plain-name value
//   - array pattern -> each element recursed; holes (nil) contribute
//     nothing; rest recurses into its argument
//   - default (x = e) -> recurse into the left side only; the default
//     expression is walked later, as an expression, not here
//
// Any other node kind is a programmer error and panics — spec.md is
// explicit that this is a "fails fast" condition, not a recoverable one,
// since it means the parser produced a pattern shape the walker (and
// therefore the scope analyzer that depends on it) was never told about.
func CollectIdentifiers(p ast.Pattern) []string {
	var names []string
	collect(p, &names)
	return names
}

func collect(p ast.Pattern, names *[]string) {
	switch n := p.(type) {
	case nil:
		// hole in an array pattern: contributes nothing.
		return
	case *ast.Identifier:
		*names = append(*names, n.Name)
	case *ast.ObjectPattern:
		for _, prop := range n.Properties {
			collect(prop.Value, names)
		}
		if n.Rest != nil {
			collect(n.Rest.Argument, names)
		}
	case *ast.ArrayPattern:
		for _, el := range n.Elements {
			collect(el, names)
		}
		if n.Rest != nil {
			collect(n.Rest.Argument, names)
		}
	case *ast.RestElement:
		collect(n.Argument, names)
	case *ast.AssignmentPattern:
		collect(n.Left, names)
	default:
		panic(fmt.Sprintf("pattern: unrecognized binding pattern kind %s", p.Kind()))
	}
}
