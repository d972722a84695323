// Package token defines source positions for the script-language AST.
//
// Positions follow the parser contract spec.md §6 assigns to an
// off-the-shelf parser: line numbers are 1-based, column numbers are
// 0-based, exactly as delivered by the scanner. Callers that need the
// 1-based-at-output columns the id→location table publishes (spec.md §3)
// add 1 themselves at serialization time rather than here, so a Position
// always reflects what the scanner actually saw.
package token

import "fmt"

// Position is a single point in source text, structurally grounded on
// cuelang.org/go's cue/token.Position (filename/offset/line/column)
// narrowed to the two fields this transformer's location table needs.
type Position struct {
	Line   int // 1-based
	Column int // 0-based
}

// IsValid reports whether p denotes a real scanned position.
func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Loc is the start/end span of an AST node, mirroring spec.md §3's
// `{start:{line,col}, end:{line,col}}` loc record.
type Loc struct {
	Start Position
	End   Position
}

// Tuple returns the 4-element [startLine, startColumn+1, endLine,
// endColumn+1] form spec.md §3 specifies for the serialized location
// table: columns shifted to 1-based at the output boundary.
func (l Loc) Tuple() [4]int {
	return [4]int{l.Start.Line, l.Start.Column + 1, l.End.Line, l.End.Column + 1}
}
