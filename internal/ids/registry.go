// Package ids implements the id/location registry of spec.md §4.1: a
// monotonically increasing integer id per instrumented site, paired with
// the site's source span when one exists.
//
// Grounded on the teacher's InstrumentPoint bookkeeping
// (cmd/racedetector/instrument/visitor.go), generalized from "a record
// keyed by the AST node, carrying an access classification" to "a record
// keyed by the allocated integer, carrying the node's source span".
package ids

import (
	"encoding/json"

	"github.com/kolkov/instrumentor/internal/ast"
)

// Registry allocates ids in visit order and remembers each one's location.
//
// Not safe for concurrent use: spec.md §5 states the transformer is a
// single-threaded synchronous pipeline with no shared mutable state
// beyond the per-file id counter and location table, both reset at the
// driver boundary between files.
type Registry struct {
	next  int
	table map[int][4]int
}

// New returns an empty registry, ids starting at 0.
func New() *Registry {
	return &Registry{table: make(map[int][4]int)}
}

// NewID allocates the next id for node and records its location if node
// has one. Synthesized nodes (ast.Synthesized()) get an id but no table
// entry, matching spec.md §3's invariant: "the location table has an
// entry for that id iff the source node had loc".
func (r *Registry) NewID(node ast.Node) int {
	id := r.next
	r.next++
	if node != nil {
		if loc := node.Loc(); loc != nil {
			r.table[id] = loc.Tuple()
		}
	}
	return id
}

// Len returns the count of ids allocated so far.
func (r *Registry) Len() int {
	return r.next
}

// MarshalTable serializes the id→location table as the literal object
// spec.md §3/§6 requires: `{"0":[1,1,1,5], ...}`. This happens to be
// valid JSON and valid script-language object-literal syntax at once
// (every value is a flat array of small integers), so encoding/json
// produces the exact preamble fragment with no hand-rolled serializer —
// see DESIGN.md and SPEC_FULL.md DOMAIN STACK.
func (r *Registry) MarshalTable() ([]byte, error) {
	// Keys must be strings for a JS-shaped object literal; map[int] keys
	// marshal as quoted decimal strings under encoding/json already, so
	// no intermediate map[string] copy is needed.
	return json.Marshal(r.table)
}
