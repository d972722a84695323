// Package scope implements the scope analyzer of spec.md §4.3: given a
// syntactic region, compute the set of names it introduces, tagged by
// kind, using two single-level passes (hoisted, then lexical).
//
// No direct teacher analog exists (Go has no hoisting or TDZ); grounded
// on the teacher's categorical bookkeeping discipline
// (InstrumentStats counting accesses by category in
// cmd/racedetector/instrument/visitor.go) applied here to binding kinds
// instead of access kinds.
package scope

import "github.com/kolkov/instrumentor/internal/ast"

// Kind tags how a name was introduced (spec.md §3 "Variable kind").
type Kind int

const (
	Var Kind = iota
	Let
	Const
	Func
	Param
	CatchParam
	Arguments
)

// HasTDZ reports whether k is subject to the temporal dead zone: no
// pre-declared binding, declared without a value at scope entry
// (spec.md §3: "TDZ applies precisely to Let and Const").
func (k Kind) HasTDZ() bool {
	return k == Let || k == Const
}

func (k Kind) String() string {
	switch k {
	case Var:
		return "Var"
	case Let:
		return "Let"
	case Const:
		return "Const"
	case Func:
		return "Func"
	case Param:
		return "Param"
	case CatchParam:
		return "CatchParam"
	case Arguments:
		return "Arguments"
	default:
		return "Unknown"
	}
}

// Binding is one name introduced in a Frame, in the order it was
// declared — the order spec.md §4.5 "Program"/"BlockStatement" emit
// their `D(...)` hook calls in.
type Binding struct {
	Name string
	Kind Kind
}

// Frame is one scope frame in the chain spec.md §3 "Scope" describes: a
// name→kind mapping, a parent link, and whether it is a lexical-only
// block frame or a function/program region frame.
type Frame struct {
	Parent           *Frame
	FunctionRegion   bool // false for lexical-only block/catch/for frames
	order            []Binding
	names            map[string]Kind
}

func newFrame(parent *Frame, functionRegion bool) *Frame {
	return &Frame{Parent: parent, FunctionRegion: functionRegion, names: make(map[string]Kind)}
}

// declare adds (or, for hoisting precedence, overwrites) a binding. Var
// names are idempotent; a Func declaration for the same name takes
// priority over a prior Var (function-hoisting precedence); anything
// else is recorded once, first write wins, consistent with
// well-formed-input inputs spec.md assumes (scope-analysis validity is
// not itself a checked invariant of this transformer).
func (f *Frame) declare(name string, kind Kind) {
	existing, ok := f.names[name]
	if !ok {
		f.names[name] = kind
		f.order = append(f.order, Binding{Name: name, Kind: kind})
		return
	}
	if existing == Var && kind == Func {
		f.names[name] = kind
		for i := range f.order {
			if f.order[i].Name == name {
				f.order[i].Kind = kind
				break
			}
		}
	}
}

// Declarations returns the frame's bindings in declare order.
func (f *Frame) Declarations() []Binding {
	return f.order
}

// Lookup walks the frame chain outward and returns the kind a name was
// declared with, and the frame that owns it.
func (f *Frame) Lookup(name string) (*Frame, Kind, bool) {
	for fr := f; fr != nil; fr = fr.Parent {
		if k, ok := fr.names[name]; ok {
			return fr, k, true
		}
	}
	return nil, 0, false
}

// NewProgram creates the program-level frame and runs both scope passes
// over its top-level body (spec.md §4.5 "Program").
func NewProgram(prog *ast.Program) *Frame {
	f := newFrame(nil, true)
	analyze(prog.Body, f)
	return f
}

// NewFunction creates a function-region frame seeded per spec.md §4.3:
// `arguments`, the function's own name if it is a named expression, and
// each parameter, then runs both scope passes over the body.
func NewFunction(parent *Frame, selfName *ast.Identifier, params []ast.Pattern, body *ast.BlockStatement, collectParam func(ast.Pattern) []string) *Frame {
	f := newFrame(parent, true)
	f.declare("arguments", Arguments)
	if selfName != nil {
		f.declare(selfName.Name, Func)
	}
	for _, p := range params {
		for _, name := range collectParam(p) {
			f.declare(name, Param)
		}
	}
	analyze(body.Body, f)
	return f
}

// NewBlock creates a lexical-only frame over a block's immediate
// children (spec.md §4.5 "BlockStatement"): only the lexical pass runs,
// since hoisted names in a block already belong to the enclosing
// function/program frame.
func NewBlock(parent *Frame, body []ast.Stmt) *Frame {
	f := newFrame(parent, false)
	analyzeLexical(body, f)
	return f
}

// NewCatch creates a catch clause's frame, seeded with its parameter
// names as CatchParam (spec.md §4.3).
func NewCatch(parent *Frame, param ast.Pattern, collectParam func(ast.Pattern) []string) *Frame {
	f := newFrame(parent, false)
	if param != nil {
		for _, name := range collectParam(param) {
			f.declare(name, CatchParam)
		}
	}
	return f
}

// NewLexicalFor creates the fresh-per-iteration frame a `for` header with
// a `let`/`const` binding opens (spec.md §4.5 "IfStatement /
// WhileStatement / ... ForStatement"): seeded directly from the
// declarator names at the given kind, no further passes.
func NewLexicalFor(parent *Frame, names []string, kind Kind) *Frame {
	f := newFrame(parent, false)
	for _, name := range names {
		f.declare(name, kind)
	}
	return f
}

// NewSwitchBody creates the lexical frame a switch body owns (spec.md
// glossary "Region": "switch body"), over the declarations of all of its
// cases' consequents combined.
func NewSwitchBody(parent *Frame, cases []*ast.SwitchCase) *Frame {
	f := newFrame(parent, false)
	for _, c := range cases {
		analyzeLexical(c.Consequent, f)
	}
	return f
}
