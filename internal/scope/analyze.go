package scope

import (
	"github.com/kolkov/instrumentor/internal/ast"
	"github.com/kolkov/instrumentor/internal/pattern"
)

// analyze runs the hoisted pass (recursive through block-scoped
// containers) followed by the lexical pass (immediate statements only)
// over a region's body, per spec.md §4.3.
func analyze(body []ast.Stmt, f *Frame) {
	analyzeHoisted(body, f)
	analyzeLexical(body, f)
}

// analyzeLexical collects let/const declarations from the region's
// immediate statements only — nested blocks get their own frame when the
// dispatcher later visits them (spec.md §4.3: "two single-level passes
// run over its immediate statements").
func analyzeLexical(body []ast.Stmt, f *Frame) {
	for _, stmt := range body {
		if decl, ok := stmt.(*ast.VariableDeclaration); ok && decl.VKind != ast.KindVar {
			kind := Let
			if decl.VKind == ast.KindConst {
				kind = Const
			}
			for _, d := range decl.Declarations {
				for _, name := range pattern.CollectIdentifiers(d.Id) {
					f.declare(name, kind)
				}
			}
		}
	}
}

// analyzeHoisted collects var declarations and function declarations,
// recursing into block-scoped containers (blocks, loops, switches, try)
// because they do not open a new hoisting frame, but stopping at nested
// functions and classes, which introduce their own region (spec.md
// §4.3).
func analyzeHoisted(body []ast.Stmt, f *Frame) {
	for _, stmt := range body {
		hoistStmt(stmt, f)
	}
}

func hoistStmt(stmt ast.Stmt, f *Frame) {
	switch s := stmt.(type) {
	case nil:
		return
	case *ast.VariableDeclaration:
		if s.VKind == ast.KindVar {
			for _, d := range s.Declarations {
				for _, name := range pattern.CollectIdentifiers(d.Id) {
					f.declare(name, Var)
				}
			}
		}
	case *ast.FunctionDeclaration:
		if s.Id != nil {
			f.declare(s.Id.Name, Func)
		}
		// function body introduces its own region; do not recurse in.
	case *ast.BlockStatement:
		analyzeHoisted(s.Body, f)
	case *ast.IfStatement:
		hoistStmt(s.Consequent, f)
		hoistStmt(s.Alternate, f)
	case *ast.WhileStatement:
		hoistStmt(s.Body, f)
	case *ast.DoWhileStatement:
		hoistStmt(s.Body, f)
	case *ast.ForStatement:
		if decl, ok := s.Init.(*ast.VariableDeclaration); ok && decl.VKind == ast.KindVar {
			for _, d := range decl.Declarations {
				for _, name := range pattern.CollectIdentifiers(d.Id) {
					f.declare(name, Var)
				}
			}
		}
		hoistStmt(s.Body, f)
	case *ast.ForInStatement:
		hoistForHeader(s.Left, f)
		hoistStmt(s.Body, f)
	case *ast.ForOfStatement:
		hoistForHeader(s.Left, f)
		hoistStmt(s.Body, f)
	case *ast.SwitchStatement:
		for _, c := range s.Cases {
			for _, cs := range c.Consequent {
				hoistStmt(cs, f)
			}
		}
	case *ast.TryStatement:
		analyzeHoisted(s.Block.Body, f)
		if s.Handler != nil {
			analyzeHoisted(s.Handler.Body.Body, f)
		}
		if s.Finalizer != nil {
			analyzeHoisted(s.Finalizer.Body, f)
		}
	default:
		// Expression/Return/Throw/other leaf statements introduce no
		// hoisted bindings of their own.
	}
}

func hoistForHeader(left ast.Node, f *Frame) {
	if decl, ok := left.(*ast.VariableDeclaration); ok && decl.VKind == ast.KindVar {
		for _, d := range decl.Declarations {
			for _, name := range pattern.CollectIdentifiers(d.Id) {
				f.declare(name, Var)
			}
		}
	}
}
