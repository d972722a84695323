package pattern

import (
	"reflect"
	"testing"

	"github.com/kolkov/instrumentor/internal/ast"
)

func ident(name string) *ast.Identifier {
	return &ast.Identifier{Base: ast.Synthesized(), Name: name}
}

func TestCollectIdentifiersPlainName(t *testing.T) {
	got := CollectIdentifiers(ident("x"))
	want := []string{"x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CollectIdentifiers(x) = %v, want %v", got, want)
	}
}

func TestCollectIdentifiersObjectPattern(t *testing.T) {
	p := &ast.ObjectPattern{
		Base: ast.Synthesized(),
		Properties: []*ast.PatternProperty{
			{Base: ast.Synthesized(), Key: "a", Value: ident("a"), Shorthand: true},
			{Base: ast.Synthesized(), Key: "b", Value: ident("c")},
		},
		Rest: &ast.RestElement{Base: ast.Synthesized(), Argument: ident("rest")},
	}
	got := CollectIdentifiers(p)
	want := []string{"a", "c", "rest"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CollectIdentifiers(object pattern) = %v, want %v", got, want)
	}
}

func TestCollectIdentifiersArrayPatternWithHole(t *testing.T) {
	p := &ast.ArrayPattern{
		Base:     ast.Synthesized(),
		Elements: []ast.Pattern{ident("a"), nil, ident("b")},
		Rest:     &ast.RestElement{Base: ast.Synthesized(), Argument: ident("rest")},
	}
	got := CollectIdentifiers(p)
	want := []string{"a", "b", "rest"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CollectIdentifiers(array pattern with hole) = %v, want %v", got, want)
	}
}

func TestCollectIdentifiersAssignmentPatternIgnoresDefault(t *testing.T) {
	p := &ast.AssignmentPattern{
		Base:    ast.Synthesized(),
		Left:    ident("x"),
		Default: &ast.Literal{Base: ast.Synthesized(), LKind: ast.LitNumber, Raw: "1", Value: 1.0},
	}
	got := CollectIdentifiers(p)
	want := []string{"x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CollectIdentifiers(x = 1) = %v, want %v", got, want)
	}
}

func TestCollectIdentifiersUnrecognizedKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("CollectIdentifiers did not panic on an unrecognized pattern kind")
		}
	}()
	CollectIdentifiers(&bogusPattern{})
}

// bogusPattern satisfies ast.Pattern through the embedded Identifier (the
// interface's marker method is unexported, so only package ast can supply
// it), but is a distinct type the walker's type switch does not know.
type bogusPattern struct{ ast.Identifier }

func (*bogusPattern) Kind() ast.Kind { return "Bogus" }
