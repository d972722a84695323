package ast

import (
	"testing"

	"github.com/kolkov/instrumentor/internal/token"
)

func TestSynthesizedHasNoLoc(t *testing.T) {
	b := Synthesized()
	if b.Loc() != nil {
		t.Errorf("Synthesized().Loc() = %v, want nil", b.Loc())
	}
}

func TestAtCarriesGivenLoc(t *testing.T) {
	loc := token.Loc{Start: token.Position{Line: 1, Column: 0}, End: token.Position{Line: 1, Column: 1}}
	b := At(loc)
	got := b.Loc()
	if got == nil {
		t.Fatalf("At(loc).Loc() = nil, want non-nil")
	}
	if *got != loc {
		t.Errorf("At(loc).Loc() = %v, want %v", *got, loc)
	}
}
