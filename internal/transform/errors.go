// Package transform is the AST-directed code generator of spec.md §4: it
// walks a parsed script-language AST and writes an instrumented
// equivalent to an internal/emit.Writer.
//
// TransformError is adapted near-verbatim from the teacher's
// InstrumentationError (cmd/racedetector/instrument/errors.go),
// retargeted at script-AST source positions instead of *token.FileSet
// positions, since the target language here is not Go.
package transform

import (
	"fmt"

	"github.com/kolkov/instrumentor/internal/token"
)

// TransformError represents a transform-time failure with source
// context: spec.md §7's first error band (unsupported syntax, pattern
// shapes, missing locations). These are not catchable from within the
// target-language program being instrumented — they abort the
// transformation call itself.
type TransformError struct {
	File       string
	Line       int
	Column     int
	Message    string
	Suggestion string
}

// Error formats as "file:line:col: message", with an optional
// "\n\nSuggestion: ..." trailer, matching the teacher's format exactly.
func (e *TransformError) Error() string {
	result := fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
	if e.Suggestion != "" {
		result += fmt.Sprintf("\n\nSuggestion: %s", e.Suggestion)
	}
	return result
}

// newError builds a TransformError from a node's location, if it has
// one; nodes without a location (synthesized ones should never reach
// here) report line/column zero.
func newError(file string, loc *token.Loc, msg string) *TransformError {
	e := &TransformError{File: file, Message: msg}
	if loc != nil {
		e.Line = loc.Start.Line
		e.Column = loc.Start.Column + 1
	}
	return e
}

func newErrorWithSuggestion(file string, loc *token.Loc, msg, suggestion string) *TransformError {
	e := newError(file, loc, msg)
	e.Suggestion = suggestion
	return e
}

// unsupported builds the standard "not yet implemented" diagnostic
// spec.md §4.5 requires for any node kind the dispatcher has no handler
// for, naming the kind.
func unsupported(file string, loc *token.Loc, kind string, suggestion string) *TransformError {
	return newErrorWithSuggestion(file, loc, fmt.Sprintf("%s is not yet implemented", kind), suggestion)
}
