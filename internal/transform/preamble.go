package transform

import (
	"fmt"
	"strings"

	"github.com/kolkov/instrumentor/internal/ids"
)

// DefaultMarker is the no-instrument marker string spec.md §1/§6 defines:
// any source containing it is emitted unchanged except for the preamble.
const DefaultMarker = "NO_INSTRUMENT"

// DefaultTool names the tool in the "// INSTRUMENTED BY <tool>" comment
// spec.md §6 requires in every produced file.
const DefaultTool = "instrumentor"

// hasMarker reports whether src contains the no-instrument marker
// anywhere, grounded on the teacher's inject.go scan-before-splice
// discipline (there it scans existing imports before deciding what to
// add; here it scans the whole source for one fixed string).
func hasMarker(src, marker string) bool {
	return strings.Contains(src, marker)
}

// hasCanonicalPreamble reports whether src already begins with exactly
// the three-line shape buildPreamble produces for the given
// global/marker/tool (the middle line's table contents vary per file, so
// only its prefix/suffix are checked). This is how Transform tells a
// fresh marked source (needs one preamble prepended, spec.md §4.6 (a))
// apart from this tool's own previously-produced output being re-run
// (must stay a true no-op, spec.md §8 "Preamble idempotence": O
// transformed twice equals O transformed once).
func hasCanonicalPreamble(src, global, marker, tool string) bool {
	lines := strings.SplitN(src, "\n", 4)
	if len(lines) < 3 {
		return false
	}
	if lines[0] != "// "+marker {
		return false
	}
	idsPrefix := global + ".ids = "
	if !strings.HasPrefix(lines[1], idsPrefix) || !strings.HasSuffix(lines[1], ";") {
		return false
	}
	return lines[2] == "// INSTRUMENTED BY "+tool
}

// buildPreamble assembles the fixed header spec.md §6 specifies:
//
//	// <marker>
//	<runtimeGlobal>.ids = <serialized id→location table>;
//	// INSTRUMENTED BY <tool>
//
// The marker line doubles as the preamble's own self-tag — spec.md §4.6:
// "the preamble (a) carries the marker itself (so re-instrumentation is a
// no-op)".
func buildPreamble(global, marker, tool string, reg *ids.Registry) (string, error) {
	table, err := reg.MarshalTable()
	if err != nil {
		return "", fmt.Errorf("transform: marshal id table: %w", err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "// %s\n", marker)
	fmt.Fprintf(&b, "%s.ids = %s;\n", global, table)
	fmt.Fprintf(&b, "// INSTRUMENTED BY %s\n", tool)
	return b.String(), nil
}
