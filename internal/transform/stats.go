package transform

// Stats counts instrumented sites by category, adapted from the
// teacher's InstrumentStats/AccessType (cmd/racedetector/instrument/
// visitor.go), generalized from "reads/writes/skips" to the full set of
// hook categories spec.md §4.4 defines.
type Stats struct {
	Literals     int
	Reads        int
	Writes       int
	Declares     int
	BinaryOps    int
	UnaryOps     int
	UpdateOps    int
	Conditions   int
	Calls        int
	MethodCalls  int
	Functions    int
	Returns      int
	Throws       int
	GetFields    int
	PutFields    int
	Deletes      int
	ForInOf      int
	SwitchCases  int
}

// Total returns the total number of instrumented sites across all
// categories (SPEC_FULL.md's SUPPLEMENTAL FEATURES #1).
func (s *Stats) Total() int {
	return s.Literals + s.Reads + s.Writes + s.Declares + s.BinaryOps +
		s.UnaryOps + s.UpdateOps + s.Conditions + s.Calls + s.MethodCalls +
		s.Functions + s.Returns + s.Throws + s.GetFields + s.PutFields +
		s.Deletes + s.ForInOf + s.SwitchCases
}
