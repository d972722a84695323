// Package hooks names the fixed runtime hook table spec.md §6 defines.
//
// The hooks themselves are implemented by an external runtime (spec.md
// §1: "Out of scope... the set of hooks the runtime exposes"); this
// package only gives the emitter named Go constants instead of scattered
// string literals, the way race/api.go gives callers named Go functions
// instead of raw internal calls. Preserve these names bit-exactly —
// spec.md §6 calls the short-name convention "part of the wire contract
// with the runtime".
package hooks

// Short is one of the fixed one- to three-letter hook names.
type Short string

const (
	ScriptEnter Short = "Se" // (id, instPath, origPath)
	ScriptExit  Short = "Sx" // (id)

	FuncEnter Short = "Fe" // (id, callee, this, args)
	FuncExit  Short = "Fx" // (id)

	BuildCall   Short = "F" // (id, f, isCtor)
	BuildMethod Short = "M" // (id, base, prop, isCtor)

	Return Short = "Re" // (id, value)

	Throw     Short = "Th" // (id, value)
	Uncaught  Short = "X"  // (id, value)

	Expression Short = "E" // (id, value)
	Literal    Short = "L" // (id, value[, typeCode])

	Read    Short = "R" // (id, name, value)
	Write   Short = "W" // (id, names[], value)
	Declare Short = "D" // (id, name, kind[, value])

	Binary Short = "B"  // (id, op, l, r)
	Unary  Short = "U"  // (id, op, operand)
	Update Short = "Up" // (id, binId, op, prefix, arg, writer)

	Condition   Short = "C"   // (id, op, value)
	SwitchLeft  Short = "Swl" // (id, value)
	SwitchRight Short = "Swr" // (id, caseValue)

	GetField Short = "G"  // (id, base, prop[, value])
	PutField Short = "P"  // (id, base, prop, value)
	Delete   Short = "De" // (id, base, prop[, result])

	ForObject Short = "O" // (id, value, isForIn)
)

// DefaultRuntimeGlobal is the identifier the emitted calls hang off of
// when the caller does not override it (e.g. `J$.Se(...)`).
const DefaultRuntimeGlobal = "J$"

// Call renders `<global>.<short>(` for use as a call-expression prefix;
// callers append arguments and the closing paren.
func Call(global string, short Short) string {
	return global + "." + string(short) + "("
}
