package hooks

import "testing"

func TestCallRendersGlobalDotShortOpenParen(t *testing.T) {
	got := Call("J$", FuncEnter)
	want := "J$.Fe("
	if got != want {
		t.Errorf("Call(J$, Fe) = %q, want %q", got, want)
	}
}

func TestCallHonorsOverriddenGlobal(t *testing.T) {
	got := Call("MyRuntime", Declare)
	want := "MyRuntime.D("
	if got != want {
		t.Errorf("Call(MyRuntime, D) = %q, want %q", got, want)
	}
}

func TestShortNamesAreWireStable(t *testing.T) {
	want := map[Short]string{
		ScriptEnter: "Se", ScriptExit: "Sx",
		FuncEnter: "Fe", FuncExit: "Fx",
		BuildCall: "F", BuildMethod: "M",
		Return: "Re",
		Throw: "Th", Uncaught: "X",
		Expression: "E", Literal: "L",
		Read: "R", Write: "W", Declare: "D",
		Binary: "B", Unary: "U", Update: "Up",
		Condition: "C", SwitchLeft: "Swl", SwitchRight: "Swr",
		GetField: "G", PutField: "P", Delete: "De",
		ForObject: "O",
	}
	for short, literal := range want {
		if string(short) != literal {
			t.Errorf("hook constant = %q, want literal %q (wire contract must not drift)", string(short), literal)
		}
	}
}

func TestDefaultRuntimeGlobalIsDollarSignConvention(t *testing.T) {
	if DefaultRuntimeGlobal != "J$" {
		t.Errorf("DefaultRuntimeGlobal = %q, want %q", DefaultRuntimeGlobal, "J$")
	}
}
