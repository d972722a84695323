package lexer

import "testing"

func scanAll(src string) []Token {
	l := New(src)
	var toks []Token
	for {
		tok := l.Scan(true)
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks
		}
	}
}

func TestScanKinds(t *testing.T) {
	tests := []struct {
		src  string
		kind Kind
		lit  string
	}{
		{"foo", Ident, "foo"},
		{"let", Keyword, "let"},
		{"42", Number, "42"},
		{"3.14", Number, "3.14"},
		{"0x1A", Number, "0x1A"},
		{"10n", Number, "10n"},
		{`"abc"`, String, `"abc"`},
		{"'abc'", String, "'abc'"},
		{"/x+/g", Regexp, "/x+/g"},
		{"===", Punct, "==="},
		{"=>", Punct, "=>"},
	}
	for _, tt := range tests {
		toks := scanAll(tt.src)
		if len(toks) < 1 {
			t.Fatalf("scanAll(%q): no tokens", tt.src)
		}
		got := toks[0]
		if got.Kind != tt.kind || got.Literal != tt.lit {
			t.Errorf("scanAll(%q)[0] = {%v, %q}, want {%v, %q}", tt.src, got.Kind, got.Literal, tt.kind, tt.lit)
		}
	}
}

func TestScanSkipsComments(t *testing.T) {
	toks := scanAll("// line comment\nx /* block\ncomment */ = 1;")
	var lits []string
	for _, tok := range toks {
		if tok.Kind != EOF {
			lits = append(lits, tok.Literal)
		}
	}
	want := []string{"x", "=", "1", ";"}
	if len(lits) != len(want) {
		t.Fatalf("got %v, want %v", lits, want)
	}
	for i := range want {
		if lits[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, lits[i], want[i])
		}
	}
}

func TestNewlineBeforeASI(t *testing.T) {
	toks := scanAll("a\nb")
	// toks: a, b, EOF
	if toks[1].NewlineBefore != true {
		t.Errorf("NewlineBefore on %q = false, want true", toks[1].Literal)
	}
	toks2 := scanAll("a b")
	if toks2[1].NewlineBefore != false {
		t.Errorf("NewlineBefore on %q = true, want false", toks2[1].Literal)
	}
}

func TestRegexpVsDivisionIsCallerControlled(t *testing.T) {
	l := New("/x/g")
	if tok := l.Scan(true); tok.Kind != Regexp || tok.Literal != "/x/g" {
		t.Errorf("Scan(true) on regexp-shaped source = %+v, want Regexp \"/x/g\"", tok)
	}

	l2 := New("/ x")
	if tok := l2.Scan(false); tok.Kind != Punct || tok.Literal != "/" {
		t.Errorf("Scan(false) on division-shaped source = %+v, want Punct \"/\"", tok)
	}
}

func TestThreeCharPunctNotMisscanned(t *testing.T) {
	toks := scanAll("a === b")
	if toks[1].Literal != "===" {
		t.Errorf("got %q, want \"===\"", toks[1].Literal)
	}
}

func TestPositionLineColumn(t *testing.T) {
	toks := scanAll("a\nbb")
	// toks[0] = "a" at line 1 col 0; toks[1] = "bb" at line 2 col 0
	if toks[0].Pos.Line != 1 || toks[0].Pos.Column != 0 {
		t.Errorf("first token pos = %v, want {1 0}", toks[0].Pos)
	}
	if toks[1].Pos.Line != 2 || toks[1].Pos.Column != 0 {
		t.Errorf("second token pos = %v, want {2 0}", toks[1].Pos)
	}
}

func TestUnterminatedStringIsError(t *testing.T) {
	l := New(`"abc`)
	l.Scan(true)
	if l.Err() == nil {
		t.Errorf("Err() = nil, want an unterminated-string error")
	}
}
