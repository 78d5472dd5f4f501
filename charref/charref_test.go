package charref_test

import (
	"testing"

	"github.com/CourtBouillon/tinyhtml5/charref"
)

func TestLookupLongestMatch(t *testing.T) {
	m, ok := charref.Lookup("amp;rest")
	if !ok {
		t.Fatal("expected a match for amp;")
	}
	if m.Value != "&" || m.Consumed != 4 || m.MissingSemicolon {
		t.Errorf("got %+v", m)
	}
}

func TestLookupWithoutTrailingSemicolon(t *testing.T) {
	m, ok := charref.Lookup("amp rest")
	if !ok {
		t.Fatal("expected a legacy match for amp without a semicolon")
	}
	if m.Value != "&" || m.Consumed != 3 || !m.MissingSemicolon {
		t.Errorf("amp without ';' should be a recognized legacy reference flagged as missing its semicolon: got %+v", m)
	}
}

func TestLookupNoMatch(t *testing.T) {
	if _, ok := charref.Lookup("zzznotareference;"); ok {
		t.Error("expected no match")
	}
}

func TestResolveNumericWindows1252Replacement(t *testing.T) {
	r, d := charref.ResolveNumeric(0x80)
	if d != charref.WasReplaced || r != 0x20AC {
		t.Errorf("ResolveNumeric(0x80) = %q, %v, want €, WasReplaced", r, d)
	}
}

func TestResolveNumericNull(t *testing.T) {
	_, d := charref.ResolveNumeric(0)
	if d != charref.WasNull {
		t.Errorf("ResolveNumeric(0) disposition = %v, want WasNull", d)
	}
}

func TestResolveNumericSurrogate(t *testing.T) {
	_, d := charref.ResolveNumeric(0xD800)
	if d != charref.WasSurrogate {
		t.Errorf("ResolveNumeric(0xD800) disposition = %v, want WasSurrogate", d)
	}
}

func TestResolveNumericOutsideUnicodeRange(t *testing.T) {
	_, d := charref.ResolveNumeric(0x110000)
	if d != charref.OutsideUnicodeRange {
		t.Errorf("ResolveNumeric(0x110000) disposition = %v, want OutsideUnicodeRange", d)
	}
}

func TestResolveNumericOrdinary(t *testing.T) {
	r, d := charref.ResolveNumeric('A')
	if d != charref.OK || r != 'A' {
		t.Errorf("ResolveNumeric('A') = %q, %v, want 'A', OK", r, d)
	}
}
