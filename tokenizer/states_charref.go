package tokenizer

import (
	"github.com/CourtBouillon/tinyhtml5/charref"
	"github.com/CourtBouillon/tinyhtml5/perr"
	"github.com/CourtBouillon/tinyhtml5/token"
)

// inAttribute reports whether the current character reference is being
// consumed as part of an attribute value, per the standard's "was
// consumed as part of an attribute" check used by the ambiguous
// ampersand and numeric-reference-end states.
func (t *Tokenizer) inAttribute() bool {
	switch t.returnState {
	case AttributeValueDoubleQuotedState, AttributeValueSingleQuotedState, AttributeValueUnquotedState:
		return true
	}
	return false
}

// emitTempBufferAsCharsOrAttr flushes the temporary buffer either into
// the current attribute's value (if consumed as part of one) or as
// character tokens.
func (t *Tokenizer) emitTempBufferAsCharsOrAttr(extra string) {
	buf := t.b.TempBuffer() + extra
	if t.inAttribute() {
		for _, r := range buf {
			t.b.WriteAttributeValue(r)
		}
		return
	}
	for _, r := range buf {
		t.emit(token.CharacterToken(r))
	}
}

func (t *Tokenizer) characterReferenceState(r rune, isEOF bool) (bool, State) {
	t.b.ResetTempBuffer()
	t.b.WriteTempBuffer('&')
	switch {
	case isASCIIAlnum(r):
		return true, NamedCharacterReferenceState
	case r == '#':
		t.b.WriteTempBuffer('#')
		return false, NumericCharacterReferenceState
	default:
		t.emitTempBufferAsCharsOrAttr("")
		return true, t.returnState
	}
}

func (t *Tokenizer) namedCharacterReferenceState(r rune, isEOF bool) (bool, State) {
	t.s.reconsume(r)

	// Peek up to 64 runes ahead without permanently consuming, to find
	// the longest matching named reference.
	peeked := t.peekAhead(64)
	m, ok := charref.Lookup(peeked)
	if !ok {
		// consume the one alnum rune that got us here and fall through
		// to the ambiguous-ampersand handling.
		rr, _ := t.s.next()
		t.b.WriteTempBuffer(rr)
		return true, AmbiguousAmpersandState
	}

	consumedStr := peeked[:m.Consumed]
	for range consumedStr {
		rr, _ := t.s.next()
		t.b.WriteTempBuffer(rr)
	}

	if t.inAttribute() && m.MissingSemicolon && lastRune(peeked[:m.Consumed]) != ';' {
		if next, _ := t.peekOne(); next == '=' || isASCIIAlnum(next) {
			t.emitTempBufferAsCharsOrAttr("")
			return false, t.returnState
		}
	}

	if m.MissingSemicolon {
		t.err(perr.MissingSemicolonAfterCharacterReference, "missing semicolon after character reference")
	}
	t.b.ResetTempBuffer()
	t.emitTempBufferAsCharsOrAttr(m.Value)
	return false, t.returnState
}

func lastRune(s string) rune {
	rs := []rune(s)
	if len(rs) == 0 {
		return 0
	}
	return rs[len(rs)-1]
}

// peekAhead returns up to n runes ahead without consuming them.
func (t *Tokenizer) peekAhead(n int) string {
	var got []rune
	for i := 0; i < n; i++ {
		r, err := t.s.next()
		if err != nil {
			break
		}
		got = append(got, r)
	}
	for i := len(got) - 1; i >= 0; i-- {
		t.s.reconsume(got[i])
	}
	return string(got)
}

func (t *Tokenizer) peekOne() (rune, bool) {
	r, err := t.s.next()
	if err != nil {
		return eof, false
	}
	t.s.reconsume(r)
	return r, true
}

func (t *Tokenizer) ambiguousAmpersandState(r rune, isEOF bool) (bool, State) {
	switch {
	case isASCIIAlnum(r):
		if t.inAttribute() {
			t.b.WriteAttributeValue(r)
		} else {
			t.emit(token.CharacterToken(r))
		}
		return false, AmbiguousAmpersandState
	case r == ';':
		t.err(perr.UnknownNamedCharacterReference, "unknown named character reference")
		return true, t.returnState
	default:
		return true, t.returnState
	}
}

func (t *Tokenizer) numericCharacterReferenceState(r rune, isEOF bool) (bool, State) {
	t.b.SetCharRef(0)
	switch r {
	case 'x', 'X':
		t.b.WriteTempBuffer(r)
		return false, HexadecimalCharacterReferenceStartState
	default:
		return true, DecimalCharacterReferenceStartState
	}
}

func (t *Tokenizer) hexadecimalCharacterReferenceStartState(r rune, isEOF bool) (bool, State) {
	if isASCIIHexDigit(r) {
		return true, HexadecimalCharacterReferenceState
	}
	t.err(perr.AbsenceOfDigitsInNumericCharacterReference, "absence of digits in numeric character reference")
	t.emitTempBufferAsCharsOrAttr("")
	return true, t.returnState
}

func (t *Tokenizer) decimalCharacterReferenceStartState(r rune, isEOF bool) (bool, State) {
	if isASCIIDigit(r) {
		return true, DecimalCharacterReferenceState
	}
	t.err(perr.AbsenceOfDigitsInNumericCharacterReference, "absence of digits in numeric character reference")
	t.emitTempBufferAsCharsOrAttr("")
	return true, t.returnState
}

func hexVal(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	}
	return 0
}

func (t *Tokenizer) hexadecimalCharacterReferenceState(r rune, isEOF bool) (bool, State) {
	switch {
	case isASCIIHexDigit(r):
		t.b.MultCharRef(16)
		t.b.AddToCharRef(hexVal(r))
		return false, HexadecimalCharacterReferenceState
	case r == ';':
		return false, NumericCharacterReferenceEndState
	default:
		return true, NumericCharacterReferenceEndState
	}
}

func (t *Tokenizer) decimalCharacterReferenceState(r rune, isEOF bool) (bool, State) {
	switch {
	case isASCIIDigit(r):
		t.b.MultCharRef(10)
		t.b.AddToCharRef(int(r - '0'))
		return false, DecimalCharacterReferenceState
	case r == ';':
		return false, NumericCharacterReferenceEndState
	default:
		return true, NumericCharacterReferenceEndState
	}
}

func (t *Tokenizer) numericCharacterReferenceEndState(r rune, isEOF bool) (bool, State) {
	resolved, disp := charref.ResolveNumeric(t.b.CharRef())
	switch disp {
	case charref.WasNull:
		t.err(perr.NullCharacterReference, "null character reference")
	case charref.OutsideUnicodeRange:
		t.err(perr.CharacterReferenceOutsideUnicodeRange, "character reference outside unicode range")
	case charref.WasSurrogate:
		t.err(perr.SurrogateCharacterReference, "surrogate character reference")
	case charref.WasNoncharacter:
		t.err(perr.NoncharacterCharacterReference, "noncharacter character reference")
	case charref.WasControl:
		t.err(perr.ControlCharacterReference, "control character reference")
	}
	t.b.ResetTempBuffer()
	t.emitTempBufferAsCharsOrAttr(string(resolved))
	return true, t.returnState
}
