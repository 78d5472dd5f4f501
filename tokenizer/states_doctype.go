package tokenizer

import (
	"github.com/CourtBouillon/tinyhtml5/perr"
	"github.com/CourtBouillon/tinyhtml5/token"
)

func (t *Tokenizer) emitDoctypeEOF() {
	t.err(perr.EOFInDoctype, "eof in doctype")
	t.b.EnableForceQuirks()
	t.emit(t.b.DocTypeToken())
	t.emit(token.EOFToken())
}

func (t *Tokenizer) doctypeState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.b.Reset()
		t.emitDoctypeEOF()
		return false, DataState
	case isASCIIWhitespace(r):
		return false, BeforeDoctypeNameState
	case r == '>':
		return true, BeforeDoctypeNameState
	default:
		t.err(perr.MissingWhitespaceBeforeDoctypeName, "missing whitespace before doctype name")
		return true, BeforeDoctypeNameState
	}
}

func (t *Tokenizer) beforeDoctypeNameState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.emitDoctypeEOF()
		return false, DataState
	case isASCIIWhitespace(r):
		return false, BeforeDoctypeNameState
	case isASCIIUpper(r):
		t.b.WriteName(toASCIILower(r))
		return false, DoctypeNameState
	case r == 0:
		t.err(perr.UnexpectedNullCharacter, "null character in doctype name")
		t.b.WriteName('�')
		return false, DoctypeNameState
	case r == '>':
		t.err(perr.MissingDoctypeName, "missing doctype name")
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken())
		return false, DataState
	default:
		t.b.WriteName(r)
		return false, DoctypeNameState
	}
}

func (t *Tokenizer) doctypeNameState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.emitDoctypeEOF()
		return false, DataState
	case isASCIIWhitespace(r):
		return false, AfterDoctypeNameState
	case r == '>':
		t.emit(t.b.DocTypeToken())
		return false, DataState
	case isASCIIUpper(r):
		t.b.WriteName(toASCIILower(r))
		return false, DoctypeNameState
	case r == 0:
		t.err(perr.UnexpectedNullCharacter, "null character in doctype name")
		t.b.WriteName('�')
		return false, DoctypeNameState
	default:
		t.b.WriteName(r)
		return false, DoctypeNameState
	}
}

func (t *Tokenizer) afterDoctypeNameState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.emitDoctypeEOF()
		return false, DataState
	case isASCIIWhitespace(r):
		return false, AfterDoctypeNameState
	case r == '>':
		t.emit(t.b.DocTypeToken())
		return false, DataState
	default:
		t.s.reconsume(r)
		if t.s.matchLiteral("PUBLIC", true) {
			return false, AfterDoctypePublicKeywordState
		}
		if t.s.matchLiteral("SYSTEM", true) {
			return false, AfterDoctypeSystemKeywordState
		}
		t.err(perr.InvalidCharacterSequenceAfterDoctypeName, "invalid character sequence after doctype name")
		t.b.EnableForceQuirks()
		t.s.next()
		return true, BogusDoctypeState
	}
}

func (t *Tokenizer) afterDoctypePublicKeywordState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.emitDoctypeEOF()
		return false, DataState
	case isASCIIWhitespace(r):
		return false, BeforeDoctypePublicIdentifierState
	case r == '"':
		t.err(perr.MissingWhitespaceAfterDoctypePublicKeyword, "missing whitespace after doctype public keyword")
		t.b.SetPublicIdentifierPresent()
		return false, DoctypePublicIdentifierDoubleQuotedState
	case r == '\'':
		t.err(perr.MissingWhitespaceAfterDoctypePublicKeyword, "missing whitespace after doctype public keyword")
		t.b.SetPublicIdentifierPresent()
		return false, DoctypePublicIdentifierSingleQuotedState
	case r == '>':
		t.err(perr.MissingDoctypePublicIdentifier, "missing doctype public identifier")
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken())
		return false, DataState
	default:
		t.err(perr.MissingQuoteBeforeDoctypePublicIdentifier, "missing quote before doctype public identifier")
		t.b.EnableForceQuirks()
		return true, BogusDoctypeState
	}
}

func (t *Tokenizer) beforeDoctypePublicIdentifierState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.emitDoctypeEOF()
		return false, DataState
	case isASCIIWhitespace(r):
		return false, BeforeDoctypePublicIdentifierState
	case r == '"':
		t.b.SetPublicIdentifierPresent()
		return false, DoctypePublicIdentifierDoubleQuotedState
	case r == '\'':
		t.b.SetPublicIdentifierPresent()
		return false, DoctypePublicIdentifierSingleQuotedState
	case r == '>':
		t.err(perr.MissingDoctypePublicIdentifier, "missing doctype public identifier")
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken())
		return false, DataState
	default:
		t.err(perr.MissingQuoteBeforeDoctypePublicIdentifier, "missing quote before doctype public identifier")
		t.b.EnableForceQuirks()
		return true, BogusDoctypeState
	}
}

func (t *Tokenizer) doctypePublicIdentifierQuotedState(r rune, isEOF bool, quote rune) (bool, State) {
	switch {
	case isEOF:
		t.emitDoctypeEOF()
		return false, DataState
	case r == quote:
		return false, AfterDoctypePublicIdentifierState
	case r == 0:
		t.err(perr.UnexpectedNullCharacter, "null character in doctype public identifier")
		t.b.WritePublicIdentifier('�')
		return false, currentDoctypePublicQuoted(quote)
	case r == '>':
		t.err(perr.AbruptDoctypePublicIdentifier, "abrupt doctype public identifier")
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken())
		return false, DataState
	default:
		t.b.WritePublicIdentifier(r)
		return false, currentDoctypePublicQuoted(quote)
	}
}

func currentDoctypePublicQuoted(quote rune) State {
	if quote == '"' {
		return DoctypePublicIdentifierDoubleQuotedState
	}
	return DoctypePublicIdentifierSingleQuotedState
}

func (t *Tokenizer) afterDoctypePublicIdentifierState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.emitDoctypeEOF()
		return false, DataState
	case isASCIIWhitespace(r):
		return false, BetweenDoctypePublicAndSystemIdentifiersState
	case r == '>':
		t.emit(t.b.DocTypeToken())
		return false, DataState
	case r == '"':
		t.err(perr.MissingWhitespaceBetweenAttributes, "missing whitespace between doctype public and system identifiers")
		t.b.SetSystemIdentifierPresent()
		return false, DoctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		t.err(perr.MissingWhitespaceBetweenAttributes, "missing whitespace between doctype public and system identifiers")
		t.b.SetSystemIdentifierPresent()
		return false, DoctypeSystemIdentifierSingleQuotedState
	default:
		t.err(perr.MissingQuoteBeforeDoctypeSystemIdentifier, "missing quote before doctype system identifier")
		t.b.EnableForceQuirks()
		return true, BogusDoctypeState
	}
}

func (t *Tokenizer) betweenDoctypePublicAndSystemIdentifiersState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.emitDoctypeEOF()
		return false, DataState
	case isASCIIWhitespace(r):
		return false, BetweenDoctypePublicAndSystemIdentifiersState
	case r == '>':
		t.emit(t.b.DocTypeToken())
		return false, DataState
	case r == '"':
		t.b.SetSystemIdentifierPresent()
		return false, DoctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		t.b.SetSystemIdentifierPresent()
		return false, DoctypeSystemIdentifierSingleQuotedState
	default:
		t.err(perr.MissingQuoteBeforeDoctypeSystemIdentifier, "missing quote before doctype system identifier")
		t.b.EnableForceQuirks()
		return true, BogusDoctypeState
	}
}

func (t *Tokenizer) afterDoctypeSystemKeywordState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.emitDoctypeEOF()
		return false, DataState
	case isASCIIWhitespace(r):
		return false, BeforeDoctypeSystemIdentifierState
	case r == '"':
		t.err(perr.MissingWhitespaceAfterDoctypeSystemKeyword, "missing whitespace after doctype system keyword")
		t.b.SetSystemIdentifierPresent()
		return false, DoctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		t.err(perr.MissingWhitespaceAfterDoctypeSystemKeyword, "missing whitespace after doctype system keyword")
		t.b.SetSystemIdentifierPresent()
		return false, DoctypeSystemIdentifierSingleQuotedState
	case r == '>':
		t.err(perr.MissingDoctypeSystemIdentifier, "missing doctype system identifier")
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken())
		return false, DataState
	default:
		t.err(perr.MissingQuoteBeforeDoctypeSystemIdentifier, "missing quote before doctype system identifier")
		t.b.EnableForceQuirks()
		return true, BogusDoctypeState
	}
}

func (t *Tokenizer) beforeDoctypeSystemIdentifierState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.emitDoctypeEOF()
		return false, DataState
	case isASCIIWhitespace(r):
		return false, BeforeDoctypeSystemIdentifierState
	case r == '"':
		t.b.SetSystemIdentifierPresent()
		return false, DoctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		t.b.SetSystemIdentifierPresent()
		return false, DoctypeSystemIdentifierSingleQuotedState
	case r == '>':
		t.err(perr.MissingDoctypeSystemIdentifier, "missing doctype system identifier")
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken())
		return false, DataState
	default:
		t.err(perr.MissingQuoteBeforeDoctypeSystemIdentifier, "missing quote before doctype system identifier")
		t.b.EnableForceQuirks()
		return true, BogusDoctypeState
	}
}

func (t *Tokenizer) doctypeSystemIdentifierQuotedState(r rune, isEOF bool, quote rune) (bool, State) {
	switch {
	case isEOF:
		t.emitDoctypeEOF()
		return false, DataState
	case r == quote:
		return false, AfterDoctypeSystemIdentifierState
	case r == 0:
		t.err(perr.UnexpectedNullCharacter, "null character in doctype system identifier")
		t.b.WriteSystemIdentifier('�')
		return false, currentDoctypeSystemQuoted(quote)
	case r == '>':
		t.err(perr.AbruptDoctypeSystemIdentifier, "abrupt doctype system identifier")
		t.b.EnableForceQuirks()
		t.emit(t.b.DocTypeToken())
		return false, DataState
	default:
		t.b.WriteSystemIdentifier(r)
		return false, currentDoctypeSystemQuoted(quote)
	}
}

func currentDoctypeSystemQuoted(quote rune) State {
	if quote == '"' {
		return DoctypeSystemIdentifierDoubleQuotedState
	}
	return DoctypeSystemIdentifierSingleQuotedState
}

func (t *Tokenizer) afterDoctypeSystemIdentifierState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.emitDoctypeEOF()
		return false, DataState
	case isASCIIWhitespace(r):
		return false, AfterDoctypeSystemIdentifierState
	case r == '>':
		t.emit(t.b.DocTypeToken())
		return false, DataState
	default:
		t.err(perr.InvalidCharacterSequenceAfterDoctypeName, "unexpected character after doctype system identifier")
		return true, BogusDoctypeState
	}
}

func (t *Tokenizer) bogusDoctypeState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.emit(t.b.DocTypeToken())
		t.emit(token.EOFToken())
		return false, DataState
	case r == '>':
		t.emit(t.b.DocTypeToken())
		return false, DataState
	default:
		return false, BogusDoctypeState
	}
}

func (t *Tokenizer) cdataSectionState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.err(perr.EOFInCDATA, "eof in cdata section")
		t.emit(token.EOFToken())
		return false, DataState
	case r == ']':
		return false, CDATASectionBracketState
	default:
		t.emit(token.CharacterToken(r))
		return false, CDATASectionState
	}
}

func (t *Tokenizer) cdataSectionBracketState(r rune, isEOF bool) (bool, State) {
	if r == ']' {
		return false, CDATASectionEndState
	}
	t.emit(token.CharacterToken(']'))
	return true, CDATASectionState
}

func (t *Tokenizer) cdataSectionEndState(r rune, isEOF bool) (bool, State) {
	switch r {
	case ']':
		t.emit(token.CharacterToken(']'))
		return false, CDATASectionEndState
	case '>':
		return false, DataState
	default:
		t.emit(token.CharacterToken(']'))
		t.emit(token.CharacterToken(']'))
		return true, CDATASectionState
	}
}
