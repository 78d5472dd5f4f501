package tokenizer

import (
	"github.com/CourtBouillon/tinyhtml5/perr"
	"github.com/CourtBouillon/tinyhtml5/token"
)

func (t *Tokenizer) beforeAttributeNameState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF, r == '/', r == '>':
		return true, AfterAttributeNameState
	case isASCIIWhitespace(r):
		return false, BeforeAttributeNameState
	case r == '=':
		t.err(perr.UnexpectedEqualsSignBeforeAttributeName, "'=' before attribute name")
		t.b.StartNewAttribute()
		t.b.WriteAttributeName(r)
		return false, AttributeNameState
	default:
		t.b.StartNewAttribute()
		return true, AttributeNameState
	}
}

func (t *Tokenizer) attributeNameState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF, isASCIIWhitespace(r), r == '/', r == '>':
		return true, AfterAttributeNameState
	case r == '=':
		return false, BeforeAttributeValueState
	case isASCIIUpper(r):
		t.b.WriteAttributeName(toASCIILower(r))
		return false, AttributeNameState
	case r == 0:
		t.err(perr.UnexpectedNullCharacter, "null character in attribute name")
		t.b.WriteAttributeName('�')
		return false, AttributeNameState
	case r == '"' || r == '\'' || r == '<':
		t.err(perr.UnexpectedCharacterInAttributeName, "unexpected character in attribute name")
		t.b.WriteAttributeName(r)
		return false, AttributeNameState
	default:
		t.b.WriteAttributeName(r)
		return false, AttributeNameState
	}
}

func (t *Tokenizer) afterAttributeNameState(r rune, isEOF bool) (bool, State) {
	if dup := t.b.CommitAttribute(); dup {
		t.err(perr.UnexpectedCharacterInAttributeName, "duplicate attribute")
	}
	switch {
	case isEOF:
		t.err(perr.EOFInTag, "eof in tag")
		t.emit(token.EOFToken())
		return false, DataState
	case isASCIIWhitespace(r):
		return false, AfterAttributeNameState
	case r == '/':
		return false, SelfClosingStartTagState
	case r == '=':
		t.b.StartNewAttribute()
		return false, BeforeAttributeValueState
	case r == '>':
		return false, t.emitTagAndSwitch()
	default:
		t.b.StartNewAttribute()
		return true, AttributeNameState
	}
}

func (t *Tokenizer) beforeAttributeValueState(r rune, isEOF bool) (bool, State) {
	switch {
	case isASCIIWhitespace(r):
		return false, BeforeAttributeValueState
	case r == '"':
		return false, AttributeValueDoubleQuotedState
	case r == '\'':
		return false, AttributeValueSingleQuotedState
	case r == '>':
		t.err(perr.MissingAttributeValue, "missing attribute value")
		return false, t.emitTagAndSwitch()
	default:
		return true, AttributeValueUnquotedState
	}
}

func (t *Tokenizer) attributeValueQuotedState(r rune, isEOF bool, quote rune) (bool, State) {
	switch {
	case isEOF:
		t.err(perr.EOFInTag, "eof in tag")
		t.emit(token.EOFToken())
		return false, DataState
	case r == quote:
		return false, AfterAttributeValueQuotedState
	case r == '&':
		if quote == '"' {
			t.returnState = AttributeValueDoubleQuotedState
		} else {
			t.returnState = AttributeValueSingleQuotedState
		}
		return false, CharacterReferenceState
	case r == 0:
		t.err(perr.UnexpectedNullCharacter, "null character in attribute value")
		t.b.WriteAttributeValue('�')
		if quote == '"' {
			return false, AttributeValueDoubleQuotedState
		}
		return false, AttributeValueSingleQuotedState
	default:
		t.b.WriteAttributeValue(r)
		if quote == '"' {
			return false, AttributeValueDoubleQuotedState
		}
		return false, AttributeValueSingleQuotedState
	}
}

func (t *Tokenizer) attributeValueUnquotedState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.err(perr.EOFInTag, "eof in tag")
		t.emit(token.EOFToken())
		return false, DataState
	case isASCIIWhitespace(r):
		if dup := t.b.CommitAttribute(); dup {
			t.err(perr.UnexpectedCharacterInAttributeName, "duplicate attribute")
		}
		return false, BeforeAttributeNameState
	case r == '&':
		t.returnState = AttributeValueUnquotedState
		return false, CharacterReferenceState
	case r == '>':
		if dup := t.b.CommitAttribute(); dup {
			t.err(perr.UnexpectedCharacterInAttributeName, "duplicate attribute")
		}
		return false, t.emitTagAndSwitch()
	case r == 0:
		t.err(perr.UnexpectedNullCharacter, "null character in attribute value")
		t.b.WriteAttributeValue('�')
		return false, AttributeValueUnquotedState
	case r == '"' || r == '\'' || r == '<' || r == '=' || r == '`':
		t.err(perr.UnexpectedCharacterInUnquotedAttributeValue, "unexpected character in unquoted attribute value")
		t.b.WriteAttributeValue(r)
		return false, AttributeValueUnquotedState
	default:
		t.b.WriteAttributeValue(r)
		return false, AttributeValueUnquotedState
	}
}

func (t *Tokenizer) afterAttributeValueQuotedState(r rune, isEOF bool) (bool, State) {
	if dup := t.b.CommitAttribute(); dup {
		t.err(perr.UnexpectedCharacterInAttributeName, "duplicate attribute")
	}
	switch {
	case isEOF:
		t.err(perr.EOFInTag, "eof in tag")
		t.emit(token.EOFToken())
		return false, DataState
	case isASCIIWhitespace(r):
		return false, BeforeAttributeNameState
	case r == '/':
		return false, SelfClosingStartTagState
	case r == '>':
		return false, t.emitTagAndSwitch()
	default:
		t.err(perr.MissingWhitespaceBetweenAttributes, "missing whitespace between attributes")
		return true, BeforeAttributeNameState
	}
}

func (t *Tokenizer) selfClosingStartTagState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.err(perr.EOFInTag, "eof in tag")
		t.emit(token.EOFToken())
		return false, DataState
	case r == '>':
		t.b.EnableSelfClosing()
		return false, t.emitTagAndSwitch()
	default:
		t.err(perr.UnexpectedSolidusInTag, "unexpected solidus in tag")
		return true, BeforeAttributeNameState
	}
}

func (t *Tokenizer) bogusCommentState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.emit(t.b.CommentToken())
		t.emit(token.EOFToken())
		return false, DataState
	case r == '>':
		t.emit(t.b.CommentToken())
		return false, DataState
	case r == 0:
		t.b.WriteData('�')
		return false, BogusCommentState
	default:
		t.b.WriteData(r)
		return false, BogusCommentState
	}
}

func (t *Tokenizer) markupDeclarationOpenState(r rune, isEOF bool) (bool, State) {
	t.s.reconsume(r)
	if t.s.matchLiteral("--", false) {
		t.b.Reset()
		return false, CommentStartState
	}
	if t.s.matchLiteral("DOCTYPE", true) {
		return false, DoctypeState
	}
	if t.s.matchLiteral("[CDATA[", false) {
		return false, CDATASectionState
	}
	t.err(perr.IncorrectlyOpenedComment, "incorrectly opened comment")
	t.s.next()
	t.b.Reset()
	return true, BogusCommentState
}
