package tokenizer

import (
	"github.com/CourtBouillon/tinyhtml5/perr"
	"github.com/CourtBouillon/tinyhtml5/token"
)

func (t *Tokenizer) dataState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.emit(token.EOFToken())
		return false, DataState
	case r == '&':
		t.returnState = DataState
		return false, CharacterReferenceState
	case r == '<':
		return false, TagOpenState
	case r == 0:
		t.err(perr.UnexpectedNullCharacter, "null character in data")
		t.emit(token.CharacterToken(r))
		return false, DataState
	default:
		t.emit(token.CharacterToken(r))
		return false, DataState
	}
}

func (t *Tokenizer) rcDataState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.emit(token.EOFToken())
		return false, RCDataState
	case r == '&':
		t.returnState = RCDataState
		return false, CharacterReferenceState
	case r == '<':
		return false, RCDataLessThanSignState
	case r == 0:
		t.err(perr.UnexpectedNullCharacter, "null character in RCDATA")
		t.emit(token.CharacterToken('�'))
		return false, RCDataState
	default:
		t.emit(token.CharacterToken(r))
		return false, RCDataState
	}
}

func (t *Tokenizer) rawTextState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.emit(token.EOFToken())
		return false, RawTextState
	case r == '<':
		return false, RawTextLessThanSignState
	case r == 0:
		t.err(perr.UnexpectedNullCharacter, "null character in RAWTEXT")
		t.emit(token.CharacterToken('�'))
		return false, RawTextState
	default:
		t.emit(token.CharacterToken(r))
		return false, RawTextState
	}
}

func (t *Tokenizer) scriptDataState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.emit(token.EOFToken())
		return false, ScriptDataState
	case r == '<':
		return false, ScriptDataLessThanSignState
	case r == 0:
		t.err(perr.UnexpectedNullCharacter, "null character in script data")
		t.emit(token.CharacterToken('�'))
		return false, ScriptDataState
	default:
		t.emit(token.CharacterToken(r))
		return false, ScriptDataState
	}
}

func (t *Tokenizer) plaintextState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.emit(token.EOFToken())
		return false, PLAINTextState
	case r == 0:
		t.err(perr.UnexpectedNullCharacter, "null character in plaintext")
		t.emit(token.CharacterToken('�'))
		return false, PLAINTextState
	default:
		t.emit(token.CharacterToken(r))
		return false, PLAINTextState
	}
}

func (t *Tokenizer) tagOpenState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.err(perr.EOFBeforeTagName, "eof right after '<'")
		t.emit(token.CharacterToken('<'))
		t.emit(token.EOFToken())
		return false, DataState
	case r == '!':
		return false, MarkupDeclarationOpenState
	case r == '/':
		return false, EndTagOpenState
	case isASCIIAlpha(r):
		t.b.Reset()
		t.currentIsEndTag = false
		return true, TagNameState
	case r == '?':
		t.err(perr.UnexpectedQuestionMarkInsteadOfTagName, "'?' where a tag name was expected")
		t.b.Reset()
		return true, BogusCommentState
	default:
		t.err(perr.InvalidFirstCharacterOfTagName, "invalid first character of tag name")
		t.emit(token.CharacterToken('<'))
		return true, DataState
	}
}

func (t *Tokenizer) endTagOpenState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.err(perr.EOFBeforeTagName, "eof right after '</'")
		t.emit(token.CharacterToken('<'))
		t.emit(token.CharacterToken('/'))
		t.emit(token.EOFToken())
		return false, DataState
	case isASCIIAlpha(r):
		t.b.Reset()
		t.currentIsEndTag = true
		return true, TagNameState
	case r == '>':
		t.err(perr.MissingEndTagName, "missing end tag name")
		return false, DataState
	default:
		t.err(perr.InvalidFirstCharacterOfTagName, "invalid first character of tag name")
		t.b.Reset()
		return true, BogusCommentState
	}
}

func (t *Tokenizer) tagNameState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.err(perr.EOFInTag, "eof in tag name")
		t.emit(token.EOFToken())
		return false, DataState
	case isASCIIWhitespace(r):
		return false, BeforeAttributeNameState
	case r == '/':
		return false, SelfClosingStartTagState
	case r == '>':
		return false, t.emitTagAndSwitch()
	case isASCIIUpper(r):
		t.b.WriteName(toASCIILower(r))
		return false, TagNameState
	case r == 0:
		t.err(perr.UnexpectedNullCharacter, "null character in tag name")
		t.b.WriteName('�')
		return false, TagNameState
	default:
		t.b.WriteName(r)
		return false, TagNameState
	}
}

// emitTagAndSwitch emits the built start/end tag and, for start tags,
// remembers the name for later RCDATA/RAWTEXT/ScriptData end tag
// matching. It returns Data as the resting state; a tree constructor
// that wants RCDATA/RAWTEXT/ScriptData content model must call SetState
// itself after seeing the emitted start tag, per the standard's
// tokenizer/tree-construction coupling.
func (t *Tokenizer) emitTagAndSwitch() State {
	if t.currentIsEndTag {
		t.emit(t.b.EndTagToken())
	} else {
		tok := t.b.StartTagToken()
		t.emit(tok)
		t.lastStartTag = tok.Name
	}
	t.currentIsEndTag = false
	return DataState
}
