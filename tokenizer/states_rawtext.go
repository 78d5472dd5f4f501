package tokenizer

import (
	"github.com/CourtBouillon/tinyhtml5/perr"
	"github.com/CourtBouillon/tinyhtml5/token"
)

func (t *Tokenizer) appropriateEndTag() bool {
	return t.b.NameString() != "" && t.b.NameString() == t.lastStartTag
}

// flushTempBufferAsCharacters emits the temporary buffer, accumulated
// while speculatively trying to match an end tag, as character tokens
// when the speculation failed.
func (t *Tokenizer) flushTempBufferAsCharacters() {
	t.emit(token.CharacterToken('<'))
	t.emit(token.CharacterToken('/'))
	for _, r := range t.b.TempBuffer() {
		t.emit(token.CharacterToken(r))
	}
}

func (t *Tokenizer) rcDataLessThanSignState(r rune, isEOF bool) (bool, State) {
	if r == '/' {
		t.b.ResetTempBuffer()
		return false, RCDataEndTagOpenState
	}
	t.emit(token.CharacterToken('<'))
	return true, RCDataState
}

func (t *Tokenizer) rcDataEndTagOpenState(r rune, isEOF bool) (bool, State) {
	if isASCIIAlpha(r) {
		t.b.Reset()
		t.currentIsEndTag = true
		return true, RCDataEndTagNameState
	}
	t.emit(token.CharacterToken('<'))
	t.emit(token.CharacterToken('/'))
	return true, RCDataState
}

func (t *Tokenizer) rcDataEndTagNameState(r rune, isEOF bool) (bool, State) {
	switch {
	case isASCIIWhitespace(r) && t.appropriateEndTag():
		return false, BeforeAttributeNameState
	case r == '/' && t.appropriateEndTag():
		return false, SelfClosingStartTagState
	case r == '>' && t.appropriateEndTag():
		return false, t.emitTagAndSwitch()
	case isASCIIUpper(r):
		t.b.WriteName(toASCIILower(r))
		t.b.WriteTempBuffer(r)
		return false, RCDataEndTagNameState
	case isASCIILower(r):
		t.b.WriteName(r)
		t.b.WriteTempBuffer(r)
		return false, RCDataEndTagNameState
	default:
		t.flushTempBufferAsCharacters()
		return true, RCDataState
	}
}

func (t *Tokenizer) rawTextLessThanSignState(r rune, isEOF bool) (bool, State) {
	if r == '/' {
		t.b.ResetTempBuffer()
		return false, RawTextEndTagOpenState
	}
	t.emit(token.CharacterToken('<'))
	return true, RawTextState
}

func (t *Tokenizer) rawTextEndTagOpenState(r rune, isEOF bool) (bool, State) {
	if isASCIIAlpha(r) {
		t.b.Reset()
		t.currentIsEndTag = true
		return true, RawTextEndTagNameState
	}
	t.emit(token.CharacterToken('<'))
	t.emit(token.CharacterToken('/'))
	return true, RawTextState
}

func (t *Tokenizer) rawTextEndTagNameState(r rune, isEOF bool) (bool, State) {
	switch {
	case isASCIIWhitespace(r) && t.appropriateEndTag():
		return false, BeforeAttributeNameState
	case r == '/' && t.appropriateEndTag():
		return false, SelfClosingStartTagState
	case r == '>' && t.appropriateEndTag():
		return false, t.emitTagAndSwitch()
	case isASCIIUpper(r):
		t.b.WriteName(toASCIILower(r))
		t.b.WriteTempBuffer(r)
		return false, RawTextEndTagNameState
	case isASCIILower(r):
		t.b.WriteName(r)
		t.b.WriteTempBuffer(r)
		return false, RawTextEndTagNameState
	default:
		t.flushTempBufferAsCharacters()
		return true, RawTextState
	}
}

func (t *Tokenizer) scriptDataLessThanSignState(r rune, isEOF bool) (bool, State) {
	switch r {
	case '/':
		t.b.ResetTempBuffer()
		return false, ScriptDataEndTagOpenState
	case '!':
		t.emit(token.CharacterToken('<'))
		t.emit(token.CharacterToken('!'))
		return false, ScriptDataEscapeStartState
	default:
		t.emit(token.CharacterToken('<'))
		return true, ScriptDataState
	}
}

func (t *Tokenizer) scriptDataEndTagOpenState(r rune, isEOF bool) (bool, State) {
	if isASCIIAlpha(r) {
		t.b.Reset()
		t.currentIsEndTag = true
		return true, ScriptDataEndTagNameState
	}
	t.emit(token.CharacterToken('<'))
	t.emit(token.CharacterToken('/'))
	return true, ScriptDataState
}

func (t *Tokenizer) scriptDataEndTagNameState(r rune, isEOF bool) (bool, State) {
	switch {
	case isASCIIWhitespace(r) && t.appropriateEndTag():
		return false, BeforeAttributeNameState
	case r == '/' && t.appropriateEndTag():
		return false, SelfClosingStartTagState
	case r == '>' && t.appropriateEndTag():
		return false, t.emitTagAndSwitch()
	case isASCIIUpper(r):
		t.b.WriteName(toASCIILower(r))
		t.b.WriteTempBuffer(r)
		return false, ScriptDataEndTagNameState
	case isASCIILower(r):
		t.b.WriteName(r)
		t.b.WriteTempBuffer(r)
		return false, ScriptDataEndTagNameState
	default:
		t.flushTempBufferAsCharacters()
		return true, ScriptDataState
	}
}

func (t *Tokenizer) scriptDataEscapeStartState(r rune, isEOF bool) (bool, State) {
	if r == '-' {
		t.emit(token.CharacterToken('-'))
		return false, ScriptDataEscapeStartDashState
	}
	return true, ScriptDataState
}

func (t *Tokenizer) scriptDataEscapeStartDashState(r rune, isEOF bool) (bool, State) {
	if r == '-' {
		t.emit(token.CharacterToken('-'))
		return false, ScriptDataEscapedDashDashState
	}
	return true, ScriptDataState
}

func (t *Tokenizer) scriptDataEscapedState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.err(perr.EOFInScriptHTMLCommentLikeText, "eof in script escaped text")
		t.emit(token.EOFToken())
		return false, ScriptDataEscapedState
	case r == '-':
		t.emit(token.CharacterToken('-'))
		return false, ScriptDataEscapedDashState
	case r == '<':
		return false, ScriptDataEscapedLessThanSignState
	case r == 0:
		t.err(perr.UnexpectedNullCharacter, "null character in script escaped text")
		t.emit(token.CharacterToken('�'))
		return false, ScriptDataEscapedState
	default:
		t.emit(token.CharacterToken(r))
		return false, ScriptDataEscapedState
	}
}

func (t *Tokenizer) scriptDataEscapedDashState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.err(perr.EOFInScriptHTMLCommentLikeText, "eof in script escaped text")
		t.emit(token.EOFToken())
		return false, ScriptDataEscapedDashState
	case r == '-':
		t.emit(token.CharacterToken('-'))
		return false, ScriptDataEscapedDashDashState
	case r == '<':
		return false, ScriptDataEscapedLessThanSignState
	case r == 0:
		t.err(perr.UnexpectedNullCharacter, "null character in script escaped text")
		t.emit(token.CharacterToken('�'))
		return false, ScriptDataEscapedState
	default:
		t.emit(token.CharacterToken(r))
		return false, ScriptDataEscapedState
	}
}

func (t *Tokenizer) scriptDataEscapedDashDashState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.err(perr.EOFInScriptHTMLCommentLikeText, "eof in script escaped text")
		t.emit(token.EOFToken())
		return false, ScriptDataEscapedDashDashState
	case r == '-':
		t.emit(token.CharacterToken('-'))
		return false, ScriptDataEscapedDashDashState
	case r == '<':
		return false, ScriptDataEscapedLessThanSignState
	case r == '>':
		t.emit(token.CharacterToken('>'))
		return false, ScriptDataState
	case r == 0:
		t.err(perr.UnexpectedNullCharacter, "null character in script escaped text")
		t.emit(token.CharacterToken('�'))
		return false, ScriptDataEscapedState
	default:
		t.emit(token.CharacterToken(r))
		return false, ScriptDataEscapedState
	}
}

func (t *Tokenizer) scriptDataEscapedLessThanSignState(r rune, isEOF bool) (bool, State) {
	switch {
	case r == '/':
		t.b.ResetTempBuffer()
		return false, ScriptDataEscapedEndTagOpenState
	case isASCIIAlpha(r):
		t.b.ResetTempBuffer()
		t.emit(token.CharacterToken('<'))
		return true, ScriptDataDoubleEscapeStartState
	default:
		t.emit(token.CharacterToken('<'))
		return true, ScriptDataEscapedState
	}
}

func (t *Tokenizer) scriptDataEscapedEndTagOpenState(r rune, isEOF bool) (bool, State) {
	if isASCIIAlpha(r) {
		t.b.Reset()
		t.currentIsEndTag = true
		return true, ScriptDataEscapedEndTagNameState
	}
	t.emit(token.CharacterToken('<'))
	t.emit(token.CharacterToken('/'))
	return true, ScriptDataEscapedState
}

func (t *Tokenizer) scriptDataEscapedEndTagNameState(r rune, isEOF bool) (bool, State) {
	switch {
	case isASCIIWhitespace(r) && t.appropriateEndTag():
		return false, BeforeAttributeNameState
	case r == '/' && t.appropriateEndTag():
		return false, SelfClosingStartTagState
	case r == '>' && t.appropriateEndTag():
		return false, t.emitTagAndSwitch()
	case isASCIIUpper(r):
		t.b.WriteName(toASCIILower(r))
		t.b.WriteTempBuffer(r)
		return false, ScriptDataEscapedEndTagNameState
	case isASCIILower(r):
		t.b.WriteName(r)
		t.b.WriteTempBuffer(r)
		return false, ScriptDataEscapedEndTagNameState
	default:
		t.flushTempBufferAsCharacters()
		return true, ScriptDataEscapedState
	}
}

const scriptTagWord = "script"

func (t *Tokenizer) scriptDataDoubleEscapeStartState(r rune, isEOF bool) (bool, State) {
	switch {
	case isASCIIWhitespace(r) || r == '/' || r == '>':
		next := ScriptDataEscapedState
		if t.b.TempBuffer() == scriptTagWord {
			next = ScriptDataDoubleEscapedState
		}
		t.emit(token.CharacterToken(r))
		return false, next
	case isASCIIUpper(r):
		t.b.AppendTempBuffer(string(toASCIILower(r)))
		t.emit(token.CharacterToken(r))
		return false, ScriptDataDoubleEscapeStartState
	case isASCIILower(r):
		t.b.AppendTempBuffer(string(r))
		t.emit(token.CharacterToken(r))
		return false, ScriptDataDoubleEscapeStartState
	default:
		return true, ScriptDataEscapedState
	}
}

func (t *Tokenizer) scriptDataDoubleEscapedState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.err(perr.EOFInScriptHTMLCommentLikeText, "eof in script double-escaped text")
		t.emit(token.EOFToken())
		return false, ScriptDataDoubleEscapedState
	case r == '-':
		t.emit(token.CharacterToken('-'))
		return false, ScriptDataDoubleEscapedDashState
	case r == '<':
		t.emit(token.CharacterToken('<'))
		return false, ScriptDataDoubleEscapedLessThanSignState
	case r == 0:
		t.err(perr.UnexpectedNullCharacter, "null character in script double-escaped text")
		t.emit(token.CharacterToken('�'))
		return false, ScriptDataDoubleEscapedState
	default:
		t.emit(token.CharacterToken(r))
		return false, ScriptDataDoubleEscapedState
	}
}

func (t *Tokenizer) scriptDataDoubleEscapedDashState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.err(perr.EOFInScriptHTMLCommentLikeText, "eof in script double-escaped text")
		t.emit(token.EOFToken())
		return false, ScriptDataDoubleEscapedDashState
	case r == '-':
		t.emit(token.CharacterToken('-'))
		return false, ScriptDataDoubleEscapedDashDashState
	case r == '<':
		t.emit(token.CharacterToken('<'))
		return false, ScriptDataDoubleEscapedLessThanSignState
	case r == 0:
		t.err(perr.UnexpectedNullCharacter, "null character in script double-escaped text")
		t.emit(token.CharacterToken('�'))
		return false, ScriptDataDoubleEscapedState
	default:
		t.emit(token.CharacterToken(r))
		return false, ScriptDataDoubleEscapedState
	}
}

func (t *Tokenizer) scriptDataDoubleEscapedDashDashState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.err(perr.EOFInScriptHTMLCommentLikeText, "eof in script double-escaped text")
		t.emit(token.EOFToken())
		return false, ScriptDataDoubleEscapedDashDashState
	case r == '-':
		t.emit(token.CharacterToken('-'))
		return false, ScriptDataDoubleEscapedDashDashState
	case r == '<':
		t.emit(token.CharacterToken('<'))
		return false, ScriptDataDoubleEscapedLessThanSignState
	case r == '>':
		t.emit(token.CharacterToken('>'))
		return false, ScriptDataState
	case r == 0:
		t.err(perr.UnexpectedNullCharacter, "null character in script double-escaped text")
		t.emit(token.CharacterToken('�'))
		return false, ScriptDataDoubleEscapedState
	default:
		t.emit(token.CharacterToken(r))
		return false, ScriptDataDoubleEscapedState
	}
}

func (t *Tokenizer) scriptDataDoubleEscapedLessThanSignState(r rune, isEOF bool) (bool, State) {
	if r == '/' {
		t.b.ResetTempBuffer()
		t.emit(token.CharacterToken('/'))
		return false, ScriptDataDoubleEscapeEndState
	}
	return true, ScriptDataDoubleEscapedState
}

func (t *Tokenizer) scriptDataDoubleEscapeEndState(r rune, isEOF bool) (bool, State) {
	switch {
	case isASCIIWhitespace(r) || r == '/' || r == '>':
		next := ScriptDataDoubleEscapedState
		if t.b.TempBuffer() == scriptTagWord {
			next = ScriptDataEscapedState
		}
		t.emit(token.CharacterToken(r))
		return false, next
	case isASCIIUpper(r):
		t.b.AppendTempBuffer(string(toASCIILower(r)))
		t.emit(token.CharacterToken(r))
		return false, ScriptDataDoubleEscapeEndState
	case isASCIILower(r):
		t.b.AppendTempBuffer(string(r))
		t.emit(token.CharacterToken(r))
		return false, ScriptDataDoubleEscapeEndState
	default:
		return true, ScriptDataDoubleEscapedState
	}
}
