package tokenizer

import (
	"github.com/CourtBouillon/tinyhtml5/perr"
	"github.com/CourtBouillon/tinyhtml5/token"
)

func (t *Tokenizer) commentStartState(r rune, isEOF bool) (bool, State) {
	switch r {
	case '-':
		return false, CommentStartDashState
	case '>':
		t.err(perr.AbruptClosingOfEmptyComment, "abrupt closing of empty comment")
		t.emit(t.b.CommentToken())
		return false, DataState
	default:
		return true, CommentState
	}
}

func (t *Tokenizer) commentStartDashState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.err(perr.EOFInComment, "eof in comment")
		t.emit(t.b.CommentToken())
		t.emit(token.EOFToken())
		return false, DataState
	case r == '-':
		return false, CommentEndState
	case r == '>':
		t.err(perr.AbruptClosingOfEmptyComment, "abrupt closing of empty comment")
		t.emit(t.b.CommentToken())
		return false, DataState
	default:
		t.b.WriteData('-')
		return true, CommentState
	}
}

func (t *Tokenizer) commentState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.err(perr.EOFInComment, "eof in comment")
		t.emit(t.b.CommentToken())
		t.emit(token.EOFToken())
		return false, DataState
	case r == '<':
		t.b.WriteData(r)
		return false, CommentLessThanSignState
	case r == '-':
		return false, CommentEndDashState
	case r == 0:
		t.err(perr.UnexpectedNullCharacter, "null character in comment")
		t.b.WriteData('�')
		return false, CommentState
	default:
		t.b.WriteData(r)
		return false, CommentState
	}
}

func (t *Tokenizer) commentLessThanSignState(r rune, isEOF bool) (bool, State) {
	switch r {
	case '!':
		t.b.WriteData(r)
		return false, CommentLessThanSignBangState
	case '<':
		t.b.WriteData(r)
		return false, CommentLessThanSignState
	default:
		return true, CommentState
	}
}

func (t *Tokenizer) commentLessThanSignBangState(r rune, isEOF bool) (bool, State) {
	if r == '-' {
		return false, CommentLessThanSignBangDashState
	}
	return true, CommentState
}

func (t *Tokenizer) commentLessThanSignBangDashState(r rune, isEOF bool) (bool, State) {
	if r == '-' {
		return false, CommentLessThanSignBangDashDashState
	}
	return true, CommentEndDashState
}

func (t *Tokenizer) commentLessThanSignBangDashDashState(r rune, isEOF bool) (bool, State) {
	if r == '>' || isEOF {
		return true, CommentEndState
	}
	t.err(perr.NestedComment, "nested comment")
	return true, CommentEndState
}

func (t *Tokenizer) commentEndDashState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.err(perr.EOFInComment, "eof in comment")
		t.emit(t.b.CommentToken())
		t.emit(token.EOFToken())
		return false, DataState
	case r == '-':
		return false, CommentEndState
	default:
		t.b.WriteData('-')
		return true, CommentState
	}
}

func (t *Tokenizer) commentEndState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.err(perr.EOFInComment, "eof in comment")
		t.emit(t.b.CommentToken())
		t.emit(token.EOFToken())
		return false, DataState
	case r == '>':
		t.emit(t.b.CommentToken())
		return false, DataState
	case r == '!':
		return false, CommentEndBangState
	case r == '-':
		t.b.WriteData('-')
		return false, CommentEndState
	default:
		t.b.WriteData('-')
		t.b.WriteData('-')
		return true, CommentState
	}
}

func (t *Tokenizer) commentEndBangState(r rune, isEOF bool) (bool, State) {
	switch {
	case isEOF:
		t.err(perr.EOFInComment, "eof in comment")
		t.emit(t.b.CommentToken())
		t.emit(token.EOFToken())
		return false, DataState
	case r == '-':
		t.b.WriteData('-')
		t.b.WriteData('-')
		t.b.WriteData('!')
		return false, CommentEndDashState
	case r == '>':
		t.err(perr.IncorrectlyClosedComment, "incorrectly closed comment")
		t.emit(t.b.CommentToken())
		return false, DataState
	default:
		t.b.WriteData('-')
		t.b.WriteData('-')
		t.b.WriteData('!')
		return true, CommentState
	}
}
