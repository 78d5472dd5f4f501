// Package tokenizer implements the HTML tokenization stage: an ~80-state
// machine that turns a stream of Unicode scalar values into a stream of
// tokens. It never blocks on tree construction; the tree constructor
// pulls tokens one at a time and pushes state changes back in (content
// model switches, the last start tag name, self-closing acknowledgement)
// exactly as the standard specifies.
package tokenizer

import (
	"io"

	"github.com/CourtBouillon/tinyhtml5/perr"
	"github.com/CourtBouillon/tinyhtml5/token"
	"github.com/sirupsen/logrus"
)

// Tokenizer pulls tokens from an input stream one at a time.
type Tokenizer struct {
	s     *scanner
	state State
	returnState State

	b               *token.Builder
	lastStartTag    string
	currentIsEndTag bool
	queue           []token.Token
	done            bool
	pendingAck      *bool

	errs *perr.Sink
	log  *logrus.Logger
}

// New returns a Tokenizer starting in the Data state, reading from r,
// recording parse errors into errs (which may be nil to discard them).
func New(r io.Reader, errs *perr.Sink, log *logrus.Logger) *Tokenizer {
	if errs == nil {
		errs = perr.NewSink(nil)
	}
	return &Tokenizer{
		s:     newScanner(r, errs),
		state: DataState,
		b:     token.NewBuilder(),
		errs:  errs,
		log:   log,
	}
}

// SetState forces a content-model switch, as directed by the tree
// constructor after certain start tags (title -> RCDATA, script ->
// ScriptData, and so on).
func (t *Tokenizer) SetState(s State) { t.state = s }

// State reports the tokenizer's current state.
func (t *Tokenizer) State() State { return t.state }

// SetLastStartTagName records the last emitted start tag's name, used
// by the RCDATA/RAWTEXT/ScriptData end-tag-name states to decide
// whether an end tag is an "appropriate" one.
func (t *Tokenizer) SetLastStartTagName(name string) { t.lastStartTag = name }

// AcknowledgeSelfClosing marks the self-closing flag of the most
// recently returned token as handled, per the standard's "acknowledge
// the token's self-closing flag" instruction. Callers that never call
// this for a self-closing start tag leave its Acknowledged cell false,
// which the tree constructor reports as a parse error.
func (t *Tokenizer) AcknowledgeSelfClosing() {
	if t.pendingAck != nil {
		*t.pendingAck = true
	}
}

func (t *Tokenizer) trace(state State, r rune) {
	if t.log == nil {
		return
	}
	t.log.WithFields(logrus.Fields{"state": int(state), "rune": string(r)}).Debug("tokenizer transition")
}

func (t *Tokenizer) err(kind perr.Kind, context string) {
	t.errs.Record(kind, t.s.line, t.s.col, context)
}

// Pos reports the scanner's current line/column, so callers sharing this
// tokenizer's perr.Sink (the tree constructor) can record their own
// errors at a real input position instead of (0, 0).
func (t *Tokenizer) Pos() (line, col int) {
	return t.s.line, t.s.col
}

// NextToken pulls the next token from the input, or returns io.EOF once
// the end-of-file token has already been returned.
func (t *Tokenizer) NextToken() (token.Token, error) {
	if t.done && len(t.queue) == 0 {
		return token.Token{}, io.EOF
	}
	for len(t.queue) == 0 {
		if err := t.step(); err != nil {
			return token.Token{}, err
		}
	}
	tok := t.queue[0]
	t.queue = t.queue[1:]
	t.pendingAck = tok.Acknowledged
	return tok, nil
}

func (t *Tokenizer) emit(tok token.Token) {
	t.queue = append(t.queue, tok)
	if tok.Type == token.EOF {
		t.done = true
	}
}

// step runs the state machine forward until it has produced at least one
// token, or returns a non-EOF error from the underlying reader.
func (t *Tokenizer) step() error {
	for {
		r, err := t.s.next()
		isEOF := err == io.EOF
		if err != nil && !isEOF {
			return err
		}

		for {
			t.trace(t.state, r)
			reconsume, next := t.dispatch(t.state, r, isEOF)
			t.state = next
			if !reconsume {
				break
			}
		}

		if len(t.queue) > 0 {
			return nil
		}
		if t.done {
			return nil
		}
	}
}

// dispatch runs one state's logic against r (or an EOF condition if
// isEOF), returning whether the same rune must be reconsumed by the new
// state and what that new state is.
func (t *Tokenizer) dispatch(s State, r rune, isEOF bool) (reconsume bool, next State) {
	switch s {
	case DataState:
		return t.dataState(r, isEOF)
	case RCDataState:
		return t.rcDataState(r, isEOF)
	case RawTextState:
		return t.rawTextState(r, isEOF)
	case ScriptDataState:
		return t.scriptDataState(r, isEOF)
	case PLAINTextState:
		return t.plaintextState(r, isEOF)
	case TagOpenState:
		return t.tagOpenState(r, isEOF)
	case EndTagOpenState:
		return t.endTagOpenState(r, isEOF)
	case TagNameState:
		return t.tagNameState(r, isEOF)
	case RCDataLessThanSignState:
		return t.rcDataLessThanSignState(r, isEOF)
	case RCDataEndTagOpenState:
		return t.rcDataEndTagOpenState(r, isEOF)
	case RCDataEndTagNameState:
		return t.rcDataEndTagNameState(r, isEOF)
	case RawTextLessThanSignState:
		return t.rawTextLessThanSignState(r, isEOF)
	case RawTextEndTagOpenState:
		return t.rawTextEndTagOpenState(r, isEOF)
	case RawTextEndTagNameState:
		return t.rawTextEndTagNameState(r, isEOF)
	case ScriptDataLessThanSignState:
		return t.scriptDataLessThanSignState(r, isEOF)
	case ScriptDataEndTagOpenState:
		return t.scriptDataEndTagOpenState(r, isEOF)
	case ScriptDataEndTagNameState:
		return t.scriptDataEndTagNameState(r, isEOF)
	case ScriptDataEscapeStartState:
		return t.scriptDataEscapeStartState(r, isEOF)
	case ScriptDataEscapeStartDashState:
		return t.scriptDataEscapeStartDashState(r, isEOF)
	case ScriptDataEscapedState:
		return t.scriptDataEscapedState(r, isEOF)
	case ScriptDataEscapedDashState:
		return t.scriptDataEscapedDashState(r, isEOF)
	case ScriptDataEscapedDashDashState:
		return t.scriptDataEscapedDashDashState(r, isEOF)
	case ScriptDataEscapedLessThanSignState:
		return t.scriptDataEscapedLessThanSignState(r, isEOF)
	case ScriptDataEscapedEndTagOpenState:
		return t.scriptDataEscapedEndTagOpenState(r, isEOF)
	case ScriptDataEscapedEndTagNameState:
		return t.scriptDataEscapedEndTagNameState(r, isEOF)
	case ScriptDataDoubleEscapeStartState:
		return t.scriptDataDoubleEscapeStartState(r, isEOF)
	case ScriptDataDoubleEscapedState:
		return t.scriptDataDoubleEscapedState(r, isEOF)
	case ScriptDataDoubleEscapedDashState:
		return t.scriptDataDoubleEscapedDashState(r, isEOF)
	case ScriptDataDoubleEscapedDashDashState:
		return t.scriptDataDoubleEscapedDashDashState(r, isEOF)
	case ScriptDataDoubleEscapedLessThanSignState:
		return t.scriptDataDoubleEscapedLessThanSignState(r, isEOF)
	case ScriptDataDoubleEscapeEndState:
		return t.scriptDataDoubleEscapeEndState(r, isEOF)
	case BeforeAttributeNameState:
		return t.beforeAttributeNameState(r, isEOF)
	case AttributeNameState:
		return t.attributeNameState(r, isEOF)
	case AfterAttributeNameState:
		return t.afterAttributeNameState(r, isEOF)
	case BeforeAttributeValueState:
		return t.beforeAttributeValueState(r, isEOF)
	case AttributeValueDoubleQuotedState:
		return t.attributeValueQuotedState(r, isEOF, '"')
	case AttributeValueSingleQuotedState:
		return t.attributeValueQuotedState(r, isEOF, '\'')
	case AttributeValueUnquotedState:
		return t.attributeValueUnquotedState(r, isEOF)
	case AfterAttributeValueQuotedState:
		return t.afterAttributeValueQuotedState(r, isEOF)
	case SelfClosingStartTagState:
		return t.selfClosingStartTagState(r, isEOF)
	case BogusCommentState:
		return t.bogusCommentState(r, isEOF)
	case MarkupDeclarationOpenState:
		return t.markupDeclarationOpenState(r, isEOF)
	case CommentStartState:
		return t.commentStartState(r, isEOF)
	case CommentStartDashState:
		return t.commentStartDashState(r, isEOF)
	case CommentState:
		return t.commentState(r, isEOF)
	case CommentLessThanSignState:
		return t.commentLessThanSignState(r, isEOF)
	case CommentLessThanSignBangState:
		return t.commentLessThanSignBangState(r, isEOF)
	case CommentLessThanSignBangDashState:
		return t.commentLessThanSignBangDashState(r, isEOF)
	case CommentLessThanSignBangDashDashState:
		return t.commentLessThanSignBangDashDashState(r, isEOF)
	case CommentEndDashState:
		return t.commentEndDashState(r, isEOF)
	case CommentEndState:
		return t.commentEndState(r, isEOF)
	case CommentEndBangState:
		return t.commentEndBangState(r, isEOF)
	case DoctypeState:
		return t.doctypeState(r, isEOF)
	case BeforeDoctypeNameState:
		return t.beforeDoctypeNameState(r, isEOF)
	case DoctypeNameState:
		return t.doctypeNameState(r, isEOF)
	case AfterDoctypeNameState:
		return t.afterDoctypeNameState(r, isEOF)
	case AfterDoctypePublicKeywordState:
		return t.afterDoctypePublicKeywordState(r, isEOF)
	case BeforeDoctypePublicIdentifierState:
		return t.beforeDoctypePublicIdentifierState(r, isEOF)
	case DoctypePublicIdentifierDoubleQuotedState:
		return t.doctypePublicIdentifierQuotedState(r, isEOF, '"')
	case DoctypePublicIdentifierSingleQuotedState:
		return t.doctypePublicIdentifierQuotedState(r, isEOF, '\'')
	case AfterDoctypePublicIdentifierState:
		return t.afterDoctypePublicIdentifierState(r, isEOF)
	case BetweenDoctypePublicAndSystemIdentifiersState:
		return t.betweenDoctypePublicAndSystemIdentifiersState(r, isEOF)
	case AfterDoctypeSystemKeywordState:
		return t.afterDoctypeSystemKeywordState(r, isEOF)
	case BeforeDoctypeSystemIdentifierState:
		return t.beforeDoctypeSystemIdentifierState(r, isEOF)
	case DoctypeSystemIdentifierDoubleQuotedState:
		return t.doctypeSystemIdentifierQuotedState(r, isEOF, '"')
	case DoctypeSystemIdentifierSingleQuotedState:
		return t.doctypeSystemIdentifierQuotedState(r, isEOF, '\'')
	case AfterDoctypeSystemIdentifierState:
		return t.afterDoctypeSystemIdentifierState(r, isEOF)
	case BogusDoctypeState:
		return t.bogusDoctypeState(r, isEOF)
	case CDATASectionState:
		return t.cdataSectionState(r, isEOF)
	case CDATASectionBracketState:
		return t.cdataSectionBracketState(r, isEOF)
	case CDATASectionEndState:
		return t.cdataSectionEndState(r, isEOF)
	case CharacterReferenceState:
		return t.characterReferenceState(r, isEOF)
	case NamedCharacterReferenceState:
		return t.namedCharacterReferenceState(r, isEOF)
	case AmbiguousAmpersandState:
		return t.ambiguousAmpersandState(r, isEOF)
	case NumericCharacterReferenceState:
		return t.numericCharacterReferenceState(r, isEOF)
	case HexadecimalCharacterReferenceStartState:
		return t.hexadecimalCharacterReferenceStartState(r, isEOF)
	case DecimalCharacterReferenceStartState:
		return t.decimalCharacterReferenceStartState(r, isEOF)
	case HexadecimalCharacterReferenceState:
		return t.hexadecimalCharacterReferenceState(r, isEOF)
	case DecimalCharacterReferenceState:
		return t.decimalCharacterReferenceState(r, isEOF)
	case NumericCharacterReferenceEndState:
		return t.numericCharacterReferenceEndState(r, isEOF)
	}
	return false, DataState
}
