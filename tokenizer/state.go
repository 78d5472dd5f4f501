package tokenizer

// State names one of the tokenizer's states. The tree constructor can
// force a transition into RCDATA/RAWTEXT/ScriptData/PLAINTEXT (or back
// to Data) via SetState, mirroring the standard's "switch the state of
// the tokenizer" instructions issued by tree construction.
type State uint8

const (
	DataState State = iota
	RCDataState
	RawTextState
	ScriptDataState
	PLAINTextState
	TagOpenState
	EndTagOpenState
	TagNameState
	RCDataLessThanSignState
	RCDataEndTagOpenState
	RCDataEndTagNameState
	RawTextLessThanSignState
	RawTextEndTagOpenState
	RawTextEndTagNameState
	ScriptDataLessThanSignState
	ScriptDataEndTagOpenState
	ScriptDataEndTagNameState
	ScriptDataEscapeStartState
	ScriptDataEscapeStartDashState
	ScriptDataEscapedState
	ScriptDataEscapedDashState
	ScriptDataEscapedDashDashState
	ScriptDataEscapedLessThanSignState
	ScriptDataEscapedEndTagOpenState
	ScriptDataEscapedEndTagNameState
	ScriptDataDoubleEscapeStartState
	ScriptDataDoubleEscapedState
	ScriptDataDoubleEscapedDashState
	ScriptDataDoubleEscapedDashDashState
	ScriptDataDoubleEscapedLessThanSignState
	ScriptDataDoubleEscapeEndState
	BeforeAttributeNameState
	AttributeNameState
	AfterAttributeNameState
	BeforeAttributeValueState
	AttributeValueDoubleQuotedState
	AttributeValueSingleQuotedState
	AttributeValueUnquotedState
	AfterAttributeValueQuotedState
	SelfClosingStartTagState
	BogusCommentState
	MarkupDeclarationOpenState
	CommentStartState
	CommentStartDashState
	CommentState
	CommentLessThanSignState
	CommentLessThanSignBangState
	CommentLessThanSignBangDashState
	CommentLessThanSignBangDashDashState
	CommentEndDashState
	CommentEndState
	CommentEndBangState
	DoctypeState
	BeforeDoctypeNameState
	DoctypeNameState
	AfterDoctypeNameState
	AfterDoctypePublicKeywordState
	BeforeDoctypePublicIdentifierState
	DoctypePublicIdentifierDoubleQuotedState
	DoctypePublicIdentifierSingleQuotedState
	AfterDoctypePublicIdentifierState
	BetweenDoctypePublicAndSystemIdentifiersState
	AfterDoctypeSystemKeywordState
	BeforeDoctypeSystemIdentifierState
	DoctypeSystemIdentifierDoubleQuotedState
	DoctypeSystemIdentifierSingleQuotedState
	AfterDoctypeSystemIdentifierState
	BogusDoctypeState
	CDATASectionState
	CDATASectionBracketState
	CDATASectionEndState
	CharacterReferenceState
	NamedCharacterReferenceState
	AmbiguousAmpersandState
	NumericCharacterReferenceState
	HexadecimalCharacterReferenceStartState
	DecimalCharacterReferenceStartState
	HexadecimalCharacterReferenceState
	DecimalCharacterReferenceState
	NumericCharacterReferenceEndState
)

func isASCIIWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isASCIIUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isASCIILower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isASCIIAlpha(r rune) bool  { return isASCIIUpper(r) || isASCIILower(r) }
func isASCIIDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isASCIIAlnum(r rune) bool  { return isASCIIAlpha(r) || isASCIIDigit(r) }
func isASCIIHexDigit(r rune) bool {
	return isASCIIDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
func toASCIILower(r rune) rune {
	if isASCIIUpper(r) {
		return r + ('a' - 'A')
	}
	return r
}

const eof rune = -1
