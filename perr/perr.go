// Package perr defines the structured parse-error side channel shared by
// the tokenizer and tree constructor.
package perr

import "github.com/sirupsen/logrus"

// Kind names one of the parse-error conditions named by the HTML parsing
// algorithm. The catalog is not exhaustive of every named error in the
// standard, but covers every condition this module's tokenizer and tree
// constructor actually detect.
type Kind string

const (
	UnexpectedNullCharacter          Kind = "unexpected-null-character"
	UnexpectedQuestionMarkInsteadOfTagName Kind = "unexpected-question-mark-instead-of-tag-name"
	EOFBeforeTagName                 Kind = "eof-before-tag-name"
	InvalidFirstCharacterOfTagName   Kind = "invalid-first-character-of-tag-name"
	MissingEndTagName                Kind = "missing-end-tag-name"
	EOFInTag                         Kind = "eof-in-tag"
	EOFInScriptHTMLCommentLikeText   Kind = "eof-in-script-html-comment-like-text"
	UnexpectedEqualsSignBeforeAttributeName Kind = "unexpected-equals-sign-before-attribute-name"
	UnexpectedCharacterInAttributeName Kind = "unexpected-character-in-attribute-name"
	MissingAttributeValue            Kind = "missing-attribute-value"
	UnexpectedCharacterInUnquotedAttributeValue Kind = "unexpected-character-in-unquoted-attribute-value"
	MissingWhitespaceBetweenAttributes Kind = "missing-whitespace-between-attributes"
	UnexpectedSolidusInTag           Kind = "unexpected-solidus-in-tag"
	CDATAInHTMLContent               Kind = "cdata-in-html-content"
	AbruptClosingOfEmptyComment      Kind = "abrupt-closing-of-empty-comment"
	NestedComment                    Kind = "nested-comment"
	IncorrectlyClosedComment         Kind = "incorrectly-closed-comment"
	IncorrectlyOpenedComment         Kind = "incorrectly-opened-comment"
	EOFInComment                     Kind = "eof-in-comment"
	AbruptDoctypePublicIdentifier    Kind = "abrupt-doctype-public-identifier"
	AbruptDoctypeSystemIdentifier    Kind = "abrupt-doctype-system-identifier"
	MissingWhitespaceAfterDoctypePublicKeyword Kind = "missing-whitespace-after-doctype-public-keyword"
	MissingWhitespaceAfterDoctypeSystemKeyword Kind = "missing-whitespace-after-doctype-system-keyword"
	MissingWhitespaceBeforeDoctypeName Kind = "missing-whitespace-before-doctype-name"
	MissingDoctypeName                Kind = "missing-doctype-name"
	MissingDoctypePublicIdentifier    Kind = "missing-doctype-public-identifier"
	MissingDoctypeSystemIdentifier    Kind = "missing-doctype-system-identifier"
	MissingQuoteBeforeDoctypePublicIdentifier Kind = "missing-quote-before-doctype-public-identifier"
	MissingQuoteBeforeDoctypeSystemIdentifier Kind = "missing-quote-before-doctype-system-identifier"
	EOFInDoctype                      Kind = "eof-in-doctype"
	InvalidCharacterSequenceAfterDoctypeName Kind = "invalid-character-sequence-after-doctype-name"
	EOFInCDATA                        Kind = "eof-in-cdata"
	CharacterReferenceOutsideUnicodeRange Kind = "character-reference-outside-unicode-range"
	SurrogateCharacterReference       Kind = "surrogate-character-reference"
	NoncharacterCharacterReference    Kind = "noncharacter-character-reference"
	ControlCharacterReference         Kind = "control-character-reference"
	NullCharacterReference            Kind = "null-character-reference"
	MissingSemicolonAfterCharacterReference Kind = "missing-semicolon-after-character-reference"
	UnknownNamedCharacterReference    Kind = "unknown-named-character-reference"
	AbsenceOfDigitsInNumericCharacterReference Kind = "absence-of-digits-in-numeric-character-reference"

	// Input-stream preprocessing errors, reported once per offending
	// code point as it is read off the stream, distinct from the
	// character-reference-scoped variants above.
	SurrogateInInputStream           Kind = "surrogate-in-input-stream"
	NoncharacterInInputStream        Kind = "noncharacter-in-input-stream"
	ControlCharacterInInputStream    Kind = "control-character-in-input-stream"

	UnexpectedDoctype                 Kind = "unexpected-doctype"
	MissingDoctype                    Kind = "missing-doctype"
	NonConformingDoctype              Kind = "non-conforming-doctype"
	UnexpectedStartTag                Kind = "unexpected-start-tag"
	UnexpectedEndTag                  Kind = "unexpected-end-tag"
	UnexpectedEndOfFile               Kind = "unexpected-eof"
	StrayStartTagInHead               Kind = "stray-start-tag-in-head"
	StrayStartTagInTable              Kind = "stray-start-tag-in-table"
	UnclosedElements                  Kind = "unclosed-elements"
	AdoptionAgencyLoopLimitReached    Kind = "adoption-agency-loop-limit-reached"
	FosterParentedContent             Kind = "foster-parented-content"
	MisnestedTag                      Kind = "misnested-tag"

	// NonVoidHTMLElementStartTagWithTrailingSolidus fires when a start
	// tag's self-closing flag is never acknowledged: only void HTML
	// elements and foreign elements acknowledge it, so a self-closing
	// flag on any other HTML element start tag is always meaningless
	// and reported as a parse error, per the standard.
	NonVoidHTMLElementStartTagWithTrailingSolidus Kind = "non-void-html-element-start-tag-with-trailing-solidus"
)

// Error is a single recorded parse error with its position in the input.
type Error struct {
	Kind    Kind
	Line    int
	Column  int
	Context string
}

// Sink accumulates parse errors in the order they occur. It never filters
// or deduplicates: consumers that only want unique kinds can do that
// themselves. The document says "detected but not corrected" for parse
// errors, so a Sink is purely observational and never changes parsing
// behavior.
type Sink struct {
	errors []Error
	log    *logrus.Logger
}

// NewSink returns a Sink that also mirrors every recorded error to the
// given logger at Warn level. A nil logger disables mirroring.
func NewSink(log *logrus.Logger) *Sink {
	return &Sink{log: log}
}

// Record appends a parse error to the sink and, if a logger was supplied,
// emits it at Warn with structured fields.
func (s *Sink) Record(kind Kind, line, col int, context string) {
	e := Error{Kind: kind, Line: line, Column: col, Context: context}
	s.errors = append(s.errors, e)
	if s.log != nil {
		s.log.WithFields(logrus.Fields{
			"kind":   string(kind),
			"line":   line,
			"column": col,
		}).Warn(context)
	}
}

// Errors returns every recorded error, in the order recorded.
func (s *Sink) Errors() []Error {
	return s.errors
}

// Len reports how many errors have been recorded so far.
func (s *Sink) Len() int {
	return len(s.errors)
}
