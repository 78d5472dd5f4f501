package tokenizer

import (
	"bufio"
	"io"

	"github.com/CourtBouillon/tinyhtml5/charref"
	"github.com/CourtBouillon/tinyhtml5/perr"
	"github.com/pkg/errors"
)

// scanner wraps a bufio.Reader with the standard's input-stream
// preprocessing (CRLF and lone CR normalized to LF) and an explicit
// pushback stack so states can "reconsume" more than the one rune
// bufio.Reader.UnreadRune supports.
type scanner struct {
	r        *bufio.Reader
	pushback []rune
	line, col int
	errs     *perr.Sink
}

func newScanner(r io.Reader, errs *perr.Sink) *scanner {
	return &scanner{r: bufio.NewReader(r), line: 1, col: 0, errs: errs}
}

// next returns the next input scalar value, io.EOF when exhausted, or a
// wrapped error if the underlying reader failed for another reason.
func (s *scanner) next() (rune, error) {
	if n := len(s.pushback); n > 0 {
		r := s.pushback[n-1]
		s.pushback = s.pushback[:n-1]
		s.advancePos(r)
		return r, nil
	}

	r, _, err := s.r.ReadRune()
	if err != nil {
		if err == io.EOF {
			return eof, io.EOF
		}
		return eof, errors.Wrap(err, "tokenizer: reading input")
	}

	if r == '\r' {
		next, _, err2 := s.r.ReadRune()
		if err2 == nil && next != '\n' {
			s.r.UnreadRune()
		}
		r = '\n'
	}

	s.advancePos(r)
	s.classify(r)
	return r, nil
}

// classify reports the input-stream preprocessing errors the standard
// requires on every code point read from the stream: surrogates,
// noncharacters, and controls other than ASCII whitespace and NULL
// (NULL gets its own unexpected-null-character error where a specific
// state encounters one, not this blanket check).
func (s *scanner) classify(r rune) {
	switch {
	case charref.IsSurrogate(r):
		s.errs.Record(perr.SurrogateInInputStream, s.line, s.col, "surrogate in input stream")
	case charref.IsNoncharacter(r):
		s.errs.Record(perr.NoncharacterInInputStream, s.line, s.col, "noncharacter in input stream")
	case isReportableControl(r):
		s.errs.Record(perr.ControlCharacterInInputStream, s.line, s.col, "control character in input stream")
	}
}

func isReportableControl(r rune) bool {
	switch r {
	case 0x00, 0x09, 0x0A, 0x0C, 0x0D, 0x20:
		return false
	}
	if r <= 0x1F {
		return true
	}
	return r >= 0x7F && r <= 0x9F
}

func (s *scanner) advancePos(r rune) {
	if r == '\n' {
		s.line++
		s.col = 0
		return
	}
	s.col++
}

// reconsume pushes r back so the next call to next() returns it again.
func (s *scanner) reconsume(r rune) {
	if r == eof {
		return
	}
	s.pushback = append(s.pushback, r)
}

// matchLiteral consumes len(word) runes and reports whether they equal
// word, optionally ignoring ASCII case. On a mismatch it pushes every
// consumed rune back, in order, so the caller can retry another match.
func (s *scanner) matchLiteral(word string, ci bool) bool {
	runes := []rune(word)
	consumed := make([]rune, 0, len(runes))
	for _, want := range runes {
		got, err := s.next()
		if err != nil {
			for i := len(consumed) - 1; i >= 0; i-- {
				s.reconsume(consumed[i])
			}
			return false
		}
		consumed = append(consumed, got)
		g := got
		w := want
		if ci {
			g = toASCIILower(g)
			w = toASCIILower(w)
		}
		if g != w {
			for i := len(consumed) - 1; i >= 0; i-- {
				s.reconsume(consumed[i])
			}
			return false
		}
	}
	return true
}
