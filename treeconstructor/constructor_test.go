package treeconstructor

import (
	"strings"
	"testing"

	"github.com/CourtBouillon/tinyhtml5/domtree"
	"github.com/CourtBouillon/tinyhtml5/perr"
	"github.com/CourtBouillon/tinyhtml5/tokenizer"
)

func constructDoc(t *testing.T, in string) (*Constructor, error) {
	t.Helper()
	errs := perr.NewSink(nil)
	tok := tokenizer.New(strings.NewReader(in), errs, nil)
	c := New(tok, nil, errs, nil)
	if _, err := c.Construct(); err != nil {
		return c, err
	}
	return c, nil
}

func hasErrorKind(errs []perr.Error, kind perr.Kind) bool {
	for _, e := range errs {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestSelfClosingNonVoidElementReportsError(t *testing.T) {
	c, err := constructDoc(t, "<div/>text")
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	if !hasErrorKind(c.Errors(), perr.NonVoidHTMLElementStartTagWithTrailingSolidus) {
		t.Errorf("expected NonVoidHTMLElementStartTagWithTrailingSolidus, got %+v", c.Errors())
	}
}

func TestSelfClosingVoidElementDoesNotReportError(t *testing.T) {
	c, err := constructDoc(t, "<br/>text")
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	if hasErrorKind(c.Errors(), perr.NonVoidHTMLElementStartTagWithTrailingSolidus) {
		t.Errorf("void element should not report the trailing-solidus error, got %+v", c.Errors())
	}
}

func TestSelfClosingForeignElementDoesNotReportError(t *testing.T) {
	c, err := constructDoc(t, `<svg><path/></svg>`)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	if hasErrorKind(c.Errors(), perr.NonVoidHTMLElementStartTagWithTrailingSolidus) {
		t.Errorf("foreign element should not report the trailing-solidus error, got %+v", c.Errors())
	}
}

func TestPreDiscardsLeadingNewline(t *testing.T) {
	c, err := constructDoc(t, "<pre>\nhello</pre>")
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	pre := findFirstNode(c.Document(), "pre")
	if pre == nil {
		t.Fatal("no <pre> in tree")
	}
	if got := textOf(pre); got != "hello" {
		t.Errorf("got %q, want %q (leading newline should be discarded)", got, "hello")
	}
}

func TestPreKeepsNonLeadingNewline(t *testing.T) {
	c, err := constructDoc(t, "<pre>a\nb</pre>")
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	pre := findFirstNode(c.Document(), "pre")
	if pre == nil {
		t.Fatal("no <pre> in tree")
	}
	if got := textOf(pre); got != "a\nb" {
		t.Errorf("got %q, want %q (only a genuinely leading newline is discarded)", got, "a\nb")
	}
}

func TestTextareaDiscardsLeadingNewline(t *testing.T) {
	c, err := constructDoc(t, "<textarea>\nhello</textarea>")
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	ta := findFirstNode(c.Document(), "textarea")
	if ta == nil {
		t.Fatal("no <textarea> in tree")
	}
	if got := textOf(ta); got != "hello" {
		t.Errorf("got %q, want %q (leading newline should be discarded)", got, "hello")
	}
}

func findFirstNode(n *domtree.Node, localName string) *domtree.Node {
	if n == nil {
		return nil
	}
	if n.LocalName == localName {
		return n
	}
	for _, c := range n.Children {
		if found := findFirstNode(c, localName); found != nil {
			return found
		}
	}
	return nil
}

func textOf(n *domtree.Node) string {
	var out string
	for _, c := range n.Children {
		if c.Type == domtree.TextNode {
			out += c.Data
			continue
		}
		out += textOf(c)
	}
	return out
}
