// Package tinyhtml5 parses HTML5 the way a conforming user agent does:
// a tokenizer feeds a tree constructor, synchronously, producing a
// namespaced DOM-like tree rooted at an <html> element. Parsing never
// fails on malformed markup — parse errors are collected as a
// non-fatal side channel instead of aborting the parse, per the
// standard's error-recovery model.
package tinyhtml5

import (
	"io"
	"strings"

	"github.com/CourtBouillon/tinyhtml5/domtree"
	"github.com/CourtBouillon/tinyhtml5/perr"
	"github.com/CourtBouillon/tinyhtml5/treeadapter"
	"github.com/CourtBouillon/tinyhtml5/treeconstructor"
	"github.com/CourtBouillon/tinyhtml5/tokenizer"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Namespace URIs, re-exported from domtree for callers that only need
// to compare a node's namespace without importing that package
// directly.
const (
	HTMLNamespace   = domtree.HTMLNamespace
	MathMLNamespace = domtree.MathMLNamespace
	SVGNamespace    = domtree.SVGNamespace
	XLinkNamespace  = domtree.XLinkNamespace
	XMLNamespace    = domtree.XMLNamespace
	XMLNSNamespace  = domtree.XMLNSNamespace
)

// Node is the DOM-like tree node type Parse and ParseFragment produce.
type Node = domtree.Node

// Option configures a parse. Passing no options gives the default
// configuration: no logging, errors discarded.
type Option func(*options)

type options struct {
	log             *logrus.Logger
	adapter         treeadapter.Adapter
	errs            *perr.Sink
	htmlNamespacing bool
}

// WithLogger routes per-state-transition tracing (Debug) and recorded
// parse errors (Warn) to log.
func WithLogger(log *logrus.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithAdapter overrides the tree adapter used to build output nodes,
// for callers embedding this parser into their own DOM implementation.
func WithAdapter(a treeadapter.Adapter) Option {
	return func(o *options) { o.adapter = a }
}

// WithErrorSink routes recorded parse errors into a caller-owned sink
// instead of the one created internally, so a caller can inspect
// errs.Errors() after Parse returns.
func WithErrorSink(errs *perr.Sink) Option {
	return func(o *options) { o.errs = errs }
}

// WithHTMLNamespacing controls whether HTML elements are created in
// the HTML namespace, per the external interface's
// namespaceHTMLElements flag. The default is true; pass false only
// when embedding this parser into a tree that predates namespace-aware
// DOMs and expects HTML elements to carry no namespace at all.
func WithHTMLNamespacing(enabled bool) Option {
	return func(o *options) { o.htmlNamespacing = enabled }
}

func resolveOptions(opts []Option) *options {
	o := &options{htmlNamespacing: true}
	for _, apply := range opts {
		apply(o)
	}
	if o.errs == nil {
		o.errs = perr.NewSink(o.log)
	}
	if o.adapter == nil {
		o.adapter = treeadapter.Default{}
	}
	return o
}

// Parse reads HTML from r and returns the root document node.
func Parse(r io.Reader, opts ...Option) (*Node, error) {
	o := resolveOptions(opts)
	tok := tokenizer.New(r, o.errs, o.log)
	tc := treeconstructor.New(tok, o.adapter, o.errs, o.log)
	tc.SetHTMLNamespacing(o.htmlNamespacing)
	doc, err := tc.Construct()
	if err != nil {
		return nil, errors.Wrap(err, "tinyhtml5: read input")
	}
	return doc, nil
}

// ParseString parses HTML held entirely in memory.
func ParseString(s string, opts ...Option) (*Node, error) {
	return Parse(strings.NewReader(s), opts...)
}

// ParseBytes parses HTML held entirely in memory.
func ParseBytes(b []byte, opts ...Option) (*Node, error) {
	return Parse(strings.NewReader(string(b)), opts...)
}

// ParseFragment parses r as if it were inserted into an element named
// contextLocalName in namespace contextNS, per the standard's fragment
// parsing algorithm. It returns a document-fragment node holding the
// parsed children; contextLocalName/contextNS are never themselves
// present in the tree, only their content model and insertion-mode
// context matter.
func ParseFragment(r io.Reader, contextLocalName string, contextNS domtree.Namespace, opts ...Option) (*Node, error) {
	o := resolveOptions(opts)
	tok := tokenizer.New(r, o.errs, o.log)
	tc := treeconstructor.New(tok, o.adapter, o.errs, o.log)
	tc.SetHTMLNamespacing(o.htmlNamespacing)

	context := domtree.NewElement(contextNS, contextLocalName)
	tc.StartFragment(context)

	if _, err := tc.Construct(); err != nil {
		return nil, errors.Wrap(err, "tinyhtml5: read fragment input")
	}
	return tc.FragmentResult(), nil
}

// ParseFragmentString parses fragment HTML held entirely in memory.
func ParseFragmentString(s, contextLocalName string, contextNS domtree.Namespace, opts ...Option) (*Node, error) {
	return ParseFragment(strings.NewReader(s), contextLocalName, contextNS, opts...)
}
