package tinyhtml5_test

import (
	"strings"
	"testing"

	"github.com/CourtBouillon/tinyhtml5"
	"github.com/CourtBouillon/tinyhtml5/domtree"
	"github.com/CourtBouillon/tinyhtml5/perr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findFirst(n *tinyhtml5.Node, localName string) *tinyhtml5.Node {
	if n == nil {
		return nil
	}
	if n.Type == domtree.ElementNode && n.LocalName == localName {
		return n
	}
	for _, c := range n.Children {
		if found := findFirst(c, localName); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *tinyhtml5.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == domtree.TextNode {
		return n.Data
	}
	var out string
	for _, c := range n.Children {
		out += textContent(c)
	}
	return out
}

func TestParseInsertsImpliedHeadAndBody(t *testing.T) {
	doc, err := tinyhtml5.ParseString("<title>hi</title><p>hello")
	require.NoError(t, err)

	html := findFirst(doc, "html")
	require.NotNil(t, html)
	require.NotNil(t, findFirst(html, "head"))
	body := findFirst(html, "body")
	require.NotNil(t, body)

	p := findFirst(body, "p")
	require.NotNil(t, p)
	assert.Equal(t, "hello", textContent(p))
}

func TestParseAdoptionAgencyUnnestsFormattingElements(t *testing.T) {
	doc, err := tinyhtml5.ParseString("<p>1<b>2<i>3</b>4</i>5</p>")
	require.NoError(t, err)

	// The adoption agency algorithm must produce the exact shape
	// p["1", b["2", i["3"]], i["4"], "5"]: the </b> end tag closes the
	// <b>/<i> pair without a matching furthest block, so a second <i>
	// is reconstructed as a sibling of <b> to hold "4", rather than the
	// first <i> absorbing both "3" and "4" or either being dropped.
	p := findFirst(doc, "p")
	require.NotNil(t, p)
	require.Len(t, p.Children, 4)

	require.Equal(t, domtree.TextNode, p.Children[0].Type)
	assert.Equal(t, "1", p.Children[0].Data)

	b := p.Children[1]
	require.Equal(t, "b", b.TagName())
	require.Len(t, b.Children, 2)
	assert.Equal(t, "2", b.Children[0].Data)
	innerI := b.Children[1]
	require.Equal(t, "i", innerI.TagName())
	require.Len(t, innerI.Children, 1)
	assert.Equal(t, "3", innerI.Children[0].Data)

	outerI := p.Children[2]
	require.Equal(t, "i", outerI.TagName())
	require.Len(t, outerI.Children, 1)
	assert.Equal(t, "4", outerI.Children[0].Data)

	require.Equal(t, domtree.TextNode, p.Children[3].Type)
	assert.Equal(t, "5", p.Children[3].Data)
}

func TestParseFosterParentsTableText(t *testing.T) {
	doc, err := tinyhtml5.ParseString("<table>lost<tr><td>kept</td></tr></table>")
	require.NoError(t, err)

	body := findFirst(doc, "body")
	require.NotNil(t, body)
	table := findFirst(body, "table")
	require.NotNil(t, table)

	// "lost" is foster-parented in front of the table, not inside it.
	assert.Contains(t, textContent(body), "lost")
	td := findFirst(table, "td")
	require.NotNil(t, td)
	assert.Equal(t, "kept", textContent(td))
}

func TestParseRawTextScriptIsNotTokenized(t *testing.T) {
	doc, err := tinyhtml5.ParseString("<script>var x = 1 < 2;</script>")
	require.NoError(t, err)

	script := findFirst(doc, "script")
	require.NotNil(t, script)
	assert.Contains(t, textContent(script), "1 < 2")
}

func TestParseForeignSVGContent(t *testing.T) {
	doc, err := tinyhtml5.ParseString(`<svg><clippath id="x"></clippath></svg>`)
	require.NoError(t, err)

	svg := findFirst(doc, "svg")
	require.NotNil(t, svg)
	assert.Equal(t, domtree.SVGNamespace, svg.NamespaceURI)

	clip := findFirst(svg, "clipPath")
	require.NotNil(t, clip, "svg tag name casing must be restored by foreign content adjustment")
}

func TestParseFragmentDoesNotWrapInHTMLBody(t *testing.T) {
	frag, err := tinyhtml5.ParseFragmentString("<td>x</td><td>y</td>", "tr", domtree.HTMLNamespace)
	require.NoError(t, err)

	require.Equal(t, domtree.DocumentFragmentNode, frag.Type)
	var tds []*tinyhtml5.Node
	for _, c := range frag.Children {
		if c.LocalName == "td" {
			tds = append(tds, c)
		}
	}
	require.Len(t, tds, 2)
	assert.Equal(t, "x", textContent(tds[0]))
	assert.Equal(t, "y", textContent(tds[1]))
}

func TestParseTemplateChildrenAttachToContentFragment(t *testing.T) {
	doc, err := tinyhtml5.ParseString("<template><p>x</p></template>")
	require.NoError(t, err)

	tmpl := findFirst(doc, "template")
	require.NotNil(t, tmpl)
	assert.Empty(t, tmpl.Children, "a template element must have no element children of its own")

	require.NotNil(t, tmpl.Content)
	require.Equal(t, domtree.DocumentFragmentNode, tmpl.Content.Type)
	p := findFirst(tmpl.Content, "p")
	require.NotNil(t, p, "the <p> must live inside the template's content fragment")
	assert.Equal(t, "x", textContent(p))
}

func TestParseRecordsErrorsWithoutFailing(t *testing.T) {
	errs := perr.NewSink(nil)
	doc, err := tinyhtml5.ParseString("<p></div></p>", tinyhtml5.WithErrorSink(errs))
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.NotEmpty(t, errs.Errors())
}

func TestParseWithHTMLNamespacingFalseOmitsNamespace(t *testing.T) {
	doc, err := tinyhtml5.ParseString("<p>hi</p>", tinyhtml5.WithHTMLNamespacing(false))
	require.NoError(t, err)

	p := findFirst(doc, "p")
	require.NotNil(t, p)
	assert.Equal(t, domtree.Namespace(""), p.NamespaceURI)

	html := findFirst(doc, "html")
	require.NotNil(t, html)
	assert.Equal(t, domtree.Namespace(""), html.NamespaceURI)
}

func TestParseRecordsErrorsInNonDecreasingPosition(t *testing.T) {
	errs := perr.NewSink(nil)
	// "\x00" triggers a tokenizer-level error near the start of the
	// input; the unclosed "<div>" and the unmatched "</p>" trigger tree-constructor-level
	// errors later. The tree constructor shares the tokenizer's
	// scanner position rather than always recording (0, 0), so later
	// errors must never report an earlier position than an error
	// already recorded before them.
	_, err := tinyhtml5.Parse(strings.NewReader("<p>\x00</p><div></p>"), tinyhtml5.WithErrorSink(errs))
	require.NoError(t, err)

	recorded := errs.Errors()
	require.NotEmpty(t, recorded)
	for i := 1; i < len(recorded); i++ {
		prev, cur := recorded[i-1], recorded[i]
		if cur.Line != prev.Line {
			assert.GreaterOrEqual(t, cur.Line, prev.Line)
			continue
		}
		assert.GreaterOrEqual(t, cur.Column, prev.Column)
	}
}
