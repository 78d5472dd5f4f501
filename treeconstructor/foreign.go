package treeconstructor

import (
	"github.com/CourtBouillon/tinyhtml5/domtree"
	"github.com/CourtBouillon/tinyhtml5/perr"
	"github.com/CourtBouillon/tinyhtml5/token"
)

// useForeignContentRules implements the tree construction dispatcher's
// decision between "rules for foreign content" and the current
// insertion mode's HTML rules.
func (c *Constructor) useForeignContentRules(tok token.Token) bool {
	if c.open.Len() == 0 {
		return false
	}
	acn := c.adjustedCurrentNode()
	if acn == nil || acn.NamespaceURI == c.htmlNS() {
		return false
	}
	if tok.Type == token.EOF {
		return false
	}
	if domtree.IsMathMLTextIntegrationPoint(acn) {
		if tok.Type == token.Character {
			return false
		}
		if tok.Type == token.StartTag && tok.Name != "mglyph" && tok.Name != "malignmark" {
			return false
		}
	}
	if acn.NamespaceURI == domtree.MathMLNamespace && acn.LocalName == "annotation-xml" && tok.Type == token.StartTag && tok.Name == "svg" {
		return false
	}
	if domtree.IsHTMLIntegrationPoint(acn) && (tok.Type == token.StartTag || tok.Type == token.Character) {
		return false
	}
	return true
}

var foreignBreakoutTags = map[string]bool{
	"b": true, "big": true, "blockquote": true, "body": true, "br": true, "center": true,
	"code": true, "dd": true, "div": true, "dl": true, "dt": true, "em": true,
	"embed": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"head": true, "hr": true, "i": true, "img": true, "li": true, "listing": true,
	"menu": true, "meta": true, "nobr": true, "ol": true, "p": true, "pre": true,
	"ruby": true, "s": true, "small": true, "span": true, "strong": true, "strike": true,
	"sub": true, "sup": true, "table": true, "tt": true, "u": true, "ul": true, "var": true,
}

// foreignContent implements "rules for parsing tokens in foreign
// content", handling MathML/SVG breakout and delegating everything
// else to createElementForToken's attribute adjustment.
func (c *Constructor) foreignContent(tok token.Token) {
	switch tok.Type {
	case token.Character:
		if containsNull(tok.Data) {
			c.err(perr.UnexpectedNullCharacter, "null character in foreign content")
			tok.Data = replaceNull(tok.Data)
		}
		c.insertCharacter(tok.Data)
		if !isAllWhitespace(tok.Data) {
			c.framesetOK = false
		}
		return
	case token.Comment:
		c.insertComment(tok, nil)
		return
	case token.DocType:
		c.err(perr.UnexpectedDoctype, "doctype in foreign content")
		return
	case token.StartTag:
		if tok.Name == "font" {
			_, hasColor := tok.Attr("color")
			_, hasFace := tok.Attr("face")
			_, hasSize := tok.Attr("size")
			if !hasColor && !hasFace && !hasSize {
				c.foreignBreakout(tok)
				return
			}
		}
		if foreignBreakoutTags[tok.Name] {
			c.foreignBreakout(tok)
			return
		}
		c.insertForeignStartTag(tok)
		return
	case token.EndTag:
		c.foreignEndTag(tok)
		return
	}
}

func replaceNull(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r == 0 {
			out[i] = '�'
		}
	}
	return string(out)
}

// foreignBreakout implements the standard's "any other start tag"
// breakout list: pop foreign elements off the stack until back in HTML
// content (or an HTML/MathML text integration point), then reprocess
// with the current (now HTML) insertion mode.
func (c *Constructor) foreignBreakout(tok token.Token) {
	c.err(perr.UnexpectedStartTag, "html breakout in foreign content")
	for {
		cur := c.currentNode()
		if cur == nil {
			break
		}
		if cur.NamespaceURI == c.htmlNS() || domtree.IsMathMLTextIntegrationPoint(cur) || domtree.IsHTMLIntegrationPoint(cur) {
			break
		}
		c.open.Pop()
	}
	c.reprocess = true
	c.dispatchInsertionMode(tok)
	c.reprocess = false
}

func (c *Constructor) insertForeignStartTag(tok token.Token) {
	ns := c.adjustedCurrentNode().NamespaceURI
	c.insertForeignElementForToken(tok, ns)
	if tok.SelfClosing {
		c.open.Pop()
		c.src.AcknowledgeSelfClosing()
	}
}

func (c *Constructor) foreignEndTag(tok token.Token) {
	if tok.Name == "script" && c.currentNode() != nil && c.currentNode().LocalName == "script" &&
		c.currentNode().NamespaceURI == domtree.SVGNamespace {
		c.open.Pop()
		return
	}

	name := tok.Name
	for i := 0; i < c.open.Len(); i++ {
		n := c.open.NodeAt(i)
		if equalASCIIFold(n.LocalName, name) {
			for j := 0; j <= i; j++ {
				c.open.Pop()
			}
			return
		}
		if n.NamespaceURI == c.htmlNS() {
			c.dispatchInsertionMode(tok)
			return
		}
	}
}
