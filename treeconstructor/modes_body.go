package treeconstructor

import (
	"github.com/CourtBouillon/tinyhtml5/domtree"
	"github.com/CourtBouillon/tinyhtml5/perr"
	"github.com/CourtBouillon/tinyhtml5/token"
	"github.com/CourtBouillon/tinyhtml5/tokenizer"
)

var headingTags = map[string]bool{"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true}

func isHeading(name string) bool { return headingTags[name] }

// addAttributesIfAbsent implements the "for each attribute...if the
// element does not already have one" merge used for a stray <html> or
// <body> start tag.
func addAttributesIfAbsent(el *domtree.Node, attrs []token.Attribute) {
	for _, a := range attrs {
		el.SetAttrIfAbsent(a.Name, a.Value)
	}
}

func (c *Constructor) inBodyMode(tok token.Token) {
	switch tok.Type {
	case token.Character:
		tok.Data = c.dropLeadingLFIfPending(tok.Data)
		if tok.Data == "" {
			return
		}
		if containsNull(tok.Data) {
			tok.Data = stripNull(tok.Data)
			if tok.Data == "" {
				return
			}
		}
		c.reconstructActiveFormattingElements()
		c.insertCharacter(tok.Data)
		if !isAllWhitespace(tok.Data) {
			c.framesetOK = false
		}
		return
	case token.Comment:
		c.insertComment(tok, nil)
		return
	case token.DocType:
		c.err(perr.UnexpectedDoctype, "doctype in body")
		return
	case token.EOF:
		if len(c.templateModes) > 0 {
			c.inTemplateMode(tok)
			return
		}
		c.checkUnclosedAtEOF()
		c.stopped = true
		return
	case token.StartTag:
		c.inBodyStartTag(tok)
		return
	case token.EndTag:
		c.inBodyEndTag(tok)
		return
	}
}

func containsNull(s string) bool {
	for _, r := range s {
		if r == 0 {
			return true
		}
	}
	return false
}

func stripNull(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r != 0 {
			out = append(out, r)
		}
	}
	return string(out)
}

func (c *Constructor) checkUnclosedAtEOF() {
	for i := 0; i < c.open.Len(); i++ {
		n := c.open.NodeAt(i)
		switch n.LocalName {
		case "dd", "dt", "li", "optgroup", "option", "p", "rb", "rp", "rt", "rtc",
			"tbody", "td", "tfoot", "th", "thead", "tr", "body", "html":
		default:
			c.err(perr.UnclosedElements, "unclosed elements at end of file")
			return
		}
	}
}

func (c *Constructor) inBodyStartTag(tok token.Token) {
	switch tok.Name {
	case "html":
		if c.open.ContainsTag("template") {
			return
		}
		if root := rootHTML(&c.open); root != nil {
			addAttributesIfAbsent(root, tok.Attributes)
		}
		return
	case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
		c.inHeadMode(tok)
		return
	case "body":
		if c.open.Len() >= 2 {
			second := c.open.NodeAt(c.open.Len() - 2)
			if second != nil && second.LocalName == "body" && !c.open.ContainsTag("template") {
				c.framesetOK = false
				addAttributesIfAbsent(second, tok.Attributes)
			}
		}
		return
	case "frameset":
		if !c.framesetOK || c.open.Len() < 2 {
			return
		}
		body := c.open.NodeAt(c.open.Len() - 2)
		if body == nil || body.LocalName != "body" {
			return
		}
		if body.Parent != nil {
			body.Parent.RemoveChild(body)
		}
		for c.open.Len() > 1 {
			c.open.Pop()
		}
		c.insertHTMLElementForToken(tok)
		c.switchTo(InFramesetMode)
		return
	case "address", "article", "aside", "blockquote", "center", "details", "dialog",
		"dir", "div", "dl", "fieldset", "figcaption", "figure", "footer", "header",
		"hgroup", "main", "menu", "nav", "ol", "p", "section", "summary", "ul":
		if c.open.InButtonScope("p") {
			c.closePElement()
		}
		c.insertHTMLElementForToken(tok)
		return
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if c.open.InButtonScope("p") {
			c.closePElement()
		}
		if cur := c.currentNode(); cur != nil && isHeading(cur.LocalName) {
			c.err(perr.UnclosedElements, "nested heading")
			c.open.Pop()
		}
		c.insertHTMLElementForToken(tok)
		return
	case "pre", "listing":
		if c.open.InButtonScope("p") {
			c.closePElement()
		}
		c.insertHTMLElementForToken(tok)
		c.discardNextLF = true
		c.framesetOK = false
		return
	case "form":
		if c.formElement != nil && !c.open.ContainsTag("template") {
			c.err(perr.UnexpectedStartTag, "nested form")
			return
		}
		if c.open.InButtonScope("p") {
			c.closePElement()
		}
		el := c.insertHTMLElementForToken(tok)
		if !c.open.ContainsTag("template") {
			c.formElement = el
		}
		return
	case "li":
		c.framesetOK = false
		for i := c.open.Len() - 1; i >= 0; i-- {
			n := c.open.NodeAt(c.open.Len() - 1 - i)
			if n.LocalName == "li" {
				c.generateImpliedEndTags("li")
				c.open.PopUntilTagIn("li")
				break
			}
			if isSpecial(n) && n.LocalName != "address" && n.LocalName != "div" && n.LocalName != "p" {
				break
			}
		}
		if c.open.InButtonScope("p") {
			c.closePElement()
		}
		c.insertHTMLElementForToken(tok)
		return
	case "dd", "dt":
		c.framesetOK = false
		for i := c.open.Len() - 1; i >= 0; i-- {
			n := c.open.NodeAt(c.open.Len() - 1 - i)
			if n.LocalName == "dd" || n.LocalName == "dt" {
				c.generateImpliedEndTags(n.LocalName)
				c.open.PopUntilTagIn(n.LocalName)
				break
			}
			if isSpecial(n) && n.LocalName != "address" && n.LocalName != "div" && n.LocalName != "p" {
				break
			}
		}
		if c.open.InButtonScope("p") {
			c.closePElement()
		}
		c.insertHTMLElementForToken(tok)
		return
	case "plaintext":
		if c.open.InButtonScope("p") {
			c.closePElement()
		}
		c.insertHTMLElementForToken(tok)
		c.src.SetState(tokenizer.PLAINTextState)
		return
	case "button":
		if c.open.InScope("button") {
			c.err(perr.UnclosedElements, "nested button")
			c.generateImpliedEndTags("")
			c.open.PopUntilTagIn("button")
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(tok)
		c.framesetOK = false
		return
	case "a":
		if items := c.afe.Items(); len(items) > 0 {
			for i := len(items) - 1; i >= 0; i-- {
				if items[i] == domtree.ScopeMarker {
					break
				}
				if items[i].LocalName == "a" {
					existing := items[i]
					c.adoptionAgencyAlgorithm(token.Token{Type: token.EndTag, Name: "a"})
					c.afe.Remove(existing)
					c.open.Remove(existing)
					break
				}
			}
		}
		c.reconstructActiveFormattingElements()
		el := c.insertHTMLElementForToken(tok)
		c.afe.Push(el)
		return
	case "b", "big", "code", "em", "font", "i", "s", "small", "strike", "strong", "tt", "u":
		c.reconstructActiveFormattingElements()
		el := c.insertHTMLElementForToken(tok)
		c.afe.Push(el)
		return
	case "nobr":
		c.reconstructActiveFormattingElements()
		if c.open.InScope("nobr") {
			c.err(perr.UnclosedElements, "nested nobr")
			c.adoptionAgencyAlgorithm(token.Token{Type: token.EndTag, Name: "nobr"})
			c.reconstructActiveFormattingElements()
		}
		el := c.insertHTMLElementForToken(tok)
		c.afe.Push(el)
		return
	case "applet", "marquee", "object":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(tok)
		c.afe.PushMarker()
		c.framesetOK = false
		return
	case "table":
		if c.document.QuirksMode != domtree.Quirks && c.open.InButtonScope("p") {
			c.closePElement()
		}
		c.insertHTMLElementForToken(tok)
		c.framesetOK = false
		c.switchTo(InTableMode)
		return
	case "area", "br", "embed", "img", "keygen", "wbr":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(tok)
		c.open.Pop()
		if tok.SelfClosing {
			c.src.AcknowledgeSelfClosing()
		}
		c.framesetOK = false
		return
	case "input":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(tok)
		c.open.Pop()
		if tok.SelfClosing {
			c.src.AcknowledgeSelfClosing()
		}
		if typ, ok := tok.Attr("type"); !ok || !equalASCIIFold(typ, "hidden") {
			c.framesetOK = false
		}
		return
	case "param", "source", "track":
		c.insertHTMLElementForToken(tok)
		c.open.Pop()
		if tok.SelfClosing {
			c.src.AcknowledgeSelfClosing()
		}
		return
	case "hr":
		if c.open.InButtonScope("p") {
			c.closePElement()
		}
		c.insertHTMLElementForToken(tok)
		c.open.Pop()
		if tok.SelfClosing {
			c.src.AcknowledgeSelfClosing()
		}
		c.framesetOK = false
		return
	case "image":
		tok.Name = "img"
		c.inBodyStartTag(tok)
		return
	case "textarea":
		c.insertHTMLElementForToken(tok)
		// A leading newline immediately following <textarea> is
		// ignored; discardNextLF strips it off the first character
		// token textMode sees.
		c.discardNextLF = true
		c.src.SetState(tokenizer.RCDataState)
		c.src.SetLastStartTagName("textarea")
		c.originalMode = c.mode
		c.framesetOK = false
		c.switchTo(TextMode)
		return
	case "xmp":
		if c.open.InButtonScope("p") {
			c.closePElement()
		}
		c.reconstructActiveFormattingElements()
		c.framesetOK = false
		c.followGenericRawTextParsing(tok)
		return
	case "iframe":
		c.framesetOK = false
		c.followGenericRawTextParsing(tok)
		return
	case "noembed":
		c.followGenericRawTextParsing(tok)
		return
	case "select":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(tok)
		c.framesetOK = false
		switch c.mode {
		case InTableMode, InCaptionMode, InTableBodyMode, InRowMode, InCellMode:
			c.switchTo(InSelectInTableMode)
		default:
			c.switchTo(InSelectMode)
		}
		return
	case "optgroup", "option":
		if cur := c.currentNode(); cur != nil && cur.LocalName == "option" {
			c.open.Pop()
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(tok)
		return
	case "rb", "rtc":
		if c.open.InScope("ruby") {
			c.generateImpliedEndTags("")
		}
		c.insertHTMLElementForToken(tok)
		return
	case "rp", "rt":
		if c.open.InScope("ruby") {
			c.generateImpliedEndTags("rtc")
		}
		c.insertHTMLElementForToken(tok)
		return
	case "math":
		c.reconstructActiveFormattingElements()
		c.insertForeignAdjusted(tok, domtree.MathMLNamespace, adjustMathMLAttributes)
		return
	case "svg":
		c.reconstructActiveFormattingElements()
		c.insertForeignAdjusted(tok, domtree.SVGNamespace, nil)
		return
	case "caption", "col", "colgroup", "frame", "head", "tbody", "td", "tfoot", "th", "thead", "tr":
		c.err(perr.UnexpectedStartTag, "unexpected start tag ignored in body")
		return
	}

	// "any other start tag": reconstruct and insert.
	c.reconstructActiveFormattingElements()
	c.insertHTMLElementForToken(tok)
}

func rootHTML(open *domtree.OpenElements) *domtree.Node { return open.NodeAt(open.Len() - 1) }

func equalASCIIFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// mathMLAttributeAdjustments fixes casing lost by the tokenizer for
// MathML's one camel-cased attribute, definitionURL.
var mathMLAttributeAdjustments = map[string]string{
	"definitionurl": "definitionURL",
}

func adjustMathMLAttributes(attrs []token.Attribute) []token.Attribute {
	out := make([]token.Attribute, len(attrs))
	for i, a := range attrs {
		if adj, ok := mathMLAttributeAdjustments[a.Name]; ok {
			out[i] = token.Attribute{Name: adj, Value: a.Value}
			continue
		}
		out[i] = a
	}
	return out
}

func (c *Constructor) insertForeignAdjusted(tok token.Token, ns domtree.Namespace, adjust func([]token.Attribute) []token.Attribute) {
	if adjust != nil {
		tok.Attributes = adjust(tok.Attributes)
	}
	c.insertForeignElementForToken(tok, ns)
	if tok.SelfClosing {
		c.open.Pop()
	}
}

func (c *Constructor) inBodyEndTag(tok token.Token) {
	switch tok.Name {
	case "template":
		c.inHeadMode(tok)
		return
	case "body":
		if !c.open.InScope("body") {
			c.err(perr.UnexpectedEndTag, "unmatched body end tag")
			return
		}
		c.checkUnclosedAtEOF()
		c.switchTo(AfterBodyMode)
		return
	case "html":
		if !c.open.InScope("body") {
			c.err(perr.UnexpectedEndTag, "unmatched html end tag")
			return
		}
		c.reprocessAs(AfterBodyMode, tok)
		return
	case "address", "article", "aside", "blockquote", "button", "center", "details",
		"dialog", "dir", "div", "dl", "fieldset", "figcaption", "figure", "footer",
		"header", "hgroup", "listing", "main", "menu", "nav", "ol", "pre", "section",
		"summary", "ul":
		if !c.open.InScope(tok.Name) {
			c.err(perr.UnexpectedEndTag, "unmatched end tag")
			return
		}
		c.generateImpliedEndTags("")
		if cur := c.currentNode(); cur == nil || cur.LocalName != tok.Name {
			c.err(perr.UnclosedElements, "unclosed elements")
		}
		c.open.PopUntilTagIn(tok.Name)
		return
	case "form":
		if !c.open.ContainsTag("template") {
			node := c.formElement
			c.formElement = nil
			if node == nil || !c.open.InScope("form") {
				c.err(perr.UnexpectedEndTag, "unmatched form end tag")
				return
			}
			c.generateImpliedEndTags("")
			if cur := c.currentNode(); cur != node {
				c.err(perr.UnclosedElements, "unclosed elements")
			}
			c.open.Remove(node)
			return
		}
		if !c.open.InScope("form") {
			c.err(perr.UnexpectedEndTag, "unmatched form end tag")
			return
		}
		c.generateImpliedEndTags("")
		if cur := c.currentNode(); cur == nil || cur.LocalName != "form" {
			c.err(perr.UnclosedElements, "unclosed elements")
		}
		c.open.PopUntilTagIn("form")
		return
	case "p":
		if !c.open.InButtonScope("p") {
			c.err(perr.UnexpectedEndTag, "unmatched p end tag")
			c.insertHTMLElementNamed("p")
		}
		c.closePElement()
		return
	case "li":
		if !c.open.InListItemScope("li") {
			c.err(perr.UnexpectedEndTag, "unmatched li end tag")
			return
		}
		c.generateImpliedEndTags("li")
		if cur := c.currentNode(); cur == nil || cur.LocalName != "li" {
			c.err(perr.UnclosedElements, "unclosed elements")
		}
		c.open.PopUntilTagIn("li")
		return
	case "dd", "dt":
		if !c.open.InScope(tok.Name) {
			c.err(perr.UnexpectedEndTag, "unmatched end tag")
			return
		}
		c.generateImpliedEndTags(tok.Name)
		if cur := c.currentNode(); cur == nil || cur.LocalName != tok.Name {
			c.err(perr.UnclosedElements, "unclosed elements")
		}
		c.open.PopUntilTagIn(tok.Name)
		return
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if !c.open.InScope("h1") && !c.open.InScope("h2") && !c.open.InScope("h3") &&
			!c.open.InScope("h4") && !c.open.InScope("h5") && !c.open.InScope("h6") {
			c.err(perr.UnexpectedEndTag, "unmatched heading end tag")
			return
		}
		c.generateImpliedEndTags("")
		if cur := c.currentNode(); cur == nil || cur.LocalName != tok.Name {
			c.err(perr.UnclosedElements, "unclosed elements")
		}
		c.open.PopUntilTagIn("h1", "h2", "h3", "h4", "h5", "h6")
		return
	case "a", "b", "big", "code", "em", "font", "i", "nobr", "s", "small", "strike", "strong", "tt", "u":
		c.adoptionAgencyAlgorithm(tok)
		return
	case "applet", "marquee", "object":
		if !c.open.InScope(tok.Name) {
			c.err(perr.UnexpectedEndTag, "unmatched end tag")
			return
		}
		c.generateImpliedEndTags("")
		if cur := c.currentNode(); cur == nil || cur.LocalName != tok.Name {
			c.err(perr.UnclosedElements, "unclosed elements")
		}
		c.open.PopUntilTagIn(tok.Name)
		c.afe.ClearToLastMarker()
		return
	case "br":
		c.err(perr.UnexpectedEndTag, "end tag br treated as start tag")
		c.inBodyStartTag(token.Token{Type: token.StartTag, Name: "br"})
		return
	}
	c.inBodyEndTagOther(tok)
}

// inBodyEndTagOther is the "any other end tag" branch, also used by the
// adoption agency algorithm when it finds no matching formatting
// element.
func (c *Constructor) inBodyEndTagOther(tok token.Token) {
	for i := c.open.Len() - 1; i >= 0; i-- {
		n := c.open.NodeAt(c.open.Len() - 1 - i)
		if n.LocalName == tok.Name {
			c.generateImpliedEndTags(tok.Name)
			if cur := c.currentNode(); cur != n {
				c.err(perr.UnclosedElements, "unclosed elements")
			}
			for c.currentNode() != n {
				c.open.Pop()
			}
			c.open.Pop()
			return
		}
		if isSpecial(n) {
			c.err(perr.UnexpectedEndTag, "unmatched end tag blocked by special element")
			return
		}
	}
}

func (c *Constructor) textMode(tok token.Token) {
	switch tok.Type {
	case token.Character:
		tok.Data = c.dropLeadingLFIfPending(tok.Data)
		if tok.Data == "" {
			return
		}
		c.insertCharacter(tok.Data)
		return
	case token.EOF:
		c.err(perr.UnexpectedEndOfFile, "eof in text")
		c.open.Pop()
		c.switchTo(c.originalMode)
		c.reprocess = true
		c.dispatchInsertionMode(tok)
		c.reprocess = false
		return
	case token.EndTag:
		if tok.Name == "script" {
			c.open.Pop()
			c.switchTo(c.originalMode)
			return
		}
		c.open.Pop()
		c.switchTo(c.originalMode)
		return
	}
}
