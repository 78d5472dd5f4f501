package treeconstructor

import (
	"github.com/CourtBouillon/tinyhtml5/domtree"
	"github.com/CourtBouillon/tinyhtml5/perr"
	"github.com/CourtBouillon/tinyhtml5/token"
	"github.com/CourtBouillon/tinyhtml5/tokenizer"
)

func isWhitespaceChar(r rune) bool {
	switch r {
	case '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

// splitLeadingWhitespace splits data into its leading run of ASCII
// whitespace and the remainder, several insertion modes need to treat
// the two runs differently.
func splitLeadingWhitespace(data string) (ws, rest string) {
	i := 0
	for i < len(data) && isWhitespaceChar(rune(data[i])) {
		i++
	}
	return data[:i], data[i:]
}

func isAllWhitespace(data string) bool {
	for _, r := range data {
		if !isWhitespaceChar(r) {
			return false
		}
	}
	return true
}

// isConformingDoctype reports whether a doctype is exactly
// "<!DOCTYPE html>", or names no public identifier and a system
// identifier of "about:legacy-compat", the only two forms the standard
// considers conforming.
func isConformingDoctype(tok token.Token) bool {
	if tok.Name != "html" || tok.HasPublicID {
		return false
	}
	if !tok.HasSystemID {
		return true
	}
	return tok.SystemIdentifier == "about:legacy-compat"
}

func (c *Constructor) initialMode(tok token.Token) {
	switch tok.Type {
	case token.Character:
		ws, rest := splitLeadingWhitespace(tok.Data)
		_ = ws
		if rest == "" {
			return
		}
		tok.Data = rest
		c.reprocessAs(BeforeHTMLMode, tok)
		return
	case token.Comment:
		c.insertComment(tok, c.document)
		return
	case token.DocType:
		if !isConformingDoctype(tok) {
			c.err(perr.NonConformingDoctype, "non-conforming doctype")
		}
		dt := c.adapter.CreateDocumentType(tok.Name, tok.PublicIdentifier, tok.SystemIdentifier, tok.HasPublicID, tok.HasSystemID)
		c.adapter.AppendChild(c.document, dt)
		if isForceQuirks(tok.Name, tok.PublicIdentifier, tok.SystemIdentifier, tok.HasPublicID, tok.HasSystemID, tok.ForceQuirks) {
			c.document.QuirksMode = domtree.Quirks
		} else if isLimitedQuirks(tok.PublicIdentifier, tok.SystemIdentifier, tok.HasSystemID) {
			c.document.QuirksMode = domtree.LimitedQuirks
		}
		c.switchTo(BeforeHTMLMode)
		return
	}
	c.err(perr.MissingDoctype, "missing doctype")
	c.reprocessAs(BeforeHTMLMode, tok)
}

// reprocessAs switches mode and immediately reprocesses tok, mirroring
// the "switch the insertion mode... and reprocess" instructions used
// throughout the standard.
func (c *Constructor) reprocessAs(m InsertionMode, tok token.Token) {
	c.switchTo(m)
	c.dispatchInsertionMode(tok)
}

func (c *Constructor) beforeHTMLMode(tok token.Token) {
	switch tok.Type {
	case token.DocType:
		return
	case token.Comment:
		c.insertComment(tok, c.document)
		return
	case token.Character:
		ws, rest := splitLeadingWhitespace(tok.Data)
		_ = ws
		if rest == "" {
			return
		}
		tok.Data = rest
	case token.StartTag:
		if tok.Name == "html" {
			el := c.createElementForToken(tok, c.htmlNS())
			c.adapter.AppendChild(c.document, el)
			c.open.Push(el)
			c.switchTo(BeforeHeadMode)
			return
		}
	case token.EndTag:
		switch tok.Name {
		case "head", "body", "html", "br":
		default:
			return
		}
	}
	el := domtree.NewElement(c.htmlNS(), "html")
	c.adapter.AppendChild(c.document, el)
	c.open.Push(el)
	c.reprocessAs(BeforeHeadMode, tok)
}

func (c *Constructor) beforeHeadMode(tok token.Token) {
	switch tok.Type {
	case token.Character:
		ws, rest := splitLeadingWhitespace(tok.Data)
		_ = ws
		if rest == "" {
			return
		}
		tok.Data = rest
	case token.Comment:
		c.insertComment(tok, nil)
		return
	case token.DocType:
		c.err(perr.UnexpectedDoctype, "doctype in before head")
		return
	case token.StartTag:
		switch tok.Name {
		case "html":
			c.inBodyMode(tok)
			return
		case "head":
			c.headElement = c.insertHTMLElementForToken(tok)
			c.switchTo(InHeadMode)
			return
		}
	case token.EndTag:
		switch tok.Name {
		case "head", "body", "html", "br":
		default:
			c.err(perr.UnexpectedEndTag, "unexpected end tag in before head")
			return
		}
	}
	c.headElement = c.insertHTMLElementNamed("head")
	c.reprocessAs(InHeadMode, tok)
}

func (c *Constructor) inHeadMode(tok token.Token) {
	switch tok.Type {
	case token.Character:
		ws, rest := splitLeadingWhitespace(tok.Data)
		if ws != "" {
			c.insertCharacter(ws)
		}
		if rest == "" {
			return
		}
		tok.Data = rest
	case token.Comment:
		c.insertComment(tok, nil)
		return
	case token.DocType:
		c.err(perr.UnexpectedDoctype, "doctype in head")
		return
	case token.StartTag:
		switch tok.Name {
		case "html":
			c.inBodyMode(tok)
			return
		case "base", "basefont", "bgsound", "link":
			c.insertHTMLElementForToken(tok)
			c.open.Pop()
			if tok.SelfClosing {
				c.src.AcknowledgeSelfClosing()
			}
			return
		case "meta":
			c.insertHTMLElementForToken(tok)
			c.open.Pop()
			if tok.SelfClosing {
				c.src.AcknowledgeSelfClosing()
			}
			return
		case "title":
			c.followGenericRCDataParsing(tok)
			return
		case "noscript":
			if c.scriptingFlag {
				c.followGenericRawTextParsing(tok)
				return
			}
			c.insertHTMLElementForToken(tok)
			c.switchTo(InHeadNoScriptMode)
			return
		case "noframes", "style":
			c.followGenericRawTextParsing(tok)
			return
		case "script":
			ip := c.appropriatePlaceForInsertion(nil)
			el := c.createElementForToken(tok, c.htmlNS())
			if ip.beforeSibling != nil {
				c.adapter.InsertBefore(ip.parent, el, ip.beforeSibling)
			} else {
				c.adapter.AppendChild(ip.parent, el)
			}
			c.open.Push(el)
			c.src.SetState(tokenizer.ScriptDataState)
			c.originalMode = c.mode
			c.switchTo(TextMode)
			return
		case "template":
			c.insertHTMLElementForToken(tok)
			c.afe.PushMarker()
			c.framesetOK = false
			c.switchTo(InTemplateMode)
			c.templateModes = append(c.templateModes, InTemplateMode)
			return
		case "head":
			c.err(perr.UnexpectedStartTag, "unexpected head start tag")
			return
		}
	case token.EndTag:
		switch tok.Name {
		case "head":
			c.open.Pop()
			c.switchTo(AfterHeadMode)
			return
		case "body", "html", "br":
		case "template":
			if !c.open.ContainsTag("template") {
				c.err(perr.UnexpectedEndTag, "unmatched template end tag")
				return
			}
			c.generateAllImpliedEndTagsThoroughly()
			if cur := c.currentNode(); cur == nil || cur.LocalName != "template" {
				c.err(perr.UnclosedElements, "unclosed template contents")
			}
			c.open.PopUntilTagIn("template")
			c.afe.ClearToLastMarker()
			c.templateModes = c.templateModes[:len(c.templateModes)-1]
			c.switchTo(c.resetInsertionModeAppropriately())
			return
		default:
			c.err(perr.UnexpectedEndTag, "unexpected end tag in head")
			return
		}
	}
	c.open.Pop()
	c.reprocessAs(AfterHeadMode, tok)
}

func (c *Constructor) followGenericRCDataParsing(tok token.Token) {
	c.insertHTMLElementForToken(tok)
	c.src.SetState(tokenizer.RCDataState)
	c.src.SetLastStartTagName(tok.Name)
	c.originalMode = c.mode
	c.switchTo(TextMode)
}

func (c *Constructor) followGenericRawTextParsing(tok token.Token) {
	c.insertHTMLElementForToken(tok)
	c.src.SetState(tokenizer.RawTextState)
	c.src.SetLastStartTagName(tok.Name)
	c.originalMode = c.mode
	c.switchTo(TextMode)
}

func (c *Constructor) inHeadNoScriptMode(tok token.Token) {
	switch tok.Type {
	case token.DocType:
		c.err(perr.UnexpectedDoctype, "doctype in head noscript")
		return
	case token.StartTag:
		switch tok.Name {
		case "html":
			c.inBodyMode(tok)
			return
		case "basefont", "bgsound", "link", "meta", "noframes", "style":
			c.inHeadMode(tok)
			return
		case "head", "noscript":
			c.err(perr.UnexpectedStartTag, "unexpected start tag in head noscript")
			return
		}
	case token.EndTag:
		switch tok.Name {
		case "noscript":
			c.open.Pop()
			c.switchTo(InHeadMode)
			return
		case "br":
		default:
			c.err(perr.UnexpectedEndTag, "unexpected end tag in head noscript")
			return
		}
	case token.Character:
		if isAllWhitespace(tok.Data) {
			c.inHeadMode(tok)
			return
		}
	case token.Comment:
		c.inHeadMode(tok)
		return
	}
	c.err(perr.UnclosedElements, "unclosed noscript")
	c.open.Pop()
	c.reprocessAs(InHeadMode, tok)
}

func (c *Constructor) afterHeadMode(tok token.Token) {
	switch tok.Type {
	case token.Character:
		ws, rest := splitLeadingWhitespace(tok.Data)
		if ws != "" {
			c.insertCharacter(ws)
		}
		if rest == "" {
			return
		}
		tok.Data = rest
	case token.Comment:
		c.insertComment(tok, nil)
		return
	case token.DocType:
		c.err(perr.UnexpectedDoctype, "doctype after head")
		return
	case token.StartTag:
		switch tok.Name {
		case "html":
			c.inBodyMode(tok)
			return
		case "body":
			c.insertHTMLElementForToken(tok)
			c.framesetOK = false
			c.switchTo(InBodyMode)
			return
		case "frameset":
			c.insertHTMLElementForToken(tok)
			c.switchTo(InFramesetMode)
			return
		case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
			c.err(perr.StrayStartTagInHead, "stray head element after head")
			c.open.Push(c.headElement)
			c.inHeadMode(tok)
			c.open.Remove(c.headElement)
			return
		case "head":
			c.err(perr.UnexpectedStartTag, "unexpected head start tag")
			return
		}
	case token.EndTag:
		switch tok.Name {
		case "template":
			c.inHeadMode(tok)
			return
		case "body", "html", "br":
		default:
			c.err(perr.UnexpectedEndTag, "unexpected end tag after head")
			return
		}
	}
	c.insertHTMLElementNamed("body")
	c.reprocessAs(InBodyMode, tok)
}
