package treeconstructor

import (
	"github.com/CourtBouillon/tinyhtml5/perr"
	"github.com/CourtBouillon/tinyhtml5/token"
)

func (c *Constructor) inSelectMode(tok token.Token) {
	switch tok.Type {
	case token.Character:
		if containsNull(tok.Data) {
			c.err(perr.UnexpectedNullCharacter, "null character in select")
			tok.Data = stripNull(tok.Data)
			if tok.Data == "" {
				return
			}
		}
		c.insertCharacter(tok.Data)
		return
	case token.Comment:
		c.insertComment(tok, nil)
		return
	case token.DocType:
		c.err(perr.UnexpectedDoctype, "doctype in select")
		return
	case token.EOF:
		c.inBodyMode(tok)
		return
	case token.StartTag:
		switch tok.Name {
		case "html":
			c.inBodyMode(tok)
			return
		case "option":
			if cur := c.currentNode(); cur != nil && cur.LocalName == "option" {
				c.open.Pop()
			}
			c.insertHTMLElementForToken(tok)
			return
		case "optgroup":
			if cur := c.currentNode(); cur != nil && cur.LocalName == "option" {
				c.open.Pop()
			}
			if cur := c.currentNode(); cur != nil && cur.LocalName == "optgroup" {
				c.open.Pop()
			}
			c.insertHTMLElementForToken(tok)
			return
		case "select":
			c.err(perr.UnexpectedStartTag, "nested select")
			if !c.open.InSelectScope("select") {
				return
			}
			c.open.PopUntilTagIn("select")
			c.switchTo(c.resetInsertionModeAppropriately())
			return
		case "input", "keygen", "textarea":
			c.err(perr.UnexpectedStartTag, "unexpected start tag in select")
			if !c.open.InSelectScope("select") {
				return
			}
			c.open.PopUntilTagIn("select")
			c.reprocessAs(c.resetInsertionModeAppropriately(), tok)
			return
		case "script", "template":
			c.inHeadMode(tok)
			return
		}
	case token.EndTag:
		switch tok.Name {
		case "optgroup":
			if cur := c.currentNode(); cur != nil && cur.LocalName == "option" {
				if c.open.NodeAt(1) != nil && c.open.NodeAt(1).LocalName == "optgroup" {
					c.open.Pop()
				}
			}
			if cur := c.currentNode(); cur != nil && cur.LocalName == "optgroup" {
				c.open.Pop()
			} else {
				c.err(perr.UnexpectedEndTag, "unmatched optgroup end tag")
			}
			return
		case "option":
			if cur := c.currentNode(); cur != nil && cur.LocalName == "option" {
				c.open.Pop()
			} else {
				c.err(perr.UnexpectedEndTag, "unmatched option end tag")
			}
			return
		case "select":
			if !c.open.InSelectScope("select") {
				c.err(perr.UnexpectedEndTag, "unmatched select end tag")
				return
			}
			c.open.PopUntilTagIn("select")
			c.switchTo(c.resetInsertionModeAppropriately())
			return
		case "template":
			c.inHeadMode(tok)
			return
		}
	}
	c.err(perr.UnexpectedStartTag, "unexpected token in select")
}

func (c *Constructor) inSelectInTableMode(tok token.Token) {
	switch tok.Type {
	case token.StartTag:
		switch tok.Name {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			c.err(perr.UnexpectedStartTag, "table element in select")
			c.open.PopUntilTagIn("select")
			c.reprocessAs(c.resetInsertionModeAppropriately(), tok)
			return
		}
	case token.EndTag:
		switch tok.Name {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			c.err(perr.UnexpectedEndTag, "table element end tag in select")
			if !c.open.InTableScope(tok.Name) {
				return
			}
			c.open.PopUntilTagIn("select")
			c.reprocessAs(c.resetInsertionModeAppropriately(), tok)
			return
		}
	}
	c.inSelectMode(tok)
}

func (c *Constructor) inTemplateMode(tok token.Token) {
	switch tok.Type {
	case token.Character, token.Comment, token.DocType:
		c.inBodyMode(tok)
		return
	case token.StartTag:
		switch tok.Name {
		case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
			c.inHeadMode(tok)
			return
		case "caption", "colgroup", "tbody", "tfoot", "thead":
			c.popTemplateAndSwitch(InTableMode)
			c.reprocessAs(InTableMode, tok)
			return
		case "col":
			c.popTemplateAndSwitch(InColumnGroupMode)
			c.reprocessAs(InColumnGroupMode, tok)
			return
		case "tr":
			c.popTemplateAndSwitch(InTableBodyMode)
			c.reprocessAs(InTableBodyMode, tok)
			return
		case "td", "th":
			c.popTemplateAndSwitch(InRowMode)
			c.reprocessAs(InRowMode, tok)
			return
		default:
			c.popTemplateAndSwitch(InBodyMode)
			c.reprocessAs(InBodyMode, tok)
			return
		}
	case token.EndTag:
		if tok.Name == "template" {
			c.inHeadMode(tok)
			return
		}
		c.err(perr.UnexpectedEndTag, "unexpected end tag in template")
		return
	case token.EOF:
		if !c.open.ContainsTag("template") {
			c.stopped = true
			return
		}
		c.err(perr.UnclosedElements, "unclosed template at end of file")
		c.generateAllImpliedEndTagsThoroughly()
		c.open.PopUntilTagIn("template")
		c.afe.ClearToLastMarker()
		c.templateModes = c.templateModes[:len(c.templateModes)-1]
		c.reprocessAs(c.resetInsertionModeAppropriately(), tok)
		return
	}
}

// popTemplateAndSwitch swaps the top template insertion mode for m
// without touching the stack of open elements, per the several "in
// template" branches that behave as if their target mode's rules ran.
func (c *Constructor) popTemplateAndSwitch(m InsertionMode) {
	if len(c.templateModes) > 0 {
		c.templateModes[len(c.templateModes)-1] = m
	}
	c.mode = m
}
