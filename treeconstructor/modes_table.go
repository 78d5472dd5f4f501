package treeconstructor

import (
	"strings"

	"github.com/CourtBouillon/tinyhtml5/perr"
	"github.com/CourtBouillon/tinyhtml5/token"
)

func (c *Constructor) clearStackBackToTable() {
	for {
		cur := c.currentNode()
		if cur == nil {
			return
		}
		switch cur.LocalName {
		case "table", "template", "html":
			return
		}
		c.open.Pop()
	}
}

func (c *Constructor) clearStackBackToTableBody() {
	for {
		cur := c.currentNode()
		if cur == nil {
			return
		}
		switch cur.LocalName {
		case "tbody", "tfoot", "thead", "template", "html":
			return
		}
		c.open.Pop()
	}
}

func (c *Constructor) clearStackBackToTableRow() {
	for {
		cur := c.currentNode()
		if cur == nil {
			return
		}
		switch cur.LocalName {
		case "tr", "template", "html":
			return
		}
		c.open.Pop()
	}
}

func (c *Constructor) inTableMode(tok token.Token) {
	switch tok.Type {
	case token.Character:
		switch cur := c.currentNode(); {
		case cur != nil && isTableContextElement(cur.LocalName):
			c.pendingTableChars = nil
			c.pendingTableCharsBad = false
			c.originalMode = c.mode
			c.switchTo(InTableTextMode)
			c.reprocess = true
			c.dispatchInsertionMode(tok)
			c.reprocess = false
			return
		}
	case token.Comment:
		c.insertComment(tok, nil)
		return
	case token.DocType:
		c.err(perr.UnexpectedDoctype, "doctype in table")
		return
	case token.StartTag:
		switch tok.Name {
		case "caption":
			c.clearStackBackToTable()
			c.afe.PushMarker()
			c.insertHTMLElementForToken(tok)
			c.switchTo(InCaptionMode)
			return
		case "colgroup":
			c.clearStackBackToTable()
			c.insertHTMLElementForToken(tok)
			c.switchTo(InColumnGroupMode)
			return
		case "col":
			c.clearStackBackToTable()
			c.insertHTMLElementNamed("colgroup")
			c.reprocessAs(InColumnGroupMode, tok)
			return
		case "tbody", "tfoot", "thead":
			c.clearStackBackToTable()
			c.insertHTMLElementForToken(tok)
			c.switchTo(InTableBodyMode)
			return
		case "td", "th", "tr":
			c.clearStackBackToTable()
			c.insertHTMLElementNamed("tbody")
			c.reprocessAs(InTableBodyMode, tok)
			return
		case "table":
			c.err(perr.UnexpectedStartTag, "nested table")
			if !c.open.InTableScope("table") {
				return
			}
			c.open.PopUntilTagIn("table")
			c.reprocessAs(c.resetInsertionModeAppropriately(), tok)
			return
		case "style", "script", "template":
			c.inHeadMode(tok)
			return
		case "input":
			if typ, ok := tok.Attr("type"); ok && equalASCIIFold(typ, "hidden") {
				c.err(perr.UnexpectedStartTag, "hidden input in table")
				c.insertHTMLElementForToken(tok)
				c.open.Pop()
				if tok.SelfClosing {
					c.src.AcknowledgeSelfClosing()
				}
				return
			}
		case "form":
			if c.open.ContainsTag("template") || c.formElement != nil {
				c.err(perr.UnexpectedStartTag, "form in table")
				return
			}
			c.formElement = c.insertHTMLElementForToken(tok)
			c.open.Pop()
			return
		}
	case token.EndTag:
		switch tok.Name {
		case "table":
			if !c.open.InTableScope("table") {
				c.err(perr.UnexpectedEndTag, "unmatched table end tag")
				return
			}
			c.open.PopUntilTagIn("table")
			c.switchTo(c.resetInsertionModeAppropriately())
			return
		case "body", "caption", "col", "colgroup", "html", "tbody", "td", "tfoot", "th", "thead", "tr":
			c.err(perr.UnexpectedEndTag, "unexpected end tag in table")
			return
		case "template":
			c.inHeadMode(tok)
			return
		}
	case token.EOF:
		c.inBodyMode(tok)
		return
	}
	c.err(perr.FosterParentedContent, "foster-parented content in table")
	c.fosterParenting = true
	c.inBodyMode(tok)
	c.fosterParenting = false
}

func isTableContextElement(name string) bool {
	switch name {
	case "table", "tbody", "tfoot", "thead", "tr":
		return true
	}
	return false
}

func (c *Constructor) inTableTextMode(tok token.Token) {
	switch tok.Type {
	case token.Character:
		if containsNull(tok.Data) {
			c.err(perr.UnexpectedNullCharacter, "null character in table text")
			return
		}
		if !isAllWhitespace(tok.Data) {
			c.pendingTableCharsBad = true
		}
		c.pendingTableChars = append(c.pendingTableChars, tok.Data)
		return
	default:
		text := strings.Join(c.pendingTableChars, "")
		if c.pendingTableCharsBad {
			c.err(perr.FosterParentedContent, "non-whitespace character data in table")
			c.fosterParenting = true
			c.reconstructActiveFormattingElements()
			c.insertCharacter(text)
			c.framesetOK = false
			c.fosterParenting = false
		} else if text != "" {
			c.insertCharacter(text)
		}
		c.pendingTableChars = nil
		c.pendingTableCharsBad = false
		c.switchTo(c.originalMode)
		c.reprocess = true
		c.dispatchInsertionMode(tok)
		c.reprocess = false
	}
}

func (c *Constructor) inCaptionMode(tok token.Token) {
	closeCaption := func() bool {
		if !c.open.InTableScope("caption") {
			c.err(perr.UnexpectedEndTag, "unmatched caption end tag")
			return false
		}
		c.generateImpliedEndTags("")
		if cur := c.currentNode(); cur == nil || cur.LocalName != "caption" {
			c.err(perr.UnclosedElements, "unclosed caption")
		}
		c.open.PopUntilTagIn("caption")
		c.afe.ClearToLastMarker()
		c.switchTo(InTableMode)
		return true
	}

	switch tok.Type {
	case token.StartTag:
		switch tok.Name {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if closeCaption() {
				c.reprocessAs(InTableMode, tok)
			}
			return
		}
	case token.EndTag:
		switch tok.Name {
		case "caption":
			closeCaption()
			return
		case "table":
			if closeCaption() {
				c.reprocessAs(InTableMode, tok)
			}
			return
		case "body", "col", "colgroup", "html", "tbody", "td", "tfoot", "th", "thead", "tr":
			c.err(perr.UnexpectedEndTag, "unexpected end tag in caption")
			return
		}
	}
	c.inBodyMode(tok)
}

func (c *Constructor) inColumnGroupMode(tok token.Token) {
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
		c.err(perr.UnexpectedDoctype, "doctype in column group")
		return
	case token.StartTag:
		switch tok.Name {
		case "html":
			c.inBodyMode(tok)
			return
		case "col":
			c.insertHTMLElementForToken(tok)
			c.open.Pop()
			if tok.SelfClosing {
				c.src.AcknowledgeSelfClosing()
			}
			return
		case "template":
			c.inHeadMode(tok)
			return
		}
	case token.EndTag:
		switch tok.Name {
		case "colgroup":
			if cur := c.currentNode(); cur == nil || cur.LocalName != "colgroup" {
				c.err(perr.UnexpectedEndTag, "unmatched colgroup end tag")
				return
			}
			c.open.Pop()
			c.switchTo(InTableMode)
			return
		case "col":
			c.err(perr.UnexpectedEndTag, "unexpected col end tag")
			return
		case "template":
			c.inHeadMode(tok)
			return
		}
	case token.EOF:
		c.inBodyMode(tok)
		return
	}
	if cur := c.currentNode(); cur == nil || cur.LocalName != "colgroup" {
		c.err(perr.UnexpectedEndTag, "unexpected token in column group")
		return
	}
	c.open.Pop()
	c.reprocessAs(InTableMode, tok)
}

func (c *Constructor) inTableBodyMode(tok token.Token) {
	switch tok.Type {
	case token.StartTag:
		switch tok.Name {
		case "tr":
			c.clearStackBackToTableBody()
			c.insertHTMLElementForToken(tok)
			c.switchTo(InRowMode)
			return
		case "th", "td":
			c.err(perr.UnexpectedStartTag, "cell without row in table body")
			c.clearStackBackToTableBody()
			c.insertHTMLElementNamed("tr")
			c.reprocessAs(InRowMode, tok)
			return
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead":
			if !c.open.InTableScope("tbody") && !c.open.InTableScope("thead") && !c.open.InTableScope("tfoot") {
				c.err(perr.UnexpectedStartTag, "unmatched section")
				return
			}
			c.clearStackBackToTableBody()
			c.open.Pop()
			c.reprocessAs(InTableMode, tok)
			return
		}
	case token.EndTag:
		switch tok.Name {
		case "tbody", "tfoot", "thead":
			if !c.open.InTableScope(tok.Name) {
				c.err(perr.UnexpectedEndTag, "unmatched section end tag")
				return
			}
			c.clearStackBackToTableBody()
			c.open.Pop()
			c.switchTo(InTableMode)
			return
		case "table":
			if !c.open.InTableScope("tbody") && !c.open.InTableScope("thead") && !c.open.InTableScope("tfoot") {
				c.err(perr.UnexpectedEndTag, "unmatched section")
				return
			}
			c.clearStackBackToTableBody()
			c.open.Pop()
			c.reprocessAs(InTableMode, tok)
			return
		case "body", "caption", "col", "colgroup", "html", "td", "th", "tr":
			c.err(perr.UnexpectedEndTag, "unexpected end tag in table body")
			return
		}
	}
	c.inTableMode(tok)
}

func (c *Constructor) inRowMode(tok token.Token) {
	switch tok.Type {
	case token.StartTag:
		switch tok.Name {
		case "th", "td":
			c.clearStackBackToTableRow()
			c.insertHTMLElementForToken(tok)
			c.switchTo(InCellMode)
			c.afe.PushMarker()
			return
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead", "tr":
			if !c.open.InTableScope("tr") {
				c.err(perr.UnexpectedStartTag, "unmatched row")
				return
			}
			c.clearStackBackToTableRow()
			c.open.Pop()
			c.switchTo(InTableBodyMode)
			c.reprocess = true
			c.dispatchInsertionMode(tok)
			c.reprocess = false
			return
		}
	case token.EndTag:
		switch tok.Name {
		case "tr":
			if !c.open.InTableScope("tr") {
				c.err(perr.UnexpectedEndTag, "unmatched tr end tag")
				return
			}
			c.clearStackBackToTableRow()
			c.open.Pop()
			c.switchTo(InTableBodyMode)
			return
		case "table":
			if !c.open.InTableScope("tr") {
				c.err(perr.UnexpectedEndTag, "unmatched row")
				return
			}
			c.clearStackBackToTableRow()
			c.open.Pop()
			c.reprocessAs(InTableBodyMode, tok)
			return
		case "tbody", "tfoot", "thead":
			if !c.open.InTableScope(tok.Name) || !c.open.InTableScope("tr") {
				c.err(perr.UnexpectedEndTag, "unmatched section")
				return
			}
			c.clearStackBackToTableRow()
			c.open.Pop()
			c.reprocessAs(InTableBodyMode, tok)
			return
		case "body", "caption", "col", "colgroup", "html", "td", "th":
			c.err(perr.UnexpectedEndTag, "unexpected end tag in row")
			return
		}
	}
	c.inTableMode(tok)
}

func (c *Constructor) inCellMode(tok token.Token) {
	closeCell := func() {
		c.generateImpliedEndTags("")
		c.open.PopUntilTagIn("td", "th")
		c.afe.ClearToLastMarker()
		c.switchTo(InRowMode)
	}
	switch tok.Type {
	case token.StartTag:
		switch tok.Name {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if !c.open.InTableScope("td") && !c.open.InTableScope("th") {
				c.err(perr.UnexpectedStartTag, "unmatched cell")
				return
			}
			closeCell()
			c.reprocessAs(InRowMode, tok)
			return
		}
	case token.EndTag:
		switch tok.Name {
		case "td", "th":
			if !c.open.InTableScope(tok.Name) {
				c.err(perr.UnexpectedEndTag, "unmatched cell end tag")
				return
			}
			c.generateImpliedEndTags("")
			if cur := c.currentNode(); cur == nil || cur.LocalName != tok.Name {
				c.err(perr.UnclosedElements, "unclosed elements")
			}
			c.open.PopUntilTagIn(tok.Name)
			c.afe.ClearToLastMarker()
			c.switchTo(InRowMode)
			return
		case "body", "caption", "col", "colgroup", "html":
			c.err(perr.UnexpectedEndTag, "unexpected end tag in cell")
			return
		case "table", "tbody", "tfoot", "thead", "tr":
			if !c.open.InTableScope(tok.Name) {
				c.err(perr.UnexpectedEndTag, "unmatched section")
				return
			}
			closeCell()
			c.reprocessAs(InRowMode, tok)
			return
		}
	}
	c.inBodyMode(tok)
}
