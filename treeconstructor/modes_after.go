package treeconstructor

import (
	"github.com/CourtBouillon/tinyhtml5/perr"
	"github.com/CourtBouillon/tinyhtml5/token"
)

func (c *Constructor) afterBodyMode(tok token.Token) {
	switch tok.Type {
	case token.Character:
		if isAllWhitespace(tok.Data) {
			c.inBodyMode(tok)
			return
		}
	case token.Comment:
		c.insertComment(tok, rootHTML(&c.open))
		return
	case token.DocType:
		c.err(perr.UnexpectedDoctype, "doctype after body")
		return
	case token.StartTag:
		if tok.Name == "html" {
			c.inBodyMode(tok)
			return
		}
	case token.EndTag:
		if tok.Name == "html" {
			c.switchTo(AfterAfterBodyMode)
			return
		}
	case token.EOF:
		c.stopped = true
		return
	}
	c.err(perr.UnexpectedStartTag, "unexpected token after body")
	c.reprocessAs(InBodyMode, tok)
}

func (c *Constructor) inFramesetMode(tok token.Token) {
	switch tok.Type {
	case token.Character:
		if isAllWhitespace(tok.Data) {
			c.insertCharacter(tok.Data)
			return
		}
	case token.Comment:
		c.insertComment(tok, nil)
		return
	case token.DocType:
		c.err(perr.UnexpectedDoctype, "doctype in frameset")
		return
	case token.StartTag:
		switch tok.Name {
		case "html":
			c.inBodyMode(tok)
			return
		case "frameset":
			c.insertHTMLElementForToken(tok)
			return
		case "frame":
			c.insertHTMLElementForToken(tok)
			c.open.Pop()
			if tok.SelfClosing {
				c.src.AcknowledgeSelfClosing()
			}
			return
		case "noframes":
			c.inHeadMode(tok)
			return
		}
	case token.EndTag:
		if tok.Name == "frameset" {
			if cur := c.currentNode(); cur != nil && cur.LocalName == "html" {
				c.err(perr.UnexpectedEndTag, "unmatched frameset end tag")
				return
			}
			c.open.Pop()
			if cur := c.currentNode(); cur != nil && cur.LocalName != "frameset" {
				c.switchTo(AfterFramesetMode)
			}
			return
		}
	case token.EOF:
		if cur := c.currentNode(); cur == nil || cur.LocalName == "html" {
			c.stopped = true
			return
		}
		c.err(perr.UnexpectedEndOfFile, "eof in frameset")
		c.stopped = true
		return
	}
	c.err(perr.UnexpectedStartTag, "unexpected token in frameset")
}

func (c *Constructor) afterFramesetMode(tok token.Token) {
	switch tok.Type {
	case token.Character:
		if isAllWhitespace(tok.Data) {
			c.insertCharacter(tok.Data)
			return
		}
	case token.Comment:
		c.insertComment(tok, nil)
		return
	case token.DocType:
		c.err(perr.UnexpectedDoctype, "doctype after frameset")
		return
	case token.StartTag:
		switch tok.Name {
		case "html":
			c.inBodyMode(tok)
			return
		case "noframes":
			c.inHeadMode(tok)
			return
		}
	case token.EndTag:
		if tok.Name == "html" {
			c.switchTo(AfterAfterFramesetMode)
			return
		}
	case token.EOF:
		c.stopped = true
		return
	}
	c.err(perr.UnexpectedStartTag, "unexpected token after frameset")
}

func (c *Constructor) afterAfterBodyMode(tok token.Token) {
	switch tok.Type {
	case token.Comment:
		c.insertComment(tok, c.document)
		return
	case token.DocType:
		c.inBodyMode(tok)
		return
	case token.Character:
		if isAllWhitespace(tok.Data) {
			c.inBodyMode(tok)
			return
		}
	case token.StartTag:
		if tok.Name == "html" {
			c.inBodyMode(tok)
			return
		}
	case token.EOF:
		c.stopped = true
		return
	}
	c.err(perr.UnexpectedStartTag, "unexpected token after html")
	c.reprocessAs(InBodyMode, tok)
}

func (c *Constructor) afterAfterFramesetMode(tok token.Token) {
	switch tok.Type {
	case token.Comment:
		c.insertComment(tok, c.document)
		return
	case token.DocType:
		c.inBodyMode(tok)
		return
	case token.Character:
		if isAllWhitespace(tok.Data) {
			c.inBodyMode(tok)
			return
		}
	case token.StartTag:
		switch tok.Name {
		case "html":
			c.inBodyMode(tok)
			return
		case "noframes":
			c.inHeadMode(tok)
			return
		}
	case token.EOF:
		c.stopped = true
		return
	}
	c.err(perr.UnexpectedStartTag, "unexpected token after frameset")
}
