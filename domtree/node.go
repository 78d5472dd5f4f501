// Package domtree is the tree model the tree constructor builds: nodes,
// attributes, the open-elements stack, and the active-formatting-
// elements list, with the namespace and scope machinery the standard's
// tree construction stage needs.
package domtree

import (
	"sort"
	"strings"
)

// NodeType tags the kind of a Node.
type NodeType uint8

const (
	DocumentNode NodeType = iota
	DocumentTypeNode
	ElementNode
	TextNode
	CommentNode
	DocumentFragmentNode
)

// Attribute is a namespaced name/value pair, stored in insertion order.
type Attribute struct {
	Namespace Namespace // empty for a plain, non-namespaced attribute
	Prefix    string
	Name      string
	Value     string
}

// Node is a single tagged-union tree node. Which fields are meaningful
// depends on Type: Element fields for ElementNode, Data for
// Text/Comment, Name/PublicID/SystemID for DocumentTypeNode.
type Node struct {
	Type NodeType

	// Element fields.
	NamespaceURI Namespace
	Prefix       string
	LocalName    string
	Attributes   []Attribute

	// Content is the template contents DocumentFragment, set only on
	// LocalName=="template" elements in the HTML namespace. Children of a
	// <template> attach here rather than to the element itself.
	Content *Node

	// Text/Comment fields.
	Data string

	// DocumentType fields.
	Name     string
	PublicID string
	SystemID string
	HasPublicID bool
	HasSystemID bool

	// Document fields.
	QuirksMode QuirksMode

	Parent, FirstChild, LastChild, PrevSibling, NextSibling *Node
	Children []*Node

	// SelfClosingAcknowledged is a diagnostics-only flag. The tree
	// constructor never sets it, so on parsed trees it is always false;
	// self-closing acknowledgement is tracked on the token instead.
	SelfClosingAcknowledged bool
}

// QuirksMode classifies a document per the standard's DOCTYPE sniffing.
type QuirksMode uint8

const (
	NoQuirks QuirksMode = iota
	Quirks
	LimitedQuirks
)

// NewDocument returns an empty document node.
func NewDocument() *Node {
	return &Node{Type: DocumentNode}
}

// NewElement returns a namespaced element node with no attributes.
func NewElement(ns Namespace, localName string) *Node {
	return &Node{Type: ElementNode, NamespaceURI: ns, LocalName: localName}
}

// NewText returns a text node.
func NewText(data string) *Node {
	return &Node{Type: TextNode, Data: data}
}

// NewComment returns a comment node.
func NewComment(data string) *Node {
	return &Node{Type: CommentNode, Data: data}
}

// NewDocumentType returns a doctype node.
func NewDocumentType(name, publicID, systemID string) *Node {
	return &Node{Type: DocumentTypeNode, Name: name, PublicID: publicID, SystemID: systemID}
}

// NewDocumentFragment returns a bare fragment root, used by template
// element content and by fragment parsing.
func NewDocumentFragment() *Node {
	return &Node{Type: DocumentFragmentNode}
}

// TagName returns the element's local name; for non-element nodes it is
// empty.
func (n *Node) TagName() string {
	if n.Type != ElementNode {
		return ""
	}
	return n.LocalName
}

// Attr returns a plain (non-namespaced) attribute's value.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attributes {
		if a.Namespace == "" && a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttrIfAbsent sets a plain attribute, appending if it does not already
// exist. It does not overwrite an existing value: the tree constructor
// is responsible for the "only if the element does not already have an
// attribute with that name" rule around <html>/<body> attribute merges.
func (n *Node) SetAttrIfAbsent(name, value string) {
	if _, ok := n.Attr(name); ok {
		return
	}
	n.Attributes = append(n.Attributes, Attribute{Name: name, Value: value})
}

// AppendChild appends child to n's children, wiring sibling pointers.
func (n *Node) AppendChild(child *Node) *Node {
	if n.LastChild != nil {
		n.LastChild.NextSibling = child
		child.PrevSibling = n.LastChild
	} else {
		n.FirstChild = child
	}
	n.LastChild = child
	child.Parent = n
	n.Children = append(n.Children, child)
	return child
}

// InsertBefore inserts newChild immediately before ref among n's
// children. If ref is nil, it behaves like AppendChild.
func (n *Node) InsertBefore(newChild, ref *Node) *Node {
	if ref == nil {
		return n.AppendChild(newChild)
	}
	idx := n.indexOf(ref)
	if idx < 0 {
		return n.AppendChild(newChild)
	}
	n.Children = append(n.Children, nil)
	copy(n.Children[idx+1:], n.Children[idx:])
	n.Children[idx] = newChild

	newChild.Parent = n
	prev := ref.PrevSibling
	newChild.PrevSibling = prev
	newChild.NextSibling = ref
	ref.PrevSibling = newChild
	if prev != nil {
		prev.NextSibling = newChild
	} else {
		n.FirstChild = newChild
	}
	return newChild
}

// RemoveChild detaches child from n.
func (n *Node) RemoveChild(child *Node) {
	idx := n.indexOf(child)
	if idx < 0 {
		return
	}
	n.Children = append(n.Children[:idx], n.Children[idx+1:]...)
	if child.PrevSibling != nil {
		child.PrevSibling.NextSibling = child.NextSibling
	} else {
		n.FirstChild = child.NextSibling
	}
	if child.NextSibling != nil {
		child.NextSibling.PrevSibling = child.PrevSibling
	} else {
		n.LastChild = child.PrevSibling
	}
	child.Parent = nil
	child.PrevSibling = nil
	child.NextSibling = nil
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// LastChildIsText reports whether n's last child is a text node, so
// callers can merge consecutive character-token insertions instead of
// creating a text node per token.
func (n *Node) LastChildIsText() bool {
	return n.LastChild != nil && n.LastChild.Type == TextNode
}

// AppendText appends text to n's last child if it is a text node,
// otherwise creates and appends a new one.
func (n *Node) AppendText(text string) {
	if n.LastChildIsText() {
		n.LastChild.Data += text
		return
	}
	n.AppendChild(NewText(text))
}

// String renders a tree-dump serialization compatible with the html5lib
// "#document" fixture format used by tree-construction tests: one line
// per node, each line starting with "| " followed by two spaces per
// level below the document's children, quoted text, "<!-- -->" wrapped
// comments, and sorted attributes indented one level further.
func (n *Node) String() string {
	var b strings.Builder
	serialize(&b, n, 0)
	return strings.TrimRight(b.String(), "\n")
}

func serialize(b *strings.Builder, n *Node, depth int) {
	indent := func(d int) string {
		if d < 1 {
			return "| "
		}
		return "| " + strings.Repeat("  ", d-1)
	}
	if n.Type != DocumentNode {
		b.WriteString(indent(depth))
	}
	switch n.Type {
	case DocumentNode:
		b.WriteString("#document\n")
	case DocumentTypeNode:
		b.WriteString("<!DOCTYPE " + n.Name)
		if n.HasPublicID || n.HasSystemID {
			b.WriteString(" \"" + n.PublicID + "\" \"" + n.SystemID + "\"")
		}
		b.WriteString(">\n")
	case ElementNode:
		prefix := ""
		switch n.NamespaceURI {
		case SVGNamespace:
			prefix = "svg "
		case MathMLNamespace:
			prefix = "math "
		}
		b.WriteString("<" + prefix + n.LocalName + ">\n")
		attrs := make([]Attribute, len(n.Attributes))
		copy(attrs, n.Attributes)
		sort.Slice(attrs, func(i, j int) bool { return attrs[i].Name < attrs[j].Name })
		for _, a := range attrs {
			ns := ""
			switch a.Namespace {
			case XLinkNamespace:
				ns = "xlink "
			case XMLNamespace:
				ns = "xml "
			case XMLNSNamespace:
				ns = "xmlns "
			}
			b.WriteString(indent(depth+1) + ns + a.Name + "=\"" + a.Value + "\"\n")
		}
	case TextNode:
		b.WriteString("\"" + n.Data + "\"\n")
	case CommentNode:
		b.WriteString("<!-- " + n.Data + " -->\n")
	case DocumentFragmentNode:
		b.WriteString("#document-fragment\n")
	}
	if n.Content != nil {
		b.WriteString(indent(depth+1) + "content\n")
		for _, c := range n.Content.Children {
			serialize(b, c, depth+2)
		}
	}
	for _, c := range n.Children {
		serialize(b, c, depth+1)
	}
}
