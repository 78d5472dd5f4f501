// Package treeadapter defines the narrow interface the tree constructor
// uses to build output nodes, so the constructor never depends on a
// concrete tree implementation. Default builds domtree.Node values;
// a host embedding this parser into its own DOM can implement Adapter
// itself and hand it to treeconstructor.New instead.
package treeadapter

import "github.com/CourtBouillon/tinyhtml5/domtree"

// Adapter is the seam between the tree-construction algorithm and
// whatever concrete tree representation a caller wants.
type Adapter interface {
	CreateElement(ns domtree.Namespace, localName string) *domtree.Node
	CreateComment(data string) *domtree.Node
	CreateText(data string) *domtree.Node
	CreateDocumentType(name, publicID, systemID string, hasPublicID, hasSystemID bool) *domtree.Node
	CreateDocumentFragment() *domtree.Node

	AppendChild(parent, child *domtree.Node)
	InsertBefore(parent, newChild, ref *domtree.Node)
	RemoveChild(parent, child *domtree.Node)
	AppendText(parent *domtree.Node, text string)
}

// Default is the built-in Adapter that builds domtree.Node trees
// directly; used unless a caller supplies its own.
type Default struct{}

func (Default) CreateElement(ns domtree.Namespace, localName string) *domtree.Node {
	return domtree.NewElement(ns, localName)
}
func (Default) CreateComment(data string) *domtree.Node { return domtree.NewComment(data) }
func (Default) CreateText(data string) *domtree.Node     { return domtree.NewText(data) }
func (Default) CreateDocumentType(name, publicID, systemID string, hasPublicID, hasSystemID bool) *domtree.Node {
	n := domtree.NewDocumentType(name, publicID, systemID)
	n.HasPublicID = hasPublicID
	n.HasSystemID = hasSystemID
	return n
}
func (Default) CreateDocumentFragment() *domtree.Node { return domtree.NewDocumentFragment() }

func (Default) AppendChild(parent, child *domtree.Node)             { parent.AppendChild(child) }
func (Default) InsertBefore(parent, newChild, ref *domtree.Node)    { parent.InsertBefore(newChild, ref) }
func (Default) RemoveChild(parent, child *domtree.Node)             { parent.RemoveChild(child) }
func (Default) AppendText(parent *domtree.Node, text string)        { parent.AppendText(text) }
