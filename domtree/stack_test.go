package domtree_test

import (
	"testing"

	"github.com/CourtBouillon/tinyhtml5/domtree"
)

func TestOpenElementsInScopeStopsAtBoundary(t *testing.T) {
	var open domtree.OpenElements
	open.Push(domtree.NewElement(domtree.HTMLNamespace, "html"))
	open.Push(domtree.NewElement(domtree.HTMLNamespace, "table"))
	open.Push(domtree.NewElement(domtree.HTMLNamespace, "p"))

	if open.InScope("html") {
		t.Error("html should not be reachable in scope past the table boundary")
	}
	if !open.InTableScope("table") {
		t.Error("table should be found by InTableScope")
	}
	if !open.InScope("p") {
		t.Error("p is the current node, should be in scope")
	}
}

func TestOpenElementsListItemScopeStopsAtList(t *testing.T) {
	var open domtree.OpenElements
	open.Push(domtree.NewElement(domtree.HTMLNamespace, "ul"))
	open.Push(domtree.NewElement(domtree.HTMLNamespace, "li"))

	if !open.InListItemScope("li") {
		t.Error("li should be in list-item scope")
	}

	open.Push(domtree.NewElement(domtree.HTMLNamespace, "ul"))
	if open.InListItemScope("li") {
		t.Error("a nested ul should end list-item scope before the outer li")
	}

	var openNoList domtree.OpenElements
	openNoList.Push(domtree.NewElement(domtree.HTMLNamespace, "table"))
	openNoList.Push(domtree.NewElement(domtree.HTMLNamespace, "li"))
	if openNoList.InListItemScope("nonexistent") {
		t.Error("absent target should never be in scope")
	}
}

func TestOpenElementsPopUntilTagIn(t *testing.T) {
	var open domtree.OpenElements
	open.Push(domtree.NewElement(domtree.HTMLNamespace, "table"))
	open.Push(domtree.NewElement(domtree.HTMLNamespace, "tbody"))
	open.Push(domtree.NewElement(domtree.HTMLNamespace, "tr"))
	open.Push(domtree.NewElement(domtree.HTMLNamespace, "td"))

	open.PopUntilTagIn("tbody", "thead", "tfoot")
	if got := open.Current(); got == nil || got.LocalName != "table" {
		t.Errorf("expected table left on stack, got %v", got)
	}
}

func TestActiveFormattingElementsNoahsArk(t *testing.T) {
	var afe domtree.ActiveFormattingElements
	mk := func() *domtree.Node {
		n := domtree.NewElement(domtree.HTMLNamespace, "a")
		n.Attributes = []domtree.Attribute{{Name: "href", Value: "/x"}}
		return n
	}
	first := mk()
	afe.Push(first)
	afe.Push(mk())
	afe.Push(mk())
	if afe.Len() != 3 {
		t.Fatalf("expected 3 entries before the 4th push, got %d", afe.Len())
	}

	afe.Push(mk())
	if afe.Len() != 3 {
		t.Fatalf("Noah's Ark clause should cap identical consecutive entries at 3, got %d", afe.Len())
	}
	if afe.Contains(first) {
		t.Error("the earliest matching entry should have been evicted")
	}
}

func TestActiveFormattingElementsClearToLastMarker(t *testing.T) {
	var afe domtree.ActiveFormattingElements
	afe.Push(domtree.NewElement(domtree.HTMLNamespace, "b"))
	afe.PushMarker()
	afe.Push(domtree.NewElement(domtree.HTMLNamespace, "i"))

	afe.ClearToLastMarker()
	if afe.Len() != 1 {
		t.Fatalf("expected 1 entry remaining after clearing to marker, got %d", afe.Len())
	}
	if afe.Items()[0].LocalName != "b" {
		t.Errorf("expected the entry before the marker to survive, got %q", afe.Items()[0].LocalName)
	}
}
