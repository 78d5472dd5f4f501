package domtree

// OpenElements is the stack of open elements: the tree constructor's
// record of the current path of insertion points from the root.
type OpenElements struct {
	items []*Node
}

func (s *OpenElements) Push(n *Node) { s.items = append(s.items, n) }

func (s *OpenElements) Pop() *Node {
	if len(s.items) == 0 {
		return nil
	}
	n := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return n
}

func (s *OpenElements) Current() *Node {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[len(s.items)-1]
}

// NodeAt returns the element at distance from the top (0 = current).
func (s *OpenElements) NodeAt(distanceFromTop int) *Node {
	i := len(s.items) - 1 - distanceFromTop
	if i < 0 || i >= len(s.items) {
		return nil
	}
	return s.items[i]
}

func (s *OpenElements) Len() int { return len(s.items) }

func (s *OpenElements) Contains(n *Node) bool {
	for _, e := range s.items {
		if e == n {
			return true
		}
	}
	return false
}

func (s *OpenElements) ContainsTag(name string) bool {
	for _, e := range s.items {
		if e.Type == ElementNode && e.LocalName == name {
			return true
		}
	}
	return false
}

// Remove removes the first occurrence of n from the stack (elements are
// unique in a well-formed stack, so "first" is also "only").
func (s *OpenElements) Remove(n *Node) {
	for i, e := range s.items {
		if e == n {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// PopUntilTagIn pops elements off the stack, including the popped
// element itself, until the popped element's local name is one of names.
func (s *OpenElements) PopUntilTagIn(names ...string) {
	for {
		n := s.Pop()
		if n == nil {
			return
		}
		for _, name := range names {
			if n.LocalName == name {
				return
			}
		}
	}
}

// InsertAt inserts n at the given index from the bottom of the stack,
// used by the adoption agency algorithm to reinsert a node in place of
// another.
func (s *OpenElements) InsertAt(index int, n *Node) {
	if index < 0 {
		index = 0
	}
	if index >= len(s.items) {
		s.items = append(s.items, n)
		return
	}
	s.items = append(s.items, nil)
	copy(s.items[index+1:], s.items[index:])
	s.items[index] = n
}

// IndexOf returns n's position from the bottom of the stack, or -1.
func (s *OpenElements) IndexOf(n *Node) int {
	for i, e := range s.items {
		if e == n {
			return i
		}
	}
	return -1
}

// defaultScope, listItemScope, buttonScope all extend this list; see
// https://html.spec.whatwg.org/multipage/parsing.html#has-an-element-in-the-specific-scope
var scopeBoundary = []string{
	"applet", "caption", "html", "table", "td", "th", "marquee", "object",
	"template", "mi", "mo", "mn", "ms", "mtext", "annotation-xml",
	"foreignObject", "desc", "title",
}

func (s *OpenElements) inSpecificScope(target string, boundary []string) bool {
	for i := len(s.items) - 1; i >= 0; i-- {
		n := s.items[i]
		if n.Type != ElementNode {
			continue
		}
		if n.LocalName == target {
			return true
		}
		for _, b := range boundary {
			if n.LocalName == b {
				return false
			}
		}
	}
	return false
}

// InScope reports has-an-element-in-scope.
func (s *OpenElements) InScope(target string) bool {
	return s.inSpecificScope(target, scopeBoundary)
}

// InListItemScope reports has-an-element-in-list-item-scope.
func (s *OpenElements) InListItemScope(target string) bool {
	return s.inSpecificScope(target, append(append([]string{}, scopeBoundary...), "ol", "ul"))
}

// InButtonScope reports has-an-element-in-button-scope.
func (s *OpenElements) InButtonScope(target string) bool {
	return s.inSpecificScope(target, append(append([]string{}, scopeBoundary...), "button"))
}

// InTableScope reports has-an-element-in-table-scope.
func (s *OpenElements) InTableScope(target string) bool {
	return s.inSpecificScope(target, []string{"html", "table", "template"})
}

// InSelectScope reports has-an-element-in-select-scope: everything is a
// boundary except optgroup/option.
func (s *OpenElements) InSelectScope(target string) bool {
	for i := len(s.items) - 1; i >= 0; i-- {
		n := s.items[i]
		if n.LocalName == target {
			return true
		}
		if n.LocalName != "optgroup" && n.LocalName != "option" {
			return false
		}
	}
	return false
}

// ScopeMarker is a sentinel pushed onto the active-formatting-elements
// list at the boundary of a table cell, caption, object, applet,
// marquee, or template.
var ScopeMarker = &Node{Type: ElementNode, LocalName: "\x00scope-marker\x00"}

// ActiveFormattingElements is the reconstructable list of formatting
// elements described in the standard, enforcing the Noah's Ark clause
// (no more than three matching entries after the last marker).
type ActiveFormattingElements struct {
	items []*Node
}

func (a *ActiveFormattingElements) Items() []*Node { return a.items }
func (a *ActiveFormattingElements) Len() int        { return len(a.items) }

func (a *ActiveFormattingElements) PushMarker() {
	a.items = append(a.items, ScopeMarker)
}

func (a *ActiveFormattingElements) Contains(n *Node) bool {
	for _, e := range a.items {
		if e == n {
			return true
		}
	}
	return false
}

func (a *ActiveFormattingElements) Remove(n *Node) {
	for i, e := range a.items {
		if e == n {
			a.items = append(a.items[:i], a.items[i+1:]...)
			return
		}
	}
}

func (a *ActiveFormattingElements) IndexOf(n *Node) int {
	for i, e := range a.items {
		if e == n {
			return i
		}
	}
	return -1
}

func (a *ActiveFormattingElements) InsertAt(index int, n *Node) {
	if index < 0 {
		index = 0
	}
	if index >= len(a.items) {
		a.items = append(a.items, n)
		return
	}
	a.items = append(a.items, nil)
	copy(a.items[index+1:], a.items[index:])
	a.items[index] = n
}

// Push appends n, first applying the Noah's Ark clause: if three
// elements after the last marker already match n exactly (same tag,
// namespace, and attributes), the earliest of them is removed.
func (a *ActiveFormattingElements) Push(n *Node) {
	start := 0
	for i := len(a.items) - 1; i >= 0; i-- {
		if a.items[i] == ScopeMarker {
			start = i + 1
			break
		}
	}

	var matches []*Node
	for i := start; i < len(a.items); i++ {
		if sameFormattingElement(a.items[i], n) {
			matches = append(matches, a.items[i])
		}
	}
	if len(matches) >= 3 {
		a.Remove(matches[0])
	}
	a.items = append(a.items, n)
}

func sameFormattingElement(a, b *Node) bool {
	if a.LocalName != b.LocalName || a.NamespaceURI != b.NamespaceURI {
		return false
	}
	if len(a.Attributes) != len(b.Attributes) {
		return false
	}
	for _, av := range a.Attributes {
		found := false
		for _, bv := range b.Attributes {
			if av.Namespace == bv.Namespace && av.Name == bv.Name && av.Value == bv.Value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ClearToLastMarker removes entries back to and including the most
// recent marker (or the whole list, if there is none).
func (a *ActiveFormattingElements) ClearToLastMarker() {
	for len(a.items) > 0 {
		last := a.items[len(a.items)-1]
		a.items = a.items[:len(a.items)-1]
		if last == ScopeMarker {
			return
		}
	}
}
