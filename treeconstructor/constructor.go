// Package treeconstructor implements the HTML tree construction stage:
// the ~23-mode state machine that consumes tokens from a tokenizer and
// builds a domtree.Node tree, including the adoption agency algorithm,
// active-formatting-element reconstruction, foster parenting and
// foreign-content handling the standard requires.
package treeconstructor

import (
	"io"

	"github.com/CourtBouillon/tinyhtml5/domtree"
	"github.com/CourtBouillon/tinyhtml5/perr"
	"github.com/CourtBouillon/tinyhtml5/token"
	"github.com/CourtBouillon/tinyhtml5/tokenizer"
	"github.com/CourtBouillon/tinyhtml5/treeadapter"
	"github.com/sirupsen/logrus"
)

// Constructor drives tree construction by pulling tokens from src and
// building nodes through adapter.
type Constructor struct {
	src     *tokenizer.Tokenizer
	adapter treeadapter.Adapter
	errs    *perr.Sink
	log     *logrus.Logger

	document *domtree.Node
	open     domtree.OpenElements
	afe      domtree.ActiveFormattingElements

	mode          InsertionMode
	originalMode  InsertionMode
	headElement   *domtree.Node
	formElement   *domtree.Node
	contextElement *domtree.Node // set only for fragment parsing

	fosterParenting bool
	scriptingFlag   bool
	framesetOK      bool

	pendingTableChars     []string
	pendingTableCharsBad  bool

	templateModes []InsertionMode

	stopped bool
	reprocess bool

	htmlNamespacing bool

	// discardNextLF is set right after inserting a pre, listing, or
	// textarea element; the next character token's leading U+000A, if
	// any, is dropped before the text is otherwise processed.
	discardNextLF bool
}

// dropLeadingLFIfPending consumes discardNextLF against data, stripping
// a single leading line feed the first time a character token arrives
// after a pre/listing/textarea start tag.
func (c *Constructor) dropLeadingLFIfPending(data string) string {
	if !c.discardNextLF {
		return data
	}
	c.discardNextLF = false
	if len(data) > 0 && data[0] == '\n' {
		return data[1:]
	}
	return data
}

// New returns a Constructor that will build a document tree by pulling
// tokens from src.
func New(src *tokenizer.Tokenizer, adapter treeadapter.Adapter, errs *perr.Sink, log *logrus.Logger) *Constructor {
	if errs == nil {
		errs = perr.NewSink(nil)
	}
	if adapter == nil {
		adapter = treeadapter.Default{}
	}
	return &Constructor{
		src:             src,
		adapter:         adapter,
		errs:            errs,
		log:             log,
		document:        domtree.NewDocument(),
		mode:            InitialMode,
		framesetOK:      true,
		htmlNamespacing: true,
	}
}

// SetHTMLNamespacing controls whether HTML elements this constructor
// creates get the HTML namespace, per the external interface's
// namespaceHTMLElements flag. Callers embedding this parser into a
// tree that predates namespace-aware DOMs pass false; everything else
// leaves the default (true).
func (c *Constructor) SetHTMLNamespacing(enabled bool) {
	c.htmlNamespacing = enabled
}

// htmlNS returns the namespace this constructor assigns to HTML
// elements it creates, and the namespace it treats as "HTML content"
// everywhere else in the algorithm (foreign-content breakout, template
// content redirection, and so on).
func (c *Constructor) htmlNS() domtree.Namespace {
	if c.htmlNamespacing {
		return domtree.HTMLNamespace
	}
	return ""
}

// Document returns the root document node. Valid to call at any point,
// but only complete once Construct has returned.
func (c *Constructor) Document() *domtree.Node { return c.document }

// Errors returns the accumulated parse errors.
func (c *Constructor) Errors() []perr.Error { return c.errs.Errors() }

// Construct runs tree construction to completion, pulling tokens from
// the source until EOF has been fully processed.
func (c *Constructor) Construct() (*domtree.Node, error) {
	for {
		tok, err := c.src.NextToken()
		if err == io.EOF {
			return c.document, nil
		}
		if err != nil {
			return c.document, err
		}
		c.processToken(tok)
		if c.stopped {
			return c.document, nil
		}
	}
}

// StartFragment configures the constructor for fragment parsing per the
// standard's fragment parsing algorithm, seeded with a context element
// that is never actually inserted into the resulting tree.
func (c *Constructor) StartFragment(context *domtree.Node) {
	c.contextElement = context
	root := c.adapter.CreateElement(c.htmlNS(), "html")
	c.document.AppendChild(root)
	c.open.Push(root)

	if context.LocalName == "template" {
		c.templateModes = append(c.templateModes, InTemplateMode)
	}
	c.src.SetLastStartTagName(context.LocalName)
	c.seedContentModel(context)
	c.mode = c.resetInsertionModeAppropriately()
	c.findForm()
}

// seedContentModel switches the tokenizer's starting state to match
// the context element's content model, per the fragment parsing
// algorithm's "reset the tokenizer's state" step.
func (c *Constructor) seedContentModel(context *domtree.Node) {
	switch context.LocalName {
	case "title", "textarea":
		c.src.SetState(tokenizer.RCDataState)
	case "style", "xmp", "iframe", "noembed", "noframes":
		c.src.SetState(tokenizer.RawTextState)
	case "script":
		c.src.SetState(tokenizer.ScriptDataState)
	case "plaintext":
		c.src.SetState(tokenizer.PLAINTextState)
	case "noscript":
		if c.scriptingFlag {
			c.src.SetState(tokenizer.RawTextState)
		}
	}
}

// FragmentResult returns a document fragment holding the children
// parsed onto the synthetic <html> root created by StartFragment, per
// the standard's fragment parsing algorithm final step of moving all
// of the root's children into the returned fragment.
func (c *Constructor) FragmentResult() *domtree.Node {
	root := c.document.FirstChild
	frag := domtree.NewDocumentFragment()
	if root == nil {
		return frag
	}
	for child := root.FirstChild; child != nil; {
		next := child.NextSibling
		root.RemoveChild(child)
		frag.AppendChild(child)
		child = next
	}
	return frag
}

func (c *Constructor) findForm() {
	for n := c.contextElement; n != nil; n = n.Parent {
		if n.LocalName == "form" {
			c.formElement = n
			return
		}
	}
}

func (c *Constructor) err(kind perr.Kind, context string) {
	line, col := c.src.Pos()
	c.errs.Record(kind, line, col, context)
}

// processToken dispatches a token to the current insertion mode,
// looping to support the "reprocess the token" instruction some
// branches issue by setting c.reprocess before returning.
func (c *Constructor) processToken(tok token.Token) {
	if tok.Type != token.Character {
		c.discardNextLF = false
	}
	for {
		c.reprocess = false
		c.dispatchInsertionMode(tok)
		if !c.reprocess {
			break
		}
	}
	c.checkSelfClosingAcknowledged(tok)
}

// checkSelfClosingAcknowledged reports a parse error when a start tag's
// self-closing flag went unacknowledged. Only void HTML elements and
// foreign elements ever acknowledge it (insertForeignElementForToken
// for foreign elements, the explicit calls next to each void element's
// insertion); every other HTML element start tag reaching here with an
// unacknowledged flag has a meaningless trailing solidus.
func (c *Constructor) checkSelfClosingAcknowledged(tok token.Token) {
	if tok.Type != token.StartTag || !tok.SelfClosing || tok.Acknowledged == nil || *tok.Acknowledged {
		return
	}
	c.err(perr.NonVoidHTMLElementStartTagWithTrailingSolidus, "self-closing flag on non-void, non-foreign element")
}

// dispatchInsertionMode picks between the tree construction dispatcher
// (foreign content) and the current HTML insertion mode, per the
// standard's "tree construction dispatcher".
func (c *Constructor) dispatchInsertionMode(tok token.Token) {
	if c.useForeignContentRules(tok) {
		c.foreignContent(tok)
		return
	}
	switch c.mode {
	case InitialMode:
		c.initialMode(tok)
	case BeforeHTMLMode:
		c.beforeHTMLMode(tok)
	case BeforeHeadMode:
		c.beforeHeadMode(tok)
	case InHeadMode:
		c.inHeadMode(tok)
	case InHeadNoScriptMode:
		c.inHeadNoScriptMode(tok)
	case AfterHeadMode:
		c.afterHeadMode(tok)
	case InBodyMode:
		c.inBodyMode(tok)
	case TextMode:
		c.textMode(tok)
	case InTableMode:
		c.inTableMode(tok)
	case InTableTextMode:
		c.inTableTextMode(tok)
	case InCaptionMode:
		c.inCaptionMode(tok)
	case InColumnGroupMode:
		c.inColumnGroupMode(tok)
	case InTableBodyMode:
		c.inTableBodyMode(tok)
	case InRowMode:
		c.inRowMode(tok)
	case InCellMode:
		c.inCellMode(tok)
	case InSelectMode:
		c.inSelectMode(tok)
	case InSelectInTableMode:
		c.inSelectInTableMode(tok)
	case InTemplateMode:
		c.inTemplateMode(tok)
	case AfterBodyMode:
		c.afterBodyMode(tok)
	case InFramesetMode:
		c.inFramesetMode(tok)
	case AfterFramesetMode:
		c.afterFramesetMode(tok)
	case AfterAfterBodyMode:
		c.afterAfterBodyMode(tok)
	case AfterAfterFramesetMode:
		c.afterAfterFramesetMode(tok)
	}
}

func (c *Constructor) switchTo(m InsertionMode) {
	if c.log != nil && m != c.mode {
		c.log.WithFields(logrus.Fields{"from": c.mode.String(), "to": m.String()}).Debug("insertion mode change")
	}
	c.mode = m
}

// --- insertion helpers ---

// currentNode is the "current node": the bottommost element on the
// stack of open elements, or nil if the stack is empty.
func (c *Constructor) currentNode() *domtree.Node { return c.open.Current() }

// adjustedCurrentNode implements the standard's definition: the context
// element during fragment parsing when the stack holds only that one
// element, otherwise the current node.
func (c *Constructor) adjustedCurrentNode() *domtree.Node {
	if c.contextElement != nil && c.open.Len() == 1 {
		return c.contextElement
	}
	return c.currentNode()
}

type insertionPoint struct {
	parent       *domtree.Node
	beforeSibling *domtree.Node // nil means append
}

// appropriatePlaceForInsertion implements "appropriate place for
// inserting a node", including foster parenting when the override
// target (or current node) is a table/tbody/tfoot/thead/tr and foster
// parenting is enabled.
func (c *Constructor) appropriatePlaceForInsertion(override *domtree.Node) insertionPoint {
	target := override
	if target == nil {
		target = c.currentNode()
	}
	if !c.fosterParenting || target == nil {
		return c.intoTemplateContentIfTemplate(insertionPoint{parent: target})
	}
	switch target.LocalName {
	case "table", "tbody", "tfoot", "thead", "tr":
	default:
		return c.intoTemplateContentIfTemplate(insertionPoint{parent: target})
	}

	var lastTemplate, lastTable *domtree.Node
	templateIdx, tableIdx := -1, -1
	// Walk from the current node towards the root looking for the last
	// (most recently opened) template and table; indices count from the
	// current node.
	for i := 0; i < c.open.Len(); i++ {
		n := c.open.NodeAt(i)
		if n.LocalName == "template" && lastTemplate == nil {
			lastTemplate = n
			templateIdx = i
		}
		if n.LocalName == "table" && lastTable == nil {
			lastTable = n
			tableIdx = i
		}
	}

	if lastTemplate != nil && (lastTable == nil || templateIdx < tableIdx) {
		return c.intoTemplateContentIfTemplate(insertionPoint{parent: lastTemplate})
	}
	if lastTable == nil {
		return c.intoTemplateContentIfTemplate(insertionPoint{parent: c.open.NodeAt(c.open.Len() - 1)})
	}
	if lastTable.Parent != nil {
		return c.intoTemplateContentIfTemplate(insertionPoint{parent: lastTable.Parent, beforeSibling: lastTable})
	}
	// Table has no parent (e.g. still being constructed): foster the
	// content in front of the table in the stack.
	prevIdx := tableIdx + 1
	if prevIdx < c.open.Len() {
		prev := c.open.NodeAt(prevIdx)
		return c.intoTemplateContentIfTemplate(insertionPoint{parent: prev})
	}
	return c.intoTemplateContentIfTemplate(insertionPoint{parent: lastTable})
}

// intoTemplateContentIfTemplate redirects an insertion point whose parent
// is a template element into that template's content fragment, per the
// final step of "appropriate place for inserting a node".
func (c *Constructor) intoTemplateContentIfTemplate(ip insertionPoint) insertionPoint {
	if ip.parent == nil || ip.parent.LocalName != "template" || ip.parent.NamespaceURI != c.htmlNS() {
		return ip
	}
	if ip.parent.Content == nil {
		ip.parent.Content = c.adapter.CreateDocumentFragment()
	}
	return insertionPoint{parent: ip.parent.Content}
}

func (c *Constructor) insertComment(tok token.Token, override *domtree.Node) {
	node := c.adapter.CreateComment(tok.Data)
	ip := c.appropriatePlaceForInsertion(override)
	if ip.beforeSibling != nil {
		c.adapter.InsertBefore(ip.parent, node, ip.beforeSibling)
	} else {
		c.adapter.AppendChild(ip.parent, node)
	}
}

func (c *Constructor) insertCharacter(data string) {
	ip := c.appropriatePlaceForInsertion(nil)
	if ip.parent == c.document {
		return
	}
	if ip.beforeSibling != nil {
		c.adapter.InsertBefore(ip.parent, c.adapter.CreateText(data), ip.beforeSibling)
		return
	}
	c.adapter.AppendText(ip.parent, data)
}

// foreignAttributeAdjustments maps the raw attribute names the
// tokenizer scans to their namespaced (prefix, namespace) form for
// SVG/MathML content, per the standard's "adjust foreign attributes"
// table.
var foreignAttributeAdjustments = map[string]domtree.Attribute{
	"xlink:actuate": {Namespace: domtree.XLinkNamespace, Prefix: "xlink", Name: "actuate"},
	"xlink:arcrole": {Namespace: domtree.XLinkNamespace, Prefix: "xlink", Name: "arcrole"},
	"xlink:href":    {Namespace: domtree.XLinkNamespace, Prefix: "xlink", Name: "href"},
	"xlink:role":    {Namespace: domtree.XLinkNamespace, Prefix: "xlink", Name: "role"},
	"xlink:show":    {Namespace: domtree.XLinkNamespace, Prefix: "xlink", Name: "show"},
	"xlink:title":   {Namespace: domtree.XLinkNamespace, Prefix: "xlink", Name: "title"},
	"xlink:type":    {Namespace: domtree.XLinkNamespace, Prefix: "xlink", Name: "type"},
	"xml:lang":      {Namespace: domtree.XMLNamespace, Prefix: "xml", Name: "lang"},
	"xml:space":     {Namespace: domtree.XMLNamespace, Prefix: "xml", Name: "space"},
	"xmlns":         {Namespace: domtree.XMLNSNamespace, Name: "xmlns"},
	"xmlns:xlink":   {Namespace: domtree.XMLNSNamespace, Prefix: "xmlns", Name: "xlink"},
}

// svgTagNameAdjustments and svgAttributeAdjustments fix the casing the
// tokenizer necessarily lower-cased away, per the standard's SVG
// adjustment tables (a representative, non-exhaustive subset).
var svgTagNameAdjustments = map[string]string{
	"altglyph": "altGlyph", "altglyphdef": "altGlyphDef", "altglyphitem": "altGlyphItem",
	"animatecolor": "animateColor", "animatemotion": "animateMotion", "animatetransform": "animateTransform",
	"clippath": "clipPath", "feblend": "feBlend", "fecolormatrix": "feColorMatrix",
	"fecomponenttransfer": "feComponentTransfer", "fecomposite": "feComposite",
	"feconvolvematrix": "feConvolveMatrix", "fediffuselighting": "feDiffuseLighting",
	"fedisplacementmap": "feDisplacementMap", "fedistantlight": "feDistantLight",
	"fedropshadow": "feDropShadow", "feflood": "feFlood", "fefunca": "feFuncA",
	"fefuncb": "feFuncB", "fefuncg": "feFuncG", "fefuncr": "feFuncR", "fegaussianblur": "feGaussianBlur",
	"feimage": "feImage", "femerge": "feMerge", "femergenode": "feMergeNode",
	"femorphology": "feMorphology", "feoffset": "feOffset", "fepointlight": "fePointLight",
	"fespecularlighting": "feSpecularLighting", "fespotlight": "feSpotLight", "fetile": "feTile",
	"feturbulence": "feTurbulence", "foreignobject": "foreignObject", "glyphref": "glyphRef",
	"lineargradient": "linearGradient", "radialgradient": "radialGradient", "textpath": "textPath",
}

var svgAttributeAdjustments = map[string]string{
	"attributename": "attributeName", "attributetype": "attributeType", "basefrequency": "baseFrequency",
	"baseprofile": "baseProfile", "calcmode": "calcMode", "clippathunits": "clipPathUnits",
	"diffuseconstant": "diffuseConstant", "edgemode": "edgeMode", "filterunits": "filterUnits",
	"glyphref": "glyphRef", "gradienttransform": "gradientTransform", "gradientunits": "gradientUnits",
	"kernelmatrix": "kernelMatrix", "kernelunitlength": "kernelUnitLength", "keypoints": "keyPoints",
	"keysplines": "keySplines", "keytimes": "keyTimes", "lengthadjust": "lengthAdjust",
	"limitingconeangle": "limitingConeAngle", "markerheight": "markerHeight", "markerunits": "markerUnits",
	"markerwidth": "markerWidth", "maskcontentunits": "maskContentUnits", "maskunits": "maskUnits",
	"numoctaves": "numOctaves", "pathlength": "pathLength", "patterncontentunits": "patternContentUnits",
	"patterntransform": "patternTransform", "patternunits": "patternUnits", "pointsatx": "pointsAtX",
	"pointsaty": "pointsAtY", "pointsatz": "pointsAtZ", "preservealpha": "preserveAlpha",
	"preserveaspectratio": "preserveAspectRatio", "primitiveunits": "primitiveUnits", "refx": "refX",
	"refy": "refY", "repeatcount": "repeatCount", "repeatdur": "repeatDur",
	"requiredextensions": "requiredExtensions", "requiredfeatures": "requiredFeatures",
	"specularconstant": "specularConstant", "specularexponent": "specularExponent", "spreadmethod": "spreadMethod",
	"startoffset": "startOffset", "stddeviation": "stdDeviation", "stitchtiles": "stitchTiles",
	"surfacescale": "surfaceScale", "systemlanguage": "systemLanguage", "tablevalues": "tableValues",
	"targetx": "targetX", "targety": "targetY", "textlength": "textLength", "viewbox": "viewBox",
	"viewtarget": "viewTarget", "xchannelselector": "xChannelSelector", "ychannelselector": "yChannelSelector",
	"zoomandpan": "zoomAndPan",
}

func adjustAttributes(ns domtree.Namespace, attrs []token.Attribute) []domtree.Attribute {
	out := make([]domtree.Attribute, 0, len(attrs))
	for _, a := range attrs {
		if adj, ok := foreignAttributeAdjustments[a.Name]; ok {
			out = append(out, domtree.Attribute{Namespace: adj.Namespace, Prefix: adj.Prefix, Name: adj.Name, Value: a.Value})
			continue
		}
		name := a.Name
		if ns == domtree.SVGNamespace {
			if adj, ok := svgAttributeAdjustments[name]; ok {
				name = adj
			}
		}
		out = append(out, domtree.Attribute{Name: name, Value: a.Value})
	}
	return out
}

// createElementForToken builds an element node for a start tag token in
// the given namespace, with attribute/tag-name case adjustment for
// foreign content.
func (c *Constructor) createElementForToken(tok token.Token, ns domtree.Namespace) *domtree.Node {
	name := tok.Name
	if ns == domtree.SVGNamespace {
		if adj, ok := svgTagNameAdjustments[name]; ok {
			name = adj
		}
	}
	el := c.adapter.CreateElement(ns, name)
	el.Attributes = adjustAttributes(ns, tok.Attributes)
	if ns == c.htmlNS() && name == "template" {
		el.Content = c.adapter.CreateDocumentFragment()
	}
	return el
}

func (c *Constructor) insertHTMLElementForToken(tok token.Token) *domtree.Node {
	return c.insertForeignElementForToken(tok, c.htmlNS())
}

func (c *Constructor) insertForeignElementForToken(tok token.Token, ns domtree.Namespace) *domtree.Node {
	el := c.createElementForToken(tok, ns)
	ip := c.appropriatePlaceForInsertion(nil)
	if ip.beforeSibling != nil {
		c.adapter.InsertBefore(ip.parent, el, ip.beforeSibling)
	} else if ip.parent != nil {
		c.adapter.AppendChild(ip.parent, el)
	}
	c.open.Push(el)
	if tok.SelfClosing && ns != c.htmlNS() {
		c.src.AcknowledgeSelfClosing()
	}
	return el
}

// insertHTMLElementNamed is a convenience for synthesizing an element
// the algorithm inserts without a real token (e.g. implied <html>,
// <head>, <body>).
func (c *Constructor) insertHTMLElementNamed(name string) *domtree.Node {
	return c.insertHTMLElementForToken(token.Token{Type: token.StartTag, Name: name})
}

func isSpecial(n *domtree.Node) bool {
	return n.Type == domtree.ElementNode && domtree.SpecialElements[n.LocalName]
}

func isFormattingElement(name string) bool {
	switch name {
	case "a", "b", "big", "code", "em", "font", "i", "nobr", "s", "small", "strike", "strong", "tt", "u":
		return true
	}
	return false
}

// generateImpliedEndTags pops elements matching the "generate implied
// end tags" list, optionally excluding one tag name.
func (c *Constructor) generateImpliedEndTags(except string) {
	for {
		cur := c.currentNode()
		if cur == nil || cur.Type != domtree.ElementNode {
			return
		}
		if cur.LocalName == except {
			return
		}
		switch cur.LocalName {
		case "dd", "dt", "li", "optgroup", "option", "p", "rb", "rp", "rt", "rtc":
			c.open.Pop()
		default:
			return
		}
	}
}

// generateAllImpliedEndTagsThoroughly is the "thoroughly" variant used
// by the adoption agency algorithm and template end tags.
func (c *Constructor) generateAllImpliedEndTagsThoroughly() {
	for {
		cur := c.currentNode()
		if cur == nil || cur.Type != domtree.ElementNode {
			return
		}
		switch cur.LocalName {
		case "caption", "colgroup", "dd", "dt", "li", "optgroup", "option", "p",
			"rb", "rp", "rt", "rtc", "tbody", "td", "tfoot", "th", "thead", "tr":
			c.open.Pop()
		default:
			return
		}
	}
}

func (c *Constructor) closePElement() {
	c.generateImpliedEndTags("p")
	if cur := c.currentNode(); cur == nil || cur.LocalName != "p" {
		c.err(perr.UnclosedElements, "unclosed p element")
	}
	c.open.PopUntilTagIn("p")
}

// reconstructActiveFormattingElements implements the standard's
// algorithm of the same name, re-inserting formatting elements that
// were implicitly closed by a foster-parented or table-related element.
func (c *Constructor) reconstructActiveFormattingElements() {
	items := c.afe.Items()
	if len(items) == 0 {
		return
	}
	last := items[len(items)-1]
	if last == domtree.ScopeMarker || c.open.Contains(last) {
		return
	}

	entryIdx := len(items) - 1
	for {
		if entryIdx == 0 {
			break
		}
		entryIdx--
		entry := items[entryIdx]
		if entry == domtree.ScopeMarker || c.open.Contains(entry) {
			entryIdx++
			break
		}
	}

	for i := entryIdx; i < len(items); i++ {
		entry := items[i]
		clone := c.cloneNode(entry)
		ip := c.appropriatePlaceForInsertion(nil)
		if ip.beforeSibling != nil {
			c.adapter.InsertBefore(ip.parent, clone, ip.beforeSibling)
		} else {
			c.adapter.AppendChild(ip.parent, clone)
		}
		c.open.Push(clone)
		c.afe.InsertAt(c.afe.IndexOf(entry), clone)
		c.afe.Remove(entry)
		items = c.afe.Items()
	}
}

func (c *Constructor) cloneNode(n *domtree.Node) *domtree.Node {
	clone := domtree.NewElement(n.NamespaceURI, n.LocalName)
	clone.Prefix = n.Prefix
	clone.Attributes = append([]domtree.Attribute(nil), n.Attributes...)
	return clone
}

// adoptionAgencyAlgorithm implements the standard's algorithm for
// mis-nested formatting elements, bounded by an outer loop of 8 and an
// inner loop of 3 iterations.
func (c *Constructor) adoptionAgencyAlgorithm(tok token.Token) {
	subject := tok.Name

	if cur := c.currentNode(); cur != nil && cur.LocalName == subject && c.afe.IndexOf(cur) == -1 {
		c.open.Pop()
		return
	}

	for outer := 0; outer < 8; outer++ {
		var formattingElement *domtree.Node
		items := c.afe.Items()
		for i := len(items) - 1; i >= 0; i-- {
			if items[i] == domtree.ScopeMarker {
				break
			}
			if items[i].LocalName == subject {
				formattingElement = items[i]
				break
			}
		}
		if formattingElement == nil {
			c.inBodyEndTagOther(tok)
			return
		}
		if !c.open.Contains(formattingElement) {
			c.err(perr.MisnestedTag, "formatting element not in stack of open elements")
			c.afe.Remove(formattingElement)
			return
		}
		if !c.open.InScope(formattingElement.LocalName) {
			c.err(perr.MisnestedTag, "formatting element not in scope")
			return
		}

		feIndex := c.open.IndexOf(formattingElement)
		var furthestBlock *domtree.Node
		for i := feIndex + 1; i < c.open.Len(); i++ {
			n := c.open.NodeAt(c.open.Len() - 1 - i)
			if isSpecial(n) {
				furthestBlock = n
				break
			}
		}
		if furthestBlock == nil {
			for {
				top := c.open.Pop()
				if top == formattingElement {
					break
				}
			}
			c.afe.Remove(formattingElement)
			return
		}

		commonAncestorIdx := feIndex - 1
		var commonAncestor *domtree.Node
		if commonAncestorIdx >= 0 {
			commonAncestor = c.open.NodeAt(c.open.Len() - 1 - commonAncestorIdx)
		}

		bookmark := c.afe.IndexOf(formattingElement)
		node := furthestBlock
		lastNode := furthestBlock
		nodeIdx := c.open.IndexOf(node)

		for inner := 1; ; inner++ {
			nodeIdx--
			if nodeIdx < 0 {
				break
			}
			node = c.open.NodeAt(c.open.Len() - 1 - nodeIdx)
			if node == formattingElement {
				break
			}
			if inner > 3 && c.afe.Contains(node) {
				c.afe.Remove(node)
			}
			if !c.afe.Contains(node) {
				c.open.Remove(node)
				continue
			}
			clone := c.cloneNode(node)
			afIdx := c.afe.IndexOf(node)
			c.afe.InsertAt(afIdx, clone)
			c.afe.Remove(node)
			openIdx := c.open.IndexOf(node)
			c.open.InsertAt(openIdx, clone)
			c.open.Remove(node)
			node = clone
			if lastNode == furthestBlock {
				bookmark = c.afe.IndexOf(clone) + 1
			}
			c.adapter.AppendChild(node, lastNode)
			lastNode = node
			nodeIdx = c.open.IndexOf(node)
		}

		if commonAncestor != nil {
			switch commonAncestor.LocalName {
			case "table", "tbody", "tfoot", "thead", "tr":
				ip := c.appropriatePlaceForInsertion(commonAncestor)
				if ip.beforeSibling != nil {
					c.adapter.InsertBefore(ip.parent, lastNode, ip.beforeSibling)
				} else {
					c.adapter.AppendChild(ip.parent, lastNode)
				}
			default:
				c.adapter.AppendChild(commonAncestor, lastNode)
			}
		}

		clone := c.cloneNode(formattingElement)
		for _, child := range append([]*domtree.Node(nil), furthestBlock.Children...) {
			furthestBlock.RemoveChild(child)
			c.adapter.AppendChild(clone, child)
		}
		c.adapter.AppendChild(furthestBlock, clone)

		c.afe.Remove(formattingElement)
		c.afe.InsertAt(bookmark, clone)
		c.open.Remove(formattingElement)
		fbIdx := c.open.IndexOf(furthestBlock)
		c.open.InsertAt(fbIdx+1, clone)
	}
}

// resetInsertionModeAppropriately implements the standard's algorithm
// of the same name, used after fragment-parsing setup and by the
// select-in-table transitions.
func (c *Constructor) resetInsertionModeAppropriately() InsertionMode {
	for i := 0; i < c.open.Len(); i++ {
		node := c.open.NodeAt(i)
		last := i == c.open.Len()-1
		if last && c.contextElement != nil {
			node = c.contextElement
		}
		switch node.LocalName {
		case "select":
			for j := i; j < c.open.Len(); j++ {
				anc := c.open.NodeAt(j)
				if anc.LocalName == "template" {
					break
				}
				if anc.LocalName == "table" {
					return InSelectInTableMode
				}
			}
			return InSelectMode
		case "td", "th":
			if !last {
				return InCellMode
			}
		case "tr":
			return InRowMode
		case "tbody", "thead", "tfoot":
			return InTableBodyMode
		case "caption":
			return InCaptionMode
		case "colgroup":
			return InColumnGroupMode
		case "table":
			return InTableMode
		case "template":
			return c.templateModes[len(c.templateModes)-1]
		case "head":
			if !last {
				return InHeadMode
			}
		case "body":
			return InBodyMode
		case "frameset":
			return InFramesetMode
		case "html":
			if c.headElement == nil {
				return BeforeHeadMode
			}
			return AfterHeadMode
		}
		if last {
			return InBodyMode
		}
	}
	return InBodyMode
}
