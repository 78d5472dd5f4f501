package domtree

// Namespace identifies which vocabulary an element or attribute belongs
// to, per the standard's namespace table.
type Namespace string

const (
	HTMLNamespace   Namespace = "http://www.w3.org/1999/xhtml"
	MathMLNamespace Namespace = "http://www.w3.org/1998/Math/MathML"
	SVGNamespace    Namespace = "http://www.w3.org/2000/svg"
	XLinkNamespace  Namespace = "http://www.w3.org/1999/xlink"
	XMLNamespace    Namespace = "http://www.w3.org/XML/1998/namespace"
	XMLNSNamespace  Namespace = "http://www.w3.org/2000/xmlns/"
)

// SpecialElements is the standard's "special" category, used by the
// tree constructor's isSpecial check. The tokenizer does not consult it:
// content-model switches are pushed into the tokenizer by the tree
// constructor.
var SpecialElements = map[string]bool{
	"address": true, "applet": true, "area": true, "article": true, "aside": true,
	"base": true, "basefont": true, "bgsound": true, "blockquote": true, "body": true,
	"br": true, "button": true, "caption": true, "center": true, "col": true,
	"colgroup": true, "dd": true, "details": true, "dir": true, "div": true,
	"dl": true, "dt": true, "embed": true, "fieldset": true, "figcaption": true,
	"figure": true, "footer": true, "form": true, "frame": true, "frameset": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"head": true, "header": true, "hgroup": true, "hr": true, "html": true,
	"iframe": true, "img": true, "input": true, "keygen": true, "li": true,
	"link": true, "listing": true, "main": true, "marquee": true, "menu": true,
	"meta": true, "nav": true, "noembed": true, "noframes": true, "noscript": true,
	"object": true, "ol": true, "p": true, "param": true, "plaintext": true,
	"pre": true, "script": true, "section": true, "select": true, "source": true,
	"style": true, "summary": true, "table": true, "tbody": true, "td": true,
	"template": true, "textarea": true, "tfoot": true, "th": true, "thead": true,
	"title": true, "tr": true, "track": true, "ul": true, "wbr": true, "xmp": true,
	// MathML/SVG special elements.
	"mi": true, "mo": true, "mn": true, "ms": true, "mtext": true,
	"annotation-xml": true, "foreignObject": true, "desc": true,
}

// IsMathMLTextIntegrationPoint reports whether n is one of the five
// MathML elements markup can freely mix HTML content into.
func IsMathMLTextIntegrationPoint(n *Node) bool {
	if n == nil || n.NamespaceURI != MathMLNamespace {
		return false
	}
	switch n.LocalName {
	case "mi", "mo", "mn", "ms", "mtext":
		return true
	}
	return false
}

// IsHTMLIntegrationPoint reports whether n is a foreign element that
// nonetheless accepts HTML content directly, per the standard's
// definition (an SVG foreignObject/desc/title, or a MathML
// annotation-xml with a text/html or application/xhtml+xml encoding).
func IsHTMLIntegrationPoint(n *Node) bool {
	if n == nil {
		return false
	}
	if n.NamespaceURI == SVGNamespace {
		switch n.LocalName {
		case "foreignObject", "desc", "title":
			return true
		}
		return false
	}
	if n.NamespaceURI == MathMLNamespace && n.LocalName == "annotation-xml" {
		enc, ok := n.Attr("encoding")
		if !ok {
			return false
		}
		switch normalizeASCIILower(enc) {
		case "text/html", "application/xhtml+xml":
			return true
		}
	}
	return false
}

func normalizeASCIILower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
