package treeconstructor

import "strings"

// Doctype public-identifier prefixes that force quirks mode, and the
// handful of literal comparisons and the ibmxhtml system identifier,
// per the standard's DOCTYPE sniffing table. Carried over from the
// original implementation's own constant block (see DESIGN.md).
const (
	w3oDTDW3HTMLStrict3EN     = "-//W3O//DTD W3 HTML Strict 3.0//EN//"
	w3cDTDHTML4TransitionalEN = "-/W3C/DTD HTML 4.0 Transitional/EN"
	htmlLiteral               = "HTML"
	ibmxhtmlSystemID          = "http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd"

	w3cDTDHTML401Frameset      = "-//W3C//DTD HTML 4.01 Frameset//"
	w3cDTDHTML401Transitional = "-//W3C//DTD HTML 4.01 Transitional//"
	w3cDTDXHTML1Frameset       = "-//W3C//DTD XHTML 1.0 Frameset//"
	w3cDTDXHTML1Transitional  = "-//W3C//DTD XHTML 1.0 Transitional//"
)

var quirksPublicIDPrefixes = []string{
	"+//Silmaril//dtd html Pro v0r11 19970101//",
	"-//AS//DTD HTML 3.0 asWedit + extensions//",
	"-//AdvaSoft Ltd//DTD HTML 3.0 asWedit + extensions//",
	"-//IETF//DTD HTML 2.0 Level 1//",
	"-//IETF//DTD HTML 2.0 Level 2//",
	"-//IETF//DTD HTML 2.0 Strict Level 1//",
	"-//IETF//DTD HTML 2.0 Strict Level 2//",
	"-//IETF//DTD HTML 2.0 Strict//",
	"-//IETF//DTD HTML 2.0//",
	"-//IETF//DTD HTML 2.1E//",
	"-//IETF//DTD HTML 3.0//",
	"-//IETF//DTD HTML 3.2 Final//",
	"-//IETF//DTD HTML 3.2//",
	"-//IETF//DTD HTML 3//",
	"-//IETF//DTD HTML Level 0//",
	"-//IETF//DTD HTML Level 1//",
	"-//IETF//DTD HTML Level 2//",
	"-//IETF//DTD HTML Level 3//",
	"-//IETF//DTD HTML Strict Level 0//",
	"-//IETF//DTD HTML Strict Level 1//",
	"-//IETF//DTD HTML Strict Level 2//",
	"-//IETF//DTD HTML Strict Level 3//",
	"-//IETF//DTD HTML Strict//",
	"-//IETF//DTD HTML//",
	"-//Metrius//DTD Metrius Presentational//",
	"-//Microsoft//DTD Internet Explorer 2.0 HTML Strict//",
	"-//Microsoft//DTD Internet Explorer 2.0 HTML//",
	"-//Microsoft//DTD Internet Explorer 2.0 Tables//",
	"-//Microsoft//DTD Internet Explorer 3.0 HTML Strict//",
	"-//Microsoft//DTD Internet Explorer 3.0 HTML//",
	"-//Microsoft//DTD Internet Explorer 3.0 Tables//",
	"-//Netscape Comm. Corp.//DTD HTML//",
	"-//Netscape Comm. Corp.//DTD Strict HTML//",
	"-//O'Reilly and Associates//DTD HTML 2.0//",
	"-//O'Reilly and Associates//DTD HTML Extended 1.0//",
	"-//O'Reilly and Associates//DTD HTML Extended Relaxed 1.0//",
	"-//SQ//DTD HTML 2.0 HoTMetaL + extensions//",
	"-//SoftQuad Software//DTD HoTMetaL PRO 6.0::19990601::extensions to HTML 4.0//",
	"-//SoftQuad//DTD HoTMetaL PRO 4.0::19971010::extensions to HTML 4.0//",
	"-//Spyglass//DTD HTML 2.0 Extended//",
	"-//Sun Microsystems Corp.//DTD HotJava HTML//",
	"-//Sun Microsystems Corp.//DTD HotJava Strict HTML//",
	"-//W3C//DTD HTML 3 1995-03-24//",
	"-//W3C//DTD HTML 3.2 Draft//",
	"-//W3C//DTD HTML 3.2 Final//",
	"-//W3C//DTD HTML 3.2//",
	"-//W3C//DTD HTML 3.2S Draft//",
	"-//W3C//DTD HTML 4.0 Frameset//",
	"-//W3C//DTD HTML 4.0 Transitional//",
	"-//W3C//DTD HTML Experimental 19960712//",
	"-//W3C//DTD HTML Experimental 970421//",
	"-//W3C//DTD W3 HTML//",
	"-//W3O//DTD W3 HTML 3.0//",
	"-//WebTechs//DTD Mozilla HTML 2.0//",
	"-//WebTechs//DTD Mozilla HTML//",
}

// isForceQuirks decides quirks mode for a doctype token per the
// standard's "initial" insertion-mode DOCTYPE handling.
func isForceQuirks(name, publicID, systemID string, hasPublicID, hasSystemID, forceQuirksFlag bool) bool {
	if forceQuirksFlag {
		return true
	}
	if name != "html" {
		return true
	}
	switch publicID {
	case w3oDTDW3HTMLStrict3EN, w3cDTDHTML4TransitionalEN, htmlLiteral:
		return true
	}
	if systemID == ibmxhtmlSystemID {
		return true
	}
	for _, prefix := range quirksPublicIDPrefixes {
		if strings.HasPrefix(publicID, prefix) {
			return true
		}
	}
	if !hasSystemID {
		if strings.HasPrefix(publicID, w3cDTDHTML401Frameset) || strings.HasPrefix(publicID, w3cDTDHTML401Transitional) {
			return true
		}
	}
	return false
}

// isLimitedQuirks decides limited-quirks mode for a doctype token.
func isLimitedQuirks(publicID, systemID string, hasSystemID bool) bool {
	if strings.HasPrefix(publicID, w3cDTDXHTML1Frameset) || strings.HasPrefix(publicID, w3cDTDXHTML1Transitional) {
		return true
	}
	if hasSystemID {
		if strings.HasPrefix(publicID, w3cDTDHTML401Frameset) || strings.HasPrefix(publicID, w3cDTDHTML401Transitional) {
			return true
		}
	}
	return false
}
