package treeconstructor

import (
	"testing"

	"github.com/CourtBouillon/tinyhtml5/token"
)

func makeDoctypeToken(name, publicID, systemID string, hasPublicID, hasSystemID bool) token.Token {
	return token.Token{
		Type:             token.DocType,
		Name:             name,
		PublicIdentifier: publicID,
		SystemIdentifier: systemID,
		HasPublicID:      hasPublicID,
		HasSystemID:      hasSystemID,
	}
}

type quirksTestcase struct {
	name              string
	publicID          string
	systemID          string
	hasPublicID       bool
	hasSystemID       bool
	forceQuirksFlag   bool
	wantForceQuirks   bool
	wantLimitedQuirks bool
}

var quirksTests = []quirksTestcase{
	{name: "html", wantForceQuirks: false, wantLimitedQuirks: false},
	{name: "html", forceQuirksFlag: true, wantForceQuirks: true},
	{name: "body", wantForceQuirks: true},
	{
		name: "html", hasPublicID: true,
		publicID:        "-//W3O//DTD W3 HTML Strict 3.0//EN//",
		wantForceQuirks: true,
	},
	{
		name: "html", hasPublicID: true,
		publicID:        "-//W3C//DTD HTML 4.01 Transitional//EN",
		wantForceQuirks: true,
	},
	{
		name: "html", hasPublicID: true, hasSystemID: true,
		publicID:          "-//W3C//DTD HTML 4.01 Frameset//EN",
		systemID:          "http://example.com/whatever.dtd",
		wantLimitedQuirks: true,
	},
}

func TestQuirksDetection(t *testing.T) {
	for _, tt := range quirksTests {
		t.Run(tt.name+"/"+tt.publicID, func(t *testing.T) {
			gotForce := isForceQuirks(tt.name, tt.publicID, tt.systemID, tt.hasPublicID, tt.hasSystemID, tt.forceQuirksFlag)
			if gotForce != tt.wantForceQuirks {
				t.Errorf("isForceQuirks() = %v, want %v", gotForce, tt.wantForceQuirks)
			}
			if gotForce {
				return
			}
			gotLimited := isLimitedQuirks(tt.publicID, tt.systemID, tt.hasSystemID)
			if gotLimited != tt.wantLimitedQuirks {
				t.Errorf("isLimitedQuirks() = %v, want %v", gotLimited, tt.wantLimitedQuirks)
			}
		})
	}
}

func TestIsConformingDoctype(t *testing.T) {
	if !isConformingDoctype(makeDoctypeToken("html", "", "", false, false)) {
		t.Error("bare <!DOCTYPE html> should be conforming")
	}
	if !isConformingDoctype(makeDoctypeToken("html", "", "about:legacy-compat", false, true)) {
		t.Error("about:legacy-compat system id should be conforming")
	}
	if isConformingDoctype(makeDoctypeToken("html", "", "http://example.com", false, true)) {
		t.Error("arbitrary system id should not be conforming")
	}
	if isConformingDoctype(makeDoctypeToken("html", "-//W3C//DTD HTML 4.01//EN", "", true, false)) {
		t.Error("any public id should not be conforming")
	}
}
