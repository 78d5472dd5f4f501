package token_test

import (
	"testing"

	"github.com/CourtBouillon/tinyhtml5/token"
)

func TestBuilderCommitAttributeDropsDuplicate(t *testing.T) {
	b := token.NewBuilder()
	b.StartNewAttribute()
	b.WriteAttributeName('a')
	b.WriteAttributeValue('1')
	if dup := b.CommitAttribute(); dup {
		t.Fatal("first commit of \"a\" should not be a duplicate")
	}

	b.StartNewAttribute()
	b.WriteAttributeName('a')
	b.WriteAttributeValue('2')
	if dup := b.CommitAttribute(); !dup {
		t.Fatal("second commit of \"a\" should be reported as a duplicate")
	}

	tok := b.StartTagToken()
	if len(tok.Attributes) != 1 || tok.Attributes[0].Value != "1" {
		t.Fatalf("expected the first value to win, got %+v", tok.Attributes)
	}
}

func TestBuilderResetClearsAttributes(t *testing.T) {
	b := token.NewBuilder()
	b.StartNewAttribute()
	b.WriteAttributeName('x')
	b.CommitAttribute()

	b.Reset()
	tok := b.StartTagToken()
	if len(tok.Attributes) != 0 {
		t.Fatalf("expected no attributes after Reset, got %+v", tok.Attributes)
	}
}

func TestTokenAttrLookup(t *testing.T) {
	tok := token.Token{Attributes: []token.Attribute{{Name: "id", Value: "x"}}}
	v, ok := tok.Attr("id")
	if !ok || v != "x" {
		t.Fatalf("Attr(id) = %q, %v, want x, true", v, ok)
	}
	if _, ok := tok.Attr("missing"); ok {
		t.Error("Attr(missing) should report ok=false")
	}
}
