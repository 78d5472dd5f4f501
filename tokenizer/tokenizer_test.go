package tokenizer_test

import (
	"io"
	"strings"
	"testing"

	"github.com/CourtBouillon/tinyhtml5/perr"
	"github.com/CourtBouillon/tinyhtml5/token"
	"github.com/CourtBouillon/tinyhtml5/tokenizer"
)

// firstStartTag runs in as far as the first start tag token and returns
// its collected attributes as a plain map, dropping duplicates the way
// token.Builder already does.
func firstStartTag(t *testing.T, in string) map[string]string {
	t.Helper()
	tok := tokenizer.New(strings.NewReader(in), nil, nil)
	for {
		tk, err := tok.NextToken()
		if err != nil {
			t.Fatalf("NextToken: %v", err)
		}
		if tk.Type == token.StartTag {
			attrs := map[string]string{}
			for _, a := range tk.Attributes {
				attrs[a.Name] = a.Value
			}
			return attrs
		}
	}
}

type attributeAccuracyTestcase struct {
	inHTML string
	attrs  map[string]string
}

var attributeAccuracyTests = []attributeAccuracyTestcase{
	{"<head></head>", map[string]string{}},
	{"<script src='123' onload='test'></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<a href='https://example.com' onclick='alert(1)'>Click this</a>", map[string]string{
		"href":    "https://example.com",
		"onclick": "alert(1)",
	}},
	{"<script src='123' src='456'></script>", map[string]string{
		"src": "123",
	}},
	{"<script src=123 onload=test></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<script ABC=123></script>", map[string]string{
		"abc": "123",
	}},
	{"<script abc='\x00123'></script>", map[string]string{
		"abc": "�123",
	}},
	{"<script\tabc=123></script>", map[string]string{
		"abc": "123",
	}},
}

func TestTokenizerAttributeAccuracy(t *testing.T) {
	for _, tt := range attributeAccuracyTests {
		tt := tt
		t.Run(tt.inHTML, func(t *testing.T) {
			got := firstStartTag(t, tt.inHTML)
			if len(got) != len(tt.attrs) {
				t.Fatalf("got %d attributes, want %d: %v", len(got), len(tt.attrs), got)
			}
			for name, want := range tt.attrs {
				if got[name] != want {
					t.Errorf("attribute %q = %q, want %q", name, got[name], want)
				}
			}
		})
	}
}

func TestTokenizerRCDataDoesNotOpenNewTags(t *testing.T) {
	tok := tokenizer.New(strings.NewReader("<b>ignored"), nil, nil)
	tok.SetState(tokenizer.RCDataState)
	tk, err := tok.NextToken()
	if err != nil {
		t.Fatalf("NextToken: %v", err)
	}
	if tk.Type != token.Character {
		t.Fatalf("got token type %v, want Character", tk.Type)
	}
}

func drainAll(t *testing.T, tok *tokenizer.Tokenizer) {
	t.Helper()
	for {
		if _, err := tok.NextToken(); err != nil {
			if err == io.EOF {
				return
			}
			t.Fatalf("NextToken: %v", err)
		}
	}
}

func TestScannerReportsControlCharacterInInputStream(t *testing.T) {
	errs := perr.NewSink(nil)
	tok := tokenizer.New(strings.NewReader("a\x01b"), errs, nil)
	drainAll(t, tok)

	var found bool
	for _, e := range errs.Errors() {
		if e.Kind == perr.ControlCharacterInInputStream {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a control-character-in-input-stream error, got %+v", errs.Errors())
	}
}

func TestScannerDoesNotReportPlainASCIIOrNull(t *testing.T) {
	errs := perr.NewSink(nil)
	tok := tokenizer.New(strings.NewReader("a\tb\nc\x00d"), errs, nil)
	drainAll(t, tok)

	for _, e := range errs.Errors() {
		if e.Kind == perr.ControlCharacterInInputStream || e.Kind == perr.SurrogateInInputStream || e.Kind == perr.NoncharacterInInputStream {
			t.Errorf("unexpected input-stream error for whitespace/NULL input: %+v", e)
		}
	}
}

func TestAcknowledgeSelfClosingFlipsToken(t *testing.T) {
	tok := tokenizer.New(strings.NewReader("<br/>"), nil, nil)
	tk, err := tok.NextToken()
	if err != nil {
		t.Fatalf("NextToken: %v", err)
	}
	if tk.Type != token.StartTag || !tk.SelfClosing {
		t.Fatalf("got %+v, want a self-closing start tag", tk)
	}
	if tk.Acknowledged == nil {
		t.Fatal("Acknowledged should be non-nil for a self-closing start tag")
	}
	if *tk.Acknowledged {
		t.Fatal("Acknowledged should start false")
	}
	tok.AcknowledgeSelfClosing()
	if !*tk.Acknowledged {
		t.Error("AcknowledgeSelfClosing should flip the token's own Acknowledged cell")
	}
}

func TestUnacknowledgedSelfClosingLeavesTokenFalse(t *testing.T) {
	tok := tokenizer.New(strings.NewReader("<br/>"), nil, nil)
	tk, err := tok.NextToken()
	if err != nil {
		t.Fatalf("NextToken: %v", err)
	}
	if tk.Acknowledged == nil || *tk.Acknowledged {
		t.Fatalf("got Acknowledged=%v, want a non-nil false cell before any acknowledgement", tk.Acknowledged)
	}
}

func TestTokenizerPosAdvancesWithInput(t *testing.T) {
	tok := tokenizer.New(strings.NewReader("ab"), nil, nil)
	line0, col0 := tok.Pos()
	drainAll(t, tok)
	line1, col1 := tok.Pos()
	if line1 < line0 || (line1 == line0 && col1 <= col0) {
		t.Errorf("Pos() should advance past input: start (%d,%d), end (%d,%d)", line0, col0, line1, col1)
	}
}
