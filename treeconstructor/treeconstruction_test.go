package treeconstructor_test

import (
	"os"
	"strings"
	"testing"

	"github.com/CourtBouillon/tinyhtml5/perr"
	"github.com/CourtBouillon/tinyhtml5/tokenizer"
	"github.com/CourtBouillon/tinyhtml5/treeconstructor"
)

// treeConstructionCase is one html5lib-style "#data"/"#document" fixture:
// an input document and the tree dump it must produce.
type treeConstructionCase struct {
	input    string
	expected string
}

// loadTreeConstructionCases parses a .dat file in the html5lib
// tree-construction test format: records separated by "#data\n", each
// holding the input markup, an "#errors" section (unchecked here), and
// a "#document" section holding the expected Node.String() dump.
func loadTreeConstructionCases(t *testing.T, path string) []treeConstructionCase {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var cases []treeConstructionCase
	for _, block := range strings.Split(string(data), "#data\n")[1:] {
		lines := strings.Split(block, "\n")

		var in strings.Builder
		i := 0
		for ; i < len(lines) && lines[i] != "#errors"; i++ {
			in.WriteString(lines[i])
			in.WriteString("\n")
		}
		for ; i < len(lines) && lines[i] != "#document"; i++ {
		}
		i++ // past the "#document" marker itself

		expected := "#document\n"
		for ; i < len(lines) && lines[i] != ""; i++ {
			expected += lines[i] + "\n"
		}

		cases = append(cases, treeConstructionCase{
			input:    strings.TrimSuffix(in.String(), "\n"),
			expected: strings.TrimRight(expected, "\n"),
		})
	}
	return cases
}

func TestTreeConstructionFixtures(t *testing.T) {
	for _, tc := range loadTreeConstructionCases(t, "testdata/basic.dat") {
		t.Run(tc.input, func(t *testing.T) {
			errs := perr.NewSink(nil)
			tok := tokenizer.New(strings.NewReader(tc.input), errs, nil)
			c := treeconstructor.New(tok, nil, errs, nil)
			doc, err := c.Construct()
			if err != nil {
				t.Fatalf("Construct: %v", err)
			}
			if got := doc.String(); got != tc.expected {
				t.Errorf("wrong document for %q.\n--- want ---\n%s\n--- got ---\n%s", tc.input, tc.expected, got)
			}
		})
	}
}
