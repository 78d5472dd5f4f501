package tinyhtml5_test

import (
	"fmt"

	"github.com/CourtBouillon/tinyhtml5"
)

func ExampleParseString() {
	doc, err := tinyhtml5.ParseString("<title>Example</title><p>Hello, world!</p>")
	if err != nil {
		panic(err)
	}
	title := findFirst(doc, "title")
	fmt.Println(textContent(title))
	// Output: Example
}
