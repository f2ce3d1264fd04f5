package htmldom_test

import (
	"fmt"

	htmldom "github.com/dpotapov/go-htmldom"
)

func ExampleDocument_Find() {
	doc := htmldom.Parse(`<ul><li class=done>Write<li>Test<li class=done>Ship</ul>`)
	for _, li := range doc.Find("li.done") {
		fmt.Println(li.PlainText())
	}
	// Output:
	// Write
	// Ship
}

func ExampleDocument_FindWhere() {
	doc := htmldom.Parse(`<a href="/a">A</a><a href="https://b.example/">B</a><a>C</a>`)
	links, err := doc.FindWhere("a", `has("href") && !(attr("href") startsWith "/")`)
	if err != nil {
		panic(err)
	}
	for _, a := range links {
		fmt.Println(a.Href())
	}
	// Output:
	// https://b.example/
}
