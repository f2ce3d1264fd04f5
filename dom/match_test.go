package dom

import (
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// oracleDoc is well-formed so the browser-grade parser builds the same element tree, apart from
// the implied html, head and body elements.
const oracleDoc = `<div id="n1" class="page">
<header id="n2" class="top bar"><h1 id="n3" title="Hello World">Title</h1><nav id="n4"><a id="n5" href="/a" class="nav-link">A</a><a id="n6" href="/b.pdf" class="nav-link active">B</a></nav></header>
<section id="n7" class="content" lang="en-GB"><p id="n8" class="lead">x</p><p id="n9">y <span id="n10" data-role="note">z</span></p><ol id="n11"><li id="n12">1</li><li id="n13" class="odd">2</li><li id="n14">3</li></ol></section>
<footer id="n15"><p id="n16" class="lead small">f</p><form id="n17"><input id="n18" name="q" type="text"><button id="n19" type="submit">Go</button></form></footer>
</div>`

var oracleSelectors = []string{
	"p",
	"div p",
	"section > p",
	"header a",
	"a.nav-link",
	"a.nav-link.active",
	".lead",
	"p.lead.small",
	"#n9 span",
	"h1 + nav",
	"h1 ~ nav",
	"p + ol",
	"p ~ ol",
	"li + li",
	"li ~ li",
	"[title]",
	"[title='Hello World']",
	`a[href^="/"]`,
	`a[href$=".pdf"]`,
	`a[href*=b]`,
	"[class~=lead]",
	"[lang|=en]",
	"[data-role]",
	"ol > li.odd",
	"header, footer",
	"footer p, section p, p.lead",
	"div section ol li",
	"div > section > ol > li",
	"nav > a + a",
	"form > *",
	"[id]",
	"span, li, a",
}

func cascadiaIDs(t *testing.T, doc *html.Node, selector string) []string {
	t.Helper()
	sel, err := cascadia.ParseGroup(selector)
	require.NoError(t, err)
	var ids []string
	for _, n := range cascadia.QueryAll(doc, sel) {
		for _, a := range n.Attr {
			if a.Key == "id" {
				ids = append(ids, a.Val)
			}
		}
	}
	return ids
}

func findIDs(doc *Node, selector string) []string {
	var ids []string
	for _, n := range doc.Find(selector) {
		if id := n.ID(); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func TestFindAgreesWithCascadia(t *testing.T) {
	ref, err := html.Parse(strings.NewReader(oracleDoc))
	require.NoError(t, err)
	doc := Parse(oracleDoc, DefaultOptions())

	for _, selector := range oracleSelectors {
		t.Run(selector, func(t *testing.T) {
			want := cascadiaIDs(t, ref, selector)
			got := findIDs(doc, selector)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Find(%q) mismatch (-cascadia +got):\n%s", selector, diff)
			}
		})
	}
}
