package dom

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"
)

func TestXML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"element", `<P Class=x>a &amp; b</P>`, `<p class="x">a &amp; b</p>`},
		{"void", `<p>a<br>b<img src="x.png" alt></p>`, `<p>a<br/>b<img src="x.png" alt=""/></p>`},
		{"implicit_end_tags", `<ul><li>a<li>b</ul>`, `<ul><li>a</li><li>b</li></ul>`},
		{"script", `<script>if (a<b) {}</script>`, `<script><![CDATA[if (a<b) {}]]></script>`},
		{"comment", `<!-- a -- b --><!DOCTYPE html>`, `<!-- a - - b -->`},
		{"bad_names", `<a 1x="y" "q"=z>t</a>`, `<a _1x="y" _q_="z">t</a>`},
		{"entities_in_attr", `<a title="&lt;x&gt;">t</a>`, `<a title="&lt;x&gt;">t</a>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse(tt.input, DefaultOptions())
			got, err := doc.XML().WriteToString()
			require.NoError(t, err)
			require.Equal(t, tt.want, got)

			// The output parses back.
			back := etree.NewDocument()
			require.NoError(t, back.ReadFromString(got))
		})
	}
}

func TestXMLSubtree(t *testing.T) {
	doc := Parse(`<div><p id="a">x</p></div>`, DefaultOptions())
	got, err := doc.FindIndex("p", 0).XML().WriteToString()
	require.NoError(t, err)
	require.Equal(t, `<p id="a">x</p>`, got)
}
