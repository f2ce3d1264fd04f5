package dom

import (
	"testing"

	"github.com/antchfx/xpath"
	"github.com/stretchr/testify/require"
)

func TestXPath(t *testing.T) {
	doc := Parse(selectorDoc, DefaultOptions())
	tests := []struct {
		expr string
		want []string
	}{
		{"//p", []string{"p:One", "p:Two link", "p:Three"}},
		{"//div/p", []string{"p:One", "p:Two link"}},
		{"//li[@class='item']", []string{"li:b"}},
		{"//li[contains(@class, 'last')]", []string{"li:c"}},
		{"//ul/li[2]", []string{"li:b"}},
		{"//ul/li[last()]", []string{"li:c"}},
		{"//p[a]", []string{"p:Two link"}},
		{"//a/@href", []string{"a:link"}},
		{"//h1/following-sibling::p", []string{"p:One", "p:Two link"}},
		{"//li[.='b']", []string{"li:b"}},
		{"//*[@disabled]", []string{"input:"}},
		{"//span", nil},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := doc.XPath(tt.expr)
			require.NoError(t, err)
			require.Equal(t, tt.want, describe(got))
		})
	}
}

func TestXPathRelative(t *testing.T) {
	doc := Parse(selectorDoc, DefaultOptions())
	ul := doc.FindIndex("ul", 0)
	got, err := ul.XPath("./li")
	require.NoError(t, err)
	require.Len(t, got, 3)

	got, err = ul.XPath("//p")
	require.NoError(t, err)
	require.Len(t, got, 3, "absolute paths start at the root")
}

func TestEvaluateXPath(t *testing.T) {
	doc := Parse(selectorDoc+`<script>var x = 1;</script>`, DefaultOptions())

	v, err := doc.EvaluateXPath("count(//li)")
	require.NoError(t, err)
	require.Equal(t, float64(3), v)

	v, err = doc.EvaluateXPath("string(//a/@href)")
	require.NoError(t, err)
	require.Equal(t, "http://a.com/x.pdf", v)

	v, err = doc.EvaluateXPath("string(//script)")
	require.NoError(t, err)
	require.Equal(t, "var x = 1;", v)

	v, err = doc.EvaluateXPath("boolean(//input[@name='q'])")
	require.NoError(t, err)
	require.Equal(t, true, v)

	v, err = doc.EvaluateXPath("//h1")
	require.NoError(t, err)
	require.Equal(t, []string{"h1:Title"}, describe(v.([]*Node)))
}

func TestXPathErrors(t *testing.T) {
	doc := Parse(`<p>x</p>`, DefaultOptions())
	_, err := doc.XPath("//p[")
	require.Error(t, err)
	_, err = doc.EvaluateXPath("count(")
	require.Error(t, err)
}

func TestNavigator(t *testing.T) {
	doc := Parse(`<!--c--><p id="a" class="b">x</p>`, DefaultOptions())
	nav := NewNavigator(doc)
	require.Equal(t, xpath.RootNode, nav.NodeType())
	require.True(t, nav.MoveToChild())
	require.Equal(t, xpath.CommentNode, nav.NodeType())
	require.True(t, nav.MoveToNext())
	require.Equal(t, xpath.ElementNode, nav.NodeType())
	require.Equal(t, "p", nav.LocalName())
	require.Equal(t, "x", nav.Value())

	require.True(t, nav.MoveToNextAttribute())
	require.Equal(t, xpath.AttributeNode, nav.NodeType())
	require.Equal(t, "id", nav.LocalName())
	require.Equal(t, "a", nav.Value())
	require.True(t, nav.MoveToNextAttribute())
	require.Equal(t, "b", nav.Value())
	require.False(t, nav.MoveToNextAttribute())
	require.True(t, nav.MoveToParent())
	require.Equal(t, "p", nav.LocalName())

	cp := nav.Copy().(*Navigator)
	require.True(t, nav.MoveToFirst())
	require.Equal(t, xpath.CommentNode, nav.NodeType())
	require.True(t, nav.MoveTo(cp))
	require.Equal(t, "p", nav.Current().Tag)
	nav.MoveToRoot()
	require.Equal(t, doc, nav.Current())
}
