package dom

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNodeMutationErrors(t *testing.T) {
	doc := Parse(`<div id="a"><p>x</p><img><textarea>t</textarea></div><span></span>`, DefaultOptions())
	div := doc.FindIndex("div", 0)
	p := doc.FindIndex("p", 0)
	img := doc.FindIndex("img", 0)
	textarea := doc.FindIndex("textarea", 0)
	span := doc.FindIndex("span", 0)

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"append_to_void", func() error { return img.AppendChild(NewText("x")) }, ErrVoidElement},
		{"append_to_raw_text", func() error { return textarea.AppendChild(NewText("x")) }, ErrRawTextElement},
		{"append_to_text", func() error { return p.FirstChild.AppendChild(NewText("x")) }, ErrNotElement},
		{"append_attached", func() error { return div.AppendChild(span) }, ErrAttached},
		{"append_root", func() error { return div.AppendChild(&Node{Type: RootNode}) }, ErrNotElement},
		{"insert_before_non_child", func() error { return div.InsertBefore(NewText("x"), span) }, ErrNotChild},
		{"remove_non_child", func() error { return div.RemoveChild(span) }, ErrNotChild},
		{"detach_detached", func() error { return NewElement("b").Detach() }, ErrDetached},
		{"set_raw_text", func() error { return p.SetRawText("x") }, ErrNotRawText},
		{"set_attr_on_text", func() error { return p.FirstChild.SetAttr("a", "b") }, ErrNotElement},
		{"set_attr_bad_name", func() error { return p.SetAttr("a b", "c") }, ErrInvalidAttrName},
		{"set_attr_empty_name", func() error { return p.SetAttr("", "c") }, ErrInvalidAttrName},
		{"remove_attr_on_text", func() error { return p.FirstChild.RemoveAttr("a") }, ErrNotElement},
		{"replace_children_void", func() error { return img.ReplaceChildren(NewText("x")) }, ErrVoidElement},
		{
			"replace_children_duplicate",
			func() error {
				b := NewElement("b")
				return p.ReplaceChildren(b, b)
			},
			ErrAttached,
		},
		{
			"cycle",
			func() error {
				outer, inner := NewElement("div"), NewElement("span")
				if err := outer.AppendChild(inner); err != nil {
					return err
				}
				return inner.AppendChild(outer)
			},
			ErrCycle,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			require.True(t, errors.Is(err, tt.want), "got %v", err)
			var cerr *ContractError
			require.True(t, errors.As(err, &cerr))
		})
	}

	// Failed calls leave the tree untouched.
	require.Equal(t, `<div id="a"><p>x</p><img><textarea>t</textarea></div><span></span>`, doc.OuterText())
}

func TestNodeMutation(t *testing.T) {
	doc := Parse(`<ul><li>a</li><li>c</li></ul>`, DefaultOptions())
	ul := doc.FirstChild
	c := ul.LastChild

	b := NewElement("li")
	require.NoError(t, b.AppendChild(NewText("b")))
	require.NoError(t, ul.InsertBefore(b, c))
	require.Equal(t, `<ul><li>a</li><li>b</li><li>c</li></ul>`, doc.OuterText())
	require.Equal(t, b, c.PrevSibling)
	require.Equal(t, ul, b.Parent)

	require.NoError(t, ul.RemoveChild(ul.FirstChild))
	require.Equal(t, b, ul.FirstChild)
	require.Nil(t, b.PrevSibling)

	require.NoError(t, c.Detach())
	require.Nil(t, c.Parent)
	require.Equal(t, b, ul.LastChild)
	require.Equal(t, `<li>c</li>`, c.OuterText(), "a detached subtree keeps its content")

	require.NoError(t, ul.ReplaceChildren(c))
	require.Nil(t, b.Parent)
	require.Equal(t, `<ul><li>c</li></ul>`, doc.OuterText())

	require.NoError(t, ul.ReplaceChildren())
	require.Equal(t, `<ul></ul>`, doc.OuterText())
}

func TestNodeNavigation(t *testing.T) {
	doc := Parse(`<div> <b>1</b> text <i>2</i> <!--c--> </div>`, DefaultOptions())
	div := doc.FirstChild
	require.Len(t, div.Children(), 7)
	elems := div.ChildElements()
	require.Len(t, elems, 2)
	require.Equal(t, "b", elems[0].Tag)
	require.Equal(t, elems[0], div.FirstElementChild())
	require.Equal(t, elems[1], elems[0].NextElementSibling())
	require.Equal(t, elems[0], elems[1].PrevElementSibling())
	require.Nil(t, elems[1].NextElementSibling())
	require.Nil(t, elems[0].PrevElementSibling())
	require.True(t, div.FirstChild.IsWhitespace())
	require.False(t, elems[0].FirstChild.IsWhitespace())
	require.Equal(t, "/div/i", elems[1].Path())
	require.Equal(t, "/", doc.Path())

	var tags []string
	for n := range doc.Descendants() {
		if n.Type == ElementNode {
			tags = append(tags, n.Tag)
		}
	}
	require.Equal(t, []string{"div", "b", "i"}, tags)
}

func TestNodeAttributes(t *testing.T) {
	doc := Parse(`<a ID="x" class=" one  two " HREF="/h" title='t' data-flag>y</a><img src="s.png">`, DefaultOptions())
	a := doc.FirstChild

	v, ok := a.Attr("id")
	require.True(t, ok)
	require.Equal(t, "x", v)
	_, ok = a.Attr("missing")
	require.False(t, ok)

	v, ok = a.Attr("data-flag")
	require.True(t, ok)
	require.Equal(t, "", v)
	require.True(t, a.HasAttr("DATA-FLAG"))

	require.Equal(t, "x", a.ID())
	require.Equal(t, "/h", a.Href())
	require.Equal(t, "t", a.Title())
	require.Equal(t, "s.png", doc.LastChild.Src())
	require.Equal(t, []string{"one", "two"}, a.Classes())
	require.True(t, a.HasClass("two"))
	require.False(t, a.HasClass("on"))

	attrs := a.Attrs()
	require.Len(t, attrs, 5)
	require.Equal(t, "ID", attrs[0].Key, "keys keep their case")
	require.False(t, attrs[4].HasValue)
	attrs[0].Val = "changed"
	require.Equal(t, "x", a.ID(), "Attrs returns a copy")

	require.Nil(t, NewText("x").Attrs())
	require.Equal(t, "", NewText("x").ID())
}

func TestNewElement(t *testing.T) {
	require.Equal(t, "<div></div>", NewElement("div").OuterText())
	require.Equal(t, "<br>", NewElement("br").OuterText())
	require.Equal(t, "<Span></Span>", NewElement("Span").OuterText())

	script := NewElement("script")
	require.True(t, script.IsRawText())
	require.NoError(t, script.SetRawText("a<b"))
	require.Equal(t, "<script>a<b</script>", script.OuterText())

	require.Equal(t, "<!--x-->", NewComment("x").OuterText())
	require.Equal(t, "a&b", NewText("a&b").OuterText())
	require.Equal(t, "Element", ElementNode.String())
	require.Equal(t, "StartTag", StartTagToken.String())
}
