package dom

import "strings"

// OuterText returns the markup of n including its own tags. A node that was parsed and not
// modified serializes exactly as it appeared in the (normalized) input. End tags are written only
// where the source had them; elements created with NewElement always get one unless void.
func (n *Node) OuterText() string {
	var b strings.Builder
	render(&b, n)
	return b.String()
}

// InnerText returns the markup of the children of n. For raw-text elements it is RawText.
func (n *Node) InnerText() string {
	var b strings.Builder
	renderChildren(&b, n)
	return b.String()
}

// String returns the OuterText of n.
func (n *Node) String() string {
	return n.OuterText()
}

func render(b *strings.Builder, n *Node) {
	switch n.Type {
	case RootNode:
		renderChildren(b, n)
	case TextNode:
		b.WriteString(n.Data)
	case ElementNode:
		b.WriteByte('<')
		b.WriteString(n.Data)
		for i := range n.attr {
			n.attr[i].writeTo(b)
		}
		b.WriteString(n.tail)
		if n.IsVoid() && !n.rawText {
			return
		}
		renderChildren(b, n)
		b.WriteString(n.endTag)
	case CommentNode:
		renderSpecial(b, n, "<!--", "-->")
	case CDATANode:
		renderSpecial(b, n, "<![CDATA[", "]]>")
	case DoctypeNode:
		renderSpecial(b, n, "<!DOCTYPE ", ">")
	}
}

func renderChildren(b *strings.Builder, n *Node) {
	if n.rawText {
		b.WriteString(n.RawText)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		render(b, c)
	}
}

// renderSpecial writes the source of a comment, CDATA or doctype node, or synthesizes it for
// nodes that were not parsed.
func renderSpecial(b *strings.Builder, n *Node, open, close string) {
	if n.src != "" {
		b.WriteString(n.src)
		return
	}
	b.WriteString(open)
	b.WriteString(n.Data)
	b.WriteString(close)
}
