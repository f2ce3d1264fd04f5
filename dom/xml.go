package dom

import (
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
)

// XML converts the subtree of n into a well-formed XML document. Tags and attribute names are
// lower-cased and entities in text and attribute values are decoded. Raw-text content becomes
// CDATA, doctypes are dropped.
//
// Names that are not valid XML names are replaced by an underscore-prefixed form so the output
// always parses.
func (n *Node) XML() *etree.Document {
	doc := etree.NewDocument()
	if n.Type == RootNode {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			xmlNode(&doc.Element, c)
		}
	} else {
		xmlNode(&doc.Element, n)
	}
	return doc
}

func xmlNode(dst *etree.Element, n *Node) {
	switch n.Type {
	case ElementNode:
		el := dst.CreateElement(xmlName(n.Tag))
		for _, attr := range n.attr {
			el.CreateAttr(xmlName(strings.ToLower(attr.Key)), html.UnescapeString(attr.Val))
		}
		if n.rawText {
			if n.RawText != "" {
				el.CreateCData(n.RawText)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			xmlNode(el, c)
		}
	case TextNode:
		dst.CreateText(html.UnescapeString(n.Data))
	case CDATANode:
		dst.CreateCData(n.Data)
	case CommentNode:
		// "--" is not allowed inside XML comments.
		dst.CreateComment(strings.ReplaceAll(n.Data, "--", "- -"))
	}
}

// xmlName makes name a valid XML name.
func xmlName(name string) string {
	var b strings.Builder
	for i, r := range name {
		start := r == '_' || r >= 0x80 || r < 0x80 && isASCIILetter(byte(r))
		rest := r == '-' || r == '.' || r == ':' || '0' <= r && r <= '9'
		switch {
		case start, i > 0 && rest:
			b.WriteRune(r)
		case i == 0 && rest:
			b.WriteByte('_')
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}
