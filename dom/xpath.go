package dom

import (
	"strings"

	"github.com/antchfx/xpath"
)

// Navigator implements xpath.NodeNavigator over a Node tree.
type Navigator struct {
	root, cur *Node
	attr      int // index of the current attribute, -1 when positioned on a node
}

var _ xpath.NodeNavigator = (*Navigator)(nil)

// NewNavigator returns a navigator positioned at n. The root of the navigation is the root of
// the tree of n.
func NewNavigator(n *Node) *Navigator {
	return &Navigator{root: n.Root(), cur: n, attr: -1}
}

// Current returns the node the navigator is positioned at.
func (n *Navigator) Current() *Node {
	return n.cur
}

func (n *Navigator) NodeType() xpath.NodeType {
	if n.attr != -1 {
		return xpath.AttributeNode
	}
	switch n.cur.Type {
	case ElementNode:
		return xpath.ElementNode
	case TextNode, CDATANode:
		return xpath.TextNode
	case CommentNode, DoctypeNode:
		return xpath.CommentNode
	}
	return xpath.RootNode
}

func (n *Navigator) LocalName() string {
	if n.attr != -1 {
		return strings.ToLower(n.cur.attr[n.attr].Key)
	}
	return n.cur.Tag
}

func (n *Navigator) Prefix() string { return "" }

func (n *Navigator) Value() string {
	if n.attr != -1 {
		return n.cur.attr[n.attr].Val
	}
	switch n.cur.Type {
	case ElementNode, RootNode:
		return textContent(n.cur)
	}
	return n.cur.Data
}

func (n *Navigator) Copy() xpath.NodeNavigator {
	cp := *n
	return &cp
}

func (n *Navigator) MoveToRoot() {
	n.cur = n.root
	n.attr = -1
}

func (n *Navigator) MoveToParent() bool {
	if n.attr != -1 {
		n.attr = -1
		return true
	}
	if n.cur.Parent == nil {
		return false
	}
	n.cur = n.cur.Parent
	return true
}

func (n *Navigator) MoveToNextAttribute() bool {
	if n.attr+1 >= len(n.cur.attr) {
		return false
	}
	n.attr++
	return true
}

func (n *Navigator) MoveToChild() bool {
	if n.attr != -1 || n.cur.FirstChild == nil {
		return false
	}
	n.cur = n.cur.FirstChild
	return true
}

func (n *Navigator) MoveToFirst() bool {
	if n.attr != -1 || n.cur.PrevSibling == nil {
		return false
	}
	for n.cur.PrevSibling != nil {
		n.cur = n.cur.PrevSibling
	}
	return true
}

func (n *Navigator) MoveToNext() bool {
	if n.attr != -1 || n.cur.NextSibling == nil {
		return false
	}
	n.cur = n.cur.NextSibling
	return true
}

func (n *Navigator) MoveToPrevious() bool {
	if n.attr != -1 || n.cur.PrevSibling == nil {
		return false
	}
	n.cur = n.cur.PrevSibling
	return true
}

func (n *Navigator) MoveTo(to xpath.NodeNavigator) bool {
	other, ok := to.(*Navigator)
	if !ok || other.root != n.root {
		return false
	}
	n.cur = other.cur
	n.attr = other.attr
	return true
}

// textContent concatenates the text under n, raw-text content included.
func textContent(n *Node) string {
	if n.rawText {
		return n.RawText
	}
	var b strings.Builder
	for c := range n.Descendants() {
		switch {
		case c.Type == TextNode || c.Type == CDATANode:
			b.WriteString(c.Data)
		case c.rawText:
			b.WriteString(c.RawText)
		}
	}
	return b.String()
}

// XPath returns the nodes selected by the XPath expression evaluated with n as the context node.
// Attribute results are reported as the element that owns them.
func (n *Node) XPath(expr string) ([]*Node, error) {
	x, err := xpath.Compile(expr)
	if err != nil {
		return nil, err
	}
	var res []*Node
	seen := make(map[*Node]bool)
	it := x.Select(NewNavigator(n))
	for it.MoveNext() {
		c := it.Current().(*Navigator).cur
		if !seen[c] {
			seen[c] = true
			res = append(res, c)
		}
	}
	return res, nil
}

// EvaluateXPath evaluates an XPath expression with n as the context node. The result is a
// float64, string or bool for scalar expressions, or the selected nodes as []*Node.
func (n *Node) EvaluateXPath(expr string) (any, error) {
	x, err := xpath.Compile(expr)
	if err != nil {
		return nil, err
	}
	v := x.Evaluate(NewNavigator(n))
	if it, ok := v.(*xpath.NodeIterator); ok {
		var res []*Node
		for it.MoveNext() {
			res = append(res, it.Current().(*Navigator).cur)
		}
		return res, nil
	}
	return v, nil
}
