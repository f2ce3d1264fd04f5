package dom

import (
	"errors"

	"github.com/beevik/etree"
)

// Errors wrapped by ContractError. They report misuse of the tree API, never malformed input.
var (
	ErrNotElement      = errors.New("not an element")
	ErrVoidElement     = errors.New("void element cannot have children")
	ErrRawTextElement  = errors.New("raw-text element cannot have children")
	ErrNotRawText      = errors.New("not a raw-text element")
	ErrNotChild        = errors.New("not a child of this node")
	ErrAttached        = errors.New("node is already attached")
	ErrDetached        = errors.New("node is detached")
	ErrCycle           = errors.New("node is an ancestor of the target")
	ErrInvalidAttrName = errors.New("invalid attribute name")
)

// ContractError is returned by tree mutations called in a way the tree cannot honour.
type ContractError struct {
	Op   string
	Path string
	Err  error

	node *Node
}

func newContractError(op string, n *Node, err error) *ContractError {
	return &ContractError{
		Op:   op,
		Path: n.Path(),
		Err:  err,
		node: n,
	}
}

func (e *ContractError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *ContractError) Unwrap() error {
	return e.Err
}

// HTMLContext renders the node the error refers to along with up to two significant siblings on
// each side, wrapped in its parent tag.
func (e *ContractError) HTMLContext() string {
	if e.node == nil {
		return ""
	}
	return renderErrorContext(buildErrorContext(e.node))
}

// errorContextBuilder is a type to organize helper functions for building error context trees.
type errorContextBuilder struct{}

func (b errorContextBuilder) addPrevSiblings(doc *etree.Element, n *Node) {
	var prev []*Node
	for s, c := n.PrevSibling, 0; s != nil; s = s.PrevSibling {
		// skip whitespace-only text nodes
		if s.IsWhitespace() {
			continue
		}
		if c == 2 {
			doc.AddChild(etree.NewText("..."))
			break
		}
		prev = append(prev, s)
		c++
	}
	for i := len(prev) - 1; i >= 0; i-- {
		b.addNode(doc, prev[i])
	}
}

func (b errorContextBuilder) addNextSiblings(doc *etree.Element, n *Node) {
	for s, c := n.NextSibling, 0; s != nil; s = s.NextSibling {
		if s.IsWhitespace() {
			continue
		}
		if c == 2 {
			doc.AddChild(etree.NewText("..."))
			break
		}
		b.addNode(doc, s)
		c++
	}
}

func (b errorContextBuilder) addNode(doc *etree.Element, n *Node) {
	switch n.Type {
	case ElementNode:
		el := etree.NewElement(n.Tag)
		for _, attr := range n.attr {
			el.CreateAttr(attr.Key, attr.Val)
		}
		switch {
		case n.FirstElementChild() != nil:
			el.AddChild(etree.NewText("..."))
		case n.rawText:
			el.SetText(n.RawText)
		default:
			el.SetText(n.InnerText())
		}
		doc.AddChild(el)
	case TextNode, CDATANode:
		if !n.IsWhitespace() {
			doc.AddChild(etree.NewText(n.Data))
		}
	case CommentNode:
		doc.AddChild(etree.NewComment(n.Data))
	}
}

func (b errorContextBuilder) wrapParent(doc *etree.Element, n *Node) *etree.Element {
	parent := n.Parent
	if parent == nil || parent.Type != ElementNode {
		return doc // do not wrap the root node
	}

	doc.Tag = parent.Tag
	for _, attr := range parent.attr {
		doc.CreateAttr(attr.Key, attr.Val)
	}

	wrapper := &etree.Element{}
	wrapper.AddChild(doc)

	return wrapper
}

// buildErrorContext creates an XML tree around n to provide context for an error. The returned
// element is an unnamed container.
func buildErrorContext(n *Node) *etree.Element {
	doc := &etree.Element{}
	b := errorContextBuilder{}
	b.addPrevSiblings(doc, n)
	b.addNode(doc, n)
	b.addNextSiblings(doc, n)
	return b.wrapParent(doc, n)
}

func renderErrorContext(ctx *etree.Element) string {
	doc := etree.NewDocument()
	for _, t := range append([]etree.Token(nil), ctx.Child...) {
		doc.AddChild(t)
	}
	s, err := doc.WriteToString()
	if err != nil {
		return ""
	}
	return s
}
