// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// Modifications:
// Copyright 2024 Daniel Potapov
//  - Node keeps the source formatting of tags and attributes for exact serialization.
//  - Tree mutations report contract errors instead of panicking.

package dom

import (
	"strings"

	a "golang.org/x/net/html/atom"
)

// A NodeType is the type of a Node.
type NodeType uint32

const (
	RootNode NodeType = iota
	ElementNode
	TextNode
	CommentNode
	CDATANode
	DoctypeNode
)

func (t NodeType) String() string {
	switch t {
	case RootNode:
		return "Root"
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	case CDATANode:
		return "CDATA"
	case DoctypeNode:
		return "Doctype"
	}
	return "Unknown"
}

// A Node consists of a NodeType and some Data (tag name for element nodes, content for text,
// comment, CDATA and doctype nodes) and is part of a tree of Nodes. Element nodes may also have
// attributes. Raw-text elements (script, style, textarea) keep their content in RawText and never
// have children.
//
// A tree is not safe for concurrent mutation. Concurrent reads of an unmodified tree are safe.
type Node struct {
	Parent, FirstChild, LastChild, PrevSibling, NextSibling *Node

	Type     NodeType
	DataAtom a.Atom
	Data     string

	// Tag is the lower-cased tag name of an element node.
	Tag string

	// RawText is the verbatim content of a raw-text element.
	RawText string

	attr    []Attribute
	rawText bool

	// src is the exact source of comment, CDATA and doctype nodes, delimiters included.
	src string
	// tail is the end of the start tag after the last attribute, e.g. ">" or " />".
	tail string
	// endTag is the end tag as written, empty if the element was closed implicitly.
	endTag string
	// selfClosing is set for start tags ending with "/>".
	selfClosing bool
}

// NewElement returns a detached element node that serializes as <tag></tag>, or <tag> for void
// elements.
func NewElement(tag string) *Node {
	lower := strings.ToLower(tag)
	n := &Node{
		Type:     ElementNode,
		DataAtom: lookupAtom(lower),
		Data:     tag,
		Tag:      lower,
		tail:     ">",
	}
	switch n.DataAtom {
	case a.Script, a.Style, a.Textarea:
		n.rawText = true
	}
	if !n.IsVoid() {
		n.endTag = "</" + tag + ">"
	}
	return n
}

// NewText returns a detached text node. The text is serialized as given.
func NewText(text string) *Node {
	return &Node{Type: TextNode, Data: text}
}

// NewComment returns a detached comment node.
func NewComment(text string) *Node {
	return &Node{Type: CommentNode, Data: text}
}

// IsVoid reports whether n is an element that can have no children, such as <br> or <img>.
func (n *Node) IsVoid() bool {
	return n.Type == ElementNode && voidElements[n.DataAtom]
}

// IsRawText reports whether n is an element whose content is kept verbatim in RawText.
func (n *Node) IsRawText() bool {
	return n.Type == ElementNode && n.rawText
}

// IsWhitespace reports whether n is a text node containing only whitespace.
func (n *Node) IsWhitespace() bool {
	return n.Type == TextNode && strings.TrimLeft(n.Data, whitespace) == ""
}

// Children returns the child nodes of n in document order.
func (n *Node) Children() []*Node {
	var res []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		res = append(res, c)
	}
	return res
}

// ChildElements returns the element children of n in document order.
func (n *Node) ChildElements() []*Node {
	var res []*Node
	for c := n.FirstElementChild(); c != nil; c = c.NextElementSibling() {
		res = append(res, c)
	}
	return res
}

// FirstElementChild returns the first element child of n, or nil.
func (n *Node) FirstElementChild() *Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == ElementNode {
			return c
		}
	}
	return nil
}

// NextElementSibling returns the next sibling of n that is an element, or nil.
func (n *Node) NextElementSibling() *Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == ElementNode {
			return s
		}
	}
	return nil
}

// PrevElementSibling returns the previous sibling of n that is an element, or nil.
func (n *Node) PrevElementSibling() *Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == ElementNode {
			return s
		}
	}
	return nil
}

// Root returns the topmost ancestor of n, n itself if it has no parent.
func (n *Node) Root() *Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// Path returns a slash-separated list of the tag names from the root to n, e.g. "/html/body/p".
func (n *Node) Path() string {
	var parts []string
	for c := n; c != nil && c.Type != RootNode; c = c.Parent {
		switch c.Type {
		case ElementNode:
			parts = append(parts, c.Tag)
		case TextNode, CDATANode:
			parts = append(parts, "#text")
		case CommentNode:
			parts = append(parts, "#comment")
		case DoctypeNode:
			parts = append(parts, "#doctype")
		}
	}
	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(parts[i])
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

// canHaveChildren returns the reason why n cannot get children, or nil.
func (n *Node) canHaveChildren() error {
	switch {
	case n.Type != ElementNode && n.Type != RootNode:
		return ErrNotElement
	case n.IsVoid():
		return ErrVoidElement
	case n.rawText:
		return ErrRawTextElement
	}
	return nil
}

// checkInsert validates that c may become a child of n.
func (n *Node) checkInsert(op string, c *Node) error {
	if err := n.canHaveChildren(); err != nil {
		return newContractError(op, n, err)
	}
	if c.Parent != nil || c.PrevSibling != nil || c.NextSibling != nil {
		return newContractError(op, c, ErrAttached)
	}
	if c.Type == RootNode {
		return newContractError(op, c, ErrNotElement)
	}
	for p := n; p != nil; p = p.Parent {
		if p == c {
			return newContractError(op, c, ErrCycle)
		}
	}
	return nil
}

// InsertBefore inserts newChild as a child of n, immediately before oldChild in the sequence of
// n's children. oldChild may be nil, in which case newChild is appended to the end of n's
// children.
//
// It fails if newChild already has a parent or siblings, if n cannot have children, or if
// oldChild is not a child of n.
func (n *Node) InsertBefore(newChild, oldChild *Node) error {
	if err := n.checkInsert("InsertBefore", newChild); err != nil {
		return err
	}
	if oldChild != nil && oldChild.Parent != n {
		return newContractError("InsertBefore", oldChild, ErrNotChild)
	}
	var prev, next *Node
	if oldChild != nil {
		prev, next = oldChild.PrevSibling, oldChild
	} else {
		prev = n.LastChild
	}
	if prev != nil {
		prev.NextSibling = newChild
	} else {
		n.FirstChild = newChild
	}
	if next != nil {
		next.PrevSibling = newChild
	} else {
		n.LastChild = newChild
	}
	newChild.Parent = n
	newChild.PrevSibling = prev
	newChild.NextSibling = next
	return nil
}

// AppendChild adds a node c as the last child of n.
//
// It fails if c already has a parent or siblings, or if n cannot have children.
func (n *Node) AppendChild(c *Node) error {
	if err := n.checkInsert("AppendChild", c); err != nil {
		return err
	}
	n.appendChild(c)
	return nil
}

// appendChild links c as the last child of n without validation. It is used by the tree builder.
func (n *Node) appendChild(c *Node) {
	last := n.LastChild
	if last != nil {
		last.NextSibling = c
	} else {
		n.FirstChild = c
	}
	n.LastChild = c
	c.Parent = n
	c.PrevSibling = last
}

// RemoveChild removes a node c that is a child of n. Afterwards, c will have no parent and no
// siblings; its subtree goes with it.
func (n *Node) RemoveChild(c *Node) error {
	if c.Parent != n {
		return newContractError("RemoveChild", c, ErrNotChild)
	}
	if n.FirstChild == c {
		n.FirstChild = c.NextSibling
	}
	if c.NextSibling != nil {
		c.NextSibling.PrevSibling = c.PrevSibling
	}
	if n.LastChild == c {
		n.LastChild = c.PrevSibling
	}
	if c.PrevSibling != nil {
		c.PrevSibling.NextSibling = c.NextSibling
	}
	c.Parent = nil
	c.PrevSibling = nil
	c.NextSibling = nil
	return nil
}

// Detach removes n from its parent. It fails for a node that is not attached.
func (n *Node) Detach() error {
	if n.Parent == nil {
		return newContractError("Detach", n, ErrDetached)
	}
	return n.Parent.RemoveChild(n)
}

// ReplaceChildren removes all children of n and appends nodes in their place. For raw-text
// elements use SetRawText.
func (n *Node) ReplaceChildren(nodes ...*Node) error {
	if err := n.canHaveChildren(); err != nil {
		return newContractError("ReplaceChildren", n, err)
	}
	seen := make(map[*Node]bool, len(nodes))
	for _, c := range nodes {
		if err := n.checkInsert("ReplaceChildren", c); err != nil {
			return err
		}
		if seen[c] {
			return newContractError("ReplaceChildren", c, ErrAttached)
		}
		seen[c] = true
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		c.Parent, c.PrevSibling, c.NextSibling = nil, nil, nil
		c = next
	}
	n.FirstChild, n.LastChild = nil, nil
	for _, c := range nodes {
		n.appendChild(c)
	}
	return nil
}

// SetRawText replaces the verbatim content of a raw-text element.
func (n *Node) SetRawText(s string) error {
	if !n.IsRawText() {
		return newContractError("SetRawText", n, ErrNotRawText)
	}
	n.RawText = s
	return nil
}

// nodeStack is a stack of nodes.
type nodeStack []*Node

// pop pops the stack. It will panic if s is empty.
func (s *nodeStack) pop() *Node {
	i := len(*s)
	n := (*s)[i-1]
	*s = (*s)[:i-1]
	return n
}

// top returns the most recently pushed node, or nil if s is empty.
func (s *nodeStack) top() *Node {
	if i := len(*s); i > 0 {
		return (*s)[i-1]
	}
	return nil
}

const whitespace = " \t\r\n\f"
