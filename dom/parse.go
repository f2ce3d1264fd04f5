// Copyright 2010 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// Modifications:
// Copyright 2024 Daniel Potapov
//  - Removed insertion modes. The tree follows the source as written; only the optional end tags
//    of p (by another p), li, dt, dd, option and table rows and cells are closed implicitly.
//  - Tokens come from the lenient Tokenizer of this package, which never fails.

package dom

import (
	"strings"

	a "golang.org/x/net/html/atom"
)

// A parser builds a Node tree from the tokens of a Tokenizer.
type parser struct {
	// tokenizer provides the tokens for the parser.
	tokenizer *Tokenizer
	// tok is the most recently read token.
	tok Token
	// doc is the document root element.
	doc *Node
	// The stack of open elements.
	oe nodeStack
	// raw is the raw-text element waiting for its content and end tag.
	raw *Node
	// rawTags are the lower-cased names of raw-text elements.
	rawTags map[string]bool
}

func (p *parser) top() *Node {
	if n := p.oe.top(); n != nil {
		return n
	}
	return p.doc
}

// Parse returns the parse tree for the HTML from the given string. The returned node is of type
// RootNode. Parse never fails: malformed markup ends up in some node of the tree.
//
// Elements still open at the end of the input are closed implicitly and serialize without an end
// tag.
func Parse(text string, opts Options) *Node {
	p := &parser{
		tokenizer: NewTokenizer(text, opts),
		doc:       &Node{Type: RootNode},
		rawTags:   opts.rawTextSet(),
	}
	for {
		p.tok = p.tokenizer.Next()
		if p.tok.Type == EOFToken {
			break
		}
		p.step()
	}
	return p.doc
}

// ParseFragment parses text like Parse and returns the top-level nodes detached from the root.
func ParseFragment(text string, opts Options) []*Node {
	doc := Parse(text, opts)
	nodes := doc.Children()
	for _, c := range nodes {
		c.Parent, c.PrevSibling, c.NextSibling = nil, nil, nil
	}
	doc.FirstChild, doc.LastChild = nil, nil
	return nodes
}

func (p *parser) step() {
	if raw := p.raw; raw != nil {
		p.raw = nil
		switch {
		case p.tok.Type == RawTextToken:
			raw.RawText = p.tok.Data
			p.raw = raw
			return
		case p.tok.Type == EndTagToken && strings.EqualFold(p.tok.Data, raw.Tag):
			raw.endTag = p.tok.Raw
			return
		}
	}

	switch p.tok.Type {
	case TextToken, RawTextToken:
		p.addText(p.tok.Data)
	case StartTagToken:
		p.startTag()
	case EndTagToken:
		p.endTag()
	case CommentToken:
		p.top().appendChild(&Node{Type: CommentNode, Data: p.tok.Data, src: p.tok.Raw})
	case CDATAToken:
		p.top().appendChild(&Node{Type: CDATANode, Data: p.tok.Data, src: p.tok.Raw})
	case DoctypeToken:
		p.top().appendChild(&Node{Type: DoctypeNode, Data: p.tok.Data, src: p.tok.Raw})
	}
}

// addText adds text to the current node, merging it with a preceding text node.
func (p *parser) addText(text string) {
	if text == "" {
		return
	}
	t := p.top()
	if n := t.LastChild; n != nil && n.Type == TextNode {
		n.Data += text
		return
	}
	t.appendChild(&Node{Type: TextNode, Data: text})
}

func (p *parser) startTag() {
	tag := strings.ToLower(p.tok.Data)
	n := &Node{
		Type:        ElementNode,
		DataAtom:    lookupAtom(tag),
		Data:        p.tok.Data,
		Tag:         tag,
		attr:        p.tok.Attr,
		tail:        p.tok.Tail,
		selfClosing: p.tok.SelfClosing,
		rawText:     p.rawTags[tag],
	}
	p.closeImplied(n)
	p.top().appendChild(n)

	switch {
	case n.selfClosing:
	case n.rawText:
		p.raw = n
	case n.IsVoid():
	default:
		p.oe = append(p.oe, n)
	}
}

// endTag closes the nearest open element with a matching name and everything opened after it.
// An end tag without a matching open element is discarded.
func (p *parser) endTag() {
	tag := strings.ToLower(p.tok.Data)
	for i := len(p.oe) - 1; i >= 0; i-- {
		if n := p.oe[i]; n.Tag == tag {
			n.endTag = p.tok.Raw
			for p.oe.pop() != n {
			}
			return
		}
	}
}

// closeImplied closes the elements whose end tag is optional and implied by the start of n.
func (p *parser) closeImplied(n *Node) {
	switch n.DataAtom {
	case a.Li:
		p.popUntil([]a.Atom{a.Li}, a.Ol, a.Ul, a.Menu)
	case a.Dt, a.Dd:
		p.popUntil([]a.Atom{a.Dt, a.Dd}, a.Dl)
	case a.Option:
		p.popUntil([]a.Atom{a.Option}, a.Select, a.Optgroup, a.Datalist)
	case a.Tr:
		p.popUntil([]a.Atom{a.Tr, a.Td, a.Th}, a.Thead, a.Tbody, a.Tfoot)
	case a.Td, a.Th:
		p.popUntil([]a.Atom{a.Td, a.Th}, a.Tr, a.Thead, a.Tbody, a.Tfoot)
	case a.P:
		// Only a paragraph that is still the current element is ended; block content and
		// paragraphs nested in it stay inside.
		if t := p.oe.top(); t != nil && t.DataAtom == a.P {
			p.oe.pop()
		}
	}
}

// popUntil pops the stack of open elements through the outermost element matching one of the
// targets, searching down from the top and stopping at any of stopTags or the default scope stop
// tags. The popped elements keep no end tag. It reports whether anything was popped.
func (p *parser) popUntil(targets []a.Atom, stopTags ...a.Atom) bool {
	found := -1
loop:
	for i := len(p.oe) - 1; i >= 0; i-- {
		tagAtom := p.oe[i].DataAtom
		for _, t := range targets {
			if t == tagAtom {
				found = i
				continue loop
			}
		}
		for _, t := range stopTags {
			if t == tagAtom {
				break loop
			}
		}
		for _, t := range defaultScopeStopTags {
			if t == tagAtom {
				break loop
			}
		}
	}
	if found == -1 {
		return false
	}
	p.oe = p.oe[:found]
	return true
}
