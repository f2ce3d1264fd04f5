package dom

import (
	"iter"
	"strings"
)

// MatchAll returns the elements in the subtree of scope, scope excluded, that match s. The
// result is in document order and contains every element once, whatever the number of selectors
// in the list it matches.
func (s *Selector) MatchAll(scope *Node) []*Node {
	if len(s.groups) == 0 {
		return nil
	}
	var res []*Node
	for n := range scope.Descendants() {
		if s.matchIn(n, scope) {
			res = append(res, n)
		}
	}
	return res
}

// Match reports whether n matches s. Leading combinators relate to the root of the tree of n.
func (s *Selector) Match(n *Node) bool {
	return s.matchIn(n, n.Root())
}

func (s *Selector) matchIn(n, scope *Node) bool {
	if n.Type != ElementNode || n == scope {
		return false
	}
	for i := range s.groups {
		if s.groups[i].match(n, scope) {
			return true
		}
	}
	return false
}

// Descendants yields the nodes under n in document order, n excluded.
func (n *Node) Descendants() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		c := n.FirstChild
		for c != nil {
			if !yield(c) {
				return
			}
			if c.FirstChild != nil {
				c = c.FirstChild
				continue
			}
			for c != n && c.NextSibling == nil {
				c = c.Parent
			}
			if c == n {
				return
			}
			c = c.NextSibling
		}
	}
}

func (c *complexSelector) match(n, scope *Node) bool {
	return c.matchStep(len(c.steps)-1, n, scope)
}

// matchStep matches the steps up to i from right to left, n being the candidate for step i.
// Ancestors and siblings considered are limited to the subtree of scope.
func (c *complexSelector) matchStep(i int, n, scope *Node) bool {
	st := &c.steps[i]
	if !st.sel.match(n) {
		return false
	}
	if i == 0 {
		switch c.anchor {
		case '>':
			return n.Parent == scope
		case '+':
			return n.PrevElementSibling() == scope
		case '~':
			for s := n.PrevElementSibling(); s != nil; s = s.PrevElementSibling() {
				if s == scope {
					return true
				}
			}
			return false
		}
		return true
	}

	switch st.comb {
	case ' ':
		for p := n.Parent; p != nil && p != scope; p = p.Parent {
			if c.matchStep(i-1, p, scope) {
				return true
			}
		}
	case '>':
		if p := n.Parent; p != nil && p != scope {
			return c.matchStep(i-1, p, scope)
		}
	case '+':
		if s := n.PrevElementSibling(); s != nil {
			return c.matchStep(i-1, s, scope)
		}
	case '~':
		for s := n.PrevElementSibling(); s != nil; s = s.PrevElementSibling() {
			if c.matchStep(i-1, s, scope) {
				return true
			}
		}
	}
	return false
}

func (c *compoundSelector) match(n *Node) bool {
	if n.Type != ElementNode {
		return false
	}
	if c.tag != "" && c.tag != n.Tag {
		return false
	}
	for i := range c.attrs {
		if !c.attrs[i].match(n) {
			return false
		}
	}
	return true
}

func (a *attrSelector) match(n *Node) bool {
	v, ok := n.Attr(a.key)
	if a.op == '!' {
		// [a!=v] also holds for elements without the attribute.
		return !ok || !a.equal(v, a.val)
	}
	if !ok {
		return false
	}
	want := a.val
	if a.foldCase() {
		v, want = strings.ToLower(v), strings.ToLower(want)
	}
	switch a.op {
	case 0:
		return true
	case '=':
		return v == want
	case '^':
		return want != "" && strings.HasPrefix(v, want)
	case '$':
		return want != "" && strings.HasSuffix(v, want)
	case '*':
		return want != "" && strings.Contains(v, want)
	case '~':
		if want == "" || strings.ContainsAny(want, whitespace) {
			return false
		}
		for _, w := range strings.FieldsFunc(v, isSpaceRune) {
			if w == want {
				return true
			}
		}
		return false
	case '|':
		return v == want || strings.HasPrefix(v, want+"-")
	}
	return false
}

// foldCase reports whether values are compared case-insensitively.
func (a *attrSelector) foldCase() bool {
	switch a.fold {
	case 'i':
		return true
	case 's':
		return false
	}
	return caseInsensitiveAttrs[a.key]
}

func (a *attrSelector) equal(v, want string) bool {
	if a.foldCase() {
		return strings.EqualFold(v, want)
	}
	return v == want
}

func isSpaceRune(r rune) bool {
	return r < 0x80 && isSpace(byte(r))
}

// Find returns the elements under n matching selector, in document order. An invalid selector
// matches nothing.
func (n *Node) Find(selector string) []*Node {
	sel, _ := Compile(selector)
	return sel.MatchAll(n)
}

// FindIndex returns the i-th element under n matching selector. A negative i counts from the end,
// -1 being the last match. It returns nil if there is no such element.
func (n *Node) FindIndex(selector string, i int) *Node {
	return PickIndex(n.Find(selector), i)
}

// PickIndex returns nodes[i], counting from the end for a negative i, or nil if i is out of
// range.
func PickIndex(nodes []*Node, i int) *Node {
	if i < 0 {
		i += len(nodes)
	}
	if i < 0 || i >= len(nodes) {
		return nil
	}
	return nodes[i]
}
