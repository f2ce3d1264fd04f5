package dom

import "strings"

// Attr returns the value of the attribute named key (case-insensitive) and whether it is
// present. Boolean attributes yield an empty value.
func (n *Node) Attr(key string) (string, bool) {
	if i := attrIndex(n.attr, key); i != -1 {
		return n.attr[i].Val, true
	}
	return "", false
}

// HasAttr reports whether n has an attribute named key.
func (n *Node) HasAttr(key string) bool {
	return attrIndex(n.attr, key) != -1
}

// Attrs returns a copy of the attributes of n in source order.
func (n *Node) Attrs() []Attribute {
	if len(n.attr) == 0 {
		return nil
	}
	res := make([]Attribute, len(n.attr))
	copy(res, n.attr)
	return res
}

// SetAttr sets the value of the attribute named key, adding it at the end if it does not exist.
// An existing attribute keeps its position, its key spelling and its quoting where possible.
func (n *Node) SetAttr(key, val string) error {
	if n.Type != ElementNode {
		return newContractError("SetAttr", n, ErrNotElement)
	}
	if key == "" || strings.ContainsAny(key, whitespace+`"'>/=`) {
		return newContractError("SetAttr", n, ErrInvalidAttrName)
	}
	if i := attrIndex(n.attr, key); i != -1 {
		n.attr[i].setValue(val)
		return nil
	}
	attr := Attribute{Key: key, lead: " "}
	attr.setValue(val)
	n.attr = append(n.attr, attr)
	return nil
}

// RemoveAttr removes the attribute named key. Removing a missing attribute is a no-op.
func (n *Node) RemoveAttr(key string) error {
	if n.Type != ElementNode {
		return newContractError("RemoveAttr", n, ErrNotElement)
	}
	if i := attrIndex(n.attr, key); i != -1 {
		n.attr = append(n.attr[:i], n.attr[i+1:]...)
	}
	return nil
}

func (n *Node) attrOrEmpty(key string) string {
	v, _ := n.Attr(key)
	return v
}

// ID returns the id attribute.
func (n *Node) ID() string { return n.attrOrEmpty("id") }

// Href returns the href attribute.
func (n *Node) Href() string { return n.attrOrEmpty("href") }

// Src returns the src attribute.
func (n *Node) Src() string { return n.attrOrEmpty("src") }

// Title returns the title attribute.
func (n *Node) Title() string { return n.attrOrEmpty("title") }

// Classes returns the whitespace-separated tokens of the class attribute.
func (n *Node) Classes() []string {
	return strings.Fields(n.attrOrEmpty("class"))
}

// HasClass reports whether the class attribute contains name.
func (n *Node) HasClass(name string) bool {
	for _, c := range n.Classes() {
		if c == name {
			return true
		}
	}
	return false
}
