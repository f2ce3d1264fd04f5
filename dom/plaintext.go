package dom

import (
	"strings"

	"golang.org/x/net/html"
	a "golang.org/x/net/html/atom"
)

// PlainText returns the text content of n with markup stripped, using DefaultOptions.
func (n *Node) PlainText() string {
	return n.PlainTextWith(DefaultOptions())
}

// PlainTextWith returns the text content of n with markup stripped and entities decoded.
//
// Outside pre and textarea every whitespace run becomes a single space. Block-level elements are
// separated by exactly one blank line ("\n\n"), list items and table rows by
// opts.BlockBreakText, and <br> produces opts.InlineBreakText. Breaks never lead or trail the
// result. Scripts, styles and comments are left out.
func (n *Node) PlainTextWith(opts Options) string {
	w := &textWriter{opts: &opts}
	w.node(n, false)
	return w.b.String()
}

type breakKind int

const (
	noBreak breakKind = iota
	lineBreak
	paragraphBreak
)

// textWriter accumulates plain text. Separators are held back until the next word so they never
// end up at the start or the end of the output.
type textWriter struct {
	b    strings.Builder
	opts *Options

	brk   breakKind // pending block separator
	brs   int       // pending <br> count
	space bool      // pending space
}

func (w *textWriter) setBreak(k breakKind) {
	if k > w.brk {
		w.brk = k
	}
}

// flush writes the pending separators ahead of new content.
func (w *textWriter) flush() {
	if w.b.Len() > 0 {
		switch {
		case w.brk == paragraphBreak:
			w.b.WriteString("\n\n")
		case w.brk == lineBreak:
			w.b.WriteString(w.opts.BlockBreakText)
		case w.brs > 0:
			w.b.WriteString(strings.Repeat(w.opts.InlineBreakText, w.brs))
		case w.space:
			w.b.WriteByte(' ')
		}
	}
	w.brk, w.brs, w.space = noBreak, 0, false
}

func (w *textWriter) text(s string, pre bool) {
	s = html.UnescapeString(s)
	if pre {
		if s != "" {
			w.flush()
			w.b.WriteString(s)
		}
		return
	}
	if s == "" {
		return
	}
	if strings.IndexByte(whitespace, s[0]) >= 0 {
		w.space = true
	}
	for _, word := range strings.FieldsFunc(s, isSpaceRune) {
		w.flush()
		w.b.WriteString(word)
		w.space = true
	}
	if strings.IndexByte(whitespace, s[len(s)-1]) < 0 {
		w.space = false
	}
}

func (w *textWriter) node(n *Node, pre bool) {
	switch n.Type {
	case TextNode, CDATANode:
		w.text(n.Data, pre)
		return
	case RootNode:
		w.children(n, pre)
		return
	case ElementNode:
	default:
		return
	}

	switch {
	case hiddenElements[n.DataAtom]:
		return
	case n.DataAtom == a.Br:
		if w.b.Len() > 0 {
			w.brs++
		}
		return
	case n.DataAtom == a.Td || n.DataAtom == a.Th:
		w.space = true
		w.children(n, pre)
		w.space = true
		return
	}

	sep := noBreak
	if blockElements[n.DataAtom] {
		sep = paragraphBreak
	} else if listItemElements[n.DataAtom] {
		sep = lineBreak
	}
	w.setBreak(sep)
	w.children(n, pre || n.DataAtom == a.Pre || n.DataAtom == a.Textarea)
	w.setBreak(sep)
}

func (w *textWriter) children(n *Node, pre bool) {
	if n.rawText {
		w.text(n.RawText, true)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.node(c, pre)
	}
}
