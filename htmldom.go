// Package htmldom loads HTML documents into a lenient DOM and queries them.
//
// It wraps package dom with a Parser that carries options and a logger, and a Document that
// caches compiled selectors so repeated queries are cheap. Queries never fail: an invalid
// selector is logged and matches nothing.
package htmldom

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dpotapov/go-htmldom/dom"
)

// Parser parses HTML documents. The zero value is ready to use. A Parser must not be copied after
// first use.
type Parser struct {
	// Options configures tokenizing and plain-text rendering. If nil, dom.DefaultOptions is used.
	Options *dom.Options

	// Logger configures logging for internal events.
	Logger *slog.Logger

	// init is used to initialize the parser only once.
	init sync.Once

	// logger is a private logger instance that is used to log internal events.
	logger *slog.Logger

	opts dom.Options
}

func (p *Parser) setup() {
	p.init.Do(func() {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		if p.Logger != nil {
			p.logger = p.Logger
		}
		p.opts = dom.DefaultOptions()
		if p.Options != nil {
			p.opts = *p.Options
		}
	})
}

// Parse builds a Document from text. It never fails.
func (p *Parser) Parse(text string) *Document {
	p.setup()
	start := time.Now()
	root := dom.Parse(text, p.opts)

	nodes := 0
	for range root.Descendants() {
		nodes++
	}
	p.logger.Debug("Parse document", "bytes", len(text), "nodes", nodes, "duration", time.Since(start))

	return &Document{root: root, opts: p.opts, logger: p.logger}
}

// ParseReader reads r to the end and parses its content.
func (p *Parser) ParseReader(r io.Reader) (*Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return p.Parse(string(b)), nil
}

// Parse builds a Document from text with default options.
func Parse(text string) *Document {
	return new(Parser).Parse(text)
}

// Document is a parsed HTML document. Queries may run concurrently as long as the tree is not
// modified at the same time.
type Document struct {
	root   *dom.Node
	opts   dom.Options
	logger *slog.Logger

	selectors  sync.Map // string -> *dom.Selector
	predicates sync.Map // string -> *Predicate
}

// Root returns the root node of the document.
func (d *Document) Root() *dom.Node {
	return d.root
}

// Options returns the options the document was parsed with.
func (d *Document) Options() dom.Options {
	return d.opts
}

// selector returns the compiled selector for s from the cache, compiling it on first use.
func (d *Document) selector(s string) *dom.Selector {
	if v, ok := d.selectors.Load(s); ok {
		return v.(*dom.Selector)
	}
	sel, err := dom.Compile(s)
	if err != nil {
		d.logger.Warn("Invalid selector", "selector", s, "error", err)
	}
	v, _ := d.selectors.LoadOrStore(s, sel)
	return v.(*dom.Selector)
}

// Find returns the elements matching selector in document order.
func (d *Document) Find(selector string) []*dom.Node {
	return d.selector(selector).MatchAll(d.root)
}

// FindIndex returns the i-th element matching selector, counting from the end for a negative i,
// or nil.
func (d *Document) FindIndex(selector string, i int) *dom.Node {
	return dom.PickIndex(d.Find(selector), i)
}

// First returns the first element matching selector, or nil.
func (d *Document) First(selector string) *dom.Node {
	return d.FindIndex(selector, 0)
}

// XPath returns the nodes selected by an XPath expression. Invalid expressions are logged and
// returned as errors.
func (d *Document) XPath(expr string) ([]*dom.Node, error) {
	nodes, err := d.root.XPath(expr)
	if err != nil {
		d.logger.Warn("Invalid XPath expression", "expr", expr, "error", err)
		return nil, fmt.Errorf("xpath %q: %w", expr, err)
	}
	return nodes, nil
}

// String returns the markup of the document.
func (d *Document) String() string {
	return d.root.OuterText()
}

// PlainText returns the text of the document rendered with the document options.
func (d *Document) PlainText() string {
	return d.root.PlainTextWith(d.opts)
}

// XML returns the document converted to well-formed XML.
func (d *Document) XML() (string, error) {
	doc := d.root.XML()
	doc.Indent(2)
	return doc.WriteToString()
}
