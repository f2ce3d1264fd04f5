package htmldom

import (
	"fmt"

	"github.com/dpotapov/go-htmldom/dom"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Predicate is a boolean expression evaluated against an element, written in the expr language
// (https://expr-lang.org). The expression sees these variables:
//
//	tag            lower-cased tag name
//	id             id attribute
//	classes        class names
//	text           plain text
//	inner          inner markup
//	index          position among the elements being filtered, from 0
//	attr(name)     attribute value, "" if missing
//	has(name)      attribute presence
//	hasClass(name) class presence
//
// For example: `has("href") && attr("href") startsWith "https:" && index < 10`.
type Predicate struct {
	src  string
	prog *vm.Program
}

// CompilePredicate compiles a predicate expression. The expression must evaluate to a bool.
func CompilePredicate(src string) (*Predicate, error) {
	prog, err := expr.Compile(src, expr.Env(predicateEnv(dom.NewElement("div"), 0)), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile predicate %q: %w", src, err)
	}
	return &Predicate{src: src, prog: prog}, nil
}

// String returns the source of the predicate.
func (p *Predicate) String() string {
	return p.src
}

// Match evaluates the predicate for n at position index.
func (p *Predicate) Match(n *dom.Node, index int) (bool, error) {
	out, err := expr.Run(p.prog, predicateEnv(n, index))
	if err != nil {
		return false, fmt.Errorf("evaluate predicate %q on %s: %w", p.src, n.Path(), err)
	}
	return out.(bool), nil
}

// Filter returns the nodes for which the predicate holds, index being the position in nodes.
func (p *Predicate) Filter(nodes []*dom.Node) ([]*dom.Node, error) {
	var res []*dom.Node
	for i, n := range nodes {
		ok, err := p.Match(n, i)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, n)
		}
	}
	return res, nil
}

func predicateEnv(n *dom.Node, index int) map[string]any {
	return map[string]any{
		"tag":     n.Tag,
		"id":      n.ID(),
		"classes": n.Classes(),
		"text":    n.PlainText(),
		"inner":   n.InnerText(),
		"index":   index,
		"attr": func(name string) string {
			v, _ := n.Attr(name)
			return v
		},
		"has":      n.HasAttr,
		"hasClass": n.HasClass,
	}
}

// predicate returns the compiled predicate for src from the cache, compiling it on first use.
func (d *Document) predicate(src string) (*Predicate, error) {
	if v, ok := d.predicates.Load(src); ok {
		return v.(*Predicate), nil
	}
	p, err := CompilePredicate(src)
	if err != nil {
		d.logger.Warn("Invalid predicate", "expr", src, "error", err)
		return nil, err
	}
	v, _ := d.predicates.LoadOrStore(src, p)
	return v.(*Predicate), nil
}

// FindWhere returns the elements matching selector for which the predicate expression holds.
func (d *Document) FindWhere(selector, predicate string) ([]*dom.Node, error) {
	p, err := d.predicate(predicate)
	if err != nil {
		return nil, err
	}
	return p.Filter(d.Find(selector))
}
