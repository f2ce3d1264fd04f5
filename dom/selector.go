package dom

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Selector is a compiled selector list. It is immutable and safe for concurrent use.
//
// The supported grammar is a subset of CSS:
//
//	tag, *                 element by tag name (case-insensitive)
//	#id, .class            id and class
//	[a] [a=v] [a!=v]       attribute presence, equality and inequality
//	[a^=v] [a$=v] [a*=v]   prefix, suffix and substring
//	[a~=v] [a|=v]          whitespace-separated word, exact or "v-" prefix
//	[a=v i]                case-insensitive value comparison
//	A B, A > B, A + B, A ~ B
//	A, B                   union in document order
//
// A selector may start with a combinator, e.g. "> li", which relates the first compound selector
// to the node the search starts from.
type Selector struct {
	src    string
	groups []complexSelector
	err    error
}

// SyntaxError describes an invalid selector.
type SyntaxError struct {
	Selector string
	Offset   int
	Message  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("selector %q: %s at offset %d", e.Selector, e.Message, e.Offset)
}

// complexSelector is a chain of compound selectors joined by combinators.
type complexSelector struct {
	// anchor is the leading combinator relating the first step to the scope node, 0 if none.
	anchor byte
	steps  []selectorStep
}

type selectorStep struct {
	// comb joins the step to the one before it: ' ', '>', '+' or '~'. It is 0 for the first step.
	comb byte
	sel  compoundSelector
}

// compoundSelector is a tag test plus attribute tests, all of which must hold.
type compoundSelector struct {
	tag   string // lower-cased, "" matches any element
	attrs []attrSelector
}

type attrSelector struct {
	key string // lower-cased
	op  byte   // 0 for presence, otherwise one of = ! ^ $ * ~ |
	val string
	// fold is 'i' or 's' when the case of the comparison was given explicitly.
	fold byte
}

// Compile parses a selector list. The returned selector is never nil: if s is invalid the error
// describes the problem and the selector matches nothing.
func Compile(s string) (*Selector, error) {
	sel := &Selector{src: s}
	p := &selectorParser{src: s}
	groups, err := p.parseList()
	if err != nil {
		sel.err = err
		return sel, err
	}
	sel.groups = groups
	return sel, nil
}

// MustCompile is like Compile but panics if s is invalid.
func MustCompile(s string) *Selector {
	sel, err := Compile(s)
	if err != nil {
		panic(err)
	}
	return sel
}

// String returns the source of the selector.
func (s *Selector) String() string {
	return s.src
}

// Err returns the error reported by Compile, if any.
func (s *Selector) Err() error {
	return s.err
}

type selectorParser struct {
	src string
	pos int
}

const eof = -1

func (p *selectorParser) errorf(format string, args ...any) error {
	return &SyntaxError{Selector: p.src, Offset: p.pos, Message: fmt.Sprintf(format, args...)}
}

// peek returns the next rune without consuming it.
func (p *selectorParser) peek() rune {
	if p.pos >= len(p.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return r
}

func (p *selectorParser) read() rune {
	if p.pos >= len(p.src) {
		return eof
	}
	r, w := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += w
	return r
}

// skipSpace consumes whitespace and reports whether there was any.
func (p *selectorParser) skipSpace() bool {
	start := p.pos
	for p.pos < len(p.src) && isSpace(p.src[p.pos]) {
		p.pos++
	}
	return p.pos > start
}

func (p *selectorParser) parseList() ([]complexSelector, error) {
	if strings.TrimLeft(p.src, whitespace) == "" {
		return nil, p.errorf("empty selector")
	}
	var groups []complexSelector
	for {
		p.skipSpace()
		c, err := p.parseComplex()
		if err != nil {
			return nil, err
		}
		groups = append(groups, c)
		p.skipSpace()
		switch ch := p.read(); ch {
		case eof:
			return groups, nil
		case ',':
		default:
			p.pos -= utf8.RuneLen(ch)
			return nil, p.errorf("unexpected %q", ch)
		}
	}
}

func isCombinator(ch rune) bool {
	return ch == '>' || ch == '+' || ch == '~'
}

func (p *selectorParser) parseComplex() (complexSelector, error) {
	var c complexSelector
	if ch := p.peek(); isCombinator(ch) {
		c.anchor = byte(p.read())
		p.skipSpace()
	}
	sel, err := p.parseCompound()
	if err != nil {
		return c, err
	}
	c.steps = append(c.steps, selectorStep{sel: sel})

	for {
		space := p.skipSpace()
		ch := p.peek()
		if ch == eof || ch == ',' {
			return c, nil
		}
		comb := byte(' ')
		switch {
		case isCombinator(ch):
			comb = byte(p.read())
			p.skipSpace()
		case !space:
			return c, p.errorf("unexpected %q", ch)
		}
		sel, err := p.parseCompound()
		if err != nil {
			return c, err
		}
		c.steps = append(c.steps, selectorStep{comb: comb, sel: sel})
	}
}

func (p *selectorParser) parseCompound() (compoundSelector, error) {
	var c compoundSelector
	start := p.pos
	switch ch := p.peek(); {
	case ch == '*':
		p.read()
	case isIdentRune(ch) || ch == '\\':
		c.tag = strings.ToLower(p.parseIdent())
	}

	for {
		switch p.peek() {
		case '#':
			p.read()
			id, err := p.requireIdent("id")
			if err != nil {
				return c, err
			}
			c.attrs = append(c.attrs, attrSelector{key: "id", op: '=', val: id})
		case '.':
			p.read()
			class, err := p.requireIdent("class name")
			if err != nil {
				return c, err
			}
			c.attrs = append(c.attrs, attrSelector{key: "class", op: '~', val: class})
		case '[':
			p.read()
			attr, err := p.parseAttr()
			if err != nil {
				return c, err
			}
			c.attrs = append(c.attrs, attr)
		default:
			if p.pos == start {
				if ch := p.peek(); ch != eof {
					return c, p.errorf("unexpected %q", ch)
				}
				return c, p.errorf("expected selector")
			}
			return c, nil
		}
	}
}

// parseAttr parses an attribute selector after its opening bracket.
func (p *selectorParser) parseAttr() (attrSelector, error) {
	var a attrSelector
	p.skipSpace()
	key, err := p.requireIdent("attribute name")
	if err != nil {
		return a, err
	}
	a.key = strings.ToLower(key)
	p.skipSpace()

	switch ch := p.read(); ch {
	case ']':
		return a, nil
	case '=':
		a.op = '='
	case '!', '^', '$', '*', '~', '|':
		if p.peek() != '=' {
			return a, p.errorf("expected '=' after %q", ch)
		}
		p.read()
		a.op = byte(ch)
	case eof:
		return a, p.errorf("unterminated attribute selector")
	default:
		p.pos -= utf8.RuneLen(ch)
		return a, p.errorf("unexpected %q in attribute selector", ch)
	}

	p.skipSpace()
	switch ch := p.peek(); ch {
	case '"', '\'':
		p.read()
		v, err := p.parseString(ch)
		if err != nil {
			return a, err
		}
		a.val = v
	default:
		a.val = p.parseUnquoted()
	}

	if p.skipSpace() {
		switch ch := p.peek(); ch {
		case 'i', 'I', 's', 'S':
			p.read()
			a.fold = byte(ch | 0x20)
			p.skipSpace()
		}
	}
	if ch := p.read(); ch != ']' {
		if ch == eof {
			return a, p.errorf("unterminated attribute selector")
		}
		p.pos -= utf8.RuneLen(ch)
		return a, p.errorf("unexpected %q in attribute selector", ch)
	}
	return a, nil
}

// parseString parses a quoted string after its opening quote.
func (p *selectorParser) parseString(quote rune) (string, error) {
	var b strings.Builder
	for {
		switch ch := p.read(); ch {
		case quote:
			return b.String(), nil
		case eof:
			return "", p.errorf("unterminated string")
		case '\\':
			if p.peek() == eof {
				return "", p.errorf("unterminated string")
			}
			b.WriteRune(p.parseEscape())
		default:
			b.WriteRune(ch)
		}
	}
}

// parseUnquoted reads an unquoted attribute value, which ends at whitespace or ']'.
func (p *selectorParser) parseUnquoted() string {
	var b strings.Builder
	for {
		ch := p.peek()
		if ch == eof || ch == ']' || (ch < utf8.RuneSelf && isSpace(byte(ch))) {
			return b.String()
		}
		p.read()
		if ch == '\\' && p.peek() != eof {
			ch = p.parseEscape()
		}
		b.WriteRune(ch)
	}
}

func (p *selectorParser) requireIdent(what string) (string, error) {
	if ch := p.peek(); !isIdentRune(ch) && ch != '\\' {
		return "", p.errorf("expected %s", what)
	}
	return p.parseIdent(), nil
}

// parseIdent reads a name made of letters, digits, '-', '_', ':', non-ASCII and escaped runes.
func (p *selectorParser) parseIdent() string {
	var b strings.Builder
	for {
		ch := p.peek()
		switch {
		case ch == '\\':
			p.read()
			if p.peek() == eof {
				b.WriteRune(utf8.RuneError)
				return b.String()
			}
			b.WriteRune(p.parseEscape())
		case isIdentRune(ch):
			b.WriteRune(p.read())
		default:
			return b.String()
		}
	}
}

// parseEscape reads the escape after a backslash: up to six hex digits optionally followed by a
// whitespace, or a single literal rune.
func (p *selectorParser) parseEscape() rune {
	start := p.pos
	for p.pos < len(p.src) && p.pos-start < 6 && isHexDigit(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return p.read()
	}
	v, _ := strconv.ParseUint(p.src[start:p.pos], 16, 32)
	if p.pos < len(p.src) && isSpace(p.src[p.pos]) {
		p.pos++
	}
	if v == 0 || v > utf8.MaxRune {
		return utf8.RuneError
	}
	return rune(v)
}

func isIdentRune(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || '0' <= ch && ch <= '9' ||
		ch == '-' || ch == '_' || ch == ':' || ch >= utf8.RuneSelf
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
