package dom

import (
	"iter"
	"strings"
)

// lineBreaks collapses every line ending into a single space.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// A Tokenizer returns a stream of HTML Tokens. It never fails: malformed markup is recovered
// into some token and scanning always moves forward.
//
// The tokenizer is a state machine in the style of https://go.dev/talks/2011/lex.slide: each
// state function consumes input and returns the next state. Tokens are produced on demand by
// Next.
type Tokenizer struct {
	input string
	start int // start of the pending token
	pos   int // current position in the input
	state stateFn
	queue []Token

	normalize  bool
	mode       IgnoreBlockMode
	openDelim  string
	closeDelim string
	stops      string // bytes that may start something other than text
	rawTags    map[string]bool

	tag      Token     // start tag under construction
	attr     Attribute // attribute under construction
	sepStart int       // start of the "=" separator of attr
	rawEnd   string    // lower-cased name of the raw-text element being read
}

// stateFn represents the state of the scanner as a function that returns the next state.
type stateFn func(*Tokenizer) stateFn

// NewTokenizer returns a new Tokenizer for the given input.
func NewTokenizer(input string, opts Options) *Tokenizer {
	z := &Tokenizer{
		input:      input,
		state:      lexData,
		normalize:  opts.NormalizeLineEndings,
		mode:       opts.IgnoreBlockMode,
		openDelim:  opts.IgnoreBlockOpen,
		closeDelim: opts.IgnoreBlockClose,
		stops:      "<",
		rawTags:    opts.rawTextSet(),
	}
	if z.openDelim != "" && z.openDelim[0] != '<' {
		z.stops += z.openDelim[:1]
	}
	return z
}

// Next scans the next token and returns it. Once the input is exhausted it returns a token of
// type EOFToken, on every call.
func (z *Tokenizer) Next() Token {
	for len(z.queue) == 0 {
		if z.state == nil {
			return Token{Type: EOFToken}
		}
		z.state = z.state(z)
	}
	t := z.queue[0]
	z.queue = z.queue[1:]
	return t
}

// Tokens returns the remaining tokens, EOFToken excluded.
func (z *Tokenizer) Tokens() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for t := z.Next(); t.Type != EOFToken; t = z.Next() {
			if !yield(t) {
				return
			}
		}
	}
}

// clean applies line-ending normalization when it is enabled.
func (z *Tokenizer) clean(s string) string {
	if !z.normalize {
		return s
	}
	return lineBreaks.Replace(s)
}

func (z *Tokenizer) emit(t Token) {
	z.queue = append(z.queue, t)
	z.start = z.pos
}

// emitText emits the pending text between start and pos, if any.
func (z *Tokenizer) emitText() {
	if z.pos > z.start {
		s := z.clean(z.input[z.start:z.pos])
		z.emit(Token{Type: TextToken, Data: s, Raw: s})
	}
}

// atTagStart reports whether the '<' at i starts markup. Any other '<' is text.
func (z *Tokenizer) atTagStart(i int) bool {
	if i+1 >= len(z.input) {
		return false
	}
	switch c := z.input[i+1]; {
	case isASCIILetter(c), c == '!', c == '?':
		return true
	case c == '/':
		return i+2 < len(z.input) && isASCIILetter(z.input[i+2])
	}
	return false
}

// nextTagStart returns the position of the next '<' at or after i that starts markup, or the end
// of the input.
func (z *Tokenizer) nextTagStart(i int) int {
	for {
		j := strings.IndexByte(z.input[i:], '<')
		if j < 0 {
			return len(z.input)
		}
		i += j
		if z.atTagStart(i) {
			return i
		}
		i++
	}
}

func lexData(z *Tokenizer) stateFn {
	for z.pos < len(z.input) {
		i := strings.IndexAny(z.input[z.pos:], z.stops)
		if i < 0 {
			z.pos = len(z.input)
			break
		}
		z.pos += i
		if z.openDelim != "" && strings.HasPrefix(z.input[z.pos:], z.openDelim) {
			z.ignoreBlock()
			continue
		}
		if z.input[z.pos] == '<' && z.atTagStart(z.pos) {
			z.emitText()
			return lexTagOpen
		}
		z.pos++
	}
	// Correctly reached EOF.
	z.emitText()
	return nil
}

// ignoreBlock consumes the template block starting at pos. Unless the mode is IgnoreAsText the
// closing delimiter must appear before the next tag, otherwise the opening delimiter is text.
func (z *Tokenizer) ignoreBlock() {
	body := z.pos + len(z.openDelim)
	limit := len(z.input)
	if z.mode != IgnoreAsText {
		limit = z.nextTagStart(body)
	}
	end := -1
	if z.closeDelim != "" {
		if j := strings.Index(z.input[body:limit], z.closeDelim); j >= 0 {
			end = body + j + len(z.closeDelim)
		}
	}
	switch {
	case end == -1:
		z.pos = body
	case z.mode == IgnoreStrip:
		z.emitText()
		z.pos, z.start = end, end
	default:
		z.pos = end
	}
}

func lexTagOpen(z *Tokenizer) stateFn {
	z.start = z.pos
	switch z.input[z.pos+1] {
	case '!':
		return lexMarkupDecl
	case '?':
		return lexProcInst
	case '/':
		return lexEndTag
	}
	return lexTagName
}

func lexTagName(z *Tokenizer) stateFn {
	z.pos++ // skip '<'
	i := z.pos
	for i < len(z.input) && !isNameEnd(z.input[i]) && !(z.input[i] == '<' && z.atTagStart(i)) {
		i++
	}
	z.tag = Token{Type: StartTagToken, Data: z.input[z.pos:i]}
	z.pos = i
	return lexBeforeAttrName
}

// atSelfClose reports whether "/>" starts at i.
func (z *Tokenizer) atSelfClose(i int) bool {
	return i+1 < len(z.input) && z.input[i] == '/' && z.input[i+1] == '>'
}

func lexBeforeAttrName(z *Tokenizer) stateFn {
	lead := z.pos
	for z.pos < len(z.input) {
		c := z.input[z.pos]
		if isSpace(c) || (c == '/' && !z.atSelfClose(z.pos)) {
			// A stray slash is treated like whitespace.
			z.pos++
			continue
		}
		break
	}
	switch {
	case z.pos >= len(z.input):
		z.tag.Tail = z.clean(z.input[lead:])
		return z.emitTag()
	case z.input[z.pos] == '>':
		z.pos++
		z.tag.Tail = z.clean(z.input[lead:z.pos])
		return z.emitTag()
	case z.atSelfClose(z.pos):
		z.pos += 2
		z.tag.SelfClosing = true
		z.tag.Tail = z.clean(z.input[lead:z.pos])
		return z.emitTag()
	case z.input[z.pos] == '<' && z.atTagStart(z.pos):
		// The tag is cut short by the next one.
		z.tag.Tail = z.clean(z.input[lead:z.pos])
		return z.emitTag()
	}
	z.attr = Attribute{lead: z.clean(z.input[lead:z.pos])}
	return lexAttrName
}

func lexAttrName(z *Tokenizer) stateFn {
	i := z.pos
	for i < len(z.input) {
		c := z.input[i]
		if isSpace(c) || c == '>' || (c == '=' && i > z.pos) || z.atSelfClose(i) ||
			(c == '<' && i > z.pos && z.atTagStart(i)) {
			break
		}
		i++
	}
	z.attr.Key = z.input[z.pos:i]
	z.pos = i

	j := i
	for j < len(z.input) && isSpace(z.input[j]) {
		j++
	}
	if j < len(z.input) && z.input[j] == '=' {
		z.sepStart = z.pos
		z.pos = j + 1
		return lexBeforeAttrValue
	}
	// A boolean attribute. The whitespace after it leads the next attribute.
	z.addAttr()
	return lexBeforeAttrName
}

func lexBeforeAttrValue(z *Tokenizer) stateFn {
	for z.pos < len(z.input) && isSpace(z.input[z.pos]) {
		z.pos++
	}
	z.attr.HasValue = true
	z.attr.sep = z.clean(z.input[z.sepStart:z.pos])
	if z.pos >= len(z.input) || z.input[z.pos] == '>' {
		z.addAttr()
		return lexBeforeAttrName
	}
	switch z.input[z.pos] {
	case '"', '\'':
		return lexAttrValueQuoted
	}
	return lexAttrValueUnquoted
}

// lexAttrValueQuoted scans a value up to the first occurrence of its opening quote. A backslash
// has no special meaning.
func lexAttrValueQuoted(z *Tokenizer) stateFn {
	q := z.input[z.pos]
	body := z.pos + 1
	z.attr.quote = q
	if j := strings.IndexByte(z.input[body:], q); j >= 0 {
		z.attr.Val = z.clean(z.input[body : body+j])
		z.pos = body + j + 1
	} else {
		// Without a closing quote the value ends at the next '>' so it cannot swallow the rest of
		// the document.
		end := len(z.input)
		if j := strings.IndexByte(z.input[body:], '>'); j >= 0 {
			end = body + j
		}
		z.attr.Val = z.clean(z.input[body:end])
		z.attr.unclosed = true
		z.pos = end
	}
	z.addAttr()
	return lexBeforeAttrName
}

func lexAttrValueUnquoted(z *Tokenizer) stateFn {
	i := z.pos
	for i < len(z.input) && !isSpace(z.input[i]) && z.input[i] != '>' {
		i++
	}
	z.attr.Val = z.input[z.pos:i]
	z.pos = i
	z.addAttr()
	return lexBeforeAttrName
}

func (z *Tokenizer) addAttr() {
	z.tag.Attr = addAttr(z.tag.Attr, z.attr)
	z.attr = Attribute{}
}

// emitTag emits the start tag under construction and switches to raw-text scanning for elements
// such as <script>.
func (z *Tokenizer) emitTag() stateFn {
	t := z.tag
	t.Raw = z.clean(z.input[z.start:z.pos])
	z.tag = Token{}
	z.emit(t)
	if name := strings.ToLower(t.Data); !t.SelfClosing && z.rawTags[name] {
		z.rawEnd = name
		return lexRawText
	}
	return lexData
}

// lexRawText copies everything up to the matching end tag. Line endings are kept as they are.
func lexRawText(z *Tokenizer) stateFn {
	end := len(z.input)
	for i := z.pos; ; i += 2 {
		j := strings.Index(z.input[i:], "</")
		if j < 0 {
			break
		}
		i += j
		if z.atRawEnd(i) {
			end = i
			break
		}
	}
	if end > z.pos {
		s := z.input[z.pos:end]
		z.pos = end
		z.emit(Token{Type: RawTextToken, Data: s, Raw: s})
	}
	z.rawEnd = ""
	if end == len(z.input) {
		return nil
	}
	return lexTagOpen
}

// atRawEnd reports whether the "</" at i starts the end tag of the current raw-text element.
func (z *Tokenizer) atRawEnd(i int) bool {
	k := i + 2 + len(z.rawEnd)
	if k > len(z.input) || !strings.EqualFold(z.input[i+2:k], z.rawEnd) {
		return false
	}
	return k == len(z.input) || isNameEnd(z.input[k])
}

func lexEndTag(z *Tokenizer) stateFn {
	i := z.pos + 2
	for i < len(z.input) && !isNameEnd(z.input[i]) && z.input[i] != '<' {
		i++
	}
	name := z.input[z.pos+2 : i]

	// The tag ends after the next '>'. A '<' before it starts the next token instead.
	end := len(z.input)
	if j := strings.IndexAny(z.input[i:], "<>"); j >= 0 {
		end = i + j
		if z.input[end] == '>' {
			end++
		}
	}
	z.pos = end
	z.emit(Token{Type: EndTagToken, Data: name, Raw: z.clean(z.input[z.start:end])})
	return lexData
}

func lexMarkupDecl(z *Tokenizer) stateFn {
	rest := z.input[z.pos:]
	switch {
	case strings.HasPrefix(rest, "<!--"):
		return lexComment
	case strings.HasPrefix(rest, "<![CDATA["):
		return lexCDATA
	case len(rest) >= 9 && strings.EqualFold(rest[:9], "<!doctype"):
		return lexDoctype
	}
	return lexBogusComment
}

func lexComment(z *Tokenizer) stateFn {
	body := z.pos + 4
	rest := z.input[body:]
	switch {
	case strings.HasPrefix(rest, ">"):
		// <!--> is an empty comment.
		return z.emitSpecial(CommentToken, "", body+1)
	case strings.HasPrefix(rest, "->"):
		return z.emitSpecial(CommentToken, "", body+2)
	}
	if j := strings.Index(rest, "-->"); j >= 0 {
		return z.emitSpecial(CommentToken, rest[:j], body+j+3)
	}
	return z.emitSpecial(CommentToken, rest, len(z.input))
}

func lexCDATA(z *Tokenizer) stateFn {
	body := z.pos + len("<![CDATA[")
	rest := z.input[body:]
	if j := strings.Index(rest, "]]>"); j >= 0 {
		return z.emitSpecial(CDATAToken, rest[:j], body+j+3)
	}
	return z.emitSpecial(CDATAToken, rest, len(z.input))
}

func lexDoctype(z *Tokenizer) stateFn {
	body := z.pos + len("<!doctype")
	rest := z.input[body:]
	end, data := len(z.input), rest
	if j := strings.IndexByte(rest, '>'); j >= 0 {
		end, data = body+j+1, rest[:j]
	}
	return z.emitSpecial(DoctypeToken, strings.TrimLeft(data, whitespace), end)
}

// lexBogusComment handles <!x> markup that is neither a comment, CDATA nor a doctype.
func lexBogusComment(z *Tokenizer) stateFn {
	body := z.pos + 2
	rest := z.input[body:]
	if j := strings.IndexByte(rest, '>'); j >= 0 {
		return z.emitSpecial(CommentToken, rest[:j], body+j+1)
	}
	return z.emitSpecial(CommentToken, rest, len(z.input))
}

// lexProcInst handles <?x?> processing instructions, which are kept as comments.
func lexProcInst(z *Tokenizer) stateFn {
	body := z.pos + 2
	rest := z.input[body:]
	if j := strings.Index(rest, "?>"); j >= 0 {
		return z.emitSpecial(CommentToken, rest[:j], body+j+2)
	}
	if j := strings.IndexByte(rest, '>'); j >= 0 {
		return z.emitSpecial(CommentToken, rest[:j], body+j+1)
	}
	return z.emitSpecial(CommentToken, rest, len(z.input))
}

// emitSpecial emits a comment, CDATA or doctype token ending at end.
func (z *Tokenizer) emitSpecial(typ TokenType, data string, end int) stateFn {
	z.pos = end
	z.emit(Token{Type: typ, Data: z.clean(data), Raw: z.clean(z.input[z.start:end])})
	return lexData
}

// isSpace reports whether c is HTML whitespace.
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// isNameEnd reports whether c terminates a tag name.
func isNameEnd(c byte) bool {
	return isSpace(c) || c == '/' || c == '>'
}

func isASCIILetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
