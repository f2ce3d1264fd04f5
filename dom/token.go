package dom

import "strconv"

// A TokenType is the type of a Token.
type TokenType uint32

const (
	// EOFToken means the input is exhausted. Next keeps returning it.
	EOFToken TokenType = iota
	// TextToken means a text run.
	TextToken
	// StartTagToken looks like <a href="foo">. Attributes are carried by the token.
	StartTagToken
	// EndTagToken looks like </a>.
	EndTagToken
	// CommentToken looks like <!--x-->. Bogus comments (<!x>) and processing instructions (<?x?>)
	// are reported as comments too.
	CommentToken
	// CDATAToken looks like <![CDATA[x]]>.
	CDATAToken
	// DoctypeToken looks like <!DOCTYPE x>.
	DoctypeToken
	// RawTextToken is the verbatim content of a raw-text element such as <script>.
	RawTextToken
)

func (t TokenType) String() string {
	switch t {
	case EOFToken:
		return "EOF"
	case TextToken:
		return "Text"
	case StartTagToken:
		return "StartTag"
	case EndTagToken:
		return "EndTag"
	case CommentToken:
		return "Comment"
	case CDATAToken:
		return "CDATA"
	case DoctypeToken:
		return "Doctype"
	case RawTextToken:
		return "RawText"
	}
	return "Invalid(" + strconv.Itoa(int(t)) + ")"
}

// A Token consists of a TokenType and some Data (tag name for start and end tags, content for
// the other types). Raw is the source text of the whole token after line-ending normalization.
type Token struct {
	Type TokenType
	Data string
	Raw  string

	// Attr, SelfClosing and Tail are set for start tags only. Tail holds the bytes between the
	// last attribute and the end of the tag, including the closing "/>" or ">".
	Attr        []Attribute
	SelfClosing bool
	Tail        string
}

// String returns the source text of the token.
func (t Token) String() string {
	return t.Raw
}
