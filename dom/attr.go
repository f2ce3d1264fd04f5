package dom

import "strings"

// Attribute is an attribute of an element. Key keeps the case used in the source; lookups are
// case-insensitive. Val is the value as written, entities are not decoded. HasValue is false for
// boolean attributes such as <input disabled>.
type Attribute struct {
	Key      string
	Val      string
	HasValue bool

	lead     string // bytes before the key
	sep      string // "=" with surrounding whitespace, up to the value
	quote    byte   // 0 for unquoted values
	unclosed bool   // quoted value missing its closing quote
}

func (a *Attribute) writeTo(b *strings.Builder) {
	b.WriteString(a.lead)
	b.WriteString(a.Key)
	if !a.HasValue {
		return
	}
	b.WriteString(a.sep)
	if a.quote != 0 {
		b.WriteByte(a.quote)
	}
	b.WriteString(a.Val)
	if a.quote != 0 && !a.unclosed {
		b.WriteByte(a.quote)
	}
}

// source returns the attribute as written in the tag, including its leading whitespace.
func (a *Attribute) source() string {
	var b strings.Builder
	a.writeTo(&b)
	return b.String()
}

// setValue replaces the value keeping the source formatting where possible.
func (a *Attribute) setValue(v string) {
	if !a.HasValue || a.sep == "" {
		a.sep = "="
	}
	a.HasValue = true
	a.unclosed = false
	a.Val = v

	switch {
	case a.quote != 0 && !strings.ContainsRune(v, rune(a.quote)):
	case !strings.ContainsRune(v, '"'):
		a.quote = '"'
	case !strings.ContainsRune(v, '\''):
		a.quote = '\''
	default:
		a.quote = '"'
		a.Val = strings.ReplaceAll(v, `"`, "&quot;")
	}
}

// attrIndex returns the index of the attribute named key, or -1.
func attrIndex(attrs []Attribute, key string) int {
	for i := range attrs {
		if strings.EqualFold(attrs[i].Key, key) {
			return i
		}
	}
	return -1
}

// addAttr appends a to attrs. An earlier attribute with the same key is dropped, its source text
// is kept in the lead of the attribute that followed it so the tag still serializes as written.
func addAttr(attrs []Attribute, a Attribute) []Attribute {
	i := attrIndex(attrs, a.Key)
	if i == -1 {
		return append(attrs, a)
	}
	dropped := attrs[i].source()
	attrs = append(attrs[:i], attrs[i+1:]...)
	if i < len(attrs) {
		attrs[i].lead = dropped + attrs[i].lead
	} else {
		a.lead = dropped + a.lead
	}
	return append(attrs, a)
}
