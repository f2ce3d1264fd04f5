package dom

import (
	"fmt"
	"strings"
)

// IgnoreBlockMode selects how template regions delimited by Options.IgnoreBlockOpen and
// Options.IgnoreBlockClose (e.g. "{$var}") are handled by the tokenizer.
type IgnoreBlockMode int

const (
	// IgnoreLegacy keeps a block as ordinary text. The search for the closing delimiter stops at
	// the nearest tag boundary, so a block never spans elements.
	IgnoreLegacy IgnoreBlockMode = iota

	// IgnoreAsText treats everything up to the closing delimiter as opaque text, including markup.
	// An unterminated block is plain text.
	IgnoreAsText

	// IgnoreStrip removes blocks from the output. Like IgnoreLegacy, a block never spans a tag
	// boundary.
	IgnoreStrip
)

var ignoreBlockModeNames = map[IgnoreBlockMode]string{
	IgnoreLegacy: "legacy",
	IgnoreAsText: "as-text",
	IgnoreStrip:  "strip",
}

func (m IgnoreBlockMode) String() string {
	if s, ok := ignoreBlockModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("IgnoreBlockMode(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m IgnoreBlockMode) MarshalText() ([]byte, error) {
	if _, ok := ignoreBlockModeNames[m]; !ok {
		return nil, fmt.Errorf("unknown ignore block mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Names are case-insensitive and "text" or
// "astext" are accepted for IgnoreAsText.
func (m *IgnoreBlockMode) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "legacy", "":
		*m = IgnoreLegacy
	case "as-text", "astext", "text":
		*m = IgnoreAsText
	case "strip":
		*m = IgnoreStrip
	default:
		return fmt.Errorf("unknown ignore block mode %q", string(b))
	}
	return nil
}

// Options controls tokenizing and plain-text rendering. Start from DefaultOptions; the zero value
// disables line-ending normalization and raw-text handling.
type Options struct {
	// NormalizeLineEndings replaces every CR, LF and CRLF outside raw-text elements with a single
	// space.
	NormalizeLineEndings bool

	// IgnoreBlockMode selects the handling of template blocks.
	IgnoreBlockMode IgnoreBlockMode

	// IgnoreBlockOpen and IgnoreBlockClose delimit template blocks. An empty IgnoreBlockOpen
	// disables template block detection.
	IgnoreBlockOpen  string
	IgnoreBlockClose string

	// InlineBreakText is written by PlainText for <br> elements.
	InlineBreakText string

	// BlockBreakText is written by PlainText between list-item-like elements (li, dt, dd, tr).
	BlockBreakText string

	// RawTextTags lists elements whose content is captured verbatim and never tokenized.
	RawTextTags []string
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		NormalizeLineEndings: true,
		IgnoreBlockMode:      IgnoreLegacy,
		IgnoreBlockOpen:      "{",
		IgnoreBlockClose:     "}",
		InlineBreakText:      "\r\n",
		BlockBreakText:       "\r\n",
		RawTextTags:          []string{"script", "style", "textarea"},
	}
}

// rawTextSet returns the lower-cased RawTextTags as a set.
func (o *Options) rawTextSet() map[string]bool {
	m := make(map[string]bool, len(o.RawTextTags))
	for _, t := range o.RawTextTags {
		m[strings.ToLower(t)] = true
	}
	return m
}
