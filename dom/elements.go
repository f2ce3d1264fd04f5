package dom

import (
	a "golang.org/x/net/html/atom"
)

// voidElements cannot have children and have no end tag.
var voidElements = map[a.Atom]bool{
	a.Area: true, a.Base: true, a.Basefont: true, a.Bgsound: true, a.Br: true, a.Col: true,
	a.Embed: true, a.Frame: true, a.Hr: true, a.Image: true, a.Img: true, a.Input: true,
	a.Keygen: true, a.Link: true, a.Meta: true, a.Param: true, a.Source: true, a.Track: true,
	a.Wbr: true,
}

// blockElements are rendered by PlainText as paragraphs separated by a blank line.
var blockElements = map[a.Atom]bool{
	a.Address: true, a.Article: true, a.Aside: true, a.Blockquote: true, a.Body: true,
	a.Center: true, a.Details: true, a.Dialog: true, a.Dir: true, a.Div: true, a.Dl: true,
	a.Fieldset: true, a.Figcaption: true, a.Figure: true, a.Footer: true, a.Form: true,
	a.H1: true, a.H2: true, a.H3: true, a.H4: true, a.H5: true, a.H6: true, a.Header: true,
	a.Hgroup: true, a.Hr: true, a.Html: true, a.Listing: true, a.Main: true, a.Menu: true,
	a.Nav: true, a.Ol: true, a.P: true, a.Pre: true, a.Section: true, a.Summary: true,
	a.Table: true, a.Ul: true,
}

// listItemElements are rendered by PlainText on their own line separated by
// Options.BlockBreakText.
var listItemElements = map[a.Atom]bool{
	a.Li: true, a.Dt: true, a.Dd: true, a.Tr: true, a.Option: true,
}

// hiddenElements never contribute to PlainText.
var hiddenElements = map[a.Atom]bool{
	a.Script: true, a.Style: true, a.Head: true, a.Template: true, a.Noscript: true,
}

// Section 12.2.4.2 (stop tags for the default scope); elements that end the search for an open
// element to close implicitly.
var defaultScopeStopTags = []a.Atom{
	a.Applet, a.Caption, a.Html, a.Table, a.Td, a.Th, a.Marquee, a.Object, a.Template,
}

// caseInsensitiveAttrs are compared case-insensitively by attribute selectors, following the
// HTML attributes whose values are ASCII case-insensitive in browsers.
var caseInsensitiveAttrs = map[string]bool{
	"accept": true, "accept-charset": true, "align": true, "alink": true, "axis": true,
	"bgcolor": true, "charset": true, "checked": true, "clear": true, "codetype": true,
	"color": true, "compact": true, "declare": true, "defer": true, "dir": true, "direction": true,
	"disabled": true, "enctype": true, "face": true, "frame": true, "hreflang": true,
	"http-equiv": true, "lang": true, "language": true, "link": true, "media": true,
	"method": true, "multiple": true, "nohref": true, "noresize": true, "noshade": true,
	"nowrap": true, "readonly": true, "rel": true, "rev": true, "rules": true, "scope": true,
	"scrolling": true, "selected": true, "shape": true, "target": true, "text": true,
	"type": true, "valign": true, "valuetype": true, "vlink": true,
}

func lookupAtom(tag string) a.Atom {
	return a.Lookup([]byte(tag))
}
