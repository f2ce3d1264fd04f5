// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// Modifications:
// Copyright 2024 Daniel Potapov
//  - Returns the parts of the declaration instead of building a node. Quirks mode is not
//    computed.

package dom

import "strings"

// Doctype holds the parts of a <!DOCTYPE> declaration.
type Doctype struct {
	Name     string // lower-cased, e.g. "html"
	PublicID string
	SystemID string
}

// ParseDoctype splits the content of a doctype node, as found in Node.Data, into its name and
// the public and system identifiers if they were present.
func ParseDoctype(s string) Doctype {
	var d Doctype
	s = strings.TrimLeft(s, whitespace)

	// Find the name.
	space := strings.IndexAny(s, whitespace)
	if space == -1 {
		space = len(s)
	}
	d.Name = strings.ToLower(s[:space])
	s = strings.TrimLeft(s[space:], whitespace)

	if len(s) < 6 {
		// It can't start with "PUBLIC" or "SYSTEM".
		return d
	}

	key := strings.ToLower(s[:6])
	s = s[6:]
	for key == "public" || key == "system" {
		s = strings.TrimLeft(s, whitespace)
		if s == "" {
			break
		}
		quote := s[0]
		if quote != '"' && quote != '\'' {
			break
		}
		s = s[1:]
		var id string
		if q := strings.IndexByte(s, quote); q == -1 {
			id, s = s, ""
		} else {
			id, s = s[:q], s[q+1:]
		}
		if key == "public" {
			d.PublicID = id
			key = "system"
		} else {
			d.SystemID = id
			key = ""
		}
	}
	return d
}

// Doctype returns the first doctype declaration of the document n belongs to.
func (n *Node) Doctype() (Doctype, bool) {
	for c := range n.Root().Descendants() {
		if c.Type == DoctypeNode {
			return ParseDoctype(c.Data), true
		}
	}
	return Doctype{}, false
}
