// Package dom parses HTML the way authors write it rather than the way browsers repair it.
//
// Any input produces a tree: unknown tags, stray end tags, unquoted or unterminated attribute
// values and template blocks are all accepted. A tree serializes back to the bytes it was parsed
// from, and can be queried with CSS selectors or XPath and rendered as plain text.
package dom
