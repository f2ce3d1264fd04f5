// Command htmlq prints the elements of an HTML document that match a CSS selector.
//
// Usage:
//
//	htmlq [flags] SELECTOR [FILE]
//
// Examples:
//
//	curl -s https://go.dev/ | htmlq -a href 'a[href^="https:"]'
//	htmlq -t -i -1 'ul.news > li' page.html
//	htmlq -w 'index < 3 && has("title")' a page.html
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "htmlq:", err)
		os.Exit(1)
	}
}
