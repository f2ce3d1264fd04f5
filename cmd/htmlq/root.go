package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	htmldom "github.com/dpotapov/go-htmldom"
	"github.com/dpotapov/go-htmldom/dom"
	"github.com/dpotapov/go-htmldom/internal/config"
)

var (
	queryIndex   int
	queryAttr    string
	queryText    bool
	queryInner   bool
	queryWhere   string
	queryXPath   bool
	configPath   string
	verbose      bool
	rawLineBreak bool
)

var rootCmd = &cobra.Command{
	Use:   "htmlq SELECTOR [FILE]",
	Short: "Query HTML documents with CSS selectors",
	Long: `Parses an HTML document from FILE, or standard input when FILE is omitted,
and prints every element matching SELECTOR, one per line.

Malformed markup is accepted as is. With --xpath, SELECTOR is an XPath expression.`,
	Args:          cobra.RangeArgs(1, 2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runQuery,
}

func init() {
	f := rootCmd.Flags()
	f.IntVarP(&queryIndex, "index", "i", 0, "print only the i-th match; negative values count from the end")
	f.StringVarP(&queryAttr, "attr", "a", "", "print the value of this attribute instead of the markup")
	f.BoolVarP(&queryText, "text", "t", false, "print the plain text of each match")
	f.BoolVar(&queryInner, "inner", false, "print the inner markup of each match")
	f.StringVarP(&queryWhere, "where", "w", "", "keep only matches for which this expression holds")
	f.BoolVar(&queryXPath, "xpath", false, "treat SELECTOR as an XPath expression")
	f.StringVarP(&configPath, "config", "c", "", "path to a TOML configuration file")
	f.BoolVarP(&verbose, "verbose", "v", false, "log debug messages to standard error")
	f.BoolVar(&rawLineBreak, "raw", false, "keep line breaks as written")
	rootCmd.MarkFlagsMutuallyExclusive("attr", "text", "inner")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	opts := cfg.Options()
	if rawLineBreak {
		opts.NormalizeLineEndings = false
	}

	level := cfg.LogLevel
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	in := cmd.InOrStdin()
	if len(args) == 2 {
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	p := &htmldom.Parser{Options: &opts, Logger: logger}
	doc, err := p.ParseReader(in)
	if err != nil {
		return err
	}

	nodes, err := query(doc, args[0])
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("index") {
		n := dom.PickIndex(nodes, queryIndex)
		if n == nil {
			return fmt.Errorf("no match at index %d (%d matches)", queryIndex, len(nodes))
		}
		nodes = []*dom.Node{n}
	}

	return printNodes(cmd.OutOrStdout(), nodes, opts)
}

func query(doc *htmldom.Document, selector string) ([]*dom.Node, error) {
	if !queryXPath {
		if queryWhere != "" {
			return doc.FindWhere(selector, queryWhere)
		}
		sel, err := dom.Compile(selector)
		if err != nil {
			return nil, err
		}
		return sel.MatchAll(doc.Root()), nil
	}

	nodes, err := doc.XPath(selector)
	if err != nil {
		return nil, err
	}
	if queryWhere == "" {
		return nodes, nil
	}
	pred, err := htmldom.CompilePredicate(queryWhere)
	if err != nil {
		return nil, err
	}
	return pred.Filter(nodes)
}

func printNodes(w io.Writer, nodes []*dom.Node, opts dom.Options) error {
	for _, n := range nodes {
		var s string
		switch {
		case queryAttr != "":
			v, ok := n.Attr(queryAttr)
			if !ok {
				continue
			}
			s = v
		case queryText:
			s = n.PlainTextWith(opts)
		case queryInner:
			s = n.InnerText()
		default:
			s = n.OuterText()
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}
