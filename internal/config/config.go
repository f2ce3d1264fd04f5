// Package config loads htmldom settings from a TOML file.
//
// Example:
//
//	normalize_line_endings = false
//	ignore_blocks = "as-text"
//	ignore_block_open = "{{"
//	ignore_block_close = "}}"
//	block_break_text = "\n"
//	raw_text_tags = ["script", "style", "template"]
//	log_level = "debug"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dpotapov/go-htmldom/dom"
)

// Config is the content of a configuration file. Keys missing from the file keep their defaults.
type Config struct {
	NormalizeLineEndings bool                `toml:"normalize_line_endings"`
	IgnoreBlocks         dom.IgnoreBlockMode `toml:"ignore_blocks"`
	IgnoreBlockOpen      string              `toml:"ignore_block_open"`
	IgnoreBlockClose     string              `toml:"ignore_block_close"`
	InlineBreakText      string              `toml:"inline_break_text"`
	BlockBreakText       string              `toml:"block_break_text"`
	RawTextTags          []string            `toml:"raw_text_tags"`
	LogLevel             slog.Level          `toml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	opts := dom.DefaultOptions()
	return Config{
		NormalizeLineEndings: opts.NormalizeLineEndings,
		IgnoreBlocks:         opts.IgnoreBlockMode,
		IgnoreBlockOpen:      opts.IgnoreBlockOpen,
		IgnoreBlockClose:     opts.IgnoreBlockClose,
		InlineBreakText:      opts.InlineBreakText,
		BlockBreakText:       opts.BlockBreakText,
		RawTextTags:          opts.RawTextTags,
		LogLevel:             slog.LevelWarn,
	}
}

// Load reads the configuration file at path.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a configuration from r. Unknown keys are rejected.
func Decode(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Config{}, fmt.Errorf("line %d column %d: %w", row, col, err)
		}
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem found in the configuration.
func (c Config) Validate() error {
	var errs []error
	if c.IgnoreBlockOpen != "" && c.IgnoreBlockClose == "" {
		errs = append(errs, errors.New("ignore_block_close must be set when ignore_block_open is"))
	}
	if c.IgnoreBlockOpen != "" && strings.HasPrefix(c.IgnoreBlockOpen, "<") {
		errs = append(errs, fmt.Errorf("ignore_block_open %q must not start with '<'", c.IgnoreBlockOpen))
	}
	for i, tag := range c.RawTextTags {
		if tag == "" || strings.ContainsAny(tag, " \t\r\n<>/=") {
			errs = append(errs, fmt.Errorf("raw_text_tags[%d]: invalid tag name %q", i, tag))
		}
	}
	return errors.Join(errs...)
}

// Options converts the configuration to parser options.
func (c Config) Options() dom.Options {
	opts := dom.DefaultOptions()
	opts.NormalizeLineEndings = c.NormalizeLineEndings
	opts.IgnoreBlockMode = c.IgnoreBlocks
	opts.IgnoreBlockOpen = c.IgnoreBlockOpen
	opts.IgnoreBlockClose = c.IgnoreBlockClose
	opts.InlineBreakText = c.InlineBreakText
	opts.BlockBreakText = c.BlockBreakText
	opts.RawTextTags = c.RawTextTags
	return opts
}
