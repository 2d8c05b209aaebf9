// Package config holds the window-manager options. The options live in an
// explicit structure owned by the facade and handed to the layout core; there
// is no process-wide option table.
package config

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/termwm/internal/renderer/core"
)

// Options controls window-manager behavior, after the fashion of Vim's
// window options.
type Options struct {
	// WinMinHeight is the floor for any pane's minimum height ("wmh").
	WinMinHeight int

	// WinMinWidth is the floor for any pane's minimum width ("wmw").
	WinMinWidth int

	// SplitBelow places new panes after the split target ("sb").
	// When false, the new pane takes the target's slot instead.
	SplitBelow bool

	// SplitRight places new column-wise panes after the split target ("spr").
	SplitRight bool

	// StatusColor is the base chrome color as "#RRGGBB"; empty keeps the
	// built-in theme.
	StatusColor string

	// LogLevel is the facade log verbosity ("debug", "info", "warn", "error").
	LogLevel string

	// LogFile is the facade log destination; empty disables file logging.
	LogFile string
}

// Default returns the standard option set.
func Default() Options {
	return Options{
		WinMinHeight: 1,
		WinMinWidth:  1,
		SplitBelow:   true,
		SplitRight:   true,
		LogLevel:     "info",
	}
}

// Load reads options from a JSON file, starting from defaults. Missing keys
// keep their default values. A missing file is not an error.
func Load(path string) (Options, error) {
	opts := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, fmt.Errorf("read config %s: %w", path, err)
	}

	if !gjson.ValidBytes(data) {
		return opts, fmt.Errorf("parse config %s: invalid JSON", path)
	}

	doc := gjson.ParseBytes(data)
	if v := doc.Get("winminheight"); v.Exists() {
		opts.WinMinHeight = int(v.Int())
	}
	if v := doc.Get("winminwidth"); v.Exists() {
		opts.WinMinWidth = int(v.Int())
	}
	if v := doc.Get("splitbelow"); v.Exists() {
		opts.SplitBelow = v.Bool()
	}
	if v := doc.Get("splitright"); v.Exists() {
		opts.SplitRight = v.Bool()
	}
	if v := doc.Get("theme.status"); v.Exists() {
		opts.StatusColor = v.String()
	}
	if v := doc.Get("log.level"); v.Exists() {
		opts.LogLevel = v.String()
	}
	if v := doc.Get("log.file"); v.Exists() {
		opts.LogFile = v.String()
	}

	if err := opts.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return opts, nil
}

// Save writes the options as JSON to the given path.
func (o Options) Save(path string) error {
	doc := "{}"
	var err error

	set := func(key string, value any) {
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, key, value)
	}

	set("winminheight", o.WinMinHeight)
	set("winminwidth", o.WinMinWidth)
	set("splitbelow", o.SplitBelow)
	set("splitright", o.SplitRight)
	if o.StatusColor != "" {
		set("theme.status", o.StatusColor)
	}
	set("log.level", o.LogLevel)
	if o.LogFile != "" {
		set("log.file", o.LogFile)
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(path, []byte(doc+"\n"), 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Validate checks option values for consistency.
func (o Options) Validate() error {
	if o.WinMinHeight < 0 {
		return fmt.Errorf("winminheight must be >= 0, got %d", o.WinMinHeight)
	}
	if o.WinMinWidth < 0 {
		return fmt.Errorf("winminwidth must be >= 0, got %d", o.WinMinWidth)
	}
	if o.StatusColor != "" {
		if _, err := core.ColorFromHex(o.StatusColor); err != nil {
			return fmt.Errorf("theme.status: %w", err)
		}
	}
	switch o.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", o.LogLevel)
	}
	return nil
}
