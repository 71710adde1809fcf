package config

import (
	"errors"
	"fmt"

	"github.com/yaklabco/gomdrender/pkg/meta"
	"github.com/yaklabco/gomdrender/pkg/parser/goldmark"
	"github.com/yaklabco/gomdrender/pkg/render"
)

// ErrInvalidMeta is returned for metadata entries without a "key: value"
// shape.
var ErrInvalidMeta = errors.New("invalid metadata entry")

// RenderOptions converts the configuration into backend options.
func (c *Config) RenderOptions() (render.Options, error) {
	outputType, err := render.ParseOutputType(c.Type)
	if err != nil {
		return render.Options{}, fmt.Errorf("type: %w", err)
	}

	features, err := ParseFeatures(c.Parser.Features)
	if err != nil {
		return render.Options{}, fmt.Errorf("parser.features: %w", err)
	}

	opts := render.DefaultOptions()
	opts.Type = outputType
	opts.Features = features
	opts.Flags = c.flags()
	opts.MaxBytes = c.MaxBytes
	if c.Term.Columns > 0 {
		opts.Columns = c.Term.Columns
	}
	if c.Locale != "" {
		opts.Locale = c.Locale
	}
	return opts, nil
}

func (c *Config) flags() render.Flag {
	var flags render.Flag
	set := func(on bool, flag render.Flag) {
		if on {
			flags |= flag
		}
	}

	set(c.Standalone, render.FlagStandalone)
	set(c.HTML.SkipHTML, render.FlagHTMLSkipHTML)
	set(c.HTML.Escape, render.FlagHTMLEscape)
	set(c.HTML.HardWrap, render.FlagHTMLHardWrap)
	set(c.HTML.HeadIDs, render.FlagHTMLHeadIDs)
	set(c.HTML.NumEnt, render.FlagHTMLNumEnt)
	set(c.HTML.OWASP, render.FlagHTMLOWASP)
	set(c.LaTeX.Numbered, render.FlagLaTeXNumbered)
	set(c.LaTeX.SkipHTML, render.FlagLaTeXSkipHTML)
	set(c.Term.NoColour, render.FlagTermNoColour)
	set(c.Term.NoLink, render.FlagTermNoLink)
	set(c.Term.ShortLink, render.FlagTermShortLink)
	return flags
}

// ParserOptions converts the configuration into front-end options.
func (c *Config) ParserOptions() (goldmark.Options, error) {
	features, err := ParseFeatures(c.Parser.Features)
	if err != nil {
		return goldmark.Options{}, fmt.Errorf("parser.features: %w", err)
	}

	defaults, err := ParseMeta(c.Meta)
	if err != nil {
		return goldmark.Options{}, fmt.Errorf("meta: %w", err)
	}
	overrides, err := ParseMeta(c.MetaOverride)
	if err != nil {
		return goldmark.Options{}, fmt.Errorf("metaovr: %w", err)
	}

	return goldmark.Options{
		Flavor:         string(c.Flavor),
		Features:       features,
		Meta:           defaults,
		MetaOverride:   overrides,
		DetectLanguage: c.Parser.DetectLanguage,
	}, nil
}

// ParseMeta parses "key: value" strings into entries.
func ParseMeta(values []string) ([]meta.Entry, error) {
	entries := make([]meta.Entry, 0, len(values))
	for _, value := range values {
		entry, ok := meta.ParseEntry(value)
		if !ok {
			return nil, fmt.Errorf("%w %q; expected \"key: value\"", ErrInvalidMeta, value)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
