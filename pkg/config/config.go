// Package config defines core configuration types for gomdrender.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// DefaultLocale is the locale used for localised placeholders.
const DefaultLocale = "en"

// HTMLConfig holds the hypertext backend options.
type HTMLConfig struct {
	// SkipHTML drops raw HTML from the output.
	SkipHTML bool `yaml:"skip_html"`

	// Escape escapes raw HTML instead of passing it through.
	Escape bool `yaml:"escape"`

	// HardWrap turns newlines inside paragraphs into line breaks.
	HardWrap bool `yaml:"hard_wrap"`

	// HeadIDs emits id attributes on headings.
	HeadIDs bool `yaml:"head_ids"`

	// NumEnt prefers numeric character references.
	NumEnt bool `yaml:"num_ent"`

	// OWASP escapes the OWASP-recommended character set.
	OWASP bool `yaml:"owasp"`
}

// LaTeXConfig holds the typesetting backend options.
type LaTeXConfig struct {
	// Numbered numbers sections.
	Numbered bool `yaml:"numbered"`

	// SkipHTML drops raw HTML instead of escaping it.
	SkipHTML bool `yaml:"skip_html"`
}

// TermConfig holds the terminal backend options.
type TermConfig struct {
	// Columns is the wrap width. Zero means the terminal width.
	Columns int `yaml:"columns"`

	// NoColour disables ANSI styling.
	NoColour bool `yaml:"no_colour"`

	// NoLink omits link targets.
	NoLink bool `yaml:"no_link"`

	// ShortLink abbreviates link targets to host and last path segment.
	ShortLink bool `yaml:"short_link"`
}

// ParserConfig controls the Markdown front end.
type ParserConfig struct {
	// Features names the syntax extensions to enable, e.g. "tables".
	// Empty selects the default set.
	Features []string `yaml:"features,omitempty"`

	// DetectLanguage guesses missing code block languages.
	DetectLanguage bool `yaml:"detect_language"`
}

// Config is the root configuration structure for gomdrender.
type Config struct {
	// Type selects the output backend ("html", "latex", "term" or "tree").
	Type string `yaml:"type"`

	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor"`

	// Standalone wraps output in a complete document.
	Standalone bool `yaml:"standalone"`

	// Locale is a BCP 47 tag for localised placeholders.
	Locale string `yaml:"locale"`

	// MaxBytes caps the rendered document size. Zero means unlimited.
	MaxBytes int `yaml:"max_bytes"`

	HTML   HTMLConfig   `yaml:"html"`
	LaTeX  LaTeXConfig  `yaml:"latex"`
	Term   TermConfig   `yaml:"term"`
	Parser ParserConfig `yaml:"parser"`

	// Meta holds "key: value" defaults used when a document does not set
	// the key itself.
	Meta []string `yaml:"meta,omitempty"`

	// MetaOverride holds "key: value" entries that replace the document's.
	MetaOverride []string `yaml:"metaovr,omitempty"`

	// CLI-level options (not persisted to config files).

	// Output is the output file path. Empty means stdout.
	Output string `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Type:   "html",
		Flavor: FlavorGFM,
		Locale: DefaultLocale,
	}
}
