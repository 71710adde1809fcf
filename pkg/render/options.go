package render

import (
	"fmt"
	"strings"
)

// OutputType names an output backend.
type OutputType string

// Output types known to this module. Backends register themselves under
// these names; see package backends.
const (
	TypeHTML  OutputType = "html"
	TypeLaTeX OutputType = "latex"
	TypeTerm  OutputType = "term"
	TypeTree  OutputType = "tree"
)

// ParseOutputType parses an output type name, case-insensitively.
// An empty name selects HTML.
func ParseOutputType(name string) (OutputType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "html", "":
		return TypeHTML, nil
	case "latex", "xelatex", "tex":
		return TypeLaTeX, nil
	case "term", "terminal":
		return TypeTerm, nil
	case "tree":
		return TypeTree, nil
	default:
		return "", fmt.Errorf("%w %q; valid types: html, latex, term, tree", ErrUnknownType, name)
	}
}

// String returns the string representation of the output type.
func (t OutputType) String() string {
	return string(t)
}

// Feature is a bitset of input-language features. Renderers ignore it;
// front ends consult it to decide which syntax to recognise.
type Feature uint32

// Input features.
const (
	FeatureTables Feature = 1 << iota
	FeatureFenced
	FeatureFootnotes
	FeatureAutolink
	FeatureStrike
	FeatureSuper
	FeatureMath
	FeatureMetadata
	FeatureDefList
	FeatureTasks
	FeatureHighlight
	FeatureAttributes

	// FeatureDefault is the set enabled when none is given.
	FeatureDefault = FeatureTables | FeatureFenced | FeatureFootnotes |
		FeatureAutolink | FeatureStrike | FeatureMetadata |
		FeatureDefList | FeatureTasks | FeatureAttributes
)

// Has reports whether all features of mask are enabled.
func (f Feature) Has(mask Feature) bool {
	return f&mask == mask
}

// Flag is a bitset of output options. Each backend reads the flags
// that apply to it and ignores the rest.
type Flag uint32

// Output flags.
const (
	// FlagHTMLSkipHTML drops raw HTML from HTML output.
	FlagHTMLSkipHTML Flag = 1 << iota
	// FlagHTMLEscape escapes raw HTML instead of passing it through.
	FlagHTMLEscape
	// FlagHTMLHardWrap turns newlines inside paragraphs into <br/>.
	FlagHTMLHardWrap
	// FlagHTMLHeadIDs emits id attributes on headings.
	FlagHTMLHeadIDs
	// FlagHTMLNumEnt prefers numeric character references.
	FlagHTMLNumEnt
	// FlagHTMLOWASP escapes the OWASP-recommended character set.
	FlagHTMLOWASP
	// FlagLaTeXNumbered numbers sections.
	FlagLaTeXNumbered
	// FlagLaTeXSkipHTML drops raw HTML from LaTeX output.
	FlagLaTeXSkipHTML
	// FlagStandalone wraps output in a complete document.
	FlagStandalone
	// FlagTermNoColour disables ANSI styling in terminal output.
	FlagTermNoColour
	// FlagTermNoLink omits link targets in terminal output.
	FlagTermNoLink
	// FlagTermShortLink abbreviates link targets in terminal output.
	FlagTermShortLink
)

// Has reports whether all flags of mask are set.
func (f Flag) Has(mask Flag) bool {
	return f&mask == mask
}

// DefaultColumns is the terminal width used when Options.Columns is unset.
const DefaultColumns = 80

// Options select and configure a backend.
type Options struct {
	// Type selects the backend.
	Type OutputType

	// Features records the input features the tree was parsed with.
	Features Feature

	// Flags configures the backend.
	Flags Flag

	// Columns is the terminal width for the term backend.
	Columns int

	// Locale is a BCP 47 tag used for localised placeholders, e.g. the
	// LaTeX default title.
	Locale string

	// MaxBytes caps the size of the rendered document. Zero means
	// unlimited. Exceeding it fails the render with hbuf.ErrNoSpace.
	MaxBytes int
}

// DefaultOptions returns options for HTML fragments with the default
// feature set.
func DefaultOptions() Options {
	return Options{
		Type:     TypeHTML,
		Features: FeatureDefault,
		Columns:  DefaultColumns,
		Locale:   "en",
	}
}
