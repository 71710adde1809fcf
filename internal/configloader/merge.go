package configloader

import "github.com/yaklabco/gomdrender/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Booleans: override can switch an option on but never off
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Type != "" {
		result.Type = override.Type
	}
	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Locale != "" {
		result.Locale = override.Locale
	}
	if override.MaxBytes != 0 {
		result.MaxBytes = override.MaxBytes
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	result.Standalone = result.Standalone || override.Standalone

	mergeHTML(&result.HTML, override.HTML)
	mergeLaTeX(&result.LaTeX, override.LaTeX)
	mergeTerm(&result.Term, override.Term)

	if override.Parser.Features != nil {
		result.Parser.Features = override.Parser.Features
	}
	result.Parser.DetectLanguage = result.Parser.DetectLanguage || override.Parser.DetectLanguage

	if override.Meta != nil {
		result.Meta = override.Meta
	}
	if override.MetaOverride != nil {
		result.MetaOverride = override.MetaOverride
	}

	return result
}

func mergeHTML(base *config.HTMLConfig, override config.HTMLConfig) {
	base.SkipHTML = base.SkipHTML || override.SkipHTML
	base.Escape = base.Escape || override.Escape
	base.HardWrap = base.HardWrap || override.HardWrap
	base.HeadIDs = base.HeadIDs || override.HeadIDs
	base.NumEnt = base.NumEnt || override.NumEnt
	base.OWASP = base.OWASP || override.OWASP
}

func mergeLaTeX(base *config.LaTeXConfig, override config.LaTeXConfig) {
	base.Numbered = base.Numbered || override.Numbered
	base.SkipHTML = base.SkipHTML || override.SkipHTML
}

func mergeTerm(base *config.TermConfig, override config.TermConfig) {
	if override.Columns != 0 {
		base.Columns = override.Columns
	}
	base.NoColour = base.NoColour || override.NoColour
	base.NoLink = base.NoLink || override.NoLink
	base.ShortLink = base.ShortLink || override.ShortLink
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
