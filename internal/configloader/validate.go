package configloader

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/yaklabco/gomdrender/pkg/config"
	"github.com/yaklabco/gomdrender/pkg/render"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "term.columns").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown fields).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownFlavors lists valid flavor values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFlavors = map[config.Flavor]bool{
	config.FlavorCommonMark: true,
	config.FlavorGFM:        true,
}

// minColumns is the narrowest terminal width that still wraps sensibly.
const minColumns = 20

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	outputType, typeErr := render.ParseOutputType(cfg.Type)
	if typeErr != nil {
		result.addError("type", cfg.Type, typeErr.Error())
	}

	if cfg.Flavor != "" && !knownFlavors[cfg.Flavor] {
		result.addError("flavor", cfg.Flavor,
			fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor))
	}

	if cfg.Locale != "" {
		if _, err := language.Parse(cfg.Locale); err != nil {
			result.addError("locale", cfg.Locale, fmt.Sprintf("invalid locale %q: %v", cfg.Locale, err))
		}
	}

	if cfg.MaxBytes < 0 {
		result.addError("max_bytes", cfg.MaxBytes, "max_bytes must be >= 0 (0 means unlimited)")
	}

	validateTerm(cfg, result)
	validateParser(cfg, result)

	if cfg.HTML.SkipHTML && cfg.HTML.Escape {
		result.addWarning("html.escape", true, "escape has no effect when skip_html is set")
	}
	if typeErr == nil && outputType == render.TypeTree && cfg.Standalone {
		result.addWarning("standalone", true, "the tree output has no standalone form")
	}

	return result
}

func validateTerm(cfg *config.Config, result *ValidationResult) {
	switch {
	case cfg.Term.Columns < 0:
		result.addError("term.columns", cfg.Term.Columns, "columns must be >= 0 (0 means terminal width)")
	case cfg.Term.Columns > 0 && cfg.Term.Columns < minColumns:
		result.addWarning("term.columns", cfg.Term.Columns,
			fmt.Sprintf("columns below %d are raised to %d", minColumns, minColumns))
	}

	if cfg.Term.NoLink && cfg.Term.ShortLink {
		result.addWarning("term.short_link", true, "short_link has no effect when no_link is set")
	}
}

func validateParser(cfg *config.Config, result *ValidationResult) {
	if _, err := config.ParseFeatures(cfg.Parser.Features); err != nil {
		result.addError("parser.features", cfg.Parser.Features, err.Error())
	}

	for i, entry := range cfg.Meta {
		if _, err := config.ParseMeta([]string{entry}); err != nil {
			result.addError(fmt.Sprintf("meta[%d]", i), entry, err.Error())
		}
	}
	for i, entry := range cfg.MetaOverride {
		if _, err := config.ParseMeta([]string{entry}); err != nil {
			result.addError(fmt.Sprintf("metaovr[%d]", i), entry, err.Error())
		}
	}
}

func (r *ValidationResult) addError(field string, value any, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: message})
}

func (r *ValidationResult) addWarning(field string, value any, message string) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: message})
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFlavor returns true if the flavor is valid.
func IsValidFlavor(f config.Flavor) bool {
	return knownFlavors[f]
}
