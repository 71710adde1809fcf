package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdrender/pkg/config"
)

// envVarPrefix is the prefix for all gomdrender environment variables.
const envVarPrefix = "GOMDRENDER_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"TYPE":            {"type", envTypeString, "Output type: html, latex, term, or tree"},
	"FLAVOR":          {"flavor", envTypeString, "Markdown flavor: commonmark or gfm"},
	"STANDALONE":      {"standalone", envTypeBool, "Emit a complete document: true or false"},
	"LOCALE":          {"locale", envTypeString, "Locale for placeholders, e.g. en or fa"},
	"MAX_BYTES":       {"max_bytes", envTypeInt, "Maximum output size in bytes (0 = unlimited)"},
	"COLUMNS":         {"term.columns", envTypeInt, "Terminal wrap width"},
	"NO_COLOUR":       {"term.no_colour", envTypeBool, "Disable terminal styling: true or false"},
	"FEATURES":        {"parser.features", envTypeSlice, "Comma-separated list of syntax extensions"},
	"DETECT_LANGUAGE": {"parser.detect_language", envTypeBool, "Guess missing code languages: true or false"},
	"META":            {"meta", envTypeSlice, "Comma-separated \"key: value\" metadata defaults"},
	"METAOVR":         {"metaovr", envTypeSlice, "Comma-separated \"key: value\" metadata overrides"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOMDRENDER_ (e.g., GOMDRENDER_TYPE).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "type":
		cfg.Type = value
	case "flavor":
		cfg.Flavor = config.Flavor(value)
	case "locale":
		cfg.Locale = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "standalone":
		cfg.Standalone = value
	case "term.no_colour":
		cfg.Term.NoColour = value
	case "parser.detect_language":
		cfg.Parser.DetectLanguage = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "max_bytes":
		cfg.MaxBytes = value
	case "term.columns":
		cfg.Term.Columns = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "parser.features":
		cfg.Parser.Features = value
	case "meta":
		cfg.Meta = value
	case "metaovr":
		cfg.MetaOverride = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
