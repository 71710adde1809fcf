package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every option. If false, a minimal template is
	// generated.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return []byte(fullTemplate()), nil
	}
	return []byte(minimalTemplate), nil
}

const minimalTemplate = `# gomdrender configuration
# See: https://github.com/yaklabco/gomdrender

# Output type: html, latex, term, or tree
type: html

# Markdown flavor: commonmark or gfm
flavor: gfm

# Emit a complete document instead of a fragment
# standalone: false

# Metadata defaults, used when a document does not set the key
# meta:
#   - "title: Untitled"
`

func fullTemplate() string {
	return `# gomdrender configuration - Full Template
# See: https://github.com/yaklabco/gomdrender
#
# Uncomment and modify settings as needed.

# Output type: html, latex, term, or tree
type: html

# Markdown flavor: commonmark or gfm
flavor: gfm

# Emit a complete document instead of a fragment
standalone: false

# Locale for placeholders such as the LaTeX default title
locale: en

# Maximum output size in bytes (0 = unlimited)
max_bytes: 0

html:
  skip_html: false
  escape: false
  hard_wrap: false
  head_ids: false
  num_ent: false
  owasp: false

latex:
  numbered: false
  skip_html: false

term:
  # Wrap width (0 = terminal width)
  columns: 0
  no_colour: false
  no_link: false
  short_link: false

parser:
  # Syntax extensions; leave empty for the default set.
  # Available: ` + strings.Join(FeatureNames(), ", ") + `
  features: []
  detect_language: false

# Metadata defaults, used when a document does not set the key
meta: []

# Metadata overrides, replacing the document's values
metaovr: []
`
}

// templateToJSON renders the default configuration as JSON, keyed the
// same way as the YAML form.
func templateToJSON() ([]byte, error) {
	yamlBytes, err := NewConfig().ToYAML()
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(yamlBytes, &doc); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gomdrender configuration
# See: https://github.com/yaklabco/gomdrender`
}
