package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdrender/pkg/config"
)

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts config.TemplateOptions
	}{
		{"minimal", config.TemplateOptions{}},
		{"full", config.TemplateOptions{Full: true}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			data, err := config.GenerateTemplate(testCase.opts)
			require.NoError(t, err)

			cfg, err := config.FromYAML(data)
			require.NoError(t, err, "template must be valid configuration")
			assert.Equal(t, "html", cfg.Type)
			assert.Equal(t, config.FlavorGFM, cfg.Flavor)
		})
	}
}

func TestGenerateTemplate_FullListsFeatures(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
	require.NoError(t, err)
	for _, name := range config.FeatureNames() {
		assert.Contains(t, string(data), name)
	}
}

func TestGenerateTemplate_JSON(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "html", doc["type"])
	assert.Contains(t, doc, "html")

	section, ok := doc["term"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, section, "no_colour")
}
