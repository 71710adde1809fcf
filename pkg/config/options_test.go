package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdrender/pkg/config"
	"github.com/yaklabco/gomdrender/pkg/meta"
	"github.com/yaklabco/gomdrender/pkg/render"
)

func TestParseFeatures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		names   []string
		want    render.Feature
		wantErr bool
	}{
		{"empty selects defaults", nil, render.FeatureDefault, false},
		{"single", []string{"tables"}, render.FeatureTables, false},
		{"case and space", []string{" Math ", "DEFLIST"}, render.FeatureMath | render.FeatureDefList, false},
		{"unknown", []string{"tables", "emoji"}, 0, true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := config.ParseFeatures(testCase.names)
			if testCase.wantErr {
				require.ErrorIs(t, err, config.ErrUnknownFeature)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestFeatureNames_AllParse(t *testing.T) {
	t.Parallel()

	_, err := config.ParseFeatures(config.FeatureNames())
	require.NoError(t, err)
}

func TestRenderOptions(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Type = "tex"
	cfg.Standalone = true
	cfg.Locale = "de"
	cfg.MaxBytes = 100
	cfg.HTML = config.HTMLConfig{HeadIDs: true, NumEnt: true}
	cfg.LaTeX = config.LaTeXConfig{Numbered: true}
	cfg.Term = config.TermConfig{Columns: 40, NoColour: true}

	opts, err := cfg.RenderOptions()
	require.NoError(t, err)
	assert.Equal(t, render.TypeLaTeX, opts.Type)
	assert.Equal(t, render.FeatureDefault, opts.Features)
	assert.Equal(t, render.FlagStandalone|render.FlagHTMLHeadIDs|render.FlagHTMLNumEnt|
		render.FlagLaTeXNumbered|render.FlagTermNoColour, opts.Flags)
	assert.Equal(t, 40, opts.Columns)
	assert.Equal(t, "de", opts.Locale)
	assert.Equal(t, 100, opts.MaxBytes)
}

func TestRenderOptions_Defaults(t *testing.T) {
	t.Parallel()

	opts, err := (&config.Config{}).RenderOptions()
	require.NoError(t, err)
	assert.Equal(t, render.DefaultOptions(), opts)
}

func TestRenderOptions_Errors(t *testing.T) {
	t.Parallel()

	_, err := (&config.Config{Type: "pdf"}).RenderOptions()
	require.ErrorIs(t, err, render.ErrUnknownType)

	_, err = (&config.Config{Parser: config.ParserConfig{Features: []string{"x"}}}).RenderOptions()
	require.ErrorIs(t, err, config.ErrUnknownFeature)
}

func TestParserOptions(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Flavor = config.FlavorCommonMark
	cfg.Parser = config.ParserConfig{Features: []string{"fenced"}, DetectLanguage: true}
	cfg.Meta = []string{"Title: Default"}
	cfg.MetaOverride = []string{"date:  today "}

	opts, err := cfg.ParserOptions()
	require.NoError(t, err)
	assert.Equal(t, "commonmark", opts.Flavor)
	assert.Equal(t, render.FeatureFenced, opts.Features)
	assert.True(t, opts.DetectLanguage)
	assert.Equal(t, []meta.Entry{{Key: "title", Value: "Default"}}, opts.Meta)
	assert.Equal(t, []meta.Entry{{Key: "date", Value: "today"}}, opts.MetaOverride)
}

func TestParseMeta(t *testing.T) {
	t.Parallel()

	_, err := config.ParseMeta([]string{"no colon here"})
	require.ErrorIs(t, err, config.ErrInvalidMeta)

	_, err = config.ParseMeta([]string{": empty key"})
	require.ErrorIs(t, err, config.ErrInvalidMeta)

	entries, err := config.ParseMeta(nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
