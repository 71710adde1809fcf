package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/gomdrender/pkg/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.Type != "html" {
		t.Errorf("expected type html, got %q", result.Config.Type)
	}
	if result.Config.Flavor != config.FlavorGFM {
		t.Errorf("expected flavor %q, got %q", config.FlavorGFM, result.Config.Flavor)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gomdrender.yml"), `
type: latex
standalone: true
latex:
  numbered: true
meta:
  - "title: Project"
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Type != "latex" || !cfg.Standalone || !cfg.LaTeX.Numbered {
		t.Errorf("project config not applied: %+v", cfg)
	}
	if len(cfg.Meta) != 1 || cfg.Meta[0] != "title: Project" {
		t.Errorf("expected project meta, got %v", cfg.Meta)
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
}

func TestLoad_ProjectConfigFromSubdirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gomdrender.yaml"), "type: term\n")
	sub := filepath.Join(root, "docs", "guide")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(sub))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Type != "term" {
		t.Errorf("expected type term from parent directory, got %q", result.Config.Type)
	}
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ".gomdrender.yml"), "type: term\n")
	repo := filepath.Join(outer, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, err := FindProjectConfig(context.Background(), repo)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if path != "" {
		t.Errorf("expected search to stop at the VCS root, found %q", path)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gomdrender.yml"), "type: latex\nlocale: de\n")
	customPath := filepath.Join(tmpDir, "custom-config.yml")
	writeFile(t, customPath, "type: tree\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Type != "tree" {
		t.Errorf("expected explicit type tree, got %q", result.Config.Type)
	}
	if result.Config.Locale != "de" {
		t.Errorf("expected project locale de to survive, got %q", result.Config.Locale)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != customPath {
		t.Errorf("expected project then explicit, got %v", result.LoadedFrom)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gomdrender.yml"), `
type: latex
term:
  columns: 60
`)

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{
		Type:   "term",
		Output: "out.txt",
		Term:   config.TermConfig{NoColour: true},
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Type != "term" {
		t.Errorf("expected type term (CLI override), got %q", cfg.Type)
	}
	if cfg.Term.Columns != 60 || !cfg.Term.NoColour {
		t.Errorf("expected merged term section, got %+v", cfg.Term)
	}
	if cfg.Output != "out.txt" {
		t.Errorf("expected CLI output path, got %q", cfg.Output)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"flavor", "flavor: invalid-flavor\n", "flavor"},
		{"type", "type: pdf\n", "type"},
		{"locale", "locale: \"not a locale!\"\n", "locale"},
		{"features", "parser:\n  features: [emoji]\n", "parser.features"},
		{"meta", "meta:\n  - \"no colon\"\n", "meta[0]"},
		{"columns", "term:\n  columns: -1\n", "term.columns"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			path := filepath.Join(tmpDir, ".gomdrender.yml")
			writeFile(t, path, testCase.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if validationErr.Field != testCase.field {
				t.Errorf("expected field %q, got %q", testCase.field, validationErr.Field)
			}
			if validationErr.FilePath != path {
				t.Errorf("expected error to name %q, got %q", path, validationErr.FilePath)
			}
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gomdrender.yml"), "type: [html\n")

	_, err := Load(context.Background(), isolated(tmpDir))
	if err == nil || !strings.Contains(err.Error(), "project config") {
		t.Fatalf("expected project config error, got %v", err)
	}
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gomdrender.yml"), `
type: tree
standalone: true
html:
  skip_html: true
  escape: true
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 2 {
		t.Errorf("expected 2 warnings, got %v", result.Warnings)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation error, got %v", err)
	}
}

func TestLoad_Environment(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gomdrender.yml"), "type: latex\n")

	t.Setenv("GOMDRENDER_TYPE", "term")
	t.Setenv("GOMDRENDER_COLUMNS", "72")
	t.Setenv("GOMDRENDER_META", "title: Env, author: Bot")

	opts := isolated(tmpDir)
	opts.IgnoreEnv = false
	opts.CLIConfig = &config.Config{Type: "tree"}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Type != "tree" {
		t.Errorf("expected CLI to beat environment, got %q", cfg.Type)
	}
	if cfg.Term.Columns != 72 {
		t.Errorf("expected columns 72 from environment, got %d", cfg.Term.Columns)
	}
	if len(cfg.Meta) != 2 || cfg.Meta[1] != "author: Bot" {
		t.Errorf("expected meta from environment, got %v", cfg.Meta)
	}
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bool", "GOMDRENDER_STANDALONE", "maybe"},
		{"int", "GOMDRENDER_MAX_BYTES", "lots"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Setenv(testCase.key, testCase.value)

			err := LoadFromEnv(config.NewConfig())
			if err == nil || !strings.Contains(err.Error(), testCase.key) {
				t.Fatalf("expected error naming %s, got %v", testCase.key, err)
			}
		})
	}
}

func TestEnvVarNames(t *testing.T) {
	t.Parallel()

	if got := GetEnvVarName("term.columns"); got != "GOMDRENDER_COLUMNS" {
		t.Errorf("GetEnvVarName() = %q", got)
	}
	if got := GetEnvVarName("nope"); got != "" {
		t.Errorf("GetEnvVarName() = %q, want empty", got)
	}

	vars := ListEnvVars()
	if len(vars) != len(envMappings) {
		t.Errorf("ListEnvVars() has %d entries, want %d", len(vars), len(envMappings))
	}
	for name, description := range vars {
		if !strings.HasPrefix(name, envVarPrefix) || description == "" {
			t.Errorf("bad entry %q: %q", name, description)
		}
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.HTML.HeadIDs = true
	base.Meta = []string{"title: Base"}

	middle := &config.Config{Type: "latex", Parser: config.ParserConfig{Features: []string{"tables"}}}
	top := &config.Config{Locale: "fa", Meta: []string{"title: Top"}}

	got := MergeAll(base, middle, top)

	if got.Type != "latex" || got.Locale != "fa" || !got.HTML.HeadIDs {
		t.Errorf("unexpected merge result: %+v", got)
	}
	if len(got.Meta) != 1 || got.Meta[0] != "title: Top" {
		t.Errorf("expected top meta to replace base, got %v", got.Meta)
	}
	if len(got.Parser.Features) != 1 {
		t.Errorf("expected features from middle, got %v", got.Parser.Features)
	}
	if base.Type != "html" {
		t.Error("merge must not modify its inputs")
	}
	if MergeAll() != nil {
		t.Error("MergeAll() with no configs must return nil")
	}
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), ".gomdrender.yml")

	if err := WriteConfig(ctx, path, []byte("type: html\n"), false); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}
	if err := WriteConfig(ctx, path, []byte("type: term\n"), false); !errors.Is(err, ErrConfigExists) {
		t.Fatalf("expected ErrConfigExists, got %v", err)
	}
	if err := WriteConfig(ctx, path, []byte("type: term\n"), true); err != nil {
		t.Fatalf("WriteConfig(force) error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(content) != "type: term\n" {
		t.Errorf("content = %q", content)
	}
}
