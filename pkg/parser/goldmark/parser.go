// Package goldmark builds document trees from Markdown using the goldmark
// library.
package goldmark

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gomdrender/pkg/mdast"
	"github.com/yaklabco/gomdrender/pkg/meta"
	"github.com/yaklabco/gomdrender/pkg/render"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// commonMarkFeatures are the features that survive the commonmark flavor.
const commonMarkFeatures = render.FeatureFenced | render.FeatureMetadata

// Options configure a Parser.
type Options struct {
	// Flavor is "commonmark" or "gfm". Anything else selects commonmark.
	Flavor string

	// Features selects the syntax extensions. The commonmark flavor
	// masks out everything but fenced code and metadata.
	Features render.Feature

	// Meta holds defaults used when the document does not set a key.
	Meta []meta.Entry

	// MetaOverride holds entries that replace the document's.
	MetaOverride []meta.Entry

	// DetectLanguage fills in missing code block languages.
	DetectLanguage bool
}

// Parser converts Markdown into document trees. It is safe for
// concurrent use.
type Parser struct {
	opts Options
	md   goldmark.Markdown
}

// New creates a parser.
func New(opts Options) *Parser {
	opts.Flavor = flavorOrDefault(opts.Flavor)
	if opts.Flavor == FlavorCommonMark {
		opts.Features &= commonMarkFeatures
	}
	return &Parser{
		opts: opts,
		md:   newGoldmarkInstance(opts.Features),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.opts.Flavor
}

// Parse converts raw Markdown into a document tree. The tree always
// starts with a DocHeader holding the merged metadata and ends with a
// DocFooter. Malformed input never fails; only cancellation does.
func (p *Parser) Parse(ctx context.Context, content []byte) (*mdast.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	body := content
	var docMeta []meta.Entry
	if p.opts.Features.Has(render.FeatureMetadata) {
		if entries, rest, ok := SplitFrontMatter(content); ok {
			docMeta, body = entries, rest
		}
	}

	gmDoc := p.md.Parser().Parse(text.NewReader(body), parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	tree := mdast.NewTree()
	header := tree.Append(tree.Root(), mdast.DocHeader{})
	for _, entry := range meta.Merge(p.opts.Meta, docMeta, p.opts.MetaOverride) {
		node := tree.Append(header, mdast.Meta{Key: []byte(entry.Key)})
		if entry.Value != "" {
			tree.AppendText(node, entry.Value)
		}
	}

	m := newMapper(body, tree, p.opts.DetectLanguage)
	m.mapDocument(gmDoc)

	tree.Append(tree.Root(), mdast.DocFooter{})
	return tree, nil
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a goldmark.Markdown with one extension per
// enabled feature.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(features render.Feature) goldmark.Markdown {
	extensions := []struct {
		feature   render.Feature
		extension goldmark.Extender
	}{
		{render.FeatureTables, extension.Table},
		{render.FeatureStrike, extension.Strikethrough},
		{render.FeatureAutolink, extension.Linkify},
		{render.FeatureTasks, extension.TaskList},
		{render.FeatureFootnotes, extension.Footnote},
		{render.FeatureDefList, extension.DefinitionList},
	}

	var enabled []goldmark.Extender
	for _, ext := range extensions {
		if features.Has(ext.feature) {
			enabled = append(enabled, ext.extension)
		}
	}

	var parserOpts []parser.Option
	if features.Has(render.FeatureAttributes) {
		parserOpts = append(parserOpts, parser.WithAttribute())
	}

	return goldmark.New(
		goldmark.WithExtensions(enabled...),
		goldmark.WithParserOptions(parserOpts...),
	)
}
