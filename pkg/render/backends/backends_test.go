package backends_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdrender/pkg/mdast"
	"github.com/yaklabco/gomdrender/pkg/parser/goldmark"
	"github.com/yaklabco/gomdrender/pkg/render"
	"github.com/yaklabco/gomdrender/pkg/render/backends"
)

func sampleTree() *mdast.Tree {
	tree := mdast.NewTree()
	para := tree.Append(tree.Root(), mdast.Paragraph{Lines: 1})
	tree.AppendText(para, "A & B")
	return tree
}

func TestRegisterAll(t *testing.T) {
	t.Parallel()

	registry := render.NewRegistry()
	backends.RegisterAll(registry)

	assert.Equal(t,
		[]render.OutputType{render.TypeHTML, render.TypeLaTeX, render.TypeTerm, render.TypeTree},
		registry.Types())
}

func TestDefaultRegistry_Document(t *testing.T) {
	t.Parallel()

	tests := []struct {
		outputType render.OutputType
		flags      render.Flag
		expected   string
	}{
		{render.TypeHTML, 0, "<p>A &amp; B</p>\n"},
		{render.TypeLaTeX, 0, "\nA \\& B\n"},
		{render.TypeTerm, render.FlagTermNoColour, "A & B\n"},
		{render.TypeTree, 0, "ROOT\n  PARAGRAPH\n    lines: 1, blank-after: 0\n    NORMAL_TEXT\n      data: 5 Bytes: A & B\n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.outputType.String(), func(t *testing.T) {
			t.Parallel()

			opts := render.DefaultOptions()
			opts.Type = testCase.outputType
			opts.Flags = testCase.flags

			out, err := render.Document(context.Background(), opts, sampleTree(), nil)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, string(out))
		})
	}
}

const benchSection = `## Section

Some *emphasis*, **strong** text, ` + "`code`" + ` and a [link](https://example.com "title").

- one
- two
  - nested

| a | b |
|---|:-:|
| 1 | 2 |

` + "```go\nfunc main() {}\n```" + `

Footnote reference.[^n]

[^n]: The note.

`

func BenchmarkDocument(b *testing.B) {
	src := []byte("---\ntitle: Bench\n---\n" + strings.Repeat(benchSection, 50))
	parser := goldmark.New(goldmark.Options{Flavor: goldmark.FlavorGFM, Features: render.FeatureDefault})

	tree, err := parser.Parse(context.Background(), src)
	if err != nil {
		b.Fatal(err)
	}

	registry := render.NewRegistry()
	backends.RegisterAll(registry)

	for _, outputType := range registry.Types() {
		b.Run(outputType.String(), func(b *testing.B) {
			opts := render.DefaultOptions()
			opts.Type = outputType
			opts.Flags |= render.FlagStandalone | render.FlagTermNoColour
			b.SetBytes(int64(len(src)))
			b.ReportAllocs()

			for b.Loop() {
				if _, err := registry.Document(context.Background(), opts, tree, nil); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
