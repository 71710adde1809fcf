package goldmark_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdrender/pkg/mdast"
	"github.com/yaklabco/gomdrender/pkg/meta"
	"github.com/yaklabco/gomdrender/pkg/parser/goldmark"
	"github.com/yaklabco/gomdrender/pkg/render"
)

func parse(t *testing.T, opts goldmark.Options, src string) *mdast.Tree {
	t.Helper()

	tree, err := goldmark.New(opts).Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	require.NotNil(t, tree)
	return tree
}

func gfm() goldmark.Options {
	return goldmark.Options{Flavor: goldmark.FlavorGFM, Features: render.FeatureDefault}
}

// only returns the single node of kind under the root.
func only(t *testing.T, tree *mdast.Tree, kind mdast.Kind) mdast.NodeID {
	t.Helper()

	ids := mdast.FindByKind(tree, tree.Root(), kind)
	require.Len(t, ids, 1, "expected exactly one %s", kind)
	return ids[0]
}

// text concatenates the NormalText descendants of id.
func text(tree *mdast.Tree, id mdast.NodeID) string {
	var out []byte
	for _, textID := range mdast.FindByKind(tree, id, mdast.KindNormalText) {
		textNode, _ := tree.Payload(textID).(mdast.NormalText)
		out = append(out, textNode.Text...)
	}
	return string(out)
}

func TestParser_Flavor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		flavor string
		want   string
	}{
		{"commonmark", goldmark.FlavorCommonMark, goldmark.FlavorCommonMark},
		{"gfm", goldmark.FlavorGFM, goldmark.FlavorGFM},
		{"invalid defaults to commonmark", "invalid", goldmark.FlavorCommonMark},
		{"empty defaults to commonmark", "", goldmark.FlavorCommonMark},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			p := goldmark.New(goldmark.Options{Flavor: testCase.flavor})
			assert.Equal(t, testCase.want, p.Flavor())
		})
	}
}

func TestParser_Framing(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"", "# Hello\n\nWorld\n"} {
		tree := parse(t, gfm(), src)

		children := tree.Children(tree.Root())
		require.GreaterOrEqual(t, len(children), 2)
		assert.Equal(t, mdast.KindDocHeader, tree.Kind(children[0]))
		assert.Equal(t, mdast.KindDocFooter, tree.Kind(children[len(children)-1]))
	}
}

func TestParser_Headings(t *testing.T) {
	t.Parallel()

	tree := parse(t, gfm(), "# One\n\n### Three\n")

	headers := mdast.FindByKind(tree, tree.Root(), mdast.KindHeader)
	require.Len(t, headers, 2)
	assert.Equal(t, mdast.Header{Level: 0}, tree.Payload(headers[0]))
	assert.Equal(t, mdast.Header{Level: 2}, tree.Payload(headers[1]))
	assert.Equal(t, "One", text(tree, headers[0]))
}

func TestParser_Paragraph(t *testing.T) {
	t.Parallel()

	tree := parse(t, gfm(), "first line\nsecond line  \nthird\n\nnext\n")

	paras := mdast.FindByKind(tree, tree.Root(), mdast.KindParagraph)
	require.Len(t, paras, 2)
	assert.Equal(t, mdast.Paragraph{Lines: 3, BlankAfter: true}, tree.Payload(paras[0]))
	assert.Equal(t, "first line\nsecond linethird", text(tree, paras[0]))
	assert.Len(t, mdast.FindByKind(tree, paras[0], mdast.KindLinebreak), 1)
}

func TestParser_Inline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		kind mdast.Kind
	}{
		{"emphasis", "*a*", mdast.KindEmphasis},
		{"strong", "**a**", mdast.KindDoubleEmphasis},
		{"triple", "***a***", mdast.KindTripleEmphasis},
		{"code", "`a`", mdast.KindCodeSpan},
		{"link", "[a](http://x)", mdast.KindLink},
		{"image", "![a](x.png)", mdast.KindImage},
		{"autolink", "<http://x.org>", mdast.KindLinkAuto},
		{"raw html", "a <b>c</b>", mdast.KindRawHTML},
		{"strikethrough", "~~a~~", mdast.KindStrikethrough},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tree := parse(t, gfm(), testCase.src+"\n")
			assert.NotEmpty(t, mdast.FindByKind(tree, tree.Root(), testCase.kind))
		})
	}
}

func TestParser_LinkAndImage(t *testing.T) {
	t.Parallel()

	tree := parse(t, gfm(), "[label](http://x.org \"T\") ![alt *text*](fig.png \"F\")\n")

	link, ok := tree.Payload(only(t, tree, mdast.KindLink)).(mdast.Link)
	require.True(t, ok)
	assert.Equal(t, "http://x.org", string(link.Link))
	assert.Equal(t, "T", string(link.Title))

	image, ok := tree.Payload(only(t, tree, mdast.KindImage)).(mdast.Image)
	require.True(t, ok)
	assert.Equal(t, "fig.png", string(image.Link))
	assert.Equal(t, "F", string(image.Title))
	assert.Equal(t, "alt text", string(image.Alt))
}

func TestParser_AutolinkEmail(t *testing.T) {
	t.Parallel()

	tree := parse(t, gfm(), "<me@example.com>\n")

	auto, ok := tree.Payload(only(t, tree, mdast.KindLinkAuto)).(mdast.LinkAuto)
	require.True(t, ok)
	assert.Equal(t, mdast.AutolinkEmail, auto.Type)
	assert.Equal(t, "me@example.com", string(auto.Link))
}

func TestParser_Lists(t *testing.T) {
	t.Parallel()

	tree := parse(t, gfm(), "3. a\n4. b\n\n- [x] done\n- [ ] todo\n")

	lists := mdast.FindByKind(tree, tree.Root(), mdast.KindList)
	require.Len(t, lists, 2)

	ordered, ok := tree.Payload(lists[0]).(mdast.List)
	require.True(t, ok)
	assert.True(t, ordered.Flags.Has(mdast.ListOrdered))
	assert.Equal(t, 3, ordered.Start)

	items := tree.Children(lists[0])
	require.Len(t, items, 2)
	second, _ := tree.Payload(items[1]).(mdast.ListItem)
	assert.Equal(t, 4, second.Num)

	tasks := tree.Children(lists[1])
	require.Len(t, tasks, 2)
	done, _ := tree.Payload(tasks[0]).(mdast.ListItem)
	todo, _ := tree.Payload(tasks[1]).(mdast.ListItem)
	assert.True(t, done.Flags.Has(mdast.ListChecked))
	assert.True(t, todo.Flags.Has(mdast.ListUnchecked))
	assert.Equal(t, "done", text(tree, tasks[0]))
}

func TestParser_LooseList(t *testing.T) {
	t.Parallel()

	tree := parse(t, gfm(), "- a\n\n- b\n")

	list, ok := tree.Payload(only(t, tree, mdast.KindList)).(mdast.List)
	require.True(t, ok)
	assert.True(t, list.Flags.Has(mdast.ListBlock|mdast.ListUnordered))
}

func TestParser_CodeBlocks(t *testing.T) {
	t.Parallel()

	tree := parse(t, gfm(), "```go\nfmt.Println()\n```\n\n    indented\n")

	blocks := mdast.FindByKind(tree, tree.Root(), mdast.KindBlockCode)
	require.Len(t, blocks, 2)
	assert.Equal(t, mdast.BlockCode{Text: []byte("fmt.Println()\n"), Lang: []byte("go")}, tree.Payload(blocks[0]))
	assert.Equal(t, mdast.BlockCode{Text: []byte("indented\n")}, tree.Payload(blocks[1]))
}

func TestParser_DetectLanguage(t *testing.T) {
	t.Parallel()

	opts := gfm()
	opts.DetectLanguage = true
	tree := parse(t, opts, "```\n#!/usr/bin/env python3\nprint('hi')\n```\n")

	block, ok := tree.Payload(only(t, tree, mdast.KindBlockCode)).(mdast.BlockCode)
	require.True(t, ok)
	assert.Equal(t, "python", string(block.Lang))
}

func TestParser_Table(t *testing.T) {
	t.Parallel()

	tree := parse(t, gfm(), "| a | b |\n|:--|--:|\n| 1 | 2 |\n| 3 | 4 |\n")

	table, ok := tree.Payload(only(t, tree, mdast.KindTableBlock)).(mdast.TableBlock)
	require.True(t, ok)
	assert.Equal(t, 2, table.Columns)

	header, ok := tree.Payload(only(t, tree, mdast.KindTableHeader)).(mdast.TableHeader)
	require.True(t, ok)
	assert.Equal(t, []mdast.Align{mdast.AlignLeft, mdast.AlignRight}, header.Align)

	body := only(t, tree, mdast.KindTableBody)
	assert.Len(t, tree.Children(body), 2)

	cells := mdast.FindByKind(tree, tree.Root(), mdast.KindTableCell)
	require.Len(t, cells, 6)
	first, _ := tree.Payload(cells[0]).(mdast.TableCell)
	assert.True(t, first.Header)
	last, _ := tree.Payload(cells[5]).(mdast.TableCell)
	assert.Equal(t, mdast.TableCell{Align: mdast.AlignRight, Col: 1, Columns: 2}, last)
}

func TestParser_Footnotes(t *testing.T) {
	t.Parallel()

	tree := parse(t, gfm(), "text[^n]\n\n[^n]: note\n")

	ref, ok := tree.Payload(only(t, tree, mdast.KindFootnoteRef)).(mdast.FootnoteRef)
	require.True(t, ok)
	assert.Equal(t, 1, ref.Num)

	def := only(t, tree, mdast.KindFootnoteDef)
	payload, ok := tree.Payload(def).(mdast.FootnoteDef)
	require.True(t, ok)
	assert.Equal(t, 1, payload.Num)
	assert.Equal(t, "note", text(tree, def))

	kind, _ := tree.ParentKind(def)
	assert.Equal(t, mdast.KindFootnotesBlock, kind)
}

func TestParser_DefinitionList(t *testing.T) {
	t.Parallel()

	tree := parse(t, gfm(), "Term\n: Meaning\n")

	def, ok := tree.Payload(only(t, tree, mdast.KindDefinition)).(mdast.Definition)
	require.True(t, ok)
	assert.True(t, def.Flags.Has(mdast.ListDef))
	assert.Equal(t, "Term", text(tree, only(t, tree, mdast.KindDefinitionTitle)))
	assert.Equal(t, "Meaning", text(tree, only(t, tree, mdast.KindDefinitionData)))
}

func TestParser_CommonMarkMasksExtensions(t *testing.T) {
	t.Parallel()

	opts := goldmark.Options{Flavor: goldmark.FlavorCommonMark, Features: render.FeatureDefault}
	tree := parse(t, opts, "~~a~~\n\n| a |\n|---|\n| 1 |\n")

	assert.Empty(t, mdast.FindByKind(tree, tree.Root(), mdast.KindStrikethrough))
	assert.Empty(t, mdast.FindByKind(tree, tree.Root(), mdast.KindTableBlock))
}

func TestParser_FrontMatter(t *testing.T) {
	t.Parallel()

	opts := gfm()
	opts.Features |= render.FeatureMetadata
	opts.Meta = []meta.Entry{{Key: "title", Value: "Default"}, {Key: "lang", Value: "en"}}
	opts.MetaOverride = []meta.Entry{{Key: "date", Value: "today"}}

	tree := parse(t, opts, "---\nTitle: Doc\nDate: never\nAuthor: [Ann, Bob]\n---\n# Body\n")

	header := tree.Children(tree.Root())[0]
	got := map[string]string{}
	var keys []string
	for _, id := range tree.Children(header) {
		node, ok := tree.Payload(id).(mdast.Meta)
		require.True(t, ok)
		keys = append(keys, string(node.Key))
		got[string(node.Key)] = text(tree, id)
	}

	assert.Equal(t, []string{"lang", "title", "author", "date"}, keys)
	assert.Equal(t, map[string]string{
		"lang":   "en",
		"title":  "Doc",
		"author": "Ann  Bob",
		"date":   "today",
	}, got)

	assert.Len(t, mdast.FindByKind(tree, tree.Root(), mdast.KindHeader), 1)
}

func TestParser_FrontMatterDisabled(t *testing.T) {
	t.Parallel()

	opts := gfm()
	opts.Features &^= render.FeatureMetadata
	tree := parse(t, opts, "---\ntitle: x\n---\n")

	assert.Empty(t, mdast.FindByKind(tree, tree.Root(), mdast.KindMeta))
	assert.NotEmpty(t, mdast.FindByKind(tree, tree.Root(), mdast.KindHRule))
}

func TestParser_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tree, err := goldmark.New(gfm()).Parse(ctx, []byte("# x\n"))
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, tree)
}

func TestSplitFrontMatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		wantOK   bool
		wantBody string
		wantKeys []string
	}{
		{"dashes", "---\ntitle: A\n---\nbody\n", true, "body\n", []string{"title"}},
		{"dots close", "---\ntitle: A\nAuthor: B\n...\nbody\n", true, "body\n", []string{"title", "author"}},
		{"no front matter", "# body\n", false, "# body\n", nil},
		{"unterminated", "---\ntitle: A\n", false, "---\ntitle: A\n", nil},
		{"malformed yaml", "---\n: : [\n---\nbody\n", false, "---\n: : [\n---\nbody\n", nil},
		{"not a mapping", "---\n- a\n---\nbody\n", false, "---\n- a\n---\nbody\n", nil},
		{"empty", "", false, "", nil},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			entries, body, ok := goldmark.SplitFrontMatter([]byte(testCase.src))
			assert.Equal(t, testCase.wantOK, ok)
			assert.Equal(t, testCase.wantBody, string(body))

			var keys []string
			for _, entry := range entries {
				keys = append(keys, entry.Key)
			}
			assert.Equal(t, testCase.wantKeys, keys)
		})
	}
}

func TestParseFrontMatter_Values(t *testing.T) {
	t.Parallel()

	entries, err := goldmark.ParseFrontMatter([]byte("Base Header Level: 2\nnested:\n  a: 1\nnum: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, []meta.Entry{
		{Key: "baseheaderlevel", Value: "2"},
		{Key: "nested", Value: "a: 1"},
		{Key: "num", Value: "3"},
	}, entries)

	_, err = goldmark.ParseFrontMatter([]byte("- a\n"))
	require.ErrorIs(t, err, goldmark.ErrFrontMatter)
}
