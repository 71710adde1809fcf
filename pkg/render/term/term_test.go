package term_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdrender/pkg/hbuf"
	"github.com/yaklabco/gomdrender/pkg/mdast"
	"github.com/yaklabco/gomdrender/pkg/meta"
	"github.com/yaklabco/gomdrender/pkg/render"
	"github.com/yaklabco/gomdrender/pkg/render/term"
)

func renderOpts(t *testing.T, opts render.Options, tree *mdast.Tree) (string, *meta.Queue) {
	t.Helper()

	queue := meta.NewQueue()
	ob := hbuf.New(0)
	require.NoError(t, term.New(opts).Render(ob, tree, queue))
	return ob.String(), queue
}

func renderPlain(t *testing.T, flags render.Flag, tree *mdast.Tree) string {
	t.Helper()

	out, _ := renderOpts(t, render.Options{Type: render.TypeTerm, Flags: flags | render.FlagTermNoColour}, tree)
	return out
}

func addParagraph(tree *mdast.Tree, parent mdast.NodeID, text string) mdast.NodeID {
	para := tree.Append(parent, mdast.Paragraph{Lines: 1})
	tree.AppendText(para, text)
	return para
}

func TestRender_Document(t *testing.T) {
	t.Parallel()

	tree := mdast.NewTree()
	heading := tree.Append(tree.Root(), mdast.Header{Level: 0})
	tree.AppendText(heading, "Title")
	addParagraph(tree, tree.Root(), "A & B")
	tree.Append(tree.Root(), mdast.HRule{})

	out, _ := renderOpts(t, render.Options{Flags: render.FlagTermNoColour, Columns: 20}, tree)
	expected := "# Title\n" +
		"\n" +
		"A & B\n" +
		"\n" +
		strings.Repeat("─", 20) + "\n"
	assert.Equal(t, expected, out)
}

func TestRender_ParagraphWrap(t *testing.T) {
	t.Parallel()

	tree := mdast.NewTree()
	para := tree.Append(tree.Root(), mdast.Paragraph{Lines: 2})
	tree.AppendText(para, "the quick brown fox jumps\nover the lazy dog")
	tree.Append(para, mdast.Linebreak{})
	tree.AppendText(para, "end")

	out, _ := renderOpts(t, render.Options{Flags: render.FlagTermNoColour, Columns: 20}, tree)
	expected := "the quick brown fox\n" +
		"jumps over the lazy\n" +
		"dog\n" +
		"end\n"
	assert.Equal(t, expected, out)

	for line := range strings.SplitSeq(strings.TrimSuffix(out, "\n"), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 20)
	}
}

func TestRender_Lists(t *testing.T) {
	t.Parallel()

	tree := mdast.NewTree()
	bullets := tree.Append(tree.Root(), mdast.List{Flags: mdast.ListUnordered})
	tree.AppendText(tree.Append(bullets, mdast.ListItem{Num: 1}), "one")
	tree.AppendText(tree.Append(bullets, mdast.ListItem{Flags: mdast.ListChecked, Num: 2}), "done")
	tree.AppendText(tree.Append(bullets, mdast.ListItem{Flags: mdast.ListUnchecked, Num: 3}), "todo")

	ordered := tree.Append(tree.Root(), mdast.List{Flags: mdast.ListOrdered | mdast.ListBlock, Start: 1})
	item := tree.Append(ordered, mdast.ListItem{Flags: mdast.ListBlock, Num: 1})
	addParagraph(tree, item, "first")
	addParagraph(tree, item, "second")

	expected := "• one\n" +
		"• [x] done\n" +
		"• [ ] todo\n" +
		"\n" +
		"1. first\n" +
		"\n" +
		"   second\n"
	assert.Equal(t, expected, renderPlain(t, 0, tree))
}

func TestRender_Links(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		flags    render.Flag
		expected string
	}{
		{"full", 0, "see docs <https://example.com/a/b/page.html>\n"},
		{"short", render.FlagTermShortLink, "see docs <example.com/.../page.html>\n"},
		{"none", render.FlagTermNoLink, "see docs\n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tree := mdast.NewTree()
			para := tree.Append(tree.Root(), mdast.Paragraph{Lines: 1})
			tree.AppendText(para, "see ")
			link := tree.Append(para, mdast.Link{Link: []byte("https://example.com/a/b/page.html")})
			tree.AppendText(link, "docs")

			assert.Equal(t, testCase.expected, renderPlain(t, testCase.flags, tree))
		})
	}
}

func TestRender_Inline(t *testing.T) {
	t.Parallel()

	tree := mdast.NewTree()
	para := tree.Append(tree.Root(), mdast.Paragraph{Lines: 1})
	tree.Append(para, mdast.Image{Link: []byte("a.png"), Alt: []byte("chart")})
	tree.AppendText(para, " ")
	tree.Append(para, mdast.CodeSpan{Text: []byte("x := 1")})
	tree.AppendText(para, " ")
	tree.Append(para, mdast.Entity{Text: []byte("&copy;")})
	tree.Append(para, mdast.FootnoteRef{Num: 1})

	assert.Equal(t, "[image: chart] x := 1 ©[^1]\n", renderPlain(t, render.FlagTermNoLink, tree))
}

func TestRender_Table(t *testing.T) {
	t.Parallel()

	tree := mdast.NewTree()
	table := tree.Append(tree.Root(), mdast.TableBlock{Columns: 2})
	head := tree.Append(table, mdast.TableHeader{Columns: 2})
	headRow := tree.Append(head, mdast.TableRow{})
	for col, text := range []string{"A", "B"} {
		tree.AppendText(tree.Append(headRow, mdast.TableCell{Header: true, Col: col, Columns: 2}), text)
	}
	body := tree.Append(table, mdast.TableBody{})
	row := tree.Append(body, mdast.TableRow{})
	for col, text := range []string{"1", "2"} {
		tree.AppendText(tree.Append(row, mdast.TableCell{Col: col, Columns: 2}), text)
	}

	assert.Equal(t, "| A | B |\n|---|---|\n| 1 | 2 |\n", renderPlain(t, 0, tree))
}

func TestRender_QuoteAndCode(t *testing.T) {
	t.Parallel()

	tree := mdast.NewTree()
	quote := tree.Append(tree.Root(), mdast.BlockQuote{})
	addParagraph(tree, quote, "quoted")
	tree.Append(tree.Root(), mdast.BlockCode{Text: []byte("a\nb\n")})

	assert.Equal(t, "│ quoted\n\n    a\n    b\n", renderPlain(t, 0, tree))
}

func TestRender_PlainChangeMarkers(t *testing.T) {
	t.Parallel()

	tree := mdast.NewTree()
	para := tree.Append(tree.Root(), mdast.Paragraph{Lines: 1})
	tree.SetChange(tree.AppendText(para, "new"), mdast.ChangeInsert)
	tree.AppendText(para, " ")
	tree.SetChange(tree.AppendText(para, "old"), mdast.ChangeDelete)

	block := tree.Append(tree.Root(), mdast.FootnotesBlock{})
	def := tree.Append(block, mdast.FootnoteDef{Num: 1})
	tree.SetChange(def, mdast.ChangeInsert)
	addParagraph(tree, def, "note")

	expected := "{+new+} [-old-]\n" +
		"\n" +
		"---\n" +
		"[^1] {+note+}\n"
	assert.Equal(t, expected, renderPlain(t, 0, tree))
}

func TestRender_ColourChangeStyles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		changes  []mdast.Change
		expected string
	}{
		{"inserted", []mdast.Change{mdast.ChangeInsert}, "new\n"},
		{"deleted", []mdast.Change{mdast.ChangeDelete}, "new\n"},
		{"both", []mdast.Change{mdast.ChangeInsert, mdast.ChangeDelete}, "new new\n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tree := mdast.NewTree()
			para := tree.Append(tree.Root(), mdast.Paragraph{Lines: 1})
			for i, change := range testCase.changes {
				if i > 0 {
					tree.AppendText(para, " ")
				}
				tree.SetChange(tree.AppendText(para, "new"), change)
			}

			out, _ := renderOpts(t, render.Options{}, tree)
			assert.Contains(t, out, "\x1b[")
			assert.NotContains(t, out, "{+")
			assert.NotContains(t, out, "[-")
			assert.Equal(t, testCase.expected, ansi.Strip(out))
		})
	}
}

func TestRender_ColourDistinguishesChanges(t *testing.T) {
	t.Parallel()

	renderChange := func(change mdast.Change) string {
		tree := mdast.NewTree()
		para := tree.Append(tree.Root(), mdast.Paragraph{Lines: 1})
		tree.SetChange(tree.AppendText(para, "x"), change)
		out, _ := renderOpts(t, render.Options{}, tree)
		return out
	}

	inserted, deleted := renderChange(mdast.ChangeInsert), renderChange(mdast.ChangeDelete)
	assert.NotEqual(t, inserted, deleted)
	assert.Equal(t, ansi.Strip(inserted), ansi.Strip(deleted))
}

func TestRender_StandaloneAndMeta(t *testing.T) {
	t.Parallel()

	tree := mdast.NewTree()
	header := tree.Append(tree.Root(), mdast.DocHeader{})
	title := tree.Append(header, mdast.Meta{Key: []byte("title")})
	tree.AppendText(title, "Report")
	shift := tree.Append(header, mdast.Meta{Key: []byte(meta.KeyShiftHeading)})
	tree.AppendText(shift, "1")
	heading := tree.Append(tree.Root(), mdast.Header{Level: 0})
	tree.AppendText(heading, "Part")

	out, queue := renderOpts(t, render.Options{Flags: render.FlagTermNoColour | render.FlagStandalone}, tree)
	assert.Equal(t, "Report\n\n## Part\n", out)
	assert.Equal(t, 2, queue.Len())
}

func TestRender_DefinitionList(t *testing.T) {
	t.Parallel()

	tree := mdast.NewTree()
	def := tree.Append(tree.Root(), mdast.Definition{})
	tree.AppendText(tree.Append(def, mdast.DefinitionTitle{}), "Term")
	tree.AppendText(tree.Append(def, mdast.DefinitionData{}), "Meaning")

	assert.Equal(t, "Term\n    Meaning\n", renderPlain(t, 0, tree))
}

func TestRender_Idempotent(t *testing.T) {
	t.Parallel()

	tree := mdast.NewTree()
	addParagraph(tree, tree.Root(), "same")

	renderer := term.New(render.Options{Flags: render.FlagTermNoColour})
	first, second := hbuf.New(0), hbuf.New(0)
	require.NoError(t, renderer.Render(first, tree, nil))
	require.NoError(t, renderer.Render(second, tree, nil))
	assert.Equal(t, first.String(), second.String())
}
