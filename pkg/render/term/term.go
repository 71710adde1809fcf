// Package term renders document trees as styled text for a terminal.
package term

import (
	stdhtml "html"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gomdrender/pkg/hbuf"
	"github.com/yaklabco/gomdrender/pkg/mdast"
	"github.com/yaklabco/gomdrender/pkg/meta"
	"github.com/yaklabco/gomdrender/pkg/render"
)

const (
	// indentStep is the width taken by each enclosing list item, quote
	// or definition.
	indentStep = 4

	// lineBreak stands in for a hard break until its paragraph is
	// wrapped. It is not whitespace, so wrapping keeps it.
	lineBreak = "\x1e"
)

// Compile-time interface checks.
var (
	_ render.Renderer = (*Renderer)(nil)
	_ render.Handler  = (*Renderer)(nil)
)

// Renderer is the terminal backend and holds the state of one render.
type Renderer struct {
	flags   render.Flag
	columns int
	colour  bool
	styles  *styles

	headerOffset int

	mq *meta.Queue
}

// New creates a terminal renderer. A zero column count selects
// render.DefaultColumns.
func New(opts render.Options) *Renderer {
	columns := opts.Columns
	if columns <= 0 {
		columns = render.DefaultColumns
	}
	colour := !opts.Flags.Has(render.FlagTermNoColour)

	return &Renderer{
		flags:        opts.Flags,
		columns:      columns,
		colour:       colour,
		styles:       newStyles(colour),
		headerOffset: 1,
	}
}

// Factory is the render.Factory of the terminal backend.
func Factory(opts render.Options) (render.Renderer, error) {
	return New(opts), nil
}

// Render implements render.Renderer.
func (r *Renderer) Render(ob *hbuf.Buffer, tree *mdast.Tree, mq *meta.Queue) error {
	r.headerOffset = 1
	r.mq = mq
	if r.mq == nil {
		r.mq = meta.NewQueue()
	}
	return render.Walk(ob, tree, tree.Root(), r)
}

// Enter implements render.Handler.
func (r *Renderer) Enter(*mdast.Tree, mdast.NodeID) {}

// Markers implements render.Handler. With colour, changes are styled by
// Node instead.
func (r *Renderer) Markers() render.Markers {
	if r.colour {
		return render.Markers{}
	}
	return plainMarkers
}

//nolint:gochecknoglobals // Read-only.
var plainMarkers = render.Markers{
	InsertOpen:  "{+",
	InsertClose: "+}",
	DeleteOpen:  "[-",
	DeleteClose: "-]",
}

// Node implements render.Handler.
func (r *Renderer) Node(ob, content *hbuf.Buffer, tree *mdast.Tree, id mdast.NodeID) error {
	node := tree.Node(id)

	out := r.format(ob.Len() > 0, content.String(), tree, id)
	if r.colour && !render.SelfWrapped(node.Kind()) {
		out = r.styleChange(node.Change, out)
	}
	return ob.PutString(out)
}

// styleChange applies the change style line by line, so that padding
// and newlines stay unstyled.
func (r *Renderer) styleChange(change mdast.Change, out string) string {
	var style lipgloss.Style
	switch change {
	case mdast.ChangeInsert:
		style = r.styles.Inserted
	case mdast.ChangeDelete:
		style = r.styles.Deleted
	case mdast.ChangeNone:
		return out
	}

	lines := strings.Split(out, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

//nolint:gocyclo,cyclop,funlen // One case per node kind.
func (r *Renderer) format(prev bool, content string, tree *mdast.Tree, id mdast.NodeID) string {
	node := tree.Node(id)
	st := r.styles

	switch p := node.Payload.(type) {
	case mdast.BlockCode:
		return block(prev, codeLines(st.Code, string(p.Text)))
	case mdast.BlockQuote:
		return block(prev, prefixLines(content, st.Dim.Render("│")+" "))
	case mdast.Definition:
		return block(prev, content)
	case mdast.DefinitionTitle:
		return st.Strong.Render(flatten(content)) + "\n"
	case mdast.DefinitionData:
		pad := strings.Repeat(" ", indentStep)
		return indentLines(content, pad, pad)
	case mdast.Header:
		level := max(p.Level+r.headerOffset, 1)
		return block(prev, st.Heading.Render(strings.Repeat("#", level)+" "+flatten(content))+"\n")
	case mdast.HRule:
		return block(prev, st.Dim.Render(strings.Repeat("─", r.columns))+"\n")
	case mdast.List:
		return block(prev, content)
	case mdast.ListItem:
		return listItem(content, tree, id, p)
	case mdast.Paragraph:
		return r.paragraph(prev, content, tree, id)
	case mdast.TableBlock:
		return block(prev, content)
	case mdast.TableHeader:
		return content + "|" + strings.Repeat("---|", max(p.Columns, 1)) + "\n"
	case mdast.TableRow:
		return "|" + content + "\n"
	case mdast.TableCell:
		cell := flatten(content)
		if p.Header {
			cell = st.Strong.Render(cell)
		}
		return " " + cell + " |"
	case mdast.FootnotesBlock:
		return block(prev, st.Dim.Render("---")+"\n"+content)
	case mdast.FootnoteDef:
		return r.footnoteDef(content, node.Change, p)
	case mdast.BlockHTML:
		text := strings.Trim(string(p.Text), "\n")
		if text == "" {
			return ""
		}
		return block(prev, prefixLines(text, ""))
	case mdast.LinkAuto:
		return st.Link.Render(string(p.Link))
	case mdast.CodeSpan:
		return st.Code.Render(string(p.Text))
	case mdast.DoubleEmphasis:
		return st.Strong.Render(content)
	case mdast.Emphasis:
		return st.Emphasis.Render(content)
	case mdast.Highlight:
		return st.Highlight.Render(content)
	case mdast.TripleEmphasis:
		return st.Strong.Inherit(st.Emphasis).Render(content)
	case mdast.Strikethrough:
		return st.Strike.Render(content)
	case mdast.Superscript:
		return "^" + content
	case mdast.Image:
		return "[image: " + string(p.Alt) + "]" + r.target(p.Link)
	case mdast.Linebreak:
		return lineBreak
	case mdast.Link:
		if content == "" {
			return st.Link.Render(string(p.Link))
		}
		return content + r.target(p.Link)
	case mdast.FootnoteRef:
		return "[^" + strconv.Itoa(p.Num) + "]"
	case mdast.Math:
		return string(p.Text)
	case mdast.RawHTML:
		return st.Dim.Render(string(p.Text))
	case mdast.Entity:
		return stdhtml.UnescapeString(string(p.Text))
	case mdast.NormalText:
		return string(p.Text)
	case mdast.DocHeader:
		return r.docHeader()
	case mdast.Meta:
		r.meta(content, node.Change, p)
		return ""
	case mdast.DocFooter:
		return ""
	default:
		return content
	}
}

// block separates a block from preceding output with a blank line.
func block(prev bool, s string) string {
	if prev {
		return "\n" + s
	}
	return s
}

// flatten joins text that must stay on one line.
func flatten(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, lineBreak, " ")), " ")
}

// prefixLines prefixes every line of text, blank ones included.
func prefixLines(text, prefix string) string {
	var out strings.Builder
	for line := range strings.SplitSeq(strings.TrimRight(text, "\n"), "\n") {
		out.WriteString(prefix)
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return out.String()
}

func codeLines(style lipgloss.Style, text string) string {
	var out strings.Builder
	for line := range strings.SplitSeq(strings.TrimRight(text, "\n"), "\n") {
		out.WriteString(strings.Repeat(" ", indentStep))
		out.WriteString(style.Render(line))
		out.WriteByte('\n')
	}
	return out.String()
}

// width is the column budget of a paragraph after the indentation of
// its enclosing containers.
func (r *Renderer) width(tree *mdast.Tree, id mdast.NodeID) int {
	width := r.columns
	for p := tree.Parent(id); p != mdast.NoNode; p = tree.Parent(p) {
		switch tree.Kind(p) {
		case mdast.KindListItem, mdast.KindBlockQuote, mdast.KindDefinitionData:
			width -= indentStep
		default:
		}
	}
	return width
}

func (r *Renderer) paragraph(prev bool, content string, tree *mdast.Tree, id mdast.NodeID) string {
	width := r.width(tree, id)

	var lines []string
	for segment := range strings.SplitSeq(content, lineBreak) {
		lines = append(lines, wrapWords(segment, width)...)
	}
	if len(lines) == 0 {
		return ""
	}
	return block(prev, strings.Join(lines, "\n")+"\n")
}

func listItem(content string, tree *mdast.Tree, id mdast.NodeID, p mdast.ListItem) string {
	bullet := "• "
	if parent, ok := tree.Payload(tree.Parent(id)).(mdast.List); ok && parent.Flags.Has(mdast.ListOrdered) {
		bullet = strconv.Itoa(p.Num) + ". "
	}

	switch {
	case p.Flags.Has(mdast.ListChecked):
		bullet += "[x] "
	case p.Flags.Has(mdast.ListUnchecked):
		bullet += "[ ] "
	}

	body := strings.TrimLeft(content, "\n")
	return indentLines(body, bullet, strings.Repeat(" ", lipgloss.Width(bullet)))
}

// target formats a link destination according to the link flags.
func (r *Renderer) target(link []byte) string {
	if r.flags.Has(render.FlagTermNoLink) || len(link) == 0 {
		return ""
	}
	dest := string(link)
	if r.flags.Has(render.FlagTermShortLink) {
		dest = shortLink(dest)
	}
	return " " + r.styles.Dim.Render("<"+dest+">")
}

// footnoteDef styles its own body when it carries a change annotation.
func (r *Renderer) footnoteDef(content string, change mdast.Change, p mdast.FootnoteDef) string {
	label := "[^" + strconv.Itoa(p.Num) + "] "
	body := strings.TrimSpace(content)

	if r.colour {
		body = r.styleChange(change, body)
	} else {
		markers := plainMarkers
		switch change {
		case mdast.ChangeInsert:
			body = markers.InsertOpen + body + markers.InsertClose
		case mdast.ChangeDelete:
			body = markers.DeleteOpen + body + markers.DeleteClose
		case mdast.ChangeNone:
		}
	}
	return indentLines(body, label, strings.Repeat(" ", len(label)))
}

// meta records a metadata entry. Deleted entries are not recorded.
func (r *Renderer) meta(content string, change mdast.Change, p mdast.Meta) {
	if change == mdast.ChangeDelete {
		return
	}
	key := string(p.Key)
	r.mq.Push(key, content)
	if offset, ok := meta.HeaderOffset(key, content); ok {
		r.headerOffset = offset
	}
}

// docHeader writes a title block in standalone mode.
func (r *Renderer) docHeader() string {
	if !r.flags.Has(render.FlagStandalone) {
		return ""
	}

	hdr := r.mq.Header()
	var out strings.Builder
	if hdr.Title != "" {
		out.WriteString(r.styles.Heading.Render(hdr.Title) + "\n")
	}
	for _, line := range []string{hdr.Author, hdr.Affiliation, hdr.Date} {
		if line != "" {
			out.WriteString(r.styles.Dim.Render(line) + "\n")
		}
	}
	return out.String()
}
