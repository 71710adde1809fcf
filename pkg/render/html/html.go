// Package html renders document trees as HTML5.
package html

import (
	"github.com/yaklabco/gomdrender/pkg/hbuf"
	"github.com/yaklabco/gomdrender/pkg/mdast"
	"github.com/yaklabco/gomdrender/pkg/meta"
	"github.com/yaklabco/gomdrender/pkg/render"
)

// defaultTitle is used in standalone mode when no title is given.
const defaultTitle = "Untitled article"

// Compile-time interface checks.
var (
	_ render.Renderer = (*Renderer)(nil)
	_ render.Handler  = (*Renderer)(nil)
)

// headerID is one entry of the heading identifier registry.
type headerID struct {
	text  string
	count int
}

// Renderer is the HTML backend. It is both the render.Renderer and the
// render.Handler of its walk, and holds the state of one render.
type Renderer struct {
	flags   render.Flag
	escaper Escaper

	// headerOffset is added to every heading level.
	headerOffset int
	headerIDs    []headerID

	// noEscape is set while the children of a Meta node are rendered.
	noEscape bool

	mq *meta.Queue
}

// New creates an HTML renderer.
func New(opts render.Options) *Renderer {
	return &Renderer{
		flags: opts.Flags,
		escaper: Escaper{
			OWASP:   opts.Flags.Has(render.FlagHTMLOWASP),
			Numeric: opts.Flags.Has(render.FlagHTMLNumEnt),
		},
		headerOffset: 1,
	}
}

// Factory is the render.Factory of the HTML backend.
func Factory(opts render.Options) (render.Renderer, error) {
	return New(opts), nil
}

// Render implements render.Renderer.
func (r *Renderer) Render(ob *hbuf.Buffer, tree *mdast.Tree, mq *meta.Queue) error {
	r.headerOffset = 1
	r.headerIDs = r.headerIDs[:0]
	r.noEscape = false
	r.mq = mq
	if r.mq == nil {
		r.mq = meta.NewQueue()
	}
	return render.Walk(ob, tree, tree.Root(), r)
}

// Enter implements render.Handler.
func (r *Renderer) Enter(tree *mdast.Tree, id mdast.NodeID) {
	if tree.Kind(id) == mdast.KindMeta {
		r.noEscape = true
	}
}

// Markers implements render.Handler.
func (r *Renderer) Markers() render.Markers {
	return render.Markers{
		InsertOpen:  "<ins>",
		InsertClose: "</ins>",
		DeleteOpen:  "<del>",
		DeleteClose: "</del>",
	}
}

// Node implements render.Handler.
//
//nolint:gocyclo,cyclop,funlen // One case per node kind.
func (r *Renderer) Node(ob, content *hbuf.Buffer, tree *mdast.Tree, id mdast.NodeID) error {
	node := tree.Node(id)

	switch p := node.Payload.(type) {
	case mdast.Root:
		return r.root(ob, content)
	case mdast.BlockCode:
		return r.blockCode(ob, p)
	case mdast.BlockQuote:
		return wrapBlock(ob, content, "<blockquote>\n", "</blockquote>\n")
	case mdast.Definition:
		return wrapBlock(ob, content, "<dl>\n", "</dl>\n")
	case mdast.DefinitionTitle:
		return wrap(ob, trimNewlines(content), "<dt>", "</dt>\n")
	case mdast.DefinitionData:
		return wrap(ob, content.Bytes(), "<dd>\n", "\n</dd>\n")
	case mdast.Header:
		return r.header(ob, content, p)
	case mdast.HRule:
		return putBlock(ob, "<hr/>\n")
	case mdast.List:
		return list(ob, content, p)
	case mdast.ListItem:
		return listItem(ob, content, tree, id, p)
	case mdast.Paragraph:
		return r.paragraph(ob, content)
	case mdast.TableBlock:
		return wrapBlock(ob, content, "<table>\n", "</table>\n")
	case mdast.TableHeader:
		return wrapBlock(ob, content, "<thead>\n", "</thead>\n")
	case mdast.TableBody:
		return wrapBlock(ob, content, "<tbody>\n", "</tbody>\n")
	case mdast.TableRow:
		return wrap(ob, content.Bytes(), "<tr>\n", "</tr>\n")
	case mdast.TableCell:
		return tableCell(ob, content, p)
	case mdast.FootnotesBlock:
		return wrapBlock(ob, content, "<div class=\"footnotes\">\n<hr/>\n<ol>\n", "\n</ol>\n</div>\n")
	case mdast.FootnoteDef:
		return r.footnoteDef(ob, content, node.Change, p)
	case mdast.BlockHTML:
		return r.rawBlock(ob, p)
	case mdast.LinkAuto:
		return r.autolink(ob, p)
	case mdast.CodeSpan:
		return r.wrapText(ob, p.Text, "<code>", "</code>")
	case mdast.DoubleEmphasis:
		return wrap(ob, content.Bytes(), "<strong>", "</strong>")
	case mdast.Emphasis:
		return wrap(ob, content.Bytes(), "<em>", "</em>")
	case mdast.Highlight:
		return wrap(ob, content.Bytes(), "<mark>", "</mark>")
	case mdast.Image:
		return r.image(ob, p)
	case mdast.Linebreak:
		return ob.PutString("<br/>\n")
	case mdast.Link:
		return link(ob, content, p)
	case mdast.TripleEmphasis:
		return wrap(ob, content.Bytes(), "<strong><em>", "</em></strong>")
	case mdast.Strikethrough:
		return wrap(ob, content.Bytes(), "<del>", "</del>")
	case mdast.Superscript:
		return wrap(ob, content.Bytes(), "<sup>", "</sup>")
	case mdast.FootnoteRef:
		return ob.Printf("<sup id=\"fnref%d\"><a href=\"#fn%d\" rel=\"footnote\">%d</a></sup>", p.Num, p.Num, p.Num)
	case mdast.Math:
		if p.Block {
			return r.wrapText(ob, p.Text, `\[`, `\]`)
		}
		return r.wrapText(ob, p.Text, `\(`, `\)`)
	case mdast.RawHTML:
		return r.rawHTML(ob, p)
	case mdast.Entity:
		return r.entity(ob, p)
	case mdast.NormalText:
		return r.text(ob, p.Text)
	case mdast.DocHeader:
		return r.docHeader(ob, content)
	case mdast.Meta:
		return r.meta(content, node.Change, p)
	case mdast.DocFooter:
		if r.flags.Has(render.FlagStandalone) {
			return ob.PutString("</body>\n")
		}
		return nil
	default:
		return ob.PutBuffer(content)
	}
}

// text escapes body text unless metadata is being collected.
func (r *Renderer) text(ob *hbuf.Buffer, src []byte) error {
	if r.noEscape {
		return ob.Put(src)
	}
	return r.escaper.Text(ob, src)
}

func (r *Renderer) wrapText(ob *hbuf.Buffer, src []byte, open, closing string) error {
	if err := ob.PutString(open); err != nil {
		return err
	}
	if err := r.text(ob, src); err != nil {
		return err
	}
	return ob.PutString(closing)
}

// blockBreak separates a block element from preceding output.
func blockBreak(ob *hbuf.Buffer) error {
	if ob.Len() > 0 {
		return ob.PutByte('\n')
	}
	return nil
}

func putBlock(ob *hbuf.Buffer, s string) error {
	if err := blockBreak(ob); err != nil {
		return err
	}
	return ob.PutString(s)
}

func wrap(ob *hbuf.Buffer, body []byte, open, closing string) error {
	if err := ob.PutString(open); err != nil {
		return err
	}
	if err := ob.Put(body); err != nil {
		return err
	}
	return ob.PutString(closing)
}

func wrapBlock(ob, content *hbuf.Buffer, open, closing string) error {
	if err := blockBreak(ob); err != nil {
		return err
	}
	return wrap(ob, content.Bytes(), open, closing)
}

func trimNewlines(content *hbuf.Buffer) []byte {
	body := content.Bytes()
	for len(body) > 0 && body[len(body)-1] == '\n' {
		body = body[:len(body)-1]
	}
	return body
}
