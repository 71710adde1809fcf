// Package tree renders a document tree as an indented debugging dump.
package tree

import (
	"strconv"

	"github.com/yaklabco/gomdrender/pkg/hbuf"
	"github.com/yaklabco/gomdrender/pkg/mdast"
	"github.com/yaklabco/gomdrender/pkg/meta"
	"github.com/yaklabco/gomdrender/pkg/render"
)

// previewLen is the number of bytes shown of a payload's text.
const previewLen = 20

var _ render.Renderer = (*Renderer)(nil)

// Renderer dumps one line per node followed by its payload summary.
// It is stateless.
type Renderer struct{}

// New creates a tree renderer.
func New(render.Options) *Renderer {
	return &Renderer{}
}

// Factory is the render.Factory of the tree backend.
func Factory(opts render.Options) (render.Renderer, error) {
	return New(opts), nil
}

// Render implements render.Renderer. Metadata is not collected.
func (r *Renderer) Render(ob *hbuf.Buffer, tree *mdast.Tree, _ *meta.Queue) error {
	return dump(ob, tree, tree.Root(), 0)
}

func dump(ob *hbuf.Buffer, tree *mdast.Tree, id mdast.NodeID, depth int) error {
	node := tree.Node(id)
	if node == nil {
		return nil
	}

	d := dumper{ob: ob, depth: depth + 1}
	d.indent(depth)
	switch node.Change {
	case mdast.ChangeInsert:
		d.put("INSERT: ")
	case mdast.ChangeDelete:
		d.put("DELETE: ")
	case mdast.ChangeNone:
	}
	d.put(node.Kind().String() + "\n")
	d.payload(node.Payload)
	if d.err != nil {
		return d.err
	}

	for _, child := range node.Children() {
		if err := dump(ob, tree, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// dumper writes summary lines and keeps the first error.
type dumper struct {
	ob    *hbuf.Buffer
	depth int
	err   error
}

func (d *dumper) put(s string) {
	if d.err == nil {
		d.err = d.ob.PutString(s)
	}
}

func (d *dumper) indent(depth int) {
	for range depth {
		d.put("  ")
	}
}

// line writes one indented "label: value" line.
func (d *dumper) line(label, value string) {
	d.indent(d.depth)
	d.put(label + ": " + value + "\n")
}

// data writes a byte count and preview.
func (d *dumper) data(text []byte) {
	d.line("data", strconv.Itoa(len(text))+" Bytes: "+Preview(text))
}

func scope(flags mdast.ListFlags) string {
	if flags.Has(mdast.ListBlock) {
		return "block"
	}
	return "span"
}

//nolint:gocyclo,cyclop,funlen // One case per payload with a summary.
func (d *dumper) payload(p mdast.Payload) {
	switch p := p.(type) {
	case mdast.Paragraph:
		blank := "0"
		if p.BlankAfter {
			blank = "1"
		}
		d.line("lines", strconv.Itoa(p.Lines)+", blank-after: "+blank)
	case mdast.Image:
		source := Preview(p.Link)
		if len(p.Dims) > 0 {
			source += "(" + Preview(p.Dims) + ")"
		}
		d.line("source", source)
		if len(p.Title) > 0 {
			d.line("title", Preview(p.Title))
		}
		if len(p.Alt) > 0 {
			d.line("alt", Preview(p.Alt))
		}
		if len(p.Dims) > 0 {
			d.line("dims", Preview(p.Dims))
		}
		if len(p.AttrWidth) > 0 {
			d.line("width (extended)", Preview(p.AttrWidth))
		}
		if len(p.AttrHeight) > 0 {
			d.line("height (extended)", Preview(p.AttrHeight))
		}
	case mdast.Header:
		d.line("level", strconv.Itoa(p.Level))
	case mdast.FootnoteRef:
		d.line("number", strconv.Itoa(p.Num))
		d.line("name", Preview(p.Key))
	case mdast.FootnoteDef:
		d.line("number", strconv.Itoa(p.Num))
		d.line("name", Preview(p.Key))
	case mdast.RawHTML:
		d.data(p.Text)
	case mdast.BlockHTML:
		d.data(p.Text)
	case mdast.BlockCode:
		d.data(p.Text)
	case mdast.Definition:
		d.line("scope", scope(p.Flags))
	case mdast.TableBlock:
		d.line("columns", strconv.Itoa(p.Columns))
	case mdast.TableCell:
		d.line("current", strconv.Itoa(p.Col))
	case mdast.ListItem:
		d.line("scope", scope(p.Flags))
		switch {
		case p.Flags.Has(mdast.ListChecked):
			d.line("check status", "checked")
		case p.Flags.Has(mdast.ListUnchecked):
			d.line("check status", "unchecked")
		}
	case mdast.List:
		listType := "unordered"
		if p.Flags.Has(mdast.ListOrdered) {
			listType = "ordered"
		}
		d.line("list type", listType)
	case mdast.Meta:
		d.line("key", Preview(p.Key))
	case mdast.Math:
		mode := "inline"
		if p.Block {
			mode = "block"
		}
		d.line("blockmode", mode)
		d.data(p.Text)
	case mdast.Entity:
		d.line("value", Preview(p.Text))
	case mdast.LinkAuto:
		if len(p.Link) > 0 {
			d.line("link", Preview(p.Link))
		}
	case mdast.Link:
		if len(p.Title) > 0 {
			d.line("title", Preview(p.Title))
		}
		if len(p.Link) > 0 {
			d.line("link", Preview(p.Link))
		}
	case mdast.NormalText:
		d.data(p.Text)
	}
}

// Preview returns at most the first 20 bytes of text with newlines and
// tabs spelled out and other control bytes replaced by '?'. Truncated
// text ends in "...".
func Preview(text []byte) string {
	shown := text[:min(len(text), previewLen)]
	out := make([]byte, 0, len(shown)+3)
	for _, c := range shown {
		switch {
		case c == '\n':
			out = append(out, '\\', 'n')
		case c == '\t':
			out = append(out, '\\', 't')
		case c < 0x20 || c == 0x7f:
			out = append(out, '?')
		default:
			out = append(out, c)
		}
	}
	if len(shown) < len(text) {
		out = append(out, "..."...)
	}
	return string(out)
}
