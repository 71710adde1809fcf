// Package latex renders document trees as XeLaTeX source.
package latex

import (
	"bytes"
	stdhtml "html"

	"github.com/yaklabco/gomdrender/pkg/hbuf"
	"github.com/yaklabco/gomdrender/pkg/mdast"
	"github.com/yaklabco/gomdrender/pkg/meta"
	"github.com/yaklabco/gomdrender/pkg/render"
)

// Compile-time interface checks.
var (
	_ render.Renderer = (*Renderer)(nil)
	_ render.Handler  = (*Renderer)(nil)
)

// Renderer is the LaTeX backend and holds the state of one render.
type Renderer struct {
	flags  render.Flag
	locale localeInfo

	headerOffset int
	noEscape     bool

	mq *meta.Queue
}

// New creates a LaTeX renderer.
func New(opts render.Options) *Renderer {
	return &Renderer{
		flags:        opts.Flags,
		locale:       matchLocale(opts.Locale),
		headerOffset: 1,
	}
}

// Factory is the render.Factory of the LaTeX backend.
func Factory(opts render.Options) (render.Renderer, error) {
	return New(opts), nil
}

// Render implements render.Renderer.
func (r *Renderer) Render(ob *hbuf.Buffer, tree *mdast.Tree, mq *meta.Queue) error {
	r.headerOffset = 1
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
		InsertOpen:  `{\color{blue} `,
		InsertClose: "}",
		DeleteOpen:  `{\color{red} `,
		DeleteClose: "}",
	}
}

// Node implements render.Handler.
//
//nolint:gocyclo,cyclop,funlen // One case per node kind.
func (r *Renderer) Node(ob, content *hbuf.Buffer, tree *mdast.Tree, id mdast.NodeID) error {
	node := tree.Node(id)

	switch p := node.Payload.(type) {
	case mdast.BlockCode:
		return blockCode(ob, p)
	case mdast.BlockQuote:
		return wrapBlock(ob, content,
			"\\begin{center}\n\\begin{tabular}{|p{0.9\\textwidth}}\n\\itshape", "\\end{tabular}\n\\end{center}\n")
	case mdast.Definition:
		return wrapBlock(ob, content, "\\begin{description}\n", "\\end{description}\n")
	case mdast.DefinitionTitle:
		return wrap(ob, bytes.TrimRight(content.Bytes(), "\n"), `\item[`, "] ")
	case mdast.DefinitionData:
		return wrap(ob, bytes.TrimRight(content.Bytes(), "\n"), "", "\n")
	case mdast.Header:
		return r.header(ob, content, p)
	case mdast.HRule:
		return putBlock(ob, "\\noindent\\hrulefill\n")
	case mdast.List:
		return list(ob, content, p)
	case mdast.ListItem:
		return listItem(ob, content, p)
	case mdast.Paragraph:
		return paragraph(ob, content)
	case mdast.TableBlock:
		return wrapBlock(ob, content, "", "\\end{tabularx}\n\\end{center}\n")
	case mdast.TableHeader:
		return tableHeader(ob, content, p)
	case mdast.TableCell:
		return tableCell(ob, content, p)
	case mdast.FootnoteDef:
		return footnoteDef(ob, content, node.Change, p)
	case mdast.BlockHTML:
		return r.rawBlock(ob, p)
	case mdast.LinkAuto:
		return r.autolink(ob, p)
	case mdast.CodeSpan:
		return r.wrapText(ob, p.Text, `\code{`, "}")
	case mdast.DoubleEmphasis:
		return wrap(ob, content.Bytes(), `\textbf{`, "}")
	case mdast.Emphasis:
		return wrap(ob, content.Bytes(), `\emph{`, "}")
	case mdast.Highlight:
		return wrap(ob, content.Bytes(), `\underline{`, "}")
	case mdast.Strikethrough:
		return wrap(ob, content.Bytes(), `\sout{`, "}")
	case mdast.TripleEmphasis:
		return wrap(ob, content.Bytes(), `\textbf{\emph{`, "}}")
	case mdast.Superscript:
		return wrap(ob, content.Bytes(), `\textsuperscript{`, "}")
	case mdast.Image:
		return image(ob, p)
	case mdast.Linebreak:
		return ob.PutString("\\linebreak\n")
	case mdast.Link:
		if err := r.wrapText(ob, p.Link, `\href{`, "}{"); err != nil {
			return err
		}
		return wrap(ob, content.Bytes(), "", "}")
	case mdast.FootnoteRef:
		return ob.Printf(`\footnotemark[%d]`, p.Num)
	case mdast.Math:
		if p.Block {
			return wrap(ob, p.Text, `\[`, `\]`)
		}
		return wrap(ob, p.Text, `\(`, `\)`)
	case mdast.RawHTML:
		if r.flags.Has(render.FlagLaTeXSkipHTML) {
			return nil
		}
		return r.text(ob, p.Text)
	case mdast.Entity:
		return r.entity(ob, p)
	case mdast.NormalText:
		return r.text(ob, p.Text)
	case mdast.DocHeader:
		return r.preamble(ob)
	case mdast.Meta:
		return r.meta(content, node.Change, p)
	case mdast.DocFooter:
		if r.flags.Has(render.FlagStandalone) {
			return ob.PutString("\\end{document}\n")
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
	return Escape(ob, src)
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

func (r *Renderer) autolink(ob *hbuf.Buffer, p mdast.LinkAuto) error {
	if len(p.Link) == 0 {
		return nil
	}
	if err := ob.PutString(`\url{`); err != nil {
		return err
	}
	if p.Type == mdast.AutolinkEmail {
		if err := ob.PutString("mailto:"); err != nil {
			return err
		}
	}
	return r.wrapText(ob, p.Link, "", "}")
}

// entity writes the character a reference stands for, escaped. References
// that do not resolve are escaped verbatim.
func (r *Renderer) entity(ob *hbuf.Buffer, p mdast.Entity) error {
	decoded := stdhtml.UnescapeString(string(p.Text))
	return r.text(ob, []byte(decoded))
}

// meta records a metadata entry. Deleted entries are not recorded.
func (r *Renderer) meta(content *hbuf.Buffer, change mdast.Change, p mdast.Meta) error {
	r.noEscape = false
	if change == mdast.ChangeDelete {
		return nil
	}

	key, value := string(p.Key), content.String()
	r.mq.Push(key, value)

	if offset, ok := meta.HeaderOffset(key, value); ok {
		r.headerOffset = offset
	}
	return nil
}
