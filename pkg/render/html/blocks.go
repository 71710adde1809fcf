package html

import (
	"bytes"
	"strconv"

	"github.com/yaklabco/gomdrender/pkg/hbuf"
	"github.com/yaklabco/gomdrender/pkg/mdast"
	"github.com/yaklabco/gomdrender/pkg/render"
)

// blockPrefixes are the openings of rendered list-item content that is
// already block-level and needs no paragraph wrapper.
//
//nolint:gochecknoglobals // Read-only lookup table.
var blockPrefixes = []string{
	"<ul", "<ol", "<dl", "<div", "<table", "<blockquote", "<pre>", "<h", "<p>",
}

func (r *Renderer) root(ob, content *hbuf.Buffer) error {
	if !r.flags.Has(render.FlagStandalone) {
		return ob.PutBuffer(content)
	}
	return wrap(ob, content.Bytes(), "<!DOCTYPE html>\n<html>\n", "</html>\n")
}

func (r *Renderer) blockCode(ob *hbuf.Buffer, p mdast.BlockCode) error {
	if err := blockBreak(ob); err != nil {
		return err
	}
	if len(p.Lang) > 0 {
		if err := ob.PutString("<pre><code class=\"language-"); err != nil {
			return err
		}
		if err := Href(ob, p.Lang); err != nil {
			return err
		}
		if err := ob.PutString("\">"); err != nil {
			return err
		}
	} else if err := ob.PutString("<pre><code>"); err != nil {
		return err
	}
	if err := r.escaper.Literal(ob, p.Text); err != nil {
		return err
	}
	return ob.PutString("</code></pre>\n")
}

// headingLevel applies the header offset and clamps to h1..h6.
func (r *Renderer) headingLevel(declared int) int {
	return min(max(declared+r.headerOffset, 1), 6)
}

func (r *Renderer) header(ob, content *hbuf.Buffer, p mdast.Header) error {
	level := r.headingLevel(p.Level)

	if err := blockBreak(ob); err != nil {
		return err
	}

	if content.Len() > 0 && r.flags.Has(render.FlagHTMLHeadIDs) {
		if err := ob.Printf("<h%d id=\"", level); err != nil {
			return err
		}
		if err := r.headerID(ob, content.Bytes()); err != nil {
			return err
		}
		if err := ob.PutString("\">"); err != nil {
			return err
		}
	} else if err := ob.Printf("<h%d>", level); err != nil {
		return err
	}

	if err := ob.PutBuffer(content); err != nil {
		return err
	}
	return ob.Printf("</h%d>\n", level)
}

// headerID writes a unique identifier for a heading. The first use of an
// identifier is written bare; later uses get "-2", "-3" and so on.
func (r *Renderer) headerID(ob *hbuf.Buffer, heading []byte) error {
	slug := slugify(heading)

	if err := Href(ob, slug); err != nil {
		return err
	}

	for i := range r.headerIDs {
		if r.headerIDs[i].text == string(slug) {
			r.headerIDs[i].count++
			return ob.Printf("-%d", r.headerIDs[i].count)
		}
	}

	r.headerIDs = append(r.headerIDs, headerID{text: string(slug), count: 1})
	return nil
}

// slugify lowercases ASCII letters and turns whitespace into hyphens.
func slugify(heading []byte) []byte {
	slug := make([]byte, len(heading))
	for i, c := range heading {
		switch {
		case c >= 'A' && c <= 'Z':
			c += 'a' - 'A'
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			c = '-'
		}
		slug[i] = c
	}
	return slug
}

func list(ob, content *hbuf.Buffer, p mdast.List) error {
	if err := blockBreak(ob); err != nil {
		return err
	}

	ordered := p.Flags.Has(mdast.ListOrdered)
	var err error
	switch {
	case ordered && p.Start > 1:
		err = ob.Printf("<ol start=\"%d\">\n", p.Start)
	case ordered:
		err = ob.PutString("<ol>\n")
	default:
		err = ob.PutString("<ul>\n")
	}
	if err != nil {
		return err
	}

	if err := ob.PutBuffer(content); err != nil {
		return err
	}
	if ordered {
		return ob.PutString("</ol>\n")
	}
	return ob.PutString("</ul>\n")
}

// inBlockList reports whether a list item sits in a list the parser
// marked as block mode. Definition items look past their data node to
// the enclosing definition list.
func inBlockList(tree *mdast.Tree, id mdast.NodeID, p mdast.ListItem) bool {
	parent := tree.Parent(id)
	if p.Flags.Has(mdast.ListDef) {
		if def, ok := tree.Payload(tree.Parent(parent)).(mdast.Definition); ok {
			return def.Flags.Has(mdast.ListBlock)
		}
		return false
	}
	if lst, ok := tree.Payload(parent).(mdast.List); ok {
		return lst.Flags.Has(mdast.ListBlock)
	}
	return false
}

func startsWithBlock(content *hbuf.Buffer) bool {
	for _, prefix := range blockPrefixes {
		if content.HasPrefix(prefix) {
			return true
		}
	}
	return false
}

func listItem(ob, content *hbuf.Buffer, tree *mdast.Tree, id mdast.NodeID, p mdast.ListItem) error {
	paragraph := inBlockList(tree, id, p) && !startsWithBlock(content)
	isDef := p.Flags.Has(mdast.ListDef)

	if !isDef {
		if err := ob.PutString("<li>"); err != nil {
			return err
		}
	}
	if paragraph {
		if err := ob.PutString("<p>"); err != nil {
			return err
		}
	}

	if p.Flags.Has(mdast.ListChecked) || p.Flags.Has(mdast.ListUnchecked) {
		checkbox := "<input type=\"checkbox\" />"
		if p.Flags.Has(mdast.ListChecked) {
			checkbox = "<input type=\"checkbox\" checked=\"checked\" />"
		}
		if err := ob.PutString(checkbox); err != nil {
			return err
		}
	}

	if err := ob.Put(trimNewlines(content)); err != nil {
		return err
	}

	if paragraph {
		if err := ob.PutString("</p>"); err != nil {
			return err
		}
	}
	if !isDef {
		return ob.PutString("</li>\n")
	}
	return nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func (r *Renderer) paragraph(ob, content *hbuf.Buffer) error {
	body := content.Bytes()
	start := 0
	for start < len(body) && isSpace(body[start]) {
		start++
	}
	if start == len(body) {
		return nil
	}
	body = body[start:]

	if err := blockBreak(ob); err != nil {
		return err
	}
	if err := ob.PutString("<p>"); err != nil {
		return err
	}

	if !r.flags.Has(render.FlagHTMLHardWrap) {
		if err := ob.Put(body); err != nil {
			return err
		}
		return ob.PutString("</p>\n")
	}

	for len(body) > 0 {
		line, rest, found := bytes.Cut(body, []byte{'\n'})
		if err := ob.Put(line); err != nil {
			return err
		}
		// A newline ending the paragraph gets no break.
		if !found || len(rest) == 0 {
			break
		}
		if err := ob.PutString("<br/>\n"); err != nil {
			return err
		}
		body = rest
	}
	return ob.PutString("</p>\n")
}

func tableCell(ob, content *hbuf.Buffer, p mdast.TableCell) error {
	tag := "td"
	if p.Header {
		tag = "th"
	}

	var style string
	switch p.Align {
	case mdast.AlignCenter:
		style = " style=\"text-align: center\""
	case mdast.AlignLeft:
		style = " style=\"text-align: left\""
	case mdast.AlignRight:
		style = " style=\"text-align: right\""
	case mdast.AlignNone:
	}

	if err := ob.Printf("<%s%s>", tag, style); err != nil {
		return err
	}
	if err := ob.PutBuffer(content); err != nil {
		return err
	}
	return ob.Printf("</%s>\n", tag)
}

// footnoteDef renders one footnote and splices a back-reference before
// the first closing paragraph tag of its body, if there is one. The
// node's change markers go inside the list item.
func (r *Renderer) footnoteDef(ob, content *hbuf.Buffer, change mdast.Change, p mdast.FootnoteDef) error {
	num := strconv.Itoa(p.Num)
	markers := r.Markers()

	open, closing := "", ""
	switch change {
	case mdast.ChangeInsert:
		open, closing = markers.InsertOpen, markers.InsertClose
	case mdast.ChangeDelete:
		open, closing = markers.DeleteOpen, markers.DeleteClose
	case mdast.ChangeNone:
	}

	if err := ob.PutString("\n<li id=\"fn" + num + "\">\n" + open); err != nil {
		return err
	}

	body := content.Bytes()
	if at := bytes.Index(body, []byte("</p>")); at >= 0 {
		if err := ob.Put(body[:at]); err != nil {
			return err
		}
		if err := ob.PutString("&#160;<a href=\"#fnref" + num + "\" rev=\"footnote\">&#8617;</a>"); err != nil {
			return err
		}
		body = body[at:]
	}
	if err := ob.Put(body); err != nil {
		return err
	}

	return ob.PutString(closing + "</li>\n")
}

func (r *Renderer) rawBlock(ob *hbuf.Buffer, p mdast.BlockHTML) error {
	if r.flags.Has(render.FlagHTMLSkipHTML) {
		return nil
	}
	if r.flags.Has(render.FlagHTMLEscape) {
		return r.text(ob, p.Text)
	}

	text := bytes.Trim(p.Text, "\n")
	if len(text) == 0 {
		return nil
	}
	if err := blockBreak(ob); err != nil {
		return err
	}
	if err := ob.Put(text); err != nil {
		return err
	}
	return ob.PutByte('\n')
}
