package html

import (
	"bytes"
	stdhtml "html"
	"unicode/utf8"

	"github.com/yaklabco/gomdrender/pkg/hbuf"
	"github.com/yaklabco/gomdrender/pkg/mdast"
	"github.com/yaklabco/gomdrender/pkg/render"
)

func (r *Renderer) autolink(ob *hbuf.Buffer, p mdast.LinkAuto) error {
	if len(p.Link) == 0 {
		return nil
	}

	if err := ob.PutString("<a href=\""); err != nil {
		return err
	}
	if p.Type == mdast.AutolinkEmail {
		if err := ob.PutString("mailto:"); err != nil {
			return err
		}
	}
	if err := Href(ob, p.Link); err != nil {
		return err
	}
	if err := ob.PutString("\">"); err != nil {
		return err
	}

	// Show mailto: links without their scheme.
	if label, ok := bytes.CutPrefix(p.Link, []byte("mailto:")); ok {
		if err := r.escaper.Text(ob, label); err != nil {
			return err
		}
	} else if err := r.text(ob, p.Link); err != nil {
		return err
	}

	return ob.PutString("</a>")
}

// attr writes ` name="value"` when value is non-empty.
func attr(ob *hbuf.Buffer, name string, value []byte) error {
	if len(value) == 0 {
		return nil
	}
	if err := ob.PutString(" " + name + "=\""); err != nil {
		return err
	}
	if err := Attr(ob, value); err != nil {
		return err
	}
	return ob.PutByte('"')
}

func link(ob, content *hbuf.Buffer, p mdast.Link) error {
	if err := ob.PutString("<a href=\""); err != nil {
		return err
	}
	if err := Href(ob, p.Link); err != nil {
		return err
	}
	if err := ob.PutByte('"'); err != nil {
		return err
	}
	for _, a := range []struct {
		name  string
		value []byte
	}{
		{"title", p.Title},
		{"class", p.AttrClass},
		{"id", p.AttrID},
	} {
		if err := attr(ob, a.name, a.value); err != nil {
			return err
		}
	}
	return wrap(ob, content.Bytes(), ">", "</a>")
}

func (r *Renderer) image(ob *hbuf.Buffer, p mdast.Image) error {
	if err := ob.PutString("<img src=\""); err != nil {
		return err
	}
	if err := Href(ob, p.Link); err != nil {
		return err
	}
	// alt is required, even if blank.
	if err := ob.PutString("\" alt=\""); err != nil {
		return err
	}
	if err := Attr(ob, p.Alt); err != nil {
		return err
	}
	if err := ob.PutByte('"'); err != nil {
		return err
	}

	if err := attr(ob, "class", p.AttrClass); err != nil {
		return err
	}
	if err := attr(ob, "id", p.AttrID); err != nil {
		return err
	}

	if len(p.AttrWidth) > 0 || len(p.AttrHeight) > 0 {
		if err := r.imageStyle(ob, p); err != nil {
			return err
		}
	} else if width, height, count := mdast.ParseDims(p.Dims); count > 0 {
		if err := ob.Printf(" width=\"%d\"", width); err != nil {
			return err
		}
		if count > 1 {
			if err := ob.Printf(" height=\"%d\"", height); err != nil {
				return err
			}
		}
	}

	if err := attr(ob, "title", p.Title); err != nil {
		return err
	}

	return ob.PutString(" />")
}

func (r *Renderer) imageStyle(ob *hbuf.Buffer, p mdast.Image) error {
	if err := ob.PutString(" style=\""); err != nil {
		return err
	}
	for _, dim := range []struct {
		name  string
		value []byte
	}{
		{"width:", p.AttrWidth},
		{"height:", p.AttrHeight},
	} {
		if len(dim.value) == 0 {
			continue
		}
		if err := ob.PutString(dim.name); err != nil {
			return err
		}
		if err := Attr(ob, dim.value); err != nil {
			return err
		}
		if err := ob.PutByte(';'); err != nil {
			return err
		}
	}
	return ob.PutByte('"')
}

func (r *Renderer) rawHTML(ob *hbuf.Buffer, p mdast.RawHTML) error {
	if r.flags.Has(render.FlagHTMLSkipHTML) {
		return nil
	}
	if r.flags.Has(render.FlagHTMLEscape) {
		return r.text(ob, p.Text)
	}
	return ob.Put(p.Text)
}

// entity writes a character reference. With numeric entities enabled,
// references that resolve to a single code point are rewritten as
// "&#N;"; everything else is copied through.
func (r *Renderer) entity(ob *hbuf.Buffer, p mdast.Entity) error {
	if !r.flags.Has(render.FlagHTMLNumEnt) {
		return ob.Put(p.Text)
	}
	if code, ok := resolveEntity(p.Text); ok {
		return ob.Printf("&#%d;", code)
	}
	return ob.Put(p.Text)
}

// resolveEntity returns the code point of a character reference such
// as "&copy;" or "&#169;".
func resolveEntity(ref []byte) (rune, bool) {
	if len(ref) < 3 || ref[0] != '&' || ref[len(ref)-1] != ';' {
		return 0, false
	}
	decoded := stdhtml.UnescapeString(string(ref))
	if decoded == string(ref) {
		return 0, false
	}
	code, size := utf8.DecodeRuneInString(decoded)
	if code == utf8.RuneError || size != len(decoded) {
		return 0, false
	}
	return code, true
}
