package html

import (
	"github.com/yaklabco/gomdrender/pkg/hbuf"
	"github.com/yaklabco/gomdrender/pkg/mdast"
	"github.com/yaklabco/gomdrender/pkg/meta"
	"github.com/yaklabco/gomdrender/pkg/render"
)

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

// docHeader writes the <head> element in standalone mode.
func (r *Renderer) docHeader(ob, content *hbuf.Buffer) error {
	if !r.flags.Has(render.FlagStandalone) {
		return nil
	}

	hdr := r.mq.Header()
	if hdr.Title == "" {
		hdr.Title = defaultTitle
	}

	if err := ob.PutBuffer(content); err != nil {
		return err
	}
	if err := ob.PutString("<head>\n" +
		"<meta charset=\"utf-8\" />\n" +
		"<meta name=\"viewport\" content=\"width=device-width,initial-scale=1\" />\n"); err != nil {
		return err
	}

	multi := []struct {
		value    string
		href     bool
		startTag string
		endTag   string
	}{
		{hdr.Affiliation, false, "<meta name=\"creator\" content=", " />"},
		{hdr.Author, false, "<meta name=\"author\" content=", " />"},
		{hdr.Copyright, false, "<meta name=\"copyright\" content=", " />"},
	}
	for _, field := range multi {
		if err := metaMulti(ob, field.value, field.href, field.startTag, field.endTag); err != nil {
			return err
		}
	}

	if hdr.Date != "" {
		if err := ob.PutString("<meta name=\"date\" scheme=\"YYYY-MM-DD\" content=\""); err != nil {
			return err
		}
		if err := Attr(ob, []byte(hdr.Date)); err != nil {
			return err
		}
		if err := ob.PutString("\" />\n"); err != nil {
			return err
		}
	}

	if err := metaMulti(ob, hdr.CSS, true, "<link rel=\"stylesheet\" href=", " />"); err != nil {
		return err
	}
	if err := metaMulti(ob, hdr.JavaScript, true, "<script src=", "></script>"); err != nil {
		return err
	}

	if err := ob.PutString("<title>"); err != nil {
		return err
	}
	if err := r.escaper.Text(ob, []byte(hdr.Title)); err != nil {
		return err
	}
	return ob.PutString("</title>\n</head>\n<body>\n")
}

// metaMulti writes one element per run of a multi-valued field.
func metaMulti(ob *hbuf.Buffer, value string, href bool, startTag, endTag string) error {
	escape := Attr
	if href {
		escape = Href
	}

	for _, run := range meta.Runs(value) {
		if err := ob.PutString(startTag + "\""); err != nil {
			return err
		}
		if err := escape(ob, []byte(run)); err != nil {
			return err
		}
		if err := ob.PutString("\"" + endTag + "\n"); err != nil {
			return err
		}
	}
	return nil
}
