package latex

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdrender/pkg/hbuf"
	"github.com/yaklabco/gomdrender/pkg/mdast"
)

// imageSize returns the \includegraphics size options. Explicit width
// and height attributes win over the raw dimension string. Attribute
// values that could close the option list are dropped.
func imageSize(p mdast.Image) []string {
	var opts []string

	if len(p.AttrWidth) > 0 || len(p.AttrHeight) > 0 {
		if safeOption(p.AttrWidth) {
			opts = append(opts, "width="+widthAttr(string(p.AttrWidth)))
		}
		if safeOption(p.AttrHeight) {
			opts = append(opts, "height="+string(p.AttrHeight))
		}
		return opts
	}

	width, height, count := mdast.ParseDims(p.Dims)
	if count == 0 {
		return nil
	}
	opts = append(opts, "width="+strconv.Itoa(width)+"px")
	if count > 1 {
		opts = append(opts, "height="+strconv.Itoa(height)+"px")
	}
	return opts
}

// safeOption reports whether value is non-empty and can sit inside an
// option list without ending it.
func safeOption(value []byte) bool {
	return len(value) > 0 && !bytes.ContainsAny(value, `[]{}\,`)
}

// widthAttr turns a percentage into a fraction of \linewidth and passes
// anything else through.
func widthAttr(width string) string {
	if pct, ok := strings.CutSuffix(width, "%"); ok {
		if val, err := strconv.ParseFloat(strings.TrimSpace(pct), 64); err == nil {
			return strconv.FormatFloat(val/100, 'f', 2, 64) + `\linewidth`
		}
	}
	return width
}

func image(ob *hbuf.Buffer, p mdast.Image) error {
	size := imageSize(p)
	if len(size) == 0 {
		size = []string{`width=\textwidth`}
	}

	if err := ob.PutString("\\begin{center}\n\\includegraphics[" + strings.Join(size, ", ") + "]{"); err != nil {
		return err
	}

	// The extension is escaped apart from the stem so that dots in the
	// stem do not confuse graphicx.
	if dot := bytes.LastIndexByte(p.Link, '.'); dot >= 0 {
		if err := ob.PutByte('{'); err != nil {
			return err
		}
		if err := Escape(ob, p.Link[:dot]); err != nil {
			return err
		}
		if err := ob.PutByte('}'); err != nil {
			return err
		}
		if err := Escape(ob, p.Link[dot:]); err != nil {
			return err
		}
	} else if err := Escape(ob, p.Link); err != nil {
		return err
	}

	return ob.PutString("}\n\\end{center}\n")
}
