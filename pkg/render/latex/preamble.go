package latex

import (
	"golang.org/x/text/language"

	"github.com/yaklabco/gomdrender/pkg/hbuf"
	"github.com/yaklabco/gomdrender/pkg/meta"
	"github.com/yaklabco/gomdrender/pkg/render"
)

// localeInfo holds the per-language parts of the preamble.
type localeInfo struct {
	tag          language.Tag
	defaultTitle string
	// fonts is extra preamble for scripts the default fonts lack.
	fonts string
	// codeFont is the body of the \code macro.
	codeFont string
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	locales = []localeInfo{
		{
			tag:          language.English,
			defaultTitle: "Untitled article",
			codeFont:     `\ttfamily #1`,
		},
		{
			tag:          language.Persian,
			defaultTitle: "مقاله بدون عنوان",
			fonts: "\\usepackage{xepersian}\n" +
				"\\settextfont{HMXKayhan}\n" +
				"\\ExplSyntaxOn \\cs_set_eq:NN \\etex_iffontchar:D \\tex_iffontchar:D \\ExplSyntaxOff\n" +
				"\\setdigitfont{HMXKayhan}\n",
			codeFont: `\lr\ttfamily #1`,
		},
		{
			tag:          language.German,
			defaultTitle: "Unbenannter Artikel",
			codeFont:     `\ttfamily #1`,
		},
		{
			tag:          language.French,
			defaultTitle: "Article sans titre",
			codeFont:     `\ttfamily #1`,
		},
	}

	localeMatcher = func() language.Matcher {
		tags := make([]language.Tag, len(locales))
		for i, info := range locales {
			tags[i] = info.tag
		}
		return language.NewMatcher(tags)
	}()
)

// matchLocale picks the supported locale closest to a BCP 47 tag.
// Unknown or empty tags fall back to English.
func matchLocale(tag string) localeInfo {
	_, index := language.MatchStrings(localeMatcher, tag)
	return locales[index]
}

// DefaultTitle returns the placeholder title used for a locale.
func DefaultTitle(locale string) string {
	return matchLocale(locale).defaultTitle
}

const preambleHead = "\\documentclass[11pt,a4paper]{article}\n\n" +
	"\\usepackage[margin=2.0cm]{geometry}\n" +
	"\\usepackage{xcolor,graphicx}\n" +
	"\\usepackage{titlesec,titling}\n" +
	"\\usepackage[normalem]{ulem}\n" +
	"\\usepackage{fontspec}\n" +
	"\\usepackage{textcomp}\n" +
	"\\usepackage[colorlinks=true,linkcolor=mygreen]{hyperref}\n" +
	"\\usepackage{amsmath}\n" +
	"\\usepackage{enumitem,amssymb}\n" +
	"\\usepackage{tabularx}\n" +
	"\\definecolor{backcolour}{rgb}{0.95,0.95,0.92}\n" +
	"\\definecolor{mygreen}{rgb}{0.0, 0.3, 0.0}\n" +
	"\n" +
	"\\titleformat{\\section} {\\Large \\bfseries}{}{3pt}{}\n" +
	"\\titlespacing{\\section}{1mm}{1mm}{5mm}\n" +
	"\\titleformat{\\subsection} {\\large \\bfseries}{}{3pt}{\\underline}\n" +
	"\\titlespacing{\\subsection}{7pt}{7pt}{7pt}\n" +
	"\\titleformat{\\subsubsection} {\\bfseries}{}{0em}{}\n" +
	"\\titlespacing{\\subsubsection}{0pt}{7pt}{7pt}\n" +
	"\\setlength{\\parindent}{0mm}\n" +
	"\\newcolumntype{C}{>{\\centering\\arraybackslash}X}\n"

// preamble writes the document preamble and title block in standalone
// mode. Metadata values are escaped here, once.
func (r *Renderer) preamble(ob *hbuf.Buffer) error {
	if !r.flags.Has(render.FlagStandalone) {
		return nil
	}

	if err := ob.PutString(preambleHead); err != nil {
		return err
	}
	if err := ob.PutString(`\newcommand{\code}[1]{\colorbox{backcolour}{` + r.locale.codeFont + "}}\n"); err != nil {
		return err
	}
	if r.locale.fonts != "" {
		if err := ob.PutString("\n" + r.locale.fonts); err != nil {
			return err
		}
	}
	if err := ob.PutString("\n\\begin{document}\n"); err != nil {
		return err
	}

	return r.titleBlock(ob, r.mq.Header())
}

func (r *Renderer) titleBlock(ob *hbuf.Buffer, hdr meta.Header) error {
	if hdr.Title == "" {
		hdr.Title = r.locale.defaultTitle
	}

	if err := command(ob, `\title{`, hdr.Title); err != nil {
		return err
	}

	if hdr.Author != "" {
		if err := ob.PutString(`\author{`); err != nil {
			return err
		}
		if err := EscapeString(ob, hdr.Author); err != nil {
			return err
		}
		if hdr.Affiliation != "" {
			if err := ob.PutString(` \\ `); err != nil {
				return err
			}
			if err := EscapeString(ob, hdr.Affiliation); err != nil {
				return err
			}
		}
		if err := ob.PutString("}\n"); err != nil {
			return err
		}
	}

	if hdr.Date != "" {
		if err := command(ob, `\date{`, hdr.Date); err != nil {
			return err
		}
	}

	return ob.PutString("\\maketitle\n\\vspace{4cm}\n")
}

// command writes open, the escaped argument and a closing brace line.
func command(ob *hbuf.Buffer, open, arg string) error {
	if err := ob.PutString(open); err != nil {
		return err
	}
	if err := EscapeString(ob, arg); err != nil {
		return err
	}
	return ob.PutString("}\n")
}
