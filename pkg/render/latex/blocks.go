package latex

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdrender/pkg/hbuf"
	"github.com/yaklabco/gomdrender/pkg/mdast"
	"github.com/yaklabco/gomdrender/pkg/render"
)

// sectionCommands maps clamped heading levels to sectioning commands.
// Levels past the end use the last entry.
//
//nolint:gochecknoglobals // Read-only lookup table.
var sectionCommands = []string{
	`\section`, `\subsection`, `\subsubsection`, `\paragraph`, `\subparagraph`,
}

func blockCode(ob *hbuf.Buffer, p mdast.BlockCode) error {
	if err := putBlock(ob, "\\begin{verbatim}\n"); err != nil {
		return err
	}
	if err := ob.Put(p.Text); err != nil {
		return err
	}
	if len(p.Text) > 0 && p.Text[len(p.Text)-1] != '\n' {
		if err := ob.PutByte('\n'); err != nil {
			return err
		}
	}
	return ob.PutString("\\end{verbatim}\n")
}

// headingLevel applies the header offset. Levels are clamped only from
// below; anything deeper than \subparagraph renders as \subparagraph.
func (r *Renderer) headingLevel(declared int) int {
	return max(declared+r.headerOffset, 1)
}

func (r *Renderer) header(ob, content *hbuf.Buffer, p mdast.Header) error {
	level := r.headingLevel(p.Level)
	command := sectionCommands[min(level, len(sectionCommands))-1]
	if !r.flags.Has(render.FlagLaTeXNumbered) {
		command += "*"
	}
	if err := putBlock(ob, command); err != nil {
		return err
	}
	return wrap(ob, content.Bytes(), "{", "}\n")
}

func list(ob, content *hbuf.Buffer, p mdast.List) error {
	env := "itemize"
	if p.Flags.Has(mdast.ListOrdered) {
		env = "enumerate"
	}

	if err := putBlock(ob, `\begin{`+env+"}\n"); err != nil {
		return err
	}
	if !p.Flags.Has(mdast.ListBlock) {
		if err := ob.PutString("\\itemsep -0.2em\n"); err != nil {
			return err
		}
	}
	return wrap(ob, content.Bytes(), "", `\end{`+env+"}\n")
}

func listItem(ob, content *hbuf.Buffer, p mdast.ListItem) error {
	if !p.Flags.Has(mdast.ListDef) {
		item := `\item`
		switch {
		case p.Flags.Has(mdast.ListChecked):
			item += `[$\rlap{$\checkmark$}\square$]`
		case p.Flags.Has(mdast.ListUnchecked):
			item += `[$\square$]`
		}
		if err := ob.PutString(item + " "); err != nil {
			return err
		}
	}
	return wrap(ob, bytes.TrimRight(content.Bytes(), "\n"), "", "\n")
}

func paragraph(ob, content *hbuf.Buffer) error {
	body := bytes.TrimLeft(content.Bytes(), " \t\n\r\v\f")
	if len(body) == 0 {
		return nil
	}
	return wrap(ob, body, "\n", "\n")
}

// tableHeader opens the tabularx environment. The column count must be
// known before any row is rendered.
func tableHeader(ob, content *hbuf.Buffer, p mdast.TableHeader) error {
	spec := "\\begin{center}\\begin{tabularx}{\\textwidth}{ |" +
		strings.Repeat("C | ", max(p.Columns, 0)) + "}\n\\hline\n"
	return wrap(ob, content.Bytes(), spec, "")
}

func tableCell(ob, content *hbuf.Buffer, p mdast.TableCell) error {
	if p.Col < p.Columns-1 {
		return wrap(ob, content.Bytes(), "", " & ")
	}
	return wrap(ob, content.Bytes(), "", "  \\\\\n\\hline\n")
}

// footnoteDef colours its own body when it carries a change annotation.
func footnoteDef(ob, content *hbuf.Buffer, change mdast.Change, p mdast.FootnoteDef) error {
	open, closing := "", ""
	switch change {
	case mdast.ChangeInsert:
		open, closing = `\textcolor{blue}{`, "}"
	case mdast.ChangeDelete:
		open, closing = `\textcolor{red}{`, "}"
	case mdast.ChangeNone:
	}

	head := `\footnotetext[` + strconv.Itoa(p.Num) + "]{" + open
	return wrap(ob, content.Bytes(), head, closing+"}\n")
}

func (r *Renderer) rawBlock(ob *hbuf.Buffer, p mdast.BlockHTML) error {
	if r.flags.Has(render.FlagLaTeXSkipHTML) {
		return nil
	}
	text := bytes.Trim(p.Text, "\n")
	if len(text) == 0 {
		return nil
	}
	if err := putBlock(ob, "\\begin{verbatim}\n"); err != nil {
		return err
	}
	return wrap(ob, text, "", "\n\\end{verbatim}\n")
}
