package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/gomdrender/pkg/langdetect"
	"github.com/yaklabco/gomdrender/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Tree.
type mapper struct {
	source []byte
	tree   *mdast.Tree
	detect bool
}

// newMapper creates a mapper that appends to tree.
func newMapper(source []byte, tree *mdast.Tree, detect bool) *mapper {
	return &mapper{source: source, tree: tree, detect: detect}
}

// mapDocument appends the document's blocks to the tree root.
func (m *mapper) mapDocument(gmDoc ast.Node) {
	m.mapChildren(gmDoc, m.tree.Root())
}

// mapChildren maps all children of a goldmark node under parent.
func (m *mapper) mapChildren(gmParent ast.Node, parent mdast.NodeID) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		m.mapNode(child, parent)
	}
}

// appendWithChildren appends p under parent and maps gmNode's children
// beneath it.
func (m *mapper) appendWithChildren(gmNode ast.Node, parent mdast.NodeID, p mdast.Payload) {
	m.mapChildren(gmNode, m.tree.Append(parent, p))
}

// mapNode converts a single goldmark node and its subtree.
//
//nolint:gocyclo,cyclop,funlen // One case per goldmark node type.
func (m *mapper) mapNode(gmNode ast.Node, parent mdast.NodeID) {
	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Heading:
		m.appendWithChildren(gmn, parent, mdast.Header{Level: gmn.Level - 1})

	case *ast.Paragraph:
		m.appendWithChildren(gmn, parent, mdast.Paragraph{
			Lines:      gmn.Lines().Len(),
			BlankAfter: gmn.NextSibling() != nil && gmn.NextSibling().HasBlankPreviousLines(),
		})

	case *ast.TextBlock:
		// Tight list items hold their inline content directly.
		m.mapChildren(gmn, parent)

	case *ast.List:
		m.mapList(gmn, parent)

	case *ast.Blockquote:
		m.appendWithChildren(gmn, parent, mdast.BlockQuote{})

	case *ast.FencedCodeBlock:
		m.mapCodeBlock(gmn, parent, gmn.Language(m.source))

	case *ast.CodeBlock:
		m.mapCodeBlock(gmn, parent, nil)

	case *ast.ThematicBreak:
		m.tree.Append(parent, mdast.HRule{})

	case *ast.HTMLBlock:
		raw := m.lines(gmn)
		if gmn.HasClosure() {
			raw = append(raw, gmn.ClosureLine.Value(m.source)...)
		}
		m.tree.Append(parent, mdast.BlockHTML{Text: raw})

	// Inline-level nodes.
	case *ast.Text:
		m.mapText(gmn, parent)

	case *ast.String:
		m.tree.Append(parent, mdast.NormalText{Text: clone(gmn.Value)})

	case *ast.Emphasis:
		m.mapEmphasis(gmn, parent)

	case *ast.CodeSpan:
		m.tree.Append(parent, mdast.CodeSpan{Text: m.plainText(gmn)})

	case *ast.Link:
		m.appendWithChildren(gmn, parent, mdast.Link{
			Link:      clone(gmn.Destination),
			Title:     clone(gmn.Title),
			AttrClass: attribute(gmn, "class"),
			AttrID:    attribute(gmn, "id"),
		})

	case *ast.Image:
		m.tree.Append(parent, mdast.Image{
			Link:       clone(gmn.Destination),
			Title:      clone(gmn.Title),
			Alt:        m.plainText(gmn),
			AttrWidth:  attribute(gmn, "width"),
			AttrHeight: attribute(gmn, "height"),
			AttrClass:  attribute(gmn, "class"),
			AttrID:     attribute(gmn, "id"),
		})

	case *ast.AutoLink:
		linkType := mdast.AutolinkNormal
		if gmn.AutoLinkType == ast.AutoLinkEmail {
			linkType = mdast.AutolinkEmail
		}
		m.tree.Append(parent, mdast.LinkAuto{Link: clone(gmn.URL(m.source)), Type: linkType})

	case *ast.RawHTML:
		var raw []byte
		for i := range gmn.Segments.Len() {
			seg := gmn.Segments.At(i)
			raw = append(raw, seg.Value(m.source)...)
		}
		m.tree.Append(parent, mdast.RawHTML{Text: raw})

	// Extension nodes.
	case *east.Strikethrough:
		m.appendWithChildren(gmn, parent, mdast.Strikethrough{})

	case *east.TaskCheckBox:
		// Recorded on the list item by mapList.

	case *east.Table:
		m.mapTable(gmn, parent)

	case *east.DefinitionList:
		m.appendWithChildren(gmn, parent, mdast.Definition{Flags: definitionFlags(gmn)})

	case *east.DefinitionTerm:
		m.appendWithChildren(gmn, parent, mdast.DefinitionTitle{})

	case *east.DefinitionDescription:
		m.appendWithChildren(gmn, parent, mdast.DefinitionData{})

	case *east.FootnoteList:
		m.appendWithChildren(gmn, parent, mdast.FootnotesBlock{})

	case *east.Footnote:
		m.appendWithChildren(gmn, parent, mdast.FootnoteDef{Num: gmn.Index, Key: clone(gmn.Ref)})

	case *east.FootnoteLink:
		m.tree.Append(parent, mdast.FootnoteRef{Num: gmn.Index})

	case *east.FootnoteBacklink:
		// Backends write their own back-references.

	default:
		m.mapChildren(gmNode, parent)
	}
}

// mapText appends a text run, keeping soft breaks as newlines and hard
// breaks as Linebreak nodes.
func (m *mapper) mapText(textNode *ast.Text, parent mdast.NodeID) {
	value := clone(textNode.Segment.Value(m.source))
	if _, afterBox := textNode.PreviousSibling().(*east.TaskCheckBox); afterBox {
		value = bytes.TrimLeft(value, " ")
	}
	if textNode.SoftLineBreak() {
		value = append(value, '\n')
	}
	if len(value) > 0 {
		m.tree.Append(parent, mdast.NormalText{Text: value})
	}
	if textNode.HardLineBreak() {
		m.tree.Append(parent, mdast.Linebreak{})
	}
}

// mapEmphasis folds strong-around-regular emphasis (or the reverse)
// into a single TripleEmphasis.
func (m *mapper) mapEmphasis(emphasis *ast.Emphasis, parent mdast.NodeID) {
	if inner, ok := emphasis.FirstChild().(*ast.Emphasis); ok &&
		emphasis.ChildCount() == 1 && inner.Level != emphasis.Level {
		m.appendWithChildren(inner, parent, mdast.TripleEmphasis{})
		return
	}

	if emphasis.Level >= 2 {
		m.appendWithChildren(emphasis, parent, mdast.DoubleEmphasis{})
		return
	}
	m.appendWithChildren(emphasis, parent, mdast.Emphasis{})
}

// mapList appends a list and its items, numbering items from the
// list's start and recording task check boxes.
func (m *mapper) mapList(list *ast.List, parent mdast.NodeID) {
	flags := mdast.ListUnordered
	if list.IsOrdered() {
		flags = mdast.ListOrdered
	}
	if !list.IsTight {
		flags |= mdast.ListBlock
	}

	listID := m.tree.Append(parent, mdast.List{Flags: flags, Start: list.Start})

	num := 1
	if list.IsOrdered() {
		num = list.Start
	}
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		itemID := m.tree.Append(listID, mdast.ListItem{Flags: flags | taskFlags(item), Num: num})
		m.mapChildren(item, itemID)
		num++
	}
}

// taskFlags reports the check box state of a task list item.
func taskFlags(item ast.Node) mdast.ListFlags {
	first := item.FirstChild()
	if first == nil {
		return 0
	}
	box, ok := first.FirstChild().(*east.TaskCheckBox)
	switch {
	case !ok:
		return 0
	case box.IsChecked:
		return mdast.ListChecked
	default:
		return mdast.ListUnchecked
	}
}

// definitionFlags marks a definition list as block-level when any
// description holds a paragraph.
func definitionFlags(list *east.DefinitionList) mdast.ListFlags {
	flags := mdast.ListDef
	for child := list.FirstChild(); child != nil; child = child.NextSibling() {
		if _, ok := child.(*east.DefinitionDescription); !ok {
			continue
		}
		if _, ok := child.FirstChild().(*ast.Paragraph); ok {
			return flags | mdast.ListBlock
		}
	}
	return flags
}

// mapCodeBlock appends a code block. A missing language is guessed when
// detection is enabled and the guess is reliable.
func (m *mapper) mapCodeBlock(block ast.Node, parent mdast.NodeID, lang []byte) {
	code := m.lines(block)
	lang = clone(lang)
	if len(lang) == 0 && m.detect {
		if guess, ok := langdetect.Detect(code); ok {
			lang = []byte(guess)
		}
	}
	m.tree.Append(parent, mdast.BlockCode{Text: code, Lang: lang})
}

// mapTable appends a table. goldmark puts header cells directly under
// the header and body rows directly under the table; both get the row
// and body wrappers the renderers expect.
func (m *mapper) mapTable(table *east.Table, parent mdast.NodeID) {
	columns := len(table.Alignments)
	aligns := make([]mdast.Align, columns)
	for i, a := range table.Alignments {
		aligns[i] = alignment(a)
	}

	tableID := m.tree.Append(parent, mdast.TableBlock{Columns: columns})
	body := mdast.NoNode

	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		switch row := child.(type) {
		case *east.TableHeader:
			headID := m.tree.Append(tableID, mdast.TableHeader{Columns: columns, Align: aligns})
			m.mapCells(row, m.tree.Append(headID, mdast.TableRow{}), columns, true)
		case *east.TableRow:
			if body == mdast.NoNode {
				body = m.tree.Append(tableID, mdast.TableBody{})
			}
			m.mapCells(row, m.tree.Append(body, mdast.TableRow{}), columns, false)
		}
	}
}

func (m *mapper) mapCells(row ast.Node, rowID mdast.NodeID, columns int, header bool) {
	col := 0
	for child := row.FirstChild(); child != nil; child = child.NextSibling() {
		cell, ok := child.(*east.TableCell)
		if !ok {
			continue
		}
		m.appendWithChildren(cell, rowID, mdast.TableCell{
			Align:   alignment(cell.Alignment),
			Header:  header,
			Col:     col,
			Columns: columns,
		})
		col++
	}
}

func alignment(a east.Alignment) mdast.Align {
	switch a {
	case east.AlignLeft:
		return mdast.AlignLeft
	case east.AlignRight:
		return mdast.AlignRight
	case east.AlignCenter:
		return mdast.AlignCenter
	default:
		return mdast.AlignNone
	}
}

// lines concatenates the source lines of a block node.
func (m *mapper) lines(block ast.Node) []byte {
	var out []byte
	lines := block.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		out = append(out, seg.Value(m.source)...)
	}
	return out
}

// plainText collects the text of an inline subtree, e.g. image alt text.
func (m *mapper) plainText(gmNode ast.Node) []byte {
	var out []byte
	for child := gmNode.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			out = append(out, c.Segment.Value(m.source)...)
		case *ast.String:
			out = append(out, c.Value...)
		default:
			out = append(out, m.plainText(c)...)
		}
	}
	return out
}

// attribute returns a node attribute as bytes, or nil.
func attribute(gmNode ast.Node, name string) []byte {
	value, ok := gmNode.AttributeString(name)
	if !ok {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return clone(v)
	case string:
		return []byte(v)
	default:
		return nil
	}
}

// clone copies b so the tree never aliases the source buffer.
func clone(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return append([]byte(nil), b...)
}
