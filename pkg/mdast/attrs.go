package mdast

// Payload carries the fields of one node kind. The set of implementations
// is closed: each kind has exactly one payload type in this package, and
// renderers dispatch with a type switch over them.
type Payload interface {
	Kind() Kind
	payload()
}

// ListFlags describe lists, list items and definition lists.
type ListFlags uint8

// List flags.
const (
	// ListOrdered marks an <ol>-style list.
	ListOrdered ListFlags = 1 << iota
	// ListBlock marks a list whose items hold block content.
	ListBlock
	// ListUnordered marks a <ul>-style list.
	ListUnordered
	// ListDef marks definition-list items.
	ListDef
	// ListChecked marks a checked task item.
	ListChecked
	// ListUnchecked marks an unchecked task item.
	ListUnchecked
)

// Has reports whether all bits of mask are set.
func (f ListFlags) Has(mask ListFlags) bool {
	return f&mask == mask
}

// Align is the alignment of a table column.
type Align uint8

// Table column alignments.
const (
	AlignNone Align = iota
	AlignLeft
	AlignRight
	AlignCenter
)

// AutolinkType distinguishes URL autolinks from bare e-mail addresses.
type AutolinkType uint8

// Autolink types.
const (
	AutolinkNormal AutolinkType = iota
	AutolinkEmail
)

// Root is the document root.
type Root struct{}

// BlockCode is a fenced or indented code block.
type BlockCode struct {
	Text []byte
	Lang []byte
}

// BlockQuote is a block quotation.
type BlockQuote struct{}

// Definition is a definition list.
type Definition struct {
	Flags ListFlags
}

// DefinitionTitle is a term in a definition list.
type DefinitionTitle struct{}

// DefinitionData is the description of a term.
type DefinitionData struct{}

// Header is a section heading. Level is zero-based: a top-level heading
// has level 0 and renderers add their header offset to it.
type Header struct {
	Level int
}

// HRule is a thematic break.
type HRule struct{}

// List is an ordered or unordered list.
type List struct {
	Flags ListFlags
	Start int
}

// ListItem is one entry of a List or Definition.
type ListItem struct {
	Flags ListFlags
	Num   int
}

// Paragraph is a run of inline content.
type Paragraph struct {
	// Lines is the number of input lines.
	Lines int
	// BlankAfter is true if the paragraph ends on a blank line.
	BlankAfter bool
}

// TableBlock is a table.
type TableBlock struct {
	Columns int
}

// TableHeader is the header section of a table.
type TableHeader struct {
	Columns int
	Align   []Align
}

// TableBody is the body section of a table.
type TableBody struct{}

// TableRow is a table row.
type TableRow struct{}

// TableCell is a table cell.
type TableCell struct {
	Align   Align
	Header  bool
	Col     int
	Columns int
}

// FootnotesBlock holds all footnote definitions.
type FootnotesBlock struct{}

// FootnoteDef is a footnote definition.
type FootnoteDef struct {
	Num int
	Key []byte
}

// BlockHTML is a raw HTML block.
type BlockHTML struct {
	Text []byte
}

// LinkAuto is an autolink.
type LinkAuto struct {
	Link []byte
	Type AutolinkType
}

// CodeSpan is inline code.
type CodeSpan struct {
	Text []byte
}

// DoubleEmphasis is strong emphasis.
type DoubleEmphasis struct{}

// Emphasis is regular emphasis.
type Emphasis struct{}

// Highlight is marked text.
type Highlight struct{}

// Image is an inline image.
type Image struct {
	Link       []byte
	Title      []byte
	Dims       []byte // raw "WxH"
	Alt        []byte
	AttrWidth  []byte
	AttrHeight []byte
	AttrClass  []byte
	AttrID     []byte
}

// Linebreak is a hard line break.
type Linebreak struct{}

// Link is an inline link.
type Link struct {
	Link      []byte
	Title     []byte
	AttrClass []byte
	AttrID    []byte
}

// TripleEmphasis is strong and regular emphasis combined.
type TripleEmphasis struct{}

// Strikethrough is struck-out text.
type Strikethrough struct{}

// Superscript is raised text.
type Superscript struct{}

// FootnoteRef is a reference to a footnote definition.
type FootnoteRef struct {
	Num int
	Key []byte
	Def []byte
}

// Math is an equation, opaque to the renderer.
type Math struct {
	Text  []byte
	Block bool
}

// RawHTML is inline raw HTML.
type RawHTML struct {
	Text []byte
}

// Entity is a named or numeric character reference, e.g. "&copy;".
type Entity struct {
	Text []byte
}

// NormalText is a plain text run.
type NormalText struct {
	Text []byte
}

// DocHeader precedes the body; its children are Meta nodes.
type DocHeader struct{}

// Meta is one metadata key. Its rendered children form the value.
type Meta struct {
	Key []byte
}

// DocFooter follows the body.
type DocFooter struct{}

func (Root) Kind() Kind            { return KindRoot }
func (BlockCode) Kind() Kind       { return KindBlockCode }
func (BlockQuote) Kind() Kind      { return KindBlockQuote }
func (Definition) Kind() Kind      { return KindDefinition }
func (DefinitionTitle) Kind() Kind { return KindDefinitionTitle }
func (DefinitionData) Kind() Kind  { return KindDefinitionData }
func (Header) Kind() Kind          { return KindHeader }
func (HRule) Kind() Kind           { return KindHRule }
func (List) Kind() Kind            { return KindList }
func (ListItem) Kind() Kind        { return KindListItem }
func (Paragraph) Kind() Kind       { return KindParagraph }
func (TableBlock) Kind() Kind      { return KindTableBlock }
func (TableHeader) Kind() Kind     { return KindTableHeader }
func (TableBody) Kind() Kind       { return KindTableBody }
func (TableRow) Kind() Kind        { return KindTableRow }
func (TableCell) Kind() Kind       { return KindTableCell }
func (FootnotesBlock) Kind() Kind  { return KindFootnotesBlock }
func (FootnoteDef) Kind() Kind     { return KindFootnoteDef }
func (BlockHTML) Kind() Kind       { return KindBlockHTML }
func (LinkAuto) Kind() Kind        { return KindLinkAuto }
func (CodeSpan) Kind() Kind        { return KindCodeSpan }
func (DoubleEmphasis) Kind() Kind  { return KindDoubleEmphasis }
func (Emphasis) Kind() Kind        { return KindEmphasis }
func (Highlight) Kind() Kind       { return KindHighlight }
func (Image) Kind() Kind           { return KindImage }
func (Linebreak) Kind() Kind       { return KindLinebreak }
func (Link) Kind() Kind            { return KindLink }
func (TripleEmphasis) Kind() Kind  { return KindTripleEmphasis }
func (Strikethrough) Kind() Kind   { return KindStrikethrough }
func (Superscript) Kind() Kind     { return KindSuperscript }
func (FootnoteRef) Kind() Kind     { return KindFootnoteRef }
func (Math) Kind() Kind            { return KindMath }
func (RawHTML) Kind() Kind         { return KindRawHTML }
func (Entity) Kind() Kind          { return KindEntity }
func (NormalText) Kind() Kind      { return KindNormalText }
func (DocHeader) Kind() Kind       { return KindDocHeader }
func (Meta) Kind() Kind            { return KindMeta }
func (DocFooter) Kind() Kind       { return KindDocFooter }

func (Root) payload()            {}
func (BlockCode) payload()       {}
func (BlockQuote) payload()      {}
func (Definition) payload()      {}
func (DefinitionTitle) payload() {}
func (DefinitionData) payload()  {}
func (Header) payload()          {}
func (HRule) payload()           {}
func (List) payload()            {}
func (ListItem) payload()        {}
func (Paragraph) payload()       {}
func (TableBlock) payload()      {}
func (TableHeader) payload()     {}
func (TableBody) payload()       {}
func (TableRow) payload()        {}
func (TableCell) payload()       {}
func (FootnotesBlock) payload()  {}
func (FootnoteDef) payload()     {}
func (BlockHTML) payload()       {}
func (LinkAuto) payload()        {}
func (CodeSpan) payload()        {}
func (DoubleEmphasis) payload()  {}
func (Emphasis) payload()        {}
func (Highlight) payload()       {}
func (Image) payload()           {}
func (Linebreak) payload()       {}
func (Link) payload()            {}
func (TripleEmphasis) payload()  {}
func (Strikethrough) payload()   {}
func (Superscript) payload()     {}
func (FootnoteRef) payload()     {}
func (Math) payload()            {}
func (RawHTML) payload()         {}
func (Entity) payload()          {}
func (NormalText) payload()      {}
func (DocHeader) payload()       {}
func (Meta) payload()            {}
func (DocFooter) payload()       {}
