// Package mdast is the document tree shared by the Markdown front end and
// the renderers. A Tree owns its nodes in one slice; nodes refer to each
// other by NodeID and carry a closed set of payload types.
package mdast

import "strconv"

// Kind classifies a document node. It is derived from the node's payload.
type Kind uint16

// Node kinds, in the order the parser produces them.
const (
	KindRoot Kind = iota

	// Block-level nodes.
	KindBlockCode
	KindBlockQuote
	KindDefinition
	KindDefinitionTitle
	KindDefinitionData
	KindHeader
	KindHRule
	KindList
	KindListItem
	KindParagraph
	KindTableBlock
	KindTableHeader
	KindTableBody
	KindTableRow
	KindTableCell
	KindFootnotesBlock
	KindFootnoteDef
	KindBlockHTML

	// Inline-level nodes.
	KindLinkAuto
	KindCodeSpan
	KindDoubleEmphasis
	KindEmphasis
	KindHighlight
	KindImage
	KindLinebreak
	KindLink
	KindTripleEmphasis
	KindStrikethrough
	KindSuperscript
	KindFootnoteRef
	KindMath
	KindRawHTML
	KindEntity
	KindNormalText

	// Document framing.
	KindDocHeader
	KindMeta
	KindDocFooter

	kindCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [kindCount]string{
	KindRoot:            "ROOT",
	KindBlockCode:       "BLOCKCODE",
	KindBlockQuote:      "BLOCKQUOTE",
	KindDefinition:      "DEFINITION",
	KindDefinitionTitle: "DEFINITION_TITLE",
	KindDefinitionData:  "DEFINITION_DATA",
	KindHeader:          "HEADER",
	KindHRule:           "HRULE",
	KindList:            "LIST",
	KindListItem:        "LISTITEM",
	KindParagraph:       "PARAGRAPH",
	KindTableBlock:      "TABLE_BLOCK",
	KindTableHeader:     "TABLE_HEADER",
	KindTableBody:       "TABLE_BODY",
	KindTableRow:        "TABLE_ROW",
	KindTableCell:       "TABLE_CELL",
	KindFootnotesBlock:  "FOOTNOTES_BLOCK",
	KindFootnoteDef:     "FOOTNOTE_DEF",
	KindBlockHTML:       "BLOCKHTML",
	KindLinkAuto:        "LINK_AUTO",
	KindCodeSpan:        "CODESPAN",
	KindDoubleEmphasis:  "DOUBLE_EMPHASIS",
	KindEmphasis:        "EMPHASIS",
	KindHighlight:       "HIGHLIGHT",
	KindImage:           "IMAGE",
	KindLinebreak:       "LINEBREAK",
	KindLink:            "LINK",
	KindTripleEmphasis:  "TRIPLE_EMPHASIS",
	KindStrikethrough:   "STRIKETHROUGH",
	KindSuperscript:     "SUPERSCRIPT",
	KindFootnoteRef:     "FOOTNOTE_REF",
	KindMath:            "MATH_BLOCK",
	KindRawHTML:         "RAW_HTML",
	KindEntity:          "ENTITY",
	KindNormalText:      "NORMAL_TEXT",
	KindDocHeader:       "DOC_HEADER",
	KindMeta:            "META",
	KindDocFooter:       "DOC_FOOTER",
}

// String returns the upper-case name of the kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsBlock reports whether nodes of this kind are block-level.
func (k Kind) IsBlock() bool {
	return k <= KindBlockHTML
}

// IsInline reports whether nodes of this kind are inline-level.
func (k Kind) IsInline() bool {
	return k >= KindLinkAuto && k <= KindNormalText
}

// Change is the change annotation attached to a node by the diff step.
type Change uint8

// Change annotations.
const (
	ChangeNone Change = iota
	ChangeInsert
	ChangeDelete
)

// String returns a lower-case name for the change.
func (c Change) String() string {
	switch c {
	case ChangeNone:
		return "none"
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	default:
		return "Change(" + strconv.Itoa(int(c)) + ")"
	}
}

// NodeID indexes a node within its Tree.
type NodeID int

// NoNode is the parent of the root and the result of failed lookups.
const NoNode NodeID = -1

// Node is a single element of the document tree. Nodes are owned by their
// Tree and referenced by NodeID; Parent is a non-owning back-reference.
type Node struct {
	// ID is this node's index in the tree.
	ID NodeID

	// Change is the insert/delete annotation, if any.
	Change Change

	// Payload holds the kind-specific fields.
	Payload Payload

	parent   NodeID
	children []NodeID
}

// Kind returns the kind of the node's payload.
func (n *Node) Kind() Kind {
	return n.Payload.Kind()
}

// Parent returns the parent's ID, or NoNode for the root.
func (n *Node) Parent() NodeID {
	return n.parent
}

// Children returns the IDs of the direct children in document order.
// The returned slice must not be modified.
func (n *Node) Children() []NodeID {
	return n.children
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return len(n.children) > 0
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	return len(n.children)
}
