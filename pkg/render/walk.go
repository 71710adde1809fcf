package render

import (
	"fmt"

	"github.com/yaklabco/gomdrender/pkg/hbuf"
	"github.com/yaklabco/gomdrender/pkg/mdast"
)

// scratchUnit is the growth unit of per-node scratch buffers.
const scratchUnit = 64

// Markers are the strings a backend wraps around inserted and deleted
// nodes. Empty strings emit nothing.
type Markers struct {
	InsertOpen  string
	InsertClose string
	DeleteOpen  string
	DeleteClose string
}

func (m Markers) open(c mdast.Change) string {
	switch c {
	case mdast.ChangeInsert:
		return m.InsertOpen
	case mdast.ChangeDelete:
		return m.DeleteOpen
	default:
		return ""
	}
}

func (m Markers) close(c mdast.Change) string {
	switch c {
	case mdast.ChangeInsert:
		return m.InsertClose
	case mdast.ChangeDelete:
		return m.DeleteClose
	default:
		return ""
	}
}

// Handler is the per-backend half of the walk.
type Handler interface {
	// Enter is called for every node before its children are rendered.
	Enter(tree *mdast.Tree, id mdast.NodeID)

	// Markers returns the change markers of this backend.
	Markers() Markers

	// Node renders node id into ob. content holds the node's rendered
	// children and is read-only.
	Node(ob, content *hbuf.Buffer, tree *mdast.Tree, id mdast.NodeID) error
}

// SelfWrapped reports whether nodes of kind k style their own change
// annotation. The walker never emits markers around them.
func SelfWrapped(k mdast.Kind) bool {
	return k == mdast.KindMeta || k == mdast.KindFootnoteDef
}

// Walk renders the subtree at id into ob. Children are rendered first
// into a scratch buffer, then the node's handler consumes them,
// surrounded by change markers unless the node is self-wrapped.
// The first error aborts the walk; ob may hold partial output, which
// callers must discard.
func Walk(ob *hbuf.Buffer, tree *mdast.Tree, id mdast.NodeID, handler Handler) error {
	node := tree.Node(id)
	if node == nil {
		return nil
	}
	kind := node.Kind()
	change := node.Change

	handler.Enter(tree, id)

	tmp := hbuf.New(scratchUnit, hbuf.WithLimit(ob.Limit()))
	for _, child := range node.Children() {
		if err := Walk(tmp, tree, child, handler); err != nil {
			return err
		}
	}

	var markers Markers
	if !SelfWrapped(kind) {
		markers = handler.Markers()
	}

	if err := ob.PutString(markers.open(change)); err != nil {
		return fmt.Errorf("render %s: %w", kind, err)
	}
	if err := handler.Node(ob, hbuf.View(tmp.Bytes()), tree, id); err != nil {
		return fmt.Errorf("render %s: %w", kind, err)
	}
	if err := ob.PutString(markers.close(change)); err != nil {
		return fmt.Errorf("render %s: %w", kind, err)
	}

	return nil
}
