package mdast

// Tree owns every node of one document by value. Node 0 is always the root.
type Tree struct {
	nodes []Node
}

// NewTree creates a tree holding only a Root node.
func NewTree() *Tree {
	return &Tree{
		nodes: []Node{{ID: 0, Payload: Root{}, parent: NoNode}},
	}
}

// Root returns the root's ID.
func (t *Tree) Root() NodeID {
	return 0
}

// Len returns the number of nodes ever created in the tree, including
// nodes detached by MergeAdjacentText.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Valid reports whether id names a node of t.
func (t *Tree) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Node returns the node with the given ID, or nil if id is invalid.
// The pointer is invalidated by the next Append.
func (t *Tree) Node(id NodeID) *Node {
	if !t.Valid(id) {
		return nil
	}
	return &t.nodes[id]
}

// Kind returns the kind of the node, or KindRoot for an invalid ID.
func (t *Tree) Kind(id NodeID) Kind {
	if n := t.Node(id); n != nil {
		return n.Kind()
	}
	return KindRoot
}

// Payload returns the payload of id, or nil if id is invalid.
func (t *Tree) Payload(id NodeID) Payload {
	if n := t.Node(id); n != nil {
		return n.Payload
	}
	return nil
}

// Parent returns the parent of id, or NoNode.
func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.Node(id); n != nil {
		return n.parent
	}
	return NoNode
}

// Children returns the children of id in document order.
func (t *Tree) Children(id NodeID) []NodeID {
	if n := t.Node(id); n != nil {
		return n.children
	}
	return nil
}

// Append adds a new node with payload p as the last child of parent and
// returns its ID. It returns NoNode if parent does not exist or p is nil.
func (t *Tree) Append(parent NodeID, p Payload) NodeID {
	if !t.Valid(parent) || p == nil {
		return NoNode
	}
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{ID: id, Payload: p, parent: parent})
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id
}

// AppendText is shorthand for appending a NormalText child.
func (t *Tree) AppendText(parent NodeID, text string) NodeID {
	return t.Append(parent, NormalText{Text: []byte(text)})
}

// SetPayload replaces the payload of id. It is a no-op for invalid IDs.
func (t *Tree) SetPayload(id NodeID, p Payload) {
	if n := t.Node(id); n != nil && p != nil {
		n.Payload = p
	}
}

// SetChange sets the change annotation of id.
func (t *Tree) SetChange(id NodeID, c Change) {
	if n := t.Node(id); n != nil {
		n.Change = c
	}
}

// ParentKind returns the kind of id's parent and whether it has one.
func (t *Tree) ParentKind(id NodeID) (Kind, bool) {
	parent := t.Parent(id)
	if parent == NoNode {
		return KindRoot, false
	}
	return t.Kind(parent), true
}

// Depth returns the number of ancestors of id.
func (t *Tree) Depth(id NodeID) int {
	depth := 0
	for p := t.Parent(id); p != NoNode; p = t.Parent(p) {
		depth++
	}
	return depth
}
