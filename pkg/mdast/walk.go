package mdast

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(t *Tree, id NodeID) error

// Walk performs a pre-order traversal of the subtree rooted at id.
// If walkFunc returns a non-nil error, the walk stops and returns it.
func Walk(t *Tree, id NodeID, walkFunc WalkFunc) error {
	if t == nil || !t.Valid(id) {
		return nil
	}

	if err := walkFunc(t, id); err != nil {
		return err
	}

	for _, child := range t.Children(id) {
		if err := Walk(t, child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// FindAll returns all nodes under id matching the predicate, in document order.
func FindAll(t *Tree, id NodeID, predicate func(n *Node) bool) []NodeID {
	var result []NodeID

	//nolint:errcheck,revive // the callback never fails
	Walk(t, id, func(t *Tree, id NodeID) error {
		if predicate(t.Node(id)) {
			result = append(result, id)
		}
		return nil
	})

	return result
}

// FindByKind returns all nodes of the specified kind under id.
func FindByKind(t *Tree, id NodeID, kind Kind) []NodeID {
	return FindAll(t, id, func(n *Node) bool {
		return n.Kind() == kind
	})
}

// MergeAdjacentText joins runs of sibling NormalText nodes into the first
// node of each run, throughout the subtree at id. Merged nodes are detached
// from the tree. Runs are only merged when their change annotations agree.
func MergeAdjacentText(t *Tree, id NodeID) {
	n := t.Node(id)
	if n == nil {
		return
	}

	kept := n.children[:0:0]
	for _, child := range n.children {
		cn := &t.nodes[child]
		text, isText := cn.Payload.(NormalText)
		if !isText {
			MergeAdjacentText(t, child)
			kept = append(kept, child)
			continue
		}

		if len(kept) > 0 {
			prev := &t.nodes[kept[len(kept)-1]]
			if prevText, ok := prev.Payload.(NormalText); ok && prev.Change == cn.Change {
				merged := make([]byte, 0, len(prevText.Text)+len(text.Text))
				merged = append(merged, prevText.Text...)
				merged = append(merged, text.Text...)
				prev.Payload = NormalText{Text: merged}
				cn.parent = NoNode
				continue
			}
		}
		kept = append(kept, child)
	}
	t.nodes[id].children = kept
}
