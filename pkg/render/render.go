// Package render turns document trees into output formats.
//
// Every backend instantiates the same walk: a node's children are
// rendered into a scratch buffer, then the backend's handler for the
// node's kind consumes that buffer, wrapped in insert/delete markers
// when the node carries a change annotation. Backends register a
// Factory per OutputType; Document and Redline look one up, create a
// Renderer, run it once and hand the bytes to the caller.
package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/gomdrender/internal/logging"
	"github.com/yaklabco/gomdrender/pkg/hbuf"
	"github.com/yaklabco/gomdrender/pkg/mdast"
	"github.com/yaklabco/gomdrender/pkg/meta"
)

// outputUnit is the growth unit of the document buffer.
const outputUnit = 4096

var (
	// ErrUnknownType is returned for output types with no registered backend.
	ErrUnknownType = errors.New("unknown output type")

	// ErrNilTree is returned when no document tree is given.
	ErrNilTree = errors.New("nil document tree")

	// ErrNilDiffer is returned by Redline when no differ is given.
	ErrNilDiffer = errors.New("nil differ")
)

// Differ produces a change-annotated tree from two revisions.
type Differ interface {
	Diff(ctx context.Context, oldTree, newTree *mdast.Tree) (*mdast.Tree, error)
}

// DifferFunc adapts a function to the Differ interface.
type DifferFunc func(ctx context.Context, oldTree, newTree *mdast.Tree) (*mdast.Tree, error)

// Diff implements Differ.
func (f DifferFunc) Diff(ctx context.Context, oldTree, newTree *mdast.Tree) (*mdast.Tree, error) {
	return f(ctx, oldTree, newTree)
}

// Document renders tree with the backend selected by opts.Type.
// Metadata found in the tree is appended to mq, which may be nil.
// On failure no output is returned.
func Document(ctx context.Context, opts Options, tree *mdast.Tree, mq *meta.Queue) ([]byte, error) {
	return DefaultRegistry.Document(ctx, opts, tree, mq)
}

// Redline renders the differences between two revisions.
func Redline(ctx context.Context, opts Options, oldTree, newTree *mdast.Tree, differ Differ) ([]byte, error) {
	return DefaultRegistry.Redline(ctx, opts, oldTree, newTree, differ)
}

// Document renders tree using the backends of r. See the package-level
// Document.
func (r *Registry) Document(ctx context.Context, opts Options, tree *mdast.Tree, mq *meta.Queue) ([]byte, error) {
	logger := logging.FromContext(ctx)

	if tree == nil {
		return nil, ErrNilTree
	}
	if opts.Type == "" {
		opts.Type = TypeHTML
	}

	factory, ok := r.Lookup(opts.Type)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownType, opts.Type)
	}

	renderer, err := factory(opts)
	if err != nil {
		return nil, fmt.Errorf("create %s renderer: %w", opts.Type, err)
	}

	if mq == nil {
		mq = meta.NewQueue()
	}

	logger.Debug("rendering document",
		logging.FieldType, opts.Type,
		logging.FieldNodes, tree.Len(),
		logging.FieldStandalone, opts.Flags.Has(FlagStandalone))

	ob := hbuf.New(outputUnit, hbuf.WithLimit(opts.MaxBytes))
	if err := renderer.Render(ob, tree, mq); err != nil {
		return nil, fmt.Errorf("render %s: %w", opts.Type, err)
	}

	logger.Debug("rendered document",
		logging.FieldType, opts.Type,
		logging.FieldBytes, ob.Len(),
		logging.FieldMetaCount, mq.Len())

	return ob.Bytes(), nil
}

// Redline merges adjacent text in both trees, diffs them with differ and
// renders the annotated result.
func (r *Registry) Redline(
	ctx context.Context,
	opts Options,
	oldTree, newTree *mdast.Tree,
	differ Differ,
) ([]byte, error) {
	if oldTree == nil || newTree == nil {
		return nil, ErrNilTree
	}
	if differ == nil {
		return nil, ErrNilDiffer
	}

	mdast.MergeAdjacentText(oldTree, oldTree.Root())
	mdast.MergeAdjacentText(newTree, newTree.Root())

	diffed, err := differ.Diff(ctx, oldTree, newTree)
	if err != nil {
		return nil, fmt.Errorf("diff: %w", err)
	}

	return r.Document(ctx, opts, diffed, nil)
}
