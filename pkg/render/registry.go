package render

import (
	"slices"
	"sync"

	"github.com/yaklabco/gomdrender/pkg/hbuf"
	"github.com/yaklabco/gomdrender/pkg/mdast"
	"github.com/yaklabco/gomdrender/pkg/meta"
)

// Renderer holds the private state of one backend for one render.
type Renderer interface {
	// Render writes the whole tree into ob, recording metadata in mq.
	Render(ob *hbuf.Buffer, tree *mdast.Tree, mq *meta.Queue) error
}

// Factory creates a Renderer for a single render call.
type Factory func(opts Options) (Renderer, error)

// Registry maps output types to backend factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[OutputType]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[OutputType]Factory)}
}

// DefaultRegistry is the registry used by Document and Redline.
//
//nolint:gochecknoglobals // Backends register here from init functions.
var DefaultRegistry = NewRegistry()

// Register adds a factory. A factory already registered for the type is
// replaced.
func (r *Registry) Register(outputType OutputType, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[outputType] = factory
}

// Lookup returns the factory for an output type.
func (r *Registry) Lookup(outputType OutputType) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[outputType]
	return factory, ok
}

// Types returns the registered output types in sorted order.
func (r *Registry) Types() []OutputType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]OutputType, 0, len(r.factories))
	for outputType := range r.factories {
		types = append(types, outputType)
	}
	slices.Sort(types)
	return types
}

// Register adds a factory to DefaultRegistry.
func Register(outputType OutputType, factory Factory) {
	DefaultRegistry.Register(outputType, factory)
}
