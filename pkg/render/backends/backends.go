// Package backends registers every built-in output backend. Importing it
// for its side effect makes render.Document serve all output types.
package backends

import (
	"github.com/yaklabco/gomdrender/pkg/render"
	"github.com/yaklabco/gomdrender/pkg/render/html"
	"github.com/yaklabco/gomdrender/pkg/render/latex"
	"github.com/yaklabco/gomdrender/pkg/render/term"
	"github.com/yaklabco/gomdrender/pkg/render/tree"
)

//nolint:gochecknoinits // Registration must happen before any render.
func init() {
	RegisterAll(render.DefaultRegistry)
}

// RegisterAll adds the html, latex, term and tree backends to registry.
func RegisterAll(registry *render.Registry) {
	registry.Register(render.TypeHTML, html.Factory)
	registry.Register(render.TypeLaTeX, latex.Factory)
	registry.Register(render.TypeTerm, term.Factory)
	registry.Register(render.TypeTree, tree.Factory)
}
