package domain

import (
	"context"
	"log/slog"

	m "modtest.dev/pkg/modtest/internal/model"
)

// ResolveOptions tunes the visibility computation.
type ResolveOptions struct {
	// IncludeTestModules lets paths inside test-only modules be exported.
	IncludeTestModules bool
}

// Resolver computes the externally visible paths of each root and the
// collisions between them.
type Resolver interface {
	Resolve(ctx context.Context, graphs m.Graphs) (*ExportTable, error)
}

type resolver struct {
	opts ResolveOptions
}

// NewResolver constructs a Resolver with the given options.
func NewResolver(opts ResolveOptions) Resolver {
	return &resolver{opts: opts}
}

// Resolve never fails because of ambiguity: collisions are returned as data
// on the table. The only error is context cancellation.
func (r *resolver) Resolve(ctx context.Context, graphs m.Graphs) (*ExportTable, error) {
	table := &ExportTable{
		entries:    map[m.Root]map[string]m.ExportEntry{},
		collisions: map[string]m.Collision{},
		hasLibrary: graphs.Library != nil,
	}

	for _, root := range m.Roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		graph := graphs.Get(root)
		if graph == nil {
			continue
		}

		table.entries[root] = r.resolveRoot(graph)
	}

	for key, binEntry := range table.entries[m.RootBinary] {
		libEntry, ok := table.entries[m.RootLibrary][key]
		if !ok || !binEntry.Visible || !libEntry.Visible {
			continue
		}

		table.collisions[key] = m.Collision{
			Path:  binEntry.Path,
			Roots: []m.Root{m.RootBinary, m.RootLibrary},
		}

		slog.Debug("Export collision", "path", key)
	}

	slog.Debug("Resolved exports",
		"binary", len(table.entries[m.RootBinary]),
		"library", len(table.entries[m.RootLibrary]),
		"collisions", len(table.collisions))

	return table, nil
}

// resolveRoot walks the tree once, carrying whether every ancestor so far
// was public and outside test-only modules.
func (r *resolver) resolveRoot(graph *m.Graph) map[string]m.ExportEntry {
	entries := make(map[string]m.ExportEntry, graph.Len())

	var visit func(id m.NodeID, prefix m.Path, exported bool)

	visit = func(id m.NodeID, prefix m.Path, exported bool) {
		for _, child := range graph.SortedChildren(id) {
			path := append(append(m.Path{}, prefix...), child.Name)

			visible := exported && child.Visibility == m.Public
			if child.TestOnly && !r.opts.IncludeTestModules {
				visible = false
			}

			entries[path.String()] = m.ExportEntry{
				Path:    path,
				Root:    graph.Root,
				Kind:    child.Kind,
				Visible: visible,
			}

			visit(child.ID, path, visible)
		}
	}

	visit(m.RootNodeID, m.Path{}, true)

	return entries
}
