package domain

import (
	"sort"

	m "modtest.dev/pkg/modtest/internal/model"
)

// ExportTable answers visibility queries for both roots. It is never
// mutated after Resolve returns, so concurrent lookups need no locking.
type ExportTable struct {
	entries    map[m.Root]map[string]m.ExportEntry
	collisions map[string]m.Collision
	hasLibrary bool
}

// Lookup reports whether path is declared under root and, if so, whether it
// is exported. A leading crate segment is ignored, as it is when building.
func (t *ExportTable) Lookup(root m.Root, path m.Path) m.LookupResult {
	entry, ok := t.entries[root][exportKey(path)]
	if !ok {
		return m.NotFound
	}

	if entry.Visible {
		return m.PublicPath
	}

	return m.PrivatePath
}

// IsCollision reports whether both roots export path.
func (t *ExportTable) IsCollision(path m.Path) bool {
	_, ok := t.collisions[exportKey(path)]
	return ok
}

func exportKey(path m.Path) string {
	if len(path) > 0 && path[0] == crateSegment {
		path = path[1:]
	}

	return path.String()
}

// Collisions returns every collision ordered by path.
func (t *ExportTable) Collisions() []m.Collision {
	collisions := make([]m.Collision, 0, len(t.collisions))
	for _, collision := range t.collisions {
		collisions = append(collisions, collision)
	}

	sort.Slice(collisions, func(i, j int) bool {
		return collisions[i].Path.String() < collisions[j].Path.String()
	})

	return collisions
}

// Entries returns the declared paths of a root ordered by path.
func (t *ExportTable) Entries(root m.Root) []m.ExportEntry {
	entries := make([]m.ExportEntry, 0, len(t.entries[root]))
	for _, entry := range t.entries[root] {
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path.String() < entries[j].Path.String()
	})

	return entries
}

// Visible returns the exported paths of a root ordered by path.
func (t *ExportTable) Visible(root m.Root) []m.Path {
	var paths []m.Path

	for _, entry := range t.Entries(root) {
		if entry.Visible {
			paths = append(paths, entry.Path)
		}
	}

	return paths
}

// HasLibrary reports whether a library root was declared.
func (t *ExportTable) HasLibrary() bool {
	return t.hasLibrary
}
