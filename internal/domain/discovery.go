package domain

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"modtest.dev/pkg/modtest/internal/adapter"
	m "modtest.dev/pkg/modtest/internal/model"
)

// Discoverer walks the module graphs for test-tagged items and produces
// the execution plan.
type Discoverer interface {
	Discover(ctx context.Context, graphs m.Graphs) ([]m.TestItem, error)
}

type discoverer struct {
	bodies adapter.TestBodyAdapter
}

// NewDiscoverer constructs a Discoverer that obtains bodies from the given adapter.
func NewDiscoverer(bodies adapter.TestBodyAdapter) Discoverer {
	return &discoverer{bodies: bodies}
}

// Discover returns items in pre-order, Binary root first. Children are
// visited by name, so the plan depends only on the fact set.
func (d *discoverer) Discover(ctx context.Context, graphs m.Graphs) ([]m.TestItem, error) {
	var items []m.TestItem

	for _, root := range m.Roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		graph := graphs.Get(root)
		if graph == nil {
			continue
		}

		graph.Walk(func(node *m.ModuleNode, path m.Path) {
			if node.Kind != m.KindItem || node.Test == nil {
				return
			}

			items = append(items, m.TestItem{
				Index: len(items),
				Path:  path,
				Root:  root,
				Style: testStyle(graph, node),
				Body:  d.bodies.Body(root, path, node.Test.Run),
			})
		})
	}

	slog.Debug("Discovered tests", "count", len(items))

	return items, nil
}

// testStyle settles the style of a test declared without one: grouped when
// any enclosing module is test-only, inline otherwise.
func testStyle(graph *m.Graph, node *m.ModuleNode) m.TestStyle {
	if node.Test.Style != m.StyleUnset {
		return node.Test.Style
	}

	for _, ancestor := range graph.Ancestors(node.Parent) {
		if ancestor.TestOnly {
			return m.StyleGrouped
		}
	}

	return m.StyleInline
}

// FilterTests drops items whose "root:path" or path matches any of the
// exclude patterns.
func FilterTests(items []m.TestItem, exclude []string) ([]m.TestItem, error) {
	if len(exclude) == 0 {
		return items, nil
	}

	patterns := make([]*regexp.Regexp, 0, len(exclude))

	for _, raw := range exclude {
		pattern, err := regexp.Compile(raw)
		if err != nil {
			slog.Error("Invalid exclude pattern", "pattern", raw, "error", err)
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", raw, err)
		}

		patterns = append(patterns, pattern)
	}

	kept := make([]m.TestItem, 0, len(items))

	for _, item := range items {
		if excluded(item, patterns) {
			slog.Debug("Excluded test", "root", item.Root, "path", item.Path.String())
			continue
		}

		kept = append(kept, item)
	}

	return kept, nil
}

func excluded(item m.TestItem, patterns []*regexp.Regexp) bool {
	path := item.Path.String()
	qualified := item.Root.String() + ":" + path

	for _, pattern := range patterns {
		if pattern.MatchString(path) || pattern.MatchString(qualified) {
			return true
		}
	}

	return false
}

// ShardTests keeps the items whose plan position modulo totalShardCount
// equals shardIndex. A shard count of one or less disables sharding.
func ShardTests(items []m.TestItem, shardIndex, totalShardCount int) []m.TestItem {
	if totalShardCount <= 1 {
		return items
	}

	var shard []m.TestItem

	for i, item := range items {
		if i%totalShardCount == shardIndex {
			shard = append(shard, item)
		}
	}

	return shard
}
