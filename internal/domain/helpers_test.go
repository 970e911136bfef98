package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	m "modtest.dev/pkg/modtest/internal/model"
)

func pubMod(root m.Root, path string) m.Fact {
	return m.Fact{Path: m.ParsePath(path), Root: root, Kind: m.KindModule, Visibility: m.Public}
}

func privMod(root m.Root, path string) m.Fact {
	return m.Fact{Path: m.ParsePath(path), Root: root, Kind: m.KindModule}
}

func pubItem(root m.Root, path string) m.Fact {
	return m.Fact{Path: m.ParsePath(path), Root: root, Kind: m.KindItem, Visibility: m.Public}
}

func privItem(root m.Root, path string) m.Fact {
	return m.Fact{Path: m.ParsePath(path), Root: root, Kind: m.KindItem}
}

func testItem(root m.Root, path string, style m.TestStyle, run string) m.Fact {
	return m.Fact{Path: m.ParsePath(path), Root: root, Kind: m.KindItem, IsTest: true, TestStyle: style, Run: run}
}

func testMod(root m.Root, path string) m.Fact {
	return m.Fact{Path: m.ParsePath(path), Root: root, Kind: m.KindModule, IsTest: true}
}

func buildGraphs(t *testing.T, facts ...m.Fact) m.Graphs {
	t.Helper()

	graphs, err := NewBuilder().Build(context.Background(), facts)
	require.NoError(t, err)

	return graphs
}

func resolveFacts(t *testing.T, opts ResolveOptions, facts ...m.Fact) *ExportTable {
	t.Helper()

	table, err := NewResolver(opts).Resolve(context.Background(), buildGraphs(t, facts...))
	require.NoError(t, err)

	return table
}

// scriptBodies hands out bodies keyed by the run script, so tests can plug
// arbitrary Go behaviour into discovered items.
type scriptBodies map[string]m.TestBody

func (s scriptBodies) Body(_ m.Root, _ m.Path, script string) m.TestBody {
	return s[script]
}
