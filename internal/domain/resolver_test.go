package domain

import (
	"context"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "modtest.dev/pkg/modtest/internal/model"
)

func TestResolver_NoPublicFactsExportNothing(t *testing.T) {
	table := resolveFacts(t, ResolveOptions{},
		privMod(m.RootBinary, "a"),
		privItem(m.RootBinary, "a.b"),
		privMod(m.RootLibrary, "c"),
		privItem(m.RootLibrary, "c.d.e"),
	)

	assert.Empty(t, table.Visible(m.RootBinary))
	assert.Empty(t, table.Visible(m.RootLibrary))
	assert.Empty(t, table.Collisions())

	assert.Equal(t, m.PrivatePath, table.Lookup(m.RootBinary, m.ParsePath("a.b")))
	assert.Equal(t, m.PrivatePath, table.Lookup(m.RootLibrary, m.ParsePath("c.d")))
}

func TestResolver_VisibilityRequiresEveryAncestor(t *testing.T) {
	table := resolveFacts(t, ResolveOptions{},
		pubMod(m.RootLibrary, "a"),
		privMod(m.RootLibrary, "a.b"),
		pubItem(m.RootLibrary, "a.b.c"),
		pubItem(m.RootLibrary, "a.d"),
	)

	assert.Equal(t, m.PublicPath, table.Lookup(m.RootLibrary, m.ParsePath("a")))
	assert.Equal(t, m.PrivatePath, table.Lookup(m.RootLibrary, m.ParsePath("a.b")))
	assert.Equal(t, m.PrivatePath, table.Lookup(m.RootLibrary, m.ParsePath("a.b.c")))
	assert.Equal(t, m.PublicPath, table.Lookup(m.RootLibrary, m.ParsePath("a.d")))
	assert.Equal(t, m.NotFound, table.Lookup(m.RootLibrary, m.ParsePath("a.e")))
}

func TestResolver_ScenarioCollisionOnSharedModule(t *testing.T) {
	table := resolveFacts(t, ResolveOptions{},
		pubMod(m.RootBinary, "a"),
		pubItem(m.RootBinary, "a.b"),
		pubMod(m.RootLibrary, "a"),
	)

	want := []m.Collision{{Path: m.Path{"a"}, Roots: []m.Root{m.RootBinary, m.RootLibrary}}}
	if diff := cmp.Diff(want, table.Collisions()); diff != "" {
		t.Errorf("collisions mismatch (-want +got):\n%s", diff)
	}

	assert.True(t, table.IsCollision(m.Path{"a"}))
	assert.False(t, table.IsCollision(m.ParsePath("a.b")))
	assert.Equal(t, m.PublicPath, table.Lookup(m.RootBinary, m.ParsePath("a.b")))
	assert.Equal(t, m.NotFound, table.Lookup(m.RootLibrary, m.ParsePath("a.b")))
}

func TestResolver_CollisionOnlyWhenBothExport(t *testing.T) {
	table := resolveFacts(t, ResolveOptions{},
		pubItem(m.RootBinary, "shared"),
		pubItem(m.RootLibrary, "shared"),
		pubItem(m.RootBinary, "half"),
		privItem(m.RootLibrary, "half"),
		pubItem(m.RootBinary, "bin_only"),
		pubItem(m.RootLibrary, "lib_only"),
	)

	collisions := table.Collisions()
	require.Len(t, collisions, 1)
	assert.Equal(t, "shared", collisions[0].Path.String())

	assert.Equal(t, m.PublicPath, table.Lookup(m.RootBinary, m.Path{"bin_only"}))
	assert.Equal(t, m.PublicPath, table.Lookup(m.RootLibrary, m.Path{"lib_only"}))
	assert.Equal(t, m.PrivatePath, table.Lookup(m.RootLibrary, m.Path{"half"}))
}

func TestResolver_LookupIgnoresLeadingCrate(t *testing.T) {
	table := resolveFacts(t, ResolveOptions{},
		pubItem(m.RootBinary, "crate.a"),
		pubItem(m.RootLibrary, "a"),
		privItem(m.RootBinary, "b"),
	)

	tests := []struct {
		name string
		root m.Root
		path string
		want m.LookupResult
	}{
		{"bare", m.RootBinary, "a", m.PublicPath},
		{"crate prefixed", m.RootBinary, "crate.a", m.PublicPath},
		{"crate prefixed private", m.RootBinary, "crate.b", m.PrivatePath},
		{"crate prefixed missing", m.RootLibrary, "crate.b", m.NotFound},
		{"padded", m.RootLibrary, " crate . a ", m.PublicPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Lookup(tt.root, m.ParsePath(tt.path)))
		})
	}

	assert.True(t, table.IsCollision(m.ParsePath("crate.a")))
}

func TestResolver_LibraryNameInBinaryIsOrdinaryCandidate(t *testing.T) {
	table := resolveFacts(t, ResolveOptions{},
		pubMod(m.RootBinary, "lib"),
		pubItem(m.RootLibrary, "lib"),
	)

	assert.True(t, table.IsCollision(m.Path{"lib"}))
}

func TestResolver_WithoutLibrary(t *testing.T) {
	table := resolveFacts(t, ResolveOptions{}, pubItem(m.RootBinary, "main"))

	assert.False(t, table.HasLibrary())
	assert.Equal(t, m.NotFound, table.Lookup(m.RootLibrary, m.Path{"main"}))
	assert.Empty(t, table.Collisions())
}

func TestResolver_TestModulesExcludedByDefault(t *testing.T) {
	facts := []m.Fact{
		pubMod(m.RootLibrary, "net"),
		testMod(m.RootLibrary, "net.tests"),
		pubMod(m.RootLibrary, "net.tests"),
		pubItem(m.RootLibrary, "net.tests.helper"),
	}

	excluded := resolveFacts(t, ResolveOptions{}, facts...)
	assert.Equal(t, m.PrivatePath, excluded.Lookup(m.RootLibrary, m.ParsePath("net.tests")))
	assert.Equal(t, m.PrivatePath, excluded.Lookup(m.RootLibrary, m.ParsePath("net.tests.helper")))
	assert.Equal(t, m.PublicPath, excluded.Lookup(m.RootLibrary, m.ParsePath("net")))

	included := resolveFacts(t, ResolveOptions{IncludeTestModules: true}, facts...)
	assert.Equal(t, m.PublicPath, included.Lookup(m.RootLibrary, m.ParsePath("net.tests.helper")))
}

func TestResolver_OrderIndependent(t *testing.T) {
	facts := []m.Fact{
		pubMod(m.RootBinary, "a"),
		pubItem(m.RootBinary, "a.b"),
		privMod(m.RootBinary, "a"),
		privItem(m.RootBinary, "a.c.d"),
		pubMod(m.RootBinary, "a.c"),
		pubMod(m.RootLibrary, "a"),
		pubItem(m.RootLibrary, "a.c.d"),
		pubMod(m.RootLibrary, "a.c"),
		testMod(m.RootLibrary, "t"),
		pubItem(m.RootLibrary, "x.y"),
	}

	baseline := resolveFacts(t, ResolveOptions{}, facts...)

	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 20; i++ {
		shuffled := append([]m.Fact(nil), facts...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		table := resolveFacts(t, ResolveOptions{}, shuffled...)

		for _, root := range m.Roots {
			if diff := cmp.Diff(baseline.Entries(root), table.Entries(root)); diff != "" {
				t.Fatalf("entries of %s differ after shuffle %d (-want +got):\n%s", root, i, diff)
			}
		}

		if diff := cmp.Diff(baseline.Collisions(), table.Collisions()); diff != "" {
			t.Fatalf("collisions differ after shuffle %d (-want +got):\n%s", i, diff)
		}
	}
}

func TestResolver_EntriesAreSorted(t *testing.T) {
	table := resolveFacts(t, ResolveOptions{},
		pubItem(m.RootBinary, "z"),
		pubItem(m.RootBinary, "a.b"),
		privItem(m.RootBinary, "m"),
	)

	var paths []string
	for _, entry := range table.Entries(m.RootBinary) {
		paths = append(paths, entry.Path.String())
	}

	assert.Equal(t, []string{"a", "a.b", "m", "z"}, paths)
	assert.Equal(t, []m.Path{{"z"}}, table.Visible(m.RootBinary))
}

func TestResolver_HonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewResolver(ResolveOptions{}).Resolve(ctx, buildGraphs(t))
	require.ErrorIs(t, err, context.Canceled)
}
