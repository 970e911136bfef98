package domain

import (
	"context"
	"log/slog"
	"regexp"

	m "modtest.dev/pkg/modtest/internal/model"
)

// crateSegment may only appear as the leading segment of a path.
const crateSegment = "crate"

var reservedSegments = map[string]struct{}{
	crateSegment: {},
	"self":       {},
	"super":      {},
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Builder turns a fact table into one module tree per root namespace.
type Builder interface {
	Build(ctx context.Context, facts []m.Fact) (m.Graphs, error)
}

type builder struct{}

// NewBuilder constructs a Builder.
func NewBuilder() Builder {
	return &builder{}
}

// Build processes facts in declaration order. The Binary graph always
// exists; the Library graph is created on the first library fact.
func (b *builder) Build(ctx context.Context, facts []m.Fact) (m.Graphs, error) {
	graphs := m.Graphs{Binary: m.NewGraph(m.RootBinary)}

	for _, fact := range facts {
		if err := ctx.Err(); err != nil {
			return m.Graphs{}, err
		}

		if fact.Root == m.RootLibrary && graphs.Library == nil {
			graphs.Library = m.NewGraph(m.RootLibrary)
		}

		graph := graphs.Get(fact.Root)
		if graph == nil {
			return m.Graphs{}, &m.MalformedPathError{Path: fact.Path.String(), Root: fact.Root, Reason: "unknown root namespace"}
		}

		if err := b.apply(graph, fact); err != nil {
			slog.Error("Failed to apply fact", "path", fact.Path.String(), "root", fact.Root, "error", err)
			return m.Graphs{}, err
		}

		slog.Debug("Applied fact", "path", fact.Path.String(), "root", fact.Root, "kind", fact.Kind, "visibility", fact.Visibility)
	}

	return graphs, nil
}

func (b *builder) apply(graph *m.Graph, fact m.Fact) error {
	path, err := normalizePath(fact)
	if err != nil {
		return err
	}

	parent := m.RootNodeID

	for i, segment := range path {
		last := i == len(path)-1

		kind := m.KindModule
		if last {
			kind = fact.Kind
		}

		node, ok := graph.Child(parent, segment)
		if !ok {
			if graph.Node(parent).Kind == m.KindItem {
				return malformed(fact, "item "+graph.PathOf(parent).String()+" cannot contain declarations")
			}

			node = graph.AddChild(parent, segment, kind)
		} else if last && node.Kind != fact.Kind {
			return malformed(fact, "declared as both "+node.Kind.String()+" and "+fact.Kind.String())
		} else if !last && node.Kind == m.KindItem {
			return malformed(fact, "item "+graph.PathOf(node.ID).String()+" cannot contain declarations")
		}

		if last {
			b.tag(node, fact)
		}

		parent = node.ID
	}

	return nil
}

// tag applies the fact's own attributes to its node. Visibility only ever
// moves from Private to Public. An unset test style is settled at discovery,
// once every enclosing module is known.
func (b *builder) tag(node *m.ModuleNode, fact m.Fact) {
	if fact.Visibility == m.Public {
		node.Visibility = m.Public
	}

	if !fact.IsTest {
		return
	}

	if fact.Kind == m.KindModule {
		node.TestOnly = true
		return
	}

	node.Test = &m.TestTag{Style: fact.TestStyle, Run: fact.Run}
}

// normalizePath validates a fact path and strips a leading crate segment.
func normalizePath(fact m.Fact) (m.Path, error) {
	path := fact.Path
	if len(path) > 0 && path[0] == crateSegment {
		path = path[1:]
	}

	if len(path) == 0 {
		return nil, malformed(fact, "empty path")
	}

	for _, segment := range path {
		if segment == "" {
			return nil, malformed(fact, "empty segment")
		}

		if _, reserved := reservedSegments[segment]; reserved {
			return nil, malformed(fact, "reserved identifier "+segment+" used as a segment")
		}

		if !identifierPattern.MatchString(segment) {
			return nil, malformed(fact, "invalid identifier "+segment)
		}
	}

	return path, nil
}

func malformed(fact m.Fact, reason string) error {
	return &m.MalformedPathError{Path: fact.Path.String(), Root: fact.Root, Reason: reason}
}
