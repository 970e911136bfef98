package model

import "sort"

// NodeID indexes a node inside its Graph arena.
type NodeID int

// RootNodeID is the crate root of every graph.
const RootNodeID NodeID = 0

// noParent marks the crate root.
const noParent NodeID = -1

// TestTag marks an item as a test and carries its executable script.
type TestTag struct {
	Style TestStyle
	Run   string
}

// ModuleNode is one path segment of a root's tree.
type ModuleNode struct {
	ID         NodeID
	Name       string
	Visibility Visibility
	Root       Root
	Kind       Kind
	// TestOnly is set on modules declared as test modules.
	TestOnly bool
	// Test is non-nil for test-tagged items.
	Test     *TestTag
	Parent   NodeID
	Children map[string]NodeID
}

// IsRoot reports whether the node is the crate root.
func (n *ModuleNode) IsRoot() bool {
	return n.Parent == noParent
}

// Graph is the tree of one root namespace stored as an arena of nodes.
// Parent links are only read for visibility checks; the tree is acyclic
// by construction.
type Graph struct {
	Root  Root
	nodes []*ModuleNode
}

// NewGraph returns a graph holding only the crate root.
func NewGraph(root Root) *Graph {
	return &Graph{
		Root: root,
		nodes: []*ModuleNode{{
			ID:         RootNodeID,
			Name:       "crate",
			Visibility: Public,
			Root:       root,
			Kind:       KindModule,
			Parent:     noParent,
			Children:   map[string]NodeID{},
		}},
	}
}

// Len returns the number of nodes, the crate root included.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id NodeID) *ModuleNode {
	if id < 0 || int(id) >= len(g.nodes) {
		return nil
	}

	return g.nodes[id]
}

// AddChild appends a private child under parent and returns it.
func (g *Graph) AddChild(parent NodeID, name string, kind Kind) *ModuleNode {
	node := &ModuleNode{
		ID:         NodeID(len(g.nodes)),
		Name:       name,
		Visibility: Private,
		Root:       g.Root,
		Kind:       kind,
		Parent:     parent,
		Children:   map[string]NodeID{},
	}
	g.nodes = append(g.nodes, node)
	g.nodes[parent].Children[name] = node.ID

	return node
}

// Child looks up a direct child by name.
func (g *Graph) Child(parent NodeID, name string) (*ModuleNode, bool) {
	p := g.Node(parent)
	if p == nil {
		return nil, false
	}

	id, ok := p.Children[name]
	if !ok {
		return nil, false
	}

	return g.nodes[id], true
}

// Find walks path from the crate root.
func (g *Graph) Find(path Path) (*ModuleNode, bool) {
	current := g.nodes[RootNodeID]

	for _, segment := range path {
		next, ok := g.Child(current.ID, segment)
		if !ok {
			return nil, false
		}

		current = next
	}

	return current, true
}

// PathOf rebuilds the path of a node by following parent links.
func (g *Graph) PathOf(id NodeID) Path {
	var reversed []string

	for node := g.Node(id); node != nil && !node.IsRoot(); node = g.Node(node.Parent) {
		reversed = append(reversed, node.Name)
	}

	path := make(Path, len(reversed))
	for i, segment := range reversed {
		path[len(reversed)-1-i] = segment
	}

	return path
}

// Ancestors returns the chain from the node up to, but excluding, the crate root.
func (g *Graph) Ancestors(id NodeID) []*ModuleNode {
	var chain []*ModuleNode

	for node := g.Node(id); node != nil && !node.IsRoot(); node = g.Node(node.Parent) {
		chain = append(chain, node)
	}

	return chain
}

// SortedChildren returns the children of a node ordered by name.
func (g *Graph) SortedChildren(id NodeID) []*ModuleNode {
	node := g.Node(id)
	if node == nil {
		return nil
	}

	names := make([]string, 0, len(node.Children))
	for name := range node.Children {
		names = append(names, name)
	}

	sort.Strings(names)

	children := make([]*ModuleNode, 0, len(names))
	for _, name := range names {
		children = append(children, g.nodes[node.Children[name]])
	}

	return children
}

// Walk visits every non-root node in pre-order, children by name.
func (g *Graph) Walk(fn func(node *ModuleNode, path Path)) {
	var visit func(id NodeID, prefix Path)

	visit = func(id NodeID, prefix Path) {
		for _, child := range g.SortedChildren(id) {
			path := make(Path, len(prefix)+1)
			copy(path, prefix)
			path[len(prefix)] = child.Name

			fn(child, path)
			visit(child.ID, path)
		}
	}

	visit(RootNodeID, Path{})
}

// Graphs bundles the root namespaces. Binary is always set; Library is nil
// when no fact targets the library root.
type Graphs struct {
	Binary  *Graph
	Library *Graph
}

// Get returns the graph of a root, or nil when it does not exist.
func (gs Graphs) Get(root Root) *Graph {
	switch root {
	case RootBinary:
		return gs.Binary
	case RootLibrary:
		return gs.Library
	default:
		return nil
	}
}
