// Package model defines the data structures shared by the resolver and the test harness.
package model

import (
	"fmt"
	"strings"
)

// Root identifies one of the two fixed root namespaces.
type Root int

const (
	// RootBinary is the binary crate root. It always exists.
	RootBinary Root = iota
	// RootLibrary is the optional library crate root.
	RootLibrary
)

// Roots lists every root namespace in resolution order.
var Roots = []Root{RootBinary, RootLibrary}

func (r Root) String() string {
	switch r {
	case RootBinary:
		return "bin"
	case RootLibrary:
		return "lib"
	default:
		return fmt.Sprintf("Root(%d)", int(r))
	}
}

// ParseRoot converts the fact-file spelling of a root into a Root.
func ParseRoot(value string) (Root, error) {
	switch strings.TrimSpace(value) {
	case "bin", "binary":
		return RootBinary, nil
	case "lib", "library":
		return RootLibrary, nil
	}

	return 0, &FactFormatError{Field: "root", Value: value}
}

// Visibility is the annotation carried by a single path segment.
type Visibility int

const (
	// Private is the default visibility of every segment.
	Private Visibility = iota
	// Public marks a segment as exported from its parent.
	Public
)

func (v Visibility) String() string {
	if v == Public {
		return "pub"
	}

	return "private"
}

// ParseVisibility accepts "pub" or the empty string.
func ParseVisibility(value string) (Visibility, error) {
	switch strings.TrimSpace(value) {
	case "pub", "public":
		return Public, nil
	case "", "private":
		return Private, nil
	}

	return Private, &FactFormatError{Field: "visibility", Value: value}
}

// Kind distinguishes modules from leaf items.
type Kind int

const (
	// KindModule is a module that may contain other declarations.
	KindModule Kind = iota
	// KindItem is a leaf declaration (function, type, constant...).
	KindItem
)

func (k Kind) String() string {
	if k == KindItem {
		return "item"
	}

	return "mod"
}

// ParseKind accepts "mod" or "item".
func ParseKind(value string) (Kind, error) {
	switch strings.TrimSpace(value) {
	case "mod", "module":
		return KindModule, nil
	case "item":
		return KindItem, nil
	}

	return 0, &FactFormatError{Field: "kind", Value: value}
}

// TestStyle records how a test was declared.
type TestStyle int

const (
	// StyleUnset lets the builder pick a style from the enclosing module.
	StyleUnset TestStyle = iota
	// StyleInline is a test standing alone at its path.
	StyleInline
	// StyleGrouped is a test declared inside a test-only module.
	StyleGrouped
)

func (s TestStyle) String() string {
	switch s {
	case StyleInline:
		return "inline"
	case StyleGrouped:
		return "grouped"
	default:
		return ""
	}
}

// ParseTestStyle accepts "inline", "grouped" or the empty string.
func ParseTestStyle(value string) (TestStyle, error) {
	switch strings.TrimSpace(value) {
	case "":
		return StyleUnset, nil
	case "inline":
		return StyleInline, nil
	case "grouped":
		return StyleGrouped, nil
	}

	return StyleUnset, &FactFormatError{Field: "test_style", Value: value}
}

// Fact is a single declaration handed over by a loader. Facts are never
// mutated after loading.
type Fact struct {
	Path       Path
	Visibility Visibility
	Root       Root
	Kind       Kind
	IsTest     bool
	TestStyle  TestStyle
	// Run is the shell script executed as the test body.
	Run string
}

// FactRecord is the on-disk shape of a fact, as written in fact files.
type FactRecord struct {
	Path       string `yaml:"path" toml:"path"`
	Visibility string `yaml:"visibility,omitempty" toml:"visibility"`
	Root       string `yaml:"root" toml:"root"`
	Kind       string `yaml:"kind" toml:"kind"`
	IsTest     bool   `yaml:"is_test,omitempty" toml:"is_test"`
	TestStyle  string `yaml:"test_style,omitempty" toml:"test_style"`
	Run        string `yaml:"run,omitempty" toml:"run"`
}

// Fact converts the record into a Fact. The path is split but not
// validated here; structural checks belong to the graph builder.
func (r FactRecord) Fact() (Fact, error) {
	visibility, err := ParseVisibility(r.Visibility)
	if err != nil {
		return Fact{}, err
	}

	root, err := ParseRoot(r.Root)
	if err != nil {
		return Fact{}, err
	}

	kind, err := ParseKind(r.Kind)
	if err != nil {
		return Fact{}, err
	}

	style, err := ParseTestStyle(r.TestStyle)
	if err != nil {
		return Fact{}, err
	}

	return Fact{
		Path:       ParsePath(r.Path),
		Visibility: visibility,
		Root:       root,
		Kind:       kind,
		IsTest:     r.IsTest,
		TestStyle:  style,
		Run:        r.Run,
	}, nil
}

// FactFormatError reports an unrecognised enum spelling in a fact record.
type FactFormatError struct {
	Field string
	Value string
}

func (e *FactFormatError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}
