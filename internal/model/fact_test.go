package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactRecord_Fact(t *testing.T) {
	record := FactRecord{
		Path:       "net.tests.parses",
		Visibility: "pub",
		Root:       "lib",
		Kind:       "item",
		IsTest:     true,
		TestStyle:  "grouped",
		Run:        "true",
	}

	fact, err := record.Fact()
	require.NoError(t, err)

	assert.Equal(t, Fact{
		Path:       Path{"net", "tests", "parses"},
		Visibility: Public,
		Root:       RootLibrary,
		Kind:       KindItem,
		IsTest:     true,
		TestStyle:  StyleGrouped,
		Run:        "true",
	}, fact)
}

func TestFactRecord_Defaults(t *testing.T) {
	fact, err := FactRecord{Path: "a", Root: "bin", Kind: "mod"}.Fact()
	require.NoError(t, err)

	assert.Equal(t, Private, fact.Visibility)
	assert.Equal(t, RootBinary, fact.Root)
	assert.Equal(t, KindModule, fact.Kind)
	assert.Equal(t, StyleUnset, fact.TestStyle)
	assert.False(t, fact.IsTest)
}

func TestFactRecord_InvalidFields(t *testing.T) {
	tests := []struct {
		name      string
		record    FactRecord
		wantField string
	}{
		{"visibility", FactRecord{Path: "a", Visibility: "protected", Root: "bin", Kind: "mod"}, "visibility"},
		{"root", FactRecord{Path: "a", Root: "plugin", Kind: "mod"}, "root"},
		{"missing root", FactRecord{Path: "a", Kind: "mod"}, "root"},
		{"kind", FactRecord{Path: "a", Root: "bin", Kind: "trait"}, "kind"},
		{"test style", FactRecord{Path: "a", Root: "bin", Kind: "item", TestStyle: "nested"}, "test_style"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.record.Fact()

			var formatErr *FactFormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Equal(t, tt.wantField, formatErr.Field)
		})
	}
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "bin", RootBinary.String())
	assert.Equal(t, "lib", RootLibrary.String())
	assert.Equal(t, "pub", Public.String())
	assert.Equal(t, "private", Private.String())
	assert.Equal(t, "mod", KindModule.String())
	assert.Equal(t, "item", KindItem.String())
	assert.Equal(t, "inline", StyleInline.String())
	assert.Equal(t, "grouped", StyleGrouped.String())
}
