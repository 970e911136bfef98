package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
	m "modtest.dev/pkg/modtest/internal/model"
)

// FactLoaderAdapter reads a fact table produced by an external front-end.
type FactLoaderAdapter interface {
	// Load decodes the file at path and returns its facts in file order.
	Load(ctx context.Context, path m.FilePath) ([]m.Fact, error)
}

// UnsupportedFormatError is returned for fact files with an unknown extension.
type UnsupportedFormatError struct {
	Path m.FilePath
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported fact file format %q (want .yaml, .yml, .json or .toml)", filepath.Ext(string(e.Path)))
}

type factFile struct {
	Facts []m.FactRecord `yaml:"facts" toml:"facts"`
}

// LocalFactLoaderAdapter loads fact files from the local filesystem.
type LocalFactLoaderAdapter struct{}

// NewLocalFactLoaderAdapter constructs a LocalFactLoaderAdapter.
func NewLocalFactLoaderAdapter() *LocalFactLoaderAdapter {
	return &LocalFactLoaderAdapter{}
}

// Load reads and decodes the fact file. YAML also covers JSON input.
func (a *LocalFactLoaderAdapter) Load(ctx context.Context, path m.FilePath) ([]m.Fact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 - the fact file path is chosen by the user running the tool
	content, err := os.ReadFile(string(path))
	if err != nil {
		slog.Error("Failed to read fact file", "path", path, "error", err)
		return nil, fmt.Errorf("read fact file: %w", err)
	}

	records, err := decodeFacts(path, content)
	if err != nil {
		slog.Error("Failed to decode fact file", "path", path, "error", err)
		return nil, err
	}

	facts := make([]m.Fact, 0, len(records))

	for i, record := range records {
		fact, err := record.Fact()
		if err != nil {
			return nil, fmt.Errorf("fact %d (%s): %w", i, record.Path, err)
		}

		facts = append(facts, fact)
	}

	slog.Debug("Loaded facts", "path", path, "count", len(facts))

	return facts, nil
}

func decodeFacts(path m.FilePath, content []byte) ([]m.FactRecord, error) {
	var file factFile

	switch strings.ToLower(filepath.Ext(string(path))) {
	case ".yaml", ".yml", ".json":
		if err := yaml.Unmarshal(content, &file); err != nil {
			return nil, fmt.Errorf("decode fact file: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(content, &file); err != nil {
			return nil, fmt.Errorf("decode fact file: %w", err)
		}
	default:
		return nil, &UnsupportedFormatError{Path: path}
	}

	return file.Facts, nil
}
