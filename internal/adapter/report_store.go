package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
	m "modtest.dev/pkg/modtest/internal/model"
)

// ReportFileName is the file written inside a reports directory.
const ReportFileName = "report.yaml"

// ShardDirPrefix prefixes the per-shard report directories.
const ShardDirPrefix = "shard_"

// ReportStore persists run reports between invocations.
type ReportStore interface {
	SaveReport(ctx context.Context, dir m.FilePath, report m.Report) error
	LoadReport(ctx context.Context, dir m.FilePath) (m.Report, error)
	// ShardDirs lists the shard report directories under dir, sorted.
	ShardDirs(ctx context.Context, dir m.FilePath) ([]m.FilePath, error)
}

// LocalReportStore stores reports as YAML files on disk.
type LocalReportStore struct{}

// NewReportStore constructs a LocalReportStore.
func NewReportStore() *LocalReportStore {
	return &LocalReportStore{}
}

// SaveReport writes report to dir/report.yaml, creating dir if needed.
func (s *LocalReportStore) SaveReport(ctx context.Context, dir m.FilePath, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		slog.Error("Failed to create reports dir", "dir", dir, "error", err)
		return fmt.Errorf("create reports dir: %w", err)
	}

	content, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	path := filepath.Join(string(dir), ReportFileName)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		slog.Error("Failed to write report", "path", path, "error", err)
		return fmt.Errorf("write report: %w", err)
	}

	slog.Debug("Saved report", "path", path, "results", len(report.Results))

	return nil
}

// LoadReport reads dir/report.yaml.
func (s *LocalReportStore) LoadReport(ctx context.Context, dir m.FilePath) (m.Report, error) {
	if err := ctx.Err(); err != nil {
		return m.Report{}, err
	}

	path := filepath.Join(string(dir), ReportFileName)

	// #nosec G304 - reports dir is configured by the user
	content, err := os.ReadFile(path)
	if err != nil {
		slog.Error("Failed to read report", "path", path, "error", err)
		return m.Report{}, fmt.Errorf("read report: %w", err)
	}

	var report m.Report
	if err := yaml.Unmarshal(content, &report); err != nil {
		return m.Report{}, fmt.Errorf("decode report %s: %w", path, err)
	}

	return report, nil
}

// ShardDirs returns the shard_* directories under dir.
func (s *LocalReportStore) ShardDirs(ctx context.Context, dir m.FilePath) ([]m.FilePath, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matches, err := filepath.Glob(filepath.Join(string(dir), ShardDirPrefix+"*"))
	if err != nil {
		return nil, fmt.Errorf("list shard dirs: %w", err)
	}

	sort.Slice(matches, func(i, j int) bool {
		return shardIndex(matches[i]) < shardIndex(matches[j])
	})

	dirs := make([]m.FilePath, 0, len(matches))

	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || !info.IsDir() {
			continue
		}

		dirs = append(dirs, m.FilePath(match))
	}

	return dirs, nil
}

func shardIndex(dir string) int {
	index, err := strconv.Atoi(strings.TrimPrefix(filepath.Base(dir), ShardDirPrefix))
	if err != nil {
		return -1
	}

	return index
}

// ShardDir returns the directory holding the report of one shard.
func ShardDir(dir m.FilePath, index int) m.FilePath {
	return m.FilePath(filepath.Join(string(dir), fmt.Sprintf("%s%d", ShardDirPrefix, index)))
}
