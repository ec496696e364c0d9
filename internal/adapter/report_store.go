package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	m "dupes.dev/pkg/dupes/internal/model"
)

// ReportStore persists scan reports.
type ReportStore interface {
	SaveReport(ctx context.Context, path m.Path, report m.Report) error
	LoadReport(ctx context.Context, path m.Path) (m.Report, error)
}

// YAMLReportStore writes reports as YAML documents.
type YAMLReportStore struct {
	fs afero.Fs
}

// NewReportStore constructs a YAMLReportStore on the host filesystem.
func NewReportStore() *YAMLReportStore {
	return NewYAMLReportStore(afero.NewOsFs())
}

// NewYAMLReportStore constructs a YAMLReportStore on fs.
func NewYAMLReportStore(fs afero.Fs) *YAMLReportStore {
	return &YAMLReportStore{fs: fs}
}

// SaveReport writes report to path, replacing any existing file.
func (s *YAMLReportStore) SaveReport(ctx context.Context, path m.Path, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if dir := filepath.Dir(string(path)); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory %s: %w", dir, err)
		}
	}

	if err := afero.WriteFile(s.fs, string(path), data, 0o600); err != nil {
		slog.Error("Failed to write report", "path", path, "error", err)
		return fmt.Errorf("write report %s: %w", path, err)
	}

	slog.Debug("Saved report", "path", path, "groups", len(report.Groups))

	return nil
}

// LoadReport reads a report written by SaveReport.
func (s *YAMLReportStore) LoadReport(ctx context.Context, path m.Path) (m.Report, error) {
	if err := ctx.Err(); err != nil {
		return m.Report{}, err
	}

	data, err := afero.ReadFile(s.fs, string(path))
	if err != nil {
		return m.Report{}, fmt.Errorf("read report %s: %w", path, err)
	}

	var report m.Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.Report{}, fmt.Errorf("parse report %s: %w", path, err)
	}

	if report.Version != m.ReportVersion {
		return m.Report{}, fmt.Errorf("report %s: unsupported version %d", path, report.Version)
	}

	return report, nil
}
