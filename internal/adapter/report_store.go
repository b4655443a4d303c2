package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	m "awaitscan.dev/pkg/awaitscan/internal/model"
)

// ReportStore persists and retrieves scan reports.
type ReportStore interface {
	SaveReport(dir m.Path, report m.ScanReport) (m.Path, error)
	LoadReport(path m.Path) (m.ScanReport, error)
}

type yamlReportStore struct {
	now func() time.Time
}

// NewReportStore constructs a ReportStore that writes YAML files.
func NewReportStore() ReportStore {
	return &yamlReportStore{now: time.Now}
}

// SaveReport writes the report to a timestamped YAML file under dir, creating
// the directory if needed, and returns the path of the written file.
func (rs *yamlReportStore) SaveReport(dir m.Path, report m.ScanReport) (m.Path, error) {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = rs.now()
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	name := fmt.Sprintf("scan-%s.yaml", report.GeneratedAt.UTC().Format("20060102-150405"))
	path := filepath.Join(string(dir), name)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	return m.Path(path), nil
}

// LoadReport reads a previously saved YAML report.
func (rs *yamlReportStore) LoadReport(path m.Path) (m.ScanReport, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.ScanReport{}, fmt.Errorf("read report: %w", err)
	}

	var report m.ScanReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.ScanReport{}, fmt.Errorf("unmarshal report: %w", err)
	}

	return report, nil
}
