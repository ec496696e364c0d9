package model

import "time"

// ReportVersion is the current on-disk report format version.
const ReportVersion = 1

// Report is the persisted form of a scan result.
type Report struct {
	Version          int              `yaml:"version"`
	ScanID           string           `yaml:"scan_id"`
	Root             Path             `yaml:"root"`
	Algorithm        string           `yaml:"algorithm"`
	CreatedAt        time.Time        `yaml:"created_at"`
	Groups           []DuplicateGroup `yaml:"groups"`
	TotalWastedBytes int64            `yaml:"total_wasted_bytes"`
}

// NewReport builds a report with groups ordered by fingerprint.
func NewReport(scanID string, root Path, algorithm string, result ScanResult, createdAt time.Time) Report {
	groups := make([]DuplicateGroup, 0, len(result))
	for _, fp := range result.Fingerprints() {
		groups = append(groups, result[fp])
	}

	return Report{
		Version:          ReportVersion,
		ScanID:           scanID,
		Root:             root,
		Algorithm:        algorithm,
		CreatedAt:        createdAt,
		Groups:           groups,
		TotalWastedBytes: result.WastedBytes(),
	}
}

// Result rebuilds the in-memory scan result.
func (r Report) Result() ScanResult {
	result := make(ScanResult, len(r.Groups))
	for _, g := range r.Groups {
		result[g.Fingerprint] = g
	}

	return result
}
