package model

import "sort"

// DuplicateGroup is one set of files sharing a content fingerprint.
type DuplicateGroup struct {
	Fingerprint string `yaml:"fingerprint"`
	FileSize    int64  `yaml:"file_size"`
	// Members are kept in discovery order.
	Members []Path `yaml:"members"`
	// Kind is the sniffed content type (e.g. "image/png"), empty when unknown.
	Kind string `yaml:"kind,omitempty"`
}

// WastedBytes is the space held by every member except one.
func (g DuplicateGroup) WastedBytes() int64 {
	if len(g.Members) < 2 {
		return 0
	}

	return int64(len(g.Members)-1) * g.FileSize
}

// ScanResult maps a fingerprint to its group. Only groups with at least two
// members are present.
type ScanResult map[string]DuplicateGroup

// Fingerprints returns the keys in ascending order.
func (r ScanResult) Fingerprints() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// WastedBytes sums the wasted space across all groups.
func (r ScanResult) WastedBytes() int64 {
	var total int64
	for _, g := range r {
		total += g.WastedBytes()
	}

	return total
}

// RedundantFiles counts the files that a removal pass would delete.
func (r ScanResult) RedundantFiles() int {
	total := 0

	for _, g := range r {
		if len(g.Members) > 1 {
			total += len(g.Members) - 1
		}
	}

	return total
}
