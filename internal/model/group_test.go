package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDuplicateGroup_WastedBytes(t *testing.T) {
	tests := []struct {
		name  string
		group DuplicateGroup
		want  int64
	}{
		{"no members", DuplicateGroup{FileSize: 10}, 0},
		{"single member", DuplicateGroup{FileSize: 10, Members: []Path{"/a"}}, 0},
		{"pair", DuplicateGroup{FileSize: 10, Members: []Path{"/a", "/b"}}, 10},
		{"four copies", DuplicateGroup{FileSize: 1024, Members: []Path{"/a", "/b", "/c", "/d"}}, 3072},
		{"empty files", DuplicateGroup{FileSize: 0, Members: []Path{"/a", "/b"}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.group.WastedBytes())
		})
	}
}

func TestScanResult_Totals(t *testing.T) {
	result := ScanResult{
		"ff": {Fingerprint: "ff", FileSize: 5, Members: []Path{"/x", "/y", "/z"}},
		"00": {Fingerprint: "00", FileSize: 100, Members: []Path{"/p", "/q"}},
		"aa": {Fingerprint: "aa", FileSize: 7, Members: []Path{"/only"}},
	}

	assert.Equal(t, []string{"00", "aa", "ff"}, result.Fingerprints())
	assert.Equal(t, int64(110), result.WastedBytes())
	assert.Equal(t, 3, result.RedundantFiles())
	assert.Empty(t, ScanResult{}.Fingerprints())
}

func TestFailure_Error(t *testing.T) {
	cause := errors.New("permission denied")
	failure := Failure{Path: "/data/x", Op: OpRemove, Err: cause}

	assert.Equal(t, "remove /data/x: permission denied", failure.Error())
	assert.ErrorIs(t, failure, cause)
}

func TestOperationKind_String(t *testing.T) {
	assert.Equal(t, "scan", OperationScan.String())
	assert.Equal(t, "find", OperationScanAndDisplay.String())
	assert.Equal(t, "remove", OperationScanAndRemove.String())
	assert.Equal(t, "unknown", OperationKind(42).String())
}

func TestNewReport(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	result := ScanResult{
		"b": {Fingerprint: "b", FileSize: 2, Members: []Path{"/1", "/2"}},
		"a": {Fingerprint: "a", FileSize: 3, Members: []Path{"/3", "/4", "/5"}},
	}

	report := NewReport("id", "/root", "md5", result, created)

	assert.Equal(t, ReportVersion, report.Version)
	assert.Equal(t, "a", report.Groups[0].Fingerprint)
	assert.Equal(t, "b", report.Groups[1].Fingerprint)
	assert.Equal(t, int64(8), report.TotalWastedBytes)
	assert.Equal(t, result, report.Result())
}
