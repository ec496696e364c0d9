// Package pkg provides small utilities shared across dupes.
package pkg

import "fmt"

const byteUnit = 1024

// FormatBytes renders a byte count with a binary unit suffix (B, KB, MB, ...).
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		// Negate in unsigned space so math.MinInt64 does not overflow.
		return "-" + formatMagnitude(uint64(-(bytes + 1))+1)
	}

	return formatMagnitude(uint64(bytes))
}

func formatMagnitude(bytes uint64) string {
	if bytes < byteUnit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := uint64(byteUnit), 0
	for n := bytes / byteUnit; n >= byteUnit && exp < 5; n /= byteUnit {
		div *= byteUnit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
