package controller

import (
	"fmt"

	m "dupes.dev/pkg/dupes/internal/model"
	"dupes.dev/pkg/dupes/pkg"
)

const binaryName = "dupes"

func formatProgress(progress m.Progress) string {
	if progress.Total == 0 {
		return "Processed: 0 files total"
	}

	return fmt.Sprintf("Progress: %d%% (%d/%d)", progress.Percent, progress.Processed, progress.Total)
}

func formatFailure(failure m.Failure) string {
	return fmt.Sprintf("Error processing file: %s (%s): %v", failure.Path, failure.Op, failure.Err)
}

func formatGroupHeader(index int, group m.DuplicateGroup) string {
	header := fmt.Sprintf("Group %d: %d duplicates (%s each, %s wasted)",
		index, len(group.Members), pkg.FormatBytes(group.FileSize), pkg.FormatBytes(group.WastedBytes()))

	if group.Kind != "" {
		header += " [" + group.Kind + "]"
	}

	return header
}

func formatRemoval(removal m.Removal) string {
	if removal.DryRun {
		return fmt.Sprintf("Would remove: %s (keeping %s)", removal.Path, removal.Survivor)
	}

	return fmt.Sprintf("Removed: %s (keeping %s)", removal.Path, removal.Survivor)
}

func removalHint(root m.Path) string {
	return fmt.Sprintf("To remove duplicates, run: %s remove %q  OR  %s find --remove %q",
		binaryName, root, binaryName, root)
}

// summaryLines renders the closing text of an operation. Both UIs print the
// same wording.
func summaryLines(summary m.Summary) []string {
	var lines []string

	if summary.Processed > 0 {
		lines = append(lines, fmt.Sprintf("Processed: %d files total", summary.Processed))
	}

	if summary.Failed > 0 {
		lines = append(lines, fmt.Sprintf("Could not process %d file(s).", summary.Failed))
	}

	if summary.Groups == 0 {
		lines = append(lines, "No duplicates found.")
	} else {
		lines = append(lines,
			fmt.Sprintf("Found %d group(s) of duplicates.", summary.Groups),
			fmt.Sprintf("Redundant files: %d", summary.RedundantFiles),
			"Total wasted space: "+pkg.FormatBytes(summary.WastedBytes),
		)
	}

	switch summary.Operation {
	case m.OperationScanAndDisplay:
		if summary.Groups > 0 {
			lines = append(lines, removalHint(summary.Root))
		}
	case m.OperationScanAndRemove:
		lines = append(lines, removalLines(summary.Removal)...)
	case m.OperationScan:
	}

	return lines
}

func removalLines(stats *m.RemovalStats) []string {
	if stats == nil {
		return nil
	}

	var lines []string

	if stats.DryRun {
		lines = append(lines, fmt.Sprintf("Dry run: would remove %d duplicate file(s). Space to free: %s",
			stats.FilesRemoved, pkg.FormatBytes(stats.BytesFreed)))
	} else {
		lines = append(lines, fmt.Sprintf("Removed %d duplicate file(s). Space freed: %s",
			stats.FilesRemoved, pkg.FormatBytes(stats.BytesFreed)))
	}

	if stats.Failed > 0 {
		lines = append(lines, fmt.Sprintf("Failed to remove %d file(s).", stats.Failed))
	}

	return lines
}
