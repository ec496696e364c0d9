package cmd

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dupes.dev/pkg/dupes/internal/adapter"
	m "dupes.dev/pkg/dupes/internal/model"
)

func TestResolveRoot(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want m.Path
	}{
		{"no args", nil, "."},
		{"empty arg", []string{""}, "."},
		{"folder", []string{"/data/photos"}, "/data/photos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveRoot(tt.args))
		})
	}
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "dupes", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, rootLongDescription, cmd.Long)

	for _, name := range []string{algorithmFlagName, threadsFlagName, workersFlagName, verboseFlagName, logFileFlagName, noTUIFlagName} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing flag %s", name)
	}
}

func TestRootCmd_HelpOutput(t *testing.T) {
	cmd := newRootCmd()
	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{})
	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, output.String(), "Usage:")
	assert.Contains(t, output.String(), "identical content")
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"find", "remove", "scan", "view", "init", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func withRealDependencies(t *testing.T) {
	t.Helper()

	originalWorkflow := workflow
	originalLogger := slog.Default()
	workflow = nil

	t.Cleanup(func() {
		workflow = originalWorkflow
		slog.SetDefault(originalLogger)
	})
}

func TestSetupDependencies_ScanEndToEnd(t *testing.T) {
	withRealDependencies(t)

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("same"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.txt"), []byte("same"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "c.txt"), []byte("other"), 0o644))

	logPath := filepath.Join(t.TempDir(), "dupes.log")

	cmd := newRootCmd()
	cmd.AddCommand(newScanCmd())

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"scan", root, "--no-tui", "--log-file", logPath})

	require.NoError(t, cmd.Execute())

	assert.NotNil(t, workflow)
	assert.Contains(t, out.String(), "Processed: 3 files total")
	assert.Contains(t, out.String(), "Found 1 group(s) of duplicates.")
	assert.Contains(t, out.String(), "Total wasted space: 4 B")

	_, err := os.Stat(logPath)
	require.NoError(t, err, "log file is written")
}

func TestSetupDependencies_FindThroughSymlinkedRoot(t *testing.T) {
	withRealDependencies(t)

	base := t.TempDir()
	target := filepath.Join(base, "data")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "a.txt"), []byte("same"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(target, "b.txt"), []byte("same"), 0o644))

	link := filepath.Join(base, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	cmd := newRootCmd()
	cmd.AddCommand(newFindCmd())

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"find", link, "--no-tui", "--log-file", filepath.Join(t.TempDir(), "dupes.log")})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Processed: 2 files total")
	assert.Contains(t, out.String(), "Found 1 group(s) of duplicates.")
	assert.NotContains(t, out.String(), "No duplicates found.")
}

func TestSetupDependencies_UnknownAlgorithm(t *testing.T) {
	withRealDependencies(t)

	cmd := newRootCmd()
	cmd.AddCommand(newScanCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"scan", t.TempDir(), "--algorithm", "crc7", "--log-file", filepath.Join(t.TempDir(), "dupes.log")})

	err := cmd.Execute()
	require.ErrorIs(t, err, adapter.ErrUnknownAlgorithm)
}

func TestExecute(t *testing.T) {
	originalRootCmd := rootCmd
	defer func() { rootCmd = originalRootCmd }()

	mockCmd := &cobra.Command{
		Use: "test",
		RunE: func(_ *cobra.Command, _ []string) error {
			return nil
		},
	}
	mockCmd.SetOut(&bytes.Buffer{})
	mockCmd.SetErr(&bytes.Buffer{})
	mockCmd.SetArgs([]string{})

	rootCmd = mockCmd

	// Execute should not panic or exit
	Execute()
}

func TestExecute_ProcessLevel_Failure(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS_FAIL") == "1" {
		mockCmd := &cobra.Command{
			Use: "test",
			RunE: func(_ *cobra.Command, _ []string) error {
				fmt.Fprintln(os.Stderr, "error occurred")
				return fmt.Errorf("command failed")
			},
		}
		mockCmd.SetOut(os.Stdout)
		mockCmd.SetErr(os.Stderr)
		mockCmd.SetArgs([]string{})
		rootCmd = mockCmd

		Execute() // This should call os.Exit(1)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Failure")
	cmd.Env = append(os.Environ(), "TEST_EXECUTE_SUBPROCESS_FAIL=1")
	output, err := cmd.CombinedOutput()

	require.Error(t, err)

	var exitErr *exec.ExitError
	if assert.ErrorAs(t, err, &exitErr) {
		assert.Equal(t, 1, exitErr.ExitCode())
	}

	assert.Contains(t, string(output), "error occurred")
}
