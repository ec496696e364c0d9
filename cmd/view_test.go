package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dupes.dev/pkg/dupes/internal/domain"
	m "dupes.dev/pkg/dupes/internal/model"
)

func TestViewCmd_PassesReportPath(t *testing.T) {
	cmd, mockWorkflow := newTestCmd(t, newViewCmd())

	mockWorkflow.EXPECT().View(mock.Anything, domain.ViewArgs{Report: m.Path("dupes-report.yaml")}).Return(nil)

	cmd.SetArgs([]string{"view", "dupes-report.yaml"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_ReportIsRequired(t *testing.T) {
	cmd, _ := newTestCmd(t, newViewCmd())

	cmd.SetArgs([]string{"view"})
	require.Error(t, cmd.Execute())
}

func TestViewCmd_LoadErrorIsReturned(t *testing.T) {
	cmd, mockWorkflow := newTestCmd(t, newViewCmd())

	loadErr := errors.New("load report: unsupported version")
	mockWorkflow.EXPECT().View(mock.Anything, mock.Anything).Return(loadErr)

	cmd.SetArgs([]string{"view", "old.yaml"})
	require.ErrorIs(t, cmd.Execute(), loadErr)
}
