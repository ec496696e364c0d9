package cmd

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dupes.dev/pkg/dupes/internal/domain"
	m "dupes.dev/pkg/dupes/internal/model"
)

func TestRemoveCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want domain.RunArgs
	}{
		{
			name: "current directory",
			args: []string{"remove"},
			want: domain.RunArgs{Root: ".", Operation: m.OperationScanAndRemove},
		},
		{
			name: "folder",
			args: []string{"remove", "/data"},
			want: domain.RunArgs{Root: "/data", Operation: m.OperationScanAndRemove},
		},
		{
			name: "dry run",
			args: []string{"remove", "--dry-run", "/data"},
			want: domain.RunArgs{Root: "/data", Operation: m.OperationScanAndRemove, DryRun: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, mockWorkflow := newTestCmd(t, newRemoveCmd())

			mockWorkflow.EXPECT().Run(mock.Anything, tt.want).Return(nil)

			cmd.SetArgs(tt.args)
			require.NoError(t, cmd.Execute())
		})
	}
}

func TestScanCmd(t *testing.T) {
	cmd, mockWorkflow := newTestCmd(t, newScanCmd())

	mockWorkflow.EXPECT().Run(mock.Anything, domain.RunArgs{Root: "/data", Operation: m.OperationScan}).Return(nil)

	cmd.SetArgs([]string{"scan", "/data"})
	require.NoError(t, cmd.Execute())
}
