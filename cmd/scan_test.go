package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"awaitscan.dev/pkg/awaitscan/internal/domain"
	domainmocks "awaitscan.dev/pkg/awaitscan/internal/domain/mocks"
	m "awaitscan.dev/pkg/awaitscan/internal/model"
)

type cmdRig struct {
	cmd    *cobra.Command
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newTestRootCmd() *cmdRig {
	cmd := baseRootCmd()
	configureRootFlags(cmd)
	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newVersionCmd())

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	return &cmdRig{cmd: cmd, out: out, errOut: errOut}
}

func TestScanCmd_InvokesWorkflow(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	rig := newTestRootCmd()

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Scan", mock.Anything, mock.MatchedBy(func(args domain.ScanArgs) bool {
		return args.Root == m.Path("./fixtures") &&
			args.Threads == 3 &&
			!args.Save
	})).Return(m.RunTally{Await: 1}, nil)

	rig.cmd.SetArgs([]string{"scan", "--parallel", "3", "./fixtures"})
	err := rig.cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestScanCmd_SaveFlag(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	rig := newTestRootCmd()

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Scan", mock.Anything, mock.MatchedBy(func(args domain.ScanArgs) bool {
		return args.Save && args.Reports == m.Path(".awaitscan-reports")
	})).Return(m.RunTally{}, nil)

	rig.cmd.SetArgs([]string{"scan", "--save", "./fixtures"})
	err := rig.cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestScanCmd_ExcludePatterns(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	rig := newTestRootCmd()

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Scan", mock.Anything, mock.MatchedBy(func(args domain.ScanArgs) bool {
		return len(args.Exclude) == 2 &&
			args.Exclude[0] == `vendor/` &&
			args.Exclude[1] == `_test\.go$`
	})).Return(m.RunTally{}, nil)

	rig.cmd.SetArgs([]string{"scan", "-x", `vendor/`, "-x", `_test\.go$`, "./fixtures"})
	err := rig.cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestScanCmd_ParallelFromEnv(t *testing.T) {
	t.Setenv("AWAITSCAN_RUN_PARALLEL", "4")

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	rig := newTestRootCmd()

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Scan", mock.Anything, mock.MatchedBy(func(args domain.ScanArgs) bool {
		return args.Threads == 4
	})).Return(m.RunTally{}, nil)

	rig.cmd.SetArgs([]string{"scan", "./fixtures"})
	err := rig.cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestScanCmd_ParallelFlagOverridesEnv(t *testing.T) {
	t.Setenv("AWAITSCAN_RUN_PARALLEL", "4")

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	rig := newTestRootCmd()

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Scan", mock.Anything, mock.MatchedBy(func(args domain.ScanArgs) bool {
		return args.Threads == 2
	})).Return(m.RunTally{}, nil)

	rig.cmd.SetArgs([]string{"scan", "--parallel", "2", "./fixtures"})
	err := rig.cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestScanCmd_ParallelFromConfig(t *testing.T) {
	viper.Set(runParallelConfigKey, 4)
	t.Cleanup(func() { viper.Set(runParallelConfigKey, defaultRunParallel) })

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	rig := newTestRootCmd()

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Scan", mock.Anything, mock.MatchedBy(func(args domain.ScanArgs) bool {
		return args.Threads == 4
	})).Return(m.RunTally{}, nil)

	rig.cmd.SetArgs([]string{"scan", "./fixtures"})
	err := rig.cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestScanCmd_MissingDirectoryArg(t *testing.T) {
	rig := newTestRootCmd()

	rig.cmd.SetArgs([]string{"scan"})
	err := rig.cmd.Execute()
	require.Error(t, err)

	// cobra surfaces the usage text so the caller knows a directory is needed.
	assert.Contains(t, rig.errOut.String()+rig.out.String(), "Usage")
}

func TestScanCmd_TooManyArgs(t *testing.T) {
	rig := newTestRootCmd()

	rig.cmd.SetArgs([]string{"scan", "./a", "./b"})
	err := rig.cmd.Execute()
	require.Error(t, err)
}
