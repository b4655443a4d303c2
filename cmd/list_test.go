package cmd

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"awaitscan.dev/pkg/awaitscan/internal/domain"
	domainmocks "awaitscan.dev/pkg/awaitscan/internal/domain/mocks"
	m "awaitscan.dev/pkg/awaitscan/internal/model"
)

func TestListCmd_InvokesWorkflow(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	rig := newTestRootCmd()

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("List", mock.Anything, mock.MatchedBy(func(args domain.ScanArgs) bool {
		return args.Root == m.Path("./fixtures") && args.Threads == 2
	})).Return(m.RunTally{}, nil)

	rig.cmd.SetArgs([]string{"list", "--parallel", "2", "./fixtures"})
	err := rig.cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestListCmd_ParallelFromEnv(t *testing.T) {
	t.Setenv("AWAITSCAN_RUN_PARALLEL", "5")

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	rig := newTestRootCmd()

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("List", mock.Anything, mock.MatchedBy(func(args domain.ScanArgs) bool {
		return args.Threads == 5
	})).Return(m.RunTally{}, nil)

	rig.cmd.SetArgs([]string{"list", "./fixtures"})
	err := rig.cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestListCmd_MissingDirectoryArg(t *testing.T) {
	rig := newTestRootCmd()

	rig.cmd.SetArgs([]string{"list"})
	err := rig.cmd.Execute()
	require.Error(t, err)
}
