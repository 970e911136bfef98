package cmd

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"modtest.dev/pkg/modtest/internal/domain"
	domainmocks "modtest.dev/pkg/modtest/internal/domain/mocks"
	m "modtest.dev/pkg/modtest/internal/model"
)

func TestViewCmd_UsesRootOutputFlagByDefault(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd := newTestRootCmd(t, newViewCmd())

	mockWorkflow.On("View", mock.Anything, domain.ViewArgs{Reports: m.FilePath(defaultReportsDir)}).
		Return(m.Report{}, nil)

	cmd.SetArgs([]string{"view"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_RootOutputFlagIsPassedThrough(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd := newTestRootCmd(t, newViewCmd())

	mockWorkflow.On("View", mock.Anything, domain.ViewArgs{Reports: m.FilePath("./reports-dir")}).
		Return(m.Report{}, nil)

	cmd.SetArgs([]string{"view", "--output", "./reports-dir"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_PositionalArgsAreRejected(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd := newTestRootCmd(t, newViewCmd())

	cmd.SetArgs([]string{"view", "./custom-reports"})
	require.Error(t, cmd.Execute())
}
