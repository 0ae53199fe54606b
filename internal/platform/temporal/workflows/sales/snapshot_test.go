package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/Apurer/cafe-api/internal/domains/sales/domain"
	salesactivities "github.com/Apurer/cafe-api/internal/platform/temporal/activities/sales"
)

type stubSales struct {
	calls int
	fail  int
}

func (s *stubSales) Capture(context.Context) (*domain.Snapshot, error) {
	s.calls++
	if s.calls <= s.fail {
		return nil, errors.New("transient")
	}
	return &domain.Snapshot{ID: 11, TakenAt: time.Unix(0, 0).UTC(), Totals: domain.Totals{TotalOrders: 4, TotalItemsSold: 9}}, nil
}

func (s *stubSales) List(context.Context, int) ([]*domain.Snapshot, error) { return nil, nil }

func TestSnapshotWorkflow_RetriesCapture(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	sales := &stubSales{fail: 2}
	acts := salesactivities.NewActivities(sales)
	env.RegisterActivityWithOptions(acts.Capture, activity.RegisterOptions{Name: salesactivities.CaptureActivityName})

	env.ExecuteWorkflow(SnapshotWorkflow, SnapshotWorkflowInput{TraceID: "abc"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var snapshot domain.Snapshot
	require.NoError(t, env.GetWorkflowResult(&snapshot))
	assert.Equal(t, int64(11), snapshot.ID)
	assert.Equal(t, int64(9), snapshot.TotalItemsSold)
	assert.Equal(t, 3, sales.calls)
}

func TestSnapshotWorkflow_FailsAfterRetries(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	acts := salesactivities.NewActivities(&stubSales{fail: 100})
	env.RegisterActivityWithOptions(acts.Capture, activity.RegisterOptions{Name: salesactivities.CaptureActivityName})

	env.ExecuteWorkflow(SnapshotWorkflow, SnapshotWorkflowInput{})
	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	var appErr *temporal.ApplicationError
	assert.True(t, errors.As(err, &appErr))
}
