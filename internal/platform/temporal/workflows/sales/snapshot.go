package sales

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/cafe-api/internal/domains/sales/domain"
	salesactivities "github.com/Apurer/cafe-api/internal/platform/temporal/activities/sales"
)

const (
	// SnapshotWorkflowName is the public identifier for registering the workflow.
	SnapshotWorkflowName = "sales.workflows.Snapshot"
	// SnapshotTaskQueue is the queue consumed by the worker processing sales workflows.
	SnapshotTaskQueue = "SALES_SNAPSHOT"
)

type SnapshotWorkflowInput struct {
	TraceID string
}

// SnapshotWorkflow runs the capture activity with retries.
func SnapshotWorkflow(ctx workflow.Context, input SnapshotWorkflowInput) (*domain.Snapshot, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("SnapshotWorkflow started", withTraceID(input.TraceID)...)

	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    5,
		},
	}
	var snapshot domain.Snapshot
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, options), salesactivities.CaptureActivityName).Get(ctx, &snapshot)
	if err != nil {
		logger.Error("SnapshotWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return nil, err
	}
	logger.Info("SnapshotWorkflow completed", withTraceID(input.TraceID, "snapshotId", snapshot.ID)...)
	return &snapshot, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
