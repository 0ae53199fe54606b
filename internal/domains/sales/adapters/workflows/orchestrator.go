package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/cafe-api/internal/domains/sales/domain"
	"github.com/Apurer/cafe-api/internal/domains/sales/ports"
	salesworkflows "github.com/Apurer/cafe-api/internal/platform/temporal/workflows/sales"
)

var (
	_ ports.SnapshotOrchestrator = (*TemporalSnapshots)(nil)
	_ ports.SnapshotOrchestrator = (*InlineSnapshots)(nil)
)

// WorkflowStarter is the part of client.Client used to start snapshot runs.
type WorkflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
	GetWorkflow(ctx context.Context, workflowID string, runID string) client.WorkflowRun
}

// TemporalSnapshots runs captures as Temporal workflows and waits for the result.
type TemporalSnapshots struct {
	client    WorkflowStarter
	taskQueue string
	now       func() time.Time
}

func NewTemporalSnapshots(c WorkflowStarter) *TemporalSnapshots {
	return &TemporalSnapshots{client: c, taskQueue: salesworkflows.SnapshotTaskQueue, now: time.Now}
}

func (o *TemporalSnapshots) Capture(ctx context.Context) (*domain.Snapshot, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal sales workflows not configured")
	}
	traceID := workflowTraceID(ctx)
	options := client.StartWorkflowOptions{
		ID:        buildSnapshotWorkflowID(traceID, o.now()),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(ctx, options, salesworkflows.SnapshotWorkflowName,
		salesworkflows.SnapshotWorkflowInput{TraceID: traceID})
	if err != nil {
		// A retried request carrying the same trace joins the run already in flight.
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) || traceID == "" {
			return nil, err
		}
		run = o.client.GetWorkflow(ctx, options.ID, alreadyStarted.RunId)
	}
	var snapshot domain.Snapshot
	if err := run.Get(ctx, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// InlineSnapshots captures synchronously without Temporal, for tests or dev fallbacks.
type InlineSnapshots struct {
	service ports.Service
}

func NewInlineSnapshots(service ports.Service) *InlineSnapshots {
	return &InlineSnapshots{service: service}
}

func (o *InlineSnapshots) Capture(ctx context.Context) (*domain.Snapshot, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline sales workflows not configured")
	}
	return o.service.Capture(ctx)
}

func buildSnapshotWorkflowID(traceID string, now time.Time) string {
	if traceID != "" {
		return fmt.Sprintf("sales-snapshot-%s", traceID)
	}
	return fmt.Sprintf("sales-snapshot-%d", now.UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
