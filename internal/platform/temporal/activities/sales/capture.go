package sales

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	"github.com/Apurer/cafe-api/internal/domains/sales/domain"
	salesports "github.com/Apurer/cafe-api/internal/domains/sales/ports"
)

// CaptureActivityName reads order totals and stores a snapshot.
const CaptureActivityName = "sales.activities.Capture"

// Activities groups activities that operate on the sales bounded context.
type Activities struct {
	service salesports.Service
}

func NewActivities(service salesports.Service) *Activities {
	return &Activities{service: service}
}

func (a *Activities) Capture(ctx context.Context) (*domain.Snapshot, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("sales capture activity not initialized")
		return nil, errors.New("sales capture activity not initialized")
	}
	logger.Info("Capture activity started")
	snapshot, err := a.service.Capture(ctx)
	if err != nil {
		logger.Error("Capture activity failed", "error", err)
		return nil, err
	}
	logger.Info("Capture activity completed", "snapshotId", snapshot.ID,
		"totalOrders", snapshot.TotalOrders, "totalItemsSold", snapshot.TotalItemsSold)
	return snapshot, nil
}
