package service

import (
	"context"

	"github.com/rookgm/cargolabel/internal/logger"
	"github.com/rookgm/cargolabel/internal/models"
	"go.uber.org/zap"
)

// DiscrepancyRepository lists orders whose state disagrees with their ledger
type DiscrepancyRepository interface {
	GetDiscrepancies(ctx context.Context) ([]models.LabelDiscrepancy, error)
}

// ReconcileService reports local state left inconsistent by partial batch failures
type ReconcileService struct {
	repo DiscrepancyRepository
}

// NewReconcileService creates new ReconcileService instance
func NewReconcileService(repo DiscrepancyRepository) *ReconcileService {
	return &ReconcileService{repo: repo}
}

// Reconcile logs every discrepancy for manual follow-up and returns them
func (rs *ReconcileService) Reconcile(ctx context.Context) ([]models.LabelDiscrepancy, error) {
	found, err := rs.repo.GetDiscrepancies(ctx)
	if err != nil {
		return nil, err
	}

	for _, d := range found {
		reason := "label charged without tracking number"
		if d.TrackingNumber != "" {
			reason = "tracking number without charged label"
		}
		logger.Log.Warn("ledger discrepancy",
			zap.String("order", d.OrderID),
			zap.Uint64("operator", d.OperatorID),
			zap.String("status", string(d.Status)),
			zap.String("tracking", d.TrackingNumber),
			zap.String("net", d.NetAmount.StringFixed(2)),
			zap.String("reason", reason))
	}

	if len(found) > 0 {
		logger.Log.Info("reconciliation found discrepancies", zap.Int("count", len(found)))
	}

	return found, nil
}
