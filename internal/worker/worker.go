package worker

import (
	"context"
	"time"

	"github.com/rookgm/cargolabel/internal/logger"
	"github.com/rookgm/cargolabel/internal/models"
	"go.uber.org/zap"
)

// Reconciler finds orders whose label state disagrees with the ledger
type Reconciler interface {
	Reconcile(ctx context.Context) ([]models.LabelDiscrepancy, error)
}

// Reconciliation is worker that periodically checks labels against order state
type Reconciliation struct {
	svc      Reconciler
	interval time.Duration
}

// NewReconciliation creates new reconciliation worker
func NewReconciliation(svc Reconciler, interval time.Duration) *Reconciliation {
	return &Reconciliation{
		svc:      svc,
		interval: interval,
	}
}

// Run checks once per interval until ctx is done
func (rw *Reconciliation) Run(ctx context.Context) {
	ticker := time.NewTicker(rw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Log.Debug("reconciliation worker is done")
			return
		case <-ticker.C:
			if _, err := rw.svc.Reconcile(ctx); err != nil {
				logger.Log.Error("reconciliation failed", zap.Error(err))
			}
		}
	}
}
