package service

import (
	"context"
	"sync"

	"github.com/rookgm/cargolabel/internal/models"
	"github.com/shopspring/decimal"
)

// Confirmer asks the operator to approve a batch before any remote call is made
type Confirmer interface {
	Confirm(ctx context.Context, summary models.BatchSummary) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, summary models.BatchSummary) (bool, error)

// Confirm calls f
func (f ConfirmFunc) Confirm(ctx context.Context, summary models.BatchSummary) (bool, error) {
	return f(ctx, summary)
}

// Throttle spaces out carrier requests. *rate.Limiter satisfies it.
type Throttle interface {
	Wait(ctx context.Context) error
}

// Notifier receives batch events for observers other than the caller
type Notifier interface {
	BalanceChanged(operatorID uint64, balance decimal.Decimal)
	LabelProgress(operatorID uint64, event models.ProgressEvent)
}

type nopNotifier struct{}

func (nopNotifier) BalanceChanged(uint64, decimal.Decimal) {}
func (nopNotifier) LabelProgress(uint64, models.ProgressEvent) {}

// batchLocks allows one running batch per operator
type batchLocks struct {
	mu   sync.Mutex
	busy map[uint64]struct{}
}

func newBatchLocks() *batchLocks {
	return &batchLocks{busy: make(map[uint64]struct{})}
}

func (l *batchLocks) acquire(operatorID uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.busy[operatorID]; ok {
		return false
	}
	l.busy[operatorID] = struct{}{}
	return true
}

func (l *batchLocks) release(operatorID uint64) {
	l.mu.Lock()
	delete(l.busy, operatorID)
	l.mu.Unlock()
}

func confirm(ctx context.Context, c Confirmer, summary models.BatchSummary) error {
	if c == nil {
		return models.ErrDeclined
	}

	ok, err := c.Confirm(ctx, summary)
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrDeclined
	}

	return nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
