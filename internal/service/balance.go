package service

import (
	"context"

	"github.com/rookgm/cargolabel/internal/models"
	"github.com/shopspring/decimal"
)

// LedgerRepository is interface for reading operator ledger entries
type LedgerRepository interface {
	// GetLabelsByOperatorID returns operator ledger entries, newest first
	GetLabelsByOperatorID(ctx context.Context, operatorID uint64) ([]models.ShippingLabel, error)
}

// BalanceService implements BalanceService interface
type BalanceService struct {
	balances BalanceRepository
	ledger   LedgerRepository
}

// NewBalanceService creates new BalanceService instance
func NewBalanceService(balances BalanceRepository, ledger LedgerRepository) *BalanceService {
	return &BalanceService{
		balances: balances,
		ledger:   ledger,
	}
}

// GetBalance returns current operator balance
func (bs *BalanceService) GetBalance(ctx context.Context, operatorID uint64) (decimal.Decimal, error) {
	return bs.balances.Balance(ctx, operatorID)
}

// GetLabels returns operator ledger entries
func (bs *BalanceService) GetLabels(ctx context.Context, operatorID uint64) ([]models.ShippingLabel, error) {
	labels, err := bs.ledger.GetLabelsByOperatorID(ctx, operatorID)
	if err != nil {
		return nil, err
	}

	if len(labels) == 0 {
		return nil, models.ErrDataNotFound
	}

	return labels, nil
}
