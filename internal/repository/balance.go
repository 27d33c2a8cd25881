package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rookgm/cargolabel/internal/models"
	"github.com/rookgm/cargolabel/internal/repository/postgres"
	"github.com/shopspring/decimal"
)

const (
	selectBalanceQuery = `
						SELECT balance FROM operators
						WHERE id = $1
`
	adjustBalanceQuery = `
						UPDATE operators
						SET balance = balance + $2
						WHERE id = $1
						RETURNING balance
`
	selectTierQuery = `
						SELECT tier FROM operators
						WHERE id = $1
`
	selectRatesByTierQuery = `
						SELECT tier, desi, city_price, intercity_price FROM rate_tiers
						WHERE tier = $1
						ORDER BY desi ASC
`
	selectDefaultSenderQuery = `
						SELECT id, operator_id, name, phone, address, city, district, is_default, created_at
						FROM sender_addresses
						WHERE operator_id = $1 AND is_default
						ORDER BY created_at ASC, id ASC
						LIMIT 1
`
)

// BalanceRepository implements BalanceRepository interface
type BalanceRepository struct {
	db *postgres.DB
}

// NewBalanceRepository creates new balance repository instance
func NewBalanceRepository(db *postgres.DB) *BalanceRepository {
	return &BalanceRepository{db: db}
}

// Balance returns current balance
func (br *BalanceRepository) Balance(ctx context.Context, operatorID uint64) (decimal.Decimal, error) {
	var balance decimal.Decimal
	if err := br.db.QueryRow(ctx, selectBalanceQuery, operatorID).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, models.ErrDataNotFound
		}
		return decimal.Zero, err
	}

	return balance, nil
}

// AdjustBalance adds delta to balance server-side and returns the new value
func (br *BalanceRepository) AdjustBalance(ctx context.Context, operatorID uint64, delta decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	if err := br.db.QueryRow(ctx, adjustBalanceQuery, operatorID, delta).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, models.ErrDataNotFound
		}
		return decimal.Zero, err
	}

	return balance, nil
}

// Tier returns operator subscription tier
func (br *BalanceRepository) Tier(ctx context.Context, operatorID uint64) (string, error) {
	var tier string
	if err := br.db.QueryRow(ctx, selectTierQuery, operatorID).Scan(&tier); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", models.ErrDataNotFound
		}
		return "", err
	}

	return tier, nil
}

// RatesByTier returns tier rate brackets ordered by desi ascending
func (br *BalanceRepository) RatesByTier(ctx context.Context, tier string) ([]models.Rate, error) {
	rows, err := br.db.Query(ctx, selectRatesByTierQuery, tier)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []models.Rate
	for rows.Next() {
		rate := models.Rate{}
		if err := rows.Scan(&rate.Tier, &rate.Desi, &rate.CityPrice, &rate.IntercityPrice); err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rates, nil
}

// DefaultSender returns the first default-flagged sender address
func (br *BalanceRepository) DefaultSender(ctx context.Context, operatorID uint64) (*models.SenderAddress, error) {
	s := models.SenderAddress{}
	err := br.db.QueryRow(ctx, selectDefaultSenderQuery, operatorID).Scan(&s.ID, &s.OperatorID, &s.Name, &s.Phone,
		&s.Address, &s.City, &s.District, &s.IsDefault, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &s, nil
}
