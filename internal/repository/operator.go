package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rookgm/cargolabel/internal/models"
	"github.com/rookgm/cargolabel/internal/repository/postgres"
)

const (
	insertOperatorQuery = `
						INSERT INTO operators (login, password_hash)
						VALUES ($1, $2)
						RETURNING id, tier, balance, created_at
`
	selectOperatorByLoginQuery = `
						SELECT id, login, password_hash, tier, balance, created_at FROM operators
						WHERE login = $1
`
)

// OperatorRepository implements OperatorRepository interface
type OperatorRepository struct {
	db *postgres.DB
}

// NewOperatorRepository creates new OperatorRepository instance
func NewOperatorRepository(db *postgres.DB) *OperatorRepository {
	return &OperatorRepository{db: db}
}

// CreateOperator inserts new operator
func (r *OperatorRepository) CreateOperator(ctx context.Context, op *models.Operator) (*models.Operator, error) {
	err := r.db.QueryRow(ctx, insertOperatorQuery, op.Login, op.PasswordHash).Scan(&op.ID, &op.Tier, &op.Balance, &op.CreatedAt)
	if err != nil {
		if r.db.ErrorCode(err) == pgErrUniqueViolationCode {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	return op, nil
}

// GetOperatorByLogin returns operator by login
func (r *OperatorRepository) GetOperatorByLogin(ctx context.Context, login string) (*models.Operator, error) {
	op := models.Operator{}
	err := r.db.QueryRow(ctx, selectOperatorByLoginQuery, login).Scan(&op.ID, &op.Login, &op.PasswordHash, &op.Tier, &op.Balance, &op.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &op, nil
}
