package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rookgm/cargolabel/internal/models"
	"github.com/rookgm/cargolabel/internal/repository/postgres"
)

const (
	insertLabelQuery = `
						INSERT INTO shipping_labels (id, order_id, operator_id, tracking_number, carrier,
							shipping_price, is_canceled, cancel_note, created_at, canceled_at)
						VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`
	markOrderLabeledQuery = `
						UPDATE orders
						SET status = 'READY', tracking_number = $3, updated_at = NOW()
						WHERE operator_id = $1 AND id = $2 AND tracking_number IS NULL
`
	markOrderCanceledQuery = `
						UPDATE orders
						SET status = 'CANCELED', tracking_number = NULL, updated_at = NOW()
						WHERE operator_id = $1 AND id = $2 AND tracking_number = $3
`
	labelColumns = `
						id, order_id, operator_id, tracking_number, carrier, shipping_price,
						is_canceled, cancel_note, created_at, canceled_at
`
	selectIssuedLabelQuery = `
						SELECT` + labelColumns + `FROM shipping_labels
						WHERE order_id = $1 AND tracking_number = $2 AND NOT is_canceled
						ORDER BY created_at DESC
						LIMIT 1
`
	selectLabelsByOperatorQuery = `
						SELECT` + labelColumns + `FROM shipping_labels
						WHERE operator_id = $1
						ORDER BY created_at DESC
`
	selectDiscrepanciesQuery = `
						SELECT o.id, o.operator_id, o.status, COALESCE(o.tracking_number, ''),
							COALESCE(SUM(l.shipping_price), 0)
						FROM orders o
						LEFT JOIN shipping_labels l ON l.order_id = o.id
						GROUP BY o.id
						HAVING (o.tracking_number IS NOT NULL AND COALESCE(SUM(l.shipping_price), 0) <= 0)
							OR (o.tracking_number IS NULL AND COALESCE(SUM(l.shipping_price), 0) > 0)
`
)

// LabelRepository implements LabelRepository interface
type LabelRepository struct {
	db *postgres.DB
}

// NewLabelRepository creates new LabelRepository instance
func NewLabelRepository(db *postgres.DB) *LabelRepository {
	return &LabelRepository{db: db}
}

// RecordIssued moves order to READY with the label tracking number and appends the charge entry
func (lr *LabelRepository) RecordIssued(ctx context.Context, label models.ShippingLabel) error {
	return lr.db.WithTx(ctx, func(ctx context.Context) error {
		cmd, err := lr.db.Exec(ctx, markOrderLabeledQuery, label.OperatorID, label.OrderID, label.TrackingNumber)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return models.ErrConflictData
		}

		return lr.insert(ctx, label)
	})
}

// RecordCanceled appends the refund entry and moves order to CANCELED
func (lr *LabelRepository) RecordCanceled(ctx context.Context, label models.ShippingLabel) error {
	return lr.db.WithTx(ctx, func(ctx context.Context) error {
		if err := lr.insert(ctx, label); err != nil {
			return err
		}

		cmd, err := lr.db.Exec(ctx, markOrderCanceledQuery, label.OperatorID, label.OrderID, label.TrackingNumber)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return models.ErrConflictData
		}

		return nil
	})
}

func (lr *LabelRepository) insert(ctx context.Context, label models.ShippingLabel) error {
	_, err := lr.db.Exec(ctx, insertLabelQuery, label.ID, label.OrderID, label.OperatorID, label.TrackingNumber,
		label.Carrier, label.ShippingPrice, label.IsCanceled, label.CancelNote, label.CreatedAt, label.CanceledAt)
	if err != nil {
		if lr.db.ErrorCode(err) == pgErrUniqueViolationCode {
			return models.ErrConflictData
		}
		return err
	}

	return nil
}

// IssuedLabel returns the charge entry of the order's current label
func (lr *LabelRepository) IssuedLabel(ctx context.Context, orderID, trackingNumber string) (*models.ShippingLabel, error) {
	label, err := scanLabel(lr.db.QueryRow(ctx, selectIssuedLabelQuery, orderID, trackingNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &label, nil
}

// GetLabelsByOperatorID returns operator ledger entries, newest first
func (lr *LabelRepository) GetLabelsByOperatorID(ctx context.Context, operatorID uint64) ([]models.ShippingLabel, error) {
	rows, err := lr.db.Query(ctx, selectLabelsByOperatorQuery, operatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := []models.ShippingLabel{}
	for rows.Next() {
		label, err := scanLabel(rows)
		if err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return labels, nil
}

// GetDiscrepancies returns orders whose tracking number disagrees with the net sum of their entries
func (lr *LabelRepository) GetDiscrepancies(ctx context.Context) ([]models.LabelDiscrepancy, error) {
	rows, err := lr.db.Query(ctx, selectDiscrepanciesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.LabelDiscrepancy
	for rows.Next() {
		d := models.LabelDiscrepancy{}
		if err := rows.Scan(&d.OrderID, &d.OperatorID, &d.Status, &d.TrackingNumber, &d.NetAmount); err != nil {
			return nil, err
		}
		out = append(out, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func scanLabel(row pgx.Row) (models.ShippingLabel, error) {
	label := models.ShippingLabel{}
	err := row.Scan(&label.ID, &label.OrderID, &label.OperatorID, &label.TrackingNumber, &label.Carrier,
		&label.ShippingPrice, &label.IsCanceled, &label.CancelNote, &label.CreatedAt, &label.CanceledAt)
	return label, err
}
