package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/rookgm/cargolabel/internal/models"
	"github.com/rookgm/cargolabel/internal/repository/postgres"
)

const pgErrUniqueViolationCode = pgerrcode.UniqueViolation

const (
	orderColumns = `
						id, operator_id, status, height, width, length, weight,
						tracking_number, customer_name, customer_phone, shipping_address,
						shipping_city, shipping_district, content, created_at, updated_at
`
	selectOrdersByIDsQuery = `
						SELECT` + orderColumns + `FROM orders
						WHERE operator_id = $1 AND id = ANY($2)
`
	selectOrderByIDQuery = `
						SELECT` + orderColumns + `FROM orders
						WHERE operator_id = $1 AND id = $2
`
	insertOrderQuery = `
						INSERT INTO orders (id, operator_id, status, height, width, length, weight,
							customer_name, customer_phone, shipping_address, shipping_city, shipping_district, content)
						VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`
)

// OrderRepository implements OrderRepository interface
type OrderRepository struct {
	db *postgres.DB
}

// NewOrderRepository creates new OrderRepository instance
func NewOrderRepository(db *postgres.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateOrder inserts new order to database
func (or *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	_, err := or.db.Exec(ctx, insertOrderQuery, order.ID, order.OperatorID, order.Status,
		order.Height, order.Width, order.Length, order.Weight,
		order.CustomerName, order.CustomerPhone, order.ShippingAddress, order.ShippingCity,
		order.ShippingDistrict, order.Content)
	if err != nil {
		if or.db.ErrorCode(err) == pgErrUniqueViolationCode {
			return models.ErrConflictData
		}
		return err
	}

	return nil
}

// GetOrdersByIDs returns operator orders matching ids, in the order ids were given.
// Unknown ids are silently absent from the result.
func (or *OrderRepository) GetOrdersByIDs(ctx context.Context, operatorID uint64, ids []string) ([]models.Order, error) {
	rows, err := or.db.Query(ctx, selectOrdersByIDsQuery, operatorID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]models.Order, len(ids))
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		byID[order.ID] = order
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(byID))
	for _, id := range ids {
		if order, ok := byID[id]; ok {
			orders = append(orders, order)
			delete(byID, id)
		}
	}

	return orders, nil
}

// GetOrder returns single operator order
func (or *OrderRepository) GetOrder(ctx context.Context, operatorID uint64, id string) (*models.Order, error) {
	order, err := scanOrder(or.db.QueryRow(ctx, selectOrderByIDQuery, operatorID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &order, nil
}

func scanOrder(row pgx.Row) (models.Order, error) {
	var (
		order    models.Order
		tracking *string
	)
	err := row.Scan(&order.ID, &order.OperatorID, &order.Status,
		&order.Height, &order.Width, &order.Length, &order.Weight,
		&tracking, &order.CustomerName, &order.CustomerPhone, &order.ShippingAddress,
		&order.ShippingCity, &order.ShippingDistrict, &order.Content, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return models.Order{}, err
	}
	if tracking != nil {
		order.TrackingNumber = *tracking
	}

	return order, nil
}
