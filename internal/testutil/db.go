// Package testutil holds helpers for Postgres integration tests.
// Tests are skipped when TEST_DATABASE_URI is not set or the database is unreachable.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rookgm/cargolabel/internal/models"
	"github.com/rookgm/cargolabel/internal/repository/postgres"
	"github.com/shopspring/decimal"
)

const testDBLockID int64 = 730915442

// NewTestDB connects to the test database, applies migrations and wipes operator data
func NewTestDB(t *testing.T) *postgres.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URI")
	if dsn == "" {
		t.Skip("skipping Postgres integration tests: TEST_DATABASE_URI is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := postgres.New(ctx, dsn)
	if err != nil {
		t.Skipf("skipping Postgres integration tests: %v", err)
	}
	t.Cleanup(db.Close)

	lockTestDB(t, db)

	if err := db.Migrate(); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	TruncateAll(t, db)

	return db
}

// TruncateAll removes everything except seeded rate tables
func TruncateAll(t *testing.T, db *postgres.DB) {
	t.Helper()
	_, err := db.Exec(context.Background(),
		`TRUNCATE shipping_labels, orders, sender_addresses, operators RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

// InsertOperator creates an operator with the given balance and returns its id
func InsertOperator(t *testing.T, db *postgres.DB, login string, balance decimal.Decimal) uint64 {
	t.Helper()
	var id uint64
	err := db.QueryRow(context.Background(),
		`INSERT INTO operators (login, password_hash, balance) VALUES ($1, 'x', $2) RETURNING id`,
		login, balance,
	).Scan(&id)
	if err != nil {
		t.Fatalf("insert operator: %v", err)
	}
	return id
}

// InsertSender creates a sender address for operator
func InsertSender(t *testing.T, db *postgres.DB, operatorID uint64, name, city string, isDefault bool) uint64 {
	t.Helper()
	var id uint64
	err := db.QueryRow(context.Background(), `
INSERT INTO sender_addresses (operator_id, name, address, city, is_default)
VALUES ($1, $2, 'Depo 1', $3, $4)
RETURNING id`,
		operatorID, name, city, isDefault,
	).Scan(&id)
	if err != nil {
		t.Fatalf("insert sender: %v", err)
	}
	return id
}

// InsertLabeledOrder creates an order and marks it labeled with tracking number when it is not empty
func InsertLabeledOrder(t *testing.T, db *postgres.DB, order models.Order) {
	t.Helper()
	var tracking *string
	if order.TrackingNumber != "" {
		tracking = &order.TrackingNumber
	}
	if order.Status == "" {
		order.Status = models.OrderStatusNew
	}
	_, err := db.Exec(context.Background(), `
INSERT INTO orders (id, operator_id, status, height, width, length, weight, tracking_number, shipping_city)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		order.ID, order.OperatorID, order.Status, order.Height, order.Width, order.Length, order.Weight,
		tracking, order.ShippingCity,
	)
	if err != nil {
		t.Fatalf("insert order: %v", err)
	}
}

func lockTestDB(t *testing.T, db *postgres.DB) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := db.Pool().Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire lock conn: %v", err)
	}
	if _, err := conn.Exec(ctx, `SELECT pg_advisory_lock($1)`, testDBLockID); err != nil {
		conn.Release()
		t.Fatalf("acquire test lock: %v", err)
	}

	t.Cleanup(func() {
		_, _ = conn.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, testDBLockID)
		conn.Release()
	})
}
