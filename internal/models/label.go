package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShippingLabel is an append-only ledger entry.
// ShippingPrice is positive for an issued label and negative for a cancellation refund.
type ShippingLabel struct {
	ID             uuid.UUID
	OrderID        string
	OperatorID     uint64
	TrackingNumber string
	Carrier        string
	ShippingPrice  decimal.Decimal
	IsCanceled     bool
	CancelNote     string
	CreatedAt      time.Time
	CanceledAt     *time.Time
}

// LabelDiscrepancy describes an order whose local state disagrees with its ledger entries
type LabelDiscrepancy struct {
	OrderID        string
	OperatorID     uint64
	Status         OrderStatus
	TrackingNumber string
	NetAmount      decimal.Decimal
}
