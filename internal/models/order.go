package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is order lifecycle state
type OrderStatus string

// order status
const (
	OrderStatusNew         OrderStatus = "NEW"
	OrderStatusReady       OrderStatus = "READY"
	OrderStatusPrinted     OrderStatus = "PRINTED"
	OrderStatusShipped     OrderStatus = "SHIPPED"
	OrderStatusProblematic OrderStatus = "PROBLEMATIC"
	OrderStatusCompleted   OrderStatus = "COMPLETED"
	OrderStatusCanceled    OrderStatus = "CANCELED"
)

// Order is order entity
type Order struct {
	ID               string
	OperatorID       uint64
	Status           OrderStatus
	Height           decimal.NullDecimal
	Width            decimal.NullDecimal
	Length           decimal.NullDecimal
	Weight           decimal.NullDecimal
	TrackingNumber   string
	CustomerName     string
	CustomerPhone    string
	ShippingAddress  string
	ShippingCity     string
	ShippingDistrict string
	Content          string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasTrackingNumber reports whether a label is currently issued for the order
func (o Order) HasTrackingNumber() bool {
	return o.TrackingNumber != ""
}
