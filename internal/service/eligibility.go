package service

import "github.com/rookgm/cargolabel/internal/models"

// MaxCancelBatch is the largest selection a cancellation batch accepts
const MaxCancelBatch = 10

// CancelScope tells which flow asks for cancellation eligibility
type CancelScope int

const (
	// CancelScopeBulk accepts PRINTED orders only
	CancelScopeBulk CancelScope = iota
	// CancelScopeSingle accepts PRINTED and READY orders
	CancelScopeSingle
)

// CanIssueLabel reports whether a label may be created for order
func CanIssueLabel(order models.Order) bool {
	return !order.HasTrackingNumber()
}

// CanCancelLabel reports whether order's label may be voided from the given flow
func CanCancelLabel(order models.Order, scope CancelScope) bool {
	if !order.HasTrackingNumber() {
		return false
	}

	switch order.Status {
	case models.OrderStatusPrinted:
		return true
	case models.OrderStatusReady:
		return scope == CancelScopeSingle
	default:
		return false
	}
}

// partition splits orders into those matching pred and the number of requested ids left out
func partition(requested int, orders []models.Order, pred func(models.Order) bool) ([]models.Order, int) {
	eligible := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if pred(o) {
			eligible = append(eligible, o)
		}
	}

	return eligible, requested - len(eligible)
}
