package handler

//go:generate mockgen -source=order.go -destination=mocks/order.go -package=mocks

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rookgm/cargolabel/internal/service"
)

type OrderService interface {
	Quote(ctx context.Context, operatorID uint64, orderID string) (*service.Quote, error)
}

// OrderHandler represents HTTP handler for order-related requests
type OrderHandler struct {
	svc OrderService
}

// NewOrderHandler creates new OrderHandler instance
func NewOrderHandler(svc OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// QuoteOrder returns live price of the order in the path
// 200: quote;
// 401: operator is not authenticated;
// 404: order not found;
// 422: no sender address;
// 500: internal error.
func (oh *OrderHandler) QuoteOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := operatorSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		quote, err := oh.svc.Quote(r.Context(), payload.OperatorID, chi.URLParam(r, "id"))
		if err != nil {
			writeBatchError(w, err, nil)
			return
		}

		writeJSON(w, http.StatusOK, quote)
	}
}
