package handler

//go:generate mockgen -source=balance.go -destination=mocks/balance.go -package=mocks

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rookgm/cargolabel/internal/models"
	"github.com/shopspring/decimal"
)

type BalanceService interface {
	// GetBalance returns current operator balance
	GetBalance(ctx context.Context, operatorID uint64) (decimal.Decimal, error)
	// GetLabels returns operator ledger entries
	GetLabels(ctx context.Context, operatorID uint64) ([]models.ShippingLabel, error)
}

// BalanceHandler represents HTTP handler for balance-related requests
type BalanceHandler struct {
	svc BalanceService
}

// NewBalanceHandler creates new BalanceHandler instance
func NewBalanceHandler(svc BalanceService) *BalanceHandler {
	return &BalanceHandler{svc: svc}
}

type balanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// GetBalance returns current operator balance
// 200: balance;
// 401: operator is not authenticated;
// 500: internal error.
func (bh *BalanceHandler) GetBalance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := operatorSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		balance, err := bh.svc.GetBalance(r.Context(), payload.OperatorID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, balanceResponse{Balance: balance})
	}
}

type labelResponse struct {
	OrderID        string          `json:"order_id"`
	TrackingNumber string          `json:"tracking_number"`
	Carrier        string          `json:"carrier"`
	ShippingPrice  decimal.Decimal `json:"shipping_price"`
	IsCanceled     bool            `json:"is_canceled"`
	CancelNote     string          `json:"cancel_note,omitempty"`
	CreatedAt      string          `json:"created_at"`
}

// ListLabels returns operator ledger entries
// 200: entries, newest first;
// 204: no entries;
// 401: operator is not authenticated;
// 500: internal error.
func (bh *BalanceHandler) ListLabels() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := operatorSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		labels, err := bh.svc.GetLabels(r.Context(), payload.OperatorID)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				w.WriteHeader(http.StatusNoContent)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		resp := make([]labelResponse, 0, len(labels))
		for _, l := range labels {
			resp = append(resp, labelResponse{
				OrderID:        l.OrderID,
				TrackingNumber: l.TrackingNumber,
				Carrier:        l.Carrier,
				ShippingPrice:  l.ShippingPrice,
				IsCanceled:     l.IsCanceled,
				CancelNote:     l.CancelNote,
				CreatedAt:      l.CreatedAt.Format(time.RFC3339),
			})
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
