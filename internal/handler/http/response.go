package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rookgm/cargolabel/internal/logger"
	"github.com/rookgm/cargolabel/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error    string           `json:"error"`
	Balance  *decimal.Decimal `json:"balance,omitempty"`
	Required *decimal.Decimal `json:"required,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Debug("write response", zap.Error(err))
	}
}

// batchErrorStatus maps batch-fatal errors to response codes
func batchErrorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrNoOrdersSelected),
		errors.Is(err, models.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrAllAlreadyLabeled),
		errors.Is(err, models.ErrNothingToCancel),
		errors.Is(err, models.ErrCancelBatchTooLarge),
		errors.Is(err, models.ErrNoSenderAddress):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrInsufficientBalance):
		return http.StatusPaymentRequired
	case errors.Is(err, models.ErrDeclined):
		return http.StatusConflict
	case errors.Is(err, models.ErrBatchInProgress):
		return http.StatusLocked
	case errors.Is(err, models.ErrDataNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeBatchError writes a batch-fatal error. A declined batch answers with the summary it was offered.
func writeBatchError(w http.ResponseWriter, err error, summary *models.BatchSummary) {
	status := batchErrorStatus(err)

	if status == http.StatusConflict && summary != nil {
		writeJSON(w, status, summary)
		return
	}

	if status == http.StatusInternalServerError {
		logger.Log.Error("batch failed", zap.Error(err))
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}

	resp := errorResponse{Error: err.Error()}
	var funds *models.InsufficientFundsError
	if errors.As(err, &funds) {
		resp.Balance = &funds.Balance
		resp.Required = &funds.Required
	}
	writeJSON(w, status, resp)
}
