package handler

//go:generate mockgen -source=label.go -destination=mocks/label.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rookgm/cargolabel/internal/models"
	"github.com/rookgm/cargolabel/internal/service"
)

type LabelService interface {
	// PlanLabels prices a creation batch without side effects
	PlanLabels(ctx context.Context, operatorID uint64, orderIDs []string) (models.BatchSummary, error)
	// CreateLabels books labels for selected orders
	CreateLabels(ctx context.Context, req service.CreateLabelsRequest) (*service.CreateLabelsResult, error)
	// CancelLabels voids labels of selected PRINTED orders
	CancelLabels(ctx context.Context, req service.CancelLabelsRequest) (*service.CancelLabelsResult, error)
	// CancelLabel voids label of one READY or PRINTED order
	CancelLabel(ctx context.Context, req service.CancelLabelsRequest) (*service.CancelLabelsResult, error)
}

// LabelHandler represents HTTP handler for label batches
type LabelHandler struct {
	svc LabelService
}

// NewLabelHandler creates new LabelHandler instance
func NewLabelHandler(svc LabelService) *LabelHandler {
	return &LabelHandler{svc: svc}
}

type labelsRequest struct {
	OrderIDs []string `json:"order_ids"`
	Confirm  bool     `json:"confirm"`
}

type cancelRequest struct {
	OrderIDs []string `json:"order_ids"`
	Confirm  bool     `json:"confirm"`
	Note     string   `json:"note"`
}

// confirmation answers the batch confirmation with the client's flag and keeps the offered summary
type confirmation struct {
	approved bool
	summary  *models.BatchSummary
}

func (c *confirmation) Confirm(_ context.Context, summary models.BatchSummary) (bool, error) {
	c.summary = &summary
	return c.approved, nil
}

// PreviewLabels returns the summary of a creation batch
// 200: batch summary;
// 400: no orders selected;
// 401: operator is not authenticated;
// 422: nothing to label or no sender address;
// 500: internal error.
func (lh *LabelHandler) PreviewLabels() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := operatorSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req labelsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		summary, err := lh.svc.PlanLabels(r.Context(), payload.OperatorID, req.OrderIDs)
		if err != nil {
			writeBatchError(w, err, nil)
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}

// CreateLabels runs a creation batch
// 200: batch finished, per-item failures are in the body;
// 400: no orders selected;
// 401: operator is not authenticated;
// 402: balance does not cover the batch;
// 409: batch was not confirmed, body is the summary;
// 422: nothing to label or no sender address;
// 423: another batch is running;
// 500: internal error.
func (lh *LabelHandler) CreateLabels() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := operatorSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req labelsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		conf := &confirmation{approved: req.Confirm}
		res, err := lh.svc.CreateLabels(r.Context(), service.CreateLabelsRequest{
			OperatorID: payload.OperatorID,
			OrderIDs:   req.OrderIDs,
			Confirm:    conf,
		})
		if err != nil {
			if res != nil {
				// labels exist at the carrier, report them along with the failure
				writeJSON(w, http.StatusInternalServerError, res)
				return
			}
			writeBatchError(w, err, conf.summary)
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}

// CancelLabels runs a cancellation batch
// 200: batch finished;
// 400: no orders selected;
// 401: operator is not authenticated;
// 409: batch was not confirmed, body is the summary;
// 422: more than 10 orders or nothing to cancel;
// 423: another batch is running;
// 500: internal error.
func (lh *LabelHandler) CancelLabels() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := operatorSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req cancelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		conf := &confirmation{approved: req.Confirm}
		res, err := lh.svc.CancelLabels(r.Context(), service.CancelLabelsRequest{
			OperatorID: payload.OperatorID,
			OrderIDs:   req.OrderIDs,
			Note:       req.Note,
			Confirm:    conf,
		})
		lh.writeCancelResult(w, res, err, conf)
	}
}

// CancelOrderLabel cancels the label of the order in the path.
// The body is optional; without it the batch is not confirmed.
func (lh *LabelHandler) CancelOrderLabel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := operatorSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req cancelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		conf := &confirmation{approved: req.Confirm}
		res, err := lh.svc.CancelLabel(r.Context(), service.CancelLabelsRequest{
			OperatorID: payload.OperatorID,
			OrderIDs:   []string{chi.URLParam(r, "id")},
			Note:       req.Note,
			Confirm:    conf,
		})
		lh.writeCancelResult(w, res, err, conf)
	}
}

func (lh *LabelHandler) writeCancelResult(w http.ResponseWriter, res *service.CancelLabelsResult, err error, conf *confirmation) {
	if err != nil {
		if res != nil {
			writeJSON(w, http.StatusInternalServerError, res)
			return
		}
		writeBatchError(w, err, conf.summary)
		return
	}

	writeJSON(w, http.StatusOK, res)
}
