package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rookgm/cargolabel/internal/logger"
	"github.com/rookgm/cargolabel/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultCancelNote is stored on refund entries when the operator gave no note
const DefaultCancelNote = "Label canceled by operator"

// CancelLabelsRequest is input of a cancellation batch
type CancelLabelsRequest struct {
	OperatorID uint64
	OrderIDs   []string
	Note       string
	Confirm    Confirmer
	// OnComplete is called once when at least one label was canceled
	OnComplete func()
	// Progress receives one event per processed order
	Progress func(models.ProgressEvent)
}

// CancelLabelsResult is outcome of a cancellation batch
type CancelLabelsResult struct {
	Success          bool                 `json:"success"`
	CanceledCount    int                  `json:"canceled_count"`
	ErrorCount       int                  `json:"error_count"`
	SkippedCount     int                  `json:"skipped_count"`
	TotalRefund      decimal.Decimal      `json:"total_refund"`
	RemainingBalance decimal.Decimal      `json:"remaining_balance"`
	Failures         []models.ItemFailure `json:"failures,omitempty"`
}

type cancelItem struct {
	order   models.Order
	refund  decimal.Decimal
	carrier string
}

type cancellationPlan struct {
	requested int
	items     []cancelItem
	skipped   int
	total     decimal.Decimal
	balance   decimal.Decimal
}

func (p *cancellationPlan) summary() models.BatchSummary {
	return models.BatchSummary{
		Kind:          models.BatchCancel,
		Requested:     p.requested,
		Eligible:      len(p.items),
		Skipped:       p.skipped,
		Total:         p.total,
		BalanceBefore: p.balance,
		BalanceAfter:  p.balance.Add(p.total),
		Affordable:    true,
	}
}

// CancelLabels voids the labels of selected PRINTED orders and refunds their price
func (ls *LabelService) CancelLabels(ctx context.Context, req CancelLabelsRequest) (*CancelLabelsResult, error) {
	ids := uniqueIDs(req.OrderIDs)
	if len(ids) == 0 {
		return nil, models.ErrNoOrdersSelected
	}
	if len(ids) > MaxCancelBatch {
		return nil, models.ErrCancelBatchTooLarge
	}

	if !ls.locks.acquire(req.OperatorID) {
		return nil, models.ErrBatchInProgress
	}
	defer ls.locks.release(req.OperatorID)

	orders, err := ls.orders.GetOrdersByIDs(ctx, req.OperatorID, ids)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	return ls.cancel(ctx, req, len(ids), orders, CancelScopeBulk)
}

// CancelLabel voids the label of one READY or PRINTED order
func (ls *LabelService) CancelLabel(ctx context.Context, req CancelLabelsRequest) (*CancelLabelsResult, error) {
	ids := uniqueIDs(req.OrderIDs)
	if len(ids) == 0 {
		return nil, models.ErrNoOrdersSelected
	}
	if len(ids) > 1 {
		return nil, fmt.Errorf("single cancellation got %d orders: %w", len(ids), models.ErrCancelBatchTooLarge)
	}

	if !ls.locks.acquire(req.OperatorID) {
		return nil, models.ErrBatchInProgress
	}
	defer ls.locks.release(req.OperatorID)

	order, err := ls.orders.GetOrder(ctx, req.OperatorID, ids[0])
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return nil, models.ErrNothingToCancel
		}
		return nil, fmt.Errorf("load order: %w", err)
	}

	return ls.cancel(ctx, req, 1, []models.Order{*order}, CancelScopeSingle)
}

func (ls *LabelService) cancel(ctx context.Context, req CancelLabelsRequest, requested int, orders []models.Order, scope CancelScope) (*CancelLabelsResult, error) {
	plan, err := ls.planCancellation(ctx, requested, orders, scope)
	if err != nil {
		return nil, err
	}

	plan.balance, err = ls.balances.Balance(ctx, req.OperatorID)
	if err != nil {
		return nil, fmt.Errorf("read balance: %w", err)
	}

	if err := confirm(ctx, req.Confirm, plan.summary()); err != nil {
		return nil, err
	}

	note := req.Note
	if note == "" {
		note = DefaultCancelNote
	}

	logger.Log.Info("cancel batch started",
		zap.Uint64("operator", req.OperatorID),
		zap.Int("orders", len(plan.items)),
		zap.String("refund", plan.total.StringFixed(2)))

	result := &CancelLabelsResult{SkippedCount: plan.skipped}
	refunded := decimal.Zero
	total := len(plan.items)

	for i, item := range plan.items {
		event := models.ProgressEvent{Kind: models.BatchCancel, Index: i + 1, Total: total, OrderID: item.order.ID}

		label, err := ls.voidLabel(ctx, req.OperatorID, item, note)
		if err != nil {
			result.ErrorCount++
			result.Failures = append(result.Failures, models.ItemFailure{OrderID: item.order.ID, Error: err.Error()})
			logger.Log.Warn("label cancellation failed", zap.String("order", item.order.ID), zap.Error(err))

			event.Outcome = models.OutcomeFailed
			event.Error = err.Error()
		} else {
			result.CanceledCount++
			refunded = refunded.Add(item.refund)

			event.Outcome = models.OutcomeSucceeded
			event.TrackingNumber = label.TrackingNumber
			event.Amount = label.ShippingPrice
		}
		ls.emit(req.OperatorID, req.Progress, event)
	}

	result.TotalRefund = refunded
	result.RemainingBalance = plan.balance
	result.Success = result.CanceledCount > 0

	if result.CanceledCount == 0 {
		return result, nil
	}

	balance, err := ls.balances.AdjustBalance(context.WithoutCancel(ctx), req.OperatorID, refunded)
	if err != nil {
		logger.Log.Error("balance credit failed after cancel batch",
			zap.Uint64("operator", req.OperatorID),
			zap.String("amount", refunded.StringFixed(2)),
			zap.Error(err))
		result.RemainingBalance = plan.balance.Add(refunded)
		return result, fmt.Errorf("%w: %w", models.ErrBalanceNotSettled, err)
	}

	result.RemainingBalance = balance
	ls.notifier.BalanceChanged(req.OperatorID, balance)
	if req.OnComplete != nil {
		req.OnComplete()
	}

	logger.Log.Info("cancel batch finished",
		zap.Uint64("operator", req.OperatorID),
		zap.Int("canceled", result.CanceledCount),
		zap.Int("failed", result.ErrorCount),
		zap.String("refunded", refunded.StringFixed(2)))

	return result, nil
}

func (ls *LabelService) planCancellation(ctx context.Context, requested int, orders []models.Order, scope CancelScope) (*cancellationPlan, error) {
	eligible, skipped := partition(requested, orders, func(o models.Order) bool {
		return CanCancelLabel(o, scope)
	})
	if len(eligible) == 0 {
		return nil, models.ErrNothingToCancel
	}

	plan := &cancellationPlan{
		requested: requested,
		items:     make([]cancelItem, 0, len(eligible)),
		skipped:   skipped,
		total:     decimal.Zero,
	}

	for _, order := range eligible {
		refund := decimal.Zero
		carrierName := ls.carrierName
		label, err := ls.labels.IssuedLabel(ctx, order.ID, order.TrackingNumber)
		if err != nil {
			logger.Log.Warn("issued label not found, refunding zero",
				zap.String("order", order.ID),
				zap.String("tracking", order.TrackingNumber),
				zap.Error(err))
		} else {
			refund = label.ShippingPrice
			carrierName = label.Carrier
		}

		plan.items = append(plan.items, cancelItem{order: order, refund: refund, carrier: carrierName})
		plan.total = plan.total.Add(refund)
	}

	return plan, nil
}

func (ls *LabelService) voidLabel(ctx context.Context, operatorID uint64, item cancelItem, note string) (*models.ShippingLabel, error) {
	if err := ls.throttle.Wait(ctx); err != nil {
		return nil, err
	}

	res, err := ls.carrier.CancelShipment(ctx, item.order.TrackingNumber)
	if err != nil {
		return nil, fmt.Errorf("cancel shipment: %w", err)
	}
	if !res.Success {
		return nil, &models.CarrierError{Message: res.Message}
	}

	now := ls.now()
	label := models.ShippingLabel{
		ID:             uuid.New(),
		OrderID:        item.order.ID,
		OperatorID:     operatorID,
		TrackingNumber: item.order.TrackingNumber,
		Carrier:        item.carrier,
		ShippingPrice:  item.refund.Neg(),
		IsCanceled:     true,
		CancelNote:     note,
		CreatedAt:      now,
		CanceledAt:     &now,
	}

	if err := ls.labels.RecordCanceled(ctx, label); err != nil {
		logger.Log.Error("shipment voided but not recorded",
			zap.String("order", item.order.ID),
			zap.String("tracking", item.order.TrackingNumber),
			zap.Error(err))
		return nil, fmt.Errorf("record cancellation: %w", err)
	}

	return &label, nil
}
