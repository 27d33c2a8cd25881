package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rookgm/cargolabel/internal/carrier"
	"github.com/rookgm/cargolabel/internal/logger"
	"github.com/rookgm/cargolabel/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderRepository is interface for reading orders
type OrderRepository interface {
	// GetOrdersByIDs returns operator orders in the order ids were given
	GetOrdersByIDs(ctx context.Context, operatorID uint64, ids []string) ([]models.Order, error)
	// GetOrder returns single operator order
	GetOrder(ctx context.Context, operatorID uint64, id string) (*models.Order, error)
}

// LabelRepository is interface for the shipping label ledger
type LabelRepository interface {
	// RecordIssued moves order to READY and appends the charge entry
	RecordIssued(ctx context.Context, label models.ShippingLabel) error
	// RecordCanceled appends the refund entry and moves order to CANCELED
	RecordCanceled(ctx context.Context, label models.ShippingLabel) error
	// IssuedLabel returns the charge entry of the order's current label
	IssuedLabel(ctx context.Context, orderID, trackingNumber string) (*models.ShippingLabel, error)
}

// BalanceRepository is interface for operator balance
type BalanceRepository interface {
	// Balance returns current balance
	Balance(ctx context.Context, operatorID uint64) (decimal.Decimal, error)
	// AdjustBalance adds delta to balance and returns the new value
	AdjustBalance(ctx context.Context, operatorID uint64, delta decimal.Decimal) (decimal.Decimal, error)
}

// SenderRepository is interface for sender addresses
type SenderRepository interface {
	// DefaultSender returns the first default-flagged sender address
	DefaultSender(ctx context.Context, operatorID uint64) (*models.SenderAddress, error)
}

// Carrier books and voids shipments
type Carrier interface {
	SubmitShipment(ctx context.Context, shipment carrier.Shipment) (*carrier.SubmitResult, error)
	CancelShipment(ctx context.Context, trackingNumber string) (*carrier.CancelResult, error)
}

// LabelService orchestrates bulk label creation and cancellation
type LabelService struct {
	orders      OrderRepository
	labels      LabelRepository
	balances    BalanceRepository
	senders     SenderRepository
	pricer      *Pricer
	carrier     Carrier
	throttle    Throttle
	notifier    Notifier
	carrierName string
	locks       *batchLocks
	now         func() time.Time
	reference   func() string
}

// LabelServiceOption configures LabelService
type LabelServiceOption func(*LabelService)

// WithNotifier sets observer of balance changes and item progress
func WithNotifier(n Notifier) LabelServiceOption {
	return func(ls *LabelService) {
		ls.notifier = n
	}
}

// WithClock sets time source of ledger timestamps
func WithClock(now func() time.Time) LabelServiceOption {
	return func(ls *LabelService) {
		ls.now = now
	}
}

// WithReferenceGenerator sets generator of carrier reference codes
func WithReferenceGenerator(gen func() string) LabelServiceOption {
	return func(ls *LabelService) {
		ls.reference = gen
	}
}

// NewLabelService creates new LabelService instance
func NewLabelService(
	orders OrderRepository,
	labels LabelRepository,
	balances BalanceRepository,
	senders SenderRepository,
	pricer *Pricer,
	c Carrier,
	throttle Throttle,
	carrierName string,
	opts ...LabelServiceOption,
) *LabelService {
	ls := &LabelService{
		orders:      orders,
		labels:      labels,
		balances:    balances,
		senders:     senders,
		pricer:      pricer,
		carrier:     c,
		throttle:    throttle,
		notifier:    nopNotifier{},
		carrierName: carrierName,
		locks:       newBatchLocks(),
		now:         func() time.Time { return time.Now().UTC() },
		reference:   carrier.NewReferenceCode,
	}
	for _, opt := range opts {
		opt(ls)
	}

	return ls
}

// CreateLabelsRequest is input of a creation batch
type CreateLabelsRequest struct {
	OperatorID uint64
	OrderIDs   []string
	Confirm    Confirmer
	// OnComplete is called once when at least one label was created
	OnComplete func()
	// Progress receives one event per processed order
	Progress func(models.ProgressEvent)
}

// CreateLabelsResult is outcome of a creation batch
type CreateLabelsResult struct {
	Success          bool                 `json:"success"`
	SuccessCount     int                  `json:"success_count"`
	ErrorCount       int                  `json:"error_count"`
	SkippedCount     int                  `json:"skipped_count"`
	TotalSpent       decimal.Decimal      `json:"total_spent"`
	RemainingBalance decimal.Decimal      `json:"remaining_balance"`
	Failures         []models.ItemFailure `json:"failures,omitempty"`
}

type creationPlan struct {
	requested int
	eligible  []models.Order
	skipped   int
	sender    models.SenderAddress
	tier      string
	// prices holds the confirmed price of every eligible order, zero when pricing failed
	prices    map[string]decimal.Decimal
	total     decimal.Decimal
	balance   decimal.Decimal
}

func (p *creationPlan) summary() models.BatchSummary {
	return models.BatchSummary{
		Kind:          models.BatchCreate,
		Requested:     p.requested,
		Eligible:      len(p.eligible),
		Skipped:       p.skipped,
		Total:         p.total,
		BalanceBefore: p.balance,
		BalanceAfter:  p.balance.Sub(p.total),
		Affordable:    p.balance.GreaterThanOrEqual(p.total),
	}
}

// PlanLabels prices a creation batch without side effects
func (ls *LabelService) PlanLabels(ctx context.Context, operatorID uint64, orderIDs []string) (models.BatchSummary, error) {
	ids := uniqueIDs(orderIDs)
	if len(ids) == 0 {
		return models.BatchSummary{}, models.ErrNoOrdersSelected
	}

	plan, err := ls.planCreation(ctx, operatorID, ids)
	if err != nil {
		return models.BatchSummary{}, err
	}

	return plan.summary(), nil
}

// CreateLabels books a label for every selected order without one.
// Only validation, funds and confirmation failures abort the batch; single order failures are counted.
func (ls *LabelService) CreateLabels(ctx context.Context, req CreateLabelsRequest) (*CreateLabelsResult, error) {
	ids := uniqueIDs(req.OrderIDs)
	if len(ids) == 0 {
		return nil, models.ErrNoOrdersSelected
	}

	if !ls.locks.acquire(req.OperatorID) {
		return nil, models.ErrBatchInProgress
	}
	defer ls.locks.release(req.OperatorID)

	plan, err := ls.planCreation(ctx, req.OperatorID, ids)
	if err != nil {
		return nil, err
	}

	if plan.balance.LessThan(plan.total) {
		return nil, &models.InsufficientFundsError{Balance: plan.balance, Required: plan.total}
	}

	if err := confirm(ctx, req.Confirm, plan.summary()); err != nil {
		return nil, err
	}

	logger.Log.Info("label batch started",
		zap.Uint64("operator", req.OperatorID),
		zap.Int("orders", len(plan.eligible)),
		zap.String("total", plan.total.StringFixed(2)))

	result := &CreateLabelsResult{SkippedCount: plan.skipped}
	spent := decimal.Zero
	total := len(plan.eligible)

	for i, order := range plan.eligible {
		event := models.ProgressEvent{Kind: models.BatchCreate, Index: i + 1, Total: total, OrderID: order.ID}

		label, err := ls.issueLabel(ctx, req.OperatorID, plan, order.ID)
		if err != nil {
			result.ErrorCount++
			result.Failures = append(result.Failures, models.ItemFailure{OrderID: order.ID, Error: err.Error()})
			logger.Log.Warn("label creation failed", zap.String("order", order.ID), zap.Error(err))

			event.Outcome = models.OutcomeFailed
			event.Error = err.Error()
		} else {
			result.SuccessCount++
			spent = spent.Add(plan.prices[order.ID])

			event.Outcome = models.OutcomeSucceeded
			event.TrackingNumber = label.TrackingNumber
			event.Amount = label.ShippingPrice
		}
		ls.emit(req.OperatorID, req.Progress, event)
	}

	result.TotalSpent = spent
	result.RemainingBalance = plan.balance
	result.Success = result.SuccessCount > 0

	if result.SuccessCount == 0 {
		return result, nil
	}

	// the debit is the confirmed price; settle even if the caller went away
	balance, err := ls.balances.AdjustBalance(context.WithoutCancel(ctx), req.OperatorID, spent.Neg())
	if err != nil {
		logger.Log.Error("balance debit failed after label batch",
			zap.Uint64("operator", req.OperatorID),
			zap.String("amount", spent.StringFixed(2)),
			zap.Error(err))
		result.RemainingBalance = plan.balance.Sub(spent)
		return result, fmt.Errorf("%w: %w", models.ErrBalanceNotSettled, err)
	}

	result.RemainingBalance = balance
	ls.notifier.BalanceChanged(req.OperatorID, balance)
	if req.OnComplete != nil {
		req.OnComplete()
	}

	logger.Log.Info("label batch finished",
		zap.Uint64("operator", req.OperatorID),
		zap.Int("succeeded", result.SuccessCount),
		zap.Int("failed", result.ErrorCount),
		zap.String("spent", spent.StringFixed(2)))

	return result, nil
}

func (ls *LabelService) planCreation(ctx context.Context, operatorID uint64, ids []string) (*creationPlan, error) {
	orders, err := ls.orders.GetOrdersByIDs(ctx, operatorID, ids)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	eligible, skipped := partition(len(ids), orders, CanIssueLabel)
	if len(eligible) == 0 {
		return nil, models.ErrAllAlreadyLabeled
	}

	sender, err := ls.senders.DefaultSender(ctx, operatorID)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return nil, models.ErrNoSenderAddress
		}
		return nil, fmt.Errorf("load sender address: %w", err)
	}

	plan := &creationPlan{
		requested: len(ids),
		eligible:  eligible,
		skipped:   skipped,
		sender:    *sender,
		tier:      ls.pricer.ResolveTier(ctx, operatorID),
		prices:    make(map[string]decimal.Decimal, len(eligible)),
		total:     decimal.Zero,
	}

	for _, order := range eligible {
		price, err := ls.pricer.Price(ctx, order, plan.sender, plan.tier)
		if err != nil {
			// priced again at submission, where a persistent failure fails the item
			logger.Log.Warn("order pricing failed", zap.String("order", order.ID), zap.Error(err))
			price = decimal.Zero
		}
		plan.prices[order.ID] = price
		plan.total = plan.total.Add(price)
	}

	plan.balance, err = ls.balances.Balance(ctx, operatorID)
	if err != nil {
		return nil, fmt.Errorf("read balance: %w", err)
	}

	return plan, nil
}

func (ls *LabelService) issueLabel(ctx context.Context, operatorID uint64, plan *creationPlan, orderID string) (*models.ShippingLabel, error) {
	if err := ls.throttle.Wait(ctx); err != nil {
		return nil, err
	}

	// dimensions may have been edited since planning
	order, err := ls.orders.GetOrder(ctx, operatorID, orderID)
	if err != nil {
		return nil, fmt.Errorf("reload order: %w", err)
	}
	if !CanIssueLabel(*order) {
		return nil, models.ErrConflictData
	}

	price, err := ls.pricer.Price(ctx, *order, plan.sender, plan.tier)
	if err != nil {
		return nil, fmt.Errorf("price order: %w", err)
	}
	if !price.IsPositive() {
		return nil, models.ErrNotPriceable
	}
	if confirmed := plan.prices[order.ID]; price.GreaterThan(confirmed) {
		return nil, &models.PriceIncreasedError{Confirmed: confirmed, Current: price}
	}

	desi, _ := Desi(*order)
	shipment := carrier.BuildShipment(*order, plan.sender, desi, ls.reference())

	res, err := ls.carrier.SubmitShipment(ctx, shipment)
	if err != nil {
		return nil, fmt.Errorf("submit shipment: %w", err)
	}
	if !res.Success {
		return nil, &models.CarrierError{Message: res.Message}
	}

	label := models.ShippingLabel{
		ID:             uuid.New(),
		OrderID:        order.ID,
		OperatorID:     operatorID,
		TrackingNumber: res.TrackingID,
		Carrier:        ls.carrierName,
		ShippingPrice:  price,
		CreatedAt:      ls.now(),
	}

	if err := ls.labels.RecordIssued(ctx, label); err != nil {
		// the carrier holds a shipment we have no record of
		logger.Log.Error("shipment booked but not recorded",
			zap.String("order", order.ID),
			zap.String("tracking", res.TrackingID),
			zap.String("reference", shipment.ReferenceCode),
			zap.Error(err))
		return nil, fmt.Errorf("record label: %w", err)
	}

	return &label, nil
}

func (ls *LabelService) emit(operatorID uint64, progress func(models.ProgressEvent), event models.ProgressEvent) {
	if progress != nil {
		progress(event)
	}
	ls.notifier.LabelProgress(operatorID, event)
}
