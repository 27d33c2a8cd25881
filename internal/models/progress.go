package models

import "github.com/shopspring/decimal"

// BatchKind names the orchestrator that produced an event or summary
type BatchKind string

const (
	BatchCreate BatchKind = "create"
	BatchCancel BatchKind = "cancel"
)

// ItemOutcome is result of one batch item
type ItemOutcome string

const (
	OutcomeSucceeded ItemOutcome = "succeeded"
	OutcomeFailed    ItemOutcome = "failed"
)

// ProgressEvent is emitted once per processed batch item
type ProgressEvent struct {
	Kind           BatchKind       `json:"kind"`
	Index          int             `json:"index"`
	Total          int             `json:"total"`
	OrderID        string          `json:"order_id"`
	Outcome        ItemOutcome     `json:"outcome"`
	TrackingNumber string          `json:"tracking_number,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Error          string          `json:"error,omitempty"`
}

// BatchSummary is presented to the operator before any remote call is made
type BatchSummary struct {
	Kind          BatchKind       `json:"kind"`
	Requested     int             `json:"requested"`
	Eligible      int             `json:"eligible"`
	Skipped       int             `json:"skipped"`
	Total         decimal.Decimal `json:"total"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Affordable    bool            `json:"affordable"`
}

// ItemFailure records why one order of a batch failed
type ItemFailure struct {
	OrderID string `json:"order_id"`
	Error   string `json:"error"`
}
