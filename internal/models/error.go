package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrConflictData       = errors.New("data conflicts with existing data")
	ErrDataNotFound       = errors.New("data not found")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrInternalError      = errors.New("internal error")
	ErrInvalidRequest     = errors.New("invalid request")

	ErrNoOrdersSelected    = errors.New("no orders selected")
	ErrAllAlreadyLabeled   = errors.New("all selected orders already have a label")
	ErrNoSenderAddress     = errors.New("no sender address configured")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrDeclined            = errors.New("operation declined by operator")
	ErrCancelBatchTooLarge = errors.New("too many orders selected for cancellation")
	ErrNothingToCancel     = errors.New("no selected order has a cancelable label")
	ErrBatchInProgress     = errors.New("another batch is running for this operator")
	ErrNotPriceable        = errors.New("order is not priceable")
	ErrPriceIncreased      = errors.New("order price increased since confirmation")
	ErrBalanceNotSettled   = errors.New("balance was not updated after batch")
	ErrLoginTaken          = errors.New("login already taken")
)

// InsufficientFundsError carries both figures of a failed affordability check
type InsufficientFundsError struct {
	Balance  decimal.Decimal
	Required decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient balance: have %s, need %s", e.Balance.StringFixed(2), e.Required.StringFixed(2))
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientBalance
}

// PriceIncreasedError is returned when an order costs more at submission than the operator confirmed
type PriceIncreasedError struct {
	Confirmed decimal.Decimal
	Current   decimal.Decimal
}

func (e *PriceIncreasedError) Error() string {
	return fmt.Sprintf("order price increased since confirmation: confirmed %s, now %s",
		e.Confirmed.StringFixed(2), e.Current.StringFixed(2))
}

func (e *PriceIncreasedError) Unwrap() error {
	return ErrPriceIncreased
}

// CarrierError is a non-success answer from the carrier
type CarrierError struct {
	Message string
}

func (e *CarrierError) Error() string {
	return "carrier rejected request: " + e.Message
}

// TooManyRequestsError is returned when the carrier throttles us
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

// NewTooManyRequestsError creates TooManyRequestsError
func NewTooManyRequestsError(retryAfter time.Duration) TooManyRequestsError {
	return TooManyRequestsError{RetryAfter: retryAfter}
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}
