package application

import (
	"context"
	"errors"
)

// Collaborator failure kinds surfaced to the orchestrator. Adapters map
// transport-level detail onto these; the orchestrator never retries.
var (
	ErrProductNotFound    = errors.New("stock: product not found")
	ErrInsufficientStock  = errors.New("stock: insufficient stock")
	ErrStockUnavailable   = errors.New("stock: service unavailable")
	ErrPaymentDeclined    = errors.New("payment: declined")
	ErrPaymentUnavailable = errors.New("payment: service unavailable")
)

// Step names the phase of the placement sequence an error originated in,
// so callers can tell "no stock" from "payment declined".
type Step string

const (
	StepStock   Step = "stock"
	StepPayment Step = "payment"
)

// StepError tags a collaborator failure with the placement step it
// occurred in.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string { return string(e.Step) + ": " + e.Err.Error() }
func (e *StepError) Unwrap() error { return e.Err }

// StockSnapshot is the post-decrement product record returned by a
// successful reservation.
type StockSnapshot struct {
	ProductID string
	Name      string
	Price     int64
	Remaining int
}

// StockReserver issues the conditional stock decrement. The call is atomic
// per product on the ledger side; failure means nothing was decremented.
type StockReserver interface {
	Reserve(ctx context.Context, productID string, qty int) (*StockSnapshot, error)
}

// SettlementOutcome is the tagged result of a charge that reached the
// processor. Transport failure is reported as an error instead.
type SettlementOutcome int

const (
	SettlementPaid SettlementOutcome = iota
	SettlementDeclined
)

// Settlement is the processor's verdict on a charge.
type Settlement struct {
	Outcome      SettlementOutcome
	SettlementID string
	// Status is the processor-reported status string, kept for logging.
	Status string
}

// PaymentCharger issues a charge keyed by order id.
type PaymentCharger interface {
	Charge(ctx context.Context, orderID string, amount int64) (Settlement, error)
}
