package domain

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("payment: not found")
	ErrInvalidAmount = errors.New("payment: amount must be zero or greater")
	ErrOrderRequired = errors.New("payment: order id is required")
)

// Status is the settlement outcome reported for a charge.
type Status string

const (
	StatusPaid   Status = "PAID"
	StatusFailed Status = "FAILED"
)

// Payment is the record of a processed charge, kept for the process
// lifetime.
type Payment struct {
	ID        string
	OrderID   string
	Amount    int64
	Status    Status
	CreatedAt time.Time
}

func New(id, orderID string, amount int64, status Status) (*Payment, error) {
	if orderID == "" {
		return nil, ErrOrderRequired
	}
	if amount < 0 {
		return nil, ErrInvalidAmount
	}
	return &Payment{
		ID:        id,
		OrderID:   orderID,
		Amount:    amount,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Clone returns a copy so callers never share memory with a stored record.
func (p *Payment) Clone() *Payment {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
