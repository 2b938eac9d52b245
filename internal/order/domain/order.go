package domain

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("order: not found")
	ErrConflict          = errors.New("order: already exists")
	ErrInvalidTransition = errors.New("order: invalid status transition")
)

// Status is the lifecycle state of an order. CREATED is the only initial
// value; PAID is reached on a settled payment and is terminal. FAILED is a
// legal terminal state on the entity but the placement flow never assigns
// it: a payment failure leaves the order CREATED.
type Status string

const (
	StatusCreated Status = "CREATED"
	StatusPaid    Status = "PAID"
	StatusFailed  Status = "FAILED"
)

// IsValid reports whether s is one of the known lifecycle states.
func (s Status) IsValid() bool {
	switch s {
	case StatusCreated, StatusPaid, StatusFailed:
		return true
	}
	return false
}

// Order is the record of a placement. The qty positivity check is owned by
// the stock ledger's sufficiency gate, not by this entity.
type Order struct {
	ID        string
	UserID    string
	ProductID string
	Qty       int
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New constructs an order in the CREATED state. The id must already be
// assigned; it is immutable afterwards.
func New(id, userID, productID string, qty int) *Order {
	now := time.Now().UTC()
	return &Order{
		ID:        id,
		UserID:    userID,
		ProductID: productID,
		Qty:       qty,
		Status:    StatusCreated,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MarkPaid transitions the order to PAID. Only a CREATED order may settle;
// PAID and FAILED are terminal.
func (o *Order) MarkPaid() error {
	if o.Status != StatusCreated {
		return ErrInvalidTransition
	}
	o.Status = StatusPaid
	o.touch()
	return nil
}

// MarkFailed transitions the order to FAILED. Only valid from CREATED.
func (o *Order) MarkFailed() error {
	if o.Status != StatusCreated {
		return ErrInvalidTransition
	}
	o.Status = StatusFailed
	o.touch()
	return nil
}

// Clone returns a deep copy so repository callers never share memory with
// the stored record.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	return &clone
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now().UTC()
}
