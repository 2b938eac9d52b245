package domain

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("stock: product not found")
	ErrInvalidQuantity   = errors.New("stock: quantity must be greater than zero")
	ErrInsufficientStock = errors.New("stock: insufficient stock")
)

// Product is a catalog record with its remaining stock. Price is in minor
// currency units.
type Product struct {
	ID        string
	Name      string
	Price     int64
	Stock     int
	UpdatedAt time.Time
}

func New(id, name string, price int64, stock int) (*Product, error) {
	if stock < 0 {
		return nil, ErrInvalidQuantity
	}
	return &Product{
		ID:        id,
		Name:      name,
		Price:     price,
		Stock:     stock,
		UpdatedAt: time.Now().UTC(),
	}, nil
}

// Reduce decrements stock conditional on sufficiency. The quantity gate
// here is what makes qty positivity hold system-wide: order placement
// relies on it instead of validating qty itself.
func (p *Product) Reduce(qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if qty > p.Stock {
		return ErrInsufficientStock
	}
	p.Stock -= qty
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// Clone returns a copy so callers never share memory with a stored record.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
