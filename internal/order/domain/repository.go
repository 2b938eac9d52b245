package domain

import "context"

// Repository is the order store. It is owned exclusively by the order
// service; records are never deleted during the process lifetime.
type Repository interface {
	Insert(ctx context.Context, order *Order) error
	Get(ctx context.Context, id string) (*Order, error)
	Update(ctx context.Context, order *Order) error
}
