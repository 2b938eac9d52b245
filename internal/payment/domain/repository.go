package domain

import "context"

// Repository stores processed payments. Append-only for the process
// lifetime.
type Repository interface {
	Save(ctx context.Context, payment *Payment) error
	Get(ctx context.Context, id string) (*Payment, error)
}
