package domain

import "context"

// Repository stores catalog records. Mutate runs fn against the stored
// record under the repository's lock, which is what makes the stock
// decrement atomic per product.
type Repository interface {
	Save(ctx context.Context, product *Product) error
	Get(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	Mutate(ctx context.Context, id string, fn func(*Product) error) (*Product, error)
}
