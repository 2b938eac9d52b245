package domain

import (
	"errors"
	"testing"
)

func TestProductReduce(t *testing.T) {
	t.Parallel()

	t.Run("decrements when sufficient", func(t *testing.T) {
		p, err := New("product-1", "Sample Product", 1999, 100)
		if err != nil {
			t.Fatalf("new product: %v", err)
		}
		if err := p.Reduce(5); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.Stock != 95 {
			t.Fatalf("expected stock 95, got %d", p.Stock)
		}
	})

	t.Run("rejects more than available", func(t *testing.T) {
		p, _ := New("product-1", "Sample Product", 1999, 3)
		if err := p.Reduce(5); !errors.Is(err, ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
		if p.Stock != 3 {
			t.Fatalf("stock changed on rejected reduce: %d", p.Stock)
		}
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		p, _ := New("product-1", "Sample Product", 1999, 100)
		for _, qty := range []int{0, -1} {
			if err := p.Reduce(qty); !errors.Is(err, ErrInvalidQuantity) {
				t.Fatalf("qty %d: expected ErrInvalidQuantity, got %v", qty, err)
			}
		}
		if p.Stock != 100 {
			t.Fatalf("stock changed on rejected reduce: %d", p.Stock)
		}
	})

	t.Run("exact stock drains to zero", func(t *testing.T) {
		p, _ := New("product-1", "Sample Product", 1999, 5)
		if err := p.Reduce(5); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.Stock != 0 {
			t.Fatalf("expected stock 0, got %d", p.Stock)
		}
		if err := p.Reduce(1); !errors.Is(err, ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
	})
}

func TestNewProduct(t *testing.T) {
	t.Parallel()

	if _, err := New("product-1", "Sample Product", 1999, -1); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity for negative stock, got %v", err)
	}
}
