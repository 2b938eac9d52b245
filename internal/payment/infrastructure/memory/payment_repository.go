package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/minimart-io/minimart/internal/payment/domain"
)

type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{
		payments: make(map[string]*domain.Payment),
	}
}

func (r *PaymentRepository) Save(ctx context.Context, payment *domain.Payment) error {
	_ = ctx
	if payment == nil || payment.ID == "" {
		return fmt.Errorf("payment repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.payments[payment.ID] = payment.Clone()
	return nil
}

func (r *PaymentRepository) Get(ctx context.Context, id string) (*domain.Payment, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	payment, ok := r.payments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	return payment.Clone(), nil
}
