package application

import (
	"context"
	"errors"
	"testing"

	"github.com/minimart-io/minimart/internal/payment/domain"
	"github.com/minimart-io/minimart/internal/payment/infrastructure/memory"
	"github.com/minimart-io/minimart/pkg/ids"
)

func TestCharge(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := memory.NewPaymentRepository()
	svc := NewService(repo, ids.NewUUIDGenerator())

	t.Run("well-formed charge settles paid", func(t *testing.T) {
		result, err := svc.Charge(ctx, "order-1", 9995)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Status != domain.StatusPaid {
			t.Fatalf("expected status %s, got %s", domain.StatusPaid, result.Status)
		}
		if result.SettlementID == "" {
			t.Fatalf("expected a settlement id")
		}

		stored, err := repo.Get(ctx, result.SettlementID)
		if err != nil {
			t.Fatalf("settlement not recorded: %v", err)
		}
		if stored.OrderID != "order-1" || stored.Amount != 9995 {
			t.Fatalf("unexpected payment record: %+v", stored)
		}
	})

	t.Run("missing order id is rejected", func(t *testing.T) {
		if _, err := svc.Charge(ctx, "", 100); !errors.Is(err, domain.ErrOrderRequired) {
			t.Fatalf("expected ErrOrderRequired, got %v", err)
		}
	})

	t.Run("negative amount is rejected", func(t *testing.T) {
		if _, err := svc.Charge(ctx, "order-1", -1); !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})
}
