package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/minimart-io/minimart/internal/order/domain"
)

type fakeRepo struct {
	mu        sync.Mutex
	orders    map[string]*domain.Order
	insertErr error
	updateErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{orders: make(map[string]*domain.Order)}
}

func (r *fakeRepo) Insert(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	if _, exists := r.orders[order.ID]; exists {
		return domain.ErrConflict
	}
	r.orders[order.ID] = order.Clone()
	return nil
}

func (r *fakeRepo) Get(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return order.Clone(), nil
}

func (r *fakeRepo) Update(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, exists := r.orders[order.ID]; !exists {
		return domain.ErrNotFound
	}
	r.orders[order.ID] = order.Clone()
	return nil
}

func (r *fakeRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

type fakeStock struct {
	reserveFn func(ctx context.Context, productID string, qty int) (*StockSnapshot, error)
	calls     int
}

func (f *fakeStock) Reserve(ctx context.Context, productID string, qty int) (*StockSnapshot, error) {
	f.calls++
	return f.reserveFn(ctx, productID, qty)
}

type fakePayments struct {
	chargeFn    func(ctx context.Context, orderID string, amount int64) (Settlement, error)
	calls       int
	lastOrderID string
	lastAmount  int64
}

func (f *fakePayments) Charge(ctx context.Context, orderID string, amount int64) (Settlement, error) {
	f.calls++
	f.lastOrderID = orderID
	f.lastAmount = amount
	return f.chargeFn(ctx, orderID, amount)
}

type stubIDs struct {
	next int
}

func (s *stubIDs) NewID() string {
	s.next++
	return fmt.Sprintf("order-%d", s.next)
}

func newTestService(repo domain.Repository, stock StockReserver, payments PaymentCharger) *Service {
	return NewService(
		repo,
		stock,
		payments,
		&stubIDs{},
		otel.Tracer("test"),
		NewMetrics(prometheus.NewRegistry()),
		zap.NewNop(),
	)
}

func okSnapshot(price int64, remaining int) func(context.Context, string, int) (*StockSnapshot, error) {
	return func(_ context.Context, productID string, _ int) (*StockSnapshot, error) {
		return &StockSnapshot{ProductID: productID, Name: "Sample Product", Price: price, Remaining: remaining}, nil
	}
}

func paidSettlement(_ context.Context, _ string, _ int64) (Settlement, error) {
	return Settlement{Outcome: SettlementPaid, SettlementID: "settle-1", Status: "PAID"}, nil
}

func TestPlaceOrder(t *testing.T) {
	t.Parallel()

	input := PlaceOrderInput{UserID: "user-1", ProductID: "product-1", Qty: 5}

	t.Run("successful placement settles paid", func(t *testing.T) {
		repo := newFakeRepo()
		stock := &fakeStock{reserveFn: okSnapshot(1999, 95)}
		payments := &fakePayments{chargeFn: paidSettlement}
		svc := newTestService(repo, stock, payments)

		order, err := svc.PlaceOrder(context.Background(), input)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if order.Status != domain.StatusPaid {
			t.Fatalf("expected status %s, got %s", domain.StatusPaid, order.Status)
		}
		if order.UserID != "user-1" || order.ProductID != "product-1" || order.Qty != 5 {
			t.Fatalf("unexpected order fields: %+v", order)
		}
		if payments.lastOrderID != order.ID {
			t.Fatalf("charge referenced order %q, placement returned %q", payments.lastOrderID, order.ID)
		}
		if payments.lastAmount != 1999*5 {
			t.Fatalf("expected amount %d, got %d", 1999*5, payments.lastAmount)
		}

		stored, err := svc.GetOrder(context.Background(), order.ID)
		if err != nil {
			t.Fatalf("lookup after placement failed: %v", err)
		}
		if *stored != *order {
			t.Fatalf("lookup mismatch: stored %+v, returned %+v", stored, order)
		}
	})

	t.Run("reservation completes before the order exists", func(t *testing.T) {
		repo := newFakeRepo()
		stock := &fakeStock{}
		stock.reserveFn = func(ctx context.Context, productID string, qty int) (*StockSnapshot, error) {
			if repo.count() != 0 {
				t.Fatalf("order visible before reservation completed")
			}
			return okSnapshot(1999, 95)(ctx, productID, qty)
		}
		payments := &fakePayments{chargeFn: paidSettlement}
		svc := newTestService(repo, stock, payments)

		if _, err := svc.PlaceOrder(context.Background(), input); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if repo.count() != 1 {
			t.Fatalf("expected one stored order, got %d", repo.count())
		}
	})

	t.Run("insufficient stock creates no order", func(t *testing.T) {
		repo := newFakeRepo()
		stock := &fakeStock{reserveFn: func(context.Context, string, int) (*StockSnapshot, error) {
			return nil, ErrInsufficientStock
		}}
		payments := &fakePayments{chargeFn: paidSettlement}
		svc := newTestService(repo, stock, payments)

		_, err := svc.PlaceOrder(context.Background(), input)
		if !errors.Is(err, ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
		var stepErr *StepError
		if !errors.As(err, &stepErr) || stepErr.Step != StepStock {
			t.Fatalf("expected stock step error, got %v", err)
		}
		if repo.count() != 0 {
			t.Fatalf("expected no phantom order, got %d", repo.count())
		}
		if payments.calls != 0 {
			t.Fatalf("payment must not be attempted after a failed reservation")
		}
	})

	t.Run("unknown product creates no order", func(t *testing.T) {
		repo := newFakeRepo()
		stock := &fakeStock{reserveFn: func(context.Context, string, int) (*StockSnapshot, error) {
			return nil, ErrProductNotFound
		}}
		svc := newTestService(repo, stock, &fakePayments{chargeFn: paidSettlement})

		_, err := svc.PlaceOrder(context.Background(), input)
		if !errors.Is(err, ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}
		if repo.count() != 0 {
			t.Fatalf("expected no phantom order, got %d", repo.count())
		}
	})

	t.Run("unreachable ledger creates no order", func(t *testing.T) {
		repo := newFakeRepo()
		stock := &fakeStock{reserveFn: func(context.Context, string, int) (*StockSnapshot, error) {
			return nil, fmt.Errorf("%w: connection refused", ErrStockUnavailable)
		}}
		svc := newTestService(repo, stock, &fakePayments{chargeFn: paidSettlement})

		_, err := svc.PlaceOrder(context.Background(), input)
		if !errors.Is(err, ErrStockUnavailable) {
			t.Fatalf("expected ErrStockUnavailable, got %v", err)
		}
		if repo.count() != 0 {
			t.Fatalf("expected no phantom order, got %d", repo.count())
		}
	})

	t.Run("payment unavailable leaves order created", func(t *testing.T) {
		repo := newFakeRepo()
		stock := &fakeStock{reserveFn: okSnapshot(1999, 95)}
		payments := &fakePayments{chargeFn: func(context.Context, string, int64) (Settlement, error) {
			return Settlement{}, ErrPaymentUnavailable
		}}
		svc := newTestService(repo, stock, payments)

		order, err := svc.PlaceOrder(context.Background(), input)
		if !errors.Is(err, ErrPaymentUnavailable) {
			t.Fatalf("expected ErrPaymentUnavailable, got %v", err)
		}
		var stepErr *StepError
		if !errors.As(err, &stepErr) || stepErr.Step != StepPayment {
			t.Fatalf("expected payment step error, got %v", err)
		}
		if order == nil || order.Status != domain.StatusCreated {
			t.Fatalf("expected CREATED order alongside the error, got %+v", order)
		}

		stored, getErr := svc.GetOrder(context.Background(), order.ID)
		if getErr != nil {
			t.Fatalf("order should persist after payment failure: %v", getErr)
		}
		if stored.Status != domain.StatusCreated {
			t.Fatalf("expected stored status %s, got %s", domain.StatusCreated, stored.Status)
		}
	})

	t.Run("payment declined leaves order created", func(t *testing.T) {
		repo := newFakeRepo()
		stock := &fakeStock{reserveFn: okSnapshot(1999, 95)}
		payments := &fakePayments{chargeFn: func(context.Context, string, int64) (Settlement, error) {
			return Settlement{Outcome: SettlementDeclined, Status: "DECLINED"}, nil
		}}
		svc := newTestService(repo, stock, payments)

		order, err := svc.PlaceOrder(context.Background(), input)
		if !errors.Is(err, ErrPaymentDeclined) {
			t.Fatalf("expected ErrPaymentDeclined, got %v", err)
		}
		if order == nil || order.Status != domain.StatusCreated {
			t.Fatalf("expected CREATED order alongside the error, got %+v", order)
		}
	})

	t.Run("missing user id is rejected before any call", func(t *testing.T) {
		repo := newFakeRepo()
		stock := &fakeStock{reserveFn: okSnapshot(1999, 95)}
		payments := &fakePayments{chargeFn: paidSettlement}
		svc := newTestService(repo, stock, payments)

		_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{ProductID: "product-1", Qty: 1})
		if !IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if stock.calls != 0 || payments.calls != 0 {
			t.Fatalf("collaborators must not be called on invalid input")
		}
	})
}

func TestGetOrder(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc := newTestService(repo, &fakeStock{reserveFn: okSnapshot(1999, 95)}, &fakePayments{chargeFn: paidSettlement})

	if _, err := svc.GetOrder(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetOrder(context.Background(), ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty id, got %v", err)
	}

	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{UserID: "user-1", ProductID: "product-1", Qty: 2})
	if err != nil {
		t.Fatalf("placement failed: %v", err)
	}

	first, err := svc.GetOrder(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	second, err := svc.GetOrder(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("repeated lookup failed: %v", err)
	}
	if *first != *second {
		t.Fatalf("repeated lookups disagree: %+v vs %+v", first, second)
	}
}

func TestChargeAmount(t *testing.T) {
	t.Parallel()

	if got := chargeAmount(&StockSnapshot{Price: 1999}, 5); got != 9995 {
		t.Fatalf("expected 9995, got %d", got)
	}
	if got := chargeAmount(&StockSnapshot{Price: 0}, 5); got != fallbackAmount {
		t.Fatalf("expected fallback %d, got %d", fallbackAmount, got)
	}
	if got := chargeAmount(nil, 5); got != fallbackAmount {
		t.Fatalf("expected fallback %d, got %d", fallbackAmount, got)
	}
}
