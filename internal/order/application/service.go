package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/minimart-io/minimart/internal/order/domain"
	"github.com/minimart-io/minimart/pkg/ids"
	"github.com/minimart-io/minimart/pkg/logging"
)

const (
	useCasePlaceOrder = "order.place"
	spanPrefix        = "UC."

	// fallbackAmount mirrors the upstream placeholder charge, used only
	// when the reservation snapshot carries no unit price.
	fallbackAmount int64 = 100
)

// Service drives the placement sequence: reserve stock, create the order
// record, request payment, finalize. It holds no lock across the remote
// calls; a payment failure after the reservation leaves the order CREATED
// and the stock decremented, which is the accepted inconsistency window.
type Service struct {
	repo     domain.Repository
	stock    StockReserver
	payments PaymentCharger
	idGen    ids.Generator
	tracer   trace.Tracer
	metrics  *Metrics
	log      *zap.Logger
}

func NewService(
	repo domain.Repository,
	stock StockReserver,
	payments PaymentCharger,
	idGen ids.Generator,
	tracer trace.Tracer,
	metrics *Metrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:     repo,
		stock:    stock,
		payments: payments,
		idGen:    idGen,
		tracer:   tracer,
		metrics:  metrics,
		log:      logger.With(zap.String("component", "order_service")),
	}
}

type PlaceOrderInput struct {
	UserID    string
	ProductID string
	Qty       int
}

var errValidation = errors.New("validation")

// IsValidation reports whether err is an input validation failure.
func IsValidation(err error) bool { return errors.Is(err, errValidation) }

// PlaceOrder runs the placement sequence. When payment fails after the
// order record exists, both the CREATED order and the error are returned.
func (s *Service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (_ *domain.Order, err error) {
	logger := logging.FromContext(ctx).With(zap.String("use_case", useCasePlaceOrder))

	ctx, span := s.tracer.Start(ctx, spanPrefix+"PlaceOrder",
		trace.WithAttributes(
			attribute.String("order.user_id", input.UserID),
			attribute.String("order.product_id", input.ProductID),
			attribute.Int("order.qty", input.Qty),
		),
	)
	start := time.Now()
	outcome, statusText := "success", "OK"

	defer func() {
		lat := time.Since(start).Seconds()

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, statusText)
		} else {
			span.SetStatus(codes.Ok, statusText)
		}
		span.End()

		s.metrics.observe(useCasePlaceOrder, outcome, lat)

		fields := []zap.Field{
			zap.String("outcome", outcome),
			zap.String("status", statusText),
			zap.Float64("latency_seconds", lat),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		logger.Info("place_order_done", fields...)
	}()

	if input.UserID == "" {
		outcome, statusText = "error", "USER_ID_REQUIRED"
		return nil, fmt.Errorf("%w: user id is required", errValidation)
	}
	if input.ProductID == "" {
		outcome, statusText = "error", "PRODUCT_ID_REQUIRED"
		return nil, fmt.Errorf("%w: product id is required", errValidation)
	}
	if err := ctx.Err(); err != nil {
		outcome, statusText = "error", "CONTEXT_CANCELED"
		return nil, err
	}

	// Step 1: reserve stock. Nothing has been mutated locally yet, so any
	// failure aborts with no order record.
	snapshot, err := s.stock.Reserve(ctx, input.ProductID, input.Qty)
	if err != nil {
		outcome, statusText = "error", "STOCK_RESERVE_FAILED"
		logger.Warn("stock_reserve_failed",
			zap.String("product_id", input.ProductID),
			zap.Int("qty", input.Qty),
			zap.Error(err),
		)
		return nil, &StepError{Step: StepStock, Err: err}
	}
	span.AddEvent("stock.reserved",
		trace.WithAttributes(attribute.Int("stock.remaining", snapshot.Remaining)),
	)

	// Step 2: create the order record. The id is assigned here, before the
	// charge, so the payment request can reference it.
	entity := domain.New(s.idGen.NewID(), input.UserID, input.ProductID, input.Qty)
	if err := s.repo.Insert(ctx, entity); err != nil {
		outcome, statusText = "error", "REPO_INSERT_FAILED"
		return nil, fmt.Errorf("order: insert: %w", err)
	}
	span.AddEvent("order.created",
		trace.WithAttributes(attribute.String("order.id", entity.ID)),
	)
	logger.Info("order_created",
		zap.String("order_id", entity.ID),
		zap.String("product_id", entity.ProductID),
		zap.Int("qty", entity.Qty),
	)

	// Step 3: request payment, amount derived from the snapshot we just
	// reserved against.
	amount := chargeAmount(snapshot, input.Qty)
	settlement, err := s.payments.Charge(ctx, entity.ID, amount)
	if err != nil {
		// No compensation: the decrement stands and the order stays
		// CREATED. The caller gets both the order and the tagged error.
		outcome, statusText = "error", "PAYMENT_UNAVAILABLE"
		logger.Error("payment_unavailable",
			zap.String("order_id", entity.ID),
			zap.Int64("amount", amount),
			zap.Error(err),
		)
		return entity, &StepError{Step: StepPayment, Err: err}
	}

	// Step 4: finalize.
	switch settlement.Outcome {
	case SettlementPaid:
		if err := entity.MarkPaid(); err != nil {
			outcome, statusText = "error", "STATUS_TRANSITION_FAILED"
			return entity, fmt.Errorf("order: finalize: %w", err)
		}
		if err := s.repo.Update(ctx, entity); err != nil {
			outcome, statusText = "error", "REPO_UPDATE_FAILED"
			return entity, fmt.Errorf("order: update: %w", err)
		}
		span.SetAttributes(attribute.String("order.status", string(entity.Status)))
		logger.Info("payment_settled",
			zap.String("order_id", entity.ID),
			zap.String("settlement_id", settlement.SettlementID),
			zap.Int64("amount", amount),
		)
		return entity, nil
	case SettlementDeclined:
		outcome, statusText = "error", "PAYMENT_DECLINED"
		logger.Warn("payment_declined",
			zap.String("order_id", entity.ID),
			zap.String("processor_status", settlement.Status),
		)
		return entity, &StepError{Step: StepPayment, Err: ErrPaymentDeclined}
	default:
		outcome, statusText = "error", "SETTLEMENT_UNKNOWN"
		return entity, &StepError{
			Step: StepPayment,
			Err:  fmt.Errorf("unknown settlement outcome %d", settlement.Outcome),
		}
	}
}

// GetOrder is a pure lookup with no side effects.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func chargeAmount(snapshot *StockSnapshot, qty int) int64 {
	if snapshot == nil || snapshot.Price <= 0 {
		return fallbackAmount
	}
	return snapshot.Price * int64(qty)
}
