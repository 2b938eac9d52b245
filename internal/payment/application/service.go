package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/minimart-io/minimart/internal/payment/domain"
	"github.com/minimart-io/minimart/pkg/ids"
	"github.com/minimart-io/minimart/pkg/logging"
)

// Service is the mock payment processor: every well-formed charge is
// recorded and settles PAID, as the upstream provider stub does. Provider
// integration would replace the settle step only.
type Service struct {
	repo  domain.Repository
	idGen ids.Generator
}

func NewService(repo domain.Repository, idGen ids.Generator) *Service {
	return &Service{repo: repo, idGen: idGen}
}

type ChargeResult struct {
	SettlementID string
	Status       domain.Status
}

// Charge records the payment and reports its settlement outcome.
func (s *Service) Charge(ctx context.Context, orderID string, amount int64) (*ChargeResult, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "payment_service"))

	payment, err := domain.New(s.idGen.NewID(), orderID, amount, domain.StatusPaid)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, payment); err != nil {
		return nil, err
	}

	logger.Info("payment_recorded",
		zap.String("payment_id", payment.ID),
		zap.String("order_id", orderID),
		zap.Int64("amount", amount),
		zap.String("status", string(payment.Status)),
	)

	return &ChargeResult{
		SettlementID: payment.ID,
		Status:       payment.Status,
	}, nil
}
