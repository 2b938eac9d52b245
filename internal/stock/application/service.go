package application

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/minimart-io/minimart/internal/stock/domain"
	"github.com/minimart-io/minimart/pkg/ids"
	"github.com/minimart-io/minimart/pkg/logging"
)

// Service owns catalog reads and the conditional stock decrement.
type Service struct {
	repo  domain.Repository
	idGen ids.Generator
}

func NewService(repo domain.Repository, idGen ids.Generator) *Service {
	return &Service{repo: repo, idGen: idGen}
}

// Seed creates a catalog record with a fresh id. Used at startup so the
// service has something to sell.
func (s *Service) Seed(ctx context.Context, name string, price int64, stock int) (*domain.Product, error) {
	product, err := domain.New(s.idGen.NewID(), name, price, stock)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// Reduce decrements stock for a product, atomically and conditional on
// sufficiency. On failure nothing is decremented.
func (s *Service) Reduce(ctx context.Context, productID string, qty int) (*domain.Product, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "stock_service"))

	product, err := s.repo.Mutate(ctx, productID, func(p *domain.Product) error {
		return p.Reduce(qty)
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("reduce_stock_rejected",
				zap.String("product_id", productID),
				zap.Int("qty", qty),
				zap.Error(err),
			)
		}
		return nil, err
	}

	logger.Info("stock_reduced",
		zap.String("product_id", productID),
		zap.Int("qty", qty),
		zap.Int("remaining", product.Stock),
	)
	return product, nil
}
