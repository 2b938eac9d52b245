package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/minimart-io/minimart/internal/user/domain"
	"github.com/minimart-io/minimart/pkg/ids"
	"github.com/minimart-io/minimart/pkg/logging"
)

type Service struct {
	repo  domain.Repository
	idGen ids.Generator
}

func NewService(repo domain.Repository, idGen ids.Generator) *Service {
	return &Service{repo: repo, idGen: idGen}
}

// Register stores a new identity record and returns it.
func (s *Service) Register(ctx context.Context, name, email string) (*domain.User, error) {
	user := &domain.User{
		ID:    s.idGen.NewID(),
		Name:  name,
		Email: email,
	}
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("user_registered",
		zap.String("component", "user_service"),
		zap.String("user_id", user.ID),
	)
	return user, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}
