package catalog

import (
	"context"

	"github.com/trackside-rentals/reporting-backend/pkg/errors"
)

// Service exposes the lookup lists used to populate report filters.
type Service interface {
	Categories(ctx context.Context) ([]CategoryRef, error)
	Products(ctx context.Context, categoryID string) ([]ProductRef, error)
	Stores(ctx context.Context) ([]StoreRef, error)
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) Service {
	return &service{repo: repo}
}

func (s *service) Categories(ctx context.Context) ([]CategoryRef, error) {
	refs, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "listing categories")
	}
	return refs, nil
}

func (s *service) Products(ctx context.Context, categoryID string) ([]ProductRef, error) {
	refs, err := s.repo.ListProducts(ctx, categoryID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "listing products")
	}
	return refs, nil
}

func (s *service) Stores(ctx context.Context) ([]StoreRef, error) {
	refs, err := s.repo.ListStores(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "listing stores")
	}
	return refs, nil
}
