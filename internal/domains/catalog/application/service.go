package application

import (
	"context"
	"errors"
	"strings"

	"github.com/Apurer/cafe-api/internal/domains/catalog/domain"
	"github.com/Apurer/cafe-api/internal/domains/catalog/ports"
)

// Service orchestrates menu and product use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListProducts(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.repo.List(ctx, strings.TrimSpace(category))
}

func (s *Service) Describe(ctx context.Context, id int64) (string, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return "", err
	}
	return product.Description, nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, ports.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	clone.ID = 0
	if err := clone.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, &clone)
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, patch domain.Patch) (*domain.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.Apply(patch); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, product)
}

func (s *Service) Lookup(ctx context.Context, ids []int64) (map[int64]*domain.Product, error) {
	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return map[int64]*domain.Product{}, nil
	}
	return s.repo.GetMany(ctx, unique)
}

// SeedDefaultMenu upserts the house menu by (name, category) and returns how many entries were written.
func (s *Service) SeedDefaultMenu(ctx context.Context) (int, error) {
	written := 0
	for _, item := range defaultMenu {
		product, err := domain.NewProduct(item.category, item.name, item.price, item.description, domain.AvailabilityInStock)
		if err != nil {
			return written, err
		}
		existing, err := s.repo.FindByNameAndCategory(ctx, product.Name, product.Category)
		switch {
		case err == nil:
			product.ID = existing.ID
		case !errors.Is(err, ports.ErrNotFound):
			return written, err
		}
		if _, err := s.repo.Save(ctx, product); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

var _ ports.Service = (*Service)(nil)
