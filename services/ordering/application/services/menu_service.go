package services

import (
	"context"
	"fmt"

	"github.com/ghuser/tabshare/services/ordering/domain/models"
	"github.com/ghuser/tabshare/services/ordering/domain/repositories"
)

// MenuService exposes the read-only catalog.
type MenuService struct {
	repo repositories.MenuRepository
}

func NewMenuService(repo repositories.MenuRepository) *MenuService {
	return &MenuService{repo: repo}
}

// List returns the full catalog ordered by category, then name.
func (s *MenuService) List(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	return items, nil
}
