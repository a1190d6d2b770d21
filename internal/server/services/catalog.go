package services

import (
	"context"

	"github.com/dmitrijs2005/crickshots/internal/models"
	"github.com/dmitrijs2005/crickshots/internal/server/repositories/catalog"
)

// CatalogService answers gallery queries.
type CatalogService struct {
	repo catalog.Repository
}

func NewCatalogService(repo catalog.Repository) *CatalogService {
	return &CatalogService{repo: repo}
}

// List returns the images matching every criterion of f, ordered by ID.
func (s *CatalogService) List(ctx context.Context, f models.ImageFilter) ([]models.Image, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Image, 0, len(all))
	for _, img := range all {
		if f.Match(img) {
			out = append(out, img)
		}
	}
	return out, nil
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*models.Image, error) {
	return s.repo.Get(ctx, id)
}
