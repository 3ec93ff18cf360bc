package service

import (
	"context"

	"github.com/Rahul-Chotaliya/tradehub/internal/model"
	"github.com/Rahul-Chotaliya/tradehub/internal/repository"
)

// CategoryService serves the fixed set of asset categories.
type CategoryService struct {
	categoryRepo *repository.CategoryRepository
	assetRepo    *repository.AssetRepository
}

// NewCategoryService creates a new CategoryService with the provided repository dependencies.
func NewCategoryService(
	categoryRepo *repository.CategoryRepository,
	assetRepo *repository.AssetRepository,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		assetRepo:    assetRepo,
	}
}

// GetCategories returns all categories ordered by name.
func (s *CategoryService) GetCategories(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.GetCategories(ctx)
}

// GetCategory returns the category with the given slug, or ErrCategoryNotFound.
func (s *CategoryService) GetCategory(ctx context.Context, slug string) (model.Category, error) {
	return s.categoryRepo.GetCategoryBySlug(ctx, slug)
}

// GetCategoriesWithAssets returns every category together with the owner's assets in it.
// Categories without assets are included with an empty list.
func (s *CategoryService) GetCategoriesWithAssets(ctx context.Context, ownerID string) ([]model.CategoryAssets, error) {
	categories, err := s.categoryRepo.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	assets, err := s.assetRepo.GetAssets(ctx, ownerID, "")
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]model.Asset, len(categories))
	for _, a := range assets {
		byCategory[a.CategoryID] = append(byCategory[a.CategoryID], a)
	}

	result := make([]model.CategoryAssets, len(categories))
	for i, c := range categories {
		categoryAssets := byCategory[c.ID]
		if categoryAssets == nil {
			categoryAssets = []model.Asset{}
		}
		result[i] = model.CategoryAssets{Category: c, Assets: categoryAssets}
	}

	return result, nil
}
