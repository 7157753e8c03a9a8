package services

import (
	"context"

	"clinicBack/internal/models"
	"clinicBack/internal/repositories"
)

type CategoryService struct {
	CategoryRepo *repositories.CategoryRepository
}

func (s *CategoryService) CreateCategory(ctx context.Context, category models.ImprovementCategory) (models.ImprovementCategory, error) {
	return s.CategoryRepo.CreateCategory(ctx, category)
}

func (s *CategoryService) GetCategoryByID(ctx context.Context, id int) (models.ImprovementCategory, error) {
	return s.CategoryRepo.GetCategoryByID(ctx, id)
}

func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.ImprovementCategory, error) {
	return s.CategoryRepo.GetAllCategories(ctx)
}

func (s *CategoryService) GetActiveCategories(ctx context.Context) ([]models.ImprovementCategory, error) {
	return s.CategoryRepo.GetActiveCategories(ctx)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, category models.ImprovementCategory) (models.ImprovementCategory, error) {
	return s.CategoryRepo.UpdateCategory(ctx, category)
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id int) error {
	return s.CategoryRepo.DeleteCategory(ctx, id)
}
