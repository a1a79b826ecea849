package service

import (
	"campus_voice_backend/internal/model"
	"campus_voice_backend/internal/repository"
	"context"
)

type CategoryService struct {
	CategoryRepo *repository.CategoryRepository
}

func NewCategoryService(categoryRepo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{CategoryRepo: categoryRepo}
}

func (s *CategoryService) ListActive(ctx context.Context) ([]model.Category, error) {
	return s.CategoryRepo.ListActive(ctx)
}
