package services

import (
	"context"

	"github.com/isdelr/content-creator-be/internal/models"
	"github.com/isdelr/content-creator-be/internal/repository"
)

// CategoryServiceProvider defines the interface for category services.
type CategoryServiceProvider interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, in models.NewCategory) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) (*models.Category, error)
}

// CategoryService provides business logic for category management.
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.FindAll(ctx)
}

func (s *CategoryService) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CategoryService) CreateCategory(ctx context.Context, in models.NewCategory) (*models.Category, error) {
	return s.repo.Create(ctx, in)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (*models.Category, error) {
	return s.repo.Update(ctx, id, patch)
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id string) (*models.Category, error) {
	return s.repo.Delete(ctx, id)
}
