package services

import (
	"context"

	"github.com/isdelr/content-creator-be/internal/models"
	"github.com/isdelr/content-creator-be/internal/repository"
)

// ThemeServiceProvider defines the interface for theme services.
type ThemeServiceProvider interface {
	GetAllThemes(ctx context.Context) ([]models.Theme, error)
	GetThemeByID(ctx context.Context, id string) (*models.Theme, error)
	CreateTheme(ctx context.Context, in models.NewTheme) (*models.Theme, error)
	UpdateTheme(ctx context.Context, id string, patch models.ThemePatch) (*models.Theme, error)
	DeleteTheme(ctx context.Context, id string) (*models.Theme, error)
}

// ThemeService provides business logic for theme management.
type ThemeService struct {
	repo repository.ThemeRepository
}

// NewThemeService creates a new ThemeService.
func NewThemeService(repo repository.ThemeRepository) *ThemeService {
	return &ThemeService{repo: repo}
}

// GetAllThemes lists active themes with their categories resolved.
func (s *ThemeService) GetAllThemes(ctx context.Context) ([]models.Theme, error) {
	return s.repo.FindAll(ctx)
}

// GetThemeByID retrieves a theme with its categories resolved.
func (s *ThemeService) GetThemeByID(ctx context.Context, id string) (*models.Theme, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ThemeService) CreateTheme(ctx context.Context, in models.NewTheme) (*models.Theme, error) {
	return s.repo.Create(ctx, in)
}

func (s *ThemeService) UpdateTheme(ctx context.Context, id string, patch models.ThemePatch) (*models.Theme, error) {
	return s.repo.Update(ctx, id, patch)
}

func (s *ThemeService) DeleteTheme(ctx context.Context, id string) (*models.Theme, error) {
	return s.repo.Delete(ctx, id)
}
