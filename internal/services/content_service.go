package services

import (
	"context"

	"github.com/isdelr/content-creator-be/internal/models"
	"github.com/isdelr/content-creator-be/internal/repository"
)

// ContentServiceProvider defines the interface for content services.
type ContentServiceProvider interface {
	GetAllContents(ctx context.Context) ([]models.Content, error)
	GetContentByID(ctx context.Context, id string) (*models.Content, error)
	CreateContent(ctx context.Context, in models.NewContent) (*models.Content, error)
	UpdateContent(ctx context.Context, id string, patch models.ContentPatch) (*models.Content, error)
	DeleteContent(ctx context.Context, id string) (*models.Content, error)
}

// ContentService provides business logic for content management.
type ContentService struct {
	repo repository.ContentRepository
}

// NewContentService creates a new ContentService.
func NewContentService(repo repository.ContentRepository) *ContentService {
	return &ContentService{repo: repo}
}

// GetAllContents lists active content with owner, themes and value categories resolved.
func (s *ContentService) GetAllContents(ctx context.Context) ([]models.Content, error) {
	return s.repo.FindAll(ctx)
}

// GetContentByID retrieves one content record with references resolved.
func (s *ContentService) GetContentByID(ctx context.Context, id string) (*models.Content, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ContentService) CreateContent(ctx context.Context, in models.NewContent) (*models.Content, error) {
	return s.repo.Create(ctx, in)
}

func (s *ContentService) UpdateContent(ctx context.Context, id string, patch models.ContentPatch) (*models.Content, error) {
	return s.repo.Update(ctx, id, patch)
}

func (s *ContentService) DeleteContent(ctx context.Context, id string) (*models.Content, error) {
	return s.repo.Delete(ctx, id)
}
