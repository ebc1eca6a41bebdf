package services

import (
	"context"
	"fmt"

	"github.com/isdelr/content-creator-be/internal/models"
	"golang.org/x/sync/errgroup"
)

// EventContentUpdated is emitted with the full explorer snapshot after any content mutation.
const EventContentUpdated = "contentUpdated"

// Broadcaster delivers an event to every connected client.
type Broadcaster interface {
	Broadcast(ctx context.Context, event string, payload any) error
}

// ExplorerServiceProvider defines the interface for the aggregate explorer view.
type ExplorerServiceProvider interface {
	Snapshot(ctx context.Context) (models.Explorer, error)
	Publish(ctx context.Context) error
}

// ExplorerService aggregates every active content, category and theme.
type ExplorerService struct {
	contents    ContentServiceProvider
	categories  CategoryServiceProvider
	themes      ThemeServiceProvider
	broadcaster Broadcaster
}

// NewExplorerService creates a new ExplorerService. broadcaster must be ready to accept
// messages before Publish is first called.
func NewExplorerService(contents ContentServiceProvider, categories CategoryServiceProvider, themes ThemeServiceProvider, broadcaster Broadcaster) *ExplorerService {
	return &ExplorerService{
		contents:    contents,
		categories:  categories,
		themes:      themes,
		broadcaster: broadcaster,
	}
}

// Snapshot loads the three collections concurrently, each with references resolved.
func (s *ExplorerService) Snapshot(ctx context.Context) (models.Explorer, error) {
	var snapshot models.Explorer
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		contents, err := s.contents.GetAllContents(ctx)
		snapshot.Contents = contents
		return err
	})
	g.Go(func() error {
		categories, err := s.categories.GetAllCategories(ctx)
		snapshot.Categories = categories
		return err
	})
	g.Go(func() error {
		themes, err := s.themes.GetAllThemes(ctx)
		snapshot.Themes = themes
		return err
	})

	if err := g.Wait(); err != nil {
		return models.Explorer{}, fmt.Errorf("load explorer data: %w", err)
	}
	return snapshot, nil
}

// Publish recomputes the snapshot and broadcasts it to all clients.
func (s *ExplorerService) Publish(ctx context.Context) error {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	if err := s.broadcaster.Broadcast(ctx, EventContentUpdated, snapshot); err != nil {
		return fmt.Errorf("broadcast explorer snapshot: %w", err)
	}
	return nil
}
