package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/isdelr/content-creator-be/internal/database"
	"github.com/isdelr/content-creator-be/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func openSQLite(t *testing.T) Repositories {
	t.Helper()
	ctx := context.Background()
	db, err := database.New(ctx, filepath.Join(t.TempDir(), "content.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(ctx, db))
	return NewSQLite(db)
}

func TestSQLiteRepositories(t *testing.T) {
	runRepositorySuite(t, openSQLite)
}

func TestSQLiteInMemoryConcurrentReads(t *testing.T) {
	ctx := context.Background()
	db, err := database.New(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(ctx, db))
	repos := NewSQLite(db)

	category, err := repos.Categories.Create(ctx, models.NewCategory{Type: "text", Label: "Bio"})
	require.NoError(t, err)
	_, err = repos.Themes.Create(ctx, models.NewTheme{Name: "People", Description: "d", CoverImage: "c", CategoriesIDs: []string{category.ID}})
	require.NoError(t, err)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			if _, err := repos.Categories.FindAll(gctx); err != nil {
				return err
			}
			themes, err := repos.Themes.FindAll(gctx)
			if err != nil {
				return err
			}
			if len(themes) != 1 || len(themes[0].CategoriesIDs) != 1 {
				return fmt.Errorf("unexpected themes %+v", themes)
			}
			_, err = repos.Contents.FindAll(gctx)
			return err
		})
	}
	require.NoError(t, g.Wait())
}
