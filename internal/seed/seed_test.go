package seed

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/isdelr/content-creator-be/internal/database"
	"github.com/isdelr/content-creator-be/internal/models"
	"github.com/isdelr/content-creator-be/internal/repository"
	"github.com/isdelr/content-creator-be/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServices(t *testing.T) Services {
	t.Helper()
	ctx := context.Background()
	db, err := database.New(ctx, filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(ctx, db))

	repos := repository.NewSQLite(db)
	return Services{
		Users:      services.NewUserService(repos.Users),
		Categories: services.NewCategoryService(repos.Categories),
		Themes:     services.NewThemeService(repos.Themes),
		Contents:   services.NewContentService(repos.Contents),
	}
}

func TestSampleIsConsistent(t *testing.T) {
	ds, err := Sample()
	require.NoError(t, err)
	assert.NotEmpty(t, ds.Users)
	assert.NotEmpty(t, ds.Contents)
}

func TestParseRejectsDanglingPositions(t *testing.T) {
	_, err := Parse([]byte(`{"users":[],"categories":[],"themes":[{"name":"x","categories":[1]}],"contents":[]}`))
	require.Error(t, err)

	_, err = Parse([]byte(`{"users":[{"username":"a","type":"owner"}]}`))
	require.Error(t, err)
}

func TestRunMapsPositionsToIDs(t *testing.T) {
	ctx := context.Background()
	svc := newServices(t)
	ds, err := Parse([]byte(`{
		"users": [{"username": "admin", "email": "admin@example.com", "password": "admin123", "type": "admin"}],
		"categories": [{"type": "text", "label": "Bio"}, {"type": "text", "label": "Summary"}],
		"themes": [{"name": "People", "description": "d", "coverImage": "c", "categories": [2, 1]}],
		"contents": [{"title": "Ada", "themes": [1], "values": [{"category": 1, "value": "Mathematician"}], "user": 1}]
	}`))
	require.NoError(t, err)

	summary, err := Run(ctx, svc, ds)
	require.NoError(t, err)
	assert.Equal(t, Summary{Users: 1, Categories: 2, Themes: 1, Contents: 1}, summary)

	themes, err := svc.Themes.GetAllThemes(ctx)
	require.NoError(t, err)
	require.Len(t, themes, 1)
	require.Len(t, themes[0].CategoriesIDs, 2)
	assert.Equal(t, "Summary", themes[0].CategoriesIDs[0].Doc.Label)
	assert.Equal(t, "Bio", themes[0].CategoriesIDs[1].Doc.Label)

	contents, err := svc.Contents.GetAllContents(ctx)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Equal(t, "Bio", contents[0].Values[0].CategoryID.Doc.Label)
	assert.Equal(t, "admin", contents[0].UserID.Doc.Username)
	assert.Equal(t, "People", contents[0].ThemesIDs[0].Doc.Name)

	summary, err = Run(ctx, svc, ds)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)

	categories, err := svc.Categories.GetAllCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}

const smallDataset = `{
	"users": [{"username": "admin", "email": "admin@example.com", "password": "admin123", "type": "admin", "createdAt": "2024-01-08T09:00:00Z"}],
	"categories": [{"type": "text", "label": "Bio"}, {"type": "text", "label": "Summary"}],
	"themes": [{"name": "People", "description": "d", "coverImage": "c", "categories": [1, 2]}],
	"contents": [{"title": "Ada", "themes": [1], "values": [{"category": 2, "value": "Mathematician"}], "user": 1, "createdAt": "2024-03-05T12:00:00Z"}]
}`

// flakyContents fails its first create.
type flakyContents struct {
	services.ContentServiceProvider
	failed atomic.Bool
}

func (f *flakyContents) CreateContent(ctx context.Context, in models.NewContent) (*models.Content, error) {
	if f.failed.CompareAndSwap(false, true) {
		return nil, errors.New("connection reset")
	}
	return f.ContentServiceProvider.CreateContent(ctx, in)
}

func TestRunResumesAfterFailure(t *testing.T) {
	ctx := context.Background()
	svc := newServices(t)
	ds, err := Parse([]byte(smallDataset))
	require.NoError(t, err)

	flaky := svc
	flaky.Contents = &flakyContents{ContentServiceProvider: svc.Contents}
	_, err = Run(ctx, flaky, ds)
	require.Error(t, err)

	summary, err := Run(ctx, svc, ds)
	require.NoError(t, err)
	assert.Equal(t, Summary{Contents: 1}, summary)

	users, err := svc.Users.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	categories, err := svc.Categories.GetAllCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
	themes, err := svc.Themes.GetAllThemes(ctx)
	require.NoError(t, err)
	assert.Len(t, themes, 1)

	contents, err := svc.Contents.GetAllContents(ctx)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Equal(t, "admin", contents[0].UserID.Doc.Username)
	assert.Equal(t, "People", contents[0].ThemesIDs[0].Doc.Name)
	assert.Equal(t, "Summary", contents[0].Values[0].CategoryID.Doc.Label)
}

func TestRunRejectsForeignRecords(t *testing.T) {
	ctx := context.Background()
	svc := newServices(t)
	_, err := svc.Users.CreateUser(ctx, models.NewUser{Username: "other", Email: "other@example.com", Password: "secret123", Role: "reader"})
	require.NoError(t, err)

	ds, err := Parse([]byte(smallDataset))
	require.NoError(t, err)
	_, err = Run(ctx, svc, ds)
	require.ErrorIs(t, err, ErrNotEmpty)

	categories, err := svc.Categories.GetAllCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestRunKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	svc := newServices(t)
	ds, err := Parse([]byte(smallDataset))
	require.NoError(t, err)
	_, err = Run(ctx, svc, ds)
	require.NoError(t, err)

	users, err := svc.Users.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, users[0].CreatedAt.Equal(time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)), users[0].CreatedAt)

	contents, err := svc.Contents.GetAllContents(ctx)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.True(t, contents[0].CreatedAt.Equal(time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)), contents[0].CreatedAt)
}

func TestParseRejectsDuplicateKeys(t *testing.T) {
	_, err := Parse([]byte(`{"categories":[{"type":"text","label":"Bio"},{"type":"text","label":"Bio"}]}`))
	require.Error(t, err)

	_, err = Parse([]byte(`{"users":[
		{"username":"a","email":"a@example.com","type":"admin"},
		{"username":"b","email":"a@example.com","type":"reader"}
	]}`))
	require.Error(t, err)
}
