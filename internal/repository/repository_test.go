package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/isdelr/content-creator-be/internal/models"
	"github.com/isdelr/content-creator-be/internal/rbac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// runRepositorySuite exercises the shared repository contract against one backend.
func runRepositorySuite(t *testing.T, open func(t *testing.T) Repositories) {
	t.Run("soft delete hides from listings", func(t *testing.T) {
		repos := open(t)
		ctx := context.Background()

		keep, err := repos.Categories.Create(ctx, models.NewCategory{Type: "text", Label: "Keep"})
		require.NoError(t, err)
		drop, err := repos.Categories.Create(ctx, models.NewCategory{Type: "text", Label: "Drop"})
		require.NoError(t, err)

		deleted, err := repos.Categories.Delete(ctx, drop.ID)
		require.NoError(t, err)
		require.NotNil(t, deleted)
		require.NotNil(t, deleted.DeletedAt)

		all, err := repos.Categories.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, keep.ID, all[0].ID)

		found, err := repos.Categories.FindByID(ctx, drop.ID)
		require.NoError(t, err)
		require.NotNil(t, found, "soft-deleted records stay addressable by id")
		assert.NotNil(t, found.DeletedAt)
	})

	t.Run("missing ids yield nil without error", func(t *testing.T) {
		repos := open(t)
		ctx := context.Background()

		content, err := repos.Contents.FindByID(ctx, "does-not-exist")
		require.NoError(t, err)
		assert.Nil(t, content)

		theme, err := repos.Themes.Update(ctx, "does-not-exist", models.ThemePatch{Name: ptr("x")})
		require.NoError(t, err)
		assert.Nil(t, theme)

		user, err := repos.Users.Delete(ctx, "does-not-exist")
		require.NoError(t, err)
		assert.Nil(t, user)

		category, err := repos.Categories.Delete(ctx, "does-not-exist")
		require.NoError(t, err)
		assert.Nil(t, category)
	})

	t.Run("content resolves references", func(t *testing.T) {
		repos := open(t)
		ctx := context.Background()

		owner, err := repos.Users.Create(ctx, models.User{Username: "writer", Email: "writer@example.com", PasswordHash: "hash", Role: rbac.RoleCreator})
		require.NoError(t, err)
		bio, err := repos.Categories.Create(ctx, models.NewCategory{Type: "text", Label: "Bio"})
		require.NoError(t, err)
		theme, err := repos.Themes.Create(ctx, models.NewTheme{Name: "People", Description: "Profiles", CoverImage: "cover.png", CategoriesIDs: []string{bio.ID}})
		require.NoError(t, err)

		created, err := repos.Contents.Create(ctx, models.NewContent{
			Title:     "Ada",
			ThemesIDs: []string{theme.ID},
			Values:    []models.ValueInput{{CategoryID: bio.ID, Value: "hello"}},
			UserID:    owner.ID,
		})
		require.NoError(t, err)
		assert.False(t, created.UserID.Resolved(), "create returns unresolved references")

		got, err := repos.Contents.FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, got)

		require.Len(t, got.ThemesIDs, 1)
		assert.Equal(t, theme.ID, got.ThemesIDs[0].ID)
		assert.Equal(t, theme.ID, got.ThemesIDs[0].Doc.ID)
		assert.Equal(t, "People", got.ThemesIDs[0].Doc.Name)
		assert.Equal(t, "cover.png", got.ThemesIDs[0].Doc.CoverImage)

		require.Len(t, got.Values, 1)
		assert.Equal(t, bio.ID, got.Values[0].CategoryID.Doc.ID)
		assert.Equal(t, "Bio", got.Values[0].CategoryID.Doc.Label)
		assert.Equal(t, "hello", got.Values[0].Value)

		require.True(t, got.UserID.Resolved())
		assert.Equal(t, owner.ID, got.UserID.Doc.ID)
		assert.Equal(t, "writer", got.UserID.Doc.Username)

		all, err := repos.Contents.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "Bio", all[0].Values[0].CategoryID.Doc.Label)

		resolvedTheme, err := repos.Themes.FindByID(ctx, theme.ID)
		require.NoError(t, err)
		require.Len(t, resolvedTheme.CategoriesIDs, 1)
		assert.Equal(t, bio.ID, resolvedTheme.CategoriesIDs[0].Doc.ID)
		assert.Equal(t, "text", resolvedTheme.CategoriesIDs[0].Doc.Type)
	})

	t.Run("partial update leaves other fields", func(t *testing.T) {
		repos := open(t)
		ctx := context.Background()

		created, err := repos.Contents.Create(ctx, models.NewContent{Title: "Before", ThemesIDs: []string{"t-1"}, UserID: "u-1"})
		require.NoError(t, err)

		updated, err := repos.Contents.Update(ctx, created.ID, models.ContentPatch{Title: ptr("After")})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "After", updated.Title)
		assert.Equal(t, []string{"t-1"}, models.RefIDs(updated.ThemesIDs))
		assert.Equal(t, "u-1", updated.UserID.ID)
		assert.NotNil(t, updated.UpdatedAt)
		assert.False(t, updated.UserID.Resolved())
	})

	t.Run("users", func(t *testing.T) {
		repos := open(t)
		ctx := context.Background()

		user, err := repos.Users.Create(ctx, models.User{Username: "reader", Email: "reader@example.com", PasswordHash: "hash", Role: rbac.RoleReader})
		require.NoError(t, err)

		_, err = repos.Users.Create(ctx, models.User{Username: "reader", Email: "other@example.com", PasswordHash: "hash", Role: rbac.RoleReader})
		require.True(t, errors.Is(err, ErrDuplicate), "got %v", err)

		byEmail, err := repos.Users.FindByEmail(ctx, "reader@example.com")
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, user.ID, byEmail.ID)
		assert.Equal(t, "hash", byEmail.PasswordHash)

		promoted, err := repos.Users.Update(ctx, user.ID, models.UserPatch{Role: ptr(rbac.RoleAdmin)})
		require.NoError(t, err)
		assert.Equal(t, rbac.RoleAdmin, promoted.Role)
		assert.Equal(t, "reader", promoted.Username)

		_, err = repos.Users.Delete(ctx, user.ID)
		require.NoError(t, err)

		gone, err := repos.Users.FindByEmail(ctx, "reader@example.com")
		require.NoError(t, err)
		assert.Nil(t, gone, "soft-deleted users cannot be found by email")

		all, err := repos.Users.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("empty listings are non-nil", func(t *testing.T) {
		repos := open(t)
		ctx := context.Background()

		contents, err := repos.Contents.FindAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, contents)

		themes, err := repos.Themes.FindAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, themes)

		require.NoError(t, repos.Ping(ctx))
	})

	t.Run("creation time is kept when supplied", func(t *testing.T) {
		repos := open(t)
		ctx := context.Background()
		stamp := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)

		user, err := repos.Users.Create(ctx, models.User{Username: "old", Email: "old@example.com", PasswordHash: "x", Role: rbac.RoleReader, CreatedAt: stamp})
		require.NoError(t, err)
		assert.True(t, user.CreatedAt.Equal(stamp))
		found, err := repos.Users.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, found.CreatedAt.Equal(stamp), found.CreatedAt)

		content, err := repos.Contents.Create(ctx, models.NewContent{Title: "Old", UserID: user.ID, CreatedAt: stamp})
		require.NoError(t, err)
		loaded, err := repos.Contents.FindByID(ctx, content.ID)
		require.NoError(t, err)
		assert.True(t, loaded.CreatedAt.Equal(stamp), loaded.CreatedAt)

		fresh, err := repos.Contents.Create(ctx, models.NewContent{Title: "New", UserID: user.ID})
		require.NoError(t, err)
		assert.True(t, fresh.CreatedAt.After(stamp))
	})
}
