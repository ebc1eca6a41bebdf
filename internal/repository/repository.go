// Package repository translates entity operations into store queries and
// resolves entity references at read time.
//
// Every repository follows the same contract: a missing id yields (nil, nil),
// never an error; store failures propagate wrapped. FindAll skips soft-deleted
// records, FindByID does not. Create and Update return the stored entity with
// references unresolved; FindByID and FindAll resolve them.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/isdelr/content-creator-be/internal/models"
)

// ErrDuplicate is returned when a write violates a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate value")

// UserRepository persists users. Create expects PasswordHash to be set already
// and keeps CreatedAt when it is non-zero.
type UserRepository interface {
	Create(ctx context.Context, user models.User) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	// FindByEmail ignores soft-deleted users.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id string) (*models.User, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, in models.NewCategory) (*models.Category, error)
	FindByID(ctx context.Context, id string) (*models.Category, error)
	FindAll(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, id string, patch models.CategoryPatch) (*models.Category, error)
	Delete(ctx context.Context, id string) (*models.Category, error)
}

type ThemeRepository interface {
	Create(ctx context.Context, in models.NewTheme) (*models.Theme, error)
	FindByID(ctx context.Context, id string) (*models.Theme, error)
	FindAll(ctx context.Context) ([]models.Theme, error)
	Update(ctx context.Context, id string, patch models.ThemePatch) (*models.Theme, error)
	Delete(ctx context.Context, id string) (*models.Theme, error)
}

type ContentRepository interface {
	Create(ctx context.Context, in models.NewContent) (*models.Content, error)
	FindByID(ctx context.Context, id string) (*models.Content, error)
	FindAll(ctx context.Context) ([]models.Content, error)
	Update(ctx context.Context, id string, patch models.ContentPatch) (*models.Content, error)
	Delete(ctx context.Context, id string) (*models.Content, error)
}

// Repositories bundles one repository per entity over a single store.
type Repositories struct {
	Users      UserRepository
	Categories CategoryRepository
	Themes     ThemeRepository
	Contents   ContentRepository
	// Ping checks store connectivity.
	Ping func(ctx context.Context) error
}

func now() time.Time {
	return time.Now().UTC()
}

// createdAt keeps a caller-supplied creation time and stamps now otherwise.
func createdAt(t time.Time) time.Time {
	if t.IsZero() {
		return now()
	}
	return t.UTC()
}
