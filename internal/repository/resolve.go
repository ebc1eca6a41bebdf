package repository

import (
	"context"

	"github.com/isdelr/content-creator-be/internal/models"
)

// refLoader fetches summaries of referenced entities by id, soft-deleted ones
// included. Ids with no matching record are absent from the returned map.
type refLoader interface {
	categorySummaries(ctx context.Context, ids []string) (map[string]models.CategorySummary, error)
	themeSummaries(ctx context.Context, ids []string) (map[string]models.ThemeSummary, error)
	userSummaries(ctx context.Context, ids []string) (map[string]models.UserSummary, error)
}

// expansion selects which reference fields a read resolves.
type expansion uint8

const (
	expandThemeCategories expansion = 1 << iota
	expandContentOwner
	expandContentThemes
	expandContentValueCategories
)

const (
	themeExpansion   = expandThemeCategories
	contentExpansion = expandContentOwner | expandContentThemes | expandContentValueCategories
)

// resolveThemes embeds category summaries into every theme with one lookup for
// the whole batch. References to missing categories are dropped from the list.
func resolveThemes(ctx context.Context, loader refLoader, themes []models.Theme, fields expansion) error {
	if fields&expandThemeCategories == 0 || len(themes) == 0 {
		return nil
	}

	var ids []string
	for _, theme := range themes {
		ids = append(ids, models.RefIDs(theme.CategoriesIDs)...)
	}
	categories, err := loader.categorySummaries(ctx, uniqueIDs(ids))
	if err != nil {
		return err
	}

	for i := range themes {
		themes[i].CategoriesIDs = resolveList(themes[i].CategoriesIDs, categories)
	}
	return nil
}

// resolveContents embeds owner, theme and value-category summaries into every
// content record. Missing themes are dropped; a missing owner or value category
// stays an unresolved reference.
func resolveContents(ctx context.Context, loader refLoader, contents []models.Content, fields expansion) error {
	if len(contents) == 0 {
		return nil
	}

	if fields&expandContentOwner != 0 {
		ids := make([]string, 0, len(contents))
		for _, content := range contents {
			ids = append(ids, content.UserID.ID)
		}
		users, err := loader.userSummaries(ctx, uniqueIDs(ids))
		if err != nil {
			return err
		}
		for i := range contents {
			contents[i].UserID = resolveOne(contents[i].UserID, users)
		}
	}

	if fields&expandContentThemes != 0 {
		var ids []string
		for _, content := range contents {
			ids = append(ids, models.RefIDs(content.ThemesIDs)...)
		}
		themes, err := loader.themeSummaries(ctx, uniqueIDs(ids))
		if err != nil {
			return err
		}
		for i := range contents {
			contents[i].ThemesIDs = resolveList(contents[i].ThemesIDs, themes)
		}
	}

	if fields&expandContentValueCategories != 0 {
		var ids []string
		for _, content := range contents {
			for _, value := range content.Values {
				ids = append(ids, value.CategoryID.ID)
			}
		}
		categories, err := loader.categorySummaries(ctx, uniqueIDs(ids))
		if err != nil {
			return err
		}
		for i := range contents {
			for j := range contents[i].Values {
				contents[i].Values[j].CategoryID = resolveOne(contents[i].Values[j].CategoryID, categories)
			}
		}
	}
	return nil
}

func resolveOne[T any](ref models.Ref[T], found map[string]T) models.Ref[T] {
	doc, ok := found[ref.ID]
	if !ok {
		return models.Ref[T]{ID: ref.ID}
	}
	return models.Ref[T]{ID: ref.ID, Doc: &doc}
}

func resolveList[T any](refs []models.Ref[T], found map[string]T) []models.Ref[T] {
	resolved := make([]models.Ref[T], 0, len(refs))
	for _, ref := range refs {
		doc, ok := found[ref.ID]
		if !ok {
			continue
		}
		resolved = append(resolved, models.Ref[T]{ID: ref.ID, Doc: &doc})
	}
	return resolved
}

// uniqueIDs drops empty and repeated ids, keeping first-seen order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
