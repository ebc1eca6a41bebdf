package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/isdelr/content-creator-be/internal/models"
)

const themeColumns = "id, name, description, cover_image, categories_ids_json, created_at, updated_at, deleted_at"

type sqliteThemes struct {
	db     *sql.DB
	loader refLoader
}

func scanTheme(scanner rowScanner) (models.Theme, error) {
	var t models.Theme
	var categoriesJSON string
	var ts stamps
	if err := scanner.Scan(append([]any{&t.ID, &t.Name, &t.Description, &t.CoverImage, &categoriesJSON}, ts.dest()...)...); err != nil {
		return t, err
	}
	ids, err := unmarshalIDs(categoriesJSON)
	if err != nil {
		return t, err
	}
	t.CategoriesIDs = models.RefsTo[models.CategorySummary](ids)
	return t, ts.decode(&t.CreatedAt, &t.UpdatedAt, &t.DeletedAt)
}

func (r *sqliteThemes) Create(ctx context.Context, in models.NewTheme) (*models.Theme, error) {
	categoriesJSON, err := marshalIDs(in.CategoriesIDs)
	if err != nil {
		return nil, err
	}
	theme := models.Theme{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Description:   in.Description,
		CoverImage:    in.CoverImage,
		CategoriesIDs: models.RefsTo[models.CategorySummary](in.CategoriesIDs),
		CreatedAt:     now(),
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO themes (id, name, description, cover_image, categories_ids_json, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		theme.ID, theme.Name, theme.Description, theme.CoverImage, categoriesJSON, formatTime(theme.CreatedAt))
	if err != nil {
		return nil, wrapWrite("insert theme", err)
	}
	return &theme, nil
}

// get loads one theme without resolving its references.
func (r *sqliteThemes) get(ctx context.Context, id string) (*models.Theme, error) {
	theme, err := scanTheme(r.db.QueryRowContext(ctx, "SELECT "+themeColumns+" FROM themes WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select theme: %w", err)
	}
	return &theme, nil
}

func (r *sqliteThemes) FindByID(ctx context.Context, id string) (*models.Theme, error) {
	theme, err := r.get(ctx, id)
	if err != nil || theme == nil {
		return theme, err
	}
	batch := []models.Theme{*theme}
	if err := resolveThemes(ctx, r.loader, batch, themeExpansion); err != nil {
		return nil, err
	}
	return &batch[0], nil
}

func (r *sqliteThemes) FindAll(ctx context.Context) ([]models.Theme, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+themeColumns+" FROM themes WHERE deleted_at IS NULL ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("select themes: %w", err)
	}
	defer rows.Close()

	themes := []models.Theme{}
	for rows.Next() {
		theme, err := scanTheme(rows)
		if err != nil {
			return nil, fmt.Errorf("scan theme: %w", err)
		}
		themes = append(themes, theme)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := resolveThemes(ctx, r.loader, themes, themeExpansion); err != nil {
		return nil, err
	}
	return themes, nil
}

func (r *sqliteThemes) Update(ctx context.Context, id string, patch models.ThemePatch) (*models.Theme, error) {
	var set updateSet
	set.setString("name", patch.Name)
	set.setString("description", patch.Description)
	set.setString("cover_image", patch.CoverImage)
	if patch.CategoriesIDs != nil {
		categoriesJSON, err := marshalIDs(*patch.CategoriesIDs)
		if err != nil {
			return nil, err
		}
		set.set("categories_ids_json", categoriesJSON)
	}

	found, err := set.exec(ctx, r.db, "themes", id)
	if err != nil {
		return nil, wrapWrite("update theme", err)
	}
	if !found {
		return nil, nil
	}
	return r.get(ctx, id)
}

func (r *sqliteThemes) Delete(ctx context.Context, id string) (*models.Theme, error) {
	found, err := softDelete(ctx, r.db, "themes", id)
	if err != nil {
		return nil, fmt.Errorf("delete theme: %w", err)
	}
	if !found {
		return nil, nil
	}
	return r.get(ctx, id)
}
