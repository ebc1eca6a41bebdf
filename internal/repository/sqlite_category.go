package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/isdelr/content-creator-be/internal/models"
)

const categoryColumns = "id, type, label, created_at, updated_at, deleted_at"

type sqliteCategories struct {
	db *sql.DB
}

func scanCategory(scanner rowScanner) (models.Category, error) {
	var c models.Category
	var ts stamps
	if err := scanner.Scan(append([]any{&c.ID, &c.Type, &c.Label}, ts.dest()...)...); err != nil {
		return c, err
	}
	return c, ts.decode(&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt)
}

func (r *sqliteCategories) Create(ctx context.Context, in models.NewCategory) (*models.Category, error) {
	category := models.Category{
		ID:        uuid.New().String(),
		Type:      in.Type,
		Label:     in.Label,
		CreatedAt: now(),
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO categories (id, type, label, created_at) VALUES (?, ?, ?, ?)",
		category.ID, category.Type, category.Label, formatTime(category.CreatedAt))
	if err != nil {
		return nil, wrapWrite("insert category", err)
	}
	return &category, nil
}

func (r *sqliteCategories) FindByID(ctx context.Context, id string) (*models.Category, error) {
	category, err := scanCategory(r.db.QueryRowContext(ctx, "SELECT "+categoryColumns+" FROM categories WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select category: %w", err)
	}
	return &category, nil
}

func (r *sqliteCategories) FindAll(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+categoryColumns+" FROM categories WHERE deleted_at IS NULL ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *sqliteCategories) Update(ctx context.Context, id string, patch models.CategoryPatch) (*models.Category, error) {
	var set updateSet
	set.setString("type", patch.Type)
	set.setString("label", patch.Label)

	found, err := set.exec(ctx, r.db, "categories", id)
	if err != nil {
		return nil, wrapWrite("update category", err)
	}
	if !found {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

func (r *sqliteCategories) Delete(ctx context.Context, id string) (*models.Category, error) {
	found, err := softDelete(ctx, r.db, "categories", id)
	if err != nil {
		return nil, fmt.Errorf("delete category: %w", err)
	}
	if !found {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}
