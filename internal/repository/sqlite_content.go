package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/isdelr/content-creator-be/internal/models"
)

const contentColumns = "id, title, themes_ids_json, values_json, user_id, created_at, updated_at, deleted_at"

type sqliteContents struct {
	db     *sql.DB
	loader refLoader
}

func marshalValues(values []models.ValueInput) (string, error) {
	if values == nil {
		values = []models.ValueInput{}
	}
	b, err := json.Marshal(values)
	return string(b), err
}

func unmarshalValues(s string) ([]models.ContentValue, error) {
	var inputs []models.ValueInput
	if s != "" {
		if err := json.Unmarshal([]byte(s), &inputs); err != nil {
			return nil, fmt.Errorf("decode content values: %w", err)
		}
	}
	return models.ValuesFromInput(inputs), nil
}

func scanContent(scanner rowScanner) (models.Content, error) {
	var c models.Content
	var themesJSON, valuesJSON, userID string
	var ts stamps
	if err := scanner.Scan(append([]any{&c.ID, &c.Title, &themesJSON, &valuesJSON, &userID}, ts.dest()...)...); err != nil {
		return c, err
	}
	themeIDs, err := unmarshalIDs(themesJSON)
	if err != nil {
		return c, err
	}
	if c.Values, err = unmarshalValues(valuesJSON); err != nil {
		return c, err
	}
	c.ThemesIDs = models.RefsTo[models.ThemeSummary](themeIDs)
	c.UserID = models.RefTo[models.UserSummary](userID)
	return c, ts.decode(&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt)
}

func (r *sqliteContents) Create(ctx context.Context, in models.NewContent) (*models.Content, error) {
	themesJSON, err := marshalIDs(in.ThemesIDs)
	if err != nil {
		return nil, err
	}
	valuesJSON, err := marshalValues(in.Values)
	if err != nil {
		return nil, err
	}
	content := models.Content{
		ID:        uuid.New().String(),
		Title:     in.Title,
		ThemesIDs: models.RefsTo[models.ThemeSummary](in.ThemesIDs),
		Values:    models.ValuesFromInput(in.Values),
		UserID:    models.RefTo[models.UserSummary](in.UserID),
		CreatedAt: createdAt(in.CreatedAt),
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO contents (id, title, themes_ids_json, values_json, user_id, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		content.ID, content.Title, themesJSON, valuesJSON, in.UserID, formatTime(content.CreatedAt))
	if err != nil {
		return nil, wrapWrite("insert content", err)
	}
	return &content, nil
}

// get loads one content record without resolving its references.
func (r *sqliteContents) get(ctx context.Context, id string) (*models.Content, error) {
	content, err := scanContent(r.db.QueryRowContext(ctx, "SELECT "+contentColumns+" FROM contents WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select content: %w", err)
	}
	return &content, nil
}

func (r *sqliteContents) FindByID(ctx context.Context, id string) (*models.Content, error) {
	content, err := r.get(ctx, id)
	if err != nil || content == nil {
		return content, err
	}
	batch := []models.Content{*content}
	if err := resolveContents(ctx, r.loader, batch, contentExpansion); err != nil {
		return nil, err
	}
	return &batch[0], nil
}

func (r *sqliteContents) FindAll(ctx context.Context) ([]models.Content, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+contentColumns+" FROM contents WHERE deleted_at IS NULL ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("select contents: %w", err)
	}
	defer rows.Close()

	contents := []models.Content{}
	for rows.Next() {
		content, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		contents = append(contents, content)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := resolveContents(ctx, r.loader, contents, contentExpansion); err != nil {
		return nil, err
	}
	return contents, nil
}

func (r *sqliteContents) Update(ctx context.Context, id string, patch models.ContentPatch) (*models.Content, error) {
	var set updateSet
	set.setString("title", patch.Title)
	set.setString("user_id", patch.UserID)
	if patch.ThemesIDs != nil {
		themesJSON, err := marshalIDs(*patch.ThemesIDs)
		if err != nil {
			return nil, err
		}
		set.set("themes_ids_json", themesJSON)
	}
	if patch.Values != nil {
		valuesJSON, err := marshalValues(*patch.Values)
		if err != nil {
			return nil, err
		}
		set.set("values_json", valuesJSON)
	}

	found, err := set.exec(ctx, r.db, "contents", id)
	if err != nil {
		return nil, wrapWrite("update content", err)
	}
	if !found {
		return nil, nil
	}
	return r.get(ctx, id)
}

func (r *sqliteContents) Delete(ctx context.Context, id string) (*models.Content, error) {
	found, err := softDelete(ctx, r.db, "contents", id)
	if err != nil {
		return nil, fmt.Errorf("delete content: %w", err)
	}
	if !found {
		return nil, nil
	}
	return r.get(ctx, id)
}
