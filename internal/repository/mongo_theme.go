package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/content-creator-be/internal/models"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type themeDoc struct {
	ID            string     `bson:"_id"`
	Name          string     `bson:"name"`
	Description   string     `bson:"description"`
	CoverImage    string     `bson:"coverImage"`
	CategoriesIDs []string   `bson:"categoriesIds"`
	CreatedAt     time.Time  `bson:"createdAt"`
	UpdatedAt     *time.Time `bson:"updatedAt,omitempty"`
	DeletedAt     *time.Time `bson:"deletedAt,omitempty"`
}

func (d *themeDoc) model() *models.Theme {
	if d == nil {
		return nil
	}
	return &models.Theme{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		CoverImage:    d.CoverImage,
		CategoriesIDs: models.RefsTo[models.CategorySummary](d.CategoriesIDs),
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     utc(d.UpdatedAt),
		DeletedAt:     utc(d.DeletedAt),
	}
}

type mongoThemes struct {
	coll   *mongo.Collection
	loader refLoader
}

func (r *mongoThemes) Create(ctx context.Context, in models.NewTheme) (*models.Theme, error) {
	doc := themeDoc{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Description:   in.Description,
		CoverImage:    in.CoverImage,
		CategoriesIDs: stringsOrEmpty(in.CategoriesIDs),
		CreatedAt:     now(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, mongoWrite("insert theme", err)
	}
	return doc.model(), nil
}

func (r *mongoThemes) FindByID(ctx context.Context, id string) (*models.Theme, error) {
	doc, err := findOne[themeDoc](ctx, r.coll, byID(id))
	if err != nil {
		return nil, fmt.Errorf("find theme: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	batch := []models.Theme{*doc.model()}
	if err := resolveThemes(ctx, r.loader, batch, themeExpansion); err != nil {
		return nil, err
	}
	return &batch[0], nil
}

func (r *mongoThemes) FindAll(ctx context.Context) ([]models.Theme, error) {
	docs, err := findAll[themeDoc](ctx, r.coll, activeFilter)
	if err != nil {
		return nil, fmt.Errorf("find themes: %w", err)
	}
	themes := make([]models.Theme, 0, len(docs))
	for i := range docs {
		themes = append(themes, *docs[i].model())
	}
	if err := resolveThemes(ctx, r.loader, themes, themeExpansion); err != nil {
		return nil, err
	}
	return themes, nil
}

func (r *mongoThemes) Update(ctx context.Context, id string, patch models.ThemePatch) (*models.Theme, error) {
	set := patchSet()
	setString(set, "name", patch.Name)
	setString(set, "description", patch.Description)
	setString(set, "coverImage", patch.CoverImage)
	if patch.CategoriesIDs != nil {
		set["categoriesIds"] = stringsOrEmpty(*patch.CategoriesIDs)
	}
	doc, err := setOne[themeDoc](ctx, r.coll, id, set)
	if err != nil {
		return nil, mongoWrite("update theme", err)
	}
	return doc.model(), nil
}

func (r *mongoThemes) Delete(ctx context.Context, id string) (*models.Theme, error) {
	doc, err := setOne[themeDoc](ctx, r.coll, id, deletedSet())
	if err != nil {
		return nil, fmt.Errorf("delete theme: %w", err)
	}
	return doc.model(), nil
}
