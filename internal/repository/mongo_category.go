package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/content-creator-be/internal/models"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type categoryDoc struct {
	ID        string     `bson:"_id"`
	Type      string     `bson:"type"`
	Label     string     `bson:"label"`
	CreatedAt time.Time  `bson:"createdAt"`
	UpdatedAt *time.Time `bson:"updatedAt,omitempty"`
	DeletedAt *time.Time `bson:"deletedAt,omitempty"`
}

func (d *categoryDoc) model() *models.Category {
	if d == nil {
		return nil
	}
	return &models.Category{
		ID:        d.ID,
		Type:      d.Type,
		Label:     d.Label,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: utc(d.UpdatedAt),
		DeletedAt: utc(d.DeletedAt),
	}
}

type mongoCategories struct {
	coll *mongo.Collection
}

func (r *mongoCategories) Create(ctx context.Context, in models.NewCategory) (*models.Category, error) {
	doc := categoryDoc{ID: uuid.New().String(), Type: in.Type, Label: in.Label, CreatedAt: now()}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, mongoWrite("insert category", err)
	}
	return doc.model(), nil
}

func (r *mongoCategories) FindByID(ctx context.Context, id string) (*models.Category, error) {
	doc, err := findOne[categoryDoc](ctx, r.coll, byID(id))
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	return doc.model(), nil
}

func (r *mongoCategories) FindAll(ctx context.Context) ([]models.Category, error) {
	docs, err := findAll[categoryDoc](ctx, r.coll, activeFilter)
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	categories := make([]models.Category, 0, len(docs))
	for i := range docs {
		categories = append(categories, *docs[i].model())
	}
	return categories, nil
}

func (r *mongoCategories) Update(ctx context.Context, id string, patch models.CategoryPatch) (*models.Category, error) {
	set := patchSet()
	setString(set, "type", patch.Type)
	setString(set, "label", patch.Label)
	doc, err := setOne[categoryDoc](ctx, r.coll, id, set)
	if err != nil {
		return nil, mongoWrite("update category", err)
	}
	return doc.model(), nil
}

func (r *mongoCategories) Delete(ctx context.Context, id string) (*models.Category, error) {
	doc, err := setOne[categoryDoc](ctx, r.coll, id, deletedSet())
	if err != nil {
		return nil, fmt.Errorf("delete category: %w", err)
	}
	return doc.model(), nil
}
