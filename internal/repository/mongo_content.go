package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/content-creator-be/internal/models"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type contentValueDoc struct {
	CategoryID string `bson:"categoryId"`
	Value      string `bson:"value"`
}

type contentDoc struct {
	ID        string            `bson:"_id"`
	Title     string            `bson:"title"`
	ThemesIDs []string          `bson:"themesIds"`
	Values    []contentValueDoc `bson:"values"`
	UserID    string            `bson:"userId"`
	CreatedAt time.Time         `bson:"createdAt"`
	UpdatedAt *time.Time        `bson:"updatedAt,omitempty"`
	DeletedAt *time.Time        `bson:"deletedAt,omitempty"`
}

func valueDocs(in []models.ValueInput) []contentValueDoc {
	docs := make([]contentValueDoc, 0, len(in))
	for _, v := range in {
		docs = append(docs, contentValueDoc{CategoryID: v.CategoryID, Value: v.Value})
	}
	return docs
}

func (d *contentDoc) model() *models.Content {
	if d == nil {
		return nil
	}
	values := make([]models.ContentValue, 0, len(d.Values))
	for _, v := range d.Values {
		values = append(values, models.ContentValue{CategoryID: models.RefTo[models.CategorySummary](v.CategoryID), Value: v.Value})
	}
	return &models.Content{
		ID:        d.ID,
		Title:     d.Title,
		ThemesIDs: models.RefsTo[models.ThemeSummary](d.ThemesIDs),
		Values:    values,
		UserID:    models.RefTo[models.UserSummary](d.UserID),
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: utc(d.UpdatedAt),
		DeletedAt: utc(d.DeletedAt),
	}
}

type mongoContents struct {
	coll   *mongo.Collection
	loader refLoader
}

func (r *mongoContents) Create(ctx context.Context, in models.NewContent) (*models.Content, error) {
	doc := contentDoc{
		ID:        uuid.New().String(),
		Title:     in.Title,
		ThemesIDs: stringsOrEmpty(in.ThemesIDs),
		Values:    valueDocs(in.Values),
		UserID:    in.UserID,
		CreatedAt: createdAt(in.CreatedAt),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, mongoWrite("insert content", err)
	}
	return doc.model(), nil
}

func (r *mongoContents) FindByID(ctx context.Context, id string) (*models.Content, error) {
	doc, err := findOne[contentDoc](ctx, r.coll, byID(id))
	if err != nil {
		return nil, fmt.Errorf("find content: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	batch := []models.Content{*doc.model()}
	if err := resolveContents(ctx, r.loader, batch, contentExpansion); err != nil {
		return nil, err
	}
	return &batch[0], nil
}

func (r *mongoContents) FindAll(ctx context.Context) ([]models.Content, error) {
	docs, err := findAll[contentDoc](ctx, r.coll, activeFilter)
	if err != nil {
		return nil, fmt.Errorf("find contents: %w", err)
	}
	contents := make([]models.Content, 0, len(docs))
	for i := range docs {
		contents = append(contents, *docs[i].model())
	}
	if err := resolveContents(ctx, r.loader, contents, contentExpansion); err != nil {
		return nil, err
	}
	return contents, nil
}

func (r *mongoContents) Update(ctx context.Context, id string, patch models.ContentPatch) (*models.Content, error) {
	set := patchSet()
	setString(set, "title", patch.Title)
	setString(set, "userId", patch.UserID)
	if patch.ThemesIDs != nil {
		set["themesIds"] = stringsOrEmpty(*patch.ThemesIDs)
	}
	if patch.Values != nil {
		set["values"] = valueDocs(*patch.Values)
	}
	doc, err := setOne[contentDoc](ctx, r.coll, id, set)
	if err != nil {
		return nil, mongoWrite("update content", err)
	}
	return doc.model(), nil
}

func (r *mongoContents) Delete(ctx context.Context, id string) (*models.Content, error) {
	doc, err := setOne[contentDoc](ctx, r.coll, id, deletedSet())
	if err != nil {
		return nil, fmt.Errorf("delete content: %w", err)
	}
	return doc.model(), nil
}
