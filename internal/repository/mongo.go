package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/isdelr/content-creator-be/internal/database"
	"github.com/isdelr/content-creator-be/internal/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// NewMongo returns repositories backed by MongoDB collections in db.
// Documents are keyed by string ids; soft-deleted documents carry deletedAt.
func NewMongo(db *mongo.Database) Repositories {
	loader := &mongoLoader{db: db}
	return Repositories{
		Users:      &mongoUsers{coll: db.Collection(database.UsersCollection)},
		Categories: &mongoCategories{coll: db.Collection(database.CategoriesCollection)},
		Themes:     &mongoThemes{coll: db.Collection(database.ThemesCollection), loader: loader},
		Contents:   &mongoContents{coll: db.Collection(database.ContentsCollection), loader: loader},
		Ping: func(ctx context.Context) error {
			return db.Client().Ping(ctx, readpref.Primary())
		},
	}
}

// activeFilter matches documents whose deletedAt is missing or null.
var activeFilter = bson.M{"deletedAt": nil}

func byID(id string) bson.M {
	return bson.M{"_id": id}
}

func findOne[D any](ctx context.Context, coll *mongo.Collection, filter any) (*D, error) {
	var doc D
	err := coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func findAll[D any](ctx context.Context, coll *mongo.Collection, filter any) ([]D, error) {
	cursor, err := coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	docs := []D{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// setOne applies $set to the document with id and returns the post-update document.
func setOne[D any](ctx context.Context, coll *mongo.Collection, id string, set bson.M) (*D, error) {
	var doc D
	err := coll.FindOneAndUpdate(ctx, byID(id), bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return &doc, nil
}

// patchSet starts a $set document with updatedAt stamped.
func patchSet() bson.M {
	return bson.M{"updatedAt": now()}
}

func setString(set bson.M, key string, value *string) {
	if value != nil {
		set[key] = *value
	}
}

func deletedSet() bson.M {
	return bson.M{"deletedAt": now()}
}

func mongoWrite(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) || errors.Is(err, ErrDuplicate) {
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func stringsOrEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// utc normalises a decoded optional timestamp.
func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

type mongoLoader struct {
	db *mongo.Database
}

func (l *mongoLoader) categorySummaries(ctx context.Context, ids []string) (map[string]models.CategorySummary, error) {
	var docs []struct {
		ID    string `bson:"_id"`
		Type  string `bson:"type"`
		Label string `bson:"label"`
	}
	if err := l.find(ctx, database.CategoriesCollection, ids, bson.M{"type": 1, "label": 1}, &docs); err != nil {
		return nil, fmt.Errorf("resolve categories: %w", err)
	}
	out := make(map[string]models.CategorySummary, len(docs))
	for _, d := range docs {
		out[d.ID] = models.CategorySummary{ID: d.ID, Type: d.Type, Label: d.Label}
	}
	return out, nil
}

func (l *mongoLoader) themeSummaries(ctx context.Context, ids []string) (map[string]models.ThemeSummary, error) {
	var docs []struct {
		ID          string `bson:"_id"`
		Name        string `bson:"name"`
		Description string `bson:"description"`
		CoverImage  string `bson:"coverImage"`
	}
	if err := l.find(ctx, database.ThemesCollection, ids, bson.M{"name": 1, "description": 1, "coverImage": 1}, &docs); err != nil {
		return nil, fmt.Errorf("resolve themes: %w", err)
	}
	out := make(map[string]models.ThemeSummary, len(docs))
	for _, d := range docs {
		out[d.ID] = models.ThemeSummary{ID: d.ID, Name: d.Name, Description: d.Description, CoverImage: d.CoverImage}
	}
	return out, nil
}

func (l *mongoLoader) userSummaries(ctx context.Context, ids []string) (map[string]models.UserSummary, error) {
	var docs []struct {
		ID       string `bson:"_id"`
		Username string `bson:"username"`
		Email    string `bson:"email"`
	}
	if err := l.find(ctx, database.UsersCollection, ids, bson.M{"username": 1, "email": 1}, &docs); err != nil {
		return nil, fmt.Errorf("resolve users: %w", err)
	}
	out := make(map[string]models.UserSummary, len(docs))
	for _, d := range docs {
		out[d.ID] = models.UserSummary{ID: d.ID, Username: d.Username, Email: d.Email}
	}
	return out, nil
}

func (l *mongoLoader) find(ctx context.Context, collection string, ids []string, projection bson.M, out any) error {
	if len(ids) == 0 {
		return nil
	}
	cursor, err := l.db.Collection(collection).Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(projection))
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}
