package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names shared by the mongo repositories.
const (
	UsersCollection      = "users"
	CategoriesCollection = "categories"
	ThemesCollection     = "themes"
	ContentsCollection   = "contents"
)

// ConnectMongo connects to MongoDB and verifies the connection.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// MigrateMongo creates the indexes the repositories rely on.
func MigrateMongo(ctx context.Context, db *mongo.Database) error {
	collections := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "deletedAt", Value: 1}}},
		},
		CategoriesCollection: {
			{Keys: bson.D{{Key: "deletedAt", Value: 1}}},
		},
		ThemesCollection: {
			{Keys: bson.D{{Key: "deletedAt", Value: 1}}},
		},
		ContentsCollection: {
			{Keys: bson.D{{Key: "deletedAt", Value: 1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
	}

	for name, indexes := range collections {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create indexes for %s: %w", name, err)
		}
	}
	return nil
}
