package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/content-creator-be/internal/models"
	"github.com/isdelr/content-creator-be/internal/rbac"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type userDoc struct {
	ID        string     `bson:"_id"`
	Username  string     `bson:"username"`
	Email     string     `bson:"email"`
	Password  string     `bson:"password"`
	Type      string     `bson:"type"`
	CreatedAt time.Time  `bson:"createdAt"`
	UpdatedAt *time.Time `bson:"updatedAt,omitempty"`
	DeletedAt *time.Time `bson:"deletedAt,omitempty"`
}

func (d *userDoc) model() *models.User {
	if d == nil {
		return nil
	}
	return &models.User{
		ID:           d.ID,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.Password,
		Role:         rbac.Role(d.Type),
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    utc(d.UpdatedAt),
		DeletedAt:    utc(d.DeletedAt),
	}
}

type mongoUsers struct {
	coll *mongo.Collection
}

func (r *mongoUsers) Create(ctx context.Context, user models.User) (*models.User, error) {
	doc := userDoc{
		ID:        uuid.New().String(),
		Username:  user.Username,
		Email:     user.Email,
		Password:  user.PasswordHash,
		Type:      string(user.Role),
		CreatedAt: createdAt(user.CreatedAt),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, mongoWrite("insert user", err)
	}
	return doc.model(), nil
}

func (r *mongoUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	doc, err := findOne[userDoc](ctx, r.coll, byID(id))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.model(), nil
}

func (r *mongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	doc, err := findOne[userDoc](ctx, r.coll, bson.M{"email": email, "deletedAt": nil})
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return doc.model(), nil
}

func (r *mongoUsers) FindAll(ctx context.Context) ([]models.User, error) {
	docs, err := findAll[userDoc](ctx, r.coll, activeFilter)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	users := make([]models.User, 0, len(docs))
	for i := range docs {
		users = append(users, *docs[i].model())
	}
	return users, nil
}

func (r *mongoUsers) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	set := patchSet()
	setString(set, "username", patch.Username)
	setString(set, "email", patch.Email)
	setString(set, "password", patch.PasswordHash)
	if patch.Role != nil {
		set["type"] = string(*patch.Role)
	}
	doc, err := setOne[userDoc](ctx, r.coll, id, set)
	if err != nil {
		return nil, mongoWrite("update user", err)
	}
	return doc.model(), nil
}

func (r *mongoUsers) Delete(ctx context.Context, id string) (*models.User, error) {
	doc, err := setOne[userDoc](ctx, r.coll, id, deletedSet())
	if err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}
	return doc.model(), nil
}
