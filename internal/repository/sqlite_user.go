package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/isdelr/content-creator-be/internal/models"
	"github.com/isdelr/content-creator-be/internal/rbac"
)

const userColumns = "id, username, email, password_hash, role, created_at, updated_at, deleted_at"

type sqliteUsers struct {
	db *sql.DB
}

func scanUser(scanner rowScanner) (models.User, error) {
	var u models.User
	var role string
	var ts stamps
	dest := append([]any{&u.ID, &u.Username, &u.Email, &u.PasswordHash, &role}, ts.dest()...)
	if err := scanner.Scan(dest...); err != nil {
		return u, err
	}
	u.Role = rbac.Role(role)
	return u, ts.decode(&u.CreatedAt, &u.UpdatedAt, &u.DeletedAt)
}

func (r *sqliteUsers) Create(ctx context.Context, user models.User) (*models.User, error) {
	user.ID = uuid.New().String()
	user.CreatedAt = createdAt(user.CreatedAt)
	user.UpdatedAt, user.DeletedAt = nil, nil

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (id, username, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		user.ID, user.Username, user.Email, user.PasswordHash, string(user.Role), formatTime(user.CreatedAt))
	if err != nil {
		return nil, wrapWrite("insert user", err)
	}
	return &user, nil
}

func (r *sqliteUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
}

func (r *sqliteUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE email = ? AND deleted_at IS NULL", email)
}

func (r *sqliteUsers) findOne(ctx context.Context, query string, arg string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &user, nil
}

func (r *sqliteUsers) FindAll(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users WHERE deleted_at IS NULL ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *sqliteUsers) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	var set updateSet
	set.setString("username", patch.Username)
	set.setString("email", patch.Email)
	set.setString("password_hash", patch.PasswordHash)
	if patch.Role != nil {
		set.set("role", string(*patch.Role))
	}

	found, err := set.exec(ctx, r.db, "users", id)
	if err != nil {
		return nil, wrapWrite("update user", err)
	}
	if !found {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

func (r *sqliteUsers) Delete(ctx context.Context, id string) (*models.User, error) {
	found, err := softDelete(ctx, r.db, "users", id)
	if err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}
	if !found {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}
