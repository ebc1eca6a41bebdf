package models

import (
	"time"

	"github.com/isdelr/content-creator-be/internal/rbac"
)

// User represents a user account in the system.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Never expose this to the client
	Role         rbac.Role  `json:"type"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
	DeletedAt    *time.Time `json:"deletedAt,omitempty"`
}

// UserSummary is the embedded form of a user inside resolved content.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Summary returns the embedded form of u.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Email: u.Email}
}

// NewUser is the signup payload. Password is plaintext here and is hashed by the user service.
type NewUser struct {
	Username string    `json:"username" validate:"required,min=3,max=30"`
	Email    string    `json:"email" validate:"required,email,min=10,max=30"`
	Password string    `json:"password" validate:"required,min=6,max=60"`
	Role     rbac.Role `json:"type" validate:"required,oneof=admin creator reader"`
	// CreatedAt backdates imported accounts; zero means now.
	CreatedAt time.Time `json:"-"`
}

// UserPatch is a partial user update. Nil fields are left untouched.
// Password carries the plaintext from the client; the user service replaces it
// with PasswordHash before the patch reaches the repository.
type UserPatch struct {
	Username     *string    `json:"username,omitempty" validate:"omitempty,min=3,max=30"`
	Email        *string    `json:"email,omitempty" validate:"omitempty,email,min=10,max=30"`
	Password     *string    `json:"password,omitempty" validate:"omitempty,min=6,max=60"`
	Role         *rbac.Role `json:"type,omitempty" validate:"omitempty,oneof=admin creator reader"`
	PasswordHash *string    `json:"-"`
}
