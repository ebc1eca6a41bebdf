package services

import (
	"context"
	"fmt"

	"github.com/isdelr/content-creator-be/internal/models"
	"github.com/isdelr/content-creator-be/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, in models.NewUser) (*models.User, error)
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id string) (*models.User, error)
}

// UserService provides business logic for user management.
// Passwords are hashed here and never reach the repository in plaintext.
type UserService struct {
	repo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// GetUserByID retrieves a single user by their ID. Returns nil if absent.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

// GetUserByEmail retrieves an active user by email, including the password hash.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

// GetAllUsers lists users that are not soft-deleted.
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.FindAll(ctx)
}

// CreateUser creates a new user, hashing their password.
func (s *UserService) CreateUser(ctx context.Context, in models.NewUser) (*models.User, error) {
	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hashed,
		Role:         in.Role,
		CreatedAt:    in.CreatedAt,
	})
}

// UpdateUser applies a partial update, re-hashing the password when one is given.
func (s *UserService) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	if patch.Password != nil {
		hashed, err := hashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hashed
		patch.Password = nil
	}
	return s.repo.Update(ctx, id, patch)
}

// DeleteUser soft-deletes a user.
func (s *UserService) DeleteUser(ctx context.Context, id string) (*models.User, error) {
	return s.repo.Delete(ctx, id)
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
