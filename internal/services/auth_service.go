package services

import (
	"context"
	"sync"

	"github.com/isdelr/content-creator-be/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// AuthServiceProvider defines the interface for credential checks.
type AuthServiceProvider interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

// AuthService validates user credentials.
type AuthService struct {
	users UserServiceProvider
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserServiceProvider) *AuthService {
	return &AuthService{users: users}
}

// dummyHash is compared against when the email is unknown, so both failure
// paths cost one bcrypt comparison.
var (
	dummyHash     []byte
	dummyHashOnce sync.Once
)

func unknownUserHash() []byte {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("unknown-user"), bcrypt.DefaultCost)
	})
	return dummyHash
}

// Authenticate returns the user whose email and password match, or nil when
// either the email is unknown or the password is wrong. The two cases are not
// distinguished. Only store failures are returned as errors.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(unknownUserHash(), []byte(password))
		return nil, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Debug().Str("user_id", user.ID).Msg("Password mismatch")
		return nil, nil
	}
	return user, nil
}
