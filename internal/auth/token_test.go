package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestTokenVerifiesUntilExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	manager := NewManager("test-secret", WithClock(clock.now))

	token, err := manager.IssueToken("user-1")
	require.NoError(t, err)

	identity, err := manager.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
	assert.True(t, clock.t.Equal(identity.IssuedAt))
	assert.True(t, clock.t.Add(24*time.Hour).Equal(identity.ExpiresAt))

	clock.t = clock.t.Add(23*time.Hour + 59*time.Minute)
	identity, err = manager.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)

	clock.t = clock.t.Add(2 * time.Minute)
	_, err = manager.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsTamperedTokens(t *testing.T) {
	manager := NewManager("test-secret")
	other := NewManager("another-secret")

	token, err := other.IssueToken("user-1")
	require.NoError(t, err)
	_, err = manager.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = manager.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	manager := NewManager("test-secret")
	claims := &Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	hs384, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = manager.VerifyToken(hs384)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = manager.VerifyToken(none)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRequiresExpiry(t *testing.T) {
	manager := NewManager("test-secret")
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: "user-1"}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = manager.VerifyToken(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestWithTTL(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	manager := NewManager("test-secret", WithClock(clock.now), WithTTL(time.Hour))

	token, err := manager.IssueToken("user-1")
	require.NoError(t, err)

	clock.t = clock.t.Add(61 * time.Minute)
	_, err = manager.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
