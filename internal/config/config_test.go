package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Empty(t, cfg.RedisURL)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("APP_JWT_SECRET"))

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "secret")
	t.Setenv("APP_STORE", "postgres")

	_, err := Load()
	require.Error(t, err)
}
