package repository

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/isdelr/content-creator-be/internal/database"
	"github.com/stretchr/testify/require"
)

// envTestMongoURI points the mongo suite at a running server; it is skipped otherwise.
const envTestMongoURI = "APP_TEST_MONGO_URI"

func openMongo(t *testing.T) Repositories {
	t.Helper()
	uri := os.Getenv(envTestMongoURI)
	if uri == "" {
		t.Skipf("%s not set", envTestMongoURI)
	}

	ctx := context.Background()
	client, err := database.ConnectMongo(ctx, uri)
	require.NoError(t, err)

	db := client.Database("content_test_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12])
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	require.NoError(t, database.MigrateMongo(ctx, db))
	return NewMongo(db)
}

func TestMongoRepositories(t *testing.T) {
	runRepositorySuite(t, openMongo)
}
