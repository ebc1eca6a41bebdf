package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := New(ctx, filepath.Join(t.TempDir(), "content.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db))

	for _, table := range []string{"users", "categories", "themes", "contents"} {
		var name string
		err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestDSN(t *testing.T) {
	assert.Equal(t, ":memory:?_pragma=busy_timeout(5000)", dsn(":memory:"))
	assert.Equal(t, "a.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dsn("a.db"))
	assert.Equal(t, "file:a.db?mode=rwc&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dsn("file:a.db?mode=rwc"))
}

func TestInMemorySchemaVisibleWhileConnectionBusy(t *testing.T) {
	ctx := context.Background()
	db, err := New(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, Migrate(ctx, db))
	assert.Equal(t, 1, db.Stats().MaxOpenConnections)

	held, err := db.QueryContext(ctx, "SELECT 1")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		var n int
		done <- db.QueryRowContext(ctx, "SELECT count(*) FROM categories").Scan(&n)
	}()

	select {
	case err := <-done:
		t.Fatalf("query ran on a second connection: %v", err)
	case <-time.After(50 * time.Millisecond):
	}
	require.NoError(t, held.Close())

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("query did not run after the connection was released")
	}
}
