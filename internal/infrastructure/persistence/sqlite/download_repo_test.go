package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/webshell/internal/domain/entity"
	"github.com/bnema/webshell/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/webshell/internal/logging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() context.Context {
	return logging.WithContext(context.Background(), zerolog.Nop())
}

func openTestDB(t *testing.T) *sqlite.LazyDB {
	t.Helper()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "webshell.sqlite"))
	t.Cleanup(func() { _ = lazy.Close() })
	return lazy
}

func TestNewConnection_EmptyPath(t *testing.T) {
	_, err := sqlite.NewConnection(testCtx(), "")
	require.Error(t, err)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	ctx := testCtx()
	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "m.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	require.NoError(t, sqlite.RunMigrations(ctx, db))

	version, err := sqlite.GetMigrationStatus(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

func TestDownloadRepository_SaveAndGetRecent(t *testing.T) {
	ctx := testCtx()
	db, err := openTestDB(t).DB(ctx)
	require.NoError(t, err)
	repo := sqlite.NewDownloadRepository(db)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"first.pdf", "second.png", "third.txt"} {
		rec := entity.NewDownloadRecord("https://app.example/f/"+name, name, "application/octet-stream",
			"/home/u/Downloads/"+name, int64(100*(i+1)), "direct")
		rec.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Save(ctx, rec))
	}

	got, err := repo.GetRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "third.txt", got[0].Filename)
	assert.Equal(t, "second.png", got[1].Filename)
	assert.Equal(t, int64(200), got[1].Size)
	assert.Equal(t, "direct", got[1].Route)
	assert.True(t, got[0].CreatedAt.Equal(base.Add(2*time.Minute)))
}

func TestDownloadRepository_DuplicateID(t *testing.T) {
	ctx := testCtx()
	db, err := openTestDB(t).DB(ctx)
	require.NoError(t, err)
	repo := sqlite.NewDownloadRepository(db)

	rec := entity.NewDownloadRecord("", "a", "", "/a", 1, "blob")
	require.NoError(t, repo.Save(ctx, rec))
	require.Error(t, repo.Save(ctx, rec))
}

func TestDownloadRepository_DeleteAll(t *testing.T) {
	ctx := testCtx()
	db, err := openTestDB(t).DB(ctx)
	require.NoError(t, err)
	repo := sqlite.NewDownloadRepository(db)

	require.NoError(t, repo.Save(ctx, entity.NewDownloadRecord("", "a", "", "/a", 1, "blob")))
	require.NoError(t, repo.DeleteAll(ctx))

	got, err := repo.GetRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
