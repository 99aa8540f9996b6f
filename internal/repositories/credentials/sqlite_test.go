package credentials

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS credentials (key TEXT PRIMARY KEY, value TEXT NOT NULL);`)
	require.NoError(t, err)
	return NewSQLiteRepository(db)
}

func TestSQLiteRepository_SetGet(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeySessionID, "sid-1"))

	got, err := repo.Get(ctx, KeySessionID)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", got)

	// upsert replaces
	require.NoError(t, repo.Set(ctx, KeySessionID, "sid-2"))
	got, err = repo.Get(ctx, KeySessionID)
	require.NoError(t, err)
	assert.Equal(t, "sid-2", got)
}

func TestSQLiteRepository_GetMissingKey(t *testing.T) {
	repo := setupRepo(t)

	got, err := repo.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLiteRepository_Delete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyLoginID, "alice"))
	require.NoError(t, repo.Delete(ctx, KeyLoginID))

	got, err := repo.Get(ctx, KeyLoginID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLiteRepository_SaveLoadLogin(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	saved := SavedLogin{LoginID: "alice", Password: "secret", AutoLogin: true}
	require.NoError(t, repo.SaveLogin(ctx, saved))

	got, err := repo.LoadLogin(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestSQLiteRepository_LoadLogin_Empty(t *testing.T) {
	repo := setupRepo(t)

	got, err := repo.LoadLogin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SavedLogin{}, got)
}

func TestSQLiteRepository_Clear(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveLogin(ctx, SavedLogin{LoginID: "a", Password: "b", AutoLogin: true}))
	require.NoError(t, repo.Set(ctx, KeySessionID, "sid"))
	require.NoError(t, repo.Clear(ctx))

	for _, key := range []string{KeyLoginID, KeyPassword, KeyAutoLogin, KeySessionID} {
		got, err := repo.Get(ctx, key)
		require.NoError(t, err)
		assert.Empty(t, got, "key %s must be gone", key)
	}
}

func TestInitDatabase_AppliesMigrations(t *testing.T) {
	repo, db, err := InitDatabase(context.Background(), "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, repo.Set(context.Background(), KeySessionID, "sid"))
	got, err := repo.Get(context.Background(), KeySessionID)
	require.NoError(t, err)
	assert.Equal(t, "sid", got)
}
