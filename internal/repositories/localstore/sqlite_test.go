package localstore

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewSQLiteRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func TestGet_MissingKeyIsNilNil(t *testing.T) {
	repo := setupRepo(t)

	v, err := repo.Get(context.Background(), SessionKey)
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSetGetDelete_RoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, SessionKey, []byte(`{"email":"u@example.com"}`)))

	v, err := repo.Get(ctx, SessionKey)
	require.NoError(t, err)
	require.JSONEq(t, `{"email":"u@example.com"}`, string(v))

	require.NoError(t, repo.Delete(ctx, SessionKey))
	v, err = repo.Get(ctx, SessionKey)
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_OverwritesExistingValue(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, SessionKey, []byte("old")))
	require.NoError(t, repo.Set(ctx, SessionKey, []byte("new")))

	v, err := repo.Get(ctx, SessionKey)
	require.NoError(t, err)
	require.Equal(t, "new", string(v))
}

func TestInit_IsIdempotent(t *testing.T) {
	repo := setupRepo(t)
	require.NoError(t, repo.Init(context.Background()))
}

func TestDelete_MissingKeyIsNoOp(t *testing.T) {
	repo := setupRepo(t)
	require.NoError(t, repo.Delete(context.Background(), "nothing"))
}
