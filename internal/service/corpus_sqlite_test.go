package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpusapi/internal/database/migration"
	"corpusapi/internal/fingerprint"
	"corpusapi/internal/repository/sqlite"
)

func newSQLiteService(t *testing.T) CorpusService {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migration.EnsureMigrated(context.Background(), db, "sqlite", ""))
	return NewCorpusService(sqlite.NewDocumentSQLite(db), nil)
}

func TestCorpusService_SQLite_HelloScenario(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()
	fp := fingerprint.Of("hello")

	up, err := svc.Upload(ctx, fp, "hello")
	require.NoError(t, err)
	assert.True(t, up.Success)

	ex, err := svc.Exists(ctx, fp)
	require.NoError(t, err)
	assert.True(t, ex.Exists)

	dl, err := svc.Download(ctx, fp)
	require.NoError(t, err)
	assert.Equal(t, "hello", dl.Content)
}

func TestCorpusService_SQLite_UploadTwice(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()
	fp := fingerprint.Of("twice")

	_, err := svc.Upload(ctx, fp, "twice")
	require.NoError(t, err)

	_, err = svc.Upload(ctx, fp, "twice")
	assertCause(t, err, ErrAlreadyExists)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list.Files, 1)
}

func TestCorpusService_SQLite_HashMismatchPersistsNothing(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()
	fp := fingerprint.Of("expected")

	_, err := svc.Upload(ctx, fp, "tampered")
	assertCause(t, err, ErrHashMismatch)

	ex, err := svc.Exists(ctx, fp)
	require.NoError(t, err)
	assert.False(t, ex.Exists)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list.Files)
}

func TestCorpusService_SQLite_EmptyList(t *testing.T) {
	list, err := newSQLiteService(t).List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, list.Files)
	assert.Empty(t, list.Files)
}

func TestCorpusService_SQLite_Compare(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()
	fpA, fpB := fingerprint.Of("kitten"), fingerprint.Of("sitting")

	_, err := svc.Upload(ctx, fpA, "kitten")
	require.NoError(t, err)

	res, err := svc.Compare(ctx, fpA, fpB)
	assert.Nil(t, res)
	assertCause(t, err, ErrNotFound)

	_, err = svc.Upload(ctx, fpB, "sitting")
	require.NoError(t, err)

	res, err = svc.Compare(ctx, fpA, fpB)
	require.NoError(t, err)
	assert.Equal(t, 3, res.LevenshteinDistance)
	assert.InDelta(t, 4.0/7.0, res.SimpleSimilarity, 1e-9)

	self, err := svc.Compare(ctx, fpA, fpA)
	require.NoError(t, err)
	assert.Equal(t, 0, self.LevenshteinDistance)
	assert.Equal(t, 1.0, self.SimpleSimilarity)
}
