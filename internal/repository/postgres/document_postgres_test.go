package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"corpusapi/internal/fingerprint"
	"corpusapi/internal/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*DocumentPostgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewDocumentPostgres(db).WithQueryTimeout(time.Second), mock
}

func TestDocumentPostgres_Exists(t *testing.T) {
	repo, mock := newRepo(t)
	ctx := context.Background()
	fp := fingerprint.Of("hello")
	q := regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM documents WHERE fingerprint = $1)`)

	t.Run("present", func(t *testing.T) {
		mock.ExpectQuery(q).WithArgs(fp).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		ok, err := repo.Exists(ctx, fp)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("absent", func(t *testing.T) {
		mock.ExpectQuery(q).WithArgs(fp).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		ok, err := repo.Exists(ctx, fp)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("backend error", func(t *testing.T) {
		mock.ExpectQuery(q).WithArgs(fp).WillReturnError(errors.New("conn refused"))

		_, err := repo.Exists(ctx, fp)
		assert.True(t, repository.IsBackend(err))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_Insert(t *testing.T) {
	ctx := context.Background()
	content := "héllo"
	fp := fingerprint.Of(content)

	t.Run("success", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec("INSERT INTO documents").
			WithArgs(fp, 5, content).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Insert(ctx, fp, content))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("hash mismatch does not touch the table", func(t *testing.T) {
		repo, mock := newRepo(t)

		err := repo.Insert(ctx, fingerprint.Of("other"), content)
		assert.ErrorIs(t, err, repository.ErrHashMismatch)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec("INSERT INTO documents").
			WithArgs(fp, 5, content).
			WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

		err := repo.Insert(ctx, fp, content)
		assert.ErrorIs(t, err, repository.ErrDuplicate)
		assert.False(t, repository.IsBackend(err))
	})

	t.Run("backend error", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec("INSERT INTO documents").
			WithArgs(fp, 5, content).
			WillReturnError(errors.New("conn reset"))

		err := repo.Insert(ctx, fp, content)
		assert.True(t, repository.IsBackend(err))
	})
}

func TestDocumentPostgres_GetContent(t *testing.T) {
	repo, mock := newRepo(t)
	ctx := context.Background()
	q := "SELECT content FROM documents WHERE fingerprint = ?"

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(q).WithArgs("FP").
			WillReturnRows(sqlmock.NewRows([]string{"content"}).AddRow("hello"))

		content, err := repo.GetContent(ctx, "FP")
		assert.NoError(t, err)
		assert.Equal(t, "hello", content)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(q).WithArgs("missing").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetContent(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("backend error", func(t *testing.T) {
		mock.ExpectQuery(q).WithArgs("FP").WillReturnError(errors.New("timeout"))

		_, err := repo.GetContent(ctx, "FP")
		assert.True(t, repository.IsBackend(err))
	})
}

func TestDocumentPostgres_ListAll(t *testing.T) {
	ctx := context.Background()

	t.Run("rows", func(t *testing.T) {
		repo, mock := newRepo(t)
		rows := sqlmock.NewRows([]string{"fingerprint", "length", "content"}).
			AddRow("A", 5, "hello").
			AddRow("B", 3, "abc")
		mock.ExpectQuery("SELECT fingerprint, length, content FROM documents").WillReturnRows(rows)

		docs, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "A", docs[0].Fingerprint)
		assert.Equal(t, 5, docs[0].Length)
		assert.Equal(t, "abc", docs[1].Content)
	})

	t.Run("empty table is not an error", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery("SELECT fingerprint, length, content FROM documents").
			WillReturnRows(sqlmock.NewRows([]string{"fingerprint", "length", "content"}))

		docs, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, docs)
		assert.Empty(t, docs)
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery("SELECT fingerprint").WillReturnError(errors.New("boom"))

		_, err := repo.ListAll(ctx)
		assert.True(t, repository.IsBackend(err))
	})

	t.Run("row error", func(t *testing.T) {
		repo, mock := newRepo(t)
		rows := sqlmock.NewRows([]string{"fingerprint", "length", "content"}).
			AddRow("A", 5, "hello").
			RowError(0, errors.New("broken row"))
		mock.ExpectQuery("SELECT fingerprint").WillReturnRows(rows)

		_, err := repo.ListAll(ctx)
		assert.True(t, repository.IsBackend(err))
	})
}
