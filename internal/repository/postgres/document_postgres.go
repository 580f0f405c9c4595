package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"corpusapi/internal/model"
	"corpusapi/internal/repository"
)

// uniqueViolation is the SQLSTATE PostgreSQL reports for a unique constraint failure.
const uniqueViolation = "23505"

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

// WithQueryTimeout bounds every query by d in addition to the caller's deadline.
func (r *DocumentPostgres) WithQueryTimeout(d time.Duration) *DocumentPostgres {
	r.queryTimeout = d
	return r
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

func (r *DocumentPostgres) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// Exists reports whether a row with the fingerprint is present.
func (r *DocumentPostgres) Exists(ctx context.Context, fp string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const q = `SELECT EXISTS (SELECT 1 FROM documents WHERE fingerprint = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, fp).Scan(&exists); err != nil {
		return false, repository.Backend("exists", err)
	}
	return exists, nil
}

// Insert verifies the fingerprint and inserts a new row.
func (r *DocumentPostgres) Insert(ctx context.Context, fp, content string) error {
	if err := repository.CheckFingerprint(fp, content); err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const q = `
		INSERT INTO documents (fingerprint, length, content)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, q, fp, model.Length(content), content); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", repository.ErrDuplicate, fp)
		}
		return repository.Backend("insert", err)
	}
	return nil
}

// GetContent fetches the content stored under the fingerprint.
func (r *DocumentPostgres) GetContent(ctx context.Context, fp string) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const q = `SELECT content FROM documents WHERE fingerprint = $1`
	var content string
	if err := r.db.QueryRowContext(ctx, q, fp).Scan(&content); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", repository.ErrNotFound
		}
		return "", repository.Backend("get content", err)
	}
	return content, nil
}

// ListAll returns every document in the table.
func (r *DocumentPostgres) ListAll(ctx context.Context) ([]model.Document, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const q = `SELECT fingerprint, length, content FROM documents`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, repository.Backend("list", err)
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.Fingerprint, &d.Length, &d.Content); err != nil {
			return nil, repository.Backend("list", err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.Backend("list", err)
	}
	return items, nil
}
