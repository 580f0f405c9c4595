// Package sqlite is the SQLite implementation of repository.DocumentRepository,
// for single-node deployments that keep the corpus in one file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"corpusapi/internal/model"
	"corpusapi/internal/repository"
)

// DocumentSQLite stores documents in a SQLite table created by the migration package.
type DocumentSQLite struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// NewDocumentSQLite creates a new DocumentSQLite repository.
func NewDocumentSQLite(db *sql.DB) *DocumentSQLite {
	return &DocumentSQLite{db: db}
}

// WithQueryTimeout bounds every query by d in addition to the caller's deadline.
func (r *DocumentSQLite) WithQueryTimeout(d time.Duration) *DocumentSQLite {
	r.queryTimeout = d
	return r
}

var _ repository.DocumentRepository = (*DocumentSQLite)(nil)

func (r *DocumentSQLite) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

func (r *DocumentSQLite) Exists(ctx context.Context, fp string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM documents WHERE fingerprint = ?)`, fp,
	).Scan(&exists)
	if err != nil {
		return false, repository.Backend("exists", err)
	}
	return exists, nil
}

func (r *DocumentSQLite) Insert(ctx context.Context, fp, content string) error {
	if err := repository.CheckFingerprint(fp, content); err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (fingerprint, length, content) VALUES (?, ?, ?)`,
		fp, model.Length(content), content,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", repository.ErrDuplicate, fp)
		}
		return repository.Backend("insert", err)
	}
	return nil
}

func (r *DocumentSQLite) GetContent(ctx context.Context, fp string) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var content string
	err := r.db.QueryRowContext(ctx,
		`SELECT content FROM documents WHERE fingerprint = ?`, fp,
	).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", repository.Backend("get content", err)
	}
	return content, nil
}

func (r *DocumentSQLite) ListAll(ctx context.Context) ([]model.Document, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT fingerprint, length, content FROM documents`)
	if err != nil {
		return nil, repository.Backend("list", err)
	}
	defer rows.Close()

	docs := make([]model.Document, 0)
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.Fingerprint, &d.Length, &d.Content); err != nil {
			return nil, repository.Backend("list", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.Backend("list", err)
	}
	return docs, nil
}
