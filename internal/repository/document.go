package repository

import (
	"context"

	"corpusapi/internal/model"
)

// DocumentRepository is the content-addressed document table.
// Callers are expected to check Exists before Insert and GetContent; the
// table's unique constraint stays the source of truth for duplicates.
type DocumentRepository interface {
	// Exists reports whether a document with the fingerprint is stored.
	Exists(ctx context.Context, fingerprint string) (bool, error)

	// Insert stores content under fingerprint. It fails with ErrHashMismatch
	// when fingerprint is not the hash of content and with ErrDuplicate when
	// the fingerprint is already stored.
	Insert(ctx context.Context, fingerprint, content string) error

	// GetContent returns the stored content, or ErrNotFound.
	GetContent(ctx context.Context, fingerprint string) (string, error)

	// ListAll returns every stored document in no particular order.
	// An empty table yields an empty, non-nil slice.
	ListAll(ctx context.Context) ([]model.Document, error)
}
