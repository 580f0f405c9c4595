package storage

import (
	"context"
	"io"
	"time"
)

// Package storage contains the optional object-storage archive for document content (S3-compatible).
// The document table stays the source of truth; the archive is a write-through copy keyed by fingerprint.

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the archive client interface.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Ping checks that the archive bucket is reachable.
	Ping(ctx context.Context) error
}

// DocumentKey returns the object key under which a document's content is archived.
func DocumentKey(fingerprint string) string {
	return "documents/" + fingerprint + ".txt"
}
