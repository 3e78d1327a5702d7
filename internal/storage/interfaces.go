// Package storage provides blob storage for uploaded images.
// Blobs (profile pictures, blog images) live outside the relational
// store; the database keeps only their public URLs.
package storage

import (
	"context"
	"errors"
	"io"
)

// Blob storage errors.
var (
	ErrBlobNotFound  = errors.New("blob not found")
	ErrUploadFailed  = errors.New("blob upload failed")
	ErrDeleteFailed  = errors.New("blob delete failed")
	ErrInvalidPrefix = errors.New("invalid blob key prefix")
)

// BlobStore persists uploaded binary content and serves it by URL.
type BlobStore interface {
	// Upload stores the content under a generated key below prefix and
	// returns the public URL of the stored blob.
	Upload(ctx context.Context, prefix, filename, contentType string, content io.Reader) (url string, err error)

	// Delete removes a blob by the URL previously returned by Upload.
	// Deleting an unknown URL is a no-op.
	Delete(ctx context.Context, url string) error
}
