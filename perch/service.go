// Package perch provides a blob storage abstraction with in-memory, GridFS
// and S3 compatible backends.
package perch

import (
	"context"

	"github.com/256dpi/xo"
)

// ErrInvalidHandle is returned if the provided handle is invalid.
var ErrInvalidHandle = xo.BF("invalid handle")

// ErrNotFound is returned if there is no blob for the provided handle.
var ErrNotFound = xo.BF("not found")

// Handle is a reference to a blob stored in a service.
type Handle map[string]interface{}

// Upload handles the upload of a blob.
type Upload interface {
	Write(data []byte) (int, error)
	Close() error
}

// Download handles the download of a blob.
type Download interface {
	Read(buf []byte) (int, error)
	Close() error
}

// Service is responsible for managing blobs. Blobs are addressed by caller
// provided keys. Uploading to an existing key replaces the stored blob.
type Service interface {
	// Prepare should return a new handle for uploading a blob to the
	// specified key.
	Prepare(ctx context.Context, key string) (Handle, error)

	// Upload should initiate the upload of a blob.
	Upload(ctx context.Context, handle Handle, mediaType string, size int64) (Upload, error)

	// Download should initiate the download of a blob.
	Download(ctx context.Context, handle Handle) (Download, error)

	// Delete should delete the blob.
	Delete(ctx context.Context, handle Handle) error

	// URL should return a durable URL for the blob.
	URL(ctx context.Context, handle Handle) (string, error)
}
