package perch

import (
	"context"

	"github.com/256dpi/lungo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GridFS stores blobs in a GridFS bucket. Blobs are stored under their key as
// file name. Re-uploading a key stores a new file and leaves the previous one
// behind as an orphan.
type GridFS struct {
	bucket *lungo.Bucket
	base   string
}

// NewGridFS creates a new GridFS service. The base URL is used to construct
// durable blob URLs.
func NewGridFS(bucket *lungo.Bucket, base string) *GridFS {
	return &GridFS{
		bucket: bucket,
		base:   base,
	}
}

// Initialize will ensure the required bucket indexes.
func (g *GridFS) Initialize(ctx context.Context) error {
	// ensure indexes
	err := g.bucket.EnsureIndexes(ctx, false)
	if err != nil {
		return err
	}

	return nil
}

// Prepare implements the Service interface.
func (g *GridFS) Prepare(_ context.Context, key string) (Handle, error) {
	// check key
	if key == "" {
		return nil, ErrInvalidHandle.Wrap()
	}

	// create handle
	handle := Handle{
		"id":  primitive.NewObjectID(),
		"key": key,
	}

	return handle, nil
}

// Upload implements the Service interface.
func (g *GridFS) Upload(ctx context.Context, handle Handle, _ string, _ int64) (Upload, error) {
	// get id and key
	id, ok := handle["id"].(primitive.ObjectID)
	key, _ := handle["key"].(string)
	if !ok || id.IsZero() || key == "" {
		return nil, ErrInvalidHandle.Wrap()
	}

	// open upload stream
	stream, err := g.bucket.OpenUploadStreamWithID(ctx, id, key)
	if err != nil {
		return nil, err
	}

	return stream, nil
}

// Download implements the Service interface.
func (g *GridFS) Download(ctx context.Context, handle Handle) (Download, error) {
	// get id
	id, ok := handle["id"].(primitive.ObjectID)
	if !ok || id.IsZero() {
		return nil, ErrInvalidHandle.Wrap()
	}

	// open download stream
	stream, err := g.bucket.OpenDownloadStream(ctx, id)
	if err == lungo.ErrFileNotFound {
		return nil, ErrNotFound.Wrap()
	} else if err != nil {
		return nil, err
	}

	return &gridFSDownload{
		stream: stream,
	}, nil
}

// Delete implements the Service interface.
func (g *GridFS) Delete(ctx context.Context, handle Handle) error {
	// get id
	id, ok := handle["id"].(primitive.ObjectID)
	if !ok || id.IsZero() {
		return ErrInvalidHandle.Wrap()
	}

	// delete file
	err := g.bucket.Delete(ctx, id)
	if err == lungo.ErrFileNotFound {
		return ErrNotFound.Wrap()
	} else if err != nil {
		return err
	}

	return nil
}

// URL implements the Service interface.
func (g *GridFS) URL(_ context.Context, handle Handle) (string, error) {
	// get key
	key, _ := handle["key"].(string)
	if key == "" {
		return "", ErrInvalidHandle.Wrap()
	}

	return g.base + "/" + key, nil
}

type gridFSDownload struct {
	stream *lungo.DownloadStream
}

func (d *gridFSDownload) Read(buf []byte) (int, error) {
	// read stream, the file may vanish while reading
	n, err := d.stream.Read(buf)
	if err == lungo.ErrFileNotFound {
		return 0, ErrNotFound.Wrap()
	} else if err != nil {
		return 0, err
	}

	return n, nil
}

func (d *gridFSDownload) Close() error {
	// close stream
	err := d.stream.Close()
	if err == lungo.ErrFileNotFound {
		return ErrNotFound.Wrap()
	} else if err != nil {
		return err
	}

	return nil
}
