package perch

import (
	"context"
	"io"

	"github.com/256dpi/xo"
	"github.com/minio/minio-go/v7"
)

// Minio stores blobs in an S3 compatible bucket. The bucket is expected to
// allow public reads so that returned URLs are durable.
type Minio struct {
	client *minio.Client
	bucket string
}

// NewMinio creates a new Minio service.
func NewMinio(client *minio.Client, bucket string) *Minio {
	return &Minio{
		client: client,
		bucket: bucket,
	}
}

// Prepare implements the Service interface.
func (m *Minio) Prepare(_ context.Context, key string) (Handle, error) {
	// check key
	if key == "" {
		return nil, ErrInvalidHandle.Wrap()
	}

	// create handle
	handle := Handle{
		"key": key,
	}

	return handle, nil
}

// Upload implements the Service interface.
func (m *Minio) Upload(ctx context.Context, handle Handle, mediaType string, size int64) (Upload, error) {
	// ensure context
	if ctx == nil {
		ctx = context.Background()
	}

	// get key
	key, _ := handle["key"].(string)
	if key == "" {
		return nil, ErrInvalidHandle.Wrap()
	}

	// create upload pipe
	upload := PipeUpload(func(upload io.Reader) error {
		_, err := m.client.PutObject(ctx, m.bucket, key, upload, size, minio.PutObjectOptions{
			ContentType: mediaType,
		})
		return xo.W(err)
	})

	return upload, nil
}

// Download implements the Service interface.
func (m *Minio) Download(ctx context.Context, handle Handle) (Download, error) {
	// ensure context
	if ctx == nil {
		ctx = context.Background()
	}

	// get key
	key, _ := handle["key"].(string)
	if key == "" {
		return nil, ErrInvalidHandle.Wrap()
	}

	// get object
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, xo.W(err)
	}

	// check object
	_, err = obj.Stat()
	if isMinioNotFoundErr(err) {
		return nil, ErrNotFound.Wrap()
	} else if err != nil {
		return nil, xo.W(err)
	}

	return obj, nil
}

// Delete implements the Service interface.
func (m *Minio) Delete(ctx context.Context, handle Handle) error {
	// ensure context
	if ctx == nil {
		ctx = context.Background()
	}

	// get key
	key, _ := handle["key"].(string)
	if key == "" {
		return ErrInvalidHandle.Wrap()
	}

	// check object
	_, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if isMinioNotFoundErr(err) {
		return ErrNotFound.Wrap()
	} else if err != nil {
		return xo.W(err)
	}

	// remove object
	err = m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return xo.W(err)
	}

	return nil
}

// URL implements the Service interface.
func (m *Minio) URL(_ context.Context, handle Handle) (string, error) {
	// get key
	key, _ := handle["key"].(string)
	if key == "" {
		return "", ErrInvalidHandle.Wrap()
	}

	return m.client.EndpointURL().String() + "/" + m.bucket + "/" + key, nil
}

func isMinioNotFoundErr(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
