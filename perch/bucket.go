package perch

import (
	"context"
	"path"

	"github.com/256dpi/serve"
	"github.com/256dpi/xo"
)

// Bucket provides a simple one-call interface for storing blobs in a service.
type Bucket struct {
	service Service
}

// NewBucket creates a new bucket using the provided service.
func NewBucket(service Service) *Bucket {
	return &Bucket{
		service: service,
	}
}

// Service returns the used service.
func (b *Bucket) Service() Service {
	return b.service
}

// Put will upload the provided bytes to the specified key and return a
// durable URL for the stored blob. The media type is detected from the name
// if absent.
func (b *Bucket) Put(ctx context.Context, key, name, mediaType string, data []byte) (string, error) {
	// trace
	ctx, span := xo.Trace(ctx, "perch/Bucket.Put")
	span.Tag("key", key)
	defer span.End()

	// detect media type
	if mediaType == "" {
		if name != "" {
			mediaType = serve.MimeTypeByExtension(path.Ext(name), false)
		}
		if mediaType == "" {
			mediaType = "application/octet-stream"
		}
	}

	// create handle
	handle, err := b.service.Prepare(ctx, key)
	if err != nil {
		return "", xo.W(err)
	}

	// begin upload
	upload, err := b.service.Upload(ctx, handle, mediaType, int64(len(data)))
	if err != nil {
		return "", xo.W(err)
	}

	// perform upload
	_, err = upload.Write(data)
	if err != nil {
		return "", xo.W(err)
	}

	// finish upload
	err = upload.Close()
	if err != nil {
		return "", xo.W(err)
	}

	// get url
	url, err := b.service.URL(ctx, handle)
	if err != nil {
		return "", xo.W(err)
	}

	return url, nil
}
