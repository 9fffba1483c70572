package perch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketPut(t *testing.T) {
	svc := NewMemory()
	bucket := NewBucket(svc)

	// upload with explicit media type
	url, err := bucket.Put(nil, "posts/1", "photo.jpg", "image/jpeg", []byte("data"))
	assert.NoError(t, err)
	assert.Equal(t, "memory:///posts/1", url)
	assert.Equal(t, "image/jpeg", svc.Blobs["posts/1"].Type)
	assert.Equal(t, []byte("data"), svc.Blobs["posts/1"].Bytes)

	// detect media type from name
	url, err = bucket.Put(nil, "posts/2", "photo.png", "", []byte("data"))
	assert.NoError(t, err)
	assert.Equal(t, "memory:///posts/2", url)
	assert.Equal(t, "image/png", svc.Blobs["posts/2"].Type)

	// fall back to octet stream
	_, err = bucket.Put(nil, "posts/3", "", "", []byte("data"))
	assert.NoError(t, err)
	assert.Equal(t, "application/octet-stream", svc.Blobs["posts/3"].Type)

	// replace blob at existing key
	url, err = bucket.Put(nil, "posts/1", "photo.jpg", "image/jpeg", []byte("other"))
	assert.NoError(t, err)
	assert.Equal(t, "memory:///posts/1", url)
	assert.Equal(t, []byte("other"), svc.Blobs["posts/1"].Bytes)
}

func TestBucketPutError(t *testing.T) {
	bucket := NewBucket(NewMemory())

	// missing key
	url, err := bucket.Put(context.Background(), "", "photo.jpg", "image/jpeg", []byte("data"))
	assert.Error(t, err)
	assert.True(t, ErrInvalidHandle.Is(err))
	assert.Empty(t, url)
}
