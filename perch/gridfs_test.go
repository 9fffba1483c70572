package perch

import (
	"testing"

	"github.com/256dpi/lungo"
	"github.com/stretchr/testify/assert"

	"github.com/256dpi/flock/roost"
)

func TestGridFSService(t *testing.T) {
	store := roost.MustOpen(nil, "test")
	defer store.Close()

	svc := NewGridFS(lungo.NewBucket(store.DB()), "http://blobs.example.com")

	err := svc.Initialize(nil)
	assert.NoError(t, err)

	TestService(t, svc)
}

func TestGridFSServiceReplace(t *testing.T) {
	store := roost.MustOpen(nil, "test")
	defer store.Close()

	svc := NewGridFS(lungo.NewBucket(store.DB()), "http://blobs.example.com")

	err := svc.Initialize(nil)
	assert.NoError(t, err)

	TestServiceReplace(t, svc)
}

func TestGridFSServiceURL(t *testing.T) {
	svc := NewGridFS(nil, "http://blobs.example.com")

	handle, err := svc.Prepare(nil, "avatars/foo")
	assert.NoError(t, err)

	url, err := svc.URL(nil, handle)
	assert.NoError(t, err)
	assert.Equal(t, "http://blobs.example.com/avatars/foo", url)
}
