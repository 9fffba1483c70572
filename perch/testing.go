package perch

import (
	"bytes"
	"context"
	"io"

	"github.com/stretchr/testify/assert"
)

// Tester is a common interface implemented by test objects.
type Tester interface {
	Errorf(format string, args ...interface{})
}

// TestService will test the specified service for compatibility.
func TestService(t Tester, svc Service) {
	// prepare without key
	handle, err := svc.Prepare(nil, "")
	assert.Error(t, err)
	assert.True(t, ErrInvalidHandle.Is(err))
	assert.Empty(t, handle)

	// prepare with key
	handle, err = svc.Prepare(nil, "file1")
	assert.NoError(t, err)
	assert.NotEmpty(t, handle)

	// upload with invalid handle
	err = uploadBytes(svc, nil, "foo/bar", []byte("Hello World!"))
	assert.Error(t, err)
	assert.True(t, ErrInvalidHandle.Is(err))

	// upload
	err = uploadBytes(svc, handle, "foo/bar", []byte("Hello World!"))
	assert.NoError(t, err)

	// download with invalid handle
	_, err = downloadBytes(svc, nil)
	assert.Error(t, err)
	assert.True(t, ErrInvalidHandle.Is(err))

	// download
	data, err := downloadBytes(svc, handle)
	assert.NoError(t, err)
	assert.Equal(t, "Hello World!", string(data))

	// get url
	url, err := svc.URL(nil, handle)
	assert.NoError(t, err)
	assert.NotEmpty(t, url)

	// delete with invalid handle
	err = svc.Delete(nil, nil)
	assert.Error(t, err)
	assert.True(t, ErrInvalidHandle.Is(err))

	// delete
	err = svc.Delete(nil, handle)
	assert.NoError(t, err)

	// delete again
	err = svc.Delete(nil, handle)
	assert.Error(t, err)
	assert.True(t, ErrNotFound.Is(err))

	// download deleted
	_, err = downloadBytes(svc, handle)
	assert.Error(t, err)
	assert.True(t, ErrNotFound.Is(err))
}

// TestServiceReplace will test the specified service for key replace
// compatibility.
func TestServiceReplace(t Tester, svc Service) {
	// upload first blob
	handle1, err := svc.Prepare(nil, "file2")
	assert.NoError(t, err)
	err = uploadBytes(svc, handle1, "foo/bar", []byte("first"))
	assert.NoError(t, err)

	// upload second blob to same key
	handle2, err := svc.Prepare(nil, "file2")
	assert.NoError(t, err)
	err = uploadBytes(svc, handle2, "foo/bar", []byte("second"))
	assert.NoError(t, err)

	// download second blob
	data, err := downloadBytes(svc, handle2)
	assert.NoError(t, err)
	assert.Equal(t, "second", string(data))

	// urls are stable per key
	url1, err := svc.URL(nil, handle1)
	assert.NoError(t, err)
	url2, err := svc.URL(nil, handle2)
	assert.NoError(t, err)
	assert.Equal(t, url1, url2)
}

func uploadBytes(svc Service, handle Handle, mediaType string, data []byte) error {
	// initiate upload
	upload, err := svc.Upload(context.Background(), handle, mediaType, int64(len(data)))
	if err != nil {
		return err
	}

	// write data
	_, err = upload.Write(data)
	if err != nil {
		return err
	}

	return upload.Close()
}

func downloadBytes(svc Service, handle Handle) ([]byte, error) {
	// initiate download
	download, err := svc.Download(context.Background(), handle)
	if err != nil {
		return nil, err
	}

	// read data
	var buf bytes.Buffer
	_, err = io.Copy(&buf, download)
	if err != nil {
		_ = download.Close()
		return nil, err
	}

	return buf.Bytes(), download.Close()
}
