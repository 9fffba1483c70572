package perch

import (
	"context"
	"io"
	"sync"
)

// Blob is a blob stored by the memory service.
type Blob struct {
	Type  string
	Bytes []byte
}

// Memory is a service for testing purposes that stores blobs in memory.
type Memory struct {
	// The stored blobs.
	Blobs map[string]*Blob

	mutex sync.Mutex
}

// NewMemory will create a new memory service.
func NewMemory() *Memory {
	return &Memory{
		Blobs: map[string]*Blob{},
	}
}

// Prepare implements the Service interface.
func (s *Memory) Prepare(_ context.Context, key string) (Handle, error) {
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
func (s *Memory) Upload(_ context.Context, handle Handle, mediaType string, _ int64) (Upload, error) {
	// get key
	key, _ := handle["key"].(string)
	if key == "" {
		return nil, ErrInvalidHandle.Wrap()
	}

	// prepare blob
	blob := &Blob{
		Type: mediaType,
	}

	// store blob, replacing any previous blob at the same key
	s.mutex.Lock()
	s.Blobs[key] = blob
	s.mutex.Unlock()

	return &memoryUpload{
		blob: blob,
	}, nil
}

// Download implements the Service interface.
func (s *Memory) Download(_ context.Context, handle Handle) (Download, error) {
	// get key
	key, _ := handle["key"].(string)
	if key == "" {
		return nil, ErrInvalidHandle.Wrap()
	}

	// get blob
	s.mutex.Lock()
	blob, ok := s.Blobs[key]
	s.mutex.Unlock()
	if !ok {
		return nil, ErrNotFound.Wrap()
	}

	return &memoryDownload{
		blob: blob,
	}, nil
}

// Delete implements the Service interface.
func (s *Memory) Delete(_ context.Context, handle Handle) error {
	// get key
	key, _ := handle["key"].(string)
	if key == "" {
		return ErrInvalidHandle.Wrap()
	}

	// check blob
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.Blobs[key]; !ok {
		return ErrNotFound.Wrap()
	}

	// delete blob
	delete(s.Blobs, key)

	return nil
}

// URL implements the Service interface.
func (s *Memory) URL(_ context.Context, handle Handle) (string, error) {
	// get key
	key, _ := handle["key"].(string)
	if key == "" {
		return "", ErrInvalidHandle.Wrap()
	}

	return "memory:///" + key, nil
}

type memoryUpload struct {
	blob *Blob
}

func (u *memoryUpload) Write(data []byte) (int, error) {
	// append data
	u.blob.Bytes = append(u.blob.Bytes, data...)

	return len(data), nil
}

func (u *memoryUpload) Close() error {
	return nil
}

type memoryDownload struct {
	blob *Blob
	pos  int
}

func (d *memoryDownload) Read(buf []byte) (int, error) {
	// check position
	if d.pos >= len(d.blob.Bytes) {
		return 0, io.EOF
	}

	// copy bytes
	n := copy(buf, d.blob.Bytes[d.pos:])
	d.pos += n

	return n, nil
}

func (d *memoryDownload) Close() error {
	return nil
}
