package perch

import (
	"os"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
)

func TestMinioService(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("missing MINIO_ENDPOINT")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds: credentials.NewStaticV4("minioadmin", "minioadmin", ""),
	})
	assert.NoError(t, err)

	svc := NewMinio(client, "perch")
	TestService(t, svc)
}

func TestMinioServiceReplace(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("missing MINIO_ENDPOINT")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds: credentials.NewStaticV4("minioadmin", "minioadmin", ""),
	})
	assert.NoError(t, err)

	svc := NewMinio(client, "perch")
	TestServiceReplace(t, svc)
}
