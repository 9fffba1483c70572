// Command example runs the synchronization core against a real or in-memory
// backend and exposes it to clients over a websocket gateway.
package main

import (
	"net/http"
	"os"

	"github.com/256dpi/xo"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/256dpi/flock"
	"github.com/256dpi/flock/band"
	"github.com/256dpi/flock/perch"
	"github.com/256dpi/flock/roost"
)

func main() {
	// get config
	addr := envOr("ADDR", "0.0.0.0:8000")
	mongoURI := os.Getenv("MONGODB_URI")
	secret := envOr("SECRET", "abcd1234abcd1234")

	// create store, use the in-memory store if no database is configured
	var store *roost.Store
	if mongoURI != "" {
		store = roost.MustConnect(mongoURI)
	} else {
		store = roost.MustOpen(nil, "flock")
	}

	// create blob service, use the memory service if no bucket is configured
	var service perch.Service = perch.NewMemory()
	if endpoint := os.Getenv("MINIO_ENDPOINT"); endpoint != "" {
		client, err := minio.New(endpoint, &minio.Options{
			Creds: credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
		})
		if err != nil {
			panic(err)
		}
		service = perch.NewMinio(client, envOr("MINIO_BUCKET", "flock"))
	}

	// create authenticator
	auth := band.NewAuthenticator(store, band.DefaultPolicy(secret))

	// ensure indexes
	err := auth.EnsureIndexes(nil)
	if err != nil {
		panic(err)
	}

	// create gateway
	gateway := newGateway(func() *flock.Client {
		return flock.NewClient(store, service, auth, xo.Crash)
	})

	// create router
	router := http.NewServeMux()
	router.Handle("/live", gateway)

	// run server
	err = http.ListenAndServe(addr, logger(os.Stderr, router))
	if err != nil {
		panic(err)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}
