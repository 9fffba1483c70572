package flock

import (
	"context"
	"testing"
	"time"

	"github.com/256dpi/flock/band"
	"github.com/256dpi/flock/perch"
	"github.com/256dpi/flock/roost"
)

var tester = roost.NewTester(nil, &Post{}, &Comment{}, &band.User{})

func testClient(svc perch.Service) *Client {
	// ensure service
	if svc == nil {
		svc = perch.NewMemory()
	}

	// prepare authenticator
	auth := band.NewAuthenticator(tester.Store, band.DefaultPolicy("hen-sparrow-owl"))
	err := auth.EnsureIndexes(nil)
	if err != nil {
		panic(err)
	}

	return NewClient(tester.Store, svc, auth, func(err error) {
		panic(err)
	})
}

func signedUpClient(svc perch.Service, email, name string) *Client {
	// sign up user
	client := testClient(svc)
	err := client.SignUp(nil, email, "secret-pass", name)
	if err != nil {
		panic(err)
	}

	return client
}

func awaitPosts(t *testing.T, feed *Feed, n int) []*Post {
	deadline := time.After(5 * time.Second)
	for {
		select {
		case snapshot := <-feed.Snapshots():
			if len(snapshot) == n {
				return snapshot
			}
		case <-deadline:
			t.Fatalf("timeout awaiting snapshot with %d posts", n)
			return nil
		}
	}
}

func awaitComments(t *testing.T, thread *Thread, post roost.ID, n int) ThreadSnapshot {
	deadline := time.After(5 * time.Second)
	for {
		select {
		case snapshot := <-thread.Snapshots():
			if snapshot.Post == post && len(snapshot.Comments) == n {
				return snapshot
			}
		case <-deadline:
			t.Fatalf("timeout awaiting snapshot with %d comments", n)
			return ThreadSnapshot{}
		}
	}
}

func noSnapshot[T any](t *testing.T, ch <-chan T) {
	select {
	case <-ch:
		t.Fatal("unexpected snapshot")
	case <-time.After(100 * time.Millisecond):
	}
}

// failingService rejects all blob operations.
type failingService struct{}

func (s *failingService) Prepare(context.Context, string) (perch.Handle, error) {
	return perch.Handle{}, nil
}

func (s *failingService) Upload(context.Context, perch.Handle, string, int64) (perch.Upload, error) {
	return nil, perch.ErrInvalidHandle.Wrap()
}

func (s *failingService) Download(context.Context, perch.Handle) (perch.Download, error) {
	return nil, perch.ErrNotFound.Wrap()
}

func (s *failingService) Delete(context.Context, perch.Handle) error {
	return perch.ErrNotFound.Wrap()
}

func (s *failingService) URL(context.Context, perch.Handle) (string, error) {
	return "", perch.ErrInvalidHandle.Wrap()
}
