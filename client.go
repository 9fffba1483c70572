package flock

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/256dpi/flock/band"
	"github.com/256dpi/flock/perch"
	"github.com/256dpi/flock/roost"
)

// Client wires the store, blob service and authenticator into a single
// application facing object that owns the session lifecycle.
type Client struct {
	store    *roost.Store
	bucket   *perch.Bucket
	auth     *band.Authenticator
	session  *Session
	reporter func(error)

	mutex sync.Mutex
	subs  []interface{ Close() }
}

// NewClient creates a new client. Deferred subscription errors are forwarded
// to the provided reporter.
func NewClient(store *roost.Store, service perch.Service, auth *band.Authenticator, reporter func(error)) *Client {
	return &Client{
		store:    store,
		bucket:   perch.NewBucket(service),
		auth:     auth,
		session:  NewSession(),
		reporter: reporter,
	}
}

// Session returns the session owned by the client.
func (c *Client) Session() *Session {
	return c.session
}

// SignUp will create a new account and establish a session.
func (c *Client) SignUp(ctx context.Context, email, password, name string) error {
	// sign up
	identity, token, err := c.auth.SignUp(ctx, email, password, name)
	if err != nil {
		return err
	}

	// establish session
	c.session.Set(identity, token)

	return nil
}

// SignIn will authenticate the provided credentials and establish a session.
func (c *Client) SignIn(ctx context.Context, email, password string) error {
	// sign in
	identity, token, err := c.auth.SignIn(ctx, email, password)
	if err != nil {
		return err
	}

	// establish session
	c.session.Set(identity, token)

	return nil
}

// SignOut will clear the session and close all subscriptions created through
// the client.
func (c *Client) SignOut() {
	// get subscriptions
	c.mutex.Lock()
	subs := c.subs
	c.subs = nil
	c.mutex.Unlock()

	// close subscriptions
	for _, sub := range subs {
		sub.Close()
	}

	// clear session
	c.session.Clear()
}

// Feed returns a new feed whose lifecycle is bound to the session.
func (c *Client) Feed() *Feed {
	// create and track feed
	feed := NewFeed(c.store, c.reporter)
	c.track(feed)

	return feed
}

// Thread returns a new thread whose lifecycle is bound to the session.
func (c *Client) Thread() *Thread {
	// create and track thread
	thread := NewThread(c.store, c.reporter)
	c.track(thread)

	return thread
}

// Composer returns a composer bound to the session.
func (c *Client) Composer() *Composer {
	return NewComposer(c.store, c.bucket, c.session)
}

// Profile returns a profile updater bound to the session.
func (c *Client) Profile() *Profile {
	return NewProfile(c.auth, c.bucket, c.session)
}

// PostsBy will return all posts of the specified author, newest first.
func (c *Client) PostsBy(ctx context.Context, author roost.ID) ([]*Post, error) {
	// find posts
	posts := make([]*Post, 0)
	err := c.store.C(&Post{}).FindAll(ctx, &posts, bson.M{
		"author_id": author,
	}, options.Find().SetSort(roost.Sort("-created_at", "-_id")))
	if err != nil {
		return nil, ErrFetch.Wrap()
	}

	return posts, nil
}

func (c *Client) track(sub interface{ Close() }) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.subs = append(c.subs, sub)
}
