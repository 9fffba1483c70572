package flock

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/256dpi/flock/band"
)

func TestClientSession(t *testing.T) {
	tester.Clean()

	client := testClient(nil)

	// sign up establishes a session
	err := client.SignUp(nil, "amy@example.com", "secret-pass", "Amy")
	assert.NoError(t, err)
	assert.True(t, client.Session().Active())
	assert.NotEmpty(t, client.Session().Token())

	// sign out clears it
	client.SignOut()
	assert.False(t, client.Session().Active())
	assert.Empty(t, client.Session().Token())

	// sign in restores it
	err = client.SignIn(nil, "amy@example.com", "secret-pass")
	assert.NoError(t, err)
	assert.True(t, client.Session().Active())
	assert.Equal(t, "Amy", client.Session().Identity().Name)

	// failed sign in leaves the session untouched
	err = client.SignIn(nil, "amy@example.com", "wrong-pass")
	assert.Error(t, err)
	assert.True(t, band.IsReason(err, band.InvalidCredentials))
	assert.True(t, client.Session().Active())
}

func TestClientSignOutClosesSubscriptions(t *testing.T) {
	tester.Clean()

	client := signedUpClient(nil, "amy@example.com", "Amy")

	// open feed and thread
	feed := client.Feed()
	err := feed.Open(nil)
	assert.NoError(t, err)

	post, err := client.Composer().Post(nil, "hello", nil)
	assert.NoError(t, err)

	thread := client.Thread()
	err = thread.Select(nil, post.ID())
	assert.NoError(t, err)

	// sign out closes both
	client.SignOut()
	assert.Equal(t, Closed, feed.State())
	assert.Equal(t, Closed, thread.State())
	assert.False(t, client.Session().Active())
}

func TestClientPostsBy(t *testing.T) {
	tester.Clean()

	amy := signedUpClient(nil, "amy@example.com", "Amy")
	bob := signedUpClient(nil, "bob@example.com", "Bob")

	// create posts
	post1, err := amy.Composer().Post(nil, "first", nil)
	assert.NoError(t, err)
	_, err = bob.Composer().Post(nil, "other", nil)
	assert.NoError(t, err)
	post2, err := amy.Composer().Post(nil, "second", nil)
	assert.NoError(t, err)

	// only amy's posts, newest first
	posts, err := amy.PostsBy(nil, amy.Session().Identity().ID)
	assert.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, post2.ID(), posts[0].ID())
	assert.Equal(t, post1.ID(), posts[1].ID())
}
