package flock

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/256dpi/flock/roost"
)

func TestComposerPost(t *testing.T) {
	tester.Clean()

	client := signedUpClient(nil, "amy@example.com", "Amy")
	composer := client.Composer()

	// description only
	post, err := composer.Post(nil, "hello world", nil)
	assert.NoError(t, err)
	assert.False(t, post.ID().IsZero())
	assert.Equal(t, "hello world", post.Description)
	assert.Empty(t, post.ImageURL)
	assert.Equal(t, client.Session().Identity().ID, post.AuthorID)
	assert.Equal(t, "Amy", post.AuthorName)
	assert.False(t, post.Created.IsZero())

	// image only
	post, err = composer.Post(nil, "", &Attachment{
		Name: "photo.jpg",
		Data: []byte("data"),
	})
	assert.NoError(t, err)
	assert.Empty(t, post.Description)
	assert.True(t, strings.HasPrefix(post.ImageURL, "memory:///posts/"), post.ImageURL)

	// both written
	assert.Equal(t, 2, tester.Count(&Post{}))
}

func TestComposerPostValidation(t *testing.T) {
	tester.Clean()

	client := signedUpClient(nil, "amy@example.com", "Amy")
	composer := client.Composer()

	// missing description and image
	post, err := composer.Post(nil, "", nil)
	assert.Error(t, err)
	assert.True(t, ErrValidation.Is(err))
	assert.Nil(t, post)

	// whitespace only description
	post, err = composer.Post(nil, "   ", nil)
	assert.Error(t, err)
	assert.True(t, ErrValidation.Is(err))
	assert.Nil(t, post)

	// nothing written
	assert.Equal(t, 0, tester.Count(&Post{}))
}

func TestComposerPostNoSession(t *testing.T) {
	tester.Clean()

	client := testClient(nil)
	composer := client.Composer()

	// unauthenticated
	post, err := composer.Post(nil, "hello", nil)
	assert.Error(t, err)
	assert.True(t, ErrNoSession.Is(err))
	assert.Nil(t, post)
}

func TestComposerPostUploadError(t *testing.T) {
	tester.Clean()

	client := signedUpClient(&failingService{}, "amy@example.com", "Amy")
	composer := client.Composer()

	// failed upload aborts the post
	post, err := composer.Post(nil, "hello", &Attachment{
		Name: "photo.jpg",
		Data: []byte("data"),
	})
	assert.Error(t, err)
	assert.True(t, ErrUpload.Is(err))
	assert.Nil(t, post)
	assert.Equal(t, 0, tester.Count(&Post{}))

	// a post without image is unaffected
	post, err = composer.Post(nil, "hello", nil)
	assert.NoError(t, err)
	assert.NotNil(t, post)
}

func TestComposerComment(t *testing.T) {
	tester.Clean()

	client := signedUpClient(nil, "amy@example.com", "Amy")
	composer := client.Composer()

	// create post
	post, err := composer.Post(nil, "hello", nil)
	assert.NoError(t, err)

	// create comment
	comment, err := composer.Comment(nil, post.ID(), "hi there")
	assert.NoError(t, err)
	assert.False(t, comment.ID().IsZero())
	assert.Equal(t, post.ID(), comment.Post)
	assert.Equal(t, "hi there", comment.Text)
	assert.Equal(t, "Amy", comment.AuthorName)
	assert.False(t, comment.Created.IsZero())

	// missing post id
	comment, err = composer.Comment(nil, roost.Z(), "hi")
	assert.Error(t, err)
	assert.True(t, ErrValidation.Is(err))
	assert.Nil(t, comment)

	// empty text
	comment, err = composer.Comment(nil, post.ID(), "  ")
	assert.Error(t, err)
	assert.True(t, ErrValidation.Is(err))
	assert.Nil(t, comment)

	// only one comment written
	assert.Equal(t, 1, tester.Count(&Comment{}))
}
