package flock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/256dpi/xo"

	"github.com/256dpi/flock/perch"
	"github.com/256dpi/flock/roost"
)

// Composer creates posts and comments on behalf of the session identity.
type Composer struct {
	store   *roost.Store
	bucket  *perch.Bucket
	session *Session
}

// NewComposer creates a new composer.
func NewComposer(store *roost.Store, bucket *perch.Bucket, session *Session) *Composer {
	return &Composer{
		store:   store,
		bucket:  bucket,
		session: session,
	}
}

// Post will create a new post. The description may be empty if an image is
// attached and vice versa. The image is uploaded before the post is written.
// If the upload fails no post is created. A crash between upload and write
// leaves an orphaned blob behind, which is accepted for this domain.
func (c *Composer) Post(ctx context.Context, description string, image *Attachment) (*Post, error) {
	// trace
	ctx, span := xo.Trace(ctx, "flock/Composer.Post")
	defer span.End()

	// get identity
	identity := c.session.Identity()
	if identity == nil {
		return nil, ErrNoSession.Wrap()
	}

	// check input
	if strings.TrimSpace(description) == "" && image == nil {
		return nil, ErrValidation.Wrap()
	}

	// upload image if present
	var imageURL string
	if image != nil {
		// the timestamp disambiguates uploads by the same author
		key := fmt.Sprintf("posts/%s_%d", identity.ID.Hex(), time.Now().UnixNano())

		// perform upload
		url, err := c.bucket.Put(ctx, key, image.Name, image.Type, image.Data)
		if err != nil {
			return nil, ErrUpload.Wrap()
		}

		// set url
		imageURL = url
	}

	// prepare post with a snapshot of the current identity
	post := &Post{
		Base:        roost.B(),
		Description: description,
		ImageURL:    imageURL,
		AuthorID:    identity.ID,
		AuthorName:  identity.Name,
		Created:     time.Now(),
	}

	// validate post
	err := post.Validate()
	if err != nil {
		return nil, err
	}

	// insert post
	_, err = c.store.C(post).InsertOne(ctx, post)
	if err != nil {
		return nil, ErrWrite.Wrap()
	}

	return post, nil
}

// Comment will create a new comment under the specified post. The text must
// not be empty.
func (c *Composer) Comment(ctx context.Context, post roost.ID, text string) (*Comment, error) {
	// trace
	ctx, span := xo.Trace(ctx, "flock/Composer.Comment")
	defer span.End()

	// get identity
	identity := c.session.Identity()
	if identity == nil {
		return nil, ErrNoSession.Wrap()
	}

	// check input
	if post.IsZero() || strings.TrimSpace(text) == "" {
		return nil, ErrValidation.Wrap()
	}

	// prepare comment with a snapshot of the current identity
	comment := &Comment{
		Base:       roost.B(),
		Post:       post,
		AuthorID:   identity.ID,
		AuthorName: identity.Name,
		Text:       text,
		Created:    time.Now(),
	}

	// validate comment
	err := comment.Validate()
	if err != nil {
		return nil, err
	}

	// insert comment
	_, err = c.store.C(comment).InsertOne(ctx, comment)
	if err != nil {
		return nil, ErrWrite.Wrap()
	}

	return comment, nil
}
