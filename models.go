// Package flock implements the synchronization core of a mobile social
// networking application. It connects live feed and comment thread
// subscriptions, post and comment composers and a profile updater to a
// document store, a blob store and an identity service.
package flock

import (
	"time"

	"github.com/256dpi/xo"

	"github.com/256dpi/flock/roost"
)

// Post is a single feed entry. Posts are immutable once created. The author
// name is a denormalized snapshot taken at submission time and is not updated
// when the author renames itself later.
type Post struct {
	roost.Base  `json:"-" bson:",inline" roost:"posts"`
	Description string    `json:"description" bson:"description"`
	ImageURL    string    `json:"image-url" bson:"image_url"`
	AuthorID    roost.ID  `json:"author-id" bson:"author_id"`
	AuthorName  string    `json:"author-name" bson:"author_name"`
	Created     time.Time `json:"created-at" bson:"created_at"`
}

// Validate will validate the post.
func (p *Post) Validate() error {
	// check author
	if p.AuthorID.IsZero() {
		return xo.SF("missing author")
	}

	// check timestamp
	if p.Created.IsZero() {
		return xo.SF("missing timestamp")
	}

	return nil
}

// Comment is a single comment scoped to exactly one post. Comments carry a
// stable server assigned id and a denormalized author name snapshot.
type Comment struct {
	roost.Base `json:"-" bson:",inline" roost:"comments"`
	Post       roost.ID  `json:"post-id" bson:"post_id"`
	AuthorID   roost.ID  `json:"author-id" bson:"author_id"`
	AuthorName string    `json:"author-name" bson:"author_name"`
	Text       string    `json:"text" bson:"text"`
	Created    time.Time `json:"created-at" bson:"created_at"`
}

// Validate will validate the comment.
func (c *Comment) Validate() error {
	// check post
	if c.Post.IsZero() {
		return xo.SF("missing post")
	}

	// check author
	if c.AuthorID.IsZero() {
		return xo.SF("missing author")
	}

	// check timestamp
	if c.Created.IsZero() {
		return xo.SF("missing timestamp")
	}

	return nil
}

// Attachment is an image selected for upload.
type Attachment struct {
	// The original file name, used for media type detection.
	Name string

	// The media type, detected from the name if absent.
	Type string

	// The raw bytes.
	Data []byte
}
