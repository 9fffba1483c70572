package flock

import (
	"context"

	"github.com/256dpi/xo"

	"github.com/256dpi/flock/band"
	"github.com/256dpi/flock/perch"
)

// Profile applies display name and avatar changes to the session identity.
type Profile struct {
	auth    *band.Authenticator
	bucket  *perch.Bucket
	session *Session
}

// NewProfile creates a new profile updater.
func NewProfile(auth *band.Authenticator, bucket *perch.Bucket, session *Session) *Profile {
	return &Profile{
		auth:    auth,
		bucket:  bucket,
		session: session,
	}
}

// Update will compute the delta between the provided values and the cached
// identity and apply it. It returns false without issuing any network call if
// nothing changed. The avatar is always stored at a fixed per user key, a new
// upload overwrites the previous avatar. Denormalized author names on past
// posts and comments are not updated.
func (p *Profile) Update(ctx context.Context, name string, avatar *Attachment) (bool, error) {
	// trace
	ctx, span := xo.Trace(ctx, "flock/Profile.Update")
	defer span.End()

	// get identity
	identity := p.session.Identity()
	if identity == nil {
		return false, ErrNoSession.Wrap()
	}

	// compute name delta
	newName := ""
	if name != "" && name != identity.Name {
		newName = name
	}

	// check for changes
	if newName == "" && avatar == nil {
		return false, nil
	}

	// upload avatar if present
	avatarURL := ""
	if avatar != nil {
		// perform upload to the fixed per user key
		url, err := p.bucket.Put(ctx, "avatars/"+identity.ID.Hex(), avatar.Name, avatar.Type, avatar.Data)
		if err != nil {
			return false, ErrUpload.Wrap()
		}

		// set url
		avatarURL = url
	}

	// apply delta
	_, err := p.auth.Update(ctx, identity.ID, newName, avatarURL)
	if err != nil {
		return false, ErrWrite.Wrap()
	}

	// merge delta into the cached identity
	merged := Merge(*identity, band.Identity{
		Name:      newName,
		AvatarURL: avatarURL,
	})

	// update session
	p.session.Apply(&merged)

	return true, nil
}
