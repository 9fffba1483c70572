package flock

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/256dpi/flock/band"
	"github.com/256dpi/flock/roost"
)

func TestSession(t *testing.T) {
	session := NewSession()

	// initially unauthenticated
	assert.False(t, session.Active())
	assert.Nil(t, session.Identity())
	assert.Empty(t, session.Token())

	// set identity
	identity := &band.Identity{
		ID:    roost.New(),
		Email: "amy@example.com",
		Name:  "Amy",
	}
	session.Set(identity, "token")
	assert.True(t, session.Active())
	assert.Equal(t, identity, session.Identity())
	assert.Equal(t, "token", session.Token())

	// identity is returned as a copy
	session.Identity().Name = "Mallory"
	assert.Equal(t, "Amy", session.Identity().Name)

	// apply keeps token
	session.Apply(&band.Identity{
		ID:    identity.ID,
		Email: identity.Email,
		Name:  "Amanda",
	})
	assert.Equal(t, "Amanda", session.Identity().Name)
	assert.Equal(t, "token", session.Token())

	// clear removes identity and token
	session.Clear()
	assert.False(t, session.Active())
	assert.Nil(t, session.Identity())
	assert.Empty(t, session.Token())
}
