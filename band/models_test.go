package band

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/256dpi/flock/roost"
)

func TestUserValidate(t *testing.T) {
	user := &User{
		Base:  roost.B(),
		Email: "amy@example.com",
		Name:  "Amy",
	}

	// missing password hash
	assert.Error(t, user.Validate())

	// valid
	err := user.SetPassword("secret-pass")
	assert.NoError(t, err)
	assert.NoError(t, user.Validate())

	// invalid email
	user.Email = "nope"
	assert.Error(t, user.Validate())

	// missing name
	user.Email = "amy@example.com"
	user.Name = ""
	assert.Error(t, user.Validate())
}

func TestUserPassword(t *testing.T) {
	user := &User{}

	// set password
	err := user.SetPassword("secret-pass")
	assert.NoError(t, err)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotContains(t, string(user.PasswordHash), "secret-pass")

	// verify password
	assert.True(t, user.ValidPassword("secret-pass"))
	assert.False(t, user.ValidPassword("wrong-pass"))
}

func TestUserIdentity(t *testing.T) {
	user := &User{
		Base:      roost.B(roost.New()),
		Email:     "amy@example.com",
		Name:      "Amy",
		AvatarURL: "http://blobs.example.com/avatars/amy",
	}

	identity := user.Identity()
	assert.Equal(t, user.ID(), identity.ID)
	assert.Equal(t, "amy@example.com", identity.Email)
	assert.Equal(t, "Amy", identity.Name)
	assert.Equal(t, "http://blobs.example.com/avatars/amy", identity.AvatarURL)
}
