// Package band implements an email and password based identity service.
package band

import (
	"github.com/256dpi/xo"
	"github.com/asaskevich/govalidator"
	"golang.org/x/crypto/bcrypt"

	"github.com/256dpi/flock/roost"
)

// User is the stored identity record.
type User struct {
	roost.Base   `json:"-" bson:",inline" roost:"users"`
	Email        string `json:"email" bson:"email"`
	Name         string `json:"name" bson:"name"`
	AvatarURL    string `json:"avatar-url" bson:"avatar_url"`
	PasswordHash []byte `json:"-" bson:"password_hash"`
}

// Validate will validate the user.
func (u *User) Validate() error {
	// check email
	if u.Email == "" || !govalidator.IsEmail(u.Email) {
		return xo.SF("invalid email")
	}

	// check name
	if u.Name == "" {
		return xo.SF("missing name")
	}

	// check password hash
	if len(u.PasswordHash) == 0 {
		return xo.SF("missing password hash")
	}

	return nil
}

// SetPassword will hash the provided password and set PasswordHash.
func (u *User) SetPassword(password string) error {
	// generate hash
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return xo.W(err)
	}

	// set hash
	u.PasswordHash = hash

	return nil
}

// ValidPassword returns whether the provided password matches the stored
// password hash.
func (u *User) ValidPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) == nil
}

// Identity is the read-mostly copy of a user held by applications.
type Identity struct {
	ID        roost.ID `json:"id"`
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	AvatarURL string   `json:"avatar-url"`
}

// Identity will return the users identity.
func (u *User) Identity() *Identity {
	return &Identity{
		ID:        u.ID(),
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
	}
}
