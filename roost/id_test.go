package roost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestID(t *testing.T) {
	assert.True(t, Z().IsZero())
	assert.False(t, New().IsZero())
	assert.NotEqual(t, New(), New())
}

func TestFromHex(t *testing.T) {
	id := New()

	// valid
	assert.True(t, IsHex(id.Hex()))
	out, err := FromHex(id.Hex())
	assert.NoError(t, err)
	assert.Equal(t, id, out)

	// invalid
	assert.False(t, IsHex("cool"))
	_, err = FromHex("cool")
	assert.Error(t, err)

	// must panics on invalid input
	assert.Panics(t, func() {
		MustFromHex("cool")
	})
	assert.Equal(t, id, MustFromHex(id.Hex()))
}

func TestP(t *testing.T) {
	id := New()
	assert.Equal(t, id, *P(id))
}
