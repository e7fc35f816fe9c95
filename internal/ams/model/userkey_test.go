package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserKey(t *testing.T) {
	for _, s := range []string{"username", "Email", " ABOUT ", "uuid"} {
		key, err := ParseUserKey(s)
		require.NoError(t, err, s)
		assert.NotEmpty(t, key)
	}

	_, err := ParseUserKey("group")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid user key")
}

func TestUserKeyIdentifier(t *testing.T) {
	p := NewPerson(map[string]any{
		"id":           "k1",
		"firstName":    "Riley",
		"lastName":     "Jones",
		"username":     "rjones",
		"emailAddress": "riley@example.com",
		"uuid":         "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
	})

	assert.Equal(t, "rjones", UserKeyUsername.Identifier(p))
	assert.Equal(t, "riley@example.com", UserKeyEmail.Identifier(p))
	assert.Equal(t, "Riley Jones", UserKeyAbout.Identifier(p))
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", UserKeyUUID.Identifier(p))
}

func TestUserKeyNormalize(t *testing.T) {
	assert.Equal(t, "riley jones", UserKeyAbout.Normalize("  Riley   JONES "))
	assert.Equal(t, "riley@example.com", UserKeyEmail.Normalize(" Riley@Example.COM "))
	assert.Equal(t, "abc-def", UserKeyUUID.Normalize("ABC-DEF"))
	// Usernames are matched byte-exact apart from surrounding whitespace.
	assert.Equal(t, "RJones", UserKeyUsername.Normalize(" RJones "))
}
