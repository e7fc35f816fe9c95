package model

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// UserKey names the mapping-table column used to match rows against the
// directory. The platform accepts four identifier kinds.
type UserKey string

const (
	UserKeyUsername UserKey = "username"
	UserKeyEmail    UserKey = "email"
	UserKeyAbout    UserKey = "about"
	UserKeyUUID     UserKey = "uuid"
)

var validUserKeys = []UserKey{UserKeyUsername, UserKeyEmail, UserKeyAbout, UserKeyUUID}

func ParseUserKey(s string) (UserKey, error) {
	key := UserKey(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range validUserKeys {
		if key == valid {
			return key, nil
		}
	}
	return "", fmt.Errorf("invalid user key %q: must be one of username, email, about, uuid", s)
}

// Identifier extracts the attribute this key matches on from a directory
// entry.
func (k UserKey) Identifier(p Person) string {
	switch k {
	case UserKeyEmail:
		return p.Email
	case UserKeyAbout:
		return p.About()
	case UserKeyUUID:
		return p.UUID
	default:
		return p.Username
	}
}

// Normalize folds an identifier value for comparison. Full names are
// NFC-normalized, case-folded and whitespace-collapsed because the platform
// stores first and last name separately; email and uuid comparisons are
// case-insensitive; usernames match byte-exact after trimming.
func (k UserKey) Normalize(value string) string {
	value = strings.TrimSpace(value)
	switch k {
	case UserKeyAbout:
		value = norm.NFC.String(value)
		value = strings.Join(strings.Fields(value), " ")
		return strings.ToLower(value)
	case UserKeyEmail, UserKeyUUID:
		return strings.ToLower(value)
	default:
		return value
	}
}
