package domain

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// User mirrors the principal record kept for author references and hearts.
// Credentials never live here; the auth collaborator owns those.
type User struct {
	ID     string
	Email  string
	Name   string
	Hearts []string
}

// HasHearted reports whether the user has hearted the given store.
func (u User) HasHearted(storeID string) bool {
	for _, id := range u.Hearts {
		if id == storeID {
			return true
		}
	}
	return false
}

// Gravatar derives the user's avatar URL from their email address.
func (u User) Gravatar() string {
	hash := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(u.Email))))
	return fmt.Sprintf("https://gravatar.com/avatar/%x?s=200", hash)
}
