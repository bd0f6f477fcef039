package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGravatarHashesLowercasedEmail(t *testing.T) {
	a := User{Email: "Wes@Example.com"}
	b := User{Email: "wes@example.com "}

	assert.Equal(t, a.Gravatar(), b.Gravatar())
	// md5("wes@example.com")
	assert.Equal(t, "https://gravatar.com/avatar/9efd86dfb66394fae773919df6a9c0fb?s=200", b.Gravatar())
}

func TestHasHearted(t *testing.T) {
	user := User{Hearts: []string{"a", "b"}}

	assert.True(t, user.HasHearted("a"))
	assert.False(t, user.HasHearted("c"))
}
