package blog_test

import (
	"testing"

	blog "github.com/goliatone/go-blog"
	"github.com/stretchr/testify/assert"
)

func TestAuthorizeMutation(t *testing.T) {
	alice := blog.Identity{ID: 1, Username: "alice"}

	t.Run("allows the owner", func(t *testing.T) {
		assert.NoError(t, blog.AuthorizeMutation(alice, 1))
	})

	t.Run("denies everyone else", func(t *testing.T) {
		err := blog.AuthorizeMutation(alice, 2)
		assert.True(t, blog.IsForbiddenError(err))
	})
}

func TestAuthorizeReplyParent(t *testing.T) {
	reply := &blog.Reply{ID: 10, BoardID: 5, UserID: 1}

	t.Run("allows a reply addressed through its own board", func(t *testing.T) {
		assert.NoError(t, blog.AuthorizeReplyParent(reply, 5))
	})

	t.Run("denies a reply addressed through another board", func(t *testing.T) {
		err := blog.AuthorizeReplyParent(reply, 6)
		assert.True(t, blog.IsForbiddenError(err))
	})

	t.Run("denies a nil reply", func(t *testing.T) {
		err := blog.AuthorizeReplyParent(nil, 5)
		assert.True(t, blog.IsForbiddenError(err))
	})
}
