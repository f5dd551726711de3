package blog

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSubject is the fixed subject claim stamped on every issued token.
const TokenSubject = "blog"

// TokenClaims is the claim set carried by issued tokens: the registered
// claims plus the integer user id and username the services act on.
type TokenClaims struct {
	jwt.RegisteredClaims
	UID      int64  `json:"id"`
	Username string `json:"username,omitempty"`
}

// Identity returns the principal encoded in the claims
func (c *TokenClaims) Identity() Identity {
	return Identity{ID: c.UID, Username: c.Username}
}

// Subject returns the subject claim
func (c *TokenClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Expires returns the expiration time
func (c *TokenClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *TokenClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
