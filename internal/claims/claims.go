// Package claims decodes the access token's embedded claims locally, without
// a network round-trip and without signature verification. The decoded values
// are a freshness hint for the client only — the server remains the authority
// for every authorization decision.
package claims

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/authconsole/internal/common"
	"github.com/dmitrijs2005/authconsole/internal/models"
)

// AccessClaims is the claim set the auth service embeds in access tokens:
// the registered subject/expiry plus the account role.
type AccessClaims struct {
	jwt.RegisteredClaims
	Role models.Role `json:"role"`
}

// Decode parses tokenString and returns its claims. The signature is NOT
// verified; the signing key lives on the server. A malformed token or one
// without an expiry yields common.ErrInvalidToken.
func Decode(tokenString string) (*AccessClaims, error) {
	c := &AccessClaims{}

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, c); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if c.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing expiry", common.ErrInvalidToken)
	}

	return c, nil
}

// ExpiresAfter reports whether the token is still fresh at instant now.
// The compare is exclusive: a token expiring exactly at now counts as stale.
func (c *AccessClaims) ExpiresAfter(now time.Time) bool {
	return c.ExpiresAt.Time.After(now)
}
