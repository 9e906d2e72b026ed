// Package auth implements the signed-token codec used by the users service.
// Tokens are self-contained HS256 JWTs; validity is purely a function of
// signature, expiry and (optionally) subject match. There is no revocation.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenMalformed is returned when a token cannot be parsed or its
// signature does not verify.
var ErrTokenMalformed = errors.New("token malformed or signature invalid")

const defaultTTL = 24 * time.Hour

// Codec issues and decodes signed tokens. The secret and TTL are injected at
// construction; there is no ambient signing state.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec returns a Codec signing with secret. A non-positive ttl falls back
// to 24 hours.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue produces a signed token embedding subject (email), role and user id,
// expiring ttl from now.
func (c *Codec) Issue(subject, role, userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     subject,
		"role":    role,
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(c.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// parse verifies the signature and returns the claims. Expired tokens still
// parse: expiry is checked separately so claim extraction works on any
// correctly signed token.
func (c *Codec) parse(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// Subject extracts the subject (email) claim.
func (c *Codec) Subject(token string) (string, error) {
	return c.stringClaim(token, "sub")
}

// Role extracts the role claim.
func (c *Codec) Role(token string) (string, error) {
	return c.stringClaim(token, "role")
}

// UserID extracts the user id claim.
func (c *Codec) UserID(token string) (string, error) {
	return c.stringClaim(token, "user_id")
}

func (c *Codec) stringClaim(token, name string) (string, error) {
	claims, err := c.parse(token)
	if err != nil {
		return "", err
	}
	s, ok := claims[name].(string)
	if !ok {
		return "", ErrTokenMalformed
	}
	return s, nil
}

// ExpiresAt extracts the expiry timestamp.
func (c *Codec) ExpiresAt(token string) (time.Time, error) {
	claims, err := c.parse(token)
	if err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, ErrTokenMalformed
	}
	return exp.Time, nil
}

// IsValid reports whether the token's signature verifies, it has not expired,
// and (when expectedSubject is non-empty) its subject matches exactly. It
// never returns an error; any failure yields false.
func (c *Codec) IsValid(token, expectedSubject string) bool {
	claims, err := c.parse(token)
	if err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil || !time.Now().Before(exp.Time) {
		return false
	}
	if expectedSubject != "" {
		sub, ok := claims["sub"].(string)
		if !ok || sub != expectedSubject {
			return false
		}
	}
	return true
}
