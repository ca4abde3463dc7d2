// Package auth implements bearer-token verification for the API.
//
// Tokens are JWTs signed with HMAC-SHA256. The Verifier checks the signature,
// the standard time claims (with a small leeway for clock skew), and returns
// the decoded subject as a Claims value. Verification failures are collapsed
// into a small set of sentinel errors so callers can surface a safe
// diagnostic reason without exposing key material or parser internals.
//
// Token issuance is not part of the HTTP surface; Issue exists for the
// tokengen dev tool and for tests.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failure sentinels. The token gate treats all of them as
// authentication failures; they differ only in the safe reason reported.
var (
	// ErrTokenExpired indicates the token's exp claim is in the past.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenMalformed indicates the token is not a parseable JWT.
	ErrTokenMalformed = errors.New("malformed token")

	// ErrTokenInvalid covers every other verification failure: bad
	// signature, wrong algorithm, nbf in the future, missing subject.
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims is the decoded, verified payload of a bearer token. It lives for
// one request and is never persisted.
type Claims struct {
	// Subject identifies the authenticated principal (a username).
	Subject string
	// IssuedAt and ExpiresAt mirror the standard JWT time claims.
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Verifier verifies HMAC-SHA256 signed JWTs.
//
// The zero value is not usable; construct with NewVerifier. Safe for
// concurrent use.
type Verifier struct {
	key      []byte
	leeway   time.Duration
	timeFunc func() time.Time // injectable for tests
}

// NewVerifier constructs a Verifier for the given shared secret. Secrets
// shorter than 32 bytes are rejected outright.
func NewVerifier(secret string) (*Verifier, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}
	return &Verifier{
		key:      []byte(secret),
		leeway:   2 * time.Minute,
		timeFunc: time.Now,
	}, nil
}

// Verify parses and validates tokenString, returning the decoded claims.
//
// Every failure maps to one of the package sentinels; Verify never panics
// and never returns an unclassified error, so the token gate can treat any
// non-nil result uniformly as a 401.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	now := v.timeFunc()

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return v.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(v.leeway),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenInvalid
		}
	}

	rc, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || rc.Subject == "" {
		return nil, ErrTokenInvalid
	}

	c := &Claims{Subject: rc.Subject}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.Time
	}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	return c, nil
}

// Issue signs a token for subject, valid for ttl. Used by the tokengen dev
// tool and by tests; the API itself has no login endpoint.
func (v *Verifier) Issue(subject string, ttl time.Duration) (string, error) {
	now := v.timeFunc()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(v.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
