// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the token verification gate. It extracts the value
// following "Bearer " from the Authorization header, verifies it, and
// attaches the resulting claims to the request context for downstream
// stages. Every failure — missing header, malformed scheme, or any error
// the verifier returns — is answered uniformly as a 401 with a safe
// diagnostic reason; a verifier failure can never escalate to a 500.
package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ncnews/go-news-api/internal/apperr"
	"github.com/ncnews/go-news-api/internal/auth"
	"github.com/ncnews/go-news-api/internal/http/httperr"
)

const (
	// ctxKeyClaims is the Gin context key holding the verified *auth.Claims.
	ctxKeyClaims = "claims"
	// ctxKeyUserID mirrors the claim subject for the logger and rate limiter.
	ctxKeyUserID = "userID"

	bearerPrefix = "Bearer "
)

// TokenVerifier is the narrow capability the gate consumes. *auth.Verifier
// satisfies it.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RequireToken returns the token verification gate.
//
// On success the claims are stored in the context and the request proceeds;
// on any failure the request is aborted with 401 and a
// "Token verification failed: <reason>" message. The reason names the
// failure class only, never key material or parser internals.
func RequireToken(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			unauthenticated(c, "missing bearer token")
			return
		}
		if !strings.HasPrefix(header, bearerPrefix) {
			unauthenticated(c, "malformed authorization header")
			return
		}

		claims, err := v.Verify(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			unauthenticated(c, verifyReason(err))
			return
		}

		c.Set(ctxKeyClaims, claims)
		c.Set(ctxKeyUserID, claims.Subject)
		c.Next()
	}
}

// ClaimsFrom returns the verified claims attached by RequireToken.
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ctxKeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// verifyReason maps verifier sentinels to a reason safe to expose.
// Anything unrecognized collapses to "invalid token".
func verifyReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return "token expired"
	case errors.Is(err, auth.ErrTokenMalformed):
		return "malformed token"
	default:
		return "invalid token"
	}
}

func unauthenticated(c *gin.Context, reason string) {
	httperr.Respond(c, apperr.Unauthenticated("Token verification failed: "+reason))
}
