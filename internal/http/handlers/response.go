// Package handlers provides HTTP handler implementations for the public API.
//
// Handlers are transport-thin: they bind and validate request shapes,
// delegate to the service layer, and hand every failure to the error
// classification chain in internal/http/httperr. Success responses are
// written through the small helpers in this file so all endpoints share
// the same envelope conventions:
//
//	GET  list  → 200 { "articles": [...] }
//	GET  one   → 200 { "article": {...} }
//	POST       → 201 { "article": {...} }
//	DELETE     → 204 (no body)
//
// Error responses always use the httperr envelope {request_id?, msg}.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ok writes a success JSON response with the given status code.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// created writes an HTTP 201 Created response.
func created(c *gin.Context, body any) {
	c.JSON(http.StatusCreated, body)
}

// noContent writes an HTTP 204 No Content response.
//
// Used when the operation succeeds but there is no response body.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
