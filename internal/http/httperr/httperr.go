// Package httperr translates failures into the API's stable error contract.
//
// Every error response is the JSON envelope {request_id?, msg}. The status
// and message are decided by an explicit, ordered chain of classifiers with
// first-match-wins semantics:
//
//  1. Classified application errors (*apperr.Error) produced by the gates
//     and the service layer: their status and message are written directly.
//  2. Storage errors: the repository's invalid-identifier sentinel, gorm's
//     portable constraint sentinels, and raw PostgreSQL error codes
//     (22P02, 23503, 23505) each map to a fixed status and message.
//     Unrecognized codes decline and fall through.
//  3. Fallback: anything left is an unclassified internal failure. It is
//     logged, answered with 500 "Internal Server Error", and — only when
//     Gin runs in debug mode — the request's params, query, body, and URL
//     are dumped to the log to aid local debugging.
//
// The chain never exposes wrapped causes, stack traces, or driver error
// text to clients; those are logged server-side only. Each classifier is
// terminal once it matches — there is no way for a match to also fall
// through to a later stage.
package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/ncnews/go-news-api/internal/apperr"
	"github.com/ncnews/go-news-api/internal/repo"
)

// PostgreSQL error codes recognized by the storage classifier.
const (
	pgInvalidTextRepresentation = "22P02"
	pgForeignKeyViolation       = "23503"
	pgUniqueViolation           = "23505"
)

// Response is the error envelope returned by all endpoints. Msg is the
// stable, client-safe field; RequestID correlates server logs with client
// reports when present.
type Response struct {
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Msg       string `json:"msg"                  example:"Article not found"`
}

// classifier inspects err and either fully handles it by writing a response
// (returning true) or declines so the next classifier runs.
type classifier func(c *gin.Context, err error) bool

// chain is the fixed classification order. The fallback never declines, so
// exactly one response is written per call to Respond.
var chain = []classifier{
	classifyAppError,
	classifyStorageError,
	classifyFallback,
}

// Respond classifies err and writes the resulting error response. It aborts
// the Gin handler chain, so gates can call it and stop request processing.
func Respond(c *gin.Context, err error) {
	for _, classify := range chain {
		if classify(c, err) {
			return
		}
	}
}

// Fail writes an error response with an explicit status and message,
// bypassing classification. Used for failures that are born classified at
// the transport layer, like request-body binding errors.
func Fail(c *gin.Context, status int, msg string) {
	write(c, status, msg)
}

// classifyAppError handles errors already carrying a classification.
func classifyAppError(c *gin.Context, err error) bool {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		return false
	}
	ev := logFrom(c).Warn()
	if ae.Status() >= http.StatusInternalServerError {
		ev = logFrom(c).Error()
	}
	ev.Int("status", ae.Status()).
		Str("kind", ae.Kind.String()).
		Err(ae.Err). // internal cause, logged only
		Msg(ae.Msg)

	write(c, ae.Status(), ae.Msg)
	return true
}

// classifyStorageError maps recognized storage-layer failures to responses.
// Unknown storage errors decline and fall through to the fallback.
func classifyStorageError(c *gin.Context, err error) bool {
	status, msg := 0, ""

	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, repo.ErrInvalidID):
		status, msg = http.StatusBadRequest, "Invalid input"
	case errors.Is(err, gorm.ErrRecordNotFound):
		status, msg = http.StatusNotFound, "Not Found"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		status, msg = http.StatusBadRequest, "Record with this key already exists"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		status, msg = http.StatusNotFound, "Not Found"
	case errors.As(err, &pgErr):
		switch pgErr.Code {
		case pgInvalidTextRepresentation:
			status, msg = http.StatusBadRequest, "Invalid input"
		case pgForeignKeyViolation:
			status, msg = http.StatusNotFound, "Not Found"
		case pgUniqueViolation:
			status, msg = http.StatusBadRequest, "Record with this key already exists"
		default:
			return false
		}
	default:
		return false
	}

	logFrom(c).Warn().
		Int("status", status).
		Err(err). // driver detail, logged only
		Msg(msg)

	write(c, status, msg)
	return true
}

// classifyFallback is the terminal stage; it never declines.
func classifyFallback(c *gin.Context, err error) bool {
	ev := logFrom(c).Error().Err(err)

	// Request dumps are a debugging aid only; in release mode the log
	// carries nothing beyond the error itself.
	if gin.IsDebugging() {
		params := make(map[string]string, len(c.Params))
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}
		body, _ := c.GetRawData() // best effort; may already be drained
		ev = ev.
			Interface("params", params).
			Str("query", c.Request.URL.RawQuery).
			Bytes("body", body).
			Str("url", c.Request.URL.String())
	}
	ev.Msg("unclassified error")

	write(c, http.StatusInternalServerError, "Internal Server Error")
	return true
}

// write emits the envelope and aborts the handler chain.
func write(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Response{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Msg:       msg,
	})
}

// logFrom returns the request-scoped logger attached by the logging
// middleware, or the global logger when absent.
func logFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get("logger"); ok {
		if lg, ok := v.(*zerolog.Logger); ok {
			return lg
		}
	}
	l := log.With().Logger()
	return &l
}
