// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the ownership authorization gate for mutating
// article requests. It loads the target article through the store and
// confirms the verified token subject is the article's recorded author.
//
// Ordering invariant: existence is always checked before ownership. A
// non-owner asking for a nonexistent article observes 404, never 401. The
// identifier format check belongs to the store lookup itself; the gate only
// distinguishes a clean "no such row" (404) from everything else, which the
// classification chain maps (malformed id → 400).
package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ncnews/go-news-api/internal/apperr"
	"github.com/ncnews/go-news-api/internal/domain"
	"github.com/ncnews/go-news-api/internal/http/httperr"
	"github.com/ncnews/go-news-api/internal/repo"
)

// ctxKeyArticle is the Gin context key holding the loaded *domain.Article.
// Attaching it here spares the downstream handler a second lookup.
const ctxKeyArticle = "article"

// ArticleFinder is the narrow store capability the gate consumes.
// *services.ArticleService satisfies it.
type ArticleFinder interface {
	Get(ctx context.Context, rawID string) (*domain.Article, error)
}

// RequireArticleAuthor returns the ownership gate for routes carrying an
// :article_id path parameter. It must run after RequireToken.
//
// The subject string from the verified claims is trusted as-is; the gate
// performs a plain string comparison against the article's author column,
// no re-verification.
func RequireArticleAuthor(finder ArticleFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			// RequireToken did not run; treat as missing authentication
			// rather than crashing into a 500.
			httperr.Respond(c, apperr.Unauthenticated("Token verification failed: missing bearer token"))
			return
		}

		article, err := finder.Get(c.Request.Context(), c.Param("article_id"))
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				httperr.Respond(c, apperr.Wrap(apperr.KindNotFound, "Article not found", err))
				return
			}
			// Malformed id and storage failures classify downstream.
			httperr.Respond(c, err)
			return
		}

		if article.Author != claims.Subject {
			httperr.Respond(c, apperr.Forbidden("You are not permitted to make changes to this article"))
			return
		}

		c.Set(ctxKeyArticle, article)
		c.Next()
	}
}

// ArticleFrom returns the article loaded by RequireArticleAuthor.
func ArticleFrom(c *gin.Context) (*domain.Article, bool) {
	v, ok := c.Get(ctxKeyArticle)
	if !ok {
		return nil, false
	}
	a, ok := v.(*domain.Article)
	return a, ok
}
