// Article HTTP handlers.
//
// This file exposes the REST endpoints for the articles resource:
//   - GET    /articles              (list, sortable)
//   - GET    /articles/recent      (newest articles, limit query)
//   - POST   /articles             (create; token required)
//   - GET    /articles/{article_id}
//   - PATCH  /articles/{article_id} (update; token + authorship required)
//   - DELETE /articles/{article_id} (delete; token + authorship required)
//
// Sort parameters for the list endpoint are validated by the service layer
// before any query runs. Identifier format is checked at the store boundary,
// so handlers pass raw path parameters through untouched and let the
// classification chain turn a malformed id into a 400.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ncnews/go-news-api/internal/apperr"
	"github.com/ncnews/go-news-api/internal/domain"
	"github.com/ncnews/go-news-api/internal/http/httperr"
	"github.com/ncnews/go-news-api/internal/repo"
	"github.com/ncnews/go-news-api/internal/utils"
)

//
// Service contracts
//

// ArticleService defines the article operations the handlers depend on.
type ArticleService interface {
	List(ctx context.Context, sortBy, order, sort string) ([]domain.Article, error)
	Recent(ctx context.Context, limit int) ([]domain.Article, error)
	Get(ctx context.Context, rawID string) (*domain.Article, error)
	Create(ctx context.Context, title, body, author string) (*domain.Article, error)
	Update(ctx context.Context, rawID string, title, body *string) (*domain.Article, error)
	Delete(ctx context.Context, rawID string) error
}

// TopicService defines the topic operations the handlers depend on.
type TopicService interface {
	List(ctx context.Context) ([]domain.Topic, error)
}

// Handlers bundles the services behind the public API endpoints.
type Handlers struct {
	articleSvc ArticleService
	topicSvc   TopicService
}

// New constructs the handler set.
func New(articleSvc ArticleService, topicSvc TopicService) *Handlers {
	return &Handlers{articleSvc: articleSvc, topicSvc: topicSvc}
}

//
// DTOs
//

// CreateArticleRequest is the JSON payload for creating an article.
// All three fields are required.
type CreateArticleRequest struct {
	Title  string `json:"title" binding:"required" example:"Running a Node App"`
	Body   string `json:"body" binding:"required" example:"This is part two of a series..."`
	Author string `json:"author" binding:"required" example:"jessjelly"`
}

// UpdateArticleRequest is the JSON payload for a partial article update.
// At least one of Title or Body must be present.
type UpdateArticleRequest struct {
	Title *string `json:"title,omitempty" example:"Running a Node App (updated)"`
	Body  *string `json:"body,omitempty"`
}

// ArticleResponse wraps a single article.
type ArticleResponse struct {
	Article *domain.Article `json:"article"`
}

// ArticlesResponse wraps a list of articles.
type ArticlesResponse struct {
	Articles []domain.Article `json:"articles"`
}

// defaultRecentLimit is how many articles /articles/recent returns when the
// client does not ask for a specific number.
const defaultRecentLimit = 3

//
// Handlers
//

// ListArticles godoc
// @ID          listArticles
// @Summary     List articles
// @Description Returns all articles ordered by an allow-listed column.
// @Tags        Articles
// @Produce     json
//
// @Param       sort_by  query  string  false  "Sort column"  Enums(author, created_at, title)  default(created_at)
// @Param       order    query  string  false  "Sort direction; takes precedence over sort"  Enums(asc, desc)  default(desc)
// @Param       sort     query  string  false  "Sort direction (legacy alias)"  Enums(asc, desc)
//
// @Success     200  {object}  handlers.ArticlesResponse
// @Failure     400  {object}  httperr.Response  "Invalid sort parameter"
// @Failure     500  {object}  httperr.Response  "Internal error"
// @Router      /articles [get]
func (h *Handlers) ListArticles(c *gin.Context) {
	articles, err := h.articleSvc.List(c.Request.Context(),
		c.Query("sort_by"), c.Query("order"), c.Query("sort"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	ok(c, http.StatusOK, ArticlesResponse{Articles: articles})
}

// RecentArticles godoc
// @ID          recentArticles
// @Summary     List most recent articles
// @Description Returns the newest articles, most recent first.
// @Tags        Articles
// @Produce     json
//
// @Param       limit  query  int  false  "Number of articles"  minimum(1)  maximum(50)  default(3)
//
// @Success     200  {object}  handlers.ArticlesResponse
// @Failure     500  {object}  httperr.Response  "Internal error"
// @Router      /articles/recent [get]
func (h *Handlers) RecentArticles(c *gin.Context) {
	limit := utils.AtoiDefault(c.Query("limit"), defaultRecentLimit)
	articles, err := h.articleSvc.Recent(c.Request.Context(), limit)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	ok(c, http.StatusOK, ArticlesResponse{Articles: articles})
}

// GetArticle godoc
// @ID          getArticle
// @Summary     Get one article
// @Tags        Articles
// @Produce     json
//
// @Param       article_id  path  int  true  "Article ID"
//
// @Success     200  {object}  handlers.ArticleResponse
// @Failure     400  {object}  httperr.Response  "Malformed id"
// @Failure     404  {object}  httperr.Response  "Article not found"
// @Router      /articles/{article_id} [get]
func (h *Handlers) GetArticle(c *gin.Context) {
	article, err := h.articleSvc.Get(c.Request.Context(), c.Param("article_id"))
	if err != nil {
		httperr.Respond(c, notFoundAsArticle(err))
		return
	}
	ok(c, http.StatusOK, ArticleResponse{Article: article})
}

// CreateArticle godoc
// @ID          createArticle
// @Summary     Create an article
// @Tags        Articles
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.CreateArticleRequest  true  "New article"
//
// @Success     201  {object}  handlers.ArticleResponse
// @Failure     400  {object}  httperr.Response  "Missing required fields"
// @Failure     401  {object}  httperr.Response  "Token verification failed"
// @Router      /articles [post]
func (h *Handlers) CreateArticle(c *gin.Context) {
	var req CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Fail(c, http.StatusBadRequest, "Invalid input")
		return
	}

	article, err := h.articleSvc.Create(c.Request.Context(), req.Title, req.Body, req.Author)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	created(c, ArticleResponse{Article: article})
}

// UpdateArticle godoc
// @ID          updateArticle
// @Summary     Update an article
// @Description Applies a partial update. Only the article's author may update it.
// @Tags        Articles
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       article_id  path  int                            true  "Article ID"
// @Param       body        body  handlers.UpdateArticleRequest  true  "Fields to change"
//
// @Success     200  {object}  httperr.Response  "Updated article"
// @Failure     400  {object}  httperr.Response  "No updatable fields"
// @Failure     401  {object}  httperr.Response  "Not the author"
// @Failure     404  {object}  httperr.Response  "Article not found"
// @Router      /articles/{article_id} [patch]
func (h *Handlers) UpdateArticle(c *gin.Context) {
	var req UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Fail(c, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Title == nil && req.Body == nil {
		httperr.Fail(c, http.StatusBadRequest, "Invalid input")
		return
	}

	article, err := h.articleSvc.Update(c.Request.Context(), c.Param("article_id"), req.Title, req.Body)
	if err != nil {
		httperr.Respond(c, notFoundAsArticle(err))
		return
	}
	ok(c, http.StatusOK, ArticleResponse{Article: article})
}

// DeleteArticle godoc
// @ID          deleteArticle
// @Summary     Delete an article
// @Description Removes an article. Only the article's author may delete it.
// @Tags        Articles
// @Produce     json
// @Security    BearerAuth
//
// @Param       article_id  path  int  true  "Article ID"
//
// @Success     204  "Deleted"
// @Failure     401  {object}  httperr.Response  "Not the author"
// @Failure     404  {object}  httperr.Response  "Article not found"
// @Router      /articles/{article_id} [delete]
func (h *Handlers) DeleteArticle(c *gin.Context) {
	if err := h.articleSvc.Delete(c.Request.Context(), c.Param("article_id")); err != nil {
		httperr.Respond(c, notFoundAsArticle(err))
		return
	}
	noContent(c)
}

// notFoundAsArticle upgrades the store's bare not-found sentinel to the
// classified article message. All other errors pass through unchanged for
// the chain to handle.
func notFoundAsArticle(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return apperr.Wrap(apperr.KindNotFound, "Article not found", err)
	}
	return err
}
