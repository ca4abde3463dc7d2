// Package services – ArticleService
//
// This file implements the ArticleService, which coordinates repository
// operations for listing, reading, creating, updating, and deleting
// articles, and owns validation of the list endpoint's sort parameters.
//
// Sort validation happens before any store query executes: an invalid
// sort key or direction yields a classified 400 and no SQL is issued.
package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/ncnews/go-news-api/internal/apperr"
	"github.com/ncnews/go-news-api/internal/domain"
)

// sortColumns is the allow-list of columns the articles list endpoint may
// sort by. Anything else is rejected before reaching the database.
var sortColumns = map[string]struct{}{
	"author":     {},
	"created_at": {},
	"title":      {},
}

// ArticleRepo defines the repository contract required by ArticleService.
// Implementations are responsible for persistence of article rows and for
// the identifier format check at the store boundary.
type ArticleRepo interface {
	// GetArticle fetches one article by its raw identifier.
	GetArticle(ctx context.Context, db *gorm.DB, rawID string) (*domain.Article, error)

	// ListArticles returns all articles ordered by a validated column.
	ListArticles(ctx context.Context, db *gorm.DB, sortColumn string, descending bool) ([]domain.Article, error)

	// RecentArticles returns the newest articles up to limit.
	RecentArticles(ctx context.Context, db *gorm.DB, limit int) ([]domain.Article, error)

	// InsertArticle persists a new article.
	InsertArticle(ctx context.Context, db *gorm.DB, title, body, author string) (*domain.Article, error)

	// UpdateArticle applies non-nil fields to an article.
	UpdateArticle(ctx context.Context, db *gorm.DB, rawID string, title, body *string) (*domain.Article, error)

	// DeleteArticle removes an article.
	DeleteArticle(ctx context.Context, db *gorm.DB, rawID string) error
}

// ArticleService provides article-level operations on top of ArticleRepo.
type ArticleService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the article repository used by this service.
	Repo ArticleRepo
}

// NewArticleService constructs an ArticleService.
func NewArticleService(db *gorm.DB, r ArticleRepo) *ArticleService {
	return &ArticleService{DB: db, Repo: r}
}

// ValidateSort checks the list endpoint's sort parameters and resolves them
// to a column and direction.
//
// sortBy must come from the allow-list (author, created_at, title); empty
// defaults to created_at. Direction is taken from order when present, then
// from sort, and defaults to descending. Both direction parameters accept
// asc/desc case-insensitively.
func ValidateSort(sortBy, order, sort string) (column string, descending bool, err error) {
	column = "created_at"
	if sortBy != "" {
		if _, ok := sortColumns[sortBy]; !ok {
			return "", false, apperr.BadRequest("Articles: Invalid sort parameter")
		}
		column = sortBy
	}

	dir := order
	if dir == "" {
		dir = sort
	}
	switch strings.ToLower(dir) {
	case "", "desc":
		descending = true
	case "asc":
		descending = false
	default:
		return "", false, apperr.BadRequest("Articles: Invalid sort order parameter")
	}
	return column, descending, nil
}

// List validates the sort parameters and returns the ordered articles.
// No query runs when validation fails.
func (s *ArticleService) List(ctx context.Context, sortBy, order, sort string) ([]domain.Article, error) {
	column, descending, err := ValidateSort(sortBy, order, sort)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListArticles(ctx, s.DB, column, descending)
}

// Recent returns the limit most recently created articles. Limits outside
// [1, 50] are clamped.
func (s *ArticleService) Recent(ctx context.Context, limit int) ([]domain.Article, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > 50 {
		limit = 50
	}
	return s.Repo.RecentArticles(ctx, s.DB, limit)
}

// Get fetches one article by its raw identifier. Repository errors
// (invalid id, not found) pass through for the HTTP layer to classify.
func (s *ArticleService) Get(ctx context.Context, rawID string) (*domain.Article, error) {
	return s.Repo.GetArticle(ctx, s.DB, rawID)
}

// Create persists a new article.
func (s *ArticleService) Create(ctx context.Context, title, body, author string) (*domain.Article, error) {
	return s.Repo.InsertArticle(ctx, s.DB, title, body, author)
}

// Update applies the provided fields to an article. At least one field must
// be set; the handler enforces that before calling.
func (s *ArticleService) Update(ctx context.Context, rawID string, title, body *string) (*domain.Article, error) {
	return s.Repo.UpdateArticle(ctx, s.DB, rawID, title, body)
}

// Delete removes an article. A repeat delete of the same identifier returns
// the repository's not-found error.
func (s *ArticleService) Delete(ctx context.Context, rawID string) error {
	return s.Repo.DeleteArticle(ctx, s.DB, rawID)
}
