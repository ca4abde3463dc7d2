// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Article
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When an article is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - When a caller supplies an identifier outside the table's integer key
//     space, functions return ErrInvalidID. The check lives here, at the
//     store boundary, so the ownership gate never has to guess whether a
//     lookup failed because of a bad id or a missing row.
//   - On other DB errors (constraint violations, connectivity issues), the
//     raw gorm error is propagated for the HTTP layer to classify.
package repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/ncnews/go-news-api/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist. It aliases
// gorm.ErrRecordNotFound for consistency across the service layer and
// handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrInvalidID is returned when an article identifier is not a valid
// integer key. It classifies as a 400, distinct from "no such row".
var ErrInvalidID = errors.New("invalid article id")

// ParseArticleID converts a raw path parameter into an article key.
// Non-numeric input yields ErrInvalidID.
func ParseArticleID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}

// GetArticle fetches a single article by its raw identifier. It returns
// ErrInvalidID for non-numeric identifiers and ErrNotFound when no row
// matches.
func GetArticle(ctx context.Context, db *gorm.DB, rawID string) (*domain.Article, error) {
	id, err := ParseArticleID(rawID)
	if err != nil {
		return nil, err
	}
	var a domain.Article
	if err := db.WithContext(ctx).First(&a, "article_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// ListArticles returns all articles ordered by the given column and
// direction. The column must already be validated against the sort
// allow-list; this function never interpolates unchecked input into SQL.
func ListArticles(ctx context.Context, db *gorm.DB, sortColumn string, descending bool) ([]domain.Article, error) {
	dir := "asc"
	if descending {
		dir = "desc"
	}
	var out []domain.Article
	err := db.WithContext(ctx).
		Order(sortColumn + " " + dir).
		Find(&out).Error
	return out, err
}

// RecentArticles returns the limit most recently created articles.
func RecentArticles(ctx context.Context, db *gorm.DB, limit int) ([]domain.Article, error) {
	var out []domain.Article
	err := db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// InsertArticle persists a new article and returns it with its generated
// key. CreatedAt is set to UTC here and never updated afterwards.
func InsertArticle(ctx context.Context, db *gorm.DB, title, body, author string) (*domain.Article, error) {
	a := &domain.Article{
		Title:     title,
		Body:      body,
		Author:    author,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateArticle applies the non-nil fields to the article identified by
// rawID and returns the updated row. If no rows are affected (article was
// deleted between the gate's lookup and the update), it returns ErrNotFound.
func UpdateArticle(ctx context.Context, db *gorm.DB, rawID string, title, body *string) (*domain.Article, error) {
	id, err := ParseArticleID(rawID)
	if err != nil {
		return nil, err
	}

	values := map[string]any{}
	if title != nil {
		values["title"] = *title
	}
	if body != nil {
		values["body"] = *body
	}

	res := db.WithContext(ctx).
		Model(&domain.Article{}).
		Where("article_id = ?", id).
		Updates(values)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var a domain.Article
	if err := db.WithContext(ctx).First(&a, "article_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteArticle removes the article identified by rawID. When the row is
// already gone it returns ErrNotFound, so a repeated delete of the same
// identifier surfaces as 404 rather than another 204.
func DeleteArticle(ctx context.Context, db *gorm.DB, rawID string) error {
	id, err := ParseArticleID(rawID)
	if err != nil {
		return err
	}
	res := db.WithContext(ctx).Delete(&domain.Article{}, "article_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
