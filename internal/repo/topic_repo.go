// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Topic
// model. Topics are read-mostly; the public API only lists them.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/ncnews/go-news-api/internal/domain"
)

// ListTopics returns all topics ordered by slug.
func ListTopics(ctx context.Context, db *gorm.DB) ([]domain.Topic, error) {
	var out []domain.Topic
	err := db.WithContext(ctx).Order("slug asc").Find(&out).Error
	return out, err
}

// InsertTopic persists a new topic. A duplicate slug propagates the driver's
// unique-violation error for the HTTP layer to classify.
func InsertTopic(ctx context.Context, db *gorm.DB, slug, description string) (*domain.Topic, error) {
	t := &domain.Topic{Slug: slug, Description: description}
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}
