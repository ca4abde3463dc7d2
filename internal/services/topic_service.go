// Package services – TopicService
//
// Topics are read-only through the public API. Besides listing, this file
// derives a human-readable display name from each topic slug.
package services

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/ncnews/go-news-api/internal/domain"
)

// TopicRepo defines the repository contract required by TopicService.
type TopicRepo interface {
	// ListTopics returns all topics ordered by slug.
	ListTopics(ctx context.Context, db *gorm.DB) ([]domain.Topic, error)
}

// TopicService lists topics.
type TopicService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the topic repository used by this service.
	Repo TopicRepo
}

// List returns all topics.
func (s *TopicService) List(ctx context.Context) ([]domain.Topic, error) {
	return s.Repo.ListTopics(ctx, s.DB)
}

var titleCaser = cases.Title(language.English)

// TopicDisplayName converts a slug like "premier-league" into a display
// name like "Premier League".
func TopicDisplayName(slug string) string {
	return titleCaser.String(strings.ReplaceAll(slug, "-", " "))
}
