// Package domain defines the persistence models for articles and topics.
// These types are mapped with GORM and form the core data layer of the
// news API.
package domain

import (
	"time"
)

// Article represents a published news article. Each article records its
// author (the subject string of the JWT that created it), which is the
// value the ownership check compares against on mutating requests.
//
// Fields:
//   - ID: auto-incrementing primary key, exposed as article_id.
//   - Title: human-readable headline.
//   - Body: full article text.
//   - Author: username of the owner; compared against the token subject.
//   - CreatedAt: set once on creation, never updated afterwards.
type Article struct {
	ID        int64     `json:"article_id" gorm:"column:article_id;primaryKey;autoIncrement"`
	Title     string    `json:"title"      gorm:"type:varchar(255);not null"`
	Body      string    `json:"body"       gorm:"type:text;not null"`
	Author    string    `json:"author"     gorm:"type:varchar(64);not null;index:idx_article_author"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_article_created;<-:create"`
}

// TableName returns the database table name for Article.
func (Article) TableName() string { return "articles" }

// Topic represents a news topic under which articles can be grouped.
// Topics are read-only through the public API.
type Topic struct {
	Slug        string `json:"slug"        gorm:"type:varchar(64);primaryKey"`
	Description string `json:"description" gorm:"type:text;not null"`
}

// TableName returns the database table name for Topic.
func (Topic) TableName() string { return "topics" }
