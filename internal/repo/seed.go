// Dev seed data. Mirrors the demo dataset the API was originally developed
// against so a fresh local database has something to serve.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ncnews/go-news-api/internal/domain"
)

// SeedDemoData inserts a small set of topics and articles when the articles
// table is empty. It is intended for local development only and is a no-op
// on a populated database.
func SeedDemoData(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.Article{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	topics := []domain.Topic{
		{Slug: "coding", Description: "Code is love, code is life"},
		{Slug: "cooking", Description: "Hey good looking, what you got cooking?"},
		{Slug: "football", Description: "FOOTIE!"},
	}
	for _, t := range topics {
		if err := db.WithContext(ctx).Create(&t).Error; err != nil {
			return err
		}
	}

	base := time.Date(2020, time.July, 9, 20, 11, 0, 0, time.UTC)
	articles := []domain.Article{
		{
			Title:     "Running a Node App",
			Body:      "This is part two of a series on how to get up and running with Systemd and Node.js.",
			Author:    "jessjelly",
			CreatedAt: base,
		},
		{
			Title:     "Thanksgiving Drinks for Everyone",
			Body:      "Thanksgiving is a foodie's favourite holiday.",
			Author:    "grumpy19",
			CreatedAt: base.Add(24 * time.Hour),
		},
		{
			Title:     "22 Amazing open source React projects",
			Body:      "This is a collection of open source apps built with React.JS library.",
			Author:    "happyamy2016",
			CreatedAt: base.Add(48 * time.Hour),
		},
	}
	for _, a := range articles {
		if err := db.WithContext(ctx).Create(&a).Error; err != nil {
			return err
		}
	}
	return nil
}
