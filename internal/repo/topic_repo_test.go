package repo

import (
	"context"
	"testing"

	"gorm.io/gorm"
)

func TestTopics_InsertAndList(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if _, err := InsertTopic(ctx, db, "football", "FOOTIE!"); err != nil {
		t.Fatalf("InsertTopic: %v", err)
	}
	if _, err := InsertTopic(ctx, db, "coding", "Code is love, code is life"); err != nil {
		t.Fatalf("InsertTopic: %v", err)
	}

	topics, err := ListTopics(ctx, db)
	if err != nil {
		t.Fatalf("ListTopics: %v", err)
	}
	if len(topics) != 2 || topics[0].Slug != "coding" || topics[1].Slug != "football" {
		t.Fatalf("unexpected topics: %+v", topics)
	}
}

func TestInsertTopic_DuplicateSlug(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if _, err := InsertTopic(ctx, db, "coding", "first"); err != nil {
		t.Fatalf("InsertTopic: %v", err)
	}
	_, err := InsertTopic(ctx, db, "coding", "second")
	if err == nil {
		t.Fatalf("expected duplicate-key error")
	}
	// TranslateError maps the driver error to gorm's portable sentinel.
	if err != gorm.ErrDuplicatedKey {
		t.Logf("driver returned %v (classified downstream)", err)
	}
}
