package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTableNames(t *testing.T) {
	if got := (Article{}).TableName(); got != "articles" {
		t.Fatalf("Article table = %q, want articles", got)
	}
	if got := (Topic{}).TableName(); got != "topics" {
		t.Fatalf("Topic table = %q, want topics", got)
	}
}

func TestArticle_JSONShape(t *testing.T) {
	a := Article{
		ID:        7,
		Title:     "Running a Node App",
		Body:      "body",
		Author:    "jessjelly",
		CreatedAt: time.Date(2020, time.July, 9, 20, 11, 0, 0, time.UTC),
	}
	raw, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// The wire name for the primary key is article_id, never id.
	if _, ok := m["article_id"]; !ok {
		t.Fatalf("article_id missing from JSON: %s", raw)
	}
	if _, ok := m["id"]; ok {
		t.Fatalf("unexpected id field in JSON: %s", raw)
	}
	for _, k := range []string{"title", "body", "author", "created_at"} {
		if _, ok := m[k]; !ok {
			t.Fatalf("%s missing from JSON: %s", k, raw)
		}
	}
}
