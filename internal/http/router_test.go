package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ncnews/go-news-api/internal/auth"
	"github.com/ncnews/go-news-api/internal/config"
	"github.com/ncnews/go-news-api/internal/domain"
	"github.com/ncnews/go-news-api/internal/repo"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// newTestAPI stands up the full router against a real SQLite database seeded
// with the demo dataset.
func newTestAPI(t *testing.T) (*gin.Engine, *auth.Verifier) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	if err := repo.SeedDemoData(context.Background(), db); err != nil {
		t.Fatalf("SeedDemoData: %v", err)
	}

	v, err := auth.NewVerifier(testSecret)
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}

	cfg := config.Config{
		APIBasePath: "/api",
		JWTSecret:   testSecret,
		RateRPS:     1000,
		RateBurst:   1000,
	}

	r := gin.New()
	RegisterRoutes(r, db, v, cfg)
	return r, v
}

func request(t *testing.T, r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func tokenFor(t *testing.T, v *auth.Verifier, subject string) string {
	t.Helper()
	tok, err := v.Issue(subject, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return tok
}

func bodyMsg(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v (body %q)", err, w.Body.String())
	}
	return body.Msg
}

func decodeArticles(t *testing.T, w *httptest.ResponseRecorder) []domain.Article {
	t.Helper()
	var resp struct {
		Articles []domain.Article `json:"articles"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v (body %q)", err, w.Body.String())
	}
	return resp.Articles
}

func TestAPI_ListArticles_DefaultSort(t *testing.T) {
	r, _ := newTestAPI(t)

	w := request(t, r, http.MethodGet, "/api/articles", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	articles := decodeArticles(t, w)
	if len(articles) != 3 {
		t.Fatalf("got %d articles, want 3", len(articles))
	}
	// Default sort is created_at descending: newest seed article first.
	if articles[0].Author != "happyamy2016" || articles[2].Author != "jessjelly" {
		t.Fatalf("default order wrong: %s ... %s", articles[0].Author, articles[2].Author)
	}
}

func TestAPI_ListArticles_SortValidation(t *testing.T) {
	r, _ := newTestAPI(t)

	tests := []struct {
		name    string
		query   string
		wantMsg string
	}{
		{"bad sort_by", "?sort_by=votes", "Articles: Invalid sort parameter"},
		{"bad order", "?order=sideways", "Articles: Invalid sort order parameter"},
		{"bad legacy sort", "?sort=up", "Articles: Invalid sort order parameter"},
		{"sort_by checked first", "?sort_by=votes&order=sideways", "Articles: Invalid sort parameter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(t, r, http.MethodGet, "/api/articles"+tt.query, "", "")
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", w.Code, w.Body.String())
			}
			if got := bodyMsg(t, w); got != tt.wantMsg {
				t.Fatalf("msg = %q, want %q", got, tt.wantMsg)
			}
		})
	}

	// Valid ascending sort by author.
	w := request(t, r, http.MethodGet, "/api/articles?sort_by=author&order=asc", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	articles := decodeArticles(t, w)
	if articles[0].Author != "grumpy19" {
		t.Fatalf("asc author order wrong, first = %s", articles[0].Author)
	}
}

func TestAPI_RecentArticles(t *testing.T) {
	r, _ := newTestAPI(t)

	w := request(t, r, http.MethodGet, "/api/articles/recent?limit=2", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	articles := decodeArticles(t, w)
	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2", len(articles))
	}
	if articles[0].Author != "happyamy2016" {
		t.Fatalf("newest first expected, got %s", articles[0].Author)
	}
}

func TestAPI_GetArticle(t *testing.T) {
	r, _ := newTestAPI(t)

	w := request(t, r, http.MethodGet, "/api/articles/1", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"article"`) {
		t.Fatalf("expected article envelope, got %s", w.Body.String())
	}

	w = request(t, r, http.MethodGet, "/api/articles/999999", "", "")
	if w.Code != http.StatusNotFound || bodyMsg(t, w) != "Article not found" {
		t.Fatalf("missing article: status = %d msg = %q", w.Code, bodyMsg(t, w))
	}

	w = request(t, r, http.MethodGet, "/api/articles/dave", "", "")
	if w.Code != http.StatusBadRequest || bodyMsg(t, w) != "Invalid input" {
		t.Fatalf("malformed id: status = %d msg = %q", w.Code, bodyMsg(t, w))
	}
}

func TestAPI_CreateArticle(t *testing.T) {
	r, v := newTestAPI(t)

	// No token.
	w := request(t, r, http.MethodPost, "/api/articles",
		`{"title":"t","body":"b","author":"jessjelly"}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	tok := tokenFor(t, v, "jessjelly")

	// Missing field.
	w = request(t, r, http.MethodPost, "/api/articles", `{"title":"t","body":"b"}`, tok)
	if w.Code != http.StatusBadRequest || bodyMsg(t, w) != "Invalid input" {
		t.Fatalf("missing field: status = %d msg = %q", w.Code, bodyMsg(t, w))
	}

	// Success.
	w = request(t, r, http.MethodPost, "/api/articles",
		`{"title":"Brand new","body":"text","author":"jessjelly"}`, tok)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}
	var resp struct {
		Article domain.Article `json:"article"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Article.ID == 0 || resp.Article.Title != "Brand new" {
		t.Fatalf("unexpected article: %+v", resp.Article)
	}
}

func TestAPI_UpdateArticle_OwnershipAndExistence(t *testing.T) {
	r, v := newTestAPI(t)
	owner := tokenFor(t, v, "jessjelly") // seed article 1 author
	other := tokenFor(t, v, "grumpy19")

	// No token.
	w := request(t, r, http.MethodPatch, "/api/articles/1", `{"title":"x"}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want 401", w.Code)
	}

	// Wrong owner on an existing article: 401 with the ownership message.
	w = request(t, r, http.MethodPatch, "/api/articles/1", `{"title":"x"}`, other)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong owner: status = %d, want 401", w.Code)
	}
	if got := bodyMsg(t, w); got != "You are not permitted to make changes to this article" {
		t.Fatalf("wrong owner msg = %q", got)
	}

	// Nonexistent article: 404 even for a non-owner.
	w = request(t, r, http.MethodPatch, "/api/articles/999999", `{"title":"x"}`, other)
	if w.Code != http.StatusNotFound || bodyMsg(t, w) != "Article not found" {
		t.Fatalf("missing article: status = %d msg = %q", w.Code, bodyMsg(t, w))
	}

	// Malformed id: 400 from the store-boundary check.
	w = request(t, r, http.MethodPatch, "/api/articles/dave", `{"title":"x"}`, owner)
	if w.Code != http.StatusBadRequest || bodyMsg(t, w) != "Invalid input" {
		t.Fatalf("malformed id: status = %d msg = %q", w.Code, bodyMsg(t, w))
	}

	// Owner with no updatable fields: 400.
	w = request(t, r, http.MethodPatch, "/api/articles/1", `{}`, owner)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty patch: status = %d, want 400", w.Code)
	}

	// Owner succeeds; created_at survives the update.
	w = request(t, r, http.MethodPatch, "/api/articles/1", `{"title":"Renamed"}`, owner)
	if w.Code != http.StatusOK {
		t.Fatalf("owner patch: status = %d (body %s)", w.Code, w.Body.String())
	}
	var resp struct {
		Article domain.Article `json:"article"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Article.Title != "Renamed" || resp.Article.Author != "jessjelly" {
		t.Fatalf("unexpected article after patch: %+v", resp.Article)
	}
	if resp.Article.CreatedAt.IsZero() {
		t.Fatalf("created_at lost on update")
	}
}

func TestAPI_DeleteArticle_SecondDeleteIs404(t *testing.T) {
	r, v := newTestAPI(t)
	owner := tokenFor(t, v, "jessjelly")

	w := request(t, r, http.MethodDelete, "/api/articles/1", "", owner)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: status = %d, want 204 (body %s)", w.Code, w.Body.String())
	}

	// The article is gone, so the ownership gate reports 404 now.
	w = request(t, r, http.MethodDelete, "/api/articles/1", "", owner)
	if w.Code != http.StatusNotFound || bodyMsg(t, w) != "Article not found" {
		t.Fatalf("second delete: status = %d msg = %q", w.Code, bodyMsg(t, w))
	}
}

func TestAPI_Topics(t *testing.T) {
	r, _ := newTestAPI(t)

	w := request(t, r, http.MethodGet, "/api/topics", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Topics []struct {
			Slug        string `json:"slug"`
			DisplayName string `json:"display_name"`
		} `json:"topics"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(resp.Topics) != 3 {
		t.Fatalf("got %d topics, want 3", len(resp.Topics))
	}
	if resp.Topics[0].Slug != "coding" || resp.Topics[0].DisplayName != "Coding" {
		t.Fatalf("unexpected first topic: %+v", resp.Topics[0])
	}
}

func TestAPI_UnknownPath(t *testing.T) {
	r, _ := newTestAPI(t)

	w := request(t, r, http.MethodGet, "/api/nonsense", "", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if got := bodyMsg(t, w); got != "Path not found!" {
		t.Fatalf("msg = %q, want %q", got, "Path not found!")
	}

	// Unknown method on a known path falls through to the same handler.
	w = request(t, r, http.MethodPut, "/api/articles/1", `{}`, "")
	if w.Code != http.StatusNotFound || bodyMsg(t, w) != "Path not found!" {
		t.Fatalf("unknown method: status = %d msg = %q", w.Code, bodyMsg(t, w))
	}
}

func TestAPI_ExpiredTokenIs401(t *testing.T) {
	r, v := newTestAPI(t)

	tok, err := v.Issue("jessjelly", -time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	w := request(t, r, http.MethodPost, "/api/articles",
		`{"title":"t","body":"b","author":"jessjelly"}`, tok)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 (body %s)", w.Code, w.Body.String())
	}
	if got := bodyMsg(t, w); !strings.HasPrefix(got, "Token verification failed:") {
		t.Fatalf("msg = %q", got)
	}
}

func TestAPI_Health(t *testing.T) {
	r, _ := newTestAPI(t)

	w := request(t, r, http.MethodGet, "/health", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
