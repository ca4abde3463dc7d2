package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ncnews/go-news-api/internal/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newVerifier(t *testing.T) *auth.Verifier {
	t.Helper()
	v, err := auth.NewVerifier(testSecret)
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}
	return v
}

func protectedRouter(t *testing.T, v TokenVerifier) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/protected", RequireToken(v), func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			t.Fatalf("claims missing after successful gate")
		}
		c.JSON(http.StatusOK, gin.H{"sub": claims.Subject})
	})
	return r
}

func msgOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v (body %q)", err, w.Body.String())
	}
	return body.Msg
}

func TestRequireToken_MissingHeader(t *testing.T) {
	r := protectedRouter(t, newVerifier(t))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/protected", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if got := msgOf(t, w); !strings.HasPrefix(got, "Token verification failed:") {
		t.Fatalf("msg = %q", got)
	}
}

func TestRequireToken_MalformedHeader(t *testing.T) {
	r := protectedRouter(t, newVerifier(t))

	for _, header := range []string{"Basic abc", "bearer lowercase", "Bearer"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/protected", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status = %d, want 401", header, w.Code)
		}
	}
}

func TestRequireToken_InvalidAndExpiredTokens(t *testing.T) {
	v := newVerifier(t)
	r := protectedRouter(t, v)

	other, err := auth.NewVerifier(strings.Repeat("k", 32))
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}
	wrongKey, err := other.Issue("jessjelly", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"wrong key", wrongKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			r.ServeHTTP(w, req)

			// Never 500 — any verifier failure is authentication failure.
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
		})
	}
}

// panickyVerifier simulates a verifier returning an unrecognized error shape.
type oddErrVerifier struct{}

func (oddErrVerifier) Verify(string) (*auth.Claims, error) {
	return nil, errors.New("keystore unreachable: dial tcp 10.0.0.1:443")
}

func TestRequireToken_UnknownVerifierErrorIs401NotLeaked(t *testing.T) {
	r := protectedRouter(t, oddErrVerifier{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if strings.Contains(w.Body.String(), "keystore") {
		t.Fatalf("verifier internals leaked: %s", w.Body.String())
	}
	if got := msgOf(t, w); got != "Token verification failed: invalid token" {
		t.Fatalf("msg = %q", got)
	}
}

func TestRequireToken_Success(t *testing.T) {
	v := newVerifier(t)
	r := protectedRouter(t, v)

	tok, err := v.Issue("jessjelly", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "jessjelly") {
		t.Fatalf("expected subject in response, got %s", w.Body.String())
	}
}
