package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newIdemRouter(lookup IdempotencyLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// simulate Auth having run
	r.POST("/cards",
		func(c *gin.Context) { c.Set(ctxKeyUserID, "u1") },
		IdempotencyValidator(IdempotencyOptions{MaxLen: 32}, lookup),
		func(c *gin.Context) {
			key, _ := GetIdempotencyKey(c)
			c.JSON(http.StatusOK, gin.H{"key": key, "replay": IsReplay(c)})
		})
	return r
}

func TestIdempotencyValidator_NoHeaderIsNoop(t *testing.T) {
	r := newIdemRouter(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cards", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestIdempotencyValidator_RejectsBadKeys(t *testing.T) {
	r := newIdemRouter(nil)

	for _, key := range []string{
		"has spaces",
		"bad/slash",
		"0123456789012345678901234567890123456789", // over MaxLen 32
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/cards", nil)
		req.Header.Set(HeaderIdempotencyKey, key)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("key %q: status = %d, want 400", key, w.Code)
		}
	}
}

func TestIdempotencyValidator_MarksReplay(t *testing.T) {
	lookup := func(ctx context.Context, userID, key string, now time.Time) (bool, error) {
		return userID == "u1" && key == "seen-before", nil
	}
	r := newIdemRouter(lookup)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cards", nil)
	req.Header.Set(HeaderIdempotencyKey, "seen-before")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); !strings.Contains(body, `"replay":true`) {
		t.Fatalf("expected replay flag, body: %s", body)
	}

	// fresh key is stashed but not a replay
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/cards", nil)
	req.Header.Set(HeaderIdempotencyKey, "fresh-key")
	r.ServeHTTP(w, req)
	if body := w.Body.String(); !strings.Contains(body, `"key":"fresh-key"`) || !strings.Contains(body, `"replay":false`) {
		t.Fatalf("unexpected body: %s", body)
	}
}
