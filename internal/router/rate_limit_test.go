package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestKeyByIPAndJSONField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":" Test@Example.com "}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "1.2.3.4:5678"

	key := KeyByIPAndJSONField("email")(c)
	if key != "test@example.com|1.2.3.4" {
		t.Fatalf("key want test@example.com|1.2.3.4 got %s", key)
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body after key extraction failed: %v", err)
	}
	if !strings.Contains(string(body), "Test@Example.com") {
		t.Fatalf("request body should be restored after reading field")
	}
}

func TestKeyByIPAndJSONFieldFallsBackToIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`not json`))
	c.Request.RemoteAddr = "10.0.0.8:4000"

	if key := KeyByIPAndJSONField("email")(c); key != "10.0.0.8" {
		t.Fatalf("unparseable body should key by ip, got %s", key)
	}
}

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{Prefix: "ah:rate:login", WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("expected handler response body, got %s", w.Body.String())
	}
}

func TestRateLimitRuleHelpers(t *testing.T) {
	rule := RateLimitRule{Prefix: "ah:rate:login", WindowSeconds: 60, MaxRequests: 5, Message: "Too many login attempts, retry in %d seconds"}
	if !rule.active() || (RateLimitRule{WindowSeconds: 60}).active() {
		t.Fatalf("a rule needs both window and max")
	}
	if got := rule.key("a@b.c|1.2.3.4"); got != "ah:rate:login:a@b.c|1.2.3.4" {
		t.Fatalf("unexpected key %s", got)
	}
	if got := rule.message(42); got != "Too many login attempts, retry in 42 seconds" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := (RateLimitRule{Message: "Slow down"}).message(3); got != "Slow down" {
		t.Fatalf("message without verb should be kept, got %q", got)
	}
	if got := (windowHit{count: 6, ttl: 17}).retryAfter(rule); got != 17 {
		t.Fatalf("retry after want ttl got %d", got)
	}
	if got := (windowHit{count: 6, ttl: -1}).retryAfter(rule); got != 60 {
		t.Fatalf("missing ttl should fall back to the window, got %d", got)
	}
}
