package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/artisanhub/internal/http/response"
	"github.com/artisanhub/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc derives the counter key of a request
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule fixed window: at most MaxRequests per WindowSeconds per key.
// Message may contain one %d for the seconds left.
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	Message       string
}

func (r RateLimitRule) active() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

func (r RateLimitRule) key(raw string) string {
	if r.Prefix == "" {
		return raw
	}
	return r.Prefix + ":" + raw
}

func (r RateLimitRule) message(wait int) string {
	format := strings.TrimSpace(r.Message)
	if format == "" {
		format = "Too many requests, retry in %d seconds"
	}
	if !strings.Contains(format, "%d") {
		return format
	}
	return fmt.Sprintf(format, wait)
}

// windowHit counter state after one request
type windowHit struct {
	count int64
	ttl   int64
}

// retryAfter seconds until the window resets, never below one
func (h windowHit) retryAfter(rule RateLimitRule) int {
	if h.ttl > 0 {
		return int(h.ttl)
	}
	return max(rule.WindowSeconds, 1)
}

var errBadLimiterReply = errors.New("unexpected rate limiter reply")

var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("TTL", KEYS[1])}
`)

func countHit(ctx context.Context, client redis.Scripter, key string, window int) (windowHit, error) {
	reply, err := rateLimitScript.Run(ctx, client, []string{key}, window).Int64Slice()
	if err != nil {
		return windowHit{}, err
	}
	if len(reply) < 2 {
		return windowHit{}, errBadLimiterReply
	}
	return windowHit{count: reply[0], ttl: reply[1]}, nil
}

// RateLimitMiddleware redis-backed throttle; a nil client or an empty rule disables it.
// Redis errors fail closed.
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !rule.active() {
			c.Next()
			return
		}

		raw := ""
		if keyFunc != nil {
			raw = strings.TrimSpace(keyFunc(c))
		}
		if raw == "" {
			raw = c.ClientIP()
		}

		hit, err := countHit(c.Request.Context(), client, rule.key(raw), rule.WindowSeconds)
		if err != nil {
			logger.Warnw("rate_limit_check_failed", "prefix", rule.Prefix, "error", err)
			response.Error(c, response.CodeInternal, "Rate limiter unavailable")
			c.Abort()
			return
		}

		remaining := max(int64(rule.MaxRequests)-hit.count, 0)
		c.Header("X-RateLimit-Limit", strconv.Itoa(rule.MaxRequests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		if hit.count > int64(rule.MaxRequests) {
			wait := hit.retryAfter(rule)
			c.Header("Retry-After", strconv.Itoa(wait))
			response.TooManyRequests(c, rule.message(wait))
			c.Abort()
			return
		}
		c.Next()
	}
}

// KeyByIP client address
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField lowercased JSON body field plus client address; the body is restored for the handler
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(peekJSONString(c, field))
		if value == "" {
			return c.ClientIP()
		}
		return value + "|" + c.ClientIP()
	}
}

func peekJSONString(c *gin.Context, field string) string {
	if c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || len(body) == 0 {
		return ""
	}
	var payload map[string]json.RawMessage
	if json.Unmarshal(body, &payload) != nil {
		return ""
	}
	var value string
	if json.Unmarshal(payload[field], &value) != nil {
		return ""
	}
	return strings.TrimSpace(value)
}
