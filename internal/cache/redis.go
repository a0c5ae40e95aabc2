package cache

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/artisanhub/internal/config"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "ah"

// store a client plus the namespace every key lives under
type store struct {
	client *redis.Client
	prefix string
}

func (s *store) key(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.prefix
	}
	return s.prefix + ":" + raw
}

func (s *store) keys(raw []string) []string {
	out := make([]string, len(raw))
	for i, k := range raw {
		out[i] = s.key(k)
	}
	return out
}

var current atomic.Pointer[store]

func init() {
	current.Store(&store{prefix: defaultPrefix})
}

// live the installed store when it has a client, nil otherwise
func live() *store {
	if s := current.Load(); s.client != nil {
		return s
	}
	return nil
}

// InitRedis builds the shared client; a disabled config turns every helper into a no-op
func InitRedis(cfg *config.RedisConfig) error {
	if cfg == nil || !cfg.Enabled {
		UseClient(nil, "")
		return nil
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	UseClient(redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(host, strconv.Itoa(port)),
		Password: cfg.Password,
		DB:       cfg.DB,
	}), cfg.Prefix)
	return nil
}

// UseClient installs an existing client (nil disables caching)
func UseClient(client *redis.Client, prefix string) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
	current.Store(&store{client: client, prefix: prefix})
}

// KeyPrefix namespace shared by every redis key the process writes
func KeyPrefix() string {
	return current.Load().prefix
}

func Ping(ctx context.Context) error {
	if s := live(); s != nil {
		return s.client.Ping(ctx).Err()
	}
	return nil
}

func Close() error {
	s := live()
	if s == nil {
		return nil
	}
	UseClient(nil, s.prefix)
	return s.client.Close()
}

func Enabled() bool {
	return live() != nil
}

// Client the shared client, nil when redis is off
func Client() *redis.Client {
	if s := live(); s != nil {
		return s.client
	}
	return nil
}

// GetJSON hit is false on a miss or when redis is off
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	s := live()
	if s == nil {
		return false, nil
	}
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	s := live()
	if s == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(key), payload, ttl).Err()
}

func Del(ctx context.Context, keys ...string) error {
	s := live()
	if s == nil || len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, s.keys(keys)...).Err()
}

// delMatching removes every key under pattern, walked with SCAN
func delMatching(ctx context.Context, pattern string) error {
	s := live()
	if s == nil {
		return nil
	}
	var found []string
	iter := s.client.Scan(ctx, 0, s.key(pattern), 100).Iterator()
	for iter.Next(ctx) {
		found = append(found, iter.Val())
	}
	if err := iter.Err(); err != nil || len(found) == 0 {
		return err
	}
	return s.client.Del(ctx, found...).Err()
}
