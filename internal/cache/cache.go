// Package cache is a Redis read-through cache for computed forecasts and ATS results.
// A nil *Cache is valid and behaves as an always-empty cache.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/climb/internal/metrics"
	"github.com/jonathan/climb/internal/types"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL is used when no TTL is configured.
const DefaultTTL = 10 * time.Minute

const keyPrefix = "climb:"

// Namespaces used in keys and metrics labels.
const (
	NamespaceForecast = "forecast"
	NamespaceATS      = "ats"
)

// Cache wraps a Redis client with JSON helpers.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New wraps an existing client.
func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// Connect parses a redis:// URL, opens a client and pings it.
func Connect(ctx context.Context, redisURL string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return New(client, ttl), nil
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// GetJSON loads key into dst. It reports false on a miss.
func (c *Cache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	if c == nil {
		return false, nil
	}
	namespace := namespaceOf(key)
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheLookups.WithLabelValues(namespace, "miss").Inc()
		return false, nil
	}
	if err != nil {
		metrics.CacheLookups.WithLabelValues(namespace, "error").Inc()
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(val, dst); err != nil {
		// treat a corrupt entry as a miss; the caller will overwrite it
		metrics.CacheLookups.WithLabelValues(namespace, "miss").Inc()
		return false, nil
	}
	metrics.CacheLookups.WithLabelValues(namespace, "hit").Inc()
	return true, nil
}

// SetJSON stores v under key with the cache TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, v any) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache marshal %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Delete removes keys.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// MetricsKey is the key for a user's derived forecast metrics.
func MetricsKey(userID uuid.UUID) string {
	return keyPrefix + NamespaceForecast + ":metrics:" + userID.String()
}

// ATSKey is the key for a resume's score against a specific list of job terms.
// Term order and spelling are part of the key, since both shape the result.
// Surrounding whitespace and blank terms are not.
func ATSKey(resumeID uuid.UUID, job *types.JobRequirements) string {
	h := sha256.New()
	if job != nil {
		for i, list := range [][]string{job.Keywords, job.Requirements} {
			if i > 0 {
				h.Write([]byte{1})
			}
			for _, term := range list {
				if term = strings.TrimSpace(term); term != "" {
					h.Write([]byte(term))
					h.Write([]byte{0})
				}
			}
		}
	}
	return keyPrefix + NamespaceATS + ":" + resumeID.String() + ":" + hex.EncodeToString(h.Sum(nil)[:8])
}

// namespaceOf returns the metrics label for key: its namespace segment when
// known, otherwise "other".
func namespaceOf(key string) string {
	rest, ok := strings.CutPrefix(key, keyPrefix)
	if !ok {
		return "other"
	}
	ns, _, _ := strings.Cut(rest, ":")
	switch ns {
	case NamespaceForecast, NamespaceATS:
		return ns
	default:
		return "other"
	}
}
