package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TranslationCache caches translated display strings so repeated lookups of
// the same text and target language skip the backend call.
type TranslationCache interface {
	Get(ctx context.Context, text, lang string) (string, error)
	Set(ctx context.Context, text, lang, translated string) error
}

type translationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTranslationCache creates a new translation cache
func NewTranslationCache(client *redis.Client) TranslationCache {
	return &translationCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *translationCache) key(text, lang string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("translate:%s:%s", lang, hex.EncodeToString(sum[:8]))
}

// Get returns the cached translation, or "" on a miss
func (c *translationCache) Get(ctx context.Context, text, lang string) (string, error) {
	val, err := c.client.Get(ctx, c.key(text, lang)).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (c *translationCache) Set(ctx context.Context, text, lang, translated string) error {
	return c.client.Set(ctx, c.key(text, lang), translated, c.ttl).Err()
}
