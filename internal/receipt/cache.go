package receipt

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "receipt:scan:"

// Cache stores extraction results in Redis keyed by the image's SHA-256, so
// scanning the same photo twice does not call the extractor again.
// A nil *Cache is valid and never hits.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache creates a cache. A zero ttl keeps entries forever.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// CacheKey returns the Redis key for an image.
func CacheKey(image []byte) string {
	sum := sha256.Sum256(image)
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached extraction for image and whether it was found.
func (c *Cache) Get(ctx context.Context, image []byte) (ExtractedData, bool, error) {
	if c == nil || c.client == nil {
		return ExtractedData{}, false, nil
	}
	raw, err := c.client.Get(ctx, CacheKey(image)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ExtractedData{}, false, nil
	}
	if err != nil {
		return ExtractedData{}, false, fmt.Errorf("failed to read scan cache: %w", err)
	}

	var data ExtractedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return ExtractedData{}, false, fmt.Errorf("failed to decode cached scan: %w", err)
	}
	return data, true, nil
}

// Set stores the extraction for image.
func (c *Cache) Set(ctx context.Context, image []byte, data ExtractedData) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode scan: %w", err)
	}
	if err := c.client.Set(ctx, CacheKey(image), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write scan cache: %w", err)
	}
	return nil
}
