package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"travelhealth/internal/model"
)

// ResumeCache handles Redis operations for per-user interview resumption
// state. Records survive process restarts; there is no TTL because a stale
// cursor is harmless and an abandoned interview should stay resumable.
type ResumeCache interface {
	Get(ctx context.Context, userID string) (*model.ResumeState, error)
	Set(ctx context.Context, userID string, state *model.ResumeState) error
	Delete(ctx context.Context, userID string) error
}

type resumeCache struct {
	client *redis.Client
}

// NewResumeCache creates a new resume cache
func NewResumeCache(client *redis.Client) ResumeCache {
	return &resumeCache{
		client: client,
	}
}

func (c *resumeCache) key(userID string) string {
	return "interview:resume:" + userID
}

func (c *resumeCache) Get(ctx context.Context, userID string) (*model.ResumeState, error) {
	data, err := c.client.Get(ctx, c.key(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var state model.ResumeState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *resumeCache) Set(ctx context.Context, userID string, state *model.ResumeState) error {
	state.UpdatedAt = time.Now()
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(userID), data, 0).Err()
}

func (c *resumeCache) Delete(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}
