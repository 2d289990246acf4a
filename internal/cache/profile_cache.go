package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vetsupport/internal/model"
)

// ProfileCache handles Redis operations for the latest known risk level,
// so the navigation chrome can read it without a Mongo round trip.
type ProfileCache interface {
	SetRiskLevel(ctx context.Context, veteranID string, level model.RiskLevel) error
	GetRiskLevel(ctx context.Context, veteranID string) (model.RiskLevel, error)
}

type profileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProfileCache creates a new profile cache
func NewProfileCache(client *redis.Client) ProfileCache {
	return &profileCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *profileCache) riskKey(veteranID string) string {
	return fmt.Sprintf("vet:%s:risk", veteranID)
}

func (c *profileCache) SetRiskLevel(ctx context.Context, veteranID string, level model.RiskLevel) error {
	return c.client.Set(ctx, c.riskKey(veteranID), string(level), c.ttl).Err()
}

func (c *profileCache) GetRiskLevel(ctx context.Context, veteranID string) (model.RiskLevel, error) {
	val, err := c.client.Get(ctx, c.riskKey(veteranID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return model.RiskLevel(val), nil
}
