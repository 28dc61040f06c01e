package cache

import (
	"context"
	"time"

	"rentpay-service/config"

	"github.com/redis/go-redis/v9"
)

const (
	verifiedNamespace = "merchant_verified"
	verifiedTTL       = time.Hour
)

// VerificationCache remembers merchant accounts the processor has confirmed,
// so repeated linking does not re-hit the processor. A nil cache is valid and
// caches nothing; the service runs fine without redis.
type VerificationCache struct {
	client *redis.Client
}

func NewVerificationCache(cfg config.RedisConfig) *VerificationCache {
	if !cfg.Enabled {
		return nil
	}

	return &VerificationCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
		}),
	}
}

func (c *VerificationCache) MarkVerified(ctx context.Context, accountID string) {
	if c == nil {
		return
	}
	// Cache write failures are ignored; the cache is an optimization only.
	_ = c.client.Set(ctx, verifiedNamespace+":"+accountID, "1", verifiedTTL).Err()
}

func (c *VerificationCache) IsVerified(ctx context.Context, accountID string) bool {
	if c == nil {
		return false
	}
	_, err := c.client.Get(ctx, verifiedNamespace+":"+accountID).Result()
	return err == nil
}
