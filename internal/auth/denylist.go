package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist rejects tokens that were invalidated before their expiry
// (logout). Entries only need to live as long as the token itself.
type Denylist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) bool
}

const denylistPrefix = "denylist:"

type RedisDenylist struct {
	Client *redis.Client
}

func NewRedisDenylist(addr string) *RedisDenylist {
	return &RedisDenylist{Client: redis.NewClient(&redis.Options{Addr: addr})}
}

func (d *RedisDenylist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return d.Client.Set(ctx, denylistPrefix+token, "1", ttl).Err()
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, token string) bool {
	n, err := d.Client.Exists(ctx, denylistPrefix+token).Result()
	return err == nil && n > 0
}

// NoopDenylist is used when no redis address is configured; logout then only
// relies on the client discarding its tokens.
type NoopDenylist struct{}

func (NoopDenylist) Revoke(ctx context.Context, token string, ttl time.Duration) error { return nil }
func (NoopDenylist) IsRevoked(ctx context.Context, token string) bool                  { return false }
