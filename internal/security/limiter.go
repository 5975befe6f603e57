package security

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/micorpx/acquisitions/internal/config"
	"github.com/micorpx/acquisitions/internal/domain"
)

// RateLimiter counts requests per caller key inside fixed windows stored
// in redis. INCR is atomic, so concurrent requests racing on the same
// window cannot lose updates; the first hit in a window sets the expiry.
type RateLimiter struct {
	client   *redis.Client
	window   time.Duration
	ceilings map[domain.RateTier]int
}

// NewRateLimiter builds a limiter with role-tiered ceilings.
func NewRateLimiter(client *redis.Client, cfg config.SecurityConfig) *RateLimiter {
	return &RateLimiter{
		client: client,
		window: cfg.Window(),
		ceilings: map[domain.RateTier]int{
			domain.TierGuest: cfg.GuestCeiling,
			domain.TierUser:  cfg.UserCeiling,
			domain.TierAdmin: cfg.AdminCeiling,
		},
	}
}

// Ceiling returns the request ceiling for the tier.
func (l *RateLimiter) Ceiling(tier domain.RateTier) int {
	return l.ceilings[tier]
}

// Check increments the caller's counter for the current window and denies
// once the tier ceiling is exceeded. A redis failure is returned as an
// error so the shield can fail closed.
func (l *RateLimiter) Check(ctx context.Context, tier domain.RateTier, callerKey string) (Decision, error) {
	windowStart := time.Now().Truncate(l.window).Unix()
	key := "shield:rl:" + string(tier) + ":" + callerKey + ":" + strconv.FormatInt(windowStart, 10)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limiter incr: %w", err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return Decision{}, fmt.Errorf("rate limiter expire: %w", err)
		}
	}

	if count > int64(l.ceilings[tier]) {
		return deny(ReasonRateLimit), nil
	}
	return allow(), nil
}
