package middleware

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/futig/ragdesk/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
)

const (
	// inactive users are forgotten after this long
	rateLimitIdleTTL = time.Hour
	rateLimitCleanup = 10 * time.Minute
	rateWarnInterval = 30 * time.Second
)

// userLimit tracks rate limit state for a single user
type userLimit struct {
	mu            sync.Mutex
	tokens        float64
	lastRefill    time.Time
	lastWarningAt time.Time
}

// RateLimiterMiddleware implements token bucket rate limiting per user
type RateLimiterMiddleware struct {
	mu         sync.Mutex
	limits     *cache.Cache
	maxTokens  float64
	refillRate float64 // tokens per second
	sender     Sender
	now        func() time.Time
}

// NewRateLimiterMiddleware creates a limiter allowing requestsPerMinute
// messages per user, with bursts up to the same number
func NewRateLimiterMiddleware(requestsPerMinute int, sender Sender) *RateLimiterMiddleware {
	return &RateLimiterMiddleware{
		limits:     cache.New(rateLimitIdleTTL, rateLimitCleanup),
		maxTokens:  float64(requestsPerMinute),
		refillRate: float64(requestsPerMinute) / 60.0,
		sender:     sender,
		now:        time.Now,
	}
}

// Handle drops the update when its user is over the limit
func (rl *RateLimiterMiddleware) Handle(ctx context.Context, update tgbotapi.Update, next Next) {
	user := userID(update)
	if user == 0 {
		next(ctx, update)
		return
	}

	allowed, warn := rl.allow(user)
	if !allowed {
		ctxzap.Warn(ctx, "rate limit exceeded")
		if warn {
			_ = rl.sender.Send(ctx, chatID(update), render.MsgRateLimited)
		}
		return
	}

	next(ctx, update)
}

// allow takes a token for user. warn is set when a rejection should be
// reported to the user.
func (rl *RateLimiterMiddleware) allow(user int64) (allowed, warn bool) {
	key := strconv.FormatInt(user, 10)
	now := rl.now()

	rl.mu.Lock()
	var limit *userLimit
	if v, ok := rl.limits.Get(key); ok {
		limit = v.(*userLimit)
	} else {
		limit = &userLimit{tokens: rl.maxTokens, lastRefill: now}
	}
	// every touch renews the idle expiry
	rl.limits.SetDefault(key, limit)
	rl.mu.Unlock()

	limit.mu.Lock()
	defer limit.mu.Unlock()

	limit.tokens += now.Sub(limit.lastRefill).Seconds() * rl.refillRate
	if limit.tokens > rl.maxTokens {
		limit.tokens = rl.maxTokens
	}
	limit.lastRefill = now

	if limit.tokens >= 1.0 {
		limit.tokens--
		return true, false
	}

	if now.Sub(limit.lastWarningAt) > rateWarnInterval {
		limit.lastWarningAt = now
		return false, true
	}
	return false, false
}
