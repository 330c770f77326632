package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"school-reservations/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "ratelimit:"

// tokenBucketScript refills continuously at refill_per_sec up to capacity and
// takes one token. Returns {allowed, remaining, retry_after_ms}.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill_per_ms = tonumber(ARGV[3]) / 1000
local ttl_seconds = tonumber(ARGV[4])

local state = redis.call('HMGET', key, 'tokens', 'last_ms')
local tokens = tonumber(state[1])
local last_ms = tonumber(state[2])
if tokens == nil or last_ms == nil then
  tokens = capacity
  last_ms = now_ms
end

local elapsed = math.max(0, now_ms - last_ms)
tokens = math.min(capacity, tokens + elapsed * refill_per_ms)

local allowed = 0
local retry_after_ms = 0
if tokens >= 1 then
  allowed = 1
  tokens = tokens - 1
elseif refill_per_ms > 0 then
  retry_after_ms = math.ceil((1 - tokens) / refill_per_ms)
end

redis.call('HSET', key, 'tokens', tostring(tokens), 'last_ms', now_ms)
redis.call('EXPIRE', key, ttl_seconds)
return { allowed, math.floor(tokens), retry_after_ms }
`)

// RateLimit throttles each authenticated user with a Redis token bucket. It
// must run after RequireAuth. Without Redis, or when Redis fails, requests
// pass through.
func RateLimit(rdb *redis.Client, cfg config.RateLimitConfig) gin.HandlerFunc {
	if rdb == nil || cfg.Capacity <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return newRateLimiter(rdb, cfg)
}

func newRateLimiter(rdb redis.Scripter, cfg config.RateLimitConfig) gin.HandlerFunc {
	ttl := bucketTTL(cfg)
	return func(c *gin.Context) {
		key := rateLimitKeyPrefix + "anon:" + c.ClientIP()
		if actor, ok := GetActor(c); ok {
			key = rateLimitKeyPrefix + "user:" + actor.UserID.String()
		}

		res, err := tokenBucketScript.Run(c.Request.Context(), rdb, []string{key},
			time.Now().UnixMilli(), cfg.Capacity, cfg.RefillPerSec, ttl,
		).Int64Slice()
		if err != nil || len(res) != 3 {
			slog.Warn("rate limiter unavailable", "key", key, "error", errString(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(res[1], 10))

		if res[0] != 1 {
			secs := int(math.Ceil(float64(res[2]) / 1000))
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       gin.H{"message": "Rate limit exceeded"},
				"retry_after": secs,
			})
			return
		}
		c.Next()
	}
}

// bucketTTL keeps an idle bucket long enough to refill completely.
func bucketTTL(cfg config.RateLimitConfig) int64 {
	if cfg.RefillPerSec <= 0 {
		return 3600
	}
	return int64(math.Ceil(float64(cfg.Capacity)/cfg.RefillPerSec)) + 1
}

func errString(err error) string {
	if err == nil {
		return "unexpected script result"
	}
	return err.Error()
}
