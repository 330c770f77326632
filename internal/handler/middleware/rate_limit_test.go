//go:build unit

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"school-reservations/internal/domain/user"
	"school-reservations/internal/pkg/config"
	"school-reservations/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedRedis struct {
	redis.Scripter
	reply []any
	err   error
	keys  []string
}

func (s *scriptedRedis) EvalSha(_ context.Context, _ string, keys []string, _ ...any) *redis.Cmd {
	s.keys = append(s.keys, keys...)
	return redis.NewCmdResult(s.reply, s.err)
}

func (s *scriptedRedis) Eval(ctx context.Context, _ string, keys []string, args ...any) *redis.Cmd {
	return s.EvalSha(ctx, "", keys, args...)
}

func newLimitedRouter(rdb redis.Scripter, actor *shared.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := config.RateLimitConfig{Capacity: 5, RefillPerSec: 1}
	r.POST("/limited", func(c *gin.Context) {
		if actor != nil {
			SetActor(c, *actor)
		}
		c.Next()
	}, newRateLimiter(rdb, cfg), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRateLimit(t *testing.T) {
	actor := shared.Actor{UserID: uuid.New(), Role: user.RoleTeacher}

	t.Run("allowed request passes with remaining header", func(t *testing.T) {
		rdb := &scriptedRedis{reply: []any{int64(1), int64(4), int64(0)}}
		rec := httptest.NewRecorder()
		newLimitedRouter(rdb, &actor).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/limited", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "5", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "4", rec.Header().Get("X-RateLimit-Remaining"))
		require.Len(t, rdb.keys, 1)
		assert.Equal(t, "ratelimit:user:"+actor.UserID.String(), rdb.keys[0])
	})

	t.Run("empty bucket returns 429 with Retry-After", func(t *testing.T) {
		rdb := &scriptedRedis{reply: []any{int64(0), int64(0), int64(1500)}}
		rec := httptest.NewRecorder()
		newLimitedRouter(rdb, &actor).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/limited", nil))

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("Retry-After"))
		assert.Contains(t, rec.Body.String(), "Rate limit exceeded")
	})

	t.Run("anonymous requests are keyed by client ip", func(t *testing.T) {
		rdb := &scriptedRedis{reply: []any{int64(1), int64(4), int64(0)}}
		rec := httptest.NewRecorder()
		newLimitedRouter(rdb, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/limited", nil))

		require.Len(t, rdb.keys, 1)
		assert.True(t, strings.HasPrefix(rdb.keys[0], "ratelimit:anon:"))
	})

	t.Run("redis failure lets the request through", func(t *testing.T) {
		rdb := &scriptedRedis{err: assert.AnError}
		rec := httptest.NewRecorder()
		newLimitedRouter(rdb, &actor).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/limited", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	})

	t.Run("nil client disables limiting", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.POST("/limited", RateLimit(nil, config.RateLimitConfig{Capacity: 1}), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/limited", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestBucketTTL(t *testing.T) {
	assert.Equal(t, int64(31), bucketTTL(config.RateLimitConfig{Capacity: 30, RefillPerSec: 1}))
	assert.Equal(t, int64(6), bucketTTL(config.RateLimitConfig{Capacity: 10, RefillPerSec: 2}))
	assert.Equal(t, int64(3600), bucketTTL(config.RateLimitConfig{Capacity: 10}))
}
