package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"orangecat-wallets/internal/adapter/http/middleware"
	redisStore "orangecat-wallets/internal/adapter/storage/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRateLimitRouter(store middleware.RateLimitStore, userID *uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	rule := middleware.RateLimitRule{Limit: 3, Window: time.Minute}
	setUser := func(c *gin.Context) {
		if userID != nil {
			c.Set(middleware.CtxUserID, *userID)
		}
		c.Next()
	}

	r.GET("/test", setUser, middleware.RateLimiter(store, "test", rule, zerolog.Nop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func newMiniredisStore(t *testing.T) *redisStore.RateLimitStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisStore.NewRateLimitStore(client)
}

func doGet(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "/test", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	router := setupRateLimitRouter(newMiniredisStore(t), nil)

	for i := 0; i < 3; i++ {
		w := doGet(router, "")
		assert.Equal(t, http.StatusOK, w.Code, "request %d should succeed", i+1)
		assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, strconv.Itoa(2-i), w.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	router := setupRateLimitRouter(newMiniredisStore(t), nil)

	for i := 0; i < 3; i++ {
		doGet(router, "")
	}

	w := doGet(router, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_002")
	retryAfter, err := strconv.Atoi(w.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, retryAfter, 1)
	assert.LessOrEqual(t, retryAfter, 60)
}

func TestRateLimiter_KeysByUserBeforeIP(t *testing.T) {
	store := newMiniredisStore(t)
	alice := uuid.New()
	bob := uuid.New()
	aliceRouter := setupRateLimitRouter(store, &alice)
	bobRouter := setupRateLimitRouter(store, &bob)

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, doGet(aliceRouter, "10.0.0.1:1234").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, doGet(aliceRouter, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, doGet(bobRouter, "10.0.0.1:1234").Code, "same IP, different user")
}

func TestRateLimiter_SeparateIPs(t *testing.T) {
	router := setupRateLimitRouter(newMiniredisStore(t), nil)

	for i := 0; i < 3; i++ {
		doGet(router, "10.0.0.1:1234")
	}
	assert.Equal(t, http.StatusTooManyRequests, doGet(router, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, doGet(router, "10.0.0.2:1234").Code)
}

type failingStore struct{}

func (failingStore) Allow(context.Context, string, int64, time.Duration) (*redisStore.RateLimitResult, error) {
	return nil, errors.New("connection refused")
}

func TestRateLimiter_DegradedModeAllows(t *testing.T) {
	router := setupRateLimitRouter(failingStore{}, nil)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doGet(router, "").Code)
	}
}

func TestDefaultRateLimitRules(t *testing.T) {
	rules := middleware.DefaultRateLimitRules()
	for _, group := range []string{middleware.GroupRead, middleware.GroupWrite, middleware.GroupRefresh} {
		rule, ok := rules[group]
		require.True(t, ok, group)
		assert.Positive(t, rule.Limit)
		assert.Equal(t, time.Minute, rule.Window)
	}
}
