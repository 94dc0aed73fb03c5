package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_BurstThenRefill(t *testing.T) {
	rl := NewRateLimiter(60, 2)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("1.1.1.1"))
	assert.False(t, rl.Allow("1.1.1.1"), "ráfaga agotada")
	assert.True(t, rl.Allow("2.2.2.2"), "cada IP tiene su cupo")

	now = now.Add(time.Second) // 60/min = 1 token por segundo
	assert.True(t, rl.Allow("1.1.1.1"))
}

func TestRateLimiter_Defaults(t *testing.T) {
	rl := NewRateLimiter(0, -1)
	assert.Equal(t, DefaultRateLimit, rl.perMinute)
	assert.Equal(t, DefaultBurstSize, rl.burst)
}

func TestRateLimiter_SweepDropsIdle(t *testing.T) {
	rl := NewRateLimiter(60, 1)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("1.1.1.1")
	now = now.Add(LimiterTTL + time.Minute)
	rl.Allow("2.2.2.2")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	_, ok := rl.limiters["1.1.1.1"]
	assert.False(t, ok)
	assert.Len(t, rl.limiters, 1)
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(30, 1)
	app := fiber.New()
	app.Get("/p", rl.Middleware(zerolog.Nop()), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/p", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "30", resp.Header.Get("X-RateLimit-Limit"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/p", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "60", resp.Header.Get("Retry-After"))
}
