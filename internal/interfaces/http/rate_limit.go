package http

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/jhoicas/gestor-notas-api/internal/application/dto"
)

const (
	// DefaultRateLimit peticiones por minuto por IP en las rutas públicas.
	DefaultRateLimit = 60
	DefaultBurstSize = 10
	// LimiterTTL un limitador sin uso durante este tiempo se descarta.
	LimiterTTL = 10 * time.Minute
)

// RateLimiter limita por IP de cliente las rutas sin autenticación.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	perMinute int
	limit     rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter requestsPerMinute o burst <= 0 usan los valores por defecto.
func NewRateLimiter(requestsPerMinute, burst int) *RateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = DefaultRateLimit
	}
	if burst <= 0 {
		burst = DefaultBurstSize
	}
	return &RateLimiter{
		limiters:  make(map[string]*limiterEntry),
		perMinute: requestsPerMinute,
		limit:     rate.Limit(float64(requestsPerMinute) / 60.0),
		burst:     burst,
		now:       time.Now,
	}
}

// Allow consume un token del cliente key.
func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)
	entry, ok := r.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// sweep descarta limitadores inactivos; se ejecuta como mucho una vez por TTL.
func (r *RateLimiter) sweep(now time.Time) {
	if now.Sub(r.lastSweep) < LimiterTTL {
		return
	}
	r.lastSweep = now
	for k, e := range r.limiters {
		if now.Sub(e.lastSeen) > LimiterTTL {
			delete(r.limiters, k)
		}
	}
}

// Middleware responde 429 RATE_LIMITED cuando la IP agota su cupo.
func (r *RateLimiter) Middleware(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-RateLimit-Limit", strconv.Itoa(r.perMinute))
		if !r.Allow(c.IP()) {
			c.Set("Retry-After", "60")
			log.Warn().Str("ip", c.IP()).Str("path", c.Path()).Msg("rate limit exceeded")
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code: "RATE_LIMITED", Message: "demasiadas peticiones, inténtelo más tarde",
			})
		}
		return c.Next()
	}
}
