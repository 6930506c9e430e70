package http

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
)

// RateLimiter token bucket por chave (tenant autenticado ou IP).
type RateLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	idle    time.Duration
	buckets map[string]*bucket
	now     func() time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter rps <= 0 desativa o limite.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		idle:    10 * time.Minute,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow consome um token da chave.
func (rl *RateLimiter) Allow(key string) bool {
	if rl.limit <= 0 {
		return true
	}
	rl.mu.Lock()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.buckets[key] = b
	}
	now := rl.now()
	b.lastSeen = now
	rl.mu.Unlock()
	return b.limiter.AllowN(now, 1)
}

// Sweep remove buckets sem uso há mais que o tempo ocioso.
func (rl *RateLimiter) Sweep() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cut := rl.now().Add(-rl.idle)
	removed := 0
	for k, b := range rl.buckets {
		if b.lastSeen.Before(cut) {
			delete(rl.buckets, k)
			removed++
		}
	}
	return removed
}

// StartJanitor executa Sweep periodicamente até ctx ser cancelado.
func (rl *RateLimiter) StartJanitor(ctx context.Context, every time.Duration) {
	go func() {
		t := time.NewTicker(every)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				rl.Sweep()
			}
		}
	}()
}

// Handler middleware Fiber; depois do AuthMiddleware a chave é o tenant, antes é o IP.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := "ip:" + c.IP()
		if t := GetTenantID(c); t != "" {
			key = "tenant:" + t
		}
		if !rl.Allow(key) {
			c.Set(fiber.HeaderRetryAfter, "1")
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "muitas requisições, tente novamente em instantes",
			})
		}
		return c.Next()
	}
}
