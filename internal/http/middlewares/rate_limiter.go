package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

type bucket struct {
	count int
	start time.Time
}

// fixedWindow counts requests per key in fixed windows. Expired buckets are
// dropped whenever the map is swept.
type fixedWindow struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	buckets   map[string]*bucket
	lastSweep time.Time
}

func newFixedWindow(limit int, window time.Duration) *fixedWindow {
	return &fixedWindow{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*bucket),
	}
}

func (f *fixedWindow) allow(key string, now time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if now.Sub(f.lastSweep) > f.window {
		for k, b := range f.buckets {
			if now.Sub(b.start) > f.window {
				delete(f.buckets, k)
			}
		}
		f.lastSweep = now
	}

	b, ok := f.buckets[key]
	if !ok || now.Sub(b.start) > f.window {
		b = &bucket{start: now}
		f.buckets[key] = b
	}

	if b.count >= f.limit {
		return false
	}
	b.count++
	return true
}

func RateLimiter(limit int, window time.Duration) echo.MiddlewareFunc {
	limiter := newFixedWindow(limit, window)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.allow(c.RealIP(), time.Now()) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
