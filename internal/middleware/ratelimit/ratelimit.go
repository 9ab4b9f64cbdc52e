package ratelimit

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

const rejectionMessage = "Too many requests from this IP, please try again later."

// Limiter counts requests per source IP in fixed windows. State is
// per-process: instances behind a load balancer each keep their own counters.
type Limiter struct {
	mu      sync.Mutex
	window  time.Duration
	limit   int
	clients map[string]*bucket
}

type bucket struct {
	count     int
	windowEnd time.Time
}

func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  window,
		clients: make(map[string]*bucket),
	}
}

func (l *Limiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			now := time.Now()

			l.mu.Lock()
			b, ok := l.clients[key]
			if !ok || now.After(b.windowEnd) {
				l.clients[key] = &bucket{count: 1, windowEnd: now.Add(l.window)}
				l.mu.Unlock()
				return next(c)
			}

			if b.count >= l.limit {
				retryAfter := int(time.Until(b.windowEnd).Seconds())
				if retryAfter < 0 {
					retryAfter = 0
				}
				l.mu.Unlock()

				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return echo.NewHTTPError(http.StatusTooManyRequests, rejectionMessage)
			}

			b.count++
			l.mu.Unlock()
			return next(c)
		}
	}
}
