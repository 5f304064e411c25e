package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter keeps one x/time/rate limiter per client IP. Each client may
// burst up to the per-minute quota and then refills evenly over the minute.
type RateLimiter struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu      sync.Mutex
	clients map[string]*rate.Limiter

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter allows perMinute requests per client IP and sweeps idle
// clients every cleanupInterval. Call Stop on shutdown.
func NewRateLimiter(perMinute int, cleanupInterval time.Duration) *RateLimiter {
	return newRateLimiter(perMinute, cleanupInterval, time.Now)
}

func newRateLimiter(perMinute int, cleanupInterval time.Duration, now func() time.Time) *RateLimiter {
	rl := &RateLimiter{
		limit:   rate.Limit(float64(perMinute) / 60),
		burst:   perMinute,
		now:     now,
		clients: make(map[string]*rate.Limiter),
		stop:    make(chan struct{}),
	}
	go rl.sweepEvery(cleanupInterval)
	return rl
}

// Stop ends the sweeper. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Limit rejects requests over the client's quota with 429 and a
// Retry-After hint in whole seconds.
func (rl *RateLimiter) Limit() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := rl.now()
			lim := rl.client(clientIP(r))
			if !lim.AllowN(now, 1) {
				w.Header().Set("Retry-After", strconv.Itoa(rl.retryAfter(lim, now)))
				writeMessage(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr so one client's connections
// share a quota.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (rl *RateLimiter) client(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	lim, ok := rl.clients[ip]
	if !ok {
		lim = rate.NewLimiter(rl.limit, rl.burst)
		rl.clients[ip] = lim
	}
	return lim
}

// retryAfter is the number of seconds until lim holds a whole token again.
func (rl *RateLimiter) retryAfter(lim *rate.Limiter, now time.Time) int {
	missing := 1 - lim.TokensAt(now)
	secs := int(math.Ceil(missing / float64(rl.limit)))
	return max(secs, 1)
}

// sweep forgets clients whose quota has fully refilled. A forgotten client
// is indistinguishable from a new one.
func (rl *RateLimiter) sweep(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, lim := range rl.clients {
		if lim.TokensAt(now) >= float64(rl.burst) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *RateLimiter) sweepEvery(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.sweep(rl.now())
		}
	}
}
