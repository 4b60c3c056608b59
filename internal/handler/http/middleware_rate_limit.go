package http

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MKhiriev/clearnext/internal/logger"
	"golang.org/x/time/rate"
)

// ipRateLimiter keeps one token bucket per client address. A nil limiter
// allows everything.
type ipRateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// newIPRateLimiter allows perWindow requests per client within window. It
// returns nil for a non-positive perWindow.
func newIPRateLimiter(perWindow int, window time.Duration) *ipRateLimiter {
	if perWindow <= 0 || window <= 0 {
		return nil
	}

	return &ipRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(window / time.Duration(perWindow)),
		burst:    perWindow,
		window:   window,
		now:      time.Now,
	}
}

func (l *ipRateLimiter) allow(key string) bool {
	if l == nil {
		return true
	}

	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	// buckets idle for a whole window are full again and can be dropped
	if now.Sub(l.lastSweep) > l.window {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > l.window {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// withLoginRateLimit rejects a client with 429 once it exceeds the configured
// number of login attempts.
func (h *Handler) withLoginRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !h.loginLimiter.allow(ip) {
			logger.FromRequest(r).Warn().Str("ip", ip).Msg("login rate limit exceeded")
			w.Header().Set("Retry-After", strconv.Itoa(int(h.loginLimiter.window.Seconds())))
			writeFailure(w, r, http.StatusTooManyRequests, msgTooManyRequests, nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP strips the port from RemoteAddr. middleware.RealIP has already
// replaced it with the forwarded address when one was sent.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
