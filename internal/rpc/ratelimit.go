package rpc

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
)

const cleanupInterval = 30 * time.Minute

// bucket holds a client's tokens as of lastSeen.
type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimiter meters RPC calls per client address. Each client may burst up
// to burst calls and then earns capacity back at burst per window.
type RateLimiter struct {
	mu      sync.Mutex
	burst   float64
	window  time.Duration
	perSec  float64
	clients map[string]*bucket
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter starts a limiter allowing burst calls per window.
func NewRateLimiter(burst int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		burst:   float64(burst),
		window:  window,
		perSec:  float64(burst) / window.Seconds(),
		clients: make(map[string]*bucket),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

func (r *RateLimiter) sweep() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.evictIdle()
		case <-r.stop:
			return
		}
	}
}

// evictIdle drops clients quiet for a full window; their bucket would be
// full again anyway.
func (r *RateLimiter) evictIdle() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for client, b := range r.clients {
		if now.Sub(b.lastSeen) >= r.window {
			delete(r.clients, client)
		}
	}
}

// Stop ends the background sweep. Safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// Reserve takes a token for client. When none is left it returns false and
// how long until one is.
func (r *RateLimiter) Reserve(client string) (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	b, ok := r.clients[client]
	if !ok {
		b = &bucket{tokens: r.burst, lastSeen: now}
		r.clients[client] = b
	}
	if elapsed := now.Sub(b.lastSeen).Seconds(); elapsed > 0 {
		b.tokens = math.Min(r.burst, b.tokens+elapsed*r.perSec)
	}
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		return 0, true
	}
	wait := time.Duration((1 - b.tokens) * float64(r.window) / r.burst)
	return wait, false
}

// Allow reports whether client may make a call now.
func (r *RateLimiter) Allow(client string) bool {
	_, ok := r.Reserve(client)
	return ok
}

// RateLimitMiddleware answers over-limit clients with 429, a Retry-After
// hint and a JSON-RPC error body.
func RateLimitMiddleware(limiter *RateLimiter) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wait, ok := limiter.Reserve(clientIP(r))
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				writeJSON(w, http.StatusTooManyRequests, Response{JSONRPC: version, Error: errRateLimited})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
