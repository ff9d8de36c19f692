package http

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/fwojciec/permitsearch"
	"golang.org/x/time/rate"
)

// minLimiterIdle is the shortest time a client's limiter is kept after its
// last request.
const minLimiterIdle = time.Minute

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter provides per-client rate limiting using token buckets,
// keyed by the client's IP address. Limiters idle long enough to have
// refilled their bucket are dropped.
type ClientLimiter struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	mu        sync.Mutex
	clients   map[string]*clientEntry
	rps       float64
	burst     int
	idle      time.Duration
	lastSweep time.Time
}

// NewClientLimiter creates a ClientLimiter allowing rps requests per second
// per client with the given burst.
func NewClientLimiter(rps float64, burst int) *ClientLimiter {
	if burst < 1 {
		burst = 1
	}
	idle := minLimiterIdle
	if rps > 0 {
		if refill := time.Duration(float64(burst) / rps * float64(time.Second)); refill > idle {
			idle = refill
		}
	}
	return &ClientLimiter{
		Now:     time.Now,
		clients: make(map[string]*clientEntry),
		rps:     rps,
		burst:   burst,
		idle:    idle,
	}
}

// Allow reports whether the client may make a request now.
func (l *ClientLimiter) Allow(client string) bool {
	now := l.Now()

	l.mu.Lock()
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}
	e, ok := l.clients[client]
	if !ok {
		e = &clientEntry{limiter: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
		l.clients[client] = e
	}
	e.lastSeen = now
	l.mu.Unlock()

	return e.limiter.AllowN(now, 1)
}

// Len returns the number of clients currently tracked.
func (l *ClientLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// sweep drops clients idle since before now-idle. A dropped client's bucket
// would be full again, so a fresh limiter behaves the same. Callers hold l.mu.
func (l *ClientLimiter) sweep(now time.Time) {
	cutoff := now.Add(-l.idle)
	for client, e := range l.clients {
		if e.lastSeen.Before(cutoff) {
			delete(l.clients, client)
		}
	}
	l.lastSweep = now
}

// Middleware rejects requests over the client's limit with 429.
func (l *ClientLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientKey(r)) {
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusTooManyRequests, ErrorResponse{
				Code:  permitsearch.EINVALID,
				Error: "Too many requests. Please slow down.",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientKey returns the host part of RemoteAddr. Proxy headers only reach
// it when the server trusts them and chi's RealIP has rewritten RemoteAddr.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
