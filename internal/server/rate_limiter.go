package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/ternarybob/propcast/internal/handlers"
	"golang.org/x/time/rate"
)

const (
	clientIdleThreshold = 1 * time.Hour
	cleanupInterval     = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientRateLimiter keeps one token bucket per client IP
type ClientRateLimiter struct {
	mu          sync.Mutex
	limit       rate.Limit
	burst       int
	clients     map[string]*clientLimiter
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

// NewClientRateLimiter creates a limiter allowing requestsPerSecond per client with the given burst.
// Idle clients are evicted in the background until Stop is called.
func NewClientRateLimiter(requestsPerSecond float64, burst int) *ClientRateLimiter {
	if burst < 1 {
		burst = 1
	}
	rl := &ClientRateLimiter{
		limit:       rate.Limit(requestsPerSecond),
		burst:       burst,
		clients:     make(map[string]*clientLimiter),
		stopCleanup: make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *ClientRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *ClientRateLimiter) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, client := range rl.clients {
		if now.Sub(client.lastSeen) > clientIdleThreshold {
			delete(rl.clients, ip)
		}
	}
}

// Stop ends the background cleanup
func (rl *ClientRateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stopCleanup)
	})
}

// Allow reports whether the client may make a request now
func (rl *ClientRateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	client, exists := rl.clients[ip]
	if !exists {
		client = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = client
	}
	client.lastSeen = time.Now()
	rl.mu.Unlock()

	return client.limiter.Allow()
}

// clientIP strips the port from RemoteAddr
func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// rateLimitMiddleware rejects clients that exceed their budget with 429
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !s.limiter.Allow(ip) {
			s.app.Logger.Warn().
				Str("remote", ip).
				Str("path", r.URL.Path).
				Msg("Rate limit exceeded")
			handlers.WriteError(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
