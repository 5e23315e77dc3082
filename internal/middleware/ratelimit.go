package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/whoamaiii/kreativium/backend/internal/apierror"
	"github.com/whoamaiii/kreativium/backend/internal/logger"
)

// RateLimiter keeps one token bucket per client IP
type RateLimiter struct {
	clients map[string]*clientInfo
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	idle    time.Duration // evict buckets unused for this long
	name    string        // identifier for logging
	stop    chan struct{}
	once    sync.Once
}

type clientInfo struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter allowing rps requests per second per
// client with bursts of up to burst. Call Close to stop the cleanup loop.
func NewRateLimiter(rps float64, burst int, name string) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	rl := &RateLimiter{
		clients: make(map[string]*clientInfo),
		limit:   rate.Limit(rps),
		burst:   burst,
		idle:    10 * time.Minute,
		name:    name,
		stop:    make(chan struct{}),
	}

	go rl.cleanup()

	logger.Default().Debug("rate limiter initialized",
		logger.String("name", name),
		logger.Float64("rps", rps),
		logger.Int("burst", burst),
	)

	return rl
}

// Close stops the background cleanup
func (rl *RateLimiter) Close() {
	rl.once.Do(func() { close(rl.stop) })
}

// cleanup removes idle clients periodically
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.idle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			cleaned := 0
			for ip, info := range rl.clients {
				if now.Sub(info.lastSeen) > rl.idle {
					delete(rl.clients, ip)
					cleaned++
				}
			}
			remaining := len(rl.clients)
			rl.mu.Unlock()

			if cleaned > 0 {
				logger.Default().Debug("rate limiter cleanup completed",
					logger.String("name", rl.name),
					logger.Int("cleaned", cleaned),
					logger.Int("remaining", remaining),
				)
			}
		}
	}
}

// reserve takes a token for ip. When none is available it returns false
// and how many whole seconds until one will be.
func (rl *RateLimiter) reserve(ip string, now time.Time) (bool, int) {
	rl.mu.Lock()
	info, ok := rl.clients[ip]
	if !ok {
		info = &clientInfo{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = info
	}
	info.lastSeen = now
	rl.mu.Unlock()

	r := info.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, 1
	}
	delay := r.DelayFrom(now)
	if delay == 0 {
		return true, 0
	}
	r.CancelAt(now)
	return false, int(math.Ceil(delay.Seconds()))
}

// RateLimit returns a middleware handler that limits requests per client IP
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		allowed, retryAfter := limiter.reserve(ip, time.Now())
		if !allowed {
			logger.Ctx(c.Request.Context()).Warn("rate limit exceeded",
				logger.String("limiter", limiter.name),
				logger.String("client_ip", ip),
				logger.Int("retry_after", retryAfter),
			)

			c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.burst))
			c.Header("X-RateLimit-Remaining", "0")
			apierror.WriteProblem(c, apierror.NewRateLimitError(apierror.GetRequestID(c), retryAfter))
			c.Abort()
			return
		}

		c.Next()
	}
}
