package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/futurevend/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitObserver is told about every rejected request
type RateLimitObserver interface {
	ObserveRateLimited(limiter string)
}

// KeyedRateLimiter keeps one token bucket per key.
// Buckets idle for longer than the idle TTL are dropped by a background sweep.
type KeyedRateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewKeyedRateLimiter allows perSecond sustained requests per key with the given burst
func NewKeyedRateLimiter(perSecond float64, burst int) *KeyedRateLimiter {
	if burst < 1 {
		burst = 1
	}
	rl := &KeyedRateLimiter{
		buckets: make(map[string]*bucket),
		limit:   rate.Limit(perSecond),
		burst:   burst,
		idleTTL: 10 * time.Minute,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go rl.sweepLoop(time.Minute)
	return rl
}

// NewWindowRateLimiter allows requests per window for each key, refilled evenly
func NewWindowRateLimiter(requests int, window time.Duration) *KeyedRateLimiter {
	if requests < 1 || window <= 0 {
		return NewKeyedRateLimiter(float64(rate.Inf), 1)
	}
	return NewKeyedRateLimiter(float64(requests)/window.Seconds(), requests)
}

// Allow consumes a token from key's bucket
func (rl *KeyedRateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.buckets[key] = b
	}
	b.lastSeen = now
	rl.mu.Unlock()

	return b.limiter.AllowN(now, 1)
}

// Len returns the number of tracked keys
func (rl *KeyedRateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}

// Close stops the background sweep
func (rl *KeyedRateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *KeyedRateLimiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stop:
			return
		}
	}
}

func (rl *KeyedRateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := rl.now().Add(-rl.idleTTL)
	for key, b := range rl.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(rl.buckets, key)
		}
	}
}

// RateLimitByKey rejects requests whose key has no tokens left with 429 ERR_RATE_LIMITED.
// name labels the limiter towards observer, which may be nil.
func RateLimitByKey(limiter *KeyedRateLimiter, name string, keyFunc func(*gin.Context) string, observer RateLimitObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter.Allow(keyFunc(c)) {
			c.Next()
			return
		}
		if observer != nil {
			observer.ObserveRateLimited(name)
		}
		c.Header("Retry-After", "1")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeRateLimited,
			"Too many requests. Please try again later.",
			GetRequestID(c),
		))
	}
}

// ClientIPKey keys a limiter by client address
func ClientIPKey(c *gin.Context) string {
	return c.ClientIP()
}

// IngestionKey keys a limiter by client address and the reported serial number.
// The body is read and put back so the handler can still bind it; undecodable
// bodies fall back to the address alone.
func IngestionKey(c *gin.Context) string {
	ip := c.ClientIP()
	if c.Request.Body == nil {
		return ip
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		// Replay the read error, e.g. an oversized body, to the handler
		c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(raw), failingReader{err}))
		return ip
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))

	var peek struct {
		SerialNumber string `json:"serialNumber"`
	}
	if json.Unmarshal(raw, &peek) != nil {
		return ip
	}
	if serial := strings.TrimSpace(peek.SerialNumber); serial != "" {
		return ip + "|" + serial
	}
	return ip
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }
