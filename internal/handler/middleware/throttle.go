package middleware

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"zurbo/internal/handler/httperr"
	"zurbo/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var errThrottled = errors.New("too many requests from client")

// Throttle is a per-IP token bucket in front of the whole API. It only guards
// against floods; the business limits on service requests live in the usecase.
type Throttle struct {
	mu           sync.Mutex
	entries      map[string]*throttleEntry
	rps          rate.Limit
	burst        int
	idleTTL      time.Duration
	cleanupEvery time.Duration
	now          func() time.Time
}

type throttleEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func NewThrottle(cfg config.ThrottleConfig) *Throttle {
	t := &Throttle{
		entries:      make(map[string]*throttleEntry),
		rps:          rate.Limit(cfg.RPS),
		burst:        cfg.Burst,
		idleTTL:      cfg.IdleTTL,
		cleanupEvery: cfg.CleanupEvery,
		now:          time.Now,
	}
	if t.idleTTL <= 0 {
		t.idleTTL = 15 * time.Minute
	}
	if t.burst <= 0 {
		t.burst = 1
	}
	return t
}

func (t *Throttle) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lim := t.limiter(c.ClientIP())
		if lim.Allow() {
			c.Next()
			return
		}

		wait := time.Duration(float64(time.Second) / math.Max(float64(t.rps), 0.001))
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		httperr.AbortWithError(c, http.StatusTooManyRequests, errThrottled, "Too many requests", nil)
	}
}

func (t *Throttle) limiter(key string) *rate.Limiter {
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	if ent, ok := t.entries[key]; ok {
		ent.lastSeen = now
		return ent.lim
	}

	lim := rate.NewLimiter(t.rps, t.burst)
	t.entries[key] = &throttleEntry{lim: lim, lastSeen: now}
	return lim
}

// Cleanup drops limiters idle for longer than the TTL.
func (t *Throttle) Cleanup() {
	cutoff := t.now().Add(-t.idleTTL)

	t.mu.Lock()
	defer t.mu.Unlock()

	for k, ent := range t.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(t.entries, k)
		}
	}
}

func (t *Throttle) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// StartJanitor runs Cleanup periodically until ctx is cancelled.
func (t *Throttle) StartJanitor(ctx context.Context) {
	if t.cleanupEvery <= 0 {
		return
	}

	ticker := time.NewTicker(t.cleanupEvery)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.Cleanup()
			}
		}
	}()
}
