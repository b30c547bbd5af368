package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ──────────────────────────────────────────────────────────────────────────────
// Per-IP request budgets
// ──────────────────────────────────────────────────────────────────────────────

// LimitClass names a group of routes sharing one request budget. Auth
// endpoints get a tight budget because credential stuffing is the abuse
// vector there; wager endpoints get a wider one sized for a fast-clicking
// player rather than a script hammering the settle endpoint.
type LimitClass string

const (
	LimitAuth  LimitClass = "auth"
	LimitWager LimitClass = "wager"
)

// visitor tracks one client's remaining budget for a class.
type visitor struct {
	mu       sync.Mutex
	budget   float64
	lastSeen time.Time
}

// spend refills the budget for the time elapsed since the last request and
// takes one unit from it. Reports false when the budget is exhausted.
func (v *visitor) spend(rps, burst float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	now := time.Now()
	v.budget += now.Sub(v.lastSeen).Seconds() * rps
	if v.budget > burst {
		v.budget = burst
	}
	v.lastSeen = now

	if v.budget < 1 {
		return false
	}
	v.budget--
	return true
}

// classLimiter enforces one class budget across all client IPs.
type classLimiter struct {
	class LimitClass
	rps   float64
	burst float64

	mu       sync.Mutex
	visitors map[string]*visitor
}

func newClassLimiter(class LimitClass, rps int) *classLimiter {
	// Burst absorbs a short click spike without widening the steady rate.
	burst := float64(rps)
	if burst < 10 {
		burst = 10
	}
	cl := &classLimiter{
		class:    class,
		rps:      float64(rps),
		burst:    burst,
		visitors: make(map[string]*visitor),
	}
	go cl.sweep(3 * time.Minute)
	return cl
}

func (cl *classLimiter) visitor(ip string) *visitor {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	v, ok := cl.visitors[ip]
	if !ok {
		v = &visitor{budget: cl.burst, lastSeen: time.Now()}
		cl.visitors[ip] = v
	}
	return v
}

// sweep drops visitors idle for longer than maxIdle so the table stays
// proportional to active clients, not everyone who ever connected.
func (cl *classLimiter) sweep(maxIdle time.Duration) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-maxIdle)
		cl.mu.Lock()
		for ip, v := range cl.visitors {
			v.mu.Lock()
			if v.lastSeen.Before(cutoff) {
				delete(cl.visitors, ip)
			}
			v.mu.Unlock()
		}
		cl.mu.Unlock()
	}
}

// PerIPLimit returns a middleware enforcing the class budget of rps requests
// per second for each client IP. Clients over budget get 429 in the standard
// error envelope with a Retry-After hint. An rps of zero or less disables
// the limit, so a misconfigured budget fails open rather than locking the
// casino's doors.
func PerIPLimit(class LimitClass, rps int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	cl := newClassLimiter(class, rps)

	return func(c *gin.Context) {
		if !cl.visitor(c.ClientIP()).spend(cl.rps, cl.burst) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "request budget exceeded for " + string(cl.class) + " endpoints",
				"code":    "ERR_RATE_LIMITED",
			})
			return
		}
		c.Next()
	}
}
