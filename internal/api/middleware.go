package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"novares-ledger-go/internal/authority"
	"novares-ledger-go/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	accountKey         = "account"
	securityCodeHeader = "X-Security-Code"
)

// RateLimiter keeps one token bucket per client key. Buckets idle for longer
// than the configured TTL are evicted by Cleanup.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	rate     rate.Limit
	burst    int
	ttl      time.Duration
	now      func() time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const defaultLimiterTTL = 10 * time.Minute

func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*clientLimiter),
		rate:     rate.Limit(perSecond),
		burst:    burst,
		ttl:      defaultLimiterTTL,
		now:      time.Now,
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	entry, ok := rl.limiters[key]
	if !ok {
		entry = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = entry
	}
	entry.lastSeen = rl.now()
	limiter := entry.limiter
	rl.mu.Unlock()
	return limiter.Allow()
}

// Cleanup drops buckets not used within the TTL and returns how many remain
func (rl *RateLimiter) Cleanup() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.ttl)
	for key, entry := range rl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}
	return len(rl.limiters)
}

// StartCleanup evicts idle buckets every interval until ctx is done
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				remaining := rl.Cleanup()
				zap.L().Debug("Rate limiter buckets evicted", zap.Int("remaining", remaining))
			}
		}
	}()
}

func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter != nil && !s.limiter.Allow(c.ClientIP()) {
			zap.L().Warn("Rate limit exceeded", zap.String("client_ip", c.ClientIP()), zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Error:   "rate_limited",
				Message: "too many requests",
			})
			return
		}
		c.Next()
	}
}

// memberAuth resolves the Basic auth login key and password to an active account.
// Unknown login keys are reported as bad credentials.
func (s *Server) memberAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		loginKey, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", `Basic realm="novares"`)
			fail(c, models.ErrBadCredential)
			return
		}
		account, err := s.ledger.Authenticate(loginKey, password)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				err = models.ErrBadCredential
			}
			fail(c, err)
			return
		}
		c.Set(accountKey, account)
		c.Next()
	}
}

// adminAuth opens an admin session and carries it in the request context
func (s *Server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", `Basic realm="novares-admin"`)
			fail(c, models.ErrUnauthorized)
			return
		}
		session, err := s.ledger.AuthenticateAdmin(username, password, c.GetHeader(securityCodeHeader))
		if err != nil {
			fail(c, err)
			return
		}
		c.Request = c.Request.WithContext(authority.WithSession(c.Request.Context(), session))
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		latency := time.Since(start)
		s.metrics.ObserveHTTP(c.Request.Method, path, c.Writer.Status(), latency)
		zap.L().Debug("HTTP request",
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("client_ip", c.ClientIP()),
			zap.Duration("latency", latency))
	}
}

func (s *Server) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				zap.L().Error("Panic while serving request", zap.Any("panic", r), zap.String("path", c.FullPath()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
					Error:   "internal",
					Message: "internal error",
				})
			}
		}()
		c.Next()
	}
}

func currentAccount(c *gin.Context) models.Account {
	return c.MustGet(accountKey).(models.Account)
}
