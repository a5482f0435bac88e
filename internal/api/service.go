/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package api is the HTTP host surface over the in-process ledger API.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"novares-ledger-go/internal/compose"
	"novares-ledger-go/internal/ledger"
	"novares-ledger-go/internal/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger reports whether the persistence backend is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	ledger    *ledger.Service
	composer  *compose.MailComposer
	metrics   *metrics.Collector
	limiter   *RateLimiter
	proxies   []string
	pinger    Pinger
	admission func(time.Time) bool
	now       func() time.Time
}

type Option func(*Server)

func WithComposer(c *compose.MailComposer) Option {
	return func(s *Server) { s.composer = c }
}

func WithMetrics(c *metrics.Collector) Option {
	return func(s *Server) { s.metrics = c }
}

// WithAuthRateLimit bounds authenticated requests per client per second.
// Idle client buckets are evicted after ttl; zero keeps the default.
func WithAuthRateLimit(perSecond float64, burst int, ttl time.Duration) Option {
	return func(s *Server) {
		s.limiter = NewRateLimiter(perSecond, burst)
		if ttl > 0 {
			s.limiter.ttl = ttl
		}
	}
}

// WithTrustedProxies lists the proxies whose X-Forwarded-For is believed.
// With none, the client address is always the TCP peer.
func WithTrustedProxies(proxies []string) Option {
	return func(s *Server) { s.proxies = proxies }
}

func WithPinger(p Pinger) Option {
	return func(s *Server) { s.pinger = p }
}

// WithAdmission installs the registration time-of-day policy
func WithAdmission(allows func(time.Time) bool) Option {
	return func(s *Server) { s.admission = allows }
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func NewServer(l *ledger.Service, opts ...Option) *Server {
	s := &Server{ledger: l, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartLimiterCleanup runs bucket eviction until ctx is done
func (s *Server) StartLimiterCleanup(ctx context.Context, interval time.Duration) {
	if s.limiter != nil {
		s.limiter.StartCleanup(ctx, interval)
	}
}

func (s *Server) HealthCheck(ctx context.Context) error {
	if s.pinger == nil {
		return nil
	}
	if err := s.pinger.Ping(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// Router wires every route. Member routes use HTTP Basic auth with a login
// key; admin routes add the X-Security-Code header.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(s.proxies); err != nil {
		zap.L().Error("Invalid trusted proxy list, forwarded headers are ignored", zap.Strings("proxies", s.proxies), zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(s.recovery(), s.requestLogger())

	r.GET("/healthz", s.healthz)
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	v1 := r.Group("/v1")
	v1.Use(s.rateLimit())
	v1.POST("/members", s.register)

	member := v1.Group("")
	member.Use(s.memberAuth())
	{
		member.GET("/me", s.me)
		member.GET("/recipients/:code", s.lookupRecipient)
		member.POST("/transfers", s.requestTransfer)
		member.GET("/transfers", s.listTransfers)
	}

	admin := v1.Group("/admin")
	admin.Use(s.adminAuth())
	{
		admin.GET("/members", s.listMembers)
		admin.POST("/members/:id/activate", s.activateMember)
		admin.POST("/members/:id/reject", s.rejectMember)
		admin.DELETE("/members/:id", s.removeMember)
		admin.PUT("/members/:id/balance", s.overrideBalance)
		admin.POST("/members/:id/bonuses", s.issueBonus)
		admin.GET("/transfers", s.searchTransfers)
		admin.GET("/transfers/pending", s.pendingTransfers)
		admin.POST("/transfers/:id/approve", s.approveTransfer)
		admin.POST("/transfers/:id/reject", s.rejectTransfer)
	}

	return r
}

func (s *Server) healthz(c *gin.Context) {
	if err := s.HealthCheck(c.Request.Context()); err != nil {
		zap.L().Error("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
