package server

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	authdomain "github.com/passgate/passgate/internal/auth/domain"
	"github.com/passgate/passgate/internal/clock"
	"github.com/passgate/passgate/internal/permission"
)

const claimsContextKey = "auth.claims"

const (
	permViewDashboard      = permission.ViewDashboard
	permManageEvents       = permission.ManageEvents
	permManageTickets      = permission.ManageTickets
	permScanTickets        = permission.ScanTickets
	permViewPayments       = permission.ViewPayments
	permViewDesignTools    = permission.ViewDesignTools
	permAccessCheckinLists = permission.AccessCheckinLists
	permManageAdmins       = permission.ManageAdmins
)

// AuthRequired authenticates the session cookie and stores the claims on
// the request context. A token inside the refresh window is transparently
// re-issued so active admins never hit a hard expiry.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		claims, err := s.auth.Authenticate(token)
		if err != nil {
			s.sessions.Clear(c)
			AbortWithError(c, err)
			return
		}

		if refreshed, expiresAt, due := s.auth.Refresh(claims); due {
			s.sessions.Set(c, refreshed, expiresAt)
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// RequirePermission allows the request through when the session holds at
// least one of the given permissions. It must run after AuthRequired.
func (s *Server) RequirePermission(perms ...permission.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if !claims.PermissionSet().HasAny(perms...) {
			AbortWithError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}

func claimsFrom(c *gin.Context) (authdomain.AdminClaims, bool) {
	value, exists := c.Get(claimsContextKey)
	if !exists {
		return authdomain.AdminClaims{}, false
	}
	claims, ok := value.(authdomain.AdminClaims)
	return claims, ok
}

// sweepStatuses opportunistically advances event statuses on inbound
// traffic. The service throttles actual sweeps internally.
func (s *Server) sweepStatuses() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.events.MaybeSweep(c.Request.Context())
		c.Next()
	}
}

// publicRateLimit throttles the unauthenticated payment and lookup
// endpoints by client IP.
func (s *Server) publicRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, _ := s.limiter.Allow(c.Request.Context(), c.ClientIP())
		if !allowed {
			AbortWithError(c, ErrTooManyRequests)
			return
		}
		c.Next()
	}
}

const (
	loginAttemptLimit  = 10
	loginAttemptWindow = time.Minute
)

// attemptLimiter is a fixed-window in-process counter for login attempts.
// It is intentionally per-instance; the redis limiter covers the payment
// surface where global coordination matters.
type attemptLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clock   clock.Clock
	windows map[string]*attemptWindow
}

type attemptWindow struct {
	start time.Time
	count int
}

func newAttemptLimiter(limit int, window time.Duration, clk clock.Clock) *attemptLimiter {
	return &attemptLimiter{
		limit:   limit,
		window:  window,
		clock:   clk,
		windows: make(map[string]*attemptWindow),
	}
}

func (l *attemptLimiter) allow(key string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.windows[key]
	if w == nil || now.Sub(w.start) >= l.window {
		l.windows[key] = &attemptWindow{start: now, count: 1}
		l.evictExpired(now)
		return true
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

func (l *attemptLimiter) evictExpired(now time.Time) {
	for key, w := range l.windows {
		if now.Sub(w.start) >= l.window {
			delete(l.windows, key)
		}
	}
}
