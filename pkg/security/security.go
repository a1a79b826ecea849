package security

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// CORS 中间件 仅允许白名单中的Origin；白名单为空时放行所有来源（不带凭证）
func CORS(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept", "Authorization", "X-Requested-With", "Cache-Control"},
		ExposeHeaders:    []string{"Content-Length"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: len(allowedOrigins) > 0,
	}
	if len(allowedOrigins) > 0 {
		cfg.AllowOrigins = allowedOrigins
	} else {
		cfg.AllowAllOrigins = true
	}
	return cors.New(cfg)
}

// Secure 中间件
func Secure(isRelease bool) gin.HandlerFunc {
	return secure.New(secure.Config{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		STSSeconds:            31536000,
		STSIncludeSubdomains:  true,
		IsDevelopment:         !isRelease,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	})
}

// visitor 包装限流器和最后活跃时间，用于定期清理
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type visitorStore struct {
	mu       sync.Mutex
	visitors map[string]*visitor
}

func (s *visitorStore) get(key string, r rate.Limit, burst int) *visitor {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, exists := s.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(r, burst)}
		s.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v
}

func (s *visitorStore) sweep(expiry time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ip, v := range s.visitors {
		if time.Since(v.lastSeen) > expiry {
			delete(s.visitors, ip)
		}
	}
}

// run sweeps idle visitors every interval until ctx is done.
func (s *visitorStore) run(ctx context.Context, interval, expiry time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(expiry)
		}
	}
}

// RateLimiter 限流中间件 按IP限流，ctx 结束前定期清理过期条目
func RateLimiter(ctx context.Context, maxRequests int, window time.Duration) gin.HandlerFunc {
	if maxRequests <= 0 {
		maxRequests = 1
	}
	if window <= 0 {
		window = time.Minute
	}

	expiry := window * 3
	if expiry < time.Minute {
		expiry = time.Minute
	}
	store := &visitorStore{visitors: make(map[string]*visitor)}
	go store.run(ctx, time.Minute, expiry)

	r := rate.Every(window / time.Duration(maxRequests))

	return func(c *gin.Context) {
		v := store.get(c.ClientIP(), r, maxRequests)
		if !v.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"code": http.StatusTooManyRequests, "message": "too many requests"})
			return
		}

		c.Next()
	}
}
