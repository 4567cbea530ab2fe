package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"loan-office/internal/config"
)

// RateLimiterMiddleware limits requests per client IP. With a Redis client the
// counters are shared across replicas; without one a per-process token bucket
// is used instead.
type RateLimiterMiddleware struct {
	redisClient *redis.Client
	limiters    sync.Map
	cfg         config.RateLimitConfig
	logger      *slog.Logger
	window      time.Duration
}

func NewRateLimiterMiddleware(cfg config.RateLimitConfig, redisClient *redis.Client, logger *slog.Logger) *RateLimiterMiddleware {
	if cfg.Enabled {
		if redisClient != nil {
			logger.Info("Rate limiter configured with shared Redis counters", "rps", cfg.RPS)
		} else {
			logger.Info("Rate limiter configured with in-process counters", "rps", cfg.RPS, "burst", cfg.Burst)
		}
	} else {
		logger.Info("Rate limiting is disabled via configuration.")
	}

	rl := &RateLimiterMiddleware{
		redisClient: redisClient,
		cfg:         cfg,
		logger:      logger,
		window:      1 * time.Second,
	}

	if cfg.Enabled && redisClient == nil {
		go rl.cleanupLimiters()
	}

	return rl
}

func (rl *RateLimiterMiddleware) getLimiter(ip string) *rate.Limiter {
	limiter, exists := rl.limiters.Load(ip)
	if !exists {
		newLimiter := rate.NewLimiter(rate.Limit(rl.cfg.RPS), rl.cfg.Burst)
		rl.limiters.Store(ip, newLimiter)
		return newLimiter
	}
	return limiter.(*rate.Limiter)
}

func (rl *RateLimiterMiddleware) cleanupLimiters() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.limiters.Range(func(key, value interface{}) bool {
			limiter := value.(*rate.Limiter)
			if limiter.AllowN(time.Now(), 0) {
				rl.limiters.Delete(key)
			}
			return true
		})
	}
}

func (rl *RateLimiterMiddleware) extractIP(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	xRealIP := r.Header.Get("X-Real-IP")
	if xRealIP != "" {
		return xRealIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (rl *RateLimiterMiddleware) Middleware(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.extractIP(r)

		if rl.redisClient != nil {
			if !rl.allowShared(r, ip) {
				rl.reject(w, ip)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		if !rl.getLimiter(ip).Allow() {
			rl.reject(w, ip)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allowShared counts the request in Redis. Redis failures let the request
// through; the limiter protects throughput and must not become an outage.
func (rl *RateLimiterMiddleware) allowShared(r *http.Request, ip string) bool {
	ctx := r.Context()
	key := fmt.Sprintf("ratelimit:%s", ip)

	pipe := rl.redisClient.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	ttlCmd := pipe.TTL(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil {
		rl.logger.Error("Redis pipeline failed during rate limiting check", "error", err, "ip", ip, "key", key)
		return true
	}

	currentCount, err := incrCmd.Result()
	if err != nil {
		rl.logger.Error("Failed to get INCR result after pipeline exec", "error", err, "ip", ip, "key", key)
		return true
	}

	ttl, err := ttlCmd.Result()
	if err != nil {
		rl.logger.Error("Failed to get TTL result after pipeline exec", "error", err, "ip", ip, "key", key)
	}
	if ttl == -1 || ttl == -2 {
		if err := rl.redisClient.Expire(ctx, key, rl.window).Err(); err != nil {
			rl.logger.Error("Failed to set Redis EXPIRE for rate limit key", "error", err, "ip", ip, "key", key)
		}
	}

	return currentCount <= int64(rl.cfg.RPS)
}

func (rl *RateLimiterMiddleware) reject(w http.ResponseWriter, ip string) {
	rl.logger.Warn("Rate limit exceeded", "ip", ip)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", fmt.Sprintf("%.0f", rl.window.Seconds()))
	w.WriteHeader(http.StatusTooManyRequests)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"message": "Rate limit exceeded",
		},
	})
}
