package ratelimiter

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"
)

// KeyFunc extracts the bucket key from a request.
type KeyFunc func(r *http.Request) string

// RemoteIP keys requests by the host part of RemoteAddr. Run it behind
// chi's middleware.RealIP so proxies are accounted for.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type middlewareConfig struct {
	key    KeyFunc
	denied http.Handler
	log    *slog.Logger
}

type MiddlewareOption func(*middlewareConfig)

func WithKeyFunc(fn KeyFunc) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.key = fn
		}
	}
}

// WithDeniedHandler replaces the plain-text 429 reply. Rate limit headers
// are already set when it runs.
func WithDeniedHandler(h http.Handler) MiddlewareOption {
	return func(c *middlewareConfig) {
		if h != nil {
			c.denied = h
		}
	}
}

func WithLogger(l *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// Middleware admits requests while the caller's bucket has tokens. Store
// failures let the request through.
func Middleware(b *Bucket, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := middlewareConfig{
		key: RemoteIP,
		denied: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := cfg.key(r)
			res, err := b.Allow(r.Context(), key)
			if err != nil {
				cfg.log.WarnContext(r.Context(), "rate limiter unavailable", slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed() {
				retry := int(math.Ceil(res.RetryAfter(time.Now()).Seconds()))
				h.Set("Retry-After", strconv.Itoa(max(1, retry)))
				cfg.log.InfoContext(r.Context(), "rate limited", slog.String("key", key))
				cfg.denied.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
