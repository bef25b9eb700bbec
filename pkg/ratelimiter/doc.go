// Package ratelimiter throttles form submissions with a token bucket per
// client.
//
// A Bucket holds Config (burst capacity plus refill rate) and keeps state in a
// Store; MemoryStore is the in-process implementation. Middleware applies a
// Bucket to an http.Handler, keyed by client IP by default, setting the
// X-RateLimit-* headers on every reply and Retry-After on denials.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//	bucket, err := ratelimiter.NewBucket(store, cfg)
//	r.With(ratelimiter.Middleware(bucket)).Post("/send-email", h)
package ratelimiter
