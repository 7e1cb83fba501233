// Package ratelimiter provides token bucket rate limiting for HTTP handlers.
//
// A Bucket holds Capacity tokens per key and adds RefillRate tokens every
// RefillInterval. Each request consumes one token; when none are left the
// request is denied until the next refill.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       10,
//		RefillRate:     1,
//		RefillInterval: 6 * time.Second,
//	})
//	if err != nil {
//		return err
//	}
//
//	r.With(ratelimiter.Middleware(limiter, ratelimiter.ClientIP)).Post("/api/si/submit", submit)
//
// The middleware sets X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset on every response and Retry-After on denied ones.
//
// MemoryStore keeps state in process and drops buckets idle for an hour.
// It is suitable for a single instance only.
package ratelimiter
