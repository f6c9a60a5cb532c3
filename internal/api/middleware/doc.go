// Package middleware provides the HTTP middleware stack.
//
// Middleware:
//   - CORS: cross-origin access for the local UI origins
//   - RateLimit: per-IP token bucket with idle client eviction
//   - RequestID: ULID request IDs in the X-Request-ID header
//   - AccessLog: structured zap access log carrying the request ID
//
// Example Usage:
//
//	router.Use(middleware.RequestID())
//	router.Use(middleware.AccessLog(logger))
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
