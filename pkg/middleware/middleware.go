// Package middleware provides the gin middleware of the reference server.
//
// This package includes:
//   - Recovery: Panic recovery with JSON error response
//   - RequestID: Adds unique request ID to each request
//   - Logger: Request logging middleware
//   - CORS: Cross-Origin Resource Sharing support
//   - Tracing: OpenTelemetry server spans
//   - Auth: Bearer token authentication
//
// Usage:
//
//	r := gin.New()
//	r.Use(
//	    middleware.Recovery(),
//	    middleware.RequestID(),
//	    middleware.Logger(),
//	    middleware.CORS(opts.AllowOrigins),
//	)
//	authed := r.Group("/api", middleware.Auth(tokens))
package middleware
