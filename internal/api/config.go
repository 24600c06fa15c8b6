package api

import "time"

// Config holds server configuration.
type Config struct {
	Port              int
	RateLimitRequests int           // Requests per minute (0 = disabled)
	RateLimitBurst    int           // Burst size
	CacheTTL          time.Duration // Response cache TTL (0 = disabled)
	AllowedOrigins    []string      // CORS allowed origins (empty = allow all)
}
