// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

Categories:

  - Server Timing: HTTP server and store deadlines.
  - Rate Limiting: burst capacities and IP tracking TTLs.
  - Session: cookie, Redis and gate configuration.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "inkpost-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Cover uploads are multipart, so this is wider than a JSON-only API needs.
	DefaultReadTimeout = 15 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 25 * time.Second

	// ShutdownTimeout is how long in-flight requests get to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// StoreTimeout bounds a single attempt of a store operation.
	StoreTimeout = 5 * time.Second

	// StoreRetries is the number of extra attempts for a transient store failure.
	StoreRetries = 1

	// StoreRetryBackoff is the pause before retrying a store operation.
	StoreRetryBackoff = 100 * time.Millisecond

	// StatementTimeout is applied server-side to every pooled Postgres connection.
	StatementTimeout = 10 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Session

const (
	// SessionIssuer is the 'iss' claim of session tokens.
	SessionIssuer = "inkpost"

	// SessionCookieName is the cookie that carries the signed session token.
	SessionCookieName = "inkpost_session"

	// SessionTTL is how long a login session stays valid.
	SessionTTL = 7 * 24 * time.Hour

	// SessionIDLength is the byte length of a random session identifier.
	SessionIDLength = 32
)

// # Admin Gate

const (
	// AdminPathPrefix marks pages that require a session.
	AdminPathPrefix = "/admin"

	// LoginPath is the sign-in page.
	LoginPath = "/auth/login"

	// DashboardPath is where signed-in users land.
	DashboardPath = "/admin/dashboard"
)

// # Uploads

const (
	// MaxCoverBytes is the largest accepted cover image.
	MaxCoverBytes = 5 << 20

	// CoverKeyPrefix is the object key prefix for cover images.
	CoverKeyPrefix = "covers/"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # Health

const (
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaCore  = "core"
	SchemaUsers = "users"
)

// # Redis Prefixes

const (
	RedisPrefixSession = "auth:session:"
)
