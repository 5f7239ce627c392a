// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Optional collaborators (object storage, the summary assistant) are enabled
only when their settings are present; see [Config.StorageEnabled] and
[Config.AIEnabled].
*/
package config

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Inkpost API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// Session store (Redis)
	RedisURL string `env:"REDIS_URL,required,notEmpty"`

	// SessionSecret signs the session cookie. At least 32 bytes.
	SessionSecret string `env:"SESSION_SECRET,required,notEmpty"`

	// Admin account bootstrapped at startup when both are set.
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// Object Storage (S3-compatible) for cover images
	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION"    envDefault:"auto"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3PublicURL string `env:"S3_PUBLIC_URL"`

	// Summary assistant (Gemini)
	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiModel   string `env:"GEMINI_MODEL"    envDefault:"gemini-2.0-flash-lite"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`

	// Cross-Origin Resource Sharing, comma separated
	ExtraOrigins string `env:"EXTRA_ORIGINS"`

	// WebRoot is an optional directory of built frontend assets served behind the admin gate.
	WebRoot string `env:"WEB_ROOT"`

	// TrustedProxies lists the reverse proxies (IPs or CIDRs, comma separated)
	// whose X-Forwarded-For and X-Real-IP headers are honored.
	TrustedProxies string `env:"TRUSTED_PROXIES"`

	proxies []netip.Prefix
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// Fails if any field marked 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if len(cfg.SessionSecret) < 32 {
		return nil, fmt.Errorf("config: SESSION_SECRET must be at least 32 bytes")
	}

	proxies, err := parseProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}
	cfg.proxies = proxies

	return cfg, nil
}

// parseProxies accepts bare addresses as single-host prefixes.
func parseProxies(raw string) ([]netip.Prefix, error) {
	var proxies []netip.Prefix
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("config: invalid TRUSTED_PROXIES entry %q: %w", entry, err)
			}
			proxies = append(proxies, prefix.Masked())
			continue
		}

		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("config: invalid TRUSTED_PROXIES entry %q: %w", entry, err)
		}
		addr = addr.Unmap()
		proxies = append(proxies, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return proxies, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// StorageEnabled reports whether cover uploads can be served.
func (c *Config) StorageEnabled() bool {
	return c.S3Bucket != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// AIEnabled reports whether the summary assistant has credentials.
func (c *Config) AIEnabled() bool {
	return c.GeminiAPIKey != ""
}

// AdminBootstrap reports whether an admin account should be ensured at startup.
func (c *Config) AdminBootstrap() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}

// Proxies returns the parsed TRUSTED_PROXIES. Empty means forwarding headers are ignored.
func (c *Config) Proxies() []netip.Prefix {
	return c.proxies
}

// Origins returns the trimmed, non-empty entries of EXTRA_ORIGINS.
func (c *Config) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
