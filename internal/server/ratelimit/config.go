package ratelimit

import (
	"net/http"
	"strings"
	"time"
)

// EndpointConfig is the rate limit for one route family.
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends with "/"
	Method string        // HTTP method
	Limit  int           // requests per window
	Window time.Duration // refill window
	Burst  int           // bucket capacity, Limit when 0
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTimeout     time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultConfig returns the limits used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-tier limits.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: analysis submissions call the external service
		{Path: "/api/analyze/", Method: http.MethodPost, Limit: 20, Window: time.Hour, Burst: 3},

		// Tier 2: artifact generation
		{Path: "/api/results/export/", Method: http.MethodGet, Limit: 30, Window: time.Minute, Burst: 5},

		// Tier 3: view interactions
		{Path: "/api/results/", Method: http.MethodPost, Limit: 240, Window: time.Minute, Burst: 30},

		// Everything else uses the default; /health is unlimited in the matcher
	}
}

// ParseIPList turns a list of addresses into a lookup set, dropping blanks.
func ParseIPList(ips []string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range ips {
		for _, part := range strings.Split(ip, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				result[part] = true
			}
		}
	}
	return result
}
