package ratelimit

import (
	"strings"
	"time"

	"github.com/jonathan/admissions-advisor/internal/config"
)

// EndpointConfig overrides the default rate for one route.
type EndpointConfig struct {
	Path              string // exact path, or a prefix when it ends in "/"
	Method            string
	RequestsPerMinute int // 0 means unlimited
	Burst             int // defaults to RequestsPerMinute when 0
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled           bool
	RequestsPerMinute int
	Burst             int
	CleanupInterval   time.Duration
	IdleTimeout       time.Duration // visitors unseen for this long are dropped
	Whitelist         map[string]bool
	EndpointConfigs   []EndpointConfig
}

// FromSettings builds a limiter Config from the application configuration.
func FromSettings(s config.RateLimitConfig) *Config {
	return &Config{
		Enabled:           s.Enabled,
		RequestsPerMinute: s.RequestsPerMinute,
		Burst:             s.Burst,
		CleanupInterval:   5 * time.Minute,
		IdleTimeout:       time.Hour,
		Whitelist:         parseIPList(s.Whitelist),
		EndpointConfigs:   DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Profile creation mints tokens.
		{Path: "/profiles", Method: "POST", RequestsPerMinute: 10, Burst: 3},
		// Chat traffic is bursty.
		{Path: "/classify", Method: "POST", RequestsPerMinute: 120, Burst: 30},
	}
}

func parseIPList(list []string) map[string]bool {
	result := make(map[string]bool, len(list))
	for _, ip := range list {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
