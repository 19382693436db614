package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Default limits: 100 requests per 15 minutes per client across the API,
// 20 per 15 minutes for credential endpoints and 30 for PDF rendering.
const (
	DefaultLimit    = 100
	DefaultWindow   = 15 * time.Minute
	AuthLimit       = 20
	PDFLimit        = 30
	CleanupInterval = 5 * time.Minute
)

// DefaultConfig returns the limits used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    DefaultLimit,
		DefaultWindow:   DefaultWindow,
		CleanupInterval: CleanupInterval,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: endpointConfigs(AuthLimit, PDFLimit),
	}
}

// LoadConfig loads rate limiting configuration from RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	cfg := DefaultConfig()
	cfg.DefaultLimit = getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", DefaultLimit)
	cfg.DefaultWindow = getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", DefaultWindow)
	cfg.CleanupInterval = getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", CleanupInterval)
	cfg.Whitelist = parseIPList(getEnvString("RATE_LIMIT_WHITELIST", ""))
	cfg.Blacklist = parseIPList(getEnvString("RATE_LIMIT_BLACKLIST", ""))

	cfg.EndpointConfigs = endpointConfigs(
		getEnvInt("RATE_LIMIT_AUTH_LIMIT", AuthLimit),
		getEnvInt("RATE_LIMIT_PDF_LIMIT", PDFLimit),
	)
	return cfg
}

// DefaultEndpointConfigs returns the endpoints with their own limits:
// credential endpoints and PDF rendering, which starts a browser per request.
func DefaultEndpointConfigs() []EndpointConfig {
	return endpointConfigs(AuthLimit, PDFLimit)
}

func endpointConfigs(authLimit, pdfLimit int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/auth/login", Method: "POST", Limit: authLimit, Window: DefaultWindow},
		{Path: "/api/auth/register", Method: "POST", Limit: authLimit, Window: DefaultWindow},
		{Path: "/api/admin/login", Method: "POST", Limit: authLimit, Window: DefaultWindow},
		{Path: "/api/resumes/{id}/pdf", Method: "GET", Limit: pdfLimit, Window: DefaultWindow},
		{Path: "/api/share/{link}/pdf", Method: "GET", Limit: pdfLimit, Window: DefaultWindow},
	}
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	if list == "" {
		return result
	}

	ips := strings.Split(list, ",")
	for _, ip := range ips {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}

	return result
}

