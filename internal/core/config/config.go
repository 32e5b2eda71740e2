// Package config provides configuration management for fontfilter services.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/solatis/fontfilter/internal/types"
)

// Config holds configuration for the filter service and CLI.
type Config struct {
	Host           string
	Port           int
	MaxConnections int
	RequestTimeout time.Duration
	MetricsAddr    string

	// Limits on the injected allocator and record sets.
	ListCapacity     int
	MaxRecordsPerSet int
	MaxUnits         int

	// Catalog is an optional YAML catalog served when no database is configured.
	Catalog string
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Host:             "0.0.0.0",
		Port:             50051,
		MaxConnections:   1000,
		RequestTimeout:   30 * time.Second,
		MetricsAddr:      ":9090",
		ListCapacity:     types.DefaultListCapacity,
		MaxRecordsPerSet: 0,
		MaxUnits:         0,
	}
}

// APIKey returns the shared gRPC API key from FF_API_KEY.
// Empty disables authentication.
func APIKey() string {
	return strings.TrimSpace(os.Getenv("FF_API_KEY"))
}
