package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults matching DefaultConfig
	d := DefaultConfig()
	v.SetDefault("server.host", d.Host)
	v.SetDefault("server.port", d.Port)
	v.SetDefault("server.max_connections", d.MaxConnections)
	v.SetDefault("server.request_timeout", d.RequestTimeout.String())
	v.SetDefault("server.metrics_addr", d.MetricsAddr)
	v.SetDefault("limits.list_capacity", d.ListCapacity)
	v.SetDefault("limits.max_records_per_set", d.MaxRecordsPerSet)
	v.SetDefault("limits.max_units", d.MaxUnits)
	v.SetDefault("data.catalog", "")

	// Bind environment variables with FF_ prefix
	v.SetEnvPrefix("FF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Secrets must be environment-only
	if err := validateNoSecretsInConfig(v); err != nil {
		return nil, err
	}

	cfg := &Config{
		Host:             v.GetString("server.host"),
		Port:             v.GetInt("server.port"),
		MaxConnections:   v.GetInt("server.max_connections"),
		RequestTimeout:   v.GetDuration("server.request_timeout"),
		MetricsAddr:      v.GetString("server.metrics_addr"),
		ListCapacity:     v.GetInt("limits.list_capacity"),
		MaxRecordsPerSet: v.GetInt("limits.max_records_per_set"),
		MaxUnits:         v.GetInt("limits.max_units"),
		Catalog:          v.GetString("data.catalog"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig checks port range and positive values for connections,
// timeout and list capacity. Zero record and unit limits mean unlimited.
func validateConfig(cfg *Config) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Port)
	}
	if cfg.MaxConnections <= 0 {
		return fmt.Errorf("max_connections must be positive, got %d", cfg.MaxConnections)
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %v", cfg.RequestTimeout)
	}
	if cfg.ListCapacity <= 0 {
		return fmt.Errorf("list_capacity must be positive, got %d", cfg.ListCapacity)
	}
	if cfg.MaxRecordsPerSet < 0 {
		return fmt.Errorf("max_records_per_set must not be negative, got %d", cfg.MaxRecordsPerSet)
	}
	if cfg.MaxUnits < 0 {
		return fmt.Errorf("max_units must not be negative, got %d", cfg.MaxUnits)
	}
	return nil
}

// validateNoSecretsInConfig enforces environment-only secrets.
func validateNoSecretsInConfig(v *viper.Viper) error {
	if v.InConfig("api_key") || v.InConfig("server.api_key") {
		return fmt.Errorf("API keys not allowed in config files (use FF_API_KEY environment variable)")
	}
	return nil
}
