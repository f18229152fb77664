package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings for the server.
type Config struct {
	Port            string
	AllowedOrigins  []string
	JWTSecret       string
	TokenTTL        time.Duration
	JanitorEnabled  bool
	JanitorInterval time.Duration
	LogLevel        string
}

// fileConfig mirrors the optional YAML config file. Environment variables
// override anything set here.
type fileConfig struct {
	Server struct {
		Port           string   `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Auth struct {
		TokenTTLHours int `yaml:"token_ttl_hours"`
	} `yaml:"auth"`
	Janitor struct {
		Enabled         bool `yaml:"enabled"`
		IntervalMinutes int  `yaml:"interval_minutes"`
	} `yaml:"janitor"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func loadConfig() (*Config, error) {
	cfg := &Config{
		Port:            "8080",
		AllowedOrigins:  []string{"*"},
		JWTSecret:       "change-me-in-production",
		TokenTTL:        24 * time.Hour,
		JanitorEnabled:  false,
		JanitorInterval: 5 * time.Minute,
		LogLevel:        "info",
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := applyConfigFile(cfg, path); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}
	cfg.TokenTTL = time.Duration(getEnvAsInt("TOKEN_TTL_HOURS", int(cfg.TokenTTL.Hours()))) * time.Hour
	cfg.JanitorEnabled = getEnvAsBool("JANITOR_ENABLED", cfg.JanitorEnabled)
	cfg.JanitorInterval = time.Duration(getEnvAsInt("JANITOR_INTERVAL_MINUTES", int(cfg.JanitorInterval.Minutes()))) * time.Minute

	return cfg, nil
}

func applyConfigFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	if fc.Server.Port != "" {
		cfg.Port = fc.Server.Port
	}
	if len(fc.Server.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = fc.Server.AllowedOrigins
	}
	if fc.Auth.TokenTTLHours > 0 {
		cfg.TokenTTL = time.Duration(fc.Auth.TokenTTLHours) * time.Hour
	}
	if fc.Janitor.Enabled {
		cfg.JanitorEnabled = true
	}
	if fc.Janitor.IntervalMinutes > 0 {
		cfg.JanitorInterval = time.Duration(fc.Janitor.IntervalMinutes) * time.Minute
	}
	if fc.Log.Level != "" {
		cfg.LogLevel = fc.Log.Level
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
