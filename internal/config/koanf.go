// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/aspectpad/config.yaml",
	"/etc/aspectpad/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultTargetRatio is the Open Graph preview ratio (1200x630 rounds to 1.91:1).
const DefaultTargetRatio = 1.91

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              3000,
			Host:              "0.0.0.0",
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second, // fetch + encode happen inside the handler
			IdleTimeout:       120 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			TrustProxyHeaders: false,
			CORSOrigins:       []string{},
		},
		Storage: StorageConfig{
			Dir:              "./uploads",
			DefaultExtension: ".jpg",
			TempMaxAge:       time.Hour,
			SweepInterval:    15 * time.Minute,
		},
		Fetch: FetchConfig{
			Timeout:            20 * time.Second,
			MaxBytes:           25 << 20, // 25 MiB
			UserAgent:          "AspectPad/1.0",
			BreakerEnabled:     true,
			BreakerFailures:    5,
			BreakerOpenTimeout: 30 * time.Second,
		},
		Image: ImageConfig{
			TargetRatio: DefaultTargetRatio,
			JPEGQuality: 80,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
			Dir:    "./logs",
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// Precedence is ENV > File > Defaults.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// APP_PORT -> server.port
	// FETCH_TIMEOUT -> fetch.timeout
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// APP_PORT is the historical name and wins over HTTP_PORT when both are set.
	if port := os.Getenv("APP_PORT"); port != "" {
		if err := k.Set("server.port", port); err != nil {
			return nil, fmt.Errorf("failed to set server.port: %w", err)
		}
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths lists config keys that accept comma-separated env values.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated strings from environment
// variables into string slices for the keys in sliceConfigPaths.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"trust_proxy_headers":   "server.trust_proxy_headers",
	"cors_origins":          "server.cors_origins",

	// Storage
	"upload_dir":             "storage.dir",
	"default_extension":      "storage.default_extension",
	"storage_temp_max_age":   "storage.temp_max_age",
	"storage_sweep_interval": "storage.sweep_interval",

	// Fetch
	"fetch_timeout":              "fetch.timeout",
	"fetch_max_bytes":            "fetch.max_bytes",
	"fetch_user_agent":           "fetch.user_agent",
	"fetch_breaker_enabled":      "fetch.breaker_enabled",
	"fetch_breaker_failures":     "fetch.breaker_failures",
	"fetch_breaker_open_timeout": "fetch.breaker_open_timeout",

	// Image
	"image_target_ratio": "image.target_ratio",
	"image_jpeg_quality": "image.jpeg_quality",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
	"logs_dir":   "logging.dir",
}

// envTransformFunc maps environment variable names to koanf paths.
// APP_PORT is applied separately in LoadWithKoanf so it can take precedence.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}
