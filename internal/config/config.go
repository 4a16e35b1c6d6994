// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from environment variables and config files.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// The struct is built once at startup and passed explicitly to every component
// constructor. Nothing reads configuration from ambient state after Load returns.
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	store, err := storage.New(cfg.Storage)
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Storage StorageConfig `koanf:"storage"`
	Fetch   FetchConfig   `koanf:"fetch"`
	Image   ImageConfig   `koanf:"image"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// TrustProxyHeaders makes download links honor X-Forwarded-Proto and
	// X-Forwarded-Host. Enable only behind a reverse proxy that sets them.
	TrustProxyHeaders bool `koanf:"trust_proxy_headers"`

	// CORSOrigins lists allowed browser origins. Empty disables CORS headers.
	CORSOrigins []string `koanf:"cors_origins"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StorageConfig holds the flat-file artifact store settings.
type StorageConfig struct {
	// Dir is the single flat directory holding processed images.
	Dir string `koanf:"dir"`

	// DefaultExtension is used when the source URL carries no usable extension.
	DefaultExtension string `koanf:"default_extension"`

	// TempMaxAge is how old an abandoned temp file must be before the janitor removes it.
	TempMaxAge time.Duration `koanf:"temp_max_age"`

	// SweepInterval is how often the janitor scans for abandoned temp files.
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// FetchConfig holds remote image download settings.
type FetchConfig struct {
	Timeout   time.Duration `koanf:"timeout"`
	MaxBytes  int64         `koanf:"max_bytes"`
	UserAgent string        `koanf:"user_agent"`

	// Per-host circuit breaker
	BreakerEnabled     bool          `koanf:"breaker_enabled"`
	BreakerFailures    uint32        `koanf:"breaker_failures"`
	BreakerOpenTimeout time.Duration `koanf:"breaker_open_timeout"`
}

// ImageConfig holds padding settings.
type ImageConfig struct {
	// TargetRatio is the width:height ratio every processed image is padded to.
	TargetRatio float64 `koanf:"target_ratio"`

	// JPEGQuality is the encoder quality used when re-encoding JPEG sources.
	JPEGQuality int `koanf:"jpeg_quality"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`

	// Dir receives one log file per UTC day (YYYY-MM-DD.log).
	// Empty disables file logging.
	Dir string `koanf:"dir"`
}

// Load reads configuration from defaults, an optional config file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
