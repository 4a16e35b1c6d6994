// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateStorage(); err != nil {
		return err
	}

	if err := c.validateFetch(); err != nil {
		return err
	}

	if err := c.validateImage(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("APP_PORT must be between 1 and 65535")
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("HTTP_READ_TIMEOUT must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("HTTP_WRITE_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	return c.validateCORSOrigins()
}

// validateCORSOrigins rejects malformed origins. A single "*" is allowed.
func (c *Config) validateCORSOrigins() error {
	for _, origin := range c.Server.CORSOrigins {
		if origin == "*" {
			continue
		}
		u, err := url.Parse(origin)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("CORS_ORIGINS contains invalid origin %q", origin)
		}
	}
	return nil
}

// extensionPattern matches the file extensions the store accepts.
var extensionPattern = regexp.MustCompile(`^\.[A-Za-z0-9]{1,10}$`)

func (c *Config) validateStorage() error {
	if strings.TrimSpace(c.Storage.Dir) == "" {
		return fmt.Errorf("UPLOAD_DIR is required")
	}
	if !extensionPattern.MatchString(c.Storage.DefaultExtension) {
		return fmt.Errorf("DEFAULT_EXTENSION must look like .jpg (got %q)", c.Storage.DefaultExtension)
	}
	if c.Storage.TempMaxAge <= 0 {
		return fmt.Errorf("STORAGE_TEMP_MAX_AGE must be positive")
	}
	if c.Storage.SweepInterval <= 0 {
		return fmt.Errorf("STORAGE_SWEEP_INTERVAL must be positive")
	}
	return nil
}

func (c *Config) validateFetch() error {
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive")
	}
	if c.Fetch.MaxBytes <= 0 {
		return fmt.Errorf("FETCH_MAX_BYTES must be positive")
	}
	if c.Fetch.BreakerEnabled {
		if c.Fetch.BreakerFailures == 0 {
			return fmt.Errorf("FETCH_BREAKER_FAILURES must be at least 1")
		}
		if c.Fetch.BreakerOpenTimeout <= 0 {
			return fmt.Errorf("FETCH_BREAKER_OPEN_TIMEOUT must be positive")
		}
	}
	return nil
}

func (c *Config) validateImage() error {
	if c.Image.TargetRatio <= 0 {
		return fmt.Errorf("IMAGE_TARGET_RATIO must be positive")
	}
	if c.Image.JPEGQuality < 1 || c.Image.JPEGQuality > 100 {
		return fmt.Errorf("IMAGE_JPEG_QUALITY must be between 1 and 100")
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	level := strings.ToLower(c.Logging.Level)
	if !validLogLevels[level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error (got: %s)", c.Logging.Level)
	}
	format := strings.ToLower(c.Logging.Format)
	if !validLogFormats[format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console (got: %s)", c.Logging.Format)
	}
	return nil
}
