// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

/*
Package config provides centralized configuration management for AspectPad.

Configuration is loaded once at startup with Koanf v2 from three layers, each
overriding the previous one:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file (CONFIG_PATH, config.yaml, config.yml, /etc/aspectpad/config.yaml)
 3. Environment variables

# Environment Variables

Server (ServerConfig):
  - APP_PORT: Listen port (default: 3000). HTTP_PORT is accepted as an alias.
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
  - TRUST_PROXY_HEADERS: Build download links from X-Forwarded-* (default: false)
  - CORS_ORIGINS: Comma-separated allowed origins (default: none)

Storage (StorageConfig):
  - UPLOAD_DIR: Artifact directory (default: ./uploads)
  - DEFAULT_EXTENSION: Extension used when the URL has none (default: .jpg)
  - STORAGE_TEMP_MAX_AGE, STORAGE_SWEEP_INTERVAL: Temp file janitor settings

Fetch (FetchConfig):
  - FETCH_TIMEOUT: Per-download timeout (default: 20s)
  - FETCH_MAX_BYTES: Maximum source size (default: 25 MiB)
  - FETCH_USER_AGENT: User-Agent header sent upstream
  - FETCH_BREAKER_ENABLED, FETCH_BREAKER_FAILURES, FETCH_BREAKER_OPEN_TIMEOUT

Image (ImageConfig):
  - IMAGE_TARGET_RATIO: Width:height ratio to pad to (default: 1.91)
  - IMAGE_JPEG_QUALITY: JPEG re-encode quality (default: 80)

Logging (LoggingConfig):
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller info (default: false)
  - LOGS_DIR: Daily log file directory (default: ./logs, empty disables)

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatalf("Configuration error: %v", err)
	}
	fmt.Println(cfg.Server.Addr())

Validation runs as part of Load. A Config that fails validation is never
returned, so components may trust every field they receive.
*/
package config
