// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

/*
Package main is the entry point for the AspectPad server.

AspectPad downloads a remote image, pads it with white borders to the 1.91:1
social-preview ratio without scaling or cropping, stores the result under a
random name and serves it back for download.

# Application Architecture

	RootSupervisor ("aspectpad")
	├── StorageSupervisor ("storage-layer")
	│   └── Storage janitor (temp file sweep)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, optional config.yaml, environment
 2. Logging: zerolog to stderr, plus one file per UTC day under LOGS_DIR
 3. Artifact store: creates UPLOAD_DIR and checks it is writable
 4. Pipeline: fetch client, padder and store, with log and metrics observers
 5. HTTP router: chi with request ID, recoverer, CORS, metrics, access log
 6. Supervisor tree: runs the janitor and HTTP server until SIGINT/SIGTERM

# Endpoints

	GET /process-image?imageUrl=<url>   pad an image, returns {"downloadLink": ...}
	GET /download/{filename}            serve a processed image
	GET /health/live                    liveness
	GET /health/ready                   readiness (store writable)
	GET /metrics                        Prometheus metrics

# Example Usage

	export APP_PORT=3000
	export UPLOAD_DIR=/var/lib/aspectpad/uploads
	export LOGS_DIR=/var/log/aspectpad
	./aspectpad

	curl 'http://localhost:3000/process-image?imageUrl=https://example.com/photo.png'

Behind a reverse proxy, set TRUST_PROXY_HEADERS=true so download links use
the X-Forwarded-Proto and X-Forwarded-Host the proxy sets.

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server stops
accepting connections and drains in-flight requests within
HTTP_SHUTDOWN_TIMEOUT.
*/
package main
