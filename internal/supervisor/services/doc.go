// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

/*
Package services provides suture.Service wrappers for AspectPad components.

Each wrapper implements the suture.Service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

and returns ctx.Err() once the supervisor cancels it. Returning any other
error makes the supervisor restart the service with backoff.

# Available Services

HTTP Server (HTTPServerService):
  - Binds the listener before serving, so bind failures are restarted
  - Logs "Server running on port N" once the port is open
  - Drains in-flight requests on shutdown within a configurable timeout

Storage Janitor (StorageJanitorService):
  - Sweeps abandoned temp files from the upload directory on a ticker
  - Logs and counts removed files (storage_temp_files_swept_total)
  - Sweep errors are logged, not returned

# Service Identification

Every wrapper implements fmt.Stringer so supervisor events name the service:

	func (s *StorageJanitorService) String() string {
	    return "storage-janitor"
	}
*/
package services
