// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

/*
Package supervisor provides process supervision for AspectPad using suture v4.

The supervisor tree owns every long-running goroutine in the process and
organizes them into two layers:

	RootSupervisor ("aspectpad")
	├── StorageSupervisor ("storage-layer")
	│   └── StorageJanitorService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer counts failures independently, so a janitor that keeps failing
(for example on a read-only volume) backs off on its own while the HTTP
server keeps serving.

# Usage Example

	logger := logging.NewSlogLogger("supervisor")
	tree, err := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	tree.AddStorageService(services.NewStorageJanitorService(store, cfg.Storage))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

# Logging

Supervisor events (service start, panic, restart, backoff) are emitted through
log/slog via sutureslog. Pass the slog bridge from internal/logging so the
events land in the same zerolog output as the rest of the process.

# See Also

  - internal/supervisor/services: suture.Service wrappers
  - github.com/thejerf/suture/v4
*/
package supervisor
