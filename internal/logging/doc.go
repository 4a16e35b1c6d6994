// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

// Package logging provides centralized zerolog-based structured logging for AspectPad.
//
// # Quick Start
//
//	files, err := logging.NewDailyFileWriter(cfg.Logging.Dir)
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to open log directory")
//	}
//	logging.Init(logging.Config{
//	    Level:     cfg.Logging.Level,
//	    Format:    cfg.Logging.Format,
//	    Timestamp: true,
//	    Output:    os.Stderr,
//	    Files:     files,
//	})
//
//	logging.Info().Int("port", cfg.Server.Port).Msg("Server running")
//	logging.Ctx(ctx).Error().Err(err).Msg("Error processing image")
//
// # Outputs
//
// Every line goes to the primary Output (JSON or console) and, when Files is
// set, a JSON copy goes to a DailyFileWriter that keeps one file per UTC day
// named YYYY-MM-DD.log.
//
// # Request Correlation
//
// The request ID middleware stores an ID with ContextWithRequestID. Ctx(ctx)
// returns a logger that carries it as the request_id field.
//
// # Untrusted Input
//
// Values taken from requests (URLs, headers) pass through SanitizeValue or
// SanitizeURL before being logged.
//
// # slog Bridge
//
// SlogHandler lets slog consumers such as sutureslog write through zerolog.
package logging
