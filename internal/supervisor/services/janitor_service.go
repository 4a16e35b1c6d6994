// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package services

import (
	"context"
	"time"

	"github.com/tomtom215/aspectpad/internal/config"
	"github.com/tomtom215/aspectpad/internal/logging"
	"github.com/tomtom215/aspectpad/internal/metrics"
)

// TempSweeper removes abandoned temp files from an artifact store.
//
// Satisfied by *storage.Store.
type TempSweeper interface {
	SweepTemp(ctx context.Context, olderThan time.Duration) (int, error)
}

// StorageJanitorService periodically sweeps temp files that a crashed or
// interrupted write left in the upload directory.
//
// Sweep errors are logged and retried on the next tick rather than returned,
// so a transient filesystem error does not count against the supervisor's
// failure threshold.
type StorageJanitorService struct {
	store      TempSweeper
	interval   time.Duration
	tempMaxAge time.Duration
	name       string
}

// NewStorageJanitorService creates a janitor using cfg.SweepInterval and cfg.TempMaxAge.
func NewStorageJanitorService(store TempSweeper, cfg config.StorageConfig) *StorageJanitorService {
	interval := cfg.SweepInterval
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	maxAge := cfg.TempMaxAge
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &StorageJanitorService{
		store:      store,
		interval:   interval,
		tempMaxAge: maxAge,
		name:       "storage-janitor",
	}
}

// Serve implements suture.Service. It sweeps once at startup and then on
// every tick until ctx is canceled.
func (s *StorageJanitorService) Serve(ctx context.Context) error {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *StorageJanitorService) sweep(ctx context.Context) {
	removed, err := s.store.SweepTemp(ctx, s.tempMaxAge)
	if removed > 0 {
		metrics.TempFilesSwept.Add(float64(removed))
		logging.Info().Int("removed", removed).Dur("older_than", s.tempMaxAge).Msg("Removed abandoned temp files")
	}
	if err != nil && ctx.Err() == nil {
		logging.Warn().Err(err).Msg("Temp file sweep incomplete")
	}
}

// String implements fmt.Stringer for logging.
func (s *StorageJanitorService) String() string {
	return s.name
}
