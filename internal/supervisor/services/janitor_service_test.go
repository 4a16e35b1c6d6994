// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/aspectpad/internal/config"
	"github.com/tomtom215/aspectpad/internal/metrics"
	"github.com/tomtom215/aspectpad/internal/storage"
)

type fakeSweeper struct {
	mu      sync.Mutex
	calls   int
	ages    []time.Duration
	removed int
	err     error
	swept   chan struct{}
}

func newFakeSweeper(removed int, err error) *fakeSweeper {
	return &fakeSweeper{removed: removed, err: err, swept: make(chan struct{}, 16)}
}

func (f *fakeSweeper) SweepTemp(_ context.Context, olderThan time.Duration) (int, error) {
	f.mu.Lock()
	f.calls++
	f.ages = append(f.ages, olderThan)
	f.mu.Unlock()

	select {
	case f.swept <- struct{}{}:
	default:
	}
	return f.removed, f.err
}

func (f *fakeSweeper) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func waitSweeps(t *testing.T, f *fakeSweeper, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-f.swept:
		case <-time.After(2 * time.Second):
			t.Fatalf("only %d of %d sweeps happened", i, n)
		}
	}
}

func TestStorageJanitorService_Interface(t *testing.T) {
	var _ suture.Service = (*StorageJanitorService)(nil)
	var _ TempSweeper = (*storage.Store)(nil)
}

func TestNewStorageJanitorService_Defaults(t *testing.T) {
	svc := NewStorageJanitorService(newFakeSweeper(0, nil), config.StorageConfig{})
	if svc.interval != 15*time.Minute {
		t.Errorf("interval = %v, want 15m", svc.interval)
	}
	if svc.tempMaxAge != time.Hour {
		t.Errorf("tempMaxAge = %v, want 1h", svc.tempMaxAge)
	}
	if svc.String() != "storage-janitor" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestStorageJanitorService_SweepsOnStartAndTick(t *testing.T) {
	sweeper := newFakeSweeper(2, nil)
	svc := NewStorageJanitorService(sweeper, config.StorageConfig{
		SweepInterval: 20 * time.Millisecond,
		TempMaxAge:    5 * time.Minute,
	})

	before := testutil.ToFloat64(metrics.TempFilesSwept)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	waitSweeps(t, sweeper, 3)
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}

	sweeper.mu.Lock()
	for _, age := range sweeper.ages {
		if age != 5*time.Minute {
			t.Errorf("SweepTemp olderThan = %v, want 5m", age)
		}
	}
	sweeper.mu.Unlock()

	calls := sweeper.Calls()
	if got := testutil.ToFloat64(metrics.TempFilesSwept) - before; got != float64(2*calls) {
		t.Errorf("TempFilesSwept delta = %v, want %d", got, 2*calls)
	}
}

func TestStorageJanitorService_ErrorsDoNotStopService(t *testing.T) {
	sweeper := newFakeSweeper(0, errors.New("permission denied"))
	svc := NewStorageJanitorService(sweeper, config.StorageConfig{
		SweepInterval: 10 * time.Millisecond,
		TempMaxAge:    time.Minute,
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	waitSweeps(t, sweeper, 3)
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
}

func TestStorageJanitorService_RealStore(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.New(config.StorageConfig{Dir: dir, DefaultExtension: ".jpg"})
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}

	stale := filepath.Join(dir, ".tmp-stale")
	if err := os.WriteFile(stale, []byte("partial"), 0o600); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatal(err)
	}

	name, err := store.Save(context.Background(), []byte("kept"), ".png")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	svc := NewStorageJanitorService(store, config.StorageConfig{
		SweepInterval: time.Hour,
		TempMaxAge:    time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, err := os.Stat(stale); os.IsNotExist(err) {
			break
		}
		if time.Now().After(deadline) {
			cancel()
			t.Fatal("stale temp file was not swept")
		}
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	<-errCh

	if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
		t.Errorf("stored artifact removed: %v", err)
	}
}
