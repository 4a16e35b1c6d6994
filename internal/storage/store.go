// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tomtom215/aspectpad/internal/config"
)

var (
	// ErrStore wraps every failure to persist an artifact.
	ErrStore = errors.New("storage failure")

	// ErrCollision means the generated name already existed. Nothing was overwritten.
	ErrCollision = errors.New("artifact name already exists")

	// ErrInvalidName means a requested name is not one the store could have produced.
	ErrInvalidName = errors.New("invalid artifact name")

	// ErrNotFound means no artifact exists under the requested name.
	ErrNotFound = errors.New("artifact not found")
)

const (
	// nameBytes is the amount of randomness in every artifact name (128 bits).
	nameBytes = 16

	// tempPrefix marks in-flight writes. Resolve never matches it.
	tempPrefix = ".tmp-"

	artifactMode fs.FileMode = 0o644
)

var (
	extensionPattern = regexp.MustCompile(`^\.[A-Za-z0-9]{1,10}$`)
	namePattern      = regexp.MustCompile(`^[0-9a-f]{32}\.[A-Za-z0-9]{1,10}$`)
)

// Artifact is a stored, immutable processed image.
type Artifact struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// Store is a flat directory of processed images addressed by random names.
// It is safe for concurrent use; uniqueness of names is enforced by the
// filesystem rather than by locks.
type Store struct {
	root       string
	defaultExt string

	// randRead fills name entropy. Replaced in tests to force collisions.
	randRead func([]byte) (int, error)
	now      func() time.Time
}

// New opens the store rooted at cfg.Dir, creating the directory if needed.
func New(cfg config.StorageConfig) (*Store, error) {
	root, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolve storage dir %s: %w", cfg.Dir, err)
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", root, err)
	}

	defaultExt := cfg.DefaultExtension
	if !extensionPattern.MatchString(defaultExt) {
		defaultExt = ".jpg"
	}

	return &Store{
		root:       root,
		defaultExt: defaultExt,
		randRead:   rand.Read,
		now:        time.Now,
	}, nil
}

// Root returns the absolute store directory.
func (s *Store) Root() string {
	return s.root
}

// ValidName reports whether name has the shape of a stored artifact name.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// SafeExtension returns hint when it is a short alphanumeric extension with a
// leading dot, or fallback otherwise.
func SafeExtension(hint, fallback string) string {
	if extensionPattern.MatchString(hint) {
		return hint
	}
	return fallback
}

// newName returns 32 random hex characters followed by ext.
func (s *Store) newName(ext string) (string, error) {
	buf := make([]byte, nameBytes)
	if _, err := s.randRead(buf); err != nil {
		return "", fmt.Errorf("read random name: %w", err)
	}
	return hex.EncodeToString(buf) + ext, nil
}

// Save writes data under a fresh random name and returns that name.
//
// The bytes are written to a temp file in the store directory and then
// hard-linked to the final name, so readers never observe a partial file
// and an existing name is never overwritten (ErrCollision).
func (s *Store) Save(ctx context.Context, data []byte, extHint string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrStore, err)
	}

	name, err := s.newName(SafeExtension(extHint, s.defaultExt))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStore, err)
	}

	tmp, err := os.CreateTemp(s.root, tempPrefix+"*")
	if err != nil {
		return "", fmt.Errorf("%w: create temp file: %w", ErrStore, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: write temp file: %w", ErrStore, err)
	}
	if err := tmp.Chmod(artifactMode); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: chmod temp file: %w", ErrStore, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: sync temp file: %w", ErrStore, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: close temp file: %w", ErrStore, err)
	}

	finalPath := filepath.Join(s.root, name)
	if err := os.Link(tmpPath, finalPath); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%w: %w: %s", ErrStore, ErrCollision, name)
		}
		return "", fmt.Errorf("%w: link %s: %w", ErrStore, name, err)
	}

	return name, nil
}

// Resolve returns metadata for the artifact stored under name.
//
// Names that could not have come from Save (traversal, separators, wrong
// shape) yield ErrInvalidName without touching the filesystem.
func (s *Store) Resolve(ctx context.Context, name string) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ValidName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	path := filepath.Join(s.root, name)
	if rel, err := filepath.Rel(s.root, path); err != nil || rel != name {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return &Artifact{
		Name:    name,
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Open resolves name and opens the artifact for reading. The caller closes
// the returned file.
func (s *Store) Open(ctx context.Context, name string) (*os.File, *Artifact, error) {
	art, err := s.Resolve(ctx, name)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(art.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, nil, fmt.Errorf("open %s: %w", name, err)
	}
	return f, art, nil
}

// Ping checks that the store directory exists and is writable.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.CreateTemp(s.root, tempPrefix+"ping-*")
	if err != nil {
		return fmt.Errorf("storage not writable: %w", err)
	}
	name := f.Name()
	closeErr := f.Close()
	if err := os.Remove(name); err != nil {
		return fmt.Errorf("storage cleanup failed: %w", err)
	}
	return closeErr
}

// SweepTemp removes temp files older than olderThan left behind by
// interrupted writes. It returns how many were removed.
func (s *Store) SweepTemp(ctx context.Context, olderThan time.Duration) (int, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return 0, fmt.Errorf("read storage dir: %w", err)
	}

	cutoff := s.now().Add(-olderThan)
	removed := 0
	var errs []error

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), tempPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, err)
			}
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.root, entry.Name())); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, err)
			}
			continue
		}
		removed++
	}

	return removed, errors.Join(errs...)
}
