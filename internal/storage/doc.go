// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

/*
Package storage persists processed images in a single flat directory.

Every artifact is named with 128 bits of crypto/rand output in hex followed by
an extension taken from the source URL (or the configured default), e.g.

	3f9a0c1e5b7d2468ace013579bdf0246.png

Existence on disk is the only record; there is no index or metadata file.

# Writes

Save writes to a ".tmp-*" file in the same directory and hard-links it to the
final name. os.Link fails with EEXIST instead of replacing an existing file,
which gives create-if-absent semantics without a lock, and readers only ever
see complete files. The temp file is always removed afterwards.

# Reads

Resolve and Open accept only names matching the shape Save produces. Anything else,
including traversal attempts, is ErrInvalidName; callers expose both that and
ErrNotFound as a plain 404. Open hands back the file itself so downloads
are streamed rather than read into memory.

# Housekeeping

Temp files orphaned by a crash are removed by SweepTemp, which the storage
janitor service runs on an interval.
*/
package storage
