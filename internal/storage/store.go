// Package storage retains uploaded originals between the upload step and
// later process/download steps, keyed by opaque handles.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNotFound is returned by Get when a handle does not reference stored
// bytes, either because it was never issued or because the entry was
// swept.
var ErrNotFound = errors.New("stored image not found")

// handleLen is the hex length of an issued handle (128 random bits).
const handleLen = 32

// Store is a directory-backed byte store addressed by opaque handles.
//
// Handles are random identifiers generated by the store, never derived
// from client-supplied filenames, so concurrent uploads of same-named
// files cannot collide. The handle is a capability: callers hold it and
// pass it back, and never interpret it as a filesystem path.
//
// Store is safe for concurrent use; each entry is written once and only
// read afterward.
type Store struct {
	dir string
}

// New creates the backing directory if needed and returns a Store rooted
// at dir.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Put stores a payload and returns the handle that retrieves it.
func (s *Store) Put(data []byte) (string, error) {
	raw := make([]byte, handleLen/2)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate handle: %w", err)
	}
	handle := hex.EncodeToString(raw)

	if err := os.WriteFile(filepath.Join(s.dir, handle), data, 0o644); err != nil {
		return "", fmt.Errorf("write stored image: %w", err)
	}
	return handle, nil
}

// Get returns the payload stored under handle, or ErrNotFound. Strings
// that are not well-formed handles are treated as unknown rather than
// resolved against the filesystem.
func (s *Store) Get(handle string) ([]byte, error) {
	if !validHandle(handle) {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(filepath.Join(s.dir, handle))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read stored image: %w", err)
	}
	return data, nil
}

// Sweep removes entries older than maxAge and reports how many were
// removed. Originals only need to survive between an upload and the
// process/download calls that follow it.
func (s *Store) Sweep(maxAge time.Duration) int {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !validHandle(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if os.Remove(filepath.Join(s.dir, entry.Name())) == nil {
			removed++
		}
	}
	return removed
}

func validHandle(h string) bool {
	if len(h) != handleLen {
		return false
	}
	for _, c := range h {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
