// Package snapshot persists host datasets between CLI runs.
//
// A snapshot is an opaque blob, usually the JSON dataset of a memhost.Host,
// stored under an id with a free-form label. Stores keep a sequence so
// List returns snapshots in the order they were last saved.
package snapshot

import (
	"errors"
	"time"
)

// Store persists snapshots.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a snapshot. Overwrites an existing snapshot with the
	// same id and moves it to the end of the sequence.
	Save(id, label string, data []byte) error

	// Load retrieves a snapshot.
	// Returns ErrNotFound if the snapshot doesn't exist.
	Load(id string) ([]byte, error)

	// List returns all snapshots, ordered by sequence.
	// Returns an empty slice (not error) if the store is empty.
	List() ([]Info, error)

	// Delete removes a snapshot.
	// Returns nil if the snapshot doesn't exist.
	Delete(id string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides metadata without loading the data.
type Info struct {
	ID        string
	Label     string
	Sequence  int
	Timestamp time.Time
	Size      int64
}

// Sentinel errors for snapshot operations.
var (
	// ErrNotFound indicates a snapshot doesn't exist.
	ErrNotFound = errors.New("snapshot not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("snapshot store closed")
)
