// Package registry holds the in-memory collection of file records.
//
// The registry is the source of truth for which files exist. It does not
// survive a process restart; blob content on disk without a record is
// unreachable.
package registry

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrNotFound is returned when no record exists for an id.
	ErrNotFound = errors.New("file not found")
	// ErrDuplicateID is returned when inserting an id that already exists.
	ErrDuplicateID = errors.New("duplicate file id")
)

// FileRecord is the metadata entry for one stored blob. Records are
// immutable after insertion.
type FileRecord struct {
	ID        string
	Name      string
	Size      int64
	CreatedAt time.Time
	// BlobKey is the blob store handle backing this record. It is
	// server-generated and never derived from client input.
	BlobKey string
}

// Registry is an ordered, mutex-guarded set of file records.
type Registry struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]FileRecord
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{byID: make(map[string]FileRecord)}
}

// Insert appends a record. The id must be unique; collisions should never
// happen with generated ids but are checked defensively.
func (r *Registry) Insert(rec FileRecord) error {
	if rec.ID == "" {
		return errors.New("record id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[rec.ID]; ok {
		return ErrDuplicateID
	}
	r.byID[rec.ID] = rec
	r.order = append(r.order, rec.ID)
	return nil
}

// List returns a snapshot of all records in insertion order. The snapshot
// is independent of later mutation.
func (r *Registry) List() []FileRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]FileRecord, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Lookup returns the record for id, or ErrNotFound.
func (r *Registry) Lookup(id string) (FileRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[id]
	if !ok {
		return FileRecord{}, ErrNotFound
	}
	return rec, nil
}

// Remove deletes the record for id. A second remove of the same id reports
// ErrNotFound, never success.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len reports the number of records.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
