// Package pointer tracks live contacts and the shapes they are drawing.
package pointer

import (
	"github.com/google/uuid"

	"TouchTracker/internal/geom"
)

// ID identifies one physical contact for the lifetime of its gesture.
// IDs are assigned by the engine and never reused.
type ID struct {
	u uuid.UUID
}

// NewID returns a fresh identity.
func NewID() ID {
	return ID{u: uuid.New()}
}

// IsZero reports whether id was never assigned.
func (id ID) IsZero() bool {
	return id.u == uuid.Nil
}

func (id ID) String() string {
	return id.u.String()
}

// Contact is one pointer position in an event batch.
type Contact struct {
	ID    ID
	Point geom.Point
}

// Registry maps platform pointer keys to engine IDs. Platforms reuse their
// keys across gestures, so a key gets a new ID on every Begin.
type Registry[K comparable] struct {
	ids map[K]ID
}

// NewRegistry creates an empty registry.
func NewRegistry[K comparable]() *Registry[K] {
	return &Registry[K]{ids: make(map[K]ID)}
}

// Begin assigns a fresh ID to key.
func (r *Registry[K]) Begin(key K) ID {
	id := NewID()
	r.ids[key] = id
	return id
}

// Lookup returns the ID currently bound to key.
func (r *Registry[K]) Lookup(key K) (ID, bool) {
	id, ok := r.ids[key]
	return id, ok
}

// End forgets key and returns the ID it was bound to.
func (r *Registry[K]) End(key K) (ID, bool) {
	id, ok := r.ids[key]
	if ok {
		delete(r.ids, key)
	}
	return id, ok
}

// Len returns the number of bound keys.
func (r *Registry[K]) Len() int {
	return len(r.ids)
}

// Reset forgets every key and returns the IDs that were still bound.
func (r *Registry[K]) Reset() []ID {
	ids := make([]ID, 0, len(r.ids))
	for _, id := range r.ids {
		ids = append(ids, id)
	}
	clear(r.ids)
	return ids
}
