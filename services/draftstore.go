// services/draftstore.go
package services

import (
	"sync"

	"hvacquote-backend/models"

	"github.com/google/uuid"
)

// DraftStore keeps the one in-progress draft each user is editing. Drafts
// are session state, not records: they live in memory, are created on first
// access with a single blank row, and are thrown away on reset. The store
// also carries the per-user save latch that blocks duplicate submits.
type DraftStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*draftEntry
}

type draftEntry struct {
	draft  *models.Draft
	saving bool
}

func NewDraftStore() *DraftStore {
	return &DraftStore{entries: make(map[uuid.UUID]*draftEntry)}
}

func (s *DraftStore) entry(owner uuid.UUID) *draftEntry {
	e, ok := s.entries[owner]
	if !ok {
		e = &draftEntry{draft: models.NewDraft()}
		s.entries[owner] = e
	}
	return e
}

// Snapshot returns a deep copy of the owner's current draft.
func (s *DraftStore) Snapshot(owner uuid.UUID) *models.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entry(owner).draft.Clone()
}

// Update applies one mutation to the owner's draft under the store lock.
func (s *DraftStore) Update(owner uuid.UUID, fn func(*models.Draft) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.entry(owner).draft)
}

// Reset discards the owner's draft, replacing it with a fresh one holding a
// single blank row.
func (s *DraftStore) Reset(owner uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(owner).draft = models.NewDraft()
}

// BeginSave acquires the owner's save latch. It returns false if a save is
// already in flight, in which case the caller must not write anything.
func (s *DraftStore) BeginSave(owner uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entry(owner)
	if e.saving {
		return false
	}
	e.saving = true
	return true
}

// EndSave releases the owner's save latch.
func (s *DraftStore) EndSave(owner uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(owner).saving = false
}
