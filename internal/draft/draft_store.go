package draft

import (
	"sync"

	"github.com/google/uuid"
)

// DraftStore is an in-memory registry of live draft aggregates keyed
// by id, with one designated default for single-session deployments.
type DraftStore struct {
	mu        sync.Mutex
	drafts    map[uuid.UUID]*Draft
	defaultID uuid.UUID
}

func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: make(map[uuid.UUID]*Draft)}
}

func (s *DraftStore) AddDraft(d *Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.ID] = d
	if s.defaultID == uuid.Nil {
		s.defaultID = d.ID
	}
}

func (s *DraftStore) GetDraft(id uuid.UUID) (*Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	return d, ok
}

// Default returns the designated default draft, or nil if the store is
// empty.
func (s *DraftStore) Default() *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drafts[s.defaultID]
}

// SetDefault registers d and makes it the default, replacing whatever
// draft previously held that role. Used when a snapshot or remote push
// replaces the session state wholesale.
func (s *DraftStore) SetDefault(d *Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.drafts[s.defaultID]; ok && old.ID != d.ID {
		delete(s.drafts, old.ID)
	}
	s.drafts[d.ID] = d
	s.defaultID = d.ID
}

func (s *DraftStore) DeleteDraft(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
}
