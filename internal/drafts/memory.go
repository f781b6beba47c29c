package drafts

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	draft     Draft
	expiresAt time.Time
}

// MemoryStore is an in-process Store used when no Redis address is configured.
// Expiry counts from the last Save, as with SET ... EX; expired drafts are dropped lazily.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[uuid.UUID]map[uuid.UUID]memoryEntry
}

// NewMemoryStore creates a MemoryStore. A non-positive ttl selects DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[uuid.UUID]map[uuid.UUID]memoryEntry),
	}
}

func (s *MemoryStore) Save(_ context.Context, d *Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	prepare(d, now.UTC())

	byID, ok := s.entries[d.ProfileID]
	if !ok {
		byID = make(map[uuid.UUID]memoryEntry)
		s.entries[d.ProfileID] = byID
	}
	byID[d.ID] = memoryEntry{draft: *d, expiresAt: now.Add(s.ttl)}
	return nil
}

// lookup returns the live entry for id, evicting it if it has expired. Callers hold mu.
func (s *MemoryStore) lookup(profileID, id uuid.UUID) (memoryEntry, bool) {
	e, ok := s.entries[profileID][id]
	if !ok {
		return memoryEntry{}, false
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries[profileID], id)
		return memoryEntry{}, false
	}
	return e, true
}

func (s *MemoryStore) Get(_ context.Context, profileID, id uuid.UUID) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.lookup(profileID, id)
	if !ok {
		return nil, ErrNotFound
	}
	d := e.draft
	return &d, nil
}

func (s *MemoryStore) Delete(_ context.Context, profileID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lookup(profileID, id); !ok {
		return ErrNotFound
	}
	delete(s.entries[profileID], id)
	return nil
}

func (s *MemoryStore) List(_ context.Context, profileID uuid.UUID) ([]Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Draft, 0, len(s.entries[profileID]))
	for id := range s.entries[profileID] {
		if e, ok := s.lookup(profileID, id); ok {
			out = append(out, e.draft)
		}
	}
	sortDrafts(out)
	return out, nil
}

func (s *MemoryStore) DeleteAll(_ context.Context, profileID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, profileID)
	return nil
}
