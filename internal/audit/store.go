package audit

import (
	"context"
	"sync"

	"github.com/Kamduis/name-combo/pkg/domain"
)

// Store is an append-only sink for audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByPerson(ctx context.Context, personID domain.PersonID) ([]Event, error)
}

// InMemoryStore keeps events in memory, for development and tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *InMemoryStore) ListByPerson(_ context.Context, personID domain.PersonID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.PersonID == personID {
			out = append(out, e)
		}
	}
	return out, nil
}
