package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Kamduis/name-combo/internal/person/models"
	"github.com/Kamduis/name-combo/pkg/domain"
	"github.com/Kamduis/name-combo/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded Store for development and tests.
type InMemory struct {
	mu      sync.RWMutex
	persons map[domain.PersonID]*models.Person
}

func NewInMemory() *InMemory {
	return &InMemory{persons: make(map[domain.PersonID]*models.Person)}
}

func (s *InMemory) Create(_ context.Context, p *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.persons[p.ID]; exists {
		return sentinel.ErrConflict
	}
	cp := *p
	s.persons[p.ID] = &cp
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.PersonID) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.persons[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// FindByFamilyName matches case-insensitively and returns results sorted by
// creation time for stable listings.
func (s *InMemory) FindByFamilyName(_ context.Context, familyName string) ([]*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(strings.TrimSpace(familyName))
	var out []*models.Person
	for _, p := range s.persons {
		if strings.ToLower(p.Name.FamilyName()) == needle {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemory) Execute(_ context.Context, id domain.PersonID, validate func(*models.Person) error, apply func(*models.Person)) (*models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.persons[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := validate(p); err != nil {
		return nil, err
	}
	apply(p)
	cp := *p
	return &cp, nil
}

func (s *InMemory) Delete(_ context.Context, id domain.PersonID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.persons[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.persons, id)
	return nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.persons), nil
}
