package render

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Kamduis/name-combo/pkg/domain"
	"github.com/Kamduis/name-combo/pkg/platform/sentinel"
)

// Memory is a mutex-guarded TTL cache for single-instance deployments and
// tests.
type Memory struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
	clock   func() time.Time
}

type memoryEntry struct {
	rendered  string
	expiresAt time.Time
}

// MemoryOption configures a Memory cache.
type MemoryOption func(*Memory)

// WithClock sets the clock function for testability.
func WithClock(clock func() time.Time) MemoryOption {
	return func(m *Memory) {
		if clock != nil {
			m.clock = clock
		}
	}
}

func NewMemory(ttl time.Duration, opts ...MemoryOption) *Memory {
	m := &Memory{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		clock:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

func (m *Memory) Get(_ context.Context, key Key) (string, error) {
	m.mu.RLock()
	entry, ok := m.entries[key.String()]
	m.mu.RUnlock()
	if !ok || m.clock().After(entry.expiresAt) {
		return "", sentinel.ErrNotFound
	}
	return entry.rendered, nil
}

func (m *Memory) Set(_ context.Context, key Key, rendered string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key.String()] = memoryEntry{
		rendered:  rendered,
		expiresAt: m.clock().Add(m.ttl),
	}
	return nil
}

func (m *Memory) Invalidate(_ context.Context, personID domain.PersonID) error {
	prefix := personID.String() + ":"
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			delete(m.entries, k)
		}
	}
	return nil
}
