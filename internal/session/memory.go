package session

import (
	"context"
	"sync"
	"time"

	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/apierror"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/model"
)

// MemoryStore is the single-process default backend. Sessions expire after
// ttl; expired entries are dropped lazily on read.
type MemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

type memoryEntry struct {
	sesion model.Sesion
	vence  time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, entries: make(map[string]memoryEntry)}
}

func (m *MemoryStore) Guardar(_ context.Context, id string, s model.Sesion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = memoryEntry{sesion: s, vence: time.Now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Leer(_ context.Context, id string) (*model.Sesion, error) {
	m.mu.RLock()
	entry, ok := m.entries[id]
	m.mu.RUnlock()

	if !ok {
		return nil, apierror.ErrSinSesion
	}
	if time.Now().After(entry.vence) {
		m.mu.Lock()
		delete(m.entries, id)
		m.mu.Unlock()
		return nil, apierror.ErrSinSesion
	}

	s := entry.sesion
	if err := validar(&s); err != nil {
		// Invalid records are cleared, not surfaced.
		m.mu.Lock()
		delete(m.entries, id)
		m.mu.Unlock()
		return nil, err
	}
	return &s, nil
}

func (m *MemoryStore) Limpiar(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

var _ Store = (*MemoryStore)(nil)
