// Package session keeps in-progress assessments. Sessions live in memory
// behind a mutex; a SQLite file acts as the local-device cache so an
// abandoned session survives a restart. There is no server-side store
// beyond that file.
package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/oliver/market-intel/internal/assessment"
)

var ErrNotFound = errors.New("session not found")

type Manager struct {
	mu       sync.Mutex
	sessions map[string]*assessment.Session
	cache    *Cache
}

// NewManager builds a manager. cache may be nil, in which case sessions
// are memory-only.
func NewManager(cache *Cache) (*Manager, error) {
	m := &Manager{
		sessions: make(map[string]*assessment.Session),
		cache:    cache,
	}
	if cache != nil {
		restored, err := cache.LoadAll()
		if err != nil {
			return nil, err
		}
		for _, s := range restored {
			if err := assessment.Restore(s); err != nil {
				log.Warn().Str("session", s.ID).Err(err).Msg("dropping cached session")
				continue
			}
			m.sessions[s.ID] = s
		}
		if len(m.sessions) > 0 {
			log.Info().Int("sessions", len(m.sessions)).Msg("restored cached sessions")
		}
	}
	return m, nil
}

// Create starts a new session of the given kind.
func (m *Manager) Create(kind assessment.Kind, subjectID string) (*assessment.Session, error) {
	s, err := assessment.NewSession(uuid.NewString(), kind, subjectID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	m.persist(s)
	return s.Clone(), nil
}

// Get returns a copy of the session. The live session never leaves the
// manager, so readers cannot race a concurrent mutation.
func (m *Manager) Get(id string) (*assessment.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

// Update applies fn to the session under the manager lock, so session
// mutations never interleave, then re-caches it and returns a copy.
func (m *Manager) Update(id string, fn func(*assessment.Session) error) (*assessment.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	m.persist(s)
	return s.Clone(), nil
}

// Delete discards a session. Discarding has no side effects beyond the
// cache row.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	if m.cache != nil {
		if err := m.cache.Delete(id); err != nil {
			log.Warn().Str("session", id).Err(err).Msg("failed to remove cached session")
		}
	}
}

func (m *Manager) persist(s *assessment.Session) {
	if m.cache == nil {
		return
	}
	if err := m.cache.Save(s); err != nil {
		log.Warn().Str("session", s.ID).Err(err).Msg("failed to cache session")
	}
}
