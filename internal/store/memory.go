package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"shuttle-app/internal/model"

	"github.com/google/uuid"
)

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]model.Session),
	}
}

func (s *MemoryStore) ListSessions() []model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]model.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, copySession(session))
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].CreatedAt.After(sessions[j].CreatedAt) })
	return sessions
}

func (s *MemoryStore) GetSession(id string) (model.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return model.Session{}, false
	}
	return copySession(session), true
}

func (s *MemoryStore) CreateSession(session model.Session) (model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if _, exists := s.sessions[session.ID]; exists {
		return model.Session{}, errors.New("session already exists")
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	if session.UpdatedAt.IsZero() {
		session.UpdatedAt = session.CreatedAt
	}
	s.sessions[session.ID] = copySession(session)
	return session, nil
}

func (s *MemoryStore) UpdateSession(session model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.ID]; !ok {
		return ErrSessionNotFound
	}
	session.UpdatedAt = time.Now()
	s.sessions[session.ID] = copySession(session)
	return nil
}

func (s *MemoryStore) FinishSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	now := time.Now()
	session.FinishedAt = &now
	session.UpdatedAt = now
	s.sessions[id] = session
	return nil
}

// copySession keeps callers from reaching into stored snapshots.
func copySession(session model.Session) model.Session {
	session.Settings = session.Settings.Clone()
	if session.FinishedAt != nil {
		finished := *session.FinishedAt
		session.FinishedAt = &finished
	}
	return session
}
