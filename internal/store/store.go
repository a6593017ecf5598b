package store

import (
	"errors"

	"shuttle-app/internal/model"
)

var ErrSessionNotFound = errors.New("session not found")

// Store persists session snapshots. Settings are stored verbatim; the store
// never interprets them.
type Store interface {
	ListSessions() []model.Session
	GetSession(id string) (model.Session, bool)
	CreateSession(session model.Session) (model.Session, error)
	UpdateSession(session model.Session) error
	FinishSession(id string) error
}
