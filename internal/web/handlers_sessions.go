package web

import (
	"fmt"
	"net/http"
	"strconv"

	"shuttle-app/internal/model"
	"shuttle-app/internal/rotation"
	"shuttle-app/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type createSessionRequest struct {
	MemberCount int             `json:"memberCount"`
	CourtCount  int             `json:"courtCount"`
	Algorithm   model.Algorithm `json:"algorithm"`
}

type createSessionResponse struct {
	Session model.Session `json:"session"`
	Key     string        `json:"key"`
}

type sessionResponse struct {
	Session model.Session     `json:"session"`
	Latest  model.GameMembers `json:"latest,omitempty"`
}

type joinRequest struct {
	BaseCount *int `json:"baseCount"`
}

type baseCountRequest struct {
	BaseCount int `json:"baseCount"`
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	settings, err := rotation.NewSettings(req.MemberCount, req.CourtCount, req.Algorithm)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	key, hash, err := newSessionKey()
	if err != nil {
		s.writeError(w, r, fmt.Errorf("session key: %w", err))
		return
	}
	session, err := s.store.CreateSession(model.Session{Settings: settings, KeyHash: hash})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("session created",
		zap.String("session_id", session.ID),
		zap.Int("members", len(settings.Members)),
		zap.Int("courts", settings.CourtCount),
		zap.String("algorithm", string(settings.Algorithm)),
	)
	writeJSON(w, http.StatusCreated, createSessionResponse{Session: session, Key: key})
}

func (s *Server) handleSessionShow(w http.ResponseWriter, r *http.Request) {
	session, ok := s.store.GetSession(chi.URLParam(r, "sessionID"))
	if !ok {
		s.writeError(w, r, store.ErrSessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Session: session, Latest: rotation.LatestMembers(session.Settings)})
}

func (s *Server) handleSessionStats(w http.ResponseWriter, r *http.Request) {
	session, ok := s.store.GetSession(chi.URLParam(r, "sessionID"))
	if !ok {
		s.writeError(w, r, store.ErrSessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rotation.MemberStats(session.Settings))
}

func (s *Server) handleSessionFinish(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(settings model.Settings) (model.Settings, bool, error) {
		return settings, true, nil
	})
}

func (s *Server) handleMemberJoin(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.BaseCount != nil {
		if err := checkBaseCount(*req.BaseCount); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	s.mutate(w, r, func(settings model.Settings) (model.Settings, bool, error) {
		if req.BaseCount != nil {
			return rotation.JoinWithBaseCount(settings, *req.BaseCount), false, nil
		}
		return rotation.Join(settings), false, nil
	})
}

func (s *Server) handleMemberLeave(w http.ResponseWriter, r *http.Request) {
	memberID, err := memberIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(settings model.Settings) (model.Settings, bool, error) {
		next, err := rotation.Leave(settings, memberID)
		return next, false, err
	})
}

func (s *Server) handleMemberBaseCount(w http.ResponseWriter, r *http.Request) {
	memberID, err := memberIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req baseCountRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := checkBaseCount(req.BaseCount); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(settings model.Settings) (model.Settings, bool, error) {
		next, err := rotation.SetBaseCount(settings, memberID, req.BaseCount)
		return next, false, err
	})
}

func checkBaseCount(baseCount int) error {
	if baseCount < 0 {
		return fmt.Errorf("%w: base count must not be negative", errBadRequest)
	}
	return nil
}

func memberIDParam(r *http.Request) (model.MemberID, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "memberID"))
	if err != nil {
		return 0, fmt.Errorf("%w: member id must be a number", errBadRequest)
	}
	return model.MemberID(id), nil
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(settings model.Settings) (model.Settings, bool, error) {
		next, err := s.generate(settings)
		return next, false, err
	})
}

func (s *Server) handleRetry(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(settings model.Settings) (model.Settings, bool, error) {
		next, err := s.retry(settings)
		return next, false, err
	})
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var event rotation.Event
	if err := decodeJSON(r, &event); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(settings model.Settings) (model.Settings, bool, error) {
		next, err := rotation.Apply(settings, event)
		return next, event.Type == rotation.EventFinish, err
	})
}

// mutate runs one read-modify-write on a session under its lock. The
// transition reports whether the session should be finished afterwards.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, transition func(model.Settings) (model.Settings, bool, error)) {
	sessionID := chi.URLParam(r, "sessionID")
	unlock := s.locks.lock(sessionID)
	defer unlock()

	session, ok := s.store.GetSession(sessionID)
	if !ok {
		s.writeError(w, r, store.ErrSessionNotFound)
		return
	}
	if !checkSessionKey(session.KeyHash, r.Header.Get(sessionKeyHeader)) {
		s.writeError(w, r, errInvalidKey)
		return
	}
	if session.Finished() {
		s.writeError(w, r, errSessionFinished)
		return
	}

	settings, finish, err := transition(session.Settings)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	session.Settings = settings
	if err := s.store.UpdateSession(session); err != nil {
		s.writeError(w, r, err)
		return
	}
	if finish {
		if err := s.store.FinishSession(sessionID); err != nil {
			s.writeError(w, r, err)
			return
		}
		s.logger.Info("session finished", zap.String("session_id", sessionID))
	}

	updated, ok := s.store.GetSession(sessionID)
	if !ok {
		s.writeError(w, r, store.ErrSessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Session: updated, Latest: rotation.LatestMembers(updated.Settings)})
}
