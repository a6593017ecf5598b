package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"shuttle-app/internal/rotation"
	"shuttle-app/internal/store"

	"go.uber.org/zap"
)

var (
	errSessionFinished = errors.New("session is finished")
	errInvalidKey      = errors.New("missing or invalid session key")
	errBadRequest      = errors.New("invalid request")
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("handler failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, rotation.ErrInvalidCourtCount),
		errors.Is(err, rotation.ErrNotEnoughMembers),
		errors.Is(err, rotation.ErrInvalidAlgorithm),
		errors.Is(err, rotation.ErrInvalidMembers),
		errors.Is(err, rotation.ErrUnknownEvent),
		errors.Is(err, rotation.ErrMissingSettings):
		return http.StatusBadRequest
	case errors.Is(err, errInvalidKey):
		return http.StatusUnauthorized
	case errors.Is(err, store.ErrSessionNotFound),
		errors.Is(err, rotation.ErrMemberNotFound):
		return http.StatusNotFound
	case errors.Is(err, errSessionFinished),
		errors.Is(err, rotation.ErrNoHistory):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// decodeJSON reads an optional JSON body; an empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errors.Join(errBadRequest, err)
	}
	return nil
}
