package rotation

import (
	"errors"

	"shuttle-app/internal/model"
)

var (
	ErrInvalidCourtCount = errors.New("court count must be at least 1")
	ErrNotEnoughMembers  = errors.New("not enough members to fill the courts")
	ErrInvalidAlgorithm  = errors.New("unknown algorithm")
	ErrNoHistory         = errors.New("no round to retry")
	ErrMemberNotFound    = errors.New("member not found")
	ErrInvalidMembers    = model.ErrInvalidCourtMembers
	ErrUnknownEvent      = errors.New("unknown event type")
	ErrMissingSettings   = errors.New("initialize event without settings")
)
