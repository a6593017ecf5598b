package rotation

import (
	"fmt"

	"shuttle-app/internal/model"
)

type EventType string

const (
	EventInitialize EventType = "INITIALIZE"
	EventJoin       EventType = "JOIN"
	EventLeave      EventType = "LEAVE"
	EventGenerate   EventType = "GENERATE"
	EventRetry      EventType = "RETRY"
	EventFinish     EventType = "FINISH"
)

// Event is a settings change made by another participant. Generated rounds
// travel as their members so the receiver replays them without sampling.
type Event struct {
	Type     EventType         `json:"type"`
	MemberID model.MemberID    `json:"memberId,omitempty"`
	Members  model.GameMembers `json:"members,omitempty"`
	Settings *model.Settings   `json:"settings,omitempty"`
}

// Apply folds one event into the settings.
func Apply(settings model.Settings, event Event) (model.Settings, error) {
	switch event.Type {
	case EventInitialize:
		if event.Settings == nil {
			return model.Settings{}, ErrMissingSettings
		}
		if err := validateSettings(*event.Settings); err != nil {
			return model.Settings{}, err
		}
		if !event.Settings.Algorithm.Valid() {
			return model.Settings{}, fmt.Errorf("%w: %q", ErrInvalidAlgorithm, event.Settings.Algorithm)
		}
		return event.Settings.Clone(), nil
	case EventJoin:
		return Join(settings), nil
	case EventLeave:
		return Leave(settings, event.MemberID)
	case EventGenerate:
		if err := ValidateGameMembers(settings, event.Members); err != nil {
			return model.Settings{}, err
		}
		return ReplayGenerate(settings, event.Members), nil
	case EventRetry:
		if err := ValidateGameMembers(settings, event.Members); err != nil {
			return model.Settings{}, err
		}
		return ReplayRetry(settings, event.Members)
	case EventFinish:
		return settings, nil
	}
	return model.Settings{}, fmt.Errorf("%w: %q", ErrUnknownEvent, event.Type)
}

// ValidateGameMembers checks a round received from outside: one court per
// active court, only roster members, nobody twice.
func ValidateGameMembers(settings model.Settings, members model.GameMembers) error {
	if len(members) != settings.CourtCount {
		return fmt.Errorf("%w: %d courts, want %d", ErrInvalidMembers, len(members), settings.CourtCount)
	}
	seen := make(map[model.MemberID]bool, len(members)*model.CourtCapacity)
	for _, id := range members.Flat() {
		if !settings.HasMember(id) {
			return fmt.Errorf("%w: member %d is not on the roster", ErrInvalidMembers, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: member %d appears twice", ErrInvalidMembers, id)
		}
		seen[id] = true
	}
	return nil
}
