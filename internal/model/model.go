package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"
)

// CourtCapacity is the number of players on a doubles court.
const CourtCapacity = 4

type MemberID int

type Algorithm string

const (
	AlgorithmDiscreteness Algorithm = "DISCRETENESS"
	AlgorithmEvenness     Algorithm = "EVENNESS"
)

func (a Algorithm) Valid() bool {
	return a == AlgorithmDiscreteness || a == AlgorithmEvenness
}

var ErrInvalidCourtMembers = errors.New("invalid court members")

// CourtMembers is one court of four players.
type CourtMembers [CourtCapacity]MemberID

// UnmarshalJSON rejects courts that do not hold exactly CourtCapacity
// members; plain array decoding would drop or zero-fill the difference.
func (c *CourtMembers) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var ids []MemberID
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	if len(ids) != CourtCapacity {
		return fmt.Errorf("%w: court of %d members, want %d", ErrInvalidCourtMembers, len(ids), CourtCapacity)
	}
	copy(c[:], ids)
	return nil
}

// GameMembers is one round: a court group per active court.
type GameMembers []CourtMembers

func (g GameMembers) Flat() []MemberID {
	flat := make([]MemberID, 0, len(g)*CourtCapacity)
	for _, court := range g {
		flat = append(flat, court[:]...)
	}
	return flat
}

func (g GameMembers) Contains(id MemberID) bool {
	for _, court := range g {
		if slices.Contains(court[:], id) {
			return true
		}
	}
	return false
}

// Matrix converts the round to plain rows for the array helpers.
func (g GameMembers) Matrix() [][]int {
	matrix := make([][]int, len(g))
	for i, court := range g {
		row := make([]int, CourtCapacity)
		for j, id := range court {
			row[j] = int(id)
		}
		matrix[i] = row
	}
	return matrix
}

type History struct {
	Members     GameMembers `json:"members"`
	RestMembers []MemberID  `json:"restMembers"`
	Deleted     bool        `json:"deleted,omitempty"`
}

type PlayCount struct {
	PlayCount int `json:"playCount"`
	BaseCount int `json:"baseCount"`
}

func (p PlayCount) Total() int {
	return p.PlayCount + p.BaseCount
}

type Settings struct {
	CourtCount int                    `json:"courtCount"`
	Members    []MemberID             `json:"members"`
	Histories  []History              `json:"histories"`
	GameCounts map[MemberID]PlayCount `json:"gameCounts"`
	Algorithm  Algorithm              `json:"algorithm"`
}

// Capacity is the number of members playing in one round.
func (s Settings) Capacity() int {
	return s.CourtCount * CourtCapacity
}

// Clone copies the parts of the snapshot a transition may write. Recorded
// GameMembers are never modified after being appended, so they are shared.
func (s Settings) Clone() Settings {
	clone := s
	clone.Members = slices.Clone(s.Members)
	clone.Histories = slices.Clone(s.Histories)
	clone.GameCounts = maps.Clone(s.GameCounts)
	if clone.GameCounts == nil {
		clone.GameCounts = map[MemberID]PlayCount{}
	}
	return clone
}

func (s Settings) HasMember(id MemberID) bool {
	return slices.Contains(s.Members, id)
}

// Session is the stored envelope around one settings snapshot.
type Session struct {
	ID         string     `json:"id"`
	Settings   Settings   `json:"settings"`
	KeyHash    string     `json:"-"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

func (s Session) Finished() bool {
	return s.FinishedAt != nil && !s.FinishedAt.IsZero()
}
