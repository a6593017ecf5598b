package rotation

import (
	"fmt"
	"slices"

	"shuttle-app/internal/model"

	"go.uber.org/zap"
)

// NewSettings starts a session with members numbered 1..memberCount.
func NewSettings(memberCount, courtCount int, algorithm model.Algorithm) (model.Settings, error) {
	if algorithm == "" {
		algorithm = model.AlgorithmDiscreteness
	}
	if !algorithm.Valid() {
		return model.Settings{}, fmt.Errorf("%w: %q", ErrInvalidAlgorithm, algorithm)
	}
	settings := model.Settings{
		CourtCount: courtCount,
		Members:    make([]model.MemberID, 0, memberCount),
		Histories:  []model.History{},
		GameCounts: make(map[model.MemberID]model.PlayCount, memberCount),
		Algorithm:  algorithm,
	}
	for i := 1; i <= memberCount; i++ {
		id := model.MemberID(i)
		settings.Members = append(settings.Members, id)
		settings.GameCounts[id] = model.PlayCount{}
	}
	if err := validateSettings(settings); err != nil {
		return model.Settings{}, err
	}
	return settings, nil
}

// AddHistory appends members as the newest round and counts one play for
// each of them.
func AddHistory(settings model.Settings, members model.GameMembers) model.Settings {
	next := settings.Clone()
	next.Histories = append(next.Histories, model.History{
		Members:     slices.Clone(members),
		RestMembers: RestMembers(settings.Members, members),
	})
	for _, id := range members.Flat() {
		count := next.GameCounts[id]
		count.PlayCount++
		next.GameCounts[id] = count
	}
	return next
}

// ReplayGenerate applies a round that was already chosen elsewhere.
func ReplayGenerate(settings model.Settings, members model.GameMembers) model.Settings {
	return AddHistory(settings, members)
}

// Retry withdraws the latest round and generates a replacement. The withdrawn
// round stays in the history so it is not picked again.
//
// When the roster allows no other round, the retried round is played again.
func (g *Generator) Retry(settings model.Settings) (model.Settings, error) {
	if err := validateSettings(settings); err != nil {
		return model.Settings{}, err
	}
	retracted, err := retractLatest(settings)
	if err != nil {
		return model.Settings{}, err
	}
	combinationCount := CombinationCount(retracted.CourtCount, len(retracted.Members))
	if len(retracted.Histories) >= combinationCount && latestIndex(retracted.Histories) < 0 {
		g.logger.Info("no other round left, keeping the retried round",
			zap.Int("histories", len(retracted.Histories)),
			zap.Int("combinations", combinationCount),
		)
		return AddHistory(retracted, LatestMembers(settings)), nil
	}
	return g.Generate(retracted)
}

// ReplayRetry applies a retry whose replacement round was chosen elsewhere.
func ReplayRetry(settings model.Settings, members model.GameMembers) (model.Settings, error) {
	retracted, err := retractLatest(settings)
	if err != nil {
		return model.Settings{}, err
	}
	return AddHistory(retracted, members), nil
}

func retractLatest(settings model.Settings) (model.Settings, error) {
	latest := latestIndex(settings.Histories)
	if latest < 0 {
		return model.Settings{}, ErrNoHistory
	}
	next := settings.Clone()
	next.Histories[latest].Deleted = true
	for _, id := range next.Histories[latest].Members.Flat() {
		count := next.GameCounts[id]
		if count.PlayCount > 0 {
			count.PlayCount--
		}
		next.GameCounts[id] = count
	}
	return next, nil
}

// Join adds a member with the next unused ID.
func Join(settings model.Settings) model.Settings {
	return JoinWithBaseCount(settings, 0)
}

// JoinWithBaseCount adds a member that starts with baseCount plays credited,
// so a late arrival is not scheduled for every round until caught up.
func JoinWithBaseCount(settings model.Settings, baseCount int) model.Settings {
	id := nextMemberID(settings)
	next := settings.Clone()
	next.Members = append(next.Members, id)
	next.GameCounts[id] = model.PlayCount{BaseCount: baseCount}
	return next
}

// Leave removes a member from the roster. Recorded rounds and counts stay.
func Leave(settings model.Settings, id model.MemberID) (model.Settings, error) {
	i := slices.Index(settings.Members, id)
	if i < 0 {
		return model.Settings{}, fmt.Errorf("%w: %d", ErrMemberNotFound, id)
	}
	next := settings.Clone()
	next.Members = slices.Delete(next.Members, i, i+1)
	return next, nil
}

func SetBaseCount(settings model.Settings, id model.MemberID, baseCount int) (model.Settings, error) {
	if !settings.HasMember(id) {
		return model.Settings{}, fmt.Errorf("%w: %d", ErrMemberNotFound, id)
	}
	next := settings.Clone()
	count := next.GameCounts[id]
	count.BaseCount = baseCount
	next.GameCounts[id] = count
	return next, nil
}
