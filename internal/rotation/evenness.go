package rotation

import (
	"cmp"
	"slices"

	"shuttle-app/internal/arrays"
	"shuttle-app/internal/model"
)

type memberCount struct {
	id    model.MemberID
	count int
}

// SelectEvenness picks the members with the fewest plays. Members tied at the
// cut are drawn at random, then the chosen members are shuffled into courts.
func (g *Generator) SelectEvenness(settings model.Settings) model.GameMembers {
	members := sortByPlayCount(settings)
	capacity := min(settings.Capacity(), len(members))

	play := members[:capacity]
	rest := members[capacity:]

	if len(rest) == 0 || len(play) == 0 {
		return g.selectRandomMembers(memberIDs(play))
	}

	// a clean cut needs no tie break
	threshold := play[len(play)-1].count
	if threshold < rest[0].count {
		return g.selectRandomMembers(memberIDs(play))
	}

	selected := make([]model.MemberID, 0, capacity)
	for _, m := range play {
		if m.count < threshold {
			selected = append(selected, m.id)
		}
	}
	contested := []model.MemberID{}
	for _, m := range members {
		if m.count == threshold {
			contested = append(contested, m.id)
		}
	}
	selected = append(selected, arrays.Shuffle(g.rng, contested)...)

	return g.selectRandomMembers(selected[:capacity])
}

// IsEvenness reports whether nobody left on the bench by generated would
// exceed surplusLimit rounds of rest in a row.
func IsEvenness(settings model.Settings, surplusLimit int, generated model.GameMembers) bool {
	for _, id := range RestMembers(settings.Members, generated) {
		if ContinuousRestCount(settings.Histories, id) > surplusLimit {
			return false
		}
	}
	return true
}

func sortByPlayCount(settings model.Settings) []memberCount {
	members := make([]memberCount, 0, len(settings.Members))
	for _, id := range settings.Members {
		members = append(members, memberCount{id: id, count: PlayCountOf(settings.GameCounts, id)})
	}
	slices.SortStableFunc(members, func(a, b memberCount) int {
		return cmp.Compare(a.count, b.count)
	})
	return members
}

func memberIDs(members []memberCount) []model.MemberID {
	ids := make([]model.MemberID, len(members))
	for i, m := range members {
		ids[i] = m.id
	}
	return ids
}
