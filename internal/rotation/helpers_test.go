package rotation

import (
	"math/rand/v2"
	"testing"

	"shuttle-app/internal/arrays"
	"shuttle-app/internal/model"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGenerator(seed uint64, opts ...Option) *Generator {
	base := []Option{
		WithRand(rand.New(rand.NewPCG(seed, seed+1))),
		WithLogger(zap.NewNop()),
	}
	return NewGenerator(append(base, opts...)...)
}

func mustSettings(t *testing.T, memberCount, courtCount int, algorithm model.Algorithm) model.Settings {
	t.Helper()
	settings, err := NewSettings(memberCount, courtCount, algorithm)
	require.NoError(t, err)
	return settings
}

func court(ids ...model.MemberID) model.CourtMembers {
	var c model.CourtMembers
	copy(c[:], ids)
	return c
}

func round(courts ...model.CourtMembers) model.GameMembers {
	return model.GameMembers(courts)
}

func requireValidRound(t *testing.T, settings model.Settings, members model.GameMembers) {
	t.Helper()
	require.Len(t, members, settings.CourtCount)
	seen := map[model.MemberID]bool{}
	for _, c := range members {
		require.Len(t, c, model.CourtCapacity)
		require.IsIncreasing(t, c[:], "court members are sorted")
		for _, id := range c {
			require.False(t, seen[id], "member %d appears twice", id)
			seen[id] = true
		}
	}
}

func rosterRange(settings model.Settings) int {
	return arrays.Range(rosterPlayCounts(settings.Members, settings.GameCounts))
}
