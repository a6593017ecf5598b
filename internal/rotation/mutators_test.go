package rotation

import (
	"testing"

	"shuttle-app/internal/model"

	"github.com/stretchr/testify/require"
)

func TestNewSettings(t *testing.T) {
	t.Run("numbers members from one", func(t *testing.T) {
		settings := mustSettings(t, 6, 1, "")

		require.Equal(t, []model.MemberID{1, 2, 3, 4, 5, 6}, settings.Members)
		require.Equal(t, model.AlgorithmDiscreteness, settings.Algorithm)
		require.Len(t, settings.GameCounts, 6)
		require.Empty(t, settings.Histories)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := NewSettings(8, 0, model.AlgorithmEvenness)
		require.ErrorIs(t, err, ErrInvalidCourtCount)

		_, err = NewSettings(7, 2, model.AlgorithmEvenness)
		require.ErrorIs(t, err, ErrNotEnoughMembers)

		_, err = NewSettings(8, 1, "RANDOM")
		require.ErrorIs(t, err, ErrInvalidAlgorithm)
	})
}

func TestAddHistory(t *testing.T) {
	settings := mustSettings(t, 6, 1, model.AlgorithmDiscreteness)
	settings.GameCounts[5] = model.PlayCount{PlayCount: 2, BaseCount: 1}
	members := round(court(1, 2, 3, 4))

	next := AddHistory(settings, members)

	require.Len(t, next.Histories, len(settings.Histories)+1)
	require.Equal(t, members, next.Histories[0].Members)
	require.Equal(t, []model.MemberID{5, 6}, next.Histories[0].RestMembers)
	for _, id := range []model.MemberID{1, 2, 3, 4} {
		require.Equal(t, settings.GameCounts[id].PlayCount+1, next.GameCounts[id].PlayCount)
	}
	require.Equal(t, settings.GameCounts[5], next.GameCounts[5])
	require.Equal(t, settings.GameCounts[6], next.GameCounts[6])

	t.Run("input is untouched", func(t *testing.T) {
		require.Empty(t, settings.Histories)
		require.Equal(t, 0, settings.GameCounts[1].PlayCount)
	})

	t.Run("recorded round does not alias the argument", func(t *testing.T) {
		members[0][0] = 9
		require.Equal(t, model.MemberID(1), next.Histories[0].Members[0][0])
	})

	t.Run("replay is the same transition", func(t *testing.T) {
		replayed := ReplayGenerate(settings, round(court(1, 2, 3, 4)))
		require.Equal(t, AddHistory(settings, round(court(1, 2, 3, 4))), replayed)
	})
}

func TestJoin(t *testing.T) {
	settings := mustSettings(t, 5, 1, model.AlgorithmEvenness)
	settings = AddHistory(settings, round(court(1, 2, 3, 4)))

	joined := Join(settings)

	require.Equal(t, []model.MemberID{1, 2, 3, 4, 5, 6}, joined.Members)
	require.Equal(t, model.PlayCount{}, joined.GameCounts[6])
	require.Equal(t, settings.GameCounts[1], joined.GameCounts[1])
	require.Len(t, settings.Members, 5)

	t.Run("never reuses a departed member's id", func(t *testing.T) {
		left, err := Leave(joined, 6)
		require.NoError(t, err)

		rejoined := Join(left)

		require.Equal(t, model.MemberID(7), rejoined.Members[len(rejoined.Members)-1])
	})

	t.Run("late joiner head start", func(t *testing.T) {
		late := JoinWithBaseCount(settings, 1)
		require.Equal(t, model.PlayCount{BaseCount: 1}, late.GameCounts[6])
		require.Equal(t, 1, PlayCountOf(late.GameCounts, 6))
	})
}

func TestLeave(t *testing.T) {
	settings := mustSettings(t, 5, 1, model.AlgorithmDiscreteness)
	settings = AddHistory(settings, round(court(1, 2, 3, 4)))

	left, err := Leave(settings, 2)

	require.NoError(t, err)
	require.Equal(t, []model.MemberID{1, 3, 4, 5}, left.Members)
	require.Equal(t, settings.Histories, left.Histories)
	require.Equal(t, 1, left.GameCounts[2].PlayCount)
	require.Equal(t, []model.MemberID{1, 2, 3, 4, 5}, settings.Members)

	_, err = Leave(settings, 42)
	require.ErrorIs(t, err, ErrMemberNotFound)
}

func TestSetBaseCount(t *testing.T) {
	settings := mustSettings(t, 5, 1, model.AlgorithmDiscreteness)

	next, err := SetBaseCount(settings, 3, 2)

	require.NoError(t, err)
	require.Equal(t, 2, next.GameCounts[3].BaseCount)
	require.Equal(t, 0, settings.GameCounts[3].BaseCount)

	_, err = SetBaseCount(settings, 9, 1)
	require.ErrorIs(t, err, ErrMemberNotFound)
}

func TestRetry(t *testing.T) {
	g := newTestGenerator(21)
	settings := mustSettings(t, 8, 1, model.AlgorithmDiscreteness)
	settings = AddHistory(settings, round(court(1, 2, 3, 4)))

	retried, err := g.Retry(settings)

	require.NoError(t, err)
	require.Len(t, retried.Histories, 2)
	require.True(t, retried.Histories[0].Deleted)
	require.False(t, settings.Histories[0].Deleted, "input snapshot is untouched")

	latest := LatestMembers(retried)
	require.NotEqual(t, HistoryKey(settings.Histories[0].Members), HistoryKey(latest))

	total := 0
	for id, count := range retried.GameCounts {
		total += count.PlayCount
		want := 0
		if latest.Contains(id) {
			want = 1
		}
		require.Equal(t, want, count.PlayCount, "member %d", id)
	}
	require.Equal(t, 4, total)

	t.Run("nothing to retry", func(t *testing.T) {
		_, err := g.Retry(mustSettings(t, 8, 1, model.AlgorithmDiscreteness))
		require.ErrorIs(t, err, ErrNoHistory)
	})
}

func TestRetry_OnlyOneRoundPossible(t *testing.T) {
	g := newTestGenerator(13)
	settings := mustSettings(t, 4, 1, model.AlgorithmDiscreteness)
	settings, err := g.Generate(settings)
	require.NoError(t, err)

	retried, err := g.Retry(settings)

	require.NoError(t, err)
	require.Equal(t, round(court(1, 2, 3, 4)), LatestMembers(retried))
	require.Len(t, retried.Histories, 2)
	require.True(t, retried.Histories[0].Deleted)
	for _, id := range retried.Members {
		require.Equal(t, 1, retried.GameCounts[id].PlayCount, "member %d", id)
	}

	again, err := g.Retry(retried)
	require.NoError(t, err)
	require.NotNil(t, LatestMembers(again))
	require.Equal(t, 1, again.GameCounts[1].PlayCount)
}

func TestReplayRetry(t *testing.T) {
	settings := mustSettings(t, 8, 1, model.AlgorithmDiscreteness)
	settings = AddHistory(settings, round(court(1, 2, 3, 4)))

	replayed, err := ReplayRetry(settings, round(court(5, 6, 7, 8)))

	require.NoError(t, err)
	require.Equal(t, round(court(5, 6, 7, 8)), LatestMembers(replayed))
	require.Equal(t, 0, replayed.GameCounts[1].PlayCount)
	require.Equal(t, 1, replayed.GameCounts[5].PlayCount)

	_, err = ReplayRetry(mustSettings(t, 8, 1, model.AlgorithmDiscreteness), round(court(1, 2, 3, 4)))
	require.ErrorIs(t, err, ErrNoHistory)
}
