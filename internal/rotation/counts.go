package rotation

import (
	"slices"
	"strconv"
	"strings"

	"shuttle-app/internal/arrays"
	"shuttle-app/internal/model"
)

// PlayCountOf returns the member's play count including its base offset.
func PlayCountOf(gameCounts map[model.MemberID]model.PlayCount, id model.MemberID) int {
	return gameCounts[id].Total()
}

// RestMembers returns the roster members that do not play in generated.
func RestMembers(members []model.MemberID, generated model.GameMembers) []model.MemberID {
	rest := []model.MemberID{}
	for _, id := range members {
		if !generated.Contains(id) {
			rest = append(rest, id)
		}
	}
	return rest
}

// ContinuousRestCount counts the most recent rounds in a row the member sat
// out. Retracted rounds are skipped.
func ContinuousRestCount(histories []model.History, id model.MemberID) int {
	count := 0
	for i := len(histories) - 1; i >= 0; i-- {
		if histories[i].Deleted {
			continue
		}
		if histories[i].Members.Contains(id) {
			return count
		}
		count++
	}
	return count
}

func ContinuousRestCounts(histories []model.History, ids []model.MemberID) map[model.MemberID]int {
	counts := make(map[model.MemberID]int, len(ids))
	for _, id := range ids {
		counts[id] = ContinuousRestCount(histories, id)
	}
	return counts
}

// TotalRestCounts counts, per roster member, every live round the member did
// not play.
func TotalRestCounts(settings model.Settings) map[model.MemberID]int {
	counts := make(map[model.MemberID]int, len(settings.Members))
	for _, id := range settings.Members {
		counts[id] = 0
	}
	for _, history := range settings.Histories {
		if history.Deleted {
			continue
		}
		for _, id := range settings.Members {
			if !history.Members.Contains(id) {
				counts[id]++
			}
		}
	}
	return counts
}

// LatestMembers returns the most recent live round, nil when none exists.
func LatestMembers(settings model.Settings) model.GameMembers {
	i := latestIndex(settings.Histories)
	if i < 0 {
		return nil
	}
	return settings.Histories[i].Members
}

func latestIndex(histories []model.History) int {
	for i := len(histories) - 1; i >= 0; i-- {
		if !histories[i].Deleted {
			return i
		}
	}
	return -1
}

// HistoryKey identifies a round independently of court order and of the
// order of players within a court.
func HistoryKey(members model.GameMembers) string {
	flat := arrays.Flatten(arrays.Canonicalize(members.Matrix()))
	var b strings.Builder
	for i, id := range flat {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(id))
	}
	return b.String()
}

// rosterPlayCounts lists the play counts of the current roster only, so
// departed members never skew the statistics.
func rosterPlayCounts(members []model.MemberID, gameCounts map[model.MemberID]model.PlayCount) []int {
	counts := make([]int, 0, len(members))
	for _, id := range members {
		counts = append(counts, PlayCountOf(gameCounts, id))
	}
	return counts
}

func nextMemberID(settings model.Settings) model.MemberID {
	var maxID model.MemberID
	if len(settings.Members) > 0 {
		maxID = slices.Max(settings.Members)
	}
	for id := range settings.GameCounts {
		maxID = max(maxID, id)
	}
	for _, history := range settings.Histories {
		for _, id := range history.Members.Flat() {
			maxID = max(maxID, id)
		}
	}
	return maxID + 1
}
