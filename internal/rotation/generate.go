package rotation

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"shuttle-app/internal/arrays"
	"shuttle-app/internal/model"

	"go.uber.org/zap"
)

// Past this product the exact bench correction no longer changes anything.
const exactCombinationLimit = 1000

const maxCombinationCount = math.MaxInt32

const fallbackDraws = 16

type candidate struct {
	members model.GameMembers
	dev     float64
	dist    float64
	spread  int
}

// compareCandidates orders by smallest play count spread, then by largest
// distance from past rounds, then by smallest deviation.
func compareCandidates(a, b candidate) int {
	if a.spread != b.spread {
		return cmp.Compare(a.spread, b.spread)
	}
	if a.dist != b.dist {
		return cmp.Compare(b.dist, a.dist)
	}
	return cmp.Compare(a.dev, b.dev)
}

// Generate picks the next round and returns a snapshot with it appended.
func (g *Generator) Generate(settings model.Settings) (model.Settings, error) {
	if err := validateSettings(settings); err != nil {
		return model.Settings{}, err
	}

	if len(settings.Histories) == 0 {
		return AddHistory(settings, g.selectRandomMembers(arrays.Shuffle(g.rng, settings.Members)[:settings.Capacity()])), nil
	}

	combinationCount := CombinationCount(settings.CourtCount, len(settings.Members))
	if len(settings.Histories) >= combinationCount {
		if latestIndex(settings.Histories) < 0 {
			g.logger.Warn("all combinations used and every round is retracted, nothing to replay",
				zap.Int("histories", len(settings.Histories)),
			)
			return settings.Clone(), nil
		}
		g.logger.Info("all combinations used, replaying the oldest round",
			zap.Int("histories", len(settings.Histories)),
			zap.Int("combinations", combinationCount),
		)
		return rotateHistory(settings), nil
	}

	generateSize := min(len(settings.Members)*10, combinationCount-len(settings.Histories))
	maxAttempts := generateSize * g.attemptFactor

	historyKeys := make(map[string]struct{}, len(settings.Histories))
	for _, history := range settings.Histories {
		historyKeys[HistoryKey(history.Members)] = struct{}{}
	}

	surplusLimit := SurplusLimit(settings)
	evenness := settings.Algorithm == model.AlgorithmEvenness
	candidates := make([]candidate, 0, generateSize)

	attempts := 0
	for ; len(candidates) < generateSize && attempts < maxAttempts; attempts++ {
		generated := g.drawMembers(settings)

		if _, seen := historyKeys[HistoryKey(generated)]; seen {
			g.logger.Debug("round already played, drawing again", zap.Any("members", generated))
			continue
		}

		playCounts := trialPlayCounts(settings, generated)
		spread := arrays.Range(playCounts)

		if evenness {
			if spread > surplusLimit {
				g.logger.Debug("play count spread too wide",
					zap.Int("spread", spread),
					zap.Int("surplusLimit", surplusLimit),
				)
				continue
			}
			if !IsEvenness(settings, surplusLimit, generated) {
				g.logger.Debug("a resting member has rested too long", zap.Int("surplusLimit", surplusLimit))
				continue
			}
		}

		candidates = append(candidates, candidate{
			members: generated,
			dev:     arrays.StandardDeviation(playCounts),
			dist:    averageEditDistance(settings.Histories, generated),
			spread:  spread,
		})
	}

	if len(candidates) == 0 {
		g.logger.Warn("no candidate within the attempt cap, falling back to evenness selection",
			zap.Int("attempts", attempts),
			zap.Int("generateSize", generateSize),
			zap.String("algorithm", string(settings.Algorithm)),
		)
		return AddHistory(settings, g.fallbackMembers(settings, historyKeys)), nil
	}

	best := slices.MinFunc(candidates, compareCandidates)
	g.logger.Debug("round generated",
		zap.Int("candidates", len(candidates)),
		zap.Int("attempts", attempts),
		zap.Int("spread", best.spread),
		zap.Float64("dist", best.dist),
		zap.Float64("dev", best.dev),
	)
	return AddHistory(settings, best.members), nil
}

// fallbackMembers draws evenness selections until one is not already in the
// history. After fallbackDraws tries the last draw is used even if repeated.
func (g *Generator) fallbackMembers(settings model.Settings, historyKeys map[string]struct{}) model.GameMembers {
	var members model.GameMembers
	for range fallbackDraws {
		members = g.SelectEvenness(settings)
		if _, seen := historyKeys[HistoryKey(members)]; !seen {
			return members
		}
	}
	g.logger.Debug("evenness fallback repeats a played round", zap.Any("members", members))
	return members
}

// CombinationCount approximates how many distinct rounds the roster allows.
func CombinationCount(courtCount, memberCount int) int {
	result := 1.0
	for i := range courtCount {
		n := float64(memberCount - i*model.CourtCapacity)
		result *= n * (n - 1) * (n - 2) * (n - 3)
		result /= 24
	}

	if result < exactCombinationLimit {
		result *= binomialCoefficient(memberCount-model.CourtCapacity*courtCount, memberCount%model.CourtCapacity)
	}

	switch {
	case result <= 0:
		return 0
	case result >= maxCombinationCount:
		return maxCombinationCount
	}
	return int(math.Round(result))
}

func binomialCoefficient(n, k int) float64 {
	result := 1.0
	for i := 1; i <= k; i++ {
		result *= float64(n - k + i)
		result /= float64(i)
	}
	return result
}

// SurplusLimit is the tolerated imbalance: the bench size divided by the court
// capacity, rounded up.
func SurplusLimit(settings model.Settings) int {
	surplus := len(settings.Members) - settings.Capacity()
	if surplus <= 0 {
		return 0
	}
	return (surplus + model.CourtCapacity - 1) / model.CourtCapacity
}

func validateSettings(settings model.Settings) error {
	if settings.CourtCount < 1 {
		return ErrInvalidCourtCount
	}
	if len(settings.Members) < settings.Capacity() {
		return fmt.Errorf("%w: %d members for %d courts", ErrNotEnoughMembers, len(settings.Members), settings.CourtCount)
	}
	return nil
}

// drawMembers draws one candidate round. Under evenness members who have not
// played yet are taken first.
func (g *Generator) drawMembers(settings model.Settings) model.GameMembers {
	capacity := settings.Capacity()
	if settings.Algorithm != model.AlgorithmEvenness || len(settings.Members) <= capacity {
		return g.selectRandomMembers(arrays.Shuffle(g.rng, settings.Members)[:capacity])
	}

	played, notPlayed := separatePlayedMembers(settings)
	target := append(arrays.Shuffle(g.rng, notPlayed), arrays.Shuffle(g.rng, played)...)
	return g.selectRandomMembers(target[:capacity])
}

// selectRandomMembers shuffles ids into courts of four, each court sorted.
func (g *Generator) selectRandomMembers(ids []model.MemberID) model.GameMembers {
	chunks := arrays.SplitChunks(arrays.Shuffle(g.rng, ids), model.CourtCapacity)
	members := make(model.GameMembers, 0, len(chunks))
	for _, chunk := range arrays.SortInnerItems(chunks) {
		var court model.CourtMembers
		copy(court[:], chunk)
		members = append(members, court)
	}
	return members
}

func separatePlayedMembers(settings model.Settings) (played, notPlayed []model.MemberID) {
	for _, id := range settings.Members {
		if settings.GameCounts[id].PlayCount == 0 {
			notPlayed = append(notPlayed, id)
		} else {
			played = append(played, id)
		}
	}
	return played, notPlayed
}

// trialPlayCounts returns the roster's play counts as they would be after
// generated is played. The settings are not touched.
func trialPlayCounts(settings model.Settings, generated model.GameMembers) []int {
	counts := rosterPlayCounts(settings.Members, settings.GameCounts)
	for i, id := range settings.Members {
		if generated.Contains(id) {
			counts[i]++
		}
	}
	return counts
}

func averageEditDistance(histories []model.History, members model.GameMembers) float64 {
	matrix := members.Matrix()
	distances := make([]int, 0, len(histories))
	for _, history := range histories {
		if history.Deleted {
			continue
		}
		distances = append(distances, arrays.EditDistance2D(history.Members.Matrix(), matrix))
	}
	return arrays.Average(distances)
}

// rotateHistory moves the oldest live round to the end of the history so it
// becomes the current one again.
func rotateHistory(settings model.Settings) model.Settings {
	next := settings.Clone()
	oldest := slices.IndexFunc(next.Histories, func(h model.History) bool { return !h.Deleted })
	if oldest < 0 {
		return next
	}
	entry := next.Histories[oldest]
	next.Histories = append(slices.Delete(next.Histories, oldest, oldest+1), entry)
	return next
}
