package rotation

import (
	"math"

	"shuttle-app/internal/arrays"
	"shuttle-app/internal/model"
)

type CountVariant string

const (
	VariantPlayCount      CountVariant = "playCount"
	VariantRestCount      CountVariant = "restCount"
	VariantTotalRestCount CountVariant = "totalRestCount"
)

type OutlierLevel string

const (
	OutlierNone   OutlierLevel = "none"
	OutlierLow    OutlierLevel = "low"
	OutlierMedium OutlierLevel = "medium"
	OutlierHigh   OutlierLevel = "high"
)

type MemberStat struct {
	ID             model.MemberID                `json:"id"`
	PlayCount      int                           `json:"playCount"`
	RestCount      int                           `json:"restCount"`
	TotalRestCount int                           `json:"totalRestCount"`
	Levels         map[CountVariant]OutlierLevel `json:"levels"`
}

// MemberStats reports, for every roster member, how far each count sits from
// the rest of the roster. Play and total rest are measured against the
// roster median; continuous rest is taken as is.
func MemberStats(settings model.Settings) []MemberStat {
	restCounts := ContinuousRestCounts(settings.Histories, settings.Members)
	totalRestCounts := TotalRestCounts(settings)

	playCounts := make([]int, 0, len(settings.Members))
	totalRests := make([]int, 0, len(settings.Members))
	for _, id := range settings.Members {
		playCounts = append(playCounts, settings.GameCounts[id].PlayCount)
		totalRests = append(totalRests, totalRestCounts[id])
	}
	playMedian := arrays.Median(playCounts)
	totalRestMedian := arrays.Median(totalRests)

	stats := make([]MemberStat, 0, len(settings.Members))
	for i, id := range settings.Members {
		stats = append(stats, MemberStat{
			ID:             id,
			PlayCount:      playCounts[i],
			RestCount:      restCounts[id],
			TotalRestCount: totalRests[i],
			Levels: map[CountVariant]OutlierLevel{
				VariantPlayCount:      outlierLevel(math.Abs(float64(playCounts[i]) - playMedian)),
				VariantRestCount:      outlierLevel(float64(restCounts[id])),
				VariantTotalRestCount: outlierLevel(float64(totalRests[i]) - totalRestMedian),
			},
		})
	}
	return stats
}

func outlierLevel(diff float64) OutlierLevel {
	switch level := math.Min(diff, 3); {
	case level >= 3:
		return OutlierHigh
	case level >= 2:
		return OutlierMedium
	case level >= 1:
		return OutlierLow
	}
	return OutlierNone
}
