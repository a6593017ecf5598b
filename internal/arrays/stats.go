package arrays

import (
	"math"
	"slices"
)

// Average returns the arithmetic mean, or 0 for an empty slice.
func Average[T Number](items []T) float64 {
	if len(items) == 0 {
		return 0
	}
	return float64(Sum(items)) / float64(len(items))
}

// Median returns the middle value (mean of the two middle values for an even
// length), or 0 for an empty slice.
func Median[T Number](items []T) float64 {
	if len(items) == 0 {
		return 0
	}
	sorted := slices.Clone(items)
	slices.Sort(sorted)
	center := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (float64(sorted[center-1]) + float64(sorted[center])) / 2
	}
	return float64(sorted[center])
}

// StandardDeviation is the population standard deviation, 0 for an empty
// slice.
func StandardDeviation[T Number](items []T) float64 {
	if len(items) == 0 {
		return 0
	}
	avg := Average(items)
	variance := 0.0
	for _, item := range items {
		d := float64(item) - avg
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(items)))
}

// Range returns max - min, or 0 for an empty slice.
func Range[T Number](items []T) T {
	if len(items) == 0 {
		var zero T
		return zero
	}
	return slices.Max(items) - slices.Min(items)
}

// Mode returns the most frequent value. When two values are equally frequent
// tieBreaker picks between the current winner and the challenger; a nil
// tieBreaker keeps the larger one.
func Mode[T Number](items []T, tieBreaker func(current, challenger T) T) T {
	if tieBreaker == nil {
		tieBreaker = func(a, b T) T { return max(a, b) }
	}
	counts := make(map[T]int, len(items))
	order := make([]T, 0, len(items))
	for _, item := range items {
		if _, seen := counts[item]; !seen {
			order = append(order, item)
		}
		counts[item]++
	}

	var winner T
	maxCount := 0
	for _, item := range order {
		switch count := counts[item]; {
		case count > maxCount:
			maxCount = count
			winner = item
		case count == maxCount:
			winner = tieBreaker(winner, item)
		}
	}
	return winner
}
