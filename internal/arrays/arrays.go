// Package arrays holds the slice and matrix helpers used to build and score
// court groupings.
package arrays

import (
	"cmp"
	"math/rand/v2"
	"slices"
)

type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Shuffle returns a shuffled copy of items. The input is left untouched.
func Shuffle[T any](rng *rand.Rand, items []T) []T {
	result := slices.Clone(items)
	for i := len(result) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		result[i], result[j] = result[j], result[i]
	}
	return result
}

// SplitChunks partitions items into consecutive groups of size. The last
// group may be shorter.
func SplitChunks[T any](items []T, size int) [][]T {
	if size < 1 {
		size = 1
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for i := 0; i < len(items); i += size {
		end := min(i+size, len(items))
		chunks = append(chunks, slices.Clone(items[i:end]))
	}
	return chunks
}

func SortInnerItems[T cmp.Ordered](matrix [][]T) [][]T {
	result := make([][]T, len(matrix))
	for i, row := range matrix {
		sorted := slices.Clone(row)
		slices.Sort(sorted)
		result[i] = sorted
	}
	return result
}

func Flatten[T any](matrix [][]T) []T {
	size := 0
	for _, row := range matrix {
		size += len(row)
	}
	flat := make([]T, 0, size)
	for _, row := range matrix {
		flat = append(flat, row...)
	}
	return flat
}

func Sum[T Number](items []T) T {
	var total T
	for _, item := range items {
		total += item
	}
	return total
}
