package arrays

import (
	"cmp"
	"slices"
)

// Canonicalize sorts every row ascending and then orders rows by their sum,
// falling back to the first element. Two matrices holding the same rows in
// any order, with items in any order, canonicalize to the same value.
func Canonicalize[T Number](matrix [][]T) [][]T {
	sorted := SortInnerItems(matrix)
	slices.SortStableFunc(sorted, func(a, b []T) int {
		if c := cmp.Compare(Sum(a), Sum(b)); c != 0 {
			return c
		}
		return cmp.Compare(first(a), first(b))
	})
	return sorted
}

// EditDistance2D compares two matrices by the Levenshtein distance of their
// flattened canonical forms. It is 0 iff the matrices hold the same groups.
func EditDistance2D[T Number](a, b [][]T) int {
	return EditDistance(Flatten(Canonicalize(a)), Flatten(Canonicalize(b)))
}

// EditDistance is the Levenshtein distance with unit insert, delete and
// substitute costs.
func EditDistance[T comparable](a, b []T) int {
	m, n := len(a), len(b)
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
		dp[i][0] = i
	}
	for j := 0; j <= n; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if a[i-1] == b[j-1] {
				dp[i][j] = dp[i-1][j-1]
				continue
			}
			dp[i][j] = min(dp[i-1][j], dp[i][j-1], dp[i-1][j-1]) + 1
		}
	}
	return dp[m][n]
}

func first[T any](row []T) T {
	var zero T
	if len(row) == 0 {
		return zero
	}
	return row[0]
}
