package arrays

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShuffle(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	t.Run("returns a permutation", func(t *testing.T) {
		input := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
		for range 50 {
			shuffled := Shuffle(rng, input)
			require.ElementsMatch(t, input, shuffled)
		}
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		input := []int{1, 2, 3, 4, 5}
		_ = Shuffle(rng, input)
		require.Equal(t, []int{1, 2, 3, 4, 5}, input)
	})

	t.Run("handles empty input", func(t *testing.T) {
		require.Empty(t, Shuffle(rng, []int{}))
	})

	t.Run("eventually moves items", func(t *testing.T) {
		input := []int{1, 2, 3, 4, 5, 6, 7, 8}
		moved := false
		for range 20 {
			if !slices.Equal(input, Shuffle(rng, input)) {
				moved = true
				break
			}
		}
		require.True(t, moved)
	})
}

func TestSplitChunks(t *testing.T) {
	t.Run("splits evenly", func(t *testing.T) {
		require.Equal(t, [][]int{{1, 2}, {3, 4}}, SplitChunks([]int{1, 2, 3, 4}, 2))
	})

	t.Run("keeps a short tail", func(t *testing.T) {
		require.Equal(t, [][]int{{1, 2, 3, 4}, {5}}, SplitChunks([]int{1, 2, 3, 4, 5}, 4))
	})

	t.Run("empty input yields no chunks", func(t *testing.T) {
		require.Empty(t, SplitChunks([]int{}, 4))
	})
}

func TestSortInnerItems(t *testing.T) {
	input := [][]int{{3, 1, 2, 4}, {8, 7, 6, 5}}

	sorted := SortInnerItems(input)

	require.Equal(t, [][]int{{1, 2, 3, 4}, {5, 6, 7, 8}}, sorted)
	require.Equal(t, []int{3, 1, 2, 4}, input[0])
}

func TestStatistics(t *testing.T) {
	tests := []struct {
		name    string
		input   []int
		average float64
		median  float64
		stddev  float64
		rng     int
	}{
		{name: "empty", input: nil},
		{name: "single", input: []int{5}, average: 5, median: 5, stddev: 0, rng: 0},
		{name: "odd length", input: []int{3, 1, 2}, average: 2, median: 2, stddev: math.Sqrt(2.0 / 3.0), rng: 2},
		{name: "even length", input: []int{4, 1, 3, 2}, average: 2.5, median: 2.5, stddev: math.Sqrt(1.25), rng: 3},
		{name: "textbook", input: []int{2, 4, 4, 4, 5, 5, 7, 9}, average: 5, median: 4.5, stddev: 2, rng: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.average, Average(tt.input), 1e-9)
			require.InDelta(t, tt.median, Median(tt.input), 1e-9)
			require.InDelta(t, tt.stddev, StandardDeviation(tt.input), 1e-9)
			require.Equal(t, tt.rng, Range(tt.input))
		})
	}

	t.Run("median does not reorder input", func(t *testing.T) {
		input := []int{3, 1, 2}
		_ = Median(input)
		require.Equal(t, []int{3, 1, 2}, input)
	})
}

func TestMode(t *testing.T) {
	t.Run("most frequent wins", func(t *testing.T) {
		require.Equal(t, 2, Mode([]int{1, 2, 2, 3}, nil))
	})

	t.Run("ties prefer larger by default", func(t *testing.T) {
		require.Equal(t, 3, Mode([]int{1, 1, 3, 3}, nil))
	})

	t.Run("custom tie breaker", func(t *testing.T) {
		smaller := func(a, b int) int { return min(a, b) }
		require.Equal(t, 1, Mode([]int{3, 3, 1, 1}, smaller))
	})

	t.Run("empty input", func(t *testing.T) {
		require.Equal(t, 0, Mode([]int{}, nil))
	})
}

func TestEditDistance(t *testing.T) {
	require.Equal(t, 0, EditDistance([]int{}, []int{}))
	require.Equal(t, 3, EditDistance([]int{}, []int{1, 2, 3}))
	require.Equal(t, 1, EditDistance([]int{1, 2, 3}, []int{1, 9, 3}))
	require.Equal(t, 3, EditDistance([]rune("kitten"), []rune("sitting")))
}

func TestEditDistance2D(t *testing.T) {
	t.Run("same group in any order", func(t *testing.T) {
		require.Equal(t, 0, EditDistance2D([][]int{{1, 2, 3, 4}}, [][]int{{4, 3, 2, 1}}))
	})

	t.Run("identity", func(t *testing.T) {
		m := [][]int{{1, 5, 9, 2}, {3, 4, 7, 8}}
		require.Equal(t, 0, EditDistance2D(m, m))
	})

	t.Run("invariant to row and item permutation", func(t *testing.T) {
		a := [][]int{{1, 2, 3, 4}, {5, 6, 7, 8}}
		b := [][]int{{8, 6, 7, 5}, {2, 4, 1, 3}}
		c := [][]int{{1, 2, 5, 6}, {3, 4, 7, 8}}
		require.Equal(t, 0, EditDistance2D(a, b))
		require.Equal(t, EditDistance2D(a, c), EditDistance2D(b, c))
		require.Equal(t, EditDistance2D(c, a), EditDistance2D(c, b))
	})

	t.Run("different groupings are positive", func(t *testing.T) {
		a := [][]int{{1, 2, 3, 4}, {5, 6, 7, 8}}
		b := [][]int{{1, 2, 5, 6}, {3, 4, 7, 8}}
		require.Positive(t, EditDistance2D(a, b))
	})

	t.Run("does not mutate inputs", func(t *testing.T) {
		a := [][]int{{5, 6, 8, 7}, {4, 3, 2, 1}}
		_ = EditDistance2D(a, [][]int{{1, 2, 3, 4}})
		require.Equal(t, [][]int{{5, 6, 8, 7}, {4, 3, 2, 1}}, a)
	})
}

func TestCanonicalize(t *testing.T) {
	got := Canonicalize([][]int{{9, 1, 2, 3}, {4, 3, 2, 1}, {8, 2, 1, 4}})
	require.Equal(t, [][]int{{1, 2, 3, 4}, {1, 2, 3, 9}, {1, 2, 4, 8}}, got)
}
