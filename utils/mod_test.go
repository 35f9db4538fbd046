package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestFindIndex(t *testing.T) {
	t.Run("first match", func(t *testing.T) {
		require.Equal(t, 1, FindIndex([]float64{1, 3, 3}, 3))
	})

	t.Run("missing item", func(t *testing.T) {
		require.Equal(t, -1, FindIndex([]string{"a"}, "b"))
		require.Equal(t, -1, FindIndex(nil, 0))
	})
}

func TestShuffle(t *testing.T) {
	t.Run("keeps every element", func(t *testing.T) {
		slice := []int{1, 2, 3, 4, 5, 6, 7, 8}
		Shuffle(rand.New(rand.NewSource(1)), slice)
		require.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, slice)
	})

	t.Run("same seed same order", func(t *testing.T) {
		a := []int{1, 2, 3, 4, 5, 6, 7, 8}
		b := []int{1, 2, 3, 4, 5, 6, 7, 8}
		Shuffle(rand.New(rand.NewSource(9)), a)
		Shuffle(rand.New(rand.NewSource(9)), b)
		require.Equal(t, a, b)
	})
}
