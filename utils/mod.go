package utils

// FindIndex returns the index of the first element equal to item, or -1.
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Shuffler is satisfied by math/rand and x/exp/rand generators.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Shuffle permutes slice in place.
func Shuffle[T any](rng Shuffler, slice []T) {
	rng.Shuffle(len(slice), func(i, j int) {
		slice[i], slice[j] = slice[j], slice[i]
	})
}
