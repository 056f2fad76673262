// Package delay builds randomized stimulus delay pools.
package delay

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/reflex/internal/model"
)

const (
	// PoolSize is the number of delays precomputed per difficulty.
	PoolSize = 10
	// FallbackDelay is used when the pool is empty.
	FallbackDelay = 2000
)

// NewSource returns a random source seeded with the current time.
func NewSource() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Range returns the minimum delay and the width of the random range in ms.
// Delays fall in [min, min+span).
func Range(d model.Difficulty) (minDelay, span int) {
	switch d {
	case model.DifficultyEasy:
		return 1000, 1000
	case model.DifficultyHard:
		return 1000, 3000
	default:
		return 1500, 1500
	}
}

// Pool draws PoolSize delays for the difficulty.
func Pool(d model.Difficulty, rnd *rand.Rand) []int {
	minDelay, span := Range(d)
	pool := make([]int, PoolSize)
	for i := range pool {
		pool[i] = minDelay + rnd.Intn(span)
	}
	return pool
}

// Pick selects a pool entry uniformly, or FallbackDelay for an empty pool.
func Pick(pool []int, rnd *rand.Rand) int {
	if len(pool) == 0 {
		return FallbackDelay
	}
	return pool[rnd.Intn(len(pool))]
}
