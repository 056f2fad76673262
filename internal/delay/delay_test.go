package delay

import (
	"math/rand"
	"testing"

	"github.com/verte-zerg/reflex/internal/model"
)

func TestPoolBounds(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for _, d := range model.Difficulties {
		minDelay, span := Range(d)
		for run := 0; run < 50; run++ {
			pool := Pool(d, rnd)
			if len(pool) != PoolSize {
				t.Fatalf("%s: expected %d delays, got %d", d, PoolSize, len(pool))
			}
			for _, v := range pool {
				if v < minDelay || v >= minDelay+span {
					t.Fatalf("%s: delay %d outside [%d, %d)", d, v, minDelay, minDelay+span)
				}
			}
		}
	}
}

func TestRangeTable(t *testing.T) {
	cases := []struct {
		d         model.Difficulty
		min, span int
	}{
		{model.DifficultyEasy, 1000, 1000},
		{model.DifficultyMedium, 1500, 1500},
		{model.DifficultyHard, 1000, 3000},
	}
	for _, tc := range cases {
		minDelay, span := Range(tc.d)
		if minDelay != tc.min || span != tc.span {
			t.Fatalf("%s: got (%d, %d), want (%d, %d)", tc.d, minDelay, span, tc.min, tc.span)
		}
	}
}

func TestPoolDeterministicWithSeed(t *testing.T) {
	a := Pool(model.DifficultyHard, rand.New(rand.NewSource(7)))
	b := Pool(model.DifficultyHard, rand.New(rand.NewSource(7)))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("pools differ at %d: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestPickFallbackAndMembership(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	if got := Pick(nil, rnd); got != FallbackDelay {
		t.Fatalf("expected fallback %d, got %d", FallbackDelay, got)
	}
	pool := []int{1100, 1200, 1300}
	for i := 0; i < 20; i++ {
		got := Pick(pool, rnd)
		if got != 1100 && got != 1200 && got != 1300 {
			t.Fatalf("picked %d not in pool", got)
		}
	}
}
