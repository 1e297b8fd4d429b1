package stats

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_MatchesDirect(t *testing.T) {
	for a := -3; a <= 7; a++ {
		for b := a; b <= 7; b++ {
			got := Seed(a, b)
			want := Direct([]int{a, b})
			assert.Equal(t, 2, got.Count)
			assert.InDelta(t, want.Sum, got.Sum, 1e-12)
			assert.InDelta(t, want.M2, got.M2, 1e-12, "seed [%d %d]", a, b)
		}
	}
}

func TestPush_MatchesDirectUpToLength30(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		lo := rng.Intn(5)
		hi := lo + 1 + rng.Intn(9)
		seq := []int{lo + rng.Intn(hi-lo+1), lo + rng.Intn(hi-lo+1)}
		r := Seed(seq[0], seq[1])
		for len(seq) < 30 {
			v := lo + rng.Intn(hi-lo+1)
			seq = append(seq, v)
			r = r.Push(v)

			want := Direct(seq)
			require.Equal(t, len(seq), r.Count)
			require.InDelta(t, want.Sum, r.Sum, 1e-9)
			require.InDelta(t, want.M2, r.M2, 1e-9, "seq %v", seq)
		}
	}
}

func TestPush_M2NeverDecreases(t *testing.T) {
	r := Seed(1, 7)
	prev := r.M2
	for _, v := range []int{4, 4, 4, 1, 7, 4, 4, 5, 3} {
		r = r.Push(v)
		assert.GreaterOrEqual(t, r.M2, prev)
		prev = r.M2
	}
}

func TestSampleSD(t *testing.T) {
	r := Direct([]int{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 5.0, r.Mean(), 1e-12)
	// population SD is 2; sample SD uses n-1.
	assert.InDelta(t, math.Sqrt(32.0/7.0), r.SampleSD(8), 1e-12)

	flat := Seed(3, 3)
	assert.Zero(t, flat.M2)
	assert.Zero(t, flat.SampleSD(2))
}

func TestDirect_Empty(t *testing.T) {
	assert.Equal(t, Running{}, Direct(nil))
}
