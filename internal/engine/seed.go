// internal/engine/seed.go
package engine

import "sdscan/internal/stats"

// ---- Seeds (units of parallel work) ---------------------------------------

// Seed is the two-element prefix [I, J] (I <= J) a branch starts from.
type Seed struct {
	I, J  int
	Stats stats.Running
}

// CountSeeds is the number of pairs (i, j) with min <= i <= j <= max,
// i.e. r*(r+1)/2 for a scale of r values. Used to size progress up front.
func CountSeeds(minScale, maxScale int) int {
	r := maxScale - minScale + 1
	if r <= 0 {
		return 0
	}
	return r * (r + 1) / 2
}

// Seeds enumerates every prefix in row-major order (i ascending, then j).
func Seeds(minScale, maxScale int) []Seed {
	out := make([]Seed, 0, CountSeeds(minScale, maxScale))
	for i := minScale; i <= maxScale; i++ {
		for j := i; j <= maxScale; j++ {
			out = append(out, Seed{I: i, J: j, Stats: stats.Seed(i, j)})
		}
	}
	return out
}
