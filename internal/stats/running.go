// internal/stats/running.go
package stats

import "math"

// Running is a Welford accumulator for a partial sequence: Sum is the plain
// total and M2 the sum of squared deviations from the running mean.
type Running struct {
	Sum   float64
	M2    float64
	Count int
}

// Seed returns the statistics of the two-element sequence [a, b].
func Seed(a, b int) Running {
	sum := float64(a + b)
	mean := sum / 2
	da := float64(a) - mean
	db := float64(b) - mean
	return Running{Sum: sum, M2: da*da + db*db, Count: 2}
}

// Push returns the statistics after appending v. Count must be >= 1.
func (r Running) Push(v int) Running {
	x := float64(v)
	sum := r.Sum + x
	mean := sum / float64(r.Count+1)
	delta := x - r.Sum/float64(r.Count)
	delta2 := x - mean
	return Running{Sum: sum, M2: r.M2 + delta*delta2, Count: r.Count + 1}
}

// Mean is Sum/Count (NaN for an empty accumulator).
func (r Running) Mean() float64 { return r.Sum / float64(r.Count) }

// SampleSD is sqrt(M2/(n-1)), the sample standard deviation the accumulator
// would have if it held n values.
func (r Running) SampleSD(n int) float64 { return math.Sqrt(r.M2 / float64(n-1)) }

// Direct computes the same statistics with the two-pass formula.
func Direct(values []int) Running {
	if len(values) == 0 {
		return Running{}
	}
	sum := 0.0
	for _, v := range values {
		sum += float64(v)
	}
	mean := sum / float64(len(values))
	m2 := 0.0
	for _, v := range values {
		d := float64(v) - mean
		m2 += d * d
	}
	return Running{Sum: sum, M2: m2, Count: len(values)}
}
