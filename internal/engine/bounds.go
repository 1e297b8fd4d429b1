// internal/engine/bounds.go
package engine

// Bounds holds the smallest and largest sum reachable by filling r more
// positions, indexed by r in [0, n]. Read-only once built.
type Bounds struct {
	Min []int
	Max []int
}

// NewBounds precomputes Min[r] = minScale*r and Max[r] = maxScale*r.
func NewBounds(minScale, maxScale, n int) Bounds {
	b := Bounds{Min: make([]int, n+1), Max: make([]int, n+1)}
	for r := 0; r <= n; r++ {
		b.Min[r] = minScale * r
		b.Max[r] = maxScale * r
	}
	return b
}
