// internal/engine/engine.go
package engine

import (
	"math"

	"sdscan/internal/stats"
)

// Config holds the enumeration parameters.
type Config struct {
	MinScale int
	MaxScale int
	N        int // sequence length (>= 2)
	Window   Window
}

// Engine runs branch searches. It is safe for concurrent use: all state it
// holds is read-only after New.
type Engine struct {
	cfg    Config
	bounds Bounds
	n1     float64 // n-1, the sample variance divisor
}

// New creates an Engine and precomputes its bound tables.
func New(c Config) *Engine {
	return &Engine{
		cfg:    c,
		bounds: NewBounds(c.MinScale, c.MaxScale, c.N),
		n1:     float64(c.N - 1),
	}
}

// Config returns the parameters the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Bounds returns the shared bound tables.
func (e *Engine) Bounds() Bounds { return e.bounds }

type state struct {
	values []int
	st     stats.Running
}

// admits reports whether a prefix with statistics st and r positions still
// to fill can reach the window. The returned stop flag means no larger value
// at this position can either.
func (e *Engine) admits(st stats.Running, r int) (ok, stop bool) {
	w := e.cfg.Window
	if st.Sum+float64(e.bounds.Min[r]) > w.SumUpper {
		return false, true
	}
	if st.Sum+float64(e.bounds.Max[r]) < w.SumLower {
		return false, false
	}
	// M2 never decreases under Push, so this is a floor on the final SD.
	if math.Sqrt(st.M2/e.n1) > w.SDUpper {
		return false, false
	}
	return true, false
}

// SearchBranch enumerates every accepted sequence extending seed, depth
// first, on an explicit stack.
func (e *Engine) SearchBranch(seed Seed) Batch {
	n := e.cfg.N
	if ok, _ := e.admits(seed.Stats, n-2); !ok {
		return nil
	}

	var out Batch
	stack := make([]state, 0, n*(e.cfg.MaxScale-e.cfg.MinScale+1))
	stack = append(stack, state{values: []int{seed.I, seed.J}, st: seed.Stats})

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		k := len(cur.values)
		if k >= n {
			if math.Sqrt(cur.st.M2/e.n1) >= e.cfg.Window.SDLower {
				out = append(out, cur.values)
			}
			continue
		}

		r := (n - 1) - k
		last := cur.values[k-1]
		for c := last; c <= e.cfg.MaxScale; c++ {
			next := cur.st.Push(c)
			ok, stop := e.admits(next, r)
			if stop {
				break
			}
			if !ok {
				continue
			}
			vals := make([]int, k+1, n)
			copy(vals, cur.values)
			vals[k] = c
			stack = append(stack, state{values: vals, st: next})
		}
	}
	return out
}
