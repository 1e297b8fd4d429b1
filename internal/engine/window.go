// internal/engine/window.go
package engine

// Window is the acceptance region for a complete sequence, expressed on the
// sum (not the mean) so the search never divides.
type Window struct {
	SumLower, SumUpper float64
	SDLower, SDUpper   float64
}

// NewWindow derives the window from the reported statistics:
// target_sum = mean*n, rounding_error_sum = errMean*n.
func NewWindow(n int, targetMean, targetSD, errMean, errSD float64) Window {
	sum := targetMean * float64(n)
	errSum := errMean * float64(n)
	return Window{
		SumLower: sum - errSum,
		SumUpper: sum + errSum,
		SDLower:  targetSD - errSD,
		SDUpper:  targetSD + errSD,
	}
}
