// internal/engine/batch.go
package engine

// Batch holds every sequence accepted by one branch. Rows are non-decreasing
// and have exactly Config.N values.
type Batch [][]int

// Len is the number of accepted sequences.
func (b Batch) Len() int { return len(b) }
