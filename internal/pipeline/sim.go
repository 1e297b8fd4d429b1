// internal/pipeline/sim.go
package pipeline

import "sdscan/internal/engine"

// Searcher is the minimal capability the pipeline needs.
// Any engine (including fakes in tests) can satisfy this.
type Searcher interface {
	SearchBranch(seed engine.Seed) engine.Batch
}
