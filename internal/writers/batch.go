// internal/writers/batch.go
package writers

import (
	"time"

	"sdscan/internal/engine"
)

// Appender persists one batch atomically (output.Sink).
type Appender interface {
	Append(batch [][]int) error
}

// Hooks observe the writer. Both are called from the writer goroutine.
type Hooks struct {
	// Written runs after each batch is persisted, including empty batches,
	// so it fires exactly once per completed branch.
	Written func(b engine.Batch, took time.Duration)
	// Failed runs once, on the first append error.
	Failed func(err error)
}

// StartBatchWriter spins up the writer goroutine. Close the returned channel
// when all batches are sent; the error channel then yields the first append
// error (or nil). After a failure the writer keeps draining its input without
// writing, so senders never block.
func StartBatchWriter(sink Appender, bufSize int, h Hooks) (chan<- engine.Batch, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan engine.Batch, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		for b := range in {
			if err != nil {
				continue
			}
			start := time.Now()
			if err = sink.Append(b); err != nil {
				if h.Failed != nil {
					h.Failed(err)
				}
				continue
			}
			if h.Written != nil {
				h.Written(b, time.Since(start))
			}
		}
		errCh <- err
	}()

	return in, errCh
}
