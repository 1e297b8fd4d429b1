// internal/runutil/runutil.go
package runutil

import "runtime"

// EffectiveThreads returns the worker count for a --threads value:
// anything <= 0 means one worker per CPU.
func EffectiveThreads(threads int) int {
	if threads <= 0 {
		return runtime.NumCPU()
	}
	return threads
}

// WriterBuffer sizes the channel between the collector and the batch writer
// so each worker can have a few finished branches in flight.
func WriterBuffer(threads int) int {
	if threads <= 0 {
		threads = 1
	}
	return threads * 4
}

// UsefulWorkers caps the worker count at the number of branches; extra
// workers would never receive a job.
func UsefulWorkers(threads, seeds int) int {
	if seeds > 0 && threads > seeds {
		return seeds
	}
	return threads
}
